package directory

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/emre/hardwarehub/internal/app/gateway"
	"github.com/emre/hardwarehub/internal/app/models"
	"github.com/emre/hardwarehub/internal/pkg/apperrors"
)

// Directory is the admin-facing authoritative list of profiles. It
// never patches the local collection from mutation results: every
// successful create, update or delete re-fetches the whole list, so
// server-computed fields (generated ids, profile type names, tag
// names) are always what the backend says they are.
type Directory struct {
	gw     *gateway.Client
	logger zerolog.Logger

	mu            sync.RWMutex
	profiles      []models.Profile
	pendingDelete int64 // armed profile id, 0 when nothing is pending
}

// New creates an empty directory backed by the gateway
func New(gw *gateway.Client, logger zerolog.Logger) *Directory {
	return &Directory{gw: gw, logger: logger}
}

// List returns a copy of the current profile list in server order
func (d *Directory) List() []models.Profile {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]models.Profile, len(d.profiles))
	copy(out, d.profiles)
	return out
}

// Refresh re-issues the list call and replaces the entire local
// collection. No incremental patching: the admin list is small and
// whole-list replacement is the simplest model that cannot drift.
func (d *Directory) Refresh(ctx context.Context) error {
	profiles, err := d.gw.Profiles(ctx)
	if err != nil {
		d.logger.Error().Err(err).Msg("Directory refresh failed")
		return err
	}

	d.mu.Lock()
	d.profiles = profiles
	d.mu.Unlock()
	return nil
}

// Create registers a new profile and refreshes the list on success
func (d *Directory) Create(ctx context.Context, upload gateway.ProfileUpload) (*models.Profile, error) {
	created, err := d.gw.CreateProfile(ctx, upload)
	if err != nil {
		return nil, err
	}
	if err := d.Refresh(ctx); err != nil {
		return created, err
	}
	return created, nil
}

// Update replaces a profile and refreshes the list on success
func (d *Directory) Update(ctx context.Context, id int64, upload gateway.ProfileUpload) (*models.Profile, error) {
	updated, err := d.gw.UpdateProfile(ctx, id, upload)
	if err != nil {
		return nil, err
	}
	if err := d.Refresh(ctx); err != nil {
		return updated, err
	}
	return updated, nil
}

// RequestDelete arms the two-stage delete for a profile id. Nothing is
// sent to the backend until ConfirmDelete.
func (d *Directory) RequestDelete(id int64) {
	d.mu.Lock()
	d.pendingDelete = id
	d.mu.Unlock()
}

// CancelDelete disarms a pending delete
func (d *Directory) CancelDelete() {
	d.mu.Lock()
	d.pendingDelete = 0
	d.mu.Unlock()
}

// PendingDelete returns the armed profile id, or 0
func (d *Directory) PendingDelete() int64 {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.pendingDelete
}

// ConfirmDelete issues the destructive call for the armed profile id
// and refreshes the list. Confirming a different id than the one armed
// (or with nothing armed) fails without touching the backend.
func (d *Directory) ConfirmDelete(ctx context.Context, id int64) error {
	d.mu.Lock()
	if d.pendingDelete == 0 || d.pendingDelete != id {
		d.mu.Unlock()
		return apperrors.ErrNoPendingDelete
	}
	d.pendingDelete = 0
	d.mu.Unlock()

	if err := d.gw.DeleteProfile(ctx, id); err != nil {
		d.logger.Error().Err(err).Int64("profileId", id).Msg("Profile delete failed")
		// Delete failures surface only the generic message, whatever
		// the backend said.
		return apperrors.NewRemoteError(0, nil, apperrors.ErrUnavailable)
	}

	d.logger.Info().Int64("profileId", id).Msg("Profile deleted")
	return d.Refresh(ctx)
}
