package session

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/emre/hardwarehub/internal/app/gateway"
	"github.com/emre/hardwarehub/internal/app/models"
)

// Reader is the read-only view of the session handed to consumers that
// make authorization decisions but must not mutate identity state.
type Reader interface {
	Current() models.Session
}

// Store holds the single process-wide session. Login and Logout are
// the only mutators; every transition is atomic under the lock, so
// readers never observe a half-applied identity.
type Store struct {
	mu            sync.RWMutex
	current       models.Session
	gw            *gateway.Client
	defaultAvatar string
	logger        zerolog.Logger
}

// NewStore creates a session store starting in the unauthenticated
// default state.
func NewStore(gw *gateway.Client, defaultAvatar string, logger zerolog.Logger) *Store {
	return &Store{
		current:       models.AnonymousSession(),
		gw:            gw,
		defaultAvatar: defaultAvatar,
		logger:        logger,
	}
}

// Current returns a copy of the session
func (s *Store) Current() models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Login resolves a profile by id through the gateway and commits it as
// the current identity. Authentication happens only on confirmed
// success: a failed lookup logs the failure and leaves the session
// untouched.
func (s *Store) Login(ctx context.Context, profileID int64) (models.Session, error) {
	profile, err := s.gw.ProfileByID(ctx, profileID)
	if err != nil {
		s.logger.Error().Err(err).Int64("profileId", profileID).Msg("Login lookup failed")
		return s.Current(), err
	}

	sess := models.SessionFromProfile(profile, s.defaultAvatar)

	s.mu.Lock()
	s.current = sess
	s.mu.Unlock()

	s.logger.Info().Int64("profileId", profileID).Bool("admin", sess.IsAdmin).Msg("Session established")
	return sess, nil
}

// Logout resets the session to the unauthenticated default. It is the
// only operation with no side-effect beyond the state reset.
func (s *Store) Logout() models.Session {
	s.mu.Lock()
	s.current = models.AnonymousSession()
	sess := s.current
	s.mu.Unlock()

	s.logger.Info().Msg("Session cleared")
	return sess
}
