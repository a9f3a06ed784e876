package feed

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/emre/hardwarehub/internal/app/gateway"
	"github.com/emre/hardwarehub/internal/app/models"
	"github.com/emre/hardwarehub/internal/pkg/apperrors"
	"github.com/emre/hardwarehub/internal/pkg/validation"
)

// Feed loads the review list and per-review detail threads. Threads
// are cached per review id and replaced wholesale on every load, so
// navigation is the only freshness mechanism.
type Feed struct {
	gw     *gateway.Client
	logger zerolog.Logger

	mu      sync.RWMutex
	threads map[int64]*Thread
}

// Thread is one review with its comment thread attached, committed
// only after both fetches succeeded.
type Thread struct {
	Review   models.Review    `json:"review"`
	Comments []models.Comment `json:"comments"`
}

// CommentCount returns the thread length
func (t *Thread) CommentCount() int {
	return len(t.Comments)
}

// New creates a feed backed by the gateway
func New(gw *gateway.Client, logger zerolog.Logger) *Feed {
	return &Feed{gw: gw, logger: logger, threads: make(map[int64]*Thread)}
}

// List fetches the landing-grid reviews. Server order is
// authoritative; no client-side re-sort.
func (f *Feed) List(ctx context.Context) ([]models.Review, error) {
	reviews, err := f.gw.Reviews(ctx)
	if err != nil {
		f.logger.Error().Err(err).Msg("Review list load failed")
		return nil, err
	}
	return reviews, nil
}

// Load fetches a review and its comment thread concurrently. Both
// calls must succeed before the thread is committed; partial success
// is total failure and renders as not-found. The continuation checks
// the context before committing, so a navigation that cancelled the
// load never writes stale state.
func (f *Feed) Load(ctx context.Context, reviewID int64) (*Thread, error) {
	var (
		review   *models.Review
		comments []models.Comment
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		r, err := f.gw.ReviewByID(gctx, reviewID)
		if err != nil {
			return err
		}
		review = r
		return nil
	})
	g.Go(func() error {
		c, err := f.gw.CommentsByReview(gctx, reviewID)
		if err != nil {
			return err
		}
		comments = c
		return nil
	})

	if err := g.Wait(); err != nil {
		f.logger.Error().Err(err).Int64("reviewId", reviewID).Msg("Review detail load failed")
		return nil, apperrors.NewRemoteError(0, nil, apperrors.ErrReviewNotFound)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	thread := &Thread{Review: *review, Comments: comments}

	f.mu.Lock()
	f.threads[reviewID] = thread
	f.mu.Unlock()

	return thread, nil
}

// Thread returns the cached thread for a review id, if loaded
func (f *Feed) Thread(reviewID int64) (*Thread, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	t, ok := f.threads[reviewID]
	return t, ok
}

// PostComment posts a comment as the given session. Anonymous sessions
// are rejected before any network call. On success the new comment is
// optimistically prepended to the cached thread with a client
// timestamp and the session's display identity; authoritative values
// arrive on the next Load.
func (f *Feed) PostComment(ctx context.Context, sess models.Session, reviewID int64, content string) (*models.Comment, error) {
	if !sess.IsLoggedIn {
		return nil, apperrors.ErrLoginRequired
	}
	if !validation.ValidComment(content) {
		return nil, apperrors.NewValidationError("content", "Comment content is required")
	}

	created, err := f.gw.CreateComment(ctx, gateway.CommentInput{
		UserID:   sess.ID,
		ReviewID: reviewID,
		Content:  content,
	})
	if err != nil {
		f.logger.Error().Err(err).Int64("reviewId", reviewID).Msg("Comment post failed")
		return nil, err
	}

	optimistic := *created
	optimistic.Date = models.NewDateTime(time.Now())
	optimistic.User = &models.CommentAuthor{
		Username: sess.Name,
		Photo:    sess.Photo,
	}

	f.mu.Lock()
	if thread, ok := f.threads[reviewID]; ok {
		thread.Comments = append([]models.Comment{optimistic}, thread.Comments...)
	}
	f.mu.Unlock()

	return &optimistic, nil
}
