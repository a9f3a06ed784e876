package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/emre/hardwarehub/internal/app/feed"
	"github.com/emre/hardwarehub/internal/app/models/dto"
	"github.com/emre/hardwarehub/internal/app/session"
	"github.com/emre/hardwarehub/internal/middleware"
)

// ReviewController exposes the review feed, detail threads and comment
// posting.
type ReviewController struct {
	feed     *feed.Feed
	sessions session.Reader
	logger   zerolog.Logger
}

// NewReviewController creates a new review controller
func NewReviewController(f *feed.Feed, sessions session.Reader, logger zerolog.Logger) *ReviewController {
	return &ReviewController{feed: f, sessions: sessions, logger: logger}
}

// commentRequest is the JSON body of a comment post. The author id is
// never read from the request; it comes from the session alone.
type commentRequest struct {
	Content string `json:"content"`
}

// ListReviews returns the landing-grid reviews in server order
func (c *ReviewController) ListReviews(ctx *gin.Context) {
	reviews, err := c.feed.List(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(reviews))
}

// GetReview returns one review with its comment thread. A thread whose
// review or comments failed to load renders as not-found, never as a
// partially populated review.
func (c *ReviewController) GetReview(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.ErrorCodeValidationFailed, "Invalid review id"))
		return
	}

	thread, err := c.feed.Load(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(thread))
}

// PostComment appends a comment to a review thread as the current
// session identity.
func (c *ReviewController) PostComment(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.ErrorCodeValidationFailed, "Invalid review id"))
		return
	}

	var req commentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.ErrorCodeValidationFailed, "Malformed comment request"))
		return
	}

	comment, err := c.feed.PostComment(ctx.Request.Context(), c.sessions.Current(), id, req.Content)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(comment))
}
