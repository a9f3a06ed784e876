package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/emre/hardwarehub/internal/app/models"
	"github.com/emre/hardwarehub/internal/pkg/apperrors"
)

// Client is the remote data gateway: the sole mediator of entity reads
// and writes against the review-community backend. It owns no entity
// state; it executes requests and surfaces success or failure.
type Client struct {
	baseURL string
	http    *http.Client
	logger  zerolog.Logger
}

// NewClient creates a gateway client for the given backend base URL
func NewClient(baseURL string, timeout time.Duration, logger zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// ProfileUpload is the multipart payload for creating or updating a
// profile. Photo is optional; TagIDs is the selected interest set.
type ProfileUpload struct {
	Username       string
	Email          string
	Password       string
	RepeatPassword string
	ProfileTypeID  int64
	TagIDs         []int64
	PhotoName      string
	Photo          io.Reader
}

// CommentInput is the JSON payload for posting a comment. UserID must
// come from the session, never from user-editable input.
type CommentInput struct {
	UserID   int64  `json:"userId"`
	ReviewID int64  `json:"reviewId"`
	Content  string `json:"content"`
}

// Profiles lists every profile in the directory
func (c *Client) Profiles(ctx context.Context) ([]models.Profile, error) {
	var out []models.Profile
	if err := c.getJSON(ctx, "/profiles", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ProfileByID fetches a single profile
func (c *Client) ProfileByID(ctx context.Context, id int64) (*models.Profile, error) {
	var out models.Profile
	if err := c.getJSON(ctx, "/profiles/"+strconv.FormatInt(id, 10), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateProfile registers a new profile via multipart form upload
func (c *Client) CreateProfile(ctx context.Context, upload ProfileUpload) (*models.Profile, error) {
	return c.sendProfile(ctx, http.MethodPost, "/profiles", upload)
}

// UpdateProfile replaces an existing profile via multipart form upload
func (c *Client) UpdateProfile(ctx context.Context, id int64, upload ProfileUpload) (*models.Profile, error) {
	return c.sendProfile(ctx, http.MethodPut, "/profiles/"+strconv.FormatInt(id, 10), upload)
}

// DeleteProfile removes a profile by id. Comments posted by the
// profile keep their back-reference; the backend defines no cascade.
func (c *Client) DeleteProfile(ctx context.Context, id int64) error {
	req, err := c.newRequest(ctx, http.MethodDelete, "/profiles/"+strconv.FormatInt(id, 10), nil)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}

// Tags lists the selectable interest tags
func (c *Client) Tags(ctx context.Context) ([]models.Tag, error) {
	var out []models.Tag
	if err := c.getJSON(ctx, "/tag", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Reviews lists reviews for the landing feed, without comments, in
// server order.
func (c *Client) Reviews(ctx context.Context) ([]models.Review, error) {
	var out []models.Review
	if err := c.getJSON(ctx, "/review", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ReviewByID fetches a single review
func (c *Client) ReviewByID(ctx context.Context, id int64) (*models.Review, error) {
	var out models.Review
	if err := c.getJSON(ctx, "/review/"+strconv.FormatInt(id, 10), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CommentsByReview fetches the comment thread of a review
func (c *Client) CommentsByReview(ctx context.Context, reviewID int64) ([]models.Comment, error) {
	var out []models.Comment
	if err := c.getJSON(ctx, "/comment/review/"+strconv.FormatInt(reviewID, 10), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateComment posts a new comment and returns the server-stamped
// record.
func (c *Client) CreateComment(ctx context.Context, input CommentInput) (*models.Comment, error) {
	body, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("failed to encode comment: %w", err)
	}
	req, err := c.newRequest(ctx, http.MethodPost, "/comment", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	var out models.Comment
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// sendProfile encodes a ProfileUpload as multipart form data and sends it
func (c *Client) sendProfile(ctx context.Context, method, path string, upload ProfileUpload) (*models.Profile, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	fields := map[string]string{
		"username":      upload.Username,
		"email":         upload.Email,
		"password":      upload.Password,
		"rpPassword":    upload.RepeatPassword,
		"profileTypeId": strconv.FormatInt(upload.ProfileTypeID, 10),
	}
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return nil, fmt.Errorf("failed to write form field %s: %w", name, err)
		}
	}
	for _, tagID := range upload.TagIDs {
		if err := writer.WriteField("tagIds", strconv.FormatInt(tagID, 10)); err != nil {
			return nil, fmt.Errorf("failed to write tag field: %w", err)
		}
	}
	if upload.Photo != nil {
		name := upload.PhotoName
		if name == "" {
			name = "photo"
		}
		part, err := writer.CreateFormFile("photo", name)
		if err != nil {
			return nil, fmt.Errorf("failed to create photo part: %w", err)
		}
		if _, err := io.Copy(part, upload.Photo); err != nil {
			return nil, fmt.Errorf("failed to copy photo: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize form: %w", err)
	}

	req, err := c.newRequest(ctx, method, path, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var out models.Profile
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// getJSON issues a GET and decodes the response body into out
func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

// newRequest builds a request with a correlation id attached
func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("X-Request-ID", uuid.NewString())
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// do executes the request, mapping failures into the error taxonomy.
// There is no retry policy: failures surface once and the caller
// decides whether to resubmit.
func (c *Client) do(req *http.Request, out interface{}) error {
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error().Err(err).
			Str("method", req.Method).
			Str("path", req.URL.Path).
			Str("requestId", req.Header.Get("X-Request-ID")).
			Msg("Backend request failed")
		return fmt.Errorf("%w: %v", apperrors.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	c.logger.Debug().
		Str("method", req.Method).
		Str("path", req.URL.Path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Str("requestId", req.Header.Get("X-Request-ID")).
		Msg("Backend request completed")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.failureFromResponse(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: malformed response: %v", apperrors.ErrUnavailable, err)
	}
	return nil
}

// errorPayload is the backend's error shape: message may be a single
// string or a list of validation messages.
type errorPayload struct {
	Message json.RawMessage `json:"message"`
	Error   string          `json:"error"`
}

// failureFromResponse turns a non-2xx response into a RemoteError
func (c *Client) failureFromResponse(resp *http.Response) error {
	sentinel := apperrors.ErrUnavailable
	switch resp.StatusCode {
	case http.StatusNotFound:
		sentinel = apperrors.ErrNotFound
	case http.StatusBadRequest, http.StatusConflict, http.StatusUnprocessableEntity:
		sentinel = apperrors.ErrValidationFailed
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	return apperrors.NewRemoteError(resp.StatusCode, parseMessages(body), sentinel)
}

// parseMessages extracts user-facing messages from an error payload,
// in precedence order: message list, message string, error string.
func parseMessages(body []byte) []string {
	var payload errorPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil
	}

	if len(payload.Message) > 0 {
		var many []string
		if err := json.Unmarshal(payload.Message, &many); err == nil {
			return many
		}
		var one string
		if err := json.Unmarshal(payload.Message, &one); err == nil && one != "" {
			return []string{one}
		}
	}
	if payload.Error != "" {
		return []string{payload.Error}
	}
	return nil
}
