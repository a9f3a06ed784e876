package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/emre/hardwarehub/internal/app/directory"
	"github.com/emre/hardwarehub/internal/app/editor"
	"github.com/emre/hardwarehub/internal/app/models"
	"github.com/emre/hardwarehub/internal/app/models/dto"
	"github.com/emre/hardwarehub/internal/middleware"
)

// AdminController exposes the profile directory management workflow
type AdminController struct {
	dir    *directory.Directory
	editor *editor.Editor
	logger zerolog.Logger
}

// NewAdminController creates a new admin controller
func NewAdminController(dir *directory.Directory, ed *editor.Editor, logger zerolog.Logger) *AdminController {
	return &AdminController{dir: dir, editor: ed, logger: logger}
}

// ListProfiles refreshes and returns the profile directory
func (c *AdminController) ListProfiles(ctx *gin.Context) {
	if err := c.dir.Refresh(ctx.Request.Context()); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(c.dir.List()))
}

// CreateProfile creates a profile from a multipart form, any type
// allowed.
func (c *AdminController) CreateProfile(ctx *gin.Context) {
	form, cleanup, err := bindProfileForm(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.ErrorCodeValidationFailed, "Malformed profile form"))
		return
	}
	defer cleanup()

	c.editor.Fill(form)
	created, err := c.editor.SubmitAdminSave(ctx.Request.Context(), nil)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(created))
}

// UpdateProfile edits an existing profile from a multipart form
func (c *AdminController) UpdateProfile(ctx *gin.Context) {
	existing, ok := c.profileFromParam(ctx)
	if !ok {
		return
	}

	form, cleanup, err := bindProfileForm(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.ErrorCodeValidationFailed, "Malformed profile form"))
		return
	}
	defer cleanup()

	c.editor.Fill(form)
	updated, err := c.editor.SubmitAdminSave(ctx.Request.Context(), existing)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(updated))
}

// RequestDelete arms the delete confirmation for a profile
func (c *AdminController) RequestDelete(ctx *gin.Context) {
	existing, ok := c.profileFromParam(ctx)
	if !ok {
		return
	}

	c.dir.RequestDelete(existing.ID)
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"pendingDelete": existing.ID}))
}

// CancelDelete disarms a pending delete confirmation
func (c *AdminController) CancelDelete(ctx *gin.Context) {
	c.dir.CancelDelete()
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"pendingDelete": int64(0)}))
}

// ConfirmDelete issues the destructive call for the armed profile
func (c *AdminController) ConfirmDelete(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.ErrorCodeValidationFailed, "Invalid profile id"))
		return
	}

	if err := c.dir.ConfirmDelete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(c.dir.List()))
}

// profileFromParam resolves the :id route param against the directory
func (c *AdminController) profileFromParam(ctx *gin.Context) (*models.Profile, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.ErrorCodeValidationFailed, "Invalid profile id"))
		return nil, false
	}

	for _, p := range c.dir.List() {
		if p.ID == id {
			profile := p
			return &profile, true
		}
	}

	ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(dto.ErrorCodeResourceNotFound, "Profile not found"))
	return nil, false
}
