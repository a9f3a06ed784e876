package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/emre/hardwarehub/internal/app/editor"
	"github.com/emre/hardwarehub/internal/app/models/dto"
	"github.com/emre/hardwarehub/internal/app/session"
	"github.com/emre/hardwarehub/internal/middleware"
)

// AuthController exposes session and registration operations
type AuthController struct {
	sessions *session.Store
	editor   *editor.Editor
	logger   zerolog.Logger
}

// NewAuthController creates a new auth controller
func NewAuthController(sessions *session.Store, ed *editor.Editor, logger zerolog.Logger) *AuthController {
	return &AuthController{sessions: sessions, editor: ed, logger: logger}
}

// loginRequest is the JSON body of a login attempt
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// GetSession returns the current session state
func (c *AuthController) GetSession(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(c.sessions.Current()))
}

// Login authenticates a credential pair and establishes the session
func (c *AuthController) Login(ctx *gin.Context) {
	var req loginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.ErrorCodeValidationFailed, "Malformed login request"))
		return
	}

	c.editor.Fill(editor.Form{Username: req.Username, Password: req.Password})
	sess, err := c.editor.SubmitLogin(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(sess))
}

// Logout resets the session to the unauthenticated default
func (c *AuthController) Logout(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(c.sessions.Logout()))
}

// Register creates a new member profile from a multipart form and logs
// the new identity in.
func (c *AuthController) Register(ctx *gin.Context) {
	form, cleanup, err := bindProfileForm(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.ErrorCodeValidationFailed, "Malformed registration form"))
		return
	}
	defer cleanup()

	c.editor.Fill(form)
	sess, err := c.editor.SubmitRegister(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(sess))
}

// Tags lists the selectable interest tags for the registration form
func (c *AuthController) Tags(ctx *gin.Context) {
	tags, err := c.editor.LoadTags(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(tags))
}

// bindProfileForm maps a multipart request onto the editor form. The
// returned cleanup closes the uploaded photo, if any.
func bindProfileForm(ctx *gin.Context) (editor.Form, func(), error) {
	form := editor.Form{
		Username:       ctx.PostForm("username"),
		Email:          ctx.PostForm("email"),
		Password:       ctx.PostForm("password"),
		RepeatPassword: ctx.PostForm("rpPassword"),
	}

	if raw := ctx.PostForm("profileTypeId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return form, func() {}, err
		}
		form.ProfileTypeID = id
	}

	for _, raw := range ctx.PostFormArray("tagIds") {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return form, func() {}, err
		}
		form.TagIDs = append(form.TagIDs, id)
	}

	cleanup := func() {}
	if header, err := ctx.FormFile("photo"); err == nil && header != nil {
		file, err := header.Open()
		if err != nil {
			return form, cleanup, err
		}
		form.PhotoName = header.Filename
		form.Photo = file
		cleanup = func() { file.Close() }
	}

	return form, cleanup, nil
}
