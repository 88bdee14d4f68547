package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/copier"
	"github.com/prepwise/prepwise/config"
	"github.com/prepwise/prepwise/internal/dto"
	"github.com/prepwise/prepwise/internal/middleware"
	"github.com/prepwise/prepwise/internal/service"
	"github.com/rs/zerolog/log"
)

type AuthController struct {
	authService service.AuthService
	cfg         *config.Config
}

func NewAuthController(authService service.AuthService, cfg *config.Config) *AuthController {
	return &AuthController{authService: authService, cfg: cfg}
}

// SignUp godoc
// @Summary Create an account
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body dto.SignUpRequest true "Name, email and password"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /auth/sign-up [post]
func (c *AuthController) SignUp(ctx *gin.Context) {
	var req dto.SignUpRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	resp, err := c.authService.SignUp(req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// SignIn godoc
// @Summary Sign in and receive a session cookie
// @Description Issues an opaque session token, valid for 7 days, as an HTTP-only cookie.
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body dto.SignInRequest true "Email and password"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /auth/sign-in [post]
func (c *AuthController) SignIn(ctx *gin.Context) {
	var req dto.SignInRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	resp, token, err := c.authService.SignIn(req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(
		middleware.SessionCookieName,
		token,
		int(service.SessionDuration.Seconds()),
		"/",
		"",
		c.cfg.Server.Env == "production",
		true,
	)
	ctx.JSON(http.StatusOK, resp)
}

// SignOut godoc
// @Summary Sign out and clear the session cookie
// @Tags Auth
// @Produce json
// @Success 200 {object} dto.AuthResponse
// @Router /auth/sign-out [post]
func (c *AuthController) SignOut(ctx *gin.Context) {
	token, err := ctx.Cookie(middleware.SessionCookieName)
	if err != nil {
		token = ""
	}

	resp, err := c.authService.SignOut(token)
	if err != nil {
		log.Warn().Err(err).Msg("SignOut: service error")
		respondError(ctx, err)
		return
	}

	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(middleware.SessionCookieName, "", -1, "/", "", c.cfg.Server.Env == "production", true)
	ctx.JSON(http.StatusOK, resp)
}

// Me godoc
// @Summary Get the authenticated user
// @Tags Auth
// @Produce json
// @Success 200 {object} dto.AuthResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	user := middleware.CurrentUser(ctx)
	if user == nil {
		respondError(ctx, service.ErrAuthRequired)
		return
	}

	var userResp dto.UserResponse
	if err := copier.Copy(&userResp, user); err != nil {
		log.Error().Err(err).Str("userID", user.ID).Msg("Me: failed to copy user to DTO")
		respondError(ctx, service.ErrPersistence)
		return
	}
	ctx.JSON(http.StatusOK, dto.AuthResponse{Success: true, Message: "OK", User: &userResp})
}
