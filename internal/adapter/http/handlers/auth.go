package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/DeTr1ll/Task-Manager/internal/adapter/http/dto"
	"github.com/DeTr1ll/Task-Manager/internal/adapter/http/middleware"
	"github.com/DeTr1ll/Task-Manager/internal/core/domain"
	"github.com/DeTr1ll/Task-Manager/internal/core/ports"
	"github.com/DeTr1ll/Task-Manager/pkg/apierrors"
)

const sessionCookieMaxAge = 24 * 60 * 60

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *gin.Context) {
	lang := middleware.GetLang(c)

	var req dto.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidCredentials, lang),
		)
		return
	}

	user, err := h.authService.Register(c.Request.Context(), domain.RegisterInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUsernameTaken) {
			c.JSON(
				http.StatusConflict,
				apierrors.CreateError(http.StatusConflict, apierrors.MsgUsernameTaken, lang),
			)
			return
		}
		if errors.Is(err, domain.ErrInvalidCredentials) {
			c.JSON(
				http.StatusBadRequest,
				apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidCredentials, lang),
			)
			return
		}

		zap.L().Error("failed to register user", zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailRegister, lang),
		)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": user.ID, "username": user.Username})
}

// LoginPage answers the redirect issued for anonymous browser requests.
// There is no HTML form to render, so it acknowledges with the preserved
// next URL for the client to replay after POST /login.
func (h *AuthHandler) LoginPage(c *gin.Context) {
	resp := gin.H{"message": "login required"}
	if next := c.Query("next"); next != "" && next[0] == '/' {
		resp["next"] = next
	}
	c.JSON(http.StatusOK, resp)
}

// Login verifies credentials, sets the session cookie and either follows the
// preserved next URL (browser flow) or returns the token (API flow).
func (h *AuthHandler) Login(c *gin.Context) {
	lang := middleware.GetLang(c)

	var req dto.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidCredentials, lang),
		)
		return
	}

	token, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			c.JSON(
				http.StatusUnauthorized,
				apierrors.CreateError(http.StatusUnauthorized, apierrors.MsgInvalidCredentials, lang),
			)
			return
		}

		zap.L().Error("failed to log user in", zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgInvalidCredentials, lang),
		)
		return
	}

	c.SetCookie(middleware.SessionCookie, token, sessionCookieMaxAge, "/", "", false, true)

	if next := c.Query("next"); next != "" && next[0] == '/' {
		c.Redirect(http.StatusFound, next)
		return
	}
	c.JSON(http.StatusOK, dto.LoginResponse{Token: token})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/login")
}
