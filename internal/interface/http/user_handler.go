package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	userapp "github.com/helliomastic/Movie-Final-Recom/internal/application"
	"github.com/helliomastic/Movie-Final-Recom/internal/domain/repository"
	"github.com/helliomastic/Movie-Final-Recom/internal/interface/middleware"
	"github.com/helliomastic/Movie-Final-Recom/pkg/helpers"
	"github.com/helliomastic/Movie-Final-Recom/pkg/response"
	"github.com/helliomastic/Movie-Final-Recom/pkg/validation"
)

type UserHandler struct {
	Svc     *userapp.UserService
	JWT     *helpers.JWTManager
	Logger  *logrus.Logger
	Cookies *helpers.Manager
}

func NewUserHandler(svc *userapp.UserService, jwt *helpers.JWTManager, logger *logrus.Logger, cookieDomain string, cookieSecure bool) *UserHandler {
	return &UserHandler{Svc: svc, JWT: jwt, Logger: logger, Cookies: helpers.NewCookie(cookieDomain, cookieSecure)}
}

// Forms are standard browser form posts, bound from form-encoded bodies.
type registerRequest struct {
	Name     string `form:"name" binding:"required"`
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required,pwd"`
}

type loginRequest struct {
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required"`
}

// Home GET / landing payload
func (h *UserHandler) Home(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"page": "home"}, "welcome", nil)
}

// RegisterPage GET /register
func (h *UserHandler) RegisterPage(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"page": "register"}, "registration form", nil)
}

// Register POST /register
func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	_, err := h.Svc.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if err == repository.ErrDuplicateEmail {
			response.Error[any](c, http.StatusConflict, "email address already exists", nil)
			return
		}
		if h.Logger != nil {
			h.Logger.WithError(err).Error("register failed")
		}
		response.Error[any](c, http.StatusInternalServerError, "registration failed", nil)
		return
	}

	c.Redirect(http.StatusSeeOther, "/login")
}

// LoginPage GET /login
func (h *UserHandler) LoginPage(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"page": "login"}, "login form", nil)
}

// Login POST /login
func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	// One generic message for unknown email and wrong password alike.
	_, token, exp, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.Error[any](c, http.StatusUnauthorized, "invalid email or password", nil)
		return
	}

	h.Cookies.SetSession(c, token, exp)
	c.Redirect(http.StatusSeeOther, "/")
}

// Logout GET /logout works with or without a live session.
func (h *UserHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(helpers.SessionCookieName); err == nil && token != "" {
		if claims, err := h.JWT.ParseAccessToken(token); err == nil {
			if err := h.Svc.Logout(c.Request.Context(), claims.UserID); err != nil && h.Logger != nil {
				h.Logger.WithError(err).WithField("user_id", claims.UserID).Warn("logout session delete failed")
			}
		}
	}
	h.Cookies.Clear(c)
	c.Redirect(http.StatusFound, "/login")
}

// Dashboard GET /dashboard (session required; middleware redirects otherwise)
func (h *UserHandler) Dashboard(c *gin.Context) {
	uid := c.GetInt64(middleware.CtxUserIDKey)
	u, err := h.Svc.GetProfile(uid)
	if err != nil {
		response.Error[any](c, http.StatusNotFound, "user not found", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"id":         u.ID,
		"name":       u.Name,
		"email":      u.Email,
		"created_at": u.CreatedAt,
	}, "dashboard", nil)
}
