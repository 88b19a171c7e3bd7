package handlers

import (
	"errors"
	"net/http"

	"guestbook/internal/logging"
	"guestbook/internal/middleware"
	"guestbook/internal/services"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	Base
	auth *services.AuthService
}

func NewAuthHandler(base Base, auth *services.AuthService) *AuthHandler {
	return &AuthHandler{Base: base, auth: auth}
}

type registerForm struct {
	Login           string `form:"login"`
	Password        string `form:"password"`
	ConfirmPassword string `form:"confirm_password"`
	CSRFToken       string `form:"csrf_token"`
}

type loginForm struct {
	Login     string `form:"login"`
	Password  string `form:"password"`
	CSRFToken string `form:"csrf_token"`
}

func (h *AuthHandler) ShowRegister(c *gin.Context) {
	Render(c, http.StatusOK, "auth/register.html", gin.H{"Title": "Register", "Login": ""})
}

func (h *AuthHandler) Register(c *gin.Context) {
	var form registerForm
	if err := c.ShouldBind(&form); err != nil {
		Render(c, http.StatusBadRequest, "auth/register.html", gin.H{"Title": "Register", "Login": "", "Error": msgBadForm})
		return
	}

	// Passwords are never echoed back.
	data := gin.H{"Title": "Register", "Login": form.Login}

	if !h.validCSRF(c, form.CSRFToken) {
		data["Error"] = msgCSRF
		Render(c, http.StatusForbidden, "auth/register.html", data)
		return
	}

	_, err := h.auth.Register(c.Request.Context(), services.Registration{
		Login:           form.Login,
		Password:        form.Password,
		ConfirmPassword: form.ConfirmPassword,
	})
	if err != nil {
		code, msg := h.failure(c, "handlers.auth.register", err)
		data["Error"] = msg
		Render(c, code, "auth/register.html", data)
		return
	}

	h.Metrics.Registrations.Inc()
	h.refreshTo(c, "/login")
	data["Login"] = ""
	data["Success"] = msgRegistered
	Render(c, http.StatusOK, "auth/register.html", data)
}

func (h *AuthHandler) ShowLogin(c *gin.Context) {
	Render(c, http.StatusOK, "auth/login.html", gin.H{"Title": "Log in", "Login": ""})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		Render(c, http.StatusBadRequest, "auth/login.html", gin.H{"Title": "Log in", "Login": "", "Error": msgBadForm})
		return
	}

	data := gin.H{"Title": "Log in", "Login": form.Login}

	if !h.validCSRF(c, form.CSRFToken) {
		data["Error"] = msgCSRF
		Render(c, http.StatusForbidden, "auth/login.html", data)
		return
	}

	user, err := h.auth.Authenticate(c.Request.Context(), form.Login, form.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			h.Metrics.LoginFailed()
		}
		code, msg := h.failure(c, "handlers.auth.login", err)
		data["Error"] = msg
		Render(c, code, "auth/login.html", data)
		return
	}

	if err := middleware.SessionFrom(c).SignIn(middleware.Identity{ID: user.ID, Login: user.Login}); err != nil {
		data["Error"] = h.unexpected(c, "handlers.auth.login", err, msgUnexpected)
		Render(c, http.StatusInternalServerError, "auth/login.html", data)
		return
	}

	h.Metrics.LoginSucceeded()
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := middleware.SessionFrom(c).Logout(); err != nil {
		middleware.Logger(c).Error("failed to clear session", logging.Err(err))
	}
	c.Redirect(http.StatusSeeOther, "/")
}
