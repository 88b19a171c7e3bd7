package handlers

import (
	"net/http"

	"guestbook/internal/middleware"
	"guestbook/internal/services"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	Base
	auth     *services.AuthService
	comments *services.CommentService
}

func NewUserHandler(base Base, auth *services.AuthService, comments *services.CommentService) *UserHandler {
	return &UserHandler{Base: base, auth: auth, comments: comments}
}

type profileForm struct {
	Login           string `form:"login"`
	Password        string `form:"password"`
	ConfirmPassword string `form:"confirm_password"`
	CSRFToken       string `form:"csrf_token"`
}

// Profile - own profile form and stats
func (h *UserHandler) Profile(c *gin.Context) {
	user := middleware.MustIdentity(c)

	data := gin.H{"Title": "My profile", "Login": user.Login}
	h.addStats(c, data, user.ID)
	Render(c, http.StatusOK, "user/profile.html", data)
}

// UpdateProfile - change login and, optionally, password
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	user := middleware.MustIdentity(c)

	var form profileForm
	code := http.StatusOK
	data := gin.H{"Title": "My profile", "Login": user.Login}

	switch {
	case c.ShouldBind(&form) != nil:
		code = http.StatusBadRequest
		data["Error"] = msgBadForm
	case !h.validCSRF(c, form.CSRFToken):
		code = http.StatusForbidden
		data["Login"] = form.Login
		data["Error"] = msgCSRF
	default:
		data["Login"] = form.Login
		login, err := h.auth.UpdateProfile(c.Request.Context(), user.ID, services.ProfileUpdate{
			Login:           form.Login,
			Password:        form.Password,
			ConfirmPassword: form.ConfirmPassword,
		})
		if err != nil {
			code, data["Error"] = h.failure(c, "handlers.user.update_profile", err)
			break
		}
		if err := middleware.SessionFrom(c).Rename(login); err != nil {
			code = http.StatusInternalServerError
			data["Error"] = h.unexpected(c, "handlers.user.update_profile", err, msgUnexpected)
			break
		}
		data["Login"] = login
		data["Success"] = msgProfileUpdated
	}

	h.addStats(c, data, user.ID)
	Render(c, code, "user/profile.html", data)
}

// addStats fills the comment count, or a notice when it cannot be read.
func (h *UserHandler) addStats(c *gin.Context, data gin.H, userID uint) {
	n, err := h.comments.CountByUser(c.Request.Context(), userID)
	if err != nil {
		data["StatsError"] = h.unexpected(c, "handlers.user.stats", err, msgStatsUnavailable)
		return
	}
	data["CommentCount"] = n
}
