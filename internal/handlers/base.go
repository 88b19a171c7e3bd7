package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"guestbook/internal/logging"
	"guestbook/internal/metrics"
	"guestbook/internal/middleware"
	"guestbook/internal/services"

	"github.com/gin-gonic/gin"
)

const (
	msgCSRF              = "Invalid request (missing or invalid CSRF token)."
	msgBadForm           = "Invalid request."
	msgUnexpected        = "Something went wrong, please try again later."
	msgFeedUnavailable   = "Unable to load comments."
	msgStatsUnavailable  = "Statistics unavailable."
	msgRegistered        = "Registration successful! You can now log in."
	msgCommentAdded      = "Your comment has been added!"
	msgProfileUpdated    = "Profile updated successfully!"
	msgPasswordTooShort  = "Password must be at least 6 characters long."
	msgCommentTooShort   = "Comment must be at least 10 characters long."
	msgCommentTooLong    = "Comment cannot exceed 1000 characters."
	msgInvalidCredential = "Incorrect username or password."
)

// Base carries what every page handler shares.
type Base struct {
	Metrics *metrics.Metrics
	// ShowErrors appends raw error detail to user-facing failures. Never set
	// in production.
	ShowErrors bool
	// RedirectDelay is how long a success page stays up before moving on.
	RedirectDelay time.Duration
}

// Render helper to inject the current user, CSRF token and path
func Render(c *gin.Context, code int, name string, obj gin.H) {
	if obj == nil {
		obj = gin.H{}
	}

	sess := middleware.SessionFrom(c)
	if user, ok := sess.CurrentUser(); ok {
		obj["CurrentUser"] = user
	}

	// Must run before the body is written: a new token saves the session.
	token, err := sess.CSRFToken()
	if err != nil {
		middleware.Logger(c).Error("failed to issue csrf token", logging.Err(err))
	}
	obj["CSRFToken"] = token
	obj["CSRFField"] = middleware.CSRFField
	obj["CurrentPath"] = c.Request.URL.Path

	c.HTML(code, name, obj)
}

// Error helper
func RenderError(c *gin.Context, code int, message string) {
	Render(c, code, "error.html", gin.H{"Title": http.StatusText(code), "Error": message})
}

// validCSRF checks the submitted token against the session.
func (b Base) validCSRF(c *gin.Context, token string) bool {
	if middleware.SessionFrom(c).ValidCSRF(token) {
		return true
	}
	b.Metrics.CSRFRejections.Inc()
	middleware.Logger(c).Warn("csrf token rejected", slog.String("path", c.Request.URL.Path))
	return false
}

// failure maps a service error to a status and a user-safe message.
// Unexpected errors are logged.
func (b Base) failure(c *gin.Context, op string, err error) (int, string) {
	switch {
	case errors.Is(err, services.ErrFieldsRequired):
		return http.StatusBadRequest, "All fields are required."
	case errors.Is(err, services.ErrLoginRequired):
		return http.StatusBadRequest, "Username is required."
	case errors.Is(err, services.ErrPasswordMismatch):
		return http.StatusBadRequest, "Passwords do not match."
	case errors.Is(err, services.ErrPasswordTooShort):
		return http.StatusBadRequest, msgPasswordTooShort
	case errors.Is(err, services.ErrPasswordTooLong):
		return http.StatusBadRequest, "Password must be at most 72 bytes long."
	case errors.Is(err, services.ErrLoginTaken):
		return http.StatusConflict, "This username is already taken."
	case errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized, msgInvalidCredential
	case errors.Is(err, services.ErrCommentEmpty):
		return http.StatusBadRequest, "Comment cannot be empty."
	case errors.Is(err, services.ErrCommentTooShort):
		return http.StatusBadRequest, msgCommentTooShort
	case errors.Is(err, services.ErrCommentTooLong):
		return http.StatusBadRequest, msgCommentTooLong
	}
	return http.StatusInternalServerError, b.unexpected(c, op, err, msgUnexpected)
}

// unexpected logs err and returns message, with the detail appended when
// ShowErrors is set.
func (b Base) unexpected(c *gin.Context, op string, err error, message string) string {
	middleware.Logger(c).Error("request failed", slog.String("op", op), logging.Err(err))
	if b.ShowErrors {
		return fmt.Sprintf("%s (%v)", message, err)
	}
	return message
}

// refreshTo asks the browser to move to path after RedirectDelay, leaving
// the success message on screen meanwhile.
func (b Base) refreshTo(c *gin.Context, path string) {
	c.Header("Refresh", fmt.Sprintf("%d; url=%s", int(b.RedirectDelay.Seconds()), path))
}
