package handlers

import (
	"net/http"

	"guestbook/internal/middleware"
	"guestbook/internal/models"
	"guestbook/internal/services"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	Base
	comments *services.CommentService
}

func NewCommentHandler(base Base, comments *services.CommentService) *CommentHandler {
	return &CommentHandler{Base: base, comments: comments}
}

type commentForm struct {
	Comment   string `form:"comment"`
	CSRFToken string `form:"csrf_token"`
}

// List renders the feed. A read failure still renders the page, empty.
func (h *CommentHandler) List(c *gin.Context) {
	data := gin.H{"Title": "Guestbook"}

	entries, err := h.comments.Feed(c.Request.Context())
	if err != nil {
		data["Error"] = h.unexpected(c, "handlers.comment.list", err, msgFeedUnavailable)
		entries = []models.FeedEntry{}
	}

	data["Comments"] = entries
	data["Count"] = len(entries)
	Render(c, http.StatusOK, "comment/list.html", data)
}

func (h *CommentHandler) ShowCreate(c *gin.Context) {
	Render(c, http.StatusOK, "comment/new.html", gin.H{
		"Title":     "New comment",
		"Comment":   "",
		"MinLength": services.MinCommentLength,
		"MaxLength": services.MaxCommentLength,
	})
}

func (h *CommentHandler) Create(c *gin.Context) {
	user := middleware.MustIdentity(c)

	var form commentForm
	data := gin.H{
		"Title":     "New comment",
		"MinLength": services.MinCommentLength,
		"MaxLength": services.MaxCommentLength,
	}
	if err := c.ShouldBind(&form); err != nil {
		data["Comment"] = ""
		data["Error"] = msgBadForm
		Render(c, http.StatusBadRequest, "comment/new.html", data)
		return
	}
	data["Comment"] = form.Comment

	if !h.validCSRF(c, form.CSRFToken) {
		data["Error"] = msgCSRF
		Render(c, http.StatusForbidden, "comment/new.html", data)
		return
	}

	if _, err := h.comments.Post(c.Request.Context(), user.ID, form.Comment); err != nil {
		code, msg := h.failure(c, "handlers.comment.create", err)
		data["Error"] = msg
		Render(c, code, "comment/new.html", data)
		return
	}

	h.Metrics.Comments.Inc()
	h.refreshTo(c, "/comments")
	data["Comment"] = ""
	data["Success"] = msgCommentAdded
	Render(c, http.StatusOK, "comment/new.html", data)
}
