package services

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"guestbook/internal/models"
)

const (
	MinCommentLength = 10
	MaxCommentLength = 1000
)

type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	Feed(ctx context.Context) ([]models.FeedEntry, error)
	CountByUser(ctx context.Context, userID uint) (int64, error)
}

type CommentService struct {
	comments CommentRepository
	now      func() time.Time
}

func NewCommentService(comments CommentRepository) *CommentService {
	return &CommentService{comments: comments, now: time.Now}
}

// ValidateComment trims body and checks its length in characters.
func ValidateComment(body string) (string, error) {
	body = strings.TrimSpace(body)
	n := utf8.RuneCountInString(body)
	switch {
	case n == 0:
		return "", ErrCommentEmpty
	case n < MinCommentLength:
		return "", ErrCommentTooShort
	case n > MaxCommentLength:
		return "", ErrCommentTooLong
	}
	return body, nil
}

// Post stores a comment by userID stamped with the server clock, in UTC.
func (s *CommentService) Post(ctx context.Context, userID uint, body string) (*models.Comment, error) {
	text, err := ValidateComment(body)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Body:   text,
		UserID: userID,
		Date:   s.now().UTC(),
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("post comment: %w", err)
	}
	return comment, nil
}

func (s *CommentService) Feed(ctx context.Context) ([]models.FeedEntry, error) {
	entries, err := s.comments.Feed(ctx)
	if err != nil {
		return nil, fmt.Errorf("load feed: %w", err)
	}
	return entries, nil
}

func (s *CommentService) CountByUser(ctx context.Context, userID uint) (int64, error) {
	n, err := s.comments.CountByUser(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("count comments: %w", err)
	}
	return n, nil
}
