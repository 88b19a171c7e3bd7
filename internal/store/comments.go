package store

import (
	"context"

	"guestbook/internal/models"

	"gorm.io/gorm"
)

type Comments struct {
	db *gorm.DB
}

func NewComments(db *gorm.DB) *Comments {
	return &Comments{db: db}
}

func (r *Comments) Create(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return translate("store.Comments.Create", err)
	}
	return nil
}

// Feed returns every comment with its author's login, newest first.
// Comments sharing a timestamp come back in reverse insertion order.
func (r *Comments) Feed(ctx context.Context) ([]models.FeedEntry, error) {
	entries := make([]models.FeedEntry, 0)
	err := r.db.WithContext(ctx).
		Table("commentaires AS c").
		Select("c.id, c.commentaire, c.date, u.login").
		Joins("INNER JOIN utilisateurs u ON c.id_utilisateur = u.id").
		Order("c.date DESC, c.id DESC").
		Scan(&entries).Error
	if err != nil {
		return nil, translate("store.Comments.Feed", err)
	}
	return entries, nil
}

func (r *Comments) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("id_utilisateur = ?", userID).
		Count(&count).Error
	if err != nil {
		return 0, translate("store.Comments.CountByUser", err)
	}
	return count, nil
}
