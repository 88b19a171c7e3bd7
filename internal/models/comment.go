package models

import (
	"time"
)

type Comment struct {
	ID     uint      `gorm:"primaryKey" json:"id"`
	Body   string    `gorm:"column:commentaire;type:text;not null" json:"commentaire"`
	UserID uint      `gorm:"column:id_utilisateur;not null;index" json:"id_utilisateur"`
	User   User      `gorm:"foreignKey:UserID" json:"-"`
	Date   time.Time `gorm:"column:date;not null;default:CURRENT_TIMESTAMP;index" json:"date"`
}

func (Comment) TableName() string {
	return "commentaires"
}

// FeedEntry is a comment joined with its author's login, as shown in the feed.
type FeedEntry struct {
	ID    uint      `gorm:"column:id"`
	Body  string    `gorm:"column:commentaire"`
	Date  time.Time `gorm:"column:date"`
	Login string    `gorm:"column:login"`
}
