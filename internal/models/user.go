package models

type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Login    string `gorm:"column:login;size:255;uniqueIndex;not null" json:"login"`
	Password string `gorm:"column:password;not null" json:"-"` // Hash
}

func (User) TableName() string {
	return "utilisateurs"
}
