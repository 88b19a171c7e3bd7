package store

import (
	"context"

	"guestbook/internal/models"

	"gorm.io/gorm"
)

type Users struct {
	db *gorm.DB
}

func NewUsers(db *gorm.DB) *Users {
	return &Users{db: db}
}

func (r *Users) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return translate("store.Users.Create", err)
	}
	return nil
}

// FindByLogin looks a user up by exact, case-sensitive login.
func (r *Users) FindByLogin(ctx context.Context, login string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("login = ?", login).First(&user).Error; err != nil {
		return nil, translate("store.Users.FindByLogin", err)
	}
	return &user, nil
}

// LoginTaken reports whether a user other than excludeID owns login.
// Pass 0 to check against every user.
func (r *Users) LoginTaken(ctx context.Context, login string, excludeID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("login = ? AND id <> ?", login, excludeID).
		Count(&count).Error
	if err != nil {
		return false, translate("store.Users.LoginTaken", err)
	}
	return count > 0, nil
}

// Update sets the login and, when passwordHash is not empty, the password.
func (r *Users) Update(ctx context.Context, id uint, login, passwordHash string) error {
	updates := map[string]interface{}{"login": login}
	if passwordHash != "" {
		updates["password"] = passwordHash
	}

	result := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return translate("store.Users.Update", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
