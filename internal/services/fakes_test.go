package services

import (
	"context"
	"errors"
	"sort"

	"guestbook/internal/models"
	"guestbook/internal/store"
)

var errStoreDown = errors.New("store down")

type fakeUsers struct {
	byID   map[uint]*models.User
	nextID uint
	err    error
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byID: map[uint]*models.User{}}
}

func (f *fakeUsers) Create(_ context.Context, user *models.User) error {
	if f.err != nil {
		return f.err
	}
	for _, u := range f.byID {
		if u.Login == user.Login {
			return store.ErrDuplicate
		}
	}
	f.nextID++
	user.ID = f.nextID
	cp := *user
	f.byID[user.ID] = &cp
	return nil
}

func (f *fakeUsers) FindByLogin(_ context.Context, login string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.byID {
		if u.Login == login {
			cp := *u
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeUsers) LoginTaken(_ context.Context, login string, excludeID uint) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	for id, u := range f.byID {
		if u.Login == login && id != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUsers) Update(_ context.Context, id uint, login, passwordHash string) error {
	if f.err != nil {
		return f.err
	}
	u, ok := f.byID[id]
	if !ok {
		return store.ErrNotFound
	}
	u.Login = login
	if passwordHash != "" {
		u.Password = passwordHash
	}
	return nil
}

type fakeComments struct {
	rows   []models.Comment
	logins map[uint]string
	err    error
}

func (f *fakeComments) Create(_ context.Context, c *models.Comment) error {
	if f.err != nil {
		return f.err
	}
	c.ID = uint(len(f.rows) + 1)
	f.rows = append(f.rows, *c)
	return nil
}

func (f *fakeComments) Feed(_ context.Context) ([]models.FeedEntry, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]models.FeedEntry, 0, len(f.rows))
	for _, c := range f.rows {
		out = append(out, models.FeedEntry{ID: c.ID, Body: c.Body, Date: c.Date, Login: f.logins[c.UserID]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date.Equal(out[j].Date) {
			return out[i].ID > out[j].ID
		}
		return out[i].Date.After(out[j].Date)
	})
	return out, nil
}

func (f *fakeComments) CountByUser(_ context.Context, userID uint) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	var n int64
	for _, c := range f.rows {
		if c.UserID == userID {
			n++
		}
	}
	return n, nil
}
