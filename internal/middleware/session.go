package middleware

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"net/http"

	"guestbook/internal/config"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	gormsessions "github.com/gin-contrib/sessions/gorm"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	sessionUserIDKey = "user_id"
	sessionLoginKey  = "user_login"
	sessionCSRFKey   = "csrf_token"

	// CSRFField is the hidden form field carrying the session token.
	CSRFField = "csrf_token"

	csrfTokenBytes = 32
)

// Identity is the authenticated user as cached in the session.
type Identity struct {
	ID    uint
	Login string
}

// Session is the typed view of the per-browser session. Handlers use it
// instead of raw session keys.
type Session struct {
	raw sessions.Session
}

func SessionFrom(c *gin.Context) *Session {
	return &Session{raw: sessions.Default(c)}
}

// CurrentUser returns the signed-in identity. It never touches the database.
func (s *Session) CurrentUser() (Identity, bool) {
	id, ok := s.raw.Get(sessionUserIDKey).(uint)
	if !ok || id == 0 {
		return Identity{}, false
	}
	login, _ := s.raw.Get(sessionLoginKey).(string)
	return Identity{ID: id, Login: login}, true
}

func (s *Session) IsAuthenticated() bool {
	_, ok := s.CurrentUser()
	return ok
}

func (s *Session) SignIn(id Identity) error {
	s.raw.Set(sessionUserIDKey, id.ID)
	s.raw.Set(sessionLoginKey, id.Login)
	return s.raw.Save()
}

// Rename refreshes the cached login after a profile edit.
func (s *Session) Rename(login string) error {
	s.raw.Set(sessionLoginKey, login)
	return s.raw.Save()
}

// Logout drops every value and expires the session.
func (s *Session) Logout() error {
	s.raw.Clear()
	s.raw.Options(sessions.Options{Path: "/", MaxAge: -1})
	return s.raw.Save()
}

// CSRFToken returns the session token, creating it on first use. One token
// covers every form for the life of the session.
func (s *Session) CSRFToken() (string, error) {
	if token, ok := s.raw.Get(sessionCSRFKey).(string); ok && token != "" {
		return token, nil
	}
	token, err := newCSRFToken()
	if err != nil {
		return "", err
	}
	s.raw.Set(sessionCSRFKey, token)
	return token, s.raw.Save()
}

// ValidCSRF compares submitted with the session token in constant time.
// A missing token on either side is a failure.
func (s *Session) ValidCSRF(submitted string) bool {
	expected, ok := s.raw.Get(sessionCSRFKey).(string)
	if !ok || expected == "" || submitted == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(submitted)) == 1
}

func newCSRFToken() (string, error) {
	b := make([]byte, csrfTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// NewSessionStore builds the configured store: session rows in the main
// database, or signed cookies.
func NewSessionStore(cfg config.Session, secure bool, db *gorm.DB) sessions.Store {
	var store sessions.Store
	if cfg.Store == config.SessionStoreCookie {
		store = cookie.NewStore([]byte(cfg.Secret))
	} else {
		store = gormsessions.NewStore(db, true, []byte(cfg.Secret))
	}
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int(cfg.MaxAge.Seconds()),
		Secure:   secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return store
}
