package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type client struct {
	engine  *gin.Engine
	cookies map[string]*http.Cookie
}

func (cl *client) do(req *http.Request) *httptest.ResponseRecorder {
	for _, ck := range cl.cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	cl.engine.ServeHTTP(rec, req)
	for _, ck := range rec.Result().Cookies() {
		if ck.MaxAge < 0 {
			delete(cl.cookies, ck.Name)
			continue
		}
		cl.cookies[ck.Name] = ck
	}
	return rec
}

func (cl *client) get(path string) *httptest.ResponseRecorder {
	return cl.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (cl *client) post(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return cl.do(req)
}

func newClient() *client {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(sessions.Sessions("test_session", cookie.NewStore([]byte("test-secret"))))

	r.GET("/token", func(c *gin.Context) {
		token, err := SessionFrom(c).CSRFToken()
		if err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, token)
	})
	r.POST("/check", func(c *gin.Context) {
		if !SessionFrom(c).ValidCSRF(c.PostForm(CSRFField)) {
			c.Status(http.StatusForbidden)
			return
		}
		c.Status(http.StatusOK)
	})
	r.GET("/signin", func(c *gin.Context) {
		_ = SessionFrom(c).SignIn(Identity{ID: 7, Login: "bob"})
		c.Status(http.StatusOK)
	})
	r.GET("/rename", func(c *gin.Context) {
		_ = SessionFrom(c).Rename("bob2")
		c.Status(http.StatusOK)
	})
	r.GET("/logout", func(c *gin.Context) {
		_ = SessionFrom(c).Logout()
		c.Status(http.StatusOK)
	})
	r.GET("/private", AuthRequired(), func(c *gin.Context) {
		id := MustIdentity(c)
		c.String(http.StatusOK, "%d:%s", id.ID, id.Login)
	})
	r.GET("/login", GuestOnly(), func(c *gin.Context) {
		c.String(http.StatusOK, "login form")
	})

	return &client{engine: r, cookies: map[string]*http.Cookie{}}
}

func TestCSRFToken_StablePerSession(t *testing.T) {
	cl := newClient()

	first := cl.get("/token").Body.String()
	second := cl.get("/token").Body.String()

	assert.Len(t, first, 64)
	assert.Equal(t, first, second, "one token per session, not per request")

	other := newClient().get("/token").Body.String()
	assert.NotEqual(t, first, other)
}

func TestValidCSRF(t *testing.T) {
	cl := newClient()
	token := cl.get("/token").Body.String()

	assert.Equal(t, http.StatusOK, cl.post("/check", url.Values{CSRFField: {token}}).Code)
	assert.Equal(t, http.StatusOK, cl.post("/check", url.Values{CSRFField: {token}}).Code, "token is reusable within the session")

	mutated := "0" + token[1:]
	if mutated == token {
		mutated = "1" + token[1:]
	}
	assert.Equal(t, http.StatusForbidden, cl.post("/check", url.Values{CSRFField: {mutated}}).Code)
	assert.Equal(t, http.StatusForbidden, cl.post("/check", url.Values{}).Code)
	assert.Equal(t, http.StatusForbidden, cl.post("/check", url.Values{CSRFField: {token[:10]}}).Code)
}

func TestValidCSRF_NoSessionToken(t *testing.T) {
	cl := newClient()
	assert.Equal(t, http.StatusForbidden, cl.post("/check", url.Values{CSRFField: {""}}).Code)
	assert.Equal(t, http.StatusForbidden, cl.post("/check", url.Values{CSRFField: {"anything"}}).Code)
}

func TestAuthRequired(t *testing.T) {
	cl := newClient()

	rec := cl.get("/private")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))

	cl.get("/signin")
	rec = cl.get("/private")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "7:bob", rec.Body.String())

	cl.get("/rename")
	assert.Equal(t, "7:bob2", cl.get("/private").Body.String())
}

func TestGuestOnly(t *testing.T) {
	cl := newClient()
	assert.Equal(t, http.StatusOK, cl.get("/login").Code)

	cl.get("/signin")
	rec := cl.get("/login")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestLogout_ClearsEverything(t *testing.T) {
	cl := newClient()
	token := cl.get("/token").Body.String()
	cl.get("/signin")

	cl.get("/logout")

	assert.Equal(t, http.StatusSeeOther, cl.get("/private").Code)
	assert.Equal(t, http.StatusForbidden, cl.post("/check", url.Values{CSRFField: {token}}).Code)
}

func TestRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))

	r := gin.New()
	r.Use(RequestLogger(log))
	r.GET("/", func(c *gin.Context) {
		Logger(c).Info("inside")
		c.Status(http.StatusTeapot)
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	r.ServeHTTP(rec, req)

	assert.Equal(t, "req-123", rec.Header().Get(RequestIDHeader))
	out := buf.String()
	assert.Contains(t, out, "request_id=req-123")
	assert.Contains(t, out, "msg=inside")
	assert.Contains(t, out, "status=418")

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, rec.Header().Get(RequestIDHeader), 36)
}
