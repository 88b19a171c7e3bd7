package router

import (
	"log/slog"
	"time"

	"guestbook/internal/handlers"
	"guestbook/internal/metrics"
	"guestbook/internal/middleware"
	"guestbook/internal/services"
	"guestbook/internal/store"
	"guestbook/web"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Deps is everything the router needs from main.
type Deps struct {
	DB            *gorm.DB
	Logger        *slog.Logger
	Metrics       *metrics.Metrics
	SessionStore  sessions.Store
	SessionName   string
	ShowErrors    bool
	RedirectDelay time.Duration
}

func New(d Deps) (*gin.Engine, error) {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(d.Logger))
	r.Use(d.Metrics.Middleware())
	r.Use(sessions.Sessions(d.SessionName, d.SessionStore))

	renderer, err := web.LoadTemplates()
	if err != nil {
		return nil, err
	}
	r.HTMLRender = renderer

	r.StaticFS("/static", web.Static())

	// Services
	authService := services.NewAuthService(store.NewUsers(d.DB))
	commentService := services.NewCommentService(store.NewComments(d.DB))

	// Handlers
	base := handlers.Base{
		Metrics:       d.Metrics,
		ShowErrors:    d.ShowErrors,
		RedirectDelay: d.RedirectDelay,
	}
	homeHandler := handlers.NewHomeHandler()
	authHandler := handlers.NewAuthHandler(base, authService)
	commentHandler := handlers.NewCommentHandler(base, commentService)
	userHandler := handlers.NewUserHandler(base, authService, commentService)
	healthHandler := handlers.NewHealthHandler(d.DB)

	// Public Routes
	r.GET("/", homeHandler.Index)
	r.GET("/comments", commentHandler.List)
	r.GET("/logout", authHandler.Logout)

	r.GET("/register", authHandler.ShowRegister)
	r.POST("/register", authHandler.Register)

	guest := r.Group("/")
	guest.Use(middleware.GuestOnly())
	{
		guest.GET("/login", authHandler.ShowLogin)
		guest.POST("/login", authHandler.Login)
	}

	// Protected Routes
	authorized := r.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.GET("/comments/new", commentHandler.ShowCreate)
		authorized.POST("/comments/new", commentHandler.Create)
		authorized.GET("/profile", userHandler.Profile)
		authorized.POST("/profile", userHandler.UpdateProfile)
	}

	// Ops
	r.GET("/healthz", healthHandler.Check)
	r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))

	r.NoRoute(homeHandler.NotFound)

	return r, nil
}
