// Package folio is a blog engine that renders Markdown posts into pages,
// either as a static site or served over HTTP with Echo and templ.
//
// Users provide their own templ components via the ViewFuncs struct; folio
// handles content loading, the SQLite content store, page resolution and
// the handler and middleware plumbing.
package folio

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ViewFuncs holds the templ components the framework calls when rendering
// pages. This is the inversion-of-control mechanism that lets users own and
// customize all templates.
type ViewFuncs struct {
	Index       func(page IndexPage) templ.Component
	Post        func(page PostPage) templ.Component
	AdminLogin  func(showError bool, csrfToken string) templ.Component
	NotFound    func() templ.Component
	ServerError func() templ.Component
}

// App is the central folio server. It wires together the store, cache,
// handlers, middleware, and user-provided templates.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Store  *Store
	Cache  *PostCache
	Views  ViewFuncs
	Logger *zap.Logger

	mu           sync.RWMutex
	footer       Footer
	loginLimiter *LoginLimiter
	customRoutes []func(*App)
}

// New creates a new App with the given configuration and view functions.
func New(cfg SiteConfig, views ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config: cfg,
		Echo:   echo.New(),
		Views:  views,
		Logger: zap.NewNop(),
	}
	a.Echo.HideBanner = true

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Start indexes the content, sets up middleware and routes, and serves
// until ctx is cancelled.
func (a *App) Start(ctx context.Context) error {
	if a.adminEnabled() && a.Config.SessionSecret == "" {
		return fmt.Errorf("folio: SessionSecret is required when AdminPassword is set")
	}

	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("folio: init store: %w", err)
	}
	a.Store = store
	a.Cache = NewPostCache(a.Store, a.Config.PostCacheTTL)

	if err := a.Reload(ctx); err != nil {
		return fmt.Errorf("folio: load content: %w", err)
	}

	a.loginLimiter = NewLoginLimiter(5, time.Minute)
	defer a.loginLimiter.Stop()

	a.setupMiddleware()
	a.setupRoutes()
	for _, fn := range a.customRoutes {
		fn(a)
	}

	if a.Config.Watch {
		stop, err := a.watchContent(ctx)
		if err != nil {
			return fmt.Errorf("folio: watch content: %w", err)
		}
		defer stop()
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := a.Echo.Shutdown(shutdownCtx); err != nil {
			a.Logger.Warn("shutdown", zap.Error(err))
		}
	}()

	a.Logger.Info("serving", zap.String("addr", a.Config.Addr), zap.String("url", a.Config.URL))
	if err := a.Echo.Start(a.Config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Reload loads the footer, re-indexes the content directory into the store
// and invalidates the post cache. A footer that fails to join leaves the
// store untouched.
func (a *App) Reload(ctx context.Context) error {
	footer, err := LoadFooter(a.Config.footerDir())
	if err != nil {
		return err
	}
	b := NewBuilder(a.Config, a.Store, a.Views, a.Logger)
	if _, err := b.Index(ctx); err != nil {
		return err
	}
	a.mu.Lock()
	a.footer = footer
	a.mu.Unlock()
	a.Cache.Invalidate()
	return nil
}

func (a *App) currentFooter() Footer {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.footer
}

func (a *App) adminEnabled() bool {
	return a.Config.AdminPassword != ""
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.Static("/public/footer/logos", a.Config.footerDir()+"/logos")
	e.Static("/public", a.Config.StaticDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)

	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/blog", handleBlogRedirect)
	e.GET("/", a.handleHome)
	e.GET("/blog/:slug/", a.handlePost)

	if a.adminEnabled() {
		e.GET("/admin/", a.handleAdmin)
		e.POST("/admin/login/", a.handleAdminLogin)
		e.POST("/admin/logout/", handleAdminLogout)
	}
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}
