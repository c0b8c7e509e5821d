package web

import (
	"net/http"
	"time"

	"fitclub/internal/adapters/gymapi"
	"fitclub/internal/adapters/http/middleware"
	"fitclub/internal/adapters/http/perf"
	"fitclub/internal/config"
	"fitclub/internal/domain/session"
)

// Deps holds everything the HTTP layer needs.
type Deps struct {
	Config    config.Config
	Keys      config.Keys
	API       *gymapi.Client
	Sessions  *middleware.SessionStore
	Limiter   *middleware.RateLimiter
	Collector *perf.Collector
	// Welcome is markdown shown on the home page; the built-in text is used when empty.
	Welcome string
}

// server carries the wired dependencies into the handlers.
type server struct {
	cfg       config.Config
	api       *gymapi.Client
	sessions  *middleware.SessionStore
	collector *perf.Collector
	welcome   []byte
}

// NewMux wires HTTP handlers for the app.
func NewMux(deps Deps) http.Handler {
	s := &server{
		cfg:       deps.Config,
		api:       deps.API,
		sessions:  deps.Sessions,
		collector: deps.Collector,
		welcome:   renderWelcome(deps.Welcome),
	}

	mux := http.NewServeMux()
	s.registerRoutes(mux)

	limiter := deps.Limiter
	if limiter == nil {
		limiter = middleware.NewRateLimiter(deps.Config.RateLimitPerSecond, time.Second)
	}
	secure := deps.Config.IsProduction()

	// Request order: Timing -> RateLimit -> Browser -> Auth -> CSRF -> SecurityHeaders -> Mux
	return middleware.Chain(middleware.RoutePattern(mux),
		middleware.SecurityHeaders,
		middleware.CSRF(deps.Keys.CSRF, secure, deps.Config.TrustedOrigins),
		middleware.Auth(deps.Sessions),
		middleware.Browser(middleware.NewBrowserCookie(deps.Keys.CookieHash, deps.Keys.CookieBlock, secure)),
		middleware.RateLimit(limiter),
		middleware.Timing(deps.Collector, deps.Config.SlowRequestMs),
	)
}

func (s *server) registerRoutes(mux *http.ServeMux) {
	member := middleware.RequireRole(session.RoleMember)
	trainer := middleware.RequireRole(session.RoleTrainer)
	admin := middleware.RequireRole(session.RoleAdmin)

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/ui/", http.StatusFound)
	})
	mux.Handle("GET /static/", http.FileServerFS(staticFS))
	mux.HandleFunc("GET /healthz", s.handleHealth)
	if s.cfg.DebugPerf {
		mux.HandleFunc("GET /debug/perf", s.handlePerf)
	}

	mux.HandleFunc("GET /ui/{$}", s.handleHome)
	mux.HandleFunc("GET /ui/login/{role}", s.handleLoginPage)
	mux.HandleFunc("POST /ui/login/{role}", s.handleLogin)
	mux.HandleFunc("GET /ui/signup", s.handleSignupPage)
	mux.HandleFunc("POST /ui/signup", s.handleSignup)
	mux.HandleFunc("POST /ui/logout", s.handleLogout)

	mux.Handle("GET /ui/dashboard/member", member(http.HandlerFunc(s.handleMemberDashboard)))
	mux.Handle("POST /ui/dashboard/member/register", member(http.HandlerFunc(s.handleRegisterForClass)))
	mux.Handle("GET /ui/dashboard/trainer", trainer(http.HandlerFunc(s.handleTrainerDashboard)))
	mux.Handle("POST /ui/dashboard/trainer/availability", trainer(http.HandlerFunc(s.handleAddAvailability)))
	mux.Handle("GET /ui/dashboard/admin", admin(http.HandlerFunc(s.handleAdminDashboard)))
	mux.Handle("POST /ui/dashboard/admin/rooms", admin(http.HandlerFunc(s.handleCreateRoom)))
	mux.Handle("POST /ui/dashboard/admin/classes", admin(http.HandlerFunc(s.handleCreateClass)))
}
