package http

import (
	"context"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"tracker/internal/log"
	"tracker/internal/middleware/ratelimit"
	"tracker/internal/middleware/security"
	"tracker/internal/middleware/trace"
	"tracker/internal/services"
	appweb "tracker/web"
)

// DefaultTitle is shown when Options.Title is empty.
const DefaultTitle = "Mission Month 2026 Tracker"

// Server wraps http.Server with the tracker routes and their dependencies.
type Server struct {
	*http.Server
	submitter *services.Submitter
	reporter  *services.Reporter
	templates *template.Template
	title     string
	limiter   *ratelimit.Limiter
	detector  *security.Detector
	tracer    *trace.Middleware
	logger    *log.Logger
	started   time.Time
}

// Options tunes the server. Zero values select defaults.
type Options struct {
	Title              string
	RateLimitPerMinute int
	Logger             *log.Logger
	// Templates overrides the embedded templates; used by tests.
	Templates fs.FS
}

// NewServer configures routes and templates, returning a ready-to-run server.
// Call Shutdown to stop it and release the rate limiter.
func NewServer(addr string, sub *services.Submitter, rep *services.Reporter, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.New(log.DefaultConfig())
	}
	if opts.Title == "" {
		opts.Title = DefaultTitle
	}
	if opts.Templates == nil {
		opts.Templates = appweb.TemplatesFS
	}

	s := &Server{
		submitter: sub,
		reporter:  rep,
		title:     opts.Title,
		limiter:   ratelimit.NewLimiter(ratelimit.Config{RequestsPerMinute: opts.RateLimitPerMinute}),
		detector:  security.NewDetector(),
		logger:    opts.Logger.WithComponent(log.ComponentHTTP),
		started:   time.Now(),
	}
	s.tracer = trace.NewMiddleware(opts.Logger, s.detector.ExtractClientIP)

	t, err := parseTemplates(opts.Templates)
	if err != nil {
		// Pages answer 500 until fixed; health and the JSON API keep working.
		s.logger.Error("Failed parsing templates", log.FieldError, err, log.FieldOperation, log.OpStartup)
	}
	s.templates = t

	s.Server = &http.Server{
		Addr:              addr,
		Handler:           s.routes(opts.Logger),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 16,
	}
	return s
}

func parseTemplates(fsys fs.FS) (*template.Template, error) {
	return template.New("").ParseFS(fsys, "templates/*.html")
}

func (s *Server) routes(base *log.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer,
		s.tracer.Handler,
		trace.LoggerMiddleware(base),
		s.detector.Middleware(base),
		security.Headers(security.DefaultHeadersConfig()),
	)

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)

	r.Get("/", s.handleIndex)
	r.Get("/ui/summary", s.handleSummaryPartial)
	r.Get("/api/summary", s.handleSummaryJSON)

	r.With(
		s.limiter.Middleware(s.detector.ExtractClientIP, s.onRateLimited),
		log.ComponentMiddleware(log.ComponentContribution),
	).Post("/contributions", s.handleCreateContribution)

	static, err := fs.Sub(appweb.StaticFS, "static")
	if err != nil {
		s.logger.Error("Failed to open static assets", log.FieldError, err)
	} else {
		r.With(security.StaticAssetMiddleware(3600)).
			Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))
	}
	return r
}

func (s *Server) onRateLimited(w http.ResponseWriter, r *http.Request) {
	s.logger.WarnContext(r.Context(), "Rate limit exceeded",
		log.FieldClientIP, s.detector.ExtractClientIP(r),
		log.FieldPath, r.URL.Path)
	TooManyRequestsError("Too many submissions. Please wait a minute and try again.").Write(w)
}

// Shutdown stops the HTTP server and background goroutines.
func (s *Server) Shutdown(ctx context.Context) error {
	s.limiter.Stop()
	return s.Server.Shutdown(ctx)
}
