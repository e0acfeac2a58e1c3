package cli

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/dhvcc/github-contribution-treemap-generator/pkg/errors"
	"github.com/dhvcc/github-contribution-treemap-generator/pkg/integrations"
	"github.com/dhvcc/github-contribution-treemap-generator/pkg/pipeline"
)

const (
	headerRequestID = "X-Request-ID"
	headerCache     = "X-Cache"

	maxRequestIDLen = 64
)

var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatJSON: "application/json",
}

// server answers treemap requests with a shared runner.
type server struct {
	runner  *pipeline.Runner
	logger  *log.Logger
	timeout time.Duration
}

func newServer(runner *pipeline.Runner, logger *log.Logger, timeout time.Duration) *server {
	if timeout <= 0 {
		timeout = integrations.DefaultTimeout
	}
	return &server{runner: runner, logger: logger, timeout: timeout}
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.timeout))

	r.Get("/healthz", s.handleHealth)
	r.Get("/api/treemap/{user}", s.handleTreemap)
	return r
}

// =============================================================================
// Middleware
// =============================================================================

const requestIDKey ctxKey = 1

// requestID keeps a well-formed incoming X-Request-ID or assigns a new
// UUID, and echoes it on the response.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(headerRequestID)
		if id == "" || len(id) > maxRequestIDLen || strings.ContainsFunc(id, isControl) {
			id = uuid.NewString()
		}
		w.Header().Set(headerRequestID, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

func isControl(r rune) bool { return r < 0x20 || r == 0x7f }

func requestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// logRequests attaches a request-scoped logger and logs each response.
func (s *server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, logger := withRequestLogger(r.Context(), s.logger, requestIDFromContext(r.Context()))
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r.WithContext(ctx))

		logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"remote", r.RemoteAddr,
			"duration", time.Since(start).Round(time.Millisecond))
	})
}

// =============================================================================
// Handlers
// =============================================================================

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) handleTreemap(w http.ResponseWriter, r *http.Request) {
	opts, err := treemapOptions(chi.URLParam(r, "user"), r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Logger = loggerFromContext(r.Context())

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	format := opts.Formats[0]
	cacheStatus := "MISS"
	if result.CacheInfo.RenderHit {
		cacheStatus = "HIT"
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Header().Set(headerCache, cacheStatus)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

// treemapOptions reads pipeline options from the query string.
func treemapOptions(user string, r *http.Request) (pipeline.Options, error) {
	q := r.URL.Query()
	opts := pipeline.Options{
		User:    user,
		Formats: []string{pipeline.FormatSVG},
		Exclude: q["exclude"],
	}

	if f := strings.ToLower(q.Get("format")); f != "" {
		if err := errors.ValidateFormat(f); err != nil {
			return opts, err
		}
		opts.Formats = []string{f}
	}

	var err error
	if opts.Width, err = intParam(q.Get("width"), "width"); err != nil {
		return opts, err
	}
	if opts.Height, err = intParam(q.Get("height"), "height"); err != nil {
		return opts, err
	}
	if opts.MaxRepos, err = intParam(q.Get("max_repos"), "max_repos"); err != nil {
		return opts, err
	}
	minStars, err := intParam(q.Get("min_stars"), "min_stars")
	if err != nil {
		return opts, err
	}
	if minStars < 0 {
		return opts, errors.New(errors.ErrCodeInvalidInput, "min_stars must not be negative")
	}
	opts.MinStars = uint(minStars)

	if opts.IncludeOwn, err = boolParam(q.Get("include_own"), "include_own"); err != nil {
		return opts, err
	}
	return opts, nil
}

func intParam(v, name string) (int, error) {
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidInput, "%s must be an integer, got %q", name, v)
	}
	return n, nil
}

func boolParam(v, name string) (bool, error) {
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, errors.New(errors.ErrCodeInvalidInput, "%s must be true or false, got %q", name, v)
	}
	return b, nil
}

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error struct {
		Code      errors.Code `json:"code"`
		Message   string      `json:"message"`
		RequestID string      `json:"request_id,omitempty"`
	} `json:"error"`
}

func (s *server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	// The timeout middleware answers requests whose deadline passed.
	if stderrors.Is(r.Context().Err(), context.DeadlineExceeded) {
		return
	}

	status := errors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		loggerFromContext(r.Context()).Error("request failed", "err", err)
	}

	var rl *errors.RateLimitedError
	if stderrors.As(err, &rl) && rl.RetryAfter > 0 {
		w.Header().Set("Retry-After", strconv.Itoa(int(rl.RetryAfter.Round(time.Second).Seconds())))
	}

	var body errorBody
	body.Error.Code = errors.GetCode(err)
	if body.Error.Code == "" {
		body.Error.Code = errors.ErrCodeInternal
	}
	body.Error.Message = errors.UserMessage(err)
	body.Error.RequestID = requestIDFromContext(r.Context())
	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
