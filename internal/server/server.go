// Package server exposes the projection engine over HTTP.
package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/iwvelando/finance-projection/internal/config"
	"github.com/iwvelando/finance-projection/internal/projection"
	"github.com/iwvelando/finance-projection/pkg/cache"
	"github.com/iwvelando/finance-projection/pkg/constants"
	"github.com/iwvelando/finance-projection/pkg/output"
	"github.com/iwvelando/finance-projection/pkg/validation"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Options tunes a Handler. Zero values select the defaults.
type Options struct {
	MaxUploadSize int64
	Version       string
	CacheTTL      time.Duration
	Metrics       *Metrics
}

// Handler serves the projection API.
type Handler struct {
	logger        *zap.Logger
	maxUploadSize int64
	version       string
	metrics       *Metrics
	cache         *cache.TTL[projectionResponse]
	router        chi.Router
}

type projectionResponse struct {
	Scenarios []projection.Projection `json:"scenarios"`
	Warnings  []string                `json:"warnings,omitempty"`
	CSV       string                  `json:"csv"`
	Duration  string                  `json:"duration"`
	Cached    bool                    `json:"cached"`
}

// NewHandler constructs the HTTP handler. Call Close when done to stop the
// cache sweeper.
func NewHandler(logger *zap.Logger, opts Options) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.MaxUploadSize <= 0 {
		opts.MaxUploadSize = constants.DefaultMaxUploadSizeBytes
	}
	version := strings.TrimSpace(opts.Version)
	if version == "" {
		version = "dev"
	}
	if opts.Metrics == nil {
		opts.Metrics = NewMetrics()
	}

	h := &Handler{
		logger:        logger,
		maxUploadSize: opts.MaxUploadSize,
		version:       version,
		metrics:       opts.Metrics,
		cache:         cache.New[projectionResponse](opts.CacheTTL),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.observe)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", h.handleHealth)
	r.Handle("/metrics", promhttp.HandlerFor(opts.Metrics.Registry, promhttp.HandlerOpts{}))
	r.Route("/api", func(r chi.Router) {
		r.Post("/projection", h.handleProjection)
		r.Get("/version", h.handleVersion)
	})

	h.router = r
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

// Close releases the projection cache.
func (h *Handler) Close() {
	h.cache.Close()
}

// observe logs every request and feeds the request metrics.
func (h *Handler) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			elapsed := time.Since(start)

			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}
			h.metrics.ObserveRequest(route, status, elapsed)

			fields := []zap.Field{
				zap.String("op", "server.observe"),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", status),
				zap.Duration("latency", elapsed),
				zap.String("requestId", middleware.GetReqID(r.Context())),
			}
			switch {
			case status >= 500:
				h.logger.Error("http request", fields...)
			case status >= 400:
				h.logger.Warn("http request", fields...)
			default:
				h.logger.Debug("http request", fields...)
			}
		}()

		next.ServeHTTP(ww, r)
	})
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) handleVersion(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"version": h.version})
}

// handleProjection projects the plan sent in the request body. The plan is
// YAML unless the content type says JSON, or a multipart upload in the
// "file" field. The format query parameter selects csv or pretty text
// instead of the JSON envelope.
func (h *Handler) handleProjection(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleProjection"
	start := time.Now()

	outputFormat := r.URL.Query().Get("format")
	if outputFormat != "" {
		if err := validation.ValidateOutputFormat(outputFormat); err != nil {
			h.respondError(w, http.StatusBadRequest, err.Error(), op)
			return
		}
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	body, configType, err := readPlan(r)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds limit of %d bytes", h.maxUploadSize), op)
			return
		}
		h.respondError(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	key := cache.Fingerprint(body, []byte(configType))
	resp, hit := h.cache.Get(key)
	h.metrics.ObserveCache(hit)
	if !hit {
		var status int
		resp, status, err = h.compute(r, body, configType)
		if err != nil {
			h.respondError(w, status, err.Error(), op)
			return
		}
		h.cache.Set(key, resp)
		h.metrics.SetCacheEntries(h.cache.Len())
	}
	resp.Cached = hit
	resp.Duration = time.Since(start).String()

	h.logger.Info("projection computed",
		zap.String("op", op),
		zap.Int("scenarios", len(resp.Scenarios)),
		zap.Bool("cached", hit),
		zap.Duration("duration", time.Since(start)),
	)

	switch outputFormat {
	case constants.OutputFormatCSV:
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		_, _ = io.WriteString(w, resp.CSV)
	case constants.OutputFormatPretty:
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if err := output.PrettyFormat(w, resp.Scenarios); err != nil {
			h.logger.Error("failed to write pretty output", zap.String("op", op), zap.Error(err))
		}
	default:
		h.writeJSON(w, http.StatusOK, resp)
	}
}

func (h *Handler) compute(r *http.Request, body []byte, configType string) (projectionResponse, int, error) {
	conf, err := config.LoadConfigurationFromReader(bytes.NewReader(body), configType)
	if err != nil {
		return projectionResponse{}, http.StatusBadRequest, err
	}

	results, err := projection.GetProjections(r.Context(), h.logger, *conf)
	if err != nil {
		return projectionResponse{}, http.StatusUnprocessableEntity, fmt.Errorf("failed to compute projection: %w", err)
	}
	h.metrics.ObserveProjections(results)

	var csvBuf bytes.Buffer
	if err := output.CsvFormat(&csvBuf, results); err != nil {
		return projectionResponse{}, http.StatusInternalServerError, fmt.Errorf("failed to render CSV: %w", err)
	}

	return projectionResponse{
		Scenarios: results,
		Warnings:  conf.ValidateConfiguration(),
		CSV:       csvBuf.String(),
	}, http.StatusOK, nil
}

// readPlan returns the request's plan and its viper config type.
func readPlan(r *http.Request) ([]byte, string, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	if mediaType == "multipart/form-data" {
		file, header, err := r.FormFile("file")
		if err != nil {
			var maxBytesErr *http.MaxBytesError
			if errors.As(err, &maxBytesErr) {
				return nil, "", err
			}
			return nil, "", errors.New("missing configuration file")
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			return nil, "", fmt.Errorf("failed to read configuration: %w", err)
		}
		configType := "yaml"
		if strings.EqualFold(filepath.Ext(header.Filename), ".json") {
			configType = "json"
		}
		return data, configType, nil
	}

	data, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, "", err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, "", errors.New("empty configuration")
	}
	if mediaType == "application/json" {
		return data, "json", nil
	}
	return data, "yaml", nil
}

func (h *Handler) respondError(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("projection request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)
	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
