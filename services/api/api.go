// Package api exposes the read side of the catalog over HTTP for the
// frontend: tool listings, screenshot artifacts, trend titles, and
// newsletter signup.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"path"
	"path/filepath"
	"strings"
	"toolcurator-backend/services/catalog"
	"toolcurator-backend/services/catalog/db"
	"toolcurator-backend/services/trends"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("services/api")

const defaultImageUrl = "https://placehold.co/1280x800/png?text=No+Screenshot"

type Config struct {
	// directory screenshot artifacts are read from
	ScreenshotDir   string `json:"screenshot_dir"`
	DefaultImageUrl string `json:"default_image_url"`
	// include raw database errors in 500 responses. debug aid, leave
	// off in production
	ExposeErrors bool `json:"expose_errors"`
}

type Server struct {
	catalog catalog.Service
	trends  trends.Service
	config  Config
}

func NewServer(catalogService catalog.Service, trendsService trends.Service, config Config) *Server {
	if config.ScreenshotDir == "" {
		config.ScreenshotDir = "static/screenshots"
	}
	if config.DefaultImageUrl == "" {
		config.DefaultImageUrl = defaultImageUrl
	}
	return &Server{
		catalog: catalogService,
		trends:  trendsService,
		config:  config,
	}
}

func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /tools", s.handleListTools)
	mux.HandleFunc("GET /screenshots/{filename}", s.handleScreenshot)
	mux.HandleFunc("POST /subscribe", s.handleSubscribe)
	mux.HandleFunc("GET /trends", s.handleTrends)
	mux.HandleFunc("GET /{$}", s.handleIndex)
}

type toolResponse struct {
	Name             string `json:"name"`
	Category         string `json:"category"`
	Source           string `json:"source"`
	SourceUrl        string `json:"source_url"`
	ShortDescription string `json:"short_description"`
	FullDescription  string `json:"full_description"`
	ScreenshotUrl    string `json:"screenshot_url"`
	Type             string `json:"type"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(body)
	if err != nil {
		slog.Warn("failed to encode response", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListTools(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "handleListTools")
	defer span.End()

	rows, err := s.catalog.ListTools(ctx, r.URL.Query().Get("source"), r.URL.Query().Get("filter"))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		writeError(w, http.StatusInternalServerError, "failed to list tools")
		return
	}

	// never null, the frontend iterates the body unconditionally
	tools := make([]toolResponse, 0, len(rows))
	for _, row := range rows {
		tools = append(tools, toolResponse{
			Name:             row.Name,
			Category:         row.Category,
			Source:           row.Source,
			SourceUrl:        row.SourceUrl,
			ShortDescription: row.ShortDescription,
			FullDescription:  row.FullDescription,
			ScreenshotUrl:    s.shapeScreenshotUrl(r, row),
			Type:             row.Type,
		})
	}
	writeJSON(w, http.StatusOK, tools)
}

// shapeScreenshotUrl turns the stored artifact path into a URL the
// frontend can load from this server, or the default image when the
// row has no artifact yet.
func (s *Server) shapeScreenshotUrl(r *http.Request, row db.AiTool) string {
	if !row.ScreenshotUrl.Valid || row.ScreenshotUrl.String == "" {
		return s.config.DefaultImageUrl
	}

	filename := path.Base(row.ScreenshotUrl.String)
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host + "/screenshots/" + filename
}

func (s *Server) handleScreenshot(w http.ResponseWriter, r *http.Request) {
	// Base strips any traversal a crafted filename could smuggle in
	filename := filepath.Base(r.PathValue("filename"))
	if filename == "." || filename == ".." || strings.HasPrefix(filename, ".") {
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, filepath.Join(s.config.ScreenshotDir, filename))
}

func (s *Server) handleSubscribe(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "handleSubscribe")
	defer span.End()

	var body struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := s.catalog.Subscribe(ctx, body.Email)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]string{"message": "subscribed"})
	case errors.Is(err, catalog.ErrEmailRequired), errors.Is(err, catalog.ErrAlreadySubscribed):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		slog.ErrorContext(ctx, "subscription failed", "err", err)
		message := "subscription failed"
		if s.config.ExposeErrors {
			message = err.Error()
		}
		writeError(w, http.StatusInternalServerError, message)
	}
}

func (s *Server) handleTrends(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "handleTrends")
	defer span.End()

	titles, err := s.trends.Daily(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		writeError(w, http.StatusBadGateway, "failed to fetch trends")
		return
	}
	if titles == nil {
		titles = []string{}
	}
	writeJSON(w, http.StatusOK, titles)
}
