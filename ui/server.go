// Package ui exposes the analytics engine over HTTP. It is presentation
// plumbing only: handlers resolve a range, invoke the engine, and encode the
// result without touching the numeric contracts.
package ui

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"teampulse/adapters/excel"
	"teampulse/app"
	"teampulse/domain/analytics"
	"teampulse/domain/core"
	"teampulse/internal"
	"teampulse/internal/report"
	"teampulse/ports"
)

// Server wires the engine's entry points to HTTP routes
type Server struct {
	router   chi.Router
	metrics  *app.MetricsService
	company  *app.CompanyService
	insights app.InsightGenerator
	teams    ports.TeamDirectory
	exporter *excel.Exporter
	clock    core.Clock
	logger   *internal.Logger
}

// NewServer builds the HTTP server around the engine services
func NewServer(metrics *app.MetricsService, company *app.CompanyService, teams ports.TeamDirectory, clock core.Clock, logger *internal.Logger) *Server {
	if clock == nil {
		clock = core.SystemClock{}
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}
	s := &Server{
		metrics:  metrics,
		company:  company,
		insights: app.NewInsightGenerator(),
		teams:    teams,
		exporter: excel.NewExporter(),
		clock:    clock,
		logger:   logger,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/company", s.handleCompany)
		r.Get("/teams/{teamID}", s.handleTeam)
		r.Get("/comparison", s.handleComparison)
		r.Get("/report", s.handleReport)
		r.Get("/export", s.handleExport)
	})
	s.router = r
}

// Handler returns the HTTP handler for this server
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe starts the server on the given port
func (s *Server) ListenAndServe(port string) error {
	s.logger.Info("listening on :%s", port)
	return http.ListenAndServe(":"+port, s.router)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// granularity reads the period query parameter, defaulting to week
func (s *Server) granularity(r *http.Request) (analytics.Granularity, error) {
	period := r.URL.Query().Get("period")
	if period == "" {
		return analytics.GranularityWeek, nil
	}
	return analytics.ParseGranularity(period)
}

func (s *Server) handleCompany(w http.ResponseWriter, r *http.Request) {
	g, err := s.granularity(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	teams, err := s.teams.Teams(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	company, err := s.company.ComputeCompanyAnalytics(r.Context(), teams, analytics.ResolveRange(g, s.clock.Now()))
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, company)
}

// teamResponse bundles the snapshot with its insights and projections
type teamResponse struct {
	Analytics         analytics.TeamAnalytics `json:"analytics"`
	Insights          []analytics.Insight     `json:"insights"`
	ProjectedMood     float64                 `json:"projected_mood"`
	ProjectedVelocity float64                 `json:"projected_velocity"`
}

func (s *Server) handleTeam(w http.ResponseWriter, r *http.Request) {
	g, err := s.granularity(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	teamID := chi.URLParam(r, "teamID")

	teams, err := s.teams.Teams(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	var team *analytics.TeamRef
	for i := range teams {
		if teams[i].ID.String() == teamID {
			team = &teams[i]
			break
		}
	}
	if team == nil {
		s.writeError(w, http.StatusNotFound, fmt.Errorf("unknown team %q", teamID))
		return
	}

	snapshot, err := s.metrics.ComputeTeamAnalytics(r.Context(), *team, analytics.ResolveRange(g, s.clock.Now()))
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	mood, velocity := report.Projections(snapshot)
	s.writeJSON(w, http.StatusOK, teamResponse{
		Analytics:         snapshot,
		Insights:          s.insights.Generate(snapshot),
		ProjectedMood:     mood,
		ProjectedVelocity: velocity,
	})
}

func (s *Server) handleComparison(w http.ResponseWriter, r *http.Request) {
	g, err := s.granularity(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	teams, err := s.teams.Teams(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	comparison, err := s.company.ComparePeriods(r.Context(), teams, g)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, comparison)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	g, err := s.granularity(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	teams, err := s.teams.Teams(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	now := s.clock.Now()
	company, err := s.company.ComputeCompanyAnalytics(r.Context(), teams, analytics.ResolveRange(g, now))
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	md := report.BuildCompanyContext(company, now)
	if r.URL.Query().Get("format") == "html" {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write(renderMarkdown(md))
		return
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(md))
}

func renderMarkdown(md string) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags})
	return markdown.ToHTML([]byte(md), p, renderer)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	g, err := s.granularity(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	teams, err := s.teams.Teams(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	now := s.clock.Now()
	company, err := s.company.ComputeCompanyAnalytics(r.Context(), teams, analytics.ResolveRange(g, now))
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	filename := fmt.Sprintf("analytics-%s-%s.xlsx", g, now.Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, filename))
	if err := s.exporter.Write(w, company, now); err != nil {
		s.logger.Error("export failed: %v", err)
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encoding response: %v", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.logger.Warn("request failed (%d): %v", status, err)
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}
