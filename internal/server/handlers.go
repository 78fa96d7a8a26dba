package server

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"
	"time"

	"github.com/jonathan/jobsearch-insights/internal/dataset"
	"github.com/jonathan/jobsearch-insights/internal/recommend"
	"github.com/jonathan/jobsearch-insights/internal/scenario"
	"github.com/jonathan/jobsearch-insights/internal/server/middleware"
	"github.com/jonathan/jobsearch-insights/internal/types"
)

const maxBodyBytes = 10 << 20

// AnalyzeResponse is returned by POST /analyze.
type AnalyzeResponse struct {
	Report  *types.Report  `json:"report"`
	Skipped []dataset.Skip `json:"skipped_records"`
}

// SimulateRequest is the body of POST /simulate. Strategies default to the
// configured comparison set when omitted.
type SimulateRequest struct {
	ApplicationsPerWeek float64             `json:"applications_per_week" validate:"gte=0"`
	BaseRates           scenario.Rates      `json:"base_rates"`
	Strategies          []scenario.Strategy `json:"strategies,omitempty" validate:"omitempty,dive"`
}

// SimulateResponse is returned by POST /simulate.
type SimulateResponse struct {
	Scenarios []types.Scenario `json:"scenarios"`
}

// RecommendationsResponse is returned by GET /users/{id}/recommendations.
type RecommendationsResponse struct {
	Recommendations []types.Recommendation `json:"recommendations"`
}

func (s *Server) handleUserReport(w http.ResponseWriter, r *http.Request) {
	report, ok := s.userReport(w, r)
	if !ok {
		return
	}
	s.jsonResponse(w, http.StatusOK, report)
}

func (s *Server) handleUserFunnel(w http.ResponseWriter, r *http.Request) {
	report, ok := s.userReport(w, r)
	if !ok {
		return
	}
	s.jsonResponse(w, http.StatusOK, report.Funnel)
}

func (s *Server) handleUserForecast(w http.ResponseWriter, r *http.Request) {
	report, ok := s.userReport(w, r)
	if !ok {
		return
	}
	s.jsonResponse(w, http.StatusOK, report.Forecast)
}

func (s *Server) handleUserRecommendations(w http.ResponseWriter, r *http.Request) {
	limit := s.engine.Settings().TopRecommendations
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			s.handleError(w, r, &ErrValidation{Field: "limit", Message: "must be a non-negative integer"})
			return
		}
		limit = n
	}

	report, ok := s.userReport(w, r)
	if !ok {
		return
	}
	s.jsonResponse(w, http.StatusOK, RecommendationsResponse{
		Recommendations: recommend.Top(report.Recommendations, limit),
	})
}

// userReport loads the user's dataset from the source and builds a report.
// It writes the error response itself and returns false on failure.
func (s *Server) userReport(w http.ResponseWriter, r *http.Request) (*types.Report, bool) {
	if s.source == nil {
		s.handleError(w, r, &ErrSourceUnavailable{Message: "no dataset source configured"})
		return nil, false
	}
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.handleError(w, r, &ErrValidation{Field: "id", Message: err.Error()})
		return nil, false
	}
	now, err := s.reportTime(r)
	if err != nil {
		s.handleError(w, r, err)
		return nil, false
	}

	ds, err := s.source.LoadDataset(r.Context(), userID)
	if err != nil {
		s.handleError(w, r, &ErrSourceUnavailable{Message: "failed to load dataset", Cause: err})
		return nil, false
	}
	return s.engine.BuildReport(ds, now), true
}

// reportTime reads the optional ?now= RFC3339 override used for
// reproducible reports.
func (s *Server) reportTime(r *http.Request) (time.Time, error) {
	raw := r.URL.Query().Get("now")
	if raw == "" {
		return s.now(), nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, &ErrValidation{Field: "now", Message: "must be an RFC3339 timestamp"}
	}
	return t, nil
}

// handleAnalyze builds a report from a dataset document in the request body.
// YAML is accepted when the Content-Type says so.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	now, err := s.reportTime(r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.errorResponse(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		s.handleError(w, r, &ErrValidation{Field: "body", Message: err.Error()})
		return
	}

	ds, skips, err := dataset.Parse(body, requestFormat(r))
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	skipped := skips.Skips
	if skipped == nil {
		skipped = []dataset.Skip{}
	}
	s.jsonResponse(w, http.StatusOK, AnalyzeResponse{
		Report:  s.engine.BuildReport(ds, now),
		Skipped: skipped,
	})
}

func requestFormat(r *http.Request) dataset.Format {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return dataset.FormatJSON
	}
	switch mediaType {
	case "application/yaml", "application/x-yaml", "text/yaml", "text/x-yaml":
		return dataset.FormatYAML
	default:
		return dataset.FormatJSON
	}
}

// handleSimulate compares strategies for the supplied cadence and base rates.
func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	var req SimulateRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.handleError(w, r, &ErrValidation{Field: "body", Message: "invalid JSON: " + err.Error()})
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.handleError(w, r, fromValidator(err))
		return
	}

	s.jsonResponse(w, http.StatusOK, SimulateResponse{
		Scenarios: s.engine.Simulate(req.ApplicationsPerWeek, req.BaseRates, req.Strategies),
	})
}
