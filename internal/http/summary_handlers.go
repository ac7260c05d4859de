package httpapi

import (
	"net/http"
	"time"

	"studylog-backend-go/internal/models"
	"studylog-backend-go/internal/services"
)

type SummaryRequest struct {
	WeekStartDate string `json:"weekStartDate" validate:"required"`
	Goal          string `json:"goal"`
	Reflection    string `json:"reflection"`
}

type SummaryResponse struct {
	WeekStart  string `json:"weekStart"`
	Goal       string `json:"goal"`
	Reflection string `json:"reflection"`
}

func buildSummaryResponse(summary models.WeeklySummary) SummaryResponse {
	return SummaryResponse{
		WeekStart:  summary.WeekStart.Format(services.DateLayout),
		Goal:       summary.Goal,
		Reflection: summary.Reflection,
	}
}

func (s *Server) UpsertSummary(w http.ResponseWriter, r *http.Request) {
	var req SummaryRequest
	if err := DecodeValid(r, &req); err != nil {
		WriteServiceError(w, err)
		return
	}
	weekDate, err := time.Parse(services.DateLayout, req.WeekStartDate)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "weekStartDate must be YYYY-MM-DD")
		return
	}
	summary, err := services.UpsertWeeklySummary(s.DB, CurrentUserID(r), weekDate, req.Goal, req.Reflection)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, buildSummaryResponse(summary))
}

func (s *Server) GetSummary(w http.ResponseWriter, r *http.Request) {
	weekDate, err := time.Parse(services.DateLayout, r.URL.Query().Get("weekStartDate"))
	if err != nil {
		WriteError(w, http.StatusBadRequest, "weekStartDate must be YYYY-MM-DD")
		return
	}
	summary, err := services.GetWeeklySummary(s.DB, CurrentUserID(r), weekDate)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, buildSummaryResponse(summary))
}
