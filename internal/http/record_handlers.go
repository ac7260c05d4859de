package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"studylog-backend-go/internal/services"
)

type RecordRequest struct {
	Date        string          `json:"date" validate:"required"`
	Subjects    json.RawMessage `json:"subjects" validate:"required"`
	Comment     *string         `json:"comment"`
	CommentType *string         `json:"commentType" validate:"omitempty,oneof=text signature"`
}

type TeacherCommentRequest struct {
	RecordID string `json:"recordId" validate:"required"`
	Comment  string `json:"comment"`
}

func (s *Server) UpsertRecord(w http.ResponseWriter, r *http.Request) {
	var req RecordRequest
	if err := DecodeValid(r, &req); err != nil {
		WriteServiceError(w, err)
		return
	}
	date, err := time.Parse(services.DateLayout, req.Date)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}
	subjects, err := services.NormalizeSubjects(req.Subjects)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	commentType := req.CommentType
	if req.Comment != nil && commentType == nil {
		text := services.CommentTypeText
		commentType = &text
	}
	record, err := services.UpsertRecord(s.DB, CurrentUserID(r), date, subjects, req.Comment, commentType)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, services.BuildRecordView(record))
}

func (s *Server) ListRecords(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	if !canAccessStudent(r, userID) {
		WriteError(w, http.StatusForbidden, "Not allowed")
		return
	}
	records, err := services.ListRecords(s.DB, userID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	views := make([]services.RecordView, 0, len(records))
	for _, record := range records {
		views = append(views, services.BuildRecordView(record))
	}
	WriteJSON(w, http.StatusOK, views)
}

func (s *Server) BattleStats(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	studentID := query.Get("studentId")
	if studentID == "" {
		studentID = CurrentUserID(r)
	}
	if !canAccessStudent(r, studentID) {
		WriteError(w, http.StatusForbidden, "Not allowed")
		return
	}
	start, err := time.Parse(services.DateLayout, query.Get("startDate"))
	if err != nil {
		WriteError(w, http.StatusBadRequest, "startDate must be YYYY-MM-DD")
		return
	}
	end, err := time.Parse(services.DateLayout, query.Get("endDate"))
	if err != nil {
		WriteError(w, http.StatusBadRequest, "endDate must be YYYY-MM-DD")
		return
	}
	stats, err := services.AggregateRange(s.DB, studentID, start, end)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, stats)
}

func (s *Server) SetTeacherComment(w http.ResponseWriter, r *http.Request) {
	var req TeacherCommentRequest
	if err := DecodeValid(r, &req); err != nil {
		WriteServiceError(w, err)
		return
	}
	if err := services.SetTeacherComment(s.DB, req.RecordID, req.Comment); err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
