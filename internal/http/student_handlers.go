package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"studylog-backend-go/internal/services"
)

type RosterPatchRequest struct {
	Grade  *int `json:"grade" validate:"omitempty,min=1,max=6"`
	Class  *int `json:"class" validate:"omitempty,min=1"`
	Roster *int `json:"roster" validate:"omitempty,min=1"`
}

type RosterBatchItem struct {
	ID     string `json:"id" validate:"required"`
	Grade  *int   `json:"grade" validate:"omitempty,min=1,max=6"`
	Class  *int   `json:"class" validate:"omitempty,min=1"`
	Roster *int   `json:"roster" validate:"omitempty,min=1"`
}

type RosterBatchRequest struct {
	Items []RosterBatchItem `json:"items" validate:"required,min=1,dive"`
}

// ListStudents returns the roster visible to the calling teacher: their own
// grade+class when the token carries an assignment, the whole school
// otherwise.
func (s *Server) ListStudents(w http.ResponseWriter, r *http.Request) {
	claims := CurrentClaims(r)
	students, err := services.ListStudents(s.DB, claims.Grade, claims.Class)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	items := make([]UserDTO, 0, len(students))
	for _, student := range students {
		items = append(items, buildUserDTO(student))
	}
	WriteJSON(w, http.StatusOK, items)
}

func (s *Server) PatchStudent(w http.ResponseWriter, r *http.Request) {
	studentID := chi.URLParam(r, "studentId")
	var req RosterPatchRequest
	if err := DecodeValid(r, &req); err != nil {
		WriteServiceError(w, err)
		return
	}
	student, err := services.UpdateRoster(s.DB, studentID, req.Grade, req.Class, req.Roster)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, buildUserDTO(student))
}

// BatchPatchStudents applies roster changes row by row and reports per-item
// outcomes; rows that fail leave the rest untouched.
func (s *Server) BatchPatchStudents(w http.ResponseWriter, r *http.Request) {
	var req RosterBatchRequest
	if err := DecodeValid(r, &req); err != nil {
		WriteServiceError(w, err)
		return
	}
	changes := make([]services.RosterChange, 0, len(req.Items))
	for _, item := range req.Items {
		changes = append(changes, services.RosterChange{
			StudentID: item.ID,
			Grade:     item.Grade,
			Class:     item.Class,
			Roster:    item.Roster,
		})
	}
	result := services.ApplyRosterBatch(changes, func(change services.RosterChange) error {
		_, err := services.UpdateRoster(s.DB, change.StudentID, change.Grade, change.Class, change.Roster)
		return err
	})
	WriteJSON(w, http.StatusOK, result)
}

func (s *Server) StudentReview(w http.ResponseWriter, r *http.Request) {
	studentID := chi.URLParam(r, "studentId")
	if _, err := services.GetUser(s.DB, studentID); err != nil {
		WriteServiceError(w, err)
		return
	}
	weeks, err := services.BuildWeeklyReview(s.DB, studentID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, weeks)
}
