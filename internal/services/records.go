package services

import (
	"encoding/json"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"studylog-backend-go/internal/models"
)

const (
	CommentTypeText      = "text"
	CommentTypeSignature = "signature"

	DateLayout = "2006-01-02"
)

// NormalizeSubjects parses an incoming subjects payload into a subject->minutes
// map. Older clients send the map JSON-encoded inside a string, newer ones send
// a plain object; both are accepted. Minutes must be non-negative integers.
func NormalizeSubjects(raw json.RawMessage) (map[string]int, error) {
	if len(raw) == 0 {
		return nil, ErrBadRequest("subjects is required")
	}
	var wrapped string
	if err := json.Unmarshal(raw, &wrapped); err == nil {
		raw = json.RawMessage(wrapped)
	}
	values := map[string]float64{}
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, ErrBadRequest("subjects must be a map of subject to minutes")
	}
	subjects := make(map[string]int, len(values))
	for name, minutes := range values {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, ErrBadRequest("subject name must not be empty")
		}
		if minutes < 0 || minutes != math.Trunc(minutes) {
			return nil, ErrBadRequest("minutes must be non-negative integers")
		}
		subjects[name] = int(minutes)
	}
	return subjects, nil
}

// DecodeSubjects is the lenient read-side counterpart of NormalizeSubjects:
// rows written by older iterations may hold a string-encoded map or stray
// non-numeric values, and those must not break listing or aggregation.
func DecodeSubjects(raw []byte) map[string]int {
	subjects := map[string]int{}
	if len(raw) == 0 {
		return subjects
	}
	var wrapped string
	if err := json.Unmarshal(raw, &wrapped); err == nil {
		raw = []byte(wrapped)
	}
	values := map[string]interface{}{}
	if err := json.Unmarshal(raw, &values); err != nil {
		return subjects
	}
	for name, value := range values {
		if minutes, ok := value.(float64); ok {
			subjects[name] = int(minutes)
		}
	}
	return subjects
}

func EncodeSubjects(subjects map[string]int) []byte {
	encoded, err := json.Marshal(subjects)
	if err != nil {
		return []byte("{}")
	}
	return encoded
}

// UpsertRecord writes one row per (user, date). A later write replaces the
// day's subjects and student comment; the teacher comment survives.
func UpsertRecord(db *sqlx.DB, userID string, date time.Time, subjects map[string]int, comment, commentType *string) (models.StudyRecord, error) {
	if len(subjects) == 0 && (comment == nil || strings.TrimSpace(*comment) == "") {
		return models.StudyRecord{}, ErrBadRequest("A record needs study minutes or a comment")
	}
	now := time.Now().UTC()
	record := models.StudyRecord{}
	err := db.Get(&record, `
INSERT INTO study_records (id, user_id, date, subjects, comment, comment_type, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$7)
ON CONFLICT (user_id, date) DO UPDATE
SET subjects = EXCLUDED.subjects,
    comment = EXCLUDED.comment,
    comment_type = EXCLUDED.comment_type,
    updated_at = EXCLUDED.updated_at
RETURNING id, user_id, date, subjects, comment, comment_type, teacher_comment, created_at, updated_at
`, uuid.NewString(), userID, date, EncodeSubjects(subjects), comment, commentType, now)
	if err != nil {
		return models.StudyRecord{}, WrapError(err, "upsert record")
	}
	return record, nil
}

func ListRecords(db *sqlx.DB, userID string) ([]models.StudyRecord, error) {
	records := []models.StudyRecord{}
	err := db.Select(&records, `
SELECT id, user_id, date, subjects, comment, comment_type, teacher_comment, created_at, updated_at
FROM study_records
WHERE user_id = $1
ORDER BY date DESC
`, userID)
	if err != nil {
		return nil, WrapError(err, "list records")
	}
	return records, nil
}

// SetTeacherComment updates the teacher feedback on one record. An id that
// matches nothing is a 404, not a silent no-op.
func SetTeacherComment(db *sqlx.DB, recordID, comment string) error {
	result, err := db.Exec(`
UPDATE study_records SET teacher_comment = $2, updated_at = $3 WHERE id = $1
`, recordID, comment, time.Now().UTC())
	if err != nil {
		return WrapError(err, "set teacher comment")
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return WrapError(err, "set teacher comment")
	}
	if affected == 0 {
		return ErrNotFound("Record not found")
	}
	return nil
}

type BattleStats struct {
	TotalMinutes     int            `json:"totalMinutes"`
	SubjectBreakdown map[string]int `json:"subjectBreakdown"`
	RecordCount      int            `json:"recordCount"`
}

// FoldStats accumulates total and per-subject minutes across records.
func FoldStats(records []models.StudyRecord) BattleStats {
	stats := BattleStats{SubjectBreakdown: map[string]int{}}
	for _, record := range records {
		for subject, minutes := range DecodeSubjects(record.Subjects) {
			stats.SubjectBreakdown[subject] += minutes
			stats.TotalMinutes += minutes
		}
	}
	stats.RecordCount = len(records)
	return stats
}

// AggregateRange computes battle stats for one student over an inclusive date
// range. An inverted range is rejected here, not left to the client.
func AggregateRange(db *sqlx.DB, userID string, start, end time.Time) (BattleStats, error) {
	if start.After(end) {
		return BattleStats{}, ErrBadRequest("startDate must not be after endDate")
	}
	records := []models.StudyRecord{}
	err := db.Select(&records, `
SELECT id, user_id, date, subjects, comment, comment_type, teacher_comment, created_at, updated_at
FROM study_records
WHERE user_id = $1 AND date BETWEEN $2 AND $3
ORDER BY date
`, userID, start, end)
	if err != nil {
		return BattleStats{}, WrapError(err, "aggregate records")
	}
	return FoldStats(records), nil
}
