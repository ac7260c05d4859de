package services

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"studylog-backend-go/internal/models"
)

// ListStudents returns students ordered by roster number then name. When both
// grade and class are given, only the matching homeroom is returned; a
// teacher without a class assignment sees everyone.
func ListStudents(db *sqlx.DB, grade, class *int) ([]models.User, error) {
	query := `
SELECT id, email, password_hash, display_name, role, grade, class, roster, created_at, updated_at, last_login_at
FROM users
WHERE role = 'student'`
	args := []interface{}{}
	if grade != nil && class != nil {
		query += ` AND grade = $1 AND class = $2`
		args = append(args, *grade, *class)
	}
	query += `
ORDER BY roster NULLS LAST, display_name, email`
	students := []models.User{}
	if err := db.Select(&students, query, args...); err != nil {
		return nil, WrapError(err, "list students")
	}
	return students, nil
}

func GetUser(db *sqlx.DB, userID string) (models.User, error) {
	user := models.User{}
	err := db.Get(&user, `
SELECT id, email, password_hash, display_name, role, grade, class, roster, created_at, updated_at, last_login_at
FROM users
WHERE id = $1
`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNotFound("User not found")
	}
	if err != nil {
		return models.User{}, WrapError(err, "get user")
	}
	return user, nil
}

// UpdateRoster sets the grade/class/roster assignment of one student. Nil
// clears the corresponding column.
func UpdateRoster(db *sqlx.DB, studentID string, grade, class, roster *int) (models.User, error) {
	student, err := GetUser(db, studentID)
	if err != nil {
		return models.User{}, err
	}
	if student.Role != models.RoleStudent {
		return models.User{}, ErrBadRequest("Roster fields can only be set on students")
	}
	_, err = db.Exec(`
UPDATE users SET grade = $2, class = $3, roster = $4, updated_at = $5 WHERE id = $1
`, studentID, grade, class, roster, time.Now().UTC())
	if err != nil {
		return models.User{}, WrapError(err, "update roster")
	}
	return GetUser(db, studentID)
}

type RosterChange struct {
	StudentID string
	Grade     *int
	Class     *int
	Roster    *int
}

type BatchOutcome struct {
	StudentID string `json:"id"`
	OK        bool   `json:"ok"`
	Error     string `json:"error,omitempty"`
}

type BatchResult struct {
	Items     []BatchOutcome `json:"items"`
	Succeeded int            `json:"succeeded"`
	Failed    int            `json:"failed"`
}

// ApplyRosterBatch applies each change independently in order and reports a
// per-item outcome. There is no rollback: a failure leaves earlier rows
// updated, and the caller decides whether to retry the rest.
func ApplyRosterBatch(changes []RosterChange, apply func(RosterChange) error) BatchResult {
	result := BatchResult{Items: make([]BatchOutcome, 0, len(changes))}
	for _, change := range changes {
		outcome := BatchOutcome{StudentID: change.StudentID, OK: true}
		if err := apply(change); err != nil {
			outcome.OK = false
			outcome.Error = err.Error()
			result.Failed++
		} else {
			result.Succeeded++
		}
		result.Items = append(result.Items, outcome)
	}
	return result
}
