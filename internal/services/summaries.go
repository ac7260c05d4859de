package services

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"studylog-backend-go/internal/models"
)

// UpsertWeeklySummary writes the goal/reflection pair for the week containing
// weekDate. The key is normalized to the week's Monday, so any day of the
// week addresses the same row.
func UpsertWeeklySummary(db *sqlx.DB, userID string, weekDate time.Time, goal, reflection string) (models.WeeklySummary, error) {
	weekStart := WeekStart(weekDate)
	now := time.Now().UTC()
	summary := models.WeeklySummary{}
	err := db.Get(&summary, `
INSERT INTO weekly_summaries (id, user_id, week_start, goal, reflection, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$6)
ON CONFLICT (user_id, week_start) DO UPDATE
SET goal = EXCLUDED.goal,
    reflection = EXCLUDED.reflection,
    updated_at = EXCLUDED.updated_at
RETURNING id, user_id, week_start, goal, reflection, created_at, updated_at
`, uuid.NewString(), userID, weekStart, goal, reflection, now)
	if err != nil {
		return models.WeeklySummary{}, WrapError(err, "upsert weekly summary")
	}
	return summary, nil
}

func GetWeeklySummary(db *sqlx.DB, userID string, weekDate time.Time) (models.WeeklySummary, error) {
	summary := models.WeeklySummary{}
	err := db.Get(&summary, `
SELECT id, user_id, week_start, goal, reflection, created_at, updated_at
FROM weekly_summaries
WHERE user_id = $1 AND week_start = $2
`, userID, WeekStart(weekDate))
	if errors.Is(err, sql.ErrNoRows) {
		return models.WeeklySummary{}, ErrNotFound("Weekly summary not found")
	}
	if err != nil {
		return models.WeeklySummary{}, WrapError(err, "get weekly summary")
	}
	return summary, nil
}
