package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studylog-backend-go/internal/models"
)

func day(date string) time.Time {
	parsed, _ := time.Parse(DateLayout, date)
	return parsed
}

func TestWeekStart(t *testing.T) {
	// 2024-01-01 is a Monday
	assert.Equal(t, day("2024-01-01"), WeekStart(day("2024-01-01")))
	assert.Equal(t, day("2024-01-01"), WeekStart(day("2024-01-03")))
	// Sunday belongs to the week that started the previous Monday
	assert.Equal(t, day("2024-01-01"), WeekStart(day("2024-01-07")))
	assert.Equal(t, day("2024-01-08"), WeekStart(day("2024-01-08")))
	// month boundary
	assert.Equal(t, day("2024-01-29"), WeekStart(day("2024-02-01")))
}

func TestGroupByWeek_MergesSummaries(t *testing.T) {
	records := []models.StudyRecord{
		record("2024-01-02", `{"国語":30}`),
		record("2024-01-05", `{"数学":45}`),
		record("2024-01-10", `{"理科":20}`),
	}
	summaries := []models.WeeklySummary{
		{UserID: "student-1", WeekStart: day("2024-01-01"), Goal: "毎日30分", Reflection: "達成できた"},
		{UserID: "student-1", WeekStart: day("2024-01-15"), Goal: "復習する"},
	}

	weeks := GroupByWeek(records, summaries)
	require.Len(t, weeks, 3)

	// newest week first
	assert.Equal(t, "2024-01-15", weeks[0].WeekStart)
	assert.Equal(t, "復習する", weeks[0].Goal)
	assert.Empty(t, weeks[0].Records)

	assert.Equal(t, "2024-01-08", weeks[1].WeekStart)
	assert.Empty(t, weeks[1].Goal)
	require.Len(t, weeks[1].Records, 1)
	assert.Equal(t, "2024-01-10", weeks[1].Records[0].Date)

	assert.Equal(t, "2024-01-01", weeks[2].WeekStart)
	assert.Equal(t, "毎日30分", weeks[2].Goal)
	assert.Equal(t, "達成できた", weeks[2].Reflection)
	require.Len(t, weeks[2].Records, 2)
	// records newest first within the week
	assert.Equal(t, "2024-01-05", weeks[2].Records[0].Date)
	assert.Equal(t, "2024-01-02", weeks[2].Records[1].Date)
}

func TestGroupByWeek_Empty(t *testing.T) {
	assert.Empty(t, GroupByWeek(nil, nil))
}
