package services

import (
	"sort"
	"time"

	"github.com/jmoiron/sqlx"

	"studylog-backend-go/internal/models"
)

// RecordView is the JSON shape of one study record with the subjects map
// already normalized.
type RecordView struct {
	ID             string         `json:"id"`
	UserID         string         `json:"userId"`
	Date           string         `json:"date"`
	Subjects       map[string]int `json:"subjects"`
	TotalMinutes   int            `json:"totalMinutes"`
	Comment        *string        `json:"comment,omitempty"`
	CommentType    *string        `json:"commentType,omitempty"`
	TeacherComment *string        `json:"teacherComment,omitempty"`
}

func BuildRecordView(record models.StudyRecord) RecordView {
	subjects := DecodeSubjects(record.Subjects)
	total := 0
	for _, minutes := range subjects {
		total += minutes
	}
	return RecordView{
		ID:             record.ID,
		UserID:         record.UserID,
		Date:           record.Date.Format(DateLayout),
		Subjects:       subjects,
		TotalMinutes:   total,
		Comment:        record.Comment,
		CommentType:    record.CommentType,
		TeacherComment: record.TeacherComment,
	}
}

// WeekGroup is one Monday-keyed bucket of the review feed: the week's daily
// records plus the goal and reflection from the weekly summary, if any.
type WeekGroup struct {
	WeekStart  string       `json:"weekStart"`
	Goal       string       `json:"goal"`
	Reflection string       `json:"reflection"`
	Records    []RecordView `json:"records"`
}

// WeekStart returns the Monday of the week containing t, at midnight UTC.
func WeekStart(t time.Time) time.Time {
	t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset)
}

// GroupByWeek reconciles daily records and weekly summaries into week buckets,
// newest week first, records within a week newest first. A summary with no
// records still produces a bucket, and vice versa.
func GroupByWeek(records []models.StudyRecord, summaries []models.WeeklySummary) []WeekGroup {
	buckets := map[string]*WeekGroup{}
	bucket := func(weekStart string) *WeekGroup {
		if existing, ok := buckets[weekStart]; ok {
			return existing
		}
		created := &WeekGroup{WeekStart: weekStart, Records: []RecordView{}}
		buckets[weekStart] = created
		return created
	}
	for _, record := range records {
		key := WeekStart(record.Date).Format(DateLayout)
		group := bucket(key)
		group.Records = append(group.Records, BuildRecordView(record))
	}
	for _, summary := range summaries {
		group := bucket(summary.WeekStart.Format(DateLayout))
		group.Goal = summary.Goal
		group.Reflection = summary.Reflection
	}
	weeks := make([]WeekGroup, 0, len(buckets))
	for _, group := range buckets {
		sort.Slice(group.Records, func(i, j int) bool {
			return group.Records[i].Date > group.Records[j].Date
		})
		weeks = append(weeks, *group)
	}
	sort.Slice(weeks, func(i, j int) bool {
		return weeks[i].WeekStart > weeks[j].WeekStart
	})
	return weeks
}

// BuildWeeklyReview loads one student's full record history and weekly
// summaries and groups them for the teacher review screen.
func BuildWeeklyReview(db *sqlx.DB, userID string) ([]WeekGroup, error) {
	records, err := ListRecords(db, userID)
	if err != nil {
		return nil, err
	}
	summaries := []models.WeeklySummary{}
	err = db.Select(&summaries, `
SELECT id, user_id, week_start, goal, reflection, created_at, updated_at
FROM weekly_summaries
WHERE user_id = $1
ORDER BY week_start DESC
`, userID)
	if err != nil {
		return nil, WrapError(err, "list weekly summaries")
	}
	return GroupByWeek(records, summaries), nil
}
