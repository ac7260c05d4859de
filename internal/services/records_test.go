package services

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studylog-backend-go/internal/models"
)

func TestNormalizeSubjects_Object(t *testing.T) {
	subjects, err := NormalizeSubjects(json.RawMessage(`{"国語":30,"数学":45}`))
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"国語": 30, "数学": 45}, subjects)
}

func TestNormalizeSubjects_StringEncoded(t *testing.T) {
	// older clients double-encode the map
	subjects, err := NormalizeSubjects(json.RawMessage(`"{\"国語\":60}"`))
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"国語": 60}, subjects)
}

func TestNormalizeSubjects_Rejects(t *testing.T) {
	cases := map[string]string{
		"negative minutes": `{"数学":-5}`,
		"fractional":       `{"数学":12.5}`,
		"empty name":       `{"  ":10}`,
		"not a map":        `[1,2,3]`,
		"garbage":          `"not json at all"`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NormalizeSubjects(json.RawMessage(raw))
			require.Error(t, err)
			serr, ok := err.(ServiceError)
			require.True(t, ok)
			assert.Equal(t, 400, serr.Status)
		})
	}
}

func TestNormalizeSubjects_Empty(t *testing.T) {
	_, err := NormalizeSubjects(nil)
	assert.Error(t, err)

	subjects, err := NormalizeSubjects(json.RawMessage(`{}`))
	require.NoError(t, err)
	assert.Empty(t, subjects)
}

func TestDecodeSubjects_Lenient(t *testing.T) {
	assert.Equal(t, map[string]int{"国語": 30}, DecodeSubjects([]byte(`{"国語":30}`)))
	assert.Equal(t, map[string]int{"数学": 45}, DecodeSubjects([]byte(`"{\"数学\":45}"`)))
	// non-numeric values are skipped, not fatal
	assert.Equal(t, map[string]int{"理科": 10}, DecodeSubjects([]byte(`{"理科":10,"社会":"abc"}`)))
	assert.Empty(t, DecodeSubjects([]byte(`totally broken`)))
	assert.Empty(t, DecodeSubjects(nil))
}

func record(date string, subjects string) models.StudyRecord {
	parsed, _ := time.Parse(DateLayout, date)
	return models.StudyRecord{
		ID:       date,
		UserID:   "student-1",
		Date:     parsed,
		Subjects: []byte(subjects),
	}
}

func TestFoldStats(t *testing.T) {
	records := []models.StudyRecord{
		record("2024-01-01", `{"国語":30,"数学":45}`),
		record("2024-01-02", `{"国語":15,"理科":20}`),
		record("2024-01-03", `"{\"数学\":10}"`),
	}

	stats := FoldStats(records)
	assert.Equal(t, 120, stats.TotalMinutes)
	assert.Equal(t, 3, stats.RecordCount)
	assert.Equal(t, map[string]int{"国語": 45, "数学": 55, "理科": 20}, stats.SubjectBreakdown)
}

func TestFoldStats_Empty(t *testing.T) {
	stats := FoldStats(nil)
	assert.Equal(t, 0, stats.TotalMinutes)
	assert.Equal(t, 0, stats.RecordCount)
	assert.Empty(t, stats.SubjectBreakdown)
}

func TestBuildRecordView(t *testing.T) {
	comment := "がんばった"
	commentType := CommentTypeText
	rec := record("2024-01-01", `{"国語":30,"数学":45}`)
	rec.Comment = &comment
	rec.CommentType = &commentType

	view := BuildRecordView(rec)
	assert.Equal(t, "2024-01-01", view.Date)
	assert.Equal(t, 75, view.TotalMinutes)
	assert.Equal(t, map[string]int{"国語": 30, "数学": 45}, view.Subjects)
	require.NotNil(t, view.Comment)
	assert.Equal(t, "がんばった", *view.Comment)
	assert.Nil(t, view.TeacherComment)
}
