package models

import "time"

const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
)

type User struct {
	ID           string     `db:"id"`
	Email        string     `db:"email"`
	PasswordHash string     `db:"password_hash"`
	DisplayName  string     `db:"display_name"`
	Role         string     `db:"role"`
	Grade        *int       `db:"grade"`
	Class        *int       `db:"class"`
	Roster       *int       `db:"roster"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
	LastLoginAt  *time.Time `db:"last_login_at"`
}

// StudyRecord is one student's study log for one calendar day. Subjects holds
// the raw jsonb subject->minutes mapping; decode it through
// services.DecodeSubjects so legacy string-encoded values keep working.
type StudyRecord struct {
	ID             string    `db:"id"`
	UserID         string    `db:"user_id"`
	Date           time.Time `db:"date"`
	Subjects       []byte    `db:"subjects"`
	Comment        *string   `db:"comment"`
	CommentType    *string   `db:"comment_type"`
	TeacherComment *string   `db:"teacher_comment"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

type WeeklySummary struct {
	ID         string    `db:"id"`
	UserID     string    `db:"user_id"`
	WeekStart  time.Time `db:"week_start"`
	Goal       string    `db:"goal"`
	Reflection string    `db:"reflection"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

type ServerMetricSample struct {
	ID                string    `db:"id"`
	CapturedAt        time.Time `db:"captured_at"`
	ProcessRSSBytes   int64     `db:"process_rss_bytes"`
	SystemMemoryTotal int64     `db:"system_memory_total_bytes"`
	SystemMemoryUsed  int64     `db:"system_memory_used_bytes"`
	DiskTotalBytes    int64     `db:"disk_total_bytes"`
	DiskUsedBytes     int64     `db:"disk_used_bytes"`
	ProcessCpuLoad    float64   `db:"process_cpu_load"`
	SystemCpuLoad     float64   `db:"system_cpu_load"`
}
