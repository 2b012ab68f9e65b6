package apisvc

// Wire types for the portal backend. Field tags track the backend's JSON
// contract; nullable columns map to pointers.

// Alert kinds produced by the backend and by staff actions.
const (
	AlertHighStress       = "high_stress"
	AlertLowSleep         = "low_sleep"
	AlertLowAttendance    = "low_attendance"
	AlertWellbeingSupport = "wellbeing_support"

	// legacy kinds still present in older rows
	AlertWellbeing  = "wellbeing"
	AlertAttendance = "attendance"
)

type Credentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	UserID      int    `json:"user_id"`
	Username    string `json:"username"`
	Role        string `json:"role"`
}

type NewAccount struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type RegisterResponse struct {
	Message string `json:"message"`
	UserID  int    `json:"user_id"`
}

// NewWellbeingRecord is one day's self-report. Comments and requests are
// free-text and optional.
type NewWellbeingRecord struct {
	StudentID   int    `json:"student_id"`
	SleepLevel  int    `json:"sleep_level"`
	StressLevel int    `json:"stress_level"`
	Mood        string `json:"mood"`
	Comments    string `json:"comments,omitempty"`
	Requests    string `json:"requests,omitempty"`
}

type WellbeingRecord struct {
	ID           int     `json:"id"`
	StudentID    int     `json:"student_id"`
	SleepLevel   int     `json:"sleep_level"`
	StressLevel  int     `json:"stress_level"`
	Mood         string  `json:"mood"`
	Notes        *string `json:"mental_health_notes"`
	RecordedDate string  `json:"recorded_date"`
}

// StressPoint carries one point of the stress-over-time series. The backend
// emits two shapes: per-student rows ({recorded_date, stress_level}) and
// daily aggregates ({date, avg_stress}); When and Level normalize both.
type StressPoint struct {
	Date         string   `json:"date"`
	RecordedDate string   `json:"recorded_date"`
	StressLevel  *float64 `json:"stress_level"`
	AvgStress    *float64 `json:"avg_stress"`
}

func (p StressPoint) When() string {
	if p.Date != "" {
		return p.Date
	}
	return p.RecordedDate
}

func (p StressPoint) Level() float64 {
	if p.AvgStress != nil {
		return *p.AvgStress
	}
	if p.StressLevel != nil {
		return *p.StressLevel
	}
	return 0
}

type HeatmapCell struct {
	ID          int      `json:"id"`
	FirstName   string   `json:"first_name"`
	LastName    string   `json:"last_name"`
	AvgStress   *float64 `json:"avg_stress"`
	MinSleep    *int     `json:"min_sleep"`
	RecordCount int      `json:"record_count"`
}

// StudentStatus is the roster/search aggregate: identity plus the latest
// self-report snapshot. HasFilledToday arrives as 0/1.
type StudentStatus struct {
	ID             int     `json:"id"`
	StudentID      string  `json:"student_id"`
	FirstName      string  `json:"first_name"`
	LastName       string  `json:"last_name"`
	Email          string  `json:"email"`
	HasFilledToday int     `json:"has_filled_today"`
	LastSubmission *string `json:"last_submission"`
	LatestStress   *int    `json:"latest_stress"`
	LatestMood     *string `json:"latest_mood"`
	LatestSleep    *int    `json:"latest_sleep"`
}

func (s StudentStatus) FilledToday() bool { return s.HasFilledToday != 0 }

// RosterPage is the paginated students-status response.
type RosterPage struct {
	Students   []StudentStatus `json:"students"`
	Total      int             `json:"total"`
	Page       int             `json:"page"`
	PerPage    int             `json:"per_page"`
	TotalPages int             `json:"total_pages"`
}

type AttendanceRecord struct {
	ID           int    `json:"id"`
	StudentID    int    `json:"student_id"`
	ClassDate    string `json:"class_date"`
	Present      int    `json:"present"`
	RecordedDate string `json:"recorded_date"`
}

type AbsentStudent struct {
	ID             int     `json:"id"`
	FirstName      string  `json:"first_name"`
	LastName       string  `json:"last_name"`
	StudentID      string  `json:"student_id"`
	PresentCount   int     `json:"present_count"`
	TotalClasses   int     `json:"total_classes"`
	AttendanceRate float64 `json:"attendance_rate"`
}

type CorrelationRow struct {
	ID             int      `json:"id"`
	FirstName      string   `json:"first_name"`
	LastName       string   `json:"last_name"`
	PresentCount   int      `json:"present_count"`
	TotalClasses   int      `json:"total_classes"`
	AttendanceRate float64  `json:"attendance_rate"`
	AvgGrade       *float64 `json:"avg_grade"`
	MinGrade       *float64 `json:"min_grade"`
	MaxGrade       *float64 `json:"max_grade"`
}

type AttendanceSummary struct {
	TotalStudents         int     `json:"total_students"`
	TotalPresent          int     `json:"total_present"`
	TotalAbsent           int     `json:"total_absent"`
	OverallAttendanceRate float64 `json:"overall_attendance_rate"`
}

type Grade struct {
	ID              int     `json:"id"`
	StudentID       int     `json:"student_id"`
	AssignmentID    int     `json:"assignment_id"`
	Grade           float64 `json:"grade"`
	Feedback        *string `json:"feedback"`
	AssignmentTitle string  `json:"assignment_title"`
	DueDate         string  `json:"due_date"`
}

type AssignmentGrade struct {
	ID        int     `json:"id"`
	Grade     float64 `json:"grade"`
	Feedback  *string `json:"feedback"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	SID       string  `json:"sid"`
}

type GradeStatistics struct {
	ClassAverage   *float64 `json:"class_average"`
	MinGrade       *float64 `json:"min_grade"`
	MaxGrade       *float64 `json:"max_grade"`
	StudentsGraded int      `json:"students_graded"`
	TotalGrades    int      `json:"total_grades"`
}

type PerformanceRow struct {
	ID                     int      `json:"id"`
	FirstName              string   `json:"first_name"`
	LastName               string   `json:"last_name"`
	AvgGrade               *float64 `json:"avg_grade"`
	AttendanceRate         *float64 `json:"attendance_rate"`
	TotalAttendanceRecords int      `json:"total_attendance_records"`
}

// Alert is a one-way read-flag notification about a student condition.
type Alert struct {
	ID          int    `json:"id"`
	StudentID   int    `json:"student_id"`
	Kind        string `json:"alert_type"`
	Message     string `json:"message"`
	IsRead      int    `json:"is_read"`
	CreatedDate string `json:"created_date"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
}

type CheckWellbeingResult struct {
	AlertsCreated int `json:"alerts_created"`
}
