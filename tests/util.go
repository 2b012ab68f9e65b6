// Package testutil provides a fake portal backend and client plumbing for
// package tests.
package testutil

import (
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/everyedu/portal/core"
	"github.com/everyedu/portal/core/session"
	apisvc "github.com/everyedu/portal/services/api"
	logsvc "github.com/everyedu/portal/services/logger"
	inmemstate "github.com/everyedu/portal/storage/state/inmem"
)

// CreatedAlert records one POST /alerts/create call.
type CreatedAlert struct {
	StudentID int    `json:"student_id"`
	Kind      string `json:"alert_type"`
	Message   string `json:"message"`
}

// Backend is an in-process portal backend with canned fixtures. Every route
// records its call under "METHOD /path" so tests can assert on request
// counts (debounce, no-refetch-on-dismiss, and the like).
type Backend struct {
	srv *httptest.Server

	mu    sync.Mutex
	calls map[string]int

	// fixtures; set before exercising the client
	Login        apisvc.LoginResponse
	LoginStatus  int // 0 means 200
	Unread       []apisvc.Alert
	Roster       apisvc.RosterPage
	Records      map[int][]apisvc.WellbeingRecord
	Summary      apisvc.AttendanceSummary
	Absent       []apisvc.AbsentStudent
	Correlation  []apisvc.CorrelationRow
	Heatmap      []apisvc.HeatmapCell
	Stress       []apisvc.StressPoint
	LastSearch   string // search param of the latest students-status call
	MarkedRead   []int
	Created      []CreatedAlert
	ForceStatus  int                     // when set, every route answers with it
	CreateStatus func(studentID int) int // per-recipient alert-create status; 0 means 201
}

func NewBackend() *Backend {
	b := &Backend{
		calls:   make(map[string]int),
		Records: make(map[int][]apisvc.WellbeingRecord),
	}

	app := echo.New()
	app.HideBanner = true

	app.POST("/api/auth/login", b.login)
	app.POST("/api/auth/register", b.register)
	app.POST("/api/wellbeing/record", b.ok(http.StatusCreated))
	app.GET("/api/wellbeing/records/:id", b.studentRecords)
	app.GET("/api/wellbeing/stress-over-time", b.json(func() interface{} { return b.Stress }))
	app.GET("/api/wellbeing/heatmap-data", b.json(func() interface{} { return b.Heatmap }))
	app.GET("/api/wellbeing/students-status", b.studentsStatus)
	app.POST("/api/attendance/record", b.ok(http.StatusCreated))
	app.GET("/api/attendance/absent-students", b.json(func() interface{} { return b.Absent }))
	app.GET("/api/attendance/attendance-grades-correlation", b.json(func() interface{} { return b.Correlation }))
	app.GET("/api/attendance/summary", b.json(func() interface{} { return b.Summary }))
	app.POST("/api/alerts/create", b.createAlert)
	app.GET("/api/alerts/unread", b.json(func() interface{} { return b.Unread }))
	app.PUT("/api/alerts/mark-read/:id", b.markRead)

	b.srv = httptest.NewServer(app)
	return b
}

func (b *Backend) URL() string { return b.srv.URL + "/api" }
func (b *Backend) Close()      { b.srv.Close() }

// Calls returns how many times "METHOD /path" was hit.
func (b *Backend) Calls(key string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[key]
}

func (b *Backend) record(ctx echo.Context) (forced int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls[ctx.Request().Method+" "+ctx.Path()]++
	return b.ForceStatus
}

func (b *Backend) json(data func() interface{}) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		if st := b.record(ctx); st != 0 {
			return ctx.JSON(st, echo.Map{"error": "forced failure"})
		}
		b.mu.Lock()
		defer b.mu.Unlock()
		return ctx.JSON(http.StatusOK, data())
	}
}

func (b *Backend) ok(status int) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		if st := b.record(ctx); st != 0 {
			return ctx.JSON(st, echo.Map{"error": "forced failure"})
		}
		return ctx.JSON(status, echo.Map{"message": "ok"})
	}
}

func (b *Backend) login(ctx echo.Context) error {
	if st := b.record(ctx); st != 0 {
		return ctx.JSON(st, echo.Map{"error": "forced failure"})
	}
	b.mu.Lock()
	status, resp := b.LoginStatus, b.Login
	b.mu.Unlock()
	if status == 0 {
		status = http.StatusOK
	}
	if status != http.StatusOK {
		return ctx.JSON(status, echo.Map{"error": "Invalid username or password"})
	}
	return ctx.JSON(status, resp)
}

func (b *Backend) register(ctx echo.Context) error {
	if st := b.record(ctx); st != 0 {
		return ctx.JSON(st, echo.Map{"error": "forced failure"})
	}
	return ctx.JSON(http.StatusCreated, echo.Map{"message": "User registered successfully", "user_id": 1})
}

func (b *Backend) studentRecords(ctx echo.Context) error {
	if st := b.record(ctx); st != 0 {
		return ctx.JSON(st, echo.Map{"error": "forced failure"})
	}
	id, _ := strconv.Atoi(ctx.Param("id"))
	b.mu.Lock()
	records := b.Records[id]
	b.mu.Unlock()
	if records == nil {
		records = []apisvc.WellbeingRecord{}
	}
	return ctx.JSON(http.StatusOK, records)
}

func (b *Backend) studentsStatus(ctx echo.Context) error {
	if st := b.record(ctx); st != 0 {
		return ctx.JSON(st, echo.Map{"error": "forced failure"})
	}
	b.mu.Lock()
	b.LastSearch = ctx.QueryParam("search")
	roster := b.Roster
	b.mu.Unlock()
	return ctx.JSON(http.StatusOK, roster)
}

func (b *Backend) createAlert(ctx echo.Context) error {
	if st := b.record(ctx); st != 0 {
		return ctx.JSON(st, echo.Map{"error": "forced failure"})
	}
	var alert CreatedAlert
	if err := ctx.Bind(&alert); err != nil {
		return ctx.JSON(http.StatusBadRequest, echo.Map{"error": "bad payload"})
	}
	b.mu.Lock()
	per := b.CreateStatus
	b.mu.Unlock()
	if per != nil {
		if st := per(alert.StudentID); st != 0 && st != http.StatusCreated {
			return ctx.JSON(st, echo.Map{"error": "forced failure"})
		}
	}
	b.mu.Lock()
	b.Created = append(b.Created, alert)
	b.mu.Unlock()
	return ctx.JSON(http.StatusCreated, echo.Map{"message": "Alert created"})
}

func (b *Backend) markRead(ctx echo.Context) error {
	if st := b.record(ctx); st != 0 {
		return ctx.JSON(st, echo.Map{"error": "forced failure"})
	}
	id, _ := strconv.Atoi(ctx.Param("id"))
	b.mu.Lock()
	b.MarkedRead = append(b.MarkedRead, id)
	kept := b.Unread[:0]
	for _, a := range b.Unread {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	b.Unread = kept
	b.mu.Unlock()
	return ctx.JSON(http.StatusOK, echo.Map{"message": "Alert marked as read"})
}

// NewConfig returns a config pointed at the given backend URL with short
// windows suitable for tests.
func NewConfig(baseURL string) *core.Config {
	conf := &core.Config{AppName: "Every Education", Env: "TEST", Debug: true}
	conf.API.BaseURL = baseURL
	conf.API.Timeout = 5 * time.Second
	conf.Portal.SearchDebounce = 30 * time.Millisecond
	conf.Portal.RosterPageSize = 50
	conf.Portal.AbsenceDays = 30
	conf.Portal.AbsenceRate = 0.8
	conf.Portal.HistoryDays = 30
	conf.Portal.HighStressLevel = 7
	return conf
}

func NewLogger() core.Logger {
	return logsvc.NewConsoleLogger(log.New(os.Stdout, "test ", log.LstdFlags))
}

// NewClient wires a client against the backend with an in-memory session.
func NewClient(b *Backend) (*apisvc.Client, *session.Store) {
	sessions := session.NewStore(inmemstate.New(), NewLogger())
	client := apisvc.NewClient(NewConfig(b.URL()), sessions, NewLogger())
	return client, sessions
}
