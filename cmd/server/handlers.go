package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rhyrak/go-pick/internal/csvio"
	"github.com/rhyrak/go-pick/internal/scheduler"
	"github.com/rhyrak/go-pick/pkg/model"
)

// server keeps one navigation state per browsing session. Every state
// change swaps the whole State value under mu. Sessions unused for longer
// than idle are dropped; idle 0 keeps them until deleted.
type server struct {
	sessions  []model.Session
	offerings []scheduler.Offering
	log       *slog.Logger
	idle      time.Duration
	now       func() time.Time

	mu     sync.Mutex
	states map[string]entry
}

type entry struct {
	state    scheduler.State
	lastUsed time.Time
}

func newServer(sessions []model.Session, idle time.Duration, log *slog.Logger) *server {
	return &server{
		sessions:  sessions,
		offerings: scheduler.Offerings(sessions),
		log:       log,
		idle:      idle,
		now:       time.Now,
		states:    make(map[string]entry),
	}
}

func (s *server) expired(e entry, now time.Time) bool {
	return s.idle > 0 && now.Sub(e.lastUsed) > s.idle
}

// lookup returns the state under id and marks it used. Callers hold mu.
func (s *server) lookup(id string) (scheduler.State, bool) {
	e, ok := s.states[id]
	if !ok {
		return scheduler.State{}, false
	}
	now := s.now()
	if s.expired(e, now) {
		delete(s.states, id)
		return scheduler.State{}, false
	}
	e.lastUsed = now
	s.states[id] = e
	return e.state, true
}

// store saves st under id. Callers hold mu.
func (s *server) store(id string, st scheduler.State) {
	s.states[id] = entry{state: st, lastUsed: s.now()}
}

// evictIdle drops every expired session and returns how many went.
func (s *server) evictIdle() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	n := 0
	for id, e := range s.states {
		if s.expired(e, now) {
			delete(s.states, id)
			n++
		}
	}
	return n
}

// sweep runs evictIdle every interval until ctx is done.
func (s *server) sweep(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if n := s.evictIdle(); n > 0 {
				s.log.Info("idle sessions evicted", "count", n)
			}
		case <-ctx.Done():
			return
		}
	}
}

type generateRequest struct {
	Courses      []string `json:"courses"`
	Preferences  []string `json:"preferences"`
	BeforeCutoff string   `json:"before_cutoff"`
	AfterCutoff  string   `json:"after_cutoff"`
}

type scheduleResponse struct {
	ID        string         `json:"id"`
	Status    string         `json:"status"`
	Index     int            `json:"index"`
	Count     int            `json:"count"`
	Score     int            `json:"score"`
	Generated int            `json:"generated"`
	Schedule  model.Schedule `json:"schedule"`
}

func response(id string, st scheduler.State) scheduleResponse {
	cur, _ := st.Current()
	return scheduleResponse{
		ID:        id,
		Status:    st.Status().String(),
		Index:     st.Index(),
		Count:     st.Len(),
		Score:     st.Score(),
		Generated: st.Generated(),
		Schedule:  cur,
	}
}

func (s *server) handleGetCourses(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"courses": s.offerings,
	})
}

func (s *server) handlePostSchedules(ctx *gin.Context) {
	var req generateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	prefs, err := scheduler.ParsePreferences(req.Preferences, req.BeforeCutoff, req.AfterCutoff)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	catalog, warnings, err := scheduler.BuildCatalog(s.sessions, req.Courses)
	for _, w := range warnings {
		s.log.Warn("value replaced by default", "section", w.Section, "field", w.Field, "value", w.Value)
	}
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, scheduler.ErrNoCourses) || errors.Is(err, scheduler.ErrUnknownCourse) || errors.Is(err, scheduler.ErrNoSections) {
			status = http.StatusBadRequest
		}
		ctx.JSON(status, gin.H{"error": err.Error()})
		return
	}

	s.evictIdle()

	st := scheduler.Generate(catalog, prefs)
	id := uuid.NewString()
	s.mu.Lock()
	s.store(id, st)
	s.mu.Unlock()

	s.log.Info("schedules generated", "id", id, "courses", len(catalog), "valid", st.Generated(), "best", st.Len())
	ctx.JSON(http.StatusCreated, response(id, st))
}

func (s *server) handleGetSchedule(ctx *gin.Context) {
	id := ctx.Param("id")

	s.mu.Lock()
	st, ok := s.lookup(id)
	s.mu.Unlock()
	if !ok {
		ctx.Status(http.StatusNotFound)
		return
	}
	ctx.JSON(http.StatusOK, response(id, st))
}

// handleGetScheduleCSV returns the current schedule of a session as CSV.
func (s *server) handleGetScheduleCSV(ctx *gin.Context) {
	id := ctx.Param("id")

	s.mu.Lock()
	st, ok := s.lookup(id)
	s.mu.Unlock()
	if !ok {
		ctx.Status(http.StatusNotFound)
		return
	}
	cur, ok := st.Current()
	if !ok {
		ctx.JSON(http.StatusConflict, gin.H{"error": "no schedule to export", "status": st.Status().String()})
		return
	}

	out, err := csvio.ExportScheduleString(cur)
	if err != nil {
		s.log.Error("exporting schedule", "id", id, "error", err)
		ctx.Status(http.StatusInternalServerError)
		return
	}
	ctx.Header("Content-Disposition", `attachment; filename="schedule.csv"`)
	ctx.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(out))
}

func (s *server) handleNavigate(step int) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id := ctx.Param("id")

		s.mu.Lock()
		st, ok := s.lookup(id)
		if ok {
			if step > 0 {
				st = st.Next()
			} else {
				st = st.Prev()
			}
			s.store(id, st)
		}
		s.mu.Unlock()

		if !ok {
			ctx.Status(http.StatusNotFound)
			return
		}
		ctx.JSON(http.StatusOK, response(id, st))
	}
}

func (s *server) handleDeleteSchedule(ctx *gin.Context) {
	id := ctx.Param("id")

	s.mu.Lock()
	_, ok := s.lookup(id)
	delete(s.states, id)
	s.mu.Unlock()

	if !ok {
		ctx.Status(http.StatusNotFound)
		return
	}
	ctx.Status(http.StatusNoContent)
}
