package main

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rhyrak/go-pick/pkg/model"
)

func testRouter() *gin.Engine {
	return newRouter(testServer(0))
}

func testServer(idle time.Duration) *server {
	gin.SetMode(gin.TestMode)
	sessions := []model.Session{
		{FullCode: "CSC101L1", CourseName: "Intro", Days: "MW", StartTime: "9:00 AM", EndTime: "10:15 AM"},
		{FullCode: "CSC101L2", CourseName: "Intro", Days: "TR", StartTime: "9:00 AM", EndTime: "10:15 AM"},
		{FullCode: "CSC101L3", CourseName: "Intro", Days: "F", StartTime: "9:00 AM", EndTime: "11:45 AM"},
		{FullCode: "MTH201L1", CourseName: "Calc", Days: "MW", StartTime: "9:30 AM", EndTime: "10:45 AM"},
		{FullCode: "ENG100L1", CourseName: "Writing", Days: "MTWRF", StartTime: "8:00 AM", EndTime: "12:00 PM"},
	}
	return newServer(sessions, idle, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func do(t *testing.T, r *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, scheduleResponse) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp scheduleResponse
	if w.Code == http.StatusOK || w.Code == http.StatusCreated {
		_ = json.Unmarshal(w.Body.Bytes(), &resp)
	}
	return w, resp
}

func TestGetCourses(t *testing.T) {
	r := testRouter()
	w, _ := do(t, r, http.MethodGet, "/courses", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var body struct {
		Courses []struct {
			BaseCode string `json:"base_code"`
		} `json:"courses"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if len(body.Courses) != 3 || body.Courses[0].BaseCode != "CSC101" {
		t.Fatalf("courses = %+v", body.Courses)
	}
}

func TestGenerateAndNavigate(t *testing.T) {
	r := testRouter()
	w, resp := do(t, r, http.MethodPost, "/schedules", generateRequest{Courses: []string{"CSC101", "MTH201"}})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d body = %s", w.Code, w.Body)
	}
	if resp.Status != "ready" || resp.Count != 2 || resp.Index != 0 || resp.ID == "" {
		t.Fatalf("unexpected response %+v", resp)
	}
	if resp.Schedule[0].SectionID != "CSC101L2" {
		t.Fatalf("first schedule = %+v", resp.Schedule)
	}

	path := "/schedules/" + resp.ID
	for i := 0; i < 3; i++ {
		_, resp = do(t, r, http.MethodPost, path+"/next", nil)
	}
	if resp.Index != 1 || resp.Schedule[0].SectionID != "CSC101L3" {
		t.Fatalf("after next: %+v", resp)
	}
	for i := 0; i < 3; i++ {
		_, resp = do(t, r, http.MethodPost, path+"/prev", nil)
	}
	if resp.Index != 0 {
		t.Fatalf("after prev: index %d", resp.Index)
	}

	_, resp = do(t, r, http.MethodGet, path, nil)
	if resp.Index != 0 || resp.Count != 2 {
		t.Fatalf("get: %+v", resp)
	}

	w, _ = do(t, r, http.MethodDelete, path, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", w.Code)
	}
	w, _ = do(t, r, http.MethodGet, path, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("get after delete status = %d", w.Code)
	}
}

func TestGenerateWithPreferences(t *testing.T) {
	r := testRouter()
	_, resp := do(t, r, http.MethodPost, "/schedules", generateRequest{
		Courses:     []string{"CSC101"},
		Preferences: []string{"minimize_days"},
	})
	// L1 and L2 meet on two days, L3 only on Friday.
	if resp.Count != 1 || resp.Score != 1 || resp.Schedule[0].SectionID != "CSC101L3" {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestGenerateNoSchedules(t *testing.T) {
	r := testRouter()
	w, resp := do(t, r, http.MethodPost, "/schedules", generateRequest{Courses: []string{"CSC101", "ENG100"}})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d", w.Code)
	}
	if resp.Status != "no_schedules" || resp.Count != 0 || resp.Schedule != nil {
		t.Fatalf("unexpected response %+v", resp)
	}

	_, resp = do(t, r, http.MethodPost, "/schedules/"+resp.ID+"/next", nil)
	if resp.Status != "no_schedules" || resp.Index != 0 {
		t.Fatalf("navigating an empty result: %+v", resp)
	}
}

func TestGenerateErrors(t *testing.T) {
	r := testRouter()
	tests := []struct {
		name string
		req  generateRequest
	}{
		{"no courses", generateRequest{}},
		{"unknown course", generateRequest{Courses: []string{"PHY100"}}},
		{"unknown preference", generateRequest{Courses: []string{"CSC101"}, Preferences: []string{"no_mondays"}}},
		{"bad cutoff", generateRequest{Courses: []string{"CSC101"}, Preferences: []string{"no_before"}, BeforeCutoff: "dawn"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, _ := do(t, r, http.MethodPost, "/schedules", tt.req)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", w.Code)
			}
		})
	}

	w, _ := do(t, r, http.MethodPost, "/schedules/missing/next", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("navigate unknown id status = %d", w.Code)
	}
}

func TestIdleSessionsEvicted(t *testing.T) {
	srv := testServer(10 * time.Minute)
	now := time.Date(2026, 1, 12, 9, 0, 0, 0, time.UTC)
	srv.now = func() time.Time { return now }
	r := newRouter(srv)

	_, stale := do(t, r, http.MethodPost, "/schedules", generateRequest{Courses: []string{"CSC101"}})
	_, active := do(t, r, http.MethodPost, "/schedules", generateRequest{Courses: []string{"MTH201"}})

	now = now.Add(8 * time.Minute)
	if w, _ := do(t, r, http.MethodPost, "/schedules/"+active.ID+"/next", nil); w.Code != http.StatusOK {
		t.Fatalf("active session status = %d", w.Code)
	}

	now = now.Add(5 * time.Minute)
	if n := srv.evictIdle(); n != 1 {
		t.Fatalf("evicted %d sessions, want 1", n)
	}
	if w, _ := do(t, r, http.MethodGet, "/schedules/"+stale.ID, nil); w.Code != http.StatusNotFound {
		t.Fatalf("idle session status = %d, want 404", w.Code)
	}
	if w, _ := do(t, r, http.MethodGet, "/schedules/"+active.ID, nil); w.Code != http.StatusOK {
		t.Fatalf("recently used session status = %d", w.Code)
	}

	now = now.Add(11 * time.Minute)
	if w, _ := do(t, r, http.MethodGet, "/schedules/"+active.ID, nil); w.Code != http.StatusNotFound {
		t.Fatalf("expired session served on lookup: %d", w.Code)
	}
	if len(srv.states) != 0 {
		t.Fatalf("%d sessions left", len(srv.states))
	}
}

func TestGetScheduleCSV(t *testing.T) {
	r := testRouter()
	_, resp := do(t, r, http.MethodPost, "/schedules", generateRequest{Courses: []string{"CSC101", "MTH201"}})

	w, _ := do(t, r, http.MethodGet, "/schedules/"+resp.ID+"/csv", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Fatalf("content type = %q", ct)
	}
	body := w.Body.String()
	if !strings.HasPrefix(body, "course_code,section,day,start_time,end_time,room\n") || !strings.Contains(body, "CSC101L2") {
		t.Fatalf("unexpected csv:\n%s", body)
	}

	_, empty := do(t, r, http.MethodPost, "/schedules", generateRequest{Courses: []string{"CSC101", "ENG100"}})
	if w, _ := do(t, r, http.MethodGet, "/schedules/"+empty.ID+"/csv", nil); w.Code != http.StatusConflict {
		t.Fatalf("no-schedules export status = %d, want 409", w.Code)
	}
	if w, _ := do(t, r, http.MethodGet, "/schedules/missing/csv", nil); w.Code != http.StatusNotFound {
		t.Fatalf("unknown id status = %d", w.Code)
	}
}
