package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"tiny-victories/internal/services"
	"tiny-victories/internal/storage"
	"tiny-victories/internal/tracker"
	"tiny-victories/internal/utils"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	return NewServer(services.NewServiceManager(storage.NewMemory()))
}

func doRequest(s *Server, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)
	return rec
}

func TestProgressEndpoints(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(s, http.MethodPut, "/api/v1/progress/2026-06-01",
		`{"morningTotal":2,"morningDone":2,"eveningTotal":2,"eveningDone":1}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(s, http.MethodGet, "/api/v1/progress/2026-06-01", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var progress tracker.DailyProgress
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &progress))
	require.True(t, progress.MorningCompleted)
	require.False(t, progress.EveningCompleted)

	rec = doRequest(s, http.MethodGet, "/api/v1/progress/01-06-2026", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestVictoryUpdatesStreak(t *testing.T) {
	s := newTestServer(t)
	today := utils.Today()

	rec := doRequest(s, http.MethodPost, "/api/v1/victories/"+today, `{"victory":"praised_myself"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Victories []string            `json:"victories"`
		Streak    *tracker.StreakData `json:"streak"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, []string{"praised_myself"}, resp.Victories)
	require.Equal(t, 1, resp.Streak.CurrentStreak)

	rec = doRequest(s, http.MethodPost, "/api/v1/victories/"+today, `{}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSnoozeEndpoint(t *testing.T) {
	s := newTestServer(t)
	today := utils.Today()

	rec := doRequest(s, http.MethodPost, "/api/v1/progress/"+today+"/snooze", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(s, http.MethodGet, "/api/v1/activity/"+today, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var day tracker.DayActivity
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &day))
	require.True(t, day.IsSnoozed)
	require.False(t, day.HasActivity)
}

func TestTaskLifecycle(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(s, http.MethodPost, "/api/v1/tasks", `{"text":"разобрать почту"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var task tracker.OneTimeTask
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &task))
	require.NotEmpty(t, task.ID)
	require.Equal(t, utils.Today(), task.CreatedAt)

	rec = doRequest(s, http.MethodPatch, "/api/v1/tasks/"+task.ID, `{"completed":true}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Task   *tracker.OneTimeTask `json:"task"`
		Streak *tracker.StreakData  `json:"streak"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, utils.Today(), resp.Task.CompletedAt)
	// Выполненная сегодня задача делает день активным
	require.Equal(t, 1, resp.Streak.CurrentStreak)

	rec = doRequest(s, http.MethodDelete, "/api/v1/tasks/"+task.ID, "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doRequest(s, http.MethodPatch, "/api/v1/tasks/"+task.ID, `{"completed":true}`)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(s, http.MethodPost, "/api/v1/tasks", `{"text":""}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStreakEndpoints(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(s, http.MethodGet, "/api/v1/streak", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var streak tracker.StreakData
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &streak))
	require.Equal(t, 1, streak.FreezeDaysAvailable)

	// Подсказка клиента: рутина уже переключена, записи ещё нет
	rec = doRequest(s, http.MethodPost, "/api/v1/streak/refresh", `{"todayHasActivity":true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &streak))
	require.Equal(t, 1, streak.CurrentStreak)
}

func TestStatsEndpoints(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(s, http.MethodPut, "/api/v1/progress/2026-06-01",
		`{"morningTotal":1,"morningDone":1,"eveningTotal":1,"eveningDone":1}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(s, http.MethodGet, "/api/v1/stats/monthly/2026-06", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var stats tracker.MonthlyStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	require.Equal(t, 1, stats.CompleteDays)
	require.Equal(t, tracker.LevelNovice, stats.MagicLevel.Level)

	rec = doRequest(s, http.MethodGet, "/api/v1/stats/monthly/2026-06?cached=true", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(s, http.MethodGet, "/api/v1/stats/weekly/2026-06", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var weeks []tracker.WeeklyStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &weeks))
	require.Len(t, weeks, 5)
	require.Equal(t, "🏆", weeks[0].Days[0].Emoji)

	rec = doRequest(s, http.MethodGet, "/api/v1/stats/month-streak/2026-06", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(s, http.MethodGet, "/api/v1/stats/monthly/июнь", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestResetEndpoint(t *testing.T) {
	s := newTestServer(t)
	today := utils.Today()

	doRequest(s, http.MethodPost, "/api/v1/victories/"+today, `{"victory":"praised_myself"}`)

	rec := doRequest(s, http.MethodPost, "/api/v1/reset", "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doRequest(s, http.MethodGet, "/api/v1/victories/"+today, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `[]`, rec.Body.String())
}
