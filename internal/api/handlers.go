package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"tiny-victories/internal/tracker"
	"tiny-victories/internal/utils"
)

type errorResponse struct {
	Error string `json:"error"`
}

func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, errorResponse{Error: message})
}

// dateParam проверяет параметр :date
func dateParam(c echo.Context) (string, bool) {
	dateStr := c.Param("date")
	if _, err := utils.ParseDate(dateStr); err != nil {
		return "", false
	}
	return dateStr, true
}

func (s *Server) getProgress(c echo.Context) error {
	dateStr, ok := dateParam(c)
	if !ok {
		return badRequest(c, "неверная дата, ожидается YYYY-MM-DD")
	}

	progress := s.services.Repository().GetProgress(dateStr)
	if progress == nil {
		progress = &tracker.DailyProgress{}
	}
	return c.JSON(http.StatusOK, progress)
}

func (s *Server) putProgress(c echo.Context) error {
	dateStr, ok := dateParam(c)
	if !ok {
		return badRequest(c, "неверная дата, ожидается YYYY-MM-DD")
	}

	var progress tracker.DailyProgress
	if err := c.Bind(&progress); err != nil {
		return badRequest(c, "неверное тело запроса")
	}

	if err := s.services.Repository().SaveProgress(dateStr, &progress); err != nil {
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
	}

	// Запись задним числом могла изменить серию
	streak := s.services.Streak.UpdateStreak(false)

	return c.JSON(http.StatusOK, map[string]interface{}{
		"progress": &progress,
		"streak":   streak,
	})
}

func (s *Server) snoozeDay(c echo.Context) error {
	return s.setSnoozed(c, true)
}

func (s *Server) unsnoozeDay(c echo.Context) error {
	return s.setSnoozed(c, false)
}

func (s *Server) setSnoozed(c echo.Context, snoozed bool) error {
	dateStr, ok := dateParam(c)
	if !ok {
		return badRequest(c, "неверная дата, ожидается YYYY-MM-DD")
	}

	if err := s.services.Repository().SetSnoozed(dateStr, snoozed); err != nil {
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
	}

	streak := s.services.Streak.UpdateStreak(false)
	return c.JSON(http.StatusOK, streak)
}

func (s *Server) getVictories(c echo.Context) error {
	dateStr, ok := dateParam(c)
	if !ok {
		return badRequest(c, "неверная дата, ожидается YYYY-MM-DD")
	}

	victories := s.services.Repository().GetVictories(dateStr)
	if victories == nil {
		victories = []string{}
	}
	return c.JSON(http.StatusOK, victories)
}

type addVictoryRequest struct {
	Victory string `json:"victory"`
}

func (s *Server) addVictory(c echo.Context) error {
	dateStr, ok := dateParam(c)
	if !ok {
		return badRequest(c, "неверная дата, ожидается YYYY-MM-DD")
	}

	var req addVictoryRequest
	if err := c.Bind(&req); err != nil || req.Victory == "" {
		return badRequest(c, "нужно поле victory")
	}

	if err := s.services.Repository().AddVictory(dateStr, req.Victory); err != nil {
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
	}

	streak := s.services.Streak.UpdateStreak(false)
	return c.JSON(http.StatusOK, map[string]interface{}{
		"victories": s.services.Repository().GetVictories(dateStr),
		"streak":    streak,
	})
}

func (s *Server) clearVictories(c echo.Context) error {
	dateStr, ok := dateParam(c)
	if !ok {
		return badRequest(c, "неверная дата, ожидается YYYY-MM-DD")
	}

	if err := s.services.Repository().ClearVictories(dateStr); err != nil {
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
	}

	s.services.Streak.UpdateStreak(false)
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) listTasks(c echo.Context) error {
	tasks := s.services.Task.ListTasks()
	if tasks == nil {
		tasks = []tracker.OneTimeTask{}
	}
	return c.JSON(http.StatusOK, tasks)
}

type addTaskRequest struct {
	Text    string `json:"text"`
	DueDate string `json:"dueDate"`
}

func (s *Server) addTask(c echo.Context) error {
	var req addTaskRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "неверное тело запроса")
	}

	task, err := s.services.Task.AddTask(req.Text, req.DueDate)
	if err != nil {
		return badRequest(c, err.Error())
	}
	return c.JSON(http.StatusCreated, task)
}

type updateTaskRequest struct {
	Completed bool `json:"completed"`
}

func (s *Server) updateTask(c echo.Context) error {
	var req updateTaskRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "неверное тело запроса")
	}

	task, err := s.services.Task.SetCompleted(c.Param("id"), req.Completed)
	if err != nil {
		return c.JSON(http.StatusNotFound, errorResponse{Error: err.Error()})
	}

	streak := s.services.Streak.UpdateStreak(false)
	return c.JSON(http.StatusOK, map[string]interface{}{
		"task":   task,
		"streak": streak,
	})
}

func (s *Server) deleteTask(c echo.Context) error {
	if err := s.services.Task.DeleteTask(c.Param("id")); err != nil {
		return c.JSON(http.StatusNotFound, errorResponse{Error: err.Error()})
	}

	s.services.Streak.UpdateStreak(false)
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) getActivity(c echo.Context) error {
	dateStr, ok := dateParam(c)
	if !ok {
		return badRequest(c, "неверная дата, ожидается YYYY-MM-DD")
	}

	hint := c.QueryParam("hint") == "true"
	return c.JSON(http.StatusOK, s.services.Classifier.ClassifyDay(dateStr, hint))
}

func (s *Server) getStreak(c echo.Context) error {
	return c.JSON(http.StatusOK, s.services.Repository().GetStreak())
}

type refreshStreakRequest struct {
	TodayHasActivity bool `json:"todayHasActivity"`
}

func (s *Server) refreshStreak(c echo.Context) error {
	var req refreshStreakRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "неверное тело запроса")
	}
	return c.JSON(http.StatusOK, s.services.Streak.UpdateStreak(req.TodayHasActivity))
}

// monthParam проверяет параметр :month
func monthParam(c echo.Context) (string, bool) {
	monthStr := c.Param("month")
	if _, err := utils.ParseMonth(monthStr); err != nil {
		return "", false
	}
	return monthStr, true
}

func (s *Server) getMonthlyStats(c echo.Context) error {
	monthStr, ok := monthParam(c)
	if !ok {
		return badRequest(c, "неверный месяц, ожидается YYYY-MM")
	}

	// cached=true отдаёт последний пересчитанный результат без обхода
	// хранилища — для быстрого первого рендера экрана статистики
	if c.QueryParam("cached") == "true" {
		if stats := s.services.Monthly.Cached(monthStr); stats != nil {
			return c.JSON(http.StatusOK, stats)
		}
	}
	return c.JSON(http.StatusOK, s.services.Monthly.CalculateStats(monthStr))
}

func (s *Server) getWeeklyStats(c echo.Context) error {
	monthStr, ok := monthParam(c)
	if !ok {
		return badRequest(c, "неверный месяц, ожидается YYYY-MM")
	}

	var weeks []tracker.WeeklyStats
	if c.QueryParam("cached") == "true" {
		weeks = s.services.Weekly.Cached(monthStr)
	}
	if weeks == nil {
		weeks = s.services.Weekly.CalculateWeeklyStats(monthStr)
	}
	if weeks == nil {
		weeks = []tracker.WeeklyStats{}
	}
	return c.JSON(http.StatusOK, weeks)
}

func (s *Server) getMonthStreak(c echo.Context) error {
	monthStr, ok := monthParam(c)
	if !ok {
		return badRequest(c, "неверный месяц, ожидается YYYY-MM")
	}
	return c.JSON(http.StatusOK, map[string]int{
		"monthStreak": s.services.Streak.CalculateMonthStreak(monthStr),
	})
}

func (s *Server) resetAll(c echo.Context) error {
	if err := s.services.Repository().ResetAll(); err != nil {
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}
