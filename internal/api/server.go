package api

import (
	"context"
	"log"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"tiny-victories/internal/services"
)

// Server — HTTP-интерфейс ядра для мобильного клиента
type Server struct {
	echo     *echo.Echo
	services *services.ServiceManager
}

func NewServer(sm *services.ServiceManager) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())

	s := &Server{
		echo:     e,
		services: sm,
	}
	s.registerRoutes()

	return s
}

func (s *Server) registerRoutes() {
	g := s.echo.Group("/api/v1")

	g.GET("/progress/:date", s.getProgress)
	g.PUT("/progress/:date", s.putProgress)
	g.POST("/progress/:date/snooze", s.snoozeDay)
	g.DELETE("/progress/:date/snooze", s.unsnoozeDay)

	g.GET("/victories/:date", s.getVictories)
	g.POST("/victories/:date", s.addVictory)
	g.DELETE("/victories/:date", s.clearVictories)

	g.GET("/tasks", s.listTasks)
	g.POST("/tasks", s.addTask)
	g.PATCH("/tasks/:id", s.updateTask)
	g.DELETE("/tasks/:id", s.deleteTask)

	g.GET("/activity/:date", s.getActivity)
	g.GET("/streak", s.getStreak)
	g.POST("/streak/refresh", s.refreshStreak)

	g.GET("/stats/monthly/:month", s.getMonthlyStats)
	g.GET("/stats/weekly/:month", s.getWeeklyStats)
	g.GET("/stats/month-streak/:month", s.getMonthStreak)

	g.POST("/reset", s.resetAll)
}

func (s *Server) Start(port string) error {
	log.Printf("🌐 HTTP API слушает порт %s", port)
	return s.echo.Start(":" + port)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
