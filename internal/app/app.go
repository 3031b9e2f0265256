package app

import (
	"context"
	"log"
	"net/http"
	"time"

	"tiny-victories/internal/api"
	"tiny-victories/internal/config"
	"tiny-victories/internal/services"
	"tiny-victories/internal/storage"
	"tiny-victories/internal/utils"

	"github.com/robfig/cron/v3"
)

type Application struct {
	config   *config.Config
	store    storage.Store
	server   *api.Server
	services *services.ServiceManager
	cron     *cron.Cron
}

func New(cfg *config.Config) (*Application, error) {
	utils.SetLocation(cfg.Calendar.Timezone)

	store, err := storage.NewSQLite(cfg.Database.Path)
	if err != nil {
		return nil, err
	}

	serviceManager := services.NewServiceManager(store)
	server := api.NewServer(serviceManager)

	app := &Application{
		config:   cfg,
		store:    store,
		server:   server,
		services: serviceManager,
		cron:     cron.New(cron.WithLocation(utils.Location())),
	}

	app.setupCronJobs()

	return app, nil
}

func (a *Application) Start() error {
	log.Println("🚀 Запуск приложения...")

	go func() {
		if err := a.server.Start(a.config.Server.Port); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Ошибка HTTP-сервера: %v", err)
		}
	}()

	a.cron.Start()

	// Догоняем серию после простоя: пересчёт покрывает пропущенные дни
	log.Println("🔍 Пересчёт серии после запуска...")
	streak := a.services.Streak.UpdateStreak(false)
	log.Printf("🔥 Серия: %d (рекорд %d, заморозок %d)",
		streak.CurrentStreak, streak.LongestStreak, streak.FreezeDaysAvailable)

	log.Printf("✅ Приложение запущено. API на порту %s", a.config.Server.Port)

	return nil
}

func (a *Application) Stop() error {
	log.Println("🛑 Остановка приложения...")

	a.cron.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.server.Shutdown(ctx); err != nil {
		log.Printf("⚠️ Ошибка остановки сервера: %v", err)
	}

	if err := a.store.Close(); err != nil {
		log.Printf("⚠️ Ошибка закрытия хранилища: %v", err)
	}

	log.Println("✅ Приложение остановлено")
	return nil
}

func (a *Application) setupCronJobs() {
	// Пересчёт серии сразу после полуночи: новый день без активности
	// должен обнулить серию, не дожидаясь запроса клиента
	_, err := a.cron.AddFunc("5 0 * * *", func() {
		streak := a.services.Streak.UpdateStreak(false)
		log.Printf("🔥 Ночной пересчёт серии: %d (рекорд %d)",
			streak.CurrentStreak, streak.LongestStreak)
	})
	if err != nil {
		panic(err)
	}

	// Утренняя сводка вовлечённости за текущий месяц
	_, err = a.cron.AddFunc("0 8 * * *", func() {
		month := time.Now().In(utils.Location()).Format("2006-01")
		stats := a.services.Monthly.CalculateStats(month)
		log.Printf("🔮 Вовлечённость за %s: %d%% — %s", month,
			stats.EngagementPercentage, stats.MagicLevel.Name)
	})
	if err != nil {
		panic(err)
	}
}
