package services

import (
	"log"
	"math"
	"sync"

	"tiny-victories/internal/tracker"
	"tiny-victories/internal/utils"
)

// MonthlyService считает месячную статистику вовлечённости и магический
// уровень. Результаты — чистые представления, пересчитываются по запросу
// и кэшируются в памяти до следующего пересчёта.
type MonthlyService struct {
	repository *tracker.Repository

	mu    sync.Mutex
	cache map[string]*tracker.MonthlyStats
}

func NewMonthlyService(repo *tracker.Repository) *MonthlyService {
	return &MonthlyService{
		repository: repo,
		cache:      make(map[string]*tracker.MonthlyStats),
	}
}

// CalculateStats пересчитывает статистику месяца YYYY-MM
func (ms *MonthlyService) CalculateStats(monthStr string) *tracker.MonthlyStats {
	stats := &tracker.MonthlyStats{Month: monthStr}

	monthStart, err := utils.ParseMonth(monthStr)
	if err != nil {
		log.Printf("⚠️ Неверный месяц %q: %v", monthStr, err)
		stats.MagicLevel = tracker.MagicLevelFor(0)
		return stats
	}

	stats.DaysInMonth = utils.DaysInMonth(monthStart)

	dates := make([]string, 0, stats.DaysInMonth)
	for i := 0; i < stats.DaysInMonth; i++ {
		dates = append(dates, utils.FormatDate(monthStart.AddDate(0, 0, i)))
	}

	progressByDate := ms.repository.GetProgressRange(dates)
	victoriesByDate := ms.repository.GetVictoriesRange(dates)
	tasks := ms.repository.GetTasks()
	tasksByDate := completedTasksByDate(tasks)

	for _, dateStr := range dates {
		progress := progressByDate[dateStr]
		victories := len(victoriesByDate[dateStr])

		taskActive := false
		for _, task := range tasks {
			if task.Completed && task.ActiveFor(dateStr) {
				taskActive = true
				break
			}
		}

		category := tracker.DayNone
		switch {
		case progress != nil && progress.Snoozed:
			category = tracker.DaySnoozed
		case progress != nil && progress.MorningCompleted && progress.EveningCompleted:
			category = tracker.DayComplete
		case progress != nil && (progress.MorningDone > 0 || progress.EveningDone > 0):
			category = tracker.DayPartial
		}

		// День без рутин, но с победами или задачами показывается в
		// календаре активным — учитываем его как частичный
		if category == tracker.DayNone && (victories > 0 || taskActive) {
			category = tracker.DayPartial
		}

		switch category {
		case tracker.DayComplete:
			stats.CompleteDays++
		case tracker.DayPartial:
			stats.PartialDays++
		case tracker.DaySnoozed:
			stats.SnoozedDays++
		}

		if progress != nil {
			if progress.MorningCompleted {
				stats.MorningFullDays++
			}
			if progress.EveningCompleted {
				stats.EveningFullDays++
			}
		}

		stats.TotalVictories += victories
		stats.TasksCompleted += tasksByDate[dateStr]
	}

	stats.ActiveDays = stats.CompleteDays + stats.PartialDays + stats.SnoozedDays
	stats.EngagementPercentage = roundPercent(stats.ActiveDays, stats.DaysInMonth)
	stats.MagicLevel = tracker.MagicLevelFor(stats.EngagementPercentage)
	stats.MorningCompletionRate = roundPercent(stats.MorningFullDays, stats.ActiveDays)
	stats.EveningCompletionRate = roundPercent(stats.EveningFullDays, stats.ActiveDays)

	ms.mu.Lock()
	ms.cache[monthStr] = stats
	ms.mu.Unlock()

	return stats
}

// Cached возвращает последний пересчитанный результат месяца, если есть
func (ms *MonthlyService) Cached(monthStr string) *tracker.MonthlyStats {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return ms.cache[monthStr]
}

func roundPercent(part, whole int) int {
	if whole == 0 {
		return 0
	}
	return int(math.Round(100 * float64(part) / float64(whole)))
}

// completedTasksByDate строит карту дата → число выполненных задач.
// Задача относится к дате выполнения, при её отсутствии — к сроку.
func completedTasksByDate(tasks []tracker.OneTimeTask) map[string]int {
	result := make(map[string]int)
	for _, task := range tasks {
		if !task.Completed {
			continue
		}
		dateStr := task.CompletedAt
		if dateStr == "" {
			dateStr = task.DueDate
		}
		if dateStr != "" {
			result[dateStr]++
		}
	}
	return result
}
