package services

import (
	"log"
	"math"
	"sync"
	"time"

	"tiny-victories/internal/tracker"
	"tiny-victories/internal/utils"
)

// WeeklyService строит недельные сводки месяца: недели с понедельника,
// на каждый день — глиф активности, по неделе — проценты выполнения
// утренних и вечерних рутин и общий статус.
type WeeklyService struct {
	repository *tracker.Repository

	mu    sync.Mutex
	cache map[string][]tracker.WeeklyStats
}

func NewWeeklyService(repo *tracker.Repository) *WeeklyService {
	return &WeeklyService{
		repository: repo,
		cache:      make(map[string][]tracker.WeeklyStats),
	}
}

// CalculateWeeklyStats пересчитывает недельные сводки месяца YYYY-MM
func (ws *WeeklyService) CalculateWeeklyStats(monthStr string) []tracker.WeeklyStats {
	monthStart, err := utils.ParseMonth(monthStr)
	if err != nil {
		log.Printf("⚠️ Неверный месяц %q: %v", monthStr, err)
		return nil
	}

	monthEnd := monthStart.AddDate(0, 1, -1)
	rangeStart := utils.MondayOnOrBefore(monthStart)
	rangeEnd := utils.SundayOnOrAfter(monthEnd)

	// Все записи диапазона читаются двумя пакетными запросами,
	// не по одному на день
	var allDates []string
	for cursor := rangeStart; !cursor.After(rangeEnd); cursor = cursor.AddDate(0, 0, 1) {
		allDates = append(allDates, utils.FormatDate(cursor))
	}
	progressByDate := ws.repository.GetProgressRange(allDates)
	victoriesByDate := ws.repository.GetVictoriesRange(allDates)
	tasksByDate := completedTasksByDate(ws.repository.GetTasks())

	var weeks []tracker.WeeklyStats
	for weekStart := rangeStart; !weekStart.After(rangeEnd); weekStart = weekStart.AddDate(0, 0, 7) {
		weeks = append(weeks, ws.buildWeek(weekStart, progressByDate, victoriesByDate, tasksByDate))
	}

	ws.mu.Lock()
	ws.cache[monthStr] = weeks
	ws.mu.Unlock()

	return weeks
}

// Cached возвращает последние пересчитанные сводки месяца, если есть
func (ws *WeeklyService) Cached(monthStr string) []tracker.WeeklyStats {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	return ws.cache[monthStr]
}

func (ws *WeeklyService) buildWeek(weekStart time.Time, progressByDate map[string]*tracker.DailyProgress, victoriesByDate map[string][]string, tasksByDate map[string]int) tracker.WeeklyStats {
	week := tracker.WeeklyStats{
		StartDate: utils.FormatDate(weekStart),
		EndDate:   utils.FormatDate(weekStart.AddDate(0, 0, 6)),
	}

	for i := 0; i < 7; i++ {
		dateStr := utils.FormatDate(weekStart.AddDate(0, 0, i))
		progress := progressByDate[dateStr]
		victories := len(victoriesByDate[dateStr])
		tasksDone := tasksByDate[dateStr]

		day := tracker.WeekDayStats{
			Date:           dateStr,
			Victories:      victories,
			TasksCompleted: tasksDone,
		}
		if progress != nil {
			day.MorningDone = progress.MorningDone
			day.EveningDone = progress.EveningDone
			day.TotalPlanned = progress.MorningTotal + progress.EveningTotal
		}
		day.TotalRoutines = day.MorningDone + day.EveningDone

		category := "none"
		switch {
		case progress != nil && progress.Snoozed:
			category = "snoozed"
		case progress != nil && progress.MorningCompleted && progress.EveningCompleted:
			category = "full"
		case progress != nil && (progress.MorningCompleted || progress.EveningCompleted):
			category = "half"
		case day.TotalRoutines > 0:
			category = "some"
		case victories > 0 || tasksDone > 0:
			// Рутин нет, но день всё равно был активным
			category = "some"
		}
		day.Emoji = utils.GetDayEmoji(category)

		if category != "none" {
			week.TotalDaysInWeek++
		}
		if progress != nil {
			if progress.MorningCompleted {
				week.MorningFullDays++
			}
			if progress.EveningCompleted {
				week.EveningFullDays++
			}
		}
		week.TotalVictories += victories
		week.TasksCompleted += tasksDone
		week.Days = append(week.Days, day)
	}

	week.MorningRate = roundPercent(week.MorningFullDays, week.TotalDaysInWeek)
	week.EveningRate = roundPercent(week.EveningFullDays, week.TotalDaysInWeek)
	week.OverallRate = int(math.Round(float64(week.MorningRate+week.EveningRate) / 2))

	switch {
	case week.OverallRate > 70:
		week.Status = tracker.WeekExcellent
	case week.OverallRate >= 40:
		week.Status = tracker.WeekGood
	default:
		week.Status = tracker.WeekNeedsSupport
	}

	return week
}
