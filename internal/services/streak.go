package services

import (
	"log"
	"sync"

	"tiny-victories/internal/tracker"
	"tiny-victories/internal/utils"
)

// StreakService пересчитывает серию активных дней по всей истории.
// Полный пересчёт вместо инкрементального состояния: победа, внесённая
// задним числом, корректно меняет серию. История ограничена реальным
// сроком использования, записи читаются пакетно.
type StreakService struct {
	repository *tracker.Repository

	// Пересчёт — это цикл load-recompute-store, параллельные вызовы
	// теряли бы записи друг друга
	mu sync.Mutex
}

func NewStreakService(repo *tracker.Repository) *StreakService {
	return &StreakService{repository: repo}
}

// UpdateStreak проигрывает историю от самой ранней записи до сегодня,
// сохраняет и возвращает итоговое состояние серии.
func (ss *StreakService) UpdateStreak(todayHasActivity bool) *tracker.StreakData {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	today := utils.Today()
	streak := ss.repository.GetStreak()
	tasks := ss.repository.GetTasks()

	dates := ss.historyRange(today, tasks)
	progressByDate := ss.repository.GetProgressRange(dates)
	victoriesByDate := ss.repository.GetVictoriesRange(dates)

	// Серия и даты заморозок пересобираются с нуля,
	// longestStreak и запас заморозок переносятся из прошлого пересчёта
	streak.CurrentStreak = 0
	streak.LastActiveDate = ""
	streak.FreezeDates = []string{}

	// Контрольная проверка пополнения; авторитетна проверка в цикле
	replenishFreeze(streak, today)

	for _, cursor := range dates {
		replenishFreeze(streak, cursor)

		hint := todayHasActivity && cursor == today
		day := ClassifyDayRecords(cursor, progressByDate[cursor], tasks, victoriesByDate[cursor], hint)

		switch {
		case day.HasActivity:
			streak.CurrentStreak++
			streak.LastActiveDate = cursor
		case day.IsSnoozed:
			// День отдыха продолжает серию без заморозки
			streak.CurrentStreak++
		case cursor == today:
			// Сегодняшняя пустота обнуляет сразу и заморозку не тратит
			streak.CurrentStreak = 0
		case streak.CurrentStreak > 0 && streak.FreezeDaysAvailable > 0:
			streak.FreezeDaysAvailable--
			streak.LastFreezeDate = cursor
			streak.FreezeDates = append(streak.FreezeDates, cursor)
			streak.CurrentStreak++
		default:
			streak.CurrentStreak = 0
		}

		if streak.CurrentStreak > streak.LongestStreak {
			streak.LongestStreak = streak.CurrentStreak
		}
	}

	if err := ss.repository.SaveStreak(streak); err != nil {
		log.Printf("⚠️ Ошибка сохранения серии: %v", err)
	}

	return streak
}

// CalculateMonthStreak возвращает самую длинную серию внутри одного
// месяца. Заморозки здесь не применяются: это свойство всей истории,
// а не месячного среза.
func (ss *StreakService) CalculateMonthStreak(monthStr string) int {
	monthStart, err := utils.ParseMonth(monthStr)
	if err != nil {
		log.Printf("⚠️ Неверный месяц %q: %v", monthStr, err)
		return 0
	}

	today := utils.Today()
	var dates []string
	for i := 0; i < utils.DaysInMonth(monthStart); i++ {
		dateStr := utils.FormatDate(monthStart.AddDate(0, 0, i))
		if dateStr > today {
			break
		}
		dates = append(dates, dateStr)
	}

	tasks := ss.repository.GetTasks()
	progressByDate := ss.repository.GetProgressRange(dates)
	victoriesByDate := ss.repository.GetVictoriesRange(dates)

	longest, run := 0, 0
	for _, dateStr := range dates {
		day := ClassifyDayRecords(dateStr, progressByDate[dateStr], tasks, victoriesByDate[dateStr], false)
		if day.HasActivity || day.IsSnoozed {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 0
		}
	}

	return longest
}

// historyRange возвращает все даты от самой ранней записи до сегодня
func (ss *StreakService) historyRange(today string, tasks []tracker.OneTimeTask) []string {
	earliest := today
	if history := ss.repository.HistoryDates(); len(history) > 0 && history[0] < earliest {
		earliest = history[0]
	}
	for _, task := range tasks {
		if task.DueDate != "" && task.DueDate < earliest {
			earliest = task.DueDate
		}
		if task.CompletedAt != "" && task.CompletedAt < earliest {
			earliest = task.CompletedAt
		}
	}

	if _, err := utils.ParseDate(earliest); err != nil {
		log.Printf("⚠️ Неверная дата в истории %q, пересчёт только за сегодня", earliest)
		earliest = today
	}

	var dates []string
	for cursor := earliest; cursor <= today; cursor = utils.AddDays(cursor, 1) {
		dates = append(dates, cursor)
	}
	return dates
}

// replenishFreeze пополняет запас заморозок: не чаще раза в 7 дней
// и не больше одной
func replenishFreeze(streak *tracker.StreakData, cursor string) {
	if streak.LastFreezeDate == "" {
		return
	}
	if utils.DaysBetween(streak.LastFreezeDate, cursor) >= 7 {
		if streak.FreezeDaysAvailable < 1 {
			streak.FreezeDaysAvailable = 1
		}
		streak.LastFreezeDate = cursor
	}
}
