package services

import (
	"testing"

	"github.com/stretchr/testify/require"

	"tiny-victories/internal/tracker"
)

func TestWeeklyStatsPartition(t *testing.T) {
	sm := newManager(t)

	// Июнь 2026 начинается в понедельник и закрывается 5 июля
	weeks := sm.Weekly.CalculateWeeklyStats("2026-06")
	require.Len(t, weeks, 5)
	require.Equal(t, "2026-06-01", weeks[0].StartDate)
	require.Equal(t, "2026-06-07", weeks[0].EndDate)
	require.Equal(t, "2026-06-29", weeks[4].StartDate)
	require.Equal(t, "2026-07-05", weeks[4].EndDate)
	require.Len(t, weeks[0].Days, 7)

	// Июль 2026 начинается в среду: первая неделя захватывает конец июня
	weeks = sm.Weekly.CalculateWeeklyStats("2026-07")
	require.Equal(t, "2026-06-29", weeks[0].StartDate)
}

func TestWeeklyStatsFourFullDays(t *testing.T) {
	sm := newManager(t)

	// 4 дня из 7 полностью закрыты, остальные пустые
	for _, dateStr := range []string{"2026-06-01", "2026-06-02", "2026-06-03", "2026-06-04"} {
		saveActive(t, sm, dateStr)
	}

	week := sm.Weekly.CalculateWeeklyStats("2026-06")[0]

	require.Equal(t, 4, week.TotalDaysInWeek)
	require.Equal(t, 4, week.MorningFullDays)
	require.Equal(t, 4, week.EveningFullDays)
	require.Equal(t, 100, week.MorningRate)
	require.Equal(t, 100, week.EveningRate)
	require.Equal(t, 100, week.OverallRate)
	require.Equal(t, tracker.WeekExcellent, week.Status)
}

func TestWeeklyStatsDayEmojis(t *testing.T) {
	sm := newManager(t)
	repo := sm.Repository()

	saveActive(t, sm, "2026-06-01") // обе рутины → 🏆
	require.NoError(t, repo.SaveProgress("2026-06-02", &tracker.DailyProgress{
		MorningTotal: 2, MorningDone: 2, EveningTotal: 2, EveningDone: 1,
	})) // только утро → ⭐
	require.NoError(t, repo.SaveProgress("2026-06-03", &tracker.DailyProgress{
		MorningTotal: 2, MorningDone: 1,
	})) // что-то сделано → 💫
	require.NoError(t, repo.SetSnoozed("2026-06-04", true)) // 💤
	require.NoError(t, repo.AddVictory("2026-06-05", "went_for_walk")) // без рутин, но активен → 💫

	week := sm.Weekly.CalculateWeeklyStats("2026-06")[0]

	require.Equal(t, "🏆", week.Days[0].Emoji)
	require.Equal(t, "⭐", week.Days[1].Emoji)
	require.Equal(t, "💫", week.Days[2].Emoji)
	require.Equal(t, "💤", week.Days[3].Emoji)
	require.Equal(t, "💫", week.Days[4].Emoji)
	require.Equal(t, "", week.Days[5].Emoji)
	require.Equal(t, "", week.Days[6].Emoji)

	require.Equal(t, 5, week.TotalDaysInWeek)
	require.Equal(t, 1, week.TotalVictories)
	require.Equal(t, 3, week.Days[1].TotalRoutines)
	require.Equal(t, 4, week.Days[1].TotalPlanned)
}

func TestWeeklyStatsTasksAndStatus(t *testing.T) {
	sm := newManager(t)
	repo := sm.Repository()

	// Одна выполненная задача относится к дате выполнения
	require.NoError(t, repo.SaveTasks([]tracker.OneTimeTask{
		{ID: "t1", Text: "почта", Completed: true, CreatedAt: "2026-06-01", CompletedAt: "2026-06-02"},
		{ID: "t2", Text: "звонок", Completed: true, CreatedAt: "2026-06-01", DueDate: "2026-06-02"},
		{ID: "t3", Text: "письмо", Completed: false, DueDate: "2026-06-03"},
	}))

	week := sm.Weekly.CalculateWeeklyStats("2026-06")[0]

	require.Equal(t, 2, week.TasksCompleted)
	require.Equal(t, 2, week.Days[1].TasksCompleted)
	// Активен только день задач: рутин нет, проценты нулевые
	require.Equal(t, 1, week.TotalDaysInWeek)
	require.Equal(t, 0, week.MorningRate)
	require.Equal(t, 0, week.OverallRate)
	require.Equal(t, tracker.WeekNeedsSupport, week.Status)
}

func TestWeeklyStatsGoodStatus(t *testing.T) {
	sm := newManager(t)
	repo := sm.Repository()

	// Из двух активных дней один закрыт полностью:
	// rates 50/50, общий 50 → good
	saveActive(t, sm, "2026-06-01")
	require.NoError(t, repo.SaveProgress("2026-06-02", &tracker.DailyProgress{
		MorningTotal: 2, MorningDone: 1,
	}))

	week := sm.Weekly.CalculateWeeklyStats("2026-06")[0]
	require.Equal(t, 50, week.MorningRate)
	require.Equal(t, 50, week.EveningRate)
	require.Equal(t, 50, week.OverallRate)
	require.Equal(t, tracker.WeekGood, week.Status)

	// Кэш хранит последний результат
	require.Equal(t, week, sm.Weekly.Cached("2026-06")[0])
}
