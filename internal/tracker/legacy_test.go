package tracker

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeVictory(t *testing.T) {
	require.Equal(t, "went_for_walk", NormalizeVictory("Вышел(ла) на прогулку"))
	require.Equal(t, "drank_water", NormalizeVictory("Выпил(а) стакан воды"))

	// Незнакомый текст проходит без изменений
	require.Equal(t, "сыграл(а) на гитаре", NormalizeVictory("сыграл(а) на гитаре"))
	require.Equal(t, "custom_id", NormalizeVictory("custom_id"))
}

func TestNormalizeProgressLegacyCounts(t *testing.T) {
	// Старый формат: только счётчики, хранимые флаги противоречат им
	p := NormalizeProgress(&DailyProgress{
		MorningTotal:     3,
		MorningDone:      3,
		EveningTotal:     2,
		EveningDone:      1,
		MorningCompleted: false, // противоречит done == total
		EveningCompleted: true,  // противоречит done < total
	})

	require.True(t, p.MorningCompleted)
	require.False(t, p.EveningCompleted)
}

func TestNormalizeProgressRoutines(t *testing.T) {
	// Новый формат: счётчики выводятся из списков рутин
	p := NormalizeProgress(&DailyProgress{
		MorningTotal: 99,
		MorningDone:  99,
		MorningRoutines: []RoutineItem{
			{Text: "вода", Completed: true},
			{Text: "зарядка", Completed: false},
		},
		EveningRoutines: []RoutineItem{
			{Text: "дневник", Completed: true},
		},
	})

	require.Equal(t, 2, p.MorningTotal)
	require.Equal(t, 1, p.MorningDone)
	require.False(t, p.MorningCompleted)

	require.Equal(t, 1, p.EveningTotal)
	require.Equal(t, 1, p.EveningDone)
	require.True(t, p.EveningCompleted)
}

func TestNormalizeProgressEmpty(t *testing.T) {
	p := NormalizeProgress(&DailyProgress{})
	// total == 0 не считается завершённым
	require.False(t, p.MorningCompleted)
	require.False(t, p.EveningCompleted)

	require.Nil(t, NormalizeProgress(nil))
}
