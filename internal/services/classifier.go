package services

import (
	"tiny-victories/internal/tracker"
	"tiny-victories/internal/utils"
)

// ClassifierService определяет, был ли день активным, днём отдыха
// или пустым. Используется движком серий и календарём клиента.
type ClassifierService struct {
	repository *tracker.Repository
}

func NewClassifierService(repo *tracker.Repository) *ClassifierService {
	return &ClassifierService{repository: repo}
}

// ClassifyDay загружает записи дня и классифицирует его.
// priorKnownActivity — подсказка от клиента для сегодняшнего дня:
// переключение рутины считается сразу, без ожидания записи.
func (cs *ClassifierService) ClassifyDay(dateStr string, priorKnownActivity bool) tracker.DayActivity {
	hint := priorKnownActivity && dateStr == utils.Today()
	return ClassifyDayRecords(
		dateStr,
		cs.repository.GetProgress(dateStr),
		cs.repository.GetTasks(),
		cs.repository.GetVictories(dateStr),
		hint,
	)
}

// ClassifyDayRecords классифицирует день по уже загруженным записям.
// Порядок проверок фиксирован: подсказка засевает результат, отметка
// отдыха обрывает проверки до задач и побед, затем рутины, задачи, победы.
func ClassifyDayRecords(dateStr string, progress *tracker.DailyProgress, tasks []tracker.OneTimeTask, victories []string, priorKnownActivity bool) tracker.DayActivity {
	result := tracker.DayActivity{HasActivity: priorKnownActivity}

	if progress != nil && progress.Snoozed {
		result.IsSnoozed = true
		return result
	}

	if progress != nil && (progress.MorningDone > 0 || progress.EveningDone > 0) {
		result.HasActivity = true
	}

	if !result.HasActivity {
		for _, task := range tasks {
			if task.Completed && task.ActiveFor(dateStr) {
				result.HasActivity = true
				break
			}
		}
	}

	if !result.HasActivity && len(victories) > 0 {
		result.HasActivity = true
	}

	return result
}
