package services

import (
	"fmt"

	"github.com/google/uuid"

	"tiny-victories/internal/tracker"
	"tiny-victories/internal/utils"
)

// TaskService управляет разовыми задачами. Все задачи лежат одним
// списком под глобальным ключом, изменение — read-modify-write всего
// списка.
type TaskService struct {
	repository *tracker.Repository
}

func NewTaskService(repo *tracker.Repository) *TaskService {
	return &TaskService{repository: repo}
}

func (ts *TaskService) ListTasks() []tracker.OneTimeTask {
	return ts.repository.GetTasks()
}

func (ts *TaskService) AddTask(text, dueDate string) (*tracker.OneTimeTask, error) {
	if text == "" {
		return nil, fmt.Errorf("текст задачи пуст")
	}

	task := tracker.OneTimeTask{
		ID:        uuid.NewString(),
		Text:      text,
		CreatedAt: utils.Today(),
		DueDate:   utils.NormalizeDateString(dueDate),
	}

	tasks := append(ts.repository.GetTasks(), task)
	if err := ts.repository.SaveTasks(tasks); err != nil {
		return nil, err
	}
	return &task, nil
}

// SetCompleted отмечает задачу выполненной сегодняшним днём
// или снимает отметку
func (ts *TaskService) SetCompleted(taskID string, completed bool) (*tracker.OneTimeTask, error) {
	tasks := ts.repository.GetTasks()
	for i := range tasks {
		if tasks[i].ID != taskID {
			continue
		}

		tasks[i].Completed = completed
		if completed {
			tasks[i].CompletedAt = utils.Today()
		} else {
			tasks[i].CompletedAt = ""
		}

		if err := ts.repository.SaveTasks(tasks); err != nil {
			return nil, err
		}
		return &tasks[i], nil
	}

	return nil, fmt.Errorf("задача %s не найдена", taskID)
}

func (ts *TaskService) DeleteTask(taskID string) error {
	tasks := ts.repository.GetTasks()
	filtered := tasks[:0]
	for _, task := range tasks {
		if task.ID != taskID {
			filtered = append(filtered, task)
		}
	}

	if len(filtered) == len(tasks) {
		return fmt.Errorf("задача %s не найдена", taskID)
	}

	return ts.repository.SaveTasks(filtered)
}
