package services

import (
	"tiny-victories/internal/storage"
	"tiny-victories/internal/tracker"
)

type ServiceManager struct {
	Classifier *ClassifierService
	Streak     *StreakService
	Monthly    *MonthlyService
	Weekly     *WeeklyService
	Task       *TaskService
	repository *tracker.Repository
}

func NewServiceManager(store storage.Store) *ServiceManager {
	repo := tracker.NewRepository(store)

	return &ServiceManager{
		Classifier: NewClassifierService(repo),
		Streak:     NewStreakService(repo),
		Monthly:    NewMonthlyService(repo),
		Weekly:     NewWeeklyService(repo),
		Task:       NewTaskService(repo),
		repository: repo,
	}
}

func (sm *ServiceManager) Repository() *tracker.Repository {
	return sm.repository
}
