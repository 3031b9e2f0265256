package tracker

import (
	"encoding/json"
	"log"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"tiny-victories/internal/storage"
	"tiny-victories/internal/utils"
)

// Схема ключей хранилища. Должна совпадать с мобильным клиентом бит-в-бит.
const (
	ProgressKeyPrefix  = "progress_"
	VictoriesKeyPrefix = "victories_"
	TasksKey           = "oneTimeTasks"
	StreakKey          = "streakData"
)

func ProgressKey(dateStr string) string {
	return ProgressKeyPrefix + dateStr
}

func VictoriesKey(dateStr string) string {
	return VictoriesKeyPrefix + dateStr
}

// Repository — типизированный доступ к записям трекера поверх key-value
// хранилища. Ошибки чтения и битый JSON не прерывают расчёты:
// повреждённая запись считается отсутствующей (см. журнал).
type Repository struct {
	store storage.Store
}

func NewRepository(store storage.Store) *Repository {
	return &Repository{store: store}
}

// GetProgress возвращает прогресс за день или nil, если записи нет
func (r *Repository) GetProgress(dateStr string) *DailyProgress {
	raw, ok, err := r.store.Get(ProgressKey(dateStr))
	if err != nil {
		log.Printf("⚠️ Ошибка чтения прогресса за %s: %v", dateStr, err)
		return nil
	}
	if !ok {
		return nil
	}
	return decodeProgress(dateStr, raw)
}

func decodeProgress(dateStr, raw string) *DailyProgress {
	var p DailyProgress
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		log.Printf("⚠️ Битая запись прогресса за %s: %v", dateStr, err)
		return nil
	}
	return NormalizeProgress(&p)
}

func (r *Repository) SaveProgress(dateStr string, p *DailyProgress) error {
	NormalizeProgress(p)
	raw, err := json.Marshal(p)
	if err != nil {
		return errors.Wrap(err, "ошибка сериализации прогресса")
	}
	return r.store.Set(ProgressKey(dateStr), string(raw))
}

// SetSnoozed помечает или снимает отметку дня отдыха
func (r *Repository) SetSnoozed(dateStr string, snoozed bool) error {
	p := r.GetProgress(dateStr)
	if p == nil {
		p = &DailyProgress{}
	}
	p.Snoozed = snoozed
	return r.SaveProgress(dateStr, p)
}

// GetVictories возвращает нормализованный список побед за день
func (r *Repository) GetVictories(dateStr string) []string {
	raw, ok, err := r.store.Get(VictoriesKey(dateStr))
	if err != nil {
		log.Printf("⚠️ Ошибка чтения побед за %s: %v", dateStr, err)
		return nil
	}
	if !ok {
		return nil
	}
	return decodeVictories(dateStr, raw)
}

func decodeVictories(dateStr, raw string) []string {
	var victories []string
	if err := json.Unmarshal([]byte(raw), &victories); err != nil {
		log.Printf("⚠️ Битая запись побед за %s: %v", dateStr, err)
		return nil
	}
	return NormalizeVictories(victories)
}

// AddVictory дописывает победу в конец списка (read-modify-write)
func (r *Repository) AddVictory(dateStr, victory string) error {
	victories := append(r.GetVictories(dateStr), NormalizeVictory(victory))
	raw, err := json.Marshal(victories)
	if err != nil {
		return errors.Wrap(err, "ошибка сериализации побед")
	}
	return r.store.Set(VictoriesKey(dateStr), string(raw))
}

// ClearVictories очищает победы за день (ежедневный сброс)
func (r *Repository) ClearVictories(dateStr string) error {
	return r.store.Remove(VictoriesKey(dateStr))
}

// GetTasks возвращает все разовые задачи с нормализованными датами
func (r *Repository) GetTasks() []OneTimeTask {
	raw, ok, err := r.store.Get(TasksKey)
	if err != nil {
		log.Printf("⚠️ Ошибка чтения задач: %v", err)
		return nil
	}
	if !ok {
		return nil
	}

	var tasks []OneTimeTask
	if err := json.Unmarshal([]byte(raw), &tasks); err != nil {
		log.Printf("⚠️ Битая запись задач: %v", err)
		return nil
	}

	for i := range tasks {
		tasks[i].CreatedAt = utils.NormalizeDateString(tasks[i].CreatedAt)
		tasks[i].DueDate = utils.NormalizeDateString(tasks[i].DueDate)
		tasks[i].CompletedAt = utils.NormalizeDateString(tasks[i].CompletedAt)
	}

	return tasks
}

func (r *Repository) SaveTasks(tasks []OneTimeTask) error {
	raw, err := json.Marshal(tasks)
	if err != nil {
		return errors.Wrap(err, "ошибка сериализации задач")
	}
	return r.store.Set(TasksKey, string(raw))
}

// GetStreak возвращает сохранённое состояние серии или состояние по умолчанию
func (r *Repository) GetStreak() *StreakData {
	raw, ok, err := r.store.Get(StreakKey)
	if err != nil {
		log.Printf("⚠️ Ошибка чтения серии: %v", err)
		return DefaultStreak()
	}
	if !ok {
		return DefaultStreak()
	}

	var streak StreakData
	if err := json.Unmarshal([]byte(raw), &streak); err != nil {
		log.Printf("⚠️ Битая запись серии: %v", err)
		return DefaultStreak()
	}
	if streak.FreezeDates == nil {
		streak.FreezeDates = []string{}
	}
	return &streak
}

func (r *Repository) SaveStreak(streak *StreakData) error {
	raw, err := json.Marshal(streak)
	if err != nil {
		return errors.Wrap(err, "ошибка сериализации серии")
	}
	return r.store.Set(StreakKey, string(raw))
}

// HistoryDates возвращает отсортированные даты, по которым есть записи
// прогресса или побед
func (r *Repository) HistoryDates() []string {
	keys, err := r.store.ListAllKeys()
	if err != nil {
		log.Printf("⚠️ Ошибка чтения списка ключей: %v", err)
		return nil
	}

	seen := make(map[string]bool)
	var dates []string
	for _, key := range keys {
		var dateStr string
		switch {
		case strings.HasPrefix(key, ProgressKeyPrefix):
			dateStr = strings.TrimPrefix(key, ProgressKeyPrefix)
		case strings.HasPrefix(key, VictoriesKeyPrefix):
			dateStr = strings.TrimPrefix(key, VictoriesKeyPrefix)
		default:
			continue
		}
		if !seen[dateStr] {
			seen[dateStr] = true
			dates = append(dates, dateStr)
		}
	}

	sort.Strings(dates)
	return dates
}

// GetProgressRange пакетно загружает прогресс за набор дат
func (r *Repository) GetProgressRange(dates []string) map[string]*DailyProgress {
	keys := make([]string, len(dates))
	for i, d := range dates {
		keys[i] = ProgressKey(d)
	}

	values, err := r.store.MultiGet(keys)
	if err != nil {
		log.Printf("⚠️ Ошибка пакетного чтения прогресса: %v", err)
		return map[string]*DailyProgress{}
	}

	result := make(map[string]*DailyProgress, len(values))
	for _, d := range dates {
		if raw, ok := values[ProgressKey(d)]; ok {
			if p := decodeProgress(d, raw); p != nil {
				result[d] = p
			}
		}
	}
	return result
}

// GetVictoriesRange пакетно загружает победы за набор дат
func (r *Repository) GetVictoriesRange(dates []string) map[string][]string {
	keys := make([]string, len(dates))
	for i, d := range dates {
		keys[i] = VictoriesKey(d)
	}

	values, err := r.store.MultiGet(keys)
	if err != nil {
		log.Printf("⚠️ Ошибка пакетного чтения побед: %v", err)
		return map[string][]string{}
	}

	result := make(map[string][]string, len(values))
	for _, d := range dates {
		if raw, ok := values[VictoriesKey(d)]; ok {
			if v := decodeVictories(d, raw); len(v) > 0 {
				result[d] = v
			}
		}
	}
	return result
}

// ResetAll удаляет всю историю: прогресс, победы, задачи и серию
func (r *Repository) ResetAll() error {
	keys, err := r.store.ListAllKeys()
	if err != nil {
		return errors.Wrap(err, "ошибка чтения списка ключей")
	}

	var toRemove []string
	for _, key := range keys {
		if strings.HasPrefix(key, ProgressKeyPrefix) ||
			strings.HasPrefix(key, VictoriesKeyPrefix) ||
			key == TasksKey || key == StreakKey {
			toRemove = append(toRemove, key)
		}
	}

	return r.store.MultiRemove(toRemove)
}
