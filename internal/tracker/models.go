package tracker

import "tiny-victories/internal/utils"

// Категории дня в месячной статистике
const (
	DayComplete = "complete"
	DayPartial  = "partial"
	DaySnoozed  = "snoozed"
	DayNone     = "none"
)

// Статусы недели
const (
	WeekExcellent    = "excellent"
	WeekGood         = "good"
	WeekNeedsSupport = "needsSupport"
)

// Магические уровни вовлечённости
const (
	LevelNovice     = "novice"
	LevelApprentice = "apprentice"
	LevelMage       = "mage"
	LevelArchmage   = "archmage"
)

type RoutineItem struct {
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// DailyProgress — запись прогресса за один календарный день.
// Ключ хранения: progress_<YYYY-MM-DD>. Запись перезаписывается целиком.
// MorningRoutines/EveningRoutines присутствуют только в новом формате,
// старые записи несут только числовые счётчики.
type DailyProgress struct {
	MorningTotal     int           `json:"morningTotal"`
	EveningTotal     int           `json:"eveningTotal"`
	MorningDone      int           `json:"morningDone"`
	EveningDone      int           `json:"eveningDone"`
	MorningCompleted bool          `json:"morningCompleted"`
	EveningCompleted bool          `json:"eveningCompleted"`
	Snoozed          bool          `json:"snoozed"`
	MorningRoutines  []RoutineItem `json:"morningRoutines,omitempty"`
	EveningRoutines  []RoutineItem `json:"eveningRoutines,omitempty"`
}

// OneTimeTask — разовая задача. Все задачи лежат одним списком
// под глобальным ключом oneTimeTasks.
type OneTimeTask struct {
	ID          string `json:"id"`
	Text        string `json:"text"`
	Completed   bool   `json:"completed"`
	CreatedAt   string `json:"createdAt"`
	DueDate     string `json:"dueDate,omitempty"`
	CompletedAt string `json:"completedAt,omitempty"`
}

// ActiveFor — задача «относится» к дате, если на неё приходится
// срок или факт выполнения
func (t OneTimeTask) ActiveFor(dateStr string) bool {
	return t.DueDate == dateStr || t.CompletedAt == dateStr
}

// StreakData — единственная персистентная запись движка серий.
// freezeDates пересобирается при каждом полном пересчёте.
type StreakData struct {
	CurrentStreak       int      `json:"currentStreak"`
	LongestStreak       int      `json:"longestStreak"`
	LastActiveDate      string   `json:"lastActiveDate,omitempty"`
	FreezeDaysAvailable int      `json:"freezeDaysAvailable"`
	LastFreezeDate      string   `json:"lastFreezeDate,omitempty"`
	FreezeDates         []string `json:"freezeDates"`
}

// DefaultStreak — состояние до первого пересчёта: серия 0, одна заморозка
func DefaultStreak() *StreakData {
	return &StreakData{
		FreezeDaysAvailable: 1,
		FreezeDates:         []string{},
	}
}

type DayActivity struct {
	HasActivity bool `json:"hasActivity"`
	IsSnoozed   bool `json:"isSnoozed"`
}

type MagicLevel struct {
	Level string `json:"level"`
	Name  string `json:"name"`
	Emoji string `json:"emoji"`
}

// MagicLevelFor — ступенчатая функция от процента вовлечённости:
// [0,25) новичок, [25,50) подмастерье, [50,75) маг, [75,100] архимаг
func MagicLevelFor(engagementPercentage int) MagicLevel {
	level := LevelNovice
	switch {
	case engagementPercentage >= 75:
		level = LevelArchmage
	case engagementPercentage >= 50:
		level = LevelMage
	case engagementPercentage >= 25:
		level = LevelApprentice
	}
	return MagicLevel{
		Level: level,
		Name:  utils.GetMagicLevelName(level),
		Emoji: utils.GetMagicLevelEmoji(level),
	}
}

type MonthlyStats struct {
	Month                 string     `json:"month"`
	DaysInMonth           int        `json:"daysInMonth"`
	CompleteDays          int        `json:"completeDays"`
	PartialDays           int        `json:"partialDays"`
	SnoozedDays           int        `json:"snoozedDays"`
	ActiveDays            int        `json:"activeDays"`
	MorningFullDays       int        `json:"morningFullDays"`
	EveningFullDays       int        `json:"eveningFullDays"`
	TotalVictories        int        `json:"totalVictories"`
	TasksCompleted        int        `json:"tasksCompleted"`
	EngagementPercentage  int        `json:"engagementPercentage"`
	MagicLevel            MagicLevel `json:"magicLevel"`
	MorningCompletionRate int        `json:"morningCompletionRate"`
	EveningCompletionRate int        `json:"eveningCompletionRate"`
}

// WeekDayStats — один день недельной сводки
type WeekDayStats struct {
	Date           string `json:"date"`
	Emoji          string `json:"emoji"`
	MorningDone    int    `json:"morningDone"`
	EveningDone    int    `json:"eveningDone"`
	TotalRoutines  int    `json:"totalRoutines"`
	TotalPlanned   int    `json:"totalPlanned"`
	Victories      int    `json:"victories"`
	TasksCompleted int    `json:"tasksCompleted"`
}

type WeeklyStats struct {
	StartDate       string         `json:"startDate"`
	EndDate         string         `json:"endDate"`
	Days            []WeekDayStats `json:"days"`
	MorningFullDays int            `json:"morningFullDays"`
	EveningFullDays int            `json:"eveningFullDays"`
	TotalDaysInWeek int            `json:"totalDaysInWeek"`
	TotalVictories  int            `json:"totalVictories"`
	TasksCompleted  int            `json:"tasksCompleted"`
	MorningRate     int            `json:"morningRate"`
	EveningRate     int            `json:"eveningRate"`
	OverallRate     int            `json:"overallRate"`
	Status          string         `json:"status"`
}
