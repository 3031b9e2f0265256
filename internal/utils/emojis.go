package utils

// Вспомогательные функции для эмодзи дней и магических уровней

func GetDayEmoji(category string) string {
	switch category {
	case "snoozed":
		return "💤"
	case "full":
		return "🏆"
	case "half":
		return "⭐"
	case "some":
		return "💫"
	default:
		return ""
	}
}

func GetMagicLevelEmoji(level string) string {
	switch level {
	case "novice":
		return "🌱"
	case "apprentice":
		return "✨"
	case "mage":
		return "🔮"
	case "archmage":
		return "🧙"
	default:
		return "🌱"
	}
}

func GetMagicLevelName(level string) string {
	switch level {
	case "novice":
		return "🌱 Новичок"
	case "apprentice":
		return "✨ Подмастерье"
	case "mage":
		return "🔮 Маг"
	case "archmage":
		return "🧙 Архимаг"
	default:
		return level
	}
}
