package tracker

// Старые версии приложения хранили победы локализованным текстом.
// Таблица переводит известные тексты в стабильные идентификаторы,
// незнакомый текст проходит без изменений.
var legacyVictoryIDs = map[string]string{
	"Выпил(а) стакан воды":          "drank_water",
	"Вышел(ла) на прогулку":         "went_for_walk",
	"Сделал(а) зарядку":             "did_stretching",
	"Позвонил(а) близкому человеку": "called_loved_one",
	"Лёг(ла) спать вовремя":         "slept_on_time",
	"Приготовил(а) себе еду":        "cooked_for_myself",
	"Похвалил(а) себя":              "praised_myself",
	"Провёл(а) время без телефона":  "phone_free_time",
	"Прочитал(а) пару страниц":      "read_a_bit",
}

// NormalizeVictory приводит запись победы к стабильному идентификатору
func NormalizeVictory(v string) string {
	if id, ok := legacyVictoryIDs[v]; ok {
		return id
	}
	return v
}

func NormalizeVictories(victories []string) []string {
	result := make([]string, len(victories))
	for i, v := range victories {
		result[i] = NormalizeVictory(v)
	}
	return result
}

// NormalizeProgress приводит запись прогресса к единому виду.
// Если запись в новом формате (со списками рутин), счётчики выводятся
// из списков. Флаги завершённости всегда выводятся из счётчиков:
// хранимым булевым значениям не доверяем, источник истины один.
func NormalizeProgress(p *DailyProgress) *DailyProgress {
	if p == nil {
		return nil
	}

	if len(p.MorningRoutines) > 0 {
		p.MorningTotal = len(p.MorningRoutines)
		p.MorningDone = 0
		for _, r := range p.MorningRoutines {
			if r.Completed {
				p.MorningDone++
			}
		}
	}
	if len(p.EveningRoutines) > 0 {
		p.EveningTotal = len(p.EveningRoutines)
		p.EveningDone = 0
		for _, r := range p.EveningRoutines {
			if r.Completed {
				p.EveningDone++
			}
		}
	}

	p.MorningCompleted = p.MorningTotal > 0 && p.MorningDone == p.MorningTotal
	p.EveningCompleted = p.EveningTotal > 0 && p.EveningDone == p.EveningTotal

	return p
}
