package config

import (
	"log"
	"os"
)

type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Database struct {
		Path string `yaml:"path"`
	} `yaml:"database"`
	Calendar struct {
		Timezone string `yaml:"timezone"`
	} `yaml:"calendar"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	cfg.Server.Port = getEnv("PORT", "8080")
	cfg.Database.Path = getEnv("DB_PATH", "/data/tiny-victories.db")
	// Пустая зона = системная; даты всегда локально-календарные
	cfg.Calendar.Timezone = getEnv("APP_TZ", "")

	log.Printf("✅ Конфигурация загружена: порт=%s, БД=%s", cfg.Server.Port, cfg.Database.Path)

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
