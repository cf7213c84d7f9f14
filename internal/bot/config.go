/*
   YTARbot - YouTube Auto Responder bot
   Copyright (C) 2025  Unbewohnte (Kasyanov Nikolay Alexeevich)

   This program is free software: you can redistribute it and/or modify
   it under the terms of the GNU General Public License as published by
   the Free Software Foundation, either version 3 of the License, or
   (at your option) any later version.

   This program is distributed in the hope that it will be useful,
   but WITHOUT ANY WARRANTY; without even the implied warranty of
   MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
   GNU General Public License for more details.

   You should have received a copy of the GNU General Public License
   along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/

package bot

import (
	"encoding/json"
	"errors"
	"io"
	"os"

	"Unbewohnte/YTARbot/internal/db"
	"Unbewohnte/YTARbot/internal/gemini"
	"Unbewohnte/YTARbot/internal/responder"
)

var CONFIG_PATH string = ""

type TelegramConf struct {
	ApiToken       string  `json:"api_token"`
	Public         bool    `json:"is_public"`
	AllowedUserIDs []int64 `json:"allowed_user_ids"`
}

type DBConf struct {
	File string `json:"file"`
	db   *db.DB
}

type YouTubeConf struct {
	ApiKey          string `json:"api_key"`
	OAuthClientID   string `json:"oauth_client_id"`
	OAuthListenAddr string `json:"oauth_listen_addr"`
}

type GeminiConf struct {
	ApiKey string `json:"api_key"`
	Model  string `json:"model"`
}

// Дополнительные настройки автоответчика
type AdvancedConf struct {
	EnableSentimentAnalysis bool     `json:"enable_sentiment_analysis"`
	MaxResponsesPerDay      int      `json:"max_responses_per_day"`
	BlacklistedWords        []string `json:"blacklisted_words"`
	AutoModeration          bool     `json:"auto_moderation"`
	CustomIntroduction      string   `json:"custom_introduction"`
	RandomizeDelay          bool     `json:"randomize_delay"`
	PrioritizeQuestions     bool     `json:"prioritize_questions"`
	RememberCommenters      bool     `json:"remember_commenters"`
}

type ResponderConf struct {
	Enabled              bool         `json:"enabled"`
	ResponseStyle        string       `json:"response_style"`
	ResponseDelaySeconds int          `json:"response_delay_seconds"`
	KeywordFilters       []string     `json:"keyword_filters"`
	Advanced             AdvancedConf `json:"advanced"`
}

type Config struct {
	Telegram             TelegramConf  `json:"telegram"`
	Debug                bool          `json:"debug"`
	DB                   DBConf        `json:"database"`
	YouTube              YouTubeConf   `json:"youtube"`
	Gemini               GeminiConf    `json:"gemini"`
	Responder            ResponderConf `json:"responder"`
	CheckIntervalMinutes int           `json:"check_interval_minutes"`
}

func (c *Config) OpenDB() (*db.DB, error) {
	var err error
	c.DB.db, err = db.NewDB(c.DB.File)
	if err != nil {
		return nil, err
	}

	return c.DB.db, nil
}

func (c *Config) GetDB() *db.DB {
	return c.DB.db
}

// Снимок настроек конвейера для одного прогона
func (c *Config) ResponderSettings() responder.Settings {
	return responder.Settings{
		Enabled:                 c.Responder.Enabled,
		ResponseStyle:           c.Responder.ResponseStyle,
		ResponseDelaySeconds:    c.Responder.ResponseDelaySeconds,
		KeywordFilters:          c.Responder.KeywordFilters,
		EnableSentimentAnalysis: c.Responder.Advanced.EnableSentimentAnalysis,
		MaxResponsesPerDay:      c.Responder.Advanced.MaxResponsesPerDay,
		BlacklistedWords:        c.Responder.Advanced.BlacklistedWords,
		AutoModeration:          c.Responder.Advanced.AutoModeration,
		CustomIntroduction:      c.Responder.Advanced.CustomIntroduction,
		RandomizeDelay:          c.Responder.Advanced.RandomizeDelay,
		PrioritizeQuestions:     c.Responder.Advanced.PrioritizeQuestions,
		RememberCommenters:      c.Responder.Advanced.RememberCommenters,
	}
}

func DefaultConfig() *Config {
	return &Config{
		Telegram: TelegramConf{
			ApiToken: "tg_token",
			Public:   false,
		},
		DB: DBConf{
			File: "DB.sqlite3",
		},
		YouTube: YouTubeConf{
			ApiKey:          "",
			OAuthClientID:   "",
			OAuthListenAddr: "localhost:8667",
		},
		Gemini: GeminiConf{
			ApiKey: "",
			Model:  gemini.DefaultModel,
		},
		Responder: ResponderConf{
			Enabled:              false,
			ResponseStyle:        "friendly",
			ResponseDelaySeconds: 60,
			KeywordFilters:       []string{},
			Advanced: AdvancedConf{
				EnableSentimentAnalysis: true,
				MaxResponsesPerDay:      50,
				BlacklistedWords:        []string{"spam", "scam", "hack"},
				AutoModeration:          true,
				CustomIntroduction:      "",
				RandomizeDelay:          true,
				PrioritizeQuestions:     true,
				RememberCommenters:      true,
			},
		},
		CheckIntervalMinutes: 5,
		Debug:                false,
	}
}

func (conf *Config) Save(filepath string) error {
	file, err := os.OpenFile(filepath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, os.ModePerm)
	if err != nil {
		return err
	}
	defer file.Close()

	jsonBytes, err := json.MarshalIndent(&conf, "", "\t")
	if err != nil {
		return err
	}

	_, err = file.Write(jsonBytes)

	// Запоминаем, куда сохранили
	CONFIG_PATH = filepath

	return err
}

func ConfigFrom(filepath string) (*Config, error) {
	file, err := os.Open(filepath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	contents, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	var conf Config
	err = json.Unmarshal(contents, &conf)
	if err != nil {
		return nil, err
	}

	// Запоминаем, откуда взяли
	CONFIG_PATH = filepath

	return &conf, nil
}

// Обновляет конфигурационный файл
func (conf *Config) Update() error {
	if CONFIG_PATH == "" {
		return errors.New("неизвестен путь к конфигурационному файлу")
	}

	return conf.Save(CONFIG_PATH)
}
