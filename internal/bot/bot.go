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
	"context"
	"log"
	"strings"
	"time"

	"Unbewohnte/YTARbot/internal/auth"
	"Unbewohnte/YTARbot/internal/db"
	"Unbewohnte/YTARbot/internal/gemini"
	"Unbewohnte/YTARbot/internal/responder"
	"Unbewohnte/YTARbot/internal/youtube"

	"github.com/mymmrac/telego"
	"github.com/robfig/cron/v3"
)

type Bot struct {
	api      *telego.Bot
	conf     *Config
	db       *db.DB
	commands []Command

	youtube   *youtube.Client
	gemini    *gemini.Client
	auth      *auth.Manager
	responder *responder.Responder
	cron      *cron.Cron
}

func NewBot(config *Config) (*Bot, error) {
	api, err := telego.NewBot(config.Telegram.ApiToken)
	if err != nil {
		return nil, err
	}

	return &Bot{
		api:  api,
		conf: config,
	}, nil
}

func (bot *Bot) Init() {
	database, err := bot.conf.OpenDB()
	if err != nil {
		log.Panic(err)
	}
	bot.db = database

	bot.youtube = youtube.NewClient(bot.conf.YouTube.ApiKey)
	bot.auth = auth.NewManager(bot.db, bot.conf.YouTube.OAuthClientID, bot.conf.YouTube.OAuthListenAddr)

	// Генератора может не быть, пока не настроен ключ Gemini
	var generator responder.ReplyGenerator
	if bot.conf.Gemini.ApiKey != "" {
		client, err := gemini.NewClient(context.Background(), bot.conf.Gemini.ApiKey, bot.conf.Gemini.Model)
		if err != nil {
			log.Printf("Не удалось создать клиент Gemini: %v", err)
		} else {
			bot.gemini = client
			generator = client
		}
	}

	bot.responder = responder.New(
		bot.db,
		bot.youtube,
		generator,
		bot.auth,
		func() responder.Settings { return bot.conf.ResponderSettings() },
	)

	bot.NewCommand(Command{
		Name:        "help",
		Description: "Напечатать вспомогательное сообщение",
		Group:       "Общее",
		Call:        bot.Help,
	})

	bot.NewCommand(Command{
		Name:        "about",
		Description: "Напечатать информацию о боте",
		Group:       "Общее",
		Call:        bot.About,
	})

	bot.NewCommand(Command{
		Name:        "conf",
		Description: "Написать текущую конфигурацию",
		Group:       "Общее",
		Call:        bot.PrintConfig,
	})

	bot.NewCommand(Command{
		Name:        "togglepublic",
		Description: "Включить или выключить публичный/приватный доступ к боту",
		Group:       "Телеграм",
		Call:        bot.TogglePublicity,
	})

	bot.NewCommand(Command{
		Name:        "adduser",
		Description: "Добавить доступ к боту определенному пользователю по ID (напишите боту @userinfobot для получения своего ID)",
		Example:     "/adduser 5293210034",
		Group:       "Телеграм",
		Call:        bot.AddUser,
	})

	bot.NewCommand(Command{
		Name:        "rmuser",
		Description: "Убрать доступ к боту определенному пользователю по ID",
		Example:     "/rmuser 5293210034",
		Group:       "Телеграм",
		Call:        bot.RemoveUser,
	})

	bot.NewCommand(Command{
		Name:        "enable",
		Description: "Включить автоответчик",
		Group:       "Автоответчик",
		Call:        bot.Enable,
	})

	bot.NewCommand(Command{
		Name:        "disable",
		Description: "Выключить автоответчик и снять отложенные публикации",
		Group:       "Автоответчик",
		Call:        bot.Disable,
	})

	bot.NewCommand(Command{
		Name:        "addvideo",
		Description: "Добавить видео для мониторинга комментариев (ID или ссылка)",
		Example:     "/addvideo https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		Group:       "Мониторинг",
		Call:        bot.AddVideo,
	})

	bot.NewCommand(Command{
		Name:        "rmvideo",
		Description: "Удалить видео из мониторинга",
		Example:     "/rmvideo dQw4w9WgXcQ",
		Group:       "Мониторинг",
		Call:        bot.RemoveVideo,
	})

	bot.NewCommand(Command{
		Name:        "listvideos",
		Description: "Показать все отслеживаемые видео",
		Group:       "Мониторинг",
		Call:        bot.ListVideos,
	})

	bot.NewCommand(Command{
		Name:        "addkeyword",
		Description: "Добавить ключевое слово: отвечаем только на комментарии с ключевыми словами",
		Example:     "/addkeyword tutorial",
		Group:       "Фильтры",
		Call:        bot.AddKeyword,
	})

	bot.NewCommand(Command{
		Name:        "rmkeyword",
		Description: "Удалить ключевое слово",
		Example:     "/rmkeyword tutorial",
		Group:       "Фильтры",
		Call:        bot.RemoveKeyword,
	})

	bot.NewCommand(Command{
		Name:        "addblack",
		Description: "Добавить запрещенное слово: такие комментарии не обрабатываются",
		Example:     "/addblack casino",
		Group:       "Фильтры",
		Call:        bot.AddBlacklisted,
	})

	bot.NewCommand(Command{
		Name:        "rmblack",
		Description: "Удалить запрещенное слово",
		Example:     "/rmblack casino",
		Group:       "Фильтры",
		Call:        bot.RemoveBlacklisted,
	})

	bot.NewCommand(Command{
		Name:        "setstyle",
		Description: "Задать стиль ответов (friendly, professional, humorous...)",
		Example:     "/setstyle friendly",
		Group:       "Автоответчик",
		Call:        bot.SetStyle,
	})

	bot.NewCommand(Command{
		Name:        "setdelay",
		Description: "Задать задержку перед публикацией ответа в секундах",
		Example:     "/setdelay 60",
		Group:       "Автоответчик",
		Call:        bot.SetDelay,
	})

	bot.NewCommand(Command{
		Name:        "setintro",
		Description: "Задать вступительную фразу ответов (без аргумента - убрать)",
		Example:     "/setintro Thanks for watching!",
		Group:       "Автоответчик",
		Call:        bot.SetIntroduction,
	})

	bot.NewCommand(Command{
		Name:        "setmaxperday",
		Description: "Задать максимум ответов в день",
		Example:     "/setmaxperday 50",
		Group:       "Автоответчик",
		Call:        bot.SetMaxPerDay,
	})

	bot.NewCommand(Command{
		Name:        "toggleadv",
		Description: "Переключить опцию: sentiment, moderation, jitter, questions, memory",
		Example:     "/toggleadv sentiment",
		Group:       "Автоответчик",
		Call:        bot.ToggleAdvanced,
	})

	bot.NewCommand(Command{
		Name:        "setytkey",
		Description: "Сохранить API ключ YouTube Data API",
		Example:     "/setytkey AIza...",
		Group:       "Ключи",
		Call:        bot.SetYouTubeKey,
	})

	bot.NewCommand(Command{
		Name:        "setgeminikey",
		Description: "Сохранить API ключ Gemini",
		Example:     "/setgeminikey AIza...",
		Group:       "Ключи",
		Call:        bot.SetGeminiKey,
	})

	bot.NewCommand(Command{
		Name:        "stats",
		Description: "Показать счетчики сгенерированных и опубликованных ответов",
		Group:       "Автоответчик",
		Call:        bot.Stats,
	})

	// Диспетчеризация по префиксу: authurl регистрируется раньше auth
	bot.NewCommand(Command{
		Name:        "authurl",
		Description: "Показать ссылку авторизации без запуска локального сервера",
		Group:       "Авторизация",
		Call:        bot.PrintAuthURL,
	})

	bot.NewCommand(Command{
		Name:        "auth",
		Description: "Начать авторизацию YouTube для публикации ответов",
		Group:       "Авторизация",
		Call:        bot.Authorize,
	})

	bot.NewCommand(Command{
		Name:        "token",
		Description: "Вручную передать URL редиректа с токеном",
		Example:     "/token http://localhost:8667/callback#access_token=...",
		Group:       "Авторизация",
		Call:        bot.Token,
	})

	bot.NewCommand(Command{
		Name:        "logout",
		Description: "Удалить сохраненный токен YouTube",
		Group:       "Авторизация",
		Call:        bot.Logout,
	})

	bot.NewCommand(Command{
		Name:        "testai",
		Description: "Проверить генерацию ответа на произвольный текст (без публикации)",
		Example:     "/testai What camera do you use?",
		Group:       "Автоответчик",
		Call:        bot.TestAI,
	})

	bot.NewCommand(Command{
		Name:        "history",
		Description: "Показать авторов, которым уже отвечали",
		Group:       "Автоответчик",
		Call:        bot.History,
	})
}

func (bot *Bot) Start() error {
	bot.Init()

	log.Printf("Бот авторизован, ID %d", bot.api.ID())

	bot.StartMonitoring(bot.conf.CheckIntervalMinutes)
	bot.startDailyReset()

	startTime := time.Now()
	retryDelay := 5 * time.Second
	for {
		updates, err := bot.api.UpdatesViaLongPolling(
			context.Background(),
			&telego.GetUpdatesParams{Timeout: 60},
		)
		if err != nil {
			log.Printf("Ошибка получения обновлений: %v. Переподключение...", err)
			time.Sleep(retryDelay)
			if retryDelay < 300*time.Second {
				retryDelay *= 2
			}
			continue
		}

		for update := range updates {
			if update.Message == nil {
				continue
			}

			go func(message *telego.Message) {
				// Пропускаем сообщения, пришедшие до старта бота
				if time.Unix(int64(message.Date), 0).Before(startTime) {
					return
				}

				if message.From == nil || message.From.ID == bot.api.ID() {
					return
				}

				// Проверка на возможность дальнейшего общения с данным пользователем
				if !bot.conf.Telegram.Public {
					var allowed bool = false
					for _, allowedID := range bot.conf.Telegram.AllowedUserIDs {
						if message.From.ID == allowedID {
							allowed = true
							break
						}
					}

					if !allowed {
						bot.answerBack(message, "Вам не разрешено пользоваться этим ботом!", true)

						if bot.conf.Debug {
							log.Printf("Не допустили к общению пользователя %v", message.From.ID)
						}

						return
					}
				}

				log.Printf("[%s] %s", formatUserName(message.From), message.Text)

				// Обработать команды
				message.Text = strings.TrimSpace(message.Text)
				for _, command := range bot.commands {
					if strings.HasPrefix(strings.ToLower(message.Text), "/"+command.Name) {
						go command.Call(message)
						return // Дальше не продолжаем
					}
				}

				// Неверно введенная команда
				bot.sendCommandSuggestions(message, strings.ToLower(message.Text))
			}(update.Message)
		}

		log.Println("Соединение с Telegram потеряно. Переподключение...")
		time.Sleep(retryDelay)
		if retryDelay < 300*time.Second {
			retryDelay *= 2
		}
	}
}
