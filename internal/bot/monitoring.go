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
	"time"

	"github.com/robfig/cron/v3"
)

func (bot *Bot) StartMonitoring(intervalMins int) {
	log.Printf("Запускаем мониторинг с интервалом %d минут", intervalMins)

	go func(intervalMins int) {
		ticker := time.NewTicker(time.Duration(intervalMins) * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			if !bot.conf.Responder.Enabled {
				continue
			}

			videos, err := bot.conf.GetDB().GetVideos()
			if err != nil {
				log.Printf("Ошибка получения видео: %v", err)
				continue
			}

			log.Printf("Проверка %d видео...", len(videos))

			for _, video := range videos {
				time.Sleep(time.Second * 5)

				processed, err := bot.responder.ProcessVideo(context.Background(), video)
				if err != nil {
					log.Printf("Ошибка проверки видео %s (%s): %v. Дополнительно ждем...",
						video.Title, video.VideoID, err,
					)

					time.Sleep(time.Second * 15)
					processed, err = bot.responder.ProcessVideo(context.Background(), video)
					if err != nil {
						log.Printf("Ошибка дополнительной проверки %s: %s. Комментарии не проверены.", video.VideoID, err)
						continue
					}
				}

				if processed > 0 {
					log.Printf("Подготовлено %d ответов на комментарии к \"%s\"",
						processed,
						video.Title,
					)
				}

				// Обновляем время последней проверки
				bot.conf.GetDB().UpdateLastCheck(video.VideoID, time.Now().Unix())
			}
		}
	}(intervalMins)
}

// Дневной счетчик ответов обнуляется в полночь; на случай, если бот
// не работал в полночь, GetStats дополнительно сверяет дату при каждом
// чтении счетчиков.
func (bot *Bot) startDailyReset() {
	bot.cron = cron.New()

	bot.cron.AddFunc("@midnight", func() {
		today := time.Now().Format("2006-01-02")
		if err := bot.conf.GetDB().ResetDailyCount(today); err != nil {
			log.Printf("Ошибка сброса дневного счетчика: %v", err)
			return
		}
		log.Printf("Дневной счетчик ответов сброшен (%s)", today)
	})

	bot.cron.Start()
}
