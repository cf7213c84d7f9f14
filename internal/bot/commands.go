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
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"
	"time"

	"Unbewohnte/YTARbot/internal/db"
	"Unbewohnte/YTARbot/internal/gemini"

	"github.com/mymmrac/telego"
)

type Command struct {
	Name        string
	Description string
	Example     string
	Group       string
	Call        func(*telego.Message)
}

func (bot *Bot) NewCommand(cmd Command) {
	bot.commands = append(bot.commands, cmd)
}

func (bot *Bot) CommandByName(name string) *Command {
	for i := range bot.commands {
		if bot.commands[i].Name == name {
			return &bot.commands[i]
		}
	}

	return nil
}

func constructCommandHelpMessage(command Command) string {
	commandHelp := ""
	commandHelp += fmt.Sprintf("\n*Команда:* \"/%s\"\n*Описание:* %s\n", command.Name, command.Description)
	if command.Example != "" {
		commandHelp += fmt.Sprintf("*Пример:* `%s`\n", command.Example)
	}

	return commandHelp
}

func (bot *Bot) Help(message *telego.Message) {
	parts := strings.Split(message.Text, " ")
	if len(parts) >= 2 {
		// Ответить лишь по конкретной команде
		command := bot.CommandByName(strings.TrimPrefix(parts[1], "/"))
		if command != nil {
			bot.answerBack(message, constructCommandHelpMessage(*command), false)
			return
		}
	}

	var helpMessage string

	commandsByGroup := make(map[string][]Command)
	for _, command := range bot.commands {
		commandsByGroup[command.Group] = append(commandsByGroup[command.Group], command)
	}

	groups := []string{}
	for g := range commandsByGroup {
		groups = append(groups, g)
	}
	sort.Strings(groups)

	for _, group := range groups {
		helpMessage += fmt.Sprintf("\n\n*[%s]*\n", group)
		for _, command := range commandsByGroup[group] {
			helpMessage += constructCommandHelpMessage(command)
		}
	}

	bot.answerBack(message, helpMessage, false)
}

func (bot *Bot) About(message *telego.Message) {
	bot.answerBack(message,
		`YTAR bot - Телеграм бот для автоматических ответов на комментарии под видео в YouTube с генерацией текста через Gemini.

Source: https://github.com/Unbewohnte/YTARbot
Лицензия: GPLv3`,
		false,
	)
}

func (bot *Bot) TogglePublicity(message *telego.Message) {
	if bot.conf.Telegram.Public {
		bot.conf.Telegram.Public = false
		bot.answerBack(message, "Доступ к боту теперь только у избранных.", false)
	} else {
		bot.conf.Telegram.Public = true
		bot.answerBack(message, "Доступ к боту теперь у всех.", false)
	}

	// Обновляем конфигурационный файл
	bot.conf.Update()
}

func (bot *Bot) AddUser(message *telego.Message) {
	parts := strings.Split(strings.TrimSpace(message.Text), " ")
	if len(parts) < 2 {
		bot.sendError(message, "ID пользователя не указан")
		return
	}

	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		bot.sendError(message, "Неверный ID пользователя")
		return
	}

	for _, allowedID := range bot.conf.Telegram.AllowedUserIDs {
		if id == allowedID {
			bot.sendError(message, "Этот пользователь уже есть в списке разрешенных.")
			return
		}
	}

	bot.conf.Telegram.AllowedUserIDs = append(bot.conf.Telegram.AllowedUserIDs, id)

	// Сохраним в файл
	bot.conf.Update()

	bot.sendSuccess(message, "Пользователь успешно добавлен!")
}

func (bot *Bot) RemoveUser(message *telego.Message) {
	parts := strings.Split(strings.TrimSpace(message.Text), " ")
	if len(parts) < 2 {
		bot.sendError(message, "ID пользователя не указан")
		return
	}

	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		bot.sendError(message, "Неверный ID пользователя")
		return
	}

	tmp := bot.conf.Telegram.AllowedUserIDs
	bot.conf.Telegram.AllowedUserIDs = []int64{}
	for _, allowedID := range tmp {
		if allowedID == id {
			continue
		}

		bot.conf.Telegram.AllowedUserIDs = append(bot.conf.Telegram.AllowedUserIDs, allowedID)
	}

	// Сохраним в файл
	bot.conf.Update()

	bot.sendSuccess(message, "Пользователь успешно удален!")
}

func (bot *Bot) PrintConfig(message *telego.Message) {
	var response string = ""

	response += "*Нынешняя конфигурация*: \n"
	response += "\n*[ОБЩЕЕ]*:\n"
	response += fmt.Sprintf("*Общедоступный?*: `%v`\n", bot.conf.Telegram.Public)
	response += fmt.Sprintf("*Разрешенные пользователи*: `%+v`\n", bot.conf.Telegram.AllowedUserIDs)
	response += fmt.Sprintf("*Интервал проверки*: `%d мин`\n", bot.conf.CheckIntervalMinutes)

	response += "\n*[КЛЮЧИ]*:\n"
	if bot.conf.YouTube.ApiKey != "" {
		response += "*YouTube*: Ключ имеется\n"
	} else {
		response += "*YouTube*: Ключ отсутствует\n"
	}
	if bot.conf.Gemini.ApiKey != "" {
		response += fmt.Sprintf("*Gemini*: Ключ имеется (модель `%s`)\n", bot.conf.Gemini.Model)
	} else {
		response += "*Gemini*: Ключ отсутствует\n"
	}
	if bot.auth.IsAuthenticated() {
		response += "*OAuth*: Авторизован\n"
	} else {
		response += "*OAuth*: Не авторизован (ответы не публикуются)\n"
	}

	resp := bot.conf.Responder
	response += "\n*[АВТООТВЕТЧИК]*:\n"
	response += fmt.Sprintf("*Включен?*: `%v`\n", resp.Enabled)
	response += fmt.Sprintf("*Стиль ответов*: `%s`\n", resp.ResponseStyle)
	response += fmt.Sprintf("*Задержка*: `%d сек` (случайная добавка: `%v`)\n", resp.ResponseDelaySeconds, resp.Advanced.RandomizeDelay)
	response += fmt.Sprintf("*Максимум в день*: `%d`\n", resp.Advanced.MaxResponsesPerDay)
	response += fmt.Sprintf("*Ключевые слова*: `%+v`\n", resp.KeywordFilters)
	response += fmt.Sprintf("*Запрещенные слова*: `%+v` (модерация: `%v`)\n", resp.Advanced.BlacklistedWords, resp.Advanced.AutoModeration)
	response += fmt.Sprintf("*Анализ тональности*: `%v`\n", resp.Advanced.EnableSentimentAnalysis)
	response += fmt.Sprintf("*Вопросы в приоритете*: `%v`\n", resp.Advanced.PrioritizeQuestions)
	response += fmt.Sprintf("*Память об авторах*: `%v`\n", resp.Advanced.RememberCommenters)
	if resp.Advanced.CustomIntroduction != "" {
		response += fmt.Sprintf("*Вступление*: `%s`\n", resp.Advanced.CustomIntroduction)
	}

	bot.answerBack(message, response, true)
}

func (bot *Bot) Enable(message *telego.Message) {
	if bot.conf.Gemini.ApiKey == "" {
		bot.sendError(message, "Не задан ключ Gemini. Сначала используйте /setgeminikey")
		return
	}
	if bot.conf.YouTube.ApiKey == "" {
		bot.sendError(message, "Не задан ключ YouTube. Сначала используйте /setytkey")
		return
	}

	bot.conf.Responder.Enabled = true
	bot.conf.Update()

	if bot.auth.IsAuthenticated() {
		bot.sendSuccess(message, "Автоответчик включен.")
	} else {
		bot.sendSuccess(message, "Автоответчик включен. Внимание: нет авторизации YouTube, ответы будут генерироваться, но не публиковаться. Используйте /auth")
	}
}

func (bot *Bot) Disable(message *telego.Message) {
	bot.conf.Responder.Enabled = false
	bot.conf.Update()

	cancelled := bot.responder.CancelScheduled()
	if cancelled > 0 {
		bot.sendSuccess(message, fmt.Sprintf("Автоответчик выключен, снято отложенных публикаций: %d", cancelled))
	} else {
		bot.sendSuccess(message, "Автоответчик выключен.")
	}
}

func (bot *Bot) AddVideo(message *telego.Message) {
	parts := strings.Split(strings.TrimSpace(message.Text), " ")
	if len(parts) < 2 {
		bot.sendError(message, "Неверный формат. Используйте: /addvideo <ID видео или ссылка>")
		return
	}

	videoID, err := extractVideoID(parts[1])
	if err != nil {
		bot.sendError(message, "Неверный ID видео: "+err.Error())
		return
	}

	// Сначала проверяем, существует ли уже такое видео
	existing, err := bot.conf.GetDB().GetVideo(videoID)
	if err == nil && existing != nil {
		bot.sendError(message,
			fmt.Sprintf("Это видео уже добавлено:\nНазвание: %s\nID: %s\nДобавлено: %s",
				existing.Title,
				existing.VideoID,
				existing.CreatedAt.Local().Format("2006-01-02 15:04")),
		)
		return
	}

	// Получаем информацию о видео
	details, err := bot.youtube.GetVideoDetails(context.Background(), videoID)
	if err != nil {
		bot.sendError(message, fmt.Sprintf("Ошибка проверки видео: %v", err))
		return
	}
	if details == nil {
		bot.sendError(message, "Видео не найдено. Проверьте ID.")
		return
	}

	video := db.TargetVideo{
		VideoID:      videoID,
		Title:        details.Title,
		ChannelTitle: details.ChannelTitle,
		LastCheck:    time.Now().Unix(),
	}

	if err := bot.conf.GetDB().AddVideo(&video); err != nil {
		bot.sendError(message, "Ошибка добавления видео: "+err.Error())
		return
	}

	bot.sendSuccess(message, fmt.Sprintf(
		"Видео добавлено:\nНазвание: %s\nКанал: %s\nID: `%s`",
		video.Title, video.ChannelTitle, video.VideoID,
	))
}

func (bot *Bot) RemoveVideo(message *telego.Message) {
	parts := strings.Split(strings.TrimSpace(message.Text), " ")
	if len(parts) < 2 {
		bot.sendError(message, "Неверный формат. Используйте: /rmvideo <ID видео>")
		return
	}

	videoID, err := extractVideoID(parts[1])
	if err != nil {
		bot.sendError(message, "Неверный ID видео: "+err.Error())
		return
	}

	existing, err := bot.conf.GetDB().GetVideo(videoID)
	if err != nil || existing == nil {
		bot.sendError(message, fmt.Sprintf("Видео с ID %s не найдено", videoID))
		return
	}

	if err := bot.conf.GetDB().RemoveVideo(videoID); err != nil {
		bot.sendError(message, "Ошибка удаления видео: "+err.Error())
		return
	}

	bot.sendSuccess(message, "Видео успешно удалено")
}

func (bot *Bot) ListVideos(message *telego.Message) {
	videos, err := bot.conf.GetDB().GetVideos()
	if err != nil {
		bot.sendError(message, "Ошибка получения видео: "+err.Error())
		return
	}

	if len(videos) == 0 {
		bot.answerBack(message, "Нет отслеживаемых видео", false)
		return
	}

	var response strings.Builder
	response.WriteString("📋 Отслеживаемые видео:\n\n")

	for _, video := range videos {
		response.WriteString(
			fmt.Sprintf("🔹 *%s*\nКанал: %s\nID: `%s`\nПоследняя проверка: %s\n\n",
				video.Title,
				video.ChannelTitle,
				video.VideoID,
				time.Unix(video.LastCheck, 0).Format("2006-01-02 15:04"),
			),
		)
	}

	bot.answerBack(message, response.String(), false)
}

func (bot *Bot) AddKeyword(message *telego.Message) {
	parts := strings.Split(strings.TrimSpace(message.Text), " ")
	if len(parts) < 2 {
		bot.sendError(message, "Ключевое слово не указано")
		return
	}

	keyword := strings.ToLower(strings.Join(parts[1:], " "))
	for _, existing := range bot.conf.Responder.KeywordFilters {
		if existing == keyword {
			bot.sendError(message, "Это ключевое слово уже есть в списке.")
			return
		}
	}

	bot.conf.Responder.KeywordFilters = append(bot.conf.Responder.KeywordFilters, keyword)
	bot.conf.Update()

	bot.sendSuccess(message, fmt.Sprintf("Ключевое слово `%s` добавлено. Всего: %d", keyword, len(bot.conf.Responder.KeywordFilters)))
}

func (bot *Bot) RemoveKeyword(message *telego.Message) {
	parts := strings.Split(strings.TrimSpace(message.Text), " ")
	if len(parts) < 2 {
		bot.sendError(message, "Ключевое слово не указано")
		return
	}

	keyword := strings.ToLower(strings.Join(parts[1:], " "))

	tmp := bot.conf.Responder.KeywordFilters
	bot.conf.Responder.KeywordFilters = []string{}
	removed := false
	for _, existing := range tmp {
		if existing == keyword {
			removed = true
			continue
		}
		bot.conf.Responder.KeywordFilters = append(bot.conf.Responder.KeywordFilters, existing)
	}

	if !removed {
		bot.sendError(message, "Такого ключевого слова нет в списке.")
		return
	}

	bot.conf.Update()
	bot.sendSuccess(message, fmt.Sprintf("Ключевое слово `%s` удалено.", keyword))
}

func (bot *Bot) AddBlacklisted(message *telego.Message) {
	parts := strings.Split(strings.TrimSpace(message.Text), " ")
	if len(parts) < 2 {
		bot.sendError(message, "Запрещенное слово не указано")
		return
	}

	word := strings.ToLower(strings.Join(parts[1:], " "))
	for _, existing := range bot.conf.Responder.Advanced.BlacklistedWords {
		if existing == word {
			bot.sendError(message, "Это слово уже есть в черном списке.")
			return
		}
	}

	bot.conf.Responder.Advanced.BlacklistedWords = append(bot.conf.Responder.Advanced.BlacklistedWords, word)
	bot.conf.Update()

	bot.sendSuccess(message, fmt.Sprintf("Слово `%s` добавлено в черный список.", word))
}

func (bot *Bot) RemoveBlacklisted(message *telego.Message) {
	parts := strings.Split(strings.TrimSpace(message.Text), " ")
	if len(parts) < 2 {
		bot.sendError(message, "Запрещенное слово не указано")
		return
	}

	word := strings.ToLower(strings.Join(parts[1:], " "))

	tmp := bot.conf.Responder.Advanced.BlacklistedWords
	bot.conf.Responder.Advanced.BlacklistedWords = []string{}
	removed := false
	for _, existing := range tmp {
		if existing == word {
			removed = true
			continue
		}
		bot.conf.Responder.Advanced.BlacklistedWords = append(bot.conf.Responder.Advanced.BlacklistedWords, existing)
	}

	if !removed {
		bot.sendError(message, "Такого слова нет в черном списке.")
		return
	}

	bot.conf.Update()
	bot.sendSuccess(message, fmt.Sprintf("Слово `%s` удалено из черного списка.", word))
}

func (bot *Bot) SetStyle(message *telego.Message) {
	parts := strings.Split(strings.TrimSpace(message.Text), " ")
	if len(parts) < 2 {
		bot.sendError(message, "Стиль не указан. Примеры: friendly, professional, humorous")
		return
	}

	bot.conf.Responder.ResponseStyle = strings.ToLower(parts[1])
	bot.conf.Update()

	bot.sendSuccess(message, fmt.Sprintf("Стиль ответов: `%s`", bot.conf.Responder.ResponseStyle))
}

func (bot *Bot) SetDelay(message *telego.Message) {
	parts := strings.Split(strings.TrimSpace(message.Text), " ")
	if len(parts) < 2 {
		bot.sendError(message, "Задержка не указана")
		return
	}

	seconds, err := strconv.Atoi(parts[1])
	if err != nil || seconds < 0 {
		bot.sendError(message, "Неверное число секунд")
		return
	}

	bot.conf.Responder.ResponseDelaySeconds = seconds
	bot.conf.Update()

	bot.sendSuccess(message, fmt.Sprintf("Задержка перед публикацией: %d сек", seconds))
}

func (bot *Bot) SetIntroduction(message *telego.Message) {
	parts := strings.SplitN(strings.TrimSpace(message.Text), " ", 2)
	if len(parts) < 2 {
		bot.conf.Responder.Advanced.CustomIntroduction = ""
		bot.conf.Update()
		bot.sendSuccess(message, "Вступительная фраза убрана.")
		return
	}

	bot.conf.Responder.Advanced.CustomIntroduction = strings.TrimSpace(parts[1])
	bot.conf.Update()

	bot.sendSuccess(message, fmt.Sprintf("Вступительная фраза: `%s`", bot.conf.Responder.Advanced.CustomIntroduction))
}

func (bot *Bot) SetMaxPerDay(message *telego.Message) {
	parts := strings.Split(strings.TrimSpace(message.Text), " ")
	if len(parts) < 2 {
		bot.sendError(message, "Лимит не указан")
		return
	}

	limit, err := strconv.Atoi(parts[1])
	if err != nil || limit <= 0 {
		bot.sendError(message, "Неверный лимит")
		return
	}

	bot.conf.Responder.Advanced.MaxResponsesPerDay = limit
	bot.conf.Update()

	bot.sendSuccess(message, fmt.Sprintf("Максимум ответов в день: %d", limit))
}

func (bot *Bot) ToggleAdvanced(message *telego.Message) {
	parts := strings.Split(strings.TrimSpace(message.Text), " ")
	if len(parts) < 2 {
		bot.sendError(message, "Опция не указана. Доступны: sentiment, moderation, jitter, questions, memory")
		return
	}

	advanced := &bot.conf.Responder.Advanced

	var name string
	var state bool
	switch strings.ToLower(parts[1]) {
	case "sentiment":
		advanced.EnableSentimentAnalysis = !advanced.EnableSentimentAnalysis
		name, state = "Анализ тональности", advanced.EnableSentimentAnalysis
	case "moderation":
		advanced.AutoModeration = !advanced.AutoModeration
		name, state = "Автомодерация", advanced.AutoModeration
	case "jitter":
		advanced.RandomizeDelay = !advanced.RandomizeDelay
		name, state = "Случайная добавка к задержке", advanced.RandomizeDelay
	case "questions":
		advanced.PrioritizeQuestions = !advanced.PrioritizeQuestions
		name, state = "Приоритет вопросов", advanced.PrioritizeQuestions
	case "memory":
		advanced.RememberCommenters = !advanced.RememberCommenters
		name, state = "Память об авторах", advanced.RememberCommenters
	default:
		bot.sendError(message, "Неизвестная опция. Доступны: sentiment, moderation, jitter, questions, memory")
		return
	}

	bot.conf.Update()

	if state {
		bot.sendSuccess(message, name+": включено")
	} else {
		bot.sendSuccess(message, name+": выключено")
	}
}

func (bot *Bot) SetYouTubeKey(message *telego.Message) {
	parts := strings.Split(strings.TrimSpace(message.Text), " ")
	if len(parts) < 2 {
		bot.sendError(message, "Ключ не указан")
		return
	}

	bot.conf.YouTube.ApiKey = parts[1]
	bot.youtube.SetAPIKey(parts[1])
	bot.conf.Update()

	bot.sendSuccess(message, "Ключ YouTube сохранен.")
}

func (bot *Bot) SetGeminiKey(message *telego.Message) {
	parts := strings.Split(strings.TrimSpace(message.Text), " ")
	if len(parts) < 2 {
		bot.sendError(message, "Ключ не указан")
		return
	}

	client, err := gemini.NewClient(context.Background(), parts[1], bot.conf.Gemini.Model)
	if err != nil {
		bot.sendError(message, "Не удалось создать клиент Gemini: "+err.Error())
		return
	}

	bot.conf.Gemini.ApiKey = parts[1]
	bot.gemini = client
	bot.responder.SetGenerator(client)
	bot.conf.Update()

	bot.sendSuccess(message, "Ключ Gemini сохранен, генератор ответов готов.")
}

func (bot *Bot) Stats(message *telego.Message) {
	stats, err := bot.conf.GetDB().GetStats(time.Now().Format("2006-01-02"))
	if err != nil {
		bot.sendError(message, "Ошибка чтения статистики: "+err.Error())
		return
	}

	response := "*Статистика автоответчика*:\n\n"
	response += fmt.Sprintf("🤖 *Всего сгенерировано*: %d\n", stats.TotalGenerated)
	response += fmt.Sprintf("📤 *Всего опубликовано*: %d\n", stats.TotalPosted)
	response += fmt.Sprintf("📅 *Сегодня*: %d из %d\n", stats.TodayCount, bot.conf.Responder.Advanced.MaxResponsesPerDay)
	response += fmt.Sprintf("⏳ *Ожидают публикации*: %d\n", bot.responder.PendingPosts())

	bot.answerBack(message, response, true)
}

func (bot *Bot) Authorize(message *telego.Message) {
	if bot.conf.YouTube.OAuthClientID == "" {
		bot.sendError(message, "Не задан OAuth client ID в конфигурации.")
		return
	}

	if bot.auth.IsAuthenticated() {
		bot.sendSuccess(message, "Авторизация уже действует.")
		return
	}

	bot.answerBack(message, fmt.Sprintf(
		"Откройте эту ссылку в браузере на машине, где запущен бот, и разрешите доступ:\n\n%s\n\nЖду токен на `%s` в течение 5 минут. Если браузер на другой машине - пришлите URL редиректа командой /token",
		bot.auth.AuthURL(),
		bot.auth.RedirectURL(),
	), true)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		_, err := bot.auth.StartAuthFlow(ctx)
		if err != nil {
			log.Printf("Авторизация YouTube не завершена: %v", err)
			bot.sendError(message, "Авторизация не завершена: "+err.Error())
			return
		}

		bot.sendSuccess(message, "Авторизация YouTube прошла успешно. Ответы будут публиковаться.")
	}()
}

func (bot *Bot) PrintAuthURL(message *telego.Message) {
	if bot.conf.YouTube.OAuthClientID == "" {
		bot.sendError(message, "Не задан OAuth client ID в конфигурации.")
		return
	}

	bot.answerBack(message, fmt.Sprintf(
		"Ссылка авторизации:\n\n%s\n\nПосле редиректа пришлите полный URL командой /token",
		bot.auth.AuthURL(),
	), true)
}

func (bot *Bot) Token(message *telego.Message) {
	parts := strings.SplitN(strings.TrimSpace(message.Text), " ", 2)
	if len(parts) < 2 {
		bot.sendError(message, "URL редиректа не указан")
		return
	}

	if err := bot.auth.HandleRedirect(parts[1]); err != nil {
		bot.sendError(message, "Не удалось разобрать токен: "+err.Error())
		return
	}

	bot.sendSuccess(message, "Токен сохранен, авторизация действует.")
}

func (bot *Bot) Logout(message *telego.Message) {
	if err := bot.auth.ClearAuthentication(); err != nil {
		bot.sendError(message, "Ошибка удаления токена: "+err.Error())
		return
	}

	bot.sendSuccess(message, "Токен YouTube удален. Публикация ответов остановлена.")
}

func (bot *Bot) TestAI(message *telego.Message) {
	parts := strings.SplitN(strings.TrimSpace(message.Text), " ", 2)
	if len(parts) < 2 {
		bot.sendError(message, "Текст комментария не указан")
		return
	}

	result, err := bot.responder.ProcessTest(context.Background(), parts[1], "")
	if err != nil {
		bot.sendError(message, "Ошибка генерации: "+err.Error())
		return
	}

	response := "*Пробная генерация*:\n\n"
	response += fmt.Sprintf("💭 *Тональность*: %s\n", result.Sentiment)
	response += fmt.Sprintf("💬 *Ответ*: %s\n", result.Reply)

	bot.answerBack(message, response, true)
}

func (bot *Bot) History(message *telego.Message) {
	authors, err := bot.conf.GetDB().HistoryAuthors()
	if err != nil {
		bot.sendError(message, "Ошибка чтения истории: "+err.Error())
		return
	}

	if len(authors) == 0 {
		bot.answerBack(message, "История ответов пуста", false)
		return
	}

	var response strings.Builder
	response.WriteString("📋 Авторы, которым уже отвечали:\n\n")

	for _, author := range authors {
		records, err := bot.conf.GetDB().AuthorHistory(author.AuthorID)
		if err != nil || len(records) == 0 {
			continue
		}

		last := records[len(records)-1]
		response.WriteString(
			fmt.Sprintf("👤 *%s* - ответов: %d\nПоследний комментарий: %s\nОтвет: %s\n\n",
				author.AuthorName,
				author.Records,
				truncateText(last.Comment, 100),
				truncateText(last.Response, 100),
			),
		)
	}

	bot.answerBack(message, response.String(), false)
}
