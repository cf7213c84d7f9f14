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

package responder

import (
	"context"
	"log"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"Unbewohnte/YTARbot/internal/db"
	"Unbewohnte/YTARbot/internal/gemini"
	"Unbewohnte/YTARbot/internal/youtube"
)

// Больше трех записей в истории - автору не отвечаем
const maxAuthorInteractions = 3

// Снимок настроек на один прогон конвейера
type Settings struct {
	Enabled                 bool
	ResponseStyle           string
	ResponseDelaySeconds    int
	KeywordFilters          []string
	EnableSentimentAnalysis bool
	MaxResponsesPerDay      int
	BlacklistedWords        []string
	AutoModeration          bool
	CustomIntroduction      string
	RandomizeDelay          bool
	PrioritizeQuestions     bool
	RememberCommenters      bool
}

type CommentSource interface {
	FetchComments(ctx context.Context, videoID string) ([]youtube.Comment, error)
	GetVideoDetails(ctx context.Context, videoID string) (*youtube.VideoDetails, error)
	PostReply(ctx context.Context, commentID, text, accessToken string) error
}

type ReplyGenerator interface {
	ClassifySentiment(ctx context.Context, text string) string
	GenerateReply(ctx context.Context, text string, style string, opts gemini.Options) (string, error)
}

type Authorizer interface {
	IsAuthenticated() bool
	AccessToken() (string, bool)
}

type Responder struct {
	db       *db.DB
	source   CommentSource
	auth     Authorizer
	settings func() Settings

	mu        sync.RWMutex
	generator ReplyGenerator

	scheduler *postScheduler
}

func New(database *db.DB, source CommentSource, generator ReplyGenerator, authorizer Authorizer, settings func() Settings) *Responder {
	return &Responder{
		db:        database,
		source:    source,
		auth:      authorizer,
		settings:  settings,
		generator: generator,
		scheduler: newPostScheduler(),
	}
}

// Генератор меняется на лету командой /setgeminikey
func (r *Responder) SetGenerator(generator ReplyGenerator) {
	r.mu.Lock()
	r.generator = generator
	r.mu.Unlock()
}

func (r *Responder) replyGenerator() ReplyGenerator {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.generator
}

func today() string {
	return time.Now().Format("2006-01-02")
}

// Запрашивает комментарии видео и прогоняет новые через конвейер.
// Возвращает число комментариев, для которых сгенерирован ответ.
func (r *Responder) ProcessVideo(ctx context.Context, video db.TargetVideo) (int, error) {
	comments, err := r.source.FetchComments(ctx, video.VideoID)
	if err != nil {
		return 0, err
	}

	fresh := youtube.FilterNew(comments, time.Unix(video.LastCheck, 0))
	if len(fresh) == 0 {
		return 0, nil
	}

	return r.processComments(ctx, video.VideoID, fresh)
}

func (r *Responder) processComments(ctx context.Context, videoID string, comments []youtube.Comment) (int, error) {
	conf := r.settings()
	generator := r.replyGenerator()

	// Допуск: выключены, нет генератора или исчерпан дневной лимит -
	// молча выходим, комментарии останутся в API до следующего раза
	if !conf.Enabled || generator == nil {
		return 0, nil
	}

	stats, err := r.db.GetStats(today())
	if err != nil {
		return 0, err
	}
	if stats.TodayCount >= conf.MaxResponsesPerDay {
		log.Printf("Достигнут дневной лимит в %d ответов", conf.MaxResponsesPerDay)
		return 0, nil
	}

	comments = filterByKeywords(comments, conf.KeywordFilters)
	if conf.AutoModeration {
		comments = dropBlacklisted(comments, conf.BlacklistedWords)
	}
	if conf.PrioritizeQuestions {
		prioritizeQuestions(comments)
	}

	remaining := conf.MaxResponsesPerDay - stats.TodayCount
	if len(comments) > remaining {
		comments = comments[:remaining]
	}

	// Контекст видео запрашиваем один раз на пачку; без него тоже работаем
	var videoContext *youtube.VideoDetails
	videoContext, err = r.source.GetVideoDetails(ctx, videoID)
	if err != nil {
		log.Printf("Не удалось получить данные видео %s: %v", videoID, err)
		videoContext = nil
	}

	processed := 0
	for _, comment := range comments {
		if conf.RememberCommenters && comment.AuthorChannelID != "" {
			count, err := r.db.CountAuthorRecords(comment.AuthorChannelID)
			if err != nil {
				log.Printf("Ошибка чтения истории автора %s: %v", comment.AuthorChannelID, err)
			} else if count >= maxAuthorInteractions {
				log.Printf("Автору %s уже отвечали %d раз, пропускаем", comment.Author, count)
				continue
			}
		}

		sentiment := gemini.SentimentNeutral
		if conf.EnableSentimentAnalysis {
			sentiment = generator.ClassifySentiment(ctx, comment.Text)
		}

		opts := gemini.Options{
			Sentiment:          sentiment,
			AuthorName:         comment.Author,
			CustomIntroduction: conf.CustomIntroduction,
		}
		if videoContext != nil {
			opts.VideoTitle = videoContext.Title
			opts.ChannelTitle = videoContext.ChannelTitle
		}

		reply, err := generator.GenerateReply(ctx, comment.Text, conf.ResponseStyle, opts)
		if err != nil {
			// Одна неудачная генерация не роняет всю пачку
			log.Printf("Ошибка генерации ответа на комментарий %s: %v", comment.ID, err)
			continue
		}

		if err := r.db.RecordGenerated(today()); err != nil {
			log.Printf("Ошибка обновления счетчиков: %v", err)
		}

		if conf.RememberCommenters && comment.AuthorChannelID != "" {
			err = r.db.AddHistoryRecord(&db.HistoryRecord{
				AuthorID:   comment.AuthorChannelID,
				AuthorName: comment.Author,
				Comment:    comment.Text,
				Response:   reply,
			})
			if err != nil {
				log.Printf("Ошибка записи истории: %v", err)
			}
		}

		delay := time.Duration(conf.ResponseDelaySeconds) * time.Second
		if conf.RandomizeDelay {
			delay = delayWithJitter(delay, rand.Float64())
		}

		r.schedulePost(comment.ID, videoID, reply, delay)
		processed++
	}

	return processed, nil
}

// Оставляет комментарии, содержащие хотя бы одно из ключевых слов.
// Пустой список ключевых слов - пропускаем все.
func filterByKeywords(comments []youtube.Comment, keywords []string) []youtube.Comment {
	if len(keywords) == 0 {
		return comments
	}

	var matched []youtube.Comment
	for _, comment := range comments {
		text := strings.ToLower(comment.Text)
		for _, keyword := range keywords {
			if strings.Contains(text, strings.ToLower(keyword)) {
				matched = append(matched, comment)
				break
			}
		}
	}

	return matched
}

// Убирает комментарии с запрещенными словами
func dropBlacklisted(comments []youtube.Comment, blacklisted []string) []youtube.Comment {
	if len(blacklisted) == 0 {
		return comments
	}

	var clean []youtube.Comment
	for _, comment := range comments {
		text := strings.ToLower(comment.Text)
		banned := false
		for _, word := range blacklisted {
			if strings.Contains(text, strings.ToLower(word)) {
				banned = true
				break
			}
		}
		if !banned {
			clean = append(clean, comment)
		}
	}

	return clean
}

// Вопросы - в начало очереди. Сортировка обязана быть стабильной:
// порядок внутри каждой группы сохраняется как пришел из API.
func prioritizeQuestions(comments []youtube.Comment) {
	sort.SliceStable(comments, func(i, j int) bool {
		return strings.Contains(comments[i].Text, "?") && !strings.Contains(comments[j].Text, "?")
	})
}

// Растягивает задержку на случайный множитель [1.0, 1.3), чтобы
// ответы не выходили с механической регулярностью. roll - из [0, 1).
func delayWithJitter(base time.Duration, roll float64) time.Duration {
	return time.Duration(float64(base) * (1 + roll*0.3))
}

// Результат попытки публикации
type PostResult struct {
	Posted bool
	Detail string
}

// Откладывает публикацию ответа. Таймер живет в реестре и снимается
// при выключении бота; в момент срабатывания флаг проверяется еще раз.
func (r *Responder) schedulePost(commentID, videoID, text string, delay time.Duration) {
	log.Printf("Ответ на комментарий %s будет отправлен через %v", commentID, delay)

	r.scheduler.Schedule(commentID, delay, func() {
		if !r.settings().Enabled {
			log.Printf("Автоответчик выключен, отмена публикации ответа на %s", commentID)
			return
		}

		result := r.publishReply(context.Background(), commentID, videoID, text)
		if result.Posted {
			if err := r.db.RecordPosted(); err != nil {
				log.Printf("Ошибка обновления счетчика публикаций: %v", err)
			}
			log.Printf("Опубликован ответ на комментарий %s", commentID)
		} else {
			log.Printf("Ответ на комментарий %s не опубликован: %s", commentID, result.Detail)
		}
	})
}

// Публикует ответ, если есть действующий токен. Без токена - только
// лог задуманного действия, ни одного сетевого запроса (сухой прогон).
func (r *Responder) publishReply(ctx context.Context, commentID, videoID, text string) PostResult {
	token, ok := r.auth.AccessToken()
	if !ok {
		log.Printf("Нет авторизации: ответ на %s (видео %s) был бы: %s", commentID, videoID, text)
		return PostResult{Posted: false, Detail: "not authorized"}
	}

	if err := r.source.PostReply(ctx, commentID, text, token); err != nil {
		return PostResult{Posted: false, Detail: err.Error()}
	}

	return PostResult{Posted: true, Detail: "posted"}
}

// Снимает все отложенные публикации (вызывается при /disable)
func (r *Responder) CancelScheduled() int {
	return r.scheduler.CancelAll()
}

// Число ответов, ожидающих публикации
func (r *Responder) PendingPosts() int {
	return r.scheduler.Pending()
}

type TestResult struct {
	Sentiment string
	Reply     string
}

// Пробный прогон для /testai: тональность и текст ответа без
// публикации и без изменения счетчиков
func (r *Responder) ProcessTest(ctx context.Context, text string, videoID string) (*TestResult, error) {
	conf := r.settings()
	generator := r.replyGenerator()
	if generator == nil {
		return nil, &MissingGeneratorError{}
	}

	sentiment := gemini.SentimentNeutral
	if conf.EnableSentimentAnalysis {
		sentiment = generator.ClassifySentiment(ctx, text)
	}

	opts := gemini.Options{
		Sentiment:          sentiment,
		CustomIntroduction: conf.CustomIntroduction,
	}
	if videoID != "" {
		if details, err := r.source.GetVideoDetails(ctx, videoID); err == nil && details != nil {
			opts.VideoTitle = details.Title
			opts.ChannelTitle = details.ChannelTitle
		}
	}

	reply, err := generator.GenerateReply(ctx, text, conf.ResponseStyle, opts)
	if err != nil {
		return nil, err
	}

	return &TestResult{Sentiment: sentiment, Reply: reply}, nil
}

type MissingGeneratorError struct{}

func (e *MissingGeneratorError) Error() string {
	return "gemini api key is not configured"
}
