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

package youtube

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"
)

const apiURL = "https://youtube.googleapis.com/youtube/v3/"

// Максимум тредов комментариев за один запрос
const maxResults = "100"

type Client struct {
	mu      sync.Mutex
	apiKey  string
	baseURL string
	http    *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: apiURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Ключ меняется командой /setytkey без перезапуска бота
func (c *Client) SetAPIKey(key string) {
	c.mu.Lock()
	c.apiKey = key
	c.mu.Unlock()
}

func (c *Client) key() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.apiKey
}

type APIError struct {
	StatusCode int    `json:"code"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("YouTube API error %d", e.StatusCode)
	}
	return fmt.Sprintf("YouTube API error %d: %s", e.StatusCode, e.Message)
}

// Комментарий верхнего уровня из треда
type Comment struct {
	ID              string
	Author          string
	AuthorChannelID string // Может отсутствовать
	Text            string
	PublishedAt     time.Time
}

type VideoDetails struct {
	Title        string
	Description  string
	ChannelTitle string
}

func apiErrorFrom(resp *http.Response) *APIError {
	apiErr := APIError{StatusCode: resp.StatusCode}

	var body struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		apiErr.Message = body.Error.Message
	}

	return &apiErr
}

type commentThreadsResponse struct {
	Items []struct {
		ID      string `json:"id"`
		Snippet struct {
			TopLevelComment struct {
				Snippet struct {
					TextDisplay       string `json:"textDisplay"`
					AuthorDisplayName string `json:"authorDisplayName"`
					AuthorChannelID   struct {
						Value string `json:"value"`
					} `json:"authorChannelId"`
					PublishedAt time.Time `json:"publishedAt"`
				} `json:"snippet"`
			} `json:"topLevelComment"`
		} `json:"snippet"`
	} `json:"items"`
}

// Запрашивает до 100 последних тредов комментариев видео, отсортированных
// по времени. Фильтрация по водяному знаку - забота вызывающего (FilterNew).
func (c *Client) FetchComments(ctx context.Context, videoID string) ([]Comment, error) {
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("videoId", videoID)
	params.Set("key", c.key())
	params.Set("maxResults", maxResults)
	params.Set("order", "time")

	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"commentThreads", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.URL.RawQuery = params.Encode()

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apiErrorFrom(resp)
	}

	var result commentThreadsResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	var comments []Comment
	for _, item := range result.Items {
		snippet := item.Snippet.TopLevelComment.Snippet
		comments = append(comments, Comment{
			ID:              item.ID,
			Author:          snippet.AuthorDisplayName,
			AuthorChannelID: snippet.AuthorChannelID.Value,
			Text:            snippet.TextDisplay,
			PublishedAt:     snippet.PublishedAt,
		})
	}

	return comments, nil
}

// Оставляет только комментарии новее водяного знака
func FilterNew(comments []Comment, since time.Time) []Comment {
	var fresh []Comment
	for _, comment := range comments {
		if comment.PublishedAt.After(since) {
			fresh = append(fresh, comment)
		}
	}
	return fresh
}

// Возвращает метаданные видео или nil, если видео не найдено.
// Контекст видео - необязательное обогащение, поэтому ошибку
// вызывающий может спокойно залогировать и продолжить без него.
func (c *Client) GetVideoDetails(ctx context.Context, videoID string) (*VideoDetails, error) {
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("id", videoID)
	params.Set("key", c.key())

	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"videos", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.URL.RawQuery = params.Encode()

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apiErrorFrom(resp)
	}

	var result struct {
		Items []struct {
			Snippet struct {
				Title        string `json:"title"`
				Description  string `json:"description"`
				ChannelTitle string `json:"channelTitle"`
			} `json:"snippet"`
		} `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(result.Items) == 0 {
		return nil, nil
	}

	return &VideoDetails{
		Title:        result.Items[0].Snippet.Title,
		Description:  result.Items[0].Snippet.Description,
		ChannelTitle: result.Items[0].Snippet.ChannelTitle,
	}, nil
}

// Публикует ответ на комментарий от имени авторизованного пользователя
func (c *Client) PostReply(ctx context.Context, commentID, text, accessToken string) error {
	body := map[string]any{
		"snippet": map[string]string{
			"parentId":     commentID,
			"textOriginal": text,
		},
	}
	encoded, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode reply: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"comments?part=snippet", bytes.NewReader(encoded))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apiErrorFrom(resp)
	}

	return nil
}
