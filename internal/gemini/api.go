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

package gemini

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"google.golang.org/genai"
)

const DefaultModel = "gemini-2.5-flash"

// Параметры генерации фиксированы для каждого типа запроса:
// классификация - холодная и короткая, ответ - теплее и длиннее.
const (
	sentimentTemperature float32 = 0.1
	sentimentMaxTokens   int32   = 10
	replyTemperature     float32 = 0.7
	replyMaxTokens       int32   = 100
)

type Client struct {
	client *genai.Client
	model  string
}

func NewClient(ctx context.Context, apiKey string, model string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is not set")
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &Client{
		client: client,
		model:  model,
	}, nil
}

type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Gemini API error %d: %s", e.StatusCode, e.Message)
}

func wrapAPIError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &APIError{StatusCode: apiErr.Code, Message: apiErr.Message}
	}
	return err
}

// Контекст для генерации ответа
type Options struct {
	Sentiment          string
	AuthorName         string
	VideoTitle         string
	ChannelTitle       string
	CustomIntroduction string
}

// Определяет тональность комментария. Любая ошибка или неожиданный
// ответ модели превращаются в "neutral": тональность - лишь подсказка,
// конвейер не должен падать из-за нее.
func (c *Client) ClassifySentiment(ctx context.Context, text string) string {
	answer, err := c.generate(ctx, buildSentimentPrompt(text), sentimentTemperature, sentimentMaxTokens)
	if err != nil {
		log.Printf("Ошибка классификации тональности: %v", err)
		return SentimentNeutral
	}

	return normalizeSentiment(answer)
}

// Генерирует текст ответа на комментарий. В отличие от тональности,
// здесь ошибка отдается наверх: без текста публиковать нечего.
func (c *Client) GenerateReply(ctx context.Context, text string, style string, opts Options) (string, error) {
	answer, err := c.generate(ctx, buildReplyPrompt(text, style, opts), replyTemperature, replyMaxTokens)
	if err != nil {
		return "", wrapAPIError(err)
	}

	return strings.TrimSpace(answer), nil
}

func (c *Client) generate(ctx context.Context, prompt string, temperature float32, maxTokens int32) (string, error) {
	result, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(temperature),
		MaxOutputTokens: maxTokens,
	})
	if err != nil {
		return "", err
	}

	if result == nil || len(result.Candidates) == 0 ||
		result.Candidates[0].Content == nil || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	return result.Candidates[0].Content.Parts[0].Text, nil
}
