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
	"fmt"
	"strings"
)

const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

// Промпты составляем на английском: модель отвечает на языке промпта,
// а комментарии на YouTube в основном англоязычные.

func buildSentimentPrompt(commentText string) string {
	return fmt.Sprintf(`Analyze the sentiment of this YouTube comment: "%s". `+
		`Respond with only one of these words: "positive", "negative", or "neutral".`, commentText)
}

// Приводит ответ модели к одному из трех допустимых значений
func normalizeSentiment(answer string) string {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case SentimentPositive:
		return SentimentPositive
	case SentimentNegative:
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}

// Чистая функция от своих аргументов: никакого скрытого состояния
func buildReplyPrompt(commentText string, style string, opts Options) string {
	var prompt strings.Builder

	author := opts.AuthorName
	if author == "" {
		author = "a viewer"
	}

	prompt.WriteString(fmt.Sprintf(`You are responding to a YouTube comment by %s that says: "%s".`, author, commentText))

	if opts.VideoTitle != "" {
		prompt.WriteString(fmt.Sprintf(` This comment is on a video titled "%s" from the channel "%s".`, opts.VideoTitle, opts.ChannelTitle))
	}

	sentiment := opts.Sentiment
	if sentiment == "" {
		sentiment = SentimentNeutral
	}
	prompt.WriteString(fmt.Sprintf(` The sentiment of this comment appears to be %s.`, sentiment))

	prompt.WriteString(fmt.Sprintf(` Please generate a %s response that is appropriate for YouTube and maintains conversation.`, style))

	if opts.CustomIntroduction != "" {
		prompt.WriteString(fmt.Sprintf(` Start your response with a variation of: "%s"`, opts.CustomIntroduction))
	}

	switch {
	case sentiment == SentimentPositive:
		prompt.WriteString(` The viewer seems positive, so acknowledge their enthusiasm in your reply.`)
	case sentiment == SentimentNegative:
		prompt.WriteString(` The viewer seems concerned or negative, so be understanding and helpful in your reply.`)
	case strings.Contains(commentText, "?"):
		prompt.WriteString(` The viewer is asking a question, so make sure to address it directly.`)
	}

	prompt.WriteString(` Keep your response concise (under 200 characters if possible), engaging, and conversational.`)

	return prompt.String()
}
