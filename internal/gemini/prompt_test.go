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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSentiment(t *testing.T) {
	assert.Equal(t, SentimentPositive, normalizeSentiment("positive"))
	assert.Equal(t, SentimentPositive, normalizeSentiment(" Positive \n"))
	assert.Equal(t, SentimentNegative, normalizeSentiment("NEGATIVE"))
	assert.Equal(t, SentimentNeutral, normalizeSentiment("neutral"))

	// Все, что не распознано - нейтрально
	assert.Equal(t, SentimentNeutral, normalizeSentiment("maybe positive?"))
	assert.Equal(t, SentimentNeutral, normalizeSentiment(""))
}

func TestBuildSentimentPrompt(t *testing.T) {
	prompt := buildSentimentPrompt("Nice one!")
	assert.Contains(t, prompt, `"Nice one!"`)
	assert.Contains(t, prompt, `"positive", "negative", or "neutral"`)
}

func TestBuildReplyPromptDefaults(t *testing.T) {
	prompt := buildReplyPrompt("Great video", "friendly", Options{})

	assert.Contains(t, prompt, "a viewer")
	assert.Contains(t, prompt, `"Great video"`)
	assert.Contains(t, prompt, "appears to be neutral")
	assert.Contains(t, prompt, "generate a friendly response")
	assert.Contains(t, prompt, "under 200 characters")
	assert.NotContains(t, prompt, "video titled")
	assert.NotContains(t, prompt, "Start your response")
}

func TestBuildReplyPromptFull(t *testing.T) {
	prompt := buildReplyPrompt("Love this!", "humorous", Options{
		Sentiment:          SentimentPositive,
		AuthorName:         "Alex",
		VideoTitle:         "Go Tips",
		ChannelTitle:       "GopherTV",
		CustomIntroduction: "Thanks for watching!",
	})

	assert.Contains(t, prompt, "comment by Alex")
	assert.Contains(t, prompt, `video titled "Go Tips" from the channel "GopherTV"`)
	assert.Contains(t, prompt, "appears to be positive")
	assert.Contains(t, prompt, `variation of: "Thanks for watching!"`)
	assert.Contains(t, prompt, "acknowledge their enthusiasm")
}

func TestBuildReplyPromptNegative(t *testing.T) {
	prompt := buildReplyPrompt("This is wrong", "professional", Options{
		Sentiment: SentimentNegative,
	})

	assert.Contains(t, prompt, "be understanding and helpful")
	assert.NotContains(t, prompt, "acknowledge their enthusiasm")
}

func TestBuildReplyPromptQuestion(t *testing.T) {
	prompt := buildReplyPrompt("What camera do you use?", "friendly", Options{
		Sentiment: SentimentNeutral,
	})

	assert.Contains(t, prompt, "asking a question")
}

func TestBuildReplyPromptSentimentOverridesQuestion(t *testing.T) {
	// При позитивной тональности инструкция про вопрос не добавляется
	prompt := buildReplyPrompt("Amazing! What camera?", "friendly", Options{
		Sentiment: SentimentPositive,
	})

	assert.Contains(t, prompt, "acknowledge their enthusiasm")
	assert.NotContains(t, prompt, "asking a question")
}
