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

package db

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()

	database, err := NewDB(filepath.Join(t.TempDir(), "test.sqlite3"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	return database
}

func TestVideos(t *testing.T) {
	database := openTestDB(t)

	video := TargetVideo{
		VideoID:      "dQw4w9WgXcQ",
		Title:        "Test Video",
		ChannelTitle: "Test Channel",
		LastCheck:    time.Now().Unix(),
	}
	require.NoError(t, database.AddVideo(&video))

	got, err := database.GetVideo("dQw4w9WgXcQ")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Test Video", got.Title)
	assert.Equal(t, "Test Channel", got.ChannelTitle)
	assert.False(t, got.CreatedAt.IsZero())

	videos, err := database.GetVideos()
	require.NoError(t, err)
	assert.Len(t, videos, 1)

	// Повторное добавление того же видео должно упасть на PRIMARY KEY
	assert.Error(t, database.AddVideo(&video))

	require.NoError(t, database.RemoveVideo("dQw4w9WgXcQ"))
	got, err = database.GetVideo("dQw4w9WgXcQ")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUpdateLastCheck(t *testing.T) {
	database := openTestDB(t)

	video := TargetVideo{VideoID: "abc12345678", LastCheck: 100}
	require.NoError(t, database.AddVideo(&video))

	require.NoError(t, database.UpdateLastCheck("abc12345678", 500))

	got, err := database.GetVideo("abc12345678")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(500), got.LastCheck)
}

func TestStatsCounters(t *testing.T) {
	database := openTestDB(t)
	today := time.Now().Format("2006-01-02")

	stats, err := database.GetStats(today)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalGenerated)
	assert.Equal(t, 0, stats.TodayCount)

	require.NoError(t, database.RecordGenerated(today))
	require.NoError(t, database.RecordGenerated(today))
	require.NoError(t, database.RecordPosted())

	stats, err = database.GetStats(today)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalGenerated)
	assert.Equal(t, 1, stats.TotalPosted)
	assert.Equal(t, 2, stats.TodayCount)
	assert.Equal(t, today, stats.LastResetDate)
}

func TestStatsDailyReset(t *testing.T) {
	database := openTestDB(t)

	yesterday := time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	today := time.Now().Format("2006-01-02")

	require.NoError(t, database.RecordGenerated(yesterday))
	require.NoError(t, database.RecordGenerated(yesterday))

	// Наступил новый день: дневной счетчик обнуляется, общие - нет
	stats, err := database.GetStats(today)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TodayCount)
	assert.Equal(t, 2, stats.TotalGenerated)
	assert.Equal(t, today, stats.LastResetDate)
}

func TestHistoryTruncation(t *testing.T) {
	database := openTestDB(t)

	for i := 0; i < HistoryPerAuthor+1; i++ {
		record := HistoryRecord{
			AuthorID:   "UCauthor",
			AuthorName: "Author",
			Date:       time.Now().Add(time.Duration(i) * time.Minute),
			Comment:    fmt.Sprintf("comment %d", i),
			Response:   fmt.Sprintf("response %d", i),
		}
		require.NoError(t, database.AddHistoryRecord(&record))
	}

	records, err := database.AuthorHistory("UCauthor")
	require.NoError(t, err)
	require.Len(t, records, HistoryPerAuthor)

	// Самая старая запись вытеснена
	assert.Equal(t, "comment 1", records[0].Comment)
	assert.Equal(t, "comment 5", records[len(records)-1].Comment)

	count, err := database.CountAuthorRecords("UCauthor")
	require.NoError(t, err)
	assert.Equal(t, HistoryPerAuthor, count)
}

func TestHistoryTruncationSubSecond(t *testing.T) {
	database := openTestDB(t)

	// Записи в пределах одной секунды, часть с нулевыми долями:
	// порядок вытеснения должен следовать времени, не строковому виду даты
	base := time.Now().Truncate(time.Second)
	offsets := []time.Duration{
		500 * time.Millisecond,
		0,
		900 * time.Millisecond,
		250 * time.Millisecond,
		time.Second,
		750 * time.Millisecond,
	}

	for i, offset := range offsets {
		record := HistoryRecord{
			AuthorID:   "UCauthor",
			AuthorName: "Author",
			Date:       base.Add(offset),
			Comment:    fmt.Sprintf("comment %d", i),
			Response:   fmt.Sprintf("response %d", i),
		}
		require.NoError(t, database.AddHistoryRecord(&record))
	}

	records, err := database.AuthorHistory("UCauthor")
	require.NoError(t, err)
	require.Len(t, records, HistoryPerAuthor)

	// Вытеснена запись с самым ранним временем (offset 0), а не
	// лексикографически "младшая"
	assert.Equal(t, "comment 3", records[0].Comment)
	assert.Equal(t, "comment 4", records[len(records)-1].Comment)
	for _, record := range records {
		assert.NotEqual(t, "comment 1", record.Comment)
	}
}

func TestHistoryAuthors(t *testing.T) {
	database := openTestDB(t)

	require.NoError(t, database.AddHistoryRecord(&HistoryRecord{
		AuthorID: "UCone", AuthorName: "One", Comment: "hi", Response: "hello",
	}))
	require.NoError(t, database.AddHistoryRecord(&HistoryRecord{
		AuthorID: "UCone", AuthorName: "One", Comment: "again", Response: "hello again",
	}))
	require.NoError(t, database.AddHistoryRecord(&HistoryRecord{
		AuthorID: "UCtwo", AuthorName: "Two", Comment: "hey", Response: "hey there",
	}))

	authors, err := database.HistoryAuthors()
	require.NoError(t, err)
	require.Len(t, authors, 2)

	// Отсортированы по числу записей
	assert.Equal(t, "UCone", authors[0].AuthorID)
	assert.Equal(t, 2, authors[0].Records)
	assert.Equal(t, "UCtwo", authors[1].AuthorID)
}

func TestToken(t *testing.T) {
	database := openTestDB(t)

	token, expiresAt, err := database.GetToken()
	require.NoError(t, err)
	assert.Empty(t, token)
	assert.Zero(t, expiresAt)

	require.NoError(t, database.SaveToken("ya29.first", 1000))
	require.NoError(t, database.SaveToken("ya29.second", 2000))

	token, expiresAt, err = database.GetToken()
	require.NoError(t, err)
	assert.Equal(t, "ya29.second", token)
	assert.Equal(t, int64(2000), expiresAt)

	require.NoError(t, database.ClearToken())

	token, _, err = database.GetToken()
	require.NoError(t, err)
	assert.Empty(t, token)
}
