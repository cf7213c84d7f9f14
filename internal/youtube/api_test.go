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
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(server *httptest.Server) *Client {
	client := NewClient("test-key")
	client.baseURL = server.URL + "/"
	return client
}

func TestFetchComments(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/commentThreads", r.URL.Path)
		assert.Equal(t, "snippet", r.URL.Query().Get("part"))
		assert.Equal(t, "vid123", r.URL.Query().Get("videoId"))
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		assert.Equal(t, "time", r.URL.Query().Get("order"))

		fmt.Fprint(w, `{
			"items": [
				{
					"id": "thread1",
					"snippet": {
						"topLevelComment": {
							"snippet": {
								"textDisplay": "Great video!",
								"authorDisplayName": "Viewer",
								"authorChannelId": {"value": "UCviewer"},
								"publishedAt": "2025-06-01T12:00:00Z"
							}
						}
					}
				}
			]
		}`)
	}))
	defer server.Close()

	comments, err := testClient(server).FetchComments(context.Background(), "vid123")
	require.NoError(t, err)
	require.Len(t, comments, 1)

	assert.Equal(t, "thread1", comments[0].ID)
	assert.Equal(t, "Viewer", comments[0].Author)
	assert.Equal(t, "UCviewer", comments[0].AuthorChannelID)
	assert.Equal(t, "Great video!", comments[0].Text)
	assert.Equal(t, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC), comments[0].PublishedAt)
}

func TestFetchCommentsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"error": {"message": "quota exceeded"}}`)
	}))
	defer server.Close()

	_, err := testClient(server).FetchComments(context.Background(), "vid123")
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	assert.Equal(t, "quota exceeded", apiErr.Message)
}

func TestFilterNew(t *testing.T) {
	watermark := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	comments := []Comment{
		{ID: "old", PublishedAt: watermark.Add(-time.Hour)},
		{ID: "exact", PublishedAt: watermark},
		{ID: "fresh", PublishedAt: watermark.Add(time.Minute)},
	}

	fresh := FilterNew(comments, watermark)
	require.Len(t, fresh, 1)
	assert.Equal(t, "fresh", fresh[0].ID)
}

func TestGetVideoDetails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/videos", r.URL.Path)
		assert.Equal(t, "vid123", r.URL.Query().Get("id"))

		fmt.Fprint(w, `{
			"items": [
				{"snippet": {"title": "My Video", "description": "desc", "channelTitle": "My Channel"}}
			]
		}`)
	}))
	defer server.Close()

	details, err := testClient(server).GetVideoDetails(context.Background(), "vid123")
	require.NoError(t, err)
	require.NotNil(t, details)
	assert.Equal(t, "My Video", details.Title)
	assert.Equal(t, "My Channel", details.ChannelTitle)
}

func TestGetVideoDetailsNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"items": []}`)
	}))
	defer server.Close()

	details, err := testClient(server).GetVideoDetails(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, details)
}

func TestPostReply(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/comments", r.URL.Path)
		assert.Equal(t, "snippet", r.URL.Query().Get("part"))
		assert.Equal(t, "Bearer ya29.token", r.Header.Get("Authorization"))

		var body struct {
			Snippet struct {
				ParentID     string `json:"parentId"`
				TextOriginal string `json:"textOriginal"`
			} `json:"snippet"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "thread1", body.Snippet.ParentID)
		assert.Equal(t, "Thanks!", body.Snippet.TextOriginal)

		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	err := testClient(server).PostReply(context.Background(), "thread1", "Thanks!", "ya29.token")
	require.NoError(t, err)
}

func TestPostReplyUnauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error": {"message": "invalid credentials"}}`)
	}))
	defer server.Close()

	err := testClient(server).PostReply(context.Background(), "thread1", "Thanks!", "expired")
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
}
