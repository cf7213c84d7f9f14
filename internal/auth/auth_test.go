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

package auth

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	token     string
	expiresAt int64
}

func (s *fakeStore) SaveToken(accessToken string, expiresAt int64) error {
	s.token = accessToken
	s.expiresAt = expiresAt
	return nil
}

func (s *fakeStore) GetToken() (string, int64, error) {
	return s.token, s.expiresAt, nil
}

func (s *fakeStore) ClearToken() error {
	s.token = ""
	s.expiresAt = 0
	return nil
}

func testManager(store *fakeStore, now time.Time) *Manager {
	manager := NewManager(store, "client123.apps.googleusercontent.com", "localhost:8667")
	manager.now = func() time.Time { return now }
	return manager
}

func TestAuthURL(t *testing.T) {
	manager := testManager(&fakeStore{}, time.Now())

	parsed, err := url.Parse(manager.AuthURL())
	require.NoError(t, err)

	assert.Equal(t, "accounts.google.com", parsed.Host)
	assert.Equal(t, "token", parsed.Query().Get("response_type"))
	assert.Equal(t, "client123.apps.googleusercontent.com", parsed.Query().Get("client_id"))
	assert.Equal(t, "http://localhost:8667/callback", parsed.Query().Get("redirect_uri"))
	assert.Contains(t, parsed.Query().Get("scope"), "youtube.force-ssl")
}

func TestParseRedirect(t *testing.T) {
	token, expiresIn, err := ParseRedirect("http://localhost:8667/callback#access_token=ya29.abc&token_type=Bearer&expires_in=3599")
	require.NoError(t, err)
	assert.Equal(t, "ya29.abc", token)
	assert.Equal(t, int64(3599), expiresIn)

	// Страница захвата переписывает фрагмент в query string
	token, _, err = ParseRedirect("http://localhost:8667/callback?access_token=ya29.def&expires_in=100")
	require.NoError(t, err)
	assert.Equal(t, "ya29.def", token)
}

func TestParseRedirectDefaultExpiry(t *testing.T) {
	_, expiresIn, err := ParseRedirect("http://localhost:8667/callback#access_token=ya29.abc")
	require.NoError(t, err)
	assert.Equal(t, int64(defaultExpiresIn), expiresIn)
}

func TestParseRedirectErrors(t *testing.T) {
	_, _, err := ParseRedirect("http://localhost:8667/callback")
	require.Error(t, err)

	_, _, err = ParseRedirect("http://localhost:8667/callback#error=access_denied")
	require.Error(t, err)

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
}

func TestIsAuthenticated(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	store := &fakeStore{}
	manager := testManager(store, now)
	assert.False(t, manager.IsAuthenticated())

	store.token = "ya29.abc"
	store.expiresAt = now.Add(time.Hour).UnixMilli()
	assert.True(t, manager.IsAuthenticated())

	token, ok := manager.AccessToken()
	assert.True(t, ok)
	assert.Equal(t, "ya29.abc", token)

	// Токен истек
	store.expiresAt = now.Add(-time.Minute).UnixMilli()
	assert.False(t, manager.IsAuthenticated())

	_, ok = manager.AccessToken()
	assert.False(t, ok)
}

func TestHandleRedirect(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := &fakeStore{}
	manager := testManager(store, now)

	err := manager.HandleRedirect("http://localhost:8667/callback#access_token=ya29.abc&expires_in=3600")
	require.NoError(t, err)

	assert.Equal(t, "ya29.abc", store.token)
	assert.Equal(t, now.UnixMilli()+3600*1000, store.expiresAt)
	assert.True(t, manager.IsAuthenticated())
}

func TestClearAuthentication(t *testing.T) {
	now := time.Now()
	store := &fakeStore{token: "ya29.abc", expiresAt: now.Add(time.Hour).UnixMilli()}
	manager := testManager(store, now)

	require.NoError(t, manager.ClearAuthentication())
	assert.False(t, manager.IsAuthenticated())
}

func TestCaptureHandler(t *testing.T) {
	tokens := make(chan fragment, 1)
	handler := captureHandler(tokens)

	// Без токена в query string отдается страница, переписывающая фрагмент
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest("GET", "/callback", nil))
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "location.hash")
	assert.Empty(t, tokens)

	// С токеном - фрагмент уходит в канал
	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest("GET", "/callback?access_token=ya29.abc&expires_in=100", nil))
	assert.Equal(t, http.StatusOK, recorder.Code)

	received := <-tokens
	assert.Equal(t, "ya29.abc", received.accessToken)
	assert.Equal(t, int64(100), received.expiresIn)
}
