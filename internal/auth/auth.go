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
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	authEndpoint = "https://accounts.google.com/o/oauth2/auth"
	// Право публиковать комментарии
	oauthScope = "https://www.googleapis.com/auth/youtube.force-ssl"

	// Если провайдер не прислал expires_in - считаем, что токен живет час
	defaultExpiresIn = 3600
)

type AuthError struct {
	Reason string
}

func (e *AuthError) Error() string {
	return "auth error: " + e.Reason
}

// Хранилище токена (реализуется пакетом db)
type TokenStore interface {
	SaveToken(accessToken string, expiresAt int64) error
	GetToken() (string, int64, error)
	ClearToken() error
}

// Менеджер implicit-потока OAuth: токен приходит во фрагменте
// редиректа, refresh-токена нет - по истечении нужен новый
// интерактивный заход.
type Manager struct {
	store      TokenStore
	clientID   string
	listenAddr string

	now func() time.Time
}

func NewManager(store TokenStore, clientID string, listenAddr string) *Manager {
	return &Manager{
		store:      store,
		clientID:   clientID,
		listenAddr: listenAddr,
		now:        time.Now,
	}
}

func (m *Manager) RedirectURL() string {
	return "http://" + m.listenAddr + "/callback"
}

// Собирает URL авторизации implicit-потока (response_type=token)
func (m *Manager) AuthURL() string {
	params := url.Values{}
	params.Set("client_id", m.clientID)
	params.Set("response_type", "token")
	params.Set("redirect_uri", m.RedirectURL())
	params.Set("scope", oauthScope)

	return authEndpoint + "?" + params.Encode()
}

func (m *Manager) IsAuthenticated() bool {
	token, expiresAt, err := m.store.GetToken()
	if err != nil || token == "" {
		return false
	}

	return m.now().UnixMilli() < expiresAt
}

// Возвращает действующий токен. Интерактивный поток отсюда не
// запускается: бот не может открыть браузер за оператора,
// авторизация идет через команду /auth.
func (m *Manager) AccessToken() (string, bool) {
	if !m.IsAuthenticated() {
		return "", false
	}

	token, _, err := m.store.GetToken()
	if err != nil {
		return "", false
	}

	return token, true
}

func (m *Manager) ClearAuthentication() error {
	return m.store.ClearToken()
}

type fragment struct {
	accessToken string
	expiresIn   int64
}

// Достает access_token и expires_in из фрагмента URL редиректа
func ParseRedirect(rawURL string) (string, int64, error) {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", 0, &AuthError{Reason: "malformed redirect URL"}
	}

	raw := parsed.Fragment
	if raw == "" {
		// Страница захвата переписывает фрагмент в query string
		raw = parsed.RawQuery
	}
	if raw == "" {
		return "", 0, &AuthError{Reason: "redirect carries no token fragment"}
	}

	values, err := url.ParseQuery(raw)
	if err != nil {
		return "", 0, &AuthError{Reason: "malformed token fragment"}
	}

	token := values.Get("access_token")
	if token == "" {
		return "", 0, &AuthError{Reason: "no access token in redirect"}
	}

	expiresIn, err := strconv.ParseInt(values.Get("expires_in"), 10, 64)
	if err != nil || expiresIn <= 0 {
		expiresIn = defaultExpiresIn
	}

	return token, expiresIn, nil
}

func (m *Manager) persist(token string, expiresIn int64) error {
	expiresAt := m.now().UnixMilli() + expiresIn*1000
	return m.store.SaveToken(token, expiresAt)
}

// Ручной путь: оператор вставляет URL, на который его редиректнуло
func (m *Manager) HandleRedirect(rawURL string) error {
	token, expiresIn, err := ParseRedirect(rawURL)
	if err != nil {
		return err
	}

	return m.persist(token, expiresIn)
}

// Страница, которая переписывает фрагмент (#access_token=...) в query
// string: сам фрагмент до сервера не доходит, это ограничение протокола.
const capturePage = `<!DOCTYPE html>
<html><head><meta charset="utf-8"><title>YTARbot</title></head>
<body><p>Завершаем авторизацию...</p>
<script>
if (location.hash.length > 1) {
	location.replace("/callback?" + location.hash.substring(1));
} else {
	document.body.innerText = "Токен не получен. Закройте вкладку и попробуйте снова.";
}
</script></body></html>`

func captureHandler(tokens chan<- fragment) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.URL.Query().Get("access_token")
		if token == "" {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			fmt.Fprint(w, capturePage)
			return
		}

		expiresIn, err := strconv.ParseInt(r.URL.Query().Get("expires_in"), 10, 64)
		if err != nil || expiresIn <= 0 {
			expiresIn = defaultExpiresIn
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, "<html><body>Авторизация прошла успешно. Эту вкладку можно закрыть.</body></html>")

		select {
		case tokens <- fragment{accessToken: token, expiresIn: expiresIn}:
		default:
		}
	})
}

// Поднимает локальный сервер на адресе редиректа и ждет токен.
// Возвращает токен после сохранения или ошибку, если оператор
// не завершил авторизацию до отмены контекста.
func (m *Manager) StartAuthFlow(ctx context.Context) (string, error) {
	if m.clientID == "" {
		return "", &AuthError{Reason: "oauth client id is not configured"}
	}

	listener, err := net.Listen("tcp", m.listenAddr)
	if err != nil {
		return "", fmt.Errorf("failed to listen on %s: %w", m.listenAddr, err)
	}

	tokens := make(chan fragment, 1)
	mux := http.NewServeMux()
	mux.Handle("/callback", captureHandler(tokens))

	server := &http.Server{Handler: mux}
	go server.Serve(listener)

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	select {
	case received := <-tokens:
		if err := m.persist(received.accessToken, received.expiresIn); err != nil {
			return "", err
		}
		return received.accessToken, nil
	case <-ctx.Done():
		return "", &AuthError{Reason: "authorization flow cancelled"}
	}
}
