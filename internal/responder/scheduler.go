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
	"sync"
	"time"
)

// Реестр отложенных публикаций: по таймеру на комментарий.
// Хранение ручек позволяет снять еще не сработавшие публикации,
// когда автоответчик выключают.
type postScheduler struct {
	mu     sync.Mutex
	timers map[string]*time.Timer
}

func newPostScheduler() *postScheduler {
	return &postScheduler{
		timers: make(map[string]*time.Timer),
	}
}

func (s *postScheduler) Schedule(commentID string, delay time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Повторное планирование по тому же комментарию заменяет таймер
	if existing, ok := s.timers[commentID]; ok {
		existing.Stop()
	}

	s.timers[commentID] = time.AfterFunc(delay, func() {
		s.remove(commentID)
		fn()
	})
}

func (s *postScheduler) remove(commentID string) {
	s.mu.Lock()
	delete(s.timers, commentID)
	s.mu.Unlock()
}

func (s *postScheduler) CancelAll() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cancelled := 0
	for id, timer := range s.timers {
		if timer.Stop() {
			cancelled++
		}
		delete(s.timers, id)
	}

	return cancelled
}

func (s *postScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}
