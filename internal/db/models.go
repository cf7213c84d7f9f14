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

import "time"

// Модель отслеживаемого видео
type TargetVideo struct {
	VideoID      string    `db:"video_id"`      // ID видео на YouTube
	CreatedAt    time.Time `db:"created_at"`    // Когда добавлено в мониторинг
	Title        string    `db:"title"`         // Название видео
	ChannelTitle string    `db:"channel_title"` // Название канала
	LastCheck    int64     `db:"last_check"`    // Время последней проверки (unix timestamp)
}

// Счетчики сгенерированных и опубликованных ответов
type ResponseStats struct {
	TotalGenerated int    `db:"total_generated"`
	TotalPosted    int    `db:"total_posted"`
	TodayCount     int    `db:"today_count"`
	LastResetDate  string `db:"last_reset_date"` // Дата в формате ГГГГ-ММ-ДД
}

// Запись истории общения с комментатором
type HistoryRecord struct {
	ID         string    `db:"id"`
	AuthorID   string    `db:"author_id"`   // ID канала автора
	AuthorName string    `db:"author_name"` // Отображаемое имя автора
	Date       time.Time `db:"date"`
	Comment    string    `db:"comment"`
	Response   string    `db:"response"`
}
