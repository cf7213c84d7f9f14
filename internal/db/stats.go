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

// Возвращает счетчики ответов. Если наступил новый день, дневной счетчик
// обнуляется прямо при чтении; общие счетчики не трогаем.
func (db *DB) GetStats(today string) (*ResponseStats, error) {
	_, err := db.Exec(`
		UPDATE response_stats
		SET today_count = 0, last_reset_date = ?
		WHERE id = 1 AND last_reset_date != ?
	`, today, today)
	if err != nil {
		return nil, err
	}

	var stats ResponseStats
	err = db.QueryRow(`
		SELECT total_generated, total_posted, today_count, last_reset_date
		FROM response_stats
		WHERE id = 1
	`).Scan(
		&stats.TotalGenerated,
		&stats.TotalPosted,
		&stats.TodayCount,
		&stats.LastResetDate,
	)
	if err != nil {
		return nil, err
	}

	return &stats, nil
}

// Одним запросом увеличивает счетчик сгенерированных и дневной счетчик.
// Инкремент внутри БД, поэтому параллельные проверки не теряют обновления.
func (db *DB) RecordGenerated(today string) error {
	_, err := db.Exec(`
		UPDATE response_stats
		SET total_generated = total_generated + 1,
		    today_count = today_count + 1,
		    last_reset_date = ?
		WHERE id = 1
	`, today)
	return err
}

func (db *DB) RecordPosted() error {
	_, err := db.Exec(`
		UPDATE response_stats
		SET total_posted = total_posted + 1
		WHERE id = 1
	`)
	return err
}

func (db *DB) ResetDailyCount(today string) error {
	_, err := db.Exec(`
		UPDATE response_stats
		SET today_count = 0, last_reset_date = ?
		WHERE id = 1
	`, today)
	return err
}
