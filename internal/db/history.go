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
	"time"

	"github.com/google/uuid"
)

// Храним не более 5 последних записей на автора
const HistoryPerAuthor = 5

func (db *DB) CountAuthorRecords(authorID string) (int, error) {
	var count int
	err := db.QueryRow(`
		SELECT COUNT(*) FROM comment_history
		WHERE author_id = ?
	`, authorID).Scan(&count)
	return count, err
}

// Добавляет запись истории и удаляет самые старые сверх лимита
func (db *DB) AddHistoryRecord(record *HistoryRecord) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.Date.IsZero() {
		record.Date = time.Now()
	}

	// Дата хранится в unix наносекундах: по числу ORDER BY упорядочивает
	// надежно, текстовые метки с разной точностью долей секунды - нет
	_, err := db.Exec(`
		INSERT INTO comment_history (id, author_id, author_name, date, comment, response)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		record.ID,
		record.AuthorID,
		record.AuthorName,
		record.Date.UnixNano(),
		record.Comment,
		record.Response,
	)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
		DELETE FROM comment_history
		WHERE author_id = ? AND id NOT IN (
			SELECT id FROM comment_history
			WHERE author_id = ?
			ORDER BY date DESC
			LIMIT ?
		)
	`, record.AuthorID, record.AuthorID, HistoryPerAuthor)

	return err
}

func (db *DB) AuthorHistory(authorID string) ([]HistoryRecord, error) {
	rows, err := db.Query(`
		SELECT id, author_id, author_name, date, comment, response
		FROM comment_history
		WHERE author_id = ?
		ORDER BY date ASC
	`, authorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []HistoryRecord
	for rows.Next() {
		var record HistoryRecord
		var date int64
		err := rows.Scan(
			&record.ID,
			&record.AuthorID,
			&record.AuthorName,
			&date,
			&record.Comment,
			&record.Response,
		)
		if err != nil {
			return nil, err
		}

		record.Date = time.Unix(0, date)

		records = append(records, record)
	}

	return records, nil
}

// Сводка по авторам для команды /history
type AuthorSummary struct {
	AuthorID   string
	AuthorName string
	Records    int
}

func (db *DB) HistoryAuthors() ([]AuthorSummary, error) {
	rows, err := db.Query(`
		SELECT author_id, MAX(author_name), COUNT(*)
		FROM comment_history
		GROUP BY author_id
		ORDER BY COUNT(*) DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var authors []AuthorSummary
	for rows.Next() {
		var author AuthorSummary
		if err := rows.Scan(&author.AuthorID, &author.AuthorName, &author.Records); err != nil {
			return nil, err
		}
		authors = append(authors, author)
	}

	return authors, nil
}
