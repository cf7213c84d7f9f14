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
	"database/sql"

	_ "modernc.org/sqlite"
)

type DB struct {
	*sql.DB
}

func NewDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path+"?_journal=WAL&_timeout=5000&_fk=true")
	if err != nil {
		return nil, err
	}

	// Verify connection
	if err := db.Ping(); err != nil {
		return nil, err
	}

	_, err = db.Exec(`
	CREATE TABLE IF NOT EXISTS target_videos (
		video_id TEXT PRIMARY KEY,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		title TEXT NOT NULL,
		channel_title TEXT DEFAULT '',
		last_check INTEGER DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS response_stats (
		id INTEGER PRIMARY KEY CHECK(id = 1),
		total_generated INTEGER DEFAULT 0,
		total_posted INTEGER DEFAULT 0,
		today_count INTEGER DEFAULT 0,
		last_reset_date TEXT DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS comment_history (
		id TEXT PRIMARY KEY,
		author_id TEXT NOT NULL,
		author_name TEXT NOT NULL,
		date INTEGER NOT NULL,
		comment TEXT NOT NULL,
		response TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_history_author ON comment_history(author_id, date);

	CREATE TABLE IF NOT EXISTS oauth_token (
		id INTEGER PRIMARY KEY CHECK(id = 1),
		access_token TEXT NOT NULL,
		expires_at INTEGER NOT NULL
	);

	INSERT OR IGNORE INTO response_stats (id) VALUES (1);
`)
	if err != nil {
		return nil, err
	}

	return &DB{db}, nil
}
