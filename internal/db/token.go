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

import "database/sql"

// OAuth токен храним отдельной таблицей: он привязан к устройству
// и не должен уезжать вместе с остальными настройками.

func (db *DB) SaveToken(accessToken string, expiresAt int64) error {
	_, err := db.Exec(`
		INSERT INTO oauth_token (id, access_token, expires_at)
		VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET access_token = excluded.access_token, expires_at = excluded.expires_at
	`, accessToken, expiresAt)
	return err
}

// Возвращает токен и время истечения (unix миллисекунды).
// Если токена нет - пустая строка без ошибки.
func (db *DB) GetToken() (string, int64, error) {
	var token string
	var expiresAt int64

	err := db.QueryRow(`
		SELECT access_token, expires_at FROM oauth_token WHERE id = 1
	`).Scan(&token, &expiresAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", 0, nil
		}
		return "", 0, err
	}

	return token, expiresAt, nil
}

func (db *DB) ClearToken() error {
	_, err := db.Exec(`DELETE FROM oauth_token WHERE id = 1`)
	return err
}
