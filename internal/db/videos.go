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
	"time"
)

func (db *DB) AddVideo(video *TargetVideo) error {
	if video.CreatedAt.IsZero() {
		video.CreatedAt = time.Now()
	}

	// Дату пишем сами в RFC3339: формат CURRENT_TIMESTAMP без зоны
	// не разбирается при чтении
	_, err := db.Exec(`
		INSERT INTO target_videos (video_id, created_at, title, channel_title, last_check)
		VALUES (?, ?, ?, ?, ?)
	`, video.VideoID, video.CreatedAt.UTC().Format(time.RFC3339), video.Title, video.ChannelTitle, video.LastCheck)
	return err
}

func (db *DB) RemoveVideo(videoID string) error {
	_, err := db.Exec(`
		DELETE FROM target_videos
		WHERE video_id = ?
	`, videoID)
	return err
}

func (db *DB) GetVideos() ([]TargetVideo, error) {
	rows, err := db.Query(`
		SELECT video_id, created_at, title, channel_title, last_check
		FROM target_videos
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var videos []TargetVideo
	for rows.Next() {
		var video TargetVideo
		var createdAt string
		err := rows.Scan(
			&video.VideoID,
			&createdAt,
			&video.Title,
			&video.ChannelTitle,
			&video.LastCheck,
		)
		if err != nil {
			return nil, err
		}

		video.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, err
		}

		videos = append(videos, video)
	}

	return videos, nil
}

func (db *DB) GetVideo(videoID string) (*TargetVideo, error) {
	var video TargetVideo
	var createdAt string

	err := db.QueryRow(`
		SELECT video_id, created_at, title, channel_title, last_check
		FROM target_videos
		WHERE video_id = ?
	`, videoID).Scan(
		&video.VideoID,
		&createdAt,
		&video.Title,
		&video.ChannelTitle,
		&video.LastCheck,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	video.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, err
	}

	return &video, nil
}

func (db *DB) UpdateLastCheck(videoID string, timestamp int64) error {
	_, err := db.Exec(`
		UPDATE target_videos
		SET last_check = ?
		WHERE video_id = ?
	`, timestamp, videoID)
	return err
}
