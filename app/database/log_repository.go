package database

import (
	"database/sql"
	"fmt"
	"time"
)

var _ LogRepository = (*LogRepo)(nil)

// LogRepo handles database operations for ingestion run logs.
type LogRepo struct {
	db *DB
}

func NewLogRepository(db *DB) *LogRepo {
	return &LogRepo{db: db}
}

// StartLog appends a running log row for a (connector, category) execution.
func (r *LogRepo) StartLog(sourceName, category string) (int64, error) {
	result, err := r.db.Exec(`
		INSERT INTO ingestion_logs (source_name, category, status, started_at)
		VALUES (?, ?, ?, ?)
	`, sourceName, category, LogStatusRunning, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to insert ingestion log: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get ingestion log id: %w", err)
	}

	return id, nil
}

// CompleteLog fills in the completion fields of a log row.
func (r *LogRepo) CompleteLog(id int64, found, new int, status, errorMessage string) error {
	_, err := r.db.Exec(`
		UPDATE ingestion_logs
		SET articles_found = ?, articles_new = ?, status = ?, error_message = ?, completed_at = ?
		WHERE id = ?
	`, found, new, status, errorMessage, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to complete ingestion log: %w", err)
	}
	return nil
}

// GetRecentLogs returns log rows ordered by start time, newest first.
func (r *LogRepo) GetRecentLogs(limit int) ([]IngestionLog, error) {
	rows, err := r.db.Query(`
		SELECT id, source_name, category, articles_found, articles_new,
		       status, error_message, started_at, completed_at
		FROM ingestion_logs
		ORDER BY started_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get ingestion logs: %w", err)
	}
	defer rows.Close()

	var logs []IngestionLog
	for rows.Next() {
		var log IngestionLog
		var completedAt sql.NullTime

		err := rows.Scan(
			&log.ID, &log.SourceName, &log.Category,
			&log.ArticlesFound, &log.ArticlesNew,
			&log.Status, &log.ErrorMessage, &log.StartedAt, &completedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ingestion log row: %w", err)
		}

		if completedAt.Valid {
			log.CompletedAt = &completedAt.Time
		}

		logs = append(logs, log)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ingestion log rows: %w", err)
	}

	return logs, nil
}
