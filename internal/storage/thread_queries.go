package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"threadgems/internal/models"
	"threadgems/internal/threads"
	"time"
)

// SaveCuratedThreads upserts the curated list and drops rows that have expired.
func (p *DatabaseProvider) SaveCuratedThreads(ctx context.Context, list []models.Thread, expiresAt time.Time) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	upsertQuery := `
		INSERT INTO curated_threads (thread_id, handle, thread_type, published_at, data, fetched_at, expires_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (thread_id)
		DO UPDATE SET
			handle = excluded.handle,
			thread_type = excluded.thread_type,
			published_at = excluded.published_at,
			data = excluded.data,
			fetched_at = excluded.fetched_at,
			expires_at = excluded.expires_at
	`

	stmt, err := tx.PrepareContext(ctx, upsertQuery)
	if err != nil {
		return fmt.Errorf("failed to prepare thread upsert: %w", err)
	}
	defer stmt.Close()

	for _, thread := range list {
		payload, err := json.Marshal(thread)
		if err != nil {
			return fmt.Errorf("failed to encode thread %s: %w", thread.ID, err)
		}

		var publishedAt int64
		if ts, ok := threads.ParseTimestamp(thread.Timestamp); ok {
			publishedAt = ts.Unix()
		}

		if _, err := stmt.ExecContext(ctx,
			thread.ID,
			thread.Handle,
			string(thread.Type),
			publishedAt,
			string(payload),
			unixOrZero(thread.FetchedAt),
			unixOrZero(expiresAt),
		); err != nil {
			return fmt.Errorf("failed to save thread %s: %w", thread.ID, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM curated_threads WHERE expires_at > 0 AND expires_at <= ?`, p.clock().Unix()); err != nil {
		return fmt.Errorf("failed to prune expired threads: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// ListCuratedThreads returns unexpired threads, newest first.
func (p *DatabaseProvider) ListCuratedThreads(ctx context.Context, limit int) ([]models.Thread, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	query := `
		SELECT data
		FROM curated_threads
		WHERE expires_at = 0 OR expires_at > ?
		ORDER BY published_at DESC, thread_id
		LIMIT ?
	`

	rows, err := p.db.QueryContext(ctx, query, p.clock().Unix(), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list curated threads: %w", err)
	}
	defer rows.Close()

	list := make([]models.Thread, 0)
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan thread: %w", err)
		}

		var thread models.Thread
		if err := json.Unmarshal([]byte(payload), &thread); err != nil {
			return nil, fmt.Errorf("failed to decode thread: %w", err)
		}
		list = append(list, thread)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate threads: %w", err)
	}

	return list, nil
}

func (p *DatabaseProvider) RecordDeletions(ctx context.Context, deletions []models.ThreadDeletion) error {
	if len(deletions) == 0 {
		return nil
	}

	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	insertQuery := `
		INSERT INTO thread_deletions (batch_id, thread_id, handle, reason, deleted_at)
		VALUES (?, ?, ?, ?, ?)
	`

	for _, deletion := range deletions {
		if _, err := tx.ExecContext(ctx, insertQuery,
			deletion.BatchID,
			deletion.ThreadID,
			deletion.Handle,
			deletion.Reason,
			unixOrZero(deletion.DeletedAt),
		); err != nil {
			return fmt.Errorf("failed to record deletion of %s: %w", deletion.ThreadID, err)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM curated_threads WHERE thread_id = ?`, deletion.ThreadID); err != nil {
			return fmt.Errorf("failed to remove deleted thread %s: %w", deletion.ThreadID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// ListDeletions returns the most recent deletions first.
func (p *DatabaseProvider) ListDeletions(ctx context.Context, limit int) ([]models.ThreadDeletion, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	query := `
		SELECT batch_id, thread_id, handle, reason, deleted_at
		FROM thread_deletions
		ORDER BY deleted_at DESC, id DESC
		LIMIT ?
	`

	rows, err := p.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list deletions: %w", err)
	}
	defer rows.Close()

	deletions := make([]models.ThreadDeletion, 0)
	for rows.Next() {
		var (
			deletion  models.ThreadDeletion
			deletedAt int64
		)
		if err := rows.Scan(&deletion.BatchID, &deletion.ThreadID, &deletion.Handle, &deletion.Reason, &deletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan deletion: %w", err)
		}
		deletion.DeletedAt = timeOrZero(deletedAt)
		deletions = append(deletions, deletion)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate deletions: %w", err)
	}

	return deletions, nil
}
