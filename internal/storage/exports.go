package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/Veraticus/painel/internal/model"
)

// ExportFilter narrows ListExports. Zero values mean no restriction.
type ExportFilter struct {
	Page  string
	Limit int
}

// RecordExport journals an export and sets rec.ID. CreatedAt defaults to now.
func (s *SQLiteStorage) RecordExport(ctx context.Context, rec *model.ExportRecord) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateExport(rec); err != nil {
		return err
	}

	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	if rec.Filters == nil {
		rec.Filters = map[string]string{}
	}

	filters, err := json.Marshal(rec.Filters)
	if err != nil {
		return fmt.Errorf("failed to encode filters: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO exports (page, file_name, path, exported_rows, total_rows, filters, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, rec.Page, rec.FileName, rec.Path, rec.Rows, rec.TotalRows, string(filters), rec.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to record export: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read export id: %w", err)
	}
	rec.ID = id
	return nil
}

// ListExports returns journal entries, newest first.
func (s *SQLiteStorage) ListExports(ctx context.Context, filter ExportFilter) ([]model.ExportRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	var (
		query strings.Builder
		args  []any
	)
	query.WriteString(`
		SELECT id, page, file_name, path, exported_rows, total_rows, filters, created_at
		FROM exports`)
	if filter.Page != "" {
		query.WriteString(` WHERE page = ?`)
		args = append(args, filter.Page)
	}
	query.WriteString(` ORDER BY created_at DESC, id DESC`)
	if filter.Limit > 0 {
		query.WriteString(` LIMIT ?`)
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query exports: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []model.ExportRecord
	for rows.Next() {
		var (
			rec     model.ExportRecord
			filters string
		)
		if err := rows.Scan(&rec.ID, &rec.Page, &rec.FileName, &rec.Path,
			&rec.Rows, &rec.TotalRows, &filters, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan export: %w", err)
		}
		if err := json.Unmarshal([]byte(filters), &rec.Filters); err != nil {
			return nil, fmt.Errorf("failed to decode filters of export %d: %w", rec.ID, err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate exports: %w", err)
	}

	return out, nil
}

// CountExports returns the number of journalled exports.
func (s *SQLiteStorage) CountExports(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM exports`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count exports: %w", err)
	}
	return n, nil
}
