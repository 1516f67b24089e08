// Package storage persists the export journal.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/painel/internal/model"
)

// Validation errors.
var (
	ErrNilContext    = errors.New("context cannot be nil")
	ErrEmptyString   = errors.New("string parameter cannot be empty")
	ErrNilParameter  = errors.New("parameter cannot be nil")
	ErrInvalidExport = errors.New("invalid export record")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateExport checks a record before it is journalled.
func validateExport(rec *model.ExportRecord) error {
	if rec == nil {
		return fmt.Errorf("%w: export", ErrNilParameter)
	}
	if strings.TrimSpace(rec.Page) == "" {
		return fmt.Errorf("%w: page is required", ErrInvalidExport)
	}
	if strings.TrimSpace(rec.Path) == "" {
		return fmt.Errorf("%w: path is required", ErrInvalidExport)
	}
	if rec.Rows < 0 || rec.TotalRows < 0 {
		return fmt.Errorf("%w: negative row count", ErrInvalidExport)
	}
	if rec.Rows > rec.TotalRows {
		return fmt.Errorf("%w: %d rows exported out of %d", ErrInvalidExport, rec.Rows, rec.TotalRows)
	}
	return nil
}
