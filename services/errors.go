package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/Dosada05/sports-portal/repositories"
)

// Общие ошибки, используемые в разных сервисах и маппинге HTTP.
var (
	ErrNotFound = errors.New("requested resource not found")

	ErrMatchNotFound      = fmt.Errorf("match: %w", ErrNotFound)
	ErrTeamNotFound       = fmt.Errorf("team: %w", ErrNotFound)
	ErrCommentaryNotFound = fmt.Errorf("commentary entry: %w", ErrNotFound)

	ErrValidationFailed       = errors.New("validation failed")
	ErrUnsupportedScoreAction = errors.New("score action is not supported for this match")

	ErrAuthenticationRequired = errors.New("authentication required")
	ErrUnauthorized           = errors.New("not authorized to manage this match")

	ErrMatchFinalized  = errors.New("match is final and can no longer be scored")
	ErrVersionConflict = errors.New("match was modified concurrently, retry the request")

	ErrStoreFailure       = errors.New("storage operation failed")
	ErrStorageUnavailable = errors.New("file storage is not configured")
)

// ValidationError carries per-field messages. It matches ErrValidationFailed
// with errors.Is.
type ValidationError struct {
	Fields map[string]string
}

func newValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

func (e *ValidationError) Add(field, message string) {
	if _, exists := e.Fields[field]; !exists {
		e.Fields[field] = message
	}
}

func (e *ValidationError) Empty() bool {
	return len(e.Fields) == 0
}

// Err returns nil when no field failed.
func (e *ValidationError) Err() error {
	if e.Empty() {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}

func fieldError(field, message string) error {
	v := newValidationError()
	v.Add(field, message)
	return v
}

// mapRepoError translates repository errors into the service taxonomy.
func mapRepoError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrMatchNotFound):
		return ErrMatchNotFound
	case errors.Is(err, repositories.ErrTeamNotFound):
		return ErrTeamNotFound
	case errors.Is(err, repositories.ErrMatchVersionConflict):
		return ErrVersionConflict
	case errors.Is(err, repositories.ErrMatchTeamInvalid):
		return fieldError("team", "referenced team does not exist")
	}
	return fmt.Errorf("%w: %w", ErrStoreFailure, err)
}
