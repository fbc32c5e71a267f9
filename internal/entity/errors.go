package entity

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingColumns means a market table lacks a required column role.
	ErrMissingColumns = errors.New("missing required columns")
	// ErrEmptyResult means a market table had no rows.
	ErrEmptyResult = errors.New("empty result")
)

// DataSourceError reports why a category could not be normalized.
type DataSourceError struct {
	Category Category
	Reason   error
	Detail   string
}

func (e *DataSourceError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("data source %s: %v: %s", e.Category, e.Reason, e.Detail)
	}
	return fmt.Sprintf("data source %s: %v", e.Category, e.Reason)
}

func (e *DataSourceError) Unwrap() error {
	return e.Reason
}
