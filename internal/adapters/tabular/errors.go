package tabular

import "errors"

// Sentinel kinds for table ingestion and export errors.
var (
	ErrEmptyInput    = errors.New("input table has no header row")
	ErrMissingColumn = errors.New("required column missing")
)
