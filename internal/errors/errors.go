// Package errors defines the typed application errors shared by the ingest
// pipeline, the transit-times updater and the CLI.
package errors

import (
	stderrors "errors"
)

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// Join returns an error that wraps the given errors
func Join(errs ...error) error {
	return stderrors.Join(errs...)
}

// MissingHeaders returns the missing column names of a MISSING_HEADERS error
func MissingHeaders(err error) []string {
	var appErr *AppError
	if !stderrors.As(err, &appErr) || appErr.Type != ErrTypeMissingHeaders {
		return nil
	}
	missing, _ := appErr.Context["missing"].([]string)
	return missing
}
