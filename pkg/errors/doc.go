// Package errors provides structured error handling with error codes for simple-admin.
//
// This package standardizes error handling across all services with typed error codes,
// structured error details, and automatic HTTP status code mapping.
//
// Creating errors with codes:
//
//	import "github.com/tendant/simple-admin/pkg/errors"
//
//	// Create a simple error
//	err := errors.New(errors.ErrCodeUserNotFound, "user not found")
//
//	// Wrap an existing error
//	err := errors.Wrap(dbErr, errors.ErrCodeInternal, "failed to query database")
//
//	// Use convenience constructors
//	err := errors.NotFound("user", userID)
//	err := errors.AlreadyExists("username", username)
//
// Checking error codes at the boundary:
//
//	if errors.IsCode(err, errors.ErrCodeUserAlreadyExists) {
//		// respond with 409
//	}
//
// HTTP handlers can map any structured error to a status code with
// MapErrorCodeToHTTPStatus or Error.HTTPStatusCode.
package errors
