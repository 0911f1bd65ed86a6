// Package apperror defines the application's error taxonomy.
//
// Every failure the API can report falls into one of four categories, each
// with a numeric code that mirrors its HTTP meaning:
//
//	400 BadRequest   — malformed input (password/email format, page/limit)
//	401 Unauthorized — missing/invalid/expired token, or bad login credentials
//	404 NotFound     — referenced user does not exist
//	409 Conflict     — duplicate email on creation
//
// The service layer returns these; the GraphQL layer surfaces them as errors
// with the code in the "extensions" object of the response. Neither layer
// needs to know about the other — the mapping happens through the
// Extensions() method, which the GraphQL engine discovers on its own.
package apperror

import "errors"

// Sentinel errors for errors.Is checks across the error chain.
var (
	ErrBadRequest   = errors.New("bad request")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
)

// AppError is a typed application error carrying a machine-readable code and
// a stable human-readable message.
//
// The messages are part of the API contract — tests pin them exactly — so
// they are set by the caller, never synthesised here.
type AppError struct {
	Err     error  // sentinel category (ErrBadRequest, ErrUnauthorized, ...)
	Code    int    // numeric code surfaced to clients (400, 401, 404, 409)
	Message string // human-readable error message
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Extensions reports the error metadata to include in a GraphQL error
// response. graph-gophers/graphql-go checks resolver errors for exactly this
// method and copies the map into the response's "extensions" field, so a
// client sees:
//
//	{"errors": [{"message": "user not found", "extensions": {"code": 404}}]}
func (e *AppError) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": e.Code}
}

// BadRequest returns a 400 error for malformed input.
func BadRequest(message string) *AppError {
	return &AppError{Err: ErrBadRequest, Code: 400, Message: message}
}

// Unauthorized returns a 401 error for authentication failures.
//
// Login deliberately uses one identical message for both "email not found"
// and "password mismatch" so a response never reveals which check failed.
func Unauthorized(message string) *AppError {
	return &AppError{Err: ErrUnauthorized, Code: 401, Message: message}
}

// NotFound returns a 404 error for a missing user.
func NotFound(message string) *AppError {
	return &AppError{Err: ErrNotFound, Code: 404, Message: message}
}

// Conflict returns a 409 error for a duplicate email.
func Conflict(message string) *AppError {
	return &AppError{Err: ErrConflict, Code: 409, Message: message}
}
