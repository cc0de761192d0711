package errs

import (
	"errors"
	"fmt"
)

// Code identifies a stable, client-facing error code. Clients switch on the
// code, never on the message.
type Code string

// Authentication errors (ERC1-ERC10)
const (
	CodeMissingCredentials Code = "ERC1" // Email and password are required
	CodeAlreadyRegistered  Code = "ERC2" // Email already registered
	CodeEmailNotFound      Code = "ERC3" // Email not found
	CodeBadPassword        Code = "ERC4" // Incorrect password
	CodeInternal           Code = "ERC5" // Internal server error
	CodeValidation         Code = "ERC6" // Validation error (invalid email format, etc.)
	CodeTokenRequired      Code = "ERC7" // Authentication token required
	CodeTokenExpired       Code = "ERC8" // Token expired
	CodeTokenInvalid       Code = "ERC9" // Invalid token
)

// Database errors (ERC11-ERC20)
const (
	CodeDBConnection Code = "ERC11" // Database connection error
	CodeCreateFailed Code = "ERC12" // User creation failed
	CodeUpdateFailed Code = "ERC13" // User update failed
	CodeDeleteFailed Code = "ERC14" // User deletion failed
	CodeUserNotFound Code = "ERC15" // User not found
	CodeDuplicateKey Code = "ERC16" // Duplicate email error
)

// General errors (ERC21-ERC30)
const (
	CodeServerStartup Code = "ERC21" // Server startup error
	CodeDBInit        Code = "ERC22" // Database initialization error
)

var messages = map[Code]string{
	CodeMissingCredentials: "Email and password are required",
	CodeAlreadyRegistered:  "Email already registered. Please login instead.",
	CodeEmailNotFound:      "Email not found. Please sign up first.",
	CodeBadPassword:        "Incorrect password",
	CodeInternal:           "Internal server error",
	CodeValidation:         "Validation error",
	CodeTokenRequired:      "Authentication token required",
	CodeTokenExpired:       "Token has expired. Please login again.",
	CodeTokenInvalid:       "Invalid authentication token",

	CodeDBConnection: "Database connection error",
	CodeCreateFailed: "User creation failed",
	CodeUpdateFailed: "User update failed",
	CodeDeleteFailed: "User deletion failed",
	CodeUserNotFound: "User not found",
	CodeDuplicateKey: "User with this email already exists",

	CodeServerStartup: "Server startup error",
	CodeDBInit:        "Database initialization error",
}

// Message returns the canonical message for a code.
func Message(c Code) string { return messages[c] }

// Error is a failure carrying a stable code alongside its cause. The cause is
// kept for server-side logs only and must never reach a client.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// New returns a coded error with the canonical message for the code.
func New(code Code) *Error {
	return &Error{Code: code, Message: Message(code)}
}

// Wrap attaches a code to an underlying cause.
func Wrap(code Code, err error) *Error {
	return &Error{Code: code, Message: Message(code), Err: err}
}

// CodeOf extracts the code from an error chain. The second result is false for
// uncoded errors; the outermost handler maps those to CodeInternal.
func CodeOf(err error) (Code, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Code, true
	}
	return "", false
}
