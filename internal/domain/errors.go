package domain

import "errors"

// Sentinel errors for errors.Is matching.
var (
	ErrValidation    = errors.New("invalid input")
	ErrDuplicate     = errors.New("already exists")
	ErrNotFound      = errors.New("not found")
	ErrNotEmpty      = errors.New("not empty")
	ErrPathTraversal = errors.New("path escapes root")
	ErrPersistence   = errors.New("persistence failure")
)

type (
	// ValidationError indicates rejected user input. Recoverable;
	// the message round-trips back to the originating form.
	ValidationError struct {
		Message string
	}

	// DuplicateError indicates a name or slug collision that survived
	// uniqueness resolution.
	DuplicateError struct {
		Message string
	}

	// NotFoundError indicates a missing entity, or one that does not
	// belong to the claimed parent.
	NotFoundError struct {
		Message string
	}

	// NotEmptyError blocks deletion of a container that still has
	// children. Counts are baked into the message.
	NotEmptyError struct {
		Message string
	}

	// PathTraversalError indicates a derived filesystem path escaped
	// its root. Treated as a security fault, never retried.
	PathTraversalError struct {
		Path string
	}
)

func (e *ValidationError) Error() string { return e.Message }
func (e *DuplicateError) Error() string  { return e.Message }
func (e *NotFoundError) Error() string   { return e.Message }
func (e *NotEmptyError) Error() string   { return e.Message }

func (e *PathTraversalError) Error() string {
	return "unsafe path: " + e.Path
}

func (e *ValidationError) Is(target error) bool    { return target == ErrValidation }
func (e *DuplicateError) Is(target error) bool     { return target == ErrDuplicate }
func (e *NotFoundError) Is(target error) bool      { return target == ErrNotFound }
func (e *NotEmptyError) Is(target error) bool      { return target == ErrNotEmpty }
func (e *PathTraversalError) Is(target error) bool { return target == ErrPathTraversal }

// PersistenceError wraps an unexpected storage failure, such as a file
// write failing after the DB row was already committed. The wrapped
// error is preserved for logging; no automatic rollback is attempted.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	if e.Err == nil {
		return e.Op + " failed"
	}
	return e.Op + ": " + e.Err.Error()
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func (e *PersistenceError) Is(target error) bool { return target == ErrPersistence }
