package pipeline

import "fmt"

// AuthorizationError means the caller's bearer token could not be
// resolved to an identity.
type AuthorizationError struct {
	Err error
}

func (e *AuthorizationError) Error() string { return fmt.Sprintf("authorization: %v", e.Err) }
func (e *AuthorizationError) Unwrap() error { return e.Err }

// NotFoundError means the document does not exist or has no recorded
// storage path.
type NotFoundError struct {
	DocumentID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("document %d has no uploaded file", e.DocumentID)
}

// DownloadError means the stored blob was missing or unreadable.
type DownloadError struct {
	Path string
	Err  error
}

func (e *DownloadError) Error() string { return fmt.Sprintf("download %s: %v", e.Path, e.Err) }
func (e *DownloadError) Unwrap() error { return e.Err }

// PersistenceError means the section batch insert failed after the
// metadata update had already been committed.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string { return fmt.Sprintf("persist sections: %v", e.Err) }
func (e *PersistenceError) Unwrap() error { return e.Err }

// ProcessError wraps an extraction failure with the diagnostic
// context the wire contract reports. FileType is the raw lowercased
// filename extension ("xlsx", "md"), not the normalized file type the
// document row records.
type ProcessError struct {
	DocumentID int64
	FileType   string
	Err        error
}

func (e *ProcessError) Error() string {
	return fmt.Sprintf("process document %d (%s): %v", e.DocumentID, e.FileType, e.Err)
}

func (e *ProcessError) Unwrap() error { return e.Err }
