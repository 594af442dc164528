package timeline

import (
	"errors"
	"fmt"
)

var ErrProfileNotFound = errors.New("profile not found")

type DenyReason int

const (
	DenyLoginRequired DenyReason = iota + 1
	DenyWallRestricted
)

func (r DenyReason) String() string {
	switch r {
	case DenyLoginRequired:
		return "login_required"
	case DenyWallRestricted:
		return "wall_restricted"
	default:
		return "unknown"
	}
}

// AccessDeniedError is returned instead of a page when the viewer may not
// see the wall. LoginRequired asks the caller for a login form,
// WallRestricted for a restriction notice.
type AccessDeniedError struct {
	Reason DenyReason
}

func (e *AccessDeniedError) Error() string {
	return "access denied: " + e.Reason.String()
}

// StorageError wraps a failed round-trip to the post store. Op names the
// step that failed.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// DenyReasonOf extracts the reason from an access denial, or 0.
func DenyReasonOf(err error) DenyReason {
	var denied *AccessDeniedError
	if errors.As(err, &denied) {
		return denied.Reason
	}
	return 0
}
