package entry

import (
	"errors"
	"fmt"
)

var (
	// ErrStaleAddress is matched by every *StaleAddressError.
	ErrStaleAddress = errors.New("entry no longer exists")

	// ErrUnknownKind indicates a collection name with no registered kind.
	ErrUnknownKind = errors.New("unknown entry kind")
)

// StaleAddressError reports an update or delete whose ref matches nothing in
// the last fetched collection.
type StaleAddressError struct {
	Kind string
	Ref  EntryRef
}

func (e *StaleAddressError) Error() string {
	return fmt.Sprintf("%s: no entry matches %q", e.Kind, e.Ref.Raw())
}

func (e *StaleAddressError) Unwrap() error {
	return ErrStaleAddress
}
