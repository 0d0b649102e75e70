package types

import "github.com/m-mizutani/goerr/v2"

// RecordID represents a unique identifier for a risk record. Uniqueness
// across a collection is a structural invariant enforced by the repository.
type RecordID string

// Validate checks if the RecordID is valid
func (r RecordID) Validate() error {
	if r == "" {
		return goerr.New("record ID cannot be empty")
	}
	return nil
}

// String returns the string representation of RecordID
func (r RecordID) String() string {
	return string(r)
}
