package nutrition

import (
	"errors"
	"fmt"
)

// Kind enumerates the ways a pipeline stage can fail.
type Kind int

const (
	KindUnknown Kind = iota
	KindInputInvalid
	KindAuthentication
	KindNetwork
	KindTimeout
	KindService
	KindNoMatch
	KindArtifactWrite
	KindArtifactRelocate
	KindAttachment
	KindDeliveryAuth
	KindDelivery
)

var kindNames = map[Kind]string{
	KindUnknown:          "unknown",
	KindInputInvalid:     "input_invalid",
	KindAuthentication:   "authentication",
	KindNetwork:          "network",
	KindTimeout:          "timeout",
	KindService:          "service",
	KindNoMatch:          "no_match",
	KindArtifactWrite:    "artifact_write",
	KindArtifactRelocate: "artifact_relocate",
	KindAttachment:       "attachment",
	KindDeliveryAuth:     "delivery_auth",
	KindDelivery:         "delivery",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Failure is the error returned by every pipeline stage.
// Status is the HTTP status code for service failures, zero otherwise.
type Failure struct {
	Kind   Kind
	Status int
	Err    error
}

// NewFailure wraps err with the given kind.
func NewFailure(kind Kind, err error) *Failure {
	return &Failure{Kind: kind, Err: err}
}

func (f *Failure) Error() string {
	if f.Status != 0 {
		return fmt.Sprintf("%s failure (status %d): %v", f.Kind, f.Status, f.Err)
	}
	return fmt.Sprintf("%s failure: %v", f.Kind, f.Err)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// KindOf returns the failure kind carried by err, or KindUnknown.
func KindOf(err error) Kind {
	var f *Failure
	if errors.As(err, &f) {
		return f.Kind
	}
	return KindUnknown
}
