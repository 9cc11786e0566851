package pullweights

import (
	"errors"
	"fmt"
)

// Sentinel errors for locally detected preconditions.
var (
	// ErrAuthRequired indicates an operation that needs a credential was
	// attempted without one. Checked before any network use.
	ErrAuthRequired = errors.New(
		"authentication required: set the PULLWEIGHTS_API_KEY environment variable " +
			"(get an API key at https://pullweights.com/dashboard/api-keys)")

	// ErrTagRequired indicates a push reference without an explicit tag.
	ErrTagRequired = errors.New("push requires an explicit tag: use org/model:tag format")

	// ErrNoFiles indicates a push with an empty file list.
	ErrNoFiles = errors.New("push requires at least one file")

	// ErrEmptyUpdate indicates a model update with no fields to change.
	ErrEmptyUpdate = errors.New("update requires at least one field to change")
)

// Compile-time verification that all error types satisfy error.
var (
	_ error = (*InvalidRefError)(nil)
	_ error = (*RequestError)(nil)
	_ error = (*TransferError)(nil)
	_ error = (*IntegrityError)(nil)
	_ error = (*MissingUploadTargetError)(nil)
	_ error = (*ProtocolError)(nil)
)

// InvalidRefError indicates a model reference that does not match the
// org/model[:tag] grammar.
type InvalidRefError struct {
	Ref string
}

func (e *InvalidRefError) Error() string {
	return fmt.Sprintf("invalid model reference %q: expected format org/model or org/model:tag", e.Ref)
}

// RequestError indicates a non-2xx response from the registry API. Message
// carries the error text from the response body when one was present, else
// the HTTP status text.
type RequestError struct {
	Status  int
	Message string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

// TransferError indicates a failed blob transfer against a pre-signed
// storage URL. Op is "download" or "upload".
type TransferError struct {
	Op      string
	Status  int
	Message string
}

func (e *TransferError) Error() string {
	return fmt.Sprintf("%s failed: %d %s", e.Op, e.Status, e.Message)
}

// IntegrityError indicates a downloaded file whose computed digest differs
// from the digest declared in the pull plan. The file is not written.
type IntegrityError struct {
	Filename string
	Expected string
	Actual   string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("checksum mismatch for %s: expected %s, got %s",
		e.Filename, e.Expected, e.Actual)
}

// MissingUploadTargetError indicates a push session that carries no upload
// target for a file the push requested.
type MissingUploadTargetError struct {
	Filename string
}

func (e *MissingUploadTargetError) Error() string {
	return fmt.Sprintf("push session has no upload target for %s", e.Filename)
}

// ProtocolError indicates a registry response that violates the protocol
// contract, such as a missing required field or an upload target naming a
// file that was never offered.
type ProtocolError struct {
	Message string
}

func (e *ProtocolError) Error() string {
	return "registry protocol violation: " + e.Message
}
