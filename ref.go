package pullweights

import (
	"fmt"
	"strings"
)

// ModelRef identifies a model version in the registry.
//
// The string form is org/name or org/name:tag; an omitted tag resolves to
// "latest". Org and name never contain a slash; the tag is split off at the
// first colon and is otherwise unconstrained.
type ModelRef struct {
	Org  string
	Name string
	Tag  string
}

// ParseModelRef parses a model reference string, defaulting the tag to
// "latest" when it is omitted or empty. A malformed reference yields an
// *InvalidRefError.
func ParseModelRef(ref string) (ModelRef, error) {
	path, tag, _ := strings.Cut(ref, ":")
	org, name, ok := strings.Cut(path, "/")
	if !ok || org == "" || name == "" || strings.Contains(name, "/") {
		return ModelRef{}, &InvalidRefError{Ref: ref}
	}
	if tag == "" {
		tag = "latest"
	}

	return ModelRef{Org: org, Name: name, Tag: tag}, nil
}

// ParsePushRef parses a model reference for a push. The tag must be spelled
// out: a bare org/name would silently resolve to "latest", so it is rejected
// with ErrTagRequired to force deliberate versioning. An explicit
// org/name:latest is allowed.
func ParsePushRef(ref string) (ModelRef, error) {
	if !strings.Contains(ref, ":") {
		return ModelRef{}, ErrTagRequired
	}

	return ParseModelRef(ref)
}

// Path returns the org/name form without the tag.
func (r ModelRef) Path() string {
	return r.Org + "/" + r.Name
}

// String returns the canonical org/name:tag form.
func (r ModelRef) String() string {
	return fmt.Sprintf("%s/%s:%s", r.Org, r.Name, r.Tag)
}
