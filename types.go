package pullweights

// Registry wire types. Responses decode into these structs; unknown fields
// the registry may add are ignored, and required fields are validated at the
// decode boundary by the methods that return them.

// ===== Search =====

// SearchQuery narrows a model search. Zero-valued fields are left out of
// the request entirely.
type SearchQuery struct {
	Query     string
	Type      string
	Framework string
	Sort      string // one of: downloads, created, name, updated
	PerPage   int
	Page      int
}

// SearchResult is one row of a search response.
type SearchResult struct {
	Org           string `json:"org"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	Framework     string `json:"framework"`
	DownloadCount int64  `json:"download_count"`
}

// SearchPage is one page of search results plus pagination counters.
type SearchPage struct {
	Results []SearchResult `json:"results"`
	Total   int            `json:"total"`
	Page    int            `json:"page"`
	PerPage int            `json:"per_page"`
}

// ===== Listings =====

// ModelSummary describes a model within an org listing.
type ModelSummary struct {
	Org         string   `json:"org"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Visibility  string   `json:"visibility"`
	Tags        []string `json:"tags"`
}

// OrgSummary describes one organization the caller belongs to.
type OrgSummary struct {
	Name        string `json:"name"`
	IsPersonal  bool   `json:"is_personal"`
	ModelCount  int    `json:"model_count"`
	MemberCount int    `json:"member_count"`
	Role        string `json:"role"`
}

// TagInfo describes one published tag of a model.
type TagInfo struct {
	Tag            string `json:"tag"`
	SHA256Digest   string `json:"sha256_digest"`
	TotalSizeBytes int64  `json:"total_size_bytes"`
	CreatedAt      string `json:"created_at"`
}

// ===== Manifest =====

// FileDescriptor identifies one file's content independent of location.
// SHA256 is the 64-character lowercase hex digest of the exact bytes.
type FileDescriptor struct {
	Filename  string `json:"filename"`
	SizeBytes int64  `json:"size_bytes"`
	SHA256    string `json:"sha256"`
}

// Manifest is the registry's record of a model version: its files,
// checksums, and descriptive metadata.
type Manifest struct {
	Org           string           `json:"org"`
	Name          string           `json:"name"`
	Tag           string           `json:"tag"`
	SchemaVersion int              `json:"schema_version"`
	Description   string           `json:"description"`
	Framework     string           `json:"framework"`
	Architecture  string           `json:"architecture"`
	License       string           `json:"license"`
	CreatedAt     string           `json:"created_at"`
	Files         []FileDescriptor `json:"files"`
	Metadata      map[string]any   `json:"metadata"`
}

// ===== Pull =====

// PullFile is a FileDescriptor plus the pre-signed URL its bytes are
// served from.
type PullFile struct {
	FileDescriptor
	DownloadURL string `json:"download_url"`
}

// PullPlan is the registry's response to a pull request: everything needed
// to download and verify one model version. A plan is consumed by exactly
// one pull and never persisted.
type PullPlan struct {
	Org            string     `json:"org"`
	Model          string     `json:"model"`
	Tag            string     `json:"tag"`
	VersionID      string     `json:"version_id"`
	SHA256Digest   string     `json:"sha256_digest"`
	TotalSizeBytes int64      `json:"total_size_bytes"`
	Files          []PullFile `json:"files"`
}

// ===== Push =====

// PushRequest is the init-phase body: the tag, optional metadata, and the
// descriptors of every file about to be uploaded.
type PushRequest struct {
	Tag         string           `json:"tag"`
	Description string           `json:"description,omitempty"`
	Visibility  string           `json:"visibility,omitempty"`
	Files       []FileDescriptor `json:"files"`
}

// UploadTarget maps one filename to its one-time pre-signed upload URL.
type UploadTarget struct {
	Filename  string `json:"filename"`
	UploadURL string `json:"upload_url"`
}

// PushSession is the registry's response to push init. It is owned by the
// in-flight push and never reused: the upload URLs are one-time and the
// push id is consumed by finalize.
type PushSession struct {
	PushID  string         `json:"push_id"`
	Uploads []UploadTarget `json:"uploads"`
}

// PushResult is the authoritative post-commit record returned by finalize.
type PushResult struct {
	VersionID      string           `json:"version_id"`
	Tag            string           `json:"tag"`
	SHA256Digest   string           `json:"sha256_digest"`
	TotalSizeBytes int64            `json:"total_size_bytes"`
	Files          []FileDescriptor `json:"files"`
}

// ===== Update =====

// ModelUpdate carries the fields of a model to change. Nil fields are left
// untouched; at least one must be set.
type ModelUpdate struct {
	Description *string `json:"description,omitempty"`
	Visibility  *string `json:"visibility,omitempty"`
}

// IsZero reports whether the update changes nothing.
func (u ModelUpdate) IsZero() bool {
	return u.Description == nil && u.Visibility == nil
}
