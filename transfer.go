package pullweights

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// DefaultPullRoot is the working-directory prefix used when a pull names no
// destination: files land in <root>/<org>/<name>/<tag>.
const DefaultPullRoot = "pullweights_models"

// DefaultPullDir returns the destination a pull of ref uses when none is
// given.
func DefaultPullDir(ref ModelRef) string {
	return filepath.Join(DefaultPullRoot, ref.Org, ref.Name, ref.Tag)
}

// TransferEvent reports one completed file transfer to a progress callback.
type TransferEvent struct {
	Op        string // "download" or "upload"
	Filename  string
	SizeBytes int64
}

// PullReport summarizes a completed pull.
type PullReport struct {
	Ref            ModelRef
	Dir            string
	VersionID      string
	Digest         string
	TotalSizeBytes int64
	Files          []FileDescriptor
}

// PushMeta carries the optional metadata sent with push init.
type PushMeta struct {
	Description string
	Visibility  string
}

// Transfer orchestrates multi-file pulls and pushes over a Client. File
// transfers run strictly sequentially, so peak memory stays near one file's
// content during a pull and a failure always names the file that caused it.
// Nothing is retried: the first failure aborts the remaining steps.
type Transfer struct {
	client   *Client
	log      *slog.Logger
	progress func(TransferEvent)
}

// NewTransfer builds a Transfer over the given client.
func NewTransfer(client *Client, opts ...TransferOption) *Transfer {
	t := &Transfer{
		client: client,
		log:    NopLogger(),
	}
	for _, opt := range opts {
		opt(t)
	}

	return t
}

// Pull downloads one model version into destDir, verifying each file's
// SHA-256 against the plan before writing it. An empty destDir resolves to
// DefaultPullDir(ref). A digest mismatch aborts the pull with an
// *IntegrityError; files already verified and written stay on disk, and no
// later file is fetched. Existing files at the destination are overwritten.
func (t *Transfer) Pull(ctx context.Context, ref ModelRef, destDir string) (*PullReport, error) {
	plan, err := t.client.GetPullPlan(ctx, ref.Org, ref.Name, ref.Tag)
	if err != nil {
		return nil, err
	}

	if destDir == "" {
		destDir = DefaultPullDir(ref)
	}
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", destDir, err)
	}

	t.log.Debug("pull started", "ref", ref.String(), "dir", destDir, "files", len(plan.Files))

	report := &PullReport{
		Ref:       ref,
		Dir:       destDir,
		VersionID: plan.VersionID,
		Digest:    plan.SHA256Digest,
	}
	for _, f := range plan.Files {
		if !safeFilename(f.Filename) {
			return nil, &ProtocolError{Message: fmt.Sprintf("pull plan names unsafe filename %q", f.Filename)}
		}

		data, err := t.client.DownloadBlob(ctx, f.DownloadURL)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.Filename, err)
		}
		if got := DigestBytes(data); got != f.SHA256 {
			return nil, &IntegrityError{Filename: f.Filename, Expected: f.SHA256, Actual: got}
		}

		path := filepath.Join(destDir, f.Filename)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return nil, fmt.Errorf("writing %s: %w", path, err)
		}

		t.log.Debug("file verified", "file", f.Filename, "size", f.SizeBytes)
		t.emit(TransferEvent{Op: "download", Filename: f.Filename, SizeBytes: f.SizeBytes})
		report.Files = append(report.Files, f.FileDescriptor)
		report.TotalSizeBytes += f.SizeBytes
	}

	return report, nil
}

// Push uploads local files as a new tagged version of ref. Callers obtain
// ref through ParsePushRef, which enforces the explicit tag. Every file is
// read and hashed before the first network call; the three phases (init,
// upload, finalize) then run in order. Any failure abandons the push
// without finalizing, leaving the session uncommitted server-side.
func (t *Transfer) Push(ctx context.Context, ref ModelRef, paths []string, meta PushMeta) (*PushResult, error) {
	if len(paths) == 0 {
		return nil, ErrNoFiles
	}

	files, err := readLocalFiles(paths)
	if err != nil {
		return nil, err
	}

	descriptors := make([]FileDescriptor, len(files))
	byName := make(map[string][]byte, len(files))
	for i, f := range files {
		if _, dup := byName[f.desc.Filename]; dup {
			return nil, fmt.Errorf("duplicate filename %q: push files need distinct base names", f.desc.Filename)
		}
		descriptors[i] = f.desc
		byName[f.desc.Filename] = f.data
	}

	t.log.Debug("push started", "ref", ref.String(), "files", len(files))

	session, err := t.client.InitPush(ctx, ref.Org, ref.Name, PushRequest{
		Tag:         ref.Tag,
		Description: meta.Description,
		Visibility:  meta.Visibility,
		Files:       descriptors,
	})
	if err != nil {
		return nil, err
	}

	// Every offered file needs a target before anything is uploaded.
	targets := make(map[string]bool, len(session.Uploads))
	for _, u := range session.Uploads {
		targets[u.Filename] = true
	}
	for _, d := range descriptors {
		if !targets[d.Filename] {
			return nil, &MissingUploadTargetError{Filename: d.Filename}
		}
	}

	for _, u := range session.Uploads {
		data, ok := byName[u.Filename]
		if !ok {
			return nil, &ProtocolError{Message: fmt.Sprintf("upload target for unknown file %q", u.Filename)}
		}
		if err := t.client.UploadBlob(ctx, u.UploadURL, data); err != nil {
			return nil, fmt.Errorf("%s: %w", u.Filename, err)
		}
		t.emit(TransferEvent{Op: "upload", Filename: u.Filename, SizeBytes: int64(len(data))})
	}

	result, err := t.client.FinalizePush(ctx, ref.Org, ref.Name, session.PushID, ref.Tag)
	if err != nil {
		return nil, err
	}

	// The finalize response is authoritative; fall back to the descriptors
	// as hashed and sent only when the server omits the echo.
	if len(result.Files) == 0 {
		result.Files = descriptors
	}
	if result.TotalSizeBytes == 0 {
		for _, d := range descriptors {
			result.TotalSizeBytes += d.SizeBytes
		}
	}

	t.log.Debug("push finalized", "ref", ref.String(), "version", result.VersionID)

	return result, nil
}

// safeFilename reports whether a registry-supplied filename stays inside
// the destination directory: a single path element, not "." or "..".
func safeFilename(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}

	return !strings.ContainsAny(name, `/\`)
}

func (t *Transfer) emit(ev TransferEvent) {
	if t.progress != nil {
		t.progress(ev)
	}
}

// localFile pairs a descriptor with the bytes it describes. The bytes are
// held until upload so the uploaded content cannot drift from the digest
// sent at init.
type localFile struct {
	desc FileDescriptor
	data []byte
}

func readLocalFiles(paths []string) ([]localFile, error) {
	files := make([]localFile, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", p, err)
		}
		files = append(files, localFile{
			desc: FileDescriptor{
				Filename:  filepath.Base(p),
				SizeBytes: int64(len(data)),
				SHA256:    DigestBytes(data),
			},
			data: data,
		})
	}

	return files, nil
}
