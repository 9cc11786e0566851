package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	pullweights "github.com/pullweights/mcp"
)

// Toolbox holds the registry client and transfer engine behind the tool
// handlers. The MCP server and the CLI subcommands call the same methods,
// so a tool renders identically however it is invoked. Handlers keep no
// per-call state and are safe for concurrent use.
type Toolbox struct {
	client   *pullweights.Client
	transfer *pullweights.Transfer
	log      *slog.Logger
}

// Option configures a Toolbox.
type Option func(*Toolbox)

// WithLogger sets the logger for tool invocation logging. Defaults to a
// no-op logger.
func WithLogger(logger *slog.Logger) Option {
	return func(tb *Toolbox) {
		if logger != nil {
			tb.log = logger
		}
	}
}

// WithTransfer replaces the default transfer engine, for callers that need
// progress reporting wired in.
func WithTransfer(transfer *pullweights.Transfer) Option {
	return func(tb *Toolbox) {
		tb.transfer = transfer
	}
}

// New builds a Toolbox around client.
func New(client *pullweights.Client, opts ...Option) *Toolbox {
	tb := &Toolbox{
		client: client,
		log:    pullweights.NopLogger(),
	}
	for _, opt := range opts {
		opt(tb)
	}
	if tb.transfer == nil {
		tb.transfer = pullweights.NewTransfer(client)
	}

	return tb
}

// ===== Arguments =====

// SearchArgs are the arguments of the search tool. Type is reachable from
// the CLI only; the tool schema does not expose it.
type SearchArgs struct {
	Query     string `json:"query"`
	Type      string `json:"type"`
	Framework string `json:"framework"`
	Sort      string `json:"sort"`
	PerPage   int    `json:"per_page"`
	Page      int    `json:"page"`
}

// LsArgs are the arguments of the ls tool.
type LsArgs struct {
	Org string `json:"org"`
}

// InspectArgs are the arguments of the inspect tool.
type InspectArgs struct {
	Model string `json:"model"`
}

// TagsArgs are the arguments of the tags tool.
type TagsArgs struct {
	Model string `json:"model"`
}

// PullArgs are the arguments of the pull tool.
type PullArgs struct {
	Model     string `json:"model"`
	OutputDir string `json:"output_dir"`
}

// PushArgs are the arguments of the push tool.
type PushArgs struct {
	Model       string   `json:"model"`
	Files       []string `json:"files"`
	Description string   `json:"description"`
	Visibility  string   `json:"visibility"`
}

// UpdateArgs are the arguments of the update tool. Nil fields are left
// untouched.
type UpdateArgs struct {
	Model       string  `json:"model"`
	Description *string `json:"description"`
	Visibility  *string `json:"visibility"`
}

// ===== Handlers =====

// Search queries the registry and renders one line per result plus a
// pagination footer.
func (tb *Toolbox) Search(ctx context.Context, args SearchArgs) (string, error) {
	page, err := tb.client.Search(ctx, pullweights.SearchQuery{
		Query:     args.Query,
		Type:      args.Type,
		Framework: args.Framework,
		Sort:      args.Sort,
		PerPage:   args.PerPage,
		Page:      args.Page,
	})
	if err != nil {
		return "", err
	}
	if len(page.Results) == 0 {
		return "No models found.", nil
	}

	lines := make([]string, 0, len(page.Results)+1)
	for _, r := range page.Results {
		lines = append(lines, fmt.Sprintf("%s/%s — %s (%s downloads, %s)",
			r.Org, r.Name,
			orDefault(r.Description, "No description"),
			formatCount(r.DownloadCount),
			orDefault(r.Framework, "unknown")))
	}
	pages := 1
	if page.PerPage > 0 {
		pages = (page.Total + page.PerPage - 1) / page.PerPage
	}
	lines = append(lines, fmt.Sprintf("\nPage %d/%d (%d total)", page.Page, pages, page.Total))

	return strings.Join(lines, "\n"), nil
}

// Ls lists the models of an org, or the caller's orgs when none is given.
func (tb *Toolbox) Ls(ctx context.Context, args LsArgs) (string, error) {
	if args.Org != "" {
		models, err := tb.client.ListModels(ctx, args.Org)
		if err != nil {
			return "", err
		}
		if len(models) == 0 {
			return fmt.Sprintf("No models found in %s.", args.Org), nil
		}

		lines := make([]string, 0, len(models))
		for _, m := range models {
			tag := "latest"
			if len(m.Tags) > 0 {
				tag = m.Tags[0]
			}
			lines = append(lines, fmt.Sprintf("%s/%s:%s — %s [%s]",
				m.Org, m.Name, tag,
				orDefault(m.Description, "No description"),
				orDefault(m.Visibility, "public")))
		}

		return strings.Join(lines, "\n"), nil
	}

	orgs, err := tb.client.ListOrgs(ctx)
	if err != nil {
		return "", err
	}
	if len(orgs) == 0 {
		return "No organizations found.", nil
	}

	lines := make([]string, 0, len(orgs))
	for _, o := range orgs {
		personal := ""
		if o.IsPersonal {
			personal = " (personal)"
		}
		lines = append(lines, fmt.Sprintf("%s%s — %d models, %d members [%s]",
			o.Name, personal, o.ModelCount, o.MemberCount, orDefault(o.Role, "member")))
	}

	return strings.Join(lines, "\n"), nil
}

// Inspect renders a model version's manifest: header fields, the file list
// with truncated digests, and any extra metadata as indented JSON.
func (tb *Toolbox) Inspect(ctx context.Context, args InspectArgs) (string, error) {
	ref, err := pullweights.ParseModelRef(args.Model)
	if err != nil {
		return "", err
	}
	manifest, err := tb.client.GetManifest(ctx, ref.Org, ref.Name, ref.Tag)
	if err != nil {
		return "", err
	}

	schema := manifest.SchemaVersion
	if schema == 0 {
		schema = 1
	}
	lines := []string{
		fmt.Sprintf("%s/%s:%s", manifest.Org, manifest.Name, manifest.Tag),
		fmt.Sprintf("Schema: v%d", schema),
	}
	if manifest.Description != "" {
		lines = append(lines, "Description: "+manifest.Description)
	}
	if manifest.Framework != "" {
		lines = append(lines, "Framework: "+manifest.Framework)
	}
	if manifest.Architecture != "" {
		lines = append(lines, "Architecture: "+manifest.Architecture)
	}
	if manifest.License != "" {
		lines = append(lines, "License: "+manifest.License)
	}
	lines = append(lines, "Created: "+orDefault(manifest.CreatedAt, "unknown"))

	lines = append(lines, fmt.Sprintf("\nFiles (%d):", len(manifest.Files)))
	var total int64
	for _, f := range manifest.Files {
		total += f.SizeBytes
		lines = append(lines, fmt.Sprintf("  %s — %s (sha256:%s…)",
			f.Filename, formatBytes(f.SizeBytes), digestPrefix(f.SHA256)))
	}
	lines = append(lines, "\nTotal size: "+formatBytes(total))

	if len(manifest.Metadata) > 0 {
		meta, err := json.MarshalIndent(manifest.Metadata, "", "  ")
		if err != nil {
			return "", fmt.Errorf("encoding metadata: %w", err)
		}
		lines = append(lines, "\nMetadata: "+string(meta))
	}

	return strings.Join(lines, "\n"), nil
}

// Tags lists the published tags of a model, newest first as the registry
// returns them. A tag on the reference is accepted and ignored.
func (tb *Toolbox) Tags(ctx context.Context, args TagsArgs) (string, error) {
	ref, err := pullweights.ParseModelRef(args.Model)
	if err != nil {
		return "", err
	}
	tags, err := tb.client.ListTags(ctx, ref.Org, ref.Name)
	if err != nil {
		return "", err
	}
	if len(tags) == 0 {
		return fmt.Sprintf("No tags found for %s.", ref.Path()), nil
	}

	lines := make([]string, 0, len(tags))
	for _, tag := range tags {
		lines = append(lines, fmt.Sprintf("%s — %s (digest:%s…) pushed %s",
			tag.Tag, formatBytes(tag.TotalSizeBytes),
			digestPrefix(tag.SHA256Digest),
			orDefault(tag.CreatedAt, "unknown")))
	}

	return strings.Join(lines, "\n"), nil
}

// Pull downloads a model version to disk and renders the verified files.
func (tb *Toolbox) Pull(ctx context.Context, args PullArgs) (string, error) {
	ref, err := pullweights.ParseModelRef(args.Model)
	if err != nil {
		return "", err
	}
	report, err := tb.transfer.Pull(ctx, ref, args.OutputDir)
	if err != nil {
		return "", err
	}

	lines := []string{
		fmt.Sprintf("Downloaded %s to %s", report.Ref.String(), report.Dir),
		"Digest: " + report.Digest,
		"Total: " + formatBytes(report.TotalSizeBytes),
		"",
	}
	for _, f := range report.Files {
		lines = append(lines, fmt.Sprintf("%s — %s ✓", f.Filename, formatBytes(f.SizeBytes)))
	}

	return strings.Join(lines, "\n"), nil
}

// Push uploads local files as a new tagged version and renders the commit.
// The reference must carry an explicit tag.
func (tb *Toolbox) Push(ctx context.Context, args PushArgs) (string, error) {
	ref, err := pullweights.ParsePushRef(args.Model)
	if err != nil {
		return "", err
	}
	result, err := tb.transfer.Push(ctx, ref, args.Files, pullweights.PushMeta{
		Description: args.Description,
		Visibility:  args.Visibility,
	})
	if err != nil {
		return "", err
	}

	lines := []string{
		"Pushed " + ref.String(),
		"Version: " + result.VersionID,
		"Digest: " + result.SHA256Digest,
		"Total: " + formatBytes(result.TotalSizeBytes),
		"",
	}
	for _, f := range result.Files {
		lines = append(lines, fmt.Sprintf("  %s — %s (sha256:%s…)",
			f.Filename, formatBytes(f.SizeBytes), digestPrefix(f.SHA256)))
	}

	return strings.Join(lines, "\n"), nil
}

// Update changes a model's description or visibility and echoes the fields
// as the registry stored them.
func (tb *Toolbox) Update(ctx context.Context, args UpdateArgs) (string, error) {
	ref, err := pullweights.ParseModelRef(args.Model)
	if err != nil {
		return "", err
	}
	model, err := tb.client.UpdateModel(ctx, ref.Org, ref.Name, pullweights.ModelUpdate{
		Description: args.Description,
		Visibility:  args.Visibility,
	})
	if err != nil {
		return "", err
	}

	lines := []string{"Updated " + ref.Path()}
	if args.Description != nil {
		lines = append(lines, "Description: "+model.Description)
	}
	if args.Visibility != nil {
		lines = append(lines, "Visibility: "+model.Visibility)
	}

	return strings.Join(lines, "\n"), nil
}
