package tools

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	pullweights "github.com/pullweights/mcp"
)

// newTestToolbox builds a Toolbox against a registry double, returning a
// request counter for fail-fast assertions.
func newTestToolbox(t *testing.T, apiKey string, handler http.HandlerFunc) (*Toolbox, *int) {
	t.Helper()

	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	client := pullweights.NewClient(pullweights.Config{BaseURL: srv.URL, APIKey: apiKey})

	return New(client), &requests
}

// TestSearch_Rendering tests the per-result lines and pagination footer.
func TestSearch_Rendering(t *testing.T) {
	tb, _ := newTestToolbox(t, "", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(pullweights.SearchPage{
			Results: []pullweights.SearchResult{
				{Org: "acme", Name: "resnet", Description: "image classifier", Framework: "pytorch", DownloadCount: 5_600_000},
				{Org: "beta", Name: "tiny-llm", DownloadCount: 42},
			},
			Total: 41, Page: 2, PerPage: 20,
		})
	})

	out, err := tb.Search(context.Background(), SearchArgs{Query: "net"})
	require.NoError(t, err)

	require.Contains(t, out, "acme/resnet — image classifier (5.6M downloads, pytorch)")
	require.Contains(t, out, "beta/tiny-llm — No description (42 downloads, unknown)")
	require.Contains(t, out, "Page 2/3 (41 total)")
}

// TestSearch_Empty tests the no-results message.
func TestSearch_Empty(t *testing.T) {
	tb, _ := newTestToolbox(t, "", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(pullweights.SearchPage{Page: 1, PerPage: 20})
	})

	out, err := tb.Search(context.Background(), SearchArgs{Query: "nothing"})
	require.NoError(t, err)
	require.Equal(t, "No models found.", out)
}

// TestLs_Models tests org listing: first tag shown, defaults filled in.
func TestLs_Models(t *testing.T) {
	tb, _ := newTestToolbox(t, "", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/models/acme", r.URL.Path)
		_ = json.NewEncoder(w).Encode([]pullweights.ModelSummary{
			{Org: "acme", Name: "resnet", Description: "image classifier", Visibility: "public", Tags: []string{"v2", "v1"}},
			{Org: "acme", Name: "hidden", Visibility: "private"},
		})
	})

	out, err := tb.Ls(context.Background(), LsArgs{Org: "acme"})
	require.NoError(t, err)

	require.Contains(t, out, "acme/resnet:v2 — image classifier [public]")
	require.Contains(t, out, "acme/hidden:latest — No description [private]")
}

// TestLs_OrgsRequireAuth tests that listing orgs without a credential fails
// before any request, while an org listing does not need one.
func TestLs_OrgsRequireAuth(t *testing.T) {
	tb, requests := newTestToolbox(t, "", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode([]pullweights.ModelSummary{})
	})

	_, err := tb.Ls(context.Background(), LsArgs{})
	require.ErrorIs(t, err, pullweights.ErrAuthRequired)
	require.Zero(t, *requests)

	out, err := tb.Ls(context.Background(), LsArgs{Org: "acme"})
	require.NoError(t, err)
	require.Equal(t, "No models found in acme.", out)
	require.Equal(t, 1, *requests)
}

// TestLs_Orgs tests the org rendering for an authenticated caller.
func TestLs_Orgs(t *testing.T) {
	tb, _ := newTestToolbox(t, "pw_secret", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode([]pullweights.OrgSummary{
			{Name: "jdoe", IsPersonal: true, ModelCount: 2, MemberCount: 1, Role: "owner"},
			{Name: "acme", ModelCount: 14, MemberCount: 9},
		})
	})

	out, err := tb.Ls(context.Background(), LsArgs{})
	require.NoError(t, err)

	require.Contains(t, out, "jdoe (personal) — 2 models, 1 members [owner]")
	require.Contains(t, out, "acme — 14 models, 9 members [member]")
}

// TestInspect_Rendering tests the manifest report: header, file lines with
// truncated digests, total, and indented metadata.
func TestInspect_Rendering(t *testing.T) {
	digest := pullweights.DigestBytes([]byte("weights"))
	tb, _ := newTestToolbox(t, "", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/models/acme/resnet/manifests/v2", r.URL.Path)
		_ = json.NewEncoder(w).Encode(pullweights.Manifest{
			Org: "acme", Name: "resnet", Tag: "v2", SchemaVersion: 1,
			Framework: "pytorch", License: "apache-2.0", CreatedAt: "2026-08-01T12:00:00Z",
			Files: []pullweights.FileDescriptor{
				{Filename: "model.bin", SizeBytes: 5 << 20, SHA256: digest},
			},
			Metadata: map[string]any{"parameters": "25M"},
		})
	})

	out, err := tb.Inspect(context.Background(), InspectArgs{Model: "acme/resnet:v2"})
	require.NoError(t, err)

	require.Contains(t, out, "acme/resnet:v2")
	require.Contains(t, out, "Schema: v1")
	require.Contains(t, out, "Framework: pytorch")
	require.Contains(t, out, "License: apache-2.0")
	require.NotContains(t, out, "Architecture:", "unset optional fields stay out of the report")
	require.Contains(t, out, "Files (1):")
	require.Contains(t, out, "  model.bin — 5.0 MB (sha256:"+digest[:12]+"…)")
	require.Contains(t, out, "Total size: 5.0 MB")
	require.Contains(t, out, `"parameters": "25M"`)
}

// TestTags_Rendering tests tag lines and that a tag suffix on the
// reference is ignored when resolving the model.
func TestTags_Rendering(t *testing.T) {
	tb, _ := newTestToolbox(t, "", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/models/acme/resnet/tags", r.URL.Path)
		_ = json.NewEncoder(w).Encode([]pullweights.TagInfo{
			{Tag: "v2", SHA256Digest: "abcdef0123456789", TotalSizeBytes: 1536, CreatedAt: "2026-08-01"},
		})
	})

	out, err := tb.Tags(context.Background(), TagsArgs{Model: "acme/resnet:v1"})
	require.NoError(t, err)
	require.Contains(t, out, "v2 — 1.5 KB (digest:abcdef012345…) pushed 2026-08-01")
}

// TestTags_Empty tests the no-tags message.
func TestTags_Empty(t *testing.T) {
	tb, _ := newTestToolbox(t, "", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode([]pullweights.TagInfo{})
	})

	out, err := tb.Tags(context.Background(), TagsArgs{Model: "acme/resnet"})
	require.NoError(t, err)
	require.Equal(t, "No tags found for acme/resnet.", out)
}

// TestPush_TagRequiredBeforeNetwork tests that a push reference without an
// explicit tag is rejected with zero round trips.
func TestPush_TagRequiredBeforeNetwork(t *testing.T) {
	tb, requests := newTestToolbox(t, "pw_secret", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	_, err := tb.Push(context.Background(), PushArgs{Model: "acme/resnet", Files: []string{"model.bin"}})
	require.ErrorIs(t, err, pullweights.ErrTagRequired)
	require.Zero(t, *requests)
}

// TestUpdate_Rendering tests that only the changed fields are echoed.
func TestUpdate_Rendering(t *testing.T) {
	tb, _ := newTestToolbox(t, "pw_secret", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		_ = json.NewEncoder(w).Encode(pullweights.ModelSummary{
			Org: "acme", Name: "resnet", Description: "kept", Visibility: "private",
		})
	})

	vis := "private"
	out, err := tb.Update(context.Background(), UpdateArgs{Model: "acme/resnet", Visibility: &vis})
	require.NoError(t, err)

	require.Contains(t, out, "Updated acme/resnet")
	require.Contains(t, out, "Visibility: private")
	require.NotContains(t, out, "Description:", "unchanged fields stay out of the report")
}

// TestInspect_BadReference tests that a malformed reference fails without a
// request.
func TestInspect_BadReference(t *testing.T) {
	tb, requests := newTestToolbox(t, "", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	_, err := tb.Inspect(context.Background(), InspectArgs{Model: "not-a-ref"})

	var refErr *pullweights.InvalidRefError
	require.ErrorAs(t, err, &refErr)
	require.Zero(t, *requests)
}
