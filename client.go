package pullweights

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Version is the adapter version, reported in the User-Agent header and as
// the MCP server version.
const Version = "0.1.0"

// DefaultBaseURL is the public PullWeights API endpoint.
const DefaultBaseURL = "https://api.pullweights.com"

// Environment variables read by ConfigFromEnv.
const (
	EnvAPIURL = "PULLWEIGHTS_API_URL"
	EnvAPIKey = "PULLWEIGHTS_API_KEY"
)

// defaultTimeout bounds each HTTP round trip, blob transfers included.
const defaultTimeout = 120 * time.Second

// Config carries the registry endpoint and credential. It is passed
// explicitly at construction; request logic never reads the environment.
type Config struct {
	// BaseURL is the registry API root. Empty means DefaultBaseURL.
	BaseURL string
	// APIKey is the bearer token. Empty is allowed at construction:
	// operations that need a credential fail with ErrAuthRequired before
	// any network use.
	APIKey string
}

// ConfigFromEnv builds a Config from PULLWEIGHTS_API_URL and
// PULLWEIGHTS_API_KEY. Intended for process entrypoints; library callers
// should pass an explicit Config to NewClient.
func ConfigFromEnv() Config {
	return Config{
		BaseURL: os.Getenv(EnvAPIURL),
		APIKey:  os.Getenv(EnvAPIKey),
	}
}

// HTTPClient is the transport surface Client depends on. *http.Client
// satisfies it; tests substitute their own.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is a stateless façade over the registry's REST API. Every method
// is a single HTTP round trip: no retries, no caching. A Client is safe for
// concurrent use as long as its HTTPClient is.
type Client struct {
	baseURL   string
	apiKey    string
	userAgent string
	http      HTTPClient
	log       *slog.Logger
}

// NewClient builds a Client for the given configuration.
func NewClient(cfg Config, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:   strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:    cfg.APIKey,
		userAgent: "pullweights-mcp/" + Version,
		http:      &http.Client{Timeout: defaultTimeout},
		log:       NopLogger(),
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Authenticated reports whether a credential is configured.
func (c *Client) Authenticated() bool {
	return c.apiKey != ""
}

func (c *Client) requireAuth() error {
	if c.apiKey == "" {
		return ErrAuthRequired
	}

	return nil
}

// apiURL joins path segments onto the base URL, escaping each segment.
func (c *Client) apiURL(segments ...string) string {
	var b strings.Builder
	b.WriteString(c.baseURL)
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(s))
	}

	return b.String()
}

// do performs one API round trip: marshal the body, attach headers, map any
// status >= 400 to *RequestError, decode the JSON response into out.
func (c *Client) do(ctx context.Context, method, u string, query url.Values, body, out any) error {
	var rd io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding %s %s body: %w", method, u, err)
		}
		rd = bytes.NewReader(payload)
	}
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, rd)
	if err != nil {
		return fmt.Errorf("building %s %s request: %w", method, u, err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, u, err)
	}
	defer resp.Body.Close()

	c.log.Debug("registry request", "method", method, "url", u, "status", resp.StatusCode)

	if resp.StatusCode >= 400 {
		return &RequestError{Status: resp.StatusCode, Message: errorMessage(resp)}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &ProtocolError{Message: fmt.Sprintf("decoding %s %s response: %v", method, u, err)}
	}

	return nil
}

// errorMessage extracts the registry's error text from a failed response:
// the body's "error" or "message" field when the body is JSON, else the
// HTTP status text.
func errorMessage(resp *http.Response) string {
	data, err := io.ReadAll(resp.Body)
	if err == nil && len(data) > 0 {
		var body struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		if json.Unmarshal(data, &body) == nil {
			if body.Error != "" {
				return body.Error
			}
			if body.Message != "" {
				return body.Message
			}
		}
	}

	return http.StatusText(resp.StatusCode)
}

// ===== Catalog operations =====

// Search queries the model index. No credential required.
func (c *Client) Search(ctx context.Context, q SearchQuery) (*SearchPage, error) {
	params := url.Values{}
	if q.Query != "" {
		params.Set("q", q.Query)
	}
	if q.Type != "" {
		params.Set("type", q.Type)
	}
	if q.Framework != "" {
		params.Set("framework", q.Framework)
	}
	if q.Sort != "" {
		params.Set("sort", q.Sort)
	}
	if q.PerPage > 0 {
		params.Set("per_page", strconv.Itoa(q.PerPage))
	}
	if q.Page > 0 {
		params.Set("page", strconv.Itoa(q.Page))
	}

	var page SearchPage
	if err := c.do(ctx, http.MethodGet, c.apiURL("v1", "search"), params, nil, &page); err != nil {
		return nil, err
	}

	return &page, nil
}

// ListModels lists the models of one org. No credential required; the
// registry applies visibility rules itself.
func (c *Client) ListModels(ctx context.Context, org string) ([]ModelSummary, error) {
	var models []ModelSummary
	if err := c.do(ctx, http.MethodGet, c.apiURL("v1", "models", org), nil, nil, &models); err != nil {
		return nil, err
	}

	return models, nil
}

// ListOrgs lists the organizations the caller belongs to. Requires a
// credential, checked locally so no round trip is wasted.
func (c *Client) ListOrgs(ctx context.Context) ([]OrgSummary, error) {
	if err := c.requireAuth(); err != nil {
		return nil, err
	}

	var orgs []OrgSummary
	if err := c.do(ctx, http.MethodGet, c.apiURL("v1", "orgs"), nil, nil, &orgs); err != nil {
		return nil, err
	}

	return orgs, nil
}

// GetManifest fetches the manifest of one model version. No credential
// required for public models; private ones surface the server's 403/404 as
// a RequestError.
func (c *Client) GetManifest(ctx context.Context, org, model, tag string) (*Manifest, error) {
	var manifest Manifest
	u := c.apiURL("v1", "models", org, model, "manifests", tag)
	if err := c.do(ctx, http.MethodGet, u, nil, nil, &manifest); err != nil {
		return nil, err
	}

	return &manifest, nil
}

// ListTags lists the published tags of one model.
func (c *Client) ListTags(ctx context.Context, org, model string) ([]TagInfo, error) {
	var tags []TagInfo
	if err := c.do(ctx, http.MethodGet, c.apiURL("v1", "models", org, model, "tags"), nil, nil, &tags); err != nil {
		return nil, err
	}

	return tags, nil
}

// UpdateModel changes a model's description or visibility. Requires a
// credential; an update with nothing set fails locally with ErrEmptyUpdate.
func (c *Client) UpdateModel(ctx context.Context, org, model string, update ModelUpdate) (*ModelSummary, error) {
	if err := c.requireAuth(); err != nil {
		return nil, err
	}
	if update.IsZero() {
		return nil, ErrEmptyUpdate
	}

	var out ModelSummary
	if err := c.do(ctx, http.MethodPatch, c.apiURL("v1", "models", org, model), nil, update, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// ===== Transfer operations =====

// GetPullPlan requests the download plan for one model version. Requires a
// credential, checked locally first.
func (c *Client) GetPullPlan(ctx context.Context, org, model, tag string) (*PullPlan, error) {
	if err := c.requireAuth(); err != nil {
		return nil, err
	}

	var plan PullPlan
	u := c.apiURL("v1", "models", org, model, "pull", tag)
	if err := c.do(ctx, http.MethodGet, u, nil, nil, &plan); err != nil {
		return nil, err
	}
	for _, f := range plan.Files {
		if f.Filename == "" || f.DownloadURL == "" || f.SHA256 == "" {
			return nil, &ProtocolError{Message: "pull plan entry missing filename, download_url or sha256"}
		}
	}

	return &plan, nil
}

// InitPush opens a push session: the registry records the offered file
// descriptors and hands back one upload target per file. Requires a
// credential.
func (c *Client) InitPush(ctx context.Context, org, model string, push PushRequest) (*PushSession, error) {
	if err := c.requireAuth(); err != nil {
		return nil, err
	}

	var session PushSession
	u := c.apiURL("v1", "models", org, model, "push", "init")
	if err := c.do(ctx, http.MethodPost, u, nil, push, &session); err != nil {
		return nil, err
	}
	if session.PushID == "" {
		return nil, &ProtocolError{Message: "push session missing push_id"}
	}
	for _, t := range session.Uploads {
		if t.Filename == "" || t.UploadURL == "" {
			return nil, &ProtocolError{Message: "upload target missing filename or upload_url"}
		}
	}

	return &session, nil
}

// FinalizePush commits a push session and returns the authoritative record
// of the new version. Requires a credential.
func (c *Client) FinalizePush(ctx context.Context, org, model, pushID, tag string) (*PushResult, error) {
	if err := c.requireAuth(); err != nil {
		return nil, err
	}

	body := struct {
		PushID string `json:"push_id"`
		Tag    string `json:"tag"`
	}{PushID: pushID, Tag: tag}

	var result PushResult
	u := c.apiURL("v1", "models", org, model, "push", "finalize")
	if err := c.do(ctx, http.MethodPost, u, nil, body, &result); err != nil {
		return nil, err
	}
	if result.VersionID == "" {
		return nil, &ProtocolError{Message: "push result missing version_id"}
	}

	return &result, nil
}

// DownloadBlob fetches raw bytes from a pre-signed URL. The URL is
// self-authenticating: no Authorization header is attached and the base URL
// is not involved. Redirects are followed by the underlying transport.
func (c *Client) DownloadBlob(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building download request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download: %w", err)
	}
	defer resp.Body.Close()

	c.log.Debug("blob download", "status", resp.StatusCode)

	if resp.StatusCode >= 400 {
		return nil, &TransferError{Op: "download", Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading download body: %w", err)
	}

	return data, nil
}

// UploadBlob sends raw bytes to a pre-signed URL with a single PUT. As with
// DownloadBlob, the URL is self-authenticating and no Authorization header
// is attached.
func (c *Client) UploadBlob(ctx context.Context, rawURL string, data []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, rawURL, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("building upload request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("upload: %w", err)
	}
	defer resp.Body.Close()

	c.log.Debug("blob upload", "status", resp.StatusCode, "size", len(data))

	if resp.StatusCode >= 400 {
		return &TransferError{Op: "upload", Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}

	return nil
}
