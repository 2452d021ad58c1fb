package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/qyinm/bustui/types"
)

const (
	DefaultBaseURL   = "https://bus.wawj.dpdns.org/api"
	DefaultTimeout   = 20 * time.Second
	DefaultCacheSize = 256
	DefaultCacheTTL  = 30 * time.Minute
	maxBodyBytes     = 8 << 20
)

var errInvalidJSON = errors.New("response body is not valid JSON")

// Options configures a Client. Zero values fall back to defaults, except
// Timeout where 0 disables the overall deadline.
type Options struct {
	BaseURL   string
	ProxyURL  string
	Timeout   time.Duration
	CacheSize int
	CacheTTL  time.Duration

	// HTTPClient replaces the built-in client (proxy and timeout are then ignored).
	HTTPClient *http.Client
}

// Client implements types.MovieSource against the movie JSON API.
// Detail records are kept in an in-process LRU; list pages are never cached
// so that page 1 always reflects server-side changes.
type Client struct {
	baseURL string
	client  *http.Client
	details *expirable.LRU[string, types.MovieDetail]
}

// Compile-time interface check
var _ types.MovieSource = (*Client)(nil)

// New creates a Client from opts.
func New(opts Options) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if base == "" {
		base = DefaultBaseURL
	}
	if u, err := url.Parse(base); err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base url %q", opts.BaseURL)
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		var err error
		httpClient, err = newHTTPClient(opts.ProxyURL, opts.Timeout)
		if err != nil {
			return nil, fmt.Errorf("create http client: %w", err)
		}
	}

	size := opts.CacheSize
	if size <= 0 {
		size = DefaultCacheSize
	}
	ttl := opts.CacheTTL
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}

	return &Client{
		baseURL: base,
		client:  httpClient,
		details: expirable.NewLRU[string, types.MovieDetail](size, nil, ttl),
	}, nil
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// FetchPage fetches one page of mode. Search results are always a single
// terminal page because the search endpoint is not paginated.
func (c *Client) FetchPage(ctx context.Context, page int, mode types.Mode) (types.PageEnvelope, error) {
	if page < 1 {
		return types.PageEnvelope{}, fmt.Errorf("page must be >= 1, got %d", page)
	}

	var (
		endpoint string
		query    url.Values
		terminal bool
	)
	switch mode.Kind() {
	case types.Search:
		keyword := NormalizeKeyword(mode.Query())
		if keyword == "" {
			return types.PageEnvelope{}, errors.New("search keyword is required")
		}
		endpoint = "/movies/search"
		query = url.Values{"keyword": {keyword}}
		terminal = true
		page = 1
	default:
		endpoint = "/movies"
		query = url.Values{
			"page": {strconv.Itoa(page)},
			"type": {mode.Category().String()},
		}
	}

	body, reqURL, err := c.get(ctx, endpoint, query)
	if err != nil {
		return types.PageEnvelope{}, fmt.Errorf("fetch page: %w", err)
	}

	raw, err := decodePage(body, mode.IsSearch())
	if err != nil {
		return types.PageEnvelope{}, &MalformedResponseError{URL: reqURL, Reason: err.Error()}
	}
	return normalizePage(raw, page, terminal), nil
}

// FetchDetail fetches the detail record for id.
func (c *Client) FetchDetail(ctx context.Context, id string) (types.MovieDetail, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return types.MovieDetail{}, &NotFoundError{ID: id}
	}

	if detail, ok := c.details.Get(id); ok {
		return detail, nil
	}

	body, reqURL, err := c.get(ctx, "/movies/"+url.PathEscape(id), nil)
	if err != nil {
		var te *TransportError
		if errors.As(err, &te) && te.StatusCode == http.StatusNotFound {
			return types.MovieDetail{}, &NotFoundError{ID: id}
		}
		return types.MovieDetail{}, fmt.Errorf("fetch detail: %w", err)
	}

	trimmed := bytes.TrimSpace(body)
	if bytes.Equal(trimmed, []byte("null")) || bytes.Equal(trimmed, []byte("{}")) {
		return types.MovieDetail{}, &NotFoundError{ID: id}
	}
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return types.MovieDetail{}, &MalformedResponseError{URL: reqURL, Reason: "detail is not an object"}
	}

	var raw detailJSON
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return types.MovieDetail{}, &MalformedResponseError{URL: reqURL, Reason: err.Error()}
	}
	if strings.TrimSpace(raw.ID) == "" {
		return types.MovieDetail{}, &NotFoundError{ID: id}
	}

	detail := raw.toDetail()
	c.details.Add(id, detail)
	return detail, nil
}

// FetchMagnets fetches the magnet list unlocked by gid and uc. An empty
// result is not an error.
func (c *Client) FetchMagnets(ctx context.Context, id, gid, uc string) ([]types.Magnet, error) {
	id, gid, uc = strings.TrimSpace(id), strings.TrimSpace(gid), strings.TrimSpace(uc)
	if id == "" || gid == "" || uc == "" {
		return nil, errors.New("id, gid and uc are all required")
	}

	body, reqURL, err := c.get(ctx, "/magnets/"+url.PathEscape(id), url.Values{"gid": {gid}, "uc": {uc}})
	if err != nil {
		return nil, fmt.Errorf("fetch magnets: %w", err)
	}

	trimmed := bytes.TrimSpace(body)
	if bytes.Equal(trimmed, []byte("null")) {
		return []types.Magnet{}, nil
	}

	var raw []magnetJSON
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, &MalformedResponseError{URL: reqURL, Reason: err.Error()}
	}

	magnets := make([]types.Magnet, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, m := range raw {
		magnet := m.toMagnet()
		if magnet.Link() == "" {
			continue
		}
		if _, ok := seen[magnet.ID()]; ok {
			continue
		}
		seen[magnet.ID()] = struct{}{}
		magnets = append(magnets, magnet)
	}
	return magnets, nil
}

// ClearCache drops cached detail records.
func (c *Client) ClearCache() {
	c.details.Purge()
}

// get performs a GET and returns the raw JSON body. Non-2xx statuses and
// bodies that are not JSON are reported as *TransportError.
func (c *Client) get(ctx context.Context, endpoint string, query url.Values) ([]byte, string, error) {
	reqURL := c.baseURL + endpoint
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, reqURL, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, reqURL, &TransportError{URL: reqURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, reqURL, &TransportError{
			URL:        reqURL,
			StatusCode: resp.StatusCode,
			Status:     statusText(resp),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, reqURL, &TransportError{URL: reqURL, StatusCode: resp.StatusCode, Err: err}
	}
	if !json.Valid(body) {
		return nil, reqURL, &TransportError{URL: reqURL, StatusCode: resp.StatusCode, Err: errInvalidJSON}
	}
	return body, reqURL, nil
}

// statusText strips the numeric prefix from resp.Status ("404 Not Found").
func statusText(resp *http.Response) string {
	s := strings.TrimSpace(resp.Status)
	if _, rest, ok := strings.Cut(s, " "); ok && rest != "" {
		return rest
	}
	if text := http.StatusText(resp.StatusCode); text != "" {
		return text
	}
	return s
}
