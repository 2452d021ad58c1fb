package mcpsrv

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/qyinm/bustui/api"
	"github.com/qyinm/bustui/browse"
	"github.com/qyinm/bustui/mcpsrv/dto"
	"github.com/qyinm/bustui/types"
)

const (
	defaultMaxItems = 100
	maxPagesPerCall = 5
)

type moviesListArgs struct {
	Category    string `json:"category,omitempty" jsonschema:"Listing category: normal or uncensored"`
	Page        int    `json:"page,omitempty" jsonschema:"First page to fetch (default 1)"`
	Pages       int    `json:"pages,omitempty" jsonschema:"Number of consecutive pages to merge (1-5)"`
	OnlyMagnets bool   `json:"only_magnets,omitempty" jsonschema:"Drop records known to have no magnet"`
	Limit       int    `json:"limit,omitempty" jsonschema:"Optional maximum number of items"`
}

type moviesSearchArgs struct {
	Keyword     string `json:"keyword" jsonschema:"Movie id, actor name or tag"`
	OnlyMagnets bool   `json:"only_magnets,omitempty" jsonschema:"Drop records known to have no magnet"`
	Limit       int    `json:"limit,omitempty" jsonschema:"Optional maximum number of items"`
}

type movieGetDetailArgs struct {
	ID             string `json:"id" jsonschema:"Movie id, e.g. ABC-123"`
	IncludeMagnets *bool  `json:"include_magnets,omitempty" jsonschema:"Also fetch magnets when the detail allows it (default true)"`
}

type magnetsGetArgs struct {
	ID  string `json:"id" jsonschema:"Movie id"`
	GID string `json:"gid" jsonschema:"gid from movie_get_detail"`
	UC  string `json:"uc" jsonschema:"uc from movie_get_detail"`
}

type moviesListOutput struct {
	Mode        string      `json:"mode"`
	Category    string      `json:"category,omitempty"`
	Keyword     string      `json:"keyword,omitempty"`
	Page        int         `json:"page"`
	HasNextPage bool        `json:"has_next_page"`
	NextPage    int         `json:"next_page,omitempty"`
	Total       int         `json:"total"`
	Partial     bool        `json:"partial,omitempty"`
	Warning     string      `json:"warning,omitempty"`
	Items       []dto.Movie `json:"items"`
}

type movieGetDetailOutput struct {
	Item          dto.MovieDetail `json:"item"`
	MagnetsStatus string          `json:"magnets_status"`
	MagnetsError  string          `json:"magnets_error,omitempty"`
	Magnets       []dto.Magnet    `json:"magnets"`
}

type magnetsGetOutput struct {
	ID    string       `json:"id"`
	Total int          `json:"total"`
	Items []dto.Magnet `json:"items"`
}

type cacheClearOutput struct {
	Status string `json:"status"`
}

type ServerOptions struct {
	EnableSearch bool
	EnableAdmin  bool
	APIKey       string
	MaxItems     int
	Logger       *log.Logger
}

type cacheClearSource interface {
	ClearCache()
}

type tools struct {
	source   types.MovieSource
	logger   *log.Logger
	maxItems int
}

func NewServer(source types.MovieSource, version string, opts *ServerOptions) *mcp.Server {
	if strings.TrimSpace(version) == "" {
		version = "dev"
	}
	if opts == nil {
		opts = &ServerOptions{}
	}
	t := &tools{source: source, logger: opts.Logger, maxItems: opts.MaxItems}
	if t.logger == nil {
		t.logger = log.New(io.Discard, "", 0)
	}
	if t.maxItems <= 0 {
		t.maxItems = defaultMaxItems
	}

	server := mcp.NewServer(&mcp.Implementation{Name: "bustui", Version: version}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "movies_list",
		Description: "List the latest movies of a category, merging consecutive pages without duplicates.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args moviesListArgs) (*mcp.CallToolResult, moviesListOutput, error) {
		return t.moviesList(ctx, req, args)
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "movie_get_detail",
		Description: "Get a movie's detail by id and, when the detail carries gid and uc, its magnet links.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args movieGetDetailArgs) (*mcp.CallToolResult, movieGetDetailOutput, error) {
		return t.movieGetDetail(ctx, req, args)
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "magnets_get",
		Description: "Get magnet links using the id, gid and uc of a movie detail.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args magnetsGetArgs) (*mcp.CallToolResult, magnetsGetOutput, error) {
		return t.magnetsGet(ctx, req, args)
	})

	if opts.EnableSearch {
		mcp.AddTool(server, &mcp.Tool{
			Name:        "movies_search",
			Description: "Search movies by id, actor or tag. Results are a single page.",
		}, func(ctx context.Context, req *mcp.CallToolRequest, args moviesSearchArgs) (*mcp.CallToolResult, moviesListOutput, error) {
			return t.moviesSearch(ctx, req, args)
		})
	}

	if opts.EnableAdmin {
		mcp.AddTool(server, &mcp.Tool{
			Name:        "cache_clear",
			Description: "Clear the movie detail cache (admin).",
		}, func(ctx context.Context, req *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, cacheClearOutput, error) {
			return t.cacheClear(ctx, req)
		})
	}

	return server
}

func (t *tools) moviesList(ctx context.Context, _ *mcp.CallToolRequest, args moviesListArgs) (*mcp.CallToolResult, moviesListOutput, error) {
	category, ok := types.ParseCategory(args.Category)
	if !ok {
		return errorToolResult(fmt.Sprintf("invalid category %q; expected normal|uncensored", args.Category)), moviesListOutput{}, nil
	}
	page := args.Page
	if page == 0 {
		page = 1
	}
	if page < 1 {
		return errorToolResult("page must be >= 1"), moviesListOutput{}, nil
	}
	pages := args.Pages
	if pages == 0 {
		pages = 1
	}
	if pages < 1 || pages > maxPagesPerCall {
		return errorToolResult(fmt.Sprintf("pages must be between 1 and %d", maxPagesPerCall)), moviesListOutput{}, nil
	}

	return t.collect(ctx, types.ListingMode(category), page, pages, args.OnlyMagnets, args.Limit)
}

func (t *tools) moviesSearch(ctx context.Context, _ *mcp.CallToolRequest, args moviesSearchArgs) (*mcp.CallToolResult, moviesListOutput, error) {
	keyword := api.NormalizeKeyword(args.Keyword)
	if keyword == "" {
		return errorToolResult("keyword is required"), moviesListOutput{}, nil
	}
	return t.collect(ctx, types.SearchMode(keyword), 1, 1, args.OnlyMagnets, args.Limit)
}

// collect drives a browse.List through up to pages fetches. A failure after
// the first merged page returns what was merged so far, flagged partial,
// even when the merged pages held no records.
func (t *tools) collect(ctx context.Context, mode types.Mode, start, pages int, onlyMagnets bool, limit int) (*mcp.CallToolResult, moviesListOutput, error) {
	l := browse.NewList(t.logger)
	req := l.StartAt(mode, start)
	var lastErr error
	for fetched := 1; ; fetched++ {
		l.Resolve(req.Do(ctx, t.source))
		if lastErr = l.Err(); lastErr != nil {
			break
		}
		if fetched >= pages {
			break
		}
		next, ok := l.LoadNext()
		if !ok {
			break
		}
		req = next
	}

	if lastErr != nil && !l.Loaded() {
		return errorToolResult(describeError("fetch movies", lastErr)), moviesListOutput{}, nil
	}

	records := browse.Filter(l.Records(), onlyMagnets)
	records = applyLimit(records, t.clampLimit(limit))

	out := moviesListOutput{
		Mode:        mode.Kind().String(),
		Page:        l.Page(),
		HasNextPage: l.HasMore(),
		Total:       len(records),
		Items:       dto.FromMovies(records),
	}
	if mode.IsSearch() {
		out.Keyword = mode.Query()
	} else {
		out.Category = mode.Category().String()
	}
	if l.HasMore() {
		out.NextPage = l.Page() + 1
	}
	if lastErr != nil {
		out.Partial = true
		out.Warning = describeError(fmt.Sprintf("fetch page %d", l.Page()+1), lastErr)
	}
	return nil, out, nil
}

func (t *tools) movieGetDetail(ctx context.Context, _ *mcp.CallToolRequest, args movieGetDetailArgs) (*mcp.CallToolResult, movieGetDetailOutput, error) {
	id := strings.TrimSpace(args.ID)
	if id == "" {
		return errorToolResult("id is required"), movieGetDetailOutput{}, nil
	}
	includeMagnets := args.IncludeMagnets == nil || *args.IncludeMagnets

	d := browse.NewDetail(t.logger)
	req := d.Select(types.NewMovie(id, "", "", "", nil, types.Unknown))
	next, cascade := d.ResolveDetail(req.Do(ctx, t.source))

	detail, ok := d.Detail()
	if !ok {
		return errorToolResult(describeError("fetch movie detail", d.Err())), movieGetDetailOutput{}, nil
	}

	out := movieGetDetailOutput{Item: dto.FromMovieDetail(detail), Magnets: []dto.Magnet{}}
	switch {
	case !cascade:
		out.MagnetsStatus = "unavailable"
	case !includeMagnets:
		out.MagnetsStatus = "skipped"
	default:
		d.ResolveMagnets(next.Do(ctx, t.source))
		if err := d.MagnetErr(); err != nil {
			out.MagnetsStatus = "failed"
			out.MagnetsError = describeError("fetch magnets", err)
		} else {
			out.MagnetsStatus = "loaded"
			out.Magnets = dto.FromMagnets(d.Magnets())
		}
	}
	return nil, out, nil
}

func (t *tools) magnetsGet(ctx context.Context, _ *mcp.CallToolRequest, args magnetsGetArgs) (*mcp.CallToolResult, magnetsGetOutput, error) {
	id := strings.TrimSpace(args.ID)
	gid := strings.TrimSpace(args.GID)
	uc := strings.TrimSpace(args.UC)
	if id == "" || gid == "" || uc == "" {
		return errorToolResult("id, gid and uc are required"), magnetsGetOutput{}, nil
	}

	magnets, err := t.source.FetchMagnets(ctx, id, gid, uc)
	if err != nil {
		t.logger.Printf("mcp: magnets_get %s: %v", id, err)
		return errorToolResult(describeError("fetch magnets", err)), magnetsGetOutput{}, nil
	}
	magnets = applyLimit(magnets, t.maxItems)
	return nil, magnetsGetOutput{ID: id, Total: len(magnets), Items: dto.FromMagnets(magnets)}, nil
}

func (t *tools) cacheClear(_ context.Context, _ *mcp.CallToolRequest) (*mcp.CallToolResult, cacheClearOutput, error) {
	clearable, ok := t.source.(cacheClearSource)
	if !ok {
		return errorToolResult("cache clear is not supported by this source"), cacheClearOutput{}, nil
	}
	clearable.ClearCache()
	return nil, cacheClearOutput{Status: "ok"}, nil
}

func (t *tools) clampLimit(limit int) int {
	if limit <= 0 || limit > t.maxItems {
		return t.maxItems
	}
	return limit
}

// describeError turns gateway errors into messages safe to show an agent.
func describeError(action string, err error) string {
	var notFound *api.NotFoundError
	var transport *api.TransportError
	var malformed *api.MalformedResponseError
	switch {
	case err == nil:
		return action + " failed"
	case errors.As(err, &notFound):
		return fmt.Sprintf("movie %q not found", notFound.ID)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return fmt.Sprintf("%s cancelled", action)
	case errors.As(err, &transport) && transport.Err == nil:
		return fmt.Sprintf("%s failed: upstream returned HTTP %d", action, transport.StatusCode)
	case errors.As(err, &transport):
		return fmt.Sprintf("%s failed: upstream unreachable or unreadable", action)
	case errors.As(err, &malformed):
		return fmt.Sprintf("%s failed: unexpected upstream response", action)
	default:
		return action + " failed"
	}
}

func errorToolResult(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: msg}},
	}
}

func applyLimit[T any](items []T, limit int) []T {
	if limit <= 0 || limit >= len(items) {
		return items
	}
	return items[:limit]
}
