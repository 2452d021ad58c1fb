// Package browse holds the client-side orchestration state: the paginated
// list session, the scroll trigger, the detail/magnet cascade and the
// display filter.
//
// Nothing here performs I/O on its own. Operations that need the network
// return a request value; the driver runs it off the update loop (Do) and
// feeds the result back through Resolve. Every request carries the token of
// the session that issued it, and results whose token is no longer current
// are dropped.
package browse

import (
	"context"
	"io"
	"log"
	"slices"

	"github.com/qyinm/bustui/types"
)

// State is the lifecycle of one browsing session.
type State int

const (
	Idle State = iota
	Loading
	Loaded
	Exhausted
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Exhausted:
		return "exhausted"
	default:
		return "idle"
	}
}

// PageRequest is one page fetch issued by a List session.
type PageRequest struct {
	Token uint64
	Page  int
	Mode  types.Mode
}

// PageResult is the outcome of a PageRequest.
type PageResult struct {
	Request  PageRequest
	Envelope types.PageEnvelope
	Err      error
}

// Do runs the request against source. It is safe to call from any goroutine.
func (r PageRequest) Do(ctx context.Context, source types.MovieSource) PageResult {
	env, err := source.FetchPage(ctx, r.Page, r.Mode)
	return PageResult{Request: r, Envelope: env, Err: err}
}

type session struct {
	token   uint64
	mode    types.Mode
	start   int
	page    int
	loaded  bool
	records []types.Movie
	seen    map[string]struct{}
	loading bool
	hasMore bool
	err     error
}

// List owns the browsing session: mode, current page, accumulated records
// (unique by id) and the loading/has-more flags. It must only be used from
// one goroutine.
type List struct {
	logger *log.Logger
	tokens uint64
	s      session
}

// NewList returns a List with no active session. A nil logger discards.
func NewList(logger *log.Logger) *List {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &List{logger: logger, s: session{page: 1, seen: map[string]struct{}{}}}
}

// ChangeMode replaces the session with a fresh one for mode and requests
// its first page. Results of the previous session are ignored from now on.
func (l *List) ChangeMode(mode types.Mode) PageRequest {
	return l.StartAt(mode, 1)
}

// StartAt is ChangeMode for callers resuming a listing further down, such
// as the MCP tools. Pages before start are never loaded in this session.
func (l *List) StartAt(mode types.Mode, start int) PageRequest {
	if start < 1 {
		start = 1
	}
	l.tokens++
	l.s = session{
		token:   l.tokens,
		mode:    mode,
		start:   start,
		page:    start,
		records: []types.Movie{},
		seen:    map[string]struct{}{},
		hasMore: true,
	}
	req, _ := l.LoadPage(start)
	return req
}

// Refresh starts a new session for the current mode.
func (l *List) Refresh() PageRequest {
	return l.ChangeMode(l.s.mode)
}

// LoadPage requests page n of the current session. It is a no-op (false)
// while a page is in flight, once the session is exhausted, or before any
// session exists.
func (l *List) LoadPage(n int) (PageRequest, bool) {
	if l.s.token == 0 || n < 1 || l.s.loading || !l.s.hasMore {
		return PageRequest{}, false
	}
	l.s.loading = true
	return PageRequest{Token: l.s.token, Page: n, Mode: l.s.mode}, true
}

// LoadNext requests the page after the last merged one. If nothing was
// merged yet (the first page failed) it retries the first page.
func (l *List) LoadNext() (PageRequest, bool) {
	if !l.s.loaded {
		return l.LoadPage(l.s.start)
	}
	return l.LoadPage(l.s.page + 1)
}

// Resolve merges res into the session that issued it. It returns false
// when res belongs to a superseded session and was discarded.
func (l *List) Resolve(res PageResult) bool {
	req := res.Request
	if req.Token == 0 || req.Token != l.s.token {
		l.logger.Printf("browse: dropping stale page %d of %s (session %d, current %d)", req.Page, req.Mode, req.Token, l.s.token)
		return false
	}
	l.s.loading = false

	if res.Err != nil {
		l.s.err = res.Err
		l.logger.Printf("browse: load page %d of %s failed: %v", req.Page, req.Mode, res.Err)
		return true
	}
	l.s.err = nil

	if req.Page == 1 {
		l.s.records = make([]types.Movie, 0, len(res.Envelope.Records))
		l.s.seen = make(map[string]struct{}, len(res.Envelope.Records))
	}
	for _, m := range res.Envelope.Records {
		if _, ok := l.s.seen[m.ID()]; ok {
			continue
		}
		l.s.seen[m.ID()] = struct{}{}
		l.s.records = append(l.s.records, m)
	}

	l.s.hasMore = res.Envelope.HasNextPage
	l.s.page = req.Page
	l.s.loaded = true
	return true
}

// Mode returns the mode of the current session.
func (l *List) Mode() types.Mode { return l.s.mode }

// Page returns the last merged page number (1 for a fresh session).
func (l *List) Page() int { return l.s.page }

// Token identifies the current session; 0 before the first ChangeMode.
func (l *List) Token() uint64 { return l.s.token }

// Loading reports whether a page request is in flight.
func (l *List) Loading() bool { return l.s.loading }

// HasMore reports whether another page may be requested.
func (l *List) HasMore() bool { return l.s.hasMore }

// Err is the last page failure of this session, nil after a success.
func (l *List) Err() error { return l.s.err }

// Loaded reports whether any page was merged in this session, even an
// empty one.
func (l *List) Loaded() bool { return l.s.loaded }

// Len returns the number of accumulated records.
func (l *List) Len() int { return len(l.s.records) }

// Records returns a copy of the accumulated records in arrival order.
func (l *List) Records() []types.Movie { return slices.Clone(l.s.records) }

// State derives the session state from its flags.
func (l *List) State() State {
	switch {
	case l.s.loading:
		return Loading
	case l.s.loaded && !l.s.hasMore:
		return Exhausted
	case l.s.loaded:
		return Loaded
	default:
		return Idle
	}
}
