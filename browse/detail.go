package browse

import (
	"context"
	"io"
	"log"
	"slices"

	"github.com/qyinm/bustui/types"
)

// DetailState is the first stage of a detail session.
type DetailState int

const (
	DetailIdle DetailState = iota
	DetailLoading
	DetailReady
	DetailFailed
)

func (s DetailState) String() string {
	switch s {
	case DetailLoading:
		return "loading"
	case DetailReady:
		return "ready"
	case DetailFailed:
		return "failed"
	default:
		return "idle"
	}
}

// ResourceState is the magnet stage of a detail session.
type ResourceState int

const (
	ResourcesIdle ResourceState = iota
	ResourcesLoading
	ResourcesReady
)

func (s ResourceState) String() string {
	switch s {
	case ResourcesLoading:
		return "loading"
	case ResourcesReady:
		return "ready"
	default:
		return "idle"
	}
}

// DetailRequest fetches the detail record of one selection.
type DetailRequest struct {
	Token uint64
	ID    string
}

// DetailResult is the outcome of a DetailRequest.
type DetailResult struct {
	Request DetailRequest
	Detail  types.MovieDetail
	Err     error
}

func (r DetailRequest) Do(ctx context.Context, source types.MovieSource) DetailResult {
	d, err := source.FetchDetail(ctx, r.ID)
	return DetailResult{Request: r, Detail: d, Err: err}
}

// MagnetRequest fetches magnets with the identifiers from a detail record.
type MagnetRequest struct {
	Token uint64
	ID    string
	GID   string
	UC    string
}

// MagnetResult is the outcome of a MagnetRequest.
type MagnetResult struct {
	Request MagnetRequest
	Magnets []types.Magnet
	Err     error
}

func (r MagnetRequest) Do(ctx context.Context, source types.MovieSource) MagnetResult {
	ms, err := source.FetchMagnets(ctx, r.ID, r.GID, r.UC)
	return MagnetResult{Request: r, Magnets: ms, Err: err}
}

// Detail owns the session of the currently selected movie: its detail
// record, its magnets and the chosen cover image. Selecting another movie
// replaces everything. Like List it is single-goroutine.
type Detail struct {
	logger *log.Logger
	tokens uint64

	token     uint64
	movie     types.Movie
	detail    *types.MovieDetail
	magnets   []types.Magnet
	state     DetailState
	resources ResourceState
	cover     int
	err       error
	magnetErr error
}

// NewDetail returns an idle Detail. A nil logger discards.
func NewDetail(logger *log.Logger) *Detail {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Detail{logger: logger}
}

// Select starts a new session for movie, dropping the previous detail,
// magnets and cover choice.
func (d *Detail) Select(movie types.Movie) DetailRequest {
	d.tokens++
	d.token = d.tokens
	d.movie = movie
	d.detail = nil
	d.magnets = nil
	d.state = DetailLoading
	d.resources = ResourcesIdle
	d.cover = 0
	d.err = nil
	d.magnetErr = nil
	return DetailRequest{Token: d.token, ID: movie.ID()}
}

// ResolveDetail stores the detail record. When the record carries both gid
// and uc it moves to ResourcesLoading and returns the magnet request;
// otherwise the session ends with no magnets, which is not an error.
func (d *Detail) ResolveDetail(res DetailResult) (MagnetRequest, bool) {
	if !d.current(res.Request.Token) {
		d.logger.Printf("browse: dropping stale detail %s (session %d, current %d)", res.Request.ID, res.Request.Token, d.token)
		return MagnetRequest{}, false
	}

	if res.Err != nil {
		d.state = DetailFailed
		d.err = res.Err
		d.logger.Printf("browse: load detail %s failed: %v", res.Request.ID, res.Err)
		return MagnetRequest{}, false
	}

	detail := res.Detail
	d.detail = &detail
	d.state = DetailReady
	d.cover = 0

	if !detail.HasMagnetKeys() {
		d.resources = ResourcesReady
		return MagnetRequest{}, false
	}

	d.resources = ResourcesLoading
	return MagnetRequest{
		Token: d.token,
		ID:    d.movie.ID(),
		GID:   detail.GID(),
		UC:    detail.UC(),
	}, true
}

// ResolveMagnets stores the magnet list; a failure leaves it empty.
func (d *Detail) ResolveMagnets(res MagnetResult) bool {
	if !d.current(res.Request.Token) || d.resources != ResourcesLoading {
		d.logger.Printf("browse: dropping stale magnets for %s (session %d, current %d)", res.Request.ID, res.Request.Token, d.token)
		return false
	}

	d.resources = ResourcesReady
	if res.Err != nil {
		d.magnets = nil
		d.magnetErr = res.Err
		d.logger.Printf("browse: load magnets for %s failed: %v", res.Request.ID, res.Err)
		return true
	}
	d.magnets = slices.Clone(res.Magnets)
	return true
}

// Load runs the whole cascade synchronously. Intended for non-interactive
// callers; the TUI drives the same steps through messages.
func (d *Detail) Load(ctx context.Context, source types.MovieSource, movie types.Movie) {
	req := d.Select(movie)
	next, ok := d.ResolveDetail(req.Do(ctx, source))
	if !ok {
		return
	}
	d.ResolveMagnets(next.Do(ctx, source))
}

// Close ends the session; results still in flight will be dropped.
func (d *Detail) Close() {
	d.tokens++
	d.token = d.tokens
	d.movie = types.Movie{}
	d.detail = nil
	d.magnets = nil
	d.state = DetailIdle
	d.resources = ResourcesIdle
	d.cover = 0
	d.err = nil
	d.magnetErr = nil
}

func (d *Detail) current(token uint64) bool {
	return token != 0 && token == d.token && d.state != DetailIdle
}

// Active reports whether a movie is selected.
func (d *Detail) Active() bool { return d.state != DetailIdle }

// Movie returns the minimal record handed to Select.
func (d *Detail) Movie() types.Movie { return d.movie }

// Detail returns the fetched record, if any.
func (d *Detail) Detail() (types.MovieDetail, bool) {
	if d.detail == nil {
		return types.MovieDetail{}, false
	}
	return *d.detail, true
}

func (d *Detail) State() DetailState       { return d.state }
func (d *Detail) Resources() ResourceState { return d.resources }
func (d *Detail) DetailLoading() bool      { return d.state == DetailLoading }
func (d *Detail) ResourcesLoading() bool   { return d.resources == ResourcesLoading }
func (d *Detail) Err() error               { return d.err }
func (d *Detail) MagnetErr() error         { return d.magnetErr }
func (d *Detail) Magnets() []types.Magnet  { return slices.Clone(d.magnets) }

// Title prefers the detail record and falls back to the selected movie.
func (d *Detail) Title() string {
	if d.detail != nil && d.detail.Movie().Name() != "" {
		return d.detail.Movie().Name()
	}
	return d.movie.Name()
}

// ID prefers the detail record and falls back to the selected movie.
func (d *Detail) ID() string {
	if d.detail != nil && d.detail.Movie().ID() != "" {
		return d.detail.Movie().ID()
	}
	return d.movie.ID()
}

// Date prefers the detail record and falls back to the selected movie.
func (d *Detail) Date() string {
	if d.detail != nil && d.detail.Movie().Date() != "" {
		return d.detail.Movie().Date()
	}
	return d.movie.Date()
}

// Covers lists the images the cover can show: the primary image first, then
// the screenshots.
func (d *Detail) Covers() []string {
	primary := d.movie.ImageURL()
	var shots []string
	if d.detail != nil {
		if img := d.detail.Movie().ImageURL(); img != "" {
			primary = img
		}
		shots = d.detail.Screenshots()
	}
	covers := make([]string, 0, len(shots)+1)
	if primary != "" {
		covers = append(covers, primary)
	}
	for _, s := range shots {
		if s != "" && s != primary {
			covers = append(covers, s)
		}
	}
	return covers
}

// Cover returns the selected image, "" when there is none.
func (d *Detail) Cover() string {
	covers := d.Covers()
	if d.cover < 0 || d.cover >= len(covers) {
		return ""
	}
	return covers[d.cover]
}

// CoverIndex returns the position of the selected image in Covers.
func (d *Detail) CoverIndex() int { return d.cover }

// SelectCover switches the displayed image. Out of range is ignored.
func (d *Detail) SelectCover(i int) bool {
	if i < 0 || i >= len(d.Covers()) {
		return false
	}
	d.cover = i
	return true
}

// NextCover cycles through Covers.
func (d *Detail) NextCover() {
	n := len(d.Covers())
	if n == 0 {
		return
	}
	d.cover = (d.cover + 1) % n
}
