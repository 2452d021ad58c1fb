package browse

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/qyinm/bustui/types"
)

func movie(id string) types.Movie {
	return types.NewMovie(id, "2024-01-01", "title "+id, "https://img/"+id+".jpg", nil, types.Unknown)
}

func movies(ids ...string) []types.Movie {
	out := make([]types.Movie, 0, len(ids))
	for _, id := range ids {
		out = append(out, movie(id))
	}
	return out
}

func page(hasNext bool, ids ...string) types.PageEnvelope {
	return types.PageEnvelope{Records: movies(ids...), HasNextPage: hasNext}
}

func ids(ms []types.Movie) []string {
	out := make([]string, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.ID())
	}
	return out
}

func assertIDs(t *testing.T, got []types.Movie, want ...string) {
	t.Helper()
	g := ids(got)
	if fmt.Sprint(g) != fmt.Sprint(want) {
		t.Fatalf("ids = %v, want %v", g, want)
	}
}

func TestChangeModeResetsSession(t *testing.T) {
	l := NewList(nil)
	req := l.ChangeMode(types.ListingMode(types.Normal))
	l.Resolve(PageResult{Request: req, Envelope: page(true, "A", "B")})
	next, ok := l.LoadNext()
	if !ok {
		t.Fatalf("expected page 2 request")
	}
	l.Resolve(PageResult{Request: next, Envelope: page(true, "C")})
	if l.Page() != 2 || l.Len() != 3 {
		t.Fatalf("setup: page=%d len=%d", l.Page(), l.Len())
	}

	req = l.ChangeMode(types.SearchMode("SSIS"))
	if l.Page() != 1 || l.Len() != 0 {
		t.Fatalf("mode change must reset page and records, got page=%d len=%d", l.Page(), l.Len())
	}
	if !l.HasMore() || !l.Loading() {
		t.Fatalf("fresh session should be loading with hasMore, got loading=%v hasMore=%v", l.Loading(), l.HasMore())
	}
	if req.Page != 1 || !req.Mode.IsSearch() || req.Token != l.Token() {
		t.Fatalf("unexpected first request: %+v", req)
	}
}

func TestChangeModeWhileLoading(t *testing.T) {
	l := NewList(nil)
	l.ChangeMode(types.ListingMode(types.Normal))
	if !l.Loading() {
		t.Fatalf("expected loading")
	}
	req := l.ChangeMode(types.ListingMode(types.Uncensored))
	if req.Page != 1 || req.Mode.Category() != types.Uncensored {
		t.Fatalf("new session must issue its own page 1 even if the old one was in flight: %+v", req)
	}
}

func TestMergeDeduplicates(t *testing.T) {
	l := NewList(nil)
	req := l.ChangeMode(types.ListingMode(types.Normal))
	l.Resolve(PageResult{Request: req, Envelope: page(true, "A", "B", "C")})

	next, ok := l.LoadNext()
	if !ok || next.Page != 2 {
		t.Fatalf("expected page 2 request, got %+v ok=%v", next, ok)
	}
	l.Resolve(PageResult{Request: next, Envelope: page(true, "C", "D")})

	assertIDs(t, l.Records(), "A", "B", "C", "D")
	if l.Page() != 2 {
		t.Fatalf("page = %d, want 2", l.Page())
	}
}

func TestMergeDropsDuplicatesWithinPage(t *testing.T) {
	l := NewList(nil)
	req := l.ChangeMode(types.ListingMode(types.Normal))
	l.Resolve(PageResult{Request: req, Envelope: page(true, "A", "A", "B")})
	next, _ := l.LoadNext()
	l.Resolve(PageResult{Request: next, Envelope: page(true, "B", "C", "C")})
	assertIDs(t, l.Records(), "A", "B", "C")
}

func TestNoDuplicatesAcrossManyPages(t *testing.T) {
	l := NewList(nil)
	req := l.ChangeMode(types.ListingMode(types.Normal))
	l.Resolve(PageResult{Request: req, Envelope: page(true, "0", "1", "2")})
	for p := 2; p <= 20; p++ {
		next, ok := l.LoadNext()
		if !ok {
			t.Fatalf("page %d not requested", p)
		}
		// overlapping windows: each page repeats the previous page's last two ids
		a, b, c := fmt.Sprint(p), fmt.Sprint(p+1), fmt.Sprint(p+2)
		l.Resolve(PageResult{Request: next, Envelope: page(true, fmt.Sprint(p-1), a, b, c)})
	}
	seen := map[string]bool{}
	for _, m := range l.Records() {
		if seen[m.ID()] {
			t.Fatalf("duplicate id %s", m.ID())
		}
		seen[m.ID()] = true
	}
}

func TestPageOneReplaces(t *testing.T) {
	l := NewList(nil)
	req := l.ChangeMode(types.ListingMode(types.Normal))
	l.Resolve(PageResult{Request: req, Envelope: page(true, "A", "B")})

	again, ok := l.LoadPage(1)
	if !ok {
		t.Fatalf("expected page 1 reload")
	}
	l.Resolve(PageResult{Request: again, Envelope: page(true, "Z", "A")})
	assertIDs(t, l.Records(), "Z", "A")
}

func TestLoadPageWhileLoadingIsNoop(t *testing.T) {
	l := NewList(nil)
	first := l.ChangeMode(types.ListingMode(types.Normal))
	if _, ok := l.LoadPage(2); ok {
		t.Fatalf("second request must be refused while loading")
	}
	if _, ok := l.LoadNext(); ok {
		t.Fatalf("LoadNext must be refused while loading")
	}
	if l.Page() != 1 || l.Len() != 0 || !l.Loading() {
		t.Fatalf("refused request changed state: page=%d len=%d loading=%v", l.Page(), l.Len(), l.Loading())
	}
	if !l.Resolve(PageResult{Request: first, Envelope: page(true, "A")}) {
		t.Fatalf("in-flight result should be applied")
	}
}

func TestLoadPageBeforeSession(t *testing.T) {
	l := NewList(nil)
	if _, ok := l.LoadPage(1); ok {
		t.Fatalf("no session yet, LoadPage must refuse")
	}
	if l.State() != Idle {
		t.Fatalf("state = %v, want idle", l.State())
	}
}

func TestStaleSessionNeverMerges(t *testing.T) {
	for _, order := range []string{"A first", "B first"} {
		t.Run(order, func(t *testing.T) {
			l := NewList(nil)
			reqA := l.ChangeMode(types.ListingMode(types.Normal))
			reqB := l.ChangeMode(types.SearchMode("B"))

			resA := PageResult{Request: reqA, Envelope: page(true, "A1", "A2")}
			resB := PageResult{Request: reqB, Envelope: page(false, "B1")}

			if order == "A first" {
				if l.Resolve(resA) {
					t.Fatalf("stale result was applied")
				}
				l.Resolve(resB)
			} else {
				l.Resolve(resB)
				if l.Resolve(resA) {
					t.Fatalf("stale result was applied")
				}
			}

			assertIDs(t, l.Records(), "B1")
			if l.HasMore() || l.Loading() {
				t.Fatalf("stale result leaked into flags: hasMore=%v loading=%v", l.HasMore(), l.Loading())
			}
		})
	}
}

func TestStaleFailureDoesNotClearLoading(t *testing.T) {
	l := NewList(nil)
	reqA := l.ChangeMode(types.ListingMode(types.Normal))
	l.ChangeMode(types.ListingMode(types.Uncensored))
	l.Resolve(PageResult{Request: reqA, Err: errors.New("boom")})
	if !l.Loading() {
		t.Fatalf("stale failure must not touch the new session's loading flag")
	}
	if l.Err() != nil {
		t.Fatalf("stale failure must not be recorded")
	}
}

func TestPageFailureLeavesStateUntouched(t *testing.T) {
	l := NewList(nil)
	req := l.ChangeMode(types.ListingMode(types.Normal))
	l.Resolve(PageResult{Request: req, Envelope: page(true, "A", "B", "C")})

	next, _ := l.LoadNext()
	l.Resolve(PageResult{Request: next, Err: errors.New("HTTP 502")})

	assertIDs(t, l.Records(), "A", "B", "C")
	if l.Loading() {
		t.Fatalf("loading must be cleared after failure")
	}
	if l.Page() != 1 {
		t.Fatalf("page advanced on failure: %d", l.Page())
	}
	if !l.HasMore() {
		t.Fatalf("hasMore changed on failure")
	}
	if l.Err() == nil {
		t.Fatalf("expected last error to be kept")
	}

	retry, ok := l.LoadNext()
	if !ok || retry.Page != 2 {
		t.Fatalf("retry should request page 2 again, got %+v ok=%v", retry, ok)
	}
	l.Resolve(PageResult{Request: retry, Envelope: page(false, "D")})
	if l.Err() != nil {
		t.Fatalf("success must clear the last error")
	}
	if l.State() != Exhausted {
		t.Fatalf("state = %v, want exhausted", l.State())
	}
}

func TestFirstPageFailureRetriesPageOne(t *testing.T) {
	l := NewList(nil)
	req := l.ChangeMode(types.ListingMode(types.Normal))
	l.Resolve(PageResult{Request: req, Err: errors.New("offline")})

	retry, ok := l.LoadNext()
	if !ok || retry.Page != 1 {
		t.Fatalf("expected page 1 retry, got %+v ok=%v", retry, ok)
	}
}

func TestExhaustedIsTerminal(t *testing.T) {
	l := NewList(nil)
	req := l.ChangeMode(types.ListingMode(types.Normal))
	l.Resolve(PageResult{Request: req, Envelope: page(false, "A")})
	if _, ok := l.LoadNext(); ok {
		t.Fatalf("no request may follow a terminal page")
	}
	if _, ok := l.LoadPage(1); ok {
		t.Fatalf("no request may follow a terminal page until the session resets")
	}

	req = l.Refresh()
	if req.Page != 1 || !l.Loading() || l.Len() != 0 {
		t.Fatalf("refresh should start a new session: %+v", req)
	}
}

func TestLoadedAfterEmptyPage(t *testing.T) {
	l := NewList(nil)
	req := l.ChangeMode(types.ListingMode(types.Normal))
	if l.Loaded() {
		t.Fatalf("nothing merged yet")
	}
	l.Resolve(PageResult{Request: req, Envelope: page(true)})
	if !l.Loaded() || l.Len() != 0 {
		t.Fatalf("an empty page still counts as merged: loaded=%v len=%d", l.Loaded(), l.Len())
	}

	next, ok := l.LoadNext()
	if !ok || next.Page != 2 {
		t.Fatalf("expected page 2 after an empty page 1, got %+v %v", next, ok)
	}
	l.Resolve(PageResult{Request: next, Err: errors.New("boom")})
	if !l.Loaded() || l.Page() != 1 {
		t.Fatalf("failure must not undo the merged state: loaded=%v page=%d", l.Loaded(), l.Page())
	}
}

func TestStateTransitions(t *testing.T) {
	l := NewList(nil)
	req := l.ChangeMode(types.ListingMode(types.Normal))
	if l.State() != Loading {
		t.Fatalf("state = %v, want loading", l.State())
	}
	l.Resolve(PageResult{Request: req, Envelope: page(true, "A")})
	if l.State() != Loaded {
		t.Fatalf("state = %v, want loaded", l.State())
	}
}

type fakeSource struct {
	pages      map[int]types.PageEnvelope
	pageErr    error
	detail     types.MovieDetail
	detailErr  error
	magnets    []types.Magnet
	magnetErr  error
	pageCalls  int
	magnetArgs [][3]string
}

func (f *fakeSource) FetchPage(_ context.Context, page int, _ types.Mode) (types.PageEnvelope, error) {
	f.pageCalls++
	if f.pageErr != nil {
		return types.PageEnvelope{}, f.pageErr
	}
	return f.pages[page], nil
}

func (f *fakeSource) FetchDetail(_ context.Context, id string) (types.MovieDetail, error) {
	if f.detailErr != nil {
		return types.MovieDetail{}, f.detailErr
	}
	return f.detail, nil
}

func (f *fakeSource) FetchMagnets(_ context.Context, id, gid, uc string) ([]types.Magnet, error) {
	f.magnetArgs = append(f.magnetArgs, [3]string{id, gid, uc})
	if f.magnetErr != nil {
		return nil, f.magnetErr
	}
	return f.magnets, nil
}

func TestPageRequestDo(t *testing.T) {
	src := &fakeSource{pages: map[int]types.PageEnvelope{1: page(true, "A", "B", "C"), 2: page(false, "C", "D")}}
	l := NewList(nil)
	ctx := context.Background()

	l.Resolve(l.ChangeMode(types.ListingMode(types.Normal)).Do(ctx, src))
	next, _ := l.LoadNext()
	l.Resolve(next.Do(ctx, src))

	assertIDs(t, l.Records(), "A", "B", "C", "D")
	if src.pageCalls != 2 {
		t.Fatalf("page calls = %d", src.pageCalls)
	}
}

func TestStartAtResumesLaterPage(t *testing.T) {
	l := NewList(nil)
	req := l.StartAt(types.ListingMode(types.Normal), 3)
	if req.Page != 3 || l.Page() != 3 {
		t.Fatalf("first request = %+v, page = %d", req, l.Page())
	}
	l.Resolve(PageResult{Request: req, Err: errors.New("timeout")})

	retry, ok := l.LoadNext()
	if !ok || retry.Page != 3 {
		t.Fatalf("retry should target the start page, got %+v ok=%v", retry, ok)
	}
	l.Resolve(PageResult{Request: retry, Envelope: page(true, "E", "F")})
	next, _ := l.LoadNext()
	if next.Page != 4 {
		t.Fatalf("next page = %d, want 4", next.Page)
	}
	assertIDs(t, l.Records(), "E", "F")
}
