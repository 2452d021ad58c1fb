package api

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/qyinm/bustui/types"
)

// rawPage is the decoded list/search body before normalization. The backend
// answers either with a bare array or with an envelope; exactly one of the
// two variants is set.
type rawPage interface {
	isRawPage()
}

type rawArray struct {
	records []movieJSON
}

type rawEnvelope struct {
	records    []movieJSON
	pagination *paginationJSON
}

func (rawArray) isRawPage()    {}
func (rawEnvelope) isRawPage() {}

type envelopeJSON struct {
	Movies     []movieJSON     `json:"movies"`
	Records    []movieJSON     `json:"records"`
	Pagination *paginationJSON `json:"pagination"`
}

type paginationJSON struct {
	CurrentPage int  `json:"currentPage"`
	HasNextPage bool `json:"hasNextPage"`
	NextPage    *int `json:"nextPage"`
}

// decodePage classifies body into one of the rawPage variants. A search
// envelope may omit the record list entirely, which means no results.
func decodePage(body []byte, search bool) (rawPage, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty body")
	}

	switch trimmed[0] {
	case '[':
		var records []movieJSON
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, fmt.Errorf("decode record array: %w", err)
		}
		return rawArray{records: records}, nil
	case '{':
		var env envelopeJSON
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return nil, fmt.Errorf("decode envelope: %w", err)
		}
		records := env.Records
		if records == nil {
			records = env.Movies
		}
		if records == nil && !search {
			return nil, fmt.Errorf("envelope has neither movies nor records")
		}
		return rawEnvelope{records: records, pagination: env.Pagination}, nil
	default:
		return nil, fmt.Errorf("unexpected JSON value, want array or object")
	}
}

// normalizePage maps any rawPage to the pagination contract. page is the
// number that was requested; terminal forces HasNextPage=false.
func normalizePage(raw rawPage, page int, terminal bool) types.PageEnvelope {
	var env types.PageEnvelope

	switch r := raw.(type) {
	case rawArray:
		env.Records = toMovies(r.records)
		env.HasNextPage = len(r.records) > 0
		env.NextPage = page + 1
	case rawEnvelope:
		env.Records = toMovies(r.records)
		if r.pagination != nil {
			env.HasNextPage = r.pagination.HasNextPage
			if r.pagination.NextPage != nil {
				env.NextPage = *r.pagination.NextPage
			} else if env.HasNextPage {
				env.NextPage = page + 1
			}
		}
	}

	if terminal {
		env.HasNextPage = false
		env.NextPage = 0
	}
	if env.Records == nil {
		env.Records = []types.Movie{}
	}
	return env
}

func toMovies(in []movieJSON) []types.Movie {
	out := make([]types.Movie, 0, len(in))
	for _, m := range in {
		if m.ID == "" {
			continue
		}
		out = append(out, m.toMovie())
	}
	return out
}
