package browse

import "github.com/qyinm/bustui/types"

// Filter derives the rendered subset of records. With onlyWithMagnets it
// drops records explicitly flagged as having no magnet; unknown passes
// because the backend does not always populate the flag.
func Filter(records []types.Movie, onlyWithMagnets bool) []types.Movie {
	if !onlyWithMagnets {
		return records
	}
	out := make([]types.Movie, 0, len(records))
	for _, m := range records {
		if m.HasMagnet() == types.Missing {
			continue
		}
		out = append(out, m)
	}
	return out
}
