package types

import "testing"

func TestAvailabilityOf(t *testing.T) {
	yes, no := true, false
	if got := AvailabilityOf(nil); got != Unknown {
		t.Fatalf("nil flag = %v, want unknown", got)
	}
	if got := AvailabilityOf(&yes); got != Available {
		t.Fatalf("true flag = %v, want yes", got)
	}
	if got := AvailabilityOf(&no); got != Missing {
		t.Fatalf("false flag = %v, want no", got)
	}
}

func TestHasMagnetKeys(t *testing.T) {
	m := NewMovie("ABC-123", "2024-01-01", "t", "", nil, Unknown)
	tests := []struct {
		name string
		gid  string
		uc   string
		want bool
	}{
		{"both", "123", "0", true},
		{"missing uc", "123", "", false},
		{"missing gid", "", "0", false},
		{"blank gid", "  ", "0", false},
		{"neither", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewMovieDetail(m, tt.gid, tt.uc, "", "", "", nil, nil, nil)
			if got := d.HasMagnetKeys(); got != tt.want {
				t.Errorf("HasMagnetKeys() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestModeCategoryOrQuery(t *testing.T) {
	if got := ListingMode(Uncensored).CategoryOrQuery(); got != "uncensored" {
		t.Fatalf("listing CategoryOrQuery = %q", got)
	}
	if got := SearchMode("SSIS").CategoryOrQuery(); got != "SSIS" {
		t.Fatalf("search CategoryOrQuery = %q", got)
	}
	var zero Mode
	if zero.IsSearch() || zero.Category() != Normal {
		t.Fatalf("zero mode should list normal category, got %v", zero)
	}
}

func TestParseCategory(t *testing.T) {
	cases := map[string]Category{"": Normal, "normal": Normal, " Uncensored ": Uncensored}
	for in, want := range cases {
		got, ok := ParseCategory(in)
		if !ok || got != want {
			t.Fatalf("ParseCategory(%q) = %v,%v want %v", in, got, ok, want)
		}
	}
	if _, ok := ParseCategory("star"); ok {
		t.Fatalf("expected star to be rejected")
	}
}
