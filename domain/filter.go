package domain

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ListingFilter is the conjunctive filter set accepted by the listing
// search. Zero values mean the filter is a no-op; price bounds are
// inclusive and optional.
type ListingFilter struct {
	City             string
	PropertyType     PropertyKind
	MinPrice         *float64
	MaxPrice         *float64
	GenderPreference GenderPreference

	Page  int
	Limit int
}

// Normalize clamps pagination to sane bounds. Results are returned
// newest-first, one page at a time.
func (f *ListingFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit <= 0 {
		f.Limit = DefaultPageSize
	}
	if f.Limit > MaxPageSize {
		f.Limit = MaxPageSize
	}
}

func (f *ListingFilter) Skip() int {
	return (f.Page - 1) * f.Limit
}
