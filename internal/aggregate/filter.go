package aggregate

import (
	"cmp"
	"slices"
	"strings"

	"geprices/internal/item"
	"geprices/internal/provider"
)

// FilterComplete keeps the records whose given static fields are all known.
// With no fields, every static field is required.
func FilterComplete(records []*item.Record, fields ...item.StaticField) []*item.Record {
	if len(fields) == 0 {
		fields = item.StaticFields()
	}
	out := make([]*item.Record, 0, len(records))
	for _, r := range records {
		if hasAll(r, fields) {
			out = append(out, r)
		}
	}
	return out
}

func hasAll(r *item.Record, fields []item.StaticField) bool {
	for _, f := range fields {
		if !r.Has(f) {
			return false
		}
	}
	return true
}

type seriesFilter struct {
	fields  []item.SeriesField
	buckets []provider.TimeBucket
}

// SeriesOption configures FilterCompleteSeries.
type SeriesOption func(*seriesFilter)

// RequireSeriesFields replaces the required series fields. Calling it with
// no fields drops the series requirement entirely.
func RequireSeriesFields(fields ...item.SeriesField) SeriesOption {
	return func(f *seriesFilter) {
		f.fields = fields
	}
}

// RequireBuckets replaces the required buckets.
func RequireBuckets(buckets ...provider.TimeBucket) SeriesOption {
	return func(f *seriesFilter) {
		f.buckets = buckets
	}
}

// FilterCompleteSeries keeps the records that have a value for every
// required (field, bucket) pair. By default all four series are required in
// every non-latest bucket. Requiring Latest excludes every record, since it
// has no series.
func FilterCompleteSeries(records []*item.Record, opts ...SeriesOption) []*item.Record {
	f := seriesFilter{fields: item.SeriesFields(), buckets: provider.SeriesBuckets()}
	for _, opt := range opts {
		opt(&f)
	}
	out := make([]*item.Record, 0, len(records))
	for _, r := range records {
		if f.match(r) {
			out = append(out, r)
		}
	}
	return out
}

func (f seriesFilter) match(r *item.Record) bool {
	for _, field := range f.fields {
		for _, b := range f.buckets {
			v, err := r.Series(field, b)
			if err != nil || v == nil {
				return false
			}
		}
	}
	return true
}

// Order compares two records for SortBy.
type Order func(a, b *item.Record) int

// ByROI orders by descending ROI; unknown ROI sorts last.
func ByROI(a, b *item.Record) int { return descNil(a.ROI(), b.ROI()) }

// ByMargin orders by descending margin; unknown margin sorts last.
func ByMargin(a, b *item.Record) int { return descNil(a.Margin(), b.Margin()) }

// ByName orders by case-insensitive name; unknown names sort last.
func ByName(a, b *item.Record) int {
	switch an, bn := a.Name(), b.Name(); {
	case an == nil && bn == nil:
		return 0
	case an == nil:
		return 1
	case bn == nil:
		return -1
	default:
		return cmp.Compare(strings.ToLower(*an), strings.ToLower(*bn))
	}
}

func descNil[T cmp.Ordered](a, b *T) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	default:
		return cmp.Compare(*b, *a)
	}
}

// SortBy returns a sorted copy of records. The sort is stable.
func SortBy(records []*item.Record, order Order) []*item.Record {
	out := slices.Clone(records)
	slices.SortStableFunc(out, order)
	return out
}
