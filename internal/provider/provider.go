package provider

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrLookupMiss means an id has no static metadata or no bucket entry.
	ErrLookupMiss = errors.New("lookup miss")
	// ErrMissingField means an upstream payload is present but lacks an expected field.
	ErrMissingField = errors.New("missing field")
	// ErrInvalidWindow means a bucket or window does not apply to the requested metric.
	ErrInvalidWindow = errors.New("invalid window")
)

// TimeBucket is a window the wiki price API aggregates over.
type TimeBucket int

const (
	Latest TimeBucket = iota
	FiveMinute
	OneHour
	SixHour
)

// TimeBuckets lists every bucket in refresh order.
func TimeBuckets() []TimeBucket {
	return []TimeBucket{Latest, FiveMinute, OneHour, SixHour}
}

// SeriesBuckets lists the buckets that carry averaged series.
func SeriesBuckets() []TimeBucket {
	return []TimeBucket{FiveMinute, OneHour, SixHour}
}

// String returns the wire value used in the API path.
func (b TimeBucket) String() string {
	switch b {
	case Latest:
		return "latest"
	case FiveMinute:
		return "5m"
	case OneHour:
		return "1h"
	case SixHour:
		return "6h"
	default:
		return fmt.Sprintf("TimeBucket(%d)", int(b))
	}
}

// HasSeries reports whether b carries averaged price/volume series.
func (b TimeBucket) HasSeries() bool {
	return b == FiveMinute || b == OneHour || b == SixHour
}

// LiveWindow is a window reported by the GE catalogue detail endpoint.
type LiveWindow int

const (
	Current LiveWindow = iota
	Today
	Day30
	Day90
	Day180
)

func (w LiveWindow) String() string {
	switch w {
	case Current:
		return "current"
	case Today:
		return "today"
	case Day30:
		return "day30"
	case Day90:
		return "day90"
	case Day180:
		return "day180"
	default:
		return fmt.Sprintf("LiveWindow(%d)", int(w))
	}
}

// HasChange reports whether w carries a percentage change and a trend.
func (w LiveWindow) HasChange() bool {
	return w == Day30 || w == Day90 || w == Day180
}

// Trend is the GE catalogue trend label.
type Trend string

const (
	Positive Trend = "positive"
	Neutral  Trend = "neutral"
	Negative Trend = "negative"
)

// Mapping is the static metadata of one item. Any field may be omitted upstream.
type Mapping struct {
	ID       int     `json:"id"`
	Members  *bool   `json:"members"`
	LowAlch  *int64  `json:"lowalch"`
	Limit    *int64  `json:"limit"`
	NPCValue *int64  `json:"value"`
	HighAlch *int64  `json:"highalch"`
	Name     *string `json:"name"`
}

// PriceStats is the raw per-item payload of one bucket, e.g.
// {"high": 2200000, "low": 2150000} or {"avgHighPrice": ..., "highPriceVolume": ...}.
type PriceStats map[string]any

// BucketPrices maps item id to the item's stats in one bucket.
type BucketPrices map[string]PriceStats

// LiveSection is one window of a GE catalogue detail payload.
type LiveSection struct {
	Trend  Trend   `json:"trend"`
	Price  any     `json:"price"`
	Change *string `json:"change"`
}

// LiveQuote is the GE catalogue detail payload for one item.
type LiveQuote struct {
	ID      int          `json:"id"`
	Name    string       `json:"name"`
	Current *LiveSection `json:"current"`
	Today   *LiveSection `json:"today"`
	Day30   *LiveSection `json:"day30"`
	Day90   *LiveSection `json:"day90"`
	Day180  *LiveSection `json:"day180"`
}

// Section returns the section for w, or ErrMissingField when the payload lacks it.
func (q *LiveQuote) Section(w LiveWindow) (*LiveSection, error) {
	var s *LiveSection
	switch w {
	case Current:
		s = q.Current
	case Today:
		s = q.Today
	case Day30:
		s = q.Day30
	case Day90:
		s = q.Day90
	case Day180:
		s = q.Day180
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidWindow, w)
	}
	if s == nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingField, w)
	}
	return s, nil
}

// PriceSource is the bulk wiki price API.
type PriceSource interface {
	GetMapping(ctx context.Context) ([]Mapping, error)
	GetPrices(ctx context.Context, bucket TimeBucket) (BucketPrices, error)
}

// LiveSource is the per-item GE catalogue API.
type LiveSource interface {
	DetailURL(id string) string
	FetchLiveQuote(ctx context.Context, endpoint string) (*LiveQuote, error)
}
