package item

import (
	"context"
	"fmt"
	"math"
	"strings"

	"geprices/internal/numeric"
	"geprices/internal/provider"
)

// LiveFetcher fetches a GE catalogue detail payload.
//
//go:generate mockgen -package=item_test -destination=mock_live_fetcher_test.go -source=live.go LiveFetcher
type LiveFetcher interface {
	FetchLiveQuote(ctx context.Context, endpoint string) (*provider.LiveQuote, error)
}

// LiveState is the state of a record's live-quote cache.
type LiveState int

const (
	Unpopulated LiveState = iota
	Populated
)

func (s LiveState) String() string {
	if s == Populated {
		return "populated"
	}
	return "unpopulated"
}

// LiveState reports whether the live quote has been fetched.
func (r *Record) LiveState() LiveState {
	if r.live == nil {
		return Unpopulated
	}
	return Populated
}

// FetchOrReuse returns the cached live quote, fetching it on first use.
func (r *Record) FetchOrReuse(ctx context.Context, f LiveFetcher) (*provider.LiveQuote, error) {
	if r.live != nil {
		return r.live, nil
	}
	return r.ForceRefresh(ctx, f)
}

// ForceRefresh always fetches the live quote and replaces the cache.
// On error the cache is left as it was.
func (r *Record) ForceRefresh(ctx context.Context, f LiveFetcher) (*provider.LiveQuote, error) {
	q, err := f.FetchLiveQuote(ctx, r.liveEndpoint)
	if err != nil {
		return nil, fmt.Errorf("fetching live quote for %s: %w", r.id, err)
	}
	if q == nil {
		return nil, fmt.Errorf("fetching live quote for %s: %w: item", r.id, provider.ErrMissingField)
	}
	r.live = q
	return q, nil
}

func (r *Record) liveSection(ctx context.Context, f LiveFetcher, w provider.LiveWindow, force bool) (*provider.LiveSection, error) {
	var (
		q   *provider.LiveQuote
		err error
	)
	if force {
		q, err = r.ForceRefresh(ctx, f)
	} else {
		q, err = r.FetchOrReuse(ctx, f)
	}
	if err != nil {
		return nil, err
	}
	return q.Section(w)
}

// PercentChange returns the price change over w, e.g. -32.0 for "-32.0%".
// Only the 30, 90 and 180 day windows carry a change.
func (r *Record) PercentChange(ctx context.Context, f LiveFetcher, w provider.LiveWindow, force bool) (float64, error) {
	if !w.HasChange() {
		return 0, fmt.Errorf("%w: no percent change for %s", provider.ErrInvalidWindow, w)
	}
	s, err := r.liveSection(ctx, f, w, force)
	if err != nil {
		return 0, err
	}
	if s.Change == nil {
		return 0, fmt.Errorf("%w: %s.change", provider.ErrMissingField, w)
	}
	return numeric.ParsePercent(*s.Change)
}

// Trend returns the trend label over w. Only the 30, 90 and 180 day windows
// carry a trend.
func (r *Record) Trend(ctx context.Context, f LiveFetcher, w provider.LiveWindow, force bool) (provider.Trend, error) {
	if !w.HasChange() {
		return "", fmt.Errorf("%w: no trend for %s", provider.ErrInvalidWindow, w)
	}
	s, err := r.liveSection(ctx, f, w, force)
	if err != nil {
		return "", err
	}
	if s.Trend == "" {
		return "", fmt.Errorf("%w: %s.trend", provider.ErrMissingField, w)
	}
	return s.Trend, nil
}

// TodayChange returns today's price delta, e.g. 7 for "+7" and -3 for "- 3".
func (r *Record) TodayChange(ctx context.Context, f LiveFetcher, force bool) (int64, error) {
	s, err := r.liveSection(ctx, f, provider.Today, force)
	if err != nil {
		return 0, err
	}
	if s.Price == nil {
		return 0, fmt.Errorf("%w: today.price", provider.ErrMissingField)
	}
	v := s.Price
	if str, ok := v.(string); ok {
		// The catalogue formats negative deltas as "- 3".
		v = strings.ReplaceAll(str, " ", "")
	}
	x, err := numeric.Normalize(v)
	if err != nil {
		return 0, err
	}
	return int64(math.Round(x)), nil
}

// CurrentPrice returns the listed GE price; abbreviated values such as
// "1.5m" are expanded.
func (r *Record) CurrentPrice(ctx context.Context, f LiveFetcher, force bool) (float64, error) {
	return r.PointValue(ctx, f, provider.Current, force)
}

// PointValue returns the point value of a window without change data: the
// listed price for Current and the price delta for Today. Other windows
// yield ErrInvalidWindow.
func (r *Record) PointValue(ctx context.Context, f LiveFetcher, w provider.LiveWindow, force bool) (float64, error) {
	switch w {
	case provider.Current:
	case provider.Today:
		d, err := r.TodayChange(ctx, f, force)
		return float64(d), err
	default:
		return 0, fmt.Errorf("%w: no point value for %s", provider.ErrInvalidWindow, w)
	}
	s, err := r.liveSection(ctx, f, provider.Current, force)
	if err != nil {
		return 0, err
	}
	if s.Price == nil {
		return 0, fmt.Errorf("%w: current.price", provider.ErrMissingField)
	}
	return numeric.Normalize(s.Price)
}
