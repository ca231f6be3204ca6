// Package item defines the normalized per-item record built from the wiki
// price API, and the lazily fetched GE catalogue quote attached to it.
package item

import (
	"fmt"
	"strings"

	"geprices/internal/provider"
)

// DefaultLinkBaseURL prefixes the item slug in Link.
const DefaultLinkBaseURL = "https://platinumtokens.com/item/"

// Static holds the item metadata. Every field may be missing upstream.
type Static struct {
	Members  *bool
	LowAlch  *int64
	HighAlch *int64
	NPCValue *int64
	Limit    *int64
	Name     *string
}

// Quote is the latest instant-buy (High) and instant-sell (Low) price.
type Quote struct {
	High *int64
	Low  *int64
}

// SeriesPoint is the averaged price/volume of one bucket.
type SeriesPoint struct {
	AvgHighPrice    *int64
	HighPriceVolume *int64
	AvgLowPrice     *int64
	LowPriceVolume  *int64
}

// Params are the inputs of New. Buckets missing from Series are null-filled.
type Params struct {
	ID           string
	Static       Static
	Quote        Quote
	Series       map[provider.TimeBucket]SeriesPoint
	LinkBaseURL  string
	LiveEndpoint string
}

// Record is one item. It is immutable apart from the cached live quote;
// newer prices require a new Record.
type Record struct {
	id     string
	static Static
	quote  Quote
	margin *int64
	roi    *float64
	link   string
	series map[provider.TimeBucket]SeriesPoint

	liveEndpoint string
	live         *provider.LiveQuote
}

// New builds a record and computes its margin, ROI and link once.
func New(p Params) *Record {
	r := &Record{
		id:           p.ID,
		static:       p.Static,
		quote:        p.Quote,
		series:       make(map[provider.TimeBucket]SeriesPoint, len(provider.SeriesBuckets())),
		liveEndpoint: p.LiveEndpoint,
	}
	for _, b := range provider.SeriesBuckets() {
		r.series[b] = p.Series[b]
	}

	// A zero price counts as missing: margin and ROI are both set or both nil.
	if high, low := p.Quote.High, p.Quote.Low; high != nil && low != nil && *high != 0 && *low != 0 {
		margin := *high - *low
		roi := float64(margin) / float64(*low) * 100
		r.margin, r.roi = &margin, &roi
	}

	if p.Static.Name != nil {
		base := p.LinkBaseURL
		if base == "" {
			base = DefaultLinkBaseURL
		}
		r.link = base + slug(*p.Static.Name)
	}
	return r
}

func slug(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "-")
}

func (r *Record) ID() string { return r.id }

// Static returns a copy of the item metadata.
func (r *Record) Static() Static { return r.static }

func (r *Record) Members() *bool   { return r.static.Members }
func (r *Record) LowAlch() *int64  { return r.static.LowAlch }
func (r *Record) HighAlch() *int64 { return r.static.HighAlch }
func (r *Record) NPCValue() *int64 { return r.static.NPCValue }
func (r *Record) Limit() *int64    { return r.static.Limit }
func (r *Record) Name() *string    { return r.static.Name }

func (r *Record) HighPrice() *int64 { return r.quote.High }
func (r *Record) LowPrice() *int64  { return r.quote.Low }

// Margin is HighPrice - LowPrice, nil unless both prices are known and non-zero.
func (r *Record) Margin() *int64 { return r.margin }

// ROI is Margin as a percentage of LowPrice, nil exactly when Margin is.
func (r *Record) ROI() *float64 { return r.roi }

// Link is the item page derived from the name; empty when the name is unknown.
func (r *Record) Link() string { return r.link }

// LiveEndpoint is the GE catalogue detail URL of this item.
func (r *Record) LiveEndpoint() string { return r.liveEndpoint }

// SeriesPoint returns the averaged series of bucket.
// Latest has no averaged series and yields ErrInvalidWindow.
func (r *Record) SeriesPoint(bucket provider.TimeBucket) (SeriesPoint, error) {
	if !bucket.HasSeries() {
		return SeriesPoint{}, fmt.Errorf("%w: %s has no averaged series", provider.ErrInvalidWindow, bucket)
	}
	return r.series[bucket], nil
}

// Series returns one series value; nil when upstream had no entry.
func (r *Record) Series(field SeriesField, bucket provider.TimeBucket) (*int64, error) {
	p, err := r.SeriesPoint(bucket)
	if err != nil {
		return nil, err
	}
	switch field {
	case AvgHighPrice:
		return p.AvgHighPrice, nil
	case HighPriceVolume:
		return p.HighPriceVolume, nil
	case AvgLowPrice:
		return p.AvgLowPrice, nil
	case LowPriceVolume:
		return p.LowPriceVolume, nil
	default:
		return nil, fmt.Errorf("unknown series field %d", int(field))
	}
}
