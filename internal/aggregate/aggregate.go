package aggregate

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"geprices/internal/item"
	"geprices/internal/provider"
	"geprices/internal/store"
)

// Aggregator merges the wiki mapping, the wiki price buckets and the GE
// catalogue endpoint into item records. It is not safe for concurrent use.
type Aggregator struct {
	prices provider.PriceSource
	live   provider.LiveSource
	store  *store.Store

	// ids keeps the upstream mapping order.
	ids     []string
	mapping map[string]provider.Mapping

	logger      *zap.Logger
	linkBaseURL string
	strict      bool
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(a *Aggregator) {
		a.logger = logger
	}
}

// WithLinkBaseURL overrides the prefix of item links.
func WithLinkBaseURL(base string) Option {
	return func(a *Aggregator) {
		a.linkBaseURL = base
	}
}

// WithStrictLookup makes GetItem fail with ErrLookupMiss when the id has no
// metadata or no latest quote, instead of null-filling.
func WithStrictLookup(strict bool) Option {
	return func(a *Aggregator) {
		a.strict = strict
	}
}

func New(prices provider.PriceSource, live provider.LiveSource, opts ...Option) *Aggregator {
	a := &Aggregator{
		prices:      prices,
		live:        live,
		store:       store.New(prices),
		mapping:     map[string]provider.Mapping{},
		logger:      zap.NewNop(),
		linkBaseURL: item.DefaultLinkBaseURL,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Load fetches the static metadata once and then every price bucket. On
// error the previously loaded metadata and prices are kept.
func (a *Aggregator) Load(ctx context.Context) error {
	mapping, err := a.prices.GetMapping(ctx)
	if err != nil {
		return fmt.Errorf("loading mapping: %w", err)
	}

	ids := make([]string, 0, len(mapping))
	byID := make(map[string]provider.Mapping, len(mapping))
	for _, m := range mapping {
		id := strconv.Itoa(m.ID)
		if _, dup := byID[id]; !dup {
			ids = append(ids, id)
		}
		byID[id] = m
	}

	// The mapping is committed only together with a full price refresh.
	if err := a.RefreshPrices(ctx); err != nil {
		return err
	}
	a.ids, a.mapping = ids, byID
	a.logger.Info("loaded item mapping", zap.Int("items", len(ids)))
	return nil
}

// RefreshPrices resyncs every price bucket. Static metadata is untouched.
func (a *Aggregator) RefreshPrices(ctx context.Context) error {
	if err := a.store.Refresh(ctx); err != nil {
		return err
	}
	fields := make([]zap.Field, 0, len(provider.TimeBuckets()))
	for _, b := range provider.TimeBuckets() {
		fields = append(fields, zap.Int(b.String(), len(a.store.Bucket(b))))
	}
	a.logger.Info("refreshed prices", fields...)
	return nil
}

// IDs returns the known item ids in mapping order.
func (a *Aggregator) IDs() []string {
	return append([]string(nil), a.ids...)
}

// GetItem builds a fresh record for id.
//
// Missing metadata or a missing latest quote null-fills the affected fields,
// or returns ErrLookupMiss in strict mode. A bucket without an entry for id
// null-fills that bucket's series; an entry lacking one of its fields
// returns ErrMissingField.
func (a *Aggregator) GetItem(id string) (*item.Record, error) {
	m, hasMeta := a.mapping[id]
	latest, hasQuote := a.store.Lookup(provider.Latest, id)
	if a.strict {
		if !hasMeta {
			return nil, fmt.Errorf("%w: no metadata for %s", provider.ErrLookupMiss, id)
		}
		if !hasQuote {
			return nil, fmt.Errorf("%w: no latest quote for %s", provider.ErrLookupMiss, id)
		}
	}

	high, err := provider.OptionalInt(latest, "high")
	if err != nil {
		return nil, fmt.Errorf("item %s: latest: %w", id, err)
	}
	low, err := provider.OptionalInt(latest, "low")
	if err != nil {
		return nil, fmt.Errorf("item %s: latest: %w", id, err)
	}

	series := make(map[provider.TimeBucket]item.SeriesPoint, len(provider.SeriesBuckets()))
	for _, b := range provider.SeriesBuckets() {
		stats, ok := a.store.Lookup(b, id)
		if !ok {
			// Not every item trades in every bucket.
			continue
		}
		p, err := seriesPoint(stats)
		if err != nil {
			return nil, fmt.Errorf("item %s: %s: %w", id, b, err)
		}
		series[b] = p
	}

	var endpoint string
	if a.live != nil {
		endpoint = a.live.DetailURL(id)
	}
	return item.New(item.Params{
		ID:           id,
		Static:       staticOf(m),
		Quote:        item.Quote{High: high, Low: low},
		Series:       series,
		LinkBaseURL:  a.linkBaseURL,
		LiveEndpoint: endpoint,
	}), nil
}

// GetItems builds a record for every known id in mapping order. Ids that
// cannot be built are left out.
func (a *Aggregator) GetItems() []*item.Record {
	out := make([]*item.Record, 0, len(a.ids))
	for _, id := range a.ids {
		r, err := a.GetItem(id)
		if err != nil {
			if errors.Is(err, provider.ErrLookupMiss) {
				a.logger.Debug("skipping item", zap.String("id", id), zap.Error(err))
			} else {
				a.logger.Warn("skipping malformed item", zap.String("id", id), zap.Error(err))
			}
			continue
		}
		out = append(out, r)
	}
	return out
}

// staticOf copies the metadata; the zero Mapping yields all-nil fields.
func staticOf(m provider.Mapping) item.Static {
	return item.Static{
		Members:  m.Members,
		LowAlch:  m.LowAlch,
		HighAlch: m.HighAlch,
		NPCValue: m.NPCValue,
		Limit:    m.Limit,
		Name:     m.Name,
	}
}

func seriesPoint(stats provider.PriceStats) (item.SeriesPoint, error) {
	var (
		p   item.SeriesPoint
		err error
	)
	if p.AvgHighPrice, err = provider.RequiredInt(stats, item.AvgHighPrice.String()); err != nil {
		return p, err
	}
	if p.HighPriceVolume, err = provider.RequiredInt(stats, item.HighPriceVolume.String()); err != nil {
		return p, err
	}
	if p.AvgLowPrice, err = provider.RequiredInt(stats, item.AvgLowPrice.String()); err != nil {
		return p, err
	}
	if p.LowPriceVolume, err = provider.RequiredInt(stats, item.LowPriceVolume.String()); err != nil {
		return p, err
	}
	return p, nil
}
