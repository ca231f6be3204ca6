package aggregate

import (
	"context"

	"geprices/internal/item"
	"geprices/internal/provider"
)

// The methods below read live GE catalogue metrics of r through the
// aggregator's live source. force bypasses the record's cached quote.

func (a *Aggregator) PercentChange(ctx context.Context, r *item.Record, w provider.LiveWindow, force bool) (float64, error) {
	return r.PercentChange(ctx, a.live, w, force)
}

func (a *Aggregator) Trend(ctx context.Context, r *item.Record, w provider.LiveWindow, force bool) (provider.Trend, error) {
	return r.Trend(ctx, a.live, w, force)
}

func (a *Aggregator) TodayChange(ctx context.Context, r *item.Record, force bool) (int64, error) {
	return r.TodayChange(ctx, a.live, force)
}

func (a *Aggregator) CurrentPrice(ctx context.Context, r *item.Record, force bool) (float64, error) {
	return r.CurrentPrice(ctx, a.live, force)
}
