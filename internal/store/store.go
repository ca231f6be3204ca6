// Package store holds the per-bucket price datasets of the wiki API.
package store

import (
	"context"
	"fmt"
	"time"

	"geprices/internal/provider"
)

// PricesFetcher fetches the full dataset of one bucket.
type PricesFetcher interface {
	GetPrices(ctx context.Context, bucket provider.TimeBucket) (provider.BucketPrices, error)
}

// Store keeps one dataset per TimeBucket. Refresh is the only mutator and
// replaces every bucket at once.
type Store struct {
	src       PricesFetcher
	buckets   map[provider.TimeBucket]provider.BucketPrices
	refreshed time.Time
}

func New(src PricesFetcher) *Store {
	return &Store{src: src, buckets: map[provider.TimeBucket]provider.BucketPrices{}}
}

// Refresh fetches every bucket in order. The new snapshot is swapped in only
// when all buckets were fetched; on error the previous one is kept.
func (s *Store) Refresh(ctx context.Context) error {
	next := make(map[provider.TimeBucket]provider.BucketPrices, len(provider.TimeBuckets()))
	for _, b := range provider.TimeBuckets() {
		prices, err := s.src.GetPrices(ctx, b)
		if err != nil {
			return fmt.Errorf("refreshing %s prices: %w", b, err)
		}
		if prices == nil {
			prices = provider.BucketPrices{}
		}
		next[b] = prices
	}
	s.buckets = next
	s.refreshed = time.Now().UTC()
	return nil
}

// Lookup returns the stats of id in bucket.
func (s *Store) Lookup(bucket provider.TimeBucket, id string) (provider.PriceStats, bool) {
	stats, ok := s.buckets[bucket][id]
	return stats, ok
}

// Bucket returns the whole dataset of bucket, nil before the first Refresh.
func (s *Store) Bucket(bucket provider.TimeBucket) provider.BucketPrices {
	return s.buckets[bucket]
}

// Refreshed reports when the last successful Refresh completed.
func (s *Store) Refreshed() time.Time { return s.refreshed }
