package aggregate

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"geprices/internal/item"
	"geprices/internal/provider"
)

type fakePrices struct {
	mapping      []provider.Mapping
	buckets      map[provider.TimeBucket]provider.BucketPrices
	mappingCalls int
	priceCalls   int
	err          error
	pricesErr    error
}

func (f *fakePrices) GetMapping(context.Context) ([]provider.Mapping, error) {
	f.mappingCalls++
	return f.mapping, f.err
}

func (f *fakePrices) GetPrices(_ context.Context, b provider.TimeBucket) (provider.BucketPrices, error) {
	f.priceCalls++
	if f.err != nil {
		return nil, f.err
	}
	if f.pricesErr != nil {
		return nil, f.pricesErr
	}
	return f.buckets[b], nil
}

type fakeLive struct {
	quote *provider.LiveQuote
	calls int
}

func (f *fakeLive) DetailURL(id string) string { return "http://ge.test/detail.json?item=" + id }

func (f *fakeLive) FetchLiveQuote(context.Context, string) (*provider.LiveQuote, error) {
	f.calls++
	return f.quote, nil
}

// decodeMapping parses wiki-style mapping JSON.
func decodeMapping(t *testing.T, s string) []provider.Mapping {
	t.Helper()
	var m []provider.Mapping
	require.NoError(t, json.Unmarshal([]byte(s), &m))
	return m
}

func stats(kv ...any) provider.PriceStats {
	s := provider.PriceStats{}
	for i := 0; i < len(kv); i += 2 {
		s[kv[i].(string)] = kv[i+1]
	}
	return s
}

func whipSource(t *testing.T) *fakePrices {
	return &fakePrices{
		mapping: decodeMapping(t, `[
			{"id":4151,"members":true,"lowalch":720,"limit":70,"value":1800,"highalch":1080,"name":"Abyssal whip"},
			{"id":2,"name":"Cannonball"}
		]`),
		buckets: map[provider.TimeBucket]provider.BucketPrices{
			provider.Latest: {
				"4151": stats("high", 2200000.0, "low", 2150000.0),
				"2":    stats("high", 180.0, "low", 175.0),
			},
			provider.FiveMinute: {"4151": stats("avgHighPrice", 2190000.0, "highPriceVolume", 4.0, "avgLowPrice", 2140000.0, "lowPriceVolume", 9.0)},
			provider.OneHour:    {"4151": stats("avgHighPrice", 2195000.0, "highPriceVolume", 40.0, "avgLowPrice", nil, "lowPriceVolume", 0.0)},
			provider.SixHour:    {"4151": stats("avgHighPrice", 2199000.0, "highPriceVolume", 240.0, "avgLowPrice", 2145000.0, "lowPriceVolume", 300.0)},
		},
	}
}

func loaded(t *testing.T, src *fakePrices, opts ...Option) *Aggregator {
	t.Helper()
	opts = append([]Option{WithLogger(zaptest.NewLogger(t))}, opts...)
	a := New(src, &fakeLive{}, opts...)
	require.NoError(t, a.Load(context.Background()))
	return a
}

func TestGetItem_Whip(t *testing.T) {
	a := loaded(t, whipSource(t))

	r, err := a.GetItem("4151")
	require.NoError(t, err)

	require.Equal(t, int64(50000), *r.Margin())
	require.InDelta(t, 2.3256, *r.ROI(), 0.0001)
	require.Equal(t, "https://platinumtokens.com/item/abyssal-whip", r.Link())
	require.Equal(t, int64(1800), *r.NPCValue())
	require.Equal(t, "http://ge.test/detail.json?item=4151", r.LiveEndpoint())

	v, err := r.Series(item.AvgHighPrice, provider.SixHour)
	require.NoError(t, err)
	require.Equal(t, int64(2199000), *v)

	// Assert: an explicit null inside a present entry stays null.
	v, err = r.Series(item.AvgLowPrice, provider.OneHour)
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestGetItem_AbsentFromSeriesBuckets(t *testing.T) {
	a := loaded(t, whipSource(t))

	r, err := a.GetItem("2")
	require.NoError(t, err)

	for _, b := range provider.SeriesBuckets() {
		p, err := r.SeriesPoint(b)
		require.NoError(t, err)
		require.Equal(t, item.SeriesPoint{}, p)
	}
	require.Empty(t, FilterCompleteSeries([]*item.Record{r}))
}

func TestGetItem_StructuralErrorPropagates(t *testing.T) {
	src := whipSource(t)
	src.buckets[provider.OneHour]["4151"] = stats("avgHighPrice", 1.0, "highPriceVolume", 1.0, "avgLowPrice", 1.0)
	a := loaded(t, src)

	_, err := a.GetItem("4151")
	require.ErrorIs(t, err, provider.ErrMissingField)

	// Assert: the bulk call drops the item instead of failing.
	items := a.GetItems()
	require.Len(t, items, 1)
	require.Equal(t, "2", items[0].ID())
}

func TestGetItem_Lenient(t *testing.T) {
	src := whipSource(t)
	src.mapping = append(src.mapping, decodeMapping(t, `[{"id":561,"name":"Nature rune","limit":18000}]`)...)
	a := loaded(t, src)

	// Assert: some static fields missing -> null-filled, no quote -> nil prices.
	r, err := a.GetItem("561")
	require.NoError(t, err)
	require.Equal(t, "Nature rune", *r.Name())
	require.Nil(t, r.Members())
	require.Nil(t, r.HighPrice())
	require.Nil(t, r.Margin())

	// Assert: an entirely unknown id still yields a record.
	r, err = a.GetItem("999999")
	require.NoError(t, err)
	require.Equal(t, "999999", r.ID())
	for _, f := range item.StaticFields() {
		require.False(t, r.Has(f))
	}
	require.Empty(t, r.Link())

	// Assert: GetItems keeps every mapped id.
	require.Len(t, a.GetItems(), 3)
}

func TestGetItem_Strict(t *testing.T) {
	src := whipSource(t)
	src.mapping = append(src.mapping, decodeMapping(t, `[{"id":561,"name":"Nature rune","limit":18000}]`)...)
	a := loaded(t, src, WithStrictLookup(true))

	// Assert: metadata with missing fields but a quote is still built.
	r, err := a.GetItem("2")
	require.NoError(t, err)
	require.Nil(t, r.Members())

	// Assert: no latest quote is a lookup miss.
	_, err = a.GetItem("561")
	require.ErrorIs(t, err, provider.ErrLookupMiss)

	// Assert: an entirely unknown id is a lookup miss.
	_, err = a.GetItem("999999")
	require.ErrorIs(t, err, provider.ErrLookupMiss)

	// Assert: the bulk call excludes misses without failing.
	items := a.GetItems()
	require.Len(t, items, 2)
	require.Equal(t, []string{"4151", "2"}, []string{items[0].ID(), items[1].ID()})
}

func TestGetItems_MappingOrderAndFreshRecords(t *testing.T) {
	a := loaded(t, whipSource(t))

	first := a.GetItems()
	second := a.GetItems()
	require.Equal(t, []string{"4151", "2"}, a.IDs())
	require.Len(t, first, 2)
	require.Equal(t, "4151", first[0].ID())
	require.NotSame(t, first[0], second[0])
}

func TestRefreshPrices_LeavesMetadata(t *testing.T) {
	src := whipSource(t)
	a := loaded(t, src)
	require.Equal(t, 1, src.mappingCalls)
	require.Equal(t, 4, src.priceCalls)

	src.buckets[provider.Latest]["4151"] = stats("high", 2300000.0, "low", 2200000.0)
	require.NoError(t, a.RefreshPrices(context.Background()))

	require.Equal(t, 1, src.mappingCalls)
	require.Equal(t, 8, src.priceCalls)

	r, err := a.GetItem("4151")
	require.NoError(t, err)
	require.Equal(t, int64(100000), *r.Margin())
	require.Equal(t, "Abyssal whip", *r.Name())
}

func TestLoad_Error(t *testing.T) {
	boom := errors.New("boom")
	a := New(&fakePrices{err: boom}, &fakeLive{})
	require.ErrorIs(t, a.Load(context.Background()), boom)
}

func TestLoad_PriceErrorKeepsPreviousMapping(t *testing.T) {
	src := whipSource(t)
	a := loaded(t, src)
	before := a.IDs()

	// Arrange: a new mapping arrives but the price buckets are down
	down := errors.New("down")
	src.mapping = decodeMapping(t, `[{"id": 1, "name": "Dwarf remains"}]`)
	src.pricesErr = down

	// Act
	err := a.Load(context.Background())

	// Assert: metadata and prices still belong to the previous load
	require.ErrorIs(t, err, down)
	require.Equal(t, before, a.IDs())
	r, err := a.GetItem("4151")
	require.NoError(t, err)
	require.Equal(t, "Abyssal whip", *r.Name())
	require.Equal(t, int64(50000), *r.Margin())

	// Assert: the unseen id is still unknown
	a.strict = true
	_, err = a.GetItem("1")
	require.ErrorIs(t, err, provider.ErrLookupMiss)
}

func TestLiveMetrics_ThroughAggregator(t *testing.T) {
	live := &fakeLive{quote: &provider.LiveQuote{
		Current: &provider.LiveSection{Price: "2.2m"},
		Today:   &provider.LiveSection{Price: "+7"},
		Day30:   &provider.LiveSection{Trend: provider.Positive, Change: ptr("+1.0%")},
	}}
	a := New(whipSource(t), live)
	require.NoError(t, a.Load(context.Background()))

	r, err := a.GetItem("4151")
	require.NoError(t, err)

	price, err := a.CurrentPrice(context.Background(), r, false)
	require.NoError(t, err)
	require.Equal(t, 2_200_000.0, price)

	trend, err := a.Trend(context.Background(), r, provider.Day30, false)
	require.NoError(t, err)
	require.Equal(t, provider.Positive, trend)
	require.Equal(t, 1, live.calls)

	today, err := a.TodayChange(context.Background(), r, true)
	require.NoError(t, err)
	require.Equal(t, int64(7), today)
	require.Equal(t, 2, live.calls)

	change, err := a.PercentChange(context.Background(), r, provider.Day30, false)
	require.NoError(t, err)
	require.Equal(t, 1.0, change)
	require.Equal(t, 2, live.calls)

	// Assert: live caches are per record.
	again, err := a.GetItem("4151")
	require.NoError(t, err)
	require.Equal(t, item.Unpopulated, again.LiveState())
}

func ptr[T any](v T) *T { return &v }
