package item

import "geprices/internal/provider"

// SeriesSnapshot is the JSON form of one bucket's SeriesPoint.
type SeriesSnapshot struct {
	AvgHighPrice    *int64 `json:"avg_high_price"`
	HighPriceVolume *int64 `json:"high_price_volume"`
	AvgLowPrice     *int64 `json:"avg_low_price"`
	LowPriceVolume  *int64 `json:"low_price_volume"`
}

// Snapshot is a JSON-friendly copy of a Record.
type Snapshot struct {
	ID        string                    `json:"id"`
	Name      *string                   `json:"name"`
	Members   *bool                     `json:"members"`
	LowAlch   *int64                    `json:"lowalch"`
	HighAlch  *int64                    `json:"highalch"`
	NPCValue  *int64                    `json:"npc_value"`
	Limit     *int64                    `json:"limit"`
	HighPrice *int64                    `json:"high_price"`
	LowPrice  *int64                    `json:"low_price"`
	Margin    *int64                    `json:"margin"`
	ROI       *float64                  `json:"roi"`
	Link      string                    `json:"link,omitempty"`
	Series    map[string]SeriesSnapshot `json:"series"`
}

func (r *Record) Snapshot() Snapshot {
	st := r.Static()
	s := Snapshot{
		ID:        r.id,
		Name:      st.Name,
		Members:   st.Members,
		LowAlch:   st.LowAlch,
		HighAlch:  st.HighAlch,
		NPCValue:  st.NPCValue,
		Limit:     st.Limit,
		HighPrice: r.quote.High,
		LowPrice:  r.quote.Low,
		Margin:    r.margin,
		ROI:       r.roi,
		Link:      r.link,
		Series:    make(map[string]SeriesSnapshot, len(r.series)),
	}
	for _, b := range provider.SeriesBuckets() {
		p := r.series[b]
		s.Series[b.String()] = SeriesSnapshot(p)
	}
	return s
}
