package item

import "fmt"

// StaticField names one static attribute of a Record.
type StaticField int

const (
	Members StaticField = iota
	LowAlch
	Limit
	NPCValue
	HighAlch
	Name
)

// StaticFields returns every static field.
func StaticFields() []StaticField {
	return []StaticField{Members, LowAlch, Limit, NPCValue, HighAlch, Name}
}

func (f StaticField) String() string {
	switch f {
	case Members:
		return "members"
	case LowAlch:
		return "lowalch"
	case Limit:
		return "limit"
	case NPCValue:
		return "npc_value"
	case HighAlch:
		return "highalch"
	case Name:
		return "name"
	default:
		return fmt.Sprintf("StaticField(%d)", int(f))
	}
}

// Has reports whether f is known for r.
func (r *Record) Has(f StaticField) bool {
	switch f {
	case Members:
		return r.static.Members != nil
	case LowAlch:
		return r.static.LowAlch != nil
	case Limit:
		return r.static.Limit != nil
	case NPCValue:
		return r.static.NPCValue != nil
	case HighAlch:
		return r.static.HighAlch != nil
	case Name:
		return r.static.Name != nil
	default:
		return false
	}
}

// SeriesField names one of the four averaged series.
type SeriesField int

const (
	AvgHighPrice SeriesField = iota
	HighPriceVolume
	AvgLowPrice
	LowPriceVolume
)

// SeriesFields returns every series field.
func SeriesFields() []SeriesField {
	return []SeriesField{AvgHighPrice, HighPriceVolume, AvgLowPrice, LowPriceVolume}
}

// String returns the upstream key of the field.
func (f SeriesField) String() string {
	switch f {
	case AvgHighPrice:
		return "avgHighPrice"
	case HighPriceVolume:
		return "highPriceVolume"
	case AvgLowPrice:
		return "avgLowPrice"
	case LowPriceVolume:
		return "lowPriceVolume"
	default:
		return fmt.Sprintf("SeriesField(%d)", int(f))
	}
}
