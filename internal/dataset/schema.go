package dataset

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// ErrSourceUnreadable reports that a raw export could not be located or parsed structurally.
var ErrSourceUnreadable = errors.New("dataset: source unreadable")

// Column positions of a raw ticker export.
const (
	ColID = iota
	ColSymbol
	ColName
	ColNameID
	ColRank
	ColPriceUSD
	ColPercentChange24h
	ColPercentChange1h
	ColPercentChange7d
	ColPriceBTC
	ColMarketCapUSD
	ColVolume24
	ColVolume24a
	ColCSupply
	ColTSupply
	ColMSupply

	ColumnCount
)

// Columns names the fixed positional schema, in source order.
var Columns = [ColumnCount]string{
	"id", "symbol", "name", "nameid", "rank", "price_usd",
	"percent_change_24h", "percent_change_1h", "percent_change_7d",
	"price_btc", "market_cap_usd", "volume24", "volume24a",
	"csupply", "tsupply", "msupply",
}

// numericColumns are coerced to Float during normalization.
var numericColumns = map[int]bool{
	ColPriceUSD:         true,
	ColPercentChange24h: true,
	ColPercentChange1h:  true,
	ColPercentChange7d:  true,
}

// ColumnIndex returns the position of a named column.
func ColumnIndex(name string) (int, bool) {
	for i, c := range Columns {
		if c == name {
			return i, true
		}
	}
	return -1, false
}

// IsNumeric reports whether the column at idx is coerced to a number.
func IsNumeric(idx int) bool {
	return numericColumns[idx]
}

// Float is a coerced numeric cell. Valid is false when the source text was not a finite number.
type Float struct {
	Float64 float64
	Valid   bool
}

// Missing is the marker stored for cells that failed numeric coercion.
var Missing = Float{}

// Num wraps a finite value.
func Num(v float64) Float {
	return Float{Float64: v, Valid: true}
}

func (f Float) String() string {
	if !f.Valid {
		return "NaN"
	}
	return strconv.FormatFloat(f.Float64, 'f', -1, 64)
}

// ParseFloat coerces text into a Float; anything that is not a finite number becomes Missing.
func ParseFloat(s string) Float {
	s = strings.TrimSpace(s)
	if s == "" {
		return Missing
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return Missing
	}
	return Num(v)
}
