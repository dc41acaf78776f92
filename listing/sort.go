package listing

import (
	"fmt"
	"sort"

	"github.com/status-im/coin-browser/coinranking"
)

// SortField selects the key of a sorted projection
type SortField int

const (
	SortNone SortField = iota
	SortByPrice
	SortByChange
	SortByName
)

func (f SortField) String() string {
	switch f {
	case SortByPrice:
		return "price"
	case SortByChange:
		return "change"
	case SortByName:
		return "name"
	case SortNone:
		return "none"
	}
	return "none"
}

// ParseSortField accepts price, change or name
func ParseSortField(s string) (SortField, error) {
	switch s {
	case "price":
		return SortByPrice, nil
	case "change":
		return SortByChange, nil
	case "name":
		return SortByName, nil
	}
	return SortNone, fmt.Errorf("unknown sort field %q", s)
}

// projection is the rule deriving displayed coins from the accumulated set.
// SortNone means the paged prefix.
type projection struct {
	field     SortField
	ascending bool
}

func (p projection) String() string {
	if p.field == SortNone {
		return "page"
	}
	order := "desc"
	if p.ascending {
		order = "asc"
	}
	return p.field.String() + ":" + order
}

// sortedCoins returns a stably sorted copy of coins, ties keep their order
func sortedCoins(coins []coinranking.Coin, field SortField, ascending bool) []coinranking.Coin {
	result := append(make([]coinranking.Coin, 0, len(coins)), coins...)

	var cmp func(a, b coinranking.Coin) int
	switch field {
	case SortByPrice:
		cmp = func(a, b coinranking.Coin) int { return a.PriceValue().Cmp(b.PriceValue()) }
	case SortByChange:
		cmp = func(a, b coinranking.Coin) int { return a.ChangeValue().Cmp(b.ChangeValue()) }
	case SortByName:
		cmp = func(a, b coinranking.Coin) int { return compareStrings(a.Name, b.Name) }
	case SortNone:
		return result
	default:
		return result
	}

	sort.SliceStable(result, func(i, j int) bool {
		c := cmp(result[i], result[j])
		if ascending {
			return c < 0
		}
		return c > 0
	})
	return result
}

func compareStrings(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
