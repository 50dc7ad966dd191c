package catalog

import (
	"sort"
	"strings"

	"storefront-service/internal/models"
)

// Apply derives the display list from the full catalog and the current
// filter state. Pure: the input slice is never mutated and applying the
// same state twice yields the same ordering. All sorts are stable, so
// products with equal keys keep their catalog order.
func Apply(products []models.Product, state models.FilterState) []models.Product {
	term := strings.ToLower(strings.TrimSpace(state.Query))

	list := make([]models.Product, 0, len(products))
	for _, p := range products {
		if !state.MatchesCategory(p) {
			continue
		}
		if !p.MatchesQuery(term) {
			continue
		}
		list = append(list, p)
	}

	switch state.Sort {
	case models.SortPriceAsc:
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].Price < list[j].Price
		})
	case models.SortPriceDesc:
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].Price > list[j].Price
		})
	case models.SortRating:
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].Rating > list[j].Rating
		})
	case models.SortNew:
		sort.SliceStable(list, func(i, j int) bool {
			if list[i].New != list[j].New {
				return list[i].New
			}
			return list[i].Reviews > list[j].Reviews
		})
	default: // featured
		sort.SliceStable(list, func(i, j int) bool {
			if list[i].Featured != list[j].Featured {
				return list[i].Featured
			}
			return list[i].Reviews > list[j].Reviews
		})
	}

	return list
}
