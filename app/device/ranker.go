package device

import (
	"sort"
	"strings"
	"time"

	"github.com/leshawn-rice/grabaphone/app/database"
)

// Ranker filters, orders and paginates joined device rows according to a
// FilterSet. It is a pure read: no side effects, an empty result is a normal
// outcome.
type Ranker struct{}

func NewRanker() *Ranker {
	return &Ranker{}
}

// Run applies the substring filters (AND-composed, case-insensitive), the
// released cut, recency ordering and the pagination window.
//
// The released cut is strictly before now, so the synthetic future sentinel
// for undisclosed-but-announced devices can never pass it. The unknown
// sentinel is excluded too: no usable information cannot assert "released".
func (r *Ranker) Run(rows []database.DeviceWithManufacturer, fs FilterSet, now time.Time) []database.DeviceWithManufacturer {
	matched := make([]database.DeviceWithManufacturer, 0, len(rows))
	for _, row := range rows {
		if fs.Manufacturer != nil && !containsFold(row.ManufacturerName, *fs.Manufacturer) {
			continue
		}
		if fs.Name != nil && !containsFold(row.Name, *fs.Name) {
			continue
		}
		if fs.IsReleased && (!row.ReleaseDate.Before(now) || row.ReleaseDate.Equal(UnknownSentinel)) {
			continue
		}
		matched = append(matched, row)
	}

	// Most recent (or most future) first; device ID breaks ties so repeated
	// calls paginate identically
	sort.SliceStable(matched, func(i, j int) bool {
		if !matched[i].ReleaseDate.Equal(matched[j].ReleaseDate) {
			return matched[i].ReleaseDate.After(matched[j].ReleaseDate)
		}
		return matched[i].ID < matched[j].ID
	})

	if fs.Offset >= len(matched) {
		return []database.DeviceWithManufacturer{}
	}

	end := fs.Offset + fs.Limit
	if end > len(matched) {
		end = len(matched)
	}

	return matched[fs.Offset:end]
}

func containsFold(value, substr string) bool {
	return strings.Contains(strings.ToLower(value), strings.ToLower(substr))
}
