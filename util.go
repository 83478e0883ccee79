package tzfinder

import (
	"fmt"
	"strings"

	h3 "github.com/uber/h3-go/v4"
)

// shortcutH3Res is the fixed H3 resolution the shortcut index is built and
// queried at.
const shortcutH3Res = 3

// oceanZonePrefix identifies ocean timezones by name: this is data, not
// code, but the prefix convention itself is fixed.
const oceanZonePrefix = "Etc/GMT"

// h3CellForPoint computes the H3 cell ID at shortcutH3Res covering (lng, lat).
func h3CellForPoint(lng, lat float64) (uint64, error) {
	cell, err := h3.LatLngToCell(h3.LatLng{Lat: lat, Lng: lng}, shortcutH3Res)
	if err != nil {
		return 0, fmt.Errorf("h3 cell lookup: %w", err)
	}
	return uint64(cell), nil
}

// lastChangeIndex returns the smallest index k such that zs[k:] is
// constant. If zs is empty or all elements are equal, it returns 0.
func lastChangeIndex(zs []int) int {
	n := len(zs)
	if n == 0 {
		return 0
	}
	k := n - 1
	for k > 0 && zs[k-1] == zs[k] {
		k--
	}
	return k
}

// isOceanTimezone reports whether name follows the ocean-zone naming
// convention.
func isOceanTimezone(name string) bool {
	return strings.HasPrefix(name, oceanZonePrefix)
}

// IsOceanTimezone is the exported form of isOceanTimezone, for callers
// (like the CLI) that need the same classification without a Finder.
func IsOceanTimezone(name string) bool {
	return isOceanTimezone(name)
}
