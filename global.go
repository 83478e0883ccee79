package tzfinder

import "os"

// DefaultZoneIDDtype reads TIMEZONEFINDER_ZONE_ID_DTYPE, defaulting to
// uint16 when unset or unrecognized. It only affects which
// dtype new data is built with; opening existing data always infers the
// width from the shortcut filename, never from this variable.
func DefaultZoneIDDtype() string {
	switch v := os.Getenv("TIMEZONEFINDER_ZONE_ID_DTYPE"); v {
	case "uint8", "uint16":
		return v
	default:
		return "uint16"
	}
}

// globalFinder is the lazily initialized process-wide handle backing the
// TimezoneAt/TimezoneAtLand/CertainTimezoneAt/UniqueTimezoneAt package
// functions below. It is a convenience over the core, which itself never
// relies on global state.
//
// Not safe for concurrent use: the lazy-init check-then-set below is not
// synchronized, so these package-level functions share one handle and must
// not be called concurrently from multiple goroutines — documented, not
// enforced.
var globalFinder *Finder

// Init lazily opens the process-wide Finder over dir if one does not
// already exist. Calling Init again with the engine already initialized
// is a no-op; use Reset first to reopen with different data.
func Init(dir string, mode backingMode) error {
	if globalFinder != nil {
		return nil
	}
	f, err := Open(dir, mode)
	if err != nil {
		return err
	}
	globalFinder = f
	return nil
}

// Reset closes the process-wide Finder, if any, so a later Init call can
// reopen it (e.g. over a different data directory).
func Reset() error {
	if globalFinder == nil {
		return nil
	}
	err := globalFinder.Close()
	globalFinder = nil
	return err
}

// TimezoneAt calls Finder.TimezoneAt on the process-wide handle. It panics
// if Init has not been called; this mirrors the core's no-implicit-open
// policy rather than silently opening arbitrary default data.
func TimezoneAt(lng, lat float64) (string, error) {
	return globalFinder.TimezoneAt(lng, lat)
}

// TimezoneAtLand calls Finder.TimezoneAtLand on the process-wide handle.
func TimezoneAtLand(lng, lat float64) (string, error) {
	return globalFinder.TimezoneAtLand(lng, lat)
}

// CertainTimezoneAt calls Finder.CertainTimezoneAt on the process-wide handle.
func CertainTimezoneAt(lng, lat float64) (string, error) {
	return globalFinder.CertainTimezoneAt(lng, lat)
}

// UniqueTimezoneAt calls Finder.UniqueTimezoneAt on the process-wide handle.
func UniqueTimezoneAt(lng, lat float64) (string, error) {
	return globalFinder.UniqueTimezoneAt(lng, lat)
}
