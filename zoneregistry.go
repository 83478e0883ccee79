package tzfinder

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tzpoly/tzfinder/internal/npyfile"
)

// boundaryRange is a half-open [start, end) range of boundary IDs, as
// returned by zoneRegistry.boundariesOf.
type boundaryRange struct {
	Start int
	End   int
}

// zoneRegistry maps zone name <-> zone ID, and the zone -> boundary-ID-range
// table backing CertainTimezoneAt's full enumeration of a UniqueZone's
// boundaries.
type zoneRegistry struct {
	names         []string          // zone ID -> name, order is file order
	idOf          map[string]int    // name -> zone ID
	zonePositions []int32           // length len(names)+1, zone z's boundaries are [zonePositions[z], zonePositions[z+1])
}

// openZoneRegistry reads timezone_names.txt (one name per line, order
// defines zone IDs) and zone_positions.npy from dir.
func openZoneRegistry(dir string) (*zoneRegistry, error) {
	names, err := readLines(filepath.Join(dir, "timezone_names.txt"))
	if err != nil {
		return nil, err
	}

	positions, err := npyfile.ReadInt32Vector(filepath.Join(dir, "zone_positions.npy"))
	if err != nil {
		return nil, ioErrorErr("read zone_positions.npy", err)
	}
	if len(positions) != len(names)+1 {
		return nil, dataCorruptErr(fmt.Sprintf(
			"zone_positions.npy has length %d, expected %d (num_zones+1)", len(positions), len(names)+1))
	}
	// The final sentinel must be present and the ranges must be non-decreasing.
	for i := 1; i < len(positions); i++ {
		if positions[i] < positions[i-1] {
			return nil, dataCorruptErr("zone_positions.npy is not non-decreasing")
		}
	}

	idOf := make(map[string]int, len(names))
	for i, name := range names {
		idOf[name] = i
	}

	return &zoneRegistry{names: names, idOf: idOf, zonePositions: positions}, nil
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ioErrorErr(fmt.Sprintf("open %s", path), err)
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, ioErrorErr(fmt.Sprintf("read %s", path), err)
	}
	return lines, nil
}

func (r *zoneRegistry) numZones() int { return len(r.names) }

// nameOf returns the zone name for zone ID z.
func (r *zoneRegistry) nameOf(z int) (string, error) {
	if z < 0 || z >= len(r.names) {
		return "", invalidZoneIDErr(z)
	}
	return r.names[z], nil
}

// idOfName returns the zone ID for name, or InvalidZoneName if unknown.
func (r *zoneRegistry) idOfName(name string) (int, error) {
	z, ok := r.idOf[name]
	if !ok {
		return 0, invalidZoneNameErr(name)
	}
	return z, nil
}

// boundariesOf returns the half-open boundary ID range for zone z.
func (r *zoneRegistry) boundariesOf(z int) (boundaryRange, error) {
	if z < 0 || z >= len(r.names) {
		return boundaryRange{}, invalidZoneIDErr(z)
	}
	return boundaryRange{Start: int(r.zonePositions[z]), End: int(r.zonePositions[z+1])}, nil
}
