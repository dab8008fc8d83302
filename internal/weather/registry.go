package weather

import (
	"errors"
	"fmt"

	"github.com/i474232898/forest-temperature-monitor/internal/common"
)

// ErrUnknownLocation is returned when a location name is not in the registry.
var ErrUnknownLocation = errors.New("unknown location")

// Registry is the fixed set of monitored locations. It is built once at
// startup and never modified.
type Registry struct {
	locations []Location
	byKey     map[string]int
}

// NewRegistry validates locs and builds a registry preserving their order.
func NewRegistry(locs []Location) (*Registry, error) {
	if len(locs) == 0 {
		return nil, fmt.Errorf("registry requires at least one location")
	}

	r := &Registry{
		locations: make([]Location, 0, len(locs)),
		byKey:     make(map[string]int, len(locs)),
	}
	for _, loc := range locs {
		if loc.Name == "" {
			return nil, fmt.Errorf("location name must not be empty")
		}
		if loc.Lat < -90 || loc.Lat > 90 {
			return nil, fmt.Errorf("location %q: latitude %v out of range", loc.Name, loc.Lat)
		}
		if loc.Lon < -180 || loc.Lon > 180 {
			return nil, fmt.Errorf("location %q: longitude %v out of range", loc.Name, loc.Lon)
		}
		key := common.FoldKey(loc.Name)
		if _, dup := r.byKey[key]; dup {
			return nil, fmt.Errorf("duplicate location %q", loc.Name)
		}
		r.byKey[key] = len(r.locations)
		r.locations = append(r.locations, loc)
	}
	return r, nil
}

// Lookup finds a location by name, ignoring case and extra whitespace.
func (r *Registry) Lookup(name string) (Location, error) {
	i, ok := r.byKey[common.FoldKey(name)]
	if !ok {
		return Location{}, fmt.Errorf("%w: %q", ErrUnknownLocation, name)
	}
	return r.locations[i], nil
}

// All returns the locations in registry order.
func (r *Registry) All() []Location {
	out := make([]Location, len(r.locations))
	copy(out, r.locations)
	return out
}

// First returns the first registered location.
func (r *Registry) First() Location {
	return r.locations[0]
}
