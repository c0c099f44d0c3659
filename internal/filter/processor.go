// Package filter implements point cloud cleaning filters behind a common
// Processor contract.
//
// A Processor declares its parameters, with defaults, through Defaults and
// applies them through Apply. Apply never mutates the input cloud; it always
// returns a new one. Processors are stateless values, so one value can serve
// any number of trials.
package filter

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/GoSim-25-26J-441/cloudtune/internal/grid"
	"github.com/GoSim-25-26J-441/cloudtune/pkg/pointcloud"
)

var (
	// ErrInvalidParameters is returned when parameter values are outside the
	// range an algorithm accepts.
	ErrInvalidParameters = errors.New("invalid filter parameters")
	// ErrUnknownProcessor is returned by Lookup for unregistered names.
	ErrUnknownProcessor = errors.New("unknown processor")
)

// Processor is a point cloud filter.
type Processor interface {
	// Name identifies the filter type in logs and results.
	Name() string
	// Defaults lists every parameter the filter accepts with its default value.
	Defaults() grid.Params
	// Apply filters cloud with params and returns a new cloud. Parameters
	// missing from params take their defaults.
	Apply(cloud *pointcloud.Cloud, params grid.Params) (*pointcloud.Cloud, error)
}

var registry = map[string]Processor{}

// Register makes p available to Lookup under its Name and under the
// snake_case form of that name.
func Register(p Processor) {
	registry[p.Name()] = p
	registry[snakeCase(p.Name())] = p
}

// Lookup returns the processor registered under name.
func Lookup(name string) (Processor, error) {
	if p, ok := registry[name]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownProcessor, name, strings.Join(Names(), ", "))
}

// Names returns the canonical names of registered processors, sorted.
func Names() []string {
	seen := make(map[string]bool)
	for _, p := range registry {
		seen[p.Name()] = true
	}
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func init() {
	Register(StatisticalOutlierRemoval{})
	Register(RadiusOutlierRemoval{})
}

func snakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
