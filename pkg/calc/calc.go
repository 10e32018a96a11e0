package calc

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/signalgrid/voltpath/pkg/catalog"
	"github.com/signalgrid/voltpath/pkg/errors"
	"github.com/signalgrid/voltpath/pkg/model"
)

// DefaultMaxDrop is the maximum allowed voltage drop as a fraction of
// nominal voltage. Signalling power circuits are designed to a 10% budget.
const DefaultMaxDrop = 0.10

// Options configures a calculation run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// MaxDrop is the allowed voltage-drop fraction at the load (default 0.10).
	MaxDrop float64 `json:"max_drop,omitempty"`

	// Refresh bypasses the result cache and recalculates.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// ValidateAndSetDefaults checks fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect
// as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.MaxDrop == 0 {
		o.MaxDrop = DefaultMaxDrop
	}
	if err := errors.ValidateMaxDrop(o.MaxDrop); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// EnumeratePaths runs the structural half of the engine - path construction,
// topology validation and filtering - without any numeric pass. The `check`
// surfaces use it to vet a network's wiring before equipment is finalized.
//
// The returned paths each start at a supply and end at a load; a network
// whose branches never reach a load yields an empty set, not an error.
func EnumeratePaths(net *model.Network) ([]Path, error) {
	paths, err := buildPaths(net)
	if err != nil {
		return nil, err
	}
	if err := validateTopology(paths); err != nil {
		return nil, err
	}
	return filterPaths(paths), nil
}

// BuildSequentialPaths runs the complete calculation: every structural and
// numeric stage, in order, over a frozen network snapshot. It returns the
// ordered list of solved paths, or the first modeling error encountered -
// never partial results.
//
// The engine is single-threaded and synchronous. The network and catalog
// are only read; callers must not mutate them while a calculation is in
// flight.
func BuildSequentialPaths(net *model.Network, cat *catalog.Catalog, opts Options) ([]Path, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	paths, err := EnumeratePaths(net)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, nil
	}

	if err := propagate(paths); err != nil {
		return nil, err
	}
	aggregateLoads(paths)
	if err := solveElectrical(paths, cat, opts.MaxDrop, opts.Logger); err != nil {
		return nil, err
	}
	solveImpedance(paths)

	return paths, nil
}
