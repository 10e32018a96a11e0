package calc

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/signalgrid/voltpath/pkg/cache"
	"github.com/signalgrid/voltpath/pkg/catalog"
	"github.com/signalgrid/voltpath/pkg/model"
	"github.com/signalgrid/voltpath/pkg/netdef"
	"github.com/signalgrid/voltpath/pkg/observability"
)

// =============================================================================
// Runner - Cached Calculation Execution
// =============================================================================

// Runner encapsulates calculation execution with result caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store calculation results. Multiple goroutines can safely use the same
// Runner with different inputs.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Result is the outcome of a calculation run: the solved paths plus run
// metadata for API responses and diagnostics.
type Result struct {
	// RunID uniquely identifies this execution, cache hits included.
	RunID string `json:"run_id"`

	// NetworkHash and CatalogHash fingerprint the inputs the result was
	// computed from.
	NetworkHash string `json:"network_hash"`
	CatalogHash string `json:"catalog_hash"`

	// Paths are the solved paths in deterministic order.
	Paths []Path `json:"paths"`

	Stats     Stats     `json:"stats"`
	CacheInfo CacheInfo `json:"cache_info"`
}

// Stats carries run timing and size information.
type Stats struct {
	BlockCount int           `json:"block_count"`
	PathCount  int           `json:"path_count"`
	CalcTime   time.Duration `json:"calc_time"`
}

// CacheInfo reports which parts of a run were served from cache.
type CacheInfo struct {
	ResultHit bool `json:"result_hit"`
}

// Execute runs the complete calculation with result caching. The cached
// value is the solved path set keyed by content fingerprints of the network
// and catalog plus the result-affecting options, so any edit to the inputs
// naturally misses.
func (r *Runner) Execute(ctx context.Context, net *model.Network, cat *catalog.Catalog, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	netHash, err := netdef.Fingerprint(net)
	if err != nil {
		return nil, fmt.Errorf("fingerprint network: %w", err)
	}
	catHash, err := netdef.CatalogFingerprint(cat)
	if err != nil {
		return nil, fmt.Errorf("fingerprint catalog: %w", err)
	}

	result := &Result{
		RunID:       uuid.NewString(),
		NetworkHash: netHash,
		CatalogHash: catHash,
	}
	result.Stats.BlockCount = net.BlockCount()

	cacheKey := r.Keyer.ResultKey(netHash, catHash, cache.ResultKeyOpts{
		MaxDrop: opts.MaxDrop,
	})

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var paths []Path
			if err := json.Unmarshal(data, &paths); err == nil {
				observability.Cache().OnCacheHit(ctx, "result")
				result.Paths = paths
				result.Stats.PathCount = len(paths)
				result.CacheInfo.ResultHit = true
				r.Logger.Debug("result cache hit", "key", cacheKey)
				return result, nil
			}
			// Undecodable entries fall through to recompute
		}
		observability.Cache().OnCacheMiss(ctx, "result")
	}

	// Calculate
	start := time.Now()
	observability.Engine().OnCalcStart(ctx, netHash, net.BlockCount())
	paths, err := BuildSequentialPaths(net, cat, opts)
	observability.Engine().OnCalcComplete(ctx, netHash, len(paths), time.Since(start), err)
	if err != nil {
		return nil, err
	}

	result.Paths = paths
	result.Stats.PathCount = len(paths)
	result.Stats.CalcTime = time.Since(start)

	r.Logger.Info("calculated paths",
		"blocks", net.BlockCount(),
		"paths", len(paths),
		"duration", result.Stats.CalcTime)

	// Cache the result
	if data, err := json.Marshal(paths); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLResult); err == nil {
			observability.Cache().OnCacheSet(ctx, "result", len(data))
		}
	}

	return result, nil
}

// Check runs only the structural stages - path construction, topology
// validation and filtering - and reports the surviving paths. Check results
// are cheap to compute and never cached.
func (r *Runner) Check(ctx context.Context, net *model.Network) ([]Path, error) {
	netHash, err := netdef.Fingerprint(net)
	if err != nil {
		return nil, fmt.Errorf("fingerprint network: %w", err)
	}

	start := time.Now()
	observability.Engine().OnCheckStart(ctx, netHash, net.BlockCount())
	paths, err := EnumeratePaths(net)
	observability.Engine().OnCheckComplete(ctx, netHash, len(paths), time.Since(start), err)
	if err != nil {
		return nil, err
	}

	r.Logger.Debug("checked topology",
		"blocks", net.BlockCount(),
		"paths", len(paths),
		"duration", time.Since(start))

	return paths, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
