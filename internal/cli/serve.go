package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/signalgrid/voltpath/pkg/cache"
	"github.com/signalgrid/voltpath/pkg/calc"
	"github.com/signalgrid/voltpath/pkg/catalog"
	vperrors "github.com/signalgrid/voltpath/pkg/errors"
	"github.com/signalgrid/voltpath/pkg/netdef"
	"github.com/signalgrid/voltpath/pkg/store"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr        string // listen address
	catalogPath string // equipment catalog TOML file
	redisAddr   string // Redis address for shared result caching
	noCache     bool   // disable result caching
	mongoURI    string // MongoDB URI for the shared network store
	mongoDB     string // MongoDB database name
}

// serveCommand creates the serve command running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{addr: ":8080", mongoDB: "voltpath"}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the voltpath HTTP API.

Endpoints:
  POST /api/v1/calc      Solve a network definition and return the result
  GET  /api/v1/networks  List stored networks
  GET  /healthz          Liveness probe

The catalog is loaded once at startup; every calc request is solved
against it. With --redis-addr results are cached in Redis so multiple
instances share one cache.

Examples:
  voltpath serve --catalog equipment.toml
  voltpath serve -c equipment.toml --addr :9000 --redis-addr localhost:6379`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVarP(&opts.catalogPath, "catalog", "c", "", "equipment catalog file (TOML)")
	cmd.Flags().StringVar(&opts.redisAddr, "redis-addr", "", "Redis address for shared result caching")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable result caching")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo-uri", "", "MongoDB URI for the shared network store")
	cmd.Flags().StringVar(&opts.mongoDB, "mongo-db", opts.mongoDB, "MongoDB database name")
	_ = cmd.MarkFlagRequired("catalog")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts *serveOpts) error {
	cat, err := loadCatalog(opts.catalogPath)
	if err != nil {
		return err
	}

	cc, err := c.serveCache(ctx, opts)
	if err != nil {
		return err
	}
	runner := calc.NewRunner(cc, nil, c.Logger)
	defer runner.Close()

	st, err := c.serveStore(ctx, opts)
	if err != nil {
		return err
	}
	defer st.Close()

	srv := &http.Server{
		Addr:              opts.addr,
		Handler:           newAPIHandler(runner, cat, st),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("listening", "addr", opts.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		c.Logger.Info("shut down")
		return ctx.Err()
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// serveCache picks the server-side result cache: Redis when an address is
// given, the local file cache otherwise.
func (c *CLI) serveCache(ctx context.Context, opts *serveOpts) (cache.Cache, error) {
	if opts.noCache {
		return cache.NewNullCache(), nil
	}
	if opts.redisAddr != "" {
		return cache.NewRedisCache(ctx, cache.RedisConfig{Addr: opts.redisAddr})
	}
	return newCache(false)
}

// serveStore picks the network store backing GET /api/v1/networks.
func (c *CLI) serveStore(ctx context.Context, opts *serveOpts) (store.Store, error) {
	if opts.mongoURI != "" {
		return store.NewMongoStore(ctx, store.MongoConfig{URI: opts.mongoURI, Database: opts.mongoDB})
	}
	dir, err := dataDir()
	if err != nil {
		return nil, err
	}
	return store.NewFileStore(dir)
}

// =============================================================================
// HTTP Handlers
// =============================================================================

// calcRequest is the body of POST /api/v1/calc.
type calcRequest struct {
	Network netdef.Document `json:"network"`
	MaxDrop float64         `json:"max_drop,omitempty"`
	Refresh bool            `json:"refresh,omitempty"`
}

// apiError is the JSON error envelope.
type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// newAPIHandler builds the chi router serving the API.
func newAPIHandler(runner *calc.Runner, cat *catalog.Catalog, st store.Store) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/calc", handleCalc(runner, cat))
		r.Get("/networks", handleListNetworks(st))
		r.Get("/networks/{name}", handleShowNetwork(st))
	})

	return r
}

func handleCalc(runner *calc.Runner, cat *catalog.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		var body calcRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, vperrors.Wrap(vperrors.ErrCodeInvalidFormat, err, "decode request"))
			return
		}

		net, err := netdef.ToNetwork(body.Network, cat)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}

		result, err := runner.Execute(req.Context(), net, cat, calc.Options{
			MaxDrop: body.MaxDrop,
			Refresh: body.Refresh,
		})
		if err != nil {
			status := http.StatusInternalServerError
			if vperrors.IsModelingError(err) {
				status = http.StatusUnprocessableEntity
			}
			writeError(w, status, err)
			return
		}

		writeJSON(w, http.StatusOK, result)
	}
}

func handleListNetworks(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		infos, err := st.List(req.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, infos)
	}
}

func handleShowNetwork(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		doc, err := st.Load(req.Context(), chi.URLParam(req, "name"))
		if err != nil {
			status := http.StatusInternalServerError
			switch vperrors.GetCode(err) {
			case vperrors.ErrCodeNetworkNotFound, vperrors.ErrCodeNotFound:
				status = http.StatusNotFound
			case vperrors.ErrCodeInvalidName:
				status = http.StatusBadRequest
			}
			writeError(w, status, err)
			return
		}
		writeJSON(w, http.StatusOK, doc)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, apiError{
		Code:    string(vperrors.GetCode(err)),
		Message: fmt.Sprintf("%v", err),
	})
}
