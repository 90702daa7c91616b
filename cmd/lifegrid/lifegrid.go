package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/banshee-data/lifegrid/internal/census"
	"github.com/banshee-data/lifegrid/internal/config"
	"github.com/banshee-data/lifegrid/internal/life"
	"github.com/banshee-data/lifegrid/internal/monitor"
	"github.com/banshee-data/lifegrid/internal/monitoring"
	"github.com/banshee-data/lifegrid/internal/timeutil"
	"github.com/banshee-data/lifegrid/internal/version"
)

var (
	boardFile   = flag.String("board", "", "Path to a board text file (empty seeds a random board)")
	width       = flag.Int("width", 40, "Width of the random board")
	height      = flag.Int("height", 20, "Height of the random board")
	seed        = flag.Int64("seed", 0, "RNG seed for the random board (0 uses the current time)")
	density     = flag.Float64("density", 0.3, "Live-cell fraction for the random board")
	generations = flag.Int("generations", 100, "Number of generations to run")
	printEvery  = flag.Int("print-every", 10, "Render the board every N generations (0 renders only the final board)")
	ruleset     = flag.String("ruleset", "mixed", "Board dialect: conway, fredkin, or mixed")
	workers     = flag.Int("workers", 1, "Goroutines used per evolution step")
	delay       = flag.Duration("delay", 0, "Pause between generations, e.g. 250ms (0 runs at full speed)")
	configPath  = flag.String("config", "", "Optional run config JSON file (explicit flags win)")
	listen      = flag.String("listen", "", "HTTP listen address for the monitor (empty runs headless)")
	chartDir    = flag.String("chart-dir", "", "Directory for the population PNG plot (empty disables)")
	showVersion = flag.Bool("version", false, "Print version information and exit")
)

var logf = monitoring.Prefixed("LifeGrid")

// runOptions are the fully resolved settings for one run.
type runOptions struct {
	generations int
	printEvery  int
	ruleset     life.Ruleset
	workers     int
	delay       time.Duration
	listen      string
	chartDir    string
}

// flagValues carries the raw flag inputs so that resolution can be tested
// without touching the global flag set.
type flagValues struct {
	generations int
	printEvery  int
	ruleset     string
	workers     int
	delay       time.Duration
	listen      string
	chartDir    string
}

func currentFlagValues() flagValues {
	return flagValues{
		generations: *generations,
		printEvery:  *printEvery,
		ruleset:     *ruleset,
		workers:     *workers,
		delay:       *delay,
		listen:      *listen,
		chartDir:    *chartDir,
	}
}

func versionString() string {
	return fmt.Sprintf("lifegrid %s (%s, built %s)", version.Version, version.GitSHA, version.BuildTime)
}

// setFlags reports which flags were given explicitly on the command line.
func setFlags() map[string]bool {
	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

// resolveOptions merges command-line flags with an optional config file.
// A flag explicitly set on the command line wins over the file value;
// otherwise the file value applies, and defaults cover the rest.
func resolveOptions(fv flagValues, set map[string]bool, cfg *config.RunConfig) (runOptions, error) {
	if cfg == nil {
		cfg = config.EmptyRunConfig()
	}

	opts := runOptions{
		generations: cfg.GetGenerations(),
		printEvery:  cfg.GetPrintEvery(),
		workers:     cfg.GetWorkers(),
		delay:       cfg.GetDelay(),
		listen:      cfg.GetListen(),
		chartDir:    cfg.GetChartDir(),
	}
	rulesetName := cfg.GetRuleset()

	if set["generations"] {
		opts.generations = fv.generations
	}
	if set["print-every"] {
		opts.printEvery = fv.printEvery
	}
	if set["workers"] {
		opts.workers = fv.workers
	}
	if set["delay"] {
		opts.delay = fv.delay
	}
	if set["listen"] {
		opts.listen = fv.listen
	}
	if set["chart-dir"] {
		opts.chartDir = fv.chartDir
	}
	if set["ruleset"] {
		rulesetName = fv.ruleset
	}

	rs, err := life.ParseRuleset(rulesetName)
	if err != nil {
		return runOptions{}, err
	}
	opts.ruleset = rs

	if opts.generations < 0 {
		return runOptions{}, fmt.Errorf("generations must be non-negative, got %d", opts.generations)
	}
	if opts.printEvery < 0 {
		return runOptions{}, fmt.Errorf("print-every must be non-negative, got %d", opts.printEvery)
	}
	if opts.workers < 1 {
		return runOptions{}, fmt.Errorf("workers must be at least 1, got %d", opts.workers)
	}
	if opts.delay < 0 {
		return runOptions{}, fmt.Errorf("delay must be non-negative, got %s", opts.delay)
	}

	return opts, nil
}

func newRNG(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
}

// randomBoard builds board text with roughly density live cells and parses
// it, so the grid starts out with an accurate population count.
func randomBoard(w, h int, density float64, rs life.Ruleset, rng *rand.Rand) (*life.Grid, error) {
	dead, live := byte('.'), byte('*')
	if rs == life.RulesetFredkin {
		dead, live = '-', '0'
	}

	var sb strings.Builder
	sb.Grow((w + 1) * h)
	for x := 0; x < h; x++ {
		for y := 0; y < w; y++ {
			if rng.Float64() < density {
				sb.WriteByte(live)
			} else {
				sb.WriteByte(dead)
			}
		}
		sb.WriteByte('\n')
	}

	return life.Parse(strings.NewReader(sb.String()), rs)
}

func loadBoard(path string, rs life.Ruleset) (*life.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open board file: %w", err)
	}
	defer f.Close()

	g, err := life.Parse(f, rs)
	if err != nil {
		return nil, fmt.Errorf("parse board %s: %w", path, err)
	}
	return g, nil
}

func publishSnapshot(store *monitor.Store, ledger *census.Ledger, runID string, g *life.Grid, capturedAt time.Time) {
	ledger.Record(g.Generation(), g.Population())
	store.Publish(monitor.Snapshot{
		RunID:      runID,
		Generation: g.Generation(),
		Population: g.Population(),
		Board:      g.String(),
		CapturedAt: capturedAt,
	})
}

// runSimulation drives the grid for the configured number of generations,
// publishing every generation and rendering to out on the print cadence.
func runSimulation(ctx context.Context, g *life.Grid, opts runOptions, out io.Writer, clk timeutil.Clock, store *monitor.Store, ledger *census.Ledger, runID string) {
	publishSnapshot(store, ledger, runID, g, clk.Now())
	if opts.printEvery > 0 {
		if err := g.Render(out); err != nil {
			logf("render failed: %v", err)
		}
	}

	for i := 0; i < opts.generations; i++ {
		select {
		case <-ctx.Done():
			logf("run interrupted at generation %d", g.Generation())
			return
		default:
		}

		if opts.delay > 0 {
			clk.Sleep(opts.delay)
		}

		g.EvolveAll()
		publishSnapshot(store, ledger, runID, g, clk.Now())

		if opts.printEvery > 0 && g.Generation()%opts.printEvery == 0 {
			if err := g.Render(out); err != nil {
				logf("render failed: %v", err)
			}
		}
	}

	// Final board, unless the cadence just rendered it.
	if opts.printEvery == 0 || g.Generation()%opts.printEvery != 0 {
		if err := g.Render(out); err != nil {
			logf("render failed: %v", err)
		}
	}
}

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Println(versionString())
		return
	}

	var cfg *config.RunConfig
	if *configPath != "" {
		loaded, err := config.LoadRunConfig(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config %s: %v", *configPath, err)
		}
		cfg = loaded
	}

	opts, err := resolveOptions(currentFlagValues(), setFlags(), cfg)
	if err != nil {
		log.Fatalf("Invalid options: %v", err)
	}

	runID := uuid.New().String()
	logf("starting run %s: %d generations, ruleset %s, %d workers",
		runID, opts.generations, opts.ruleset, opts.workers)

	var g *life.Grid
	if *boardFile != "" {
		g, err = loadBoard(*boardFile, opts.ruleset)
	} else {
		g, err = randomBoard(*width, *height, *density, opts.ruleset, newRNG(*seed))
	}
	if err != nil {
		log.Fatalf("Failed to build board: %v", err)
	}
	g.SetWorkers(opts.workers)
	logf("board ready: %dx%d, population %d", g.Width(), g.Height(), g.Population())

	ledger := census.NewLedger(runID)
	store := monitor.NewStore()

	var wg sync.WaitGroup
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Simulation routine. A headless run exits when this finishes; with
	// -listen set the monitor keeps serving until a signal arrives.
	wg.Add(1)
	go func() {
		defer wg.Done()
		runSimulation(ctx, g, opts, os.Stdout, timeutil.RealClock{}, store, ledger, runID)

		sum := ledger.Summary()
		logf("run %s finished: %d generations, mean population %.1f (stddev %.1f), peak %d at generation %d",
			runID, sum.Generations, sum.Mean, sum.StdDev, sum.Peak, sum.PeakGeneration)
		if sum.Extinct {
			logf("population went extinct")
		}

		if opts.chartDir != "" {
			path, err := ledger.SavePlot(opts.chartDir)
			if err != nil {
				logf("failed to save population plot: %v", err)
			} else {
				logf("population plot written to %s", path)
			}
		}
	}()

	// HTTP server goroutine
	if opts.listen != "" {
		srv := monitor.NewServer(store, ledger)
		mux := srv.ServeMux()
		srv.AttachDebugRoutes(mux)

		server := &http.Server{
			Addr:    opts.listen,
			Handler: monitor.LoggingMiddleware(mux),
		}

		wg.Add(1)
		go func() {
			defer wg.Done()

			// Start server in a goroutine so it doesn't block
			go func() {
				logf("starting HTTP server on %s", opts.listen)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatalf("failed to start server: %v", err)
				}
			}()

			// Wait for context cancellation to shut down server
			<-ctx.Done()
			logf("shutting down HTTP server...")

			// Create a shutdown context with a shorter timeout
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				logf("HTTP server shutdown error: %v", err)
				// Force close the server if graceful shutdown fails
				if err := server.Close(); err != nil {
					logf("HTTP server force close error: %v", err)
				}
			}

			logf("HTTP server routine stopped")
		}()
	}

	wg.Wait()
	logf("Graceful shutdown complete")
}
