package main

import (
	"flag"
	"strings"
	"testing"

	"github.com/banshee-data/lifegrid/internal/version"
)

// TestRulesetFlag verifies the --ruleset flag exists and has the correct
// default value.
func TestRulesetFlag(t *testing.T) {
	// The flag is defined in the main package's var block.
	// We verify it exists and has the expected default.
	if ruleset == nil {
		t.Fatal("ruleset flag not defined")
	}

	if *ruleset != "mixed" {
		t.Errorf("expected ruleset default to be mixed, got %q", *ruleset)
	}
}

// TestGenerationsFlag verifies the --generations flag exists and has the
// correct default value.
func TestGenerationsFlag(t *testing.T) {
	if generations == nil {
		t.Fatal("generations flag not defined")
	}

	if *generations != 100 {
		t.Errorf("expected generations default to be 100, got %d", *generations)
	}
}

// TestRandomBoardFlags verifies the flags that shape a randomly seeded board
// have the expected defaults.
func TestRandomBoardFlags(t *testing.T) {
	if width == nil || height == nil || seed == nil || density == nil {
		t.Fatal("random board flags not defined")
	}

	if *width != 40 {
		t.Errorf("expected width default to be 40, got %d", *width)
	}
	if *height != 20 {
		t.Errorf("expected height default to be 20, got %d", *height)
	}
	if *seed != 0 {
		t.Errorf("expected seed default to be 0, got %d", *seed)
	}
	if *density != 0.3 {
		t.Errorf("expected density default to be 0.3, got %v", *density)
	}
}

// TestOptionalOutputFlags verifies the monitor and plot flags default to
// disabled.
func TestOptionalOutputFlags(t *testing.T) {
	if listen == nil || chartDir == nil {
		t.Fatal("output flags not defined")
	}

	if *listen != "" {
		t.Errorf("expected listen default to be empty, got %q", *listen)
	}
	if *chartDir != "" {
		t.Errorf("expected chart-dir default to be empty, got %q", *chartDir)
	}
}

// TestDelayFlag verifies the --delay flag exists and defaults to full speed.
func TestDelayFlag(t *testing.T) {
	if delay == nil {
		t.Fatal("delay flag not defined")
	}

	if *delay != 0 {
		t.Errorf("expected delay default to be 0, got %v", *delay)
	}
}

// TestVersionFlag verifies the --version flag exists and that the banner
// carries the build metadata.
func TestVersionFlag(t *testing.T) {
	if showVersion == nil {
		t.Fatal("version flag not defined")
	}
	if *showVersion {
		t.Error("expected version default to be false")
	}

	banner := versionString()
	if !strings.Contains(banner, "lifegrid") || !strings.Contains(banner, version.Version) {
		t.Errorf("version banner %q missing name or version", banner)
	}
}

// TestRenderCadenceCondition verifies the logic that decides when the board
// is rendered. This mirrors the conditions in lifegrid.go:
//
//	printEvery > 0 && generation%printEvery == 0    (during the run)
//	printEvery == 0 || generation%printEvery != 0   (final board)
func TestRenderCadenceCondition(t *testing.T) {
	tests := []struct {
		name       string
		printEvery int
		generation int
		wantDuring bool
		wantFinal  bool
	}{
		{
			name:       "on cadence - rendered during, not again at end",
			printEvery: 10,
			generation: 10,
			wantDuring: true,
			wantFinal:  false,
		},
		{
			name:       "off cadence - final render catches up",
			printEvery: 10,
			generation: 5,
			wantDuring: false,
			wantFinal:  true,
		},
		{
			name:       "zero cadence - only the final render",
			printEvery: 0,
			generation: 7,
			wantDuring: false,
			wantFinal:  true,
		},
		{
			name:       "every generation - no extra final render",
			printEvery: 1,
			generation: 3,
			wantDuring: true,
			wantFinal:  false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// Simulate the conditions from lifegrid.go
			during := tc.printEvery > 0 && tc.generation%tc.printEvery == 0
			final := tc.printEvery == 0 || tc.generation%tc.printEvery != 0

			if during != tc.wantDuring {
				t.Errorf("during = %v, want %v", during, tc.wantDuring)
			}
			if final != tc.wantFinal {
				t.Errorf("final = %v, want %v", final, tc.wantFinal)
			}
		})
	}
}

// TestFlagParsing verifies that the flags can be parsed correctly.
// This uses a separate FlagSet to avoid polluting the global flags.
func TestFlagParsing(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		wantRuleset string
		wantWorkers int
	}{
		{
			name:        "flags not set",
			args:        []string{},
			wantRuleset: "mixed",
			wantWorkers: 1,
		},
		{
			name:        "ruleset set explicitly",
			args:        []string{"--ruleset=fredkin"},
			wantRuleset: "fredkin",
			wantWorkers: 1,
		},
		{
			name:        "workers set explicitly",
			args:        []string{"--workers=4"},
			wantRuleset: "mixed",
			wantWorkers: 4,
		},
		{
			name:        "both set",
			args:        []string{"--ruleset=conway", "--workers=8"},
			wantRuleset: "conway",
			wantWorkers: 8,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fs := flag.NewFlagSet("test", flag.ContinueOnError)
			rulesetFlag := fs.String("ruleset", "mixed", "Board dialect")
			workersFlag := fs.Int("workers", 1, "Goroutines per evolution step")

			err := fs.Parse(tc.args)
			if err != nil {
				t.Fatalf("failed to parse flags: %v", err)
			}

			if *rulesetFlag != tc.wantRuleset {
				t.Errorf("ruleset = %q, want %q", *rulesetFlag, tc.wantRuleset)
			}
			if *workersFlag != tc.wantWorkers {
				t.Errorf("workers = %d, want %d", *workersFlag, tc.wantWorkers)
			}
		})
	}
}
