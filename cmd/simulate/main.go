// Command simulate runs the Monte Carlo trade simulator from the
// terminal. Parameters come from flags, or from interactive prompts with
// -interactive, mirroring the historical CLI. Output is the classic
// console summary, or JSON with -json.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"strings"
	"syscall"

	"github.com/zerodeltainc/monte-carlo/internal/domain"
	"github.com/zerodeltainc/monte-carlo/internal/orchestrator"
	"github.com/zerodeltainc/monte-carlo/internal/reporting"
)

func main() {
	// Parse flags; percentage flags use percent units like the prompts
	// (5.0 means 5%), converted to fractions before validation.
	numTrials := flag.Int("trials", 1, "Number of trials")
	tradesPerTrial := flag.Int("trades", 50, "Simulated trades per trial")
	profitMin := flag.Float64("profit-min", 5.0, "Profit on winning trades - minimum %")
	profitMax := flag.Float64("profit-max", 25.0, "Profit on winning trades - maximum %")
	lossMin := flag.Float64("loss-min", 10.0, "Loss on losing trades - minimum %")
	lossMax := flag.Float64("loss-max", 25.0, "Loss on losing trades - maximum %")
	winPct := flag.Float64("win-pct", 75.0, "Win percentage")
	startingCapital := flag.Float64("capital", 100000.0, "Starting Capital $")
	overheadPct := flag.Float64("overhead-pct", 0.3, "Overhead Percent (commissions/slippage)")
	maBars := flag.Int("ma-bars", 30, "Moving average bars")
	seed := flag.Int64("seed", 42, "Base seed for trial randomness streams")

	interactive := flag.Bool("interactive", false, "Prompt for parameters instead of using flags")
	workers := flag.Int("workers", runtime.NumCPU(), "Concurrent trial workers")
	outputJSON := flag.Bool("json", false, "Output report as JSON")
	csvPath := flag.String("csv", "", "Write per-trial CSV to this path")
	verbose := flag.Bool("verbose", false, "Log pipeline phases")

	flag.Parse()

	logger := log.New(os.Stderr, "[simulate] ", log.LstdFlags)

	cfg := domain.SimulationConfig{
		NumTrials:           *numTrials,
		TradesPerTrial:      *tradesPerTrial,
		WinPctRange:         domain.PctRange{Min: *profitMin / 100, Max: *profitMax / 100},
		LossPctRange:        domain.PctRange{Min: *lossMin / 100, Max: *lossMax / 100},
		WinRate:             *winPct / 100,
		StartingCapital:     *startingCapital,
		OverheadPct:         *overheadPct / 100,
		MovingAverageWindow: *maBars,
		Seed:                *seed,
	}

	if *interactive {
		cfg = promptConfig(os.Stdin, os.Stdout, cfg)
	}

	// Reject malformed values before any simulation runs.
	if err := cfg.Validate(); err != nil {
		logger.Fatalf("configuration rejected: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Printf("received signal %v, cancelling", sig)
		cancel()
	}()

	engine := orchestrator.New(orchestrator.Options{Workers: *workers, Verbose: *verbose})

	run, err := engine.Run(ctx, cfg)
	if err != nil {
		logger.Fatalf("simulation failed: %v", err)
	}

	if *csvPath != "" {
		if err := os.WriteFile(*csvPath, []byte(reporting.RenderCSV(run.Batch.Trials)), 0o644); err != nil {
			logger.Fatalf("write csv: %v", err)
		}
		logger.Printf("wrote %s", *csvPath)
	}

	if *outputJSON {
		output, _ := json.MarshalIndent(run.Report, "", "  ")
		fmt.Println(string(output))
		return
	}

	fmt.Print(reporting.RenderText(run.Report))
	fmt.Println()
}

// promptConfig re-creates the interactive parameter prompts: each shows
// its default in brackets, empty input keeps it, invalid input falls
// back to the default with a notice.
func promptConfig(in *os.File, out *os.File, defaults domain.SimulationConfig) domain.SimulationConfig {
	r := bufio.NewReader(in)

	fmt.Fprintln(out, "\nPress Enter to use default values shown in brackets")
	fmt.Fprintln(out)

	cfg := defaults
	cfg.NumTrials = promptInt(r, out, "Number of trials", defaults.NumTrials)
	cfg.TradesPerTrial = promptInt(r, out, "Simulated trades per trial", defaults.TradesPerTrial)
	cfg.WinPctRange.Min = promptFloat(r, out, "Profit on winning trades - minimum %", defaults.WinPctRange.Min*100) / 100
	cfg.WinPctRange.Max = promptFloat(r, out, "Profit on winning trades - maximum %", defaults.WinPctRange.Max*100) / 100
	cfg.LossPctRange.Min = promptFloat(r, out, "Loss on losing trades - minimum %", defaults.LossPctRange.Min*100) / 100
	cfg.LossPctRange.Max = promptFloat(r, out, "Loss on losing trades - maximum %", defaults.LossPctRange.Max*100) / 100
	cfg.WinRate = promptFloat(r, out, "Win percentage", defaults.WinRate*100) / 100
	cfg.StartingCapital = promptFloat(r, out, "Starting Capital $", defaults.StartingCapital)
	cfg.OverheadPct = promptFloat(r, out, "Overhead Percent (commissions/slippage)", defaults.OverheadPct*100) / 100
	cfg.MovingAverageWindow = promptInt(r, out, "Moving average bars", defaults.MovingAverageWindow)
	return cfg
}

// promptFloat reads one float answer, falling back to the default.
func promptFloat(r *bufio.Reader, out *os.File, prompt string, def float64) float64 {
	fmt.Fprintf(out, "%s [%g]: ", prompt, def)
	line, err := r.ReadString('\n')
	if err != nil {
		return def
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return def
	}
	v, err := strconv.ParseFloat(line, 64)
	if err != nil {
		fmt.Fprintf(out, "Invalid input. Using default: %g\n", def)
		return def
	}
	return v
}

// promptInt reads one integer answer, falling back to the default.
func promptInt(r *bufio.Reader, out *os.File, prompt string, def int) int {
	fmt.Fprintf(out, "%s [%d]: ", prompt, def)
	line, err := r.ReadString('\n')
	if err != nil {
		return def
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return def
	}
	v, err := strconv.Atoi(line)
	if err != nil {
		fmt.Fprintf(out, "Invalid input. Using default: %d\n", def)
		return def
	}
	return v
}
