// Command brief prints a pre-match strategy briefing for one qualification
// match and, when the match is already in the scouting log, what actually
// happened.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	app "github.com/okian/scoutbrief/internal/app"
	"github.com/okian/scoutbrief/internal/config"
	"github.com/okian/scoutbrief/internal/domain/model"
	"github.com/okian/scoutbrief/internal/domain/roster"
	"github.com/okian/scoutbrief/pkg/logger"
)

// Exit codes.
const (
	exitOK    = 0
	exitFatal = 1
	exitUsage = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run parses args, builds the briefing and prints it to stdout. Logs go to stderr.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("brief", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		match    = fs.Int("match", 0, "Match number to brief (required)")
		alliance = fs.String("alliance", "blue", "Alliance to brief: red, blue, r or b")
	)
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if *match < 1 {
		fmt.Fprintln(stderr, "brief: -match must be a positive integer")
		fs.Usage()
		return exitUsage
	}
	switch strings.ToLower(strings.TrimSpace(*alliance)) {
	case "red", "r", "blue", "b":
	default:
		fmt.Fprintf(stderr, "brief: -alliance must be one of red, blue, r, b (got %q)\n", *alliance)
		return exitUsage
	}

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintln(stderr, "failed to load config: "+err.Error())
		return exitFatal
	}
	if err := logger.Init(logger.WithWriter(stderr), logger.WithJSON(cfg.LogJSON)); err != nil {
		fmt.Fprintln(stderr, "failed to initialize logging: "+err.Error())
		return exitFatal
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		_ = logger.SetLevelString("info")
	}
	l := logger.Get()

	svc, err := app.NewFromConfig(ctx, cfg, l)
	if err != nil {
		l.Error(ctx, "failed to build service", logger.Error(err))
		return exitFatal
	}
	if err := svc.Start(ctx); err != nil {
		l.Error(ctx, "failed to start service", logger.Error(err))
		return exitFatal
	}
	defer svc.Stop()

	a := model.ParseAlliance(*alliance)
	fmt.Fprintf(stdout, "--- Simulating Strategy for Match %d (%s Alliance) ---\n", *match, a.Upper())

	b, err := svc.BuildBriefing(ctx, *match, *alliance)
	if err != nil {
		printFailure(stdout, *match, err)
		l.Error(ctx, "briefing failed", logger.Int("match", *match), logger.Error(err))
		return exitFatal
	}

	printBriefing(stdout, b)
	return exitOK
}

// printFailure tells the user why no briefing was produced.
func printFailure(w io.Writer, match int, err error) {
	if errors.Is(err, roster.ErrRosterUnavailable) {
		fmt.Fprintf(w, "No data found for match %d in CSV or TBA.\n", match)
		return
	}
	fmt.Fprintf(w, "Could not build a briefing for match %d: %v\n", match, err)
}

func printBriefing(w io.Writer, b model.Briefing) {
	if b.FallbackUsed {
		fmt.Fprintf(w, "TBA lookup failed. Inferred teams from CSV for Match %d.\n", b.MatchNumber)
	}
	fmt.Fprintf(w, "Red Alliance: %s\n", strings.Join(b.Roster.Red, ", "))
	fmt.Fprintf(w, "Blue Alliance: %s\n", strings.Join(b.Roster.Blue, ", "))

	fmt.Fprintln(w, "\n=== AI Strategy Advisor Recommendation ===")
	fmt.Fprintln(w, b.Recommendation)

	fmt.Fprintln(w, "\n--- Actual Result (Oracle) ---")
	if len(b.Actual) == 0 {
		fmt.Fprintln(w, "Match has not happened relative to dataset.")
		return
	}
	for _, o := range b.Actual {
		fmt.Fprintf(w, "Team %s: Scored %s L4 Coral, Processed %s Algae.\n",
			o.TeamID, num(o.CoralL4), num(o.AlgaeProcessed))
	}
}

// num prints whole counts without a decimal point.
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
