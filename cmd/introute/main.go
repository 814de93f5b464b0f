// ABOUTME: CLI entry point for introute: one-shot and interactive intent classification
// ABOUTME: Parses flags, loads config and phrase packs, wires the engine and profile store

package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/mauromedda/intent-router-go/internal/config"
	"github.com/mauromedda/intent-router-go/internal/engine"
	"github.com/mauromedda/intent-router-go/internal/eventbus"
	"github.com/mauromedda/intent-router-go/internal/learning"
	irlog "github.com/mauromedda/intent-router-go/internal/log"
	"github.com/mauromedda/intent-router-go/internal/profile"
	"github.com/mauromedda/intent-router-go/internal/registry"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	// Intercept listing subcommands before flag parsing.
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "commands", "modes":
			if err := runListing(os.Args[1]); err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
				os.Exit(1)
			}
			os.Exit(0)
		}
	}

	args := parseFlags()

	if args.version {
		fmt.Printf("introute %s (%s) built %s\n", version, commit, date)
		os.Exit(0)
	}

	if err := run(args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args cliArgs) error {
	if args.verbose {
		irlog.SetLevel(slog.LevelDebug)
	}

	cfg, err := config.Load(args.config)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	reg, err := buildRegistry(args.packs)
	if err != nil {
		return err
	}

	store, err := openStore(args)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	}

	eng, err := engine.New(cfg, reg, store)
	if err != nil {
		return fmt.Errorf("building engine: %w", err)
	}
	defer eng.Close()

	if rest := args.remaining(); len(rest) > 0 {
		return classifyOnce(eng, args, strings.Join(rest, " "))
	}
	return repl(eng, args)
}

func buildRegistry(packsDir string) (*registry.Registry, error) {
	reg, err := registry.BuiltIn()
	if err != nil {
		return nil, fmt.Errorf("loading registry: %w", err)
	}
	if packsDir == "" {
		return reg, nil
	}
	packs, err := registry.LoadPacks(packsDir)
	if err != nil {
		return nil, fmt.Errorf("loading phrase packs: %w", err)
	}
	if len(packs) == 0 {
		return reg, nil
	}
	reg, err = reg.Apply(packs...)
	if err != nil {
		return nil, fmt.Errorf("applying phrase packs: %w", err)
	}
	return reg, nil
}

// openStore returns nil when persistence is disabled; the engine then
// learns in memory only.
func openStore(args cliArgs) (profile.Store, error) {
	if args.noStore {
		return nil, nil
	}
	dir := args.dataDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			irlog.Warn("no home directory, learning in memory only: %v", err)
			return nil, nil
		}
		dir = filepath.Join(home, ".introute")
	}
	store, err := profile.OpenBadger(dir)
	if err != nil {
		// Persistence failure degrades, never blocks classification.
		irlog.Warn("profile store unavailable, learning in memory only: %v", err)
		return nil, nil
	}
	return store, nil
}

func classifyOnce(eng *engine.Engine, args cliArgs, text string) error {
	res := eng.Classify(context.Background(), engine.Request{UserID: args.user, Text: text})
	if args.jsonOut {
		return printJSON(res)
	}
	fmt.Print(renderResult(res))
	return nil
}

func repl(eng *engine.Engine, args cliArgs) error {
	ctx := context.Background()
	in := bufio.NewScanner(os.Stdin)
	fmt.Println("introute: type a request, or press Ctrl-D to quit")

	// Mode transitions arrive over the event bus, not the result.
	unsub := eng.SubscribeModeChanged(func(ev eventbus.ModeChanged) {
		if !args.jsonOut {
			fmt.Print(renderModeChange(ev))
		}
	})
	defer unsub()

	for {
		fmt.Print("> ")
		if !in.Scan() {
			fmt.Println()
			return in.Err()
		}
		res := eng.Classify(ctx, engine.Request{UserID: args.user, Text: in.Text()})

		if args.jsonOut {
			if err := printJSON(res); err != nil {
				return err
			}
			continue
		}
		fmt.Print(renderResult(res))

		if res.Status == engine.StatusAmbiguous && res.Prompt != nil {
			if err := disambiguate(ctx, eng, args.user, res, in); err != nil {
				return err
			}
		}
	}
}

// disambiguate runs one round-trip: show choices, read the reply, record
// the pick as accepted feedback. An unmatched reply re-enters the
// pipeline with the previous front-runner excluded.
func disambiguate(ctx context.Context, eng *engine.Engine, user string, res engine.Result, in *bufio.Scanner) error {
	fmt.Print("which one? ")
	if !in.Scan() {
		return in.Err()
	}
	reply := in.Text()

	if id, ok := eng.ResolveReply(*res.Prompt, reply); ok {
		fmt.Print(renderPick(res.Prompt, id))
		return eng.RecordOutcome(ctx, user, res.RequestID, res.Prompt.Namespace, id, learning.OutcomeAccepted, "")
	}

	retry := eng.Classify(ctx, engine.Request{
		UserID:          user,
		Text:            reply,
		ExcludeCommands: []string{res.Prompt.Choices[0].ID},
	})
	fmt.Print(renderResult(retry))
	return nil
}

func runListing(what string) error {
	reg, err := registry.BuiltIn()
	if err != nil {
		return err
	}
	switch what {
	case "commands":
		fmt.Print(renderCommands(reg.Commands()))
	case "modes":
		fmt.Print(renderModes(reg.Modes()))
	}
	return nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
