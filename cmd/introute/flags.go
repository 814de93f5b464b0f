// ABOUTME: CLI flag parsing using stdlib flag package
// ABOUTME: Supports --config, --user, --data-dir, --packs, --json, --verbose, --version

package main

import "flag"

type cliArgs struct {
	config  string
	user    string
	dataDir string
	packs   string
	noStore bool
	jsonOut bool
	verbose bool
	version bool
}

func parseFlags() cliArgs {
	var args cliArgs

	flag.StringVar(&args.config, "config", "", "Path to config YAML (defaults apply when empty)")
	flag.StringVar(&args.user, "user", "default", "User id for learned weights")
	flag.StringVar(&args.dataDir, "data-dir", "", "Profile store directory (defaults to ~/.introute)")
	flag.StringVar(&args.packs, "packs", "", "Directory of phrase-pack YAML overlays")
	flag.BoolVar(&args.noStore, "no-store", false, "Disable persistence, learn in memory only")
	flag.BoolVar(&args.jsonOut, "json", false, "Print results as JSON")
	flag.BoolVar(&args.verbose, "verbose", false, "Enable debug logging")
	flag.BoolVar(&args.version, "version", false, "Show version and exit")

	flag.Parse()
	return args
}

// remaining returns the non-flag command-line arguments.
func (a cliArgs) remaining() []string {
	return flag.Args()
}
