package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
)

var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

const usage = `Usage: tweetsgen [flags] <seed> <number of sentences> <corpus path> [number of words to read]
A negative seed wraps around to a large unsigned seed.`

// cliOptions holds the parsed command line.
type cliOptions struct {
	configPath string
	serve      bool
	addr       string
	version    bool
	args       []string
}

func parseFlags(args []string, output io.Writer) (*cliOptions, error) {
	opts := &cliOptions{}
	fs := flag.NewFlagSet("tweetsgen", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		_, _ = fmt.Fprintln(output, usage)
		fs.PrintDefaults()
	}
	fs.StringVar(&opts.configPath, "config", "./tweetsgen.json", "Path to the JSON config file")
	fs.BoolVar(&opts.serve, "serve", false, "Serve generated tweets over HTTP instead of printing them")
	fs.StringVar(&opts.addr, "addr", "", "Address for the HTTP API (overrides the config file)")
	fs.BoolVar(&opts.version, "version", false, "Print version information and exit")

	// A negative seed looks like a flag, so flag parsing stops before it.
	flagArgs, rest := args, []string(nil)
	for i, arg := range args {
		if isNegativeNumber(arg) {
			flagArgs, rest = args[:i], args[i:]
			break
		}
	}
	if err := fs.Parse(flagArgs); err != nil {
		return nil, err
	}
	opts.args = append(append([]string(nil), fs.Args()...), rest...)
	return opts, nil
}

func isNegativeNumber(s string) bool {
	if !strings.HasPrefix(s, "-") {
		return false
	}
	_, err := strconv.ParseInt(s, 10, 64)
	return err == nil
}

// parseSeed parses an unsigned seed. Negative values are accepted and
// converted with two's complement wrap-around, so -1 is the largest seed.
func parseSeed(s string) (uint64, error) {
	if strings.HasPrefix(s, "-") {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, err
		}
		return uint64(n), nil
	}
	return strconv.ParseUint(s, 10, 64)
}

// applyArgs overrides the config with the positional arguments
// <seed> <count> <path> [words_to_read]. No arguments leaves it untouched.
func applyArgs(config *Config, args []string) error {
	if len(args) == 0 {
		return nil
	}
	if len(args) < 3 || len(args) > 4 {
		return fmt.Errorf("expected 3 or 4 arguments, got %d", len(args))
	}

	seed, err := parseSeed(args[0])
	if err != nil {
		return fmt.Errorf("invalid seed %q: %w", args[0], err)
	}
	count, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid number of sentences %q: %w", args[1], err)
	}
	if count < 0 {
		return fmt.Errorf("number of sentences must not be negative, got %d", count)
	}

	config.Generator.Seed = seed
	config.Generator.SentenceCount = count
	config.Corpus.Path = args[2]

	if len(args) == 4 {
		limit, err := strconv.Atoi(args[3])
		if err != nil {
			return fmt.Errorf("invalid number of words to read %q: %w", args[3], err)
		}
		config.Generator.TokenLimit = limit
	}
	return nil
}

func newLogger(w io.Writer, level string) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: parseLogLevel(level)}))
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run is the whole program minus the process exit, and returns the exit code.
func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}
	if opts.version {
		_, _ = fmt.Fprintf(stdout, "tweetsgen %s (commit %s, built %s)\n", Version, Commit, BuildDate)
		return 0
	}

	config, err := LoadConfig(opts.configPath)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if err = applyArgs(config, opts.args); err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n%s\n", err, usage)
		return 1
	}
	if opts.addr != "" {
		config.Server.ApiAddr = opts.addr
	}
	if config.Corpus.Path == "" {
		_, _ = fmt.Fprintf(stderr, "Error: no corpus path given\n%s\n", usage)
		return 1
	}

	logger := newLogger(stderr, config.Server.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := newApp(ctx, config, logger)
	if err != nil {
		logger.Error("Failed to start", "error", err)
		return 1
	}

	if opts.serve {
		err = app.serve(ctx)
	} else {
		err = app.writeTweets(stdout, config.Generator.Seed, config.Generator.SentenceCount)
	}
	if err != nil {
		logger.Error("tweetsgen failed", "error", err)
		return 1
	}
	return 0
}
