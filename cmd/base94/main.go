// Command base94 encodes files as text in any base from 2 to 94 and
// decodes them back.
//
// Usage:
//
//	base94 encode <input-file> <output-file> [--base N | -b N] [-config FILE]
//	base94 decode <input-file> <output-file> [--base N | -b N] [-config FILE]
//	base94 batch -op encode|decode -out DIR [-base N] [-jobs N] [-config FILE] FILE...
//
// The base defaults to 94, or to codec.base from the configuration file.
// Decoding must use the same base and alphabet as encoding; a mismatch is
// not detected and produces wrong bytes.
//
// The configuration is read from -config, $BASE94_CONFIG or base94.yaml:
//
//	log:
//	  level: info      # debug, info, warn, error
//	  format: text     # text or json
//	  dir: ""          # also write logs to a file in this directory
//	codec:
//	  base: 94
//	  alphabet: ""     # 2 to 94 distinct printable ASCII symbols
//	cache:
//	  driver: none     # none, memory, bolt or postgres
//	  file: cache.db   # bolt
//	  dsn: ""          # postgres
//	  entries: 128
//	  maxEntryBytes: 0
//	  timeout: 5s
//	batch:
//	  jobs: 0          # 0 means one per CPU
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bobg/subcmd/v2"

	"base94/internal/cache"
	"base94/internal/ctxlog"
	"base94/internal/rec"
	"base94/internal/transcode"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	args, err := normalizeArgs(args)
	if err != nil {
		return err
	}
	return subcmd.Run(ctx, maincmd{}, args)
}

type maincmd struct{}

func (maincmd) Subcmds() subcmd.Map {
	return subcmd.Commands(
		"encode", doEncode, "encode a binary file as text", subcmd.Params(
			"-base", subcmd.Int, baseFromConfig, "base between 2 and 94 (default from config, 94)",
			"-config", subcmd.String, "", "configuration file",
			"input", subcmd.String, "", "file to encode",
			"output", subcmd.String, "", "file to write the text to",
		),
		"decode", doDecode, "decode a text file back to binary", subcmd.Params(
			"-base", subcmd.Int, baseFromConfig, "base used to encode the input (default from config, 94)",
			"-config", subcmd.String, "", "configuration file",
			"input", subcmd.String, "", "file to decode",
			"output", subcmd.String, "", "file to write the bytes to",
		),
		"batch", doBatch, "encode or decode many files concurrently", subcmd.Params(
			"-op", subcmd.String, transcode.OpEncode, "encode or decode",
			"-base", subcmd.Int, baseFromConfig, "base between 2 and 94 (default from config, 94)",
			"-jobs", subcmd.Int, 0, "files processed at once (default from config, one per CPU)",
			"-out", subcmd.String, "", "output directory",
			"-config", subcmd.String, "", "configuration file",
		),
	)
}

// app holds what every subcommand needs once the configuration is loaded.
type app struct {
	config Config
	tc     *transcode.Transcoder
	cache  *cache.Cache
}

func newApp(ctx context.Context, configFile string) (context.Context, *app, error) {
	c, err := LoadConfig(ctx, configFile)
	if err != nil {
		return ctx, nil, fmt.Errorf("config: %w", err)
	}

	ctx = ctxlog.Setup(ctx, "base94", c.Log)

	alphabet, err := c.Codec.Alphabet()
	if err != nil {
		return ctx, nil, fmt.Errorf("config: codec: %w", err)
	}
	if err := alphabet.CheckBase(c.Codec.Base); err != nil {
		return ctx, nil, fmt.Errorf("config: codec: %w", err)
	}

	cch, err := cache.Open(ctx, c.Cache)
	if err != nil {
		return ctx, nil, fmt.Errorf("config: %w", err)
	}

	return ctx, &app{
		config: c,
		tc:     transcode.New(alphabet, cch),
		cache:  cch,
	}, nil
}

func (a *app) close(ctx context.Context) {
	if a.cache != nil {
		ctxlog.Close(ctx, "cache", a.cache)
	}
}

// baseFromConfig is the -base default; any other value, 0 included, is
// validated as given.
const baseFromConfig = -1

// base resolves the -base flag against the configuration and validates it.
func (a *app) base(flag int) (int, error) {
	base := flag
	if base == baseFromConfig {
		base = a.config.Codec.Base
	}
	if err := a.tc.Alphabet().CheckBase(base); err != nil {
		return 0, err
	}
	return base, nil
}

func doEncode(ctx context.Context, base int, configFile, input, output string, _ []string) error {
	return transcodeFile(ctx, transcode.OpEncode, base, configFile, input, output)
}

func doDecode(ctx context.Context, base int, configFile, input, output string, _ []string) error {
	return transcodeFile(ctx, transcode.OpDecode, base, configFile, input, output)
}

func transcodeFile(ctx context.Context, op string, base int, configFile, input, output string) (err error) {
	defer rec.Error(&err)

	ctx, a, err := newApp(ctx, configFile)
	if err != nil {
		return err
	}
	defer a.close(ctx)

	base, err = a.base(base)
	if err != nil {
		return err
	}

	logger := ctxlog.Get(ctx)

	data, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	out, err := a.tc.Run(ctx, op, data, base)
	if err != nil {
		return fmt.Errorf("%s %q: %w", op, input, err)
	}

	err = os.WriteFile(output, out, 0644)
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	logger.Info("done", "op", op, "base", base, "input", input, "output", output, "in", len(data), "out", len(out))
	return nil
}
