package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"base94/internal/ctxlog"
	"base94/internal/rec"
	"base94/internal/transcode"
)

const encodedExt = ".basen"

func doBatch(ctx context.Context, op string, base, jobs int, outDir, configFile string, files []string) (err error) {
	defer rec.Error(&err)

	if op != transcode.OpEncode && op != transcode.OpDecode {
		return fmt.Errorf("-op must be %s or %s, got %q", transcode.OpEncode, transcode.OpDecode, op)
	}
	if outDir == "" {
		return fmt.Errorf("-out is required")
	}
	if len(files) == 0 {
		return fmt.Errorf("no input files")
	}

	inputs := make(map[string]string, len(files))
	for _, file := range files {
		inputs[filepath.Clean(file)] = file
	}

	outputs := make(map[string]string, len(files))
	for _, file := range files {
		dst := filepath.Join(outDir, outputName(op, file))
		if prev, ok := outputs[dst]; ok {
			return fmt.Errorf("%q and %q would both be written to %q", prev, file, dst)
		}
		if in, ok := inputs[dst]; ok {
			return fmt.Errorf("%q would overwrite input %q", file, in)
		}
		outputs[dst] = file
	}

	ctx, a, err := newApp(ctx, configFile)
	if err != nil {
		return err
	}
	defer a.close(ctx)

	base, err = a.base(base)
	if err != nil {
		return err
	}

	if jobs == 0 {
		jobs = a.config.Batch.Jobs
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	err = os.MkdirAll(outDir, 0755)
	if err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	logger := ctxlog.Get(ctx)
	logger.Info("batch started", "op", op, "base", base, "files", len(files), "jobs", jobs)

	var done atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for dst, src := range outputs {
		g.Go(func() (err error) {
			defer rec.Wrap(&err, "%s: %w", src)

			if err := gctx.Err(); err != nil {
				return err
			}

			data, err := os.ReadFile(src)
			if err != nil {
				return err
			}

			out, err := a.tc.Run(gctx, op, data, base)
			if err != nil {
				return err
			}

			err = os.WriteFile(dst, out, 0644)
			if err != nil {
				return err
			}

			done.Add(1)
			return nil
		})
	}

	err = g.Wait()
	logger.Info("batch finished", "done", done.Load(), "files", len(files))
	return err
}

// outputName is the base name an input is written to: encoding appends
// ".basen", decoding removes it (or appends ".bin" when absent).
func outputName(op, file string) string {
	name := filepath.Base(file)
	if op == transcode.OpEncode {
		return name + encodedExt
	}
	if trimmed, ok := strings.CutSuffix(name, encodedExt); ok && trimmed != "" {
		return trimmed
	}
	return name + ".bin"
}
