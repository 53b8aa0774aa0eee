// Package transcode runs basen encodings for the command line tools,
// adding base validation, UTF-8 checks, caching and logging around the
// pure codec.
package transcode

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"base94/basen"
	"base94/internal/cache"
	"base94/internal/ctxlog"
	"base94/internal/rec"
)

const (
	OpEncode = "encode"
	OpDecode = "decode"
)

var ErrInvalidUTF8 = errors.New("input is not valid UTF-8 text")

type Transcoder struct {
	alphabet *basen.Alphabet
	cache    *cache.Cache
}

// New returns a Transcoder for alphabet. cache may be nil.
func New(alphabet *basen.Alphabet, cache *cache.Cache) *Transcoder {
	if alphabet == nil {
		panic("transcode: alphabet is required")
	}
	return &Transcoder{
		alphabet: alphabet,
		cache:    cache,
	}
}

func (t *Transcoder) Alphabet() *basen.Alphabet {
	return t.alphabet
}

// Run applies op to input and returns the bytes to write out.
func (t *Transcoder) Run(ctx context.Context, op string, input []byte, base int) ([]byte, error) {
	switch op {
	case OpEncode:
		s, err := t.Encode(ctx, input, base)
		return []byte(s), err
	case OpDecode:
		return t.Decode(ctx, input, base)
	default:
		return nil, fmt.Errorf("unknown operation %q, want %s or %s", op, OpEncode, OpDecode)
	}
}

func (t *Transcoder) Encode(ctx context.Context, data []byte, base int) (string, error) {
	out, err := t.do(ctx, OpEncode, data, base, func() ([]byte, error) {
		return []byte(t.alphabet.Encode(data, base)), nil
	})
	return string(out), err
}

// Decode decodes text, which must be valid UTF-8.
func (t *Transcoder) Decode(ctx context.Context, text []byte, base int) ([]byte, error) {
	if !utf8.Valid(text) {
		return nil, ErrInvalidUTF8
	}

	return t.do(ctx, OpDecode, text, base, func() ([]byte, error) {
		return t.alphabet.Decode(string(text), base)
	})
}

func (t *Transcoder) do(ctx context.Context, op string, input []byte, base int, f func() ([]byte, error)) (out []byte, err error) {
	if err := t.alphabet.CheckBase(base); err != nil {
		return nil, err
	}

	ctx = ctxlog.With(ctx, "op", op, "base", base, "bytes", len(input))
	logger := ctxlog.Get(ctx)

	var key cache.Key
	if t.cache != nil {
		key = cache.NewKey(op, base, t.alphabet.String(), input)
		v, ok, err := t.cache.Get(ctx, key)
		if err != nil {
			logger.Warn("cache lookup failed", "key", key, "error", err)
		} else if ok {
			logger.Debug("cache hit", "key", key)
			return bytes.Clone(v), nil
		}
	}

	start := time.Now()
	out, err = call(op, f)
	if err != nil {
		return nil, err
	}
	logger.Debug("transcoded", "output", len(out), "duration", time.Since(start).String())

	if t.cache != nil {
		if err := t.cache.Put(ctx, key, out); err != nil {
			logger.Warn("cache store failed", "key", key, "error", err)
		}
	}

	return out, nil
}

func call(op string, f func() ([]byte, error)) (out []byte, err error) {
	defer rec.Wrap(&err, "%s: %w", op)
	return f()
}
