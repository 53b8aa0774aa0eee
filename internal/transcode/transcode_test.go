package transcode

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"base94/basen"
	"base94/internal/cache"
)

func newMemoryCache(t *testing.T) *cache.Cache {
	t.Helper()
	c, err := cache.New(16, 0, nil)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()

	for name, tc := range map[string]*Transcoder{
		"uncached": New(basen.Default, nil),
		"cached":   New(basen.Default, newMemoryCache(t)),
	} {
		t.Run(name, func(t *testing.T) {
			data := []byte("Hello, World!")
			for _, base := range []int{2, 16, 94} {
				// Twice, so the second pass is served by the cache.
				for range 2 {
					enc, err := tc.Encode(ctx, data, base)
					if err != nil {
						t.Fatal(err)
					}
					if want := basen.Encode(data, base); enc != want {
						t.Fatalf("Encode = %q, want %q", enc, want)
					}

					dec, err := tc.Decode(ctx, []byte(enc), base)
					if err != nil {
						t.Fatal(err)
					}
					if diff := cmp.Diff(data, dec); diff != "" {
						t.Fatalf("Decode (-want +got):\n%s", diff)
					}
				}
			}
		})
	}
}

func TestCachedResultIsCopied(t *testing.T) {
	ctx := context.Background()
	tc := New(basen.Default, newMemoryCache(t))

	first, err := tc.Decode(ctx, []byte("cNclJ$"), 94)
	if err != nil {
		t.Fatal(err)
	}
	first[0] = 'X'

	second, err := tc.Decode(ctx, []byte("cNclJ$"), 94)
	if err != nil {
		t.Fatal(err)
	}
	if string(second) != "Hello" {
		t.Fatalf("cached value modified: %q", second)
	}
}

func TestBaseValidation(t *testing.T) {
	ctx := context.Background()
	tc := New(basen.MustAlphabet(basen.DefaultSymbols[:16]), nil)

	for _, base := range []int{0, 1, 17, 94} {
		if _, err := tc.Encode(ctx, []byte{1}, base); !errors.Is(err, basen.ErrInvalidBase) {
			t.Fatalf("Encode base %d: err = %v", base, err)
		}
		if _, err := tc.Decode(ctx, []byte("1"), base); !errors.Is(err, basen.ErrInvalidBase) {
			t.Fatalf("Decode base %d: err = %v", base, err)
		}
	}
}

func TestDecodeErrors(t *testing.T) {
	ctx := context.Background()
	tc := New(basen.Default, newMemoryCache(t))

	if _, err := tc.Decode(ctx, []byte{'a', 0xff}, 94); !errors.Is(err, ErrInvalidUTF8) {
		t.Fatalf("invalid UTF-8: err = %v", err)
	}

	_, err := tc.Decode(ctx, []byte("ab cd"), 94)
	var ice *basen.InvalidCharacterError
	if !errors.As(err, &ice) || ice.Char != ' ' || ice.Pos != 2 {
		t.Fatalf("invalid character: err = %v", err)
	}
}

func TestRun(t *testing.T) {
	ctx := context.Background()
	tc := New(basen.Default, nil)

	out, err := tc.Run(ctx, OpEncode, []byte("Hello"), 94)
	if err != nil || string(out) != "cNclJ$" {
		t.Fatalf("encode = %q, %v", out, err)
	}

	out, err = tc.Run(ctx, OpDecode, out, 94)
	if err != nil || string(out) != "Hello" {
		t.Fatalf("decode = %q, %v", out, err)
	}

	if _, err := tc.Run(ctx, "compress", nil, 94); err == nil {
		t.Fatal("expected error for unknown operation")
	}
}

func TestCallRecovers(t *testing.T) {
	boom := errors.New("boom")
	_, err := call(OpEncode, func() ([]byte, error) { panic(boom) })
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
}
