// Package selfcheck exhaustively verifies the numeral codec: every value in
// the domain must survive an encode/decode round trip, and every encoding
// must be accepted by the validator.
package selfcheck

import (
	"context"
	"fmt"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/bneradt/roman.brianneradt.com/internal/logging"
	"github.com/bneradt/roman.brianneradt.com/internal/roman"

	"golang.org/x/sync/errgroup"
)

// Check names.
const (
	CheckPlainRoundTrip    = "PLAIN_ROUNDTRIP"
	CheckExtendedRoundTrip = "EXTENDED_ROUNDTRIP"
	CheckValidEncoding     = "VALID_ENCODING"
)

// Status values for reports.
const (
	StatusPass = "pass"
	StatusFail = "fail"
)

const defaultChunkSize = 50_000

// Options tunes a run. Zero values pick defaults.
type Options struct {
	Workers   int // default GOMAXPROCS
	ChunkSize int // values per task
	// Max caps the extended range; 0 means roman.MaxValue.
	Max int
}

// Report summarizes a passing run.
type Report struct {
	Status   string        `json:"status"`
	Plain    int           `json:"plain_checked"`
	Extended int           `json:"extended_checked"`
	Workers  int           `json:"workers"`
	Duration time.Duration `json:"duration"`
}

// Failure describes the first value that broke a law.
type Failure struct {
	Check   string
	Value   int
	Encoded string
	Decoded int
}

func (f *Failure) Error() string {
	if f.Check == CheckValidEncoding {
		return fmt.Sprintf("%s: %q (encoding of %d) rejected by validator", f.Check, f.Encoded, f.Value)
	}
	return fmt.Sprintf("%s: %d encoded as %q decoded to %d", f.Check, f.Value, f.Encoded, f.Decoded)
}

// Run verifies both codecs. It returns the first *Failure found, or the
// context's error when cancelled.
func Run(ctx context.Context, opts Options) (*Report, error) {
	opts = withDefaults(opts)
	timer := logging.StartTimer(logging.CategorySelfCheck, "selfcheck.Run")
	start := time.Now()

	var plain, extended atomic.Int64
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(opts.Workers)

	for lo := roman.MinValue; lo <= roman.MaxPlain; lo += opts.ChunkSize {
		hi := min(lo+opts.ChunkSize-1, roman.MaxPlain)
		eg.Go(func() error {
			n, err := checkRange(egCtx, lo, hi, checkPlain)
			plain.Add(int64(n))
			return err
		})
	}
	for lo := roman.MinValue; lo <= opts.Max; lo += opts.ChunkSize {
		hi := min(lo+opts.ChunkSize-1, opts.Max)
		eg.Go(func() error {
			n, err := checkRange(egCtx, lo, hi, checkExtended)
			extended.Add(int64(n))
			return err
		})
	}

	err := eg.Wait()
	timer.StopWithInfo()
	if err == nil {
		// errgroup cancels egCtx itself; only the caller's ctx matters here.
		err = ctx.Err()
	}
	if err != nil {
		logging.SelfCheck("self check failed: %v", err)
		return nil, err
	}

	report := &Report{
		Status:   StatusPass,
		Plain:    int(plain.Load()),
		Extended: int(extended.Load()),
		Workers:  opts.Workers,
		Duration: time.Since(start),
	}
	logging.SelfCheck("self check passed: plain=%d extended=%d in %v", report.Plain, report.Extended, report.Duration)
	return report, nil
}

func withDefaults(opts Options) Options {
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = defaultChunkSize
	}
	if opts.Max <= 0 || opts.Max > roman.MaxValue {
		opts.Max = roman.MaxValue
	}
	return opts
}

// checkRange applies check to lo..hi, polling ctx every 1024 values.
func checkRange(ctx context.Context, lo, hi int, check func(int) *Failure) (int, error) {
	checked := 0
	for n := lo; n <= hi; n++ {
		if checked&1023 == 0 {
			if err := ctx.Err(); err != nil {
				return checked, err
			}
		}
		if f := check(n); f != nil {
			return checked, f
		}
		checked++
	}
	return checked, nil
}

func checkPlain(n int) *Failure {
	enc := roman.EncodePlain(n)
	if got := roman.Decode(enc); got != n {
		return &Failure{Check: CheckPlainRoundTrip, Value: n, Encoded: enc, Decoded: got}
	}
	return nil
}

func checkExtended(n int) *Failure {
	enc := roman.EncodeMarked(n)
	if got := roman.Decode(enc); got != n {
		return &Failure{Check: CheckExtendedRoundTrip, Value: n, Encoded: enc, Decoded: got}
	}
	if !roman.IsValid(enc) {
		return &Failure{Check: CheckValidEncoding, Value: n, Encoded: enc, Decoded: n}
	}
	return nil
}
