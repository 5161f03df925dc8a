// Package bench runs the sequential-versus-shuffled copy benchmark.
//
// A run copies a payload from a source buffer to a destination buffer
// twice. The sequential phase does it in a single copy. The random phase
// copies the same bytes chunk by chunk, visiting the chunks in shuffled
// order. Each phase is timed once; optionally the destination is checked
// against the payload after each copy.
package bench

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/calvinalkan/memcopy-bench/pkg/chunk"
	"github.com/calvinalkan/memcopy-bench/pkg/content"
	"github.com/calvinalkan/memcopy-bench/pkg/rawmem"
)

// Options configures a [Runner]. The zero value is valid.
type Options struct {
	// Logger receives state transitions at debug level and release
	// failures at warn level. Nil discards everything.
	Logger *slog.Logger

	// Now is the clock used to time the phases. Nil means [time.Now].
	Now func() time.Time

	// Rand drives the chunk partition. Nil means a PCG generator seeded
	// from the runtime's random source.
	Rand *rand.Rand
}

// Runner executes benchmark runs against one allocator.
//
// A Runner is not safe for concurrent use.
type Runner struct {
	alloc rawmem.Allocator
	log   *slog.Logger
	now   func() time.Time
	rng   *rand.Rand
	state State

	// afterCopy runs between a phase's copy and its verification.
	afterCopy func(Phase, *rawmem.Buffer)
}

// NewRunner returns a runner that allocates its buffers from alloc.
func NewRunner(alloc rawmem.Allocator, opts Options) *Runner {
	r := &Runner{
		alloc: alloc,
		log:   opts.Logger,
		now:   opts.Now,
		rng:   opts.Rand,
	}

	if r.log == nil {
		r.log = slog.New(slog.DiscardHandler)
	}

	if r.now == nil {
		r.now = time.Now
	}

	if r.rng == nil {
		r.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	return r
}

// State returns the state the last run reached.
func (r *Runner) State() State {
	return r.state
}

// Run performs one benchmark run.
//
// The partition is computed before anything is allocated, so an invalid
// MaxChunkSize fails with chunk.ErrInvalidArgument without touching the
// allocator. Once buffers exist they are released exactly once on every
// path; release failures are joined into the returned error.
//
// Possible errors:
//   - [ErrInvalidConfig]: config out of range
//   - chunk.ErrInvalidArgument: MaxChunkSize outside [1, TotalLength]
//   - rawmem.ErrAllocation: a buffer could not be allocated
//   - [ErrVerification]: the destination did not match the payload
func (r *Runner) Run(cfg Config) (result Result, err error) {
	r.enter(StateInit)

	err = cfg.Validate()
	if err != nil {
		return Result{}, err
	}

	chunks, err := chunk.Partition(cfg.TotalLength, cfg.MaxChunkSize, r.rng)
	if err != nil {
		return Result{}, fmt.Errorf("partition: %w", err)
	}

	src, dst, err := r.allocatePair(cfg.TotalLength)
	if err != nil {
		return Result{}, err
	}

	defer func() {
		releaseErr := r.releasePair(src, dst)
		r.enter(StateReleased)

		if releaseErr != nil {
			err = errors.Join(err, releaseErr)
		}

		if err != nil {
			result = Result{}

			return
		}

		r.enter(StateReported)
	}()

	r.log.Debug("buffers",
		slog.String("source", fmt.Sprintf("%#x", src.Addr())),
		slog.String("destination", fmt.Sprintf("%#x", dst.Addr())),
		slog.Int("bytes", cfg.TotalLength))

	r.enter(StateAllocated)

	result.Sequential, err = r.sequentialPhase(cfg, src, dst)
	if err != nil {
		return Result{}, err
	}

	// All effects of the sequential phase happen before the random
	// phase's writes begin.
	rawmem.Fence()

	result.Random, err = r.randomPhase(cfg, chunks, src, dst)
	if err != nil {
		return Result{}, err
	}

	result.Chunks = len(chunks)

	r.log.Debug("run complete",
		slog.Duration("sequential", result.Sequential),
		slog.Duration("random", result.Random),
		slog.Int("chunks", result.Chunks),
		slog.Int("bytes", cfg.TotalLength))

	return result, nil
}

func (r *Runner) sequentialPhase(cfg Config, src, dst *rawmem.Buffer) (time.Duration, error) {
	payload, err := r.writePayload(src, cfg.TotalLength)
	if err != nil {
		return 0, err
	}

	r.enter(StateSequentialWritten)

	start := r.now()
	rawmem.Copy(src, 0, dst, 0, cfg.TotalLength)
	elapsed := r.now().Sub(start)

	r.enter(StateSequentialCopied)

	err = r.check(cfg, PhaseSequential, dst, payload)
	if err != nil {
		return 0, err
	}

	r.enter(StateSequentialVerified)

	return elapsed, nil
}

func (r *Runner) randomPhase(cfg Config, chunks []chunk.Chunk, src, dst *rawmem.Buffer) (time.Duration, error) {
	payload, err := r.writePayload(src, cfg.TotalLength)
	if err != nil {
		return 0, err
	}

	r.enter(StateRandomWritten)

	start := r.now()
	for _, c := range chunks {
		rawmem.Copy(src, c.Offset, dst, c.Offset, c.Size)
	}
	elapsed := r.now().Sub(start)

	r.enter(StateRandomCopied)

	err = r.check(cfg, PhaseRandom, dst, payload)
	if err != nil {
		return 0, err
	}

	r.enter(StateRandomVerified)

	return elapsed, nil
}

// writePayload fills src with fresh random text and returns the text.
func (r *Runner) writePayload(src *rawmem.Buffer, length int) (string, error) {
	payload, err := content.RandomText(length)
	if err != nil {
		return "", fmt.Errorf("generate payload: %w", err)
	}

	content.EncodeNarrow(src, payload)

	return payload, nil
}

func (r *Runner) check(cfg Config, phase Phase, dst *rawmem.Buffer, payload string) error {
	if r.afterCopy != nil {
		r.afterCopy(phase, dst)
	}

	if !cfg.VerifyWrites {
		return nil
	}

	return verify(phase, payload, content.Decode(dst, len(payload)))
}

// allocatePair allocates the source and then the destination. If the
// destination fails, the source is released before returning.
func (r *Runner) allocatePair(size int) (*rawmem.Buffer, *rawmem.Buffer, error) {
	src, err := r.alloc.Allocate(size)
	if err != nil {
		return nil, nil, fmt.Errorf("allocate source: %w", err)
	}

	dst, err := r.alloc.Allocate(size)
	if err != nil {
		releaseErr := r.alloc.Release(src)
		if releaseErr != nil {
			r.log.Warn("release source after failed allocation", slog.Any("error", releaseErr))
		}

		return nil, nil, errors.Join(fmt.Errorf("allocate destination: %w", err), releaseErr)
	}

	return src, dst, nil
}

// releasePair releases both buffers, even if the first release fails.
func (r *Runner) releasePair(src, dst *rawmem.Buffer) error {
	var errs []error

	for _, b := range []struct {
		name string
		buf  *rawmem.Buffer
	}{{"source", src}, {"destination", dst}} {
		err := r.alloc.Release(b.buf)
		if err != nil {
			r.log.Warn("release buffer", slog.String("buffer", b.name), slog.Any("error", err))
			errs = append(errs, fmt.Errorf("release %s: %w", b.name, err))
		}
	}

	return errors.Join(errs...)
}

func (r *Runner) enter(s State) {
	r.state = s
	r.log.Debug("state", slog.String("state", s.String()))
}
