// Package worker runs a Backend over a stream of read containers with one
// goroutine per worker slot. Each slot prepares its own model once, runs
// reads sequentially and releases the model when it exits.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"basecaller/internal/backend"
	"basecaller/internal/device"
	"basecaller/internal/errs"
	"basecaller/internal/signal"
	"basecaller/pkg/types"
)

var zlog = zerolog.Nop()

// SetLogger installs a structured logger used by the pool.
func SetLogger(l zerolog.Logger) { zlog = l }

// Loader turns a read container path into a normalized signal.
type Loader func(path string) (signal.Sample, error)

// Slot lifecycle states reported by Status.
const (
	StatePending = "pending"
	StateReady   = "ready"
	StateClosed  = "closed"
	StateFailed  = "failed"
)

// Pool states reported by Status.
const (
	PoolIdle    = "idle"
	PoolRunning = "running"
	PoolDone    = "done"
)

// Result is the outcome of one read. Err is set when the read could not be
// loaded or run; the pool keeps going.
type Result struct {
	Path    string
	Slot    int
	Device  device.Device
	Sample  signal.Sample
	Weights backend.Weights
	Err     error
}

// Summary renders r without the weights.
func (r Result) Summary() types.ReadResult {
	out := types.ReadResult{
		Path:    r.Path,
		Samples: len(r.Sample.Signal),
		Device:  r.Device.String(),
	}
	if r.Sample.HasReadID {
		out.ReadID = r.Sample.ReadID
	}
	if r.Err != nil {
		out.Error = r.Err.Error()
		out.ErrorKind = errs.KindOf(r.Err).String()
		return out
	}
	out.Rows = r.Weights.Trans.Rows
	out.TransCols = r.Weights.Trans.Cols
	if r.Weights.Mod != nil {
		out.ModCols = r.Weights.Mod.Cols
	}
	return out
}

type slotStatus struct {
	dev      device.Device
	state    string
	reads    uint64
	failures uint64
	lastErr  string
}

// Pool drives one Backend. A Pool runs at most once.
type Pool struct {
	b         backend.Backend
	load      Loader
	nCanState int

	mu      sync.Mutex
	state   string
	runID   string
	slots   []slotStatus
	started time.Time
}

// Option adjusts a Pool.
type Option func(*Pool)

// WithLoader replaces signal.Load.
func WithLoader(l Loader) Option { return func(p *Pool) { p.load = l } }

// WithCanonicalStates splits undivided trained model output after n
// columns.
func WithCanonicalStates(n int) Option { return func(p *Pool) { p.nCanState = n } }

// New returns a pool over b's worker assignment.
func New(b backend.Backend, opts ...Option) *Pool {
	p := &Pool{
		b:     b,
		load:  func(path string) (signal.Sample, error) { return signal.Load(path) },
		state: PoolIdle,
	}
	for _, o := range opts {
		o(p)
	}
	assign := b.Assignment()
	p.slots = make([]slotStatus, len(assign))
	for i, d := range assign {
		p.slots[i] = slotStatus{dev: d, state: StatePending}
	}
	return p
}

// Run starts one goroutine per worker slot and feeds them from paths until
// paths is closed or ctx is done. Results are sent to out, which Run never
// closes. A worker that cannot be prepared stops the pool and its error is
// returned. Cancellation is observed between reads.
func (p *Pool) Run(ctx context.Context, paths <-chan string, out chan<- Result) error {
	p.mu.Lock()
	if p.state != PoolIdle {
		p.mu.Unlock()
		return errs.New(errs.KindInternal, "Worker pool already started.")
	}
	p.state = PoolRunning
	p.runID = uuid.NewString()
	p.started = time.Now()
	log := zlog.With().Str("run_id", p.runID).Logger()
	p.mu.Unlock()
	defer p.setPoolState(PoolDone)
	log.Info().Int("workers", len(p.slots)).Msg("pool started")

	g, ctx := errgroup.WithContext(ctx)
	for i, d := range p.b.Assignment() {
		i, d := i, d
		g.Go(func() error { return p.runSlot(ctx, log, i, d, paths, out) })
	}
	err := g.Wait()
	log.Info().Err(err).Msg("pool finished")
	return err
}

func (p *Pool) runSlot(ctx context.Context, log zerolog.Logger, slot int, d device.Device, paths <-chan string, out chan<- Result) error {
	// Device contexts are per thread.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	w, err := p.b.PrepWorker(d)
	if err != nil {
		p.slotFailed(slot, err)
		log.Error().Err(err).Int("slot", slot).Str("device", d.String()).Msg("prepare worker")
		return fmt.Errorf("prepare worker %d on %s: %w", slot, d, err)
	}
	defer func() {
		if err := w.Close(); err != nil {
			log.Warn().Err(err).Int("slot", slot).Msg("close worker")
		}
		p.setSlotState(slot, StateClosed)
	}()
	p.setSlotState(slot, StateReady)
	log.Debug().Int("slot", slot).Str("device", w.Device().String()).Msg("worker ready")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case path, ok := <-paths:
			if !ok {
				return nil
			}
			res := p.process(log, w, slot, path)
			select {
			case out <- res:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}

func (p *Pool) process(log zerolog.Logger, w backend.Worker, slot int, path string) Result {
	res := Result{Path: path, Slot: slot, Device: w.Device()}
	res.Sample, res.Err = p.load(path)
	if res.Err == nil {
		res.Weights, res.Err = w.RunModel(res.Sample.Signal, p.nCanState)
	}
	p.record(slot, res.Err)
	if res.Err != nil {
		log.Warn().Err(res.Err).Str("path", path).Str("kind", errs.KindOf(res.Err).String()).Msg("read failed")
	}
	return res
}

func (p *Pool) record(slot int, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	s := &p.slots[slot]
	s.reads++
	if err != nil {
		s.failures++
		s.lastErr = err.Error()
	}
}

func (p *Pool) setSlotState(slot int, state string) {
	p.mu.Lock()
	p.slots[slot].state = state
	p.mu.Unlock()
}

func (p *Pool) slotFailed(slot int, err error) {
	p.mu.Lock()
	p.slots[slot].state = StateFailed
	p.slots[slot].lastErr = err.Error()
	p.mu.Unlock()
}

func (p *Pool) setPoolState(state string) {
	p.mu.Lock()
	p.state = state
	p.mu.Unlock()
}
