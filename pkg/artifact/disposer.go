package artifact

import (
	"errors"
	"io/fs"
	"os"
	"sync"
	"time"

	"github.com/arnavsurve/stepshot/pkg/types"
)

// Disposer deletes artifacts a fixed delay after they are scheduled. Close
// runs every pending deletion immediately and waits for in-flight ones.
type Disposer struct {
	delay  time.Duration
	logger types.Logger

	mu      sync.Mutex
	pending map[uint64]*batch
	nextID  uint64
	closed  bool
	wg      sync.WaitGroup
}

type batch struct {
	timer     *time.Timer
	artifacts []types.Artifact
}

// NewDisposer returns a Disposer with the given delay. A non-positive delay
// keeps every artifact on disk.
func NewDisposer(delay time.Duration, logger types.Logger) *Disposer {
	if logger == nil {
		logger = types.NopLogger()
	}
	return &Disposer{
		delay:   delay,
		logger:  logger,
		pending: make(map[uint64]*batch),
	}
}

func (d *Disposer) Delay() time.Duration {
	return d.delay
}

// Schedule queues artifacts for deletion after the delay. After Close the
// artifacts are deleted right away.
func (d *Disposer) Schedule(artifacts []types.Artifact) {
	if len(artifacts) == 0 {
		return
	}
	if d.delay <= 0 {
		d.logger.Debug().Int("artifacts", len(artifacts)).Msg("Disposal disabled, keeping artifacts")
		return
	}

	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		d.dispose(artifacts)
		return
	}
	id := d.nextID
	d.nextID++
	b := &batch{artifacts: append([]types.Artifact(nil), artifacts...)}
	d.pending[id] = b
	d.wg.Add(1)
	b.timer = time.AfterFunc(d.delay, func() { d.fire(id) })
	d.mu.Unlock()

	d.logger.Debug().Int("artifacts", len(artifacts)).Dur("delay", d.delay).Msg("Scheduled artifact disposal")
}

// Pending reports how many scheduled batches have not been disposed of yet.
func (d *Disposer) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pending)
}

// fire runs a batch whose timer expired, unless Close already claimed it.
func (d *Disposer) fire(id uint64) {
	d.mu.Lock()
	b, ok := d.pending[id]
	delete(d.pending, id)
	d.mu.Unlock()
	if !ok {
		return
	}
	defer d.wg.Done()
	d.dispose(b.artifacts)
}

// Close flushes every pending batch and waits until all deletions finished.
func (d *Disposer) Close() error {
	d.mu.Lock()
	d.closed = true
	claimed := d.pending
	d.pending = make(map[uint64]*batch)
	d.mu.Unlock()

	for _, b := range claimed {
		b.timer.Stop()
		d.dispose(b.artifacts)
		d.wg.Done()
	}
	d.wg.Wait()
	return nil
}

// dispose removes each file. Missing files are fine; other errors are only logged.
func (d *Disposer) dispose(artifacts []types.Artifact) {
	for _, a := range artifacts {
		if a.StorageLocation == "" {
			continue
		}
		err := os.Remove(a.StorageLocation)
		switch {
		case err == nil:
			recordDisposal("removed")
		case errors.Is(err, fs.ErrNotExist):
			recordDisposal("missing")
			d.logger.Debug().Str("artifact", a.Reference).Msg("Artifact already gone")
		default:
			recordDisposal("error")
			d.logger.Warn().Err(err).Str("artifact", a.Reference).Msg("Failed to delete artifact")
		}
	}
}
