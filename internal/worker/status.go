package worker

import (
	"time"

	"basecaller/internal/backend"
	"basecaller/pkg/types"
)

// Status returns a snapshot of the pool for /status.
func (p *Pool) Status() types.StatusResponse {
	info := backend.Describe(p.b)
	p.mu.Lock()
	defer p.mu.Unlock()
	now := time.Now()
	resp := types.StatusResponse{
		State:          p.state,
		RunID:          p.runID,
		Model:          &info,
		Workers:        make([]types.WorkerStatus, len(p.slots)),
		ServerTimeUnix: now.Unix(),
	}
	if !p.started.IsZero() {
		resp.UptimeSeconds = int64(now.Sub(p.started).Seconds())
	}
	for i, s := range p.slots {
		resp.Workers[i] = types.WorkerStatus{
			Slot:      i,
			Device:    s.dev.String(),
			State:     s.state,
			Reads:     s.reads,
			Failures:  s.failures,
			LastError: s.lastErr,
		}
		resp.ReadsTotal += s.reads
		resp.FailuresTotal += s.failures
	}
	return resp
}

// Ready reports whether every slot has prepared its worker.
func (p *Pool) Ready() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.slots) == 0 {
		return false
	}
	for _, s := range p.slots {
		if s.state != StateReady {
			return false
		}
	}
	return true
}

// Feed sends paths on the returned channel and closes it when done or when
// done is closed.
func Feed(done <-chan struct{}, paths []string) <-chan string {
	ch := make(chan string)
	go func() {
		defer close(ch)
		for _, p := range paths {
			select {
			case ch <- p:
			case <-done:
				return
			}
		}
	}()
	return ch
}
