package main

import (
	"time"

	"basecaller/internal/backend"
	"basecaller/internal/worker"
	"basecaller/pkg/types"
)

// service exposes a backend and an optional pool to the HTTP layer. A
// backend that failed to build is reported through Model and Ready.
type service struct {
	b    backend.Backend
	err  error
	pool *worker.Pool
}

func (s *service) Model() (types.ModelInfo, error) {
	if s.err != nil {
		return types.ModelInfo{}, s.err
	}
	return backend.Describe(s.b), nil
}

func (s *service) Status() types.StatusResponse {
	if s.pool != nil {
		return s.pool.Status()
	}
	resp := types.StatusResponse{State: worker.PoolIdle, ServerTimeUnix: time.Now().Unix()}
	if s.err == nil {
		info := backend.Describe(s.b)
		resp.Model = &info
	}
	return resp
}

// Ready reports whether the backend was built and, while a pool is
// running, whether every worker slot is prepared.
func (s *service) Ready() bool {
	if s.err != nil || s.b == nil {
		return false
	}
	if s.pool == nil || s.pool.Status().State != worker.PoolRunning {
		return true
	}
	return s.pool.Ready()
}
