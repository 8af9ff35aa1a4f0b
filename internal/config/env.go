package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Environment variables that override file values when set.
const (
	EnvCompiledModel   = "BASECALLER_COMPILED_MODEL"
	EnvTrainedModel    = "BASECALLER_TRAINED_MODEL"
	EnvDevices         = "BASECALLER_DEVICES"
	EnvNumProc         = "BASECALLER_NUM_PROC"
	EnvChunkSize       = "BASECALLER_CHUNK_SIZE"
	EnvChunkOverlap    = "BASECALLER_CHUNK_OVERLAP"
	EnvMaxConcurChunks = "BASECALLER_MAX_CONCUR_CHUNKS"
	EnvReadsDir        = "BASECALLER_READS_DIR"
	EnvMetricsAddr     = "BASECALLER_METRICS_ADDR"
	EnvLogLevel        = "BASECALLER_LOG_LEVEL"
)

// Var returns the trimmed value of an environment variable with surrounding
// quotes removed.
func Var(key string) string {
	return strings.Trim(strings.TrimSpace(os.Getenv(key)), "\"'")
}

// ApplyEnv overrides cfg with any BASECALLER_* variables that are set.
// Devices are comma separated.
func ApplyEnv(cfg *Config) error {
	if s := Var(EnvCompiledModel); s != "" {
		cfg.CompiledModel = s
	}
	if s := Var(EnvTrainedModel); s != "" {
		cfg.TrainedModel = s
	}
	if s := Var(EnvDevices); s != "" {
		cfg.Devices = nil
		for _, d := range strings.Split(s, ",") {
			if d = strings.TrimSpace(d); d != "" {
				cfg.Devices = append(cfg.Devices, d)
			}
		}
	}
	if s := Var(EnvReadsDir); s != "" {
		cfg.ReadsDir = s
	}
	if s := Var(EnvMetricsAddr); s != "" {
		cfg.MetricsAddr = s
	}
	if s := Var(EnvLogLevel); s != "" {
		cfg.LogLevel = s
	}
	if n, ok, err := intVar(EnvNumProc); err != nil {
		return err
	} else if ok {
		cfg.NumProc = n
	}
	for key, dst := range map[string]**int{
		EnvChunkSize:       &cfg.ChunkSize,
		EnvChunkOverlap:    &cfg.ChunkOverlap,
		EnvMaxConcurChunks: &cfg.MaxConcurChunks,
	} {
		n, ok, err := intVar(key)
		if err != nil {
			return err
		}
		if ok {
			*dst = &n
		}
	}
	return nil
}

func intVar(key string) (int, bool, error) {
	s := Var(key)
	if s == "" {
		return 0, false, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false, fmt.Errorf("%s: invalid integer %q", key, s)
	}
	return n, true, nil
}
