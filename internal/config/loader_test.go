package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func intp(v int) *int { return &v }

func TestLoadYAML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.yaml", `trained_model: /models/m.checkpoint
devices: ["0", "cuda:1"]
num_proc: 4
chunk_size: 1000
chunk_overlap: 0
max_concur_chunks: 200
reads_dir: /data/reads
recursive: true
mod_split: 40
`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := Config{
		TrainedModel:    "/models/m.checkpoint",
		Devices:         []string{"0", "cuda:1"},
		NumProc:         4,
		ChunkSize:       intp(1000),
		ChunkOverlap:    intp(0),
		MaxConcurChunks: intp(200),
		ReadsDir:        "/data/reads",
		Recursive:       true,
		ModSplit:        40,
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("cfg (-want +got):\n%s", diff)
	}
}

func TestLoadJSON(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.json", `{"compiled_model":"r941_min_high","num_proc":2,"no_scale":true,"log_level":"debug"}`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.CompiledModel != "r941_min_high" || cfg.NumProc != 2 || !cfg.NoScale || cfg.LogLevel != "debug" {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
	if cfg.ChunkSize != nil || cfg.ChunkOverlap != nil {
		t.Fatalf("absent chunk params must stay nil: %+v", cfg)
	}
}

func TestLoadTOML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.toml", "trained_model=\"/m\"\ndevices=[\"0\"]\nchunk_size=500\nchunk_overlap=50\nmax_concur_chunks=8\nmetrics_addr=\":9100\"\n")
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.TrainedModel != "/m" || *cfg.ChunkSize != 500 || *cfg.ChunkOverlap != 50 || *cfg.MaxConcurChunks != 8 || cfg.MetricsAddr != ":9100" {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(""); err == nil {
		t.Fatalf("expected error on empty path")
	}
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.txt", "not supported")
	if _, err := Load(p); err == nil {
		t.Fatalf("expected unsupported extension error")
	}
}

func TestLoad_NonexistentFile(t *testing.T) {
	if _, err := Load("/definitely/not/a/real/file-12345.yaml"); err == nil {
		t.Fatalf("expected error for nonexistent file")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "bad.yaml", "num_proc: [1, 2\n")
	if _, err := Load(p); err == nil {
		t.Fatalf("expected YAML unmarshal error")
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "bad.json", `{ "num_proc": 2, "devices": }`)
	if _, err := Load(p); err == nil {
		t.Fatalf("expected JSON unmarshal error")
	}
}

func TestLoad_InvalidTOML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "bad.toml", "num_proc=2\ntrained_model\n")
	if _, err := Load(p); err == nil {
		t.Fatalf("expected TOML unmarshal error")
	}
}
