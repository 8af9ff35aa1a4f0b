package errs

import (
	"errors"
	"fmt"
	"testing"
)

func TestMegaErrorClassification(t *testing.T) {
	cause := errors.New("no such file")
	err := Wrap(KindIO, "Error opening read file", cause)
	if !IsIO(err) {
		t.Fatalf("expected io kind, got %v", KindOf(err))
	}
	if IsConfig(err) || IsUnsupported(err) {
		t.Fatalf("unexpected classification for %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("cause not reachable through errors.Is")
	}
	if got := Message(err); got != "Error opening read file" {
		t.Fatalf("message=%q", got)
	}
	if got := err.Error(); got != "Error opening read file: no such file" {
		t.Fatalf("error string=%q", got)
	}
}

func TestKindOfWrappedChain(t *testing.T) {
	inner := New(KindUnsupported, "Naive modified base flip-flop models are not supported.")
	outer := fmt.Errorf("construct backend: %w", inner)
	if !IsUnsupported(outer) {
		t.Fatalf("kind lost through fmt wrapping")
	}
	if KindOf(errors.New("plain")) != 0 {
		t.Fatalf("foreign error must have zero kind")
	}
	if IsKind(nil, KindIO) {
		t.Fatalf("nil error has no kind")
	}
	if Message(errors.New("plain")) != "plain" || Message(nil) != "" {
		t.Fatalf("message fallback broken")
	}
}

func TestKindString(t *testing.T) {
	if KindUnsupported.String() != "unsupported model configuration" {
		t.Fatalf("got %q", KindUnsupported.String())
	}
	if Kind(99).String() != "unknown" {
		t.Fatalf("got %q", Kind(99).String())
	}
}
