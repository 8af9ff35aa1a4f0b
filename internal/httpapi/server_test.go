package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"basecaller/internal/errs"
	"basecaller/pkg/types"
)

type mockService struct {
	info     types.ModelInfo
	modelErr error
	status   types.StatusResponse
	ready    bool
}

func (m *mockService) Model() (types.ModelInfo, error) { return m.info, m.modelErr }
func (m *mockService) Status() types.StatusResponse    { return m.status }
func (m *mockService) Ready() bool                     { return m.ready }

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestModelHandler(t *testing.T) {
	svc := &mockService{info: types.ModelInfo{Backend: "trained", OutputAlphabet: "AmCGT", NMods: 1, Devices: []string{"cuda:0"}}}
	w := get(t, NewMux(svc), "/model")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "application/json") {
		t.Fatalf("content-type=%s", ct)
	}
	var body types.ModelInfo
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("json: %v", err)
	}
	if body.OutputAlphabet != "AmCGT" || body.NMods != 1 {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestModelHandler_ErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{errs.New(errs.KindDependency, "trained basecalling runtime not built into this binary"), http.StatusServiceUnavailable},
		{errs.New(errs.KindUnsupported, "Naive modified base flip-flop models are not supported."), http.StatusUnprocessableEntity},
		{errs.New(errs.KindConfig, "Invalid model specification."), http.StatusUnprocessableEntity},
		{errs.New(errs.KindInternal, "Invalid model type."), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		w := get(t, NewMux(&mockService{modelErr: tc.err}), "/model")
		if w.Code != tc.want {
			t.Fatalf("%v: status=%d want %d", tc.err, w.Code, tc.want)
		}
		var body types.ErrorResponse
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("json: %v", err)
		}
		if body.Code != tc.want || body.Error != tc.err.Error() {
			t.Fatalf("unexpected error body: %+v", body)
		}
	}
}

func TestStatusHandler(t *testing.T) {
	svc := &mockService{status: types.StatusResponse{State: "running", ReadsTotal: 10, Workers: []types.WorkerStatus{{Slot: 0, Device: "cpu", State: "ready"}}}}
	w := get(t, NewMux(svc), "/status")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	var body types.StatusResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("json: %v", err)
	}
	if body.ReadsTotal != 10 || len(body.Workers) != 1 || body.Workers[0].State != "ready" {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestHealthz(t *testing.T) {
	w := get(t, NewMux(&mockService{}), "/healthz")
	if w.Code != http.StatusOK || w.Body.String() != "ok" {
		t.Fatalf("status=%d body=%q", w.Code, w.Body.String())
	}
	if w.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Fatalf("missing security header")
	}
}

func TestReadyz(t *testing.T) {
	w := get(t, NewMux(&mockService{ready: true}), "/readyz")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
}

func TestReadyz_NotReady(t *testing.T) {
	w := get(t, NewMux(&mockService{ready: false}), "/readyz")
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status=%d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "loading") {
		t.Fatalf("body=%q", w.Body.String())
	}
}

func TestCORS(t *testing.T) {
	SetCORSOptions(true, []string{"https://example.org"}, nil, nil)
	t.Cleanup(func() { SetCORSOptions(false, nil, nil, nil) })
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Origin", "https://example.org")
	w := httptest.NewRecorder()
	NewMux(&mockService{}).ServeHTTP(w, req)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://example.org" {
		t.Fatalf("allow-origin=%q", got)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	w := httptest.NewRecorder()
	NewMux(&mockService{}).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/model", nil))
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status=%d", w.Code)
	}
}
