package server

import (
	"bytes"
	"encoding/json"
	"image/png"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/gogpu/prismal/internal/config"
)

func newTestServer() *Server {
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(config.ServerConfig{Addr: ":0", ReadTimeout: 5, WriteTimeout: 5}, config.Defaults(), quiet)
}

func do(t *testing.T, s *Server, req *http.Request) (*http.Response, []byte) {
	t.Helper()
	resp, err := s.App().Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", req.Method, req.URL, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, body
}

func get(t *testing.T, s *Server, target string) (*http.Response, []byte) {
	t.Helper()
	return do(t, s, httptest.NewRequest(http.MethodGet, target, nil))
}

func TestHealth(t *testing.T) {
	s := newTestServer()
	for path, want := range map[string]string{"/health/live": "alive", "/health/ready": "ready"} {
		resp, body := get(t, s, path)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("%s status = %d", path, resp.StatusCode)
		}
		var got map[string]string
		if err := json.Unmarshal(body, &got); err != nil || got["status"] != want {
			t.Errorf("%s body = %s", path, body)
		}
	}
}

func TestFormats(t *testing.T) {
	resp, body := get(t, newTestServer(), "/formats")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var got struct {
		Formats  []string `json:"formats"`
		Backends []string `json:"backends"`
	}
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatal(err)
	}
	for _, f := range []string{"bmp", "pdf", "png", "svg", "tiff", "txt"} {
		if !contains(got.Formats, f) {
			t.Errorf("formats %v missing %s", got.Formats, f)
		}
	}
}

func TestRenderSVG(t *testing.T) {
	resp, body := get(t, newTestServer(), "/render/svg?layers=3&seed=1&width=120&height=100&options=stroke-polygons,stroke-structure")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, body)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q", ct)
	}
	if n, err := strconv.Atoi(resp.Header.Get(HeaderPolygons)); err != nil || n == 0 {
		t.Errorf("%s = %q", HeaderPolygons, resp.Header.Get(HeaderPolygons))
	}
	if _, err := uuid.Parse(resp.Header.Get(HeaderRequestID)); err != nil {
		t.Errorf("%s = %q is not a uuid", HeaderRequestID, resp.Header.Get(HeaderRequestID))
	}
	if !bytes.Contains(body, []byte(`viewBox="0 0 120 100"`)) {
		t.Errorf("unexpected body:\n%s", body)
	}
}

func TestRenderPNG(t *testing.T) {
	resp, body := get(t, newTestServer(), "/render/png?width=64&height=48&seed=2")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, body)
	}
	img, err := png.Decode(bytes.NewReader(body))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 48 {
		t.Errorf("size = %v", b)
	}
}

func TestRenderDeterministicWithSeed(t *testing.T) {
	s := newTestServer()
	_, a := get(t, s, "/render/svg?seed=11&layers=4")
	_, b := get(t, s, "/render/svg?seed=11&layers=4")
	if !bytes.Equal(a, b) {
		t.Error("same seed produced different output")
	}
}

func TestRenderErrors(t *testing.T) {
	tests := []struct {
		target string
		status int
	}{
		{"/render/gif", http.StatusNotFound},
		{"/render/svg?layers=abc", http.StatusBadRequest},
		{"/render/svg?vertices=2", http.StatusBadRequest},
		{"/render/svg?width=99999", http.StatusBadRequest},
		{"/render/svg?layers=1000", http.StatusBadRequest},
		{"/render/svg?options=glitter", http.StatusBadRequest},
		{"/render/svg?stroke=ff0000", http.StatusBadRequest},
		{"/render/svg?layers=32&structure=200&vertices=200", http.StatusBadRequest},
		{"/render/svg?layers=60&options=replace-with-circles", http.StatusBadRequest},
		{"/render/txt?width=100&height=50&layers=1&scale=1e6", http.StatusBadRequest},
	}
	s := newTestServer()
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			resp, body := get(t, s, tt.target)
			if resp.StatusCode != tt.status {
				t.Fatalf("status = %d, want %d: %s", resp.StatusCode, tt.status, body)
			}
			var got map[string]string
			if err := json.Unmarshal(body, &got); err != nil || got["error"] == "" {
				t.Errorf("error body = %s", body)
			}
		})
	}
}

func TestEstimatePoints(t *testing.T) {
	tests := []struct {
		name string
		edit func(*config.Preset)
		want int64
	}{
		{"defaults", func(*config.Preset) {}, (1 + 6*15) * 6},
		{"single layer", func(p *config.Preset) { p.Layers = 1 }, 6},
		{"dense", func(p *config.Preset) {
			p.Layers, p.StructureVertices, p.PolygonVertices = 16, 100, 100
		}, (1 + 100*120) * 100},
		{"circles", func(p *config.Preset) {
			p.Options = []string{"replace-with-circles"}
		}, (1 + 6*15) * circlePoints},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := config.Defaults()
			tt.edit(&p)
			if got := EstimatePoints(p); got != tt.want {
				t.Errorf("EstimatePoints() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPointBudget(t *testing.T) {
	s := newTestServer()
	target := "/render/svg?width=100&height=100&layers=16&structure=100&vertices=100&scale=0.001"
	if resp, body := get(t, s, target); resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", resp.StatusCode, body)
	}

	s.SetLimits(Limits{MaxDimension: 4096, MaxLayers: 256})
	if resp, body := get(t, s, "/render/svg?width=50&height=50&layers=4&structure=20&vertices=20"); resp.StatusCode != http.StatusOK {
		t.Fatalf("unlimited status = %d: %s", resp.StatusCode, body)
	}
}

func TestRenderPost(t *testing.T) {
	s := newTestServer()
	preset := "layers: 2\nwidth: 50\nheight: 50\nseed: 4\noptions: [fill-polygons]\n"
	resp, body := do(t, s, httptest.NewRequest(http.MethodPost, "/render/txt", strings.NewReader(preset)))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, body)
	}
	if lines := strings.Count(string(body), "\n"); lines != 50 {
		t.Errorf("got %d lines, want 50", lines)
	}

	resp, _ = do(t, s, httptest.NewRequest(http.MethodPost, "/render/svg", nil))
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("empty body status = %d", resp.StatusCode)
	}

	resp, _ = do(t, s, httptest.NewRequest(http.MethodPost, "/render/svg", strings.NewReader("layers: nope\n")))
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("invalid preset status = %d", resp.StatusCode)
	}
}

func TestRequestIDPassthrough(t *testing.T) {
	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	req.Header.Set(HeaderRequestID, id)

	resp, _ := do(t, newTestServer(), req)
	if got := resp.Header.Get(HeaderRequestID); got != id {
		t.Errorf("%s = %q, want %q", HeaderRequestID, got, id)
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
