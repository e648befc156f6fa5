package server

import (
	"context"
	"encoding/json"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v3"

	"wallsketch/internal/editor"
	"wallsketch/internal/plan"
)

type fakeRevisions struct {
	mu    sync.Mutex
	revs  map[string][]string
	plans map[string]plan.Plan
}

func newFakeRevisions() *fakeRevisions {
	return &fakeRevisions{revs: map[string][]string{}, plans: map[string]plan.Plan{}}
}

func (f *fakeRevisions) AppendRevision(_ context.Context, id, reason string, p plan.Plan) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.revs[id] = append(f.revs[id], reason)
	f.plans[id] = p
	return len(f.revs[id]) - 1, nil
}

func (f *fakeRevisions) Count(_ context.Context, id string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.revs[id]), nil
}

func (f *fakeRevisions) DeletePlan(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.revs, id)
	delete(f.plans, id)
	return nil
}

func (f *fakeRevisions) reasons(id string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.revs[id]...)
}

const threeWallsJSON = `{
  "walls": [
    {"boundary": [{"x":0,"y":0},{"x":10,"y":0},{"x":10,"y":10},{"x":0,"y":10}]},
    {"boundary": [{"x":20,"y":0},{"x":30,"y":0},{"x":30,"y":10},{"x":20,"y":10}]},
    {"boundary": [{"x":40,"y":0},{"x":50,"y":0},{"x":50,"y":10},{"x":40,"y":10}]}
  ],
  "dimensions": {"width": 200, "height": 200}
}`

type sessionBody struct {
	ID        string         `json:"id"`
	Plan      plan.Plan      `json:"plan"`
	Tool      string         `json:"tool"`
	Committed bool           `json:"committed"`
	Selection *targetPayload `json:"selection"`
	Settings  struct {
		Thickness int  `json:"thickness"`
		Snap      bool `json:"snap"`
	} `json:"settings"`
	CanUndo bool `json:"canUndo"`
	CanRedo bool `json:"canRedo"`
}

func newTestApp(t *testing.T) (*fiber.App, *fakeRevisions) {
	t.Helper()
	revs := newFakeRevisions()
	return NewApp(New(revs, editor.DefaultSettings()), AppConfig{}), revs
}

func do(t *testing.T, app *fiber.App, method, path, body string) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	raw, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		t.Fatal(err)
	}
	return resp, raw
}

func decodeSession(t *testing.T, raw []byte) sessionBody {
	t.Helper()
	var s sessionBody
	if err := json.Unmarshal(raw, &s); err != nil {
		t.Fatalf("decode %s: %v", raw, err)
	}
	return s
}

func createSession(t *testing.T, app *fiber.App) string {
	t.Helper()
	resp, raw := do(t, app, http.MethodPost, "/sessions", threeWallsJSON)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d: %s", resp.StatusCode, raw)
	}
	s := decodeSession(t, raw)
	if s.ID == "" || len(s.Plan.Walls) != 3 {
		t.Fatalf("create = %+v", s)
	}
	return s.ID
}

func TestHealth(t *testing.T) {
	app, _ := newTestApp(t)
	for _, path := range []string{"/health/live", "/health/ready"} {
		resp, _ := do(t, app, http.MethodGet, path, "")
		if resp.StatusCode != http.StatusOK {
			t.Errorf("%s status = %d", path, resp.StatusCode)
		}
	}
}

func TestSelectMoveUndoRedo(t *testing.T) {
	app, revs := newTestApp(t)
	id := createSession(t, app)

	resp, raw := do(t, app, http.MethodPost, "/sessions/"+id+"/events", `{"type":"down","x":45,"y":5}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("down status = %d: %s", resp.StatusCode, raw)
	}
	s := decodeSession(t, raw)
	if s.Committed || s.Selection == nil || s.Selection.Wall != 2 {
		t.Fatalf("after down: %+v", s)
	}

	_, raw = do(t, app, http.MethodPost, "/sessions/"+id+"/events", `{"type":"move","x":50,"y":10}`)
	s = decodeSession(t, raw)
	if !s.Committed {
		t.Fatal("move did not commit")
	}
	if got := s.Plan.Walls[2].Boundary[0]; got.X != 45 || got.Y != 5 {
		t.Errorf("wall 2 starts at %v, want (45, 5)", got)
	}
	do(t, app, http.MethodPost, "/sessions/"+id+"/events", `{"type":"up","x":50,"y":10}`)

	_, raw = do(t, app, http.MethodPost, "/sessions/"+id+"/undo", "")
	s = decodeSession(t, raw)
	if got := s.Plan.Walls[2].Boundary[0]; got.X != 40 || got.Y != 0 {
		t.Errorf("after undo wall 2 starts at %v", got)
	}
	if s.CanUndo || !s.CanRedo {
		t.Errorf("canUndo=%v canRedo=%v", s.CanUndo, s.CanRedo)
	}

	_, raw = do(t, app, http.MethodPost, "/sessions/"+id+"/redo", "")
	s = decodeSession(t, raw)
	if got := s.Plan.Walls[2].Boundary[0]; got.X != 45 {
		t.Errorf("after redo wall 2 starts at %v", got)
	}

	want := []string{"create", "commit", "undo", "redo"}
	got := revs.reasons(id)
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("revisions = %v, want %v", got, want)
	}

	_, raw = do(t, app, http.MethodGet, "/sessions/"+id+"/revisions", "")
	var count struct {
		Revisions int `json:"revisions"`
	}
	if err := json.Unmarshal(raw, &count); err != nil || count.Revisions != 4 {
		t.Errorf("revisions = %s", raw)
	}
}

func TestUndoWithoutHistory(t *testing.T) {
	app, _ := newTestApp(t)
	id := createSession(t, app)
	resp, _ := do(t, app, http.MethodPost, "/sessions/"+id+"/undo", "")
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("status = %d, want 409", resp.StatusCode)
	}
}

func TestViewportMapping(t *testing.T) {
	app, _ := newTestApp(t)
	id := createSession(t, app)
	// 100x100 client box over a 200x200 document: (22.5, 2.5) is (45, 5)
	_, raw := do(t, app, http.MethodPost, "/sessions/"+id+"/events",
		`{"type":"down","x":22.5,"y":2.5,"viewport":{"width":100,"height":100}}`)
	s := decodeSession(t, raw)
	if s.Selection == nil || s.Selection.Wall != 2 {
		t.Errorf("selection = %+v, want wall 2", s.Selection)
	}
}

func TestKeyAndSettings(t *testing.T) {
	app, _ := newTestApp(t)
	id := createSession(t, app)

	_, raw := do(t, app, http.MethodPost, "/sessions/"+id+"/events", `{"type":"key","key":"D"}`)
	if s := decodeSession(t, raw); s.Tool != "draw" {
		t.Errorf("tool = %q, want draw", s.Tool)
	}

	_, raw = do(t, app, http.MethodPut, "/sessions/"+id+"/settings", `{"tool":"stretch","thickness":500,"snap":false}`)
	s := decodeSession(t, raw)
	if s.Tool != "stretch" || s.Settings.Thickness != editor.MaxThickness || s.Settings.Snap {
		t.Errorf("settings = %+v tool=%q", s.Settings, s.Tool)
	}

	resp, _ := do(t, app, http.MethodPut, "/sessions/"+id+"/settings", `{"tool":"lasso"}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("unknown tool status = %d", resp.StatusCode)
	}
}

func TestDrawThenReset(t *testing.T) {
	app, _ := newTestApp(t)
	id := createSession(t, app)
	do(t, app, http.MethodPut, "/sessions/"+id+"/settings", `{"tool":"draw"}`)
	do(t, app, http.MethodPost, "/sessions/"+id+"/events", `{"type":"down","x":0,"y":100}`)
	do(t, app, http.MethodPost, "/sessions/"+id+"/events", `{"type":"move","x":100,"y":100}`)
	_, raw := do(t, app, http.MethodPost, "/sessions/"+id+"/events", `{"type":"up","x":100,"y":100}`)
	s := decodeSession(t, raw)
	if !s.Committed || len(s.Plan.Walls) != 4 {
		t.Fatalf("after draw: committed=%v walls=%d", s.Committed, len(s.Plan.Walls))
	}

	_, raw = do(t, app, http.MethodPut, "/sessions/"+id+"/plan", `{"walls":[[[0,0],[5,0],[5,5]]]}`)
	s = decodeSession(t, raw)
	if len(s.Plan.Walls) != 1 || s.CanUndo || s.CanRedo {
		t.Errorf("after reset: walls=%d canUndo=%v canRedo=%v", len(s.Plan.Walls), s.CanUndo, s.CanRedo)
	}
}

func TestPNG(t *testing.T) {
	app, _ := newTestApp(t)
	id := createSession(t, app)
	req := httptest.NewRequest(http.MethodGet, "/sessions/"+id+"/png?width=80&height=40", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if ct := resp.Header.Get("Content-Type"); ct != "image/png" {
		t.Errorf("Content-Type = %q", ct)
	}
	img, err := png.Decode(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 80 || b.Dy() != 40 {
		t.Errorf("bounds = %v", b)
	}
}

func TestErrors(t *testing.T) {
	app, _ := newTestApp(t)
	id := createSession(t, app)
	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{"unknown session", http.MethodGet, "/sessions/nope", "", http.StatusNotFound},
		{"bad event type", http.MethodPost, "/sessions/" + id + "/events", `{"type":"wheel"}`, http.StatusBadRequest},
		{"bad event json", http.MethodPost, "/sessions/" + id + "/events", `{"type":`, http.StatusBadRequest},
		{"bad plan", http.MethodPost, "/sessions", `[1,2,3]`, http.StatusBadRequest},
		{"event for unknown session", http.MethodPost, "/sessions/nope/events", `{"type":"down"}`, http.StatusNotFound},
		{"png too wide", http.MethodGet, "/sessions/" + id + "/png?width=60000&height=60000", "", http.StatusBadRequest},
		{"png too tall", http.MethodGet, "/sessions/" + id + "/png?width=10&height=2049", "", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, raw := do(t, app, tt.method, tt.path, tt.body)
			if resp.StatusCode != tt.want {
				t.Errorf("status = %d, want %d: %s", resp.StatusCode, tt.want, raw)
			}
		})
	}
}

func TestDeleteSession(t *testing.T) {
	app, revs := newTestApp(t)
	id := createSession(t, app)
	resp, _ := do(t, app, http.MethodDelete, "/sessions/"+id, "")
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete status = %d", resp.StatusCode)
	}
	if resp, _ := do(t, app, http.MethodGet, "/sessions/"+id, ""); resp.StatusCode != http.StatusNotFound {
		t.Errorf("get after delete = %d", resp.StatusCode)
	}
	if n := len(revs.reasons(id)); n != 0 {
		t.Errorf("revisions left after delete: %d", n)
	}
}

func TestEmptyBodyCreatesEmptySession(t *testing.T) {
	app, _ := newTestApp(t)
	resp, raw := do(t, app, http.MethodPost, "/sessions", "")
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d: %s", resp.StatusCode, raw)
	}
	if s := decodeSession(t, raw); len(s.Plan.Walls) != 0 {
		t.Errorf("walls = %d", len(s.Plan.Walls))
	}
}
