package ingress

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stuxvii/lsd-thumbnail-server/engine"
	"github.com/stuxvii/lsd-thumbnail-server/engine/core"
	"github.com/stuxvii/lsd-thumbnail-server/engine/renderer/metadata"
)

type submission struct {
	kind   metadata.JobKind
	items  []metadata.EquippedItem
	colors *metadata.ColorProfile
}

type fakeRenderer struct {
	result string
	err    error
	calls  []submission
}

func (f *fakeRenderer) Submit(_ context.Context, kind metadata.JobKind, items []metadata.EquippedItem, colors *metadata.ColorProfile) (string, error) {
	f.calls = append(f.calls, submission{kind, items, colors})
	if f.err != nil {
		return "", f.err
	}
	if kind == metadata.JobKindThumbnail && len(items) == 0 {
		return "", core.ErrEmptyThumbnail
	}
	return f.result, nil
}

func (f *fakeRenderer) Health() engine.Health {
	return engine.Health{Stage: "idle", UptimeS: 12.5, JobsServed: 4, QueueDepth: 2, LastRenderMS: 3}
}

type fakeRepo struct {
	avatarErr error
	itemsErr  error
	colors    metadata.ColorProfile
	equipped  []int32
	items     map[int32]metadata.EquippedItem
}

func (f *fakeRepo) FetchAvatar(_ context.Context, userID int32) (metadata.ColorProfile, []int32, error) {
	if f.avatarErr != nil {
		return metadata.ColorProfile{}, nil, f.avatarErr
	}
	return f.colors, f.equipped, nil
}

func (f *fakeRepo) FetchItems(_ context.Context, ids []int32) ([]metadata.EquippedItem, error) {
	if f.itemsErr != nil {
		return nil, f.itemsErr
	}
	var out []metadata.EquippedItem
	for _, id := range ids {
		if it, ok := f.items[id]; ok {
			out = append(out, it)
		}
	}
	return out, nil
}

func newRepo() *fakeRepo {
	return &fakeRepo{
		colors:   metadata.ColorProfile{Head: 24, Torso: 23, LeftArm: 24, RightArm: 24, LeftLeg: 119, RightLeg: 119},
		equipped: []int32{1, 2},
		items: map[int32]metadata.EquippedItem{
			1: {Type: metadata.ItemTypeShirt, Location: "shirts/1.png"},
			2: {Type: metadata.ItemTypeHat, Location: "hats/2.obj", TexturePath: "hats/2.png"},
		},
	}
}

func post(t *testing.T, h http.Handler, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func form(id, jobType string) url.Values {
	v := url.Values{}
	v.Set("id", id)
	v.Set("job_type", jobType)
	return v
}

func TestRenderAvatar(t *testing.T) {
	r := &fakeRenderer{result: "aGVsbG8="}
	repo := newRepo()
	rec := post(t, NewServer(r, repo, nil), form("7", "1"))

	if rec.Code != http.StatusOK || rec.Body.String() != "aGVsbG8=" {
		t.Fatalf("got %d %q", rec.Code, rec.Body.String())
	}
	if len(r.calls) != 1 {
		t.Fatalf("calls = %d", len(r.calls))
	}
	call := r.calls[0]
	if call.kind != metadata.JobKindAvatar || len(call.items) != 2 || call.colors == nil || *call.colors != repo.colors {
		t.Errorf("submission = %+v", call)
	}
}

func TestRenderThumbnail(t *testing.T) {
	r := &fakeRenderer{result: "b2s="}
	rec := post(t, NewServer(r, newRepo(), nil), form("2", "2"))
	if rec.Code != http.StatusOK {
		t.Fatalf("got %d %q", rec.Code, rec.Body.String())
	}
	call := r.calls[0]
	if call.kind != metadata.JobKindThumbnail || call.colors != nil || len(call.items) != 1 || call.items[0].Type != metadata.ItemTypeHat {
		t.Errorf("submission = %+v", call)
	}
}

func TestRenderStatusCodes(t *testing.T) {
	tests := []struct {
		name     string
		form     url.Values
		renderer *fakeRenderer
		repo     func(*fakeRepo)
		code     int
		body     string
	}{
		{"missing fields", url.Values{"id": {"1"}}, &fakeRenderer{}, nil, 400, ""},
		{"bad job type", form("1", "one"), &fakeRenderer{}, nil, 400, "Invalid Number"},
		{"bad id", form("x", "1"), &fakeRenderer{}, nil, 400, "Invalid Number"},
		{"id overflow", form("99999999999", "1"), &fakeRenderer{}, nil, 400, "Invalid Number"},
		{"unknown kind", form("1", "3"), &fakeRenderer{}, nil, 400, "Invalid job type"},
		{"wrapping kind", form("1", "257"), &fakeRenderer{}, nil, 400, "Invalid job type"},
		{"unknown user", form("1", "1"), &fakeRenderer{}, func(r *fakeRepo) { r.avatarErr = errors.New("gone") }, 404, "User not found"},
		{"unknown item", form("404", "2"), &fakeRenderer{}, nil, 404, "Item not found"},
		{"item lookup fails", form("1", "2"), &fakeRenderer{}, func(r *fakeRepo) { r.itemsErr = errors.New("down") }, 404, "Item not found"},
		{"timeout", form("1", "1"), &fakeRenderer{err: fmt.Errorf("%w after 30s", core.ErrRenderTimeout)}, nil, 504, "Render Timed Out"},
		{"render failed", form("1", "1"), &fakeRenderer{err: core.ErrRenderFailed}, nil, 500, "Render Failed"},
		{"stopped", form("1", "1"), &fakeRenderer{err: core.ErrEngineStopped}, nil, 500, "Fatal error, server shutting down."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newRepo()
			if tt.repo != nil {
				tt.repo(repo)
			}
			rec := post(t, NewServer(tt.renderer, repo, nil), tt.form)
			if rec.Code != tt.code || rec.Body.String() != tt.body {
				t.Errorf("got %d %q, want %d %q", rec.Code, rec.Body.String(), tt.code, tt.body)
			}
		})
	}
}

func TestAvatarItemLookupFailureStillRenders(t *testing.T) {
	r := &fakeRenderer{result: "eA=="}
	repo := newRepo()
	repo.itemsErr = errors.New("items table locked")
	rec := post(t, NewServer(r, repo, nil), form("7", "1"))
	if rec.Code != http.StatusOK {
		t.Fatalf("got %d %q", rec.Code, rec.Body.String())
	}
	if len(r.calls[0].items) != 0 {
		t.Errorf("items = %v, want none", r.calls[0].items)
	}
}

func TestOtherRoutesAreNotFound(t *testing.T) {
	s := NewServer(&fakeRenderer{}, newRepo(), nil)
	for _, req := range []*http.Request{
		httptest.NewRequest(http.MethodGet, "/", nil),
		httptest.NewRequest(http.MethodPost, "/render", nil),
		httptest.NewRequest(http.MethodGet, "/debug/overlay", nil),
	} {
		rec := httptest.NewRecorder()
		s.ServeHTTP(rec, req)
		if rec.Code != http.StatusNotFound {
			t.Errorf("%s %s = %d, want 404", req.Method, req.URL.Path, rec.Code)
		}
	}
}

func TestHealth(t *testing.T) {
	s := NewServer(&fakeRenderer{}, newRepo(), nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var h engine.Health
	if err := json.NewDecoder(rec.Body).Decode(&h); err != nil {
		t.Fatal(err)
	}
	if h.Stage != "idle" || h.UptimeS != 12.5 || h.JobsServed != 4 || h.QueueDepth != 2 || h.LastRenderMS != 3 {
		t.Errorf("health = %+v", h)
	}
}

func TestOverlay(t *testing.T) {
	png := []byte("\x89PNG fake")
	s := NewServer(&fakeRenderer{}, newRepo(), func() ([]byte, error) { return png, nil })
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/overlay", nil))
	if rec.Code != http.StatusOK || rec.Header().Get("Content-Type") != "image/png" || rec.Body.String() != string(png) {
		t.Errorf("got %d %s %q", rec.Code, rec.Header().Get("Content-Type"), rec.Body.String())
	}
}
