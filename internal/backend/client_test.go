package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

// recordedRequest captures what the fake backend received.
type recordedRequest struct {
	Method string
	Path   string
	Body   map[string]any
}

func newTestServer(t *testing.T, status int, response string) (*Client, *[]recordedRequest) {
	t.Helper()
	var got []recordedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recordedRequest{Method: r.Method, Path: r.URL.EscapedPath()}
		data, _ := io.ReadAll(r.Body)
		if len(data) > 0 {
			if err := json.Unmarshal(data, &rec.Body); err != nil {
				t.Errorf("request body is not JSON: %v", err)
			}
		}
		got = append(got, rec)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, response)
	}))
	t.Cleanup(srv.Close)
	return New(srv.URL+"/", 0), &got
}

func TestClient_Config(t *testing.T) {
	c, reqs := newTestServer(t, http.StatusOK, `{"config":{"general:gaps_in ":5},"path":"/home/u/.config/hypr/hyprland.conf"}`)

	snap, err := c.Config(context.Background())
	if err != nil {
		t.Fatalf("Config() error = %v", err)
	}
	if snap.Config["general:gaps_in "] != float64(5) {
		t.Errorf("Config[general:gaps_in ] = %v, want 5", snap.Config["general:gaps_in "])
	}
	if (*reqs)[0].Path != "/hyprland/config" {
		t.Errorf("path = %q, want /hyprland/config", (*reqs)[0].Path)
	}
}

func TestClient_APIError(t *testing.T) {
	c, _ := newTestServer(t, http.StatusNotFound, `{"detail":"Hyprland config not found"}`)

	_, err := c.Config(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %T, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want 404", apiErr.StatusCode)
	}
	if !IsNotFound(err) {
		t.Error("IsNotFound = false, want true")
	}
	if !errors.Is(err, ErrRequestFailed) {
		t.Error("errors.Is(err, ErrRequestFailed) = false, want true")
	}
}

func TestClient_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := New(url, 0)
	err := c.Reload(context.Background())
	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("error = %T (%v), want *NetworkError", err, err)
	}
	if !errors.Is(err, ErrRequestFailed) {
		t.Error("errors.Is(err, ErrRequestFailed) = false, want true")
	}
}

func TestClient_MutateEntry_Unsuccessful(t *testing.T) {
	c, reqs := newTestServer(t, http.StatusOK, `{"success":false,"error":"bad line"}`)

	err := c.MutateEntry(context.Background(), "binds", map[string]any{"action": "add"})
	if !errors.Is(err, ErrUnsuccessful) {
		t.Fatalf("error = %v, want ErrUnsuccessful", err)
	}
	if (*reqs)[0].Method != http.MethodPost || (*reqs)[0].Path != "/hyprland/binds" {
		t.Errorf("request = %+v", (*reqs)[0])
	}
}

func TestClient_ListEntries_MissingKey(t *testing.T) {
	c, _ := newTestServer(t, http.StatusOK, `{"other":[1]}`)

	var out []map[string]any
	if err := c.ListEntries(context.Background(), "binds", &out); err != nil {
		t.Fatalf("ListEntries error = %v", err)
	}
	if out == nil || len(out) != 0 {
		t.Errorf("out = %#v, want empty non-nil slice", out)
	}
}

func TestClient_ActivatePreset(t *testing.T) {
	c, reqs := newTestServer(t, http.StatusOK, `{}`)

	if err := c.ActivatePreset(context.Background(), "hyprland", "01 weird/id"); err != nil {
		t.Fatalf("ActivatePreset error = %v", err)
	}
	r := (*reqs)[0]
	if r.Path != "/presets/hyprland/01%20weird%2Fid/activate" {
		t.Errorf("path = %q", r.Path)
	}
	if r.Body["backup_current"] != true {
		t.Errorf("body = %v, want backup_current=true", r.Body)
	}
}

func TestClient_Presets_DecodesActive(t *testing.T) {
	c, _ := newTestServer(t, http.StatusOK,
		`{"presets":[{"id":"a","name":"Work","description":"","created_at":"2026-01-02T03:04:05Z"}],"active_preset":"a"}`)

	list, err := c.Presets(context.Background(), "hyprland")
	if err != nil {
		t.Fatalf("Presets error = %v", err)
	}
	if list.ActivePreset == nil || *list.ActivePreset != "a" {
		t.Errorf("ActivePreset = %v, want a", list.ActivePreset)
	}
	if len(list.Presets) != 1 {
		t.Fatalf("Presets = %+v", list.Presets)
	}
	created, ok := list.Presets[0].Created()
	if !ok || created.Year() != 2026 {
		t.Errorf("Created() = %v, %v", created, ok)
	}
}

func TestClient_BulkUpdate(t *testing.T) {
	c, reqs := newTestServer(t, http.StatusOK, `{"success":true,"results":{"general:gaps_in ":{"success":true,"value":10}}}`)

	results, err := c.BulkUpdate(context.Background(), map[string]any{"general:gaps_in ": 10})
	if err != nil {
		t.Fatalf("BulkUpdate error = %v", err)
	}
	if !results["general:gaps_in "].Success {
		t.Errorf("results = %+v", results)
	}
	updates, _ := (*reqs)[0].Body["updates"].(map[string]any)
	if _, ok := updates["general:gaps_in "]; !ok {
		t.Errorf("updates = %v, want trailing-space key preserved", updates)
	}
}

func TestPreset_Created_Zoneless(t *testing.T) {
	p := Preset{CreatedAt: "2026-10-19T08:30:00.123456"}
	got, ok := p.Created()
	if !ok {
		t.Fatal("Created() ok = false, want true")
	}
	if got.Hour() != 8 || got.Minute() != 30 {
		t.Errorf("Created() = %v", got)
	}
	if _, ok := (Preset{CreatedAt: "yesterday"}).Created(); ok {
		t.Error("Created(garbage) ok = true, want false")
	}
}
