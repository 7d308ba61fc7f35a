package pool_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"glidefront/internal/pool"
)

func TestDiscoverDecodesCatalog(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/glideins" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		json.NewEncoder(w).Encode([]pool.Glidein{
			{Name: "cern-g", Attrs: map[string]string{"GLIDEIN_Site": "CERN"}},
			{Name: "fnal-g", Attrs: map[string]string{"GLIDEIN_Site": "FNAL"}},
		})
	}))
	defer server.Close()

	client := pool.NewClient(server.URL, "frontend-test", time.Second)
	glideins, err := client.Discover(context.Background())
	if err != nil {
		t.Fatalf("Discover returned error: %v", err)
	}
	if len(glideins) != 2 {
		t.Fatalf("glidein count = %d, want 2", len(glideins))
	}
	if glideins[0].Name != "cern-g" || glideins[0].Attrs["GLIDEIN_Site"] != "CERN" {
		t.Fatalf("unexpected first glidein: %+v", glideins[0])
	}
}

func TestDiscoverErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := pool.NewClient(server.URL, "frontend-test", time.Second)
	if _, err := client.Discover(context.Background()); err == nil {
		t.Fatal("expected error on 503 response")
	}
}

func TestAdvertisePutsRequestRecord(t *testing.T) {
	var (
		gotMethod string
		gotPath   string
		gotBody   pool.Request
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode advertised body: %v", err)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := pool.NewClient(server.URL, "frontend-test", time.Second)
	request := pool.Request{
		Name:     "cern-g",
		Glidein:  "cern-g",
		ReqIdle:  15,
		Params:   map[string]string{"GLIDEIN_Collector": "pool.example.org"},
		Monitors: pool.Monitors{Idle: 10, Running: 4},
	}
	if err := client.Advertise(context.Background(), request); err != nil {
		t.Fatalf("Advertise returned error: %v", err)
	}
	if gotMethod != http.MethodPut {
		t.Fatalf("method = %s, want PUT", gotMethod)
	}
	if gotPath != "/requests/frontend-test/cern-g" {
		t.Fatalf("path = %s, want /requests/frontend-test/cern-g", gotPath)
	}
	if gotBody.ReqIdle != 15 || gotBody.Monitors.Running != 4 {
		t.Fatalf("unexpected advertised body: %+v", gotBody)
	}
}

func TestAdvertiseRequiresName(t *testing.T) {
	client := pool.NewClient("http://127.0.0.1:0", "frontend-test", time.Second)
	if err := client.Advertise(context.Background(), pool.Request{}); err == nil {
		t.Fatal("expected error for request without a name")
	}
}

func TestRetractAllDeletesFrontendRecords(t *testing.T) {
	var gotMethod, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := pool.NewClient(server.URL, "frontend-test", time.Second)
	if err := client.RetractAll(context.Background()); err != nil {
		t.Fatalf("RetractAll returned error: %v", err)
	}
	if gotMethod != http.MethodDelete || gotPath != "/requests/frontend-test" {
		t.Fatalf("unexpected request: %s %s", gotMethod, gotPath)
	}
}

func TestRetractAllToleratesNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	client := pool.NewClient(server.URL, "frontend-test", time.Second)
	if err := client.RetractAll(context.Background()); err != nil {
		t.Fatalf("RetractAll should tolerate 404, got %v", err)
	}
}

func TestListRequestsEmptyOnNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	client := pool.NewClient(server.URL, "frontend-test", time.Second)
	requests, err := client.ListRequests(context.Background())
	if err != nil {
		t.Fatalf("ListRequests returned error: %v", err)
	}
	if requests != nil {
		t.Fatalf("expected nil request list, got %+v", requests)
	}
}

func TestListRequestsDecodes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/requests/frontend-test" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode([]pool.Request{
			{Name: "cern-g", Glidein: "cern-g", ReqIdle: 7},
		})
	}))
	defer server.Close()

	client := pool.NewClient(server.URL, "frontend-test", time.Second)
	requests, err := client.ListRequests(context.Background())
	if err != nil {
		t.Fatalf("ListRequests returned error: %v", err)
	}
	if len(requests) != 1 || requests[0].ReqIdle != 7 {
		t.Fatalf("unexpected requests: %+v", requests)
	}
}
