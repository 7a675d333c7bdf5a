package sdk

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/yaroslav/vlantrunk/internal/logging"
	"github.com/yaroslav/vlantrunk/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, mutate ...func(*ClientConfig)) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	config := ClientConfig{
		Endpoint:     server.URL,
		Username:     "SL1234",
		APIKey:       "secret",
		RetryWaitMin: time.Millisecond,
		RetryWaitMax: 5 * time.Millisecond,
	}
	for _, m := range mutate {
		m(&config)
	}

	client, err := NewClient(config)
	if err != nil {
		t.Fatalf("NewClient() unexpected error = %v", err)
	}
	return client
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestNewClient(t *testing.T) {
	tests := []struct {
		name    string
		config  ClientConfig
		wantErr bool
	}{
		{
			name:   "valid config",
			config: ClientConfig{Username: "SL1234", APIKey: "secret"},
		},
		{
			name:    "invalid config - missing credentials",
			config:  ClientConfig{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.config)

			if tt.wantErr {
				if err == nil {
					t.Errorf("NewClient() expected error but got nil")
				}
				return
			}
			if err != nil {
				t.Errorf("NewClient() unexpected error = %v", err)
			}
			if client == nil {
				t.Error("NewClient() returned nil client")
			}
		})
	}
}

func TestClient_ListHardware(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method = %s, want GET", r.Method)
		}
		if r.URL.Path != "/SoftLayer_Account/getHardware.json" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("objectMask"); got != HardwareMask {
			t.Errorf("objectMask = %q, want %q", got, HardwareMask)
		}
		user, key, ok := r.BasicAuth()
		if !ok || user != "SL1234" || key != "secret" {
			t.Errorf("basic auth = %q/%q/%v", user, key, ok)
		}
		if r.Header.Get(HeaderRequestID) == "" {
			t.Error("missing request id header")
		}

		writeJSON(w, http.StatusOK, []models.Hardware{{
			ID:                       1,
			Hostname:                 "machine-01",
			Domain:                   "example.com",
			FullyQualifiedDomainName: "machine-01.example.com",
			NetworkComponents: []models.NetworkComponent{{
				ID:               10,
				Name:             "eth",
				Port:             0,
				PrimaryIPAddress: "10.0.0.1",
				UplinkComponent: &models.NetworkComponent{
					ID:          100,
					NetworkVLAN: &models.VLAN{ID: 500, Name: "backend", VLANNumber: 1234},
				},
			}},
		}})
	})

	hardware, err := client.ListHardware(context.Background())
	if err != nil {
		t.Fatalf("ListHardware() unexpected error = %v", err)
	}
	if len(hardware) != 1 {
		t.Fatalf("len(hardware) = %d, want 1", len(hardware))
	}
	nic := hardware[0].NetworkComponents[0]
	if nic.InterfaceName() != "eth0" || nic.UplinkComponent.ID != 100 {
		t.Errorf("unexpected component %+v", nic)
	}
	if v := nic.NativeVLAN(); v == nil || v.VLANNumber != 1234 {
		t.Errorf("NativeVLAN() = %+v, want vlan 1234", v)
	}
}

func TestClient_ListVLANs(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/SoftLayer_Account/getNetworkVlans.json" {
			t.Errorf("path = %s", r.URL.Path)
		}
		writeJSON(w, http.StatusOK, []models.VLAN{
			{ID: 1, Name: "a", VLANNumber: 100},
			{ID: 2, Name: "b", VLANNumber: 200},
		})
	})

	vlans, err := client.ListVLANs(context.Background())
	if err != nil {
		t.Fatalf("ListVLANs() unexpected error = %v", err)
	}
	if len(vlans) != 2 || vlans[1].Name != "b" {
		t.Errorf("ListVLANs() = %+v", vlans)
	}
}

func TestClient_GetVLANTrunks(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/SoftLayer_Network_Component/100/getNetworkVlanTrunks.json" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("objectMask"); got != TrunkMask {
			t.Errorf("objectMask = %q", got)
		}
		writeJSON(w, http.StatusOK, []models.VLANTrunk{{
			NetworkComponentID: 100,
			NetworkVLANID:      7,
			NetworkVLAN:        &models.VLAN{ID: 7, Name: "storage", VLANNumber: 700},
		}})
	})

	trunks, err := client.GetVLANTrunks(context.Background(), 100)
	if err != nil {
		t.Fatalf("GetVLANTrunks() unexpected error = %v", err)
	}
	if len(trunks) != 1 || trunks[0].NetworkVLAN.Name != "storage" {
		t.Errorf("GetVLANTrunks() = %+v", trunks)
	}
}

func TestClient_AddVLANTrunks(t *testing.T) {
	var calls int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if r.URL.Path != "/SoftLayer_Network_Component/100/addNetworkVlanTrunks.json" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		body, _ := io.ReadAll(r.Body)
		if got, want := strings.TrimSpace(string(body)), `{"parameters":[[{"id":7},{"id":8}]]}`; got != want {
			t.Errorf("body = %s, want %s", got, want)
		}
		writeJSON(w, http.StatusOK, []models.VLAN{{ID: 7}, {ID: 8}})
	})

	added, err := client.AddVLANTrunks(context.Background(), 100,
		models.VLAN{ID: 7, Name: "storage"}, models.VLAN{ID: 8, Name: "backup"})
	if err != nil {
		t.Fatalf("AddVLANTrunks() unexpected error = %v", err)
	}
	if len(added) != 2 {
		t.Errorf("len(added) = %d, want 2", len(added))
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestClient_ClearVLANTrunks(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/SoftLayer_Network_Component/100/clearNetworkVlanTrunks.json" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		writeJSON(w, http.StatusOK, []models.VLAN{})
	})

	if err := client.ClearVLANTrunks(context.Background(), 100); err != nil {
		t.Fatalf("ClearVLANTrunks() unexpected error = %v", err)
	}
}

func TestClient_ErrorEnvelope(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		sentinel error
		contains string
	}{
		{
			name:     "unauthorized",
			status:   http.StatusUnauthorized,
			body:     `{"error":"Invalid API token.","code":"SoftLayer_Exception_Public"}`,
			sentinel: ErrUnauthorized,
			contains: "Invalid API token.",
		},
		{
			name:     "not found",
			status:   http.StatusNotFound,
			body:     `{"error":"Unable to find object with id of '9'.","code":"SoftLayer_Exception_ObjectNotFound"}`,
			sentinel: ErrNotFound,
			contains: "SoftLayer_Exception_ObjectNotFound",
		},
		{
			name:     "bad request without envelope",
			status:   http.StatusBadRequest,
			body:     `not json`,
			sentinel: ErrBadRequest,
			contains: "status 400",
		},
		{
			name:     "rate limited",
			status:   http.StatusTooManyRequests,
			body:     `{}`,
			sentinel: ErrRateLimited,
			contains: "Too Many Requests",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})

			_, err := client.ListVLANs(context.Background())
			if err == nil {
				t.Fatal("ListVLANs() expected error")
			}
			if !errors.Is(err, tt.sentinel) {
				t.Errorf("error = %v, want %v", err, tt.sentinel)
			}
			var apiErr *APIError
			if !errors.As(err, &apiErr) || apiErr.StatusCode != tt.status {
				t.Errorf("error %v is not an *APIError with status %d", err, tt.status)
			}
			if !strings.Contains(err.Error(), tt.contains) {
				t.Errorf("error = %q, want it to contain %q", err.Error(), tt.contains)
			}
		})
	}
}

func TestClient_RetriesReadsOnly(t *testing.T) {
	var reads, writes int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			if atomic.AddInt32(&reads, 1) < 3 {
				writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "busy"})
				return
			}
			writeJSON(w, http.StatusOK, []models.VLAN{{ID: 1}})
			return
		}
		atomic.AddInt32(&writes, 1)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "busy"})
	}, func(c *ClientConfig) { c.RetryAttempts = 2 })

	if _, err := client.ListVLANs(context.Background()); err != nil {
		t.Fatalf("ListVLANs() unexpected error = %v", err)
	}
	if reads != 3 {
		t.Errorf("reads = %d, want 3", reads)
	}

	err := client.ClearVLANTrunks(context.Background(), 1)
	if !errors.Is(err, ErrServerError) {
		t.Errorf("ClearVLANTrunks() error = %v, want ErrServerError", err)
	}
	if writes != 1 {
		t.Errorf("writes = %d, want 1 (mutations are not retried)", writes)
	}
}

func TestClient_NoRetryByDefault(t *testing.T) {
	var reads int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&reads, 1)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "boom"})
	})

	_, err := client.ListHardware(context.Background())
	if !errors.Is(err, ErrServerError) {
		t.Errorf("ListHardware() error = %v, want ErrServerError", err)
	}
	if reads != 1 {
		t.Errorf("reads = %d, want 1", reads)
	}
}

func TestClient_Observer(t *testing.T) {
	type observation struct {
		method, operation string
		status            int
	}
	var seen []observation

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []models.VLAN{})
	}, func(c *ClientConfig) {
		c.Observer = func(method, operation string, status int, _ time.Duration) {
			seen = append(seen, observation{method, operation, status})
		}
	})

	if _, err := client.ListVLANs(context.Background()); err != nil {
		t.Fatalf("ListVLANs() unexpected error = %v", err)
	}

	if len(seen) != 1 {
		t.Fatalf("observations = %d, want 1", len(seen))
	}
	if seen[0] != (observation{http.MethodGet, OpListVLANs, http.StatusOK}) {
		t.Errorf("observation = %+v", seen[0])
	}
}

func TestClient_ContextCancelled(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []models.VLAN{})
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := client.ListVLANs(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("ListVLANs() error = %v, want context.Canceled", err)
	}
}

func TestCalculateBackoff(t *testing.T) {
	client := &Client{RetryWaitMin: 100 * time.Millisecond, RetryWaitMax: time.Second}

	for attempt := 0; attempt < 6; attempt++ {
		d := client.calculateBackoff(attempt)
		if d <= 0 || d > time.Second {
			t.Errorf("calculateBackoff(%d) = %v, want within (0, 1s]", attempt, d)
		}
	}
}

// trackedBody records whether the response body was closed.
type trackedBody struct {
	io.Reader
	closed bool
}

func (b *trackedBody) Close() error {
	b.closed = true
	return nil
}

// cancelThenFail cancels the request context and answers 503, as when a
// command timeout fires while the provider is failing.
type cancelThenFail struct {
	cancel context.CancelFunc
	body   *trackedBody
	calls  int32
}

func (tr *cancelThenFail) RoundTrip(req *http.Request) (*http.Response, error) {
	atomic.AddInt32(&tr.calls, 1)
	tr.cancel()
	return &http.Response{
		StatusCode: http.StatusServiceUnavailable,
		Header:     make(http.Header),
		Body:       tr.body,
		Request:    req,
	}, nil
}

func TestClient_CancelledDuringServerError(t *testing.T) {
	tests := []struct {
		name          string
		retryAttempts int
	}{
		{name: "no retries", retryAttempts: 0},
		{name: "with retries", retryAttempts: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			transport := &cancelThenFail{
				cancel: cancel,
				body:   &trackedBody{Reader: strings.NewReader(`{"error":"busy"}`)},
			}

			client, err := NewClient(ClientConfig{
				Endpoint:      "http://provider.invalid",
				Username:      "SL1234",
				APIKey:        "secret",
				HTTPClient:    &http.Client{Transport: transport},
				RetryAttempts: tt.retryAttempts,
				RetryWaitMin:  time.Millisecond,
				RetryWaitMax:  time.Millisecond,
			})
			if err != nil {
				t.Fatalf("NewClient() unexpected error = %v", err)
			}

			vlans, err := client.ListVLANs(ctx)
			if !errors.Is(err, context.Canceled) {
				t.Fatalf("ListVLANs() error = %v, want context.Canceled", err)
			}
			if vlans != nil {
				t.Errorf("ListVLANs() = %v, want nil", vlans)
			}
			if !transport.body.closed {
				t.Error("5xx response body was not closed")
			}
			if calls := atomic.LoadInt32(&transport.calls); calls != 1 {
				t.Errorf("round trips = %d, want 1", calls)
			}
		})
	}
}

func TestClient_LogsRequestDuration(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []models.VLAN{})
	}, func(c *ClientConfig) { c.Logger = zap.New(core) })

	if _, err := client.ListVLANs(context.Background()); err != nil {
		t.Fatalf("ListVLANs() unexpected error = %v", err)
	}

	entries := logs.FilterMessage("api request").All()
	if len(entries) != 1 {
		t.Fatalf("api request entries = %d, want 1", len(entries))
	}

	fields := entries[0].ContextMap()
	if _, ok := fields[logging.FieldDuration].(time.Duration); !ok {
		t.Errorf("field %q = %#v, want a time.Duration", logging.FieldDuration, fields[logging.FieldDuration])
	}
	if logging.FieldDuration != "duration" {
		t.Errorf("FieldDuration = %q, want \"duration\"", logging.FieldDuration)
	}
	if fields[logging.FieldOperation] != OpListVLANs {
		t.Errorf("operation = %v, want %s", fields[logging.FieldOperation], OpListVLANs)
	}
}
