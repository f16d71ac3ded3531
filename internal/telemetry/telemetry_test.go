/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package telemetry

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

func TestClientEventAndCrashUpload(t *testing.T) {
	var mu sync.Mutex
	var events [][]byte
	var crashes [][]byte

	mux := http.NewServeMux()
	mux.HandleFunc("/events", func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		_ = r.Body.Close()
		mu.Lock()
		events = append(events, append([]byte(nil), b...))
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/crash", func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		_ = r.Body.Close()
		mu.Lock()
		crashes = append(crashes, append([]byte(nil), b...))
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := New(Config{OptIn: true, EventsURL: srv.URL + "/events", CrashURL: srv.URL + "/crash", Timeout: 2 * time.Second})
	defer c.Close()

	if !c.Enabled() {
		t.Fatalf("client should be enabled")
	}

	c.Event("program_start", map[string]any{"k": "v"})
	c.Flush(context.Background())
	time.Sleep(50 * time.Millisecond)

	mu.Lock()
	got := append([][]byte(nil), events...)
	mu.Unlock()
	if len(got) == 0 {
		t.Fatalf("expected at least one event")
	}
	var m map[string]any
	if err := json.Unmarshal(got[0], &m); err != nil {
		t.Fatalf("bad event json: %v", err)
	}
	if m["name"] != "program_start" || m["k"] != "v" {
		t.Fatalf("unexpected event: %v", m)
	}
	if _, ok := m["ts"].(string); !ok {
		t.Fatalf("missing ts field: %v", m)
	}

	c.UploadCrash([]byte("boom"))
	time.Sleep(100 * time.Millisecond)
	mu.Lock()
	ccount := len(crashes)
	mu.Unlock()
	if ccount == 0 {
		t.Fatalf("expected crash upload")
	}
}

func TestClientDisabledByDefault(t *testing.T) {
	c := New(Config{})
	defer c.Close()
	if c.Enabled() {
		t.Fatalf("telemetry must be off by default")
	}
	// Must be a no-op, not a panic or a block.
	c.Event("ignored", nil)
	c.UploadCrash([]byte("ignored"))
}

func TestOptInWithoutEndpointStaysDisabled(t *testing.T) {
	c := New(Config{OptIn: true})
	defer c.Close()
	if c.Enabled() {
		t.Fatalf("opt-in without endpoint must stay disabled")
	}
}

func TestFromEnvParsesOptIn(t *testing.T) {
	t.Setenv("AIRB_TELEMETRY_OPT_IN", "yes")
	t.Setenv("AIRB_TELEMETRY_URL", "http://example.invalid/events")
	t.Setenv("AIRB_TELEMETRY_TIMEOUT_MS", "250")
	cfg := FromEnv()
	if !cfg.OptIn || cfg.EventsURL == "" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.Timeout != 250*time.Millisecond {
		t.Fatalf("timeout = %v", cfg.Timeout)
	}
}
