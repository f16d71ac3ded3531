/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package telemetry is a tiny, opt-in async event sender for anonymous
// usage metrics and optional crash report uploads. Disabled by default;
// with no endpoint configured every call is a no-op.
package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"

	applog "github.com/helsomnoi/airborne-crew/internal/log"
	"github.com/helsomnoi/airborne-crew/internal/version"
)

// Config holds runtime configuration for telemetry and crash uploads.
//
// Environment variables (read by FromEnv):
//   - AIRB_TELEMETRY_OPT_IN: "1", "true", "yes", "on" to enable metrics
//   - AIRB_TELEMETRY_URL: URL to POST JSON events to
//   - AIRB_CRASH_UPLOAD_URL: URL to POST crash reports to
//   - AIRB_TELEMETRY_TIMEOUT_MS: request timeout, default 1500ms
type Config struct {
	OptIn     bool
	EventsURL string
	CrashURL  string
	Timeout   time.Duration
}

func FromEnv() Config {
	cfg := Config{
		OptIn:     parseBool(os.Getenv("AIRB_TELEMETRY_OPT_IN")),
		EventsURL: strings.TrimSpace(os.Getenv("AIRB_TELEMETRY_URL")),
		CrashURL:  strings.TrimSpace(os.Getenv("AIRB_CRASH_UPLOAD_URL")),
		Timeout:   1500 * time.Millisecond,
	}
	if ms := strings.TrimSpace(os.Getenv("AIRB_TELEMETRY_TIMEOUT_MS")); ms != "" {
		if v, err := time.ParseDuration(ms + "ms"); err == nil {
			cfg.Timeout = v
		}
	}
	return cfg
}

func parseBool(v string) bool {
	s := strings.ToLower(strings.TrimSpace(v))
	return s == "1" || s == "true" || s == "yes" || s == "on"
}

// Client is a minimal async sender; events are dropped silently when the
// queue is full or a request fails. It never blocks the UI thread.
type Client struct {
	cfg    Config
	log    *slog.Logger
	cli    *http.Client
	q      chan []byte
	once   sync.Once
	closed chan struct{}
}

var (
	defaultClient *Client
	defaultOnce   sync.Once
)

// InitDefault initializes the package-level client from env on first use.
func InitDefault() {
	defaultOnce.Do(func() { defaultClient = New(FromEnv()) })
}

// InitDefaultWith installs a client built from cfg as the package default.
// A no-op if the default client already exists.
func InitDefaultWith(cfg Config) {
	defaultOnce.Do(func() { defaultClient = New(cfg) })
}

// New constructs a client and starts its send loop.
func New(cfg Config) *Client {
	c := &Client{
		cfg:    cfg,
		log:    applog.WithComponent("telemetry"),
		cli:    &http.Client{Timeout: cfg.Timeout},
		q:      make(chan []byte, 64),
		closed: make(chan struct{}),
	}
	go c.loop()
	return c
}

// Enabled reports whether metrics are opted in and an endpoint is set.
func (c *Client) Enabled() bool { return c != nil && c.cfg.OptIn && c.cfg.EventsURL != "" }

// Event enqueues a small JSON event if enabled. Safe to call anywhere.
func (c *Client) Event(name string, props map[string]any) {
	if !c.Enabled() || name == "" {
		return
	}
	payload := map[string]any{
		"name":    name,
		"ts":      time.Now().UTC().Format(time.RFC3339Nano),
		"version": version.String(),
		"os":      runtime.GOOS,
		"arch":    runtime.GOARCH,
	}
	for k, v := range props {
		// props must be non-PII
		payload[k] = v
	}
	buf, err := json.Marshal(payload)
	if err != nil {
		return
	}
	select {
	case c.q <- buf:
	default:
		// drop when the queue is full
	}
}

// Event using the default client.
func Event(name string, props map[string]any) { InitDefault(); defaultClient.Event(name, props) }

// Flush waits briefly for the queue to drain.
func (c *Client) Flush(ctx context.Context) {
	deadline := time.Now().Add(500 * time.Millisecond)
	for len(c.q) > 0 && time.Now().Before(deadline) {
		select {
		case <-ctx.Done():
			return
		case <-time.After(25 * time.Millisecond):
		}
	}
}

// Close stops the background goroutine.
func (c *Client) Close() { c.once.Do(func() { close(c.closed) }) }

func (c *Client) loop() {
	for {
		select {
		case <-c.closed:
			return
		case buf := <-c.q:
			c.post(c.cfg.EventsURL, "application/json", buf)
		}
	}
}

func (c *Client) post(url, contentType string, body []byte) {
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return
	}
	req.Header.Set("Content-Type", contentType)
	resp, err := c.cli.Do(req)
	if err != nil {
		c.log.Debug("telemetry post failed", slog.Any("err", err))
		return
	}
	_ = resp.Body.Close()
}

// UploadCrash posts an already-serialized crash report if opted in.
func (c *Client) UploadCrash(report []byte) {
	if c == nil || !c.cfg.OptIn || c.cfg.CrashURL == "" {
		return
	}
	go c.post(c.cfg.CrashURL, "text/plain; charset=utf-8", append([]byte(nil), report...))
}

// UploadCrash using the default client.
func UploadCrash(report []byte) { InitDefault(); defaultClient.UploadCrash(report) }
