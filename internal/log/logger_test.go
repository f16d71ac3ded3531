/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package log

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// TestInitWithFileHandlerWritesJSON verifies that Init with a file handler
// writes JSON records carrying the static and contextual attributes.
func TestInitWithFileHandlerWritesJSON(t *testing.T) {
	fpath := filepath.Join(os.TempDir(), fmt.Sprintf("airb_log_%d.json", time.Now().UnixNano()))
	t.Cleanup(func() { _ = os.Remove(fpath) })

	Init(Options{Level: "debug", Format: "json", File: fpath})

	l := WithComponent("testcomp")
	l = WithOperation(l, "op1")
	l.Info("hello", slog.String("k", "v"))

	time.Sleep(50 * time.Millisecond)

	b, err := os.ReadFile(fpath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	var last string
	sc := bufio.NewScanner(strings.NewReader(string(b)))
	for sc.Scan() {
		if s := strings.TrimSpace(sc.Text()); s != "" {
			last = s
		}
	}
	if last == "" {
		t.Fatalf("no log lines written")
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(last), &m); err != nil {
		t.Fatalf("parse log line %q: %v", last, err)
	}
	for _, key := range []string{"app", "ver", "component", "op", "k"} {
		if _, ok := m[key]; !ok {
			t.Fatalf("log line missing %q: %v", key, m)
		}
	}
	if m["component"] != "testcomp" || m["op"] != "op1" || m["k"] != "v" {
		t.Fatalf("unexpected attribute values: %v", m)
	}
}

func TestConsoleHandlerLineFormat(t *testing.T) {
	var sb strings.Builder
	h := &consoleHandler{level: slog.LevelInfo, w: &sb}
	l := slog.New(h).With(slog.String("component", "ui"))

	l.Info("ready", slog.Int("n", 3))
	out := sb.String()
	if !strings.Contains(out, "INF ready") {
		t.Fatalf("missing level/message in %q", out)
	}
	if !strings.Contains(out, "component=ui") || !strings.Contains(out, "n=3") {
		t.Fatalf("missing attributes in %q", out)
	}
}

func TestConsoleHandlerLevelFilter(t *testing.T) {
	var sb strings.Builder
	h := &consoleHandler{level: slog.LevelWarn, w: &sb}
	if h.Enabled(context.Background(), slog.LevelInfo) {
		t.Fatalf("info should be filtered at warn level")
	}
	if !h.Enabled(context.Background(), slog.LevelError) {
		t.Fatalf("error should pass at warn level")
	}
}

func TestParseLevelDefaultsToInfo(t *testing.T) {
	if got := parseLevel("bogus"); got != slog.LevelInfo {
		t.Fatalf("parseLevel(bogus) = %v, want info", got)
	}
	if got := parseLevel("warning"); got != slog.LevelWarn {
		t.Fatalf("parseLevel(warning) = %v, want warn", got)
	}
}

func TestFromEnvReadsOverrides(t *testing.T) {
	t.Setenv("AIRB_LOG_LEVEL", "debug")
	t.Setenv("AIRB_LOG_FORMAT", "json")
	t.Setenv("AIRB_LOG_SOURCE", "true")
	opts := FromEnv()
	if opts.Level != "debug" || opts.Format != "json" || !opts.AddSource {
		t.Fatalf("unexpected options from env: %+v", opts)
	}
}
