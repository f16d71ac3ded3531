/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package crash turns panics into a crash report file plus a best-effort
// autosave of the scene, instead of a bare stack trace on stderr.
package crash

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"time"

	applog "github.com/helsomnoi/airborne-crew/internal/log"
	"github.com/helsomnoi/airborne-crew/internal/scene"
	"github.com/helsomnoi/airborne-crew/internal/storage"
	"github.com/helsomnoi/airborne-crew/internal/telemetry"
	"github.com/helsomnoi/airborne-crew/internal/version"
)

// exitFn allows testing Recover without terminating the test process.
var exitFn = os.Exit

// Recover captures a panic, logs it with stack trace, writes a crash
// report file, autosaves the scene snapshot (if a scene is given), and
// exits non-zero.
//
// Usage: defer func() { crash.Recover(st) }()
func Recover(st *scene.State) {
	r := recover()
	if r == nil {
		return
	}
	l := applog.WithComponent("crash")
	stack := debug.Stack()
	l.Error("panic recovered", slog.Any("panic", r), slog.String("stack", string(stack)))

	reportPath, err := writeReport(r, stack)
	if err != nil {
		l.Error("write crash report failed", slog.Any("err", err))
	}
	if st != nil {
		if path, perr := storage.DefaultSessionPath(); perr == nil {
			if werr := storage.WriteSnapshot(path, st.Snapshot()); werr != nil {
				l.Error("autosave snapshot failed", slog.Any("err", werr))
			} else {
				l.Info("autosave snapshot written", slog.String("path", path))
			}
		}
	}

	fmt.Fprintf(os.Stderr, "A fatal error occurred. A crash report was saved to: %s\n", reportPath)
	fmt.Fprintf(os.Stderr, "Version: %s\n", version.String())
	exitFn(2)
}

func writeReport(panicVal any, stack []byte) (string, error) {
	stamp := time.Now().Format("20060102-150405")
	path := filepath.Join(os.TempDir(), fmt.Sprintf("airborne-crash-%s.log", stamp))

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Airborne Crew Crash Report\n")
	fmt.Fprintf(&buf, "Timestamp: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(&buf, "Version: %s\n", version.String())
	fmt.Fprintf(&buf, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	fmt.Fprintf(&buf, "\nPanic: %v\n\n", panicVal)
	fmt.Fprintf(&buf, "Stack:\n%s\n", string(stack))

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return path, err
	}
	// opt-in upload of the anonymized report
	telemetry.UploadCrash(buf.Bytes())
	return path, nil
}
