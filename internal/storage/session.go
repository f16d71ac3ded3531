/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package storage persists the session snapshot: the scene state written
// on window close (and by the crash handler) and restored on startup.
// Snapshots are validated against an embedded JSON schema on read so a
// corrupt file degrades to a clean start instead of a broken scene.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"runtime"

	gojsonschema "github.com/xeipuuv/gojsonschema"

	"github.com/helsomnoi/airborne-crew/internal/scene"
)

// SessionFileName is the snapshot file name inside the user data dir.
const SessionFileName = "session.json"

// snapshotSchema is the contract for a stored session snapshot.
const snapshotSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["primitive", "targetX", "targetY", "visible"],
  "properties": {
    "primitive": {
      "type": "object",
      "required": ["kind"],
      "properties": {
        "kind": {"type": "string", "enum": ["", "circle", "rect"]},
        "radius": {"type": "number", "minimum": 0},
        "width": {"type": "number", "minimum": 0},
        "height": {"type": "number", "minimum": 0},
        "fill": {
          "type": "object",
          "properties": {
            "r": {"type": "integer", "minimum": 0, "maximum": 255},
            "g": {"type": "integer", "minimum": 0, "maximum": 255},
            "b": {"type": "integer", "minimum": 0, "maximum": 255},
            "a": {"type": "integer", "minimum": 0, "maximum": 255}
          }
        }
      }
    },
    "targetX": {"type": "number"},
    "targetY": {"type": "number"},
    "visible": {"type": "boolean"}
  }
}`

// DefaultSessionPath returns the per-user snapshot location.
func DefaultSessionPath() (string, error) {
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "AirborneCrew")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "AirborneCrew")
	default:
		base = filepath.Join(os.Getenv("HOME"), ".local", "state", "airborne-crew")
	}
	if base == "" {
		return "", errors.New("cannot resolve user data directory")
	}
	return filepath.Join(base, SessionFileName), nil
}

// WriteSnapshot persists snap to path with transactional semantics:
// write to a temp file in the same directory, then rename over target.
func WriteSnapshot(path string, snap scene.Snapshot) error {
	if path == "" {
		return errors.New("empty snapshot path")
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("ensure snapshot dir: %w", err)
	}
	temp := filepath.Join(dir, fmt.Sprintf(".%s.tmp-%d-%d", SessionFileName, os.Getpid(), rand.Int()))
	if err := writeFileSync(temp, data); err != nil {
		return fmt.Errorf("write temp snapshot: %w", err)
	}
	// On Windows, rename does not replace; remove the target first.
	if _, err := os.Stat(path); err == nil {
		_ = os.Remove(path)
	}
	if err := os.Rename(temp, path); err != nil {
		_ = os.Remove(temp)
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}

// ReadSnapshot loads and validates the snapshot at path.
func ReadSnapshot(path string) (scene.Snapshot, error) {
	var snap scene.Snapshot
	data, err := os.ReadFile(path)
	if err != nil {
		return snap, fmt.Errorf("read snapshot: %w", err)
	}
	if err := validateSnapshot(data); err != nil {
		return snap, err
	}
	if err := json.Unmarshal(data, &snap); err != nil {
		return snap, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return snap, nil
}

func validateSnapshot(data []byte) error {
	schemaLoader := gojsonschema.NewStringLoader(snapshotSchema)
	docLoader := gojsonschema.NewBytesLoader(data)
	result, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return fmt.Errorf("validate snapshot: %w", err)
	}
	if !result.Valid() {
		msgs := result.Errors()
		if len(msgs) > 0 {
			return fmt.Errorf("invalid snapshot: %s", msgs[0])
		}
		return errors.New("invalid snapshot")
	}
	return nil
}

// writeFileSync writes data to a file and flushes it to disk.
func writeFileSync(path string, data []byte) (err error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if _, err := f.Write(data); err != nil {
		return err
	}
	return f.Sync()
}
