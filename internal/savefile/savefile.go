/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package savefile writes the File/Save payload. The payload is a fixed
// text document; the interesting part of the operation lives in the
// dialog flow, not here.
package savefile

import (
	"fmt"
	"io"
	"os"
)

// Payload is the document written by File/Save.
const Payload = "TEST\n"

// SuggestedName is the default filename offered by the save dialog.
const SuggestedName = "untitled.txt"

// Write creates or truncates the file at path and writes the payload,
// flushing it to disk. Errors are returned to the caller; a failed save
// must be visible to the user, not silently dropped.
func Write(path string) (err error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open save file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close save file: %w", cerr)
		}
	}()
	if err := WriteTo(f); err != nil {
		return err
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("sync save file: %w", err)
	}
	return nil
}

// WriteTo writes the payload to an already-open destination, such as the
// writer handed out by the toolkit's save dialog.
func WriteTo(w io.Writer) error {
	if _, err := io.WriteString(w, Payload); err != nil {
		return fmt.Errorf("write payload: %w", err)
	}
	return nil
}
