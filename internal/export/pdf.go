/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package export renders scene snapshots to files. The canvas maps 1:1
// to output units: one scene unit is one PDF point or one PNG pixel.
package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"

	"github.com/helsomnoi/airborne-crew/internal/scene"
)

// ScenePDF writes a one-page vector PDF of the scene at outPath.
// Width and height are the canvas size in points. An invisible scene
// yields a blank page, matching what the render pass shows.
func ScenePDF(st *scene.State, width, height float64, outPath string) error {
	if st == nil {
		return fmt.Errorf("scene state is nil")
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid page size %gx%g", width, height)
	}

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: width, Ht: height},
	})
	pdf.SetTitle("Airborne Crew — Scene", false)
	pdf.AddPageFormat("", gofpdf.SizeType{Wd: width, Ht: height})

	if st.Visible() {
		p := st.Primitive()
		fill := p.Fill
		pdf.SetFillColor(int(fill.R), int(fill.G), int(fill.B))
		t := st.Target()
		switch p.Kind {
		case scene.KindCircle:
			cx := float64(t.X + p.Radius)
			cy := float64(t.Y + p.Radius)
			pdf.Circle(cx, cy, float64(p.Radius), "F")
		case scene.KindRect:
			pdf.Rect(float64(t.X), float64(t.Y), float64(p.Width), float64(p.Height), "F")
		}
	}

	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("ensure out dir: %w", err)
		}
	}
	if err := pdf.OutputFileAndClose(outPath); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}
