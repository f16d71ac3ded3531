/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"

	xvector "golang.org/x/image/vector"

	"github.com/helsomnoi/airborne-crew/internal/scene"
)

// circleKappa is the cubic Bézier control distance approximating a
// quarter circle.
const circleKappa = 0.55228475

// ScenePNG writes an anti-aliased raster snapshot of the scene at
// outPath. Width and height are pixels; background is white.
func ScenePNG(st *scene.State, width, height int, outPath string) error {
	if st == nil {
		return fmt.Errorf("scene state is nil")
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid image size %dx%d", width, height)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	if st.Visible() {
		p := st.Primitive()
		t := st.Target()
		r := xvector.NewRasterizer(width, height)
		switch p.Kind {
		case scene.KindCircle:
			circlePath(r, t.X+p.Radius, t.Y+p.Radius, p.Radius)
		case scene.KindRect:
			r.MoveTo(t.X, t.Y)
			r.LineTo(t.X+p.Width, t.Y)
			r.LineTo(t.X+p.Width, t.Y+p.Height)
			r.LineTo(t.X, t.Y+p.Height)
			r.ClosePath()
		}
		fill := image.NewUniform(color.RGBA{R: p.Fill.R, G: p.Fill.G, B: p.Fill.B, A: p.Fill.A})
		r.Draw(img, img.Bounds(), fill, image.Point{})
	}

	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("ensure out dir: %w", err)
		}
	}
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create png: %w", err)
	}
	defer func() { _ = f.Close() }()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// circlePath appends a circle of radius rad centered at (cx, cy) as
// four cubic Bézier segments.
func circlePath(r *xvector.Rasterizer, cx, cy, rad float32) {
	k := float32(circleKappa) * rad
	r.MoveTo(cx+rad, cy)
	r.CubeTo(cx+rad, cy+k, cx+k, cy+rad, cx, cy+rad)
	r.CubeTo(cx-k, cy+rad, cx-rad, cy+k, cx-rad, cy)
	r.CubeTo(cx-rad, cy-k, cx-k, cy-rad, cx, cy-rad)
	r.CubeTo(cx+k, cy-rad, cx+rad, cy-k, cx+rad, cy)
	r.ClosePath()
}
