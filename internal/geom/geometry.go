/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package geom provides the 2D primitives shared by the scene model,
// the input router and the render/export backends.
// Float values use float32 to align with the UI toolkit.
package geom

// Pt is a 2D point or offset.
type Pt struct{ X, Y float32 }

// P is shorthand for constructing a point.
func P(x, y float32) Pt { return Pt{X: x, Y: y} }

func (p Pt) Add(o Pt) Pt { return Pt{X: p.X + o.X, Y: p.Y + o.Y} }
func (p Pt) Sub(o Pt) Pt { return Pt{X: p.X - o.X, Y: p.Y - o.Y} }

// Size is a width/height pair.
type Size struct{ W, H float32 }

// Half returns the half extent of the size as an offset.
func (s Size) Half() Pt { return Pt{X: s.W / 2, Y: s.H / 2} }

// Rect is an axis-aligned rectangle defined by min corner and size.
type Rect struct {
	X, Y float32
	W, H float32
}

func R(x, y, w, h float32) Rect { return Rect{X: x, Y: y, W: w, H: h} }

func (r Rect) Min() Pt { return Pt{r.X, r.Y} }
func (r Rect) Max() Pt { return Pt{r.X + r.W, r.Y + r.H} }

func (r Rect) Contains(p Pt) bool {
	return p.X >= r.X && p.Y >= r.Y && p.X <= r.X+r.W && p.Y <= r.Y+r.H
}

// InCircle reports whether p lies inside the circle with top-left corner
// at origin and the given radius (matching how the toolkit positions a
// circle by its bounding box).
func InCircle(p, origin Pt, radius float32) bool {
	if radius <= 0 {
		return false
	}
	dx := p.X - (origin.X + radius)
	dy := p.Y - (origin.Y + radius)
	return dx*dx+dy*dy <= radius*radius
}
