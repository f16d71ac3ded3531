/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package scene

import "github.com/helsomnoi/airborne-crew/internal/geom"

// ShapeKind discriminates the drawable primitive variants.
type ShapeKind string

const (
	KindNone   ShapeKind = ""
	KindCircle ShapeKind = "circle"
	KindRect   ShapeKind = "rect"
)

// Color is an 8-bit RGBA paint value serialized with the snapshot.
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

var (
	Red   = Color{R: 255, A: 255}
	Black = Color{A: 255}
	White = Color{R: 255, G: 255, B: 255, A: 255}
)

// Shape is a tagged-union drawable descriptor. Kind selects which of the
// remaining fields are meaningful: Radius for circles, Width/Height for
// rectangles. The zero value is the absent shape.
type Shape struct {
	Kind   ShapeKind `json:"kind"`
	Radius float32   `json:"radius,omitempty"`
	Width  float32   `json:"width,omitempty"`
	Height float32   `json:"height,omitempty"`
	Fill   Color     `json:"fill"`
}

// Circle constructs a circular shape with the given radius and fill.
func Circle(radius float32, fill Color) Shape {
	return Shape{Kind: KindCircle, Radius: radius, Fill: fill}
}

// Rectangle constructs a rectangular shape with the given size and fill.
func Rectangle(w, h float32, fill Color) Shape {
	return Shape{Kind: KindRect, Width: w, Height: h, Fill: fill}
}

// Size returns the bounding-box size of the shape.
func (s Shape) Size() geom.Size {
	switch s.Kind {
	case KindCircle:
		return geom.Size{W: 2 * s.Radius, H: 2 * s.Radius}
	case KindRect:
		return geom.Size{W: s.Width, H: s.Height}
	default:
		return geom.Size{}
	}
}

// HalfExtent returns the offset from the shape's top-left corner to its
// center. Pointer tracking subtracts it so the shape stays centered
// under the cursor.
func (s Shape) HalfExtent() geom.Pt { return s.Size().Half() }
