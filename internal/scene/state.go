/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package scene holds the mutable model of the single on-screen object.
// All access happens on the UI event thread; no locking is needed.
package scene

import "github.com/helsomnoi/airborne-crew/internal/geom"

// StartTarget is where the shape is placed when the program starts.
var StartTarget = geom.P(50, 50)

// DefaultRadius is the radius of the default circle primitive.
const DefaultRadius float32 = 50

// State is the scene model read by the render pass each frame.
// visible=false means the render pass draws nothing regardless of the
// primitive or target values.
type State struct {
	primitive Shape
	target    geom.Pt
	visible   bool
}

// New returns a fresh state with no primitive and visibility off.
func New() *State { return &State{} }

func (s *State) SetPrimitive(p Shape)   { s.primitive = p }
func (s *State) Primitive() Shape       { return s.primitive }
func (s *State) SetVisible(v bool)      { s.visible = v }
func (s *State) Visible() bool          { return s.visible }
func (s *State) SetTarget(p geom.Pt)    { s.target = p }
func (s *State) Target() geom.Pt        { return s.target }

// DefaultCircle is the primitive assigned on program start.
func DefaultCircle() Shape { return Circle(DefaultRadius, Red) }

// Snapshot is the serializable form of State used for session restore
// and crash autosave.
type Snapshot struct {
	Primitive Shape   `json:"primitive"`
	TargetX   float32 `json:"targetX"`
	TargetY   float32 `json:"targetY"`
	Visible   bool    `json:"visible"`
}

// Snapshot captures the current state.
func (s *State) Snapshot() Snapshot {
	return Snapshot{
		Primitive: s.primitive,
		TargetX:   s.target.X,
		TargetY:   s.target.Y,
		Visible:   s.visible,
	}
}

// Restore overwrites the state from a snapshot.
func (s *State) Restore(snap Snapshot) {
	s.primitive = snap.Primitive
	s.target = geom.P(snap.TargetX, snap.TargetY)
	s.visible = snap.Visible
}
