/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package input translates raw pointer events into scene updates.
package input

import (
	"github.com/helsomnoi/airborne-crew/internal/geom"
	"github.com/helsomnoi/airborne-crew/internal/scene"
)

// Router forwards pointer movement to the scene target.
type Router struct {
	Scene *scene.State
}

func NewRouter(st *scene.State) *Router { return &Router{Scene: st} }

// PointerMoved centers the primitive under the pointer: the new target
// is the pointer position minus the primitive's half extent. Positions
// outside the canvas are accepted as-is; the render pass clips.
func (r *Router) PointerMoved(p geom.Pt) {
	if r == nil || r.Scene == nil {
		return
	}
	r.Scene.SetTarget(p.Sub(r.Scene.Primitive().HalfExtent()))
}
