/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package command routes menu selections to their actions. It owns no UI:
// dialogs and file pickers are collaborators passed in behind small
// interfaces so the routing stays testable without a display.
package command

import (
	"fmt"
	"log/slog"

	applog "github.com/helsomnoi/airborne-crew/internal/log"
	"github.com/helsomnoi/airborne-crew/internal/savefile"
	"github.com/helsomnoi/airborne-crew/internal/scene"
	"github.com/helsomnoi/airborne-crew/internal/telemetry"
	"github.com/helsomnoi/airborne-crew/internal/version"
)

// MenuPath is the ordered pair of labels identifying a selected menu
// item, e.g. {"File", "Save"}. Paths of any other length never match.
type MenuPath []string

// Path builds a MenuPath from labels.
func Path(labels ...string) MenuPath { return MenuPath(labels) }

func (p MenuPath) is(menu, item string) bool {
	return len(p) == 2 && p[0] == menu && p[1] == item
}

// Fixed texts of the dialog flows. The save dialog strings follow the
// application's original localization.
const (
	aboutMessage    = "This program was developed by comrademashkov"
	SaveDialogTitle = "Сохранить файл"
	SaveFilterDesc  = "Текстовые файлы (*.txt)"
)

// SaveFilterExts lists the extensions offered by the save dialog filter.
var SaveFilterExts = []string{".txt"}

// AboutText is the body of the Info/About dialog.
func AboutText() string {
	return fmt.Sprintf("%s\nVersion: %s", aboutMessage, version.String())
}

// InfoDialog displays an informational modal. The host container owns
// the dialog and removes it when the user dismisses it.
type InfoDialog interface {
	ShowInfo(title, message string)
}

// SaveRequest describes what the native save dialog should offer.
type SaveRequest struct {
	Title     string
	Suggested string
	Filter    string
	Exts      []string
}

// SaveDialog presents a native save-path picker. Implementations call
// save with the chosen path; on cancellation they must not call it at
// all. Asynchronous implementations (toolkit dialogs) return nil
// immediately and surface save's error themselves; synchronous ones may
// return it directly.
type SaveDialog interface {
	Show(req SaveRequest, save func(path string) error) error
}

// Dispatcher executes menu actions against the scene.
type Dispatcher struct {
	Scene *scene.State
	Info  InfoDialog
	Saver SaveDialog

	log *slog.Logger
}

// NewDispatcher wires a dispatcher for the given scene and collaborators.
func NewDispatcher(st *scene.State, info InfoDialog, saver SaveDialog) *Dispatcher {
	return &Dispatcher{Scene: st, Info: info, Saver: saver, log: applog.WithComponent("command")}
}

// Dispatch performs the action bound to path. Unrecognized paths are a
// silent no-op, not an error. The only error source is File/Save with a
// synchronous picker; write failures are returned, never swallowed.
func (d *Dispatcher) Dispatch(path MenuPath) error {
	switch {
	case path.is("Info", "About"):
		d.showAbout()
	case path.is("Program", "Start"):
		d.startProgram()
	case path.is("Program", "Finish"):
		d.finishProgram()
	case path.is("File", "Save"):
		return d.saveFile()
	default:
		d.log.Debug("unbound menu path", slog.Any("path", []string(path)))
	}
	return nil
}

func (d *Dispatcher) showAbout() {
	d.log.Info("menu: about")
	if d.Info != nil {
		d.Info.ShowInfo("About", AboutText())
	}
}

func (d *Dispatcher) startProgram() {
	d.log.Info("menu: program start")
	d.Scene.SetPrimitive(scene.DefaultCircle())
	d.Scene.SetVisible(true)
	d.Scene.SetTarget(scene.StartTarget)
	telemetry.Event("program_start", nil)
}

func (d *Dispatcher) finishProgram() {
	d.log.Info("menu: program finish")
	d.Scene.SetVisible(false)
	telemetry.Event("program_finish", nil)
}

func (d *Dispatcher) saveFile() error {
	d.log.Info("menu: save")
	if d.Saver == nil {
		return nil
	}
	req := SaveRequest{
		Title:     SaveDialogTitle,
		Suggested: savefile.SuggestedName,
		Filter:    SaveFilterDesc,
		Exts:      SaveFilterExts,
	}
	return d.Saver.Show(req, func(p string) error {
		if err := savefile.Write(p); err != nil {
			d.log.Error("save failed", slog.String("path", p), slog.Any("err", err))
			return err
		}
		d.log.Info("saved", slog.String("path", p))
		telemetry.Event("file_save", nil)
		return nil
	})
}
