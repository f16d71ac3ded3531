//go:build fyne && cgo

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package ui

import (
	"image/color"
	"log/slog"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	fstorage "fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"github.com/helsomnoi/airborne-crew/internal/command"
	"github.com/helsomnoi/airborne-crew/internal/config"
	"github.com/helsomnoi/airborne-crew/internal/crash"
	"github.com/helsomnoi/airborne-crew/internal/export"
	"github.com/helsomnoi/airborne-crew/internal/geom"
	"github.com/helsomnoi/airborne-crew/internal/input"
	applog "github.com/helsomnoi/airborne-crew/internal/log"
	"github.com/helsomnoi/airborne-crew/internal/scene"
	"github.com/helsomnoi/airborne-crew/internal/storage"
	"github.com/helsomnoi/airborne-crew/internal/telemetry"
)

// Run starts the Fyne-based desktop shell: one window, a plane canvas
// following the mouse, and the menu bar driving the dispatcher.
func Run() error {
	applog.Init(applog.FromEnv())
	l := applog.WithComponent("ui")
	l.Info("starting UI")

	cfg, cerr := config.Load()
	if cerr != nil {
		l.Error("load config failed, using defaults", slog.Any("err", cerr))
	}
	tcfg := telemetry.FromEnv()
	if cfg.General.TelemetryOptIn {
		tcfg.OptIn = true
	}
	telemetry.InitDefaultWith(tcfg)

	// Fyne picks its theme variant from FYNE_THEME; bridge the config
	// choice unless the user already set it.
	if t := cfg.General.Theme; (t == "light" || t == "dark") && os.Getenv("FYNE_THEME") == "" {
		_ = os.Setenv("FYNE_THEME", t)
	}

	st := scene.New()
	defer crash.Recover(st)

	// Resume the last session if a snapshot exists.
	if spath, err := storage.DefaultSessionPath(); err == nil {
		if snap, rerr := storage.ReadSnapshot(spath); rerr == nil {
			st.Restore(snap)
			l.Info("session restored", slog.String("path", spath))
		} else {
			l.Debug("no session to restore", slog.Any("err", rerr))
		}
	}

	fyneApp := app.NewWithID("airbornecrew")
	w := fyneApp.NewWindow("Airborne Crew")

	// Restore window size from preferences (with sane minimums)
	prefs := fyneApp.Preferences()
	winW := prefs.IntWithFallback("window.width", cfg.Window.Width)
	winH := prefs.IntWithFallback("window.height", cfg.Window.Height)
	if winW < 400 {
		winW = 400
	}
	if winH < 300 {
		winH = 300
	}
	w.Resize(fyne.NewSize(float32(winW), float32(winH)))

	status := widget.NewLabel("Ready")
	plane := NewPlaneCanvas(st)
	disp := command.NewDispatcher(st, &fyneInfo{win: w}, &fyneSaver{win: w})

	dispatch := func(labels ...string) {
		if err := disp.Dispatch(command.Path(labels...)); err != nil {
			dialog.ShowError(err, w)
			return
		}
		plane.Refresh()
	}

	aboutItem := fyne.NewMenuItem("About", func() { dispatch("Info", "About") })
	infoMenu := fyne.NewMenu("Info", aboutItem)

	startItem := fyne.NewMenuItem("Start", func() {
		dispatch("Program", "Start")
		status.SetText("Program started.")
	})
	finishItem := fyne.NewMenuItem("Finish", func() {
		dispatch("Program", "Finish")
		status.SetText("Program finished.")
	})
	programMenu := fyne.NewMenu("Program", startItem, finishItem)

	saveItem := fyne.NewMenuItem("Save", func() { dispatch("File", "Save") })
	saveItem.Shortcut = &desktop.CustomShortcut{KeyName: fyne.KeyS, Modifier: fyne.KeyModifierControl}

	exportPNGItem := fyne.NewMenuItem("Export PNG…", func() {
		l.Info("menu: export png")
		save := dialog.NewFileSave(func(uc fyne.URIWriteCloser, err error) {
			if err != nil {
				dialog.ShowError(err, w)
				return
			}
			if uc == nil {
				return
			}
			outPath := uc.URI().Path()
			_ = uc.Close()
			sz := plane.Size()
			if err := export.ScenePNG(st, int(sz.Width), int(sz.Height), outPath); err != nil {
				dialog.ShowError(err, w)
				return
			}
			dialog.ShowInformation("Export PNG", "Exported to "+outPath, w)
		}, w)
		save.SetFileName("scene.png")
		save.SetFilter(fstorage.NewExtensionFileFilter([]string{".png"}))
		save.Show()
	})
	exportPDFItem := fyne.NewMenuItem("Export PDF…", func() {
		l.Info("menu: export pdf")
		save := dialog.NewFileSave(func(uc fyne.URIWriteCloser, err error) {
			if err != nil {
				dialog.ShowError(err, w)
				return
			}
			if uc == nil {
				return
			}
			outPath := uc.URI().Path()
			_ = uc.Close()
			sz := plane.Size()
			if err := export.ScenePDF(st, float64(sz.Width), float64(sz.Height), outPath); err != nil {
				dialog.ShowError(err, w)
				return
			}
			dialog.ShowInformation("Export PDF", "Exported to "+outPath, w)
		}, w)
		save.SetFileName("scene.pdf")
		save.SetFilter(fstorage.NewExtensionFileFilter([]string{".pdf"}))
		save.Show()
	})
	fileMenu := fyne.NewMenu("File", saveItem, fyne.NewMenuItemSeparator(), exportPNGItem, exportPDFItem)

	w.SetMainMenu(fyne.NewMainMenu(infoMenu, programMenu, fileMenu))

	w.SetContent(container.NewBorder(nil, status, nil, nil, plane))

	// Persist preferences and the session snapshot on close
	w.SetCloseIntercept(func() {
		sz := w.Canvas().Size()
		prefs.SetInt("window.width", int(sz.Width))
		prefs.SetInt("window.height", int(sz.Height))
		if spath, err := storage.DefaultSessionPath(); err == nil {
			if werr := storage.WriteSnapshot(spath, st.Snapshot()); werr != nil {
				l.Error("session snapshot failed", slog.Any("err", werr))
			}
		}
		w.Close()
	})

	w.ShowAndRun()
	return nil
}

// fyneInfo shows informational modals on the main window.
type fyneInfo struct{ win fyne.Window }

func (d *fyneInfo) ShowInfo(title, message string) {
	dialog.ShowInformation(title, message, d.win)
}

// fyneSaver presents the native save dialog. The toolkit dialog is
// asynchronous: Show returns nil immediately and write errors surface
// in an error dialog on the window.
type fyneSaver struct{ win fyne.Window }

func (d *fyneSaver) Show(req command.SaveRequest, save func(path string) error) error {
	fd := dialog.NewFileSave(func(uc fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, d.win)
			return
		}
		if uc == nil {
			// canceled
			return
		}
		outPath := uc.URI().Path()
		_ = uc.Close()
		if serr := save(outPath); serr != nil {
			dialog.ShowError(serr, d.win)
		}
	}, d.win)
	fd.SetFileName(req.Suggested)
	fd.SetFilter(fstorage.NewExtensionFileFilter(req.Exts))
	fd.Show()
	return nil
}

// PlaneCanvas draws the scene primitive over a white background and
// feeds pointer movement into the input router.
type PlaneCanvas struct {
	widget.BaseWidget

	scene  *scene.State
	router *input.Router
}

func NewPlaneCanvas(st *scene.State) *PlaneCanvas {
	pc := &PlaneCanvas{scene: st, router: input.NewRouter(st)}
	pc.ExtendBaseWidget(pc)
	return pc
}

func (p *PlaneCanvas) CreateRenderer() fyne.WidgetRenderer {
	bg := canvas.NewRectangle(color.White)
	circle := canvas.NewCircle(color.Transparent)
	rect := canvas.NewRectangle(color.Transparent)
	circle.Hide()
	rect.Hide()
	r := &planeCanvasRenderer{
		pc:      p,
		bg:      bg,
		circle:  circle,
		rect:    rect,
		objects: []fyne.CanvasObject{bg, circle, rect},
	}
	r.syncPrimitive()
	return r
}

// MouseIn implements desktop.Hoverable.
func (p *PlaneCanvas) MouseIn(e *desktop.MouseEvent) { p.follow(e) }

// MouseMoved retargets the primitive so it stays centered under the
// cursor.
func (p *PlaneCanvas) MouseMoved(e *desktop.MouseEvent) { p.follow(e) }

// MouseOut implements desktop.Hoverable.
func (p *PlaneCanvas) MouseOut() {}

func (p *PlaneCanvas) follow(e *desktop.MouseEvent) {
	p.router.PointerMoved(geom.P(e.Position.X, e.Position.Y))
	p.Refresh()
}

type planeCanvasRenderer struct {
	pc      *PlaneCanvas
	bg      *canvas.Rectangle
	circle  *canvas.Circle
	rect    *canvas.Rectangle
	objects []fyne.CanvasObject
}

func (r *planeCanvasRenderer) Layout(size fyne.Size) {
	r.bg.Resize(size)
	r.bg.Move(fyne.NewPos(0, 0))
	r.syncPrimitive()
}

func (r *planeCanvasRenderer) MinSize() fyne.Size { return fyne.NewSize(400, 300) }

func (r *planeCanvasRenderer) Refresh() {
	r.syncPrimitive()
	canvas.Refresh(r.pc)
}

func (r *planeCanvasRenderer) Objects() []fyne.CanvasObject { return r.objects }

func (r *planeCanvasRenderer) Destroy() {}

// syncPrimitive positions the drawn object at the scene target. The
// target is the primitive's bounding-box top-left corner.
func (r *planeCanvasRenderer) syncPrimitive() {
	st := r.pc.scene
	if st == nil || !st.Visible() {
		r.circle.Hide()
		r.rect.Hide()
		return
	}
	p := st.Primitive()
	t := st.Target()
	fill := color.RGBA{R: p.Fill.R, G: p.Fill.G, B: p.Fill.B, A: p.Fill.A}
	sz := p.Size()
	switch p.Kind {
	case scene.KindCircle:
		r.circle.FillColor = fill
		r.circle.Move(fyne.NewPos(t.X, t.Y))
		r.circle.Resize(fyne.NewSize(sz.W, sz.H))
		r.circle.Show()
		r.rect.Hide()
	case scene.KindRect:
		r.rect.FillColor = fill
		r.rect.Move(fyne.NewPos(t.X, t.Y))
		r.rect.Resize(fyne.NewSize(sz.W, sz.H))
		r.rect.Show()
		r.circle.Hide()
	default:
		r.circle.Hide()
		r.rect.Hide()
	}
}
