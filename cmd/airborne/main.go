/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/helsomnoi/airborne-crew/internal/crash"
	"github.com/helsomnoi/airborne-crew/internal/export"
	applog "github.com/helsomnoi/airborne-crew/internal/log"
	"github.com/helsomnoi/airborne-crew/internal/savefile"
	"github.com/helsomnoi/airborne-crew/internal/scene"
	"github.com/helsomnoi/airborne-crew/internal/storage"
	"github.com/helsomnoi/airborne-crew/internal/ui"
	"github.com/helsomnoi/airborne-crew/internal/version"
)

func usage() {
	fmt.Println("Airborne Crew — canvas playground")
	fmt.Printf("Version: %s\n", version.String())
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  airborne                                   Launch desktop UI (build with -tags fyne for full UI)")
	fmt.Println("  airborne ui                                Same as above")
	fmt.Println("  airborne version|-v|--version              Show version")
	fmt.Println("  airborne save <path>                       Write the save-file payload to <path>")
	fmt.Println("  airborne export png|pdf <out> [flags]      Render the last session to <out>")
	fmt.Println()
	fmt.Println("Export flags:")
	fmt.Println("  -width N   canvas width (default 800)")
	fmt.Println("  -height N  canvas height (default 600)")
}

func main() {
	applog.Init(applog.FromEnv())
	l := applog.WithComponent("cli")

	st := scene.New()
	defer crash.Recover(st)

	args := os.Args
	l.Debug("start", slog.Int("args", len(args)))
	if len(args) > 1 {
		switch args[1] {
		case "version", "--version", "-v":
			fmt.Println("Airborne Crew — canvas playground")
			fmt.Println(version.String())
			return
		case "save":
			if len(args) < 3 {
				fmt.Println("save requires <path>")
				usage()
				os.Exit(2)
			}
			path := args[2]
			l.Info("save payload", slog.String("path", path))
			if err := savefile.Write(path); err != nil {
				l.Error("save failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			fmt.Println("Wrote", path)
			return
		case "export":
			runExport(l, st, args[2:])
			return
		case "ui":
			if err := ui.Run(); err != nil {
				l.Error("ui failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			return
		case "help", "--help", "-h":
			usage()
			return
		default:
			fmt.Println("Unknown command:", args[1])
			usage()
			os.Exit(2)
		}
	}

	if err := ui.Run(); err != nil {
		l.Error("ui failed", slog.Any("err", err))
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}

// runExport renders the scene headlessly. It resumes the last session
// snapshot if one exists, otherwise it renders the started state.
func runExport(l *slog.Logger, st *scene.State, args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	width := fs.Int("width", 800, "canvas width")
	height := fs.Int("height", 600, "canvas height")
	if len(args) < 2 {
		fmt.Println("export requires a format (png|pdf) and <out>")
		usage()
		os.Exit(2)
	}
	format := args[0]
	out := args[1]
	_ = fs.Parse(args[2:])

	if spath, err := storage.DefaultSessionPath(); err == nil {
		if snap, rerr := storage.ReadSnapshot(spath); rerr == nil {
			st.Restore(snap)
			l.Info("session restored", slog.String("path", spath))
		}
	}
	if !st.Visible() && st.Primitive().Kind == scene.KindNone {
		st.SetPrimitive(scene.DefaultCircle())
		st.SetVisible(true)
		st.SetTarget(scene.StartTarget)
	}

	var err error
	switch format {
	case "png":
		err = export.ScenePNG(st, *width, *height, out)
	case "pdf":
		err = export.ScenePDF(st, float64(*width), float64(*height), out)
	default:
		fmt.Println("Unknown export format:", format)
		usage()
		os.Exit(2)
	}
	if err != nil {
		l.Error("export failed", slog.String("format", format), slog.Any("err", err))
		fmt.Println("Error:", err)
		os.Exit(1)
	}
	fmt.Println("Exported to", out)
}
