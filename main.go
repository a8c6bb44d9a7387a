// Package main provides the entry point for the Image View application.
package main

import (
	"flag"
	"log"
	"log/slog"

	"image-view/internal/app"
	viewimage "image-view/internal/image"
	"image-view/internal/render"
	"image-view/internal/version"
	"image-view/internal/viewer"
	"image-view/ui/mainwindow"
	"image-view/ui/prefs"

	fyneapp "fyne.io/fyne/v2/app"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	watch := flag.Bool("watch", false, "reload the image when it changes on disk")
	flag.Parse()

	log.Printf("Starting %s", version.String())

	appPrefs := prefs.Load()
	logger := slog.Default()

	v := viewer.New(
		viewer.WithLogger(logger),
		viewer.WithSettleDelay(appPrefs.Duration(prefs.KeySettleDelay, render.DefaultSettleDelay)),
		viewer.WithQualityThreshold(appPrefs.Int(prefs.KeyQualityThreshold, render.DefaultQualityThreshold)),
		viewer.WithBackground(appPrefs.Color(prefs.KeyBackground, viewimage.DefaultBackground)),
		viewer.WithGrid(appPrefs.Bool(prefs.KeyGrid, false)),
	)
	defer v.Close()

	state := app.NewState(v, logger)

	fyneApp := fyneapp.NewWithID("io.github.image-view")
	fyneApp.Settings().SetTheme(&app.ViewerTheme{})

	win := mainwindow.New(fyneApp, state, appPrefs)

	// Handle command line arguments, falling back to the last file
	path := flag.Arg(0)
	if path == "" {
		path = appPrefs.String(prefs.KeyLastFile)
	}
	if path != "" {
		if err := win.Open(path); err != nil {
			log.Printf("Failed to open %s: %v", path, err)
		} else if *watch || appPrefs.Bool(prefs.KeyWatchFile, false) {
			w, err := app.NewWatcher(path, app.DefaultWatchDelay, func(string) {
				if err := state.Reload(); err != nil {
					log.Printf("Failed to reload %s: %v", path, err)
				}
			}, logger)
			if err != nil {
				log.Printf("Failed to watch %s: %v", path, err)
			} else {
				defer w.Close()
			}
		}
	}

	win.ShowAndRun()
}
