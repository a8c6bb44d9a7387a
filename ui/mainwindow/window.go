// Package mainwindow provides the main application window.
package mainwindow

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"image-view/internal/app"
	"image-view/internal/crop"
	viewimage "image-view/internal/image"
	"image-view/internal/version"
	"image-view/internal/viewer"
	"image-view/pkg/geometry"
	"image-view/ui/canvas"
	"image-view/ui/prefs"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

const appTitle = "Image View"

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app    fyne.App
	state  *app.State
	prefs  *prefs.Prefs
	canvas *canvas.ViewerCanvas

	statusBar *widget.Label
	cropLabel *widget.Label
	hoverText *widget.Label

	// Menu items that need state tracking
	gridItem *fyne.MenuItem
}

// New creates a new main window.
func New(fyneApp fyne.App, state *app.State, p *prefs.Prefs) *MainWindow {
	win := fyneApp.NewWindow(appTitle)

	mw := &MainWindow{
		Window: win,
		app:    fyneApp,
		state:  state,
		prefs:  p,
	}

	mw.setupUI()
	mw.setupMenus()
	mw.setupEventHandlers()

	width := p.Int(prefs.KeyWindowWidth, 1000)
	height := p.Int(prefs.KeyWindowHeight, 700)
	mw.Resize(fyne.NewSize(float32(width), float32(height)))

	return mw
}

// setupUI creates the main UI layout.
func (mw *MainWindow) setupUI() {
	mw.canvas = canvas.NewViewerCanvas(mw.state.Viewer)
	mw.canvas.OnHover(mw.onHover)

	mw.statusBar = widget.NewLabel("Ready")
	mw.cropLabel = widget.NewLabel("Crop: none")
	mw.hoverText = widget.NewLabel("")

	toolbar := mw.createToolbar()

	status := container.NewHBox(
		mw.statusBar,
		widget.NewSeparator(),
		mw.cropLabel,
		widget.NewSeparator(),
		mw.hoverText,
	)

	content := container.NewBorder(
		toolbar,                     // top
		container.NewPadded(status), // bottom
		nil,                         // left
		nil,                         // right
		mw.canvas,                   // center
	)

	mw.SetContent(content)
}

// createToolbar creates the toolbar with file and transform actions.
func (mw *MainWindow) createToolbar() fyne.CanvasObject {
	return widget.NewToolbar(
		widget.NewToolbarAction(theme.FolderOpenIcon(), mw.onOpen),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), mw.onSaveVisible),
		widget.NewToolbarAction(theme.ViewRefreshIcon(), mw.onReload),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.ContentUndoIcon(), mw.onRotate270),
		widget.NewToolbarAction(theme.ContentRedoIcon(), mw.onRotate90),
		widget.NewToolbarAction(theme.ViewRestoreIcon(), mw.onMirror),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.ContentClearIcon(), mw.onResetCrop),
	)
}

// setupMenus creates the application menus.
func (mw *MainWindow) setupMenus() {
	// File menu
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open...", mw.onOpen),
		fyne.NewMenuItem("Reload", mw.onReload),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Save Visible As...", mw.onSaveVisible),
	)

	// Image menu
	imageMenu := fyne.NewMenu("Image",
		fyne.NewMenuItem("Rotate Right", mw.onRotate90),
		fyne.NewMenuItem("Rotate Left", mw.onRotate270),
		fyne.NewMenuItem("Mirror", mw.onMirror),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Grayscale", mw.onGrayscale),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Reset Crop", mw.onResetCrop),
	)

	// View menu
	mw.gridItem = fyne.NewMenuItem("Grid", mw.onToggleGrid)
	mw.gridItem.Checked = mw.state.Viewer.Grid()
	viewMenu := fyne.NewMenu("View", mw.gridItem)

	// Help menu
	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mw.onAbout),
	)

	mw.SetMainMenu(fyne.NewMainMenu(fileMenu, imageMenu, viewMenu, helpMenu))
}

// setupEventHandlers registers for application and viewer events.
func (mw *MainWindow) setupEventHandlers() {
	mw.state.On(app.EventImageLoaded, func(data interface{}) {
		if layer, ok := data.(*viewimage.Layer); ok {
			mw.SetTitle(appTitle + " - " + filepath.Base(layer.Path))
			mw.updateStatus(fmt.Sprintf("Loaded %dx%d %s", layer.Width(), layer.Height(), layer.Format))
		}
	})

	mw.state.On(app.EventImageSaved, func(data interface{}) {
		if path, ok := data.(string); ok {
			mw.updateStatus("Saved " + path)
		}
	})

	mw.state.On(app.EventModified, func(data interface{}) {
		modified, _ := data.(bool)
		title := appTitle
		if path := mw.state.CurrentPath(); path != "" {
			title += " - " + filepath.Base(path)
		}
		if modified {
			title += " *"
		}
		mw.SetTitle(title)
	})

	mw.state.Viewer.On(viewer.EventCropChanged, func(data interface{}) {
		if c, ok := data.(crop.Crop); ok {
			mw.cropLabel.SetText("Crop: " + c.String())
		}
	})

	mw.SetCloseIntercept(func() {
		mw.savePreferences()
		mw.Close()
	})
}

// updateStatus updates the status bar text.
func (mw *MainWindow) updateStatus(text string) {
	mw.statusBar.SetText(text)
}

func (mw *MainWindow) onHover(p geometry.PointF, inside bool) {
	if !inside {
		mw.hoverText.SetText("")
		return
	}
	mw.hoverText.SetText(fmt.Sprintf("%d, %d", int(p.X), int(p.Y)))
}

// savePreferences records the window size and view settings.
func (mw *MainWindow) savePreferences() {
	size := mw.Canvas().Size()
	mw.prefs.SetInt(prefs.KeyWindowWidth, int(size.Width))
	mw.prefs.SetInt(prefs.KeyWindowHeight, int(size.Height))
	mw.prefs.SetBool(prefs.KeyGrid, mw.state.Viewer.Grid())
	mw.prefs.SetString(prefs.KeyLastFile, mw.state.CurrentPath())
	if err := mw.prefs.Save(); err != nil {
		fyne.LogError("failed to save preferences", err)
	}
}

// getLastDir returns the last used directory as a ListableURI, or nil.
func (mw *MainWindow) getLastDir() fyne.ListableURI {
	path := mw.prefs.String(prefs.KeyLastDirectory)
	if path == "" {
		return nil
	}
	uri := storage.NewFileURI(path)
	listable, err := storage.ListerForURI(uri)
	if err != nil {
		return nil
	}
	return listable
}

// saveLastDir saves the directory of the given file path.
func (mw *MainWindow) saveLastDir(filePath string) {
	mw.prefs.SetString(prefs.KeyLastDirectory, filepath.Dir(filePath))
}

// Menu action handlers

func (mw *MainWindow) onOpen() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		reader.Close()
		path := reader.URI().Path()
		mw.saveLastDir(path)
		if err := mw.Open(path); err != nil {
			dialog.ShowError(err, mw.Window)
		}
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter(viewimage.SupportedFormats()))
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

// Open loads path into the viewer.
func (mw *MainWindow) Open(path string) error {
	return mw.state.Open(path)
}

func (mw *MainWindow) onReload() {
	if err := mw.state.Reload(); err != nil {
		dialog.ShowError(err, mw.Window)
	}
}

func (mw *MainWindow) onSaveVisible() {
	if mw.state.CurrentPath() == "" {
		dialog.ShowError(app.ErrNoImage, mw.Window)
		return
	}
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		writer.Close()
		path, err := savePath(writer.URI().Path())
		if err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.saveLastDir(path)
		if err := mw.state.SaveVisible(path); err != nil {
			dialog.ShowError(err, mw.Window)
		}
	}, mw.Window)
	base := filepath.Base(mw.state.CurrentPath())
	fd.SetFileName(base[:len(base)-len(filepath.Ext(base))] + "-crop.png")
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

// savePath returns where to write the visible region chosen as path. The save
// dialog has already created path; when its extension cannot be encoded that
// empty file is removed and ".png" is appended.
func savePath(path string) (string, error) {
	if viewimage.CanEncode(path) {
		return path, nil
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("failed to remove %s: %w", path, err)
	}
	return path + ".png", nil
}

func (mw *MainWindow) onRotate90() {
	mw.state.Viewer.Rotate90()
}

func (mw *MainWindow) onRotate270() {
	mw.state.Viewer.Rotate270()
}

func (mw *MainWindow) onMirror() {
	mw.state.Viewer.Mirror()
}

func (mw *MainWindow) onResetCrop() {
	mw.state.Viewer.ResetCrop()
}

func (mw *MainWindow) onGrayscale() {
	if err := mw.state.Viewer.ApplyGrayscale(); err != nil {
		dialog.ShowError(err, mw.Window)
		return
	}
	mw.updateStatus("Converted to grayscale")
}

func (mw *MainWindow) onToggleGrid() {
	enabled := !mw.state.Viewer.Grid()
	mw.state.Viewer.SetGrid(enabled)
	mw.gridItem.Checked = enabled
	mw.MainMenu().Refresh()
}

func (mw *MainWindow) onAbout() {
	dialog.ShowInformation("About "+appTitle,
		fmt.Sprintf("%s v%s\n\n"+
			"A viewer for cropping, rotating and mirroring images.\n\n"+
			"Built: %s\n"+
			"Commit: %s",
			appTitle, version.Version, version.BuildTime, version.GitCommit),
		mw.Window)
}
