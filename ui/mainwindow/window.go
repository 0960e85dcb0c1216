// Package mainwindow provides the main application window.
package mainwindow

import (
	"fmt"
	"path/filepath"

	"wall-meter/internal/app"
	wmimage "wall-meter/internal/image"
	"wall-meter/internal/version"
	"wall-meter/ui/canvas"
	"wall-meter/ui/panels"
	"wall-meter/ui/prefs"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

const projectExt = ".wallproj"

// MainWindow is the primary application window. The center area shows the
// corner-picking canvas until a rectification succeeds, then switches to
// the mask editing canvas; the View menu flips between the two.
type MainWindow struct {
	fyne.Window
	app   fyne.App
	state *app.State
	prefs *prefs.Prefs

	cornerCanvas *canvas.CornerCanvas
	editCanvas   *canvas.EditCanvas
	centerStack  *fyne.Container
	sidePanel    *panels.SidePanel
	statusBar    *widget.Label
	zoomLabel    *widget.Label
}

// New creates the main window.
func New(fyneApp fyne.App, state *app.State, p *prefs.Prefs) *MainWindow {
	win := fyneApp.NewWindow("Wall Meter")

	mw := &MainWindow{
		Window: win,
		app:    fyneApp,
		state:  state,
		prefs:  p,
	}

	mw.setupUI()
	mw.setupMenus()
	mw.setupEventHandlers()
	mw.restoreWindowSize()

	win.SetCloseIntercept(func() {
		mw.saveWindowSize()
		_ = p.Save()
		win.Close()
	})

	return mw
}

// setupUI creates the main layout.
func (mw *MainWindow) setupUI() {
	mw.cornerCanvas = canvas.NewCornerCanvas()
	mw.editCanvas = canvas.NewEditCanvas()

	mw.centerStack = container.NewStack(mw.cornerCanvas, mw.editCanvas)
	mw.editCanvas.Hide()

	mw.sidePanel = panels.NewSidePanel(mw.state, mw.prefs, mw.cornerCanvas, mw.editCanvas)
	mw.sidePanel.SetWindow(mw.Window)

	mw.statusBar = widget.NewLabel("Open a wall photo to begin")
	mw.zoomLabel = widget.NewLabel("Zoom: 100%")

	toolbar := mw.createToolbar()

	canvasArea := container.NewBorder(
		toolbar,
		nil,
		nil,
		nil,
		mw.centerStack,
	)

	split := container.NewHSplit(
		mw.sidePanel.Container(),
		canvasArea,
	)
	split.SetOffset(0.28)

	content := container.NewBorder(
		nil,
		container.NewPadded(container.NewHBox(mw.statusBar, mw.zoomLabel)),
		nil,
		nil,
		split,
	)

	mw.SetContent(content)
}

// createToolbar creates the zoom toolbar acting on the visible canvas.
func (mw *MainWindow) createToolbar() fyne.CanvasObject {
	zoomOutBtn := widget.NewButton("-", mw.onZoomOut)
	zoomInBtn := widget.NewButton("+", mw.onZoomIn)
	fitBtn := widget.NewButton("Fit", mw.onFit)

	return container.NewHBox(
		widget.NewLabel("Zoom:"),
		zoomOutBtn,
		zoomInBtn,
		fitBtn,
	)
}

// setupMenus creates the application menus.
func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open Photo...", mw.onOpenPhoto),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Open Project...", mw.onOpenProject),
		fyne.NewMenuItem("Save Project", mw.onSaveProject),
		fyne.NewMenuItem("Save Project As...", mw.onSaveProjectAs),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { mw.app.Quit() }),
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Undo", mw.onUndo),
		fyne.NewMenuItem("Redo", mw.onRedo),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Clear Mask", mw.onClearMask),
	)

	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Zoom In", mw.onZoomIn),
		fyne.NewMenuItem("Zoom Out", mw.onZoomOut),
		fyne.NewMenuItem("Fit to Window", mw.onFit),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Show Photo", func() { mw.showEditView(false) }),
		fyne.NewMenuItem("Show Rectified Wall", func() { mw.showEditView(true) }),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mw.onAbout),
	)

	mw.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, viewMenu, helpMenu))
}

// setupEventHandlers registers for application events.
func (mw *MainWindow) setupEventHandlers() {
	mw.state.On(app.EventPhotoLoaded, func(data interface{}) {
		mw.showEditView(false)
		mw.updateStatus("Photo loaded; pick the four wall corners")
	})

	mw.state.On(app.EventRectified, func(data interface{}) {
		mw.editCanvas.SetEditor(mw.state.Editor)
		mw.showEditView(true)
		mw.sidePanel.ShowTools()
		mw.updateStatus("Wall rectified; paint the cemented surface")
	})

	mw.state.On(app.EventProjectLoaded, func(data interface{}) {
		if path, ok := data.(string); ok {
			mw.SetTitle("Wall Meter - " + filepath.Base(path))
			mw.updateStatus("Project loaded: " + path)
		}
		if mw.state.Editor != nil {
			mw.editCanvas.SetEditor(mw.state.Editor)
			mw.editCanvas.Invalidate()
			mw.showEditView(true)
		}
	})

	mw.state.On(app.EventProjectSaved, func(data interface{}) {
		if path, ok := data.(string); ok {
			mw.SetTitle("Wall Meter - " + filepath.Base(path))
			mw.updateStatus("Project saved: " + path)
		}
	})

	mw.state.On(app.EventModified, func(data interface{}) {
		if modified, ok := data.(bool); ok && modified {
			title := mw.Title()
			if len(title) > 0 && title[len(title)-1] != '*' {
				mw.SetTitle(title + " *")
			}
		}
	})

	mw.editCanvas.OnViewChanged(func(scale float64) {
		mw.zoomLabel.SetText(fmt.Sprintf("Zoom: %.0f%%", scale*100))
	})
}

// showEditView flips the center area between corner picking and mask
// editing.
func (mw *MainWindow) showEditView(edit bool) {
	if edit && mw.state.Editor == nil {
		return
	}
	if edit {
		mw.cornerCanvas.Hide()
		mw.editCanvas.Show()
	} else {
		mw.editCanvas.Hide()
		mw.cornerCanvas.Show()
	}
	mw.centerStack.Refresh()
}

func (mw *MainWindow) editing() bool {
	return mw.editCanvas.Visible()
}

func (mw *MainWindow) updateStatus(text string) {
	mw.statusBar.SetText(text)
}

func (mw *MainWindow) restoreWindowSize() {
	w := mw.prefs.FloatWithFallback(prefs.KeyWindowWidth, 1200)
	h := mw.prefs.FloatWithFallback(prefs.KeyWindowHeight, 800)
	mw.Resize(fyne.NewSize(float32(w), float32(h)))
}

func (mw *MainWindow) saveWindowSize() {
	size := mw.Canvas().Size()
	mw.prefs.SetFloat(prefs.KeyWindowWidth, float64(size.Width))
	mw.prefs.SetFloat(prefs.KeyWindowHeight, float64(size.Height))
}

// lastDir returns a remembered directory as a ListableURI, or nil.
func (mw *MainWindow) lastDir(key string) fyne.ListableURI {
	path := mw.prefs.String(key)
	if path == "" {
		return nil
	}
	listable, err := storage.ListerForURI(storage.NewFileURI(path))
	if err != nil {
		return nil
	}
	return listable
}

func (mw *MainWindow) saveLastDir(key, filePath string) {
	mw.prefs.SetString(key, filepath.Dir(filePath))
}

// Menu action handlers

func (mw *MainWindow) onOpenPhoto() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		reader.Close()
		path := reader.URI().Path()
		mw.saveLastDir(prefs.KeyLastPhotoDir, path)
		if err := mw.state.LoadPhoto(path); err != nil {
			dialog.ShowError(err, mw.Window)
		}
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter(wmimage.SupportedFormats()))
	if loc := mw.lastDir(prefs.KeyLastPhotoDir); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onOpenProject() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		reader.Close()
		path := reader.URI().Path()
		mw.saveLastDir(prefs.KeyLastProjectDir, path)
		if err := mw.state.LoadProject(path); err != nil {
			dialog.ShowError(err, mw.Window)
		}
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{projectExt}))
	if loc := mw.lastDir(prefs.KeyLastProjectDir); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onSaveProject() {
	if mw.state.ProjectPath == "" {
		mw.onSaveProjectAs()
		return
	}
	if err := mw.state.SaveProject(mw.state.ProjectPath); err != nil {
		dialog.ShowError(err, mw.Window)
	}
}

func (mw *MainWindow) onSaveProjectAs() {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		writer.Close()
		path := writer.URI().Path()
		if filepath.Ext(path) != projectExt {
			path += projectExt
		}
		mw.saveLastDir(prefs.KeyLastProjectDir, path)
		if err := mw.state.SaveProject(path); err != nil {
			dialog.ShowError(err, mw.Window)
		}
	}, mw.Window)
	fd.SetFileName("wall" + projectExt)
	if loc := mw.lastDir(prefs.KeyLastProjectDir); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onUndo() {
	if e := mw.state.Editor; e != nil {
		e.Undo()
		mw.editCanvas.Invalidate()
		mw.state.MaskEdited()
	}
}

func (mw *MainWindow) onRedo() {
	if e := mw.state.Editor; e != nil {
		e.Redo()
		mw.editCanvas.Invalidate()
		mw.state.MaskEdited()
	}
}

func (mw *MainWindow) onClearMask() {
	if e := mw.state.Editor; e != nil {
		e.Clear()
		mw.editCanvas.Invalidate()
		mw.state.MaskEdited()
	}
}

func (mw *MainWindow) onZoomIn() {
	if mw.editing() {
		mw.editCanvas.ZoomIn()
	} else {
		mw.cornerCanvas.ZoomIn()
	}
}

func (mw *MainWindow) onZoomOut() {
	if mw.editing() {
		mw.editCanvas.ZoomOut()
	} else {
		mw.cornerCanvas.ZoomOut()
	}
}

func (mw *MainWindow) onFit() {
	if mw.editing() {
		mw.editCanvas.FitToView()
	} else {
		mw.cornerCanvas.FitToView()
	}
}

func (mw *MainWindow) onAbout() {
	dialog.ShowInformation("About Wall Meter",
		fmt.Sprintf("Wall Meter v%s\n\n"+
			"Measures cemented wall area from a photo:\n"+
			"rectify, paint the surface, subtract openings.\n\n"+
			"Built: %s\n"+
			"Commit: %s",
			version.Version, version.BuildTime, version.GitCommit),
		mw.Window)
}
