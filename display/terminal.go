package pisano

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"runtime/debug"
	"strconv"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	Ps "github.com/maroda/pisano/analysis"
	Po "github.com/maroda/pisano/obvy"
	Pp "github.com/maroda/pisano/plugin"
	Pt "github.com/maroda/pisano/types"
)

const (
	screenGutter = 4 // rows reserved for title and subtitle
	footerRows   = 2
)

// View is the interactive terminal bar graph of the current period.
// All state is a pure function of the current modulus, recomputed on
// every change. Exports go through the plugin registry.
type View struct {
	MU        sync.Mutex   // State locks to read data
	Screen    tcell.Screen // the screen itself
	Config    *Ps.ConfigFile
	Modulus   int                         // current modulus
	Current   *Pt.Analysis                // analysis of the current modulus
	Stats     *Po.StatsInternal           // Internal status for prometheus
	server    *http.Server                // Prometheus metrics server
	exporters map[string]Pp.ExportAdapter // keyed by registry name
}

// SetModulus recomputes the analysis for a new modulus and redraws.
// A cap failure keeps the previous analysis on screen.
func (v *View) SetModulus(m int) {
	if m < Ps.MinModulus {
		m = Ps.MinModulus
	}

	start := time.Now()
	a, err := Ps.Analyze(m, v.Config.Cap)
	if err != nil {
		slog.Error("Analysis failed, keeping previous modulus",
			slog.Int("modulus", m),
			slog.Any("Error", err))
		return
	}
	v.Stats.RecAnalysis(time.Since(start).Seconds())

	v.MU.Lock()
	v.Modulus = m
	v.Current = a
	v.MU.Unlock()

	if v.Screen != nil {
		v.UpdateScreen()
	}
}

// Analysis returns the current analysis under lock.
func (v *View) Analysis() *Pt.Analysis {
	v.MU.Lock()
	defer v.MU.Unlock()
	return v.Current
}

// barStyle picks the tcell style for one bar.
func barStyle(b Pt.Bar) tcell.Style {
	var fg tcell.Color
	switch b.Class {
	case Pt.ZeroBar:
		fg = tcell.ColorPink
	case Pt.SectionEven:
		fg = tcell.ColorSilver
	default:
		fg = tcell.ColorGray
	}

	if b.Mirrored {
		switch b.Class {
		case Pt.SectionEven:
			fg = tcell.ColorLightSteelBlue
		default:
			fg = tcell.ColorSteelBlue
		}
	}

	return tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(fg)
}

// DrawBars paints one column per residue, bottom-aligned.
// Residues past the drawable width are clipped, the full data
// is always available through the exports and the data server.
func (v *View) DrawBars(a *Pt.Analysis) {
	width, height := v.GetScreenSize()

	graphHeight := height - screenGutter - footerRows - 1
	if graphHeight < 1 {
		return
	}
	baseY := height - footerRows - 1

	bars := Ps.Bars(a, graphHeight)
	avail := width - 2

	for i, b := range bars {
		if i >= avail {
			break
		}
		style := barStyle(b)
		h := b.Height
		if h > graphHeight {
			h = graphHeight
		}
		for dy := 0; dy < h; dy++ {
			v.Screen.SetContent(1+i, baseY-dy, '█', nil, style)
		}
	}
}

// DrawText displays the text string at the given (x1, y1) with box size (x2, y2)
func (v *View) DrawText(x1, y1, x2, y2 int, text string) {
	row := y1
	col := x1
	style := tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorLightSteelBlue)
	for _, r := range text {
		v.Screen.SetContent(col, row, r, nil, style)
		col++
		if col >= x2 {
			row++
			col = x1
		}
		if row > y2 {
			break
		}
	}
}

// DrawViewBorder displays the outline of the View
func (v *View) DrawViewBorder(width, height int) {
	hvStyle := tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorPink)
	v.Screen.SetContent(0, 0, tcell.RuneULCorner, nil, hvStyle)
	for i := 1; i < width; i++ {
		v.Screen.SetContent(i, 0, tcell.RuneHLine, nil, hvStyle)
	}
	v.Screen.SetContent(width, 0, tcell.RuneURCorner, nil, hvStyle)

	for i := 1; i < height; i++ {
		v.Screen.SetContent(0, i, tcell.RuneVLine, nil, hvStyle)
		v.Screen.SetContent(width, i, tcell.RuneVLine, nil, hvStyle)
	}

	v.Screen.SetContent(0, height, tcell.RuneLLCorner, nil, hvStyle)
	v.Screen.SetContent(width, height, tcell.RuneLRCorner, nil, hvStyle)

	for i := 1; i < width; i++ {
		v.Screen.SetContent(i, height, tcell.RuneHLine, nil, hvStyle)
	}
}

// DrawPisanoView draws the whole frame: border, description, bars, help.
func (v *View) DrawPisanoView() {
	width, height := v.GetScreenSize()

	v.MU.Lock()
	a := v.Current
	v.MU.Unlock()

	v.DrawViewBorder(width-2, height-1)

	if a == nil {
		v.DrawText(1, 1, width, 2, "no analysis yet")
		return
	}

	title := Ps.Title(a.Modulus)
	subtitle := Ps.SubtitleFor(a)
	v.DrawText((width-len(title))/2, 1, width, 2, title)
	v.DrawText((width-len(subtitle))/2, 2, width, 3, subtitle)

	v.DrawBars(a)

	v.DrawText(1, height-2, width, height,
		"arrows: modulus +-1/+-10 | 1-9: jump | t/s/l/d: export | click: export all | ESC: quit")
	v.DrawText(width-9, height-1, width, height, "PISANO")
}

// export runs one adapter from the registry against the current analysis.
func (v *View) export(name string) {
	v.MU.Lock()
	a := v.Current
	adapter, ok := v.exporters[name]
	v.MU.Unlock()

	if a == nil || !ok {
		slog.Error("Export unavailable", slog.String("exporter", name))
		return
	}

	if err := adapter.WriteAnalysis(a); err != nil {
		// Only log the error, keep going otherwise
		slog.Error("Export failed",
			slog.String("exporter", adapter.Type()),
			slog.Any("Error", err))
		return
	}
	v.Stats.RecExport(adapter.Type())
}

// ExportAll writes every configured adapter, like the old left click.
func (v *View) ExportAll() {
	for name := range v.exporters {
		v.export(name)
	}
}

// Exit cleanly
func (v *View) exit() {
	v.MU.Lock()
	for _, adapter := range v.exporters {
		if err := adapter.Close(); err != nil {
			slog.Error("Exporter close failed",
				slog.String("exporter", adapter.Type()),
				slog.Any("Error", err))
		}
	}
	v.MU.Unlock()
	v.Screen.Fini()
	os.Exit(0)
}

// Running Loop to handle events
func (v *View) handleKeyBoardEvent() {
	// Panic recovery and logging
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Panic in event loop", slog.Any("panic", r))
			slog.Error("Recovered from panic", slog.String("stack", string(debug.Stack())))
			debug.PrintStack()
		}
	}()

	for {
		ev := v.Screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventResize:
			v.ResizeScreen()
		case *tcell.EventKey:
			// Catch quit and exit
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
				v.exit()
			}

			switch ev.Key() {
			case tcell.KeyRight:
				v.SetModulus(v.Modulus + 1)
			case tcell.KeyLeft:
				v.SetModulus(v.Modulus - 1)
			case tcell.KeyUp:
				v.SetModulus(v.Modulus + 10)
			case tcell.KeyDown:
				v.SetModulus(v.Modulus - 10)
			case tcell.KeyCtrlL:
				v.Screen.Sync()
			}

			switch r := ev.Rune(); {
			case r >= '1' && r <= '9':
				v.SetModulus(int(r-'0') * 10)
			case r == 't':
				v.export("text")
			case r == 's':
				v.export("image")
			case r == 'l':
				v.export("score")
			case r == 'd':
				v.export("midi")
			}

		case *tcell.EventMouse:
			btn := ev.Buttons()
			switch {
			case btn&tcell.WheelUp != 0:
				v.SetModulus(v.Modulus + 1)
			case btn&tcell.WheelDown != 0:
				v.SetModulus(v.Modulus - 1)
			case btn == tcell.Button1:
				v.ExportAll()
			}
		}
	}
}

// GetScreenSize provides the terminal size for drawing
func (v *View) GetScreenSize() (int, int) {
	width, height := v.Screen.Size()
	return width, height
}

// ResizeScreen redraws the View after terminal changes
func (v *View) ResizeScreen() {
	v.Screen.Sync()
	v.UpdateScreen()
}

func (v *View) UpdateScreen() {
	v.Screen.Clear()
	v.DrawPisanoView()
	v.Screen.Show()
}

// RespWriter is a wrapper with StatsMiddleware, used for Prometheus
type RespWriter struct {
	http.ResponseWriter
	Status int
}

// WriteHeader is a helper for StatsMiddleware, used for Prometheus
func (w *RespWriter) WriteHeader(status int) {
	w.Status = status
	w.ResponseWriter.WriteHeader(status)
}

// Write is a helper for StatsMiddleware, used for Prometheus
func (w *RespWriter) Write(b []byte) (int, error) {
	return w.ResponseWriter.Write(b)
}

func (v *View) StatsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		wrapped := &RespWriter{
			ResponseWriter: w,
			Status:         200,
		}
		next.ServeHTTP(wrapped, r)

		v.Stats.RecWWW(strconv.Itoa(wrapped.Status), r.Method)
	})
}

// NewView creates the tcell screen that displays the bar graph
func NewView(cfg *Ps.ConfigFile) (*View, error) {
	if cfg == nil {
		slog.Error("Could not get a config for display")
		return nil, errors.New("config not found")
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		slog.Error("Could not get new screen", slog.Any("Error", err))
		return nil, err
	}
	if err := screen.Init(); err != nil {
		slog.Error("Could not initialize screen", slog.Any("Error", err))
		return nil, err
	}

	// Define and configure the default screen
	defStyle := tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorPink)
	screen.SetStyle(defStyle)
	screen.EnableMouse()

	view, err := NewHeadlessView(cfg)
	if err != nil {
		screen.Fini()
		return nil, err
	}
	view.Screen = screen

	view.UpdateScreen()

	return view, nil
}

// NewHeadlessView builds a View without a tcell screen,
// shared by the TUI and the web-only mode.
func NewHeadlessView(cfg *Ps.ConfigFile) (*View, error) {
	stats := Po.NewStatsInternal()

	exporters, err := buildExporters(cfg)
	if err != nil {
		return nil, err
	}

	view := &View{
		Config:    cfg,
		Stats:     stats,
		exporters: exporters,
	}

	view.SetModulus(cfg.Modulus)
	if view.Current == nil {
		return nil, fmt.Errorf("initial analysis failed for modulus %d", cfg.Modulus)
	}

	return view, nil
}

// buildExporters wires every configured adapter from the registry.
func buildExporters(cfg *Ps.ConfigFile) (map[string]Pp.ExportAdapter, error) {
	ec := Pp.ExportConfig{
		TextDir:      cfg.TextDir,
		ScoreDir:     cfg.ScoreDir,
		ImageDir:     cfg.ImageDir,
		MidiDir:      cfg.MidiDir,
		ArchivePath:  cfg.ArchivePath,
		ArchiveBatch: 10,
		Annotate:     cfg.Annotate,
	}

	names := []string{"text", "score", "image", "midi"}
	if cfg.ArchivePath != "" {
		names = append(names, "archive")
	}

	exporters := make(map[string]Pp.ExportAdapter)
	for _, name := range names {
		adapter, err := Pp.ExporterLookup(name, ec)
		if err != nil {
			slog.Error("Failed to init exporter",
				slog.String("exporter", name),
				slog.Any("Error", err))
			return nil, err
		}
		exporters[name] = adapter
	}

	return exporters, nil
}

// StartPisanoViewWithConfig is called by main to run the program.
// This also starts up the /metrics endpoint that is populated by prometheus.
func StartPisanoViewWithConfig(cfg *Ps.ConfigFile) error {
	view, err := NewView(cfg)
	if err != nil {
		slog.Error("Could not start PisanoView", slog.Any("Error", err))
		return err
	}

	// Server for stats endpoint
	view.server = &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: view.SetupMux(),
	}

	// Run stats endpoint
	go func() {
		slog.Info("Starting Pisano data endpoint...", slog.String("Addr", cfg.ListenAddr))
		if err := view.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Could not start data endpoint", slog.Any("Error", err))
		}
	}()

	view.handleKeyBoardEvent()

	return err
}

// StartWebNoTUI serves the data endpoint without a terminal screen,
// selected in main with PISANO_MODE=web.
func StartWebNoTUI(cfg *Ps.ConfigFile) error {
	view, err := NewHeadlessView(cfg)
	if err != nil {
		slog.Error("Could not init headless view", slog.Any("Error", err))
		return err
	}

	view.server = &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: view.SetupMux(),
	}

	// Run data endpoint (blocks)
	slog.Info("Starting Pisano web server...", slog.String("Addr", cfg.ListenAddr))
	if err := view.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Could not start data endpoint", slog.Any("Error", err))
		return err
	}

	return nil
}
