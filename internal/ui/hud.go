//go:build ebiten

package ui

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strconv"
	"strings"

	"ca-kernel/internal/core"
	"ca-kernel/pkg/cluster"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

type parameterProvider interface {
	Parameters() core.ParameterSnapshot
}

type summaryProvider interface {
	Summary(opts cluster.Options) cluster.Summary
}

// summaryEvery is the number of HUD updates between cluster summaries.
const summaryEvery = 15

// HUD renders the rule controls and a cluster summary to the right of the
// simulation view.
type HUD struct {
	sim        core.Sim
	width      int
	panel      *ebiten.Image
	lastHeight int
	snapshot   core.ParameterSnapshot

	controls     []controlState
	intSetter    core.IntParameterSetter
	floatSetter  core.FloatParameterSetter
	panelOffsetX int
	title        string

	summary   cluster.Summary
	hasStats  bool
	sinceStat int

	pixel *ebiten.Image
}

// NewHUD constructs a HUD for the provided simulation and panel width.
func NewHUD(sim core.Sim, width int) *HUD {
	h := &HUD{sim: sim, width: max(width, 0), sinceStat: summaryEvery}
	if h.width > 0 {
		h.pixel = ebiten.NewImage(1, 1)
		h.pixel.Fill(color.White)
	}
	h.title = buildTitle(sim)
	if provider, ok := sim.(core.ParameterControlsProvider); ok {
		for _, ctrl := range provider.ParameterControls() {
			h.controls = append(h.controls, controlState{control: ctrl, value: "--"})
		}
		h.layoutControls()
	}
	h.intSetter, _ = sim.(core.IntParameterSetter)
	h.floatSetter, _ = sim.(core.FloatParameterSetter)
	return h
}

// Update refreshes the cached parameter snapshot and cluster summary and
// handles clicks on the control buttons.
func (h *HUD) Update(panelOffsetX int) {
	if h == nil {
		return
	}
	h.panelOffsetX = panelOffsetX
	if provider, ok := h.sim.(parameterProvider); ok {
		h.snapshot = provider.Parameters()
	} else {
		h.snapshot = core.ParameterSnapshot{}
	}
	if provider, ok := h.sim.(summaryProvider); ok {
		h.sinceStat++
		if h.sinceStat >= summaryEvery {
			h.summary = provider.Summary(cluster.Options{})
			h.hasStats = true
			h.sinceStat = 0
		}
	}
	h.refreshControlValues()
	h.handleInput()
}

// Draw paints the HUD panel anchored to the right edge of the simulation view.
func (h *HUD) Draw(screen *ebiten.Image, offsetX int, scale int) {
	if h == nil || h.width <= 0 {
		return
	}
	height := h.sim.Size().H * max(scale, 1)
	if height <= 0 {
		return
	}
	if h.panel == nil || h.lastHeight != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 255})
	y := h.drawControls()
	h.drawStats(y + infoSpacing)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func buildTitle(sim core.Sim) string {
	if sim == nil || sim.Name() == "" {
		return "Rule"
	}
	name := sim.Name()
	return fmt.Sprintf("%s%s", strings.ToUpper(name[:1]), name[1:])
}

func (h *HUD) refreshControlValues() {
	for i := range h.controls {
		state := &h.controls[i]
		state.hasValue = false
		state.value = "--"
		param, ok := h.snapshot.Lookup(state.control.Key)
		if !ok {
			continue
		}
		parsed, err := strconv.ParseFloat(param.Value, 64)
		if err != nil {
			continue
		}
		state.current = parsed
		state.value = formatValue(state.control, parsed)
		state.hasValue = true
	}
}

func (h *HUD) handleInput() {
	if len(h.controls) == 0 || !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	if mx < h.panelOffsetX {
		return
	}
	px := mx - h.panelOffsetX
	for i := range h.controls {
		state := &h.controls[i]
		if !state.hasValue {
			continue
		}
		if pointInRect(px, my, state.minusRect) {
			h.apply(state, -1)
			return
		}
		if pointInRect(px, my, state.plusRect) {
			h.apply(state, 1)
			return
		}
	}
}

// target returns the value one step away in direction and whether the move
// stays inside the control's bounds.
func (h *HUD) target(state *controlState, direction int) (float64, bool) {
	ctrl := state.control
	step := ctrl.Step
	switch ctrl.Type {
	case core.ParamTypeInt:
		if h.intSetter == nil {
			return 0, false
		}
		step = math.Max(math.Round(step), 1)
	case core.ParamTypeFloat:
		if h.floatSetter == nil {
			return 0, false
		}
		if step <= 0 {
			step = 0.05
		}
	default:
		return 0, false
	}
	v := state.current + float64(direction)*step
	if ctrl.HasMin && v < ctrl.Min {
		if state.current <= ctrl.Min {
			return 0, false
		}
		v = ctrl.Min
	}
	if ctrl.HasMax && v > ctrl.Max {
		if state.current >= ctrl.Max {
			return 0, false
		}
		v = ctrl.Max
	}
	return v, true
}

func (h *HUD) apply(state *controlState, direction int) {
	v, ok := h.target(state, direction)
	if !ok {
		return
	}
	var applied bool
	if state.control.Type == core.ParamTypeInt {
		v = math.Round(v)
		applied = h.intSetter.SetIntParameter(state.control.Key, int(v))
	} else {
		applied = h.floatSetter.SetFloatParameter(state.control.Key, v)
	}
	if applied {
		state.current = v
		state.value = formatValue(state.control, v)
	}
}

// drawControls draws the title and one row per control and returns the
// baseline of the last line drawn.
func (h *HUD) drawControls() int {
	face := basicfont.Face7x13
	y := panelPadding + headerBaseline
	text.Draw(h.panel, h.title, face, panelPadding, y, titleColor)
	if len(h.controls) == 0 {
		y += infoSpacing
		text.Draw(h.panel, "No adjustable parameters", face, panelPadding, y, dimColor)
		return y
	}
	for i := range h.controls {
		state := &h.controls[i]
		y = state.top + labelBaseline
		text.Draw(h.panel, state.control.Label, face, panelPadding, y, textColor)
		valueColor := textColor
		if !state.hasValue {
			valueColor = dimColor
		}
		bounds := text.BoundString(face, state.value)
		text.Draw(h.panel, state.value, face, state.minusRect.Min.X-buttonGap-bounds.Dx(), y, valueColor)

		_, minus := h.target(state, -1)
		_, plus := h.target(state, 1)
		h.drawButton(state.minusRect, "-", state.hasValue && minus)
		h.drawButton(state.plusRect, "+", state.hasValue && plus)
	}
	return y
}

// drawStats lists the grid parameters and the latest cluster summary.
func (h *HUD) drawStats(y int) {
	face := basicfont.Face7x13
	var lines []string
	for _, group := range h.snapshot.Groups {
		if group.Name != "grid" {
			continue
		}
		for _, p := range group.Params {
			lines = append(lines, fmt.Sprintf("%s: %s", p.Label, p.Value))
		}
	}
	if h.hasStats {
		s := h.summary
		lines = append(lines,
			fmt.Sprintf("Alive: %d", s.Alive),
			fmt.Sprintf("Clusters: %d (%d single)", s.Count, s.Singletons),
			fmt.Sprintf("Largest: %d", s.Largest),
			fmt.Sprintf("Autonomy: %.3f", s.MeanAutonomy),
		)
	}
	for _, line := range lines {
		text.Draw(h.panel, line, face, panelPadding, y, dimColor)
		y += statSpacing
	}
}

func (h *HUD) drawButton(rect image.Rectangle, label string, enabled bool) {
	if h.pixel == nil {
		return
	}
	bg := color.RGBA{R: 54, G: 56, B: 64, A: 255}
	fg := color.RGBA{R: 230, G: 230, B: 240, A: 255}
	if !enabled {
		bg = color.RGBA{R: 32, G: 34, B: 40, A: 255}
		fg = color.RGBA{R: 120, G: 120, B: 130, A: 255}
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	op.ColorScale.ScaleWithColor(bg)
	h.panel.DrawImage(h.pixel, op)

	face := basicfont.Face7x13
	bounds := text.BoundString(face, label)
	x := rect.Min.X + (rect.Dx()-bounds.Dx())/2
	y := rect.Min.Y + (rect.Dy()-bounds.Dy())/2 + bounds.Dy()
	text.Draw(h.panel, label, face, x, y, fg)
}

func (h *HUD) layoutControls() {
	if h.width <= 0 {
		return
	}
	for i := range h.controls {
		top := controlsTop + i*lineHeight
		buttonY := top + (lineHeight-buttonSize)/2
		plus := image.Rect(h.width-panelPadding-buttonSize, buttonY, h.width-panelPadding, buttonY+buttonSize)
		minus := image.Rect(plus.Min.X-buttonGap-buttonSize, buttonY, plus.Min.X-buttonGap, buttonY+buttonSize)
		h.controls[i].top = top
		h.controls[i].minusRect = minus
		h.controls[i].plusRect = plus
	}
}

func formatValue(ctrl core.ParameterControl, v float64) string {
	if ctrl.Type == core.ParamTypeInt {
		return strconv.Itoa(int(math.Round(v)))
	}
	precision := 1
	switch {
	case ctrl.Step <= 0:
		precision = 2
	case ctrl.Step < 0.001:
		precision = 4
	case ctrl.Step < 0.01:
		precision = 3
	case ctrl.Step < 0.1:
		precision = 2
	}
	return strconv.FormatFloat(v, 'f', precision, 64)
}

func pointInRect(x, y int, rect image.Rectangle) bool {
	return image.Pt(x, y).In(rect)
}

type controlState struct {
	control  core.ParameterControl
	value    string
	current  float64
	hasValue bool

	top       int
	minusRect image.Rectangle
	plusRect  image.Rectangle
}

var (
	titleColor = color.RGBA{R: 200, G: 200, B: 210, A: 255}
	textColor  = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	dimColor   = color.RGBA{R: 160, G: 160, B: 170, A: 255}
)

const (
	panelPadding   = 12
	lineHeight     = 36
	buttonSize     = 24
	buttonGap      = 6
	headerBaseline = 18
	labelBaseline  = 24
	infoSpacing    = 36
	statSpacing    = 18
	controlsTop    = panelPadding + headerBaseline + 14
)
