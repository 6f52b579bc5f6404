// Package tweak binds galaxy parameters to adjustable controls.
//
// A [Panel] edits a draft copy of the parameters. Nudges and typed values only
// touch the draft; the commit callback runs on finish change: an explicit
// [Panel.Commit], or moving the cursor off a control that was edited.
package tweak

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/galaxy/internal/galaxy"
)

// Kind distinguishes numeric from color controls.
type Kind int

const (
	Number Kind = iota
	Color
)

// hueStep is the hue shift in degrees for one color nudge.
const hueStep = 5.0

// Control is one bound parameter.
type Control struct {
	Name           string
	Kind           Kind
	Min, Max, Step float64

	get      func(*galaxy.Parameters) float64
	set      func(*galaxy.Parameters, float64)
	getColor func(*galaxy.Parameters) *colorful.Color
}

// Controls returns the galaxy controls in panel order.
func Controls() []Control {
	return []Control{
		numeric("count", galaxy.MinCount, galaxy.MaxCount, 100,
			func(p *galaxy.Parameters) float64 { return float64(p.Count) },
			func(p *galaxy.Parameters, v float64) { p.Count = int(math.Round(v)) }),
		numeric("size", galaxy.MinSize, galaxy.MaxSize, 0.001,
			func(p *galaxy.Parameters) float64 { return p.Size },
			func(p *galaxy.Parameters, v float64) { p.Size = v }),
		numeric("radius", galaxy.MinRadius, galaxy.MaxRadius, 0.01,
			func(p *galaxy.Parameters) float64 { return p.Radius },
			func(p *galaxy.Parameters, v float64) { p.Radius = v }),
		numeric("branches", galaxy.MinBranches, galaxy.MaxBranches, 1,
			func(p *galaxy.Parameters) float64 { return float64(p.Branches) },
			func(p *galaxy.Parameters, v float64) { p.Branches = int(math.Round(v)) }),
		numeric("spin", galaxy.MinSpin, galaxy.MaxSpin, 0.001,
			func(p *galaxy.Parameters) float64 { return p.Spin },
			func(p *galaxy.Parameters, v float64) { p.Spin = v }),
		numeric("randomness", galaxy.MinRandomness, galaxy.MaxRandomness, 0.001,
			func(p *galaxy.Parameters) float64 { return p.Randomness },
			func(p *galaxy.Parameters, v float64) { p.Randomness = v }),
		numeric("randomnessPower", galaxy.MinRandomnessPower, galaxy.MaxRandomnessPower, 0.01,
			func(p *galaxy.Parameters) float64 { return p.RandomnessPower },
			func(p *galaxy.Parameters, v float64) { p.RandomnessPower = v }),
		color("insideColor", func(p *galaxy.Parameters) *colorful.Color { return &p.InsideColor }),
		color("outsideColor", func(p *galaxy.Parameters) *colorful.Color { return &p.OutsideColor }),
	}
}

func numeric(name string, lo, hi, step float64, get func(*galaxy.Parameters) float64, set func(*galaxy.Parameters, float64)) Control {
	return Control{Name: name, Kind: Number, Min: lo, Max: hi, Step: step, get: get, set: set}
}

func color(name string, get func(*galaxy.Parameters) *colorful.Color) Control {
	return Control{Name: name, Kind: Color, Min: 0, Max: 360, Step: hueStep, getColor: get}
}

// snap rounds v to the control's step grid and clamps it to range.
func (c Control) snap(v float64) float64 {
	if c.Step > 0 {
		v = c.Min + math.Round((v-c.Min)/c.Step)*c.Step
	}
	return math.Max(c.Min, math.Min(c.Max, v))
}

// Panel edits a draft of galaxy parameters and commits on finish change.
type Panel struct {
	controls  []Control
	cursor    int
	draft     galaxy.Parameters
	committed galaxy.Parameters
	dirty     bool
	onFinish  func(galaxy.Parameters) error
	lastErr   error
}

// NewPanel binds the standard controls to a clamped copy of p.
func NewPanel(p galaxy.Parameters, onFinish func(galaxy.Parameters) error) *Panel {
	p = p.Clamp()
	return &Panel{controls: Controls(), draft: p, committed: p, onFinish: onFinish}
}

func (p *Panel) Controls() []Control { return p.controls }
func (p *Panel) Cursor() int         { return p.cursor }
func (p *Panel) Dirty() bool         { return p.dirty }
func (p *Panel) Err() error          { return p.lastErr }

// Draft returns the parameters currently shown, committed or not.
func (p *Panel) Draft() galaxy.Parameters { return p.draft }

// Committed returns the last parameters handed to the commit callback.
func (p *Panel) Committed() galaxy.Parameters { return p.committed }

func (p *Panel) Selected() Control { return p.controls[p.cursor] }

// Move shifts the cursor by delta, committing a pending edit first.
func (p *Panel) Move(delta int) error {
	err := p.Commit()
	n := len(p.controls)
	p.cursor = ((p.cursor+delta)%n + n) % n
	return err
}

// Nudge adjusts the selected control by steps increments without committing.
// Color controls rotate their hue.
func (p *Panel) Nudge(steps int) {
	c := p.Selected()
	switch c.Kind {
	case Number:
		before := c.get(&p.draft)
		after := c.snap(before + float64(steps)*c.Step)
		if after != before {
			c.set(&p.draft, after)
			p.dirty = true
		}
	case Color:
		col := c.getColor(&p.draft)
		h, s, v := col.Hsv()
		h = math.Mod(h+float64(steps)*c.Step+360, 360)
		if next := colorful.Hsv(h, s, v).Clamped(); next != *col {
			*col = next
			p.dirty = true
		}
	}
}

// Set parses text into the selected control's draft value without committing.
// Numbers are snapped to range; colors accept "#rrggbb" or "#rgb".
func (p *Panel) Set(text string) error {
	c := p.Selected()
	text = strings.TrimSpace(text)
	switch c.Kind {
	case Color:
		col, err := galaxy.ParseColor(text)
		if err != nil {
			return fmt.Errorf("%s: %w", c.Name, err)
		}
		*c.getColor(&p.draft) = col
	default:
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", c.Name, err)
		}
		c.set(&p.draft, c.snap(v))
	}
	p.dirty = true
	return nil
}

// Commit hands the draft to the callback if it changed since the last commit.
func (p *Panel) Commit() error {
	if !p.dirty {
		return nil
	}
	return p.fire()
}

// Regenerate commits the draft unconditionally, producing a new random draw
// even when nothing was edited.
func (p *Panel) Regenerate() error {
	return p.fire()
}

func (p *Panel) fire() error {
	p.dirty = false
	snapshot := p.draft
	if p.onFinish == nil {
		p.committed = snapshot
		return nil
	}
	p.lastErr = p.onFinish(snapshot)
	if p.lastErr == nil {
		p.committed = snapshot
	}
	return p.lastErr
}

// Value formats the draft value of control i.
func (p *Panel) Value(i int) string {
	c := p.controls[i]
	if c.Kind == Color {
		return c.getColor(&p.draft).Hex()
	}
	v := c.get(&p.draft)
	switch {
	case c.Step >= 1:
		return strconv.FormatFloat(v, 'f', 0, 64)
	case c.Step >= 0.01:
		return strconv.FormatFloat(v, 'f', 2, 64)
	default:
		return strconv.FormatFloat(v, 'f', 3, 64)
	}
}

// Ratio returns where the draft value of control i sits in its range.
func (p *Panel) Ratio(i int) float64 {
	c := p.controls[i]
	if c.Kind == Color {
		h, _, _ := c.getColor(&p.draft).Hsv()
		return h / 360
	}
	return (c.get(&p.draft) - c.Min) / (c.Max - c.Min)
}

// ColorOf returns the draft color of control i, if it is a color control.
func (p *Panel) ColorOf(i int) (colorful.Color, bool) {
	c := p.controls[i]
	if c.Kind != Color {
		return colorful.Color{}, false
	}
	return *c.getColor(&p.draft), true
}
