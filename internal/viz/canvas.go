package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

// Canvas is a Braille dot grid where every cell also carries a color.
// Additive points sum into the cell color; painted points replace it.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	light         [][]colorful.Color
	solid         [][]bool
}

func NewCanvas(w, h int) *Canvas {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		light:  make([][]colorful.Color, h),
		solid:  make([][]bool, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.light[i] = make([]colorful.Color, w)
		c.solid[i] = make([]bool, w)
	}
	c.Clear()
	return c
}

// Dots returns the canvas size in sub-pixels, (Width*2) x (Height*4).
func (c *Canvas) Dots() (int, int) { return c.Width * 2, c.Height * 4 }

func (c *Canvas) cell(x, y int) (row, col int, ok bool) {
	if x < 0 || y < 0 {
		return 0, 0, false
	}
	col, row = x/2, y/4
	if col >= c.Width || row >= c.Height {
		return 0, 0, false
	}
	return row, col, true
}

// Add lights a dot and adds col to its cell, as additive blending does.
func (c *Canvas) Add(x, y int, col colorful.Color) {
	row, cl, ok := c.cell(x, y)
	if !ok || c.solid[row][cl] {
		return
	}
	c.Grid[row][cl] |= rune(pixelMap[y%4][x%2])
	l := &c.light[row][cl]
	l.R += col.R
	l.G += col.G
	l.B += col.B
}

// Paint lights a dot and makes its cell opaque in col.
func (c *Canvas) Paint(x, y int, col colorful.Color) {
	row, cl, ok := c.cell(x, y)
	if !ok {
		return
	}
	if !c.solid[row][cl] {
		c.Grid[row][cl] = blank
		c.solid[row][cl] = true
	}
	c.Grid[row][cl] |= rune(pixelMap[y%4][x%2])
	c.light[row][cl] = col
}

// ColorAt returns the clamped color of a cell.
func (c *Canvas) ColorAt(col, row int) colorful.Color {
	if col < 0 || row < 0 || col >= c.Width || row >= c.Height {
		return colorful.Color{}
	}
	return c.light[row][col].Clamped()
}

// Clear resets the canvas
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
			c.light[i][j] = colorful.Color{}
			c.solid[i][j] = false
		}
	}
}

// DrawLine adds col along a line between two sub-pixels using Bresenham's
// algorithm.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int, col colorful.Color) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Add(x0, y0, col)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// String renders the dots without color.
func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Render renders the dots with cell colors, batching runs of equal color.
func (c *Canvas) Render() string {
	var b strings.Builder
	for row := range c.Grid {
		var run []rune
		runColor := ""
		flush := func() {
			if len(run) == 0 {
				return
			}
			if runColor == "" {
				b.WriteString(string(run))
			} else {
				b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(runColor)).Render(string(run)))
			}
			run = run[:0]
		}
		for col, r := range c.Grid[row] {
			hex := ""
			if r != blank {
				hex = c.ColorAt(col, row).Hex()
			}
			if hex != runColor {
				flush()
				runColor = hex
			}
			run = append(run, r)
		}
		flush()
		b.WriteByte('\n')
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
