package analysis

import (
	"fmt"
	"math"
	"strings"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/galaxy/internal/galaxy"
)

// Chart plots the radial histogram.
func Chart(p *Profile, width, height int) string {
	if p == nil || len(p.RadialBins) == 0 {
		return ""
	}
	return asciigraph.Plot(p.RadialBins,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(fmt.Sprintf("particles by radius (bin %.3f)", p.BinWidth)))
}

// Summary renders the scalar statistics as aligned lines.
func Summary(p *Profile) string {
	if p == nil {
		return ""
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "particles   %d\n", p.Count)
	fmt.Fprintf(&sb, "radius      mean %.3f  sd %.3f  max %.3f\n", p.MeanRadius, p.StdRadius, p.MaxRadius)
	fmt.Fprintf(&sb, "thickness   mean %.4f  sd %.4f\n", p.MeanHeight, p.StdHeight)
	fmt.Fprintf(&sb, "arms        %d detected, %d generated\n", p.DominantArms, len(p.BranchCounts))
	return sb.String()
}

var densityRamp = []rune(" .:-=+*#%@")

// TopDown renders the x/z plane of buf as an ASCII density map.
func TopDown(buf *galaxy.Buffer, width, height int) string {
	if buf == nil || buf.Count == 0 || width < 1 || height < 1 {
		return ""
	}

	extent := 0.0
	for i := 0; i < buf.Count; i++ {
		x, _, z := buf.Position(i)
		extent = math.Max(extent, math.Max(math.Abs(float64(x)), math.Abs(float64(z))))
	}
	if extent == 0 {
		extent = 1
	}
	extent *= 1.05

	grid := make([]int, width*height)
	peak := 0
	for i := 0; i < buf.Count; i++ {
		x, _, z := buf.Position(i)
		col := int((float64(x)/extent + 1) / 2 * float64(width-1))
		row := int((float64(z)/extent + 1) / 2 * float64(height-1))
		if col < 0 || col >= width || row < 0 || row >= height {
			continue
		}
		grid[row*width+col]++
		peak = max(peak, grid[row*width+col])
	}

	var sb strings.Builder
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			c := grid[row*width+col]
			if c == 0 {
				sb.WriteRune(' ')
				continue
			}
			// log scale
			idx := 1 + int(math.Log1p(float64(c))/math.Log1p(float64(peak))*float64(len(densityRamp)-2))
			sb.WriteRune(densityRamp[min(idx, len(densityRamp)-1)])
		}
		sb.WriteRune('\n')
	}
	return sb.String()
}
