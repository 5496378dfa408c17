package display

import (
	"fmt"
	"math"
	"strings"

	"github.com/hammamikhairi/pourover/internal/curve"
	"github.com/hammamikhairi/pourover/internal/domain"
)

// Chart headroom above the total water, in grams.
const yHeadroom = 20.0

// Minimum plot size.
const (
	minChartWidth  = 8
	minChartHeight = 3
)

type cellKind uint8

const (
	cellEmpty cellKind = iota
	cellFuture
	cellPast
	cellFill
	cellNow
	cellMarker
)

var cellRunes = map[cellKind]rune{
	cellEmpty:  ' ',
	cellFuture: '·',
	cellPast:   '█',
	cellFill:   '░',
	cellNow:    '│',
	cellMarker: '◆',
}

// Chart is the planned pour curve rasterised onto a character grid. Time
// runs left to right up to the padding past the end of the recipe; weight
// runs bottom to top up to the total water plus headroom.
type Chart struct {
	width, height int
	cells         [][]cellKind
	xMax, yMax    float64

	nowCol    int
	markerRow int
	target    float64
}

// NewChart plots r with the clock at elapsed seconds. The plot area is
// width by height characters, not counting axes and labels.
func NewChart(r *domain.Recipe, elapsed float64, width, height int) (*Chart, error) {
	width = max(width, minChartWidth)
	height = max(height, minChartHeight)

	c := &Chart{
		width:  width,
		height: height,
		xMax:   r.EndTime() + curve.Padding,
		yMax:   r.TotalWater() + yHeadroom,
	}
	c.cells = make([][]cellKind, height)
	for i := range c.cells {
		c.cells[i] = make([]cellKind, width)
	}

	samples, err := curve.Sample(r, c.xMax/float64(width-1))
	if err != nil {
		return nil, fmt.Errorf("plotting curve: %w", err)
	}
	for col, s := range samples {
		if col >= width {
			break
		}
		row := c.rowFor(s.Weight)
		if s.Time > elapsed {
			c.cells[row][col] = cellFuture
			continue
		}
		c.cells[row][col] = cellPast
		for below := row + 1; below < height; below++ {
			c.cells[below][col] = cellFill
		}
	}

	target, err := curve.Weight(r, elapsed)
	if err != nil {
		return nil, fmt.Errorf("plotting marker: %w", err)
	}
	c.target = target
	c.nowCol = c.colFor(elapsed)
	c.markerRow = c.rowFor(target)
	for row := 0; row < height; row++ {
		if k := c.cells[row][c.nowCol]; k == cellEmpty || k == cellFill {
			c.cells[row][c.nowCol] = cellNow
		}
	}
	c.cells[c.markerRow][c.nowCol] = cellMarker
	return c, nil
}

func (c *Chart) rowFor(weight float64) int {
	frac := math.Min(math.Max(weight/c.yMax, 0), 1)
	return c.height - 1 - int(math.Round(frac*float64(c.height-1)))
}

func (c *Chart) colFor(t float64) int {
	frac := math.Min(math.Max(t/c.xMax, 0), 1)
	return int(math.Round(frac * float64(c.width-1)))
}

// Marker returns the grid position of the current-time marker.
func (c *Chart) Marker() (row, col int) { return c.markerRow, c.nowCol }

// Target returns the weight shown by the marker label.
func (c *Chart) Target() float64 { return c.target }

// Lines returns the plot area as plain text, one string per row.
func (c *Chart) Lines() []string {
	out := make([]string, c.height)
	for i, row := range c.cells {
		var b strings.Builder
		for _, k := range row {
			b.WriteRune(cellRunes[k])
		}
		out[i] = b.String()
	}
	return out
}

// render draws the plot with axes, tick labels and the target label.
func (c *Chart) render(st styles) string {
	const gutter = 6 // y labels plus the axis line

	var b strings.Builder

	label := fmt.Sprintf("Target: %.0fg", c.target)
	pad := min(c.nowCol, max(c.width-len(label), 0))
	b.WriteString(strings.Repeat(" ", gutter+pad))
	b.WriteString(st.marker.Render(label))
	b.WriteByte('\n')

	for i, row := range c.cells {
		y := ""
		switch i {
		case 0:
			y = fmt.Sprintf("%.0f", c.yMax)
		case c.height - 1:
			y = "0"
		}
		b.WriteString(st.axis.Render(fmt.Sprintf("%5s│", y)))
		for _, k := range row {
			r := string(cellRunes[k])
			switch k {
			case cellPast, cellFill:
				b.WriteString(st.past.Render(r))
			case cellFuture:
				b.WriteString(st.future.Render(r))
			case cellNow, cellMarker:
				b.WriteString(st.marker.Render(r))
			default:
				b.WriteString(r)
			}
		}
		b.WriteByte('\n')
	}

	b.WriteString(st.axis.Render(strings.Repeat(" ", gutter-1) + "└" + strings.Repeat("─", c.width)))
	b.WriteByte('\n')
	b.WriteString(st.axis.Render(strings.Repeat(" ", gutter) + c.xLabels()))
	return b.String()
}

// xLabels places m:ss labels at the start, middle and end of the axis.
func (c *Chart) xLabels() string {
	line := []rune(strings.Repeat(" ", c.width))
	put := func(col int, s string) {
		col = min(col, c.width-len(s))
		for i, r := range s {
			if col+i >= 0 && col+i < len(line) {
				line[col+i] = r
			}
		}
	}
	put(0, fmtClock(0))
	mid := fmtClock(c.xMax / 2)
	put((c.width-len(mid))/2, mid)
	put(c.width, fmtClock(c.xMax))
	return string(line)
}

// fmtClock formats seconds as m:ss.
func fmtClock(seconds float64) string {
	if !(seconds > 0) {
		seconds = 0
	}
	s := int(seconds)
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}
