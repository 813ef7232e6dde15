package main

import (
	"fmt"
	"strings"
)

// cell is one character position of the bar graph.
type cell uint8

const (
	cellEmpty cell = iota
	cellBar
	cellPeak
)

const (
	barWidth = 2
	barGap   = 1
)

// layoutBars builds a rows × len(heights) grid, top row first. Heights and
// peaks are fractions of full scale. A peak is drawn only when it stands above its bar.
func layoutBars(heights, peaks []float64, rows int) [][]cell {
	grid := make([][]cell, rows)
	for r := range grid {
		grid[r] = make([]cell, len(heights))
	}
	for i, h := range heights {
		filled := int(clamp01(h)*float64(rows) + 0.5)
		for r := rows - filled; r < rows; r++ {
			grid[r][i] = cellBar
		}
		if i < len(peaks) {
			p := rows - int(clamp01(peaks[i])*float64(rows)+0.5)
			if p >= 0 && p < rows-filled {
				grid[p][i] = cellPeak
			}
		}
	}
	return grid
}

func clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}

// drawBars renders a grid, styled for the terminal when styled is set.
func drawBars(grid [][]cell, styled bool) string {
	bar := strings.Repeat("█", barWidth)
	peak := strings.Repeat("▔", barWidth)
	empty := strings.Repeat(" ", barWidth)
	gap := strings.Repeat(" ", barGap)
	if styled {
		bar = barStyle.Render(bar)
		peak = peakStyle.Render(peak)
	}

	var b strings.Builder
	for r, row := range grid {
		if r > 0 {
			b.WriteByte('\n')
		}
		for i, c := range row {
			if i > 0 {
				b.WriteString(gap)
			}
			switch c {
			case cellBar:
				b.WriteString(bar)
			case cellPeak:
				b.WriteString(peak)
			default:
				b.WriteString(empty)
			}
		}
	}
	return b.String()
}

// formatHz shortens a frequency to fit under a bar.
func formatHz(hz uint16) string {
	if hz >= 1000 {
		return fmt.Sprintf("%dk", (int(hz)+500)/1000)
	}
	return fmt.Sprintf("%d", hz)
}

// frequencyAxis labels every band whose label fits in the space left by its
// predecessor.
func frequencyAxis(centers []uint16) string {
	var b strings.Builder
	col := 0
	for i, c := range centers {
		start := i * (barWidth + barGap)
		label := formatHz(c)
		if start < col {
			continue
		}
		b.WriteString(strings.Repeat(" ", start-col))
		b.WriteString(label)
		col = start + len(label) + 1
		b.WriteByte(' ')
	}
	return strings.TrimRight(b.String(), " ")
}
