package analysis

import "strings"

// PhasePortrait plots (xs[i], ys[i]) pairs as a width x height character
// grid with 10% padding, drawing the axes where they cross the view.
func PhasePortrait(xs, ys []float64, width, height int) string {
	n := min(len(xs), len(ys))
	if n == 0 || width < 2 || height < 2 {
		return ""
	}

	minX, maxX := xs[0], xs[0]
	minY, maxY := ys[0], ys[0]
	for i := 1; i < n; i++ {
		minX, maxX = min(minX, xs[i]), max(maxX, xs[i])
		minY, maxY = min(minY, ys[i]), max(maxY, ys[i])
	}

	rangeX, rangeY := maxX-minX, maxY-minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX, rangeY = maxX-minX, maxY-minY

	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", width))
	}
	col := func(x float64) int { return int((x - minX) / rangeX * float64(width-1)) }
	row := func(y float64) int { return height - 1 - int((y-minY)/rangeY*float64(height-1)) }

	for i := 0; i < n; i++ {
		grid[row(ys[i])][col(xs[i])] = '•'
	}

	if minX <= 0 && maxX >= 0 {
		c := col(0)
		for r := range grid {
			if grid[r][c] == ' ' {
				grid[r][c] = '│'
			}
		}
	}
	if minY <= 0 && maxY >= 0 {
		r := row(0)
		for c := range grid[r] {
			if grid[r][c] == ' ' {
				grid[r][c] = '─'
			}
		}
	}

	var sb strings.Builder
	for _, line := range grid {
		sb.WriteString(string(line))
		sb.WriteRune('\n')
	}
	return sb.String()
}
