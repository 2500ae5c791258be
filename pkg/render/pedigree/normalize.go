package pedigree

// normalize shifts all nodes so the drawing's top-left corner sits at
// (canvasPadding, canvasPadding) and returns the padded canvas size.
func normalize(nodes []*Node, p Params) (width, height float64) {
	minX, minY := nodes[0].X, nodes[0].Y
	maxX, maxY := nodes[0].X+p.NodeWidth, nodes[0].Y+p.NodeHeight
	for _, n := range nodes[1:] {
		if n.X < minX {
			minX = n.X
		}
		if n.Y < minY {
			minY = n.Y
		}
		if r := n.X + p.NodeWidth; r > maxX {
			maxX = r
		}
		if b := n.Y + p.NodeHeight; b > maxY {
			maxY = b
		}
	}

	dx := canvasPadding - minX
	dy := canvasPadding - minY
	for _, n := range nodes {
		n.X += dx
		n.Y += dy
	}

	return maxX - minX + 2*canvasPadding, maxY - minY + 2*canvasPadding
}
