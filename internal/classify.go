package internal

// Region classification. With all constraints in place, the constrained
// edges partition the triangles into regions. Each face's nesting depth is
// the number of constraint loops around it, which equals the minimum number
// of constrained edges any path from the far outside must cross to reach it.
// That minimum is computed by a level-order flood fill over the face dual
// graph: within a level the fill spreads freely through unconstrained edges,
// and constrained crossings feed the next level.

// ClassifyRegions labels every face: depth 0 is exterior, odd depths are
// interior, even depths of 2 or more are holes. Nested hole structure
// alternates correctly under this rule, one toggle per crossed loop.
func (c *CDT) ClassifyRegions() {
	m := c.M

	depth := make([]int, len(m.Edges))
	for i := range depth {
		depth[i] = -1
	}

	// Any face touching a bounding-triangle vertex is outside every
	// constraint loop, so it seeds depth zero.
	frontier := []EdgeIndex{m.canonical(m.Verts[0].Edge)}
	for d := 0; len(frontier) > 0; d++ {
		var next []EdgeIndex
		stack := frontier
		for len(stack) > 0 {
			f := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if depth[f] != -1 {
				continue
			}
			depth[f] = d

			for _, e := range [3]EdgeIndex{f, m.next(f), m.prev(f)} {
				n := m.canonical(m.Edges[e].Twin)
				if depth[n] != -1 {
					continue
				}
				if m.Edges[e].Constrained {
					next = append(next, n)
				} else {
					stack = append(stack, n)
				}
			}
		}
		frontier = next
	}

	m.Faces(func(f EdgeIndex) {
		var label Region
		switch d := depth[f]; {
		case d == 0:
			label = RegionExterior
		case d%2 == 1:
			label = RegionInterior
		default:
			label = RegionHole
		}
		m.Edges[f].Label = label
		m.Edges[m.next(f)].Label = label
		m.Edges[m.prev(f)].Label = label
	})
}
