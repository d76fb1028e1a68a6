package internal

import (
	"fmt"
	"math"
	"os"

	"github.com/fogleman/gg"
	"github.com/logrusorgru/aurora"
	imgcat "github.com/martinlindhe/imgcat/lib"

	"github.com/dtcc-platform/spade/dbg"
)

// Padding around the shape so the bounding triangle's rim stays visible
const dbgDrawPadding = 100

// Helper to draw and print the mesh in the terminal (iTerm only) for
// debugging. Faces are filled by region, constrained edges stroked heavier.
func (m *Mesh) dbgDraw(scale float64) {
	var minX, minY, maxX, maxY float64
	minX = math.Inf(1)
	minY = math.Inf(1)
	maxX = math.Inf(-1)
	maxY = math.Inf(-1)
	for i, v := range m.Verts {
		if m.isBoundingVertex(VertexIndex(i)) {
			continue
		}
		minX = math.Min(minX, v.Pos.X)
		minY = math.Min(minY, v.Pos.Y)
		maxX = math.Max(maxX, v.Pos.X)
		maxY = math.Max(maxY, v.Pos.Y)
	}
	if math.IsInf(minX, 1) {
		return
	}

	width := int(scale*(maxX-minX)) + dbgDrawPadding*2
	height := int(scale*(maxY-minY)) + dbgDrawPadding*2
	c := gg.NewContext(width, height)
	c.SetRGB(0, 0, 0)
	c.DrawRectangle(0, 0, float64(width), float64(height))
	c.Fill()
	// Flip the context so the origin is at the bottom left
	c.Translate(0, float64(height))
	c.Scale(1, -1)
	c.Translate(dbgDrawPadding, dbgDrawPadding)
	c.Scale(scale, scale)
	c.Translate(-minX, -minY)

	m.Faces(func(f EdgeIndex) {
		a := m.Edges[f].Origin
		b := m.dest(f)
		apx := m.apex(f)
		if m.isBoundingVertex(a) || m.isBoundingVertex(b) || m.isBoundingVertex(apx) {
			return
		}
		pa := m.Verts[a].Pos
		pb := m.Verts[b].Pos
		pc := m.Verts[apx].Pos
		c.MoveTo(pa.X, pa.Y)
		c.LineTo(pb.X, pb.Y)
		c.LineTo(pc.X, pc.Y)
		c.ClosePath()
		switch m.Edges[f].Label {
		case RegionInterior:
			c.SetRGBA(0.3, 0.2, 1, 0.5)
		case RegionHole:
			c.SetRGBA(1, 0.3, 0.2, 0.5)
		default:
			c.SetRGBA(1, 1, 0, 0.2)
		}
		c.Fill()
	})

	c.SetLineWidth(1)
	for e := EdgeIndex(0); int(e) < len(m.Edges); e++ {
		if e >= m.Edges[e].Twin {
			continue
		}
		a := m.Edges[e].Origin
		b := m.dest(e)
		if m.isBoundingVertex(a) || m.isBoundingVertex(b) {
			continue
		}
		pa := m.Verts[a].Pos
		pb := m.Verts[b].Pos
		if m.Edges[e].Constrained {
			c.SetLineWidth(3)
			c.SetRGB(0, 1, 0)
		} else {
			c.SetLineWidth(1)
			c.SetRGB(0.6, 0.6, 0.6)
		}
		c.MoveTo(pa.X, pa.Y)
		c.LineTo(pb.X, pb.Y)
		c.Stroke()
	}

	c.SavePNG("/tmp/mesh.png")
	imgcat.CatFile("/tmp/mesh.png", os.Stdout)
}

// DbgName gives an edge a stable readable name for log spelunking.
func (m *Mesh) DbgName(e EdgeIndex) string {
	return dbg.Name(int(e))
}

// EdgeString renders an edge for debug output, colored so constrained edges
// stand out in a wall of legalization logging.
func (m *Mesh) EdgeString(e EdgeIndex) string {
	he := m.Edges[e]
	s := fmt.Sprintf("%s[%d->%d %s]", m.DbgName(e), he.Origin, m.dest(e), he.Label)
	if he.Constrained {
		return aurora.Green(s).String()
	}
	return aurora.Cyan(s).String()
}
