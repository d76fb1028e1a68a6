package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fogleman/gg"

	"github.com/dtcc-platform/spade"
)

// Demo of mesh generation. Input on stdin should be newline separated points
// in the form "x y", with each polygon separated by an extra newline. The
// first polygon is the outer boundary, every subsequent one is a hole. The
// resulting mesh is rendered to a PNG.
func main() {
	maxEdge := flag.Float64("max-edge", 0, "maximum edge length (0 = unbounded)")
	minAngle := flag.Float64("min-angle", 0, "minimum triangle angle in degrees (0 = unbounded)")
	meshHoles := flag.Bool("mesh-holes", false, "triangulate hole interiors too")
	out := flag.String("out", "mesh.png", "output image path")
	flag.Parse()

	polygons := readPolygons(os.Stdin)
	if len(polygons) == 0 {
		fmt.Fprintln(os.Stderr, "no polygons on stdin")
		os.Exit(1)
	}

	mesh, err := spade.Triangulate(polygons[0], polygons[1:], &spade.Options{
		MaxEdgeLength:    *maxEdge,
		MinAngle:         *minAngle,
		TriangulateHoles: *meshHoles,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Printf("%d vertices, %d triangles, %d constrained edges\n",
		len(mesh.Vertices), len(mesh.Triangles), len(mesh.Edges))

	if err := render(mesh, *out); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Printf("wrote %s\n", *out)
}

func readPolygons(in *os.File) [][]spade.Point {
	polygons := [][]spade.Point{}
	scanner := bufio.NewScanner(in)
	points := []spade.Point{}
	for scanner.Scan() {
		line := scanner.Text()

		// An empty line ends the current polygon, if we collected any points
		if line == "" {
			if len(points) > 0 {
				polygons = append(polygons, points)
				points = []spade.Point{}
			}
			continue
		}

		points = append(points, parsePoint(line))
	}

	// Handle trailing polygon if any
	if len(points) > 0 {
		polygons = append(polygons, points)
	}
	return polygons
}

func parsePoint(line string) spade.Point {
	parts := strings.Fields(line)
	x, _ := strconv.ParseFloat(parts[0], 64)
	y, _ := strconv.ParseFloat(parts[1], 64)
	return spade.Point{X: x, Y: y}
}

func render(mesh *spade.Mesh, path string) error {
	const size = 1000
	const pad = 20

	minX, minY := mesh.Vertices[0][0], mesh.Vertices[0][1]
	maxX, maxY := minX, minY
	for _, v := range mesh.Vertices {
		if v[0] < minX {
			minX = v[0]
		}
		if v[0] > maxX {
			maxX = v[0]
		}
		if v[1] < minY {
			minY = v[1]
		}
		if v[1] > maxY {
			maxY = v[1]
		}
	}
	scale := (size - 2*pad) / maxf(maxX-minX, maxY-minY)

	c := gg.NewContext(size, size)
	c.SetRGB(1, 1, 1)
	c.Clear()
	// Flip so the origin is at the bottom left
	c.Translate(0, size)
	c.Scale(1, -1)
	c.Translate(pad, pad)
	c.Scale(scale, scale)
	c.Translate(-minX, -minY)

	c.SetRGB(0.4, 0.4, 0.4)
	c.SetLineWidth(1 / scale)
	for _, t := range mesh.Triangles {
		a, b, d := mesh.Vertices[t[0]], mesh.Vertices[t[1]], mesh.Vertices[t[2]]
		c.MoveTo(a[0], a[1])
		c.LineTo(b[0], b[1])
		c.LineTo(d[0], d[1])
		c.ClosePath()
	}
	c.Stroke()

	c.SetRGB(0, 0.6, 0)
	c.SetLineWidth(2 / scale)
	for _, e := range mesh.Edges {
		a, b := mesh.Vertices[e[0]], mesh.Vertices[e[1]]
		c.MoveTo(a[0], a[1])
		c.LineTo(b[0], b[1])
	}
	c.Stroke()

	return c.SavePNG(path)
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
