package visualization

import (
	"bytes"
	"strings"

	svg "github.com/ajstarks/svgo"
	"github.com/fogleman/gg"

	"github.com/dpp40/dpp-go-components/internal/common"
	"github.com/dpp40/dpp-go-components/internal/common/model"
)

const (
	FormatPNG  = "png"
	FormatSVG  = "svg"
	FormatJSON = "json"
)

const (
	nodeWidth  = 170
	nodeHeight = 50
	hGap       = 40
	vGap       = 110
	margin     = 50
)

// Render rasterizes a graph description into the requested image format.
// The json format never reaches here; callers short-circuit it to the
// description itself.
func Render(g *model.GraphDescription, format string) ([]byte, string, error) {
	switch strings.ToLower(format) {
	case FormatSVG:
		return renderSVG(g)
	case FormatPNG:
		return renderPNG(g)
	default:
		return nil, "", common.NewErrUnsupportedFormat(format)
	}
}

// position is a computed node center.
type position struct {
	x, y int
}

// layout places nodes on type levels: the shell root on top, submodels
// below it, elements at the bottom. Single-level views (stages, actors)
// become one horizontal chain. Returns positions plus canvas size.
func layout(g *model.GraphDescription) (map[string]position, int, int) {
	levelOf := func(nodeType string) int {
		switch nodeType {
		case nodeTypeAAS:
			return 0
		case nodeTypeSubmodel:
			return 1
		case nodeTypeElement:
			return 2
		default:
			return 0
		}
	}

	perLevel := map[int][]string{}
	maxLevel := 0
	for _, n := range g.Nodes {
		l := levelOf(n.Type)
		perLevel[l] = append(perLevel[l], n.ID)
		if l > maxLevel {
			maxLevel = l
		}
	}

	width := 0
	for _, ids := range perLevel {
		w := len(ids)*(nodeWidth+hGap) - hGap + 2*margin
		if w > width {
			width = w
		}
	}
	if width < nodeWidth+2*margin {
		width = nodeWidth + 2*margin
	}
	height := (maxLevel+1)*(nodeHeight+vGap) - vGap + 2*margin

	pos := make(map[string]position, len(g.Nodes))
	for level, ids := range perLevel {
		rowWidth := len(ids)*(nodeWidth+hGap) - hGap
		x0 := (width - rowWidth) / 2
		y := margin + level*(nodeHeight+vGap) + nodeHeight/2
		for i, id := range ids {
			pos[id] = position{
				x: x0 + i*(nodeWidth+hGap) + nodeWidth/2,
				y: y,
			}
		}
	}
	return pos, width, height
}

func renderSVG(g *model.GraphDescription) ([]byte, string, error) {
	pos, width, height := layout(g)

	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, "fill:white")

	for _, e := range g.Edges {
		from, okF := pos[e.Source]
		to, okT := pos[e.Target]
		if !okF || !okT {
			continue
		}
		style := "stroke:#555;stroke-width:2"
		if e.Recycling {
			style = "stroke:#2e8b57;stroke-width:2;stroke-dasharray:6,4"
		}
		canvas.Line(from.x, from.y, to.x, to.y, style)
		if e.Relation != "" {
			canvas.Text((from.x+to.x)/2, (from.y+to.y)/2-6, e.Relation,
				"font-size:10px;fill:#888;text-anchor:middle")
		}
	}

	for _, n := range g.Nodes {
		p, ok := pos[n.ID]
		if !ok {
			continue
		}
		canvas.Roundrect(p.x-nodeWidth/2, p.y-nodeHeight/2, nodeWidth, nodeHeight, 8, 8,
			"fill:#eef4fb;stroke:#3b6ea5;stroke-width:2")
		label := n.Label
		if label == "" {
			label = n.ID
		}
		canvas.Text(p.x, p.y+4, label,
			"font-size:12px;fill:#1c2b3a;text-anchor:middle;font-family:sans-serif")
	}

	canvas.End()
	return buf.Bytes(), "image/svg+xml", nil
}

func renderPNG(g *model.GraphDescription) ([]byte, string, error) {
	pos, width, height := layout(g)

	dc := gg.NewContext(width, height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	for _, e := range g.Edges {
		from, okF := pos[e.Source]
		to, okT := pos[e.Target]
		if !okF || !okT {
			continue
		}
		if e.Recycling {
			dc.SetRGB(0.18, 0.55, 0.34)
			dc.SetDash(6, 4)
		} else {
			dc.SetRGB(0.33, 0.33, 0.33)
			dc.SetDash()
		}
		dc.SetLineWidth(2)
		dc.DrawLine(float64(from.x), float64(from.y), float64(to.x), float64(to.y))
		dc.Stroke()
	}
	dc.SetDash()

	for _, n := range g.Nodes {
		p, ok := pos[n.ID]
		if !ok {
			continue
		}
		x := float64(p.x - nodeWidth/2)
		y := float64(p.y - nodeHeight/2)
		dc.SetRGB(0.93, 0.96, 0.98)
		dc.DrawRoundedRectangle(x, y, nodeWidth, nodeHeight, 8)
		dc.Fill()
		dc.SetRGB(0.23, 0.43, 0.65)
		dc.SetLineWidth(2)
		dc.DrawRoundedRectangle(x, y, nodeWidth, nodeHeight, 8)
		dc.Stroke()

		label := n.Label
		if label == "" {
			label = n.ID
		}
		dc.SetRGB(0.11, 0.17, 0.23)
		dc.DrawStringAnchored(label, float64(p.x), float64(p.y), 0.5, 0.35)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, "", common.NewErrRenderFailure("png encoding: " + err.Error())
	}
	return buf.Bytes(), "image/png", nil
}
