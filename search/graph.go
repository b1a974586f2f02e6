package search

import (
	"bytes"
	"fmt"
	"sort"
	"text/template"

	"github.com/awalterschulze/gographviz"
	"github.com/renjuzero/renjuzero/board"
)

type statefulNode struct {
	*Node
	Player board.Colour
	board  []board.Colour
	stride int
}

func (s *statefulNode) State() string {
	var buf bytes.Buffer
	for i, c := range s.board {
		if i%s.stride == 0 {
			fmt.Fprint(&buf, "⎢ ")
		}
		fmt.Fprintf(&buf, "%s ", c)
		if (i+1)%s.stride == 0 && i != 0 {
			fmt.Fprint(&buf, "⎥<BR />")
		}
	}
	return buf.String()
}

// ToDot renders the tree (every still-Active node) as a Graphviz dot
// document, for inspecting a search after the fact.
func (t *Tree) ToDot() string {
	g := gographviz.NewGraph()
	if err := g.SetName("G"); err != nil {
		panic(err)
	}
	g.SetDir(true)

	states := make([]*statefulNode, len(t.nodes))
	for i := range t.nodes {
		states[i] = &statefulNode{
			Node:   &t.nodes[i],
			board:  make([]board.Colour, t.BoardSize*t.BoardSize),
			stride: t.BoardSize,
		}
	}

	var buf bytes.Buffer
	for i, kids := range t.children {
		n := states[i]
		if !n.IsActive() {
			continue
		}
		if n.Player == board.None {
			n.Player = board.Black
		}
		move := n.Move()
		if !move.IsPass() && !move.IsResignation() {
			n.board[move] = n.Player
		}

		graphTmpl.Execute(&buf, n)
		attrs := map[string]string{
			"fontname": "Monaco",
			"shape":    "none",
			"label":    buf.String(),
		}
		g.AddNode("G", fmt.Sprintf("%v", n.ID()), attrs)
		buf.Reset()

		sort.Sort(byMove{l: kids, t: t})
		for _, kid := range kids {
			child := t.nodeFromNaughty(kid)
			if !child.IsActive() {
				continue
			}
			s := states[child.ID()]
			copy(s.board, n.board)
			s.Player = board.Colour(board.Player(n.Player).Opponent())
			g.AddEdge(fmt.Sprintf("%v", n.ID()), fmt.Sprintf("%v", kid), true, nil)
		}
	}
	return g.String()
}

const graphTmplRaw = `<
<TABLE BORDER="0" CELLBORDER="1" CELLSPACING="0">
<TR><TD>Node ID</TD><TD>xx{{.ID}}</TD></TR>
<TR><TD>Move</TD><TD>{{.Move}}</TD></TR>
<TR><TD>Player</TD><TD>{{.Player}}</TD></TR>
<TR><TD>Visits</TD><TD>{{.Visits}}</TD></TR>
<TR><TD>Score</TD><TD>{{.Score}}</TD></TR>
<TR><TD>Value</TD><TD>{{.Value}}</TD></TR>
<TR><TD>State</TD><TD>{{.State}}</TD></TR>
</TABLE>
>
`

var graphTmpl *template.Template

func init() {
	graphTmpl = template.Must(template.New("node").Parse(graphTmplRaw))
}
