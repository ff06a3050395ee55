package codec_test

import (
	"fmt"

	"github.com/katalvlaran/panelwire/codec"
	"github.com/katalvlaran/panelwire/decoration"
	"github.com/katalvlaran/panelwire/grid"
)

func ExampleEncode() {
	g, _ := grid.New(5, 5)
	_ = g.SetSymbol(1, 1, decoration.New(decoration.Stone, decoration.Black))
	_ = g.AddStart(0, 4)
	_ = g.AddExit(4, 0)

	p, _, err := codec.Encode(codec.PanelContext{ID: 0x00064}, g)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(p.NumPoints(), p.NumConnections(), len(p.Decorations))

	back, _, _ := codec.Decode(codec.PanelContext{ID: 0x00064}, p)
	s, _ := back.Symbol(1, 1)
	fmt.Println(s.Kind, s.Color, back.Endpoints()[0].Dir)
	// Output:
	// 10 13 4
	// stone black up
}
