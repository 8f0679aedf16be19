package catalog

import "github.com/playperu/spinwin/internal/prizewheel"

var wheelPrizes = []prizewheel.Prize{
	{ID: 1, Label: "20% OFF", Weight: 15, Color: "hsl(280 100% 60%)", Icon: "🎉"},
	{ID: 2, Label: "FREE ITEM", Weight: 5, Color: "hsl(145 100% 45%)", Icon: "🎁"},
	{ID: 3, Label: "25% OFF", Weight: 10, Color: "hsl(30 100% 60%)", Icon: "💎"},
	{ID: 4, Label: "15% OFF", Weight: 20, Color: "hsl(200 100% 60%)", Icon: "✨"},
	{ID: 5, Label: "FREE SHIPPING", Weight: 20, Color: "hsl(320 100% 70%)", Icon: "🚚"},
	{ID: 6, Label: "30% OFF", Weight: 8, Color: "hsl(45 100% 65%)", Icon: "🔥"},
	{ID: 7, Label: "10% OFF", Weight: 15, Color: "hsl(350 100% 65%)", Icon: "⭐"},
	{ID: 8, Label: "TRY AGAIN", Weight: 7, Color: "hsl(0 60% 60%)", Icon: "🔄", TryAgain: true},
}

var balloonPrizes = []prizewheel.Prize{
	{ID: 1, Label: "$500", Weight: 5, Color: "hsl(280 100% 60%)", Icon: "🎉"},
	{ID: 2, Label: "$1000", Weight: 3, Color: "hsl(145 100% 45%)", Icon: "🎁"},
	{ID: 3, Label: "$200", Weight: 10, Color: "hsl(30 100% 60%)", Icon: "💎"},
	{ID: 4, Label: "$100", Weight: 20, Color: "hsl(200 100% 60%)", Icon: "✨"},
	{ID: 5, Label: "$50", Weight: 25, Color: "hsl(320 100% 70%)", Icon: "🚚"},
	{ID: 6, Label: "$300", Weight: 8, Color: "hsl(45 100% 65%)", Icon: "🔥"},
	{ID: 7, Label: "$25", Weight: 22, Color: "hsl(350 100% 65%)", Icon: "⭐"},
	{ID: 8, Label: "TRY AGAIN", Weight: 7, Color: "hsl(0 60% 60%)", Icon: "🔄", TryAgain: true},
}

func mustGame(slug, name string, mech prizewheel.Mechanic, prizes []prizewheel.Prize) prizewheel.Game {
	tbl, err := prizewheel.NewTable(prizes)
	if err != nil {
		panic(err)
	}
	return prizewheel.Game{
		Slug:        slug,
		Name:        name,
		Mechanic:    mech,
		Table:       tbl,
		RevealDelay: mech.DefaultRevealDelay(),
	}
}

// Default returns the built-in "wheel" and "balloon" games.
func Default() *Catalog {
	c, err := New(
		mustGame("wheel", "Wheel of Fortune", prizewheel.MechanicWheel, wheelPrizes),
		mustGame("balloon", "Balloon Pop", prizewheel.MechanicBalloon, balloonPrizes),
	)
	if err != nil {
		panic(err)
	}
	return c
}
