// Command bench plays out many bot-vs-bot matches against the engine directly,
// with no transport layer involved, to measure turns-to-win and wall-clock cost for
// a given field size and bot pairing.
package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/callegarimattia/starfleet/internal/engine"
	flags "github.com/jessevdk/go-flags"
)

type options struct {
	Matches int    `short:"n" long:"matches" default:"1000" description:"number of matches to simulate"`
	Seed    int64  `long:"seed" description:"base PRNG seed (default: current time)"`
	BotA    string `long:"bot-a" default:"hunter" choice:"hunter" choice:"randomer" description:"bot facing the field"`
	BotB    string `long:"bot-b" default:"hunter" choice:"hunter" choice:"randomer" description:"opposing bot"`
	Side    int    `long:"side" default:"8" description:"square field side length"`
}

func main() {
	var opts options
	parser := flags.NewParser(&opts, flags.Default)
	parser.Name = "starfleet-bench"
	parser.LongDescription = "Simulates bot-vs-bot matches directly against the engine and reports turn counts."

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	start := time.Now()
	wins := map[string]int{}
	totalTurns := 0

	for i := 0; i < opts.Matches; i++ {
		winner, turns, err := playMatch(seed+int64(i), opts.Side, opts.BotA, opts.BotB)
		if err != nil {
			fmt.Fprintf(os.Stderr, "match %d failed: %v\n", i, err)
			os.Exit(1)
		}
		wins[winner]++
		totalTurns += turns
	}

	elapsed := time.Since(start)
	fmt.Printf("matches=%d field=%dx%d a=%s b=%s\n", opts.Matches, opts.Side, opts.Side, opts.BotA, opts.BotB)
	fmt.Printf("wins: a=%d b=%d\n", wins["a"], wins["b"])
	fmt.Printf("avg turns to decide: %.1f\n", float64(totalTurns)/float64(opts.Matches))
	fmt.Printf("elapsed: %s (%.0f matches/sec)\n", elapsed, float64(opts.Matches)/elapsed.Seconds())
}

// playMatch sets up a two-player Game, autoplaces both fleets, and alternates bot
// shots until someone wins. It returns "a" or "b" and the number of shots fired.
func playMatch(seed int64, side int, botAKind, botBKind string) (string, int, error) {
	g := engine.NewGame("bench", seed)

	if _, err := g.SetPlayer("a", ""); err != nil {
		return "", 0, err
	}
	if _, err := g.SetPlayer("b", ""); err != nil {
		return "", 0, err
	}

	for _, name := range []string{"a", "b"} {
		if _, err := g.ChangePlayerField(name, engine.ShapeRectangle, side, side); err != nil {
			return "", 0, err
		}
		if _, err := g.ChangeEntityList(name, map[engine.EntityType]int{engine.Corvette: 2, engine.Frigate: 1}); err != nil {
			return "", 0, err
		}
	}

	if _, err := g.Ready(); err != nil {
		return "", 0, err
	}
	for _, name := range []string{"a", "b"} {
		if _, _, err := g.Autoplace(name); err != nil {
			return "", 0, err
		}
	}
	if _, err := g.Start(); err != nil {
		return "", 0, err
	}

	bots := map[string]engine.Bot{
		"a": newBot(botAKind, "a"),
		"b": newBot(botBKind, "b"),
	}
	for name, bot := range bots {
		enemy := "b"
		if name == "b" {
			enemy = "a"
		}
		snapshot, err := g.FieldSnapshot(enemy)
		if err != nil {
			return "", 0, err
		}
		seedBot(bot, maskSnapshot(snapshot))
	}

	botRng := rand.New(rand.NewSource(seed + 1))

	turns := 0
	for g.WhosWinner() == "" {
		turn, err := g.WhosTurn()
		if err != nil {
			return "", turns, err
		}

		bot := bots[turn]
		coords, ok := bot.Shoot(botRng)
		if !ok {
			return "", turns, fmt.Errorf("bot %s ran out of cells", turn)
		}

		_, targetEvent, err := g.Shoot(turn, coords)
		if err != nil {
			return "", turns, err
		}
		turns++

		bot.ShotResult(coords, targetEvent.ShotResults[coords])
		if len(targetEvent.DestroyedCells) > 0 {
			bot.ValidateDestruction(targetEvent.DestroyedCells)
		}
	}

	return g.WhosWinner(), turns, nil
}

func newBot(kind, name string) engine.Bot {
	if kind == "randomer" {
		return engine.NewRandomer(name)
	}
	return engine.NewHunter(name)
}

// seedBot feeds a freshly created bot its opponent's initial shadow field. Every Bot
// implementation exposes Seed indirectly through baseBot, so this type-switches on
// the two concrete bot types rather than widening the Bot interface just for setup.
func seedBot(b engine.Bot, cells map[engine.Coordinate]engine.CellStatus) {
	switch bot := b.(type) {
	case *engine.Randomer:
		bot.Seed(cells)
	case *engine.Hunter:
		bot.Seed(cells)
	}
}

// maskSnapshot strips entity positions out of a full field snapshot, leaving only
// what an opponent legitimately knows before firing a shot: which cells are void and
// which are in play.
func maskSnapshot(snapshot map[engine.Coordinate]engine.CellStatus) map[engine.Coordinate]engine.CellStatus {
	out := make(map[engine.Coordinate]engine.CellStatus, len(snapshot))
	for c, status := range snapshot {
		if status == engine.CellStatusVoid {
			out[c] = engine.CellStatusVoid
			continue
		}
		out[c] = engine.CellStatusFree
	}
	return out
}
