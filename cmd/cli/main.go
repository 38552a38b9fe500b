// Command cli is a local, two-seat terminal driver for the engine. It holds one
// in-process Game for its lifetime and reads one command per line from stdin,
// printing the resulting state as JSON — there is no ASCII board renderer here;
// that's left to an external collaborator per the engine's render-agnostic design.
package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/callegarimattia/starfleet/internal/dto"
	"github.com/callegarimattia/starfleet/internal/engine"
	flags "github.com/jessevdk/go-flags"
)

type options struct {
	Seed int64 `long:"seed" description:"PRNG seed for the match (default: current time)"`
}

func main() {
	var opts options
	parser := flags.NewParser(&opts, flags.Default)
	parser.Name = "starfleet-cli"
	parser.LongDescription = "A local two-seat driver for the starfleet engine. " +
		"Type commands at the prompt; every command prints the resulting state as JSON."

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

	r := &repl{game: engine.NewGame("local", seed), out: os.Stdout}
	r.run(os.Stdin)
}

// repl dispatches one line of input at a time to the engine and prints the result.
type repl struct {
	game *engine.Game
	out  *os.File
}

func (r *repl) run(in *os.File) {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			return
		}
		r.dispatch(strings.Fields(line))
	}
}

func (r *repl) dispatch(fields []string) {
	if len(fields) == 0 {
		return
	}

	var err error
	switch fields[0] {
	case "host":
		err = r.host(fields[1:])
	case "field":
		err = r.field(fields[1:])
	case "fleet":
		err = r.fleet(fields[1:])
	case "place":
		err = r.place(fields[1:])
	case "autoplace":
		err = r.autoplace(fields[1:])
	case "ready":
		err = r.ready(fields[1:])
	case "start":
		err = r.start()
	case "shoot":
		err = r.shoot(fields[1:])
	case "state":
		err = r.state(fields[1:])
	default:
		err = fmt.Errorf("unknown command %q", fields[0])
	}

	if err != nil {
		r.printJSON(map[string]string{"error": err.Error()})
	}
}

func (r *repl) host(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: host <player1> <player2>")
	}
	if _, err := r.game.SetPlayer(args[0], ""); err != nil {
		return err
	}
	if _, err := r.game.SetPlayer(args[1], ""); err != nil {
		return err
	}
	return r.state([]string{args[0]})
}

func (r *repl) field(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: field <player> <shape> [params...]")
	}
	params, err := parseInts(args[2:])
	if err != nil {
		return err
	}
	if _, err := r.game.ChangePlayerField(args[0], engine.Shape(args[1]), params...); err != nil {
		return err
	}
	return r.state([]string{args[0]})
}

func (r *repl) fleet(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: fleet <player> <type>=<count>[,<type>=<count>...]")
	}
	counts := make(map[engine.EntityType]int)
	for _, pair := range strings.Split(args[1], ",") {
		parts := strings.SplitN(pair, "=", 2)
		if len(parts) != 2 {
			return fmt.Errorf("invalid fleet entry %q, want type=count", pair)
		}
		t, err := parseEntityType(parts[0])
		if err != nil {
			return err
		}
		n, err := strconv.Atoi(parts[1])
		if err != nil {
			return fmt.Errorf("invalid count in %q: %w", pair, err)
		}
		counts[t] = n
	}
	if _, err := r.game.ChangeEntityList(args[0], counts); err != nil {
		return err
	}
	return r.state([]string{args[0]})
}

func (r *repl) place(args []string) error {
	if len(args) < 3 || len(args) > 4 {
		return fmt.Errorf("usage: place <player> <type> <coordinate> [rotation]")
	}
	t, err := parseEntityType(args[1])
	if err != nil {
		return err
	}
	coords, err := engine.ParseCoordinate(args[2])
	if err != nil {
		return err
	}
	rotation := 0
	if len(args) == 4 {
		rotation, err = strconv.Atoi(args[3])
		if err != nil {
			return fmt.Errorf("invalid rotation: %w", err)
		}
	}
	if _, err := r.game.PlaceEntity(args[0], t, coords, rotation); err != nil {
		return err
	}
	return r.state([]string{args[0]})
}

func (r *repl) autoplace(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: autoplace <player>")
	}
	if _, _, err := r.game.Autoplace(args[0]); err != nil {
		return err
	}
	return r.state([]string{args[0]})
}

func (r *repl) ready(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: ready <player>")
	}
	if _, err := r.game.Ready(); err != nil {
		return err
	}
	return r.state([]string{args[0]})
}

func (r *repl) start() error {
	if _, err := r.game.Start(); err != nil {
		return err
	}
	names, err := r.game.GetPlayerNames()
	if err != nil || len(names) == 0 {
		return err
	}
	return r.state([]string{names[0]})
}

func (r *repl) shoot(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: shoot <player> <coordinate>")
	}
	coords, err := engine.ParseCoordinate(args[1])
	if err != nil {
		return err
	}
	_, targetEvent, err := r.game.Shoot(args[0], coords)
	if err != nil {
		return err
	}
	r.printJSON(dto.NewShotView(targetEvent))
	return r.state([]string{args[0]})
}

func (r *repl) state(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: state <player>")
	}
	view, err := r.buildView(args[0])
	if err != nil {
		return err
	}
	r.printJSON(view)
	return nil
}

// buildView assembles a dto.GameView the same way the HTTP/Discord transports do,
// directly against the engine rather than through a service — this binary is a
// single-process local driver, not a network client.
func (r *repl) buildView(playerID string) (dto.GameView, error) {
	names, err := r.game.GetPlayerNames()
	if err != nil {
		return dto.GameView{}, err
	}

	var enemyName string
	for _, n := range names {
		if n != playerID {
			enemyName = n
		}
	}

	me, err := r.game.PlayerMeta(playerID)
	if err != nil {
		return dto.GameView{}, err
	}
	meSnapshot, err := r.game.FieldSnapshot(playerID)
	if err != nil {
		return dto.GameView{}, err
	}

	var enemy engine.PlayerMeta
	var enemySnapshot map[engine.Coordinate]engine.CellStatus
	if enemyName != "" {
		enemy, err = r.game.PlayerMeta(enemyName)
		if err != nil {
			return dto.GameView{}, err
		}
		enemySnapshot, err = r.game.FieldSnapshot(enemyName)
		if err != nil {
			return dto.GameView{}, err
		}
	}

	turn, _ := r.game.WhosTurn()

	return dto.NewGameView("local", r.game.State(), turn, r.game.WhosWinner(), me, enemy, meSnapshot, enemySnapshot), nil
}

func (r *repl) printJSON(v any) {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func parseInts(args []string) ([]int, error) {
	out := make([]int, 0, len(args))
	for _, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q: %w", a, err)
		}
		out = append(out, n)
	}
	return out, nil
}

func parseEntityType(name string) (engine.EntityType, error) {
	switch name {
	case "Corvette":
		return engine.Corvette, nil
	case "Frigate":
		return engine.Frigate, nil
	case "Destroyer":
		return engine.Destroyer, nil
	case "Cruiser":
		return engine.Cruiser, nil
	case "Relay":
		return engine.Relay, nil
	case "Planet":
		return engine.Planet, nil
	default:
		return 0, fmt.Errorf("unknown entity type %q", name)
	}
}
