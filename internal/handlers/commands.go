package handlers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/ajarov/minesweep/internal/mines"
)

// Text command mini-language used by the batch endpoint and the
// websocket channel:
//
//	o x y // open the cell at x:y
//	f x y // toggle a flag at x:y
//	c x y // chord at x:y
//	r     // reset the board
//	g     // no-op, fetch current state
var commandNargs = map[string]int{
	"o": 2,
	"f": 2,
	"c": 2,
	"r": 0,
	"g": 0,
}

func parseXY(args []string) (x int, y int, err error) {
	if x, err = strconv.Atoi(args[0]); err != nil {
		return 0, 0, errors.New("first argument must be an int")
	}
	if y, err = strconv.Atoi(args[1]); err != nil {
		return 0, 0, errors.New("second argument must be an int")
	}
	return x, y, nil
}

func executeCommand(g *mines.Game, c string) error {
	parts := strings.Split(c, " ")
	nargs, ok := commandNargs[parts[0]]
	if !ok {
		return errors.New("unknown command")
	}
	if nargs != len(parts)-1 {
		return errors.New("invalid number of arguments")
	}
	switch parts[0] {
	case "g":
		return nil
	case "r":
		g.Reset()
		return nil
	}
	x, y, err := parseXY(parts[1:])
	if err != nil {
		return err
	}
	if !g.Params.InBounds(x, y) {
		return errors.New("invalid cell coordinates")
	}
	switch parts[0] {
	case "o":
		g.Reveal(x, y)
	case "f":
		g.ToggleFlag(x, y)
	case "c":
		g.Chord(x, y)
	}
	return nil
}
