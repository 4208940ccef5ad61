package placement

import (
	_ "embed"
	"strings"

	"github.com/plus3/duckpond/pond"
)

//go:embed ducks.csv
var defaultLayout string

// Default is the built-in pond layout used when no placement file is given.
func Default() []pond.Placement {
	placements, err := Parse(strings.NewReader(defaultLayout))
	if err != nil {
		panic("placement: built-in layout: " + err.Error())
	}
	return placements
}
