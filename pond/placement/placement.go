// Package placement reads the starting positions of autonomous ducks.
//
// Each non-blank line describes one duck:
//
//	name;x,z;heading;scale
//
// Lines starting with '#' are comments. Heading is in radians.
package placement

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/plus3/duckpond/pond"
)

var (
	ErrFieldCount = errors.New("placement: want name;x,z;heading;scale")
	ErrPosition   = errors.New("placement: want position as x,z")
)

// LineError reports a malformed line. Line is 1-based.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// Parse reads placements from r. Malformed lines are skipped; the returned
// error joins a *LineError for each of them. Placements from valid lines are
// returned either way.
func Parse(r io.Reader) ([]pond.Placement, error) {
	var (
		placements []pond.Placement
		errs       []error
	)

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		p, err := ParseLine(text)
		if err != nil {
			errs = append(errs, &LineError{Line: line, Err: err})
			continue
		}
		placements = append(placements, p)
	}
	if err := scanner.Err(); err != nil {
		errs = append(errs, err)
	}

	return placements, errors.Join(errs...)
}

// ParseLine parses a single name;x,z;heading;scale record.
func ParseLine(text string) (pond.Placement, error) {
	fields := strings.Split(text, ";")
	if len(fields) != 4 {
		return pond.Placement{}, fmt.Errorf("%w, got %d fields", ErrFieldCount, len(fields))
	}

	xz := strings.Split(fields[1], ",")
	if len(xz) != 2 {
		return pond.Placement{}, fmt.Errorf("%w, got %q", ErrPosition, fields[1])
	}

	p := pond.Placement{Name: strings.TrimSpace(fields[0])}
	values := []struct {
		name string
		raw  string
		dst  *float64
	}{
		{"x", xz[0], &p.X},
		{"z", xz[1], &p.Z},
		{"heading", fields[2], &p.Heading},
		{"scale", fields[3], &p.Scale},
	}
	for _, v := range values {
		f, err := strconv.ParseFloat(strings.TrimSpace(v.raw), 64)
		if err != nil {
			return pond.Placement{}, fmt.Errorf("%s: %w", v.name, err)
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return pond.Placement{}, fmt.Errorf("%s: %w: %v", v.name, pond.ErrNotFinite, f)
		}
		*v.dst = f
	}

	if err := p.Pose().Validate(); err != nil {
		return pond.Placement{}, err
	}
	return p, nil
}

// Load parses the placement file at path.
func Load(path string) ([]pond.Placement, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}
