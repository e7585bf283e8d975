// Package tsplib reads TSPLIB-style instances with 2D node coordinates or an
// explicit full distance matrix.
//
// Supported layout:
//
//	NAME : att4
//	COMMENT : anything
//	TYPE : TSP
//	DIMENSION : 4
//	EDGE_WEIGHT_TYPE : EUC_2D
//	NODE_COORD_SECTION
//	1 0 0
//	2 1 0
//	...
//	EOF
//
// Header keys may appear in any order and use "KEY : VALUE" or "KEY: VALUE".
// Unknown keys are kept in Instance.Extra. Every line ending in _SECTION
// opens a data block that runs to the next section, EOF or the end of input.
// NODE_COORD_SECTION and EDGE_WEIGHT_SECTION are read; other blocks
// (DISPLAY_DATA_SECTION, TOUR_SECTION, ...) are skipped. Node ids are
// informational and cities keep file order.
//
// Supported edge weights: EUC_2D or EUC_3D coordinates (absent means EUC_2D;
// the third coordinate is ignored), or EXPLICIT with EDGE_WEIGHT_FORMAT
// FULL_MATRIX, whose n×n numbers may wrap across lines freely.
package tsplib

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Sentinel errors.
var (
	// ErrMalformed reports a line that cannot be parsed.
	ErrMalformed = errors.New("tsplib: malformed input")

	// ErrUnsupported reports an instance type other than TSP, or an edge-weight
	// type or format the reader does not handle.
	ErrUnsupported = errors.New("tsplib: unsupported instance")

	// ErrDimension reports a coordinate or weight count that disagrees with
	// DIMENSION, or fewer than two cities.
	ErrDimension = errors.New("tsplib: dimension mismatch")
)

// Header keys and section markers.
const (
	keyName           = "NAME"
	keyComment        = "COMMENT"
	keyType           = "TYPE"
	keyDimension      = "DIMENSION"
	keyEdgeWeightType = "EDGE_WEIGHT_TYPE"
	keyWeightFormat   = "EDGE_WEIGHT_FORMAT"
	sectionCoords     = "NODE_COORD_SECTION"
	sectionWeights    = "EDGE_WEIGHT_SECTION"
	sectionSuffix     = "_SECTION"
	markerEOF         = "EOF"

	weightExplicit   = "EXPLICIT"
	formatFullMatrix = "FULL_MATRIX"
)

// City is one node of an instance.
type City struct {
	ID int
	X  float64
	Y  float64
}

// Instance is a parsed TSPLIB file.
type Instance struct {
	Name             string
	Comment          string
	Type             string
	Dimension        int // 0 when the header omits it
	EdgeWeightType   string
	EdgeWeightFormat string
	Extra            map[string]string
	Cities           []City
	Weights          [][]float64 // EXPLICIT instances only, Dimension×Dimension
	weights          []float64
}

// Len returns the number of cities.
func (in *Instance) Len() int {
	if in.Explicit() {
		return len(in.Weights)
	}

	return len(in.Cities)
}

// Explicit reports whether distances come from EDGE_WEIGHT_SECTION.
func (in *Instance) Explicit() bool { return in.EdgeWeightType == weightExplicit }

// ReadFile opens path and parses it with Parse.
func ReadFile(path string) (*Instance, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("tsplib: open %s: %w", path, err)
	}
	defer f.Close()

	in, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return in, nil
}

// Parse reads an instance from r.
//
// Errors: ErrMalformed (with the line number), ErrUnsupported, ErrDimension,
// or the reader's own error.
func Parse(r io.Reader) (*Instance, error) {
	var (
		sc      = bufio.NewScanner(r)
		in      = &Instance{Extra: map[string]string{}}
		lineNo  int
		section string
	)
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if line == markerEOF {
			break
		}
		if isSection(line) {
			section = strings.ToUpper(line)
			continue
		}
		var err error
		switch section {
		case "":
			err = in.setHeader(line)
		case sectionCoords:
			var c City
			if c, err = parseCity(line); err == nil {
				in.Cities = append(in.Cities, c)
			}
		case sectionWeights:
			err = in.appendWeights(line)
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("tsplib: read: %w", err)
	}

	return in, in.validate()
}

// setHeader stores one "KEY : VALUE" line.
func (in *Instance) setHeader(line string) error {
	key, value, ok := strings.Cut(line, ":")
	if !ok {
		return fmt.Errorf("%w: expected KEY : VALUE, got %q", ErrMalformed, line)
	}
	key = strings.ToUpper(strings.TrimSpace(key))
	value = strings.TrimSpace(value)

	switch key {
	case keyName:
		in.Name = value
	case keyComment:
		in.Comment = value
	case keyType:
		in.Type = strings.ToUpper(value)
	case keyDimension:
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("%w: DIMENSION %q", ErrMalformed, value)
		}
		in.Dimension = n
	case keyEdgeWeightType:
		in.EdgeWeightType = strings.ToUpper(value)
	case keyWeightFormat:
		in.EdgeWeightFormat = strings.ToUpper(value)
	default:
		in.Extra[key] = value
	}

	return nil
}

// isSection reports a "XXX_SECTION" marker line.
func isSection(line string) bool {
	return !strings.Contains(line, ":") && strings.HasSuffix(strings.ToUpper(line), sectionSuffix)
}

// appendWeights reads the numbers of one EDGE_WEIGHT_SECTION line.
func (in *Instance) appendWeights(line string) error {
	for _, f := range strings.Fields(line) {
		w, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return fmt.Errorf("%w: edge weight %q", ErrMalformed, f)
		}
		in.weights = append(in.weights, w)
	}

	return nil
}

// parseCity reads "id x y [z]".
func parseCity(line string) (City, error) {
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return City{}, fmt.Errorf("%w: expected \"id x y\", got %q", ErrMalformed, line)
	}
	id, err := strconv.Atoi(fields[0])
	if err != nil {
		return City{}, fmt.Errorf("%w: node id %q", ErrMalformed, fields[0])
	}
	x, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return City{}, fmt.Errorf("%w: x %q", ErrMalformed, fields[1])
	}
	y, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return City{}, fmt.Errorf("%w: y %q", ErrMalformed, fields[2])
	}

	return City{ID: id, X: x, Y: y}, nil
}

// validate checks the header against the coordinates.
func (in *Instance) validate() error {
	switch in.Type {
	case "", "TSP":
	default:
		return fmt.Errorf("%w: TYPE %s", ErrUnsupported, in.Type)
	}
	switch in.EdgeWeightType {
	case "", "EUC_2D", "EUC_3D":
	case weightExplicit:
		return in.validateExplicit()
	default:
		return fmt.Errorf("%w: EDGE_WEIGHT_TYPE %s", ErrUnsupported, in.EdgeWeightType)
	}
	if in.Dimension > 0 && in.Dimension != len(in.Cities) {
		return fmt.Errorf("%w: DIMENSION %d, %d coordinates", ErrDimension, in.Dimension, len(in.Cities))
	}
	if len(in.Cities) < 2 {
		return fmt.Errorf("%w: %d cities", ErrDimension, len(in.Cities))
	}

	return nil
}

// validateExplicit checks the format and reshapes the weights into rows.
func (in *Instance) validateExplicit() error {
	if in.EdgeWeightFormat != formatFullMatrix {
		return fmt.Errorf("%w: EDGE_WEIGHT_FORMAT %q", ErrUnsupported, in.EdgeWeightFormat)
	}
	n := in.Dimension
	if n < 2 {
		return fmt.Errorf("%w: DIMENSION %d", ErrDimension, n)
	}
	if len(in.weights) != n*n {
		return fmt.Errorf("%w: DIMENSION %d needs %d weights, got %d", ErrDimension, n, n*n, len(in.weights))
	}
	in.Weights = make([][]float64, n)
	for i := range in.Weights {
		in.Weights[i] = in.weights[i*n : (i+1)*n : (i+1)*n]
	}
	in.weights = nil

	return nil
}
