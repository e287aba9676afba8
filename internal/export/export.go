// Package export writes sampled maneuvers in formats that other tools can
// load.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	geom "github.com/peterstace/simplefeatures/geom"

	"honnef.co/go/dubins"
)

// WriteCSV writes one "x,y,z" record per state, without a header.
func WriteCSV(w io.Writer, states []dubins.State) error {
	cw := csv.NewWriter(w)
	for _, s := range states {
		record := []string{
			formatFloat(s.X),
			formatFloat(s.Y),
			formatFloat(s.Z),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}

// LineString converts the positions of states into a 3D line string.
func LineString(states []dubins.State) (geom.LineString, error) {
	if len(states) < 2 {
		return geom.LineString{}, fmt.Errorf("line string must have at least 2 points, got %d", len(states))
	}

	flatCoords := make([]float64, 0, len(states)*3)
	for _, s := range states {
		flatCoords = append(flatCoords, s.X, s.Y, s.Z)
	}

	// Rejects paths whose positions share a single XY value, such as a
	// purely vertical climb.
	return geom.NewLineString(geom.NewSequence(flatCoords, geom.DimXYZ))
}

// WriteWKT writes the positions of states as a LINESTRING Z in well-known
// text, followed by a newline.
func WriteWKT(w io.Writer, states []dubins.State) error {
	ls, err := LineString(states)
	if err != nil {
		return fmt.Errorf("failed to build line string: %w", err)
	}
	if _, err := fmt.Fprintln(w, ls.AsText()); err != nil {
		return fmt.Errorf("failed to write WKT: %w", err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
