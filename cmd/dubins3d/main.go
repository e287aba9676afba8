// Command dubins3d computes a 3D Dubins maneuver between two states and
// writes its sampled positions as CSV or WKT.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"honnef.co/go/dubins"
	"honnef.co/go/dubins/internal/config"
	"honnef.co/go/dubins/internal/export"
	"honnef.co/go/dubins/internal/logging"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "dubins3d:", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := pflag.NewFlagSet("dubins3d", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	configDir := fs.String("config-dir", ".", "directory containing dubins3d.json")
	config.Flags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := config.Load(*configDir, fs); err != nil {
		return err
	}
	cfg, err := config.Get()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	log := logging.New(stderr, cfg.LogLevel)

	qi, qf, lims, err := cfg.Problem()
	if err != nil {
		return err
	}

	m := dubins.NewManeuver3DOpt(qi, qf, cfg.MinRadius, lims, dubins.Options3D{Logger: log})
	if !m.Feasible() {
		return fmt.Errorf("no maneuver from %s to %s: %w", qi, qf, dubins.ErrInfeasibleManeuver)
	}
	log.Info("maneuver computed", "length", m.Length())

	if cfg.Bounds {
		lower := dubins.LowerBound(qi, qf, cfg.MinRadius, lims)
		upper := dubins.UpperBound(qi, qf, cfg.MinRadius, lims)
		log.Info("length bounds", "lower", lower.Length(), "upper", upper.Length())
	}

	states, err := m.Sample(cfg.Samples)
	if err != nil {
		return err
	}
	lon, lat, ok, err := cfg.GeoOrigin()
	if err != nil {
		return err
	}
	if ok {
		states = export.Georeference(states, lon, lat)
	}
	return write(cfg, states, stdout, log)
}

func write(cfg config.Config, states []dubins.State, stdout io.Writer, log *slog.Logger) (err error) {
	w := stdout
	if cfg.Output != "-" {
		f, cerr := os.Create(cfg.Output)
		if cerr != nil {
			return fmt.Errorf("failed to create output file: %w", cerr)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("failed to close output file: %w", cerr)
			}
		}()
		w = f
	}

	switch cfg.Format {
	case "wkt":
		err = export.WriteWKT(w, states)
	default:
		err = export.WriteCSV(w, states)
	}
	if err != nil {
		return err
	}
	log.Debug("wrote samples", "count", len(states), "format", cfg.Format, "output", cfg.Output)
	return nil
}
