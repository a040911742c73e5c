package config

import (
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/kord-legal/kord/pkg/service/report"
)

// Report holds investigation dataset configuration
type Report struct {
	Path string
}

// Flags returns CLI flags for Report configuration
func (r *Report) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "report-config",
			Usage:       "YAML file overriding the built-in report dataset",
			Category:    "Report",
			Sources:     cli.EnvVars("KORD_REPORT_CONFIG"),
			Destination: &r.Path,
		},
	}
}

// Configure loads the report dataset, from file when a path is set and
// otherwise from the embedded default
func (r *Report) Configure() (*report.Dataset, error) {
	if r.Path != "" {
		return report.LoadFromFile(r.Path)
	}
	return report.Load()
}

// LogValue returns structured log value
func (r Report) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("path", r.Path),
	)
}
