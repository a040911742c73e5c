package report

import (
	"embed"
	"os"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"gopkg.in/yaml.v3"

	"github.com/kord-legal/kord/pkg/domain/model"
)

//go:embed data/report.yml
var dataFS embed.FS

// Dataset holds the step schedule and the canned report attached to every
// completed investigation
type Dataset struct {
	Steps  []model.InvestigationStep
	Report model.Report
}

// datasetYAML is the on-disk shape of the dataset. Step durations are
// parsed with time.ParseDuration.
type datasetYAML struct {
	Steps []struct {
		Label    string `yaml:"label"`
		Duration string `yaml:"duration"`
	} `yaml:"steps"`
	Report model.Report `yaml:"report"`
}

// Load returns the embedded default dataset
func Load() (*Dataset, error) {
	data, err := dataFS.ReadFile("data/report.yml")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read embedded report dataset")
	}
	return parse(data)
}

// LoadFromFile loads a dataset from a YAML file, overriding the embedded
// default
func LoadFromFile(path string) (*Dataset, error) {
	if path == "" {
		return nil, goerr.New("dataset file path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, goerr.Wrap(err, "report dataset file not found",
				goerr.V("path", path))
		}
		return nil, goerr.Wrap(err, "failed to read report dataset file",
			goerr.V("path", path))
	}

	dataset, err := parse(data)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid report dataset file",
			goerr.V("path", path))
	}
	return dataset, nil
}

func parse(data []byte) (*Dataset, error) {
	var raw datasetYAML
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, goerr.Wrap(err, "failed to parse report dataset YAML")
	}

	dataset := &Dataset{
		Report: raw.Report,
	}
	for i, s := range raw.Steps {
		d, err := time.ParseDuration(s.Duration)
		if err != nil {
			return nil, goerr.Wrap(err, "invalid step duration",
				goerr.V("index", i),
				goerr.V("label", s.Label),
				goerr.V("duration", s.Duration))
		}
		dataset.Steps = append(dataset.Steps, model.InvestigationStep{
			Label:    s.Label,
			Duration: d,
		})
	}

	if err := dataset.Validate(); err != nil {
		return nil, err
	}
	return dataset, nil
}

// Validate validates the dataset
func (d *Dataset) Validate() error {
	if len(d.Steps) == 0 {
		return goerr.New("at least one investigation step is required")
	}
	for i := range d.Steps {
		if err := d.Steps[i].Validate(); err != nil {
			return goerr.Wrap(err, "invalid investigation step", goerr.V("index", i))
		}
	}
	if err := d.Report.Validate(); err != nil {
		return goerr.Wrap(err, "invalid canned report")
	}
	return nil
}

// TotalDuration returns the sum of all step durations
func (d *Dataset) TotalDuration() time.Duration {
	var total time.Duration
	for _, s := range d.Steps {
		total += s.Duration
	}
	return total
}
