// Package batch runs multiple match jobs from a YAML job file, sequentially.
package batch

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kordata/xlmatch/internal/match"
)

// File represents a complete batch job file.
type File struct {
	Name string `yaml:"name" json:"name"`
	Jobs []Job  `yaml:"jobs" json:"jobs"`
}

// Job is one match run within a batch. OnFailure controls whether a
// failed job aborts the batch ("abort", the default) or is skipped.
type Job struct {
	ID              string `yaml:"id" json:"id"`
	match.RunConfig `yaml:",inline"`
	OnFailure       string `yaml:"on_failure,omitempty" json:"onFailure,omitempty"`
}

// Load reads and validates a batch file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("batch file not found: %s — check that the path is correct", path)
		}
		return nil, fmt.Errorf("could not read batch file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse parses a batch file from YAML bytes.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("invalid batch YAML: %w", err)
	}

	if err := validate(&f); err != nil {
		return nil, err
	}
	return &f, nil
}

func validate(f *File) error {
	if f.Name == "" {
		return fmt.Errorf("batch file is missing a 'name' field")
	}
	if len(f.Jobs) == 0 {
		return fmt.Errorf("batch %q has no jobs defined", f.Name)
	}

	seen := make(map[string]bool)
	for i, job := range f.Jobs {
		if job.ID == "" {
			return fmt.Errorf("job %d is missing an 'id' field", i+1)
		}
		if seen[job.ID] {
			return fmt.Errorf("duplicate job ID %q — each job must have a unique ID", job.ID)
		}
		seen[job.ID] = true

		if job.OnFailure != "" && job.OnFailure != "abort" && job.OnFailure != "skip" {
			return fmt.Errorf("job %q: on_failure must be 'abort' or 'skip', got %q", job.ID, job.OnFailure)
		}
		if err := job.RunConfig.Validate(); err != nil {
			return fmt.Errorf("job %q: %w", job.ID, err)
		}
	}
	return nil
}
