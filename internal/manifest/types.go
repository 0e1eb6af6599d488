package manifest

import (
	"fmt"
	"strings"
)

// Config represents the complete manifest configuration
type Config struct {
	Jobs    []Job   `yaml:"jobs" json:"jobs"`
	Options Options `yaml:"options" json:"options"`
}

// Job is one mirror of a remote path to a local destination
type Job struct {
	// Repository is a repository id or name; empty selects the project's only repository
	Repository string `yaml:"repository,omitempty" json:"repository,omitempty"`
	Path       string `yaml:"path" json:"path"`
	Local      string `yaml:"local,omitempty" json:"local,omitempty"`
	Ref        string `yaml:"ref,omitempty" json:"ref,omitempty"`
}

// Options represents global manifest options
type Options struct {
	Project string `yaml:"project,omitempty" json:"project,omitempty"`
	DryRun  bool   `yaml:"dry_run,omitempty" json:"dry_run,omitempty"`
}

// Validate validates the manifest configuration
func (c *Config) Validate() error {
	if len(c.Jobs) == 0 {
		return ErrNoJobs
	}
	for i, job := range c.Jobs {
		if strings.TrimSpace(job.Path) == "" {
			return fmt.Errorf("job %d: %w", i, ErrEmptyPath)
		}
	}
	return nil
}

// String identifies a job in logs, e.g. "repo:/docs@main"
func (j Job) String() string {
	s := j.Repository + ":" + j.Path
	if j.Ref != "" {
		s += "@" + j.Ref
	}
	return s
}
