// Package config holds the run configuration for a consolidation pass.
package config

import (
	"fmt"
	"sort"
	"strings"
)

// Config describes one invocation. OutputPath is the fMRIPrep output root
// the group tree is created under.
type Config struct {
	OutputPath string `mapstructure:"fmriprep_output_path"`

	// ReportsPerPage is the page size; 0 puts every figure of a report
	// type on a single page.
	ReportsPerPage int `mapstructure:"reports_per_page"`

	// PathToFigures is a relative path template from group/sub-{subject}
	// to that subject's figures directory, with a {subject} placeholder.
	// Empty means infer from the report location.
	PathToFigures string `mapstructure:"path_to_figures"`

	// Report types whose images get edited. Any non-empty set switches
	// figure linking from symlink to full copy, so the originals are
	// never modified.
	FlipImages     []string `mapstructure:"flip_images"`
	DropBackground []string `mapstructure:"drop_background"`
	DropForeground []string `mapstructure:"drop_foreground"`
}

// ImageChanges reports whether any report type is flagged for editing.
func (c Config) ImageChanges() bool {
	return len(c.FlipImages) > 0 || len(c.DropBackground) > 0 || len(c.DropForeground) > 0
}

// Validate rejects bad configurations before any output is touched.
// Each report type may be modified in at most one way.
func (c Config) Validate() error {
	if c.OutputPath == "" {
		return fmt.Errorf("fmriprep output path is required")
	}
	if c.ReportsPerPage < 0 {
		return fmt.Errorf("reports per page must be >= 0, got %d", c.ReportsPerPage)
	}
	pairs := []struct {
		aName, bName string
		a, b         []string
	}{
		{"flip_images", "drop_foreground", c.FlipImages, c.DropForeground},
		{"flip_images", "drop_background", c.FlipImages, c.DropBackground},
		{"drop_foreground", "drop_background", c.DropForeground, c.DropBackground},
	}
	for _, p := range pairs {
		if overlap := intersect(p.a, p.b); len(overlap) > 0 {
			return fmt.Errorf("each report type may only be modified in a single way: "+
				"%s specified for both %s and %s", strings.Join(overlap, ", "), p.aName, p.bName)
		}
	}
	return nil
}

func intersect(a, b []string) []string {
	inA := make(map[string]bool, len(a))
	for _, s := range a {
		inA[s] = true
	}
	var out []string
	for _, s := range b {
		if inA[s] {
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}
