package group

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/comppsych/fmriprepgr/internal/config"
)

const (
	toolName = "fMRIPrep-Group-Report"
	codeURL  = "https://github.com/comppsych/fmriprep-group-report"
)

type runParameters struct {
	FmriprepOutputPath string   `json:"fmriprep_output_path"`
	ReportsPerPage     int      `json:"reports_per_page"`
	PathToFigures      string   `json:"path_to_figures"`
	FlipImages         []string `json:"flip_images"`
	DropBackground     []string `json:"drop_background"`
	DropForeground     []string `json:"drop_foreground"`
}

type generatedBy struct {
	Name       string        `json:"Name"`
	CodeURL    string        `json:"CodeURL"`
	Parameters runParameters `json:"Parameters"`
}

type datasetDescription struct {
	Name        string        `json:"Name"`
	BIDSVersion string        `json:"BIDSVersion"`
	DatasetType string        `json:"DatasetType"`
	GeneratedBy []generatedBy `json:"GeneratedBy"`
}

// writeDatasetDescription records the tool's provenance and the exact run
// parameters in the group directory.
func writeDatasetDescription(groupDir string, cfg config.Config) error {
	desc := datasetDescription{
		Name:        toolName + " output",
		BIDSVersion: bidsVersion(cfg.OutputPath),
		DatasetType: "derivative",
		GeneratedBy: []generatedBy{{
			Name:    toolName,
			CodeURL: codeURL,
			Parameters: runParameters{
				FmriprepOutputPath: cfg.OutputPath,
				ReportsPerPage:     cfg.ReportsPerPage,
				PathToFigures:      cfg.PathToFigures,
				FlipImages:         emptyIfNil(cfg.FlipImages),
				DropBackground:     emptyIfNil(cfg.DropBackground),
				DropForeground:     emptyIfNil(cfg.DropForeground),
			},
		}},
	}
	data, err := json.MarshalIndent(desc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal dataset description: %w", err)
	}
	path := filepath.Join(groupDir, "dataset_description.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write dataset description: %w", err)
	}
	return nil
}

// bidsVersion reads the BIDS version from the input tree's dataset
// description. Best-effort provenance: any failure yields "unknown"
// rather than aborting the run.
func bidsVersion(outputPath string) string {
	data, err := os.ReadFile(filepath.Join(outputPath, "dataset_description.json"))
	if err != nil {
		return "unknown"
	}
	var desc struct {
		BIDSVersion string `json:"BIDSVersion"`
	}
	if err := json.Unmarshal(data, &desc); err != nil || desc.BIDSVersion == "" {
		return "unknown"
	}
	return desc.BIDSVersion
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
