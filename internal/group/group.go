// Package group builds the consolidated group review tree from a set of
// per-subject fMRIPrep report documents.
package group

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/comppsych/fmriprepgr/internal/bids"
	"github.com/comppsych/fmriprepgr/internal/chunker"
	"github.com/comppsych/fmriprepgr/internal/config"
	"github.com/comppsych/fmriprepgr/internal/extract"
	"github.com/comppsych/fmriprepgr/internal/render"
	"github.com/comppsych/fmriprepgr/internal/svgedit"
)

// ErrFiguresExist marks a group figures entry left over from a prior run.
// The run aborts rather than silently overwrite it.
var ErrFiguresExist = errors.New("figures entry already exists")

// Summary reports what a build produced.
type Summary struct {
	Subjects    int
	Elements    int
	ReportTypes int
	Pages       int
}

// Build runs one full consolidation pass: validate, discover subject
// reports, link figures into the group tree, classify, and render one
// HTML+TSV pair per report type and page. A failure aborts the run; the
// partially written group tree is left for inspection.
func Build(cfg config.Config, log *slog.Logger) (*Summary, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	root := cfg.OutputPath
	groupDir := filepath.Join(root, "group")
	if err := os.MkdirAll(groupDir, 0o755); err != nil {
		return nil, fmt.Errorf("create group dir: %w", err)
	}
	if err := writeDatasetDescription(groupDir, cfg); err != nil {
		return nil, err
	}

	reportPaths, err := findSubjectReports(root)
	if err != nil {
		return nil, err
	}
	if len(reportPaths) == 0 {
		return nil, fmt.Errorf("no subject reports (sub-*.html) found under %s", root)
	}

	var placer figurePlacer = symlinkFigures{}
	if cfg.ImageChanges() {
		placer = copyFigures{}
	}
	log.Info("linking figures", "mode", placer.name(), "subjects", len(reportPaths))

	var corpus []*extract.Element
	for _, reportPath := range reportPaths {
		subject := bids.ParseEntities(reportPath).GetString("subject")
		if subject == "" {
			return nil, fmt.Errorf("cannot determine subject from report name %s", reportPath)
		}

		elements, err := parseReportFile(reportPath)
		if err != nil {
			return nil, err
		}
		log.Info("parsed subject report", "subject", subject, "figures", len(elements))

		if err := linkSubjectFigures(cfg, groupDir, subject, placer); err != nil {
			return nil, err
		}
		corpus = append(corpus, elements...)
	}

	if err := extract.Classify(corpus); err != nil {
		return nil, err
	}

	byType := make(map[string][]*extract.Element)
	for _, e := range corpus {
		byType[e.ReportType] = append(byType[e.ReportType], e)
	}
	reportTypes := make([]string, 0, len(byType))
	for rt := range byType {
		reportTypes = append(reportTypes, rt)
	}
	sort.Strings(reportTypes)

	pages := 0
	for _, rt := range reportTypes {
		rows := byType[rt]

		if apply, flagged := mutationFor(cfg, rt); flagged {
			log.Info("editing figures", "report_type", rt, "figures", len(rows))
			if err := applyMutations(groupDir, rows, apply); err != nil {
				return nil, err
			}
		}

		for chunk, page := range chunker.Paginate(rows, cfg.ReportsPerPage) {
			base := fmt.Sprintf("consolidated_%s_%03d", rt, chunk)
			if err := writePage(groupDir, base, rt, chunk, page); err != nil {
				return nil, err
			}
			log.Info("wrote consolidated page", "report_type", rt, "chunk", chunk, "rows", len(page))
			pages++
		}
	}

	return &Summary{
		Subjects:    len(reportPaths),
		Elements:    len(corpus),
		ReportTypes: len(reportTypes),
		Pages:       pages,
	}, nil
}

// findSubjectReports walks the output root for sub-*.html documents,
// skipping anything inside a figures directory (those are per-figure
// assets, not subject reports). Sorted path order keeps runs
// deterministic.
func findSubjectReports(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == "figures" {
				return filepath.SkipDir
			}
			return nil
		}
		name := d.Name()
		if strings.HasPrefix(name, "sub-") && strings.HasSuffix(name, ".html") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("discover subject reports: %w", err)
	}
	sort.Strings(paths)
	return paths, nil
}

func parseReportFile(path string) ([]*extract.Element, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open report %s: %w", path, err)
	}
	defer f.Close()

	elements, err := extract.ParseReport(f)
	if err != nil {
		return nil, fmt.Errorf("parse report %s: %w", path, err)
	}
	return elements, nil
}

// linkSubjectFigures creates group/sub-<subject> and places the subject's
// figures directory inside it. The source is resolved from the
// path-to-figures template when given, otherwise inferred next to the
// subject's report; a missing source aborts the run.
func linkSubjectFigures(cfg config.Config, groupDir, subject string, placer figurePlacer) error {
	subjDir := filepath.Join(groupDir, "sub-"+subject)
	if err := os.MkdirAll(subjDir, 0o755); err != nil {
		return fmt.Errorf("create subject dir: %w", err)
	}
	dest := filepath.Join(subjDir, "figures")

	// Lstat so a dangling symlink from an earlier run is caught too.
	if _, err := os.Lstat(dest); err == nil {
		return fmt.Errorf("%w: %s would be overwritten; rename or delete the "+
			"existing group directory before rerunning", ErrFiguresExist, dest)
	}

	var src, relTarget string
	if cfg.PathToFigures != "" {
		relTarget = strings.ReplaceAll(cfg.PathToFigures, "{subject}", subject)
		src = filepath.Join(subjDir, relTarget)
		if !isDir(src) {
			return fmt.Errorf("path_to_figures is not correct: based on %s, %s should exist, but it doesn't",
				cfg.PathToFigures, src)
		}
	} else {
		src = filepath.Join(cfg.OutputPath, "sub-"+subject, "figures")
		if !isDir(src) {
			return fmt.Errorf("subject figures dir for sub-%s is not at the expected location %s; "+
				"use path_to_figures to point at the correct relative path", subject, src)
		}
		relTarget = filepath.Join("..", "..", "sub-"+subject, "figures")
	}

	return placer.place(src, relTarget, dest)
}

// mutationFor returns the image edit for a report type, if one was
// requested. Validate has already guaranteed the sets are disjoint.
func mutationFor(cfg config.Config, reportType string) (func(string) error, bool) {
	switch {
	case slices.Contains(cfg.FlipImages, reportType):
		return svgedit.Flip, true
	case slices.Contains(cfg.DropForeground, reportType):
		return func(p string) error { return svgedit.Drop(p, svgedit.Foreground) }, true
	case slices.Contains(cfg.DropBackground, reportType):
		return func(p string) error { return svgedit.Drop(p, svgedit.Background) }, true
	}
	return nil, false
}

// applyMutations edits every copied figure of a flagged report type in
// place. A missing file or a symlink means the copy step was skipped,
// which is a consistency violation.
func applyMutations(groupDir string, rows []*extract.Element, apply func(string) error) error {
	for _, e := range rows {
		subject := e.Entities.GetString("subject")
		imagePath := filepath.Join(groupDir, "sub-"+subject, "figures", e.Filename)

		fi, err := os.Lstat(imagePath)
		if err != nil {
			return fmt.Errorf("%s doesn't exist, but should: %w", imagePath, err)
		}
		if fi.Mode()&os.ModeSymlink != 0 {
			return fmt.Errorf("%s is a symlink, but should have been copied", imagePath)
		}
		if err := apply(imagePath); err != nil {
			return err
		}
	}
	return nil
}

func writePage(groupDir, base, reportType string, chunk int, rows []*extract.Element) error {
	htmlFile, err := os.Create(filepath.Join(groupDir, base+".html"))
	if err != nil {
		return fmt.Errorf("create page: %w", err)
	}
	defer htmlFile.Close()
	if err := render.Page(htmlFile, reportType, chunk, base+".tsv", rows); err != nil {
		return err
	}

	tsvFile, err := os.Create(filepath.Join(groupDir, base+".tsv"))
	if err != nil {
		return fmt.Errorf("create tsv: %w", err)
	}
	defer tsvFile.Close()
	return render.WriteTSV(tsvFile, rows)
}

func isDir(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}
