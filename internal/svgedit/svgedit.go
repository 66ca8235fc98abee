// Package svgedit rewrites fMRIPrep reportlet SVGs in place.
//
// A reportlet stacks two figure layers, tagged class="background-svg" and
// class="foreground-svg"; a CSS hover rule toggles which one is visible.
// Flip swaps the layers, Drop removes one of them.
package svgedit

import (
	"fmt"
	"os"
	"strings"
)

// Layer selects which image layer a Drop operation removes.
type Layer string

const (
	Foreground Layer = "foreground"
	Background Layer = "background"
)

const (
	backgroundMarker = `class="background-svg"`
	foregroundMarker = `class="foreground-svg"`
)

// Flip swaps the background and foreground layer blocks, reversing which
// image is shown before and after mousing over.
func Flip(path string) error {
	return rewrite(path, func(pre, bg, mid, fg, post []string) []string {
		out := append([]string{}, pre...)
		out = append(out, fg...)
		out = append(out, mid...)
		out = append(out, bg...)
		return append(out, post...)
	})
}

// Drop removes one layer block, leaving a static image.
func Drop(path string, layer Layer) error {
	return rewrite(path, func(pre, bg, mid, fg, post []string) []string {
		out := append([]string{}, pre...)
		if layer == Foreground {
			out = append(out, bg...)
		}
		out = append(out, mid...)
		if layer == Background {
			out = append(out, fg...)
		}
		return append(out, post...)
	})
}

// rewrite splits the file around its two layer blocks and reassembles it
// with the given recombination.
func rewrite(path string, recombine func(pre, bg, mid, fg, post []string) []string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read svg: %w", err)
	}
	lines := strings.Split(string(data), "\n")

	bgStart, bgEnd, err := layerBlock(lines, backgroundMarker, path)
	if err != nil {
		return err
	}
	fgStart, fgEnd, err := layerBlock(lines, foregroundMarker, path)
	if err != nil {
		return err
	}
	if fgStart <= bgEnd {
		return fmt.Errorf("%s: foreground layer precedes background layer", path)
	}

	out := recombine(
		lines[:bgStart],
		lines[bgStart:bgEnd+1],
		lines[bgEnd+1:fgStart],
		lines[fgStart:fgEnd+1],
		lines[fgEnd+1:],
	)
	if err := os.WriteFile(path, []byte(strings.Join(out, "\n")), 0o644); err != nil {
		return fmt.Errorf("write svg: %w", err)
	}
	return nil
}

// layerBlock finds the line range [start, end] of the <g> block whose
// opening tag carries the marker. The block ends at the first subsequent
// closing </g> line.
func layerBlock(lines []string, marker, path string) (int, int, error) {
	start := -1
	for i, line := range lines {
		if strings.Contains(line, marker) {
			start = i
			break
		}
	}
	if start < 0 {
		return 0, 0, fmt.Errorf("%s: no layer with %s", path, marker)
	}
	for i := start; i < len(lines); i++ {
		if strings.Contains(lines[i], "</g>") {
			return start, i, nil
		}
	}
	return 0, 0, fmt.Errorf("%s: unterminated layer block for %s", path, marker)
}
