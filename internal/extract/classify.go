package extract

import (
	"errors"
	"fmt"
	"strings"
)

// dsegSuffix marks segmentation figures, which carry no desc entity.
const dsegSuffix = "dseg"

// ErrUnclassified marks elements no classification rule could type.
var ErrUnclassified = errors.New("unclassifiable report elements")

// Classify assigns every element its report type. The type is the desc
// entity; elements without one fall back to the dseg suffix, then to the
// space entity. An element that matches no rule aborts the run: grouping
// by an empty key would silently merge unrelated figures.
func Classify(elements []*Element) error {
	var unclassified []string
	for _, e := range elements {
		rt := e.Entities.GetString("desc")
		if rt == "" && e.Entities.GetString("suffix") == dsegSuffix {
			rt = dsegSuffix
		}
		if rt == "" && e.Entities.Has("space") {
			rt = e.Entities.GetString("space")
		}
		if rt == "" {
			unclassified = append(unclassified, e.Filename)
			continue
		}
		e.ReportType = rt
	}
	if len(unclassified) > 0 {
		return fmt.Errorf("%w: could not derive a report type for %s",
			ErrUnclassified, strings.Join(unclassified, ", "))
	}
	return nil
}
