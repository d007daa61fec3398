package dao

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/wI2L/jsondiff"
)

// ErrNoChanges is returned when an edited document matches the original.
var ErrNoChanges = errors.New("no changes detected")

// Rename is one hostname change taken from an edited document.
type Rename struct {
	Path     string
	Hostname string
}

// HostnameDocument returns the editable "clusterID/hostID" -> hostname map
// of hh.
func HostnameDocument(hh []*Host) map[string]string {
	doc := make(map[string]string, len(hh))
	for _, h := range hh {
		doc[h.Path()] = h.Hostname()
	}
	return doc
}

// HostnameChanges diffs an edited hostname document against the original.
// Only replaced values are accepted: hosts cannot be added or removed by
// editing the document.
func HostnameChanges(original, modified map[string]string) ([]Rename, error) {
	patch, err := jsondiff.Compare(original, modified)
	if err != nil {
		return nil, fmt.Errorf("failed to generate patch: %w", err)
	}
	if len(patch) == 0 {
		return nil, ErrNoChanges
	}

	rr := make([]Rename, 0, len(patch))
	for _, op := range patch {
		path := unescapePointer(strings.TrimPrefix(op.Path, "/"))
		if op.Type != jsondiff.OperationReplace {
			return nil, fmt.Errorf("unsupported edit %s on %q", op.Type, path)
		}
		name, ok := op.Value.(string)
		if !ok {
			return nil, fmt.Errorf("hostname of %q must be a string", path)
		}
		rr = append(rr, Rename{Path: path, Hostname: name})
	}
	slices.SortFunc(rr, func(a, b Rename) int { return strings.Compare(a.Path, b.Path) })

	return rr, nil
}

// unescapePointer decodes a JSON pointer token.
func unescapePointer(s string) string {
	return strings.NewReplacer("~1", "/", "~0", "~").Replace(s)
}
