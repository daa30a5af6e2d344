package stager

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/gonvenience/ytbx"
	"github.com/homeport/dyff/pkg/dyff"
)

// Drift describes how a previously staged layout diverges from a desired
// resolved set. Stale modules appear under incremental (--no-clean) builds
// when a module drops out of the selection but its payload remains staged.
type Drift struct {
	// Stale modules are staged but no longer resolved.
	Stale []string

	// Missing modules are resolved but not yet staged.
	Missing []string

	// ManifestDiff is the rendered YAML diff between the staged manifest
	// and the manifest the desired set would produce. Empty when identical.
	ManifestDiff string
}

// IsEmpty reports whether the layout already matches the desired set.
func (d *Drift) IsEmpty() bool {
	return len(d.Stale) == 0 && len(d.Missing) == 0
}

// ComputeDrift compares a staged manifest against the manifest a desired
// module set would produce.
func ComputeDrift(staged, desired *Manifest) (*Drift, error) {
	drift := &Drift{}

	stagedSet := make(map[string]struct{}, len(staged.Modules))
	for _, name := range staged.Modules {
		stagedSet[name] = struct{}{}
	}
	desiredSet := make(map[string]struct{}, len(desired.Modules))
	for _, name := range desired.Modules {
		desiredSet[name] = struct{}{}
	}

	for _, name := range staged.Modules {
		if _, ok := desiredSet[name]; !ok {
			drift.Stale = append(drift.Stale, name)
		}
	}
	for _, name := range desired.Modules {
		if _, ok := stagedSet[name]; !ok {
			drift.Missing = append(drift.Missing, name)
		}
	}

	diff, err := diffManifests(staged, desired)
	if err != nil {
		return nil, err
	}
	drift.ManifestDiff = diff

	return drift, nil
}

// diffManifests computes a YAML-aware diff of the two manifests using dyff.
func diffManifests(staged, desired *Manifest) (string, error) {
	stagedYAML, err := staged.Marshal()
	if err != nil {
		return "", fmt.Errorf("marshaling staged manifest: %w", err)
	}
	desiredYAML, err := desired.Marshal()
	if err != nil {
		return "", fmt.Errorf("marshaling desired manifest: %w", err)
	}

	stagedInput, err := parseYAMLInput("staged", stagedYAML)
	if err != nil {
		return "", fmt.Errorf("parsing staged manifest: %w", err)
	}
	desiredInput, err := parseYAMLInput("desired", desiredYAML)
	if err != nil {
		return "", fmt.Errorf("parsing desired manifest: %w", err)
	}

	report, err := dyff.CompareInputFiles(stagedInput, desiredInput)
	if err != nil {
		return "", fmt.Errorf("comparing manifests: %w", err)
	}

	if len(report.Diffs) == 0 {
		return "", nil
	}

	return renderDyffReport(report)
}

// parseYAMLInput parses YAML bytes into a dyff input file.
func parseYAMLInput(name string, data []byte) (ytbx.InputFile, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return ytbx.InputFile{
			Location:  name,
			Documents: nil,
		}, nil
	}

	docs, err := ytbx.LoadYAMLDocuments(data)
	if err != nil {
		return ytbx.InputFile{}, err
	}

	return ytbx.InputFile{
		Location:  name,
		Documents: docs,
	}, nil
}

// renderDyffReport renders a dyff report to a string.
func renderDyffReport(report dyff.Report) (string, error) {
	var buf bytes.Buffer

	reportWriter := &dyff.HumanReport{
		Report:            report,
		DoNotInspectCerts: true,
		NoTableStyle:      true,
		OmitHeader:        true,
	}

	if err := reportWriter.WriteReport(io.Writer(&buf)); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}

	// Trim trailing whitespace from lines.
	lines := strings.Split(buf.String(), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n"), nil
}
