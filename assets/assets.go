// Package assets embeds the sample balance export served by the "embed"
// dataset source.
package assets

import "embed"

// SampleExportPath is the bundled export's path inside DataFS.
const SampleExportPath = "data/sample_export.csv"

//go:embed data/sample_export.csv
var DataFS embed.FS
