package dataset

import (
	"context"
	"fmt"
	"os"

	"txboard/assets"
)

// EmbedSource serves the sample export bundled into the binary.
type EmbedSource struct{}

func (EmbedSource) Load(_ context.Context) (string, error) {
	raw, err := assets.DataFS.ReadFile(assets.SampleExportPath)
	if err != nil {
		return "", fmt.Errorf("read embedded export: %w", err)
	}
	return string(raw), nil
}

func (EmbedSource) Name() string { return "embed" }

// FileSource reads an export from disk each time it is loaded, so a manual
// refresh picks up a rewritten file.
type FileSource struct {
	Path string
}

func (s FileSource) Load(_ context.Context) (string, error) {
	raw, err := os.ReadFile(s.Path)
	if err != nil {
		return "", fmt.Errorf("read export %s: %w", s.Path, err)
	}
	return string(raw), nil
}

func (s FileSource) Name() string { return "file:" + s.Path }
