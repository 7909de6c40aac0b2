package report

import (
	"os"
	"path/filepath"

	"cacscope/internal"
	"cacscope/internal/errors"
)

// Writer persists a rendered document under an output directory.
type Writer struct {
	outputDir string
	log       *internal.Logger
}

// NewWriter creates a writer rooted at outputDir
func NewWriter(outputDir string) *Writer {
	return &Writer{
		outputDir: outputDir,
		log:       internal.DefaultLogger,
	}
}

// Write stores the Markdown and HTML renditions of the document and
// returns the paths written.
func (w *Writer) Write(doc *Document) ([]string, error) {
	if err := os.MkdirAll(w.outputDir, 0o755); err != nil {
		return nil, errors.RenderError("failed to create output directory", err)
	}

	mdPath := filepath.Join(w.outputDir, "cac_report.md")
	if err := os.WriteFile(mdPath, []byte(doc.Markdown), 0o644); err != nil {
		return nil, errors.RenderError("failed to write markdown report", err)
	}

	htmlPath := filepath.Join(w.outputDir, "cac_report.html")
	if err := os.WriteFile(htmlPath, RenderHTML(doc), 0o644); err != nil {
		return nil, errors.RenderError("failed to write html report", err)
	}

	w.log.Info("report %s written to %s and %s", doc.RunID, mdPath, htmlPath)
	return []string{mdPath, htmlPath}, nil
}
