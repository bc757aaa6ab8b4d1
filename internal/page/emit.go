package page

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
)

// DefaultEmitter renders jobs with html/template and writes the HTML file
// itself. The patched template's interpolations are html/template actions,
// so no extra wiring is needed. Inject and ExcludeAssets are meaningful
// only to emitters that auto-inject script tags; this one never does.
type DefaultEmitter struct{}

func (DefaultEmitter) Emit(ctx context.Context, job Job) error {
	tmpl, err := template.ParseFiles(job.Template)
	if err != nil {
		return fmt.Errorf("parse template %s: %w", job.Template, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, job.TemplateParameters); err != nil {
		return fmt.Errorf("render %s: %w", job.TemplateParameters.URL, err)
	}

	if err := os.MkdirAll(filepath.Dir(job.Filename), 0o755); err != nil {
		return fmt.Errorf("create output dir for %s: %w", job.Filename, err)
	}
	if err := os.WriteFile(job.Filename, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", job.Filename, err)
	}
	return nil
}
