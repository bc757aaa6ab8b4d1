package templates

import (
	"fmt"
	"hash/fnv"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	"go.uber.org/zap"

	"github.com/slipway-studio/slipway/internal/core"
)

// ProjectTemplate is the template file name looked up under the source
// directory when no override is configured.
const ProjectTemplate = "template.html"

// markerRe matches the three well-known template markers. Detection is
// keyed on the marker names only; the surrounding <% %> delimiters are the
// sole syntax this package knows about.
var markerRe = regexp.MustCompile(`<%=?\s*slipway\.(title|headEnd|bodyEnd)\s*%>`)

const titleInterpolation = "{{.Title}}"

type Engine struct {
	log *zap.Logger

	tmpOnce sync.Once
	tmpDir  string
	tmpErr  error
}

func NewEngine(log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{log: log}
}

// Resolve picks the template for this build and returns the file path the
// downstream emitter renders from. Resolution order: configured override
// (missing override warns and falls through), project-local template.html,
// embedded default. Patched and embedded templates are materialized into
// the build's temp directory because the emitter needs a real file.
func (e *Engine) Resolve(cfg core.BuildConfig) (string, error) {
	source, content, err := e.locate(cfg)
	if err != nil {
		return "", err
	}

	patched, changed := Patch(content)
	if !changed && source != "" {
		return source, nil
	}
	return e.materialize(patched)
}

// locate returns the template source path (empty for the embedded default)
// and its raw content.
func (e *Engine) locate(cfg core.BuildConfig) (string, []byte, error) {
	if cfg.Template != "" {
		path := cfg.Template
		if !filepath.IsAbs(path) {
			path = filepath.Join(cfg.Cwd, path)
		}
		content, err := os.ReadFile(path)
		if err == nil {
			return path, content, nil
		}
		e.log.Warn("template override does not exist, falling back",
			zap.String("path", path), zap.Error(err))
	}

	projectPath := filepath.Join(cfg.Src, ProjectTemplate)
	if content, err := os.ReadFile(projectPath); err == nil {
		return projectPath, content, nil
	}

	return "", defaultTemplate, nil
}

// Patch substitutes the well-known markers: title becomes the render
// engine's interpolation, headEnd and bodyEnd become the embedded fragment
// contents. A template without markers passes through untouched.
func Patch(src []byte) ([]byte, bool) {
	if !markerRe.Match(src) {
		return src, false
	}

	out := markerRe.ReplaceAllFunc(src, func(match []byte) []byte {
		switch string(markerRe.FindSubmatch(match)[1]) {
		case "title":
			return []byte(titleInterpolation)
		case "headEnd":
			return headEndFragment
		default:
			return bodyEndFragment
		}
	})
	return out, true
}

// materialize writes the template into the process temp directory and
// returns its path. The file name is content-addressed so repeated builds
// in one process reuse the same file.
func (e *Engine) materialize(content []byte) (string, error) {
	dir, err := e.tempDir()
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, fmt.Sprintf("template-%s.html", contentHash(content)))
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", fmt.Errorf("write patched template: %w", err)
	}
	return path, nil
}

// tempDir creates the shared template directory at most once per Engine.
// MkdirAll treats an already existing directory as success, so concurrent
// builds racing on the same path cannot fault.
func (e *Engine) tempDir() (string, error) {
	e.tmpOnce.Do(func() {
		dir := filepath.Join(os.TempDir(), "slipway-templates")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			e.tmpErr = fmt.Errorf("create template dir: %w", err)
			return
		}
		e.tmpDir = dir
	})
	return e.tmpDir, e.tmpErr
}

func contentHash(content []byte) string {
	h := fnv.New64a()
	_, _ = h.Write(content)
	return fmt.Sprintf("%x", h.Sum64())
}
