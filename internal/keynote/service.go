// Package keynote implements the Keynote tool groups on top of the script
// builders and an automation.Executor.
//
// Every handler follows the same path: validate the arguments, render one
// script, execute it once, parse the output into a confirmation. Nothing is
// retried and no state is kept between calls.
package keynote

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"keynote-mcp/internal/automation"
	"keynote-mcp/internal/logger"
	"keynote-mcp/internal/script"
	"keynote-mcp/internal/tool"
	"keynote-mcp/internal/unsplash"
)

// ImageSource is the optional stock image collaborator. It is satisfied by
// *unsplash.Client.
type ImageSource interface {
	Search(ctx context.Context, p unsplash.SearchParams) ([]unsplash.Photo, error)
	Random(ctx context.Context, query, orientation string) (*unsplash.Photo, error)
	Download(ctx context.Context, photo *unsplash.Photo, dir string) (string, error)
	TrackDownload(ctx context.Context, photo *unsplash.Photo) error
}

// Options configures a Service
type Options struct {
	// Timeout bounds each script; zero uses the executor's default
	Timeout time.Duration

	// Lanes serializes calls per target document when non-nil
	Lanes *automation.Lanes

	// Images enables the image tools when non-nil
	Images ImageSource

	// DownloadDir receives downloaded images; default os.TempDir()
	DownloadDir string

	Logger *logger.Logger
}

// Service owns the Keynote tool handlers
type Service struct {
	exec        automation.Executor
	timeout     time.Duration
	lanes       *automation.Lanes
	images      ImageSource
	downloadDir string
	logger      *logger.Logger
}

func NewService(exec automation.Executor, opts Options) *Service {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	dir := opts.DownloadDir
	if dir == "" {
		dir = os.TempDir()
	}
	return &Service{
		exec:        exec,
		timeout:     opts.Timeout,
		lanes:       opts.Lanes,
		images:      opts.Images,
		downloadDir: dir,
		logger:      log,
	}
}

// HasImages reports whether the image tools are available
func (s *Service) HasImages() bool {
	return s.images != nil
}

// Tools returns every tool definition, grouped presentation, slide,
// content, export and then images
func (s *Service) Tools() []tool.Definition {
	var defs []tool.Definition
	defs = append(defs, s.presentationTools()...)
	defs = append(defs, s.slideTools()...)
	defs = append(defs, s.contentTools()...)
	defs = append(defs, s.exportTools()...)
	if s.images != nil {
		defs = append(defs, s.imageTools()...)
	}
	return defs
}

// Register adds all tools to r
func (s *Service) Register(r *tool.Registry) error {
	return r.RegisterAll(s.Tools())
}

// run executes a script that targets docName, holding the document's lane
// for the duration when lanes are enabled
func (s *Service) run(ctx context.Context, docName, src string) (string, error) {
	release, err := s.lanes.Acquire(ctx, automation.Key(docName))
	if err != nil {
		return "", err
	}
	defer release()
	return s.execute(ctx, src)
}

// execute runs a script that does not target a particular document
func (s *Service) execute(ctx context.Context, src string) (string, error) {
	res, err := s.exec.Execute(ctx, automation.Invocation{Script: src, Timeout: s.timeout})
	if err != nil {
		return "", err
	}
	return res.Stdout, nil
}

// FileError reports a local file precondition or postcondition that failed
type FileError struct {
	Op   string
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// Category labels these failures in tool responses
func (e *FileError) Category() string {
	return "File operation error"
}

// existingFile resolves path to an absolute path of an existing regular file
func existingFile(op, path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", &FileError{Op: op, Path: path, Err: err}
	}
	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return "", &FileError{Op: op, Path: abs, Err: fmt.Errorf("file does not exist")}
		}
		return "", &FileError{Op: op, Path: abs, Err: err}
	}
	if info.IsDir() {
		return "", &FileError{Op: op, Path: abs, Err: fmt.Errorf("is a directory")}
	}
	return abs, nil
}

// outputPath resolves path to an absolute path and creates its parent
func outputPath(op, path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", &FileError{Op: op, Path: path, Err: err}
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return "", &FileError{Op: op, Path: abs, Err: err}
	}
	return abs, nil
}

// outputDir resolves and creates a directory
func outputDir(op, dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", &FileError{Op: op, Path: dir, Err: err}
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return "", &FileError{Op: op, Path: abs, Err: err}
	}
	return abs, nil
}

// fields splits Sep-delimited script output, padding to n fields
func fields(out string, n int) []string {
	parts := strings.Split(out, script.Sep)
	for len(parts) < n {
		parts = append(parts, "")
	}
	return parts
}

// names splits a Sep-delimited name list, dropping empty entries
func names(out string) []string {
	if strings.TrimSpace(out) == "" {
		return nil
	}
	var list []string
	for _, n := range strings.Split(out, script.Sep) {
		if n = strings.TrimSpace(n); n != "" {
			list = append(list, n)
		}
	}
	return list
}

// docLabel is how a target document is named in confirmations
func docLabel(docName string) string {
	if docName == "" {
		return "the front presentation"
	}
	return fmt.Sprintf("%q", docName)
}
