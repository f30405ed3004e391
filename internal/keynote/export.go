package keynote

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"keynote-mcp/internal/script"
	"keynote-mcp/internal/tool"
	"keynote-mcp/internal/validate"
)

const scratchAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

func (s *Service) exportTools() []tool.Definition {
	return []tool.Definition{
		{
			Descriptor: tool.Descriptor{
				Name:        "screenshot_slide",
				Description: "Export a single slide as an image file",
				InputSchema: object(with(props{
					"slide_number": slideProp(),
					"output_path":  str("Path of the image file to write"),
					"format":       enum("Image format (default png)", imageFormats...),
				}, "doc_name"), "slide_number", "output_path"),
			},
			Handler: s.screenshotSlide,
		},
		{
			Descriptor: tool.Descriptor{
				Name:        "export_pdf",
				Description: "Export a presentation as PDF",
				InputSchema: object(with(props{
					"output_path": str("Path of the PDF file to write"),
				}, "doc_name"), "output_path"),
			},
			Handler: s.exportPDF,
		},
		{
			Descriptor: tool.Descriptor{
				Name:        "export_images",
				Description: "Export every slide as an image into a directory",
				InputSchema: object(with(props{
					"output_dir": str("Directory to write the images into"),
					"format":     enum("Image format (default png)", imageFormats...),
				}, "doc_name"), "output_dir"),
			},
			Handler: s.exportImages,
		},
	}
}

// screenshotSlide exports into a private scratch directory next to the
// output file, then moves the single produced image into place
func (s *Service) screenshotSlide(ctx context.Context, args validate.Args) (string, error) {
	slide, err := args.SlideNumber("slide_number", 0)
	if err != nil {
		return "", err
	}
	path, err := args.Path("output_path")
	if err != nil {
		return "", err
	}
	format, err := args.Enum("format", "png", imageFormats...)
	if err != nil {
		return "", err
	}
	doc, err := docArg(args)
	if err != nil {
		return "", err
	}
	if path, err = outputPath("screenshot", path); err != nil {
		return "", err
	}

	id, err := gonanoid.Generate(scratchAlphabet, 12)
	if err != nil {
		return "", err
	}
	scratch := filepath.Join(filepath.Dir(path), ".keynote-export-"+id)
	defer os.RemoveAll(scratch)

	if _, err := s.run(ctx, doc, script.ScreenshotSlide(doc, slide, scratch, format)); err != nil {
		return "", err
	}

	produced, err := firstImage(scratch)
	if err != nil {
		return "", &FileError{Op: "screenshot", Path: scratch, Err: err}
	}
	if err := os.Rename(produced, path); err != nil {
		return "", &FileError{Op: "screenshot", Path: path, Err: err}
	}
	s.logger.Debug("slide %d exported to %s", slide, path)
	return tool.Success("Saved slide %d to %s", slide, path), nil
}

func (s *Service) exportPDF(ctx context.Context, args validate.Args) (string, error) {
	path, err := args.Path("output_path")
	if err != nil {
		return "", err
	}
	doc, err := docArg(args)
	if err != nil {
		return "", err
	}
	if path, err = outputPath("export pdf", path); err != nil {
		return "", err
	}
	if _, err := s.run(ctx, doc, script.ExportPDF(doc, path)); err != nil {
		return "", err
	}
	return tool.Success("Exported %s to %s", docLabel(doc), path), nil
}

func (s *Service) exportImages(ctx context.Context, args validate.Args) (string, error) {
	dir, err := args.Path("output_dir")
	if err != nil {
		return "", err
	}
	format, err := args.Enum("format", "png", imageFormats...)
	if err != nil {
		return "", err
	}
	doc, err := docArg(args)
	if err != nil {
		return "", err
	}
	if dir, err = outputDir("export images", dir); err != nil {
		return "", err
	}

	out, err := s.run(ctx, doc, script.ExportImages(doc, dir, format))
	if err != nil {
		return "", err
	}
	return tool.Success("Exported %s slide(s) as %s images to %s", out, script.ImageFormat(format), dir), nil
}

var errNoExport = errors.New("no exported image was produced")

// firstImage returns the first image file under dir in name order
func firstImage(dir string) (string, error) {
	var found []string
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(p)) {
		case ".png", ".jpg", ".jpeg":
			found = append(found, p)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", errNoExport
		}
		return "", err
	}
	if len(found) == 0 {
		return "", errNoExport
	}
	sort.Strings(found)
	return found[0], nil
}
