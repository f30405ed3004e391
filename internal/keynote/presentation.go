package keynote

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"keynote-mcp/internal/script"
	"keynote-mcp/internal/tool"
	"keynote-mcp/internal/validate"
)

func (s *Service) presentationTools() []tool.Definition {
	return []tool.Definition{
		{
			Descriptor: tool.Descriptor{
				Name:        "create_presentation",
				Description: "Create a new Keynote presentation",
				InputSchema: object(props{
					"title":    str("Presentation title"),
					"theme":    str("Theme name (optional)"),
					"template": str("Path of a .key file to start from (optional)"),
				}, "title"),
			},
			Handler: s.createPresentation,
		},
		{
			Descriptor: tool.Descriptor{
				Name:        "open_presentation",
				Description: "Open an existing Keynote file",
				InputSchema: object(props{
					"file_path": str("Path of the .key file"),
				}, "file_path"),
			},
			Handler: s.openPresentation,
		},
		{
			Descriptor: tool.Descriptor{
				Name:        "save_presentation",
				Description: "Save a presentation",
				InputSchema: object(with(props{}, "doc_name")),
			},
			Handler: s.savePresentation,
		},
		{
			Descriptor: tool.Descriptor{
				Name:        "close_presentation",
				Description: "Close a presentation, saving it first by default",
				InputSchema: object(with(props{
					"should_save": boolean("Save before closing (default true)"),
				}, "doc_name")),
			},
			Handler: s.closePresentation,
		},
		{
			Descriptor: tool.Descriptor{
				Name:        "list_presentations",
				Description: "List all open presentations",
				InputSchema: object(props{}),
			},
			Handler: s.listPresentations,
		},
		{
			Descriptor: tool.Descriptor{
				Name:        "set_presentation_theme",
				Description: "Apply a theme to a presentation",
				InputSchema: object(with(props{
					"theme_name": str("Theme name"),
				}, "doc_name"), "theme_name"),
			},
			Handler: s.setTheme,
		},
		{
			Descriptor: tool.Descriptor{
				Name:        "get_presentation_info",
				Description: "Get name, slide count, size, theme and current slide of a presentation",
				InputSchema: object(with(props{}, "doc_name")),
			},
			Handler: s.presentationInfo,
		},
		{
			Descriptor: tool.Descriptor{
				Name:        "get_available_themes",
				Description: "List the installed Keynote themes",
				InputSchema: object(props{}),
			},
			Handler: s.availableThemes,
		},
		{
			Descriptor: tool.Descriptor{
				Name:        "get_presentation_resolution",
				Description: "Get the slide resolution of a presentation with its aspect ratio",
				InputSchema: object(with(props{}, "doc_name")),
			},
			Handler: s.presentationResolution,
		},
		{
			Descriptor: tool.Descriptor{
				Name:        "get_slide_size",
				Description: "Get the slide width and height of a presentation in points",
				InputSchema: object(with(props{}, "doc_name")),
			},
			Handler: s.slideSize,
		},
	}
}

func docArg(args validate.Args) (string, error) {
	name, err := args.OptionalString("doc_name", "")
	return strings.TrimSpace(name), err
}

func (s *Service) createPresentation(ctx context.Context, args validate.Args) (string, error) {
	title, err := args.RequiredString("title")
	if err != nil {
		return "", err
	}
	theme, err := args.OptionalString("theme", "")
	if err != nil {
		return "", err
	}
	template, err := args.OptionalString("template", "")
	if err != nil {
		return "", err
	}
	if template = strings.TrimSpace(template); template != "" {
		if template, err = existingFile("open template", template); err != nil {
			return "", err
		}
	}

	out, err := s.execute(ctx, script.CreatePresentation(script.NewPresentation{
		Title:    title,
		Theme:    strings.TrimSpace(theme),
		Template: template,
	}))
	if err != nil {
		return "", err
	}

	msg := fmt.Sprintf("Created presentation %q", title)
	if out != "" && out != title {
		msg += fmt.Sprintf(" (document %q)", out)
	}
	if theme != "" {
		msg += fmt.Sprintf(" with theme %q", theme)
	}
	if template != "" {
		msg += fmt.Sprintf(" from template %s", template)
	}
	return tool.Success("%s", msg), nil
}

func (s *Service) openPresentation(ctx context.Context, args validate.Args) (string, error) {
	path, err := args.Path("file_path")
	if err != nil {
		return "", err
	}
	if path, err = existingFile("open presentation", path); err != nil {
		return "", err
	}

	out, err := s.execute(ctx, script.OpenPresentation(path))
	if err != nil {
		return "", err
	}
	return tool.Success("Opened presentation %q from %s", out, path), nil
}

func (s *Service) savePresentation(ctx context.Context, args validate.Args) (string, error) {
	doc, err := docArg(args)
	if err != nil {
		return "", err
	}
	out, err := s.run(ctx, doc, script.SavePresentation(doc))
	if err != nil {
		return "", err
	}
	return tool.Success("Saved presentation %q", out), nil
}

func (s *Service) closePresentation(ctx context.Context, args validate.Args) (string, error) {
	doc, err := docArg(args)
	if err != nil {
		return "", err
	}
	save, err := args.Bool("should_save", true)
	if err != nil {
		return "", err
	}
	out, err := s.run(ctx, doc, script.ClosePresentation(doc, save))
	if err != nil {
		return "", err
	}
	if save {
		return tool.Success("Saved and closed presentation %q", out), nil
	}
	return tool.Success("Closed presentation %q without saving", out), nil
}

func (s *Service) listPresentations(ctx context.Context, args validate.Args) (string, error) {
	out, err := s.execute(ctx, script.ListPresentations())
	if err != nil {
		return "", err
	}
	docs := names(out)
	if len(docs) == 0 {
		return tool.Success("No presentations are open"), nil
	}
	return tool.Success("%d open presentation(s):\n%s", len(docs), bulletLines(docs)), nil
}

func (s *Service) setTheme(ctx context.Context, args validate.Args) (string, error) {
	theme, err := args.RequiredString("theme_name")
	if err != nil {
		return "", err
	}
	doc, err := docArg(args)
	if err != nil {
		return "", err
	}
	theme = strings.TrimSpace(theme)
	if _, err := s.run(ctx, doc, script.SetTheme(doc, theme)); err != nil {
		return "", err
	}
	return tool.Success("Applied theme %q to %s", theme, docLabel(doc)), nil
}

func (s *Service) presentationInfo(ctx context.Context, args validate.Args) (string, error) {
	doc, err := docArg(args)
	if err != nil {
		return "", err
	}
	out, err := s.run(ctx, doc, script.PresentationInfo(doc))
	if err != nil {
		return "", err
	}

	f := fields(out, 6)
	theme := f[4]
	if theme == "" {
		theme = "unknown"
	}
	return tool.Success("Presentation %q\nSlides: %s\nSize: %s x %s\nTheme: %s\nCurrent slide: %s",
		f[0], f[1], f[2], f[3], theme, f[5]), nil
}

func (s *Service) availableThemes(ctx context.Context, args validate.Args) (string, error) {
	out, err := s.execute(ctx, script.AvailableThemes())
	if err != nil {
		return "", err
	}
	themes := names(out)
	return tool.Success("%d theme(s) available:\n%s", len(themes), bulletLines(themes)), nil
}

func (s *Service) slideDimensions(ctx context.Context, args validate.Args) (int, int, error) {
	doc, err := docArg(args)
	if err != nil {
		return 0, 0, err
	}
	out, err := s.run(ctx, doc, script.SlideSize(doc))
	if err != nil {
		return 0, 0, err
	}
	f := fields(out, 2)
	w, errW := strconv.ParseFloat(strings.TrimSpace(f[0]), 64)
	h, errH := strconv.ParseFloat(strings.TrimSpace(f[1]), 64)
	if errW != nil || errH != nil {
		return 0, 0, fmt.Errorf("unexpected slide size output %q", out)
	}
	return int(w), int(h), nil
}

func (s *Service) slideSize(ctx context.Context, args validate.Args) (string, error) {
	w, h, err := s.slideDimensions(ctx, args)
	if err != nil {
		return "", err
	}
	return tool.Success("Slide size: %d x %d points", w, h), nil
}

func (s *Service) presentationResolution(ctx context.Context, args validate.Args) (string, error) {
	w, h, err := s.slideDimensions(ctx, args)
	if err != nil {
		return "", err
	}
	return tool.Success("Resolution: %d x %d (aspect ratio %s)", w, h, aspectRatio(w, h)), nil
}

// aspectRatio names common ratios and reduces the rest
func aspectRatio(w, h int) string {
	if w <= 0 || h <= 0 {
		return "unknown"
	}
	g := gcd(w, h)
	rw, rh := w/g, h/g
	switch {
	case rw == 16 && rh == 9:
		return "16:9"
	case rw == 4 && rh == 3:
		return "4:3"
	case rw == 8 && rh == 5:
		return "16:10"
	}
	return fmt.Sprintf("%d:%d", rw, rh)
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func bulletLines(items []string) string {
	var sb strings.Builder
	for i, item := range items {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString("  - ")
		sb.WriteString(item)
	}
	return sb.String()
}
