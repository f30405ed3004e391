package keynote

import (
	"context"
	"fmt"
	"strings"

	"keynote-mcp/internal/script"
	"keynote-mcp/internal/tool"
	"keynote-mcp/internal/validate"
)

func (s *Service) slideTools() []tool.Definition {
	return []tool.Definition{
		{
			Descriptor: tool.Descriptor{
				Name:        "add_slide",
				Description: "Add a slide. Appends at the end unless a position is given; uses the Blank layout when the requested one is missing",
				InputSchema: object(with(props{
					"position": integer("Insert at this slide number (optional, 0 or absent appends)"),
					"layout":   str("Master slide (layout) name (optional, default Blank)"),
				}, "doc_name")),
			},
			Handler: s.addSlide,
		},
		{
			Descriptor: tool.Descriptor{
				Name:        "delete_slide",
				Description: "Delete a slide",
				InputSchema: object(with(props{"slide_number": slideProp()}, "doc_name"), "slide_number"),
			},
			Handler: s.deleteSlide,
		},
		{
			Descriptor: tool.Descriptor{
				Name:        "duplicate_slide",
				Description: "Duplicate a slide, optionally moving the copy",
				InputSchema: object(with(props{
					"slide_number": slideProp(),
					"new_position": integer("Position of the copy (optional, 0 or absent keeps it after the original)"),
				}, "doc_name"), "slide_number"),
			},
			Handler: s.duplicateSlide,
		},
		{
			Descriptor: tool.Descriptor{
				Name:        "move_slide",
				Description: "Move a slide to a new position",
				InputSchema: object(with(props{
					"from_position": integer("Current slide number"),
					"to_position":   integer("Target slide number"),
				}, "doc_name"), "from_position", "to_position"),
			},
			Handler: s.moveSlide,
		},
		{
			Descriptor: tool.Descriptor{
				Name:        "get_slide_count",
				Description: "Get the number of slides",
				InputSchema: object(with(props{}, "doc_name")),
			},
			Handler: s.slideCount,
		},
		{
			Descriptor: tool.Descriptor{
				Name:        "select_slide",
				Description: "Make a slide the current slide",
				InputSchema: object(with(props{"slide_number": slideProp()}, "doc_name"), "slide_number"),
			},
			Handler: s.selectSlide,
		},
		{
			Descriptor: tool.Descriptor{
				Name:        "set_slide_layout",
				Description: "Apply a master slide (layout) to a slide",
				InputSchema: object(with(props{
					"slide_number": slideProp(),
					"layout":       str("Master slide (layout) name"),
				}, "doc_name"), "slide_number", "layout"),
			},
			Handler: s.setSlideLayout,
		},
		{
			Descriptor: tool.Descriptor{
				Name:        "get_slide_info",
				Description: "Get the layout, text item count and skipped state of a slide",
				InputSchema: object(with(props{"slide_number": slideProp()}, "doc_name"), "slide_number"),
			},
			Handler: s.slideInfo,
		},
		{
			Descriptor: tool.Descriptor{
				Name:        "get_available_layouts",
				Description: "List the master slides (layouts) of a presentation",
				InputSchema: object(with(props{}, "doc_name")),
			},
			Handler: s.availableLayouts,
		},
	}
}

func (s *Service) addSlide(ctx context.Context, args validate.Args) (string, error) {
	position, err := args.Position("position")
	if err != nil {
		return "", err
	}
	layout, err := args.OptionalString("layout", script.DefaultLayout)
	if err != nil {
		return "", err
	}
	layout = strings.TrimSpace(layout)
	if layout == "" {
		layout = script.DefaultLayout
	}
	doc, err := docArg(args)
	if err != nil {
		return "", err
	}

	out, err := s.run(ctx, doc, script.AddSlide(doc, position, layout))
	if err != nil {
		return "", err
	}

	f := fields(out, 2)
	number, applied := f[0], f[1]
	switch {
	case applied == layout:
		return tool.Success("Added slide %s with layout %q", number, applied), nil
	case applied == script.DefaultLayout:
		s.logger.Warn("layout %q not found, slide %s uses %q", layout, number, applied)
		return tool.Success("Added slide %s with layout %q (layout %q not found)", number, applied, layout), nil
	default:
		s.logger.Warn("no layout could be applied to slide %s", number)
		return tool.Success("Added slide %s (layout %q not found, kept the theme's default layout)", number, layout), nil
	}
}

func (s *Service) deleteSlide(ctx context.Context, args validate.Args) (string, error) {
	slide, err := args.SlideNumber("slide_number", 0)
	if err != nil {
		return "", err
	}
	doc, err := docArg(args)
	if err != nil {
		return "", err
	}
	if _, err := s.run(ctx, doc, script.DeleteSlide(doc, slide)); err != nil {
		return "", err
	}
	return tool.Success("Deleted slide %d", slide), nil
}

func (s *Service) duplicateSlide(ctx context.Context, args validate.Args) (string, error) {
	slide, err := args.SlideNumber("slide_number", 0)
	if err != nil {
		return "", err
	}
	newPosition, err := args.Position("new_position")
	if err != nil {
		return "", err
	}
	doc, err := docArg(args)
	if err != nil {
		return "", err
	}
	out, err := s.run(ctx, doc, script.DuplicateSlide(doc, slide, newPosition))
	if err != nil {
		return "", err
	}
	return tool.Success("Duplicated slide %d, copy is slide %s", slide, out), nil
}

func (s *Service) moveSlide(ctx context.Context, args validate.Args) (string, error) {
	from, err := args.SlideNumber("from_position", 0)
	if err != nil {
		return "", err
	}
	to, err := args.SlideNumber("to_position", 0)
	if err != nil {
		return "", err
	}
	doc, err := docArg(args)
	if err != nil {
		return "", err
	}
	out, err := s.run(ctx, doc, script.MoveSlide(doc, from, to))
	if err != nil {
		return "", err
	}
	return tool.Success("Moved slide %d to position %s", from, out), nil
}

func (s *Service) slideCount(ctx context.Context, args validate.Args) (string, error) {
	doc, err := docArg(args)
	if err != nil {
		return "", err
	}
	out, err := s.run(ctx, doc, script.SlideCount(doc))
	if err != nil {
		return "", err
	}
	return tool.Success("%s has %s slide(s)", docLabel(doc), out), nil
}

func (s *Service) selectSlide(ctx context.Context, args validate.Args) (string, error) {
	slide, err := args.SlideNumber("slide_number", 0)
	if err != nil {
		return "", err
	}
	doc, err := docArg(args)
	if err != nil {
		return "", err
	}
	if _, err := s.run(ctx, doc, script.SelectSlide(doc, slide)); err != nil {
		return "", err
	}
	return tool.Success("Selected slide %d", slide), nil
}

func (s *Service) setSlideLayout(ctx context.Context, args validate.Args) (string, error) {
	slide, err := args.SlideNumber("slide_number", 0)
	if err != nil {
		return "", err
	}
	layout, err := args.RequiredString("layout")
	if err != nil {
		return "", err
	}
	doc, err := docArg(args)
	if err != nil {
		return "", err
	}
	layout = strings.TrimSpace(layout)

	out, err := s.run(ctx, doc, script.SetSlideLayout(doc, slide, layout))
	if err != nil {
		return "", err
	}
	if out == script.LayoutNotFound {
		return "", &validate.ParameterError{
			Field:  "layout",
			Reason: fmt.Sprintf("%q not found; get_available_layouts lists the layouts", layout),
		}
	}
	return tool.Success("Applied layout %q to slide %d", layout, slide), nil
}

func (s *Service) slideInfo(ctx context.Context, args validate.Args) (string, error) {
	slide, err := args.SlideNumber("slide_number", 0)
	if err != nil {
		return "", err
	}
	doc, err := docArg(args)
	if err != nil {
		return "", err
	}
	out, err := s.run(ctx, doc, script.SlideInfo(doc, slide))
	if err != nil {
		return "", err
	}

	f := fields(out, 4)
	return tool.Success("Slide %s\nLayout: %s\nText items: %s\nSkipped: %s", f[0], f[1], f[2], f[3]), nil
}

func (s *Service) availableLayouts(ctx context.Context, args validate.Args) (string, error) {
	doc, err := docArg(args)
	if err != nil {
		return "", err
	}
	out, err := s.run(ctx, doc, script.AvailableLayouts(doc))
	if err != nil {
		return "", err
	}
	layouts := names(out)
	return tool.Success("%d layout(s) in %s:\n%s", len(layouts), docLabel(doc), bulletLines(layouts)), nil
}
