package keynote

import (
	"context"
	"strconv"
	"strings"

	"keynote-mcp/internal/script"
	"keynote-mcp/internal/tool"
	"keynote-mcp/internal/validate"
)

// textKind describes one of the text insertion tools. They differ only in
// the argument holding the text, how it is flattened and the default style.
type textKind struct {
	name        string
	description string
	field       string
	fieldDesc   string
	list        bool
	fontSize    float64 // 0 leaves the theme's size
	fontName    string
	label       string
	render      func(text string, items []string) string
}

var textKinds = []textKind{
	{
		name:        "add_text_box",
		description: "Add a text box to a slide",
		field:       "text",
		fieldDesc:   "Text content",
		label:       "text box",
	},
	{
		name:        "add_title",
		description: "Add a title to a slide",
		field:       "title",
		fieldDesc:   "Title text",
		fontSize:    36,
		label:       "title",
	},
	{
		name:        "add_subtitle",
		description: "Add a subtitle to a slide",
		field:       "subtitle",
		fieldDesc:   "Subtitle text",
		fontSize:    24,
		label:       "subtitle",
	},
	{
		name:        "add_bullet_list",
		description: "Add a bullet list to a slide",
		field:       "items",
		fieldDesc:   "List items",
		list:        true,
		fontSize:    18,
		label:       "bullet list",
		render:      func(_ string, items []string) string { return script.Bullets(items) },
	},
	{
		name:        "add_numbered_list",
		description: "Add a numbered list to a slide",
		field:       "items",
		fieldDesc:   "List items",
		list:        true,
		fontSize:    18,
		label:       "numbered list",
		render:      func(_ string, items []string) string { return script.Numbered(items) },
	},
	{
		name:        "add_code_block",
		description: "Add a code block in a monospaced font to a slide",
		field:       "code",
		fieldDesc:   "Source code",
		fontSize:    14,
		fontName:    "Monaco",
		label:       "code block",
	},
	{
		name:        "add_quote",
		description: "Add a quotation to a slide",
		field:       "quote",
		fieldDesc:   "Quotation text, without quotation marks",
		fontSize:    20,
		label:       "quote",
		render:      func(text string, _ []string) string { return "“" + text + "”" },
	},
}

func (s *Service) contentTools() []tool.Definition {
	defs := make([]tool.Definition, 0, len(textKinds)+1)
	for _, k := range textKinds {
		defs = append(defs, s.textTool(k))
	}
	defs = append(defs, tool.Definition{
		Descriptor: tool.Descriptor{
			Name:        "add_image",
			Description: "Add an image file to a slide",
			InputSchema: object(with(props{
				"slide_number": slideProp(),
				"image_path":   str("Path of the image file"),
			}, "x", "y", "width", "height", "doc_name"), "slide_number", "image_path"),
		},
		Handler: s.addImage,
	})
	return defs
}

func (s *Service) textTool(k textKind) tool.Definition {
	field := str(k.fieldDesc)
	if k.list {
		field = stringList(k.fieldDesc)
	}
	p := with(props{
		"slide_number": slideProp(),
		k.field:        field,
	}, "x", "y", "doc_name")
	if k.fontSize > 0 || k.fontName != "" {
		with(p, "font_size", "font_name")
	}

	return tool.Definition{
		Descriptor: tool.Descriptor{
			Name:        k.name,
			Description: k.description,
			InputSchema: object(p, "slide_number", k.field),
		},
		Handler: func(ctx context.Context, args validate.Args) (string, error) {
			return s.addText(ctx, k, args)
		},
	}
}

func (s *Service) addText(ctx context.Context, k textKind, args validate.Args) (string, error) {
	slide, err := args.SlideNumber("slide_number", 0)
	if err != nil {
		return "", err
	}

	var (
		text  string
		items []string
	)
	if k.list {
		if items, err = args.StringList(k.field); err != nil {
			return "", err
		}
	} else if text, err = args.RequiredString(k.field); err != nil {
		return "", err
	}
	if k.render != nil {
		text = k.render(text, items)
	}

	placement, err := args.Placement()
	if err != nil {
		return "", err
	}
	item := script.TextItem{
		Slide:     slide,
		Text:      text,
		Placement: placement,
		Policy:    script.PlacementOmit,
	}
	if k.fontSize > 0 || k.fontName != "" {
		if item.FontSize, err = args.PositiveNumber("font_size", k.fontSize); err != nil {
			return "", err
		}
		fontName, err := args.OptionalString("font_name", k.fontName)
		if err != nil {
			return "", err
		}
		item.FontName = strings.TrimSpace(fontName)
	}
	if item.Doc, err = docArg(args); err != nil {
		return "", err
	}

	if _, err := s.run(ctx, item.Doc, script.AddTextItem(item)); err != nil {
		return "", err
	}

	msg := "Added " + k.label + " to slide %d"
	if k.list {
		msg += " (" + itemCount(len(items)) + ")"
	}
	if pos, ok := placement.Position(script.PlacementOmit); ok {
		msg += " at " + pos
	}
	return tool.Success(msg, slide), nil
}

func itemCount(n int) string {
	if n == 1 {
		return "1 item"
	}
	return strconv.Itoa(n) + " items"
}

func (s *Service) addImage(ctx context.Context, args validate.Args) (string, error) {
	slide, err := args.SlideNumber("slide_number", 0)
	if err != nil {
		return "", err
	}
	path, err := args.Path("image_path")
	if err != nil {
		return "", err
	}
	img, err := imageArgs(args, slide, script.PlacementOmit)
	if err != nil {
		return "", err
	}
	if img.Path, err = existingFile("add image", path); err != nil {
		return "", err
	}

	insertedAs, err := s.run(ctx, img.Doc, script.AddImage(img))
	if err != nil {
		return "", err
	}
	return tool.Success("Added %s %s to slide %d", insertedAs, img.Path, slide), nil
}

// imageArgs reads the placement, size and document shared by every image
// insertion
func imageArgs(args validate.Args, slide int, policy script.PlacementPolicy) (script.Image, error) {
	img := script.Image{Slide: slide, Policy: policy}
	var err error
	if img.Placement, err = args.Placement(); err != nil {
		return img, err
	}
	if img.Width, err = args.PositiveNumber("width", 0); err != nil {
		return img, err
	}
	if img.Height, err = args.PositiveNumber("height", 0); err != nil {
		return img, err
	}
	img.Doc, err = docArg(args)
	return img, err
}
