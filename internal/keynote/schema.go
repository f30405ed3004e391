package keynote

// Schema fragments shared by the tool definitions. Structural checks happen
// against these before a handler runs; the handlers then apply the value
// rules through validate.Args.

type props map[string]any

func object(properties props, required ...string) map[string]any {
	s := map[string]any{
		"type":       "object",
		"properties": map[string]any(properties),
	}
	if len(required) > 0 {
		req := make([]any, len(required))
		for i, r := range required {
			req[i] = r
		}
		s["required"] = req
	}
	return s
}

func str(desc string) map[string]any {
	return map[string]any{"type": "string", "description": desc}
}

func num(desc string) map[string]any {
	return map[string]any{"type": "number", "description": desc}
}

func integer(desc string) map[string]any {
	return map[string]any{"type": "integer", "description": desc}
}

func boolean(desc string) map[string]any {
	return map[string]any{"type": "boolean", "description": desc}
}

func enum(desc string, values ...string) map[string]any {
	vs := make([]any, len(values))
	for i, v := range values {
		vs[i] = v
	}
	return map[string]any{"type": "string", "description": desc, "enum": vs}
}

func stringList(desc string) map[string]any {
	return map[string]any{
		"type":        "array",
		"items":       map[string]any{"type": "string"},
		"description": desc,
	}
}

func docProp() map[string]any {
	return str("Presentation name (optional, defaults to the front presentation)")
}

func slideProp() map[string]any {
	return integer("Slide number (1-based)")
}

// with adds the shared optional fields to p
func with(p props, extra ...string) props {
	for _, e := range extra {
		switch e {
		case "doc_name":
			p["doc_name"] = docProp()
		case "x":
			p["x"] = num("X coordinate in points from the left edge (optional)")
		case "y":
			p["y"] = num("Y coordinate in points from the top edge (optional)")
		case "font_size":
			p["font_size"] = num("Font size in points (optional)")
		case "font_name":
			p["font_name"] = str("Font name (optional)")
		case "width":
			p["width"] = num("Width in points (optional)")
		case "height":
			p["height"] = num("Height in points (optional)")
		}
	}
	return p
}

var (
	imageFormats = []string{"png", "jpg", "jpeg"}
	orientations = []string{"landscape", "portrait", "squarish"}
	orderings    = []string{"relevant", "latest"}
)
