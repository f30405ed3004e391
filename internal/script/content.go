package script

// TextItem describes one text box insertion
type TextItem struct {
	Doc       string
	Slide     int
	Text      string // already flattened for lists
	Placement Placement
	Policy    PlacementPolicy
	FontSize  float64 // 0 leaves the theme's size
	FontName  string  // empty leaves the theme's font
}

// AddTextItem creates a text item on a slide and styles it. The script
// returns the number of text items on the slide afterwards.
func AddTextItem(t TextItem) string {
	b := &builder{}
	keynote(b, true, doc(t.Doc))
	b.open("tell slide %d of targetDoc", t.Slide)
	b.line("set newItem to make new text item with properties {object text:%s}", Quote(t.Text))
	if pos, ok := t.Placement.Position(t.Policy); ok {
		b.line("set position of newItem to %s", pos)
	}
	if t.FontSize > 0 || t.FontName != "" {
		b.open("tell newItem")
		if t.FontSize > 0 {
			b.line("set size of object text to %s", Number(t.FontSize))
		}
		if t.FontName != "" {
			b.line("set font of object text to %s", Quote(t.FontName))
		}
		b.close("end tell")
	}
	b.line("return count of text items")
	b.close("end tell")
	b.close("end tell")
	return b.String()
}

// Image describes one image insertion
type Image struct {
	Doc       string
	Slide     int
	Path      string // absolute POSIX path
	Placement Placement
	Policy    PlacementPolicy
	Width     float64 // 0 keeps the natural size
	Height    float64
}

// AddImage places an image file on a slide. Keynote versions that reject
// "make new image" accept the file as a movie, so that is tried second.
// The script returns "image" or "movie".
func AddImage(img Image) string {
	props := "{file:imageFile"
	if pos, ok := img.Placement.Position(img.Policy); ok {
		props += ", position:" + pos
	}
	props += "}"

	b := &builder{}
	keynote(b, true, doc(img.Doc))
	b.open("tell slide %d of targetDoc", img.Slide)
	b.line("set imageFile to POSIX file %s as alias", Quote(img.Path))
	b.line(`set insertedAs to "image"`)
	b.open("try")
	b.line("set newItem to make new image with properties %s", props)
	b.mid("on error")
	b.line("set newItem to make new movie with properties %s", props)
	b.line(`set insertedAs to "movie"`)
	b.close("end try")
	if img.Width > 0 {
		b.line("set width of newItem to %s", Number(img.Width))
	}
	if img.Height > 0 {
		b.line("set height of newItem to %s", Number(img.Height))
	}
	b.line("return insertedAs")
	b.close("end tell")
	b.close("end tell")
	return b.String()
}
