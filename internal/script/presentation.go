package script

// NewPresentation describes a create_presentation call
type NewPresentation struct {
	Title    string
	Theme    string // theme name, empty for Keynote's default
	Template string // path of an existing .key file to start from
}

// CreatePresentation makes a new document and writes the title into the
// first slide's title placeholder when it has one. Returns the document name.
func CreatePresentation(p NewPresentation) string {
	b := &builder{}
	keynote(b, true, nil)
	switch {
	case p.Template != "":
		b.line("set newDoc to open (POSIX file %s)", Quote(p.Template))
		if p.Theme != "" {
			b.line("set document theme of newDoc to theme %s", Quote(p.Theme))
		}
	case p.Theme != "":
		b.line("set newDoc to make new document with properties {document theme:theme %s}", Quote(p.Theme))
	default:
		b.line("set newDoc to make new document")
	}
	b.open("try")
	b.line("set object text of default title item of slide 1 of newDoc to %s", Quote(p.Title))
	b.close("end try")
	b.line("return name of newDoc")
	b.close("end tell")
	return b.String()
}

// OpenPresentation opens a file and returns the opened document's name
func OpenPresentation(path string) string {
	b := &builder{}
	keynote(b, true, nil)
	b.line("set openedDoc to open (POSIX file %s)", Quote(path))
	b.line("return name of openedDoc")
	b.close("end tell")
	return b.String()
}

// SavePresentation saves a document and returns its name
func SavePresentation(docName string) string {
	b := &builder{}
	keynote(b, false, doc(docName))
	b.line("save targetDoc")
	b.line("return name of targetDoc")
	b.close("end tell")
	return b.String()
}

// ClosePresentation closes a document, saving first when save is true
func ClosePresentation(docName string, save bool) string {
	saving := "no"
	if save {
		saving = "yes"
	}
	b := &builder{}
	keynote(b, false, doc(docName))
	b.line("set docName to name of targetDoc")
	b.line("close targetDoc saving %s", saving)
	b.line("return docName")
	b.close("end tell")
	return b.String()
}

// ListPresentations returns the names of all open documents
func ListPresentations() string {
	b := &builder{}
	keynote(b, false, nil)
	joined(b, "(name of every document)")
	b.close("end tell")
	return b.String()
}

// SetTheme applies a theme to a document
func SetTheme(docName, theme string) string {
	b := &builder{}
	keynote(b, false, doc(docName))
	b.line("set document theme of targetDoc to theme %s", Quote(theme))
	b.line("return name of document theme of targetDoc")
	b.close("end tell")
	return b.String()
}

// PresentationInfo returns name, slide count, width, height, theme and
// current slide number of a document
func PresentationInfo(docName string) string {
	b := &builder{}
	keynote(b, false, doc(docName))
	b.line("set info to {name of targetDoc, count of slides of targetDoc, width of targetDoc, height of targetDoc}")
	b.open("try")
	b.line("set end of info to name of document theme of targetDoc")
	b.mid("on error")
	b.line(`set end of info to ""`)
	b.close("end try")
	b.open("try")
	b.line("set end of info to slide number of current slide of targetDoc")
	b.mid("on error")
	b.line("set end of info to 0")
	b.close("end try")
	joined(b, "info")
	b.close("end tell")
	return b.String()
}

// AvailableThemes returns the names of all installed themes
func AvailableThemes() string {
	b := &builder{}
	keynote(b, false, nil)
	joined(b, "(name of every theme)")
	b.close("end tell")
	return b.String()
}

// SlideSize returns a document's width and height in points
func SlideSize(docName string) string {
	b := &builder{}
	keynote(b, false, doc(docName))
	joined(b, "{width of targetDoc, height of targetDoc}")
	b.close("end tell")
	return b.String()
}
