package script

import "strings"

// ImageFormat maps a file extension style format to Keynote's image format
// constant. Anything other than jpg/jpeg exports as PNG.
func ImageFormat(format string) string {
	switch strings.ToLower(format) {
	case "jpg", "jpeg":
		return "JPEG"
	default:
		return "PNG"
	}
}

// ExportPDF writes the whole document to path as a PDF
func ExportPDF(docName, path string) string {
	b := &builder{}
	keynote(b, false, doc(docName))
	b.line("export targetDoc to (POSIX file %s) as PDF", Quote(path))
	b.close("end tell")
	return b.String()
}

// ExportImages writes one image per slide into dir
func ExportImages(docName, dir, format string) string {
	b := &builder{}
	keynote(b, false, doc(docName))
	exportImages(b, dir, format)
	b.line("return count of slides of targetDoc")
	b.close("end tell")
	return b.String()
}

// ScreenshotSlide exports a single slide into dir by skipping every other
// slide for the duration of the export. The previous skipped flags are
// restored whether or not the export succeeds.
func ScreenshotSlide(docName string, slide int, dir, format string) string {
	b := &builder{}
	keynote(b, true, doc(docName))
	b.line("set savedSkips to skipped of every slide of targetDoc")
	b.open("try")
	b.line("set skipped of every slide of targetDoc to true")
	b.line("set skipped of slide %d of targetDoc to false", slide)
	exportImages(b, dir, format)
	b.mid("on error errMsg number errNum")
	restoreSkips(b)
	b.line("error errMsg number errNum")
	b.close("end try")
	restoreSkips(b)
	b.close("end tell")
	return b.String()
}

func exportImages(b *builder, dir, format string) {
	b.line("export targetDoc to (POSIX file %s) as slide images with properties {image format:%s, skipped slides:false}",
		Quote(dir), ImageFormat(format))
}

func restoreSkips(b *builder) {
	b.open("repeat with i from 1 to count of savedSkips")
	b.line("set skipped of slide i of targetDoc to item i of savedSkips")
	b.close("end repeat")
}
