package script

import "strconv"

// DefaultLayout is applied when no layout is requested, and substituted when
// the requested one does not exist
const DefaultLayout = "Blank"

// LayoutNotFound is returned by SetSlideLayout for an unknown master slide
const LayoutNotFound = "layout_not_found"

// AddSlide inserts a slide and applies a layout. position 0 appends.
//
// The script returns "<slide number>|||<applied layout>". When the requested
// layout is missing the applied layout is DefaultLayout, and it is empty when
// even that could not be applied, so callers can report the substitution.
func AddSlide(docName string, position int, layout string) string {
	if layout == "" {
		layout = DefaultLayout
	}

	b := &builder{}
	keynote(b, true, doc(docName))
	if position == 0 {
		b.line("set newSlide to make new slide at end of slides of targetDoc")
	} else {
		b.line("set newSlide to make new slide at slide %d of targetDoc", position)
	}
	b.line("set appliedLayout to %s", Quote(layout))
	b.open("try")
	b.line("set base slide of newSlide to master slide %s of targetDoc", Quote(layout))
	b.mid("on error")
	if layout == DefaultLayout {
		b.line(`set appliedLayout to ""`)
	} else {
		b.line("set appliedLayout to %s", Quote(DefaultLayout))
		b.open("try")
		b.line("set base slide of newSlide to master slide %s of targetDoc", Quote(DefaultLayout))
		b.mid("on error")
		b.line(`set appliedLayout to ""`)
		b.close("end try")
	}
	b.close("end try")
	b.line("return (slide number of newSlide as string) & %s & appliedLayout", Quote(Sep))
	b.close("end tell")
	return b.String()
}

// DeleteSlide removes one slide
func DeleteSlide(docName string, slide int) string {
	b := &builder{}
	keynote(b, false, doc(docName))
	b.line("delete slide %d of targetDoc", slide)
	b.close("end tell")
	return b.String()
}

// DuplicateSlide copies a slide, optionally moving the copy to newPosition,
// and returns the copy's slide number
func DuplicateSlide(docName string, slide, newPosition int) string {
	b := &builder{}
	keynote(b, false, doc(docName))
	b.line("set newSlide to duplicate slide %d of targetDoc", slide)
	if newPosition != 0 && newPosition != slide+1 {
		b.line("move newSlide to %s of targetDoc", moveTarget(slide+1, newPosition))
	}
	b.line("return slide number of newSlide")
	b.close("end tell")
	return b.String()
}

// MoveSlide moves the slide at from so it ends up at position to
func MoveSlide(docName string, from, to int) string {
	b := &builder{}
	keynote(b, false, doc(docName))
	b.line("set sourceSlide to slide %d of targetDoc", from)
	if from != to {
		b.line("move sourceSlide to %s of targetDoc", moveTarget(from, to))
	}
	b.line("return slide number of sourceSlide")
	b.close("end tell")
	return b.String()
}

// SlideCount returns the number of slides
func SlideCount(docName string) string {
	b := &builder{}
	keynote(b, false, doc(docName))
	b.line("return count of slides of targetDoc")
	b.close("end tell")
	return b.String()
}

// SelectSlide makes a slide the current slide
func SelectSlide(docName string, slide int) string {
	b := &builder{}
	keynote(b, true, doc(docName))
	b.line("set current slide of targetDoc to slide %d of targetDoc", slide)
	b.close("end tell")
	return b.String()
}

// SetSlideLayout applies a master slide by name. The script returns
// LayoutNotFound when no master slide has that name.
func SetSlideLayout(docName string, slide int, layout string) string {
	b := &builder{}
	keynote(b, false, doc(docName))
	b.line("set targetLayout to missing value")
	b.open("repeat with masterSlide in master slides of targetDoc")
	b.open("if name of masterSlide is %s then", Quote(layout))
	b.line("set targetLayout to masterSlide")
	b.line("exit repeat")
	b.close("end if")
	b.close("end repeat")
	b.open("if targetLayout is missing value then")
	b.line("return %s", Quote(LayoutNotFound))
	b.close("end if")
	b.line("set base slide of slide %d of targetDoc to targetLayout", slide)
	b.line(`return "success"`)
	b.close("end tell")
	return b.String()
}

// SlideInfo returns slide number, layout name, text item count and skipped
// state of one slide
func SlideInfo(docName string, slide int) string {
	b := &builder{}
	keynote(b, false, doc(docName))
	b.line("set targetSlide to slide %d of targetDoc", slide)
	b.line("set info to {slide number of targetSlide}")
	b.open("try")
	b.line("set end of info to name of base slide of targetSlide")
	b.mid("on error")
	b.line(`set end of info to "Unknown Layout"`)
	b.close("end try")
	b.open("try")
	b.line("set end of info to count of text items of targetSlide")
	b.mid("on error")
	b.line("set end of info to 0")
	b.close("end try")
	b.line("set end of info to skipped of targetSlide")
	joined(b, "info")
	b.close("end tell")
	return b.String()
}

// AvailableLayouts returns the master slide names of a document
func AvailableLayouts(docName string) string {
	b := &builder{}
	keynote(b, false, doc(docName))
	joined(b, "(name of every master slide of targetDoc)")
	b.close("end tell")
	return b.String()
}

// moveTarget returns the insertion point that leaves a slide currently at
// from at position to once it has moved
func moveTarget(from, to int) string {
	if to > from {
		return "after slide " + strconv.Itoa(to)
	}
	return "before slide " + strconv.Itoa(to)
}
