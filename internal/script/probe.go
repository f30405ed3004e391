package script

// KeynoteRunning returns "true" when a Keynote process exists
func KeynoteRunning() string {
	b := &builder{}
	b.open(`tell application "System Events"`)
	b.line(`return (name of processes) contains "Keynote"`)
	b.close("end tell")
	return b.String()
}

// LaunchKeynote starts Keynote and brings it to the front
func LaunchKeynote() string {
	b := &builder{}
	keynote(b, true, nil)
	b.close("end tell")
	return b.String()
}

// KeynoteVersion returns Keynote's version string
func KeynoteVersion() string {
	b := &builder{}
	keynote(b, false, nil)
	b.line("return version")
	b.close("end tell")
	return b.String()
}
