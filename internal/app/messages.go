package app

// fatalErrorMsg is sent to the Bubble Tea program when a background
// subsystem encounters an unrecoverable error. The app should quit and
// show the error.
type fatalErrorMsg struct{ err error }

// fileChangedMsg is sent from the watcher goroutine when a watched
// path changed on disk.
type fileChangedMsg struct {
	path    string
	removed bool
}

// indexProgressMsg reports full-index progress.
type indexProgressMsg struct {
	done  int
	total int
}

// indexInitDoneMsg signals the initial indexing pass is complete.
type indexInitDoneMsg struct{ err error }

// openInitialFileMsg opens the file given on the command line (or the
// restored last file) once the program is running.
type openInitialFileMsg struct{ path string }
