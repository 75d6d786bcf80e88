package panel

// FileSelectedMsg is sent when a file is selected in the tree.
type FileSelectedMsg struct {
	Path string
}

// DirToggledMsg is sent when a directory is expanded or collapsed.
// The expansion state lives in the session, so the app applies it and
// re-projects the tree.
type DirToggledMsg struct {
	Path     string
	Expanded bool
}

// TreeNewFileMsg is sent when the user presses 'a' to add a file.
type TreeNewFileMsg struct {
	Dir string
}

// TreeNewFolderMsg is sent when the user presses 'A' to add a folder.
type TreeNewFolderMsg struct {
	Dir string
}

// TreeDeleteMsg is sent when the user presses 'd' to delete an entry.
type TreeDeleteMsg struct {
	Path  string
	Name  string
	IsDir bool
}

// TreeRenameMsg is sent when the user presses 'r' to rename an entry.
type TreeRenameMsg struct {
	Path string
	Name string
}

// TreeRevealMsg is sent when the user presses 'o' to reveal an entry
// in the OS file manager.
type TreeRevealMsg struct {
	Path string
}

// TreeCycleMarkerMsg is sent when the user presses 'm' to cycle a
// file's marker (none, green, red).
type TreeCycleMarkerMsg struct {
	Path string
}

// PromptResultMsg is sent when a text prompt is confirmed.
type PromptResultMsg struct {
	Value string
}

// PromptConfirmMsg is sent when a yes/no prompt is answered.
type PromptConfirmMsg struct {
	OK bool
}

// PromptCancelledMsg is sent when a prompt is dismissed.
type PromptCancelledMsg struct{}

// FinderResultMsg is sent when a finder item is selected.
type FinderResultMsg struct {
	Path string
}

// FinderClosedMsg is sent when the finder is dismissed.
type FinderClosedMsg struct{}

// RecentSelectedMsg is sent when a recents overlay entry is chosen.
type RecentSelectedMsg struct {
	Path   string
	Folder bool
}

// RecentsClosedMsg is sent when the recents overlay is dismissed.
type RecentsClosedMsg struct{}
