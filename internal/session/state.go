// Package session holds the process-wide client state: the last successful
// translation and the active reference-input tab.
package session

// Tab is a reference-input mode.
type Tab int

const (
	TabManual Tab = iota
	TabFile
)

// Tabs lists the tabs in display order.
var Tabs = []Tab{TabManual, TabFile}

func (t Tab) String() string {
	switch t {
	case TabManual:
		return "manual"
	case TabFile:
		return "file"
	default:
		return "unknown"
	}
}

// Title is the tab control caption.
func (t Tab) Title() string {
	switch t {
	case TabManual:
		return "Manual Entry"
	case TabFile:
		return "Upload File"
	default:
		return "?"
	}
}

// State lives for the whole process and is never reset.
type State struct {
	translatedText string
	tab            Tab
}

// New returns the initial state: no translation, manual tab.
func New() *State {
	return &State{tab: TabManual}
}

// TranslatedText returns the most recent successful translation.
func (s *State) TranslatedText() string {
	return s.translatedText
}

// SetTranslatedText records a successful translation.
func (s *State) SetTranslatedText(text string) {
	s.translatedText = text
}

// HasTranslation reports whether an evaluation is possible.
func (s *State) HasTranslation() bool {
	return s.translatedText != ""
}

// Tab returns the active tab.
func (s *State) Tab() Tab {
	return s.tab
}

// SelectTab makes t the only active tab. Unknown tabs are ignored.
func (s *State) SelectTab(t Tab) {
	if t != TabManual && t != TabFile {
		return
	}
	s.tab = t
}

// IsActive reports whether t is the active tab.
func (s *State) IsActive(t Tab) bool {
	return s.tab == t
}
