package session

import "testing"

func TestNewState(t *testing.T) {
	s := New()
	if s.HasTranslation() {
		t.Error("new state should have no translation")
	}
	if s.Tab() != TabManual {
		t.Errorf("Tab() = %v, want manual", s.Tab())
	}
}

func TestSelectTabExclusive(t *testing.T) {
	s := New()
	s.SelectTab(TabFile)

	active := 0
	for _, tab := range Tabs {
		if s.IsActive(tab) {
			active++
		}
	}
	if active != 1 {
		t.Fatalf("expected exactly one active tab, got %d", active)
	}
	if !s.IsActive(TabFile) {
		t.Error("file tab should be active")
	}

	s.SelectTab(Tab(42))
	if s.Tab() != TabFile {
		t.Errorf("unknown tab changed state to %v", s.Tab())
	}
}

func TestTranslatedText(t *testing.T) {
	s := New()
	s.SetTranslatedText("Hola mundo")
	if !s.HasTranslation() || s.TranslatedText() != "Hola mundo" {
		t.Errorf("TranslatedText() = %q", s.TranslatedText())
	}
}

func TestTabNames(t *testing.T) {
	if TabManual.String() != "manual" || TabFile.String() != "file" {
		t.Errorf("unexpected tab names %q %q", TabManual, TabFile)
	}
	if TabFile.Title() != "Upload File" {
		t.Errorf("Title() = %q", TabFile.Title())
	}
}
