package tui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/f3rmion/smt/internal/notify"
	"github.com/f3rmion/smt/internal/pipeline"
	"github.com/f3rmion/smt/internal/render"
	"github.com/f3rmion/smt/internal/session"
	"github.com/f3rmion/smt/internal/smt"
	"github.com/f3rmion/smt/internal/tui/views"
)

// focusArea is the input that receives keystrokes.
type focusArea int

const (
	focusSource focusArea = iota
	focusReferences
	focusPicker
)

// Message types
type translateDoneMsg struct {
	resp smt.TranslationResponse
	err  error
}

type evaluateDoneMsg struct {
	result smt.EvaluationResult
	err    error
}

type fileReadMsg struct {
	path     string
	contents string
	err      error
}

type dismissMsg struct {
	dismissal notify.Dismissal
}

type clearCopiedMsg struct{}

// Options configures the app.
type Options struct {
	Languages  []smt.Language
	SourceLang string
	TargetLang string
	// StartDir is where the reference file picker opens.
	StartDir string
	// Context bounds every request. Nil means context.Background.
	Context context.Context
}

// AppModel is the main TUI model. All session state lives in the pipeline;
// the model only holds widgets and layout.
type AppModel struct {
	pipe *pipeline.Pipeline
	ctx  context.Context

	languages []smt.Language
	srcIdx    int
	tgtIdx    int

	source  textarea.Model
	refs    views.ReferencesModel
	picker  views.FilePickerModel
	spinner spinner.Model
	results viewport.Model

	focus focusArea

	width  int
	height int
	ready  bool

	showHelp bool
	copied   bool

	copyText func(string) error
	readFile func(string) ([]byte, error)
}

// NewApp creates the TUI over p.
func NewApp(p *pipeline.Pipeline, opts Options) AppModel {
	ta := textarea.New()
	ta.Placeholder = "Enter text to translate..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.SetHeight(5)
	ta.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(ColorAccent)

	langs := opts.Languages
	if len(langs) == 0 {
		langs = []smt.Language{{Code: "en", Name: "English"}, {Code: "hi", Name: "Hindi"}}
	}

	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	m := AppModel{
		pipe:      p,
		ctx:       ctx,
		languages: langs,
		srcIdx:    languageIndex(langs, opts.SourceLang, 0),
		tgtIdx:    languageIndex(langs, opts.TargetLang, 1%len(langs)),
		source:    ta,
		refs:      views.NewReferencesModel(p.References().Entries()),
		picker:    views.NewFilePickerModel(opts.StartDir),
		spinner:   sp,
		results:   viewport.New(40, 10),
		focus:     focusSource,
		copyText:  clipboard.WriteAll,
		readFile:  os.ReadFile,
	}
	return m
}

func languageIndex(langs []smt.Language, code string, fallback int) int {
	for i, l := range langs {
		if l.Code == code {
			return i
		}
	}
	return fallback
}

// Init initializes the model.
func (m AppModel) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles messages.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.layout()
		return m, nil

	case translateDoneMsg:
		m.pipe.EndTranslate(msg.resp, msg.err)
		m.syncResults()
		return m, nil

	case evaluateDoneMsg:
		m.pipe.EndEvaluate(msg.result, msg.err)
		m.syncResults()
		return m, nil

	case views.FileSelectedMsg:
		return m, m.readFileCmd(msg.Path)

	case fileReadMsg:
		return m.handleFileRead(msg)

	case dismissMsg:
		m.pipe.Notifications().Dismiss(msg.dismissal)
		return m, nil

	case clearCopiedMsg:
		m.copied = false
		return m, nil

	case spinner.TickMsg:
		if !m.busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m.forward(msg)
}

func (m AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	var cmd tea.Cmd
	switch msg.String() {
	case "ctrl+t":
		cmd = m.startTranslate()
	case "ctrl+e":
		cmd = m.startEvaluate()
	case "ctrl+n":
		// Entries are added from the manual panel only.
		if !m.pipe.State().IsActive(session.TabManual) {
			break
		}
		m.pipe.AddReference()
		m.refs.Append()
		cmd = m.setFocus(focusReferences)
	case "f1":
		cmd = m.selectTab(session.TabManual)
	case "f2":
		cmd = m.selectTab(session.TabFile)
	case "f5":
		m.srcIdx = (m.srcIdx + 1) % len(m.languages)
	case "f6":
		m.tgtIdx = (m.tgtIdx + 1) % len(m.languages)
	case "ctrl+y":
		cmd = m.copyTranslation()
	case "tab":
		cmd = m.setFocus(m.nextFocus(1))
	case "shift+tab":
		cmd = m.setFocus(m.nextFocus(-1))
	case "pgup", "pgdown":
		m.results, cmd = m.results.Update(msg)
	case "?":
		if m.focus != focusPicker {
			return m.forward(msg)
		}
		m.showHelp = true
	default:
		return m.forward(msg)
	}
	return m, cmd
}

// forward passes msg to the focused input.
func (m AppModel) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case focusSource:
		m.source, cmd = m.source.Update(msg)
	case focusReferences:
		m.refs, cmd = m.refs.Update(msg)
		for i, v := range m.refs.Values() {
			m.pipe.UpdateReference(i, v)
		}
	case focusPicker:
		m.picker, cmd = m.picker.Update(msg)
	}
	return m, cmd
}

func (m *AppModel) busy() bool {
	return m.pipe.TranslateControl().Busy || m.pipe.EvaluateControl().Busy
}

func (m *AppModel) startTranslate() tea.Cmd {
	src := m.languages[m.srcIdx].Code
	tgt := m.languages[m.tgtIdx].Code

	req, err := m.pipe.BeginTranslate(m.source.Value(), src, tgt)
	if err != nil {
		m.syncResults()
		return nil
	}

	svc, ctx := m.pipe.Service(), m.ctx
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		resp, err := svc.Translate(ctx, req)
		return translateDoneMsg{resp: resp, err: err}
	})
}

func (m *AppModel) startEvaluate() tea.Cmd {
	req, err := m.pipe.BeginEvaluate()
	if err != nil {
		m.syncResults()
		return nil
	}

	svc, ctx := m.pipe.Service(), m.ctx
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		res, err := svc.Evaluate(ctx, req)
		return evaluateDoneMsg{result: res, err: err}
	})
}

func (m *AppModel) readFileCmd(path string) tea.Cmd {
	read := m.readFile
	return func() tea.Msg {
		data, err := read(path)
		return fileReadMsg{path: path, contents: string(data), err: err}
	}
}

func (m AppModel) handleFileRead(msg fileReadMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.pipe.ReadFailed(msg.err)
		m.syncResults()
		return m, nil
	}

	d, err := m.pipe.ImportReferences(msg.contents)
	m.syncResults()
	if err != nil {
		return m, nil
	}

	m.refs.Sync(m.pipe.References().Entries())
	m.picker.Reset()
	cmd := tea.Batch(m.setFocus(focusReferences), dismissAfter(d))
	return m, cmd
}

func dismissAfter(d notify.Dismissal) tea.Cmd {
	return tea.Tick(d.After, func(time.Time) tea.Msg {
		return dismissMsg{dismissal: d}
	})
}

func clearCopiedAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearCopiedMsg{}
	})
}

func (m *AppModel) copyTranslation() tea.Cmd {
	text := m.pipe.State().TranslatedText()
	if text == "" {
		return nil
	}
	if err := m.copyText(text); err != nil {
		return nil
	}
	m.copied = true
	return clearCopiedAfter(2 * time.Second)
}

func (m *AppModel) selectTab(t session.Tab) tea.Cmd {
	m.pipe.SelectTab(t)
	if m.focus == focusSource {
		return nil
	}
	if t == session.TabFile {
		return m.setFocus(focusPicker)
	}
	return m.setFocus(focusReferences)
}

// nextFocus cycles between the source text and the input of the active tab.
func (m *AppModel) nextFocus(step int) focusArea {
	areas := []focusArea{focusSource, focusReferences}
	if m.pipe.State().IsActive(session.TabFile) {
		areas[1] = focusPicker
	}
	cur := 0
	for i, a := range areas {
		if a == m.focus {
			cur = i
		}
	}
	return areas[(cur+step+len(areas))%len(areas)]
}

func (m *AppModel) setFocus(f focusArea) tea.Cmd {
	m.focus = f
	m.source.Blur()
	m.refs.Blur()

	switch f {
	case focusSource:
		return m.source.Focus()
	case focusReferences:
		return m.refs.Focus()
	}
	return nil
}

// syncResults applies the pipeline screen to the results viewport.
func (m *AppModel) syncResults() {
	m.results.SetContent(m.resultsContent())

	switch m.pipe.Screen().TakeScroll() {
	case render.TargetEvaluation:
		m.results.GotoBottom()
	case render.TargetTranslation, render.TargetNotification:
		m.results.GotoTop()
	}
}

func (m *AppModel) resultsContent() string {
	screen := m.pipe.Screen()
	var parts []string
	if screen.TranslationVisible {
		parts = append(parts, views.RenderTranslation(screen.Translation, m.results.Width))
	}
	if screen.EvaluationVisible {
		parts = append(parts, views.RenderEvaluation(screen.Evaluation))
	}
	if len(parts) == 0 {
		return HelpStyle.Render("Results appear here. ctrl+t translates, ctrl+e evaluates.")
	}
	return strings.Join(parts, "\n")
}

func (m *AppModel) columnWidths() (left, right int) {
	inner := m.width - 4
	left = inner / 2
	right = inner - left
	return left, right
}

func (m *AppModel) layout() {
	left, right := m.columnWidths()

	m.source.SetWidth(max(left-6, 10))
	m.refs.SetSize(left - 2)
	m.picker.SetSize(left-2, max(m.height-20, 8))

	m.results.Width = max(right-4, 10)
	m.results.Height = max(m.height-8, 5)
	m.results.SetContent(m.resultsContent())
}

// View renders the UI.
func (m AppModel) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}

	left, right := m.columnWidths()

	leftCol := lipgloss.JoinVertical(lipgloss.Left,
		TitleStyle.Render("SMT Translate & Evaluate"),
		"",
		m.renderLanguages(),
		m.pane(m.source.View(), m.focus == focusSource, left),
		m.renderButton("Translate", "Translating...", m.pipe.TranslateControl()),
		"",
		m.renderTabs(),
		m.pane(m.referenceInput(), m.focus != focusSource, left),
		m.renderButton("Evaluate BLEU", "Evaluating...", m.pipe.EvaluateControl()),
	)

	var rightParts []string
	if banner := views.RenderNotification(m.pipe.Notifications().Current(), right); banner != "" {
		rightParts = append(rightParts, banner)
	}
	rightParts = append(rightParts, PaneStyle.Width(right-2).Render(m.results.View()))
	rightCol := lipgloss.JoinVertical(lipgloss.Left, rightParts...)

	body := lipgloss.JoinHorizontal(lipgloss.Top, leftCol, "  ", rightCol)
	return ContentStyle.Render(lipgloss.JoinVertical(lipgloss.Left, body, m.renderFooter()))
}

func (m AppModel) pane(content string, focused bool, width int) string {
	style := PaneStyle
	if focused {
		style = PaneFocusedStyle
	}
	return style.Width(max(width-2, 10)).Render(content)
}

func (m AppModel) referenceInput() string {
	if m.pipe.State().IsActive(session.TabFile) {
		return m.picker.View()
	}
	return m.refs.View()
}

func (m AppModel) renderLanguages() string {
	src := m.languages[m.srcIdx]
	tgt := m.languages[m.tgtIdx]

	style := LanguageStyle
	if src.Code == tgt.Code {
		style = LanguageSameStyle
	}
	return LabelStyle.Render("From ") + style.Render(src.Label()) +
		LabelStyle.Render("  →  To ") + style.Render(tgt.Label()) +
		HelpStyle.Render("   (f5/f6)")
}

func (m AppModel) renderTabs() string {
	var tabs []string
	for i, t := range session.Tabs {
		label := fmt.Sprintf("F%d %s", i+1, t.Title())
		style := TabStyle
		if m.pipe.State().IsActive(t) {
			style = TabActiveStyle
		}
		tabs = append(tabs, style.Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m AppModel) renderButton(label, busyLabel string, c pipeline.Control) string {
	switch {
	case c.Busy:
		return ButtonBusyStyle.Render(m.spinner.View() + " " + busyLabel)
	case !c.Enabled:
		return ButtonDisabledStyle.Render(label)
	default:
		return ButtonStyle.Render(label)
	}
}

func (m AppModel) renderFooter() string {
	parts := []string{"ctrl+t: translate", "ctrl+e: evaluate", "ctrl+n: add reference", "tab: focus"}
	if m.pipe.State().HasTranslation() {
		parts = append(parts, "ctrl+y: copy")
	}
	parts = append(parts, "ctrl+c: quit")

	footer := HelpStyle.Render(strings.Join(parts, " • "))
	if m.copied {
		footer += "  " + CopiedStyle.Render("Copied!")
	}
	return footer
}

func (m AppModel) renderHelp() string {
	keyStyle := lipgloss.NewStyle().
		Foreground(ColorAccent).
		Width(14)

	descStyle := lipgloss.NewStyle().
		Foreground(ColorText)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorSecondary).
		MarginTop(1)

	row := func(key, desc string) string {
		return keyStyle.Render(key) + descStyle.Render(desc) + "\n"
	}

	help := TitleStyle.Render("SMT - Keys") + "\n\n"

	help += sectionStyle.Render("Requests") + "\n"
	help += row("ctrl+t", "Translate source text")
	help += row("ctrl+e", "Evaluate translation (BLEU)")
	help += row("ctrl+y", "Copy translation to clipboard")

	help += sectionStyle.Render("Input") + "\n"
	help += row("f5 / f6", "Cycle source / target language")
	help += row("f1 / f2", "Manual entry / upload file")
	help += row("ctrl+n", "Add reference")
	help += row("tab", "Move focus")
	help += row("pgup/pgdown", "Scroll results")

	help += sectionStyle.Render("File Picker") + "\n"
	help += row("enter", "Load file/enter dir")
	help += row("backspace", "Go to parent dir")
	help += row("~", "Go to home dir")

	help += "\n" + HelpStyle.Italic(true).Render("Press any key to close")

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorSecondary).
		Padding(1, 2).
		Width(54).
		Render(help)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
