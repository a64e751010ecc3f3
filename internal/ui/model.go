// Package ui is the interactive submission form: client name, optional parser
// instructions, and an ordered list of PDF files to convert.
package ui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cvanwyk/finconvert/internal/selection"
	"github.com/cvanwyk/finconvert/internal/upload"
	"github.com/cvanwyk/finconvert/internal/workbook"
)

// Converter submits a conversion request and reports the outcome. upload.Client
// is the real implementation; tests inject a stub.
type Converter interface {
	Convert(ctx context.Context, req upload.Request) (*upload.Result, error)
}

type state int

const (
	stateForm state = iota
	statePicking
	stateSending
)

type focusArea int

const (
	focusClient focusArea = iota
	focusPrompt
	focusFiles
)

type Model struct {
	state state
	focus focusArea

	client textinput.Model
	prompt textarea.Model
	picker filepicker.Model
	spin   spinner.Model

	files  selection.List
	cursor int

	converter Converter

	// Modal notification. Dismissed only by explicit keypress; a second show
	// overwrites the displayed text.
	msgVisible bool
	msgTitle   string
	msgBody    string

	width  int
	height int
}

type submitResultMsg struct {
	result  *upload.Result
	summary *workbook.Summary
	err     error
}

func InitialModel(conv Converter) Model {
	ti := textinput.New()
	ti.Placeholder = "e.g. Acme Body Corporate"
	ti.CharLimit = 120
	ti.Width = 48
	ti.Focus()

	ta := textarea.New()
	ta.Placeholder = "Optional instructions for the parser"
	ta.SetWidth(60)
	ta.SetHeight(3)
	ta.CharLimit = 2000

	fp := filepicker.New()
	fp.AllowedTypes = []string{".pdf"}
	fp.CurrentDirectory, _ = os.Getwd()
	fp.Styles.Cursor = lipgloss.NewStyle().Foreground(lipgloss.Color("#2DD4BF"))
	fp.Styles.Directory = lipgloss.NewStyle().Foreground(lipgloss.Color("#34D399"))
	fp.Styles.File = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF"))
	fp.Styles.Permission = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	fp.Styles.Selected = lipgloss.NewStyle().Foreground(lipgloss.Color("#2DD4BF")).Bold(true)
	fp.Styles.FileSize = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#2DD4BF"))

	return Model{
		state:     stateForm,
		focus:     focusClient,
		client:    ti,
		prompt:    ta,
		picker:    fp,
		spin:      sp,
		converter: conv,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.picker.Init())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		height := msg.Height - 10
		if height < 5 {
			height = 5
		}
		m.picker.SetHeight(height)
		return m, nil

	case spinner.TickMsg:
		if m.state == stateSending {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
		return m, nil

	case submitResultMsg:
		return m.finishSubmission(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		// The modal swallows everything until it is acknowledged.
		if m.msgVisible {
			switch msg.String() {
			case "enter", "esc", " ":
				m.hideMessage()
			}
			return m, nil
		}

		switch m.state {
		case stateForm:
			return m.updateForm(msg)
		case statePicking:
			if msg.String() == "esc" {
				m.state = stateForm
				return m, nil
			}
		case stateSending:
			// Submit affordance is disabled while a request is in flight; the
			// request itself runs to completion or failure either way.
			return m, nil
		}
	}

	if m.state == statePicking {
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)

		if didSelect, path := m.picker.DidSelectFile(msg); didSelect {
			m.files.Add(selection.File{Name: filepath.Base(path), Path: path})
			m.cursor = m.files.Len() - 1
			m.state = stateForm
		}
		return m, cmd
	}

	if m.state == stateForm {
		return m.updateFocused(msg)
	}
	return m, nil
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab":
		cmd := m.setFocus((m.focus + 1) % 3)
		return m, cmd
	case "shift+tab":
		cmd := m.setFocus((m.focus + 2) % 3)
		return m, cmd
	case "ctrl+s":
		return m.submit()
	}

	if m.focus == focusFiles {
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < m.files.Len()-1 {
				m.cursor++
			}
		case "a", "enter":
			m.state = statePicking
			return m, m.picker.Init()
		case "x", "d", "backspace":
			m.files.RemoveAt(m.cursor)
			if m.cursor >= m.files.Len() {
				m.cursor = m.files.Len() - 1
			}
			if m.cursor < 0 {
				m.cursor = 0
			}
		case "q":
			return m, tea.Quit
		}
		return m, nil
	}

	return m.updateFocused(msg)
}

// updateFocused forwards msg to whichever text control owns the focus, so
// typing and cursor blinks reach the right field.
func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case focusClient:
		m.client, cmd = m.client.Update(msg)
	case focusPrompt:
		m.prompt, cmd = m.prompt.Update(msg)
	}
	return m, cmd
}

func (m *Model) setFocus(f focusArea) tea.Cmd {
	m.focus = f
	m.client.Blur()
	m.prompt.Blur()
	switch f {
	case focusClient:
		return m.client.Focus()
	case focusPrompt:
		return m.prompt.Focus()
	}
	return nil
}

func (m *Model) showMessage(title, body string) {
	m.msgVisible = true
	m.msgTitle = title
	m.msgBody = body
}

func (m *Model) hideMessage() {
	m.msgVisible = false
}

// submit validates the form and, if it passes, fires the conversion request as
// a background command. Validation failures show a message and change nothing
// else; no request is sent.
func (m Model) submit() (tea.Model, tea.Cmd) {
	req := upload.Request{
		ClientName: m.client.Value(),
		Prompt:     m.prompt.Value(),
		Files:      m.files.Files(),
	}

	if err := req.Validate(); err != nil {
		switch {
		case errors.Is(err, upload.ErrNoFiles):
			m.showMessage("No Files Selected", "Add at least one PDF before converting.")
		case errors.Is(err, upload.ErrClientNameRequired):
			m.showMessage("Client Name Required", "Enter the client name before converting.")
		default:
			m.showMessage("Invalid Submission", err.Error())
		}
		return m, nil
	}

	m.state = stateSending
	conv := m.converter

	return m, tea.Batch(m.spin.Tick, func() tea.Msg {
		res, err := conv.Convert(context.Background(), req)
		if err != nil {
			return submitResultMsg{err: err}
		}
		// A summary failure is not a conversion failure; the workbook is
		// already saved.
		summary, _ := workbook.Summarize(res.Path)
		return submitResultMsg{result: res, summary: summary}
	})
}

// finishSubmission resets the form and reports the outcome. The reset runs on
// every exit path: success, server error, or transport failure.
func (m Model) finishSubmission(msg submitResultMsg) (tea.Model, tea.Cmd) {
	m.state = stateForm
	m.files.Clear()
	m.cursor = 0
	m.client.SetValue("")
	m.prompt.SetValue("")
	cmd := m.setFocus(focusClient)

	if msg.err != nil {
		var terr *upload.TransportError
		var serr *upload.ServerError
		switch {
		case errors.As(msg.err, &terr):
			m.showMessage("Network Error", terr.Error())
		case errors.As(msg.err, &serr):
			m.showMessage("Conversion Failed", serr.Error())
		default:
			m.showMessage("Conversion Failed", msg.err.Error())
		}
		return m, cmd
	}

	body := fmt.Sprintf("Saved %s (%d bytes).", msg.result.Path, msg.result.Size)
	if msg.summary != nil && len(msg.summary.Sheets) > 0 {
		body += "\n\n" + msg.summary.String()
	}
	m.showMessage("Conversion Complete", body)
	return m, cmd
}

func (m Model) View() string {
	if m.msgVisible {
		return m.viewMessage()
	}

	switch m.state {
	case stateForm:
		return m.viewForm()
	case statePicking:
		return m.viewPicker()
	case stateSending:
		return m.viewSending()
	}
	return ""
}

func (m Model) viewForm() string {
	var s strings.Builder

	s.WriteString(TitleStyle.Render("Financial Statement Converter"))
	s.WriteString("\n")
	s.WriteString(SubtitleStyle.Render("Upload PDF statements, download a consolidated Excel workbook"))
	s.WriteString("\n\n")

	s.WriteString(m.label("Client name", focusClient))
	s.WriteString("\n")
	s.WriteString(m.client.View())
	s.WriteString("\n\n")

	s.WriteString(m.label("Parser instructions (optional)", focusPrompt))
	s.WriteString("\n")
	s.WriteString(m.prompt.View())
	s.WriteString("\n\n")

	s.WriteString(m.label(fmt.Sprintf("Files (%d)", m.files.Len()), focusFiles))
	s.WriteString("\n")
	s.WriteString(m.viewFileList())
	s.WriteString("\n")

	if m.files.CanSubmit() {
		s.WriteString(SuccessStyle.Render("ctrl+s: convert"))
	} else {
		s.WriteString(DisabledStyle.Render("ctrl+s: convert (add files first)"))
	}
	s.WriteString("\n")
	s.WriteString(HelpStyle.Render("tab: next field • a/enter: add file • x: remove file • ctrl+c: quit"))

	return s.String()
}

// viewFileList renders one row per queued file in order, or a placeholder row
// when the list is empty.
func (m Model) viewFileList() string {
	files := m.files.Files()
	if len(files) == 0 {
		return PlaceholderStyle.Render("No files selected.")
	}

	var s strings.Builder
	for i, f := range files {
		cursor := " "
		if m.focus == focusFiles && m.cursor == i {
			cursor = ">"
		}
		line := fmt.Sprintf("%s %2d. %s", cursor, i+1, f.Name)
		if m.focus == focusFiles && m.cursor == i {
			line = SelectedStyle.Render(line)
		}
		s.WriteString(line)
		if i < len(files)-1 {
			s.WriteString("\n")
		}
	}
	return s.String()
}

func (m Model) viewPicker() string {
	var s strings.Builder

	s.WriteString(TitleStyle.Render("Add a PDF"))
	s.WriteString("\n")
	s.WriteString(SubtitleStyle.Render("Pick a financial statement to queue for conversion"))
	s.WriteString("\n\n")
	s.WriteString(m.picker.View())
	s.WriteString("\n\n")
	s.WriteString(HelpStyle.Render("esc: back to form"))

	return s.String()
}

func (m Model) viewSending() string {
	var s strings.Builder

	s.WriteString(TitleStyle.Render("Converting..."))
	s.WriteString("\n\n")
	s.WriteString(fmt.Sprintf("%s Uploading %d file(s) and waiting for the backend", m.spin.View(), m.files.Len()))
	s.WriteString("\n\n")
	s.WriteString(HelpStyle.Render("This can take a few minutes for scanned statements"))

	return BoxStyle.Render(s.String())
}

func (m Model) viewMessage() string {
	var s strings.Builder

	title := m.msgTitle
	switch title {
	case "Conversion Complete":
		s.WriteString(SuccessStyle.Render("✓ " + title))
	case "Network Error", "Conversion Failed":
		s.WriteString(ErrorStyle.Render("✗ " + title))
	default:
		s.WriteString(TitleStyle.Render(title))
	}
	s.WriteString("\n\n")
	s.WriteString(m.msgBody)
	s.WriteString("\n\n")
	s.WriteString(HelpStyle.Render("Press enter to continue"))

	box := BoxStyle.Render(s.String())
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
	}
	return box
}

func (m Model) label(text string, f focusArea) string {
	if m.focus == f {
		return FocusedLabelStyle.Render("› " + text)
	}
	return LabelStyle.Render("  " + text)
}
