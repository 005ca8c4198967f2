// Package picker runs the small interactive dialogs doh needs: choosing
// where to save a download, choosing a file to upload and asking for a
// line of text. Each dialog is a bubbletea program that runs to completion
// before returning. Cancelling is not an error.
package picker

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
	hintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// Picker runs dialogs on a terminal
type Picker struct {
	in  io.Reader
	out io.Writer
	// dir is where dialogs start, the working directory when empty
	dir string
}

// New creates a picker reading keys from in and drawing on out
func New(in io.Reader, out io.Writer) *Picker {
	return &Picker{in: in, out: out}
}

// WithDir returns a copy of p whose dialogs start in dir
func (p *Picker) WithDir(dir string) *Picker {
	c := *p
	c.dir = dir
	return &c
}

func (p *Picker) startDir() string {
	if p.dir != "" {
		return p.dir
	}
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}

func (p *Picker) run(model tea.Model) (tea.Model, error) {
	program := tea.NewProgram(model, tea.WithInput(p.in), tea.WithOutput(p.out))
	return program.Run()
}

// Save asks where to store a file. The field starts with suggested in the
// start directory; ext (without dot) is appended when the chosen name has
// no extension.
func (p *Picker) Save(suggested, ext string) (string, bool, error) {
	final, err := p.run(newSaveModel(p.startDir(), suggested, ext))
	if err != nil {
		return "", false, fmt.Errorf("save dialog: %w", err)
	}
	m := final.(textModel)
	if !m.submitted {
		return "", false, nil
	}
	return m.result(), true, nil
}

// Open asks for an existing local file
func (p *Picker) Open() (string, bool, error) {
	final, err := p.run(newOpenModel(p.startDir()))
	if err != nil {
		return "", false, fmt.Errorf("open dialog: %w", err)
	}
	m := final.(openModel)
	if m.selected == "" {
		return "", false, nil
	}
	return m.selected, true, nil
}

// Prompt asks for a single line of text
func (p *Picker) Prompt(title string) (string, bool, error) {
	final, err := p.run(newPromptModel(title))
	if err != nil {
		return "", false, fmt.Errorf("prompt: %w", err)
	}
	m := final.(textModel)
	if !m.submitted {
		return "", false, nil
	}
	return m.result(), true, nil
}

// textModel is a one line input used by Save and Prompt
type textModel struct {
	title     string
	input     textinput.Model
	ext       string
	requireOK func(string) error
	err       error
	submitted bool
	done      bool
}

func newTextInput(value string) textinput.Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	ti.CharLimit = 4096
	ti.Width = 72
	ti.SetValue(value)
	ti.CursorEnd()
	ti.Focus()
	return ti
}

func newSaveModel(dir, suggested, ext string) textModel {
	return textModel{
		title: "Save as",
		input: newTextInput(filepath.Join(dir, suggested)),
		ext:   ext,
		requireOK: func(path string) error {
			if info, err := os.Stat(path); err == nil && info.IsDir() {
				return fmt.Errorf("%s is a directory", path)
			}
			parent := filepath.Dir(path)
			if info, err := os.Stat(parent); err != nil || !info.IsDir() {
				return fmt.Errorf("directory %s does not exist", parent)
			}
			return nil
		},
	}
}

func newPromptModel(title string) textModel {
	return textModel{title: title, input: newTextInput("")}
}

func (m textModel) result() string {
	value := strings.TrimSpace(m.input.Value())
	if m.ext != "" && filepath.Ext(value) == "" {
		value += "." + m.ext
	}
	return value
}

func (m textModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m textModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEsc, tea.KeyCtrlC:
			m.done = true
			return m, tea.Quit
		case tea.KeyEnter:
			if strings.TrimSpace(m.input.Value()) == "" {
				return m, nil
			}
			if m.requireOK != nil {
				if err := m.requireOK(m.result()); err != nil {
					m.err = err
					return m, nil
				}
			}
			m.submitted = true
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.err = nil
	return m, cmd
}

func (m textModel) View() string {
	if m.done {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(errorStyle.Render(m.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(hintStyle.Render("enter: confirm • esc: cancel"))
	b.WriteString("\n")
	return b.String()
}

// openModel browses the local filesystem for a file to upload
type openModel struct {
	picker   filepicker.Model
	selected string
	done     bool
}

func newOpenModel(dir string) openModel {
	fp := filepicker.New()
	fp.CurrentDirectory = dir
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	return openModel{picker: fp}
}

func (m openModel) Init() tea.Cmd {
	return m.picker.Init()
}

func (m openModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "q", "ctrl+c":
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	if ok, path := m.picker.DidSelectFile(msg); ok {
		m.selected = path
		m.done = true
		return m, tea.Quit
	}

	return m, cmd
}

func (m openModel) View() string {
	if m.done {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render("Upload file"))
	b.WriteString(" ")
	b.WriteString(hintStyle.Render(m.picker.CurrentDirectory))
	b.WriteString("\n")
	b.WriteString(m.picker.View())
	b.WriteString("\n")
	b.WriteString(hintStyle.Render("enter: select • backspace: up • q: cancel"))
	b.WriteString("\n")
	return b.String()
}
