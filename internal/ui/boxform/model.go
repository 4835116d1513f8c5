package boxform

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/czhang/todobox/internal/model"
)

// SubmittedMsg is dispatched when the form completes.
type SubmittedMsg struct {
	Box model.Box
}

// CancelMsg is dispatched when the user cancels the form.
type CancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	title string
	color string
}

// Model is the Bubble Tea model for the box create form.
type Model struct {
	form   *huh.Form
	fb     *formBindings
	width  int
	height int
}

// New creates a new box form model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{},
		width:  width,
		height: height,
	}
}

// SetSize updates the render dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Start initializes the form for creating a new box.
func (m *Model) Start() tea.Cmd {
	m.fb.title = ""
	m.fb.color = "#5B9BD5"
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&m.fb.title).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("title must not be empty")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Color").
				Options(
					huh.NewOption("Blue", "#5B9BD5"),
					huh.NewOption("Orange", "#FFA94D"),
					huh.NewOption("Green", "#6BCB77"),
					huh.NewOption("Red", "#FF6B6B"),
					huh.NewOption("Purple", "#9B5DE5"),
				).
				Value(&m.fb.color),
		),
	).WithWidth(m.width).WithHeight(m.height).WithShowHelp(true)
	return m.form.Init()
}

// Init is a no-op; the form is initialized by Start.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update advances the form and emits SubmittedMsg or CancelMsg when it
// finishes.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "esc" {
		m.form = nil
		return m, func() tea.Msg { return CancelMsg{} }
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		box := model.Box{Title: m.fb.title, Color: m.fb.color}
		m.form = nil
		return m, func() tea.Msg { return SubmittedMsg{Box: box} }
	}
	return m, cmd
}

// View renders the form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}
	return m.form.View()
}
