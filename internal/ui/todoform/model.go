package todoform

import (
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/czhang/todobox/internal/model"
)

// SubmittedMsg is dispatched when the form completes. Todo.ID is zero for
// a newly created todo.
type SubmittedMsg struct {
	Todo model.Todo
}

// CancelMsg is dispatched when the user cancels the form.
type CancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	title       string
	description string
	priority    model.Priority
	reminder    string
	boxID       string
}

// Model is the Bubble Tea model for the todo create/edit form.
type Model struct {
	form     *huh.Form
	fb       *formBindings
	editMode bool
	editing  model.Todo
	boxes    []model.Box
	width    int
	height   int
}

// New creates a new todo form model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{priority: model.PriorityMedium},
		width:  width,
		height: height,
	}
}

// SetSize updates the render dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetBoxes sets the available boxes for the owner selector.
func (m *Model) SetBoxes(boxes []model.Box) {
	m.boxes = boxes
}

// StartCreate initializes the form for creating a new todo in the given
// box (zero means the first available box).
func (m *Model) StartCreate(boxID int64) tea.Cmd {
	m.editMode = false
	m.editing = model.Todo{}
	m.fb.title = ""
	m.fb.description = ""
	m.fb.priority = model.PriorityMedium
	m.fb.reminder = ""
	m.fb.boxID = ""
	if boxID != 0 {
		m.fb.boxID = strconv.FormatInt(boxID, 10)
	} else if len(m.boxes) > 0 {
		m.fb.boxID = strconv.FormatInt(m.boxes[0].ID, 10)
	}
	m.form = m.buildForm()
	return m.form.Init()
}

// StartEdit initializes the form for editing an existing todo.
func (m *Model) StartEdit(todo model.Todo) tea.Cmd {
	m.editMode = true
	m.editing = todo
	m.fb.title = todo.Title
	m.fb.description = todo.Description
	m.fb.priority = todo.Priority
	m.fb.reminder = ""
	if todo.Reminder != nil {
		m.fb.reminder = todo.Reminder.String()
	}
	m.fb.boxID = strconv.FormatInt(todo.BoxID, 10)
	m.form = m.buildForm()
	return m.form.Init()
}

// buildForm constructs the huh form for the current bindings.
func (m *Model) buildForm() *huh.Form {
	boxOptions := make([]huh.Option[string], 0, len(m.boxes))
	for _, b := range m.boxes {
		boxOptions = append(boxOptions,
			huh.NewOption(b.Title, strconv.FormatInt(b.ID, 10)))
	}

	return huh.NewForm(
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
			huh.NewText().
				Title("Description").
				Description("Each non-blank line becomes a sub-task").
				Value(&m.fb.description),
			huh.NewSelect[model.Priority]().
				Title("Priority").
				Options(
					huh.NewOption(model.PriorityHigh.Display(), model.PriorityHigh),
					huh.NewOption(model.PriorityMedium.Display(), model.PriorityMedium),
					huh.NewOption(model.PriorityLow.Display(), model.PriorityLow),
				).
				Value(&m.fb.priority),
			huh.NewInput().
				Title("Reminder (HH:MM, optional)").
				Value(&m.fb.reminder).
				Validate(func(s string) error {
					if s == "" {
						return nil
					}
					_, err := model.ParseTimeOfDay(s)
					return err
				}),
			huh.NewSelect[string]().
				Title("Box").
				Options(boxOptions...).
				Value(&m.fb.boxID),
		),
	).WithWidth(m.width).WithHeight(m.height).WithShowHelp(true)
}

// Init is a no-op; the form is initialized by StartCreate/StartEdit.
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
		todo := m.buildTodo()
		m.form = nil
		return m, func() tea.Msg { return SubmittedMsg{Todo: todo} }
	}
	return m, cmd
}

// buildTodo assembles the todo from the completed form bindings.
func (m Model) buildTodo() model.Todo {
	todo := m.editing
	todo.Title = m.fb.title
	todo.Description = m.fb.description
	todo.Priority = m.fb.priority

	todo.Reminder = nil
	if m.fb.reminder != "" {
		if t, err := model.ParseTimeOfDay(m.fb.reminder); err == nil {
			todo.Reminder = &t
		}
	}

	if id, err := strconv.ParseInt(m.fb.boxID, 10, 64); err == nil {
		todo.BoxID = id
	}
	if !m.editMode {
		todo.Status = model.StatusPending
	}
	return todo
}

// View renders the form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}
	return m.form.View()
}
