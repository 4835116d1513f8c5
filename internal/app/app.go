// Package app wires the view models and Bubble Tea views into the root
// application model and routes messages between them.
package app

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/czhang/todobox/internal/keys"
	"github.com/czhang/todobox/internal/remind"
	"github.com/czhang/todobox/internal/ui"
	"github.com/czhang/todobox/internal/ui/boxform"
	"github.com/czhang/todobox/internal/ui/boxlist"
	"github.com/czhang/todobox/internal/ui/calendar"
	"github.com/czhang/todobox/internal/ui/todoform"
	"github.com/czhang/todobox/internal/viewmodel"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewList ViewState = iota
	ViewTodoCreate
	ViewTodoEdit
	ViewBoxCreate
	ViewSearch
	ViewHelp
)

// Model is the root Bubble Tea model that manages view routing, layout,
// and the command/observe loop against the view model.
type Model struct {
	currentView  ViewState
	previousView ViewState
	layout       ui.Layout
	vm           *viewmodel.ViewModel
	sched        *remind.Scheduler
	keys         *keys.KeyMap

	boxList     boxlist.Model
	cal         calendar.Model
	todoForm    todoform.Model
	boxForm     boxform.Model
	searchInput textinput.Model

	snapshot viewmodel.Snapshot
	ready    bool
	flash    string
	errMsg   string
}

// New creates the root application model over an initialized view model
// and reminder scheduler.
func New(vm *viewmodel.ViewModel, sched *remind.Scheduler) Model {
	search := textinput.New()
	search.Placeholder = "search todos by title"
	search.Prompt = "/ "

	return Model{
		currentView: ViewList,
		vm:          vm,
		sched:       sched,
		keys:        keys.DefaultKeyMap(),
		boxList:     boxlist.New(80, 24),
		cal:         calendar.New(time.Now(), 80),
		todoForm:    todoform.New(80, 24),
		boxForm:     boxform.New(80, 24),
		searchInput: search,
	}
}

// Init starts the snapshot and reminder subscription loops.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.waitForSnapshot(),
		m.waitForReminder(),
	)
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		contentWidth := m.layout.ContentWidth()
		contentHeight := m.layout.ContentHeight()
		m.boxList.SetSize(contentWidth, contentHeight)
		m.cal.SetWidth(contentWidth)
		m.todoForm.SetSize(contentWidth, contentHeight)
		m.boxForm.SetSize(contentWidth, contentHeight)
		m.searchInput.Width = contentWidth - 4
		// Forward to active view so huh forms can calculate their layout.
		return m.updateActiveView(msg)

	case snapshotMsg:
		m.snapshot = viewmodel.Snapshot(msg)
		m.boxList.SetBoxes(m.snapshot.BoxesWithTodos)
		m.cal.SetSelectedDate(m.snapshot.SelectedDate)
		m.cal.SetActivities(m.snapshot.Activity)
		return m, m.waitForSnapshot()

	case reminderMsg:
		m.flash = fmt.Sprintf("⏰ %s", msg.Title)
		return m, tea.Batch(
			m.waitForReminder(),
			clearFlashAfter(10*time.Second),
		)

	case clearFlashMsg:
		m.flash = ""
		return m, nil

	case commandDoneMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
		} else {
			m.errMsg = ""
		}
		return m, nil

	case todoform.SubmittedMsg:
		m.currentView = ViewList
		return m, m.saveTodo(msg.Todo)

	case todoform.CancelMsg:
		m.currentView = ViewList
		return m, nil

	case boxform.SubmittedMsg:
		m.currentView = ViewList
		return m, m.saveBox(msg.Box)

	case boxform.CancelMsg:
		m.currentView = ViewList
		return m, nil

	case tea.KeyMsg:
		if cmd, handled := m.handleGlobalKey(msg); handled {
			return m, cmd
		}
		if m.currentView == ViewList {
			return m.handleListKey(msg)
		}
		if m.currentView == ViewSearch {
			return m.handleSearchKey(msg)
		}
	}

	return m.updateActiveView(msg)
}

// handleGlobalKey handles keys that apply regardless of the active view.
// Forms get their own esc handling, so only quit and help live here.
func (m *Model) handleGlobalKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case msg.String() == "ctrl+c":
		m.sched.Stop()
		return tea.Quit, true

	case key.Matches(msg, m.keys.Quit) && m.currentView == ViewList:
		m.sched.Stop()
		return tea.Quit, true

	case key.Matches(msg, m.keys.Help) && m.currentView != ViewSearch:
		if m.currentView == ViewHelp {
			m.currentView = m.previousView
		} else {
			m.previousView = m.currentView
			m.currentView = ViewHelp
		}
		return nil, true

	case key.Matches(msg, m.keys.Back) && m.currentView == ViewHelp:
		m.currentView = m.previousView
		return nil, true
	}
	return nil, false
}

// handleListKey handles key presses while the box list is active.
func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.boxList.CursorUp()
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.boxList.CursorDown()
		return m, nil

	case key.Matches(msg, m.keys.PrevDay):
		return m, m.setDate(m.snapshot.SelectedDate.AddDate(0, 0, -1))

	case key.Matches(msg, m.keys.NextDay):
		return m, m.setDate(m.snapshot.SelectedDate.AddDate(0, 0, 1))

	case key.Matches(msg, m.keys.Today):
		return m, m.setDate(time.Now())

	case key.Matches(msg, m.keys.ToggleCalendar):
		expanded := !m.cal.Expanded()
		m.cal.SetExpanded(expanded)
		return m, m.setCalendarExpanded(expanded)

	case key.Matches(msg, m.keys.Toggle):
		todo, subTaskIndex, ok := m.boxList.Selected()
		if !ok {
			return m, nil
		}
		if subTaskIndex < 0 {
			return m, m.toggleTodo(todo)
		}
		return m, m.toggleSubTask(todo, subTaskIndex)

	case key.Matches(msg, m.keys.NewTodo):
		m.previousView = m.currentView
		m.currentView = ViewTodoCreate
		m.todoForm.SetBoxes(m.snapshot.Boxes)
		boxID := int64(0)
		if m.snapshot.SelectedBoxID != nil {
			boxID = *m.snapshot.SelectedBoxID
		}
		return m, m.todoForm.StartCreate(boxID)

	case key.Matches(msg, m.keys.NewBox):
		m.previousView = m.currentView
		m.currentView = ViewBoxCreate
		return m, m.boxForm.Start()

	case key.Matches(msg, m.keys.Edit):
		todo, _, ok := m.boxList.Selected()
		if !ok {
			return m, nil
		}
		m.previousView = m.currentView
		m.currentView = ViewTodoEdit
		m.todoForm.SetBoxes(m.snapshot.Boxes)
		return m, m.todoForm.StartEdit(todo)

	case key.Matches(msg, m.keys.Delete):
		todo, _, ok := m.boxList.Selected()
		if !ok {
			return m, nil
		}
		return m, m.deleteTodo(todo.ID)

	case key.Matches(msg, m.keys.SoftDelete):
		todo, _, ok := m.boxList.Selected()
		if !ok {
			return m, nil
		}
		return m, m.softDeleteTodo(todo.ID)

	case key.Matches(msg, m.keys.NextBoxFilter):
		return m, m.cycleBoxFilter()

	case key.Matches(msg, m.keys.Search):
		m.previousView = m.currentView
		m.currentView = ViewSearch
		m.searchInput.SetValue(m.snapshot.SearchQuery)
		return m, m.searchInput.Focus()

	case key.Matches(msg, m.keys.CycleSort):
		m.boxList.CycleSort()
		return m, nil
	}
	return m, nil
}

// handleSearchKey routes keys to the search input, pushing every edit to
// the view model so the list filters as the user types.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.currentView = ViewList
		m.searchInput.Blur()
		m.searchInput.SetValue("")
		m.vm.SetSearchQuery("")
		return m, nil

	case "enter":
		m.currentView = ViewList
		m.searchInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.vm.SetSearchQuery(m.searchInput.Value())
	return m, cmd
}

// cycleBoxFilter advances all boxes -> box 1 -> box 2 -> ... -> all.
func (m Model) cycleBoxFilter() tea.Cmd {
	boxes := m.snapshot.Boxes
	if len(boxes) == 0 {
		return nil
	}

	var next *int64
	if m.snapshot.SelectedBoxID == nil {
		id := boxes[0].ID
		next = &id
	} else {
		for i, b := range boxes {
			if b.ID == *m.snapshot.SelectedBoxID {
				if i+1 < len(boxes) {
					id := boxes[i+1].ID
					next = &id
				}
				break
			}
		}
	}
	return m.selectBox(next)
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewTodoCreate, ViewTodoEdit:
		m.todoForm, cmd = m.todoForm.Update(msg)
	case ViewBoxCreate:
		m.boxForm, cmd = m.boxForm.Update(msg)
	case ViewSearch:
		m.searchInput, cmd = m.searchInput.Update(msg)
	}

	return m, cmd
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.RenderHeader("Todo Box", m.headerInfo())
	content := m.renderContent()
	statusBar := m.layout.RenderStatusBar(m.statusLine())

	return m.layout.RenderWithFrame(header, content, statusBar)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewTodoCreate, ViewTodoEdit:
		return m.todoForm.View()
	case ViewBoxCreate:
		return m.boxForm.View()
	case ViewHelp:
		return m.helpView()
	case ViewSearch:
		return m.searchInput.View() + "\n\n" + m.listView()
	default:
		return m.listView()
	}
}

// listView stacks the calendar over the box list.
func (m Model) listView() string {
	return m.cal.View() + "\n\n" + m.boxList.View()
}

// headerInfo summarizes the selected date, the active box filter, and
// the all-time done counter.
func (m Model) headerInfo() string {
	info := m.snapshot.SelectedDate.Format("Mon, Jan 2 2006")
	if m.snapshot.SelectedBoxID != nil {
		for _, b := range m.snapshot.Boxes {
			if b.ID == *m.snapshot.SelectedBoxID {
				info = b.Title + " | " + info
				break
			}
		}
	}
	return fmt.Sprintf("%s | %d done all-time", info, m.snapshot.TotalDoneCount)
}

// statusLine returns the status bar text: a reminder flash or error when
// present, otherwise keyboard hints for the active view.
func (m Model) statusLine() string {
	if m.errMsg != "" {
		return m.errMsg
	}
	if m.flash != "" && m.currentView == ViewList {
		return m.flash
	}

	switch m.currentView {
	case ViewTodoCreate, ViewTodoEdit, ViewBoxCreate:
		return "enter submit | esc cancel"
	case ViewSearch:
		return "type to filter | enter keep | esc clear"
	case ViewHelp:
		return "? close help"
	default:
		return "q quit | ? help | n new todo | N new box | / search | tab box filter"
	}
}

// helpView lists every keybinding with its description.
func (m Model) helpView() string {
	bindings := []key.Binding{
		m.keys.Up, m.keys.Down,
		m.keys.PrevDay, m.keys.NextDay, m.keys.Today, m.keys.ToggleCalendar,
		m.keys.Toggle, m.keys.NewTodo, m.keys.NewBox, m.keys.Edit,
		m.keys.SoftDelete, m.keys.Delete,
		m.keys.NextBoxFilter, m.keys.Search, m.keys.CycleSort,
		m.keys.Back, m.keys.Quit, m.keys.Help,
	}

	out := "Keybindings\n\n"
	for _, b := range bindings {
		h := b.Help()
		out += fmt.Sprintf("  %-10s %s\n", h.Key, h.Desc)
	}
	return out
}
