package tui

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	textinput "github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/offbeam-labs/almanac/pkg/calendar"
)

var (
	tagChoices = []calendar.Tag{
		calendar.TagPersonal,
		calendar.TagBirthday,
		calendar.TagWork,
		calendar.TagReminder,
		calendar.TagFun,
	}
	recurrenceChoices = []calendar.Recurrence{
		calendar.RecurNone,
		calendar.RecurDaily,
		calendar.RecurWeekly,
		calendar.RecurMonthly,
		calendar.RecurYearly,
	}
)

type model struct {
	events []calendar.Event
	marked map[string]struct{}

	selectedDay time.Time // day highlighted in the calendar grid

	columnFocus int // 0 = calendar grid, 1 = day events
	width       int // Current terminal width (for layout)
	height      int // Current terminal height
	err         error

	db         *sql.DB
	dbFilename string

	quitting bool

	eventCursor int

	creating      bool
	creatingStep  int // 0 = name, 1 = description, 2 = tag, 3 = recurrence
	creatingError string
	nameInput     textinput.Model
	descInput     textinput.Model
	tagIdx        int
	recurrenceIdx int

	deleting         bool
	deleteConfirmIdx int // 0 = "Yes" selected, 1 = "No"
}

// Initialize TUI model
func initModel(db *sql.DB) model {
	// Fetch database file path with name
	_, file := getDbPragmaList(db)

	// Initialize text input fields for the new event form
	name := textinput.New()
	name.Placeholder = "Event name"
	name.Focus() // focus name field initially
	name.CharLimit = 256

	desc := textinput.New()
	desc.Placeholder = "Description (optional)"
	desc.CharLimit = 512

	today := time.Now()
	return model{
		events: []calendar.Event{},
		marked: map[string]struct{}{},

		selectedDay: time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location()),

		columnFocus: 0,
		width:       0,
		height:      0,

		db:         db,
		dbFilename: filepath.Base(file),

		eventCursor: 0,
		nameInput:   name,
		descInput:   desc,
	}
}

// Execute commands concurrently with no ordering guarantees during initialization
func (m model) Init() tea.Cmd {
	return loadEvents(m.db)
}

// dayEvents returns the events occurring on the highlighted day.
func (m model) dayEvents() []calendar.Event {
	return calendar.EventsOn(m.selectedDay, m.events)
}

func (m *model) refreshMarkers() {
	m.marked = calendar.MarkedDays(m.events, calendar.DefaultWindow(m.selectedDay))
}

func (m *model) moveDay(days int) {
	m.selectedDay = m.selectedDay.AddDate(0, 0, days)
	m.eventCursor = 0
	m.refreshMarkers()
}

func (m *model) moveMonth(months int) {
	m.selectedDay = m.selectedDay.AddDate(0, months, 0)
	m.eventCursor = 0
	m.refreshMarkers()
}

// Processes events like window resize, errors, loaded data, and key presses
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// Save the new window size in the model for responsive layout
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case error:
		m.err = msg
		return m, nil

	case eventsLoadedMsg:
		// When events are loaded from DB, store them and refresh markers
		m.events = msg
		m.eventCursor = 0
		m.refreshMarkers()
		return m, nil

	case conflictMsg:
		// A rejected save keeps the form open with the reason shown
		m.creating = true
		m.creatingError = msg.reason
		return m, nil

	// Handle key presses for navigation and input
	case tea.KeyMsg:
		if m.creating {
			// Creating New Event Mode
			switch msg.Type {
			case tea.KeyEnter:
				switch m.creatingStep {
				case 0:
					// Validate that the event name is not empty
					if m.nameInput.Value() == "" {
						m.creatingError = "Event name cannot be empty"
						return m, nil
					}
					m.creatingError = ""
					m.creatingStep = 1
					m.nameInput.Blur()
					m.descInput.Focus()
				case 1:
					m.creatingStep = 2
					m.descInput.Blur()
				case 2:
					m.creatingStep = 3
				default:
					// Submit the form; occurrences are materialized on save
					ev := calendar.Event{
						Name:        m.nameInput.Value(),
						Date:        m.selectedDay,
						Description: m.descInput.Value(),
						Tag:         tagChoices[m.tagIdx],
						Recurrence:  recurrenceChoices[m.recurrenceIdx],
					}
					m.creating = false
					m.resetForm()
					return m, createEvent(m.db, ev)
				}
				return m, nil

			case tea.KeyEsc:
				// Cancel event creation and reset form inputs
				m.creating = false
				m.resetForm()
				return m, nil
			}

			// Tag and recurrence steps are pickers driven by left/right
			if m.creatingStep >= 2 {
				switch msg.String() {
				case "left", "h":
					if m.creatingStep == 2 && m.tagIdx > 0 {
						m.tagIdx--
					}
					if m.creatingStep == 3 && m.recurrenceIdx > 0 {
						m.recurrenceIdx--
					}
				case "right", "l":
					if m.creatingStep == 2 && m.tagIdx < len(tagChoices)-1 {
						m.tagIdx++
					}
					if m.creatingStep == 3 && m.recurrenceIdx < len(recurrenceChoices)-1 {
						m.recurrenceIdx++
					}
				}
				return m, nil
			}

			// Route character input to the focused text field
			var cmd tea.Cmd
			if m.creatingStep == 0 {
				m.nameInput, cmd = m.nameInput.Update(msg)
			} else {
				m.descInput, cmd = m.descInput.Update(msg)
			}
			return m, cmd
		}

		if m.deleting {
			// Deleting Event Mode
			switch msg.String() {
			case "up", "k":
				m.deleteConfirmIdx = 0

			case "down", "j":
				m.deleteConfirmIdx = 1

			case "enter":
				if m.deleteConfirmIdx == 0 {
					// Confirmed deletion of selected event
					day := m.dayEvents()
					if m.eventCursor < len(day) {
						id := day[m.eventCursor].ID
						m.deleting = false
						m.eventCursor = 0
						return m, deleteEvent(m.db, id)
					}
				}
				// Chosen No, cancel deletion
				m.deleting = false
				return m, nil

			case "esc":
				// Cancel deletion on Escape
				m.deleting = false
				return m, nil
			}
			return m, nil
		}

		// Root Navigation Mode
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			// Exit alt screen before quitting so the goodbye message displays
			return m, tea.Sequence(tea.ExitAltScreen, tea.Quit)

		case "up", "k":
			if m.columnFocus == 0 {
				m.moveDay(-7)
			} else if m.eventCursor > 0 {
				m.eventCursor--
			}

		case "down", "j":
			if m.columnFocus == 0 {
				m.moveDay(7)
			} else if m.eventCursor < len(m.dayEvents())-1 {
				m.eventCursor++
			}

		case "left", "h":
			if m.columnFocus == 0 {
				m.moveDay(-1)
			}

		case "right", "l":
			if m.columnFocus == 0 {
				m.moveDay(1)
			}

		case "[":
			m.moveMonth(-1)

		case "]":
			m.moveMonth(1)

		case "t":
			// Jump back to today
			today := time.Now()
			m.selectedDay = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
			m.eventCursor = 0
			m.refreshMarkers()

		case "tab":
			// Toggle focus between the calendar grid and the day's events
			if m.columnFocus == 0 && len(m.dayEvents()) > 0 {
				m.columnFocus = 1
				m.eventCursor = 0
			} else {
				m.columnFocus = 0
			}

		case "n":
			m.resetForm()
			m.creating = true

		case "d":
			if m.columnFocus == 1 && len(m.dayEvents()) > 0 {
				m.deleteConfirmIdx = 1
				m.deleting = true
			}
			return m, nil
		}
	}

	return m, nil
}

func (m *model) resetForm() {
	m.creatingStep = 0
	m.creatingError = ""
	m.nameInput.Reset()
	m.descInput.Reset()
	m.descInput.Blur()
	m.nameInput.Focus()
	m.tagIdx = 0
	m.recurrenceIdx = 0
}

// renderMonth draws the calendar grid for the month of the selected day.
func (m model) renderMonth() string {
	var b strings.Builder

	first := time.Date(m.selectedDay.Year(), m.selectedDay.Month(), 1, 0, 0, 0, 0, m.selectedDay.Location())
	b.WriteString(subtitleStyle.Render(first.Format("January 2006")))
	b.WriteString("\n\n")
	b.WriteString("Su Mo Tu We Th Fr Sa\n")

	// Leading blanks up to the first weekday
	b.WriteString(strings.Repeat("   ", int(first.Weekday())))

	daysInMonth := first.AddDate(0, 1, -1).Day()
	for dayNum := 1; dayNum <= daysInMonth; dayNum++ {
		day := time.Date(first.Year(), first.Month(), dayNum, 0, 0, 0, 0, first.Location())
		cell := fmt.Sprintf("%2d", dayNum)

		_, isMarked := m.marked[calendar.DayKey(day)]
		switch {
		case calendar.SameDay(day, m.selectedDay):
			cell = selectedStyle.Render(cell)
		case isMarked:
			cell = markedDayStyle.Render(cell)
		default:
			cell = inactiveStyle.Render(cell)
		}

		b.WriteString(cell)
		if day.Weekday() == time.Saturday {
			b.WriteString("\n")
		} else {
			b.WriteString(" ")
		}
	}
	b.WriteString("\n")
	return b.String()
}

// Assembles the UI string for each frame
func (m model) View() string {
	if m.quitting {
		return "Closing the almanac. Your events are saved.\n"
	}
	if m.err != nil {
		return fmt.Sprintf("Error: %v\n", m.err)
	}

	titleText := "Almanac - personal calendar"
	// Render the title bar (full width)
	titleBar := titleStyle.Width(m.width).Render(titleText)

	// Calculate column widths (left ~35%, middle ~30%, right ~35%)
	leftWidth := (m.width * 35) / 100
	middleWidth := (m.width * 30) / 100
	rightWidth := m.width - (leftWidth + middleWidth)

	bordersAndPaddingWidth := 4

	// Update input widths to match right pane
	m.nameInput.Width = rightWidth - bordersAndPaddingWidth
	m.descInput.Width = rightWidth - bordersAndPaddingWidth

	// Left column: month grid and info
	var leftBuilder, infoBuilder strings.Builder
	leftBuilder.WriteString(m.renderMonth())

	var databaseStatus int
	if m.dbFilename != "" {
		databaseStatus = 1
	}
	infoBuilder.WriteString(fmt.Sprintf("Events stored: %v\nDatabase file: %v\n",
		TextStatusColorize(fmt.Sprintf("%d", len(m.events)), 1),
		TextStatusColorize(m.dbFilename, databaseStatus)))

	quarterHeight := (m.height - bordersAndPaddingWidth) / 4

	gridPanelStyle := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, true, true, false).
		BorderForeground(lipgloss.Color(colorGray)).
		Padding(0, 2)
	gridPanel := gridPanelStyle.Width(leftWidth).Height(quarterHeight * 3).
		Render(leftBuilder.String())

	infoPanelStyle := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, true, false, false).
		BorderForeground(lipgloss.Color(colorGray)).
		Padding(1, 2)
	infoPanel := infoPanelStyle.Width(leftWidth).Height(quarterHeight).
		Render(infoBuilder.String())

	leftPanel := lipgloss.JoinVertical(lipgloss.Left, gridPanel, infoPanel)

	// Middle column: events on the selected day
	var middleBuilder strings.Builder
	middleBuilder.WriteString(subtitleStyle.Width(middleWidth - bordersAndPaddingWidth).
		Render("  " + m.selectedDay.Format("Mon, Jan 2")))
	middleBuilder.WriteString("\n\n")

	day := m.dayEvents()
	if len(day) == 0 {
		middleBuilder.WriteString("  No events. Press 'n' to create one.\n")
	} else {
		for i, ev := range day {
			pointer := "  "
			itemStyle := inactiveStyle
			if i == m.eventCursor && m.columnFocus == 1 {
				pointer = "> "
				itemStyle = selectedStyle
			}

			// Calculate available width for the name (panel width - pointer - padding - border)
			availableWidth := middleWidth - len(pointer) - 4 - 1
			name := ev.Name
			if len(name) > availableWidth && availableWidth > 3 {
				name = fmt.Sprintf("%s..", name[:availableWidth-2])
			}
			name = lipgloss.NewStyle().MaxWidth(availableWidth).Render(name)

			middleBuilder.WriteString(pointer + itemStyle.Render(name) + "\n")
		}
	}

	// Right column: event details, the create form, or the delete prompt
	var rightBuilder strings.Builder

	rightSubtitle := "Event"
	if m.creating {
		rightSubtitle = "Create New Event"
	}
	if m.deleting {
		rightSubtitle = "Delete Event"
	}
	rightBuilder.WriteString(subtitleStyle.Width(rightWidth - bordersAndPaddingWidth).Render(rightSubtitle))
	rightBuilder.WriteString("\n\n")

	switch {
	case m.creating:
		rightBuilder.WriteString("Date: " + m.selectedDay.Format(calendar.DateLayout) + "\n")
		rightBuilder.WriteString("Name: " + m.nameInput.View() + "\n")
		rightBuilder.WriteString("Description: " + m.descInput.View() + "\n")
		rightBuilder.WriteString("Tag: " + renderPicker(tagNames(), m.tagIdx, m.creatingStep == 2) + "\n")
		rightBuilder.WriteString("Repeats: " + renderPicker(recurrenceNames(), m.recurrenceIdx, m.creatingStep == 3) + "\n\n")
		rightBuilder.WriteString("(enter to continue/submit, esc to cancel)")

		if m.creatingError != "" {
			rightBuilder.WriteString("\n\n" + errorTextStyle.Render(m.creatingError) + "\n")
		}

	case m.deleting && m.eventCursor < len(day):
		rightBuilder.WriteString("Name: " + errorTextStyle.Render(day[m.eventCursor].Name) + "\n\n")
		yesOpt, noOpt := "Yes", "No"
		if m.deleteConfirmIdx == 0 {
			yesOpt = dangerSelectedStyle.Render(" >" + yesOpt)
			noOpt = inactiveStyle.Render("  " + noOpt)
		} else {
			yesOpt = inactiveStyle.Render("  " + yesOpt)
			noOpt = selectedStyle.Render(" >" + noOpt)
		}
		rightBuilder.WriteString(fmt.Sprintf("%s\n%s\n\n", yesOpt, noOpt))
		rightBuilder.WriteString("(enter to confirm, esc to cancel, up/down to switch)")

	case m.columnFocus == 1 && m.eventCursor < len(day):
		ev := day[m.eventCursor]
		rightBuilder.WriteString(labelStyleRender("Name", ev.Name))
		rightBuilder.WriteString(labelStyleRender("Date", ev.Date.Format(calendar.DateLayout)))
		rightBuilder.WriteString(labelStyleRender("Tag", string(ev.Tag)))
		rightBuilder.WriteString(labelStyleRender("Repeats", string(ev.Recurrence)))
		if ev.Description != "" {
			rightBuilder.WriteString("\n" + inactiveStyle.Render(ev.Description) + "\n")
		}

	default:
		// Upcoming preview when nothing on the day is selected
		upcoming := calendar.Upcoming(m.selectedDay, m.events)
		if len(upcoming) == 0 {
			rightBuilder.WriteString("Nothing upcoming.")
		} else {
			rightBuilder.WriteString(subtitleStyle.Render("Upcoming") + "\n\n")
			limit := len(upcoming)
			if limit > 8 {
				limit = 8
			}
			for _, ev := range upcoming[:limit] {
				next, ok := calendar.NextOccurrence(ev, m.selectedDay)
				if !ok {
					continue
				}
				rightBuilder.WriteString(fmt.Sprintf("%s  %s\n",
					markedDayStyle.Render(next.Format(calendar.DateLayout)),
					inactiveStyle.Render(ev.Name)))
			}
		}
	}

	panelHeightPadding := 3

	// Middle panel: border on the right side only
	middlePanelStyle := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, true, false, false).
		BorderForeground(lipgloss.Color(colorGray)).
		Padding(0, 2)
	middlePanel := middlePanelStyle.Width(middleWidth).Height(m.height - panelHeightPadding).
		Render(middleBuilder.String())

	// Right panel: no border (open content area)
	rightPanelStyle := lipgloss.NewStyle().Padding(0, 2)
	rightPanel := rightPanelStyle.Width(rightWidth).Height(m.height - panelHeightPadding).
		Render(rightBuilder.String())

	// Join the three panels horizontally (top aligned)
	columns := lipgloss.JoinHorizontal(lipgloss.Top, leftPanel, middlePanel, rightPanel)

	// Footer with usage instructions
	footerText := "\n←/→/↑/↓ move day • [/] month • tab focus events • n create • d delete • t today • q quit"
	// Render the footer bar (full width)
	footerBar := footerStyle.Width(m.width).Render(footerText)

	// Assemble final UI string
	return titleBar + "\n\n" + columns + footerBar
}

func labelStyleRender(label, value string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(colorBlue)).Render(label+": ") +
		inactiveStyle.Render(value) + "\n"
}

func renderPicker(choices []string, idx int, focused bool) string {
	var parts []string
	for i, choice := range choices {
		if i == idx && focused {
			parts = append(parts, selectedStyle.Render(choice))
		} else if i == idx {
			parts = append(parts, markedDayStyle.Render(choice))
		} else {
			parts = append(parts, footerStyle.Render(choice))
		}
	}
	return strings.Join(parts, " ")
}

func tagNames() []string {
	names := make([]string, len(tagChoices))
	for i, t := range tagChoices {
		names[i] = string(t)
	}
	return names
}

func recurrenceNames() []string {
	names := make([]string, len(recurrenceChoices))
	for i, r := range recurrenceChoices {
		names[i] = string(r)
	}
	return names
}

// Create and start the Bubble Tea TUI
func ShowTUI(db *sql.DB) error {
	p := tea.NewProgram(initModel(db), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
