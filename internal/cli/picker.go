package cli

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lineagekit/lineage/pkg/gen"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// personItem is one selectable row in the root picker.
type personItem struct {
	ID   gen.PersonID
	Name string
}

// PersonListModel is the bubbletea model for interactive root selection.
type PersonListModel struct {
	People   []personItem
	Cursor   int
	Height   int
	Offset   int
	Selected gen.PersonID
	Picked   bool
}

// NewPersonListModel creates a picker over people sorted by surname, then
// given name, then id.
func NewPersonListModel(people map[gen.PersonID]*gen.Person) PersonListModel {
	items := make([]personItem, 0, len(people))
	for id, p := range people {
		items = append(items, personItem{ID: id, Name: p.DisplayName()})
	}
	sort.Slice(items, func(i, j int) bool {
		a, b := people[items[i].ID], people[items[j].ID]
		if ka, kb := a.SortKey(), b.SortKey(); ka != kb {
			return ka < kb
		}
		return items[i].ID < items[j].ID
	})

	return PersonListModel{
		People: items,
		Cursor: 0,
		Height: 15,
		Offset: 0,
	}
}

func (m PersonListModel) Init() tea.Cmd {
	return nil
}

func (m PersonListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.People)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			m.Selected = m.People[m.Cursor].ID
			m.Picked = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m PersonListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Root Person"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.People) {
		end = len(m.People)
	}

	for i := m.Offset; i < end; i++ {
		p := m.People[i]

		cursor := "  "
		style := listNormalStyle
		if i == m.Cursor {
			cursor = "▸ "
			style = listSelectedStyle
		}

		b.WriteString(cursor + style.Render(p.Name) + " " + listDimStyle.Render(string(p.ID)))
		b.WriteString("\n")
	}

	if len(m.People) > m.Height {
		b.WriteString("\n")
		b.WriteString(listDimStyle.Render(fmt.Sprintf("%d/%d", m.Cursor+1, len(m.People))))
	}

	return b.String()
}

// pickRoot runs the interactive picker and returns the selected person.
func pickRoot(people map[gen.PersonID]*gen.Person) (gen.PersonID, error) {
	if len(people) == 0 {
		return "", fmt.Errorf("graph contains no people")
	}

	final, err := tea.NewProgram(NewPersonListModel(people)).Run()
	if err != nil {
		return "", fmt.Errorf("run picker: %w", err)
	}

	m, ok := final.(PersonListModel)
	if !ok || !m.Picked {
		return "", fmt.Errorf("no person selected")
	}
	return m.Selected, nil
}
