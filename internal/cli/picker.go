package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hooksmith/hooksmith/internal/repo"
)

var (
	titleStyle        = lipgloss.NewStyle().MarginLeft(2)
	itemStyle         = lipgloss.NewStyle().PaddingLeft(4)
	selectedItemStyle = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("170"))
	sourceStyle       = lipgloss.NewStyle().Faint(true)
	paginationStyle   = list.DefaultStyles().PaginationStyle.PaddingLeft(4)
	helpStyle         = list.DefaultStyles().HelpStyle.PaddingLeft(4).PaddingBottom(1)
)

type hookItem struct {
	hook repo.ResolvedHook
}

func (i hookItem) FilterValue() string {
	return i.hook.ID
}

type hookDelegate struct{}

func (d hookDelegate) Height() int                             { return 1 }
func (d hookDelegate) Spacing() int                            { return 0 }
func (d hookDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d hookDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(hookItem)
	if !ok {
		return
	}

	str := fmt.Sprintf("%s %s", i.hook.ID, sourceStyle.Render("("+i.hook.Source+")"))

	fn := itemStyle.Render
	if index == m.Index() {
		fn = func(s ...string) string {
			return selectedItemStyle.Render("> " + s[0])
		}
	}

	_, _ = fmt.Fprint(w, fn(str))
}

// HookPickerModel lets the user choose one configured hook to run.
type HookPickerModel struct {
	list     list.Model
	choice   string
	quitting bool
}

func (m HookPickerModel) Init() tea.Cmd {
	return nil
}

func (m HookPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.quitting = true

			return m, tea.Quit

		case "enter":
			i, ok := m.list.SelectedItem().(hookItem)
			if ok {
				m.choice = i.hook.ID
			}

			return m, tea.Quit
		}
	}

	var cmd tea.Cmd

	m.list, cmd = m.list.Update(msg)

	return m, cmd
}

func (m HookPickerModel) View() string {
	if m.choice != "" || m.quitting {
		return ""
	}

	return "\n" + m.list.View()
}

// Choice returns the picked hook id, empty when the picker was dismissed.
func (m HookPickerModel) Choice() string {
	return m.choice
}

// NewHookPicker builds the picker over the configuration's hooks.
func NewHookPicker(hooks []repo.ResolvedHook) HookPickerModel {
	items := make([]list.Item, len(hooks))
	for i, h := range hooks {
		items[i] = hookItem{hook: h}
	}

	const defaultWidth = 40

	l := list.New(items, hookDelegate{}, defaultWidth, 14)
	l.Title = "Pick a hook to run"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle
	l.Styles.PaginationStyle = paginationStyle
	l.Styles.HelpStyle = helpStyle

	return HookPickerModel{list: l}
}

// PickHook runs the picker and returns the chosen hook id. An empty id
// means the user backed out.
func PickHook(hooks []repo.ResolvedHook) (string, error) {
	final, err := tea.NewProgram(NewHookPicker(hooks)).Run()
	if err != nil {
		return "", err
	}

	m, ok := final.(HookPickerModel)
	if !ok {
		return "", fmt.Errorf("unexpected picker state")
	}

	return m.Choice(), nil
}
