package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/bwstat/pkg/sshutil"
)

type boardItem struct {
	host sshutil.SSHHostEntry
}

func (i boardItem) Title() string       { return i.host.Alias }
func (i boardItem) Description() string { return i.host.Description() }

func (i boardItem) FilterValue() string {
	return strings.TrimSpace(strings.Join([]string{i.host.Alias, i.host.Hostname, i.host.User}, " "))
}

// BoardPickerModel lets the user pick the target board from ~/.ssh/config.
type BoardPickerModel struct {
	list        list.Model
	selected    *sshutil.SSHHostEntry
	manualEntry bool
	quitting    bool
}

type boardPickerKeyMap struct {
	Enter  key.Binding
	Manual key.Binding
	Quit   key.Binding
}

var boardPickerKeys = boardPickerKeyMap{
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select"),
	),
	Manual: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "type address"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q/esc", "cancel"),
	),
}

// NewBoardPickerModel builds the picker over hosts.
func NewBoardPickerModel(hosts []sshutil.SSHHostEntry) BoardPickerModel {
	items := make([]list.Item, len(hosts))
	for i, h := range hosts {
		items[i] = boardItem{host: h}
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(ColorPrimary).
		BorderForeground(ColorSecondary)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(ColorMuted)

	l := list.New(items, delegate, 80, 15)
	l.Title = "Select the board from your SSH config"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true).Padding(0, 0, 1, 0)
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{boardPickerKeys.Manual}
	}

	return BoardPickerModel{list: l}
}

// Init implements tea.Model.
func (m BoardPickerModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m BoardPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, boardPickerKeys.Enter):
			if item, ok := m.list.SelectedItem().(boardItem); ok {
				m.selected = &item.host
			}
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, boardPickerKeys.Manual):
			m.manualEntry = true
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, boardPickerKeys.Quit):
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height-2)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m BoardPickerModel) View() string {
	if m.quitting {
		return ""
	}
	hint := lipgloss.NewStyle().Foreground(ColorMuted).Render("\n  Press 'm' to type the board address")
	return m.list.View() + hint
}

// Selected returns the chosen host, or nil.
func (m BoardPickerModel) Selected() *sshutil.SSHHostEntry {
	return m.selected
}

// ManualEntry reports whether the user asked to type the address.
func (m BoardPickerModel) ManualEntry() bool {
	return m.manualEntry
}

// PickBoard runs the picker on the given terminal streams.
// It returns the chosen host, or nil with cancelled=false for manual entry,
// or nil with cancelled=true.
func PickBoard(hosts []sshutil.SSHHostEntry, output io.Writer, input io.Reader) (host *sshutil.SSHHostEntry, cancelled bool, err error) {
	if len(hosts) == 0 {
		return nil, false, nil
	}

	p := tea.NewProgram(NewBoardPickerModel(hosts), tea.WithOutput(output), tea.WithInput(input))
	final, err := p.Run()
	if err != nil {
		return nil, false, fmt.Errorf("board picker: %w", err)
	}

	m, ok := final.(BoardPickerModel)
	switch {
	case !ok:
		return nil, true, nil
	case m.ManualEntry():
		return nil, false, nil
	case m.Selected() == nil:
		return nil, true, nil
	}
	return m.Selected(), false, nil
}
