package monitor

import tea "github.com/charmbracelet/bubbletea"

// Key bindings as constants for consistency.
const (
	KeyQuit       = "q"
	KeyQuitAlt    = "ctrl+c"
	KeyRefresh    = "r"
	KeyScrollUp   = "up"
	KeyScrollUpK  = "k"
	KeyScrollDown = "down"
	KeyScrollDnJ  = "j"
	KeyPageUp     = "pgup"
	KeyPageDown   = "pgdown"
	KeyTop        = "home"
	KeyBottom     = "end"
	KeyToggleHelp = "?"
	KeyCloseHelp  = "esc"
)

// HandleKeyMsg processes keyboard input. It returns true if the key was
// handled.
func (m *Model) HandleKeyMsg(msg tea.KeyMsg) (bool, tea.Cmd) {
	key := msg.String()

	if key == KeyToggleHelp {
		m.showHelp = !m.showHelp
		return true, nil
	}
	if m.showHelp && key == KeyCloseHelp {
		m.showHelp = false
		return true, nil
	}

	switch key {
	case KeyQuit, KeyQuitAlt:
		m.quitting = true
		return true, tea.Quit

	case KeyRefresh:
		return true, m.startCycle()

	case KeyScrollUp, KeyScrollUpK:
		m.viewport.LineUp(1)
		return true, nil

	case KeyScrollDown, KeyScrollDnJ:
		m.viewport.LineDown(1)
		return true, nil

	case KeyPageUp:
		m.viewport.HalfViewUp()
		return true, nil

	case KeyPageDown:
		m.viewport.HalfViewDown()
		return true, nil

	case KeyTop:
		m.viewport.GotoTop()
		return true, nil

	case KeyBottom:
		m.viewport.GotoBottom()
		return true, nil
	}

	return false, nil
}
