package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-match3/internal/core"
)

// actionBinding ties a key binding to the game action it triggers.
type actionBinding struct {
	binding key.Binding
	action  core.Action
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionLeft
	MenuActionRight
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

type menuBinding struct {
	binding key.Binding
	action  MenuAction
}

// KeyMapper translates Bubble Tea key messages to game and menu actions.
// Bindings are checked in order; the first match wins.
type KeyMapper struct {
	quit key.Binding
	game []actionBinding
	menu []menuBinding
}

func binding(help, desc string, keys ...string) key.Binding {
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(help, desc))
}

// NewKeyMapper creates a key mapper with the default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{
		quit: binding("q", "quit", "ctrl+c", "q"),
		game: []actionBinding{
			{binding("↑/w", "up", "w", "up"), core.ActionUp},
			{binding("↓/s", "down", "s", "down"), core.ActionDown},
			{binding("←/a", "left", "a", "left"), core.ActionLeft},
			{binding("→/d", "right", "d", "right"), core.ActionRight},
			{binding("space", "select", " ", "enter"), core.ActionSelect},
			{binding("x", "cancel", "x", "backspace"), core.ActionCancel},
			{binding("h", "hint", "h"), core.ActionHint},
			{binding("m", "auto-play", "m"), core.ActionAutoPlay},
			{binding("esc", "menu", "b", "esc"), core.ActionBack},
			{binding("p", "pause", "p"), core.ActionPause},
			{binding("r", "restart", "r"), core.ActionRestart},
		},
		menu: []menuBinding{
			{binding("↑/k", "up", "w", "up", "k"), MenuActionUp},
			{binding("↓/j", "down", "s", "down", "j"), MenuActionDown},
			{binding("←/h", "easier", "a", "left", "h"), MenuActionLeft},
			{binding("→/l", "harder", "d", "right", "l"), MenuActionRight},
			{binding("enter", "select", "enter", " "), MenuActionSelect},
			{binding("esc", "back", "b", "esc"), MenuActionBack},
			{binding("tab", "scores", "tab"), MenuActionScoreboard},
		},
	}
}

// MapKey translates a key message to a game action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	if key.Matches(msg, km.quit) {
		return core.ActionQuit, true
	}
	for _, b := range km.game {
		if key.Matches(msg, b.binding) {
			return b.action, false
		}
	}
	return core.ActionNone, false
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone && !isQuit {
		frame.Set(action)
	}
	return isQuit
}

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	if key.Matches(msg, km.quit) {
		return MenuActionQuit
	}
	for _, b := range km.menu {
		if key.Matches(msg, b.binding) {
			return b.action
		}
	}
	return MenuActionNone
}
