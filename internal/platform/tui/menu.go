package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

// Menu entries, top to bottom.
const (
	menuPlay = iota
	menuDifficulty
	menuScores
	menuQuit
	menuItems
)

var (
	menuTitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("213"))
	menuSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuDimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// MenuModel is the Bubble Tea model for the main menu: play, pick a
// difficulty preset, open the scoreboard or quit.
type MenuModel struct {
	cursor         int
	presets        []config.DifficultyPreset
	preset         int // index into presets
	best           map[config.DifficultyPreset]int
	width          int
	height         int
	config         core.RuntimeConfig
	keyMapper      *KeyMapper
	quitting       bool
	play           bool
	openScoreboard bool
	embedded       bool // hosted by SessionModel; never quits the program itself
}

// NewMenuModel creates a new menu model with preset preselected.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig, preset config.DifficultyPreset) MenuModel {
	presets := config.Presets()
	m := MenuModel{
		cursor:    menuPlay,
		presets:   presets,
		best:      make(map[config.DifficultyPreset]int, len(presets)),
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
	for i, p := range presets {
		if p == preset {
			m.preset = i
		}
		if store != nil {
			if hs, err := store.HighScore(string(p)); err == nil {
				m.best[p] = hs
			}
		}
	}
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, m.exit()

	case MenuActionUp:
		m.cursor = core.Wrap(m.cursor-1, menuItems)

	case MenuActionDown:
		m.cursor = core.Wrap(m.cursor+1, menuItems)

	case MenuActionLeft:
		if m.cursor == menuDifficulty {
			m.preset = core.Wrap(m.preset-1, len(m.presets))
		}

	case MenuActionRight:
		if m.cursor == menuDifficulty {
			m.preset = core.Wrap(m.preset+1, len(m.presets))
		}

	case MenuActionSelect:
		switch m.cursor {
		case menuPlay:
			m.play = true
			return m, m.exit()
		case menuDifficulty:
			m.preset = core.Wrap(m.preset+1, len(m.presets))
		case menuScores:
			m.openScoreboard = true
			return m, m.exit()
		case menuQuit:
			m.quitting = true
			return m, m.exit()
		}

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, m.exit()
	}

	return m, nil
}

func (m MenuModel) exit() tea.Cmd {
	if m.embedded {
		return nil
	}
	return tea.Quit
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("M A T C H - 3"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(menuDimStyle.Render("Swap neighbours, line up three, beat the clock"), m.width))
	b.WriteString("\n\n")

	preset := m.Preset()
	labels := [menuItems]string{
		menuPlay:       "Play",
		menuDifficulty: fmt.Sprintf("Difficulty: < %s >", titleCase(string(preset))),
		menuScores:     "High Scores",
		menuQuit:       "Quit",
	}
	for i, label := range labels {
		line := "  " + label
		if i == m.cursor {
			line = menuSelectedStyle.Render("> " + label)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(menuDimStyle.Render(preset.Description()), m.width))
	b.WriteString("\n")
	if best := m.best[preset]; best > 0 {
		b.WriteString(centerText(menuDimStyle.Render(fmt.Sprintf("Best: %d", best)), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Left/Right: Difficulty  |  Enter: Select  |  Tab: Scores  |  Q: Quit"
	b.WriteString(centerText(controls, m.width))
	b.WriteString("\n")

	return b.String()
}

// Preset returns the selected difficulty preset.
func (m MenuModel) Preset() config.DifficultyPreset {
	if len(m.presets) == 0 {
		return config.DifficultyNormal
	}
	return m.presets[m.preset]
}

// WantsPlay returns true if user chose to start a round.
func (m MenuModel) WantsPlay() bool {
	return m.play
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width. Styled text is measured by
// its printable width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Preset          config.DifficultyPreset
	Config          core.RuntimeConfig
	Play            bool
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig, preset config.DifficultyPreset) (MenuResult, error) {
	model := NewMenuModel(store, cfg, preset)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Preset: preset, Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Preset: preset, Config: cfg, Quit: true}, nil
	}

	result := MenuResult{
		Preset:          m.Preset(),
		Config:          m.Config(),
		Play:            m.WantsPlay(),
		WantsScoreboard: m.WantsScoreboard(),
	}
	if !result.Play && !result.WantsScoreboard {
		result.Quit = true
	}
	return result, nil
}
