package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/breaktime/internal/registry"
	"github.com/vovakirdan/breaktime/internal/storage"
)

const (
	maxScores    = 100 // rows fetched per game before filtering
	queryTimeout = 2 * time.Second
	statsWidth   = 24
	wideLayout   = 78 // below this the stats panel moves under the table
)

// scoreFilters cycles the difficulty column filter. "" shows every entry.
var scoreFilters = []string{"", "easy", "normal", "hard"}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Prev   key.Binding
	Next   key.Binding
	Filter key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp implements help.KeyMap.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Filter, k.Back, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Prev, k.Next, k.Filter},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "scroll")),
		Prev:   key.NewBinding(key.WithKeys("left", "h", "shift+tab"), key.WithHelp("←", "prev game")),
		Next:   key.NewBinding(key.WithKeys("right", "l", "tab"), key.WithHelp("→/tab", "next game")),
		Filter: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "difficulty")),
		Back:   key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// scoresLoadedMsg carries the result of a background query for one game.
type scoresLoadedMsg struct {
	gameID string
	scores []storage.ScoreEntry
	stats  storage.GameStats
	err    error
}

// ScoreboardModel browses stored scores per game.
type ScoreboardModel struct {
	games  []registry.GameInfo
	cursor int
	filter int // index into scoreFilters
	store  *storage.Store

	scores  []storage.ScoreEntry // unfiltered, best first
	stats   storage.GameStats
	loading bool
	loadErr error

	table table.Model
	help  help.Model
	keys  ScoreboardKeyMap

	width, height int
	quitting      bool
	goingBack     bool
}

// NewScoreboardModel creates a scoreboard. store may be nil, in which case
// every game shows as empty. Scores load when Init's command runs.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		games:  registry.List(),
		store:  store,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.help.Width = width
	m.loading = store != nil && len(m.games) > 0
	m.table = m.newTable()
	return m
}

func (m ScoreboardModel) currentGame() string {
	if len(m.games) == 0 {
		return ""
	}
	return m.games[m.cursor].ID
}

func (m ScoreboardModel) tableWidth() int {
	w := m.width - 6
	if m.width >= wideLayout {
		w -= statsWidth + 4
	}
	return max(w, 36)
}

func (m ScoreboardModel) newTable() table.Model {
	dateW := min(max(m.tableWidth()-30, 12), 20)
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Rank", Width: 5},
			{Title: "Score", Width: 10},
			{Title: "Difficulty", Width: 10},
			{Title: "Played", Width: dateW},
		}),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// load queries the store off the update loop.
func (m ScoreboardModel) load() tea.Cmd {
	gameID, store := m.currentGame(), m.store
	if gameID == "" || store == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
		defer cancel()

		msg := scoresLoadedMsg{gameID: gameID}
		msg.scores, msg.err = store.TopScores(ctx, gameID, maxScores)
		if msg.err == nil {
			msg.stats, msg.err = store.GameStats(ctx, gameID)
		}
		return msg
	}
}

// switchGame moves the cursor by delta and starts a reload.
func (m ScoreboardModel) switchGame(delta int) (ScoreboardModel, tea.Cmd) {
	if len(m.games) == 0 {
		return m, nil
	}
	m.cursor = (m.cursor + delta + len(m.games)) % len(m.games)
	m.scores = nil
	m.stats = storage.GameStats{}
	m.loadErr = nil
	m.loading = m.store != nil
	m.refreshRows()
	return m, m.load()
}

// refreshRows rebuilds table rows from the loaded scores and active filter.
// Rank is the position within the filtered list.
func (m *ScoreboardModel) refreshRows() {
	want := scoreFilters[m.filter]
	var rows []table.Row
	for _, s := range m.scores {
		if want != "" && s.Difficulty != want {
			continue
		}
		rows = append(rows, table.Row{
			fmt.Sprintf("#%d", len(rows)+1),
			fmt.Sprintf("%d", s.Score),
			s.Difficulty,
			s.CreatedAt.Local().Format("Jan 02 15:04"),
		})
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init starts loading the first game's scores.
func (m ScoreboardModel) Init() tea.Cmd {
	return m.load()
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case scoresLoadedMsg:
		if msg.gameID != m.currentGame() {
			return m, nil
		}
		m.loading = false
		m.loadErr = msg.err
		m.scores = msg.scores
		m.stats = msg.stats
		m.refreshRows()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			return m.switchGame(1)
		case key.Matches(msg, m.keys.Prev):
			return m.switchGame(-1)
		case key.Matches(msg, m.keys.Filter):
			m.filter = (m.filter + 1) % len(scoreFilters)
			m.refreshRows()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table = m.newTable()
		m.refreshRows()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

var (
	sbTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	sbTabStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	sbActiveStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Padding(0, 1)
	sbBoxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	sbDimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true)
	sbLabelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	b.WriteString(centerText(sbTitleStyle.Render("HIGH SCORES"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.renderTabs(), m.width))
	b.WriteString("\n\n")

	body := sbBoxStyle.Render(m.renderTable())
	if stats := m.renderStats(); stats != "" {
		panel := sbBoxStyle.Width(statsWidth).Render(stats)
		if m.width >= wideLayout {
			body = lipgloss.JoinHorizontal(lipgloss.Top, body, "  ", panel)
		} else {
			body = lipgloss.JoinVertical(lipgloss.Left, body, panel)
		}
	}
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, body))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.help.View(m.keys), m.width))
	return b.String()
}

func (m ScoreboardModel) renderTabs() string {
	tabs := make([]string, len(m.games))
	for i, g := range m.games {
		if i == m.cursor {
			tabs[i] = sbActiveStyle.Render(g.Title)
		} else {
			tabs[i] = sbTabStyle.Render(g.Title)
		}
	}
	line := strings.Join(tabs, " ")
	if lipgloss.Width(line) > m.width-4 && len(m.games) > 0 {
		line = fmt.Sprintf("< %s >", m.games[m.cursor].Title)
	}

	filter := scoreFilters[m.filter]
	if filter == "" {
		filter = "all"
	}
	return line + sbLabelStyle.Render("   difficulty: "+filter)
}

func (m ScoreboardModel) renderTable() string {
	switch {
	case m.store == nil:
		return sbDimStyle.Render("Scores are unavailable: no database.")
	case m.loading:
		return sbDimStyle.Render("Loading...")
	case m.loadErr != nil:
		return sbDimStyle.Render("Could not load scores.")
	case len(m.table.Rows()) == 0:
		if len(m.scores) > 0 {
			return sbDimStyle.Render("No scores at this difficulty.")
		}
		return sbDimStyle.Render("No scores recorded yet.\nPlay a game to set a high score!")
	}
	return m.table.View()
}

// renderStats summarizes every recorded session of the current game,
// regardless of the difficulty filter.
func (m ScoreboardModel) renderStats() string {
	st := m.stats
	if st.GamesCount == 0 {
		return ""
	}
	rows := [][2]string{
		{"Played", fmt.Sprintf("%d", st.GamesCount)},
		{"Best", fmt.Sprintf("%d", st.HighScore)},
		{"Average", fmt.Sprintf("%.1f", st.AvgScore)},
		{"Total", fmt.Sprintf("%d", st.TotalScore)},
		{"Last", st.LastPlayed.Local().Format("Jan 02 15:04")},
	}
	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = sbLabelStyle.Render(fmt.Sprintf("%-8s", r[0])) + r[1]
	}
	return strings.Join(lines, "\n")
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(
		NewScoreboardModel(store, width, height),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
