package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/flappy-arcade/internal/progress"
	"github.com/vovakirdan/flappy-arcade/internal/registry"
	"github.com/vovakirdan/flappy-arcade/internal/storage"
)

const (
	minWidthForPanel = 84  // below this the profile panel is hidden
	panelWidth       = 24  // profile panel including border
	tableMinWidth    = 50  // Minimum table width
	maxRuns          = 100 // runs loaded per page
)

// achievementsPage is the page after the games.
var achievementsPage = registry.GameInfo{ID: "achievements", Title: "Achievements"}

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	boardBoxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	pageStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	activePageStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Padding(0, 1)
	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Next key.Binding
	Prev key.Binding
	Back key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Next, k.Prev, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Next, k.Prev}, {k.Back, k.Quit}}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll")),
		Down: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "scroll")),
		Next: key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab/→", "next page")),
		Prev: key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("S-tab/←", "prev page")),
		Back: key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel shows the profile's best runs per game mode and the
// achievement list.
type ScoreboardModel struct {
	pages     []registry.GameInfo
	page      int
	store     *storage.Store // may be nil
	profile   *progress.Profile
	runs      []storage.RunRecord
	totals    *storage.GameStats // all profiles, current page
	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a scoreboard opened on the first game.
func NewScoreboardModel(store *storage.Store, profile *progress.Profile, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		pages:   append(registry.List(), achievementsPage),
		store:   store,
		profile: profile,
		keys:    DefaultScoreboardKeyMap(),
		help:    help.New(),
		width:   width,
		height:  height,
	}
	m.help.Width = width
	m.loadPage()
	return m
}

func (m *ScoreboardModel) onAchievements() bool {
	return m.pages[m.page].ID == achievementsPage.ID
}

func (m *ScoreboardModel) showPanel() bool {
	return m.width >= minWidthForPanel
}

func (m *ScoreboardModel) createTable() table.Model {
	width := m.width - 4
	if m.showPanel() {
		width -= panelWidth + 2
	}
	width = max(width, tableMinWidth)

	var columns []table.Column
	if m.onAchievements() {
		columns = []table.Column{
			{Title: "", Width: 2},
			{Title: "Achievement", Width: 20},
			{Title: "Progress", Width: 10},
			{Title: "Reward", Width: 6},
			{Title: "Description", Width: max(10, width-46)},
		}
	} else {
		columns = []table.Column{
			{Title: "Rank", Width: 5},
			{Title: "Score", Width: 7},
			{Title: "Coins", Width: 6},
			{Title: "Biome", Width: 8},
			{Title: "Time", Width: 7},
			{Title: "Date", Width: min(18, max(12, width-41))},
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-9)), // title, pages, borders, help
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

// loadPage reads the current page from the store and rebuilds the table.
func (m *ScoreboardModel) loadPage() {
	m.runs, m.totals = nil, nil
	if !m.onAchievements() && m.store != nil {
		id := m.pages[m.page].ID
		if m.profile != nil {
			if runs, err := m.store.TopRuns(id, m.profile.Name(), maxRuns); err == nil {
				m.runs = runs
			}
		}
		if totals, err := m.store.GetGameStats(id); err == nil {
			m.totals = totals
		}
	}
	m.table = m.createTable()
	if m.onAchievements() {
		m.table.SetRows(achievementRows(m.profile))
	} else {
		m.table.SetRows(runRows(m.runs))
	}
	m.table.GotoTop()
}

func runRows(runs []storage.RunRecord) []table.Row {
	rows := make([]table.Row, len(runs))
	for i, r := range runs {
		score := fmt.Sprintf("%d", r.Score)
		if r.Perfect {
			score += "*"
		}
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			score,
			fmt.Sprintf("%d", r.Coins),
			r.Biome,
			fmt.Sprintf("%.0fs", r.Duration.Seconds()),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	return rows
}

// achievementRows lists the catalog with the profile's progress.
func achievementRows(p *progress.Profile) []table.Row {
	var stats progress.Stats
	if p != nil {
		stats = p.Stats()
	}
	rows := make([]table.Row, 0, len(progress.Catalog))
	for _, a := range progress.Catalog {
		mark := " "
		prog := fmt.Sprintf("%d/%d", min(stats.Value(a.Stat, 0), a.Threshold), a.Threshold)
		if p != nil && p.IsUnlocked(a.ID) {
			mark = "✓"
			prog = "done"
		} else if a.Stat == progress.StatRunScore {
			prog = fmt.Sprintf("best %d", stats.HighScore)
		}
		rows = append(rows, table.Row{mark, a.Title, prog, fmt.Sprintf("%d", a.Reward), a.Description})
	}
	return rows
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.turn(1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.turn(-1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.loadPage()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// turn moves delta pages, wrapping around.
func (m *ScoreboardModel) turn(delta int) {
	n := len(m.pages)
	m.page = ((m.page+delta)%n + n) % n
	m.loadPage()
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	title := "BEST RUNS - " + m.pages[m.page].Title
	if m.onAchievements() {
		title = "ACHIEVEMENTS"
	}

	body := boardBoxStyle.Render(m.tableView())
	if m.showPanel() {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.panelView(), "  ", body)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		boardTitleStyle.Render(centerText(title, m.width)),
		"",
		centerText(m.pageStrip(), m.width),
		"",
		body,
		dimStyle.Render(m.help.View(m.keys)),
	)
}

// pageStrip renders the page names, or just the current one with arrows
// when they do not fit.
func (m ScoreboardModel) pageStrip() string {
	tabs := make([]string, len(m.pages))
	for i, p := range m.pages {
		if i == m.page {
			tabs[i] = activePageStyle.Render(p.Title)
		} else {
			tabs[i] = pageStyle.Render(p.Title)
		}
	}
	strip := strings.Join(tabs, " ")
	if lipgloss.Width(strip) > m.width-4 {
		return fmt.Sprintf("< %s >", m.pages[m.page].Title)
	}
	return strip
}

// panelView summarizes the profile and, on game pages, every profile's runs.
func (m ScoreboardModel) panelView() string {
	var b strings.Builder
	if m.profile != nil {
		stats := m.profile.Stats()
		fmt.Fprintf(&b, "%s\n\n", boardTitleStyle.Render(m.profile.Name()))
		fmt.Fprintf(&b, "best    %d\n", m.profile.Best())
		fmt.Fprintf(&b, "coins   %d\n", m.profile.Coins())
		fmt.Fprintf(&b, "games   %d\n", stats.GamesPlayed)
		fmt.Fprintf(&b, "perfect %d\n", stats.PerfectRuns)
		fmt.Fprintf(&b, "unlocks %d/%d\n", len(m.profile.UnlockedIDs()), len(progress.Catalog))
	}
	if m.totals != nil && m.totals.GamesCount > 0 {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("all players"))
		fmt.Fprintf(&b, "\nruns    %d\n", m.totals.GamesCount)
		fmt.Fprintf(&b, "top     %d\n", m.totals.HighScore)
		fmt.Fprintf(&b, "avg     %.1f\n", m.totals.AvgScore)
	}
	return boardBoxStyle.Width(panelWidth - 2).Render(strings.TrimRight(b.String(), "\n"))
}

func (m ScoreboardModel) tableView() string {
	if !m.onAchievements() && len(m.runs) == 0 {
		return dimStyle.Italic(true).Padding(2, 4).
			Render("No runs recorded yet.\nFinish a run to see it here.")
	}
	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard on its own.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, profile *progress.Profile, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewScoreboardModel(store, profile, width, height), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
