package ui

import (
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/qyinm/bustui/api"
	"github.com/qyinm/bustui/browse"
	"github.com/qyinm/bustui/types"
)

// ViewState represents the current view mode
type ViewState int

const (
	ListView ViewState = iota
	DetailView
)

// QuickTags are the searches bound to the number keys on the list view.
var QuickTags = []string{"单体", "巨乳", "素人", "御姐", "萝莉", "高清"}

// Options configures a Model. The zero value browses the normal category.
type Options struct {
	Category    types.Category
	Query       string
	OnlyMagnets bool
	Logger      *log.Logger

	// Copy and Open default to the system clipboard and browser.
	Copy func(string) error
	Open func(string) error
}

// Model is the main TUI model
type Model struct {
	source  types.MovieSource
	logger  *log.Logger
	feed    *browse.List
	trigger *browse.Trigger
	detail  *browse.Detail
	copyFn  func(string) error
	openFn  func(string) error

	list     list.Model
	viewport viewport.Model
	spinner  spinner.Model
	help     help.Model
	search   textinput.Model
	keys     keyMap

	state       ViewState
	startMode   types.Mode
	category    types.Category
	onlyMagnets bool
	searching   bool
	magnetIdx   int
	width       int
	height      int
	statusMsg   string
	statusErr   bool
}

// NewModel creates a new Model with the given MovieSource
func NewModel(source types.MovieSource, opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	copyFn := opts.Copy
	if copyFn == nil {
		copyFn = clipboard.WriteAll
	}
	openFn := opts.Open
	if openFn == nil {
		openFn = openInBrowser
	}

	l := list.New([]list.Item{}, MovieDelegate{}, 0, 0)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowFilter(false)

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = LoadingStyle

	ti := textinput.New()
	ti.Placeholder = "番号或演员..."
	ti.Prompt = "/ "
	ti.CharLimit = 64

	startMode := types.ListingMode(opts.Category)
	if q := api.NormalizeKeyword(opts.Query); q != "" {
		startMode = types.SearchMode(q)
	}

	return Model{
		source:      source,
		logger:      logger,
		feed:        browse.NewList(logger),
		trigger:     browse.NewTrigger(),
		detail:      browse.NewDetail(logger),
		copyFn:      copyFn,
		openFn:      openFn,
		list:        l,
		viewport:    viewport.New(0, 0),
		spinner:     s,
		help:        help.New(),
		search:      ti,
		keys:        keys,
		state:       ListView,
		startMode:   startMode,
		category:    opts.Category,
		onlyMagnets: opts.OnlyMagnets,
	}
}

// Init starts the first session
func (m Model) Init() tea.Cmd {
	req := m.feed.ChangeMode(m.startMode)
	return tea.Batch(m.spinner.Tick, fetchPage(m.source, req))
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizePanes()
		return m, m.observe()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case pageMsg:
		return m.handlePage(msg)

	case detailMsg:
		next, ok := m.detail.ResolveDetail(msg.result)
		m.refreshDetail()
		if ok {
			return m, fetchMagnets(m.source, next)
		}
		return m, nil

	case magnetMsg:
		if m.detail.ResolveMagnets(msg.result) {
			m.magnetIdx = 0
			m.refreshDetail()
		}
		return m, nil

	case clipboardMsg:
		if msg.err != nil {
			m.logger.Printf("ui: clipboard: %v", msg.err)
			m.setStatus("Clipboard unavailable, copy manually: "+msg.text, true)
		} else {
			m.setStatus("Copied to clipboard", false)
		}
		return m, nil

	case openURLMsg:
		switch {
		case msg.err != nil:
			m.setStatus("Open manually: "+msg.url, true)
		case msg.copied:
			m.setStatus("Could not open browser, URL copied to clipboard", false)
		default:
			m.setStatus("Opened "+msg.url, false)
		}
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		if key.Matches(msg, m.keys.Help) {
			m.help.ShowAll = !m.help.ShowAll
			m.resizePanes()
			return m, nil
		}
		switch m.state {
		case ListView:
			return m.updateList(msg)
		case DetailView:
			return m.updateDetail(msg)
		}
	}

	return m, nil
}

func (m Model) handlePage(msg pageMsg) (tea.Model, tea.Cmd) {
	if !m.feed.Resolve(msg.result) {
		return m, nil
	}
	if err := msg.result.Err; err != nil {
		m.setStatus(fmt.Sprintf("Load failed: %v (n to retry)", err), true)
		return m, nil
	}
	m.setStatus("", false)
	if msg.result.Request.Page == 1 {
		m.list.ResetSelected()
	}
	// Every merge re-arms the sentinel: a short page can leave it on screen.
	m.trigger.Reset()
	cmd := m.syncItems()
	return m, tea.Batch(cmd, m.observe())
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.search.SetValue("")
		m.resizePanes()
		return m, m.search.Focus()

	case key.Matches(msg, m.keys.Tab):
		if !m.feed.Mode().IsSearch() {
			m.category = nextCategory(m.category)
		}
		return m, m.changeMode(types.ListingMode(m.category))

	case key.Matches(msg, m.keys.Back):
		if m.feed.Mode().IsSearch() {
			return m, m.changeMode(types.ListingMode(m.category))
		}
		return m, nil

	case key.Matches(msg, m.keys.QuickTag):
		idx := int(msg.String()[0] - '1')
		if idx < 0 || idx >= len(QuickTags) {
			return m, nil
		}
		return m, m.changeMode(types.SearchMode(QuickTags[idx]))

	case key.Matches(msg, m.keys.OnlyMagnets):
		m.onlyMagnets = !m.onlyMagnets
		m.list.ResetSelected()
		cmd := m.syncItems()
		m.trigger.Reset()
		return m, tea.Batch(cmd, m.observe())

	case key.Matches(msg, m.keys.More):
		req, ok := m.feed.LoadNext()
		if !ok {
			return m, nil
		}
		return m, fetchPage(m.source, req)

	case key.Matches(msg, m.keys.Refresh):
		m.list.ResetSelected()
		m.trigger.Reset()
		req := m.feed.Refresh()
		cmd := m.syncItems()
		return m, tea.Batch(cmd, fetchPage(m.source, req))

	case key.Matches(msg, m.keys.Enter):
		movie, ok := m.list.SelectedItem().(types.Movie)
		if !ok {
			return m, nil
		}
		return m.openDetail(movie)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, tea.Batch(cmd, m.observe())
}

func (m Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.detail.Close()
		m.state = ListView
		m.trigger.Attach()
		return m, m.observe()

	case key.Matches(msg, m.keys.NextMagnet):
		if m.magnetIdx < len(m.detail.Magnets())-1 {
			m.magnetIdx++
			m.refreshDetail()
		}
		return m, nil

	case key.Matches(msg, m.keys.PrevMagnet):
		if m.magnetIdx > 0 {
			m.magnetIdx--
			m.refreshDetail()
		}
		return m, nil

	case key.Matches(msg, m.keys.Copy):
		magnets := m.detail.Magnets()
		if m.magnetIdx >= len(magnets) {
			m.setStatus("No magnet to copy", true)
			return m, nil
		}
		return m, copyToClipboard(m.copyFn, magnets[m.magnetIdx].Link())

	case key.Matches(msg, m.keys.Cover):
		m.detail.NextCover()
		m.refreshDetail()
		return m, nil

	case key.Matches(msg, m.keys.OpenCover):
		if m.detail.Cover() == "" {
			return m, nil
		}
		return m, openURL(api.ProxyImageURL(m.detail.Cover(), 800), m.openFn, m.copyFn)

	case key.Matches(msg, m.keys.Watch), key.Matches(msg, m.keys.WatchAlt):
		links := api.WatchLinks(m.detail.ID())
		i := 0
		if key.Matches(msg, m.keys.WatchAlt) {
			i = 1
		}
		if i >= len(links) {
			return m, nil
		}
		return m, openURL(links[i].URL, m.openFn, m.copyFn)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEsc:
		m.searching = false
		m.search.Blur()
		m.resizePanes()
		return m, nil
	case tea.KeyEnter:
		m.searching = false
		m.search.Blur()
		m.resizePanes()
		q := api.NormalizeKeyword(m.search.Value())
		if q == "" {
			return m, nil
		}
		return m, m.changeMode(types.SearchMode(q))
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m Model) openDetail(movie types.Movie) (tea.Model, tea.Cmd) {
	req := m.detail.Select(movie)
	m.state = DetailView
	m.magnetIdx = 0
	m.trigger.Detach()
	m.viewport.GotoTop()
	m.refreshDetail()
	return m, fetchDetail(m.source, req)
}

// changeMode starts a new list session and clears what is on screen.
func (m *Model) changeMode(mode types.Mode) tea.Cmd {
	req := m.feed.ChangeMode(mode)
	m.trigger.Reset()
	m.list.ResetSelected()
	m.setStatus("", false)
	cmd := m.syncItems()
	return tea.Batch(cmd, fetchPage(m.source, req))
}

// syncItems pushes the filtered session records into the list widget.
func (m *Model) syncItems() tea.Cmd {
	records := browse.Filter(m.feed.Records(), m.onlyMagnets)
	items := make([]list.Item, len(records))
	for i, r := range records {
		items[i] = r
	}
	return m.list.SetItems(items)
}

// observe reports the sentinel to the trigger. The sentinel is the end of
// the rendered list, which is on screen when the paginator shows its last
// page or when nothing passed the filter.
func (m *Model) observe() tea.Cmd {
	if m.state != ListView {
		return nil
	}
	visible := len(m.list.Items()) == 0 || m.list.Paginator.OnLastPage()
	req, ok := m.trigger.Observe(visible, m.feed)
	if !ok {
		return nil
	}
	return fetchPage(m.source, req)
}

func (m *Model) refreshDetail() {
	if m.state != DetailView {
		return
	}
	m.viewport.SetContent(renderDetail(m.detail, m.magnetIdx, m.viewport.Width))
}

func (m *Model) setStatus(msg string, isErr bool) {
	m.statusMsg = msg
	m.statusErr = isErr
}

// View renders the current view
func (m Model) View() string {
	var body string
	switch m.state {
	case ListView:
		body = m.list.View()
		if len(m.list.Items()) == 0 {
			body = m.emptyView()
		}
	case DetailView:
		body = m.viewport.View()
	default:
		body = "Unknown state\n"
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.headerView(), body, m.statusView(), m.help.View(m.keys))
}

func (m Model) headerView() string {
	if m.searching {
		return m.search.View()
	}
	if m.state == DetailView {
		return ActiveTabStyle.Render("Detail")
	}

	var parts []string
	mode := m.feed.Mode()
	for _, c := range []types.Category{types.Normal, types.Uncensored} {
		if !mode.IsSearch() && c == m.category {
			parts = append(parts, ActiveTabStyle.Render(c.Label()))
		} else {
			parts = append(parts, InactiveTabStyle.Render(c.Label()))
		}
	}
	if mode.IsSearch() {
		parts = append(parts, ActiveTabStyle.Render("Search: "+mode.Query()))
	} else {
		tags := make([]string, len(QuickTags))
		for i, t := range QuickTags {
			tags[i] = fmt.Sprintf("%d:%s", i+1, t)
		}
		parts = append(parts, QuickTagStyle.Render(strings.Join(tags, " ")))
	}
	if m.onlyMagnets {
		parts = append(parts, ToggleOnStyle.Render("[magnets only]"))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m Model) emptyView() string {
	height := m.list.Height()
	var text string
	switch {
	case m.feed.Loading():
		text = m.spinner.View() + " Loading..."
	case m.feed.Err() != nil:
		text = ErrorStyle.Render("Nothing loaded.")
	case m.feed.Len() > 0:
		text = StatusBarStyle.Render("Nothing with magnets yet. Press m to show all.")
	default:
		text = StatusBarStyle.Render("No results.")
	}
	return lipgloss.Place(m.width, max(height, 1), lipgloss.Center, lipgloss.Center, text)
}

func (m Model) statusView() string {
	var parts []string
	if m.feed.Loading() || m.detail.DetailLoading() || m.detail.ResourcesLoading() {
		parts = append(parts, m.spinner.View())
	}
	shown := len(m.list.Items())
	count := fmt.Sprintf("%d shown", shown)
	if shown != m.feed.Len() {
		count = fmt.Sprintf("%d of %d shown", shown, m.feed.Len())
	}
	parts = append(parts, count)
	if !m.feed.Mode().IsSearch() {
		parts = append(parts, fmt.Sprintf("page %d", m.feed.Page()))
	}
	if m.feed.State() == browse.Exhausted {
		parts = append(parts, "end")
	}
	line := StatusBarStyle.Render(strings.Join(parts, " • "))
	if m.statusMsg != "" {
		style := StatusBarStyle
		if m.statusErr {
			style = ErrorStyle
		}
		line += "  " + style.Render(m.statusMsg)
	}
	return line
}

// resizePanes adjusts the dimensions of list and viewport based on window size
func (m *Model) resizePanes() {
	headerHeight := 1
	statusHeight := 1
	helpHeight := lipgloss.Height(m.help.View(m.keys))
	availableHeight := m.height - headerHeight - statusHeight - helpHeight
	if availableHeight < 0 {
		availableHeight = 0
	}

	m.list.SetSize(m.width, availableHeight)
	m.viewport.Width = m.width
	m.viewport.Height = availableHeight
	m.search.Width = max(m.width-4, 0)
	m.help.Width = m.width
	m.refreshDetail()
}

func nextCategory(c types.Category) types.Category {
	if c == types.Normal {
		return types.Uncensored
	}
	return types.Normal
}
