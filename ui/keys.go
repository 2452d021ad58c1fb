package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up          key.Binding
	Down        key.Binding
	Search      key.Binding
	Enter       key.Binding
	Back        key.Binding
	Tab         key.Binding
	QuickTag    key.Binding
	OnlyMagnets key.Binding
	More        key.Binding
	Refresh     key.Binding
	PrevMagnet  key.Binding
	NextMagnet  key.Binding
	Copy        key.Binding
	Cover       key.Binding
	OpenCover   key.Binding
	Watch       key.Binding
	WatchAlt    key.Binding
	Help        key.Binding
	Quit        key.Binding
}

var keys = keyMap{
	Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Search:      key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	Enter:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "detail")),
	Back:        key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "back")),
	Tab:         key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "category")),
	QuickTag:    key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6"), key.WithHelp("1-6", "quick tag")),
	OnlyMagnets: key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "magnets only")),
	More:        key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "load more")),
	Refresh:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	PrevMagnet:  key.NewBinding(key.WithKeys("["), key.WithHelp("[", "prev magnet")),
	NextMagnet:  key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next magnet")),
	Copy:        key.NewBinding(key.WithKeys("y", "c"), key.WithHelp("y", "copy magnet")),
	Cover:       key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "next cover")),
	OpenCover:   key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open cover")),
	Watch:       key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "missav")),
	WatchAlt:    key.NewBinding(key.WithKeys("W"), key.WithHelp("W", "jable")),
	Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// ShortHelp returns short help key bindings (for help.Model)
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Search, k.Enter, k.Back, k.Tab, k.OnlyMagnets, k.Help, k.Quit}
}

// FullHelp returns full help key bindings
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Search, k.Enter, k.Back},
		{k.Tab, k.QuickTag, k.OnlyMagnets, k.More, k.Refresh},
		{k.PrevMagnet, k.NextMagnet, k.Copy, k.Cover, k.OpenCover},
		{k.Watch, k.WatchAlt, k.Help, k.Quit},
	}
}
