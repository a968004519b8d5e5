package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit        key.Binding
	Up          key.Binding
	Down        key.Binding
	Open        key.Binding
	Back        key.Binding
	Directory   key.Binding
	Jobs        key.Binding
	Dashboard   key.Binding
	New         key.Binding
	Review      key.Binding
	Plan        key.Binding
	FilterCity  key.Binding
	FilterSvc   key.Binding
	ClearFilter key.Binding
	TopPros     key.Binding
	Login       key.Binding
	Signup      key.Binding
	Forgot      key.Binding
	Reset       key.Binding
	Logout      key.Binding
	Refresh     key.Binding
	Confirm     key.Binding
	Cancel      key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Open:        key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Back:        key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Directory:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "providers")),
		Jobs:        key.NewBinding(key.WithKeys("J"), key.WithHelp("J", "my jobs")),
		Dashboard:   key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "home")),
		New:         key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new")),
		Review:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "review")),
		Plan:        key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add plan item")),
		FilterCity:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "filter city")),
		FilterSvc:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "filter service")),
		ClearFilter: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "clear filters")),
		TopPros:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "top pros")),
		Login:       key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "log in")),
		Signup:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sign up")),
		Forgot:      key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "forgot password")),
		Reset:       key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "reset password")),
		Logout:      key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "log out")),
		Refresh:     key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "refresh")),
		Confirm:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
		Cancel:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}
