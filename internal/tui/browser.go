package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rhyrak/go-pick/internal/scheduler"
)

type keyMap struct {
	Prev key.Binding
	Next key.Binding
	Quit key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var keys = keyMap{
	Prev: key.NewBinding(key.WithKeys("left", "h", "p"), key.WithHelp("←/h", "prev")),
	Next: key.NewBinding(key.WithKeys("right", "l", "n"), key.WithHelp("→/l", "next")),
	Quit: key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

// Browser steps through the best schedules of a State.
type Browser struct {
	state scheduler.State
	keys  keyMap
	help  help.Model
}

func NewBrowser(state scheduler.State) *Browser {
	return &Browser{state: state, keys: keys, help: help.New()}
}

// State returns the navigation state as last left by the user.
func (b *Browser) State() scheduler.State {
	return b.state
}

func (b *Browser) Init() tea.Cmd {
	return nil
}

func (b *Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.help.Width = msg.Width
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, b.keys.Quit):
			return b, tea.Quit
		case key.Matches(msg, b.keys.Next):
			b.state = b.state.Next()
		case key.Matches(msg, b.keys.Prev):
			b.state = b.state.Prev()
		}
	}
	return b, nil
}

func (b *Browser) View() string {
	switch b.state.Status() {
	case scheduler.NotGenerated:
		return subtitleStyle.Render("Nothing requested yet.") + "\n" + helpStyle.Render(b.help.View(b.keys))
	case scheduler.NoSchedules:
		return warningStyle.Render("No possible schedules.") + "\n" + helpStyle.Render(b.help.View(b.keys))
	}

	sched, _ := b.state.Current()
	title := titleStyle.Render(fmt.Sprintf("Best Schedule %d of %d", b.state.Index()+1, b.state.Len()))
	info := subtitleStyle.Render(fmt.Sprintf("penalty %d, %d conflict-free schedules", b.state.Score(), b.state.Generated()))
	return title + "\n" + info + "\n" +
		"Lectures: " + sched.Lectures() + "\n\n" +
		RenderWeek(sched) +
		helpStyle.Render(b.help.View(b.keys))
}
