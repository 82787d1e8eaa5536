package update

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Press   key.Binding
	New     key.Binding
	Append  key.Binding
	Remove  key.Binding
	Mode    key.Binding
	Presets key.Binding
	Palette key.Binding
	Help    key.Binding
	Quit    key.Binding
	PageUp  key.Binding
	PageDn  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Press:   key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("hold space", "attack task")),
		New:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new enemy")),
		Append:  key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add tasks")),
		Remove:  key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d d", "remove enemy")),
		Mode:    key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "daily/long-term")),
		Presets: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "presets")),
		Palette: key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "command")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		PageUp:  key.NewBinding(key.WithKeys("pgup", "ctrl+u"), key.WithHelp("pgup", "scroll up")),
		PageDn:  key.NewBinding(key.WithKeys("pgdown", "ctrl+d"), key.WithHelp("pgdn", "scroll down")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Press, k.New, k.Append, k.Mode, k.Palette, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDn},
		{k.Press, k.New, k.Append, k.Remove},
		{k.Mode, k.Presets, k.Palette, k.Help, k.Quit},
	}
}

const helpMarkdown = `# Todo RPG

Every task list is an enemy. Each open task is one hit point.

## Attacking

- **Hold** the left mouse button on a task, or hold **space** with the task selected.
- The task charges through *soft*, *medium* and *hard* before it lands.
- Letting go early cancels the attack. Nothing is completed.
- When the last task falls the enemy is defeated.

## Boards

- **m** switches between the daily board (experience and levels) and the long-term board (gold).
- Daily experience resets once a day.

## Writing tasks

Separate tasks with spaces or new lines. A first word starting with ` + "`#`" + ` or ` + "`##`" + ` is the title:

    ##Chores dishes laundry vacuum

## Commands

| command | effect |
|---|---|
| ` + "`/add <tasks>`" + ` | new enemy |
| ` + "`/append <tasks>`" + ` | more tasks for the selected enemy |
| ` + "`/remove`" + ` | remove the selected enemy |
| ` + "`/preset save <name> <tasks>`" + ` | remember a task list |
| ` + "`/preset use <name>`" + ` | summon an enemy from a preset |
| ` + "`/preset rm <name>`" + ` | forget a preset |
| ` + "`/mode daily\\|long`" + ` | switch boards |
`
