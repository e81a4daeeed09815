package tui

import "github.com/charmbracelet/bubbles/key"

// bindings is a flat help.KeyMap.
type bindings []key.Binding

func (b bindings) ShortHelp() []key.Binding {
	return b
}

func (b bindings) FullHelp() [][]key.Binding {
	return [][]key.Binding{b}
}

var (
	keyUp = key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "arriba"),
	)
	keyDown = key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "abajo"),
	)
	keySelect = key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "elegir"),
	)
	keyQuit = key.NewBinding(
		key.WithKeys("q"),
		key.WithHelp("q", "salir"),
	)
	keySubmit = key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "enviar"),
	)
	keyErase = key.NewBinding(
		key.WithKeys("backspace"),
		key.WithHelp("⌫", "borrar"),
	)
	keyNewWord = key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("ctrl+r", "nueva palabra"),
	)
	keyRestart = key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("ctrl+r", "reiniciar"),
	)
	keyClear = key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "limpiar"),
	)
	keyPause = key.NewBinding(
		key.WithKeys("ctrl+p"),
		key.WithHelp("ctrl+p", "pausa"),
	)
	keyBack = key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "menú"),
	)
)

var (
	menuKeys    = bindings{keyUp, keyDown, keySelect, keyQuit}
	wordleKeys  = bindings{keySubmit, keyErase, keyNewWord, keyBack}
	fallingKeys = bindings{keyClear, keyPause, keyRestart, keyBack}
)
