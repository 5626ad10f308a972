package tui

const (
	keyAdd     = "a"
	keyRemove  = "d"
	keyStart   = "s"
	keyStop    = "x"
	keyReload  = "r"
	keyQuit    = "q"
	keyQuitAlt = "ctrl+c"
	keySubmit  = "enter"
	keyCancel  = "esc"
)

const helpText = "a add • d remove • s start • x stop • r reload email • q quit"
