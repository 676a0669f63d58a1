package types

const (
	KeyActionQuit        = "quit"
	KeyActionMoveDown    = "move_down"
	KeyActionMoveUp      = "move_up"
	KeyActionNextScope   = "next_scope"
	KeyActionNextSection = "next_section"
	KeyActionSearch      = "search"
	KeyActionSort        = "sort"
	KeyActionAdd         = "add"
	KeyActionEdit        = "edit"
	KeyActionDelete      = "delete"
	KeyActionCopyKeys    = "copy_keys"
)

type Keymap struct {
	Bindings map[string]string `json:"bindings"`
}

func DefaultKeymap() *Keymap {
	return &Keymap{
		Bindings: map[string]string{
			KeyActionQuit:        "q",
			KeyActionMoveDown:    "j",
			KeyActionMoveUp:      "k",
			KeyActionNextScope:   "tab",
			KeyActionNextSection: "shift+tab",
			KeyActionSearch:      "/",
			KeyActionSort:        "s",
			KeyActionAdd:         "a",
			KeyActionEdit:        "e",
			KeyActionDelete:      "x",
			KeyActionCopyKeys:    "y",
		},
	}
}
