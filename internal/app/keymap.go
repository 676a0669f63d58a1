package app

import "refdesk/internal/types"

// actionFor resolves a pressed key against the keymap, falling back
// to the default binding for actions the stored keymap leaves unset.
func actionFor(keymap *types.Keymap, key string) string {
	if keymap != nil {
		for action, binding := range keymap.Bindings {
			if binding == key {
				return action
			}
		}
	}
	for action, binding := range types.DefaultKeymap().Bindings {
		if binding == key {
			if keymap == nil || keymap.Bindings[action] == "" {
				return action
			}
		}
	}
	return ""
}
