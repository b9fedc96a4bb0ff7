package config

import (
	"fmt"
	"strings"
)

const (
	defaultPrimary   = "alt"
	defaultSecondary = "alt+shift"
)

// KeyBindingsConfig is the [keybindings] section of config.toml. Every action
// is bound to a modifier plus a key; [keybindings.actions] replaces a binding
// outright.
type KeyBindingsConfig struct {
	Primary   string            `toml:"primary"`
	Secondary string            `toml:"secondary"`
	Actions   map[string]string `toml:"actions"`
}

type modifierSlot int

const (
	slotPrimary modifierSlot = iota
	slotSecondary
)

type binding struct {
	slot modifierSlot
	key  string
}

var defaultBindings = map[string]binding{
	"help":             {slotPrimary, "h"},
	"about":            {slotSecondary, "a"},
	"new_conversation": {slotPrimary, "n"},
	"dictation":        {slotPrimary, "r"},
	"quit":             {slotPrimary, "q"},

	"yank_last_response": {slotPrimary, "y"},
	"yank_conversation":  {slotPrimary, "c"},

	"scroll_down":      {slotPrimary, "j"},
	"scroll_up":        {slotPrimary, "k"},
	"half_page_down":   {slotSecondary, "j"},
	"half_page_up":     {slotSecondary, "k"},
	"page_down":        {slotPrimary, "pgdown"},
	"page_up":          {slotPrimary, "pgup"},
	"scroll_to_top":    {slotPrimary, "g"},
	"scroll_to_bottom": {slotSecondary, "g"},
}

func DefaultKeybindings() *KeyBindingsConfig {
	return &KeyBindingsConfig{Primary: defaultPrimary, Secondary: defaultSecondary}
}

// normalize fills modifiers left empty in config.toml and rejects bindings
// that would swallow plain typing.
func (kb *KeyBindingsConfig) normalize() error {
	if kb.Primary == "" {
		kb.Primary = defaultPrimary
	}
	if kb.Secondary == "" {
		kb.Secondary = defaultSecondary
	}
	for _, mod := range []string{kb.Primary, kb.Secondary} {
		if strings.EqualFold(mod, "shift") {
			return fmt.Errorf("modifier %q alone conflicts with typing", mod)
		}
	}
	for action := range kb.Actions {
		if _, ok := defaultBindings[action]; !ok {
			return fmt.Errorf("unknown action %q", action)
		}
	}
	return nil
}

// combo joins a modifier chain and a key the way tea.KeyMsg.String reports
// it. Terminals send Shift+letter as the uppercase letter, so a shift in the
// chain is folded into the key.
func combo(mods, key string) string {
	var kept []string
	shift := false
	for _, m := range strings.Split(mods, "+") {
		if strings.EqualFold(m, "shift") {
			shift = true
			continue
		}
		if m != "" {
			kept = append(kept, m)
		}
	}

	if shift && len(key) == 1 && key[0] >= 'a' && key[0] <= 'z' {
		key = strings.ToUpper(key)
	} else if shift {
		kept = append(kept, "shift")
	}
	return strings.Join(append(kept, key), "+")
}

// GetActionKey returns the key string bound to action, or "" for unknown
// actions.
func (kb *KeyBindingsConfig) GetActionKey(action string) string {
	if k := kb.Actions[action]; k != "" {
		return k
	}
	b, ok := defaultBindings[action]
	if !ok {
		return ""
	}

	mods := kb.Primary
	if mods == "" {
		mods = defaultPrimary
	}
	if b.slot == slotSecondary {
		mods = kb.Secondary
		if mods == "" {
			mods = defaultSecondary
		}
	}
	return combo(mods, b.key)
}

// Matches reports whether pressed, as produced by tea.KeyMsg.String, triggers
// action.
func (kb *KeyBindingsConfig) Matches(action, pressed string) bool {
	k := kb.GetActionKey(action)
	return k != "" && k == pressed
}

// DisplayActionKey formats an action's binding for help text:
// "alt+A" becomes "Alt+Shift+A".
func (kb *KeyBindingsConfig) DisplayActionKey(action string) string {
	k := kb.GetActionKey(action)
	if k == "" {
		return ""
	}

	parts := strings.Split(k, "+")
	out := make([]string, 0, len(parts)+1)
	for i, p := range parts {
		if p == "" {
			continue
		}
		last := i == len(parts)-1
		if last && len(p) == 1 && p[0] >= 'A' && p[0] <= 'Z' && len(parts) > 1 {
			out = append(out, "Shift")
		}
		out = append(out, strings.ToUpper(p[:1])+p[1:])
	}
	return strings.Join(out, "+")
}

// ConflictWarning returns a non-fatal note about the chosen modifiers.
func (kb *KeyBindingsConfig) ConflictWarning() string {
	if strings.Contains(kb.Primary, "ctrl") || strings.Contains(kb.Secondary, "ctrl") {
		return "Ctrl may conflict with terminal shortcuts (Ctrl+C, Ctrl+Z, Ctrl+D)"
	}
	return ""
}
