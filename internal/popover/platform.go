package popover

import (
	"runtime"
	"strings"
)

// ModifierKeys holds the modifier glyphs used in popover key guidance,
// resolved from the host platform.
type ModifierKeys struct {
	Primary   string
	Secondary string
}

var (
	appleModifiers   = ModifierKeys{Primary: "⌘", Secondary: "⌥"}
	genericModifiers = ModifierKeys{Primary: "Ctrl", Secondary: "Alt"}
)

// appleIdentifiers matches both Go runtime platform names and the
// navigator-style identifiers Apple desktop and mobile systems report.
var appleIdentifiers = []string{"darwin", "ios", "mac", "iphone", "ipad", "ipod"}

// PlatformProvider supplies the platform identifier string. Injecting it
// keeps ResolveModifierKeys testable without a live runtime environment.
type PlatformProvider func() string

// RuntimePlatform is the default PlatformProvider, backed by runtime.GOOS.
func RuntimePlatform() string {
	return runtime.GOOS
}

// ResolveModifierKeys maps a platform identifier to the modifier glyphs shown
// in popover hints: command/option on Apple platforms, Ctrl/Alt everywhere
// else. An empty or unrecognized identifier falls back to the non-Apple
// glyphs; resolution never fails. The result is cheap to recompute, so hosts
// evaluate it once per popover instantiation without caching.
func ResolveModifierKeys(platform string) ModifierKeys {
	p := strings.ToLower(strings.TrimSpace(platform))
	if p == "" {
		return genericModifiers
	}
	for _, id := range appleIdentifiers {
		if strings.Contains(p, id) {
			return appleModifiers
		}
	}
	return genericModifiers
}
