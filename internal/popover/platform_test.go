package popover

import "testing"

func TestResolveModifierKeys(t *testing.T) {
	cases := []struct {
		name     string
		platform string
		want     ModifierKeys
	}{
		{"darwin", "darwin", ModifierKeys{Primary: "⌘", Secondary: "⌥"}},
		{"macos_marketing_name", "MacIntel", ModifierKeys{Primary: "⌘", Secondary: "⌥"}},
		{"ios", "ios", ModifierKeys{Primary: "⌘", Secondary: "⌥"}},
		{"ipad_user_agent_fragment", "iPad; CPU OS 17_0", ModifierKeys{Primary: "⌘", Secondary: "⌥"}},
		{"iphone", "iPhone", ModifierKeys{Primary: "⌘", Secondary: "⌥"}},
		{"linux", "linux", ModifierKeys{Primary: "Ctrl", Secondary: "Alt"}},
		{"windows", "windows", ModifierKeys{Primary: "Ctrl", Secondary: "Alt"}},
		{"freebsd", "freebsd", ModifierKeys{Primary: "Ctrl", Secondary: "Alt"}},
		{"empty_defaults_generic", "", ModifierKeys{Primary: "Ctrl", Secondary: "Alt"}},
		{"whitespace_only", "   ", ModifierKeys{Primary: "Ctrl", Secondary: "Alt"}},
		{"case_insensitive", "DARWIN", ModifierKeys{Primary: "⌘", Secondary: "⌥"}},
		{"padded", "  darwin  ", ModifierKeys{Primary: "⌘", Secondary: "⌥"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ResolveModifierKeys(tc.platform)
			if got != tc.want {
				t.Fatalf("ResolveModifierKeys(%q): expected %+v, got %+v", tc.platform, tc.want, got)
			}
		})
	}
}

func TestRuntimePlatformNonEmpty(t *testing.T) {
	if RuntimePlatform() == "" {
		t.Fatal("expected a runtime platform identifier")
	}
}

func TestResolveModifierKeysMatchesRuntime(t *testing.T) {
	// Whatever the current platform resolves to must be one of the two known
	// key sets; the resolver never invents a third.
	got := ResolveModifierKeys(RuntimePlatform())
	if got != appleModifiers && got != genericModifiers {
		t.Fatalf("runtime platform resolved to unknown modifier set %+v", got)
	}
}
