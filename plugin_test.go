package renderer

import "testing"

// ---------------------------------------------------------------------------
// TestPluginFuncs - Optional hooks
// ---------------------------------------------------------------------------

func TestPluginFuncs(t *testing.T) {
	t.Parallel()

	t.Run("nil hooks pass through", func(t *testing.T) {
		t.Parallel()

		p := PluginFuncs{PluginName: "noop"}
		if got := p.PreProcess("in"); got != "in" {
			t.Errorf("PreProcess() = %q, want %q", got, "in")
		}
		if got := p.PostProcess("<p>in</p>"); got != "<p>in</p>" {
			t.Errorf("PostProcess() = %q, want %q", got, "<p>in</p>")
		}
		if p.Name() != "noop" {
			t.Errorf("Name() = %q, want %q", p.Name(), "noop")
		}
	})

	t.Run("hooks are called", func(t *testing.T) {
		t.Parallel()

		p := PluginFuncs{
			PluginName: "wrap",
			Pre:        func(s string) string { return "[" + s + "]" },
			Post:       func(s string) string { return "(" + s + ")" },
		}
		if got := p.PreProcess("x"); got != "[x]" {
			t.Errorf("PreProcess() = %q, want %q", got, "[x]")
		}
		if got := p.PostProcess("x"); got != "(x)" {
			t.Errorf("PostProcess() = %q, want %q", got, "(x)")
		}
	})
}

// ---------------------------------------------------------------------------
// TestFold - Registration order
// ---------------------------------------------------------------------------

func TestFold(t *testing.T) {
	t.Parallel()

	plugins := []Plugin{
		PluginFuncs{
			PluginName: "a",
			Pre:        func(s string) string { return s + "a" },
			Post:       func(s string) string { return s + "1" },
		},
		PluginFuncs{PluginName: "skip"},
		PluginFuncs{
			PluginName: "b",
			Pre:        func(s string) string { return s + "b" },
			Post:       func(s string) string { return s + "2" },
		},
	}

	if got := preProcess(plugins, "_"); got != "_ab" {
		t.Errorf("preProcess() = %q, want %q", got, "_ab")
	}
	if got := postProcess(plugins, "_"); got != "_12" {
		t.Errorf("postProcess() = %q, want %q", got, "_12")
	}
	if got := preProcess(nil, "same"); got != "same" {
		t.Errorf("preProcess(nil) = %q, want %q", got, "same")
	}
}
