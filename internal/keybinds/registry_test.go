package keybinds

import "testing"

func TestDefaultListingBindings(t *testing.T) {
	r := NewDefaultRegistry()

	tests := []struct {
		key  string
		want Action
	}{
		{"enter", ActionOpen},
		{"right", ActionOpen},
		{"left", ActionBack},
		{"esc", ActionQuit},
		{"q", ActionQuit},
		{"Q", ActionQuit},
		{"ctrl+c", ActionQuitForce},
		{"up", ActionNavigateUp},
		{"down", ActionNavigateDown},
		{"pgup", ActionPageUp},
		{"pgdown", ActionPageDown},
		{"home", ActionGoToTop},
		{"end", ActionGoToBottom},
		{"d", ActionDownload},
		{"D", ActionDownload},
		{"u", ActionUpload},
		{"U", ActionUpload},
		{"delete", ActionDelete},
		{"/", ActionSearch},
		{"c", ActionCopyToClipboard},
		{"r", ActionRefresh},
	}

	for _, tt := range tests {
		got, ok := r.Match(ContextListing, tt.key)
		if !ok || got != tt.want {
			t.Errorf("Match(listing, %q) = %q, %v; want %q", tt.key, got, ok, tt.want)
		}
	}

	if _, ok := r.Match(ContextListing, "z"); ok {
		t.Error("z should be unbound")
	}
	for _, context := range Contexts() {
		for _, b := range r.ListBindings(context) {
			if !IsKnownAction(b.Action) {
				t.Errorf("default binding %q in %s has unknown action %q", b.Key, context, b.Action)
			}
		}
	}
}

func TestPagerContext(t *testing.T) {
	r := NewDefaultRegistry()

	if !r.Is(ContextPager, "esc", ActionStopPaging) {
		t.Error("esc should stop paging")
	}
	if r.Is(ContextPager, "q", ActionStopPaging) {
		t.Error("q should not stop paging by default")
	}
	// Global bindings reach every context
	if !r.Is(ContextPager, "ctrl+c", ActionQuitForce) {
		t.Error("ctrl+c should force quit from the pager context")
	}
}

func TestContextShadowsGlobal(t *testing.T) {
	r := NewRegistry()
	r.Register(ContextGlobal, "x", ActionQuit)
	r.Register(ContextListing, "x", ActionDelete)

	if got, _ := r.Match(ContextListing, "x"); got != ActionDelete {
		t.Errorf("Match(listing, x) = %q, want delete", got)
	}
	if got, _ := r.Match(ContextPager, "x"); got != ActionQuit {
		t.Errorf("Match(pager, x) = %q, want quit", got)
	}
}

func TestGetBinding(t *testing.T) {
	r := NewDefaultRegistry()

	keys := r.GetBinding(ContextListing, ActionQuit)
	if len(keys) != 3 || keys[0] != "Q" || keys[1] != "esc" || keys[2] != "q" {
		t.Errorf("GetBinding(quit) = %v", keys)
	}
	if got := r.GetBindingString(ContextListing, ActionQuitForce); got != "ctrl+c" {
		t.Errorf("GetBindingString(quit_force) = %q, want fallback to global", got)
	}
	if got := r.GetBindingString(ContextPager, ActionDownload); got != "unbound" {
		t.Errorf("GetBindingString(pager, download) = %q, want unbound", got)
	}
}

func TestUnregister(t *testing.T) {
	r := NewDefaultRegistry()
	r.Unregister(ContextListing, "delete")
	if r.HasBinding(ContextListing, "delete") {
		t.Error("delete still bound after Unregister")
	}
}
