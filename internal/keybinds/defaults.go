package keybinds

// NewDefaultRegistry creates a registry with all default keybindings
func NewDefaultRegistry() *Registry {
	r := NewRegistry()

	registerGlobalBindings(r)
	registerListingBindings(r)
	registerPagerBindings(r)

	return r
}

// registerGlobalBindings sets up bindings available in all modes
func registerGlobalBindings(r *Registry) {
	r.Register(ContextGlobal, "ctrl+c", ActionQuitForce)
}

func registerListingBindings(r *Registry) {
	r.RegisterMultiple(ContextListing, []string{"esc", "q", "Q"}, ActionQuit)

	r.Register(ContextListing, "up", ActionNavigateUp)
	r.Register(ContextListing, "down", ActionNavigateDown)
	r.Register(ContextListing, "pgup", ActionPageUp)
	r.Register(ContextListing, "pgdown", ActionPageDown)
	r.Register(ContextListing, "home", ActionGoToTop)
	r.Register(ContextListing, "end", ActionGoToBottom)
	r.RegisterMultiple(ContextListing, []string{"enter", "right"}, ActionOpen)
	r.Register(ContextListing, "left", ActionBack)

	r.RegisterMultiple(ContextListing, []string{"d", "D"}, ActionDownload)
	r.RegisterMultiple(ContextListing, []string{"u", "U"}, ActionUpload)
	r.Register(ContextListing, "delete", ActionDelete)

	r.Register(ContextListing, "/", ActionSearch)
	r.Register(ContextListing, "c", ActionCopyToClipboard)
	r.Register(ContextListing, "r", ActionRefresh)
}

func registerPagerBindings(r *Registry) {
	r.Register(ContextPager, "esc", ActionStopPaging)
}
