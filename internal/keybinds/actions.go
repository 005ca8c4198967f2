package keybinds

// Action represents a user action that can be triggered by a keybinding
type Action string

// Context represents the context in which keybindings are active
type Context string

const (
	// Contexts define where keybindings are active
	ContextGlobal  Context = "global"  // Available everywhere
	ContextListing Context = "listing" // Directory listing screen
	ContextPager   Context = "pager"   // Paged file view
)

const (
	// Global actions
	ActionQuit      Action = "quit"       // End the session
	ActionQuitForce Action = "quit_force" // Force quit (ctrl+c)

	// Navigation actions
	ActionNavigateUp   Action = "navigate_up"   // Move selection up one entry
	ActionNavigateDown Action = "navigate_down" // Move selection down one entry
	ActionPageUp       Action = "page_up"       // Move selection up one screen
	ActionPageDown     Action = "page_down"     // Move selection down one screen
	ActionGoToTop      Action = "go_to_top"     // Select the first entry
	ActionGoToBottom   Action = "go_to_bottom"  // Select the last entry
	ActionOpen         Action = "open"          // Enter the selected entry
	ActionBack         Action = "back"          // Go to the parent location

	// Remote operations
	ActionDownload Action = "download" // Save the selected file locally
	ActionUpload   Action = "upload"   // PUT a local file into this location
	ActionDelete   Action = "delete"   // DELETE the selected entry

	// Other actions
	ActionSearch          Action = "search"            // Jump to an entry by fuzzy name
	ActionCopyToClipboard Action = "copy_to_clipboard" // Copy the selected entry's location
	ActionRefresh         Action = "refresh"           // Fetch the current location again

	// Pager actions
	ActionStopPaging Action = "stop_paging" // Stop paging before the last screen
)

// ActionInfo contains metadata about an action
type ActionInfo struct {
	Action      Action
	Description string
	Category    string
}

var actionInfos = map[Action]ActionInfo{
	ActionQuit:            {ActionQuit, "Quit", "Global"},
	ActionQuitForce:       {ActionQuitForce, "Force quit", "Global"},
	ActionNavigateUp:      {ActionNavigateUp, "Move up", "Navigation"},
	ActionNavigateDown:    {ActionNavigateDown, "Move down", "Navigation"},
	ActionPageUp:          {ActionPageUp, "Page up", "Navigation"},
	ActionPageDown:        {ActionPageDown, "Page down", "Navigation"},
	ActionGoToTop:         {ActionGoToTop, "Go to top", "Navigation"},
	ActionGoToBottom:      {ActionGoToBottom, "Go to bottom", "Navigation"},
	ActionOpen:            {ActionOpen, "Open entry", "Navigation"},
	ActionBack:            {ActionBack, "Parent directory", "Navigation"},
	ActionDownload:        {ActionDownload, "Download file", "Remote"},
	ActionUpload:          {ActionUpload, "Upload file", "Remote"},
	ActionDelete:          {ActionDelete, "Delete entry", "Remote"},
	ActionSearch:          {ActionSearch, "Find entry", "Other"},
	ActionCopyToClipboard: {ActionCopyToClipboard, "Copy location", "Other"},
	ActionRefresh:         {ActionRefresh, "Refresh", "Other"},
	ActionStopPaging:      {ActionStopPaging, "Stop paging", "Pager"},
}

// GetActionInfo returns human-readable information about an action
func GetActionInfo(action Action) ActionInfo {
	if info, ok := actionInfos[action]; ok {
		return info
	}
	return ActionInfo{action, string(action), "Unknown"}
}

// IsKnownAction reports whether action is one doh can perform
func IsKnownAction(action Action) bool {
	_, ok := actionInfos[action]
	return ok
}

// Contexts returns every context in display order
func Contexts() []Context {
	return []Context{ContextGlobal, ContextListing, ContextPager}
}
