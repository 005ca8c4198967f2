/*
Package keybinds decodes keyboard input and maps keys to actions.

# Overview

Keys are read from a raw terminal one at a time by Reader, which turns
byte sequences into key names. A Registry then maps key names to actions
within a context. Users can override the defaults in keybinds.json.

# Key Names

Reader produces these names:
  - enter, esc, tab, backspace
  - up, down, left, right, home, end, pgup, pgdown, insert, delete
  - ctrl+a through ctrl+z (ctrl+c included)
  - any printable character as itself ("q", "Q", "/", "é")

Arrow and editing keys are recognised in all three encodings a console
may produce: CSI sequences (ESC [ A), SS3 sequences (ESC O A) and the
two-byte console form where 0xE0 or 0x00 precedes a scan code. Every
sequence counts as a single key.

# Contexts

  - global: bindings available everywhere (ctrl+c)
  - listing: the directory listing screen
  - pager: between screens of a paged file

A key bound in a specific context shadows the global binding.

# Configuration File Format

Keybindings are stored in JSON. Keys map to action names; several keys
can share one entry separated by commas, and an empty action removes a
default binding:

	{
	  "version": "1.0",
	  "listing": {
	    "j": "navigate_down",
	    "k": "navigate_up",
	    "x,X": "delete",
	    "delete": ""
	  },
	  "pager": {
	    "q": "stop_paging"
	  }
	}

# Reserved Keys

ctrl+c always force quits and cannot be rebound.

# Validation

The validator rejects unknown action names, empty keys, reserved keys and
keys bound to two different actions in one context. Shadowing a global
binding is reported as a warning.

# Example Usage

	registry, err := keybinds.LoadOrDefault(filepath.Join(dir, keybinds.ConfigFileName))
	if err != nil {
		return err
	}

	reader := keybinds.NewReader(os.Stdin)
	key, err := reader.ReadKey()
	if action, ok := registry.Match(keybinds.ContextListing, key); ok {
		// Handle action
	}
*/
package keybinds
