// Package browser is the interactive navigation loop of doh.
//
// A Navigator remembers one remote location at a time. Every Step fetches
// that location: a directory is listed a screen at a time and keystrokes
// move the selection, descend, ascend or run a transfer; a file is paged
// (or, when it is not text, offered for download) before the navigator
// returns to the parent directory.
//
// All state is owned by the Navigator and mutated only from Run, one
// request and one keypress at a time.
package browser
