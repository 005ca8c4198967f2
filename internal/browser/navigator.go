package browser

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"

	"github.com/atotto/clipboard"

	"github.com/studiowebux/doh/internal/entry"
	"github.com/studiowebux/doh/internal/keybinds"
	"github.com/studiowebux/doh/internal/logging"
	"github.com/studiowebux/doh/internal/pager"
	"github.com/studiowebux/doh/internal/rfsapi"
	"github.com/studiowebux/doh/internal/term"
	"github.com/studiowebux/doh/internal/types"
)

// MaxBadResponses is how many unparsable listings in a row end the session
const MaxBadResponses = 3

// ErrIncompatibleServer ends a session whose server keeps sending
// responses that are not listings
var ErrIncompatibleServer = errors.New("server does not support the raw filesystem API")

// Client is the protocol client the navigator drives
type Client interface {
	FetchListing(ctx context.Context, u *url.URL) (*types.Listing, error)
	FetchRaw(ctx context.Context, u *url.URL) (*rfsapi.RawResponse, error)
	Upload(ctx context.Context, u *url.URL, body io.Reader, size int64) (rfsapi.Status, error)
	Delete(ctx context.Context, u *url.URL) (rfsapi.Status, error)
}

// Pickers asks the user for local paths and short text.
// A cancelled picker returns ok == false and no error.
type Pickers interface {
	Save(suggested, ext string) (path string, ok bool, err error)
	Open() (path string, ok bool, err error)
	Prompt(title string) (text string, ok bool, err error)
}

// Recorder journals finished transfers
type Recorder interface {
	Record(t types.Transfer) error
}

// Config wires a Navigator to its collaborators
type Config struct {
	Client   Client
	Terminal term.Capability
	Pickers  Pickers
	Keys     pager.KeyReader
	// Bindings maps keys to actions. Defaults to keybinds.NewDefaultRegistry.
	Bindings *keybinds.Registry
	// History is optional
	History Recorder
	Output  io.Writer
	// Size reports the terminal width and height. Defaults to 80x24.
	Size func() (width, height int)

	ProgressBar bool
	TabWidth    int
	// HighlightStyle is a chroma style name for paged files; empty disables highlighting
	HighlightStyle string
	// Clipboard receives copied locations. Defaults to the system clipboard.
	Clipboard func(text string) error
}

// Navigator is the state machine behind an interactive session
type Navigator struct {
	client         Client
	term           term.Capability
	pickers        Pickers
	keys           pager.KeyReader
	bindings       *keybinds.Registry
	history        Recorder
	out            io.Writer
	size           func() (int, int)
	progress       bool
	tabWidth       int
	highlightStyle string
	copyText       func(string) error

	location     *url.URL
	state        *listingState
	canWrite     bool
	badResponses int
}

// outcome is what the input loop does after handling a key
type outcome int

const (
	stay outcome = iota
	refetch
	quit
)

// New creates a navigator
func New(cfg Config) (*Navigator, error) {
	switch {
	case cfg.Client == nil:
		return nil, errors.New("browser: client is required")
	case cfg.Terminal == nil:
		return nil, errors.New("browser: terminal is required")
	case cfg.Pickers == nil:
		return nil, errors.New("browser: pickers are required")
	case cfg.Keys == nil:
		return nil, errors.New("browser: key reader is required")
	case cfg.Output == nil:
		return nil, errors.New("browser: output is required")
	}

	if cfg.Bindings == nil {
		cfg.Bindings = keybinds.NewDefaultRegistry()
	}
	if cfg.Size == nil {
		cfg.Size = func() (int, int) { return term.DefaultWidth, term.DefaultHeight }
	}
	if cfg.Clipboard == nil {
		cfg.Clipboard = clipboard.WriteAll
	}

	_, height := cfg.Size()
	return &Navigator{
		client:         cfg.Client,
		term:           cfg.Terminal,
		pickers:        cfg.Pickers,
		keys:           cfg.Keys,
		bindings:       cfg.Bindings,
		history:        cfg.History,
		out:            cfg.Output,
		size:           cfg.Size,
		progress:       cfg.ProgressBar,
		tabWidth:       cfg.TabWidth,
		highlightStyle: cfg.HighlightStyle,
		copyText:       cfg.Clipboard,
		state:          newListingState(linesPerScreen(height)),
	}, nil
}

// Location is the remote location the navigator is at
func (n *Navigator) Location() *url.URL {
	return n.location
}

// Run browses from start until the user quits or the session fails.
// The cursor is hidden for the whole session and always shown again.
func (n *Navigator) Run(ctx context.Context, start *url.URL) (err error) {
	if err := n.hideCursor(); err != nil {
		return err
	}
	defer func() {
		if _, werr := io.WriteString(n.out, n.term.ShowCursor(true)); werr != nil && err == nil {
			err = werr
		}
	}()

	n.location = start
	n.state.Reset()
	n.badResponses = 0

	logging.Info("session started", logging.String("url", start.String()))
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		more, err := n.Step(ctx)
		if err != nil {
			logging.Error("session ended", logging.String("url", n.location.String()), logging.Err(err))
			return err
		}
		if !more {
			logging.Info("session ended", logging.String("url", n.location.String()))
			return nil
		}
	}
}

// Step fetches the current location and acts on it: a directory is listed
// and keys are handled until one needs a new fetch; a file is paged. It
// reports whether the session continues.
func (n *Navigator) Step(ctx context.Context) (bool, error) {
	listing, err := n.client.FetchListing(ctx, n.location)
	if err != nil {
		return n.fetchFailed(err)
	}
	n.badResponses = 0
	n.canWrite = listing.WritesSupported

	if listing.IsFile {
		if err := n.showFile(ctx); err != nil {
			return false, err
		}
		return true, nil
	}

	n.state.SetEntries(entry.BuildDisplayList(listing))
	if err := n.renderListing(); err != nil {
		return false, err
	}
	return n.inputLoop(ctx)
}

func (n *Navigator) fetchFailed(err error) (bool, error) {
	loc := entry.Display(n.location)
	if err := n.printf("Contents of %s:\n", loc); err != nil {
		return false, err
	}

	if pe, ok := rfsapi.AsProtocol(err); ok {
		n.badResponses++
		logging.Warn("unparsable listing",
			logging.String("url", n.location.String()),
			logging.Int("bad_responses", n.badResponses),
			logging.Err(pe.Err))
		if err := n.printf("<Couldn't parse server response: %v...>\n", pe.Err); err != nil {
			return false, err
		}
		if n.badResponses >= MaxBadResponses {
			if err := n.printf("<Server at %s doesn't support the raw filesystem API.>\n", loc); err != nil {
				return false, err
			}
			return false, ErrIncompatibleServer
		}
		n.ascend()
		return true, nil
	}

	if perr := n.printFailure(n.location, err); perr != nil {
		return false, perr
	}
	if !n.ascend() {
		return false, err
	}
	return true, nil
}

// printFailure prints a transport or status error. Other errors are returned.
func (n *Navigator) printFailure(u *url.URL, err error) error {
	if se, ok := rfsapi.AsStatus(err); ok {
		return n.printf("<Got %s...>\n", se.Text)
	}
	if te, ok := rfsapi.AsTransport(err); ok {
		return n.printf("<Couldn't reach %s: %v...>\n", entry.Display(u), te.Err)
	}
	return err
}

// hideCursor hides the cursor again after a picker has shown it
func (n *Navigator) hideCursor() error {
	_, err := io.WriteString(n.out, n.term.ShowCursor(false))
	return err
}

// ascend moves to the parent location, reporting false at the root
func (n *Navigator) ascend() bool {
	if entry.IsRoot(n.location) {
		return false
	}
	n.location = entry.Parent(n.location)
	n.state.Reset()
	return true
}

// showFile pages the current location, offering a download when it is
// not text, and then moves to its directory
func (n *Navigator) showFile(ctx context.Context) error {
	raw, err := n.client.FetchRaw(ctx, n.location)
	if err != nil {
		if err := n.printf("Contents of %s:\n", entry.Display(n.location)); err != nil {
			return err
		}
		if err := n.printFailure(n.location, err); err != nil {
			return err
		}
		n.ascend()
		return nil
	}

	result, err := n.page(raw.Body)
	raw.Body.Close()
	if err != nil {
		return err
	}

	if result == pager.NotText {
		if err := n.printf("Contents of %s:\n<Not UTF-8, select download destination>\n", entry.Display(n.location)); err != nil {
			return err
		}
		if err := n.download(ctx, n.location); err != nil {
			return err
		}
	}

	n.location = entry.Parent(n.location)
	n.state.Reset()
	return nil
}

func (n *Navigator) page(body io.Reader) (pager.Result, error) {
	width, height := n.size()
	label := entry.Label(n.location)

	opts := pager.Options{
		Width:    width,
		Height:   height - 1,
		Label:    label,
		TabWidth: n.tabWidth,
		IsStop: func(key string) bool {
			return n.bindings.Is(keybinds.ContextPager, key, keybinds.ActionStopPaging) ||
				n.bindings.Is(keybinds.ContextPager, key, keybinds.ActionQuitForce)
		},
	}
	if n.highlightStyle != "" {
		opts.Highlight = pager.ChromaHighlighter(label, n.highlightStyle)
	}

	result, err := pager.Page(body, n.out, n.keys, opts)
	logging.Debug("paged file", logging.String("label", label), logging.String("result", result.String()))
	return result, err
}

func (n *Navigator) inputLoop(ctx context.Context) (bool, error) {
	for {
		key, err := n.keys.ReadKey()
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		if err != nil {
			return false, fmt.Errorf("read key: %w", err)
		}

		next, err := n.handleKey(ctx, key)
		if err != nil {
			return false, err
		}
		switch next {
		case refetch:
			return true, nil
		case quit:
			return false, nil
		}
	}
}

func (n *Navigator) handleKey(ctx context.Context, key string) (outcome, error) {
	action, ok := n.bindings.Match(keybinds.ContextListing, key)
	if !ok {
		return stay, nil
	}
	logging.Debug("key", logging.String("key", key), logging.String("action", string(action)))

	switch action {
	case keybinds.ActionQuit, keybinds.ActionQuitForce:
		return quit, nil
	case keybinds.ActionOpen:
		return n.open(), nil
	case keybinds.ActionBack:
		// At the root this reloads it with the selection back on top
		if !n.ascend() {
			n.state.Reset()
		}
		return refetch, nil
	case keybinds.ActionNavigateUp:
		return stay, n.moveTo(n.state.Target(-1))
	case keybinds.ActionNavigateDown:
		return stay, n.moveTo(n.state.Target(1))
	case keybinds.ActionPageUp:
		return stay, n.moveTo(n.state.Target(-n.state.perScreen))
	case keybinds.ActionPageDown:
		return stay, n.moveTo(n.state.Target(n.state.perScreen))
	case keybinds.ActionGoToTop:
		return stay, n.moveTo(0)
	case keybinds.ActionGoToBottom:
		return stay, n.moveTo(len(n.state.entries) - 1)
	case keybinds.ActionDownload:
		return n.downloadSelected(ctx)
	case keybinds.ActionUpload:
		return n.uploadHere(ctx)
	case keybinds.ActionDelete:
		return n.deleteSelected(ctx)
	case keybinds.ActionSearch:
		return stay, n.search()
	case keybinds.ActionCopyToClipboard:
		return stay, n.copySelected()
	case keybinds.ActionRefresh:
		return refetch, nil
	}
	return stay, nil
}

// open descends into the selected entry
func (n *Navigator) open() outcome {
	sel, ok := n.state.Selected()
	if !ok {
		return stay
	}
	n.location = entry.Join(n.location, sel.Name)
	n.state.Reset()
	return refetch
}

// moveTo selects index. Within the page only the two markers are
// rewritten; a page change reprints the listing.
func (n *Navigator) moveTo(index int) error {
	if len(n.state.entries) == 0 || index < 0 || index == n.state.selected {
		return nil
	}

	if n.state.Page(index) != n.state.Page(n.state.selected) {
		n.state.Select(index)
		return n.renderListing()
	}

	if err := n.repaintMarker(markerUnselected); err != nil {
		return err
	}
	n.state.Select(index)
	return n.repaintMarker(markerSelected)
}

func (n *Navigator) search() error {
	query, ok, err := n.pickers.Prompt("Jump to")
	if err != nil {
		return fmt.Errorf("search prompt: %w", err)
	}
	if err := n.hideCursor(); err != nil {
		return err
	}

	if ok && query != "" {
		if index, found := bestMatch(query, n.state.entries); found {
			n.state.Select(index)
		} else if err := n.printf("<Nothing matches %q>\n", query); err != nil {
			return err
		}
	}
	return n.renderListing()
}

func (n *Navigator) copySelected() error {
	sel, ok := n.state.Selected()
	if !ok {
		return nil
	}

	target := entry.Join(n.location, sel.Name)
	if err := n.copyText(target.String()); err != nil {
		logging.Warn("clipboard write failed", logging.Err(err))
		if err := n.printf("<Couldn't copy to clipboard: %v>\n", err); err != nil {
			return err
		}
	} else if err := n.printf("<Copied %s>\n", entry.Display(target)); err != nil {
		return err
	}
	return n.renderListing()
}

func (n *Navigator) printf(format string, args ...any) error {
	_, err := fmt.Fprintf(n.out, format, args...)
	return err
}
