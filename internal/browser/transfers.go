package browser

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/studiowebux/doh/internal/entry"
	"github.com/studiowebux/doh/internal/logging"
	"github.com/studiowebux/doh/internal/rfsapi"
	"github.com/studiowebux/doh/internal/types"
)

const refusalMessage = "<Server doesn't permit write requests>\n"

func (n *Navigator) downloadSelected(ctx context.Context) (outcome, error) {
	sel, ok := n.state.Selected()
	if !ok || sel.IsDir() {
		return stay, nil
	}
	if err := n.download(ctx, entry.Join(n.location, sel.Name)); err != nil {
		return quit, err
	}
	return refetch, nil
}

func (n *Navigator) uploadHere(ctx context.Context) (outcome, error) {
	if !n.canWrite {
		return refetch, n.printf(refusalMessage)
	}
	if err := n.upload(ctx); err != nil {
		return quit, err
	}
	return refetch, nil
}

func (n *Navigator) deleteSelected(ctx context.Context) (outcome, error) {
	if !n.canWrite {
		return refetch, n.printf(refusalMessage)
	}
	sel, ok := n.state.Selected()
	if !ok || sel.IsParent() {
		return stay, nil
	}
	if err := n.remove(ctx, entry.Join(n.location, sel.Name)); err != nil {
		return quit, err
	}
	n.state.Reset()
	return refetch, nil
}

// download asks where to save u and streams it there. Local file errors
// are returned; request failures are printed.
func (n *Navigator) download(ctx context.Context, u *url.URL) error {
	name, ext := entry.SuggestedName(u)
	path, ok, err := n.pickers.Save(name, ext)
	if err != nil {
		return fmt.Errorf("save picker: %w", err)
	}
	if err := n.hideCursor(); err != nil {
		return err
	}
	if !ok {
		return nil
	}

	if err := n.printf("<Downloading to %s...>\n", path); err != nil {
		return err
	}

	start := time.Now()
	record := types.Transfer{
		Timestamp: start,
		Operation: types.OperationDownload,
		URL:       u.String(),
		LocalPath: path,
	}

	raw, err := n.client.FetchRaw(ctx, u)
	if err != nil {
		n.finish(&record, start, err)
		return n.printFailure(u, err)
	}
	defer raw.Body.Close()
	record.Status, record.StatusText = raw.Status.Code, raw.Status.Text

	written, err := n.save(path, raw)
	record.Bytes = written
	n.finish(&record, start, err)
	if err != nil {
		return err
	}
	return n.printf("<Done!>\n")
}

// save copies the body of raw into a new file at path
func (n *Navigator) save(path string, raw *rfsapi.RawResponse) (int64, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	var bar *progressWriter
	var dst io.Writer = f
	if n.progress && raw.Size > 0 {
		width, _ := n.size()
		bar = newProgressWriter(n.out, raw.Size, width)
		dst = io.MultiWriter(f, bar)
	}

	written, err := io.Copy(dst, raw.Body)
	if err != nil {
		return written, fmt.Errorf("failed to download to %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return written, fmt.Errorf("failed to write %s: %w", path, err)
	}
	if bar != nil {
		if err := bar.Finish(); err != nil {
			return written, err
		}
	}
	return written, nil
}

// upload asks for a local file and PUTs it into the current location
func (n *Navigator) upload(ctx context.Context) error {
	path, ok, err := n.pickers.Open()
	if err != nil {
		return fmt.Errorf("open picker: %w", err)
	}
	if err := n.hideCursor(); err != nil {
		return err
	}
	if !ok {
		return nil
	}

	target := entry.Join(n.location, filepath.Base(path))
	if err := n.printf("<Uploading %s to %s...>\n", path, entry.Display(n.location)); err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}

	start := time.Now()
	record := types.Transfer{
		Timestamp: start,
		Operation: types.OperationUpload,
		URL:       target.String(),
		LocalPath: path,
		Bytes:     info.Size(),
	}

	body := &localReader{r: f}
	status, err := n.client.Upload(ctx, target, body, info.Size())
	if body.err != nil {
		n.finish(&record, start, body.err)
		return fmt.Errorf("failed to read %s: %w", path, body.err)
	}
	record.Status, record.StatusText = status.Code, status.Text
	n.finish(&record, start, err)
	return n.printOutcome(target, status, err)
}

// localReader remembers a failed read of the local file, which the HTTP
// client would otherwise report as a request failure
type localReader struct {
	r   io.Reader
	err error
}

func (l *localReader) Read(p []byte) (int, error) {
	n, err := l.r.Read(p)
	if err != nil && !errors.Is(err, io.EOF) {
		l.err = err
	}
	return n, err
}

// remove DELETEs u
func (n *Navigator) remove(ctx context.Context, u *url.URL) error {
	if err := n.printf("<Deleting %s...>\n", entry.Display(u)); err != nil {
		return err
	}

	start := time.Now()
	record := types.Transfer{
		Timestamp: start,
		Operation: types.OperationDelete,
		URL:       u.String(),
	}

	status, err := n.client.Delete(ctx, u)
	record.Status, record.StatusText = status.Code, status.Text
	n.finish(&record, start, err)
	return n.printOutcome(u, status, err)
}

func (n *Navigator) printOutcome(u *url.URL, status rfsapi.Status, err error) error {
	if err != nil {
		return n.printFailure(u, err)
	}
	if status.Success() {
		return n.printf("<Success!>\n")
	}
	return n.printf("<Got %s...>\n", status.Text)
}

// finish completes record and journals it
func (n *Navigator) finish(record *types.Transfer, start time.Time, err error) {
	record.DurationMs = time.Since(start).Milliseconds()
	if err != nil {
		record.Error = err.Error()
		if se, ok := rfsapi.AsStatus(err); ok {
			record.Status, record.StatusText = se.Code, se.Text
		}
	}

	logging.Info("transfer",
		logging.String("operation", string(record.Operation)),
		logging.String("url", record.URL),
		logging.Int("status", record.Status),
		logging.Int64("bytes", record.Bytes),
		logging.Bool("ok", record.Succeeded()))

	if n.history == nil {
		return
	}
	if err := n.history.Record(*record); err != nil {
		logging.Warn("failed to record transfer", logging.Err(err))
	}
}
