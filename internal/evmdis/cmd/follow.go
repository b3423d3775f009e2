package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/nxadm/tail"
)

// runFollow decodes path as it grows until ctx is cancelled. Each line
// appended to the file is fed to the decoder; hex digits of one byte may be
// split across lines.
func runFollow(ctx context.Context, w io.Writer, path string, opts listingOptions) error {
	t, err := tail.TailFile(path, tail.Config{
		Follow:    true,
		MustExist: true,
		Poll:      true, // works on filesystems without inotify
		Logger:    tail.DiscardingLogger,
	})
	if err != nil {
		return fmt.Errorf("failed to follow %s: %w", path, err)
	}
	defer t.Cleanup()

	pr, pw := io.Pipe()
	go func() {
		for {
			select {
			case <-ctx.Done():
				pw.Close()
				return
			case line, ok := <-t.Lines:
				if !ok {
					pw.CloseWithError(t.Err())
					return
				}
				if line.Err != nil {
					pw.CloseWithError(line.Err)
					return
				}
				if _, err := io.WriteString(pw, line.Text+"\n"); err != nil {
					return
				}
			}
		}
	}()

	err = disassemble(w, pr, opts)
	pr.Close()
	if stopErr := t.Stop(); stopErr != nil {
		slog.Debug("Stopping tail", "error", stopErr)
	}
	if ctx.Err() != nil && err == nil {
		slog.Debug("Follow interrupted", "file", path)
	}
	return err
}
