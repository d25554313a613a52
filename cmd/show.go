package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/desertthunder/listmerge/internal/formatter"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// Show loads the lists once and prints them in the requested format.
func (r *Runner) Show(ctx context.Context, cmd *cli.Command) error {
	format := cmd.String("format")
	source := r.listSource(sourceOverrides{
		file:    cmd.String("file"),
		url:     cmd.String("url"),
		noDelay: true,
	})

	r.logger.Debug("loading lists", "source", source.Name())
	lists, err := source.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load lists from %s: %w", source.Name(), err)
	}

	data, err := formatter.Export(lists, format)
	if err != nil {
		return err
	}

	if path := cmd.String("output"); path != "" {
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("failed to write export: %w", err)
		}
		r.logger.Info("lists exported", "path", path, "format", format, "lists", len(lists))
		return r.writePlain("✓ Exported %d lists to %s\n", len(lists), path)
	}

	if width, ok := terminalWidth(r.output); ok && formatter.IsMarkdown(format) && !cmd.Bool("raw") {
		rendered, err := formatter.RenderMarkdown(data, width)
		if err != nil {
			r.logger.Warn("markdown rendering failed, printing raw", "error", err)
		} else {
			data = rendered
		}
	}

	if _, err := r.output.Write(data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// terminalWidth reports the column count of w when it is a terminal.
func terminalWidth(w io.Writer) (int, bool) {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0, false
	}

	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 80, true
	}
	return width, true
}
