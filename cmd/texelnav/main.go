// Copyright © 2025 Texelnav contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texelnav/main.go
// Summary: The texelnav command. Opens a markdown document in the terminal
//          viewer, or renders it to stdout with -dump.
// Usage: Run `texelnav` for the built-in portfolio, `texelnav -f doc.md`
//        for your own document.

package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"

	"github.com/framegrace/texelnav/config"
	"github.com/framegrace/texelnav/content"
	"github.com/framegrace/texelnav/defaults"
	"github.com/framegrace/texelnav/viewer"
)

const version = "0.3.0"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	fs := flag.NewFlagSet("texelnav", flag.ContinueOnError)
	file := fs.String("f", "", "Markdown document to view (default: built-in portfolio)")
	configPath := fs.String("config", "", "Config file location override")
	dump := fs.Bool("dump", false, "Render the document to stdout and exit")
	showVersion := fs.Bool("version", false, "Print version and exit")

	if err := fs.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}

	if *showVersion {
		fmt.Println("texelnav " + version)
		return nil
	}

	if *configPath != "" {
		config.UseFile(*configPath)
	}

	path, src, err := loadSource(*file)
	if err != nil {
		return err
	}

	if *dump {
		return dumpDocument(os.Stdout, src)
	}

	// The terminal belongs to the viewer from here on; logs go to a file.
	if logFile, err := setupLogging(); err == nil {
		defer logFile.Close()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}

	v := viewer.New(viewer.NewTcellDriver(screen))
	defer v.Close()
	if err := v.LoadDocument(path, src); err != nil {
		return err
	}
	return v.Run()
}

// loadSource returns the document's session key and bytes, falling back to
// the embedded portfolio when no file is given.
func loadSource(path string) (string, []byte, error) {
	if path == "" {
		src, err := defaults.Portfolio()
		if err != nil {
			return "", nil, fmt.Errorf("failed to load built-in document: %w", err)
		}
		return "builtin:portfolio", src, nil
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return abs, src, nil
}

// dumpDocument lays the document out at the terminal width and writes it as
// plain text, for piping or quick inspection without entering the TUI.
func dumpDocument(w io.Writer, src []byte) error {
	doc, err := content.ParseMarkdown(src)
	if err != nil {
		return err
	}

	width := 80
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if tw, _, err := term.GetSize(int(f.Fd())); err == nil && tw > 0 {
			width = tw
		}
	}

	layout := content.LayoutDocument(doc, width, nil)
	for i := 0; i < layout.Height(); i++ {
		var b strings.Builder
		for _, r := range layout.Line(i).Runs {
			b.WriteString(r.Text)
		}
		if _, err := fmt.Fprintln(w, b.String()); err != nil {
			return err
		}
	}
	return nil
}

// setupLogging sends the standard logger to a file under the user config
// dir so log lines never corrupt the tcell screen.
func setupLogging() (*os.File, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, err
	}
	logDir := filepath.Join(configDir, "texelnav", "logs")
	if err := os.MkdirAll(logDir, 0o750); err != nil {
		return nil, err
	}
	logPath := filepath.Join(logDir, "texelnav.log")
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o640)
	if err != nil {
		return nil, err
	}
	log.SetOutput(file)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return file, nil
}
