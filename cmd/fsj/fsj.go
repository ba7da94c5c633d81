// Package main provides the fsj command-line tool splitting files into
// chunks and joining them back.
// Copyright (C) 2021  Sylvain Gaunet

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.

// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/sgaunet/fsj/pkg/app"
	"github.com/sgaunet/fsj/pkg/config"
	"github.com/sgaunet/fsj/pkg/constants"
	"github.com/sgaunet/fsj/pkg/errcode"
)

var version = "development"

func printBanner(w io.Writer) {
	fmt.Fprintf(w, "\nFSJ - File Splitter & Joiner %s\n", version)
}

func printUsage(w io.Writer, cfg *config.Config) {
	fmt.Fprintf(w, "\nUsage: fsj <option> <file>\n\n")
	fmt.Fprintf(w, "OPTIONS:\n")
	fmt.Fprintf(w, "  -h                          print this message\n")
	fmt.Fprintf(w, "  -n<parts>                   define # of parts to split file into\n")
	fmt.Fprintf(w, "  -s<part_size>               split file into parts of <part_size> bytes\n")
	fmt.Fprintf(w, "  -j <name_of_join_file.fsj>  join files back together\n")
	fmt.Fprintf(w, "\nEXAMPLES:\n")
	fmt.Fprintf(w, "  # Split file into 10 parts (plus a tail holding the remainder)\n")
	fmt.Fprintf(w, "  fsj -n10 FILE.EXT\n\n")
	fmt.Fprintf(w, "  # Split file into parts of 512 bytes each (plus a tail)\n")
	fmt.Fprintf(w, "  fsj -s512 FILE.EXT\n\n")
	fmt.Fprintf(w, "  # Join the files listed in join_FILE.EXT.fsj into FILE.EXT\n")
	fmt.Fprintf(w, "  fsj -j join_FILE.EXT.fsj\n\n")
	if cfg != nil {
		cfg.Usage(w)
	}
}

// report prints err the way every failure is shown to the user.
func report(w io.Writer, err error) {
	kind, ok := errcode.KindOf(err)
	if !ok {
		fmt.Fprintf(w, "error: %v\n", err)
		return
	}
	fmt.Fprintf(w, "error code: [%d]\n", kind.Code())
	fmt.Fprintf(w, "%v\n", err)
}

func printSummary(w io.Writer, res *app.Result) {
	sep := strings.Repeat("-", constants.SeparatorWidth)
	fmt.Fprintln(w, sep)
	switch res.Op {
	case app.OpSplit:
		fmt.Fprintf(w, "Manifest:        %s\n", res.Output)
		fmt.Fprintf(w, "Chunks written:  %d\n", len(res.Chunks))
		if res.Metrics.FilesPublished > 0 {
			fmt.Fprintf(w, "Files published: %d\n", res.Metrics.FilesPublished)
		}
	case app.OpJoin:
		fmt.Fprintf(w, "Output:          %s\n", res.Output)
		fmt.Fprintf(w, "Chunks joined:   %d\n", len(res.Chunks))
		if res.Metrics.FilesFetched > 0 {
			fmt.Fprintf(w, "Files fetched:   %d\n", res.Metrics.FilesFetched)
		}
	}
	fmt.Fprintf(w, "Bytes written:   %d\n", res.Metrics.BytesWritten)
	fmt.Fprintf(w, "Duration:        %s\n", res.Metrics.Duration)
	fmt.Fprintln(w, sep)
}

// run executes one invocation and returns the process exit status.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "error loading configuration: %v\n", err)
		return constants.ExitFailure
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Configuration validation failed: %v\n", err)
		return constants.ExitFailure
	}

	if !cfg.NoBanner {
		printBanner(stdout)
	}

	req, err := parseArgs(args)
	if err != nil {
		if kind, ok := errcode.KindOf(err); ok && kind == errcode.Usage {
			printUsage(stdout, cfg)
		} else {
			report(stderr, err)
		}
		return constants.ExitFailure
	}

	l := initTrace(stdout, cfg.DebugLevel, cfg.NoLogTime)
	l.Debug("configuration", "config", cfg.Redacted())

	a, err := app.NewApp(ctx, cfg)
	if err != nil {
		report(stderr, err)
		return constants.ExitFailure
	}
	a.SetLogger(l)
	a.SetProgressReporter(app.NewConsoleProgressReporter(l))

	res, err := a.Run(ctx, req)
	if err != nil {
		report(stderr, err)
		return constants.ExitFailure
	}
	printSummary(stdout, res)
	return constants.ExitSuccess
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
