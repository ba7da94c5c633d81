package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"unicode"

	"github.com/sgaunet/fsj/pkg/app"
	"github.com/sgaunet/fsj/pkg/constants"
	"github.com/sgaunet/fsj/pkg/errcode"
)

var (
	errArgCount    = errors.New("wrong number of arguments")
	errUnknownFlag = errors.New("unknown option")
	errAlphaValue  = errors.New("option value contains letters")
)

// parseArgs turns the legacy command line (program, option, path) into a
// request. The option value is glued to the option letter: -n10, -s512.
//
// The path is opened for reading once the shape of the command line is
// known, so a missing input is reported before anything is created.
func parseArgs(args []string) (app.Request, error) {
	if len(args) != constants.ExpectedArgs {
		return app.Request{}, errcode.New(errcode.Usage, "", errArgCount)
	}
	opt, path := args[1], args[2]
	if len(opt) < 2 || opt[0] != '-' {
		return app.Request{}, errcode.New(errcode.Usage, opt, errUnknownFlag)
	}
	letter, value := opt[1], opt[2:]
	if letter != 'n' && letter != 's' && letter != 'j' {
		return app.Request{}, errcode.New(errcode.Usage, opt, errUnknownFlag)
	}

	if err := checkReadable(path); err != nil {
		return app.Request{}, err
	}
	if hasAlpha(value) {
		return app.Request{}, errcode.New(errcode.Usage, opt, errAlphaValue)
	}

	switch letter {
	case 'n':
		parts, err := parseValue(opt, value)
		if err != nil {
			return app.Request{}, err
		}
		return app.Request{Op: app.OpSplit, Path: path, Parts: parts}, nil
	case 's':
		size, err := parseValue(opt, value)
		if err != nil {
			return app.Request{}, err
		}
		if size < 0 {
			return app.Request{}, errcode.New(errcode.InvalidParameters, opt, fmt.Errorf("negative part size %d", size))
		}
		return app.Request{Op: app.OpSplit, Path: path, PartSize: uint64(size)}, nil
	default:
		return app.Request{Op: app.OpJoin, Path: path}, nil
	}
}

// parseValue reads a decimal option value. An empty value is zero and is
// rejected later by the chunk planner.
func parseValue(opt, value string) (int64, error) {
	if value == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, errcode.New(errcode.InvalidParameters, opt, err)
	}
	return n, nil
}

func checkReadable(path string) error {
	f, err := os.Open(path) //nolint:gosec // G304: the user names the file to process
	if err != nil {
		return errcode.New(errcode.CannotOpenSource, path, err)
	}
	_ = f.Close()
	return nil
}

// hasAlpha reports whether s holds an ASCII letter before its first
// non ASCII byte.
func hasAlpha(s string) bool {
	for i := range len(s) {
		c := s[i]
		if c > unicode.MaxASCII {
			return false
		}
		if ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') {
			return true
		}
	}
	return false
}
