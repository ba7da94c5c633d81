// Package errcode defines the error kinds reported by fsj.
//
// Every failure is detected where it happens, wrapped with its Kind and
// propagated unchanged to the command line, which prints the numeric code
// and the message of the kind before exiting.
package errcode

import (
	"errors"
	"fmt"
)

// Kind identifies the cause of a failure.
type Kind int

// Kinds sharing a code come from the same row of the historical error table.
const (
	Usage Kind = iota
	InvalidParameters
	NotEnoughParts
	PartTooLarge
	CannotOpenSource
	CannotStat
	CannotCreateManifest
	CannotCreateChunk
	CannotWriteManifest
	ShortRead
	ShortWrite
	MalformedManifest
	CannotOpenManifest
	CannotStatManifest
	CannotReadManifest
	CannotCreateOutput
	CannotOpenChunk
	CannotStatChunk
	HookFailed
	StorageFailed
	Interrupted
)

type descriptor struct {
	code    int
	message string
}

var descriptors = map[Kind]descriptor{
	Usage:                {0, "Usage: fsj <option> <file>"},
	CannotOpenSource:     {1, "Cannot open file for reading."},
	CannotOpenManifest:   {1, "Cannot open join info file for reading."},
	CannotOpenChunk:      {1, "Cannot open part file for reading."},
	CannotStat:           {2, "Cannot get stat of file."},
	NotEnoughParts:       {3, "No need to split: file is smaller than the number of parts."},
	PartTooLarge:         {3, "No need to split: part size is not smaller than the file."},
	CannotCreateManifest: {4, "Cannot create join info file. Aborting..."},
	CannotCreateChunk:    {4, "Cannot create part file. Aborting..."},
	CannotCreateOutput:   {4, "Cannot create output file. Aborting..."},
	ShortRead:            {5, "Cannot read from file. Aborting..."},
	CannotReadManifest:   {5, "Cannot read join info file. Aborting..."},
	ShortWrite:           {6, "Cannot write to file. Aborting..."},
	InvalidParameters:    {7, "Part and/or Part_size parameters must be > 0."},
	CannotWriteManifest:  {8, "Cannot write to join info file. Aborting..."},
	CannotStatManifest:   {9, "Cannot get stats of join file. Aborting..."},
	CannotStatChunk:      {9, "Cannot get stats of part file. Aborting..."},
	MalformedManifest:    {10, "Join info file is empty or malformed."},
	HookFailed:           {11, "Hook command failed."},
	StorageFailed:        {12, "Storage operation failed."},
	Interrupted:          {13, "Interrupted. Files written so far are left in place."},
}

// Code returns the numeric error code printed to the user.
func (k Kind) Code() int {
	return descriptors[k].code
}

// Message returns the human readable description of the kind.
func (k Kind) Message() string {
	if d, ok := descriptors[k]; ok {
		return d.message
	}
	return fmt.Sprintf("unknown error kind %d", int(k))
}

// Error implements the error interface so a Kind can be used with errors.Is.
func (k Kind) Error() string {
	return k.Message()
}

// Error is a failure tagged with its Kind.
type Error struct {
	Kind Kind
	// Subject is the file or value the failure relates to, if any.
	Subject string
	Err     error
}

// New wraps cause with kind. Subject names the file involved and may be empty.
func New(kind Kind, subject string, cause error) *Error {
	return &Error{Kind: kind, Subject: subject, Err: cause}
}

func (e *Error) Error() string {
	msg := e.Kind.Message()
	if e.Subject != "" {
		msg = fmt.Sprintf("%s [%s]", msg, e.Subject)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap exposes the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the Kind of e.
func (e *Error) Is(target error) bool {
	var k Kind
	if errors.As(target, &k) {
		return e.Kind == k
	}
	return false
}

// KindOf extracts the Kind carried by err. Errors that were never tagged
// are reported as ok == false.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	var k Kind
	if errors.As(err, &k) {
		return k, true
	}
	return 0, false
}
