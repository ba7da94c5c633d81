// Package manifest reads and writes the join info file listing the chunk
// files of a split, and owns the naming rules shared by split and join.
//
// The format is the chunk names in write order, each followed by the
// delimiter byte 0x18. There is no header, length prefix or checksum.
package manifest

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sgaunet/fsj/pkg/constants"
	"github.com/sgaunet/fsj/pkg/errcode"
)

// Encode joins names into a manifest blob.
func Encode(names []string) ([]byte, error) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	for _, name := range names {
		if err := w.Append(name); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

// Decode splits a manifest blob back into chunk names.
// A trailing empty segment is dropped; any other empty segment, and an
// empty blob, make the manifest malformed.
func Decode(data []byte) ([]string, error) {
	if len(data) == 0 {
		return nil, errcode.New(errcode.MalformedManifest, "", nil)
	}
	segments := bytes.Split(data, []byte{constants.ManifestDelimiter})
	if len(segments[len(segments)-1]) == 0 {
		segments = segments[:len(segments)-1]
	}

	names := make([]string, 0, len(segments))
	for i, seg := range segments {
		if len(seg) == 0 {
			return nil, errcode.New(errcode.MalformedManifest, "", fmt.Errorf("empty name at position %d", i))
		}
		names = append(names, string(seg))
	}
	return names, nil
}

// Writer appends chunk names to a manifest as they are produced.
type Writer struct {
	w     io.Writer
	names []string
}

// NewWriter returns a Writer appending to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Append writes name followed by the delimiter.
func (mw *Writer) Append(name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	record := make([]byte, 0, len(name)+1)
	record = append(record, name...)
	record = append(record, constants.ManifestDelimiter)

	n, err := mw.w.Write(record)
	if err != nil {
		return errcode.New(errcode.CannotWriteManifest, name, err)
	}
	if n != len(record) {
		return errcode.New(errcode.CannotWriteManifest, name, io.ErrShortWrite)
	}
	mw.names = append(mw.names, name)
	return nil
}

// Names returns the names appended so far, in order.
func (mw *Writer) Names() []string {
	return append([]string(nil), mw.names...)
}

func validateName(name string) error {
	if name == "" {
		return errcode.New(errcode.MalformedManifest, "", fmt.Errorf("empty chunk name"))
	}
	if strings.IndexByte(name, constants.ManifestDelimiter) >= 0 {
		return errcode.New(errcode.MalformedManifest, name, fmt.Errorf("chunk name contains the delimiter byte"))
	}
	return nil
}

// Name returns the manifest file name for source. The path is embedded as
// given, directories included.
func Name(source string) string {
	return constants.ManifestPrefix + source + constants.ManifestExtension
}

// ChunkName returns the file name of chunk index of source: the decimal
// index appended to the path with no separator.
func ChunkName(source string, index uint64) string {
	return source + strconv.FormatUint(index, 10)
}

// OutputName derives the reconstructed file name from a manifest path: the
// text between the first underscore and the last period following it.
// Manifests not named after the "join_<name>.fsj" convention are rejected.
func OutputName(manifestPath string) (string, error) {
	start := strings.IndexByte(manifestPath, constants.OutputNameStart)
	if start < 0 {
		return "", errcode.New(errcode.MalformedManifest, manifestPath, fmt.Errorf("manifest name has no %q", constants.OutputNameStart))
	}
	rest := manifestPath[start+1:]
	end := strings.LastIndexByte(rest, constants.OutputNameEnd)
	if end <= 0 {
		return "", errcode.New(errcode.MalformedManifest, manifestPath, fmt.Errorf("manifest name has no output name before %q", constants.OutputNameEnd))
	}
	return rest[:end], nil
}
