// Package frame splits the input byte stream into sentinel-terminated frames
// and decodes them into register writes.
//
// A frame is a run of (address, data) byte pairs followed by Sentinel. Because
// Sentinel is also a legal data byte, it only terminates a frame when the bytes
// collected before it are of even count; at an odd count it is payload.
package frame

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/coreman2200/funtimes-sidshield/internal/diagnostics"
	"github.com/coreman2200/funtimes-sidshield/internal/sid"
)

const Sentinel byte = 0xFF

var ErrRead = errors.New("frame: read failed")

// Frame is the payload between two terminators, sentinel stripped.
type Frame []byte

// Reader yields frames from an unbounded byte stream.
type Reader struct {
	r   *bufio.Reader
	buf []byte
}

func NewReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReader(r), buf: make([]byte, 0, 64)}
}

// Next blocks until a complete frame has been read. The returned frame is only
// valid until the following call. At end of stream it returns io.EOF and drops
// any partial frame.
func (r *Reader) Next() (Frame, error) {
	r.buf = r.buf[:0]
	for {
		b, err := r.r.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, io.EOF
			}
			return nil, fmt.Errorf("%w: %v", ErrRead, err)
		}
		if b == Sentinel && len(r.buf)%2 == 0 {
			return Frame(r.buf), nil
		}
		r.buf = append(r.buf, b)
	}
}

// Decode splits f into register writes in stream order. A trailing unpaired
// byte is reported as a diagnostic and skipped. An address outside the 5-bit
// bus fails the whole frame with an error wrapping sid.ErrAddressOutOfRange,
// and no writes are returned.
func Decode(f Frame) ([]sid.RegisterWrite, []diagnostics.Diagnostic, error) {
	writes := make([]sid.RegisterWrite, 0, len(f)/2)
	var diags []diagnostics.Diagnostic
	for i := 0; i < len(f); i += 2 {
		if i+1 == len(f) {
			diags = append(diags, Dangling(f[i], i))
			break
		}
		w, err := sid.NewRegisterWrite(f[i], f[i+1])
		if err != nil {
			return nil, nil, &OffsetError{Offset: i, Err: err}
		}
		writes = append(writes, w)
	}
	return writes, diags, nil
}

// OffsetError locates a decode failure inside a frame.
type OffsetError struct {
	Offset int
	Err    error
}

func (e *OffsetError) Error() string { return fmt.Sprintf("frame: offset %d: %v", e.Offset, e.Err) }

func (e *OffsetError) Unwrap() error { return e.Err }

// AddressRange describes an address byte at offset that does not fit the 5-bit bus.
func AddressRange(addr byte, offset int) diagnostics.Diagnostic {
	return diagnostics.Diagnostic{
		Severity: diagnostics.Err,
		Code:     diagnostics.CodeAddressRange,
		Summary:  fmt.Sprintf("addr %02X out of range", addr),
		Evidence: map[string]any{"address": addr, "offset": offset},
	}
}

// Dangling describes an address byte left without data at offset.
func Dangling(addr byte, offset int) diagnostics.Diagnostic {
	return diagnostics.Diagnostic{
		Severity: diagnostics.Warn,
		Code:     diagnostics.CodeDangling,
		Summary:  fmt.Sprintf("no data for addr %02X", addr),
		Evidence: map[string]any{"address": addr, "offset": offset},
	}
}

// Append encodes writes as one frame onto dst, sentinel included.
func Append(dst []byte, writes ...sid.RegisterWrite) ([]byte, error) {
	for _, w := range writes {
		if w.Address >= sid.AddressCount {
			return dst, &sid.AddressError{Address: w.Address}
		}
		dst = append(dst, w.Address, w.Data)
	}
	return append(dst, Sentinel), nil
}

// Encode returns writes as one terminated frame.
func Encode(writes ...sid.RegisterWrite) ([]byte, error) {
	return Append(make([]byte, 0, 2*len(writes)+1), writes...)
}
