package frame_test

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/coreman2200/funtimes-sidshield/internal/diagnostics"
	"github.com/coreman2200/funtimes-sidshield/internal/frame"
	"github.com/coreman2200/funtimes-sidshield/internal/sid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readAll(t *testing.T, in []byte) [][]byte {
	t.Helper()
	r := frame.NewReader(bytes.NewReader(in))
	var out [][]byte
	for {
		f, err := r.Next()
		if errors.Is(err, io.EOF) {
			return out
		}
		require.NoError(t, err)
		out = append(out, append([]byte{}, f...))
	}
}

func TestReader_Framing(t *testing.T) {
	cases := []struct {
		Name   string
		In     []byte
		Expect [][]byte
	}{
		{"empty stream", nil, nil},
		{"single frame", []byte{0x01, 0x10, 0x05, 0x09, 0xFF}, [][]byte{{0x01, 0x10, 0x05, 0x09}}},
		{"empty frame", []byte{0xFF}, [][]byte{{}}},
		{"two frames", []byte{0x01, 0x02, 0xFF, 0x03, 0x04, 0xFF}, [][]byte{{0x01, 0x02}, {0x03, 0x04}}},
		{"sentinel as data", []byte{0x18, 0xFF, 0xFF}, [][]byte{{0x18, 0xFF}}},
		{"sentinel as data mid frame", []byte{0x04, 0xFF, 0x05, 0x11, 0xFF}, [][]byte{{0x04, 0xFF, 0x05, 0x11}}},
		{"odd frame swallows sentinel", []byte{0x05, 0x09, 0x01, 0xFF, 0xFF}, [][]byte{{0x05, 0x09, 0x01, 0xFF}}},
		{"partial trailing frame dropped", []byte{0x01, 0x02, 0xFF, 0x03}, [][]byte{{0x01, 0x02}}},
		{"unterminated", []byte{0x01, 0x02}, nil},
	}
	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			assert.Equal(t, c.Expect, readAll(t, c.In))
		})
	}
}

type failingReader struct{ err error }

func (f failingReader) Read([]byte) (int, error) { return 0, f.err }

func TestReader_ReadError(t *testing.T) {
	boom := errors.New("pipe broke")
	_, err := frame.NewReader(failingReader{boom}).Next()
	assert.ErrorIs(t, err, frame.ErrRead)
	assert.NotErrorIs(t, err, io.EOF)
}

func TestDecode(t *testing.T) {
	writes, diags, err := frame.Decode(frame.Frame{0x01, 0x10, 0x05, 0x09})
	require.NoError(t, err)
	assert.Empty(t, diags)
	assert.Equal(t, []sid.RegisterWrite{{Address: 1, Data: 0x10}, {Address: 5, Data: 0x09}}, writes)
}

func TestDecode_Dangling(t *testing.T) {
	writes, diags, err := frame.Decode(frame.Frame{0x05, 0x09, 0x01})
	require.NoError(t, err)
	assert.Equal(t, []sid.RegisterWrite{{Address: 5, Data: 9}}, writes)
	require.Len(t, diags, 1)
	assert.Equal(t, diagnostics.CodeDangling, diags[0].Code)
	assert.Equal(t, byte(0x01), diags[0].Evidence["address"])
	assert.Equal(t, 2, diags[0].Evidence["offset"])
}

func TestDecode_OddLengths(t *testing.T) {
	for n := 1; n < 16; n += 2 {
		f := make(frame.Frame, n)
		writes, diags, err := frame.Decode(f)
		require.NoError(t, err)
		assert.Len(t, writes, (n-1)/2)
		assert.Len(t, diags, 1)
	}
}

func TestDecode_AddressOutOfRange(t *testing.T) {
	writes, _, err := frame.Decode(frame.Frame{0x18, 0x0F, 0x20, 0x01})
	assert.ErrorIs(t, err, sid.ErrAddressOutOfRange)
	assert.Empty(t, writes)

	var oe *frame.OffsetError
	require.ErrorAs(t, err, &oe)
	assert.Equal(t, 2, oe.Offset)
}

func TestAddressRangeDiagnostic(t *testing.T) {
	d := frame.AddressRange(0x20, 4)
	assert.Equal(t, diagnostics.Err, d.Severity)
	assert.Equal(t, diagnostics.CodeAddressRange, d.Code)
	assert.Equal(t, byte(0x20), d.Evidence["address"])
	assert.Equal(t, 4, d.Evidence["offset"])
}

func TestEncode_RoundTrip(t *testing.T) {
	var in []sid.RegisterWrite
	for a := 0; a < sid.AddressCount; a++ {
		in = append(in, sid.RegisterWrite{Address: uint8(a), Data: uint8(255 - a*3)})
	}
	in = append(in, sid.RegisterWrite{Address: 0x18, Data: 0xFF}, sid.RegisterWrite{Address: 0x1F, Data: 0xFF})

	b, err := frame.Encode(in...)
	require.NoError(t, err)
	frames := readAll(t, b)
	require.Len(t, frames, 1)

	out, diags, err := frame.Decode(frames[0])
	require.NoError(t, err)
	assert.Empty(t, diags)
	assert.Equal(t, in, out)
}

func TestEncode_RejectsWideAddress(t *testing.T) {
	_, err := frame.Encode(sid.RegisterWrite{Address: 0x20})
	assert.ErrorIs(t, err, sid.ErrAddressOutOfRange)
}
