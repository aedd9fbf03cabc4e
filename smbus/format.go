package smbus

import (
	"encoding/binary"
	"errors"
	"fmt"
)

var ErrShortBuffer = errors.New("buffer too short for format")
var ErrUnknownFormatChar = errors.New("unknown format character")

// Field describes one integer in a register block.
type Field struct {
	Size   int
	Signed bool
	Order  binary.ByteOrder
}

var (
	Uint8    = Field{Size: 1, Order: binary.LittleEndian}
	Int8     = Field{Size: 1, Signed: true, Order: binary.LittleEndian}
	Uint16LE = Field{Size: 2, Order: binary.LittleEndian}
	Uint16BE = Field{Size: 2, Order: binary.BigEndian}
	Int16LE  = Field{Size: 2, Signed: true, Order: binary.LittleEndian}
	Int16BE  = Field{Size: 2, Signed: true, Order: binary.BigEndian}
)

func (f Field) decode(b []byte) int {
	if f.Size == 1 {
		if f.Signed {
			return int(int8(b[0]))
		}
		return int(b[0])
	}
	v := f.Order.Uint16(b)
	if f.Signed {
		return int(int16(v))
	}
	return int(v)
}

// Format is an ordered list of fields laid out back to back.
type Format []Field

// Channels is the TCS3472 data block layout: clear, red, green, blue.
var Channels = MustParseFormat("HHHH")

// Size returns the number of bytes the format consumes.
func (f Format) Size() int {
	n := 0
	for _, field := range f {
		n += field.Size
	}
	return n
}

// Decode interprets buf according to the format. Trailing bytes are ignored.
func (f Format) Decode(buf []byte) ([]int, error) {
	size := f.Size()
	if len(buf) < size {
		return nil, fmt.Errorf("%w: need %d bytes, got %d", ErrShortBuffer, size, len(buf))
	}
	res := make([]int, len(f))
	offset := 0
	for i, field := range f {
		res[i] = field.decode(buf[offset : offset+field.Size])
		offset += field.Size
	}
	return res, nil
}

// ParseFormat reads struct-style notation. '<' and '>' switch byte order for
// every following field (little endian until told otherwise); 'B' and 'c'
// are unsigned bytes, 'b' a signed byte, 'H' and 'h' unsigned and signed
// 16-bit words.
func ParseFormat(s string) (Format, error) {
	var order binary.ByteOrder = binary.LittleEndian
	format := make(Format, 0, len(s))
	for i, c := range s {
		switch c {
		case '<':
			order = binary.LittleEndian
		case '>':
			order = binary.BigEndian
		case 'B', 'c':
			format = append(format, Field{Size: 1, Order: order})
		case 'b':
			format = append(format, Field{Size: 1, Signed: true, Order: order})
		case 'H':
			format = append(format, Field{Size: 2, Order: order})
		case 'h':
			format = append(format, Field{Size: 2, Signed: true, Order: order})
		default:
			return nil, fmt.Errorf("%w %q at position %d", ErrUnknownFormatChar, c, i)
		}
	}
	return format, nil
}

// MustParseFormat is ParseFormat for formats known at compile time. It panics
// on malformed input.
func MustParseFormat(s string) Format {
	f, err := ParseFormat(s)
	if err != nil {
		panic(err)
	}
	return f
}

// Unpack parses format and decodes buf with it.
func Unpack(format string, buf []byte) ([]int, error) {
	f, err := ParseFormat(format)
	if err != nil {
		return nil, err
	}
	return f.Decode(buf)
}
