// Package qoi implements the Quite OK Image format.
//
// Besides the usual whole-buffer Decode/Encode entry points it exposes an
// incremental Decoder that consumes input in arbitrarily sized chunks, so a
// caller can decode from a stream while pixels become available.
package qoi

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// Channels is the number of color channels stored per pixel.
type Channels uint8

const (
	RGB  Channels = 3
	RGBA Channels = 4
)

func (c Channels) String() string {
	switch c {
	case RGB:
		return "rgb"
	case RGBA:
		return "rgba"
	}
	return fmt.Sprintf("channels(%d)", uint8(c))
}

// Colorspace is informative only; pixel values are unaffected.
type Colorspace uint8

const (
	SRGB   Colorspace = 0
	Linear Colorspace = 1
)

// Desc describes an image as stored in the qoi header.
type Desc struct {
	Width      uint32
	Height     uint32
	Channels   Channels
	Colorspace Colorspace
}

// PixLen returns the size in bytes of the decoded pixel buffer.
func (d Desc) PixLen() int {
	return int(d.Width) * int(d.Height) * int(d.Channels)
}

// Stride returns the size in bytes of one scanline.
func (d Desc) Stride() int {
	return int(d.Width) * int(d.Channels)
}

const (
	// HeaderSize is the size of the fixed qoi file header.
	HeaderSize = 14
	// EndMarkerSize is the size of the stream end marker
	// (seven 0x00 bytes followed by 0x01).
	EndMarkerSize = 8

	// pixelsMax bounds width*height, per the format specification.
	pixelsMax = 400_000_000
)

var magic = [4]byte{'q', 'o', 'i', 'f'}

var endMarker = [EndMarkerSize]byte{0, 0, 0, 0, 0, 0, 0, 1}

var (
	ErrMagic     = errors.New("qoi: bad magic")
	ErrHeader    = errors.New("qoi: invalid header")
	ErrTooLarge  = errors.New("qoi: image dimensions too large")
	ErrTruncated = errors.New("qoi: truncated stream")
	ErrShortDst  = errors.New("qoi: destination buffer too small")
	ErrBadEndTag = errors.New("qoi: missing end marker")
	ErrOverflow  = errors.New("qoi: more pixel data than the header declares")
)

// DecodeHeader reads and validates a qoi header from r.
func DecodeHeader(r io.Reader) (Desc, error) {
	var buf [HeaderSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return Desc{}, ErrTruncated
		}
		return Desc{}, err
	}
	return parseHeader(buf[:])
}

func parseHeader(buf []byte) (Desc, error) {
	if [4]byte(buf[:4]) != magic {
		return Desc{}, ErrMagic
	}
	d := Desc{
		Width:      binary.BigEndian.Uint32(buf[4:8]),
		Height:     binary.BigEndian.Uint32(buf[8:12]),
		Channels:   Channels(buf[12]),
		Colorspace: Colorspace(buf[13]),
	}
	if d.Width == 0 || d.Height == 0 {
		return Desc{}, fmt.Errorf("%w: zero dimension %dx%d", ErrHeader, d.Width, d.Height)
	}
	if uint64(d.Width)*uint64(d.Height) > pixelsMax {
		return Desc{}, ErrTooLarge
	}
	if d.Channels != RGB && d.Channels != RGBA {
		return Desc{}, fmt.Errorf("%w: channels %d", ErrHeader, d.Channels)
	}
	if d.Colorspace != SRGB && d.Colorspace != Linear {
		return Desc{}, fmt.Errorf("%w: colorspace %d", ErrHeader, d.Colorspace)
	}
	return d, nil
}

func appendHeader(dst []byte, d Desc) []byte {
	dst = append(dst, magic[:]...)
	dst = binary.BigEndian.AppendUint32(dst, d.Width)
	dst = binary.BigEndian.AppendUint32(dst, d.Height)
	return append(dst, byte(d.Channels), byte(d.Colorspace))
}

// chunk tags
const (
	opIndex = 0x00 // 00xxxxxx
	opDiff  = 0x40 // 01xxxxxx
	opLuma  = 0x80 // 10xxxxxx
	opRun   = 0xc0 // 11xxxxxx
	opRGB   = 0xfe
	opRGBA  = 0xff

	mask2 = 0xc0
)

type pixel [4]byte

func hash(p pixel) int {
	return (int(p[0])*3 + int(p[1])*5 + int(p[2])*7 + int(p[3])*11) % 64
}
