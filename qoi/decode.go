package qoi

// Decoder decodes qoi pixel data incrementally. Feed it the chunk stream
// that follows the header; it stops cleanly at a chunk that is split across
// the current input and picks it up on the next call.
type Decoder struct {
	desc    Desc
	px      pixel
	index   [64]pixel
	emitted int // pixels written so far
	total   int // pixels in the image
}

// NewDecoder returns a Decoder for an image described by d.
func NewDecoder(d Desc) *Decoder {
	return &Decoder{
		desc:  d,
		px:    pixel{0, 0, 0, 255},
		total: int(d.Width) * int(d.Height),
	}
}

// Done reports whether every pixel of the image has been emitted.
func (dec *Decoder) Done() bool {
	return dec.emitted >= dec.total
}

// Decode consumes chunks from src and writes decoded pixels to dst.
// It returns the number of bytes written to dst and consumed from src.
// processed < len(src) means the tail of src holds an incomplete chunk
// (or the image is complete); the caller carries those bytes over.
//
// dst must have room for every pixel the consumed chunks expand to; pass
// the remaining tail of the full framebuffer.
func (dec *Decoder) Decode(dst, src []byte) (written, processed int, err error) {
	ch := int(dec.desc.Channels)

	for processed < len(src) && dec.emitted < dec.total {
		b := src[processed]

		var need int
		switch {
		case b == opRGB:
			need = 4
		case b == opRGBA:
			need = 5
		case b&mask2 == opLuma:
			need = 2
		default:
			need = 1
		}
		if len(src)-processed < need {
			break
		}

		run := 1
		switch {
		case b == opRGB:
			dec.px[0] = src[processed+1]
			dec.px[1] = src[processed+2]
			dec.px[2] = src[processed+3]
		case b == opRGBA:
			dec.px[0] = src[processed+1]
			dec.px[1] = src[processed+2]
			dec.px[2] = src[processed+3]
			dec.px[3] = src[processed+4]
		case b&mask2 == opIndex:
			dec.px = dec.index[b&0x3f]
		case b&mask2 == opDiff:
			dec.px[0] += b>>4&0x03 - 2
			dec.px[1] += b>>2&0x03 - 2
			dec.px[2] += b&0x03 - 2
		case b&mask2 == opLuma:
			dg := b&0x3f - 32
			b2 := src[processed+1]
			dec.px[0] += dg - 8 + b2>>4&0x0f
			dec.px[1] += dg
			dec.px[2] += dg - 8 + b2&0x0f
		default: // opRun
			run = int(b&0x3f) + 1
		}
		dec.index[hash(dec.px)] = dec.px

		if run > dec.total-dec.emitted {
			return written, processed, ErrOverflow
		}
		if len(dst)-written < run*ch {
			return written, processed, ErrShortDst
		}
		for i := 0; i < run; i++ {
			copy(dst[written:], dec.px[:ch])
			written += ch
		}
		dec.emitted += run
		processed += need
	}
	return written, processed, nil
}

// Decode decodes a complete qoi image held in data.
func Decode(data []byte) (Desc, []byte, error) {
	if len(data) < HeaderSize {
		return Desc{}, nil, ErrTruncated
	}
	desc, err := parseHeader(data[:HeaderSize])
	if err != nil {
		return Desc{}, nil, err
	}

	pix := make([]byte, desc.PixLen())
	dec := NewDecoder(desc)
	body := data[HeaderSize:]

	written, processed, err := dec.Decode(pix, body)
	if err != nil {
		return Desc{}, nil, err
	}
	if !dec.Done() || written != len(pix) {
		return Desc{}, nil, ErrTruncated
	}
	if len(body)-processed < EndMarkerSize || [EndMarkerSize]byte(body[processed:processed+EndMarkerSize]) != endMarker {
		return Desc{}, nil, ErrBadEndTag
	}
	return desc, pix, nil
}
