package qoi

// Encode encodes pix (len must equal d.PixLen()) into a complete qoi file.
func Encode(d Desc, pix []byte) ([]byte, error) {
	if d.Width == 0 || d.Height == 0 || uint64(d.Width)*uint64(d.Height) > pixelsMax {
		return nil, ErrHeader
	}
	if d.Channels != RGB && d.Channels != RGBA {
		return nil, ErrHeader
	}
	if len(pix) != d.PixLen() {
		return nil, ErrShortDst
	}

	out := make([]byte, 0, HeaderSize+len(pix)/2+EndMarkerSize)
	out = appendHeader(out, d)

	ch := int(d.Channels)
	prev := pixel{0, 0, 0, 255}
	var index [64]pixel
	run := 0

	for off := 0; off < len(pix); off += ch {
		px := prev
		copy(px[:3], pix[off:off+3])
		if ch == 4 {
			px[3] = pix[off+3]
		}

		if px == prev {
			run++
			if run == 62 || off+ch == len(pix) {
				out = append(out, opRun|byte(run-1))
				run = 0
			}
			continue
		}
		if run > 0 {
			out = append(out, opRun|byte(run-1))
			run = 0
		}

		h := hash(px)
		switch {
		case index[h] == px:
			out = append(out, opIndex|byte(h))
		case px[3] != prev[3]:
			out = append(out, opRGBA, px[0], px[1], px[2], px[3])
		default:
			dr := px[0] - prev[0]
			dg := px[1] - prev[1]
			db := px[2] - prev[2]
			drg := dr - dg
			dbg := db - dg
			switch {
			case dr+2 < 4 && dg+2 < 4 && db+2 < 4:
				out = append(out, opDiff|(dr+2)<<4|(dg+2)<<2|(db+2))
			case drg+8 < 16 && dg+32 < 64 && dbg+8 < 16:
				out = append(out, opLuma|(dg+32), (drg+8)<<4|(dbg+8))
			default:
				out = append(out, opRGB, px[0], px[1], px[2])
			}
		}
		index[h] = px
		prev = px
	}

	return append(out, endMarker[:]...), nil
}
