// Package asyncdec decodes qoi files in the background, handing out
// completed scanline bands while the rest of the image is still decoding.
// The consumer polls Next between frames and never blocks on the decode.
package asyncdec

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/qoiview/qoiview/qoi"
)

// chunkSize is how much compressed input is read per iteration.
const chunkSize = 48 * 1024

// Band is a horizontal strip of fully decoded scanlines.
type Band struct {
	Start int    // first row of the band
	Count int    // number of rows
	Pix   []byte // Count full scanlines, aliasing the framebuffer
}

// Decoder owns one decode at a time. Start cancels any in-flight decode and
// begins a new one; Next drains rows completed since the previous call.
type Decoder struct {
	mu   sync.Mutex
	cond *sync.Cond

	gen     int // bumped by Start; stale workers see a newer gen and quit
	desc    qoi.Desc
	buf     []byte
	decoded int // bytes of buf filled, monotonic per gen
	nextRow int // first row not yet handed out
	done    bool
	err     error
}

// New returns an idle Decoder.
func New() *Decoder {
	d := &Decoder{}
	d.cond = sync.NewCond(&d.mu)
	return d
}

// Start begins decoding path. The returned Desc is valid immediately; pixel
// bands become available from Next as the worker progresses.
func (d *Decoder) Start(path string) (qoi.Desc, error) {
	f, err := os.Open(path)
	if err != nil {
		return qoi.Desc{}, err
	}
	desc, err := qoi.DecodeHeader(f)
	if err != nil {
		f.Close()
		return qoi.Desc{}, fmt.Errorf("read header of %s: %w", path, err)
	}

	d.mu.Lock()
	d.gen++
	d.desc = desc
	d.buf = make([]byte, desc.PixLen())
	d.decoded = 0
	d.nextRow = 0
	d.done = false
	d.err = nil
	gen := d.gen
	buf := d.buf
	d.mu.Unlock()

	go d.run(gen, f, desc, buf)
	return desc, nil
}

// Next returns the next band of rows completed since the last call.
// ok is false when no new rows are ready; poll again later.
func (d *Decoder) Next() (band Band, ok bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.buf == nil || d.nextRow >= int(d.desc.Height) {
		return Band{}, false
	}

	stride := d.desc.Stride()
	ready := d.decoded / stride
	if ready <= d.nextRow {
		return Band{}, false
	}

	band = Band{
		Start: d.nextRow,
		Count: ready - d.nextRow,
		Pix:   d.buf[d.nextRow*stride : ready*stride],
	}
	d.nextRow = ready
	return band, true
}

// Wait blocks until the current decode finishes and returns its error.
func (d *Decoder) Wait() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	gen := d.gen
	for !d.done && d.gen == gen {
		d.cond.Wait()
	}
	return d.err
}

// Done reports whether the current decode has finished.
func (d *Decoder) Done() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.done
}

// Err returns the error of the current decode, if it has failed.
func (d *Decoder) Err() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.err
}

// Stop abandons any in-flight decode.
func (d *Decoder) Stop() {
	d.mu.Lock()
	d.gen++
	d.buf = nil
	d.done = true
	d.cond.Broadcast()
	d.mu.Unlock()
}

// run is the worker. It writes only into its own buf and publishes progress
// under the mutex, so a superseded worker can never corrupt a newer decode.
func (d *Decoder) run(gen int, f *os.File, desc qoi.Desc, buf []byte) {
	defer f.Close()

	dec := qoi.NewDecoder(desc)
	in := make([]byte, chunkSize)
	leftover := 0
	offset := 0

	for !dec.Done() {
		n, err := f.Read(in[leftover:])
		if n == 0 && err != nil {
			if err == io.EOF {
				err = qoi.ErrTruncated
			}
			d.finish(gen, err)
			return
		}

		avail := in[:leftover+n]
		w, p, err := dec.Decode(buf[offset:], avail)
		if err != nil {
			d.finish(gen, err)
			return
		}
		offset += w
		leftover = copy(in, avail[p:])

		d.mu.Lock()
		if d.gen != gen {
			d.mu.Unlock()
			return
		}
		d.decoded = offset
		d.mu.Unlock()

		if dec.Done() {
			break
		}
		if p == 0 && n == 0 {
			d.finish(gen, qoi.ErrTruncated)
			return
		}
	}
	d.finish(gen, nil)
}

func (d *Decoder) finish(gen int, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.gen != gen {
		return
	}
	d.done = true
	d.err = err
	d.cond.Broadcast()
}
