package internal

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"

	"github.com/qoiview/qoiview/internal/asyncdec"
	"github.com/qoiview/qoiview/internal/log"
	"github.com/qoiview/qoiview/internal/qoifiles"
	"github.com/qoiview/qoiview/internal/view"
)

// background behind transparent pixels and around the letterbox.
var background = view.Color{R: 16, G: 16, B: 16}

var statusStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("15")).
	Background(lipgloss.Color("236"))

func runView(args []string, single bool) error {
	var in qoifiles.Inputs
	if single {
		if len(args) > 1 {
			return fmt.Errorf("single mode provided but multiple files included")
		}
		if !qoifiles.IsQoi(args[0]) {
			return fmt.Errorf("not a valid qoi file %q", args[0])
		}
		in = qoifiles.Inputs{Files: args}
	} else {
		var err error
		in, err = qoifiles.Gather(args)
		if err != nil {
			return err
		}
	}

	v := &viewer{
		ring:  view.NewRing(in.Files, in.Start),
		dec:   asyncdec.New(),
		state: view.NewState(0, 0),
	}
	defer v.dec.Stop()

	if !v.load(v.ring.Current()) {
		if !v.ring.Next(v.load) {
			return fmt.Errorf("no viewable qoi files")
		}
	}

	if !isatty.IsTerminal(os.Stdout.Fd()) {
		return v.renderOnce()
	}
	return v.run()
}

// viewer ties the decode pipeline to the presentation state.
type viewer struct {
	ring  *view.Ring
	dec   *asyncdec.Decoder
	state view.State
	frame view.Frame

	message string // transient status-line override
}

// load starts decoding path and resets the frame for it. It reports whether
// the file's header could be read, which is what ring eviction keys on.
func (v *viewer) load(path string) bool {
	desc, err := v.dec.Start(path)
	if err != nil {
		logger := log.WithComponent("view")
		logger.Warn().Err(err).Str("file", path).Msg("skipping")
		return false
	}
	v.frame = view.Frame{Desc: desc, Pix: make([]byte, desc.PixLen()), Rows: 0}
	v.state.SetImage(int(desc.Width), int(desc.Height))
	v.state.ResetOffset()
	v.message = ""
	return true
}

// pump drains newly decoded bands into the frame. It reports whether any
// rows arrived.
func (v *viewer) pump() bool {
	got := false
	for {
		band, ok := v.dec.Next()
		if !ok {
			break
		}
		stride := v.frame.Desc.Stride()
		copy(v.frame.Pix[band.Start*stride:], band.Pix)
		v.frame.Rows = band.Start + band.Count
		got = true
	}
	return got
}

// renderOnce is the non-interactive path: decode fully, print one frame.
func (v *viewer) renderOnce() error {
	if err := v.dec.Wait(); err != nil {
		return fmt.Errorf("decode %s: %w", v.ring.Current(), err)
	}
	v.pump()

	cols, rows := 80, 24
	v.state.UpdateAspect(cols, rows*2)
	fmt.Print(view.Render(v.frame, v.state, cols, rows, background))
	fmt.Println(v.state.Title(v.ring.Index(), v.ring.Len(), v.ring.Current()))
	return nil
}

// Key codes delivered by readKeys. Printable keys are their byte value;
// escape sequences map to negatives.
const (
	keyLeft = -(iota + 1)
	keyRight
	keyUp
	keyDown
	keyEsc
)

func readKeys(f *os.File, out chan<- int) {
	r := bufio.NewReader(f)
	for {
		b, err := r.ReadByte()
		if err != nil {
			close(out)
			return
		}
		if b != 0x1b {
			out <- int(b)
			continue
		}
		next, err := r.ReadByte()
		if err != nil {
			close(out)
			return
		}
		if next != '[' {
			out <- keyEsc
			out <- int(next)
			continue
		}
		code, err := r.ReadByte()
		if err != nil {
			close(out)
			return
		}
		switch code {
		case 'A':
			out <- keyUp
		case 'B':
			out <- keyDown
		case 'C':
			out <- keyRight
		case 'D':
			out <- keyLeft
		}
	}
}

func (v *viewer) run() error {
	fd := int(os.Stdin.Fd())
	old, err := term.MakeRaw(fd)
	if err != nil {
		return err
	}
	defer term.Restore(fd, old)

	// alternate screen, cursor off
	fmt.Print("\x1b[?1049h\x1b[?25l")
	defer fmt.Print("\x1b[?25h\x1b[?1049l")

	keys := make(chan int, 8)
	go readKeys(os.Stdin, keys)

	ticker := time.NewTicker(33 * time.Millisecond)
	defer ticker.Stop()

	dirty := true
	for {
		select {
		case k, ok := <-keys:
			if !ok {
				return nil
			}
			quit, err := v.handleKey(k)
			if err != nil || quit {
				return err
			}
			dirty = true

		case <-ticker.C:
			if v.pump() {
				dirty = true
			}
			if err := v.dec.Err(); err != nil {
				if done, aerr := v.advancePast(err); done {
					return aerr
				}
				dirty = true
			}
		}

		if dirty {
			v.draw()
			dirty = false
		}
	}
}

func (v *viewer) handleKey(k int) (quit bool, err error) {
	v.message = ""
	switch k {
	case 'q', keyEsc, 0x03: // q, escape, ctrl-c
		return true, nil
	case 'h':
		v.state.Move(view.Left)
	case 'l':
		v.state.Move(view.Right)
	case 'k':
		v.state.Move(view.Up)
	case 'j':
		v.state.Move(view.Down)
	case 'i', keyUp:
		v.state.ZoomIn()
	case 'o', keyDown:
		v.state.ZoomOut()
	case 'n':
		v.state.CycleFilter()
	case 'r':
		v.state.ResetZoom()
		v.state.ResetOffset()
	case 'p':
		v.message = v.ring.Current()
	case keyRight:
		if !v.ring.Next(v.load) {
			return true, fmt.Errorf("no viewable qoi files left")
		}
	case keyLeft:
		if !v.ring.Prev(v.load) {
			return true, fmt.Errorf("no viewable qoi files left")
		}
	}
	return false, nil
}

// advancePast handles an image whose body failed to decode after its header
// looked fine: it is evicted from the ring and the viewer moves on. done is
// true when no viewable file remains.
func (v *viewer) advancePast(cause error) (done bool, err error) {
	bad := v.ring.Current()
	logger := log.WithComponent("view")
	logger.Warn().Err(cause).Str("file", bad).Msg("decode failed")

	if v.ring.Len() <= 1 {
		return true, fmt.Errorf("decode %s: %w", bad, cause)
	}
	ok := v.ring.Next(func(p string) bool {
		return p != bad && v.load(p)
	})
	if !ok {
		return true, fmt.Errorf("no viewable qoi files left")
	}
	return false, nil
}

func (v *viewer) draw() {
	cols, rows, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || cols <= 0 || rows <= 1 {
		return
	}
	imageRows := rows - 1 // bottom row is the status line
	v.state.UpdateAspect(cols, imageRows*2)

	status := v.message
	if status == "" {
		status = v.state.Title(v.ring.Index(), v.ring.Len(), v.ring.Current())
		if !v.dec.Done() {
			status += " [decoding]"
		}
	}

	frame := view.Render(v.frame, v.state, cols, imageRows, background)
	// raw mode: bare newlines no longer imply carriage return
	frame = strings.ReplaceAll(frame, "\n", "\r\n")

	os.Stdout.WriteString("\x1b[H" + frame + statusStyle.Width(cols).Render(status))
}
