package event

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/klauspost/compress/zstd"
	"github.com/oomph-ac/leapvox/highlight"
	"github.com/oomph-ac/leapvox/oerror"
	"github.com/sasha-s/go-deadlock"
)

// Recorder writes every highlight event it handles, and the ticks it is told about, to a zstd
// compressed stream that can be read back with ReadRecording.
type Recorder struct {
	mu deadlock.Mutex

	f   io.Closer
	enc *zstd.Encoder
	w   *bufio.Writer
	err error

	now func() time.Time
}

var _ highlight.Handler = (*Recorder)(nil)

// NewRecorder starts a recording on the writer passed. Closing the recorder does not close w.
func NewRecorder(w io.Writer) (*Recorder, error) {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		return nil, fmt.Errorf("create zstd writer: %w", err)
	}
	r := &Recorder{enc: enc, w: bufio.NewWriterSize(enc, 32*1024), now: time.Now}
	r.w.WriteByte(byte(len(EventsVersion)))
	r.w.WriteString(EventsVersion)
	return r, nil
}

// CreateRecorder creates the file at path and starts a recording in it. The file is closed with
// the recorder.
func CreateRecorder(path string) (*Recorder, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("create recording: %w", err)
	}
	r, err := NewRecorder(f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	r.f = f
	return r, nil
}

func (r *Recorder) write(ev Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return
	}
	if r.enc == nil {
		r.err = oerror.New("recorder: write after close")
		return
	}
	_, r.err = r.w.Write(ev.Encode())
}

func (r *Recorder) stamp() NopEvent {
	return NopEvent{EvTime: r.now().UnixMilli()}
}

// RecordTick records the start of a host loop tick.
func (r *Recorder) RecordTick(tick int64, dt time.Duration) {
	r.write(TickEvent{NopEvent: r.stamp(), Tick: tick, DeltaMS: float32(dt) / float32(time.Millisecond)})
}

func (r *Recorder) HandleHighlight(pos cube.Pos) {
	r.write(PositionEvent{NopEvent: r.stamp(), Kind: EventIDHighlight, Pos: pos})
}

func (r *Recorder) HandleRemove(pos cube.Pos) {
	r.write(PositionEvent{NopEvent: r.stamp(), Kind: EventIDRemove, Pos: pos})
}

func (r *Recorder) HandleHighlightAdjacent(pos cube.Pos) {
	r.write(PositionEvent{NopEvent: r.stamp(), Kind: EventIDHighlightAdjacent, Pos: pos})
}

func (r *Recorder) HandleRemoveAdjacent(pos cube.Pos) {
	r.write(PositionEvent{NopEvent: r.stamp(), Kind: EventIDRemoveAdjacent, Pos: pos})
}

func (r *Recorder) HandleSelect(sel highlight.Selection) {
	r.write(SelectionEvent{NopEvent: r.stamp(), Selection: sel})
}

func (r *Recorder) HandleDeselect(sel highlight.Selection) {
	r.write(SelectionEvent{NopEvent: r.stamp(), Selection: sel, Deselect: true})
}

// Err returns the first error encountered while writing.
func (r *Recorder) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

// Close flushes the recording. Further events are dropped.
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.enc == nil {
		return r.err
	}

	err := r.w.Flush()
	if cerr := r.enc.Close(); err == nil {
		err = cerr
	}
	r.enc, r.w = nil, nil
	if r.f != nil {
		if cerr := r.f.Close(); err == nil {
			err = cerr
		}
	}
	if r.err == nil {
		r.err = err
	}
	return err
}

// ReadRecording decodes every event of a recording produced by a Recorder.
func ReadRecording(rd io.Reader) ([]Event, error) {
	dec, err := zstd.NewReader(rd)
	if err != nil {
		return nil, fmt.Errorf("create zstd reader: %w", err)
	}
	defer dec.Close()

	dat, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("decompress recording: %w", err)
	}
	buf := bytes.NewBuffer(dat)
	n, err := buf.ReadByte()
	if err != nil {
		return nil, oerror.New("empty recording")
	}
	if version := string(buf.Next(int(n))); version != EventsVersion {
		return nil, oerror.New("unsupported recording version %q, expected %q", version, EventsVersion)
	}
	return DecodeEvents(buf.Bytes())
}
