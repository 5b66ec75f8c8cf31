// Package replay records the bodies of a scene frame by frame as a stream of
// msgpack-encoded frames.
package replay

import (
	"errors"
	"fmt"
	"io"

	"github.com/akmonengine/quill/actor"
	"github.com/vmihailenco/msgpack/v5"
)

// BodySnapshot is the state of one body at the end of a frame
type BodySnapshot struct {
	Kind     string     `msgpack:"kind"`
	Centroid [2]float64 `msgpack:"centroid"`
	Velocity [2]float64 `msgpack:"velocity"`
	Rotation float64    `msgpack:"rotation"`
	Color    [3]float64 `msgpack:"color"`
}

// Frame is one recorded step
type Frame struct {
	Index  int            `msgpack:"index"`
	Time   float64        `msgpack:"time"`
	Bodies []BodySnapshot `msgpack:"bodies"`
}

// Snapshot captures the live bodies, removed ones are skipped.
// The kind is named through fmt.Stringer when the body's kind implements it.
func Snapshot(bodies []*actor.Body) []BodySnapshot {
	snapshots := make([]BodySnapshot, 0, len(bodies))
	for _, body := range bodies {
		if body.IsRemoved() {
			continue
		}

		centroid := body.Centroid()
		velocity := body.Velocity()
		color := body.Color()
		snapshots = append(snapshots, BodySnapshot{
			Kind:     kindName(body.Kind()),
			Centroid: [2]float64{centroid.X(), centroid.Y()},
			Velocity: [2]float64{velocity.X(), velocity.Y()},
			Rotation: body.Rotation(),
			Color:    [3]float64{color.R, color.G, color.B},
		})
	}

	return snapshots
}

func kindName(kind any) string {
	switch k := kind.(type) {
	case nil:
		return ""
	case fmt.Stringer:
		return k.String()
	case string:
		return k
	}

	return fmt.Sprintf("%v", kind)
}

// Recorder appends frames to a writer
type Recorder struct {
	encoder *msgpack.Encoder
	frames  int
}

func NewRecorder(w io.Writer) *Recorder {
	return &Recorder{encoder: msgpack.NewEncoder(w)}
}

// Record writes a frame of the given bodies. Frames are numbered from 0.
func (r *Recorder) Record(time float64, bodies []*actor.Body) error {
	frame := Frame{
		Index:  r.frames,
		Time:   time,
		Bodies: Snapshot(bodies),
	}
	if err := r.encoder.Encode(&frame); err != nil {
		return fmt.Errorf("encoding frame %d: %w", frame.Index, err)
	}
	r.frames++

	return nil
}

// Frames returns the number of frames recorded so far
func (r *Recorder) Frames() int {
	return r.frames
}

// ReadAll decodes every frame of r until the end of the stream
func ReadAll(r io.Reader) ([]Frame, error) {
	decoder := msgpack.NewDecoder(r)

	var frames []Frame
	for {
		var frame Frame
		err := decoder.Decode(&frame)
		if errors.Is(err, io.EOF) {
			return frames, nil
		}
		if err != nil {
			return frames, fmt.Errorf("decoding frame %d: %w", len(frames), err)
		}
		frames = append(frames, frame)
	}
}
