package prismal

// Op is the kind of a recorded sink call.
type Op uint8

// Recorded operations.
const (
	OpClear Op = iota
	OpStroke
	OpFill
)

func (o Op) String() string {
	switch o {
	case OpClear:
		return "clear"
	case OpStroke:
		return "stroke"
	case OpFill:
		return "fill"
	default:
		return "unknown"
	}
}

// Command is one recorded sink call.
type Command struct {
	Op    Op
	Path  *Path // nil for OpClear
	Color HSBA
	Width float64 // stroke width, zero otherwise
}

// Recorder is a Sink that stores every call for later playback.
// It is useful for tests and for rendering once into several sinks.
type Recorder struct {
	commands []Command
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// StrokePath implements Sink.
func (r *Recorder) StrokePath(path *Path, style StrokeStyle) {
	r.commands = append(r.commands, Command{Op: OpStroke, Path: path.Clone(), Color: style.Color, Width: style.Width})
}

// FillPath implements Sink.
func (r *Recorder) FillPath(path *Path, style FillStyle) {
	r.commands = append(r.commands, Command{Op: OpFill, Path: path.Clone(), Color: style.Color})
}

// Clear implements Clearer.
func (r *Recorder) Clear(c HSBA) {
	r.commands = append(r.commands, Command{Op: OpClear, Color: c})
}

// Commands returns the recorded calls in order.
func (r *Recorder) Commands() []Command {
	return r.commands
}

// Count returns how many calls of the given kind were recorded.
func (r *Recorder) Count(op Op) int {
	n := 0
	for _, c := range r.commands {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Reset drops all recorded calls.
func (r *Recorder) Reset() {
	r.commands = r.commands[:0]
}

// Playback replays the recorded calls onto sink. Clear commands are only
// forwarded when sink implements Clearer.
func (r *Recorder) Playback(sink Sink) {
	for _, c := range r.commands {
		switch c.Op {
		case OpClear:
			if cl, ok := sink.(Clearer); ok {
				cl.Clear(c.Color)
			}
		case OpStroke:
			sink.StrokePath(c.Path, StrokeStyle{Color: c.Color, Width: c.Width})
		case OpFill:
			sink.FillPath(c.Path, FillStyle{Color: c.Color})
		}
	}
}
