package buttons

// LineSink is one GPIO input pin owned by the MCU emulation. The board
// guarantees every sink is valid once assembly has finished.
type LineSink interface {
	SetLevel(high bool)
}

// ButtonLine ties a button to the pin it drives.
type ButtonLine struct {
	Button Button
	ID     LineID
	Sink   LineSink

	// Asserted mirrors the last level we drove, for diagnostics only. The
	// tracker owns the real pressed state.
	Asserted bool
}

// Signaler drives button lines with the watch's electrical convention: the
// buttons pull their line low while pressed.
type Signaler struct {
	logger Logger
}

// SetLine asserts or deasserts a button line.
func (s Signaler) SetLine(line *ButtonLine, asserted bool) {
	line.Asserted = asserted
	if s.logger != nil {
		if asserted {
			s.logger.Printf("button %v pressed (%v)", line.Button, line.ID)
		} else {
			s.logger.Printf("button %v released (%v)", line.Button, line.ID)
		}
	}
	line.Sink.SetLevel(!asserted)
}

// Logger is the slice of *log.Logger the package writes through.
type Logger interface {
	Printf(format string, v ...interface{})
}
