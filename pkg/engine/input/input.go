// Package input turns lines typed at the maze shell into intents.
package input

import (
	"bufio"
	"io"
	"time"
)

// LineReader reads raw input one line at a time
type LineReader struct {
	scanner *bufio.Scanner
	device  Device
	now     func() time.Time
}

// NewLineReader creates a reader of r attributing lines to device
func NewLineReader(r io.Reader, device Device) *LineReader {
	return &LineReader{
		scanner: bufio.NewScanner(r),
		device:  device,
		now:     time.Now,
	}
}

// Next returns the next line. It returns io.EOF once the input is exhausted.
func (l *LineReader) Next() (RawInput, error) {
	if !l.scanner.Scan() {
		if err := l.scanner.Err(); err != nil {
			return RawInput{}, err
		}
		return RawInput{}, io.EOF
	}
	return RawInput{
		Device:    l.device,
		Code:      l.scanner.Text(),
		Timestamp: l.now(),
	}, nil
}
