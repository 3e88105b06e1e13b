package draw

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// maxChunkSize keeps individual writes under a typical MTU so frames stream
// smoothly over SSH.
const maxChunkSize = 1400

const (
	seqClear      = "\033[H\033[2J"
	seqHideCursor = "\033[?25l"
	seqShowCursor = "\033[?25h"
)

// ChunkWriter accumulates a frame of terminal output and writes it in chunks.
// Canvas output and text overlays share one ChunkWriter per frame.
type ChunkWriter struct {
	buf    strings.Builder
	bufw   *bufio.Writer
	numBuf [20]byte
	offCol int
	offRow int
}

// NewChunkWriter creates a ChunkWriter that writes to w. The offsets are
// added to every canvas-relative cursor position.
func NewChunkWriter(w io.Writer, offsetCol, offsetRow int) *ChunkWriter {
	return &ChunkWriter{
		bufw:   bufio.NewWriterSize(w, 8192),
		offCol: offsetCol,
		offRow: offsetRow,
	}
}

// SetOffset updates the cursor offset after a resize.
func (cw *ChunkWriter) SetOffset(offsetCol, offsetRow int) {
	cw.offCol = offsetCol
	cw.offRow = offsetRow
}

func (cw *ChunkWriter) moveAbs(col, row int) {
	cw.buf.WriteString("\033[")
	cw.buf.Write(strconv.AppendInt(cw.numBuf[:0], int64(row), 10))
	cw.buf.WriteByte(';')
	cw.buf.Write(strconv.AppendInt(cw.numBuf[:0], int64(col), 10))
	cw.buf.WriteByte('H')
}

// MoveCursor positions the cursor at a 1-based canvas cell.
func (cw *ChunkWriter) MoveCursor(col, row int) {
	cw.moveAbs(col+cw.offCol, row+cw.offRow)
}

// WriteAt writes s starting at a 1-based canvas cell.
func (cw *ChunkWriter) WriteAt(col, row int, s string) {
	cw.MoveCursor(col, row)
	cw.buf.WriteString(s)
}

// WriteCentered writes s centered on a canvas row.
func (cw *ChunkWriter) WriteCentered(centerCol, row int, s string) {
	cw.WriteAt(centerCol-len([]rune(s))/2, row, s)
}

// WriteAbs writes s at a 1-based terminal position, ignoring the offset.
func (cw *ChunkWriter) WriteAbs(col, row int, s string) {
	cw.moveAbs(col, row)
	cw.buf.WriteString(s)
}

// Write implements io.Writer.
func (cw *ChunkWriter) Write(p []byte) (int, error) {
	return cw.buf.Write(p)
}

// WriteString appends raw output.
func (cw *ChunkWriter) WriteString(s string) {
	cw.buf.WriteString(s)
}

// Clear queues a full terminal clear.
func (cw *ChunkWriter) Clear() {
	cw.buf.WriteString(seqClear)
}

// Flush writes the accumulated frame in chunks and resets the buffer.
func (cw *ChunkWriter) Flush() error {
	data := cw.buf.String()
	cw.buf.Reset()
	for len(data) > 0 {
		n := min(len(data), maxChunkSize)
		if _, err := cw.bufw.WriteString(data[:n]); err != nil {
			return err
		}
		data = data[n:]
	}
	return cw.bufw.Flush()
}

var _ io.Writer = (*ChunkWriter)(nil)

// TermSizeFunc returns the terminal dimensions in cells.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc returns the size of the terminal on os.Stdout.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// ClearScreen clears the terminal and moves the cursor to the top-left.
func ClearScreen(w io.Writer) error {
	_, err := io.WriteString(w, seqClear)
	return err
}

// HideCursor hides the terminal cursor.
func HideCursor(w io.Writer) error {
	_, err := io.WriteString(w, seqHideCursor)
	return err
}

// ShowCursor shows the terminal cursor.
func ShowCursor(w io.Writer) error {
	_, err := io.WriteString(w, seqShowCursor)
	return err
}
