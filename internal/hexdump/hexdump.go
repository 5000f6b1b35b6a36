// Package hexdump renders response buffers for the --hex and --raw output
// modes.
package hexdump

import (
	"fmt"
	"io"
)

const bytesPerLine = 16

// Write prints b as hex, sixteen bytes per line with a leading offset
// column.
func Write(w io.Writer, b []byte) {
	for off := 0; off < len(b); off += bytesPerLine {
		end := off + bytesPerLine
		if end > len(b) {
			end = len(b)
		}
		fmt.Fprintf(w, "%02x", off)
		for _, c := range b[off:end] {
			fmt.Fprintf(w, " %02x", c)
		}
		fmt.Fprintln(w)
	}
}

// WriteRaw writes b unformatted, for piping into another tool.
func WriteRaw(w io.Writer, b []byte) {
	w.Write(b)
}
