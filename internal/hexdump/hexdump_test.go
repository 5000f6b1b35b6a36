package hexdump

import (
	"bytes"
	"testing"
)

func TestWrite(t *testing.T) {
	b := make([]byte, 20)
	for i := range b {
		b[i] = byte(i + 0x40)
	}
	var buf bytes.Buffer
	Write(&buf, b)

	want := "00 40 41 42 43 44 45 46 47 48 49 4a 4b 4c 4d 4e 4f\n" +
		"10 50 51 52 53\n"
	if got := buf.String(); got != want {
		t.Errorf("Write output:\n%q\nwant:\n%q", got, want)
	}
}

func TestWriteEmpty(t *testing.T) {
	var buf bytes.Buffer
	Write(&buf, nil)
	if buf.Len() != 0 {
		t.Errorf("output for empty input: %q", buf.String())
	}
}

func TestWriteRaw(t *testing.T) {
	var buf bytes.Buffer
	WriteRaw(&buf, []byte{0x41, 0x10, 0x00})
	if !bytes.Equal(buf.Bytes(), []byte{0x41, 0x10, 0x00}) {
		t.Errorf("raw output = % x", buf.Bytes())
	}
}
