package smp

import (
	"errors"
	"testing"
)

// respFrame builds a response buffer of the given capacity with header
// bytes set.
func respFrame(capacity int, fn byte, result byte, dwords byte) []byte {
	b := make([]byte, capacity)
	b[0] = FrameTypeResponse
	b[1] = fn
	b[2] = result
	b[3] = dwords
	return b
}

func TestDecodeTooShort(t *testing.T) {
	// Actual lengths below the 4 byte header must fail before any length
	// resolution, even when the buffer itself is shorter than 4 bytes.
	for _, actual := range []int{0, 1, 2, 3} {
		raw := []byte{FrameTypeResponse, FnDiscover} // 2 bytes only
		_, err := Decode(raw, actual, FnDiscover)
		var fe *FrameError
		if !errors.As(err, &fe) {
			t.Fatalf("actualLen=%d: err = %v, want *FrameError", actual, err)
		}
		if fe.Kind != FrameTooShort {
			t.Errorf("actualLen=%d: kind = %v, want FrameTooShort", actual, fe.Kind)
		}
		if fe.Got != actual {
			t.Errorf("actualLen=%d: got field = %d", actual, fe.Got)
		}
	}
}

func TestDecodeLengthResolution(t *testing.T) {
	tests := []struct {
		name          string
		fn            byte
		result        byte
		dwords        byte
		capacity      int
		actualLen     int
		wantLen       int
		wantUnknown   bool
		wantTruncated bool
	}{
		{
			name:     "declared length wins when transport delivers more",
			fn:       FnDiscover,
			dwords:   0x1c, // 28 dwords -> 116 bytes
			capacity: DiscoverResponseLen,
			// transport reports the whole buffer came back
			actualLen: DiscoverResponseLen,
			wantLen:   116,
		},
		{
			name:          "clamped to transport actual length",
			fn:            FnDiscover,
			dwords:        0x1c,
			capacity:      DiscoverResponseLen,
			actualLen:     56,
			wantLen:       56,
			wantTruncated: true,
		},
		{
			name:      "zero declared substitutes discover default",
			fn:        FnDiscover,
			dwords:    0,
			capacity:  DiscoverResponseLen,
			actualLen: DiscoverResponseLen,
			wantLen:   4 + 12*4, // 52
		},
		{
			name:      "zero declared substitutes report general default",
			fn:        FnReportGeneral,
			dwords:    0,
			capacity:  ReportGeneralResponseLen,
			actualLen: ReportGeneralResponseLen,
			wantLen:   4 + 6*4, // 28
		},
		{
			name:        "zero declared with no default is header only",
			fn:          FnZonedBroadcast,
			dwords:      0,
			capacity:    64,
			actualLen:   64,
			wantLen:     4,
			wantUnknown: true,
		},
		{
			name:      "no transport count leaves declared length alone",
			fn:        FnDiscover,
			dwords:    0x1c,
			capacity:  DiscoverResponseLen,
			actualLen: -1,
			wantLen:   116,
		},
		{
			name:          "no transport count still clamps to buffer",
			fn:            FnDiscover,
			dwords:        0x30, // 196 bytes, beyond the buffer
			capacity:      DiscoverResponseLen,
			actualLen:     -1,
			wantLen:       DiscoverResponseLen,
			wantTruncated: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := respFrame(tt.capacity, tt.fn, tt.result, tt.dwords)
			resp, err := Decode(raw, tt.actualLen, tt.fn)
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if resp.Len != tt.wantLen {
				t.Errorf("Len = %d, want %d", resp.Len, tt.wantLen)
			}
			if resp.LengthUnknown != tt.wantUnknown {
				t.Errorf("LengthUnknown = %v, want %v", resp.LengthUnknown, tt.wantUnknown)
			}
			if resp.Truncated != tt.wantTruncated {
				t.Errorf("Truncated = %v, want %v", resp.Truncated, tt.wantTruncated)
			}
			if len(resp.Bytes()) != tt.wantLen {
				t.Errorf("Bytes() length = %d, want %d", len(resp.Bytes()), tt.wantLen)
			}
		})
	}
}

func TestDecodeResolutionIdempotent(t *testing.T) {
	// Resolving an already-resolved window must not change it: feeding the
	// resolved length back in as the actual length yields the same Len.
	raw := respFrame(DiscoverResponseLen, FnDiscover, 0, 0x1c)
	first, err := Decode(raw, DiscoverResponseLen, FnDiscover)
	if err != nil {
		t.Fatalf("first Decode() error = %v", err)
	}
	second, err := Decode(raw, first.Len, FnDiscover)
	if err != nil {
		t.Fatalf("second Decode() error = %v", err)
	}
	if second.Len != first.Len {
		t.Errorf("second Len = %d, want %d", second.Len, first.Len)
	}
}

func TestDecodeErrorResponseSkipsDefault(t *testing.T) {
	// A failed function with declared length zero must not substitute the
	// per-function default; only the header is trustworthy.
	raw := respFrame(DiscoverResponseLen, FnDiscover, byte(ResPhyVacant), 0)
	resp, err := Decode(raw, DiscoverResponseLen, FnDiscover)
	var fe *FunctionError
	if !errors.As(err, &fe) {
		t.Fatalf("err = %v, want *FunctionError", err)
	}
	if fe.Code != ResPhyVacant {
		t.Errorf("Code = %v, want ResPhyVacant", fe.Code)
	}
	if resp == nil {
		t.Fatal("response should be returned alongside a function error")
	}
	if resp.Len != 4 {
		t.Errorf("Len = %d, want 4 (header only)", resp.Len)
	}
	if resp.LengthUnknown {
		t.Error("LengthUnknown should not be set on a failed function")
	}
}

func TestDecodeBadType(t *testing.T) {
	raw := respFrame(DiscoverResponseLen, FnDiscover, 0, 2)
	raw[0] = FrameTypeRequest
	_, err := Decode(raw, DiscoverResponseLen, FnDiscover)
	var fe *FrameError
	if !errors.As(err, &fe) || fe.Kind != FrameBadType {
		t.Fatalf("err = %v, want FrameBadType", err)
	}
}

func TestDecodeBadFunction(t *testing.T) {
	raw := respFrame(DiscoverResponseLen, FnReportGeneral, 0, 2)
	_, err := Decode(raw, DiscoverResponseLen, FnDiscover)
	var fe *FrameError
	if !errors.As(err, &fe) || fe.Kind != FrameBadFunction {
		t.Fatalf("err = %v, want FrameBadFunction", err)
	}
	if fe.Want != FnDiscover || fe.Got != FnReportGeneral {
		t.Errorf("got/want = 0x%x/0x%x", fe.Got, fe.Want)
	}
}

func TestDefaultResponseDwords(t *testing.T) {
	tests := []struct {
		fn     byte
		want   int
		wantOK bool
	}{
		{FnReportGeneral, 6, true},
		{FnReportManufacturer, 14, true},
		{FnDiscover, 12, true},
		{FnReportPhyErrorLog, 6, true},
		{FnReportPhySATA, 13, true},
		{FnReportRouteInfo, 9, true},
		{FnConfigGeneral, 0, true},
		{FnConfigRouteInfo, 0, true},
		{FnPhyControl, 0, true},
		{FnPhyTest, 0, true},
		{FnReportBroadcast, 0, false},
		{FnDiscoverList, 0, false},
	}
	for _, tt := range tests {
		got, ok := DefaultResponseDwords(tt.fn)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("DefaultResponseDwords(0x%02x) = %d, %v; want %d, %v",
				tt.fn, got, ok, tt.want, tt.wantOK)
		}
	}
}
