// Package transport opens and drives the physical channel to an SMP target.
//
// The engine above it only sees Send and Close: function-level failures
// travel inside the response frame, so any non-nil error from Send means
// the channel itself is unusable and the whole session should abort.
package transport

import (
	"fmt"
	"strconv"
	"strings"
)

// Transport is one open channel to an SMP target. Send issues a single
// request frame and fills resp, returning the transport-reported response
// byte count (-1 when the transport cannot report one). Implementations are
// strictly synchronous: one outstanding transaction at a time.
type Transport interface {
	Send(req []byte, resp []byte) (int, error)
	Close() error
}

// SubvalueSeparator splits a device name from its numeric sub-value suffix,
// e.g. "/dev/bsg/expander-1:0,1".
const SubvalueSeparator = ','

// Target describes where a transport should connect.
type Target struct {
	Device     string
	Subvalue   int
	SASAddress uint64
}

// ParseTarget splits a device descriptor of the form "DEVICE[,N]".
func ParseTarget(descriptor string, sasAddress uint64) (Target, error) {
	t := Target{Device: descriptor, SASAddress: sasAddress}
	if i := strings.IndexByte(descriptor, SubvalueSeparator); i >= 0 {
		sub, err := strconv.Atoi(descriptor[i+1:])
		if err != nil {
			return Target{}, fmt.Errorf("expected number after separator in device name %q", descriptor)
		}
		t.Device = descriptor[:i]
		t.Subvalue = sub
	}
	if t.Device == "" {
		return Target{}, fmt.Errorf("empty device name")
	}
	return t, nil
}

// ParseSASAddress parses a SAS address given as decimal, with a leading
// "0x"/"0X", or with a trailing 'h'/'H'.
func ParseSASAddress(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty SAS address")
	}
	base := 10
	switch {
	case strings.HasPrefix(s, "0x"), strings.HasPrefix(s, "0X"):
		s = s[2:]
		base = 16
	case strings.HasSuffix(s, "h"), strings.HasSuffix(s, "H"):
		s = s[:len(s)-1]
		base = 16
	}
	v, err := strconv.ParseUint(s, base, 64)
	if err != nil {
		return 0, fmt.Errorf("bad SAS address %q: %w", s, err)
	}
	return v, nil
}

// IsNAA5 reports whether the address is in NAA-5 format, the format SAS
// addresses normally use. Addresses failing this are suspicious (often a
// missing "0x") but some interfaces do not need one at all, so callers warn
// rather than fail outright.
func IsNAA5(sa uint64) bool { return sa>>60 == 5 }

// IsNAA3 reports an NAA-3 (locally assigned) address, seen on some older
// expanders.
func IsNAA3(sa uint64) bool { return sa>>60 == 3 }
