package smp

import (
	"encoding/binary"
	"fmt"
)

// NoSpecificPhy is the phy id value an expander reports in a broadcast
// descriptor that is not tied to one phy.
const NoSpecificPhy = -1

// BroadcastDescriptor is one descriptor slot from a REPORT BROADCAST
// response.
type BroadcastDescriptor struct {
	Type   int
	PhyID  int // NoSpecificPhy when not tied to a phy
	Reason int
	Count  uint16
	Raw    []byte
}

// BroadcastReport is a decoded REPORT BROADCAST response.
type BroadcastReport struct {
	ExpanderChangeCount uint16
	HeaderType          int
	DescriptorLen       int // stride in bytes
	DescriptorCount     int // count declared in the header
	Descriptors         []BroadcastDescriptor
}

// DecodeReportBroadcast decodes a validated REPORT BROADCAST response. The
// descriptor stride and count come from the response header; a stride below
// 8 bytes is malformed and rejected before iteration. Descriptors that the
// resolved length cannot cover are dropped rather than read out of bounds.
func DecodeReportBroadcast(resp *Response) (*BroadcastReport, error) {
	if resp.Function != FnReportBroadcast {
		return nil, fmt.Errorf("not a REPORT BROADCAST response (function 0x%02x)", resp.Function)
	}
	b := resp.Bytes()
	if len(b) < 12 {
		return nil, fmt.Errorf("REPORT BROADCAST response too short for header, len=%d", len(b))
	}

	rep := &BroadcastReport{
		ExpanderChangeCount: binary.BigEndian.Uint16(b[4:6]),
		HeaderType:          int(b[6] & 0xf),
		DescriptorLen:       int(b[10]) * 4,
		DescriptorCount:     int(b[11]),
	}
	if rep.DescriptorCount == 0 {
		return rep, nil
	}
	if rep.DescriptorLen < 8 {
		return nil, fmt.Errorf("unexpectedly low descriptor length: %d bytes", rep.DescriptorLen)
	}

	for k := 0; k < rep.DescriptorCount; k++ {
		off := 12 + k*rep.DescriptorLen
		if off+rep.DescriptorLen > len(b) {
			break
		}
		d := b[off : off+rep.DescriptorLen]
		bd := BroadcastDescriptor{
			Type:   int(d[0] & 0xf),
			PhyID:  int(d[1]),
			Reason: int(d[2] & 0xf),
			Count:  binary.BigEndian.Uint16(d[4:6]),
			Raw:    d,
		}
		if d[1] == 0xff {
			bd.PhyID = NoSpecificPhy
		}
		rep.Descriptors = append(rep.Descriptors, bd)
	}
	return rep, nil
}
