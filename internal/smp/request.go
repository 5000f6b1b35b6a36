package smp

import "encoding/binary"

// Request is a function-specific SMP request frame, immutable once built.
// Data holds the full frame bytes including the trailing 4 byte CRC space
// (filled by the transport where required). ResponseLen is the response
// buffer capacity the caller should allocate for the transaction.
type Request struct {
	Function    byte
	Data        []byte
	ResponseLen int
}

// allocDwords computes the Allocated Response Length field from a response
// buffer capacity, clamped to the single-byte maximum.
func allocDwords(capacity int) byte {
	n := (capacity - 8) / 4
	if n > 0xff {
		n = 0xff
	}
	if n < 0 {
		n = 0
	}
	return byte(n)
}

// NewReportGeneral builds a REPORT GENERAL request. zero leaves the
// Allocated Response Length field at zero, which may be required prior to
// SAS-2.
func NewReportGeneral(zero bool) *Request {
	req := make([]byte, 8)
	req[0] = FrameTypeRequest
	req[1] = FnReportGeneral
	if !zero {
		req[2] = allocDwords(ReportGeneralResponseLen)
	}
	return &Request{Function: FnReportGeneral, Data: req, ResponseLen: ReportGeneralResponseLen}
}

// NewDiscover builds a DISCOVER request for one phy. ignoreZoneGroup sets
// the Ignore Zone Group bit, showing phys otherwise hidden by zoning.
func NewDiscover(phyID int, ignoreZoneGroup, zero bool) *Request {
	req := make([]byte, 16)
	req[0] = FrameTypeRequest
	req[1] = FnDiscover
	if !zero { // SAS-2 or later
		req[2] = allocDwords(DiscoverResponseLen)
		req[3] = 2 // request length in dwords
	}
	if ignoreZoneGroup {
		req[8] |= 0x1
	}
	req[9] = byte(phyID)
	return &Request{Function: FnDiscover, Data: req, ResponseLen: DiscoverResponseLen}
}

// NewReportBroadcast builds a REPORT BROADCAST request for the given
// broadcast type (0..15).
func NewReportBroadcast(broadcastType int) *Request {
	req := make([]byte, 12)
	req[0] = FrameTypeRequest
	req[1] = FnReportBroadcast
	req[2] = allocDwords(ReportBroadcastResponseLen)
	req[3] = 1 // request length in dwords
	req[4] = byte(broadcastType & 0xf)
	return &Request{Function: FnReportBroadcast, Data: req, ResponseLen: ReportBroadcastResponseLen}
}

// PhyTestOptions carries the PHY TEST FUNCTION request fields.
type PhyTestOptions struct {
	ExpectedChangeCount int
	PhyID               int
	Function            int // 0 -> stop, 1 -> transmit pattern
	Pattern             int // e.g. 2 -> CJTPAT
	LinkRate            int // 8 -> 1.5 Gbps .. 0xc -> 22.5 Gbps
	SSC                 int // spread spectrum clocking code
	SATA                bool
	DwordsControl       int
	Dwords              uint64 // phy test pattern dwords
}

// NewPhyTest builds a PHY TEST FUNCTION request.
func NewPhyTest(opt PhyTestOptions) *Request {
	req := make([]byte, 44)
	req[0] = FrameTypeRequest
	req[1] = FnPhyTest
	req[3] = 9 // request length in dwords
	binary.BigEndian.PutUint16(req[4:6], uint16(opt.ExpectedChangeCount))
	req[9] = byte(opt.PhyID)
	req[10] = byte(opt.Function)
	req[11] = byte(opt.Pattern)
	req[15] = byte(opt.LinkRate & 0xf)
	req[15] |= byte((opt.SSC << 4) & 0x30)
	if opt.SATA {
		req[15] |= 0x40
	}
	req[19] = byte(opt.DwordsControl)
	binary.BigEndian.PutUint64(req[20:28], opt.Dwords)
	return &Request{Function: FnPhyTest, Data: req, ResponseLen: HeaderOnlyResponseLen}
}

// ConfigGeneralOptions carries the CONFIGURE GENERAL request fields. Each
// optional field has an Update flag; set flags raise the corresponding bit
// in the update bitmask at byte 8 and place the value at its offset.
type ConfigGeneralOptions struct {
	ExpectedChangeCount int

	UpdateSTPInactivity bool
	STPInactivity       int // unit: 100ms
	UpdateSTPConnect    bool
	STPConnect          int // unit: 100ms
	UpdateNexusLoss     bool
	NexusLoss           int // unit: ms
	UpdateReducedFunc   bool
	ReducedFunc         int // unit: second
	UpdateRejectToOpen  bool
	RejectToOpen        int // unit: 10us
	UpdatePowerDone     bool
	PowerDone           int // unit: second
	UpdateSSPCloseCtl   bool
	SSPCloseCtl         int
	UpdateITDelay       bool
	ITDelay             int // initial time to delay forward open, unit: 100ns
}

// NewConfigGeneral builds a CONFIGURE GENERAL request.
func NewConfigGeneral(opt ConfigGeneralOptions) *Request {
	req := make([]byte, 24)
	req[0] = FrameTypeRequest
	req[1] = FnConfigGeneral
	req[3] = 4 // request length in dwords
	binary.BigEndian.PutUint16(req[4:6], uint16(opt.ExpectedChangeCount))
	if opt.UpdateITDelay {
		req[8] |= 0x80
		req[9] = byte(opt.ITDelay)
	}
	if opt.UpdateSTPInactivity {
		req[8] |= 0x1
		binary.BigEndian.PutUint16(req[10:12], uint16(opt.STPInactivity))
	}
	if opt.UpdateSTPConnect {
		req[8] |= 0x2
		binary.BigEndian.PutUint16(req[12:14], uint16(opt.STPConnect))
	}
	if opt.UpdateNexusLoss {
		req[8] |= 0x4
		binary.BigEndian.PutUint16(req[14:16], uint16(opt.NexusLoss))
	}
	if opt.UpdateReducedFunc {
		req[8] |= 0x8
		req[16] = byte(opt.ReducedFunc)
	}
	if opt.UpdateRejectToOpen {
		req[8] |= 0x10
		binary.BigEndian.PutUint16(req[18:20], uint16(opt.RejectToOpen))
	}
	if opt.UpdatePowerDone {
		req[8] |= 0x20
		req[17] = byte(opt.PowerDone)
	}
	if opt.UpdateSSPCloseCtl {
		req[8] |= 0x40
		binary.BigEndian.PutUint16(req[6:8], uint16(opt.SSPCloseCtl))
	}
	return &Request{Function: FnConfigGeneral, Data: req, ResponseLen: HeaderOnlyResponseLen}
}
