package smp

import (
	"fmt"
)

// SMP frame type constants (byte 0 of every frame)
const (
	FrameTypeRequest  = 0x40
	FrameTypeResponse = 0x41
)

// SMP function codes (byte 1 of every frame), from the SPL series
const (
	FnReportGeneral       = 0x00
	FnReportManufacturer  = 0x01
	FnReadGPIORegister    = 0x02
	FnReportSelfConfig    = 0x03
	FnReportZonePermTable = 0x04
	FnReportZoneManPass   = 0x05
	FnReportBroadcast     = 0x06
	FnDiscover            = 0x10
	FnReportPhyErrorLog   = 0x11
	FnReportPhySATA       = 0x12
	FnReportRouteInfo     = 0x13
	FnReportPhyEvent      = 0x14
	FnDiscoverList        = 0x20
	FnReportPhyEventList  = 0x21
	FnReportExpRouteTable = 0x22
	FnConfigGeneral       = 0x80
	FnEnableDisableZoning = 0x81
	FnZonedBroadcast      = 0x85
	FnZoneLock            = 0x86
	FnZoneActivate        = 0x87
	FnZoneUnlock          = 0x88
	FnConfigZoneManPass   = 0x89
	FnConfigZonePhyInfo   = 0x8a
	FnConfigZonePermTable = 0x8b
	FnConfigRouteInfo     = 0x90
	FnPhyControl          = 0x91
	FnPhyTest             = 0x92
	FnConfigPhyEvent      = 0x93
)

// Response buffer capacities in bytes (response data plus 4 byte CRC)
const (
	ReportGeneralResponseLen   = 76
	DiscoverResponseLen        = 124
	ReportBroadcastResponseLen = 1020 + 4 + 4
	HeaderOnlyResponseLen      = 8
)

// MaxPhyID is the largest phy identifier an expander can implement.
const MaxPhyID = 254

// DefaultResponseDwords returns the documented response length (in dwords,
// excluding the 4 byte header and CRC) that a pre-SAS-2 expander is allowed
// to imply by declaring a response length of zero. The second return is
// false when the function has no documented default.
func DefaultResponseDwords(fn byte) (int, bool) {
	switch fn {
	case FnReportGeneral:
		return 6, true
	case FnReportManufacturer:
		return 14, true
	case FnDiscover:
		return 12, true
	case FnReportPhyErrorLog:
		return 6, true
	case FnReportPhySATA:
		return 13, true
	case FnReportRouteInfo:
		return 9, true
	case FnConfigGeneral, FnConfigRouteInfo, FnPhyControl, FnPhyTest:
		return 0, true
	}
	return 0, false
}

// FunctionName returns a human-readable name for an SMP function code.
func FunctionName(fn byte) string {
	switch fn {
	case FnReportGeneral:
		return "REPORT GENERAL"
	case FnReportManufacturer:
		return "REPORT MANUFACTURER INFORMATION"
	case FnReportSelfConfig:
		return "REPORT SELF-CONFIGURATION STATUS"
	case FnReportBroadcast:
		return "REPORT BROADCAST"
	case FnDiscover:
		return "DISCOVER"
	case FnReportPhyErrorLog:
		return "REPORT PHY ERROR LOG"
	case FnReportPhySATA:
		return "REPORT PHY SATA"
	case FnReportRouteInfo:
		return "REPORT ROUTE INFORMATION"
	case FnReportPhyEvent:
		return "REPORT PHY EVENT"
	case FnConfigGeneral:
		return "CONFIGURE GENERAL"
	case FnConfigRouteInfo:
		return "CONFIGURE ROUTE INFORMATION"
	case FnPhyControl:
		return "PHY CONTROL"
	case FnPhyTest:
		return "PHY TEST FUNCTION"
	default:
		return fmt.Sprintf("unknown function (0x%02x)", fn)
	}
}

// FrameErrorKind categorizes fatal frame-level decode failures.
type FrameErrorKind int

const (
	// FrameTooShort means the transport reported fewer than 4 bytes, so
	// not even the SMP header is present.
	FrameTooShort FrameErrorKind = iota
	// FrameBadType means byte 0 was not the response frame type.
	FrameBadType
	// FrameBadFunction means the echoed function code did not match the
	// request.
	FrameBadFunction
)

// FrameError is a fatal frame validation failure. It aborts the current
// transaction only; the channel itself is still usable.
type FrameError struct {
	Kind FrameErrorKind
	Got  int
	Want int
}

func (e *FrameError) Error() string {
	switch e.Kind {
	case FrameTooShort:
		return fmt.Sprintf("response too short, len=%d", e.Got)
	case FrameBadType:
		return fmt.Sprintf("expected SMP frame response type, got=0x%x", e.Got)
	case FrameBadFunction:
		return fmt.Sprintf("expected function code=0x%x, got=0x%x", e.Want, e.Got)
	default:
		return fmt.Sprintf("frame error (kind %d)", int(e.Kind))
	}
}

// FunctionError is an expander-reported failure: the frame itself was well
// formed but the result code byte was non-zero. The response payload is
// still available for diagnostic dumping but must not be interpreted as
// valid function data.
type FunctionError struct {
	Code ResultCode
}

func (e *FunctionError) Error() string {
	return e.Code.String()
}

// Response is a validated, length-resolved SMP response frame.
//
// Len is the single source of truth for every downstream decoder: it is the
// resolved usable byte length (header plus payload, excluding the trailing
// CRC), reconciled from the declared length byte and the transport-reported
// actual length. Field decoders never read past it.
type Response struct {
	Function byte
	Result   ResultCode
	Len      int

	// LengthUnknown is set when the declared length was zero and no
	// default is documented for the function. Decoders may then only
	// trust the 4 byte header.
	LengthUnknown bool
	// Truncated is set when the transport delivered fewer bytes than the
	// declared length promised and Len was clamped down. Decoding
	// proceeds on the prefix that is present.
	Truncated bool

	raw []byte
}

// Bytes returns the resolved response window (header plus payload, no CRC).
func (r *Response) Bytes() []byte {
	return r.raw[:r.Len]
}

// Decode validates a raw SMP response buffer and resolves its usable length.
//
// actualLen is the transport-reported byte count; a negative value means the
// transport could not report one and no clamping is done. wantFn is the
// function code of the request this response answers.
//
// Expanders are permitted to under-report length pre-SAS-2, and the
// transport byte count is the ultimate truth, so the declared length is
// first resolved (with a per-function default substituted when the declared
// length is zero on a successful response) and then clamped to what the
// transport actually delivered.
//
// On a non-zero result code a *FunctionError is returned together with a
// non-nil Response so callers can still dump the frame.
func Decode(raw []byte, actualLen int, wantFn byte) (*Response, error) {
	if actualLen >= 0 && actualLen < 4 {
		return nil, &FrameError{Kind: FrameTooShort, Got: actualLen}
	}
	if len(raw) < 4 {
		return nil, &FrameError{Kind: FrameTooShort, Got: len(raw)}
	}

	resp := &Response{
		Function: raw[1],
		Result:   ResultCode(raw[2]),
		raw:      raw,
	}

	dwords := int(raw[3])
	if dwords == 0 && raw[2] == 0 {
		def, ok := DefaultResponseDwords(raw[1])
		if ok {
			dwords = def
		} else {
			resp.LengthUnknown = true
		}
	}
	resolved := 4 + dwords*4 // bytes, excluding 4 byte CRC
	if actualLen >= 0 && resolved > actualLen {
		resolved = actualLen
		resp.Truncated = true
	}
	if resolved > len(raw) {
		resolved = len(raw)
		resp.Truncated = true
	}
	resp.Len = resolved

	if raw[0] != FrameTypeResponse {
		return nil, &FrameError{Kind: FrameBadType, Got: int(raw[0])}
	}
	if raw[1] != wantFn {
		return nil, &FrameError{Kind: FrameBadFunction, Got: int(raw[1]), Want: int(wantFn)}
	}
	if raw[2] != 0 {
		return resp, &FunctionError{Code: resp.Result}
	}
	return resp, nil
}
