//go:build linux

package transport

import (
	"fmt"
	"os"
	"unsafe"

	"golang.org/x/sys/unix"
)

// Linux bsg (block SCSI generic) SMP passthrough. A SAS expander attached
// to a libsas HBA appears as /dev/bsg/expander-H:N; the SG_IO ioctl with a
// v4 header carries one SMP request/response pair per call.
const (
	sgIO = 0x2285

	bsgProtocolSCSI             = 0
	bsgSubProtocolSCSITransport = 2

	// kernel-side transaction timeout, milliseconds
	defTimeoutMS = 20000
)

// sgIOv4 mirrors struct sg_io_v4 from <linux/bsg.h>.
type sgIOv4 struct {
	guard           int32
	protocol        uint32
	subprotocol     uint32
	requestLen      uint32
	request         uint64
	requestTag      uint64
	requestAttr     uint32
	requestPriority uint32
	requestExtra    uint32
	maxResponseLen  uint32
	response        uint64
	doutIovecCount  uint32
	doutXferLen     uint32
	dinIovecCount   uint32
	dinXferLen      uint32
	doutXferp       uint64
	dinXferp        uint64
	timeout         uint32
	flags           uint32
	usrPtr          uint64
	spareIn         uint32
	driverStatus    uint32
	transportStatus uint32
	deviceStatus    uint32
	retryDelay      uint32
	info            uint32
	duration        uint32
	responseLen     uint32
	dinResid        int32
	doutResid       int32
	generatedTag    uint64
	spareOut        uint32
	padding         uint32
}

// BSGTransport drives an expander through a /dev/bsg node.
type BSGTransport struct {
	f      *os.File
	target Target
}

// OpenBSG opens the bsg node named by the target descriptor.
func OpenBSG(target Target) (*BSGTransport, error) {
	f, err := os.OpenFile(target.Device, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", target.Device, err)
	}
	return &BSGTransport{f: f, target: target}, nil
}

// Send issues one SMP transaction. The returned count is the kernel's
// response_len when it reports one, otherwise -1.
func (t *BSGTransport) Send(req []byte, resp []byte) (int, error) {
	if t.f == nil {
		return 0, fmt.Errorf("transport is closed")
	}
	if len(req) == 0 || len(resp) == 0 {
		return 0, fmt.Errorf("empty request or response buffer")
	}

	hdr := sgIOv4{
		guard:          'Q',
		protocol:       bsgProtocolSCSI,
		subprotocol:    bsgSubProtocolSCSITransport,
		requestLen:     uint32(len(req)),
		request:        uint64(uintptr(unsafe.Pointer(&req[0]))),
		maxResponseLen: uint32(len(resp)),
		response:       uint64(uintptr(unsafe.Pointer(&resp[0]))),
		timeout:        defTimeoutMS,
	}

	_, _, errno := unix.Syscall(unix.SYS_IOCTL, t.f.Fd(), uintptr(sgIO), uintptr(unsafe.Pointer(&hdr)))
	if errno != 0 {
		return 0, fmt.Errorf("SG_IO on %s: %w", t.target.Device, errno)
	}
	if hdr.driverStatus != 0 || hdr.transportStatus != 0 || hdr.deviceStatus != 0 {
		return 0, fmt.Errorf("SG_IO on %s: driver=0x%x transport=0x%x device=0x%x",
			t.target.Device, hdr.driverStatus, hdr.transportStatus, hdr.deviceStatus)
	}
	if hdr.responseLen > 0 {
		return int(hdr.responseLen), nil
	}
	return -1, nil
}

// Close releases the device node.
func (t *BSGTransport) Close() error {
	if t.f == nil {
		return nil
	}
	err := t.f.Close()
	t.f = nil
	return err
}

// Open opens the platform transport for a target. On Linux this is the bsg
// SMP pass-through.
func Open(target Target) (Transport, error) {
	return OpenBSG(target)
}
