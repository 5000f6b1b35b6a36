package discover

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/muurk/smpctl/internal/smp"
)

// fakeTransport scripts SMP transactions without a device node.
type fakeTransport struct {
	send   func(req, resp []byte) (int, error)
	closed bool
}

func (f *fakeTransport) Send(req, resp []byte) (int, error) { return f.send(req, resp) }
func (f *fakeTransport) Close() error                       { f.closed = true; return nil }

// generalResp fills a REPORT GENERAL response and returns its length.
func generalResp(resp []byte, numPhys int, t2t bool) int {
	resp[0] = smp.FrameTypeResponse
	resp[1] = smp.FnReportGeneral
	resp[3] = 6
	resp[9] = byte(numPhys)
	if t2t {
		resp[10] |= 0x80
	}
	return 28
}

// errorResp fills a header-only response carrying a function result code.
func errorResp(resp []byte, fn byte, code smp.ResultCode) int {
	resp[0] = smp.FrameTypeResponse
	resp[1] = fn
	resp[2] = byte(code)
	return 8
}

type fakePhy struct {
	sa      uint64
	attSA   uint64
	attPhy  int
	devType smp.DeviceType
	negot   int
	routing smp.RoutingAttr
	targets byte // attached target capability byte
}

// discoverResp fills a 56 byte DISCOVER response for one scripted phy.
func discoverResp(resp []byte, id int, p fakePhy) int {
	for i := 0; i < 56; i++ {
		resp[i] = 0
	}
	resp[0] = smp.FrameTypeResponse
	resp[1] = smp.FnDiscover
	resp[3] = 13
	resp[9] = byte(id)
	resp[12] = byte(p.devType) << 4
	resp[13] = byte(p.negot)
	resp[15] = p.targets
	put64(resp[16:], p.sa)
	put64(resp[24:], p.attSA)
	resp[32] = byte(p.attPhy)
	resp[44] = byte(p.routing)
	return 56
}

func put64(b []byte, v uint64) {
	for i := 7; i >= 0; i-- {
		b[i] = byte(v)
		v >>= 8
	}
}

const testSA = 0x5000c50012345678

var attachedExpander = fakePhy{
	sa:      testSA,
	attSA:   0x5000c5001234567f,
	attPhy:  4,
	devType: smp.DeviceTypeExpander,
	negot:   0xa,
	routing: smp.RoutingTable,
}

// scripted builds a transport serving REPORT GENERAL from the given
// parameters and DISCOVER from the phys map; absent ids answer "no such
// phy".
func scripted(numPhys int, t2t bool, phys map[int]func(resp []byte) int) *fakeTransport {
	return &fakeTransport{send: func(req, resp []byte) (int, error) {
		switch req[1] {
		case smp.FnReportGeneral:
			return generalResp(resp, numPhys, t2t), nil
		case smp.FnDiscover:
			if fill, ok := phys[int(req[9])]; ok {
				return fill(resp), nil
			}
			return errorResp(resp, smp.FnDiscover, smp.ResPhyDoesNotExist), nil
		}
		return errorResp(resp, req[1], smp.ResUnknownFunction), nil
	}}
}

func okPhy(id int, p fakePhy) func(resp []byte) int {
	return func(resp []byte) int { return discoverResp(resp, id, p) }
}

func failPhy(code smp.ResultCode) func(resp []byte) int {
	return func(resp []byte) int { return errorResp(resp, smp.FnDiscover, code) }
}

func TestRunMultipleTransportError(t *testing.T) {
	tp := &fakeTransport{send: func(req, resp []byte) (int, error) {
		return 0, errors.New("write: broken pipe")
	}}
	var buf bytes.Buffer
	st, err := NewSession(tp, Options{Multiple: 1}, &buf).Run()
	if err == nil {
		t.Fatal("transport failure not returned")
	}
	if st != ExitFileError {
		t.Errorf("status = %d, want %d", st, ExitFileError)
	}
}

func TestRunMultipleTraversal(t *testing.T) {
	tp := scripted(4, true, map[int]func(resp []byte) int{
		0: okPhy(0, attachedExpander),
		1: failPhy(smp.ResPhyVacant),
		2: okPhy(2, fakePhy{sa: testSA, routing: smp.RoutingDirect}),
	})
	var buf bytes.Buffer
	st, err := NewSession(tp, Options{Multiple: 1}, &buf).Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if st != ExitOK {
		t.Errorf("status = %d", st)
	}

	out := buf.String()
	// table routing upgrades to universal when the expander supports
	// table-to-table
	if !strings.Contains(out, "phy   0:U:attached:[5000c5001234567f:04 exp") {
		t.Errorf("phy 0 summary missing:\n%s", out)
	}
	if !strings.Contains(out, " 6 Gbps") {
		t.Errorf("phy 0 rate missing:\n%s", out)
	}
	if !strings.Contains(out, "phy   1: inaccessible (phy vacant)") {
		t.Errorf("vacant phy line missing:\n%s", out)
	}
	if !strings.Contains(out, "phy   2:D:attached:[0000000000000000:00]") {
		t.Errorf("empty phy 2 line missing:\n%s", out)
	}
}

func TestSummaryLineTargetCluster(t *testing.T) {
	// A phy whose only target capability bit is the SATA port selector
	// carries no target protocol and gets no t(...) cluster; the selector
	// appears once a protocol bit joins it.
	selOnly := attachedExpander
	selOnly.devType = smp.DeviceTypeEnd
	selOnly.targets = 0x80

	selSATA := selOnly
	selSATA.targets = 0x81

	tp := scripted(2, false, map[int]func(resp []byte) int{
		0: okPhy(0, selOnly),
		1: okPhy(1, selSATA),
	})
	var buf bytes.Buffer
	st, err := NewSession(tp, Options{Multiple: 1}, &buf).Run()
	if err != nil || st != ExitOK {
		t.Fatalf("Run = %d, %v", st, err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines:\n%s", len(lines), buf.String())
	}
	if strings.Contains(lines[0], " t(") {
		t.Errorf("port selector alone produced a target cluster: %q", lines[0])
	}
	if !strings.Contains(lines[1], " t(PORT_SEL+SATA)") {
		t.Errorf("target cluster missing or wrong: %q", lines[1])
	}
}

func TestRunMultipleBriefSkipsEmptyPhys(t *testing.T) {
	tp := scripted(2, false, map[int]func(resp []byte) int{
		0: okPhy(0, attachedExpander),
		1: okPhy(1, fakePhy{sa: testSA}),
	})
	var buf bytes.Buffer
	st, err := NewSession(tp, Options{Multiple: 1, Brief: 2}, &buf).Run()
	if err != nil || st != ExitOK {
		t.Fatalf("Run = %d, %v", st, err)
	}
	out := buf.String()
	if !strings.Contains(out, "phy   0:") {
		t.Errorf("attached phy suppressed:\n%s", out)
	}
	if strings.Contains(out, "phy   1:") {
		t.Errorf("empty phy shown under brief:\n%s", out)
	}
}

func TestRunMultipleStopsAtNoSuchPhy(t *testing.T) {
	var discovered []int
	tp := &fakeTransport{send: func(req, resp []byte) (int, error) {
		switch req[1] {
		case smp.FnReportGeneral:
			return generalResp(resp, 8, false), nil
		case smp.FnDiscover:
			id := int(req[9])
			discovered = append(discovered, id)
			if id < 2 {
				return discoverResp(resp, id, attachedExpander), nil
			}
			return errorResp(resp, smp.FnDiscover, smp.ResPhyDoesNotExist), nil
		}
		return 0, errors.New("unexpected function")
	}}
	var buf bytes.Buffer
	st, err := NewSession(tp, Options{Multiple: 1}, &buf).Run()
	if err != nil || st != ExitOK {
		t.Fatalf("Run = %d, %v", st, err)
	}
	if len(discovered) != 3 {
		t.Errorf("discover issued for phys %v, want 0..2", discovered)
	}
}

func TestRunMultipleWorstError(t *testing.T) {
	tp := scripted(3, false, map[int]func(resp []byte) int{
		0: okPhy(0, attachedExpander),
		1: failPhy(smp.ResFunctionFailed),
		2: okPhy(2, attachedExpander),
	})
	var buf bytes.Buffer
	st, err := NewSession(tp, Options{Multiple: 1}, &buf).Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if st != int(smp.ResFunctionFailed) {
		t.Errorf("status = %d, want %d", st, smp.ResFunctionFailed)
	}
	// phy 2 is still reported after the failure
	if !strings.Contains(buf.String(), "phy   2:") {
		t.Errorf("traversal stopped on recoverable error:\n%s", buf.String())
	}
}

func TestRunMultipleFallbackRange(t *testing.T) {
	// REPORT GENERAL unavailable; an explicit phy count still bounds the
	// walk. A channel that is actually dead fails on the first DISCOVER
	// instead.
	tests := []struct {
		name    string
		general func(resp []byte) (int, error)
	}{
		{
			name: "function rejected",
			general: func(resp []byte) (int, error) {
				return errorResp(resp, smp.FnReportGeneral, smp.ResUnknownFunction), nil
			},
		},
		{
			name: "transport error",
			general: func(resp []byte) (int, error) {
				return 0, errors.New("ioctl: no such device")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var discovered []int
			tp := &fakeTransport{send: func(req, resp []byte) (int, error) {
				switch req[1] {
				case smp.FnReportGeneral:
					return tt.general(resp)
				case smp.FnDiscover:
					discovered = append(discovered, int(req[9]))
					return discoverResp(resp, int(req[9]), attachedExpander), nil
				}
				return 0, errors.New("unexpected function")
			}}
			var buf bytes.Buffer
			st, err := NewSession(tp, Options{Multiple: 1, NumPhys: 4}, &buf).Run()
			if err != nil || st != ExitOK {
				t.Fatalf("Run = %d, %v", st, err)
			}
			if len(discovered) != 4 || discovered[0] != 0 || discovered[3] != 3 {
				t.Errorf("discover issued for phys %v, want 0..3", discovered)
			}
		})
	}
}

func TestRunMultiplePhyIDBeyondCount(t *testing.T) {
	tp := scripted(2, false, nil)
	var buf bytes.Buffer
	st, err := NewSession(tp, Options{Multiple: 1, PhyID: 5}, &buf).Run()
	if err != nil || st != ExitOK {
		t.Fatalf("Run = %d, %v", st, err)
	}
	if !strings.Contains(buf.String(), "at or beyond number of phys (2)") {
		t.Errorf("range message missing:\n%s", buf.String())
	}
}

func TestRunMultipleAddressMismatchWarning(t *testing.T) {
	tp := scripted(1, false, map[int]func(resp []byte) int{
		0: okPhy(0, attachedExpander),
	})
	var buf bytes.Buffer
	opt := Options{Multiple: 1, SAGiven: true, SA: 0x5000c500deadbeef}
	if _, err := NewSession(tp, opt, &buf).Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(buf.String(), "not the one requested") {
		t.Errorf("mismatch warning missing:\n%s", buf.String())
	}
}

func TestRunSingleMy(t *testing.T) {
	tp := scripted(1, false, map[int]func(resp []byte) int{
		0: okPhy(0, attachedExpander),
	})
	var buf bytes.Buffer
	st, err := NewSession(tp, Options{My: true}, &buf).Run()
	if err != nil || st != ExitOK {
		t.Fatalf("Run = %d, %v", st, err)
	}
	if got := buf.String(); got != "0x5000c50012345678\n" {
		t.Errorf("output = %q", got)
	}
}

func TestRunSingleVacant(t *testing.T) {
	tp := scripted(4, false, map[int]func(resp []byte) int{
		2: failPhy(smp.ResPhyVacant),
	})
	var buf bytes.Buffer
	st, err := NewSession(tp, Options{PhyID: 2}, &buf).Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if st != int(smp.ResPhyVacant) {
		t.Errorf("status = %d", st)
	}
	if !strings.Contains(buf.String(), "phy identifier: 2  inaccessible (phy vacant)") {
		t.Errorf("vacant record missing:\n%s", buf.String())
	}
}

func TestRunSingleHexDump(t *testing.T) {
	tp := scripted(1, false, map[int]func(resp []byte) int{
		0: okPhy(0, attachedExpander),
	})
	var buf bytes.Buffer
	st, err := NewSession(tp, Options{Hex: true}, &buf).Run()
	if err != nil || st != ExitOK {
		t.Fatalf("Run = %d, %v", st, err)
	}
	out := buf.String()
	if out == "" {
		t.Fatal("no hex output")
	}
	// response header bytes appear on the first dump line
	if !strings.Contains(out, "41 10") {
		t.Errorf("hex dump missing frame header:\n%s", out)
	}
}
