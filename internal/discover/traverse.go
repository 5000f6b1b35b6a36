// Package discover drives DISCOVER traversals across an expander's phys.
//
// A Session owns one traversal: it fetches the phy count and
// table-to-table capability with a REPORT GENERAL transaction, then walks a
// phy id range issuing one DISCOVER per phy, classifying each result and
// emitting one record per phy. All accumulated state lives in the session
// for exactly one run and is discarded afterward.
package discover

import (
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/muurk/smpctl/internal/hexdump"
	"github.com/muurk/smpctl/internal/logging"
	"github.com/muurk/smpctl/internal/smp"
	"github.com/muurk/smpctl/internal/transport"
)

// Exit status values, matching the smp_utils convention of using the SMP
// function result code directly, with categories above 90 for local
// failures.
const (
	ExitOK           = 0
	ExitFileError    = 92
	ExitCatMalformed = 97
	ExitCatOther     = 99
)

// Options control one traversal.
type Options struct {
	// PhyID is the phy identifier, or the starting id when Multiple is
	// set.
	PhyID int
	// NumPhys caps how many phys to fetch in multiple mode; 0 means the
	// rest.
	NumPhys int
	// Multiple selects one-line-per-phy output; a value above 1 selects
	// full output per phy.
	Multiple int
	// Brief trims output; a value above 1 also suppresses phys with
	// nothing attached.
	Brief int
	// ADN adds the attached device name to one-line output.
	ADN bool
	// DSN adds the device slot number to one-line output when available.
	DSN bool
	// CapPhy decodes the phy capabilities words in full output.
	CapPhy bool
	// IgnoreZoneGroup sets the Ignore Zone Group bit, showing phys
	// otherwise hidden by zoning.
	IgnoreZoneGroup bool
	// List selects attribute=value output, one per line.
	List bool
	// My reports the expander's own SAS address and nothing else.
	My bool
	// Zero leaves the Allocated Response Length field at zero, which may
	// be required prior to SAS-2.
	Zero bool
	// Hex and Raw dump each response instead of decoding it.
	Hex bool
	Raw bool
	// SAGiven and SA carry the target address from the caller for the
	// consistency warning.
	SAGiven bool
	SA      uint64
	Verbose int
}

// Session is one discovery traversal over an open transport.
type Session struct {
	tp  transport.Transport
	opt Options
	out io.Writer
	log *zap.Logger

	// traversal-local accumulators, reset by Run
	expanderSA uint64
	hasT2T     bool
	worst      int
}

// NewSession builds a session. Output records go to out.
func NewSession(tp transport.Transport, opt Options, out io.Writer) *Session {
	return &Session{tp: tp, opt: opt, out: out, log: logging.L()}
}

// errTransport marks channel-level failures, which abort a whole traversal.
var errTransport = errors.New("transport failure")

// transaction issues one request and decodes the response. A non-nil error
// wrapping errTransport means the channel is unusable; a *smp.FunctionError
// means the expander rejected the function; a *smp.FrameError means this
// response was malformed.
func (s *Session) transaction(req *smp.Request) (*smp.Response, error) {
	if s.opt.Verbose > 0 {
		s.log.Debug("request",
			zap.String("function", smp.FunctionName(req.Function)),
			zap.String("bytes", fmt.Sprintf("% x", req.Data)),
		)
	}
	buf := make([]byte, req.ResponseLen)
	n, err := s.tp.Send(req.Data, buf)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errTransport, err)
	}
	return smp.Decode(buf, n, req.Function)
}

// fetchGeneral issues REPORT GENERAL and records the phy count and
// table-to-table flag. Any failure here, transport included, is non-fatal
// to range computation; the caller falls back to a ceiling so the loop can
// still run against an unknown-size target. A dead channel then surfaces
// on the first DISCOVER.
func (s *Session) fetchGeneral() int {
	resp, err := s.transaction(smp.NewReportGeneral(s.opt.Zero))
	if err != nil {
		s.log.Warn("report general failed", zap.Error(err))
		return 0
	}
	gen, err := smp.DecodeReportGeneral(resp)
	if err != nil {
		return 0
	}
	s.hasT2T = gen.TableToTableSupported()
	if s.opt.Verbose > 2 {
		s.log.Debug("report general",
			zap.Int("len", gen.Len()),
			zap.Int("num_phys", gen.NumPhys()),
			zap.Bool("t2t", s.hasT2T),
		)
	}
	return gen.NumPhys()
}

// discoverPhy issues DISCOVER for one phy id. On success the decoded view
// is returned; on an expander-reported failure the result code is returned
// with a nil view.
func (s *Session) discoverPhy(id int) (*smp.PhyInfo, smp.ResultCode, error) {
	resp, err := s.transaction(smp.NewDiscover(id, s.opt.IgnoreZoneGroup, s.opt.Zero))
	if err != nil {
		var fe *smp.FunctionError
		if errors.As(err, &fe) {
			if s.opt.Hex || s.opt.Raw {
				s.dump(resp)
			}
			return nil, fe.Code, nil
		}
		return nil, 0, err
	}
	if s.opt.Hex || s.opt.Raw {
		s.dump(resp)
		return nil, 0, nil
	}
	phy, err := smp.DecodeDiscover(resp)
	if err != nil {
		return nil, 0, fmt.Errorf("phy %d: %w", id, err)
	}
	return phy, 0, nil
}

func (s *Session) dump(resp *smp.Response) {
	if resp == nil {
		return
	}
	if s.opt.Hex {
		hexdump.Write(s.out, resp.Bytes())
	} else {
		hexdump.WriteRaw(s.out, resp.Bytes())
	}
}

// noteSA tracks the expander SAS address across phys. The first non-zero
// address wins; later mismatches are logged, not failed, since the value is
// diagnostic.
func (s *Session) noteSA(phy *smp.PhyInfo) {
	sa := phy.SASAddress()
	if s.expanderSA == 0 {
		s.expanderSA = sa
		return
	}
	if sa == s.expanderSA {
		return
	}
	if sa > 0 {
		s.log.Warn("expander SAS address is changing?",
			zap.Int("phy_id", phy.PhyID()),
			zap.String("was", fmt.Sprintf("0x%x", s.expanderSA)),
			zap.String("now", fmt.Sprintf("0x%x", sa)),
		)
		s.expanderSA = sa
	} else if s.opt.Verbose > 0 {
		s.log.Warn("expander SAS address shown as 0",
			zap.Int("phy_id", phy.PhyID()))
	}
}

func (s *Session) noteWorst(code int) {
	if code > s.worst {
		s.worst = code
	}
}

// Run executes the traversal. The returned int is the overall exit status:
// the worst expander-reported result seen, or 0. A non-nil error is a
// transport-level failure, fatal to the whole traversal.
func (s *Session) Run() (int, error) {
	if s.opt.Multiple > 0 {
		return s.runMultiple()
	}
	return s.runSingle()
}

// runSingle handles one explicit phy id (or --my).
func (s *Session) runSingle() (int, error) {
	phy, code, err := s.discoverPhy(s.opt.PhyID)
	if err != nil {
		if errors.Is(err, errTransport) {
			return ExitFileError, err
		}
		return ExitCatMalformed, err
	}
	if s.opt.Hex || s.opt.Raw {
		return ExitOK, nil
	}

	if s.opt.My {
		var sa uint64
		if phy != nil {
			sa = phy.SASAddress()
		}
		fmt.Fprintf(s.out, "0x%016x\n", sa)
		if sa > 0 && code.Vacant() {
			return ExitOK, nil
		}
		return int(code), nil
	}
	if code != 0 {
		if code.Vacant() {
			fmt.Fprintf(s.out, "  phy identifier: %d  inaccessible (phy vacant)\n", s.opt.PhyID)
		} else {
			s.log.Error("discover failed", zap.String("result", code.String()))
		}
		return int(code), nil
	}

	if s.opt.List {
		s.renderList(phy, true)
	} else {
		s.renderFull(phy, true)
	}
	return ExitOK, nil
}

// runMultiple walks phy ids from the starting id, one line (or one full
// record) per phy. A "no such phy" result is the expected end condition;
// "phy vacant" is reported and skipped; anything else is recorded as the
// session's worst error without aborting the remaining phys.
func (s *Session) runMultiple() (int, error) {
	num := s.fetchGeneral()

	end := 0
	if num <= 0 {
		if s.opt.NumPhys > 0 {
			end = s.opt.PhyID + s.opt.NumPhys
		} else {
			end = smp.MaxPhyID
		}
	} else {
		if s.opt.PhyID >= num {
			fmt.Fprintf(s.out, "Given phy_id=%d at or beyond number of phys (%d)\n",
				s.opt.PhyID, num)
			return ExitOK, nil
		}
		end = num
		if s.opt.NumPhys > 0 && s.opt.PhyID+s.opt.NumPhys < end {
			end = s.opt.PhyID + s.opt.NumPhys
		}
	}

	first := true
	for k := s.opt.PhyID; k < end; k++ {
		phy, code, err := s.discoverPhy(k)
		if err != nil {
			if errors.Is(err, errTransport) {
				return ExitFileError, err
			}
			s.noteWorst(ExitCatMalformed)
			continue
		}
		if code != 0 {
			if code.NoSuchPhy() {
				// expected end condition
				return s.worst, nil
			}
			if code.Vacant() {
				fmt.Fprintf(s.out, "  phy %3d: inaccessible (phy vacant)\n", k)
				continue
			}
			s.log.Warn("discover failed",
				zap.Int("phy_id", k),
				zap.String("result", code.String()),
			)
			s.noteWorst(int(code))
			continue
		}
		if phy == nil { // hex/raw dump mode
			continue
		}

		s.noteSA(phy)
		if first {
			first = false
			if s.opt.SAGiven && s.opt.SA != s.expanderSA {
				fmt.Fprintf(s.out, "  <<< Warning: reported expander address is not the one requested >>>\n")
			}
		}
		if k != phy.PhyID() {
			s.log.Warn("requested phy differs from response",
				zap.Int("requested", k),
				zap.Int("response", phy.PhyID()),
			)
		}

		switch {
		case s.opt.List:
			s.renderList(phy, false)
		case s.opt.Multiple > 1:
			s.renderFull(phy, false)
		default:
			s.renderSummaryLine(k, phy)
		}
	}
	return s.worst, nil
}
