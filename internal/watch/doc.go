// Package watch implements the live phy status monitor.
//
// It polls the expander over one open transport and renders a per-phy
// table that refreshes on an interval. Phys whose change count moved since
// the previous poll are highlighted until the next refresh, which makes
// link flaps visible without staring at counters.
//
// The monitor is a bubbletea program:
//
//	err := watch.Run(tp, 5*time.Second)
//
// Key bindings: q quits, r forces an immediate poll, p pauses polling.
package watch
