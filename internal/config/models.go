package config

import (
	"os"
	"time"
)

// Environment variables consulted when no flag names a target.
const (
	DeviceEnvVar  = "SMPCTL_DEVICE"
	SASAddrEnvVar = "SMPCTL_SAS_ADDR"
)

// Registry represents the entire user configuration file.
// This stores user-defined metadata for expanders and application preferences.
type Registry struct {
	Version     int                  `yaml:"version"`
	Expanders   map[string]*Expander `yaml:"expanders,omitempty"` // Keyed by nickname
	Preferences *Preferences         `yaml:"preferences,omitempty"`
}

// Expander represents user-defined metadata for a single SAS expander.
// This is keyed by nickname in the Registry.
type Expander struct {
	Device     string    `yaml:"device,omitempty"`      // Device node, e.g. /dev/bsg/expander-0:0
	SASAddress string    `yaml:"sas_address,omitempty"` // Target SAS address, e.g. 0x5001638001000000
	LastSeen   time.Time `yaml:"last_seen,omitempty"`   // Last successful transaction time
	NumPhys    int       `yaml:"num_phys,omitempty"`    // Phy count from the last REPORT GENERAL
}

// Preferences represents application-wide user preferences.
type Preferences struct {
	DefaultExpander string `yaml:"default_expander,omitempty"` // Nickname used when no target is given
	LogLevel        string `yaml:"log_level,omitempty"`        // debug, info, warn or error; empty is silent
	WatchInterval   int    `yaml:"watch_interval,omitempty"`   // Poll interval for the watch command, seconds
}

// NewRegistry creates a new Registry with default values.
func NewRegistry() *Registry {
	return &Registry{
		Version:   1,
		Expanders: make(map[string]*Expander),
		Preferences: &Preferences{
			WatchInterval: 5,
		},
	}
}

// GetExpander retrieves expander metadata by nickname.
// Returns nil if the expander doesn't exist in the registry.
func (r *Registry) GetExpander(name string) *Expander {
	return r.Expanders[name]
}

// EnsureExpander ensures an expander entry exists in the registry.
// If the expander doesn't exist, creates a new entry.
// Returns the entry (existing or newly created).
func (r *Registry) EnsureExpander(name string) *Expander {
	if r.Expanders == nil {
		r.Expanders = make(map[string]*Expander)
	}

	if exp, exists := r.Expanders[name]; exists {
		return exp
	}

	exp := &Expander{}
	r.Expanders[name] = exp
	return exp
}

// UpdateExpanderLastSeen records a successful transaction against an
// expander, together with the phy count REPORT GENERAL returned.
func (r *Registry) UpdateExpanderLastSeen(name string, numPhys int) {
	exp := r.EnsureExpander(name)
	exp.LastSeen = time.Now()
	if numPhys > 0 {
		exp.NumPhys = numPhys
	}
}

// DefaultExpander returns the entry named by preferences.default_expander,
// or nil when none is configured.
func (r *Registry) DefaultExpander() *Expander {
	if r.Preferences == nil || r.Preferences.DefaultExpander == "" {
		return nil
	}
	return r.Expanders[r.Preferences.DefaultExpander]
}

// ResolveTarget resolves the device node and SAS address for a command.
// Flags win over environment variables, which win over the configured
// default expander. Either return value may be empty when nothing names it.
func (r *Registry) ResolveTarget(deviceFlag, saFlag string) (device, sa string) {
	device = deviceFlag
	sa = saFlag
	if device == "" {
		device = os.Getenv(DeviceEnvVar)
	}
	if sa == "" {
		sa = os.Getenv(SASAddrEnvVar)
	}
	if def := r.DefaultExpander(); def != nil {
		if device == "" {
			device = def.Device
		}
		if sa == "" {
			sa = def.SASAddress
		}
	}
	return device, sa
}

// LookupByDevice finds the nickname of the expander configured with the
// given device node, or "" when none matches.
func (r *Registry) LookupByDevice(device string) string {
	for name, exp := range r.Expanders {
		if exp.Device == device {
			return name
		}
	}
	return ""
}
