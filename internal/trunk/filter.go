package trunk

import (
	"strings"

	"github.com/yaroslav/vlantrunk/models"
)

// Filter selects hardware for list_hardware. Empty fields match everything;
// set fields combine with AND.
type Filter struct {
	// Domain must equal the server's domain exactly.
	Domain string

	// Hostnames is an exact-membership set of short hostnames.
	Hostnames []string

	// HostnamePrefix must prefix the server's hostname.
	HostnamePrefix string
}

// Match reports whether hw passes every set criterion.
func (f Filter) Match(hw models.Hardware) bool {
	if f.Domain != "" && hw.Domain != f.Domain {
		return false
	}

	if len(f.Hostnames) > 0 {
		found := false
		for _, h := range f.Hostnames {
			if h == hw.Hostname {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	return strings.HasPrefix(hw.Hostname, f.HostnamePrefix)
}
