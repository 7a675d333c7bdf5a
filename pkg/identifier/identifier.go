package identifier

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/yaroslav/vlantrunk/models"
)

// Kind identifies which of the three identifier forms was given.
type Kind int

const (
	// KindIP is a bare primary IP address.
	KindIP Kind = iota

	// KindInterface is FQDN plus a local interface name such as eth0.
	KindInterface

	// KindVLANName is FQDN plus the name of the interface's native VLAN.
	KindVLANName
)

// String returns the kind as used in logs and metric labels.
func (k Kind) String() string {
	switch k {
	case KindIP:
		return "ip"
	case KindInterface:
		return "interface"
	case KindVLANName:
		return "vlan_name"
	default:
		return "unknown"
	}
}

var interfacePattern = regexp.MustCompile(`^eth[0-9]+`)

// Identifier is a parsed interface identifier.
type Identifier struct {
	// Raw is the identifier exactly as given.
	Raw string

	// Kind selects which of the remaining fields are set.
	Kind Kind

	// IP is set for KindIP.
	IP string

	// Hostname and Domain are split from the FQDN at its first dot.
	// Set for KindInterface and KindVLANName.
	Hostname string
	Domain   string

	// Interface is set for KindInterface (e.g., "eth1").
	Interface string

	// VLANName is set for KindVLANName.
	VLANName string
}

// FQDN returns Hostname and Domain joined back together.
func (id Identifier) FQDN() string {
	if id.Domain == "" {
		return id.Hostname
	}
	return id.Hostname + "." + id.Domain
}

// Parse splits raw on commas and classifies it.
//
// Returns models.ErrInvalidIdentifier (wrapped) when raw has more than two
// tokens or an empty token.
func Parse(raw string) (Identifier, error) {
	tokens := strings.Split(raw, ",")
	for i := range tokens {
		tokens[i] = strings.TrimSpace(tokens[i])
		if tokens[i] == "" {
			return Identifier{}, fmt.Errorf("%w: %q has an empty field", models.ErrInvalidIdentifier, raw)
		}
	}

	switch len(tokens) {
	case 1:
		return Identifier{Raw: raw, Kind: KindIP, IP: tokens[0]}, nil
	case 2:
		hostname, domain := SplitFQDN(tokens[0])
		id := Identifier{Raw: raw, Hostname: hostname, Domain: domain}
		if IsInterfaceName(tokens[1]) {
			id.Kind = KindInterface
			id.Interface = tokens[1]
		} else {
			id.Kind = KindVLANName
			id.VLANName = tokens[1]
		}
		return id, nil
	default:
		return Identifier{}, fmt.Errorf("%w: %q must be IP, FQDN,eth<N> or FQDN,<vlan-name>", models.ErrInvalidIdentifier, raw)
	}
}

// SplitFQDN splits fqdn at its first dot into hostname and domain.
// A name without a dot yields an empty domain.
func SplitFQDN(fqdn string) (hostname, domain string) {
	hostname, domain, _ = strings.Cut(fqdn, ".")
	return hostname, domain
}

// IsInterfaceName reports whether s starts with a local interface name (eth<N>).
func IsInterfaceName(s string) bool {
	return interfacePattern.MatchString(s)
}
