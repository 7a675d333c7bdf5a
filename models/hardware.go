package models

import "strconv"

// Hardware represents a bare-metal server in the account.
type Hardware struct {
	// ID is the provider's hardware identifier.
	ID int `json:"id"`

	// Hostname is the short host name (e.g., "machine-01").
	Hostname string `json:"hostname"`

	// Domain is the domain part of the FQDN (e.g., "example.com").
	Domain string `json:"domain"`

	// FullyQualifiedDomainName is Hostname + "." + Domain as reported by the provider.
	FullyQualifiedDomainName string `json:"fullyQualifiedDomainName"`

	// NetworkComponents is the list of interfaces on this server, in provider order.
	NetworkComponents []NetworkComponent `json:"networkComponents,omitempty"`
}

// NetworkComponent represents a network interface. Server interfaces point to
// the switch port they are connected through via UplinkComponent; uplink
// components carry the native VLAN in NetworkVLAN.
type NetworkComponent struct {
	// ID is the provider's network component identifier.
	ID int `json:"id"`

	// Name is the interface base name (e.g., "eth").
	Name string `json:"name"`

	// Port is the interface index appended to Name.
	Port int `json:"port"`

	// PrimaryIPAddress is the primary IP bound to the interface, if any.
	PrimaryIPAddress string `json:"primaryIpAddress,omitempty"`

	// UplinkComponent is the upstream component this interface connects through.
	UplinkComponent *NetworkComponent `json:"uplinkComponent,omitempty"`

	// NetworkVLAN is the VLAN the component is provisioned on. Populated on uplinks.
	NetworkVLAN *VLAN `json:"networkVlan,omitempty"`
}

// InterfaceName returns the local interface name, Name followed by Port (e.g., "eth1").
func (c NetworkComponent) InterfaceName() string {
	return c.Name + strconv.Itoa(c.Port)
}

// NativeVLAN returns the VLAN the component's uplink is provisioned on, or nil.
func (c NetworkComponent) NativeVLAN() *VLAN {
	if c.UplinkComponent == nil {
		return nil
	}
	return c.UplinkComponent.NetworkVLAN
}
