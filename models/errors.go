package models

import "errors"

// Resolution errors. These are local failures: the inventory was fetched
// successfully but nothing in it matched what the user asked for.
var (
	// ErrInvalidIdentifier indicates the interface identifier does not follow
	// the IP | FQDN,eth<N> | FQDN,<vlan-name> grammar.
	ErrInvalidIdentifier = errors.New("invalid interface identifier")

	// ErrHardwareNotFound indicates no hardware matched the hostname and domain.
	ErrHardwareNotFound = errors.New("hardware not found")

	// ErrInterfaceNotFound indicates no network component matched the identifier.
	ErrInterfaceNotFound = errors.New("network interface not found")

	// ErrNoUplink indicates the resolved component has no uplink component,
	// so it cannot carry VLAN trunks.
	ErrNoUplink = errors.New("network interface has no uplink component")

	// ErrVLANNotFound indicates a VLAN name is not present in the account.
	ErrVLANNotFound = errors.New("vlan not found")
)
