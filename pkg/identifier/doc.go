// Package identifier parses the interface identifiers accepted by vlantrunk.
//
// Three forms are recognised, distinguished by comma-separated tokens:
//
//	10.20.30.40               primary IP of the interface
//	machine-01.example.com,eth1   host FQDN and local interface name
//	machine-01.example.com,prod   host FQDN and the name of the interface's VLAN
//
// # Parsing
//
//	id, err := identifier.Parse("machine-01.example.com,eth1")
//	if err != nil {
//	    return err
//	}
//	// id.Kind == identifier.KindInterface
//	// id.Hostname == "machine-01", id.Domain == "example.com", id.Interface == "eth1"
//
// The second token is treated as an interface name when it starts with "eth"
// followed by digits; anything else is taken to be a VLAN name.
//
// Parse only checks the grammar. Matching against the account inventory
// happens in the trunk service.
package identifier
