// Package models provides the data structures shared by the vlantrunk SDK,
// the trunk service, and the CLI.
//
// The models mirror the provider's account resources as they come back from
// the REST API:
//   - Hardware: a bare-metal server with its network components
//   - NetworkComponent: a server interface, or the switch port it is uplinked to
//   - VLAN: a VLAN in the account inventory
//   - VLANTrunk: a VLAN trunked on an uplink component
//
// All structs carry the provider's JSON field names. Nothing here is ever
// persisted: values live for the duration of a single command invocation.
package models
