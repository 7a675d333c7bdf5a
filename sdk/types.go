package sdk

// Object masks select the relational properties the provider returns.
// Every command is answered from these three shapes.
const (
	// HardwareMask returns each server with its interfaces, their primary IPs,
	// and the native VLAN of each interface's uplink.
	HardwareMask = "mask[id,hostname,domain,fullyQualifiedDomainName," +
		"networkComponents[id,name,port,primaryIpAddress," +
		"uplinkComponent[id,name,port,networkVlan[id,name,vlanNumber]]]]"

	// VLANMask returns the identifying fields of a VLAN.
	VLANMask = "mask[id,name,vlanNumber]"

	// TrunkMask returns each trunk with its VLAN.
	TrunkMask = "mask[networkComponentId,networkVlanId,networkVlan[id,name,vlanNumber]]"
)

// Service method names, used in paths, logs and metric labels.
const (
	OpListHardware    = "SoftLayer_Account/getHardware"
	OpListVLANs       = "SoftLayer_Account/getNetworkVlans"
	OpGetVLANTrunks   = "SoftLayer_Network_Component/getNetworkVlanTrunks"
	OpAddVLANTrunks   = "SoftLayer_Network_Component/addNetworkVlanTrunks"
	OpClearVLANTrunks = "SoftLayer_Network_Component/clearNetworkVlanTrunks"
)

// vlanRef is the minimal VLAN template the provider accepts as a mutation argument.
type vlanRef struct {
	ID int `json:"id"`
}

// trunkParameters is the request body for addNetworkVlanTrunks: a single
// positional parameter holding the list of VLAN templates.
type trunkParameters struct {
	Parameters [][]vlanRef `json:"parameters"`
}
