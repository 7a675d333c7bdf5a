package models

// VLAN represents a VLAN in the account inventory.
type VLAN struct {
	// ID is the provider's VLAN identifier. Trunk mutations reference VLANs by ID.
	ID int `json:"id"`

	// Name is the human-readable VLAN name. May be empty.
	Name string `json:"name"`

	// VLANNumber is the 802.1Q tag.
	VLANNumber int `json:"vlanNumber"`
}

// VLANTrunk is a VLAN trunked on an uplink component.
type VLANTrunk struct {
	// NetworkComponentID is the uplink component carrying the trunk.
	NetworkComponentID int `json:"networkComponentId"`

	// NetworkVLANID is the trunked VLAN's ID.
	NetworkVLANID int `json:"networkVlanId"`

	// NetworkVLAN is the trunked VLAN, when requested in the object mask.
	NetworkVLAN *VLAN `json:"networkVlan,omitempty"`
}
