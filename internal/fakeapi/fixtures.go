package fakeapi

import "github.com/yaroslav/vlantrunk/models"

// Sample account credentials.
const (
	SampleUsername = "SL0001"
	SampleAPIKey   = "0123456789abcdef"
)

// Sample VLANs.
var (
	VLANFrontend = models.VLAN{ID: 1, Name: "frontend", VLANNumber: 1101}
	VLANBackend  = models.VLAN{ID: 2, Name: "backend", VLANNumber: 1102}
	VLANStorage  = models.VLAN{ID: 3, Name: "storage", VLANNumber: 700}
	VLANBackup   = models.VLAN{ID: 4, Name: "backup", VLANNumber: 800}
	VLANMgmt     = models.VLAN{ID: 5, Name: "mgmt", VLANNumber: 900}
)

func nic(id, port int, ip string, uplinkID int, native models.VLAN) models.NetworkComponent {
	vlan := native
	return models.NetworkComponent{
		ID:               id,
		Name:             "eth",
		Port:             port,
		PrimaryIPAddress: ip,
		UplinkComponent: &models.NetworkComponent{
			ID:          uplinkID,
			Name:        "GigabitEthernet1/0/",
			Port:        port,
			NetworkVLAN: &vlan,
		},
	}
}

func server(id int, hostname, domain string, nics ...models.NetworkComponent) models.Hardware {
	return models.Hardware{
		ID:                       id,
		Hostname:                 hostname,
		Domain:                   domain,
		FullyQualifiedDomainName: hostname + "." + domain,
		NetworkComponents:        nics,
	}
}

// NewSample returns an account with three servers and five VLANs:
//
//	machine-01.example.com  eth0 10.0.0.1 (uplink 111, frontend)  eth1 10.1.0.1 (uplink 112, backend)
//	machine-02.example.com  eth0 10.0.0.2 (uplink 121, frontend)  eth1 10.1.0.2 (uplink 122, backend)
//	bastion.example.org     eth0 192.168.1.10 (uplink 131, mgmt)
//
// Uplink 112 starts with the storage VLAN trunked.
func NewSample() *Provider {
	p := New(SampleUsername, SampleAPIKey)

	p.AddVLANs(VLANFrontend, VLANBackend, VLANStorage, VLANBackup, VLANMgmt)
	p.AddHardware(
		server(1001, "machine-01", "example.com",
			nic(11, 0, "10.0.0.1", 111, VLANFrontend),
			nic(12, 1, "10.1.0.1", 112, VLANBackend),
		),
		server(1002, "machine-02", "example.com",
			nic(21, 0, "10.0.0.2", 121, VLANFrontend),
			nic(22, 1, "10.1.0.2", 122, VLANBackend),
		),
		server(1003, "bastion", "example.org",
			nic(31, 0, "192.168.1.10", 131, VLANMgmt),
		),
	)
	p.SetTrunks(112, VLANStorage.ID)

	return p
}
