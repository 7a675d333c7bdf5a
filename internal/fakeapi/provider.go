// Package fakeapi is an in-memory stand-in for the provider REST API.
//
// It serves the account inventory and network component trunk endpoints the
// sdk package calls, checks basic credentials, and keeps trunk state so
// mutations are observable through later reads. Tests drive it through
// httptest:
//
//	p := fakeapi.New("user", "key")
//	p.AddVLANs(models.VLAN{ID: 7, Name: "storage", VLANNumber: 700})
//	srv := httptest.NewServer(p.Router(zap.NewNop()))
package fakeapi

import (
	"sort"
	"sync"

	"github.com/yaroslav/vlantrunk/models"
)

// Failure is an injected error response for one operation.
type Failure struct {
	Status  int
	Code    string
	Message string
}

// Provider holds the fake account state. It is safe for concurrent use.
type Provider struct {
	username string
	apiKey   string

	mu         sync.Mutex
	hardware   []models.Hardware
	vlans      []models.VLAN
	components map[int]bool
	trunks     map[int][]int
	failures   map[string][]Failure
	calls      map[string]int
}

// New returns an empty account that accepts the given credentials.
func New(username, apiKey string) *Provider {
	return &Provider{
		username:   username,
		apiKey:     apiKey,
		components: make(map[int]bool),
		trunks:     make(map[int][]int),
		failures:   make(map[string][]Failure),
		calls:      make(map[string]int),
	}
}

// AddHardware registers servers. Every network component and uplink becomes
// addressable by the trunk endpoints.
func (p *Provider) AddHardware(hardware ...models.Hardware) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, hw := range hardware {
		for _, nic := range hw.NetworkComponents {
			p.components[nic.ID] = true
			if nic.UplinkComponent != nil {
				p.components[nic.UplinkComponent.ID] = true
			}
		}
		p.hardware = append(p.hardware, hw)
	}
}

// AddVLANs registers account VLANs.
func (p *Provider) AddVLANs(vlans ...models.VLAN) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.vlans = append(p.vlans, vlans...)
}

// SetTrunks replaces the trunked VLAN IDs of a component.
func (p *Provider) SetTrunks(componentID int, vlanIDs ...int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.components[componentID] = true
	p.trunks[componentID] = append([]int(nil), vlanIDs...)
}

// Trunks returns the trunked VLAN IDs of a component in ascending order.
func (p *Provider) Trunks(componentID int) []int {
	p.mu.Lock()
	defer p.mu.Unlock()
	ids := append([]int(nil), p.trunks[componentID]...)
	sort.Ints(ids)
	return ids
}

// Fail queues an error response for the next call to operation. Queued
// failures are consumed in order.
func (p *Provider) Fail(operation string, f Failure) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failures[operation] = append(p.failures[operation], f)
}

// Calls returns how many requests reached operation, failed ones included.
func (p *Provider) Calls(operation string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls[operation]
}

// record counts a call and pops a queued failure, if any.
func (p *Provider) record(operation string) (Failure, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.calls[operation]++

	queue := p.failures[operation]
	if len(queue) == 0 {
		return Failure{}, false
	}
	p.failures[operation] = queue[1:]
	return queue[0], true
}

func (p *Provider) vlanByID(id int) (models.VLAN, bool) {
	for _, v := range p.vlans {
		if v.ID == id {
			return v, true
		}
	}
	return models.VLAN{}, false
}

func (p *Provider) trunkList(componentID int) []models.VLANTrunk {
	out := make([]models.VLANTrunk, 0, len(p.trunks[componentID]))
	for _, id := range p.trunks[componentID] {
		trunk := models.VLANTrunk{NetworkComponentID: componentID, NetworkVLANID: id}
		if v, ok := p.vlanByID(id); ok {
			vlan := v
			trunk.NetworkVLAN = &vlan
		}
		out = append(out, trunk)
	}
	return out
}

// addTrunks adds VLAN IDs that are not yet present and returns the VLANs
// named in the request. Unknown VLAN IDs are rejected before any change.
func (p *Provider) addTrunks(componentID int, ids []int) ([]models.VLAN, int, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.components[componentID] {
		return nil, componentID, false
	}

	added := make([]models.VLAN, 0, len(ids))
	for _, id := range ids {
		v, ok := p.vlanByID(id)
		if !ok {
			return nil, id, false
		}
		added = append(added, v)
	}

	for _, id := range ids {
		present := false
		for _, existing := range p.trunks[componentID] {
			if existing == id {
				present = true
				break
			}
		}
		if !present {
			p.trunks[componentID] = append(p.trunks[componentID], id)
		}
	}

	return added, 0, true
}

func (p *Provider) clearTrunks(componentID int) ([]models.VLAN, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.components[componentID] {
		return nil, false
	}

	removed := make([]models.VLAN, 0, len(p.trunks[componentID]))
	for _, id := range p.trunks[componentID] {
		if v, ok := p.vlanByID(id); ok {
			removed = append(removed, v)
		}
	}
	delete(p.trunks, componentID)
	return removed, true
}
