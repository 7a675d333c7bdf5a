// Package trunk resolves interface identifiers against the account inventory
// and runs the VLAN trunk operations on the resolved interface's uplink.
package trunk

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/yaroslav/vlantrunk/internal/logging"
	"github.com/yaroslav/vlantrunk/internal/metrics"
	"github.com/yaroslav/vlantrunk/models"
	"github.com/yaroslav/vlantrunk/pkg/identifier"
)

// API is the subset of the provider client the service needs.
// *sdk.Client satisfies it.
type API interface {
	ListHardware(ctx context.Context) ([]models.Hardware, error)
	ListVLANs(ctx context.Context) ([]models.VLAN, error)
	GetVLANTrunks(ctx context.Context, componentID int) ([]models.VLANTrunk, error)
	AddVLANTrunks(ctx context.Context, componentID int, vlans ...models.VLAN) ([]models.VLAN, error)
	ClearVLANTrunks(ctx context.Context, componentID int) error
}

const vlansKey = "vlans"

// Service runs one invocation's worth of queries and mutations.
// The account VLAN list is fetched at most once per Service.
type Service struct {
	api   API
	vlans *cache.Cache
}

// NewService creates a Service backed by api.
func NewService(api API) *Service {
	return &Service{
		api:   api,
		vlans: cache.New(cache.NoExpiration, 0),
	}
}

// Resolved is an interface identifier resolved to its server and component.
type Resolved struct {
	Identifier identifier.Identifier
	Hardware   *models.Hardware
	Component  *models.NetworkComponent
}

// Uplink returns the component's uplink or ErrNoUplink.
func (r *Resolved) Uplink() (*models.NetworkComponent, error) {
	if r.Component.UplinkComponent == nil {
		return nil, fmt.Errorf("%w: %s", models.ErrNoUplink, r.Identifier.Raw)
	}
	return r.Component.UplinkComponent, nil
}

// ListHardware returns the account's servers that pass filter, in provider order.
func (s *Service) ListHardware(ctx context.Context, filter Filter) ([]models.Hardware, error) {
	hardware, err := s.api.ListHardware(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]models.Hardware, 0, len(hardware))
	for _, hw := range hardware {
		if filter.Match(hw) {
			out = append(out, hw)
		}
	}

	logging.FromContext(ctx).Debug("listed hardware",
		zap.Int("total", len(hardware)),
		zap.Int("matched", len(out)),
	)
	return out, nil
}

// ListVLANs returns the account VLANs, fetching them on first use.
func (s *Service) ListVLANs(ctx context.Context) ([]models.VLAN, error) {
	if cached, ok := s.vlans.Get(vlansKey); ok {
		return cached.([]models.VLAN), nil
	}

	vlans, err := s.api.ListVLANs(ctx)
	if err != nil {
		return nil, err
	}

	s.vlans.Set(vlansKey, vlans, cache.NoExpiration)
	return vlans, nil
}

// LookupVLANs resolves VLAN names against the account VLAN list, keeping the
// given order. Names are matched exactly; the first VLAN with a name wins.
func (s *Service) LookupVLANs(ctx context.Context, names []string) ([]models.VLAN, error) {
	vlans, err := s.ListVLANs(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]models.VLAN, 0, len(names))
	for _, name := range names {
		found := false
		for _, v := range vlans {
			if v.Name == name {
				out = append(out, v)
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("%w: %q", models.ErrVLANNotFound, name)
		}
	}
	return out, nil
}

// ResolveInterface parses raw and finds the network component it names.
//
// The IP form searches every server's components for a matching primary IP.
// The hostname forms first find the server by hostname and domain, then match
// either the interface name (eth<N>) or the uplink's native VLAN name.
// The first match in provider order wins.
func (s *Service) ResolveInterface(ctx context.Context, raw string) (*Resolved, error) {
	id, err := identifier.Parse(raw)
	if err != nil {
		metrics.ObserveResolution("invalid", err)
		return nil, err
	}

	hardware, err := s.api.ListHardware(ctx)
	if err != nil {
		return nil, err
	}

	resolved, err := resolve(id, hardware)
	metrics.ObserveResolution(id.Kind.String(), err)
	if err != nil {
		return nil, err
	}

	logging.FromContext(ctx).Debug("resolved interface",
		zap.String(logging.FieldIdentifier, raw),
		zap.String(logging.FieldIdentifierKind, id.Kind.String()),
		zap.Int(logging.FieldHardwareID, resolved.Hardware.ID),
		zap.Int(logging.FieldComponentID, resolved.Component.ID),
	)
	return resolved, nil
}

func resolve(id identifier.Identifier, hardware []models.Hardware) (*Resolved, error) {
	if id.Kind == identifier.KindIP {
		for i := range hardware {
			for j := range hardware[i].NetworkComponents {
				nic := &hardware[i].NetworkComponents[j]
				if nic.PrimaryIPAddress != "" && nic.PrimaryIPAddress == id.IP {
					return &Resolved{Identifier: id, Hardware: &hardware[i], Component: nic}, nil
				}
			}
		}
		return nil, fmt.Errorf("%w: no interface with primary IP %s", models.ErrInterfaceNotFound, id.IP)
	}

	var hw *models.Hardware
	for i := range hardware {
		if hardware[i].Hostname == id.Hostname && hardware[i].Domain == id.Domain {
			hw = &hardware[i]
			break
		}
	}
	if hw == nil {
		return nil, fmt.Errorf("%w: %s", models.ErrHardwareNotFound, id.FQDN())
	}

	for j := range hw.NetworkComponents {
		nic := &hw.NetworkComponents[j]
		switch id.Kind {
		case identifier.KindInterface:
			if nic.InterfaceName() == id.Interface {
				return &Resolved{Identifier: id, Hardware: hw, Component: nic}, nil
			}
		case identifier.KindVLANName:
			if v := nic.NativeVLAN(); v != nil && v.Name == id.VLANName {
				return &Resolved{Identifier: id, Hardware: hw, Component: nic}, nil
			}
		}
	}

	if id.Kind == identifier.KindInterface {
		return nil, fmt.Errorf("%w: %s has no interface %s", models.ErrInterfaceNotFound, id.FQDN(), id.Interface)
	}
	return nil, fmt.Errorf("%w: %s has no interface on vlan %q", models.ErrInterfaceNotFound, id.FQDN(), id.VLANName)
}

// GetVLAN returns the resolved interface and the native VLAN of its uplink.
func (s *Service) GetVLAN(ctx context.Context, raw string) (*Resolved, *models.VLAN, error) {
	resolved, err := s.ResolveInterface(ctx, raw)
	if err != nil {
		return nil, nil, err
	}

	uplink, err := resolved.Uplink()
	if err != nil {
		return nil, nil, err
	}
	if uplink.NetworkVLAN == nil {
		return nil, nil, fmt.Errorf("%w: uplink %d of %s reports no native vlan",
			models.ErrVLANNotFound, uplink.ID, raw)
	}
	return resolved, uplink.NetworkVLAN, nil
}

// GetVLANTrunks returns the VLANs trunked on the resolved interface's uplink.
func (s *Service) GetVLANTrunks(ctx context.Context, raw string) ([]models.VLAN, error) {
	resolved, err := s.ResolveInterface(ctx, raw)
	if err != nil {
		return nil, err
	}

	uplink, err := resolved.Uplink()
	if err != nil {
		return nil, err
	}

	return s.trunkVLANs(ctx, uplink.ID)
}

func (s *Service) trunkVLANs(ctx context.Context, uplinkID int) ([]models.VLAN, error) {
	trunks, err := s.api.GetVLANTrunks(ctx, uplinkID)
	if err != nil {
		return nil, err
	}

	vlans := make([]models.VLAN, 0, len(trunks))
	for _, t := range trunks {
		if t.NetworkVLAN != nil {
			vlans = append(vlans, *t.NetworkVLAN)
		} else {
			vlans = append(vlans, models.VLAN{ID: t.NetworkVLANID})
		}
	}
	return vlans, nil
}

// PartialError reports an add that failed after some VLANs were already trunked.
// Nothing is rolled back.
type PartialError struct {
	// Failed is the VLAN whose call failed.
	Failed models.VLAN

	// Applied are the VLANs trunked before the failure, in call order.
	Applied []models.VLAN

	Err error
}

func (e *PartialError) Error() string {
	applied := make([]string, 0, len(e.Applied))
	for _, v := range e.Applied {
		applied = append(applied, v.Name)
	}
	msg := fmt.Sprintf("failed to add vlan %q", e.Failed.Name)
	if len(applied) > 0 {
		msg += fmt.Sprintf(" (already added: %s)", strings.Join(applied, ","))
	}
	return msg + ": " + e.Err.Error()
}

func (e *PartialError) Unwrap() error { return e.Err }

// AddVLANTrunks trunks the named VLANs onto the resolved interface's uplink
// and returns the uplink's trunks afterwards.
//
// All names are resolved before the first mutation. Each VLAN is then added
// with its own call, in the given order; a failure stops the sequence and
// returns a *PartialError.
func (s *Service) AddVLANTrunks(ctx context.Context, raw string, names []string) ([]models.VLAN, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: no vlan names given", models.ErrVLANNotFound)
	}

	resolved, err := s.ResolveInterface(ctx, raw)
	if err != nil {
		return nil, err
	}

	uplink, err := resolved.Uplink()
	if err != nil {
		return nil, err
	}

	vlans, err := s.LookupVLANs(ctx, names)
	if err != nil {
		return nil, err
	}

	logger := logging.With(ctx, zap.Int(logging.FieldUplinkID, uplink.ID))

	applied := make([]models.VLAN, 0, len(vlans))
	for _, v := range vlans {
		_, err := s.api.AddVLANTrunks(ctx, uplink.ID, v)
		metrics.ObserveTrunkMutation("add", err)
		if err != nil {
			return nil, &PartialError{Failed: v, Applied: applied, Err: err}
		}

		logger.Info("added vlan trunk",
			zap.Int(logging.FieldVLANID, v.ID),
			zap.String(logging.FieldVLANName, v.Name),
		)
		applied = append(applied, v)
	}

	return s.trunkVLANs(ctx, uplink.ID)
}

// ClearVLANTrunks removes every trunk from the resolved interface's uplink.
func (s *Service) ClearVLANTrunks(ctx context.Context, raw string) error {
	resolved, err := s.ResolveInterface(ctx, raw)
	if err != nil {
		return err
	}

	uplink, err := resolved.Uplink()
	if err != nil {
		return err
	}

	err = s.api.ClearVLANTrunks(ctx, uplink.ID)
	metrics.ObserveTrunkMutation("clear", err)
	if err != nil {
		return err
	}

	logging.With(ctx, zap.Int(logging.FieldUplinkID, uplink.ID)).Info("cleared vlan trunks")
	return nil
}

// IsResolutionError reports whether err is a local resolution failure rather
// than a remote-call failure.
func IsResolutionError(err error) bool {
	return errors.Is(err, models.ErrInvalidIdentifier) ||
		errors.Is(err, models.ErrHardwareNotFound) ||
		errors.Is(err, models.ErrInterfaceNotFound) ||
		errors.Is(err, models.ErrNoUplink) ||
		errors.Is(err, models.ErrVLANNotFound)
}
