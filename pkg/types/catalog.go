package types

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"
)

var (
	ErrUnknownHub       = errors.New("unknown hub")
	ErrUnknownEventType = errors.New("unknown event type")
)

var defaultHubs = []Hub{"Delhi", "Mumbai", "Bangalore", "Chennai", "Hyderabad", "Jaipur"}

var defaultEventTypes = []EventType{
	"ORDER_DELAYED",
	"DELIVERY_FAILED",
	"INVENTORY_LOW",
	"VEHICLE_BREAKDOWN",
	"ROUTE_BLOCKED",
	"HUB_OVERLOAD",
}

// Catalog is the closed set of hubs and event types shared by every
// component. Counters, alerts and statuses are only ever produced for
// members of the catalog.
type Catalog struct {
	Hubs       []Hub       `yaml:"hubs"`
	EventTypes []EventType `yaml:"eventTypes"`
}

type Pair struct {
	EventType EventType
	Hub       Hub
}

func DefaultCatalog() Catalog {
	return Catalog{
		Hubs:       append([]Hub{}, defaultHubs...),
		EventTypes: append([]EventType{}, defaultEventTypes...),
	}
}

// WithDefaults returns a copy of the catalog where empty lists are
// replaced by the default hubs and event types.
func (c Catalog) WithDefaults() Catalog {
	d := DefaultCatalog()

	if len(c.Hubs) > 0 {
		d.Hubs = lo.Uniq(c.Hubs)
	}
	if len(c.EventTypes) > 0 {
		d.EventTypes = lo.Uniq(c.EventTypes)
	}

	return d
}

func (c Catalog) IsValidHub(hub Hub) bool {
	return lo.Contains(c.Hubs, hub)
}

func (c Catalog) IsValidEventType(eventType EventType) bool {
	return lo.Contains(c.EventTypes, eventType)
}

func (c Catalog) ParseHub(s string) (Hub, error) {
	if !c.IsValidHub(Hub(s)) {
		return "", fmt.Errorf("%w %q, must be one of: %s", ErrUnknownHub, s, c.HubNames())
	}
	return Hub(s), nil
}

func (c Catalog) ParseEventType(s string) (EventType, error) {
	if !c.IsValidEventType(EventType(s)) {
		return "", fmt.Errorf("%w %q", ErrUnknownEventType, s)
	}
	return EventType(s), nil
}

// HubNames returns the valid hubs as a comma separated list.
func (c Catalog) HubNames() string {
	return strings.Join(lo.Map(c.Hubs, func(h Hub, _ int) string { return string(h) }), ", ")
}

// Pairs returns every (event type, hub) combination with event types as
// the outer loop, both in catalog order.
func (c Catalog) Pairs() []Pair {
	pairs := make([]Pair, 0, len(c.EventTypes)*len(c.Hubs))
	for _, et := range c.EventTypes {
		for _, h := range c.Hubs {
			pairs = append(pairs, Pair{EventType: et, Hub: h})
		}
	}
	return pairs
}
