package oracle

import (
	"strconv"

	"fusionmarket/core/types"
)

const (
	// EventTypePriceUpdated is emitted whenever any update path lands a new
	// price record.
	EventTypePriceUpdated = "oracle.price.updated"
)

type oracleEvent struct {
	evt *types.Event
}

func (e oracleEvent) EventType() string {
	if e.evt == nil {
		return ""
	}
	return e.evt.Type
}

func (e oracleEvent) Event() *types.Event { return e.evt }

// NewPriceUpdatedEvent returns the canonical event payload for a landed price
// update.
func NewPriceUpdatedEvent(record *PriceRecord) *types.Event {
	attrs := make(map[string]string)
	if record == nil {
		return &types.Event{Type: EventTypePriceUpdated, Attributes: attrs}
	}
	attrs["projectId"] = record.ProjectID
	if record.UnitPriceUSD != nil {
		attrs["unitPriceUsd"] = record.UnitPriceUSD.String()
	}
	attrs["source"] = record.Source.String()
	attrs["lastUpdate"] = strconv.FormatInt(record.LastUpdate, 10)
	return &types.Event{Type: EventTypePriceUpdated, Attributes: attrs}
}
