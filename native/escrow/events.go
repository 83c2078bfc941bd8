package escrow

import (
	"encoding/hex"
	"strconv"

	"fusionmarket/core/types"
)

const (
	EventTypeDeposited = "escrow.deposited"
	EventTypeAdvanced  = "escrow.advanced"
	EventTypeReleased  = "escrow.released"
	EventTypeCancelled = "escrow.cancelled"
)

type escrowEvent struct {
	evt *types.Event
}

func (e escrowEvent) EventType() string {
	if e.evt == nil {
		return ""
	}
	return e.evt.Type
}

func (e escrowEvent) Event() *types.Event { return e.evt }

func baseAttributes(record *Escrow) map[string]string {
	attrs := make(map[string]string)
	if record == nil {
		return attrs
	}
	attrs["id"] = hex.EncodeToString(record.ID[:])
	attrs["owner"] = hex.EncodeToString(record.Owner[:])
	attrs["state"] = record.State.String()
	if record.Amount != nil {
		attrs["amount"] = record.Amount.String()
	}
	return attrs
}

// NewDepositedEvent describes a freshly created escrow.
func NewDepositedEvent(record *Escrow) *types.Event {
	attrs := baseAttributes(record)
	if record != nil {
		attrs["assetRef"] = hex.EncodeToString(record.AssetRef[:])
		attrs["vestingStart"] = strconv.FormatInt(record.VestingStart, 10)
		attrs["vestingDuration"] = strconv.FormatInt(record.VestingDuration, 10)
	}
	return &types.Event{Type: EventTypeDeposited, Attributes: attrs}
}

// NewAdvancedEvent describes a vesting escrow entering the ready state.
func NewAdvancedEvent(record *Escrow) *types.Event {
	attrs := baseAttributes(record)
	if record != nil {
		attrs["cooldownUntil"] = strconv.FormatInt(record.CooldownUntil, 10)
	}
	return &types.Event{Type: EventTypeAdvanced, Attributes: attrs}
}

// NewReleasedEvent describes a settled escrow.
func NewReleasedEvent(record *Escrow) *types.Event {
	return &types.Event{Type: EventTypeReleased, Attributes: baseAttributes(record)}
}

// NewCancelledEvent describes an owner-cancelled escrow.
func NewCancelledEvent(record *Escrow, now int64) *types.Event {
	attrs := baseAttributes(record)
	attrs["cancelledAt"] = strconv.FormatInt(now, 10)
	return &types.Event{Type: EventTypeCancelled, Attributes: attrs}
}
