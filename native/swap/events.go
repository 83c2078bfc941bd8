package swap

import (
	"encoding/hex"
	"math/big"
	"strconv"

	"fusionmarket/core/types"
	"fusionmarket/native/escrow"
	"fusionmarket/native/oracle"
)

const (
	// EventTypeRedeemed marks a settled redemption.
	EventTypeRedeemed = "swap.redeemed"
)

type swapEvent struct {
	evt *types.Event
}

func (e swapEvent) EventType() string {
	if e.evt == nil {
		return ""
	}
	return e.evt.Type
}

func (e swapEvent) Event() *types.Event { return e.evt }

// NewRedeemedEvent describes a completed redemption with the priced value
// and resulting payout.
func NewRedeemedEvent(released *escrow.Escrow, record *oracle.PriceRecord, bonusBps int64, finalUsd, tokenAmount *big.Int) *types.Event {
	attrs := make(map[string]string)
	if released != nil {
		attrs["escrowId"] = hex.EncodeToString(released.ID[:])
		attrs["owner"] = hex.EncodeToString(released.Owner[:])
	}
	if record != nil {
		attrs["projectId"] = record.ProjectID
		attrs["priceSource"] = record.Source.String()
		if record.UnitPriceUSD != nil {
			attrs["unitPriceUsd"] = record.UnitPriceUSD.String()
		}
	}
	attrs["rarityBonusBps"] = strconv.FormatInt(bonusBps, 10)
	if finalUsd != nil {
		attrs["finalUsd"] = finalUsd.String()
	}
	if tokenAmount != nil {
		attrs["tokenAmount"] = tokenAmount.String()
	}
	return &types.Event{Type: EventTypeRedeemed, Attributes: attrs}
}
