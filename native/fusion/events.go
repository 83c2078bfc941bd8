package fusion

import (
	"encoding/hex"
	"strconv"

	"fusionmarket/core/types"
)

const (
	EventTypeFusionSucceeded = "fusion.succeeded"
	EventTypeFusionFailed    = "fusion.failed"
)

type fusionEvent struct {
	evt *types.Event
}

func (e fusionEvent) EventType() string {
	if e.evt == nil {
		return ""
	}
	return e.evt.Type
}

func (e fusionEvent) Event() *types.Event { return e.evt }

// NewOutcomeEvent describes a completed fusion attempt.
func NewOutcomeEvent(collectionID string, outcome *FusionOutcome) *types.Event {
	attrs := map[string]string{"collectionId": collectionID}
	eventType := EventTypeFusionFailed
	if outcome != nil {
		attrs["successBps"] = strconv.FormatUint(uint64(outcome.SuccessBps), 10)
		attrs["burned"] = strconv.Itoa(len(outcome.Burned))
		if outcome.Success {
			eventType = EventTypeFusionSucceeded
			if outcome.Output != nil {
				attrs["outputId"] = hex.EncodeToString(outcome.Output.ID[:])
				attrs["fusionLevel"] = strconv.FormatUint(uint64(outcome.Output.FusionLevel), 10)
				attrs["rarityScore"] = strconv.FormatUint(uint64(outcome.Output.RarityScore), 10)
			}
			attrs["cooldownUntil"] = strconv.FormatInt(outcome.CooldownUntil, 10)
		}
	}
	return &types.Event{Type: eventType, Attributes: attrs}
}
