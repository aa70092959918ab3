package main

import (
	"encoding/json"
	"errors"
)

// unknownValue marks a field that could not be determined. Facts carrying it
// are left out of the card.
const unknownValue = "N/A"

const defaultEventName = "DMS Replication Task State Change"

var errEnvelopeNotObject = errors.New("event must be a JSON object")

// Envelope is the EventBridge record emitted for a DMS replication task state change.
type Envelope struct {
	Detail     TaskDetail
	Resources  []string
	Time       string
	DetailType string
	Region     string
}

// TaskDetail is the "detail" object of a DMS event.
type TaskDetail struct {
	Category      string
	DetailMessage string
}

// decodeEnvelope reads the fields the relay needs. Only the top level has to be
// an object; anything missing or of the wrong type falls back to its default.
func decodeEnvelope(payload []byte) (Envelope, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(payload, &fields); err != nil || fields == nil {
		return Envelope{}, errEnvelopeNotObject
	}

	var detail map[string]json.RawMessage
	if raw, ok := fields["detail"]; ok {
		_ = json.Unmarshal(raw, &detail)
	}

	var resources []string
	if raw, ok := fields["resources"]; ok {
		if err := json.Unmarshal(raw, &resources); err != nil {
			resources = nil
		}
	}

	return Envelope{
		Detail: TaskDetail{
			Category:      categoryField(detail),
			DetailMessage: stringField(detail, "detailMessage", unknownValue),
		},
		Resources:  resources,
		Time:       stringField(fields, "time", unknownValue),
		DetailType: stringField(fields, "detail-type", defaultEventName),
		Region:     stringField(fields, "region", unknownValue),
	}, nil
}

func stringField(fields map[string]json.RawMessage, key, fallback string) string {
	raw, ok := fields[key]
	if !ok {
		return fallback
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil || s == "" {
		return fallback
	}
	return s
}

// categoryField keeps whatever the event carried so a skipped alert names it.
// Only a missing category becomes unknownValue.
func categoryField(detail map[string]json.RawMessage) string {
	raw, ok := detail["category"]
	if !ok {
		return unknownValue
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return string(raw)
	}
	return s
}

// taskARN is the first resource of the event, the replication task that changed state.
func (e Envelope) taskARN() string {
	if len(e.Resources) > 0 && e.Resources[0] != "" {
		return e.Resources[0]
	}
	return unknownValue
}
