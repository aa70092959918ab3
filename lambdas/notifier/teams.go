package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const (
	cardSummary       = "AWS DMS Replication Task Alert"
	cardActivityTitle = "DMS Replication Task State Change"
)

// MessageCard is the legacy Office 365 connector card accepted by Teams webhooks.
type MessageCard struct {
	Type     string    `json:"@type"`
	Context  string    `json:"@context"`
	Summary  string    `json:"summary"`
	Sections []Section `json:"sections"`
}

type Section struct {
	ActivityTitle string `json:"activityTitle"`
	Facts         []Fact `json:"facts"`
	Markdown      bool   `json:"markdown"`
}

// Fact is one name/value row of a card section.
type Fact struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// newCard builds the alert card, dropping facts whose value is unknownValue.
func newCard(facts []Fact) MessageCard {
	kept := make([]Fact, 0, len(facts))
	for _, f := range facts {
		if f.Value == unknownValue {
			continue
		}
		kept = append(kept, f)
	}

	return MessageCard{
		Type:    "MessageCard",
		Context: "http://schema.org/extensions",
		Summary: cardSummary,
		Sections: []Section{{
			ActivityTitle: cardActivityTitle,
			Facts:         kept,
			Markdown:      true,
		}},
	}
}

// postCard sends the card in a single attempt and returns the webhook's status
// and body. An error means no response was received.
func postCard(ctx context.Context, client *http.Client, url string, card MessageCard) (int, string, error) {
	payload, err := json.Marshal(card)
	if err != nil {
		return 0, "", fmt.Errorf("marshal card: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return 0, "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return 0, "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, "", fmt.Errorf("read response: %w", err)
	}
	return resp.StatusCode, string(body), nil
}
