package main

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
)

func TestNewCardDropsUnknownFacts(t *testing.T) {
	card := newCard([]Fact{
		{Name: "Replication Task ARN", Value: unknownValue},
		{Name: "Task Status", Value: "Deletion"},
		{Name: "Region", Value: unknownValue},
	})

	facts := card.Sections[0].Facts
	if len(facts) != 1 || facts[0] != (Fact{Name: "Task Status", Value: "Deletion"}) {
		t.Errorf("facts = %+v", facts)
	}
}

func TestNewCardJSONShape(t *testing.T) {
	b, err := json.Marshal(newCard(nil))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	want := `{"@type":"MessageCard","@context":"http://schema.org/extensions","summary":"AWS DMS Replication Task Alert",` +
		`"sections":[{"activityTitle":"DMS Replication Task State Change","facts":[],"markdown":true}]}`
	if string(b) != want {
		t.Errorf("card JSON =\n%s\nwant\n%s", b, want)
	}
}

func TestPostCardReturnsResponse(t *testing.T) {
	hook := newWebhook(t, http.StatusAccepted, "queued")

	status, body, err := postCard(context.Background(), hook.Client(), hook.URL, newCard(nil))
	if err != nil {
		t.Fatalf("postCard: %v", err)
	}
	if status != http.StatusAccepted || body != "queued" {
		t.Errorf("postCard = (%d, %q), want (202, %q)", status, body, "queued")
	}
	if n := len(hook.received()); n != 1 {
		t.Errorf("webhook received %d cards, want 1", n)
	}
}

func TestPostCardBadURL(t *testing.T) {
	if _, _, err := postCard(context.Background(), http.DefaultClient, "://missing-scheme", newCard(nil)); err == nil {
		t.Fatal("expected error for invalid URL")
	}
}
