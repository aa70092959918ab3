package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
)

const (
	eventTimeLayout = "2006-01-02T15:04:05Z"
	cardTimeLayout  = "01/02/2006 15:04:05"
)

// Only these task categories produce an alert.
var alertCategories = map[string]bool{
	"Creation": true,
	"Deletion": true,
	"Failure":  true,
	"Failover": true,
}

// Relay forwards DMS replication task events to a Teams channel. Its clients
// are shared across invocations and hold no per-invocation state.
type Relay struct {
	WebhookURL string
	Tasks      ReplicationTaskDescriber
	Client     *http.Client
}

// Handle is the Lambda entry point. Failures are reported through the response
// status code; the returned error is always nil so the event is not retried.
func (r *Relay) Handle(ctx context.Context, payload json.RawMessage) (events.APIGatewayProxyResponse, error) {
	log := loggerFrom(ctx).With("request_id", requestID(ctx))
	ctx = withLogger(ctx, log)

	log.Debug("received event", "payload", string(payload))

	if r.WebhookURL == "" {
		log.Error("TEAMS_WEBHOOK_URL environment variable is not set")
		return errorResponse(http.StatusInternalServerError, "TEAMS_WEBHOOK_URL environment variable is not set"), nil
	}

	accountID, err := invokedAccountID(ctx)
	if err != nil {
		log.Error("failed to extract account ID", "error", err)
		return errorResponse(http.StatusInternalServerError, "Invalid Lambda context format."), nil
	}
	log.Info("extracted account ID", "account_id", accountID)

	event, err := decodeEnvelope(payload)
	if err != nil {
		log.Error("invalid event format", "error", err)
		return errorResponse(http.StatusBadRequest, "Event must be a dictionary."), nil
	}

	category := event.Detail.Category
	if !alertCategories[category] {
		log.Info("category not alertable, skipping", "category", category)
		return messageResponse(http.StatusOK, fmt.Sprintf("No alert sent for category '%s'", category)), nil
	}

	taskARN := event.taskARN()
	taskName := unknownValue
	if taskARN != unknownValue {
		taskName, err = lookupTaskName(ctx, r.Tasks, taskARN)
		switch {
		case err != nil:
			log.Error("error describing replication tasks", "task_arn", taskARN, "error", err)
			taskName = unknownValue
		case taskName == unknownValue:
			log.Info("no replication task found", "task_arn", taskARN)
		default:
			log.Info("resolved task name", "task_name", taskName)
		}
	}

	eventTime, err := formatEventTime(event.Time)
	if err != nil {
		log.Error("error formatting time", "time", event.Time, "error", err)
	}

	card := newCard([]Fact{
		{Name: "Replication Task ARN", Value: taskARN},
		{Name: "Task Name", Value: taskName},
		{Name: "Task Status", Value: category},
		{Name: "Time", Value: eventTime},
		{Name: "Event Name", Value: event.DetailType},
		{Name: "Detail Message", Value: event.Detail.DetailMessage},
		{Name: "Region", Value: event.Region},
		{Name: "Account ID", Value: accountID},
	})
	log.Debug("constructed Teams message", "card", card)

	status, body, err := postCard(ctx, r.Client, r.WebhookURL, card)
	if err != nil {
		log.Error("request to Teams webhook failed", "error", err)
		return detailedErrorResponse(http.StatusInternalServerError, "Request to Teams webhook failed.", err.Error()), nil
	}
	log.Info("message sent to Teams", "status", status)

	if status != http.StatusOK {
		log.Error("error posting to Teams", "status", status, "body", body)
		return detailedErrorResponse(status, "Failed to post to Microsoft Teams", body), nil
	}

	return events.APIGatewayProxyResponse{StatusCode: status, Body: body}, nil
}

// invokedAccountID reads the account, the fifth colon-delimited field, of the
// invoked function ARN.
func invokedAccountID(ctx context.Context) (string, error) {
	lc, ok := lambdacontext.FromContext(ctx)
	if !ok {
		return "", errors.New("no lambda context")
	}
	fields := strings.Split(lc.InvokedFunctionArn, ":")
	if len(fields) < 5 || fields[4] == "" {
		return "", fmt.Errorf("invoked function arn %q has no account field", lc.InvokedFunctionArn)
	}
	return fields[4], nil
}

// formatEventTime converts an EventBridge timestamp to MM/DD/YYYY HH:MM:SS.
// On failure the raw value is returned alongside the error.
func formatEventTime(raw string) (string, error) {
	if raw == unknownValue {
		return raw, nil
	}
	t, err := time.Parse(eventTimeLayout, raw)
	if err != nil {
		return raw, err
	}
	// time.Parse tolerates a fractional second the layout does not name.
	if t.Format(eventTimeLayout) != raw {
		return raw, fmt.Errorf("time %q is not in %s form", raw, eventTimeLayout)
	}
	return t.Format(cardTimeLayout), nil
}

func errorResponse(status int, msg string) events.APIGatewayProxyResponse {
	return jsonResponse(status, map[string]string{"error": msg})
}

// detailedErrorResponse always carries "details", even when it is empty.
func detailedErrorResponse(status int, msg, details string) events.APIGatewayProxyResponse {
	return jsonResponse(status, map[string]string{"error": msg, "details": details})
}

func messageResponse(status int, msg string) events.APIGatewayProxyResponse {
	return jsonResponse(status, map[string]string{"message": msg})
}

func jsonResponse(status int, body map[string]string) events.APIGatewayProxyResponse {
	// A map of strings always marshals.
	b, _ := json.Marshal(body)
	return events.APIGatewayProxyResponse{StatusCode: status, Body: string(b)}
}
