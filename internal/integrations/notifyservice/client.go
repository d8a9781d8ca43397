package notifyservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client is the HTTP client for the notification service.
//
// Both operations are side channels of the booking flow: callers log
// failures and move on, they never roll back a reservation because a
// notification could not be delivered.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient creates a notification service client
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Notify sends an immediate push notification to one user
func (c *Client) Notify(ctx context.Context, targetUserID int64, title, body, link string) error {
	payload := Notification{
		TargetUserID: targetUserID,
		Title:        title,
		Body:         body,
		Link:         link,
	}
	return c.post(ctx, "/internal/notifications", payload)
}

// ScheduleReminder registers a reminder to be dispatched at fireAt
func (c *Client) ScheduleReminder(ctx context.Context, reservationID int64, fireAt time.Time) error {
	payload := ReminderRequest{
		ReservationID: reservationID,
		FireAt:        fireAt.UTC(),
	}
	return c.post(ctx, "/internal/reminders", payload)
}

func (c *Client) post(ctx context.Context, path string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: failed to encode payload: %v", ErrInternal, err)
	}

	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusAccepted, http.StatusNoContent:
		return nil
	default:
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}
}
