package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	appsync "github.com/arflow/backend/internal/application/sync"
	"go.uber.org/zap"
)

// masterSyncPath is the downstream function every entity dispatch hits.
// The entity being synced travels in the request body.
const masterSyncPath = "/functions/v1/acumatica-master-sync"

// Reminder dispatches hit dedicated functions instead of the master sync
const (
	reminderCheckPath  = "/functions/v1/check-invoice-reminders"
	reminderEmailsPath = "/functions/v1/send-reminder-emails"
)

// AcumaticaGateway triggers the external Acumatica sync functions over HTTP.
// Dispatches are fire-and-forget: the response body is discarded, only the
// status code decides success.
type AcumaticaGateway struct {
	httpClient *http.Client
	logger     *zap.Logger
}

// NewAcumaticaGateway creates a new AcumaticaGateway
func NewAcumaticaGateway(requestTimeout time.Duration, logger *zap.Logger) *AcumaticaGateway {
	if requestTimeout <= 0 {
		requestTimeout = 30 * time.Second
	}
	return &AcumaticaGateway{
		httpClient: &http.Client{Timeout: requestTimeout},
		logger:     logger,
	}
}

// triggerPayload is the JSON body of one sync trigger
type triggerPayload struct {
	Entity   string `json:"entity,omitempty"`
	Tenant   string `json:"tenant"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// TriggerSync fires one dispatch at the master sync function and returns
// the endpoint it hit
func (g *AcumaticaGateway) TriggerSync(ctx context.Context, req appsync.TriggerRequest) (string, error) {
	endpoint := strings.TrimRight(req.BaseURL, "/") + masterSyncPath
	payload := triggerPayload{
		Entity:   string(req.Kind),
		Tenant:   req.Tenant,
		Username: req.Username,
		Password: req.Password,
	}
	return endpoint, g.post(ctx, endpoint, payload, req.IdempotencyKey, string(req.Kind))
}

// TriggerReminder fires one dispatch at a reminder function and returns
// the endpoint it hit. The reminder functions take no entity: the check
// pass scans every customer's due invoices, the email pass drains the
// queue the check pass built.
func (g *AcumaticaGateway) TriggerReminder(ctx context.Context, req appsync.ReminderRequest) (string, error) {
	path := reminderCheckPath
	if req.Kind == appsync.ReminderEmails {
		path = reminderEmailsPath
	}
	endpoint := strings.TrimRight(req.BaseURL, "/") + path
	payload := triggerPayload{
		Tenant:   req.Tenant,
		Username: req.Username,
		Password: req.Password,
	}
	return endpoint, g.post(ctx, endpoint, payload, req.IdempotencyKey, string(req.Kind))
}

// post sends one fire-and-forget trigger and checks only the status code
func (g *AcumaticaGateway) post(ctx context.Context, endpoint string, payload triggerPayload, idempotencyKey, kind string) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode trigger: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build trigger request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Idempotency-Key", idempotencyKey)

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("trigger request failed: %w", err)
	}
	defer resp.Body.Close()

	// Fire-and-forget: the downstream response body is not processed
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("trigger rejected with status %d", resp.StatusCode)
	}

	g.logger.Debug("trigger accepted",
		zap.String("kind", kind),
		zap.String("endpoint", endpoint),
		zap.Int("status", resp.StatusCode))
	return nil
}

// Ensure AcumaticaGateway implements both gateway interfaces
var (
	_ appsync.ErpGateway      = (*AcumaticaGateway)(nil)
	_ appsync.ReminderGateway = (*AcumaticaGateway)(nil)
)
