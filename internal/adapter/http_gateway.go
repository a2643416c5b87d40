package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/osmlabs/authkeeper/models"
)

// minPlausibleSessionIDLen filters out junk bodies: real session ids are
// SID_-prefixed and far longer.
const minPlausibleSessionIDLen = 5

// HTTPGatewayConfig configures the resty client behind the gateway adapter.
type HTTPGatewayConfig struct {
	BaseURL string
	Timeout time.Duration
}

type httpGatewayAdapter struct {
	client *resty.Client
}

// NewHTTPGatewayAdapter builds a GatewayClient speaking the gateway's wire
// contract: query-string GETs for reads, form-encoded POSTs for writes.
func NewHTTPGatewayAdapter(cfg HTTPGatewayConfig) GatewayClient {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout)

	return &httpGatewayAdapter{client: cli}
}

// gatewayUser is the JSON shape of a directory account record.
type gatewayUser struct {
	Email        string `json:"email"`
	UserName     string `json:"userName"`
	Mobile       string `json:"mobile"`
	Password     string `json:"password"`
	RegisteredAt string `json:"registeredAt"`
}

type gatewayUserResponse struct {
	Success bool         `json:"success"`
	User    *gatewayUser `json:"user"`
}

func (h *httpGatewayAdapter) FetchUser(ctx context.Context, email string) (models.UserRecord, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"action": "get_user",
			"email":  models.NormalizeEmail(email),
			// cache busters: the gateway sits behind an aggressive edge cache
			"_t":   strconv.FormatInt(time.Now().UnixMilli(), 10),
			"_rnd": strconv.Itoa(rand.Int()),
		}).
		Get("")
	if err != nil {
		return models.UserRecord{}, fmt.Errorf("%w: %v", ErrRemoteUserNotFound, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return models.UserRecord{}, fmt.Errorf("%w: http %d", ErrRemoteUserNotFound, resp.StatusCode())
	}

	var body gatewayUserResponse
	if err = json.Unmarshal(resp.Body(), &body); err != nil {
		return models.UserRecord{}, fmt.Errorf("%w: decode response: %v", ErrRemoteUserNotFound, err)
	}
	if !body.Success || body.User == nil {
		return models.UserRecord{}, ErrRemoteUserNotFound
	}

	record := models.UserRecord{
		Email:          models.NormalizeEmail(body.User.Email),
		Name:           body.User.UserName,
		Mobile:         body.User.Mobile,
		PasswordDigest: body.User.Password,
	}
	if ts, parseErr := time.Parse(time.RFC3339, body.User.RegisteredAt); parseErr == nil {
		record.RegisteredAt = ts
	}

	return record, nil
}

func (h *httpGatewayAdapter) FetchActiveSessionID(ctx context.Context, email string) (string, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"action":   "check_session",
			"email":    models.NormalizeEmail(email),
			"_nocache": strconv.FormatInt(time.Now().UnixMilli(), 10),
		}).
		Get("")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRemoteSessionNotFound, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("%w: http %d", ErrRemoteSessionNotFound, resp.StatusCode())
	}

	id := strings.TrimSpace(string(resp.Body()))
	if id == "NOT_FOUND" || strings.HasPrefix(id, "<!DOCTYPE") || len(id) < minPlausibleSessionIDLen {
		return "", ErrRemoteSessionNotFound
	}

	return id, nil
}

func (h *httpGatewayAdapter) PublishEvent(ctx context.Context, event models.GatewayEvent) error {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/x-www-form-urlencoded").
		SetFormData(eventFormData(event)).
		Post("")
	if err != nil {
		return fmt.Errorf("publish %s event: %w", event.Kind, err)
	}
	if resp.StatusCode() >= http.StatusMultipleChoices {
		return fmt.Errorf("publish %s event: http %d", event.Kind, resp.StatusCode())
	}

	return nil
}

// eventFormData flattens an event into the gateway's form contract. Absent
// values are transmitted as "N/A" — the gateway side stores every field as
// free text and distinguishes "missing" this way.
func eventFormData(event models.GatewayEvent) map[string]string {
	return map[string]string{
		"status":    naIfEmpty(string(event.Kind)),
		"email":     naIfEmpty(models.NormalizeEmail(event.Email)),
		"userName":  naIfEmpty(event.Name),
		"mobile":    naIfEmpty(event.Mobile),
		"emailCode": naIfEmpty(event.EmailCode),
		"sessionId": naIfEmpty(event.SessionID),
		"password":  naIfEmpty(event.Password),
		"query":     naIfEmpty(event.Query),
		"isUnclear": naIfEmpty(event.IsUnclear),
	}
}

func naIfEmpty(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return "N/A"
	}
	return v
}
