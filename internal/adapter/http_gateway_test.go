package adapter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osmlabs/authkeeper/models"
)

func newTestAdapter(t *testing.T, handler http.HandlerFunc) GatewayClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewHTTPGatewayAdapter(HTTPGatewayConfig{BaseURL: srv.URL, Timeout: 2 * time.Second})
}

// ── FetchUser ────────────────────────────────────────────────────────────────

func TestFetchUser_Success(t *testing.T) {
	gw := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "get_user", r.URL.Query().Get("action"))
		assert.Equal(t, "tech@omegaseikimobility.com", r.URL.Query().Get("email"))
		assert.NotEmpty(t, r.URL.Query().Get("_t"), "cache buster expected")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"success": true,
			"user": {"email": "Tech@OmegaSeikiMobility.com", "userName": "Tech",
			         "mobile": "9999999999", "password": "digest-value"}
		}`))
	})

	user, err := gw.FetchUser(context.Background(), " Tech@OmegaSeikiMobility.com ")
	require.NoError(t, err)
	assert.Equal(t, "tech@omegaseikimobility.com", user.Email)
	assert.Equal(t, "Tech", user.Name)
	assert.Equal(t, "9999999999", user.Mobile)
	assert.Equal(t, "digest-value", user.PasswordDigest)
}

func TestFetchUser_SuccessFalse(t *testing.T) {
	gw := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success": false}`))
	})

	_, err := gw.FetchUser(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, ErrRemoteUserNotFound)
}

func TestFetchUser_MalformedPayload(t *testing.T) {
	gw := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<!DOCTYPE html><html>maintenance</html>`))
	})

	_, err := gw.FetchUser(context.Background(), "user@example.com")
	assert.ErrorIs(t, err, ErrRemoteUserNotFound)
}

func TestFetchUser_ServerError(t *testing.T) {
	gw := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := gw.FetchUser(context.Background(), "user@example.com")
	assert.ErrorIs(t, err, ErrRemoteUserNotFound)
}

func TestFetchUser_TransportFailure(t *testing.T) {
	gw := NewHTTPGatewayAdapter(HTTPGatewayConfig{
		BaseURL: "http://127.0.0.1:1", // nothing listens here
		Timeout: 200 * time.Millisecond,
	})

	_, err := gw.FetchUser(context.Background(), "user@example.com")
	assert.ErrorIs(t, err, ErrRemoteUserNotFound)
}

// ── FetchActiveSessionID ─────────────────────────────────────────────────────

func TestFetchActiveSessionID_Success(t *testing.T) {
	gw := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "check_session", r.URL.Query().Get("action"))
		_, _ = w.Write([]byte("  SID_1735000000000_a1b2c3d4\n"))
	})

	id, err := gw.FetchActiveSessionID(context.Background(), "tech@omegaseikimobility.com")
	require.NoError(t, err)
	assert.Equal(t, "SID_1735000000000_a1b2c3d4", id)
}

func TestFetchActiveSessionID_Sentinel(t *testing.T) {
	gw := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("NOT_FOUND"))
	})

	_, err := gw.FetchActiveSessionID(context.Background(), "tech@omegaseikimobility.com")
	assert.ErrorIs(t, err, ErrRemoteSessionNotFound)
}

func TestFetchActiveSessionID_ErrorPage(t *testing.T) {
	gw := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<!DOCTYPE html><html><body>Sorry, unable to open the file.</body></html>"))
	})

	_, err := gw.FetchActiveSessionID(context.Background(), "tech@omegaseikimobility.com")
	assert.ErrorIs(t, err, ErrRemoteSessionNotFound)
}

func TestFetchActiveSessionID_ImplausiblyShort(t *testing.T) {
	gw := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	_, err := gw.FetchActiveSessionID(context.Background(), "tech@omegaseikimobility.com")
	assert.ErrorIs(t, err, ErrRemoteSessionNotFound)
}

func TestFetchActiveSessionID_TransportFailure(t *testing.T) {
	gw := NewHTTPGatewayAdapter(HTTPGatewayConfig{
		BaseURL: "http://127.0.0.1:1",
		Timeout: 200 * time.Millisecond,
	})

	_, err := gw.FetchActiveSessionID(context.Background(), "tech@omegaseikimobility.com")
	assert.ErrorIs(t, err, ErrRemoteSessionNotFound)
}

// ── PublishEvent ─────────────────────────────────────────────────────────────

func TestPublishEvent_FormContract(t *testing.T) {
	var got url.Values
	gw := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		got = r.PostForm
		assert.Equal(t, http.MethodPost, r.Method)
	})

	err := gw.PublishEvent(context.Background(), models.GatewayEvent{
		Kind:      models.EventSessionSync,
		Email:     "Tech@OmegaSeikiMobility.com",
		Name:      "Tech",
		SessionID: "SID_1_abcdef",
	})
	require.NoError(t, err)

	assert.Equal(t, "SESSION_SYNC", got.Get("status"))
	assert.Equal(t, "tech@omegaseikimobility.com", got.Get("email"))
	assert.Equal(t, "Tech", got.Get("userName"))
	assert.Equal(t, "SID_1_abcdef", got.Get("sessionId"))
	// absent fields travel as the gateway's N/A marker
	assert.Equal(t, "N/A", got.Get("mobile"))
	assert.Equal(t, "N/A", got.Get("emailCode"))
	assert.Equal(t, "N/A", got.Get("password"))
	assert.Equal(t, "N/A", got.Get("query"))
	assert.Equal(t, "N/A", got.Get("isUnclear"))
}

func TestPublishEvent_ServerErrorIsReported(t *testing.T) {
	gw := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	err := gw.PublishEvent(context.Background(), models.GatewayEvent{Kind: models.EventOtpDispatched})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "http 500")
}

func TestPublishEvent_TransportFailureIsReported(t *testing.T) {
	gw := NewHTTPGatewayAdapter(HTTPGatewayConfig{
		BaseURL: "http://127.0.0.1:1",
		Timeout: 200 * time.Millisecond,
	})

	err := gw.PublishEvent(context.Background(), models.GatewayEvent{Kind: models.EventUserQuery})
	assert.Error(t, err)
}
