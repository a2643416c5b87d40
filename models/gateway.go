package models

// EventKind tags a write to the remote directory gateway. The gateway
// dispatches on the "status" form field, so these values are part of the
// wire contract.
type EventKind string

const (
	EventSessionSync    EventKind = "SESSION_SYNC"
	EventVerifiedSignup EventKind = "VERIFIED_SIGNUP"
	EventResetPassword  EventKind = "RESET_PWD"
	EventOtpDispatched  EventKind = "OTP_DISPATCHED"
	EventUserQuery      EventKind = "USER_QUERY"
)

// GatewayEvent is the payload of a fire-and-forget write to the directory
// gateway. Empty fields are transmitted as "N/A" by the adapter; the gateway
// side treats every field as free text.
type GatewayEvent struct {
	Kind      EventKind
	Email     string
	Name      string
	Mobile    string
	EmailCode string
	SessionID string
	Password  string
	Query     string
	IsUnclear string
}
