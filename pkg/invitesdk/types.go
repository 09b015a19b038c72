// Package invitesdk holds the wire types for the invite service plus a
// small typed HTTP client for them. Handlers and callers share these
// shapes so the contract lives in one place.
package invitesdk

// Machine-readable failure reasons. Every error response carries exactly
// one of these next to an explicit success/valid boolean.
const (
	ReasonNotFound              = "not_found"
	ReasonUsedOrExpired         = "used_or_expired"
	ReasonAlreadyUsedOrExpired  = "already_used_or_expired"
	ReasonInvalidInput          = "invalid_input"
	ReasonIdentityCreationError = "identity_creation_failed"
	ReasonPostClaimSetupError   = "post_claim_setup_failed"
	ReasonStoreError            = "store_error"
)

// ErrorResponse is the error body for the authenticated issue endpoint.
type ErrorResponse struct {
	// Error is the machine-readable error code.
	Error string `json:"error"`

	// ErrorDescription is a human-readable description.
	ErrorDescription string `json:"error_description"`
}

// IssueInviteResponse is returned when an invite is minted. The URL is
// the only data the caller gets; the token exists nowhere else.
type IssueInviteResponse struct {
	URL string `json:"url"`
}

// ValidateInviteRequest asks whether a token is currently redeemable.
type ValidateInviteRequest struct {
	Token string `json:"token"`
}

// ValidateInviteResponse reports redeemability. PsychologistID is set
// only when Valid is true; Reason only when it is false.
type ValidateInviteResponse struct {
	Valid          bool   `json:"valid"`
	PsychologistID string `json:"psychologist_id,omitempty"`
	Reason         string `json:"reason,omitempty"`
}

// ConsumeInviteRequest redeems a token and self-registers the patient.
// All fields are required.
type ConsumeInviteRequest struct {
	Token    string `json:"token"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Patient is the public shape of a freshly registered patient.
type Patient struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Session is the token pair handed to a new patient, usable immediately.
type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

// ConsumeInviteResponse reports the outcome of a redemption attempt.
type ConsumeInviteResponse struct {
	Success bool     `json:"success"`
	Patient *Patient `json:"patient,omitempty"`
	Session *Session `json:"session,omitempty"`
	Reason  string   `json:"reason,omitempty"`
}

// HealthResponse is returned by the livez/readyz endpoints.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

type HealthChecks struct {
	Database string `json:"database"`
	Signer   string `json:"signer"`
}
