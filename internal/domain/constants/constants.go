// Package constants contains provider names and other string constants shared across layers.
package constants

// Pub/Sub providers for audit event publishing.
const (
	PubSubProviderLocal   = "local"
	PubSubProviderGoogle  = "google"
	PubSubProviderGoCloud = "gocloud"
)

// Mail providers for one-time code delivery.
const (
	MailProviderSMTP = "smtp"
	MailProviderLog  = "log"
)

// Audit actions emitted by the authentication flow.
const (
	AuditActionLoginBegin  = "auth.login.begin"
	AuditActionLoginVerify = "auth.login.verify"
	AuditActionRegister    = "auth.register"
)

// Audit outcomes.
const (
	AuditOutcomeSuccess = "success"
	AuditOutcomeFailure = "failure"
)

// TokenTypeBearer is the token type reported alongside issued access tokens.
const TokenTypeBearer = "Bearer"
