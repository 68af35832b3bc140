package errors

// standardized error body; Error is always a message the client can display as-is
type ErrorResponse struct {
	Error   string `json:"error"`             // user-friendly message
	Code    string `json:"code"`              // machine-readable reason (e.g. "out_of_credits")
	Details string `json:"details,omitempty"` // optional details (sanitized in production)
}

// category of a failure, decides the HTTP status family
type Kind int

const (
	KindValidation Kind = iota + 1
	KindAuth
	KindNotFound
	KindQuota
	KindRateLimit
	KindUpstream
	KindPersistence
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuth:
		return "auth"
	case KindNotFound:
		return "not_found"
	case KindQuota:
		return "quota"
	case KindRateLimit:
		return "rate_limit"
	case KindUpstream:
		return "upstream"
	case KindPersistence:
		return "persistence"
	default:
		return "unknown"
	}
}

// machine-readable reasons
const (
	ReasonInvalidInput           = "invalid_input"
	ReasonTooShort               = "too_short"
	ReasonTooLong                = "too_long"
	ReasonSuspiciousContent      = "suspicious_content"
	ReasonUnauthenticated        = "unauthenticated"
	ReasonProfileNotFound        = "profile_not_found"
	ReasonOutOfCredits           = "out_of_credits"
	ReasonRateLimited            = "rate_limited"
	ReasonUpstreamRateLimited    = "upstream_rate_limited"
	ReasonUpstreamQuotaExhausted = "upstream_quota_exhausted"
	ReasonUpstreamFailure        = "upstream_failure"
	ReasonPersistenceFailure     = "persistence_failure"
	ReasonNotImplemented         = "not_implemented"
)

type ErrorInfo struct {
	category  string
	sanitized string
}
