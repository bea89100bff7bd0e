package activity

import "time"

// Record is an immutable, append-only audit entry describing one
// user-attributable action.
//
// Invariants:
// - Records are never updated or deleted.
// - UserID may be null only to tolerate legacy/anonymous writes; the tracking
//   middleware always attempts to supply it.
// - Timestamp is assigned by the store at write time, never by the caller.
// - IP and user agent capture are best-effort; nothing blocks on audit failures.
type Record struct {
	ID     string  `json:"id" db:"id"`
	UserID *string `json:"userId,omitempty" db:"user_id"`

	// Action is the HTTP method for tracked requests, or a business verb
	// such as "LOGIN" for explicitly recorded events.
	Action string `json:"action" db:"action"`

	// Screen is the sanitized request path ("users-profile") or a fixed
	// marker for special flows.
	Screen string `json:"screen" db:"screen"`

	// Details is optional free-form text; the tracker stores either a
	// "<METHOD> <path>" summary or a JSON payload here.
	Details *string `json:"details,omitempty" db:"details"`

	Timestamp time.Time `json:"timestamp" db:"timestamp"`

	IPAddress *string `json:"ipAddress,omitempty" db:"ip_address"`
	UserAgent *string `json:"userAgent,omitempty" db:"user_agent"`
}
