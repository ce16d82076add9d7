package errs

// Code classifies a failure. The error middleware evaluates codes in a
// fixed priority order when translating to HTTP.
type Code int

const (
	// Validation is a request payload that failed field validation.
	Validation Code = iota + 1

	// NotFound is an entity lookup that matched no row.
	NotFound

	// Unauthenticated is a request with no valid identity.
	Unauthenticated

	// Unauthorized is an authenticated request lacking permission.
	Unauthorized

	// TooManyRequests is a rate-limited request.
	TooManyRequests

	// HTTP is a structured failure carrying its own explicit status code.
	HTTP

	// Internal is any unclassified failure. Detail is redacted outside
	// debug mode.
	Internal

	// InternalOnlyLog behaves as Internal toward the client but keeps its
	// original message for the logs.
	InternalOnlyLog
)

var codeNames = map[Code]string{
	Validation:      "validation",
	NotFound:        "not_found",
	Unauthenticated: "unauthenticated",
	Unauthorized:    "unauthorized",
	TooManyRequests: "too_many_requests",
	HTTP:            "http",
	Internal:        "internal",
	InternalOnlyLog: "internal",
}

func (c Code) String() string {
	name, ok := codeNames[c]
	if !ok {
		return "internal"
	}
	return name
}
