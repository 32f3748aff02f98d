package types

// Version is the canonical docpanel version.
// Reported by `docpanel version` and sent as the User-Agent suffix on
// every backend request.
const Version = "0.4.0"

// UserAgent is the User-Agent header value sent to the backend.
const UserAgent = "docpanel/" + Version
