package common

// AuthorizationHeaderName is the HTTP header carrying the bearer access token.
const AuthorizationHeaderName = "Authorization"

// DateLayout is the wire format for all resume section dates.
const DateLayout = "2006-01-02"
