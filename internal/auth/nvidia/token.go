package nvidia

// AuthTokens is the credential set produced by exchanging an authorization
// code at the provider's token endpoint. The exchange itself is performed by
// the streaming client, not by this package; the type exists as the sink the
// captured code eventually flows into.
type AuthTokens struct {
	// AccessToken authorizes streaming-service requests.
	AccessToken string `json:"access_token"`
	// RefreshToken, when present, renews the access token.
	RefreshToken string `json:"refresh_token,omitempty"`
	// IDToken, when present, carries the OpenID Connect identity claims.
	IDToken string `json:"id_token,omitempty"`
	// ExpiresAt is the absolute Unix timestamp the access token expires at.
	ExpiresAt int64 `json:"expires_at"`
}
