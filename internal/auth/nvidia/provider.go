package nvidia

import "github.com/opennow-dev/opennow-rewrite/internal/constant"

// LoginProvider describes an identity provider a login attempt can be routed
// through. The record is immutable once constructed; Priority orders multiple
// providers and is not otherwise interpreted here.
type LoginProvider struct {
	// IDPID is the opaque identity-provider id sent as idp_id in the
	// authorization request.
	IDPID string
	// Code is the short provider code. It must be non-empty.
	Code string
	// DisplayName is the human-readable provider name.
	DisplayName string
	// Provider is the provider label used by the service catalog.
	Provider string
	// StreamingServiceURL is the base URL of the provider's streaming service.
	StreamingServiceURL string
	// Priority orders providers when more than one is offered.
	Priority int
}

// NVIDIADefault returns the primary partner provider record.
func NVIDIADefault() LoginProvider {
	return LoginProvider{
		IDPID:               "PDiAhv2kJTFeQ7WOPqiQ2tRZ7lGhR2X11dXvM4TZSxg",
		Code:                constant.NVIDIA,
		DisplayName:         constant.NVIDIA,
		Provider:            constant.NVIDIA,
		StreamingServiceURL: "https://prod.cloudmatchbeta.nvidiagrid.net/",
		Priority:            0,
	}
}

// IsAlliancePartner reports whether the provider is a GeForce NOW alliance
// partner, which is the case exactly when its code differs from the primary
// partner's.
func (p LoginProvider) IsAlliancePartner() bool {
	return p.Code != constant.NVIDIA
}
