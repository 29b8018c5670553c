// Package constant defines provider identifier constants used throughout the
// login helper, ensuring consistent naming across the application.
package constant

const (
	// NVIDIA is the primary partner provider code.
	NVIDIA = "NVIDIA"

	// AlliancePartner labels any non-NVIDIA GeForce NOW alliance provider.
	AlliancePartner = "alliance-partner"
)
