// Package app hosts the bootstrap shell around the login core. The eventual
// GUI and media pipeline hang off this package; today it exposes the startup
// banner and a non-interactive login preview.
package app

import (
	"fmt"

	"github.com/opennow-dev/opennow-rewrite/internal/auth/nvidia"
	"github.com/opennow-dev/opennow-rewrite/internal/config"
	log "github.com/sirupsen/logrus"
)

// previewPrefixLen bounds how much of the authorization URL the preview line
// reveals.
const previewPrefixLen = 72

// App is the top-level application shell.
type App struct {
	cfg *config.Config
}

// New creates the application shell over the loaded configuration.
func New(cfg *config.Config) *App {
	return &App{cfg: cfg}
}

// Banner returns the startup banner line.
func (a *App) Banner() string {
	return "OpenNOW Rewrite bootstrap is running."
}

// LoginBootstrapPreview runs the non-interactive part of the login flow,
// generating a PKCE challenge, probing for a callback port, and building the
// authorization URL, then returns a one-line summary. When no candidate port
// is free it falls back to the first candidate at the caller's risk, matching
// the startup behavior of the desktop shell.
func (a *App) LoginBootstrapPreview() (string, error) {
	auth := nvidia.NewNvidiaAuth(a.cfg)
	server := nvidia.NewCallbackServer(a.cfg)

	pkce, err := nvidia.GeneratePKCECodes()
	if err != nil {
		return "", fmt.Errorf("app: failed to generate PKCE codes: %w", err)
	}

	port, ok := server.PickCallbackPort()
	if !ok {
		port = nvidia.FallbackCallbackPort
		log.Warnf("no callback port available, falling back to %d", port)
	}

	provider := auth.Provider()
	authURL := auth.GenerateAuthURL(pkce, port, provider)
	prefix := authURL
	if len(prefix) > previewPrefixLen {
		prefix = prefix[:previewPrefixLen]
	}

	return fmt.Sprintf("Login base initialized (provider=%s, callback_port=%d, auth_url_prefix=%s...)",
		provider.Code, port, prefix), nil
}
