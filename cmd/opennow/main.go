// Package main provides the entry point for the OpenNOW Rewrite login helper.
// The binary prints a login bootstrap preview by default and runs the full
// browser-based OAuth2 PKCE flow against the NVIDIA identity provider when
// invoked with -login. Exchanging the captured authorization code for tokens
// is handled by the streaming client, not here.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/opennow-dev/opennow-rewrite/internal/app"
	"github.com/opennow-dev/opennow-rewrite/internal/auth/nvidia"
	"github.com/opennow-dev/opennow-rewrite/internal/browser"
	"github.com/opennow-dev/opennow-rewrite/internal/buildinfo"
	"github.com/opennow-dev/opennow-rewrite/internal/config"
	"github.com/opennow-dev/opennow-rewrite/internal/logging"
	log "github.com/sirupsen/logrus"
)

var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// init initializes the shared logger setup and build metadata.
func init() {
	logging.SetupBaseLogger()
	buildinfo.Version = Version
	buildinfo.Commit = Commit
	buildinfo.BuildDate = BuildDate
}

// main parses command-line flags, loads configuration, and either prints the
// login bootstrap preview (default) or runs the interactive login flow.
func main() {
	fmt.Printf("OpenNOW Rewrite Version: %s, Commit: %s, BuiltAt: %s\n",
		buildinfo.Version, buildinfo.Commit, buildinfo.BuildDate)

	var login bool
	var noBrowser bool
	var callbackPort int
	var configPath string

	flag.BoolVar(&login, "login", false, "Run the full browser login flow")
	flag.BoolVar(&noBrowser, "no-browser", false, "Don't open browser automatically for OAuth")
	flag.IntVar(&callbackPort, "callback-port", 0, "Override OAuth callback port (defaults to the first free candidate)")
	flag.StringVar(&configPath, "config", "", "Configure File Path")
	flag.Parse()

	if err := godotenv.Load(); err == nil {
		log.Debug("loaded environment overrides from .env")
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	}
	if err = logging.ConfigureLogOutput(cfg); err != nil {
		log.Fatalf("failed to configure log output: %v", err)
	}

	application := app.New(cfg)
	fmt.Println(application.Banner())

	if !login {
		preview, errPreview := application.LoginBootstrapPreview()
		if errPreview != nil {
			log.Fatalf("login bootstrap failed: %v", errPreview)
		}
		fmt.Println(preview)
		return
	}

	if err = runLogin(cfg, callbackPort, noBrowser); err != nil {
		log.Fatalf("login failed: %v", err)
	}
}

// runLogin drives one complete login attempt: PKCE generation, callback port
// selection, authorization URL assembly, browser hand-off, and the blocking
// wait for the redirect carrying the authorization code.
func runLogin(cfg *config.Config, portOverride int, noBrowser bool) error {
	logger := logging.WithAttempt(logging.NewAttemptID())

	auth := nvidia.NewNvidiaAuth(cfg)
	server := nvidia.NewCallbackServer(cfg)

	pkce, err := nvidia.GeneratePKCECodes()
	if err != nil {
		return err
	}

	port := portOverride
	if port == 0 {
		picked, ok := server.PickCallbackPort()
		if !ok {
			picked = nvidia.FallbackCallbackPort
			logger.Warnf("all candidate callback ports are busy, falling back to %d", picked)
		}
		port = picked
	}

	provider := auth.Provider()
	logger.Infof("logging in via %s (alliance partner: %t)", provider.DisplayName, provider.IsAlliancePartner())

	authURL := auth.GenerateAuthURL(pkce, port, provider)
	if noBrowser || !browser.IsAvailable() {
		fmt.Println("Open this URL in your browser to continue:")
		fmt.Println(authURL)
	} else if errOpen := browser.OpenURL(authURL); errOpen != nil {
		logger.Warnf("failed to open browser: %v", errOpen)
		fmt.Println("Open this URL in your browser to continue:")
		fmt.Println(authURL)
	}

	// Ctrl-C cancels the otherwise indefinite wait for the redirect.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Infof("waiting for the login redirect on http://localhost:%d", port)
	code, ok := server.WaitForCallbackCode(ctx, port)
	if !ok {
		return fmt.Errorf("no authorization code received on port %d", port)
	}

	logger.Infof("authorization code received (%d characters); hand it to the streaming client for the token exchange", len(code))
	return nil
}
