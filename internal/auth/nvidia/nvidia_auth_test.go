package nvidia

import (
	"net/url"
	"strings"
	"testing"

	"github.com/opennow-dev/opennow-rewrite/internal/config"
)

func TestGenerateAuthURLShape(t *testing.T) {
	auth := NewNvidiaAuth(config.DefaultConfig())
	pkce, err := GeneratePKCECodes()
	if err != nil {
		t.Fatalf("GeneratePKCECodes failed: %v", err)
	}

	authURL := auth.GenerateAuthURL(pkce, 2259, auth.Provider())

	if !strings.HasPrefix(authURL, "https://login.nvidia.com/authorize?response_type=code") {
		t.Fatalf("unexpected URL prefix: %s", authURL)
	}
	if !strings.Contains(authURL, "code_challenge_method=S256") {
		t.Fatalf("URL is missing the S256 marker: %s", authURL)
	}
	if !strings.Contains(authURL, "redirect_uri=http%3A%2F%2Flocalhost%3A2259") {
		t.Fatalf("redirect_uri is not percent-encoded: %s", authURL)
	}
	if !strings.Contains(authURL, "scope=openid%20consent%20email%20tk_client%20age") {
		t.Fatalf("scope is not percent-encoded: %s", authURL)
	}
	if !strings.Contains(authURL, "prompt=select_account") || !strings.Contains(authURL, "ui_locales=en_US") {
		t.Fatalf("fixed parameters missing: %s", authURL)
	}
}

// TestGenerateAuthURLParameterOrder asserts the exact query parameter order
// the provider endpoint expects.
func TestGenerateAuthURLParameterOrder(t *testing.T) {
	auth := NewNvidiaAuth(config.DefaultConfig())
	pkce, err := GeneratePKCECodes()
	if err != nil {
		t.Fatalf("GeneratePKCECodes failed: %v", err)
	}

	authURL := auth.GenerateAuthURL(pkce, 6460, auth.Provider())

	keys := []string{
		"?response_type=",
		"&device_id=",
		"&scope=",
		"&client_id=",
		"&redirect_uri=",
		"&ui_locales=",
		"&nonce=",
		"&prompt=",
		"&code_challenge=",
		"&code_challenge_method=",
		"&idp_id=",
	}
	pos := -1
	for _, key := range keys {
		idx := strings.Index(authURL, key)
		if idx < 0 {
			t.Fatalf("parameter %q missing from %s", key, authURL)
		}
		if idx <= pos {
			t.Fatalf("parameter %q out of order in %s", key, authURL)
		}
		pos = idx
	}
}

// TestGenerateAuthURLRoundTrip parses the built URL with net/url and recovers
// the code_challenge that was passed in.
func TestGenerateAuthURLRoundTrip(t *testing.T) {
	auth := NewNvidiaAuth(config.DefaultConfig())
	pkce, err := GeneratePKCECodes()
	if err != nil {
		t.Fatalf("GeneratePKCECodes failed: %v", err)
	}

	authURL := auth.GenerateAuthURL(pkce, 2259, NVIDIADefault())

	parsed, err := url.Parse(authURL)
	if err != nil {
		t.Fatalf("built URL does not parse: %v", err)
	}
	query := parsed.Query()
	if got := query.Get("code_challenge"); got != pkce.CodeChallenge {
		t.Fatalf("code_challenge = %q, want %q", got, pkce.CodeChallenge)
	}
	if got := query.Get("client_id"); got != ClientID {
		t.Fatalf("client_id = %q, want %q", got, ClientID)
	}
	if got := query.Get("idp_id"); got != NVIDIADefault().IDPID {
		t.Fatalf("idp_id = %q, want %q", got, NVIDIADefault().IDPID)
	}
	if got := query.Get("scope"); got != Scopes {
		t.Fatalf("scope = %q, want %q", got, Scopes)
	}
}

// TestDeviceIDStable verifies the device id is derived deterministically:
// two URLs from separate attempts carry the same device_id value.
func TestDeviceIDStable(t *testing.T) {
	auth := NewNvidiaAuth(config.DefaultConfig())
	pkce, err := GeneratePKCECodes()
	if err != nil {
		t.Fatalf("GeneratePKCECodes failed: %v", err)
	}

	first, err := url.Parse(auth.GenerateAuthURL(pkce, 2259, auth.Provider()))
	if err != nil {
		t.Fatalf("first URL does not parse: %v", err)
	}
	second, err := url.Parse(auth.GenerateAuthURL(pkce, 7119, auth.Provider()))
	if err != nil {
		t.Fatalf("second URL does not parse: %v", err)
	}

	firstID := first.Query().Get("device_id")
	if firstID == "" {
		t.Fatal("device_id missing")
	}
	if secondID := second.Query().Get("device_id"); secondID != firstID {
		t.Fatalf("device_id not stable across calls: %q vs %q", firstID, secondID)
	}
}

func TestProviderOverrides(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Provider = config.ProviderConfig{
		IDPID:       "partner-idp",
		Code:        "LGU+",
		DisplayName: "LG U+",
		Priority:    3,
	}

	provider := NewNvidiaAuth(cfg).Provider()
	if provider.IDPID != "partner-idp" || provider.Code != "LGU+" || provider.Priority != 3 {
		t.Fatalf("configured overrides not applied: %+v", provider)
	}
	if !provider.IsAlliancePartner() {
		t.Fatal("overridden provider should be an alliance partner")
	}
	if provider.StreamingServiceURL != NVIDIADefault().StreamingServiceURL {
		t.Fatalf("unset fields should keep defaults, got %q", provider.StreamingServiceURL)
	}
}
