package nvidia

import (
	"context"
	"fmt"
	"net"
	"strings"

	"github.com/opennow-dev/opennow-rewrite/internal/config"
	"github.com/opennow-dev/opennow-rewrite/internal/urlcodec"
	log "github.com/sirupsen/logrus"
)

// FallbackCallbackPort is the port callers fall back to, at their own risk,
// when none of the candidate ports could be probed successfully.
const FallbackCallbackPort = 2259

// CallbackServer owns the short-lived loopback listener that catches the
// browser redirect carrying the authorization code. Each login attempt walks
// Idle -> PortBound -> Accepting -> RequestReceived -> Responded/Closed; every
// socket a method opens is closed on every return path, so sequential attempts
// are fully independent.
//
// The candidate port list travels in the configuration rather than as a
// package global, so tests can supply their own ports.
type CallbackServer struct {
	// ports is the ordered candidate list, probed first to last.
	ports []int
}

// NewCallbackServer creates a new callback server over the configured
// candidate port list.
func NewCallbackServer(cfg *config.Config) *CallbackServer {
	return &CallbackServer{ports: cfg.CallbackPortList()}
}

// PickCallbackPort probes the candidate ports in priority order and returns
// the first one that binds on the loopback address, or false when all of them
// are unavailable. Each probe socket is closed immediately, so another process
// can still claim the port before WaitForCallbackCode rebinds it; that
// time-of-check/time-of-use gap is accepted and surfaces there as a bind
// failure.
func (s *CallbackServer) PickCallbackPort() (int, bool) {
	for _, port := range s.ports {
		ln, err := net.Listen("tcp4", loopbackAddr(port))
		if err != nil {
			log.Debugf("callback port %d unavailable: %v", port, err)
			continue
		}
		_ = ln.Close()
		return port, true
	}
	return 0, false
}

// WaitForCallbackCode binds the loopback address at port with SO_REUSEADDR,
// accepts exactly one inbound connection, and returns the authorization code
// extracted from its request line, or false when binding fails or the request
// carries no code. The fixed success page is written back regardless of the
// parse outcome, and both the client connection and the listener are closed
// before returning.
//
// The call blocks until a client connects; cancelling ctx closes the listener
// and unblocks it with a false result. context.Background() preserves the
// original block-forever behavior.
//
// The state query parameter is ignored entirely, so the flow carries no
// CSRF-style request binding. Known gap; see ExtractCallbackCode.
func (s *CallbackServer) WaitForCallbackCode(ctx context.Context, port int) (string, bool) {
	lc := net.ListenConfig{Control: reuseAddr}
	ln, err := lc.Listen(ctx, "tcp4", loopbackAddr(port))
	if err != nil {
		log.Errorf("failed to bind callback listener on port %d: %v", port, err)
		return "", false
	}
	defer func() { _ = ln.Close() }()

	// Accept blocks with no deadline; closing the listener on cancellation is
	// the only way to interrupt it.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = ln.Close()
		case <-done:
		}
	}()

	conn, err := ln.Accept()
	if err != nil {
		if ctx.Err() != nil {
			log.Debugf("callback listener on port %d cancelled: %v", port, ctx.Err())
		} else {
			log.Errorf("failed to accept callback connection on port %d: %v", port, err)
		}
		return "", false
	}
	defer func() { _ = conn.Close() }()

	// One read, one buffer. A redirect request fits comfortably; anything that
	// does not arrive in the first segment is treated as malformed.
	buf := make([]byte, 4095)
	n, errRead := conn.Read(buf)

	code := ""
	ok := false
	if errRead == nil && n > 0 {
		code, ok = parseCallbackRequest(string(buf[:n]))
	}

	if _, errWrite := conn.Write([]byte(loginSuccessResponse)); errWrite != nil {
		log.Debugf("failed to write callback response: %v", errWrite)
	}
	return code, ok
}

// parseCallbackRequest pulls the request target out of the first line of a
// raw HTTP request ("METHOD target HTTP/version") and extracts the
// authorization code from it.
func parseCallbackRequest(req string) (string, bool) {
	line := req
	if idx := strings.Index(req, "\r\n"); idx >= 0 {
		line = req[:idx]
	}
	parts := strings.SplitN(line, " ", 3)
	if len(parts) < 3 {
		return "", false
	}
	return ExtractCallbackCode(parts[1])
}

// ExtractCallbackCode extracts the code query parameter from a callback
// request target. It splits at the first '?', walks the '&'-separated
// segments, and returns the percent-decoded value of the first non-empty
// code= segment. Absence of a query string or of the parameter yields false.
// The accompanying state parameter is not validated against the request, so
// the callback is not CSRF-bound; callers relying on that binding must add it
// at a higher layer.
func ExtractCallbackCode(target string) (string, bool) {
	_, query, found := strings.Cut(target, "?")
	if !found {
		return "", false
	}
	for _, param := range strings.Split(query, "&") {
		if value, isCode := strings.CutPrefix(param, "code="); isCode && value != "" {
			return urlcodec.PercentDecode(value), true
		}
	}
	return "", false
}

func loopbackAddr(port int) string {
	return fmt.Sprintf("127.0.0.1:%d", port)
}
