package apiclient

import (
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/ia-technology/catalog-console/internal/core/domain"
	"github.com/ia-technology/catalog-console/internal/core/ports"
)

// expirySuppressWindow bounds how often the forced-logout broadcast may
// fire, so a burst of concurrent 401s produces a single broadcast.
const expirySuppressWindow = 5 * time.Second

// Pipeline is the shared interceptor for all backend traffic. Outbound,
// it attaches the stored bearer token; inbound, it detects credential
// expiry (a 401 on anything but the signin call) and emits one
// forced-logout broadcast to the session observer. It performs no
// redirection itself; the session store owns that policy.
type Pipeline struct {
	base       http.RoundTripper
	storage    ports.CredentialStorage
	observer   ports.SessionObserver
	signinPath string
	log        zerolog.Logger

	mu            sync.Mutex
	lastBroadcast time.Time
}

// SetObserver installs the forced-logout recipient. The session store is
// constructed after the client (it signs in through it), so the observer
// is wired in a second step.
func (p *Pipeline) SetObserver(o ports.SessionObserver) {
	p.mu.Lock()
	p.observer = o
	p.mu.Unlock()
}

// NewPipeline builds the interceptor. signinPath is the request path of
// the login exchange, which is exempt from the expiry treatment: a 401
// there means bad credentials, not an expired session.
func NewPipeline(base http.RoundTripper, storage ports.CredentialStorage, observer ports.SessionObserver, signinPath string, log zerolog.Logger) *Pipeline {
	if base == nil {
		base = http.DefaultTransport
	}
	return &Pipeline{
		base:       base,
		storage:    storage,
		observer:   observer,
		signinPath: signinPath,
		log:        log,
	}
}

// RoundTrip implements http.RoundTripper.
func (p *Pipeline) RoundTrip(req *http.Request) (*http.Response, error) {
	out := req
	if token := p.currentToken(req); token != "" {
		out = req.Clone(req.Context())
		out.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := p.base.RoundTrip(out)
	requestDuration.WithLabelValues(req.Method).Observe(time.Since(start).Seconds())

	if err != nil {
		// Network-level failure, including timeouts: pass through
		// unchanged. Only a definite 401 status may trigger expiry.
		requestsTotal.WithLabelValues(req.Method, "network_error").Inc()
		return nil, err
	}
	requestsTotal.WithLabelValues(req.Method, strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode == http.StatusUnauthorized && req.URL.Path != p.signinPath {
		p.handleExpiry(req)
	}
	return resp, nil
}

// currentToken reads the bare token entry. Absence or a read failure
// simply means the request goes out unauthenticated.
func (p *Pipeline) currentToken(req *http.Request) string {
	token, err := p.storage.Get(req.Context(), ports.StorageKeyToken)
	if err != nil {
		if !errors.Is(err, domain.ErrKeyNotFound) {
			p.log.Warn().Err(err).Msg("token read failed, sending unauthenticated")
		}
		return ""
	}
	return token
}

// handleExpiry clears the durable entries and broadcasts forced logout
// at most once per suppression window.
func (p *Pipeline) handleExpiry(req *http.Request) {
	authExpiriesTotal.Inc()

	p.mu.Lock()
	suppressed := time.Since(p.lastBroadcast) < expirySuppressWindow
	if !suppressed {
		p.lastBroadcast = time.Now()
	}
	observer := p.observer
	p.mu.Unlock()

	if suppressed {
		forcedLogoutsTotal.WithLabelValues("suppressed").Inc()
		return
	}

	if err := p.storage.Delete(req.Context(), ports.StorageKeyCredential, ports.StorageKeyToken); err != nil {
		p.log.Warn().Err(err).Msg("clearing expired credential failed")
	}

	p.log.Warn().Str("path", req.URL.Path).Msg("credential expired, broadcasting forced logout")
	forcedLogoutsTotal.WithLabelValues("emitted").Inc()
	if observer != nil {
		observer.SessionExpired()
	}
}
