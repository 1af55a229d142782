package ui

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"net/url"
	"strings"
	"syscall"
	"time"

	"github.com/abroxchat/abrox/internal/platform/timeouts"
	"golang.org/x/net/html"
)

// AvatarProbe reports whether an avatar image URL loads.
type AvatarProbe interface {
	Loads(ctx context.Context, avatarURL string) bool
}

// HTTPAvatarProbe checks avatar URLs with a HEAD request, retrying with GET
// when the server does not support HEAD.
type HTTPAvatarProbe struct {
	client  *http.Client
	timeout time.Duration
}

// ErrNonPublicAddress is returned when an avatar request would connect to a
// loopback, private, link-local or otherwise non-public address.
var ErrNonPublicAddress = errors.New("avatar host is not a public address")

// maxAvatarRedirects bounds the redirect chain an avatar request may follow.
const maxAvatarRedirects = 3

var sharedAddressSpace = netip.MustParsePrefix("100.64.0.0/10")

// NewHTTPAvatarProbe creates a probe. A nil client uses NewPublicHTTPClient
// and a non-positive timeout uses timeouts.AvatarProbe.
func NewHTTPAvatarProbe(client *http.Client, timeout time.Duration) *HTTPAvatarProbe {
	if timeout <= 0 {
		timeout = timeouts.AvatarProbe
	}
	if client == nil {
		client = NewPublicHTTPClient(timeout)
	}
	return &HTTPAvatarProbe{client: client, timeout: timeout}
}

// NewPublicHTTPClient returns a client that only connects to public
// addresses. The check runs on every dial, after DNS resolution, so
// redirects and rebinding hostnames cannot reach internal services.
// Environment proxies are ignored.
func NewPublicHTTPClient(timeout time.Duration) *http.Client {
	dialer := &net.Dialer{
		Timeout: timeout,
		Control: refuseNonPublicAddress,
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.Proxy = nil
	transport.DialContext = dialer.DialContext
	return &http.Client{
		Transport:     transport,
		CheckRedirect: checkAvatarRedirect,
	}
}

func refuseNonPublicAddress(_, address string, _ syscall.RawConn) error {
	host, _, err := net.SplitHostPort(address)
	if err != nil {
		return err
	}
	addr, err := netip.ParseAddr(host)
	if err != nil {
		return err
	}
	if !isPublicAddr(addr) {
		return fmt.Errorf("%w: %s", ErrNonPublicAddress, addr)
	}
	return nil
}

func isPublicAddr(addr netip.Addr) bool {
	addr = addr.Unmap()
	switch {
	case !addr.IsValid(),
		addr.IsUnspecified(),
		addr.IsLoopback(),
		addr.IsPrivate(),
		addr.IsLinkLocalUnicast(),
		addr.IsLinkLocalMulticast(),
		addr.IsInterfaceLocalMulticast(),
		addr.IsMulticast(),
		sharedAddressSpace.Contains(addr):
		return false
	}
	return true
}

func checkAvatarRedirect(req *http.Request, via []*http.Request) error {
	if len(via) >= maxAvatarRedirects {
		return fmt.Errorf("stopped after %d redirects", maxAvatarRedirects)
	}
	switch strings.ToLower(req.URL.Scheme) {
	case "http", "https":
		return nil
	default:
		return fmt.Errorf("redirect to unsupported scheme %q", req.URL.Scheme)
	}
}

// Loads reports whether rawURL answers with a 2xx image response. Inline
// data:image URLs always load; other schemes never do.
func (p *HTTPAvatarProbe) Loads(ctx context.Context, rawURL string) bool {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return false
	}
	switch strings.ToLower(parsed.Scheme) {
	case "http", "https":
	case "data":
		return strings.HasPrefix(strings.ToLower(parsed.Opaque), "image/")
	default:
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	status, contentType, err := p.fetch(ctx, http.MethodHead, parsed.String())
	if err != nil {
		return false
	}
	if status == http.StatusMethodNotAllowed || status == http.StatusNotImplemented {
		status, contentType, err = p.fetch(ctx, http.MethodGet, parsed.String())
		if err != nil {
			return false
		}
	}
	if status < 200 || status > 299 {
		return false
	}
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(contentType)), "image/")
}

func (p *HTTPAvatarProbe) fetch(ctx context.Context, method, target string) (int, string, error) {
	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return 0, "", err
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return 0, "", err
	}
	defer resp.Body.Close()
	return resp.StatusCode, resp.Header.Get("Content-Type"), nil
}

// ResolveAvatar renders an avatar and, when probe reports that the image
// does not load, marks it failed so the placeholder glyph is served instead.
func (k *Kit) ResolveAvatar(ctx context.Context, probe AvatarProbe, avatarURL string, opts AvatarOptions) *html.Node {
	avatar := k.Avatar(avatarURL, opts)
	if avatarURL == "" || probe == nil {
		return avatar
	}
	if !probe.Loads(ctx, avatarURL) {
		k.markAvatarFailed(avatar, avatarURL)
	}
	return avatar
}
