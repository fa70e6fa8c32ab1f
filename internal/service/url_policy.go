package service

import (
	"context"
	"fmt"
	"net"
	"net/netip"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/avc-dev/link-resolver/internal/config"
	"github.com/avc-dev/link-resolver/internal/model"
)

var (
	trackingParams = []string{"utm_source", "utm_medium", "utm_campaign", "utm_term", "utm_content"}

	controlChars    = regexp.MustCompile(`[\x00-\x1f\x7f]`)
	newlineChars    = regexp.MustCompile("[\r\n\u2028\u2029]")
	escapedNewlines = regexp.MustCompile(`(?i)\\[rn]|%0d|%0a`)
	repeatedSlashes = regexp.MustCompile(`/{2,}`)
)

// HostResolver разрешает имя хоста в адреса, реализуется *net.Resolver
type HostResolver interface {
	LookupIPAddr(ctx context.Context, host string) ([]net.IPAddr, error)
}

// URLPolicy правила безопасности адреса назначения
// Одни и те же правила применяются при создании ссылки и при каждой выдаче
type URLPolicy struct {
	maxLength             int
	allowNonStandardPorts bool
	stripTrackingParams   bool
	shortDomain           string
	resolver              HostResolver
}

// NewURLPolicy создает политику, при resolver == nil используется net.DefaultResolver
func NewURLPolicy(cfg config.PolicyConfig, resolver HostResolver) *URLPolicy {
	if resolver == nil {
		resolver = net.DefaultResolver
	}

	return &URLPolicy{
		maxLength:             cfg.MaxLength,
		allowNonStandardPorts: cfg.AllowNonStandardPorts,
		stripTrackingParams:   cfg.StripTrackingParams,
		shortDomain:           strings.ToLower(cfg.ShortDomain),
		resolver:              resolver,
	}
}

func unsafe(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrUnsafeDestination, fmt.Sprintf(format, args...))
}

// parse выполняет все проверки, не требующие сети, и возвращает разобранный адрес
func (p *URLPolicy) parse(raw string) (*url.URL, string, error) {
	if raw == "" {
		return nil, "", unsafe("empty url")
	}
	if len(raw) > p.maxLength {
		return nil, "", unsafe("url longer than %d", p.maxLength)
	}
	if controlChars.MatchString(raw) {
		return nil, "", unsafe("control characters")
	}
	if hasDangerousNewlines(raw) {
		return nil, "", unsafe("encoded line breaks")
	}

	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, "", unsafe("malformed url")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, "", unsafe("scheme %q not allowed", u.Scheme)
	}
	if u.User != nil {
		return nil, "", unsafe("credentials in url")
	}

	host := strings.ToLower(strings.TrimSuffix(u.Hostname(), "."))
	if host == "" {
		return nil, "", unsafe("missing host")
	}

	port := defaultPort(u.Scheme)
	if s := u.Port(); s != "" {
		port, err = strconv.Atoi(s)
		if err != nil || port < 1 || port > 65535 {
			return nil, "", unsafe("invalid port %q", s)
		}
	}
	if !p.allowNonStandardPorts && port != 80 && port != 443 {
		return nil, "", unsafe("port %d not allowed", port)
	}

	if p.shortDomain != "" && (host == p.shortDomain || strings.HasSuffix(host, "."+p.shortDomain)) {
		return nil, "", unsafe("short domain as destination")
	}

	if addr, err := netip.ParseAddr(host); err == nil && forbiddenAddr(addr) {
		return nil, "", unsafe("address %s is not public", addr)
	}

	return u, host, nil
}

// CheckStatic проверяет адрес без разрешения имени
func (p *URLPolicy) CheckStatic(raw string) error {
	_, _, err := p.parse(raw)
	return err
}

// Check проверяет адрес, включая разрешение имени хоста
// Неразрешимый хост считается небезопасным
func (p *URLPolicy) Check(ctx context.Context, raw string) error {
	_, host, err := p.parse(raw)
	if err != nil {
		return err
	}

	return p.checkHost(ctx, host)
}

func (p *URLPolicy) checkHost(ctx context.Context, host string) error {
	if _, err := netip.ParseAddr(host); err == nil {
		// IP-литерал уже проверен в parse
		return nil
	}

	addrs, err := p.resolver.LookupIPAddr(ctx, host)
	if err != nil {
		return unsafe("host %s does not resolve", host)
	}
	if len(addrs) == 0 {
		return unsafe("host %s has no addresses", host)
	}

	for _, a := range addrs {
		addr, ok := netip.AddrFromSlice(a.IP)
		if !ok || forbiddenAddr(addr) {
			return unsafe("host %s resolves to %s", host, a.IP)
		}
	}

	return nil
}

// Normalize проверяет адрес и приводит его к каноническому виду
func (p *URLPolicy) Normalize(ctx context.Context, raw string) (model.URL, error) {
	u, host, err := p.parse(raw)
	if err != nil {
		return "", err
	}

	hostPart := host
	if strings.Contains(host, ":") {
		hostPart = "[" + host + "]"
	}
	if port := u.Port(); port != "" && port != strconv.Itoa(defaultPort(u.Scheme)) {
		hostPart = net.JoinHostPort(host, port)
	}
	u.Host = hostPart

	if u.Path == "" {
		u.Path = "/"
	}
	u.Path = repeatedSlashes.ReplaceAllString(u.Path, "/")
	u.RawPath = repeatedSlashes.ReplaceAllString(u.RawPath, "/")

	if p.stripTrackingParams {
		query := u.Query()
		for _, param := range trackingParams {
			query.Del(param)
		}
		// Encode сортирует параметры по ключу
		u.RawQuery = query.Encode()
	}

	out := u.String()
	if len(out) > p.maxLength {
		return "", unsafe("normalized url longer than %d", p.maxLength)
	}

	if err := p.checkHost(ctx, host); err != nil {
		return "", err
	}

	return model.URL(out), nil
}

func defaultPort(scheme string) int {
	if scheme == "https" {
		return 443
	}
	return 80
}

func hasDangerousNewlines(raw string) bool {
	if newlineChars.MatchString(raw) || escapedNewlines.MatchString(raw) {
		return true
	}

	if decoded, err := url.PathUnescape(raw); err == nil && newlineChars.MatchString(decoded) {
		return true
	}

	return false
}

// forbiddenAddr адреса loopback, частных сетей, link-local и unspecified
func forbiddenAddr(addr netip.Addr) bool {
	addr = addr.Unmap()
	return addr.IsLoopback() ||
		addr.IsPrivate() ||
		addr.IsLinkLocalUnicast() ||
		addr.IsLinkLocalMulticast() ||
		addr.IsUnspecified()
}
