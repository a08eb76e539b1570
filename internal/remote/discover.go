package remote

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/grandcat/zeroconf"
)

const (
	// ServiceType is the mDNS service type form servers advertise as
	ServiceType = "_termask._tcp"

	// ServiceDomain is the mDNS domain (typically "local.")
	ServiceDomain = "local."

	// DefaultScanTimeout is the default timeout for server discovery
	DefaultScanTimeout = 5 * time.Second
)

// Endpoint is a form server found on the network
type Endpoint struct {
	// Name is the advertised instance name, usually the form title
	Name string

	// Hostname is the mDNS hostname (e.g., "laptop.local.")
	Hostname string

	// IP is the address to dial, IPv4 when the server has one
	IP string

	Port int

	// Path is the websocket path (TXT "path", default DefaultPath)
	Path string

	// Metadata contains every TXT record, e.g. "title", "version"
	Metadata map[string]string

	// DiscoveredAt is when the server was discovered
	DiscoveredAt time.Time
}

// String returns the label used when listing endpoints
func (e *Endpoint) String() string {
	title := e.GetMetadata("title")
	if title == "" || title == e.Name {
		return fmt.Sprintf("%s (%s:%d)", e.Name, e.IP, e.Port)
	}
	return fmt.Sprintf("%s: %s (%s:%d)", e.Name, title, e.IP, e.Port)
}

// URL returns the websocket URL of the endpoint
func (e *Endpoint) URL() string {
	u := url.URL{
		Scheme: "ws",
		Host:   net.JoinHostPort(e.IP, strconv.Itoa(e.Port)),
		Path:   e.Path,
	}
	return u.String()
}

// GetMetadata retrieves a metadata value by key, or returns empty string if not found
func (e *Endpoint) GetMetadata(key string) string {
	if e.Metadata == nil {
		return ""
	}
	return e.Metadata[key]
}

// Scanner handles mDNS server discovery
type Scanner struct {
	// Timeout is the maximum time to wait for servers to answer
	Timeout time.Duration
}

// NewScanner creates a new mDNS scanner with default settings
func NewScanner() *Scanner {
	return &Scanner{
		Timeout: DefaultScanTimeout,
	}
}

// Scan browses for form servers until the timeout or ctx ends. Endpoints
// are sorted by name; a server seen twice is reported once.
func (s *Scanner) Scan(ctx context.Context) ([]*Endpoint, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	entries := make(chan *zeroconf.ServiceEntry)
	found := make(chan []*Endpoint, 1)

	// The resolver closes entries once browsing stops
	go func() {
		seen := make(map[string]*Endpoint)
		for entry := range entries {
			if ep := parseServiceEntry(entry); ep != nil {
				seen[ep.Name+"@"+ep.URL()] = ep
			}
		}
		found <- sortEndpoints(seen)
	}()

	if err := resolver.Browse(ctx, ServiceType, ServiceDomain, entries); err != nil {
		return nil, fmt.Errorf("failed to browse for mDNS services: %w", err)
	}

	<-ctx.Done()
	select {
	case endpoints := <-found:
		return endpoints, nil
	case <-time.After(time.Second):
		return nil, fmt.Errorf("mDNS browser did not stop")
	}
}

func sortEndpoints(seen map[string]*Endpoint) []*Endpoint {
	endpoints := make([]*Endpoint, 0, len(seen))
	for _, ep := range seen {
		endpoints = append(endpoints, ep)
	}
	sort.Slice(endpoints, func(i, j int) bool {
		if endpoints[i].Name != endpoints[j].Name {
			return endpoints[i].Name < endpoints[j].Name
		}
		return endpoints[i].URL() < endpoints[j].URL()
	})
	return endpoints
}

// parseServiceEntry converts a zeroconf service entry to an Endpoint.
// Returns nil if the entry has no usable address or port.
func parseServiceEntry(entry *zeroconf.ServiceEntry) *Endpoint {
	if entry == nil || entry.Port <= 0 {
		return nil
	}

	// Get IP address (prefer IPv4)
	var ip string
	if len(entry.AddrIPv4) > 0 {
		ip = entry.AddrIPv4[0].String()
	} else if len(entry.AddrIPv6) > 0 {
		ip = entry.AddrIPv6[0].String()
	}
	if ip == "" {
		return nil
	}

	// TXT records are in "key=value" format
	metadata := make(map[string]string)
	for _, txt := range entry.Text {
		k, v, _ := strings.Cut(txt, "=")
		metadata[k] = v
	}

	path := metadata["path"]
	if path == "" {
		path = DefaultPath
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	name := entry.Instance
	if name == "" {
		name = strings.TrimSuffix(entry.HostName, ".")
	}

	return &Endpoint{
		Name:         name,
		Hostname:     entry.HostName,
		IP:           ip,
		Port:         entry.Port,
		Path:         path,
		Metadata:     metadata,
		DiscoveredAt: time.Now(),
	}
}
