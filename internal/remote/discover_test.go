package remote

import (
	"net"
	"testing"

	"github.com/grandcat/zeroconf"
)

func TestParseServiceEntry(t *testing.T) {
	entry := func(instance, host string, port int, ips []net.IP, text ...string) *zeroconf.ServiceEntry {
		e := zeroconf.NewServiceEntry(instance, ServiceType, ServiceDomain)
		e.HostName = host
		e.Port = port
		e.Text = text
		for _, ip := range ips {
			if ip.To4() != nil {
				e.AddrIPv4 = append(e.AddrIPv4, ip)
			} else {
				e.AddrIPv6 = append(e.AddrIPv6, ip)
			}
		}
		return e
	}

	tests := []struct {
		name     string
		entry    *zeroconf.ServiceEntry
		wantNil  bool
		wantName string
		wantURL  string
		wantMeta map[string]string
	}{
		{
			name:     "ipv4 with txt records",
			entry:    entry("Onboarding", "laptop.local.", 7357, []net.IP{net.ParseIP("192.168.4.16")}, "path=/ws", "title=Onboarding", "version=v1.0.0"),
			wantName: "Onboarding",
			wantURL:  "ws://192.168.4.16:7357/ws",
			wantMeta: map[string]string{"path": "/ws", "title": "Onboarding", "version": "v1.0.0"},
		},
		{
			name:     "prefers ipv4 over ipv6",
			entry:    entry("Survey", "box.local.", 8080, []net.IP{net.ParseIP("fe80::1"), net.ParseIP("10.0.0.5")}),
			wantName: "Survey",
			wantURL:  "ws://10.0.0.5:8080/ws",
			wantMeta: map[string]string{},
		},
		{
			name:     "ipv6 only",
			entry:    entry("Survey", "box.local.", 8080, []net.IP{net.ParseIP("fe80::1")}),
			wantName: "Survey",
			wantURL:  "ws://[fe80::1]:8080/ws",
			wantMeta: map[string]string{},
		},
		{
			name:     "custom path without slash",
			entry:    entry("Survey", "box.local.", 80, []net.IP{net.ParseIP("10.0.0.5")}, "path=forms/ws", "flag"),
			wantName: "Survey",
			wantURL:  "ws://10.0.0.5:80/forms/ws",
			wantMeta: map[string]string{"path": "forms/ws", "flag": ""},
		},
		{
			name:     "hostname when instance is missing",
			entry:    entry("", "box.local.", 80, []net.IP{net.ParseIP("10.0.0.5")}),
			wantName: "box.local",
			wantURL:  "ws://10.0.0.5:80/ws",
			wantMeta: map[string]string{},
		},
		{
			name:    "no address",
			entry:   entry("Survey", "box.local.", 80, nil),
			wantNil: true,
		},
		{
			name:    "no port",
			entry:   entry("Survey", "box.local.", 0, []net.IP{net.ParseIP("10.0.0.5")}),
			wantNil: true,
		},
		{
			name:    "nil entry",
			entry:   nil,
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ep := parseServiceEntry(tt.entry)
			if tt.wantNil {
				if ep != nil {
					t.Errorf("parseServiceEntry() = %+v, want nil", ep)
				}
				return
			}
			if ep == nil {
				t.Fatal("parseServiceEntry() = nil")
			}
			if ep.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", ep.Name, tt.wantName)
			}
			if got := ep.URL(); got != tt.wantURL {
				t.Errorf("URL() = %q, want %q", got, tt.wantURL)
			}
			if len(ep.Metadata) != len(tt.wantMeta) {
				t.Errorf("Metadata = %v, want %v", ep.Metadata, tt.wantMeta)
			}
			for k, v := range tt.wantMeta {
				if got := ep.GetMetadata(k); got != v {
					t.Errorf("GetMetadata(%q) = %q, want %q", k, got, v)
				}
			}
		})
	}
}

func TestEndpoint_String(t *testing.T) {
	tests := []struct {
		name string
		ep   *Endpoint
		want string
	}{
		{
			name: "title matches name",
			ep:   &Endpoint{Name: "Onboarding", IP: "10.0.0.5", Port: 7357, Metadata: map[string]string{"title": "Onboarding"}},
			want: "Onboarding (10.0.0.5:7357)",
		},
		{
			name: "distinct title",
			ep:   &Endpoint{Name: "desk", IP: "10.0.0.5", Port: 7357, Metadata: map[string]string{"title": "Onboarding"}},
			want: "desk: Onboarding (10.0.0.5:7357)",
		},
		{
			name: "no metadata",
			ep:   &Endpoint{Name: "desk", IP: "10.0.0.5", Port: 80},
			want: "desk (10.0.0.5:80)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ep.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSortEndpoints(t *testing.T) {
	seen := map[string]*Endpoint{
		"b": {Name: "beta", IP: "10.0.0.1", Port: 1, Path: "/ws"},
		"a": {Name: "alpha", IP: "10.0.0.2", Port: 1, Path: "/ws"},
		"c": {Name: "alpha", IP: "10.0.0.1", Port: 1, Path: "/ws"},
	}
	got := sortEndpoints(seen)
	want := []string{"ws://10.0.0.1:1/ws", "ws://10.0.0.2:1/ws", "ws://10.0.0.1:1/ws"}
	for i, ep := range got {
		if ep.URL() != want[i] {
			t.Errorf("endpoint %d = %s %s, want %s", i, ep.Name, ep.URL(), want[i])
		}
	}
	if got[2].Name != "beta" {
		t.Errorf("last endpoint = %s, want beta", got[2].Name)
	}
}
