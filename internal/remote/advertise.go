package remote

import (
	"fmt"

	"github.com/grandcat/zeroconf"
	"go.uber.org/zap"

	"github.com/muurk/termask/internal/logging"
)

// Advertisement is a running mDNS announcement of a form server.
type Advertisement struct {
	server *zeroconf.Server
	name   string
}

// Advertise announces a form server listening on port as an instance of
// ServiceType. text holds key=value TXT records.
func Advertise(name string, port int, text []string) (*Advertisement, error) {
	server, err := zeroconf.Register(name, ServiceType, ServiceDomain, port, text, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to register mDNS service: %w", err)
	}

	logging.Info("Advertising form server",
		zap.String("name", name),
		zap.String("service", ServiceType),
		zap.Int("port", port),
	)
	return &Advertisement{server: server, name: name}, nil
}

// Shutdown withdraws the announcement.
func (a *Advertisement) Shutdown() {
	a.server.Shutdown()
	logging.Debug("Stopped advertising", zap.String("name", a.name))
}
