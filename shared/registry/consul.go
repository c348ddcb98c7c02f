package registry

import (
	"fmt"

	capi "github.com/hashicorp/consul/api"
	"github.com/rs/zerolog"
)

// ServiceRegistry registers the HTTP API with a consul agent so other
// services can discover it.
type ServiceRegistry struct {
	client *capi.Client
	logger *zerolog.Logger
	id     string
}

// NewServiceRegistry creates a consul client for the given agent address.
func NewServiceRegistry(address string, logger *zerolog.Logger) (*ServiceRegistry, error) {
	cfg := capi.DefaultConfig()
	if address != "" {
		cfg.Address = address
	}

	client, err := capi.NewClient(cfg)
	if err != nil {
		return nil, err
	}

	return &ServiceRegistry{
		client: client,
		logger: logger,
	}, nil
}

// Register announces the service with an HTTP health check on /health.
// Consul deregisters the service on its own if the check stays critical.
func (r *ServiceRegistry) Register(name, host string, port int) error {
	r.id = fmt.Sprintf("%s-%s-%d", name, host, port)

	registration := &capi.AgentServiceRegistration{
		ID:      r.id,
		Name:    name,
		Address: host,
		Port:    port,
		Check: &capi.AgentServiceCheck{
			HTTP:                           fmt.Sprintf("http://%s:%d/health", host, port),
			Interval:                       "10s",
			Timeout:                        "2s",
			DeregisterCriticalServiceAfter: "1m",
		},
	}

	return r.client.Agent().ServiceRegister(registration)
}

// Deregister removes the service from consul.
func (r *ServiceRegistry) Deregister() {
	if r.id == "" {
		return
	}

	if err := r.client.Agent().ServiceDeregister(r.id); err != nil {
		r.logger.Warn().Err(err).Msg("failed to deregister service from consul")
	}
}
