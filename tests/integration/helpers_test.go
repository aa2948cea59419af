// Shared fixtures for the integration tests: a probe server on a
// simulated device, and a client pointed at it.
package integration

import (
	"net/http/httptest"
	"testing"

	"github.com/mesh-intelligence/probe/internal/client"
	"github.com/mesh-intelligence/probe/internal/devsim"
	"github.com/mesh-intelligence/probe/internal/server"
)

// newStack starts a server on a fresh simulated device and returns a
// client for it along with the device itself for direct inspection.
func newStack(t *testing.T) (*client.Client, *devsim.Device) {
	t.Helper()
	dev := devsim.NewDevice()
	srv := httptest.NewServer(server.New(dev.Introspectable(), nil).Handler())
	t.Cleanup(srv.Close)
	return client.New(srv.URL), dev
}
