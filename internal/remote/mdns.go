// ABOUTME: mDNS advertisement for the remote control endpoint
// ABOUTME: Announces _chime._tcp so bench tools can find the device
package remote

import (
	"fmt"
	"log"
	"net"

	"github.com/hashicorp/mdns"
)

const serviceType = "_chime._tcp"

// Advertiser announces the control endpoint on the local network.
type Advertiser struct {
	name   string
	port   int
	server *mdns.Server
}

// NewAdvertiser creates an advertiser for the given service name and port.
func NewAdvertiser(name string, port int) *Advertiser {
	return &Advertiser{name: name, port: port}
}

// Advertise starts the mDNS responder.
func (a *Advertiser) Advertise() error {
	ips, err := localIPs()
	if err != nil {
		return fmt.Errorf("failed to get local IPs: %w", err)
	}

	service, err := mdns.NewMDNSService(
		a.name,
		serviceType,
		"",
		"",
		a.port,
		ips,
		[]string{"path=/chime"},
	)
	if err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}

	server, err := mdns.NewServer(&mdns.Config{Zone: service})
	if err != nil {
		return fmt.Errorf("failed to create mdns server: %w", err)
	}

	a.server = server
	log.Printf("remote: advertising %s as %s on port %d", serviceType, a.name, a.port)

	return nil
}

// Shutdown stops the responder.
func (a *Advertiser) Shutdown() {
	if a.server != nil {
		a.server.Shutdown()
	}
}

// localIPs returns the IPv4 addresses worth advertising: up, non-loopback
// interfaces only. Advertising with no routable address is an error.
func localIPs() ([]net.IP, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, fmt.Errorf("failed to list interfaces: %w", err)
	}

	var ips []net.IP
	for _, iface := range ifaces {
		if iface.Flags&(net.FlagUp|net.FlagLoopback) != net.FlagUp {
			continue
		}

		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}

		for _, addr := range addrs {
			ipnet, ok := addr.(*net.IPNet)
			if !ok {
				continue
			}
			if ip := ipnet.IP.To4(); ip != nil && !ip.IsLoopback() {
				ips = append(ips, ip)
			}
		}
	}

	if len(ips) == 0 {
		return nil, fmt.Errorf("no routable IPv4 interfaces")
	}

	return ips, nil
}
