package session

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/hashicorp/mdns"
)

// ServiceType is the DNS-SD service boards advertise on the local network.
const ServiceType = "_omnisketch._tcp"

// Peer is a board server found on the local network.
type Peer struct {
	Name string `json:"name"`
	Addr string `json:"addr"`
	Info string `json:"info,omitempty"`
}

// NewService describes this server for mDNS. A nil ips list lets the
// library resolve the host's own addresses.
func NewService(instance string, port int, ips []net.IP) (*mdns.MDNSService, error) {
	host, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("get hostname: %w", err)
	}
	if instance == "" {
		instance = host
	}

	service, err := mdns.NewMDNSService(instance, ServiceType, "", "", port, ips, []string{instance})
	if err != nil {
		return nil, fmt.Errorf("create mdns service: %w", err)
	}
	return service, nil
}

// Advertise announces the server until the returned server is shut down.
func Advertise(instance string, port int) (*mdns.Server, error) {
	service, err := NewService(instance, port, nil)
	if err != nil {
		return nil, err
	}
	server, err := mdns.NewServer(&mdns.Config{Zone: service})
	if err != nil {
		return nil, fmt.Errorf("start mdns server: %w", err)
	}
	return server, nil
}

// Browse collects peers that answer within timeout.
func Browse(timeout time.Duration) ([]Peer, error) {
	entries := make(chan *mdns.ServiceEntry, 16)
	done := make(chan []Peer)
	go func() {
		var peers []Peer
		for e := range entries {
			if p, ok := peerFromEntry(e); ok {
				peers = append(peers, p)
			}
		}
		done <- peers
	}()

	params := mdns.DefaultParams(ServiceType)
	params.Entries = entries
	params.Timeout = timeout
	params.DisableIPv6 = true
	err := mdns.Query(params)
	close(entries)
	peers := <-done
	if err != nil {
		return nil, fmt.Errorf("browse mdns: %w", err)
	}
	return peers, nil
}

func peerFromEntry(e *mdns.ServiceEntry) (Peer, bool) {
	if e == nil || e.AddrV4 == nil || e.Port == 0 {
		return Peer{}, false
	}
	return Peer{
		Name: e.Name,
		Addr: net.JoinHostPort(e.AddrV4.String(), fmt.Sprint(e.Port)),
		Info: e.Info,
	}, true
}
