// Package gatewayresolver discovers FHE relayer endpoints through DNS SRV
// records, for deployments that announce the relayer under a service domain
// instead of configuring its URL explicitly.
package gatewayresolver

import (
	"fmt"
	"sort"
	"strings"

	"github.com/miekg/dns"
)

// srvService is the SRV owner prefix the relayer is announced under.
const srvService = "_fhe-relayer._tcp."

// defaultResolver is the systemd-resolved stub listener.
const defaultResolver = "127.0.0.53:53"

// Resolver discovers relayer endpoints for a service domain.
type Resolver struct {
	resolverAddr string

	// exchange is swapped in tests.
	exchange func(m *dns.Msg, addr string) (*dns.Msg, error)
}

// NewResolver creates a resolver querying resolverAddr, defaulting to the
// local stub resolver when empty.
func NewResolver(resolverAddr string) *Resolver {
	if resolverAddr == "" {
		resolverAddr = defaultResolver
	}

	client := new(dns.Client)
	return &Resolver{
		resolverAddr: resolverAddr,
		exchange: func(m *dns.Msg, addr string) (*dns.Msg, error) {
			in, _, err := client.Exchange(m, addr)
			return in, err
		},
	}
}

// RelayerEndpoints resolves the relayer SRV records for domain and returns
// HTTP base URLs ordered by SRV priority.
func (r *Resolver) RelayerEndpoints(domain string) ([]string, error) {
	owner := dns.Fqdn(srvService + domain)

	m := new(dns.Msg)
	m.Id = dns.Id()
	m.RecursionDesired = true
	m.Question = []dns.Question{{Name: owner, Qtype: dns.TypeSRV, Qclass: dns.ClassINET}}

	in, err := r.exchange(m, r.resolverAddr)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", owner, err)
	}

	records := make([]*dns.SRV, 0, len(in.Answer))
	for _, answer := range in.Answer {
		if srv, ok := answer.(*dns.SRV); ok {
			records = append(records, srv)
		}
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("no relayer SRV records for %s", domain)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Priority < records[j].Priority
	})

	endpoints := make([]string, 0, len(records))
	for _, srv := range records {
		host := strings.TrimSuffix(srv.Target, ".")
		endpoints = append(endpoints, fmt.Sprintf("http://%s:%d", host, srv.Port))
	}

	return endpoints, nil
}
