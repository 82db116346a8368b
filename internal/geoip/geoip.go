// Package geoip annotates probed servers with the country their resolved
// IP belongs to, backed by a local MMDB file.
package geoip

import (
	"context"
	"net"

	"github.com/oschwald/geoip2-golang"
)

// Provider wraps the GeoIP2 database reader. A nil Provider is valid and
// reports no country, so callers need no special casing when the feature
// is off.
type Provider struct {
	db *geoip2.Reader
}

// Open initializes the reader from an MMDB file path.
func Open(path string) (*Provider, error) {
	db, err := geoip2.Open(path)
	if err != nil {
		return nil, err
	}
	return &Provider{db: db}, nil
}

// Close closes the underlying database reader.
func (p *Provider) Close() error {
	if p == nil {
		return nil
	}
	return p.db.Close()
}

// CountryCode looks up the ISO country code for an IP address string,
// returning "" when unknown.
func (p *Provider) CountryCode(ipStr string) string {
	if p == nil {
		return ""
	}
	ip := net.ParseIP(ipStr)
	if ip == nil {
		return ""
	}
	record, err := p.db.Country(ip)
	if err != nil {
		return ""
	}
	return record.Country.IsoCode
}

// CountryForHost resolves host to its first IP and looks that up. The
// host may already be an IP literal.
func (p *Provider) CountryForHost(ctx context.Context, host string) string {
	if p == nil {
		return ""
	}
	if ip := net.ParseIP(host); ip != nil {
		return p.CountryCode(host)
	}
	ips, err := net.DefaultResolver.LookupHost(ctx, host)
	if err != nil || len(ips) == 0 {
		return ""
	}
	return p.CountryCode(ips[0])
}
