package geoip

import (
	"net"

	"github.com/oschwald/geoip2-golang"
	"github.com/pkg/errors"
	"github.com/superj80820/url2short/domain"
)

const (
	Internal = "internal"
	Unknown  = "unknown"
)

type cityReader interface {
	City(ip net.IP) (*geoip2.City, error)
	Close() error
}

type geoRepo struct {
	reader cityReader
}

// CreateGeoRepo opens a GeoLite2-City database. An empty path yields a repo
// that resolves every public address to unknown.
func CreateGeoRepo(dbPath string) (domain.GeoRepo, error) {
	if dbPath == "" {
		return &geoRepo{}, nil
	}
	reader, err := geoip2.Open(dbPath)
	if err != nil {
		return nil, errors.Wrap(err, "open geoip database failed")
	}
	return &geoRepo{reader: reader}, nil
}

func (g *geoRepo) Lookup(ip string) (string, string) {
	if ip == "" || ip == "localhost" {
		return Internal, Internal
	}
	parsed := net.ParseIP(ip)
	if parsed != nil && parsed.IsLoopback() {
		return Internal, Internal
	}
	if g.reader == nil || parsed == nil {
		return Unknown, Unknown
	}

	record, err := g.reader.City(parsed)
	if err != nil || record == nil {
		return Unknown, Unknown
	}
	country := record.Country.Names["en"]
	if country == "" {
		country = Unknown
	}
	state := Unknown
	if len(record.Subdivisions) > 0 && record.Subdivisions[0].Names["en"] != "" {
		state = record.Subdivisions[0].Names["en"]
	}
	return country, state
}

func (g *geoRepo) Close() error {
	if g.reader == nil {
		return nil
	}
	return g.reader.Close()
}
