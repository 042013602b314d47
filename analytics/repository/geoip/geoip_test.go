package geoip

import (
	"encoding/json"
	"net"
	"testing"

	"github.com/oschwald/geoip2-golang"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCityReader struct {
	cities map[string]*geoip2.City
}

func (f *fakeCityReader) City(ip net.IP) (*geoip2.City, error) {
	city, ok := f.cities[ip.String()]
	if !ok {
		return nil, errors.New("not found")
	}
	return city, nil
}

func (f *fakeCityReader) Close() error {
	return nil
}

func TestGeoRepo(t *testing.T) {
	var berlin, noSubdivision geoip2.City
	require.NoError(t, json.Unmarshal([]byte(`{"Country":{"Names":{"en":"Germany"}},"Subdivisions":[{"Names":{"en":"Land Berlin"}}]}`), &berlin))
	require.NoError(t, json.Unmarshal([]byte(`{"Country":{"Names":{"en":"Japan"}}}`), &noSubdivision))

	repo := &geoRepo{reader: &fakeCityReader{cities: map[string]*geoip2.City{
		"203.0.113.7":  &berlin,
		"198.51.100.1": &noSubdivision,
	}}}

	testCases := []struct {
		ip      string
		country string
		state   string
	}{
		{ip: "", country: Internal, state: Internal},
		{ip: "localhost", country: Internal, state: Internal},
		{ip: "127.0.0.1", country: Internal, state: Internal},
		{ip: "::1", country: Internal, state: Internal},
		{ip: "203.0.113.7", country: "Germany", state: "Land Berlin"},
		{ip: "198.51.100.1", country: "Japan", state: Unknown},
		{ip: "192.0.2.1", country: Unknown, state: Unknown},
		{ip: "not-an-ip", country: Unknown, state: Unknown},
	}
	for _, testCase := range testCases {
		country, state := repo.Lookup(testCase.ip)
		assert.Equal(t, testCase.country, country, testCase.ip)
		assert.Equal(t, testCase.state, state, testCase.ip)
	}

	withoutDB, err := CreateGeoRepo("")
	require.NoError(t, err)
	country, state := withoutDB.Lookup("203.0.113.7")
	assert.Equal(t, Unknown, country)
	assert.Equal(t, Unknown, state)
	assert.NoError(t, withoutDB.Close())
}
