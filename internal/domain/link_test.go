package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfiguration_Host(t *testing.T) {
	cfg := &Configuration{Hosts: map[string]string{
		"local": "http://localhost:8080",
		"empty": "",
	}}

	host, ok := cfg.Host("local")
	assert.True(t, ok)
	assert.Equal(t, "http://localhost:8080", host)

	host, ok = cfg.Host("empty")
	assert.True(t, ok, "an empty host is still a defined host")
	assert.Empty(t, host)

	_, ok = cfg.Host("prod")
	assert.False(t, ok)

	var nilCfg *Configuration
	_, ok = nilCfg.Host("local")
	assert.False(t, ok)
}

func TestParams_Add(t *testing.T) {
	params := Params{}.Add("foo", "bar").Add("foo", 2).Add("sortBy", "name")

	assert.Equal(t, Params{
		{Key: "foo", Value: "bar"},
		{Key: "foo", Value: 2},
		{Key: "sortBy", Value: "name"},
	}, params)
}
