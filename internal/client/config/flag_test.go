package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {

	defaults := func() *Config {
		c := &Config{}
		c.LoadDefaults()
		return c
	}

	tests := []struct {
		expected  *Config
		name      string
		args      []string
		expectErr bool
	}{
		{
			name: "short flags",
			args: []string{"-a", "http://10.0.0.1:8000/api", "-r", "10s", "-u", "2"},
			expected: func() *Config {
				c := defaults()
				c.BackendURL = "http://10.0.0.1:8000/api"
				c.ReconnectInterval = 10 * time.Second
				c.UploadConcurrency = 2
				return c
			}(),
		},
		{
			name: "long flags with equals",
			args: []string{"--frontend=https://files.example", "--db=:memory:", "--timeout=30s", "--log-level=debug"},
			expected: func() *Config {
				c := defaults()
				c.FrontendURL = "https://files.example"
				c.DatabaseDSN = ":memory:"
				c.RequestTimeout = 30 * time.Second
				c.LogLevel = "debug"
				return c
			}(),
		},
		{
			name:     "unknown flags are ignored",
			args:     []string{"--verbose", "-z", "1"},
			expected: defaults(),
		},
		{name: "incorrect reconnect interval", args: []string{"-r", "abc"}, expectErr: true},
		{name: "negative uploads", args: []string{"--uploads=-1"}, expectErr: true},
		{
			name: "zero uploads lifts the limit",
			args: []string{"-u", "0"},
			expected: func() *Config {
				c := defaults()
				c.UploadConcurrency = 0
				return c
			}(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := defaults()
			err := parseFlags(config, tt.args)

			if tt.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(config, tt.expected))
		})
	}
}
