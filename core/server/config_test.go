package server_test

import (
	"testing"

	"osv-diff/core/server"

	"github.com/stretchr/testify/assert"
)

func TestConfig_IsValid(t *testing.T) {
	tests := []struct {
		name string
		cfg  server.Config
		want bool
	}{
		{"Complete", server.Config{Port: "1325", Root: "fixtures"}, true},
		{"Colon port", server.Config{Port: ":1326", Root: "fixtures"}, true},
		{"Missing port", server.Config{Root: "fixtures"}, false},
		{"Bare colon", server.Config{Port: ":", Root: "fixtures"}, false},
		{"Missing root", server.Config{Port: "1325"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.IsValid())
		})
	}
}

func TestConfig_Address(t *testing.T) {
	assert.Equal(t, "127.0.0.1:1325", server.Config{Bind: "127.0.0.1", Port: "1325"}.Address())
	assert.Equal(t, "0.0.0.0:1326", server.Config{Bind: "0.0.0.0", Port: ":1326"}.Address())
}
