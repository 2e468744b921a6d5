package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplitMountBinding(t *testing.T) {
	tests := map[string]struct {
		value       string
		expected    mountBinding
		expectError bool
	}{
		"prefix and directory": {
			value:    "/assets=public/assets",
			expected: mountBinding{Prefix: "/assets", Source: "public/assets"},
		},
		"root mount": {
			value:    "=public",
			expected: mountBinding{Prefix: "", Source: "public"},
		},
		"zip archive source": {
			value:    "/docs=content/docs.zip",
			expected: mountBinding{Prefix: "/docs", Source: "content/docs.zip"},
		},
		"source containing an equals sign": {
			value:    "/a=dir=with=equals",
			expected: mountBinding{Prefix: "/a", Source: "dir=with=equals"},
		},
		"missing separator": {
			value:       "public",
			expectError: true,
		},
		"empty source": {
			value:       "/assets=",
			expectError: true,
		},
		"prefix without leading slash": {
			value:       "assets=public",
			expectError: true,
		},
		"prefix with trailing slash": {
			value:       "/assets/=public",
			expectError: true,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			binding, err := splitMountBinding(tc.value)

			if tc.expectError {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tc.expected, binding)
		})
	}
}
