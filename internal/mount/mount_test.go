package mount

import (
	"testing"

	"github.com/stretchr/testify/require"

	"gitlab.com/webfold/staticserve/internal/storage"
	"gitlab.com/webfold/staticserve/internal/storage/inmem"
)

func TestNew(t *testing.T) {
	provider := inmem.New(storage.CaseSensitive)

	tests := map[string]struct {
		config       Config
		expectedErrs []string
	}{
		"valid config": {
			config: Config{Prefix: "/subdir", Provider: provider},
		},
		"valid config with empty prefix": {
			config: Config{Provider: provider},
		},
		"nil provider fails fast": {
			config:       Config{Prefix: "/subdir"},
			expectedErrs: []string{"storage provider must not be nil"},
		},
		"prefix without leading slash": {
			config:       Config{Prefix: "subdir", Provider: provider},
			expectedErrs: []string{"prefix must be empty or start with /"},
		},
		"prefix with trailing slash": {
			config:       Config{Prefix: "/subdir/", Provider: provider},
			expectedErrs: []string{"prefix must be empty or start with /"},
		},
		"all problems reported together": {
			config: Config{Prefix: "subdir/"},
			expectedErrs: []string{
				"storage provider must not be nil",
				"prefix must be empty or start with /",
			},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			m, err := New(tc.config)

			if len(tc.expectedErrs) == 0 {
				require.NoError(t, err)
				require.NotNil(t, m)
				return
			}

			require.Error(t, err)
			require.Nil(t, m)
			for _, expected := range tc.expectedErrs {
				require.Contains(t, err.Error(), expected)
			}
		})
	}
}
