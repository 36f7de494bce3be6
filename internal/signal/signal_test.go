package signal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lfpsync/internal/errors"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		input   string
		want    Role
		wantErr bool
	}{
		{"lfp", RoleLFP, false},
		{"external", RoleExternal, false},
		{"bipolar", RoleExternal, false},
		{"", RoleUnknown, true},
		{"ecg", RoleUnknown, true},
	}

	for _, tt := range tests {
		t.Run("input_"+tt.input, func(t *testing.T) {
			got, err := ParseRole(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsValidation(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRoleString(t *testing.T) {
	assert.Equal(t, "lfp", RoleLFP.String())
	assert.Equal(t, "external", RoleExternal.String())
	assert.Equal(t, "unknown", RoleUnknown.String())
}

func TestSignalTime(t *testing.T) {
	sig := New(make([]float64, 1000), 250, RoleLFP)

	assert.InDelta(t, 4.0, sig.Duration(), 1e-12)
	assert.InDelta(t, 3.0, sig.Time(750), 1e-12)
	assert.Equal(t, 1000, sig.Len())
}

func TestSignalValidate(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		sig := New(make([]float64, 100), 250, RoleLFP)
		assert.NoError(t, sig.Validate(100))
	})

	t.Run("too_short", func(t *testing.T) {
		sig := New(make([]float64, 99), 250, RoleLFP)
		err := sig.Validate(100)
		require.Error(t, err)
		assert.True(t, errors.IsValidation(err))
	})

	t.Run("bad_rate", func(t *testing.T) {
		sig := New(make([]float64, 100), 0, RoleLFP)
		err := sig.Validate(1)
		require.Error(t, err)
		assert.True(t, errors.IsValidation(err))
	})
}
