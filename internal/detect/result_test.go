package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lfpsync/internal/errors"
)

func TestParseMethod(t *testing.T) {
	tests := []struct {
		input string
		want  Method
	}{
		{"thresh", MethodThreshold},
		{"threshold", MethodThreshold},
		{"1", MethodKernel1},
		{"kernel1", MethodKernel1},
		{"2", MethodKernel2},
		{"kernel2", MethodKernel2},
	}
	for _, tt := range tests {
		got, err := ParseMethod(tt.input)
		require.NoError(t, err, "input=%q", tt.input)
		assert.Equal(t, tt.want, got, "input=%q", tt.input)
	}

	for _, bad := range []string{"", "external", "kernel3", "0"} {
		_, err := ParseMethod(bad)
		require.Error(t, err, "input=%q", bad)
		assert.True(t, errors.IsValidation(err), "input=%q", bad)
	}
}

func TestMethodString(t *testing.T) {
	assert.Equal(t, "thresh", MethodThreshold.String())
	assert.Equal(t, "kernel1", MethodKernel1.String())
	assert.Equal(t, "kernel2", MethodKernel2.String())
	assert.Equal(t, "external", MethodExternal.String())
	assert.Equal(t, "unknown", Method(99).String())
}

func TestHasAdvisory(t *testing.T) {
	r := Result{Advisories: []Advisory{AdvisoryNoArtifact}}
	assert.True(t, r.HasAdvisory(AdvisoryNoArtifact))
	assert.False(t, Result{}.HasAdvisory(AdvisoryNoArtifact))
}
