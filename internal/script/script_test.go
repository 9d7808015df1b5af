package script

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Valid(t *testing.T) {
	s, err := Load("testdata/two_laps.yaml")
	require.NoError(t, err)

	assert.Equal(t, "two_laps", s.Name)
	require.Len(t, s.Steps, 7)
	assert.Equal(t, "start", s.Steps[0].Do)
	assert.Equal(t, 100, s.Steps[1].Tick)

	exp := s.Steps[4].Expect
	require.NotNil(t, exp)
	require.NotNil(t, exp.Display)
	assert.Equal(t, "00:01.50", *exp.Display)
	assert.Equal(t, []int{2}, exp.Fastest)
	assert.Nil(t, exp.State, "absent fields stay unchecked")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, IsLoadError(err))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantErr string
	}{
		{
			name:    "missing name",
			src:     "steps:\n  - do: start\n",
			wantErr: "schema violation",
		},
		{
			name:    "no steps",
			src:     "name: empty\nsteps: []\n",
			wantErr: "schema violation",
		},
		{
			name:    "unknown action",
			src:     "name: bad\nsteps:\n  - do: stop\n",
			wantErr: "schema violation",
		},
		{
			name:    "zero ticks",
			src:     "name: bad\nsteps:\n  - tick: 0\n",
			wantErr: "schema violation",
		},
		{
			name:    "do and tick together",
			src:     "name: bad\nsteps:\n  - do: start\n    tick: 3\n",
			wantErr: "mutually exclusive",
		},
		{
			name:    "typo in expect",
			src:     "name: bad\nsteps:\n  - do: start\n    expect:\n      dispaly: \"00:00.00\"\n",
			wantErr: "schema violation",
		},
		{
			name:    "malformed display",
			src:     "name: bad\nsteps:\n  - do: start\n    expect:\n      display: \"0:00.0\"\n",
			wantErr: "schema violation",
		},
		{
			name:    "unknown state",
			src:     "name: bad\nsteps:\n  - do: start\n    expect:\n      state: paused\n",
			wantErr: "schema violation",
		},
		{
			name:    "empty step",
			src:     "name: bad\nsteps:\n  - {}\n",
			wantErr: "empty step",
		},
		{
			name:    "not yaml",
			src:     "name: [unclosed\n",
			wantErr: "failed to parse YAML",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("inline.yaml", []byte(tt.src))
			require.Error(t, err)
			assert.True(t, IsLoadError(err), "got %T", err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Contains(t, err.Error(), "inline.yaml")
		})
	}
}

func TestParse_ExpectOnlyStep(t *testing.T) {
	s, err := Parse("inline.yaml", []byte("name: check\nsteps:\n  - expect:\n      display: \"00:00.00\"\n"))
	require.NoError(t, err)
	require.Len(t, s.Steps, 1)
	assert.Empty(t, s.Steps[0].Do)
	assert.Zero(t, s.Steps[0].Tick)
}

func TestValidate_AllFixtures(t *testing.T) {
	paths, err := filepath.Glob("testdata/*.yaml")
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			data, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.NoError(t, Validate(filepath.Base(path), data))
		})
	}
}
