package semver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strp(s string) *string { return &s }

func TestClassifyChange(t *testing.T) {
	tests := []struct {
		name     string
		baseline *string
		current  *string
		want     Bump
		wantOK   bool
	}{
		{"nil baseline", nil, strp("1.0.0"), NotChanged, false},
		{"nil current", strp("1.0.0"), nil, NotChanged, false},
		{"unparsable", strp("not-a-version"), strp("1.0.0"), NotChanged, false},
		{"unchanged", strp("1.2.3"), strp("1.2.3"), NotChanged, true},
		{"major bump", strp("1.2.3"), strp("2.0.0"), Major, true},
		{"minor bump", strp("1.2.3"), strp("1.3.0"), Minor, true},
		{"patch bump", strp("1.2.3"), strp("1.2.4"), Patch, true},
		{"0.y.z minor treated as major", strp("0.1.0"), strp("0.2.0"), Major, true},
		{"0.0.z patch treated as major", strp("0.0.1"), strp("0.0.2"), Major, true},
		{"0.y.z patch treated as minor", strp("0.1.0"), strp("0.1.1"), Minor, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ClassifyChange(tt.baseline, tt.current)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestSatisfied(t *testing.T) {
	assert.True(t, Satisfied(Minor, Major))
	assert.True(t, Satisfied(Minor, Minor))
	assert.False(t, Satisfied(Minor, Patch))
}

func TestParseRequiredUpdate(t *testing.T) {
	tests := []struct {
		in   string
		want Bump
		ok   bool
	}{
		{"patch", Patch, true},
		{"Minor", Minor, true},
		{"MAJOR", Major, true},
		{"unknown", Patch, false},
	}
	for _, tt := range tests {
		got, ok := ParseRequiredUpdate(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		if ok {
			assert.Equal(t, tt.want, got, tt.in)
		}
	}
}
