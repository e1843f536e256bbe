package ident

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonotonic(t *testing.T) {
	t.Parallel()
	a := NewMonotonic()
	assert.Equal(t, "M_100", a.Next(ManifestPrefix, ""))
	assert.Equal(t, "O_101", a.Next(OrganizationPrefix, ""))
	assert.Equal(t, "I_102_R", a.Next(ItemPrefix, ResourceSuffix))
	assert.Equal(t, "103", a.Next("", ""))

	a.Reset()
	assert.Equal(t, "I_100", a.Next(ItemPrefix, ""))
}

func TestRandom_Format(t *testing.T) {
	t.Parallel()
	re := regexp.MustCompile(`^I_[0-9A-F]{20}$`)
	a := NewRandom()
	seen := map[string]bool{}
	for i := 0; i < 1000; i++ {
		id := a.Next(ItemPrefix, "")
		assert.Regexp(t, re, id)
		assert.False(t, seen[id], "duplicate %s", id)
		seen[id] = true
	}
}

func TestNew(t *testing.T) {
	t.Parallel()
	a, err := New(StrategyCounter)
	require.NoError(t, err)
	assert.IsType(t, &Monotonic{}, a)

	a, err = New(StrategyRandom)
	require.NoError(t, err)
	assert.IsType(t, &Random{}, a)

	_, err = New("uuid")
	assert.Error(t, err)
}

func TestParseStrategy(t *testing.T) {
	t.Parallel()
	cases := []struct {
		in   string
		want Strategy
		err  bool
	}{
		{"", StrategyCounter, false},
		{"counter", StrategyCounter, false},
		{" RANDOM ", StrategyRandom, false},
		{"uuid", "", true},
	}
	for _, tc := range cases {
		got, err := ParseStrategy(tc.in)
		if tc.err {
			assert.Error(t, err, tc.in)
			continue
		}
		assert.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestResourceAndFolder(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "I_102_R", Resource("I_102"))
	assert.Equal(t, "102", Folder("I_102", ItemPrefix))
	assert.Equal(t, "0a1b2c", Folder("I_0A1B2C", ItemPrefix))
	assert.Equal(t, "I_102_R", Folder("I_102_R", "X_"), "чужой префикс не срезается, регистр понижается")
}

func TestToken(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "102", Token("I_102_R", ItemPrefix, ResourceSuffix))
	assert.Equal(t, "102", Token("I_102", ItemPrefix, ""))
	assert.Equal(t, "100", Token("M_100", ManifestPrefix, ""))
	assert.Equal(t, "0A1B2C", Token("I_0A1B2C_R", ItemPrefix, ResourceSuffix))

	alloc := NewMonotonic()
	id := alloc.Next(ItemPrefix, ResourceSuffix)
	assert.Equal(t, "100", Token(id, ItemPrefix, ResourceSuffix))
}
