// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package labels

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{"plain", "space", "space", true},
		{"single separator", "a;b", "ab", true},
		{"every separator", ";a;;b;", "ab", true},
		{"only separators", ";;;", "", false},
		{"empty", "", "", false},
		{"whitespace", "   \t", "", false},
		{"whitespace and separators", " ; ", "", false},
		{"inner spaces kept", "my topic", "my topic", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Sanitize(tc.input)
			if got != tc.want || ok != tc.wantOK {
				t.Errorf("Sanitize(%q) = (%q, %v), want (%q, %v)", tc.input, got, ok, tc.want, tc.wantOK)
			}
		})
	}
}

func TestStore_AddNeverStoresSeparator(t *testing.T) {
	var s Store
	inputs := []string{"a;b", ";x", "y;", "p;q;r", "ok"}
	for _, in := range inputs {
		s.AddDataset(in)
		s.AddCustom(in)
	}

	for _, l := range s.All() {
		assert.NotContains(t, l, Separator)
		assert.NotEmpty(t, strings.TrimSpace(l))
	}
	assert.Equal(t, []string{"ab", "x", "y", "pqr", "ok"}, s.Dataset())
	assert.Equal(t, s.Dataset(), s.Custom())
}

func TestStore_AddBlankIsNoop(t *testing.T) {
	var s Store
	require.True(t, s.AddDataset("space"))

	before := s.Dataset()
	assert.False(t, s.AddDataset("   "))
	assert.False(t, s.AddDataset(";"))
	assert.False(t, s.AddCustom(""))
	assert.Equal(t, before, s.Dataset())
	assert.Empty(t, s.Custom())
}

func TestStore_DuplicatesAllowed(t *testing.T) {
	var s Store
	s.AddDataset("space")
	s.AddDataset("space")
	assert.Equal(t, []string{"space", "space"}, s.Dataset())
}

func TestStore_RemovePreservesOrder(t *testing.T) {
	var s Store
	for _, l := range []string{"a", "b", "c", "d"} {
		s.AddDataset(l)
	}

	require.NoError(t, s.RemoveDataset(1))
	assert.Equal(t, []string{"a", "c", "d"}, s.Dataset())

	require.NoError(t, s.RemoveDataset(2))
	assert.Equal(t, []string{"a", "c"}, s.Dataset())

	require.NoError(t, s.RemoveDataset(0))
	assert.Equal(t, []string{"c"}, s.Dataset())
}

func TestStore_RemoveOutOfRange(t *testing.T) {
	var s Store
	s.AddCustom("x")

	for _, idx := range []int{-1, 1, 5} {
		err := s.RemoveCustom(idx)
		var ie *IndexError
		require.True(t, errors.As(err, &ie), "index %d", idx)
		assert.Equal(t, KindCustom, ie.Kind)
		assert.Equal(t, idx, ie.Index)
		assert.Equal(t, 1, ie.Len)
	}
	assert.Equal(t, []string{"x"}, s.Custom())

	err := s.RemoveDataset(0)
	assert.EqualError(t, err, "dataset label index 0 out of range [0,0)")
}

func TestStore_RemoveDoesNotAliasSnapshots(t *testing.T) {
	var s Store
	s.AddDataset("a")
	s.AddDataset("b")
	s.AddDataset("c")
	snap := s.Dataset()

	require.NoError(t, s.RemoveDataset(0))
	assert.Equal(t, []string{"a", "b", "c"}, snap)
}

func TestStore_JoinedOrder(t *testing.T) {
	var s Store
	s.AddCustom("mine")
	s.AddDataset("space")
	s.AddDataset("sport")
	s.AddCustom("deep;sea")

	assert.Equal(t, []string{"space", "sport", "mine", "deepsea"}, s.All())
	assert.Equal(t, "space;sport;mine;deepsea", s.Joined())
	assert.Equal(t, 4, s.Len())

	// The wire form splits back to exactly the stored labels.
	assert.Equal(t, s.All(), strings.Split(s.Joined(), Separator))
}

func TestStore_KindDispatch(t *testing.T) {
	var s Store
	assert.True(t, s.Add(KindCustom, "c"))
	assert.True(t, s.Add(KindDataset, "d"))
	assert.Equal(t, []string{"c"}, s.List(KindCustom))
	assert.Equal(t, []string{"d"}, s.List(KindDataset))

	require.NoError(t, s.Remove(KindCustom, 0))
	assert.Empty(t, s.List(KindCustom))
	assert.Error(t, s.Remove(KindCustom, 0))
}
