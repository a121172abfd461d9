// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package labels

import (
	"fmt"
	"strings"
)

// Separator is the character labels are joined with on the wire.
const Separator = ";"

// Kind identifies one of the two label collections.
type Kind int

const (
	KindDataset Kind = iota
	KindCustom
)

func (k Kind) String() string {
	if k == KindCustom {
		return "custom"
	}
	return "dataset"
}

// IndexError is returned by a remove whose index is outside the collection.
type IndexError struct {
	Kind  Kind
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%s label index %d out of range [0,%d)", e.Kind, e.Index, e.Len)
}

// =============================================================================
// STORE
// =============================================================================

// Store holds dataset and custom labels in insertion order.
// The zero value is ready to use. Store is not safe for concurrent use;
// the session controller serialises access.
type Store struct {
	dataset []string
	custom  []string
}

// Sanitize strips every separator from value. The second result is false
// when nothing but whitespace remains.
func Sanitize(value string) (string, bool) {
	clean := strings.ReplaceAll(value, Separator, "")
	if strings.TrimSpace(clean) == "" {
		return "", false
	}
	return clean, true
}

// AddDataset appends a dataset label. It reports whether a label was stored.
func (s *Store) AddDataset(value string) bool {
	return s.add(&s.dataset, value)
}

// AddCustom appends a custom label. It reports whether a label was stored.
func (s *Store) AddCustom(value string) bool {
	return s.add(&s.custom, value)
}

// Add appends value to the collection named by kind.
func (s *Store) Add(kind Kind, value string) bool {
	if kind == KindCustom {
		return s.AddCustom(value)
	}
	return s.AddDataset(value)
}

func (s *Store) add(list *[]string, value string) bool {
	clean, ok := Sanitize(value)
	if !ok {
		return false
	}
	*list = append(*list, clean)
	return true
}

// RemoveDataset deletes the dataset label at index, keeping the order of the rest.
func (s *Store) RemoveDataset(index int) error {
	return s.remove(KindDataset, &s.dataset, index)
}

// RemoveCustom deletes the custom label at index, keeping the order of the rest.
func (s *Store) RemoveCustom(index int) error {
	return s.remove(KindCustom, &s.custom, index)
}

// Remove deletes the label at index from the collection named by kind.
func (s *Store) Remove(kind Kind, index int) error {
	if kind == KindCustom {
		return s.RemoveCustom(index)
	}
	return s.RemoveDataset(index)
}

func (s *Store) remove(kind Kind, list *[]string, index int) error {
	if index < 0 || index >= len(*list) {
		return &IndexError{Kind: kind, Index: index, Len: len(*list)}
	}
	l := *list
	*list = append(l[:index:index], l[index+1:]...)
	return nil
}

// =============================================================================
// SNAPSHOTS
// =============================================================================

// Dataset returns a copy of the dataset labels.
func (s *Store) Dataset() []string {
	return append([]string(nil), s.dataset...)
}

// Custom returns a copy of the custom labels.
func (s *Store) Custom() []string {
	return append([]string(nil), s.custom...)
}

// List returns a copy of the collection named by kind.
func (s *Store) List(kind Kind) []string {
	if kind == KindCustom {
		return s.Custom()
	}
	return s.Dataset()
}

// All returns dataset labels followed by custom labels.
func (s *Store) All() []string {
	out := make([]string, 0, len(s.dataset)+len(s.custom))
	out = append(out, s.dataset...)
	return append(out, s.custom...)
}

// Len returns the total number of labels.
func (s *Store) Len() int {
	return len(s.dataset) + len(s.custom)
}

// Joined returns All joined with Separator, the form sent to the service.
func (s *Store) Joined() string {
	return strings.Join(s.All(), Separator)
}
