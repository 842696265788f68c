package request

import (
	"sort"
	"strings"
)

// AssetSelection is a set of asset identifiers.
type AssetSelection struct {
	ids map[string]struct{}
}

func NewAssetSelection(ids ...string) AssetSelection {
	s := AssetSelection{ids: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		s.add(id)
	}
	return s
}

func (s *AssetSelection) add(id string) {
	id = strings.TrimSpace(id)
	if id == "" {
		return
	}
	if s.ids == nil {
		s.ids = make(map[string]struct{})
	}
	s.ids[id] = struct{}{}
}

// Toggle adds id when absent and removes it when present.
func (s AssetSelection) Toggle(id string) AssetSelection {
	next := s.Clone()
	if next.Contains(id) {
		delete(next.ids, id)
		return next
	}
	next.add(id)
	return next
}

func (s AssetSelection) Contains(id string) bool {
	_, ok := s.ids[id]
	return ok
}

func (s AssetSelection) Len() int {
	return len(s.ids)
}

func (s AssetSelection) IsEmpty() bool {
	return len(s.ids) == 0
}

// IDs returns the selection in sorted order.
func (s AssetSelection) IDs() []string {
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func (s AssetSelection) Clone() AssetSelection {
	return NewAssetSelection(s.IDs()...)
}
