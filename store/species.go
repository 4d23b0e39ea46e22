package store

import (
	"math/big"
)

var speciesCountKey = Slot("species.count")

// SetSpecies stores the raw settings words of a species. The first write of
// an id appends it to the species index.
func (s *Store) SetSpecies(id uint32, a, b *big.Int) {
	known := Slot("species.known", u32(id))
	if !s.flag(known) {
		n := s.getUint64(speciesCountKey)
		s.setUint64(Slot("species.at", u64(n)), uint64(id))
		s.setUint64(speciesCountKey, n+1)
		s.setFlag(known, true)
	}
	s.setBig(Slot("species.a", u32(id)), a)
	s.setBig(Slot("species.b", u32(id)), b)
}

// Species returns the raw settings words of a species and whether it was
// ever configured.
func (s *Store) Species(id uint32) (a, b *big.Int, ok bool) {
	if !s.flag(Slot("species.known", u32(id))) {
		return new(big.Int), new(big.Int), false
	}
	return s.getBig(Slot("species.a", u32(id))), s.getBig(Slot("species.b", u32(id))), true
}

// SpeciesIDs lists configured species in first-configured order.
func (s *Store) SpeciesIDs() []uint32 {
	n := s.getUint64(speciesCountKey)
	ids := make([]uint32, 0, n)
	for i := uint64(0); i < n; i++ {
		ids = append(ids, uint32(s.getUint64(Slot("species.at", u64(i)))))
	}
	return ids
}
