package ll

import (
	"strings"

	"github.com/emirpasic/gods/sets/treeset"
)

// SymbolSet is an ordered set of grammar symbols. FIRST- and FOLLOW-sets are
// symbol sets.
//
// Sets handed out by the analysis are snapshots of a converged fixed point
// and never change afterwards.
type SymbolSet struct {
	set *treeset.Set
}

// NewSymbolSet creates a symbol set containing syms.
func NewSymbolSet(syms ...string) *SymbolSet {
	s := &SymbolSet{set: treeset.NewWithStringComparator()}
	s.add(syms...)
	return s
}

func (s *SymbolSet) add(syms ...string) {
	for _, sym := range syms {
		s.set.Add(sym)
	}
}

// Contains checks if sym is an element of s.
func (s *SymbolSet) Contains(sym string) bool {
	if s == nil {
		return false
	}
	return s.set.Contains(sym)
}

// Size returns the number of symbols in s.
func (s *SymbolSet) Size() int {
	if s == nil {
		return 0
	}
	return s.set.Size()
}

// Empty is true for the empty set.
func (s *SymbolSet) Empty() bool {
	return s.Size() == 0
}

// Values returns the symbols of s in sorted order.
func (s *SymbolSet) Values() []string {
	if s == nil {
		return nil
	}
	vals := make([]string, 0, s.set.Size())
	it := s.set.Iterator()
	for it.Next() {
		vals = append(vals, it.Value().(string))
	}
	return vals
}

// SubsetOf is true if every symbol of s is contained in other.
func (s *SymbolSet) SubsetOf(other *SymbolSet) bool {
	for _, sym := range s.Values() {
		if !other.Contains(sym) {
			return false
		}
	}
	return true
}

// Equals is true if s and other contain the same symbols.
func (s *SymbolSet) Equals(other *SymbolSet) bool {
	return s.Size() == other.Size() && s.SubsetOf(other)
}

// union adds all symbols of other to s and reports if s has grown.
func (s *SymbolSet) union(other *SymbolSet) bool {
	n := s.set.Size()
	for _, sym := range other.Values() {
		s.set.Add(sym)
	}
	return s.set.Size() > n
}

func (s *SymbolSet) copy() *SymbolSet {
	return NewSymbolSet(s.Values()...)
}

// without returns a copy of s with sym removed.
func (s *SymbolSet) without(sym string) *SymbolSet {
	c := s.copy()
	c.set.Remove(sym)
	return c
}

// String returns a set in the form "{ a, b, c }".
func (s *SymbolSet) String() string {
	if s.Empty() {
		return "{ }"
	}
	return "{ " + strings.Join(s.Values(), ", ") + " }"
}

// --- Set tables ------------------------------------------------------------

// SymbolSets maps non-terminals to symbol sets. It is the result type of the
// FIRST- and FOLLOW-analysis.
type SymbolSets map[string]*SymbolSet

// Of returns the set for non-terminal A. For unknown symbols an empty set is
// returned.
func (ss SymbolSets) Of(A string) *SymbolSet {
	if s, ok := ss[A]; ok {
		return s
	}
	return NewSymbolSet()
}

// Equals is true if ss and other have the same keys with equal sets.
func (ss SymbolSets) Equals(other SymbolSets) bool {
	if len(ss) != len(other) {
		return false
	}
	for A, s := range ss {
		o, ok := other[A]
		if !ok || !s.Equals(o) {
			return false
		}
	}
	return true
}

func (ss SymbolSets) clone() SymbolSets {
	c := make(SymbolSets, len(ss))
	for A, s := range ss {
		c[A] = s.copy()
	}
	return c
}

func emptySets(nonterminals []string) SymbolSets {
	ss := make(SymbolSets, len(nonterminals))
	for _, A := range nonterminals {
		ss[A] = NewSymbolSet()
	}
	return ss
}
