// internal/formula/alias.go
package formula

import (
	"fmt"
	"sort"

	"github.com/solatis/condformula/internal/types"
)

/*
 * Alias allocation and ordering.
 *
 * Aliases use bijective base-26 numbering, the same scheme spreadsheets use
 * for column names: A..Z, AA..AZ, BA..ZZ, AAA... There is no zero digit, so
 * "A" is 0 at width 1 and "AA" is 26.
 *
 * Ordering: shorter aliases sort first, equal widths compare lexicographically.
 * Within one width lexicographic order equals numeric order, so CompareAliases
 * orders aliases exactly by their allocation index.
 *
 * Allocation order: ids receive aliases in order of first appearance in the
 * formula. Repeated references keep the alias of the first one.
 */

const alphabetSize = 26

// AliasFromIndex converts a zero-based index to its alias (0=A, 25=Z, 26=AA).
// Panics on negative index; indexes come from slice positions.
func AliasFromIndex(i int) types.Alias {
	if i < 0 {
		panic(fmt.Sprintf("formula: negative alias index %d", i))
	}

	var buf [16]byte
	pos := len(buf)
	for n := i + 1; n > 0; n = (n - 1) / alphabetSize {
		pos--
		buf[pos] = byte('A' + (n-1)%alphabetSize)
	}
	return types.Alias(buf[pos:])
}

// CompareAliases returns -1, 0 or 1 using alias ordering.
// Shorter aliases are less than longer ones regardless of content.
func CompareAliases(a, b types.Alias) int {
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// NextAlias returns the alias following the greatest of existing.
// Empty input yields "A". Returns ErrInvalidAlias if any alias is malformed.
func NextAlias(existing []types.Alias) (types.Alias, error) {
	if len(existing) == 0 {
		return "A", nil
	}

	greatest := existing[0]
	for _, alias := range existing {
		if !types.IsAlias(string(alias)) {
			return "", fmt.Errorf("%w: %q", types.ErrInvalidAlias, alias)
		}
		if CompareAliases(alias, greatest) > 0 {
			greatest = alias
		}
	}

	return incrementAlias(greatest), nil
}

// incrementAlias adds one to a bijective base-26 alias.
// Iterates from the last letter carrying over Z; a carry past the first letter
// widens the alias (ZZ -> AAA).
func incrementAlias(alias types.Alias) types.Alias {
	digits := []byte(alias)

	carry := true
	for i := len(digits) - 1; i >= 0 && carry; i-- {
		if digits[i] == 'Z' {
			digits[i] = 'A'
			continue
		}
		digits[i]++
		carry = false
	}

	if carry {
		digits = append([]byte{'A'}, digits...)
	}
	return types.Alias(digits)
}

// SortAliases orders aliases in place using CompareAliases.
func SortAliases(aliases []types.Alias) {
	sort.SliceStable(aliases, func(i, j int) bool {
		return CompareAliases(aliases[i], aliases[j]) < 0
	})
}

// AliasMap is an ordered bijection between condition ids and aliases.
// Order follows allocation: the first id holds "A", the second "B", and so on.
type AliasMap struct {
	ids     []types.ConditionID
	aliases map[types.ConditionID]types.Alias
	byAlias map[types.Alias]types.ConditionID
}

// NewAliasMap allocates aliases for distinct ids in the order given.
// Duplicate ids keep the alias of their first occurrence.
func NewAliasMap(ids []types.ConditionID) AliasMap {
	m := AliasMap{
		aliases: make(map[types.ConditionID]types.Alias, len(ids)),
		byAlias: make(map[types.Alias]types.ConditionID, len(ids)),
	}
	for _, id := range ids {
		if _, seen := m.aliases[id]; seen {
			continue
		}
		alias := AliasFromIndex(len(m.ids))
		m.ids = append(m.ids, id)
		m.aliases[id] = alias
		m.byAlias[alias] = id
	}
	return m
}

// Len returns the number of mapped ids.
func (m AliasMap) Len() int {
	return len(m.ids)
}

// Alias returns the alias of id.
func (m AliasMap) Alias(id types.ConditionID) (types.Alias, bool) {
	alias, ok := m.aliases[id]
	return alias, ok
}

// ID returns the condition id behind alias.
func (m AliasMap) ID(alias types.Alias) (types.ConditionID, bool) {
	id, ok := m.byAlias[alias]
	return id, ok
}

// IDs returns the mapped ids in allocation order.
func (m AliasMap) IDs() []types.ConditionID {
	return append([]types.ConditionID(nil), m.ids...)
}

// Aliases returns the allocated aliases in allocation order.
func (m AliasMap) Aliases() []types.Alias {
	out := make([]types.Alias, len(m.ids))
	for i, id := range m.ids {
		out[i] = m.aliases[id]
	}
	return out
}

// IDToAlias returns a copy of the id -> alias direction.
func (m AliasMap) IDToAlias() map[types.ConditionID]types.Alias {
	out := make(map[types.ConditionID]types.Alias, len(m.aliases))
	for id, alias := range m.aliases {
		out[id] = alias
	}
	return out
}

// AliasToID returns a copy of the alias -> id direction.
func (m AliasMap) AliasToID() map[types.Alias]types.ConditionID {
	out := make(map[types.Alias]types.ConditionID, len(m.byAlias))
	for alias, id := range m.byAlias {
		out[alias] = id
	}
	return out
}
