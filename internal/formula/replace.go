// internal/formula/replace.go
package formula

import (
	"fmt"
	"sort"
	"strings"

	"github.com/solatis/condformula/internal/types"
)

/*
 * Substitution between numeric ids and aliases.
 *
 * Numeric -> alias: every literal "{id}" becomes the bare alias. Matching the
 * whole braced token keeps id 1 from matching inside {12}.
 *
 * Alias -> numeric: the formula is parsed and rebuilt in a single forward pass,
 * copying the text between constants and emitting "{id}" for each constant.
 * Offsets come from the original text, so no replacement can shift another.
 */

// ReplaceNumericIDs replaces every {id} in formula with the alias mapped to id.
// Ids absent from idToAlias are left untouched.
func ReplaceNumericIDs(formula string, idToAlias map[types.ConditionID]types.Alias) string {
	if len(idToAlias) == 0 {
		return formula
	}

	// Sorted pairs keep the replacer construction deterministic.
	ids := make([]string, 0, len(idToAlias))
	for id := range idToAlias {
		ids = append(ids, string(id))
	}
	sort.Strings(ids)

	pairs := make([]string, 0, 2*len(ids))
	for _, id := range ids {
		pairs = append(pairs, "{"+id+"}", string(idToAlias[types.ConditionID(id)]))
	}
	return strings.NewReplacer(pairs...).Replace(formula)
}

// ReplaceLetterIDs replaces every alias in formula with {id} from aliasToID.
// Returns ErrInvalidFormula if the formula does not parse and ErrUnknownAlias
// if it references an alias missing from aliasToID.
func ReplaceLetterIDs(formula string, aliasToID map[types.Alias]types.ConditionID) (string, error) {
	parsed, err := Parse(formula)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.Grow(len(formula) + 4*len(parsed.Constants))

	last := 0
	for _, tok := range parsed.Constants {
		id, ok := aliasToID[tok.Value]
		if !ok {
			return "", fmt.Errorf("%w: %q at position %d", types.ErrUnknownAlias, tok.Value, tok.Pos)
		}
		b.WriteString(formula[last:tok.Pos])
		b.WriteString(atom(id))
		last = tok.Pos + tok.Length
	}
	b.WriteString(formula[last:])

	return b.String(), nil
}
