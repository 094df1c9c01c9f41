// internal/formula/scanner.go
package formula

import (
	"regexp"

	"github.com/solatis/condformula/internal/types"
)

/*
 * Condition id scanning.
 *
 * DigitScanner reproduces the historical behaviour: every maximal digit run in
 * the formula text is an id, including digits outside braces. Formulas built
 * by Generate or by ReplaceLetterIDs only carry digits inside {...}, so both
 * scanners agree on them.
 *
 * BraceScanner only accepts {digits} tokens and is selected by the strict_ids
 * configuration option.
 */

var (
	digitRun = regexp.MustCompile(`\d+`)
	bracedID   = regexp.MustCompile(`\{(\d+)\}`)
)

// IDScanner extracts condition id references from formula text.
// ScanIDs returns every occurrence in order, duplicates included.
type IDScanner interface {
	ScanIDs(formula string) []types.ConditionID
}

// DigitScanner treats every maximal digit run as a condition id.
type DigitScanner struct{}

// ScanIDs implements IDScanner.
func (DigitScanner) ScanIDs(formula string) []types.ConditionID {
	matches := digitRun.FindAllString(formula, -1)
	ids := make([]types.ConditionID, len(matches))
	for i, m := range matches {
		ids[i] = types.ConditionID(m)
	}
	return ids
}

// BraceScanner only treats digits enclosed in braces as condition ids.
type BraceScanner struct{}

// ScanIDs implements IDScanner.
func (BraceScanner) ScanIDs(formula string) []types.ConditionID {
	matches := bracedID.FindAllStringSubmatch(formula, -1)
	ids := make([]types.ConditionID, len(matches))
	for i, m := range matches {
		ids[i] = types.ConditionID(m[1])
	}
	return ids
}
