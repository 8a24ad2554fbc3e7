// Package sqlguard decides whether a candidate SQL statement is safe to hand
// to the executor. It is a pure function of the statement text: no database,
// no session state.
//
// The check is a textual heuristic, not a SQL parser. It trims and
// case-folds the statement, requires a `select` prefix, and rejects any
// statement containing a reserved token as a substring anywhere, including
// inside string literals, so a WHERE clause matching text like '%update%'
// is a known false positive. That behavior is the contract: callers that
// want the additional comment and multi-statement checks opt in via
// ValidateStrict.
package sqlguard

import (
	"fmt"
	"strings"
)

// reservedTokens are rejected as substrings of the case-folded statement.
var reservedTokens = []string{
	"drop",
	"delete",
	"insert",
	"update",
	"alter",
	"truncate",
	"create",
	"grant",
	"revoke",
}

// RejectedError reports a statement that failed the guard. The statement is
// carried verbatim so the caller can relay it back to the model.
type RejectedError struct {
	Statement string
	Reason    string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("query rejected: %s", e.Reason)
}

// Validate accepts a statement iff, after trimming and case-folding, it
// begins with `select` and contains no reserved token. A nil return means
// the statement may be executed.
func Validate(statement string) error {
	normalized := strings.ToLower(strings.TrimSpace(statement))

	if !strings.HasPrefix(normalized, "select") {
		return &RejectedError{
			Statement: statement,
			Reason:    "only SELECT statements are allowed",
		}
	}

	for _, token := range reservedTokens {
		if strings.Contains(normalized, token) {
			return &RejectedError{
				Statement: statement,
				Reason:    fmt.Sprintf("statement contains reserved token %q", token),
			}
		}
	}

	return nil
}

// ValidateStrict applies Validate and additionally rejects SQL comments and
// multi-statement batches (any semicolon before the final trailing one).
// Strict mode narrows the accepted set; everything it accepts, Validate
// accepts too.
func ValidateStrict(statement string) error {
	if err := Validate(statement); err != nil {
		return err
	}

	normalized := strings.TrimSpace(statement)

	if strings.Contains(normalized, "--") || strings.Contains(normalized, "/*") {
		return &RejectedError{
			Statement: statement,
			Reason:    "statement contains a SQL comment",
		}
	}

	if idx := strings.Index(normalized, ";"); idx != -1 && idx != len(normalized)-1 {
		return &RejectedError{
			Statement: statement,
			Reason:    "multi-statement batches are not allowed",
		}
	}

	return nil
}

// Validator is the signature shared by Validate and ValidateStrict.
type Validator func(statement string) error

// ForMode returns the validator for the given strictness.
func ForMode(strict bool) Validator {
	if strict {
		return ValidateStrict
	}
	return Validate
}
