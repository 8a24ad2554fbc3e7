package sqlguard

import (
	"errors"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		statement string
		wantOK    bool
	}{
		{
			name:      "plain select",
			statement: "select player, points from nba_stats limit 10",
			wantOK:    true,
		},
		{
			name:      "uppercase select with leading whitespace",
			statement: "   SELECT count(*) FROM nba_stats",
			wantOK:    true,
		},
		{
			name:      "select with aggregate and group by",
			statement: "select team, avg(fpts) from nba_stats group by team order by avg(fpts) desc",
			wantOK:    true,
		},
		{
			name:      "nonsense select still accepted",
			statement: "select no_such_column from no_such_table",
			wantOK:    true,
		},
		{
			name:      "empty statement",
			statement: "",
			wantOK:    false,
		},
		{
			name:      "does not start with select",
			statement: "with t as (select 1) select * from t",
			wantOK:    false,
		},
		{
			name:      "delete rejected by prefix and denylist",
			statement: "DELETE FROM nba_news",
			wantOK:    false,
		},
		{
			name:      "piggybacked drop rejected",
			statement: "select * from nba_stats; drop table nba_stats;",
			wantOK:    false,
		},
		{
			name:      "reserved token inside string literal rejected (known false positive)",
			statement: "select * from nba_stats where player ilike '%update%'",
			wantOK:    false,
		},
		{
			name:      "mixed-case reserved token rejected",
			statement: "select 1; TrUnCaTe nba_stats",
			wantOK:    false,
		},
		{
			name:      "insert rejected",
			statement: "insert into nba_stats values (1)",
			wantOK:    false,
		},
		{
			name:      "grant rejected mid-statement",
			statement: "select * from nba_stats where note = 'grant'",
			wantOK:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.statement)
			if tt.wantOK && err != nil {
				t.Fatalf("Validate(%q) = %v, want nil", tt.statement, err)
			}
			if !tt.wantOK {
				if err == nil {
					t.Fatalf("Validate(%q) = nil, want rejection", tt.statement)
				}
				var rejected *RejectedError
				if !errors.As(err, &rejected) {
					t.Fatalf("Validate(%q) returned %T, want *RejectedError", tt.statement, err)
				}
				if rejected.Statement != tt.statement {
					t.Errorf("RejectedError.Statement = %q, want the offending statement %q",
						rejected.Statement, tt.statement)
				}
			}
		})
	}
}

func TestValidateStrict(t *testing.T) {
	tests := []struct {
		name      string
		statement string
		wantOK    bool
	}{
		{
			name:      "plain select accepted",
			statement: "select * from nba_stats",
			wantOK:    true,
		},
		{
			name:      "trailing semicolon accepted",
			statement: "select * from nba_stats;",
			wantOK:    true,
		},
		{
			name:      "line comment rejected",
			statement: "select * from nba_stats -- sneaky",
			wantOK:    false,
		},
		{
			name:      "block comment rejected",
			statement: "select /* hidden */ 1",
			wantOK:    false,
		},
		{
			name:      "interior semicolon rejected",
			statement: "select 1; select 2",
			wantOK:    false,
		},
		{
			name:      "base denylist still applies",
			statement: "select * from nba_stats where player ilike '%drop%'",
			wantOK:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStrict(tt.statement)
			if tt.wantOK && err != nil {
				t.Fatalf("ValidateStrict(%q) = %v, want nil", tt.statement, err)
			}
			if !tt.wantOK && err == nil {
				t.Fatalf("ValidateStrict(%q) = nil, want rejection", tt.statement)
			}
		})
	}
}

func TestForMode(t *testing.T) {
	commented := "select 1 -- c"
	if err := ForMode(false)(commented); err != nil {
		t.Errorf("default mode should accept %q, got %v", commented, err)
	}
	if err := ForMode(true)(commented); err == nil {
		t.Errorf("strict mode should reject %q", commented)
	}
}
