package calculator

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestEqualSplit(t *testing.T) {
	tests := []struct {
		name         string
		amount       string
		memberIDs    []string
		wantErr      error
		wantShares   []string
		validateFunc func(t *testing.T, shares []Share)
	}{
		{
			name:       "remainder goes to last member",
			amount:     "100.00",
			memberIDs:  []string{"alice", "bob", "carol"},
			wantShares: []string{"33.33", "33.33", "33.34"},
		},
		{
			name:       "exact division leaves no remainder",
			amount:     "10.00",
			memberIDs:  []string{"a", "b", "c", "d"},
			wantShares: []string{"2.50", "2.50", "2.50", "2.50"},
		},
		{
			name:       "single member takes everything",
			amount:     "42.37",
			memberIDs:  []string{"solo"},
			wantShares: []string{"42.37"},
		},
		{
			name:       "sub-cent amount",
			amount:     "0.01",
			memberIDs:  []string{"a", "b", "c"},
			wantShares: []string{"0.00", "0.00", "0.01"},
		},
		{
			name:      "no members",
			amount:    "10.00",
			memberIDs: nil,
			wantErr:   ErrEmptyGroup,
		},
		{
			name:      "seven-way split still sums exactly",
			amount:    "50.00",
			memberIDs: []string{"a", "b", "c", "d", "e", "f", "g"},
			validateFunc: func(t *testing.T, shares []Share) {
				// 50.00 / 7 = 7.142857... -> 7.14 each, 0.02 dust on the last
				for i := 0; i < 6; i++ {
					if !shares[i].Amount.Equal(dec("7.14")) {
						t.Errorf("share %d = %s, want 7.14", i, shares[i].Amount)
					}
				}
				if !shares[6].Amount.Equal(dec("7.16")) {
					t.Errorf("last share = %s, want 7.16", shares[6].Amount)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shares, err := EqualSplit(dec(tt.amount), tt.memberIDs)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("EqualSplit() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("EqualSplit() unexpected error: %v", err)
			}

			if len(shares) != len(tt.memberIDs) {
				t.Fatalf("got %d shares, want %d", len(shares), len(tt.memberIDs))
			}
			if !SumShares(shares).Equal(dec(tt.amount)) {
				t.Errorf("shares sum to %s, want %s", SumShares(shares), tt.amount)
			}
			for i, s := range shares {
				if s.UserID != tt.memberIDs[i] {
					t.Errorf("share %d user = %s, want %s", i, s.UserID, tt.memberIDs[i])
				}
			}
			if tt.wantShares != nil {
				for i, want := range tt.wantShares {
					if !shares[i].Amount.Equal(dec(want)) {
						t.Errorf("share %d = %s, want %s", i, shares[i].Amount, want)
					}
				}
			}
			if tt.validateFunc != nil {
				tt.validateFunc(t, shares)
			}
		})
	}
}

func TestValidateExplicit(t *testing.T) {
	tests := []struct {
		name    string
		amount  string
		shares  []Share
		wantErr error
	}{
		{
			name:   "exact sum passes",
			amount: "50.00",
			shares: []Share{
				{UserID: "alice", Amount: dec("20.00")},
				{UserID: "bob", Amount: dec("30.00")},
			},
		},
		{
			name:   "missing ten is rejected",
			amount: "50.00",
			shares: []Share{
				{UserID: "alice", Amount: dec("20.00")},
				{UserID: "bob", Amount: dec("20.00")},
			},
			wantErr: ErrSplitMismatch,
		},
		{
			name:   "overshoot is rejected",
			amount: "50.00",
			shares: []Share{
				{UserID: "alice", Amount: dec("30.00")},
				{UserID: "bob", Amount: dec("20.01")},
			},
			wantErr: ErrSplitMismatch,
		},
		{
			name:    "empty split list",
			amount:  "50.00",
			shares:  nil,
			wantErr: ErrEmptyGroup,
		},
		{
			name:   "negative share",
			amount: "10.00",
			shares: []Share{
				{UserID: "alice", Amount: dec("20.00")},
				{UserID: "bob", Amount: dec("-10.00")},
			},
			wantErr: ErrNegativeShare,
		},
		{
			name:   "zero share is allowed",
			amount: "10.00",
			shares: []Share{
				{UserID: "alice", Amount: dec("10.00")},
				{UserID: "bob", Amount: dec("0.00")},
			},
		},
		{
			name:   "duplicate user",
			amount: "10.00",
			shares: []Share{
				{UserID: "alice", Amount: dec("5.00")},
				{UserID: "alice", Amount: dec("5.00")},
			},
			wantErr: ErrDuplicateSplitUser,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateExplicit(dec(tt.amount), tt.shares)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ValidateExplicit() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ValidateExplicit() unexpected error: %v", err)
			}
		})
	}
}
