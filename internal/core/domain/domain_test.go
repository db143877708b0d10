package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestScopeFor(t *testing.T) {
	admin := &Employee{ID: 1, Role: RoleAdmin}
	clerk := &Employee{ID: 2, Role: RoleEmployee}

	if s := ScopeFor(admin); !s.All || !s.Allows(2) || !s.Allows(99) {
		t.Errorf("admin scope = %+v, want all", s)
	}

	s := ScopeFor(clerk)
	if s.All {
		t.Fatalf("employee scope must not be global")
	}
	if !s.Allows(2) {
		t.Errorf("employee must see own records")
	}
	if s.Allows(1) {
		t.Errorf("employee must not see other employees' records")
	}
}

func TestDateRangeContainsIsInclusive(t *testing.T) {
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 1, 31, 23, 59, 59, 0, time.UTC)
	r := DateRange{From: &from, To: &to}

	tests := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"start", from, true},
		{"end", to, true},
		{"before", from.Add(-time.Millisecond), false},
		{"after", to.Add(time.Millisecond), false},
		{"inside", from.AddDate(0, 0, 10), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.at); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.at, got, tt.want)
			}
		})
	}

	if !(DateRange{}).Contains(from) {
		t.Errorf("open range must contain everything")
	}
}

func TestParseEnums(t *testing.T) {
	if k, err := ParseKarat(" 21 "); err != nil || k != Karat21 {
		t.Errorf("ParseKarat(21) = %q, %v", k, err)
	}
	if _, err := ParseKarat("24"); !errors.Is(err, ErrValidation) {
		t.Errorf("ParseKarat(24) error = %v, want ErrValidation", err)
	}

	if ct, err := ParseCollectionType("ذهب"); err != nil || ct != CollectionGold {
		t.Errorf("ParseCollectionType(ذهب) = %q, %v", ct, err)
	}
	if ct, err := ParseCollectionType("CASH"); err != nil || ct != CollectionCash {
		t.Errorf("ParseCollectionType(CASH) = %q, %v", ct, err)
	}
	if _, err := ParseCollectionType("silver"); !errors.Is(err, ErrValidation) {
		t.Errorf("ParseCollectionType(silver) error = %v", err)
	}

	if pm, err := ParsePaymentMethod("تحويل بنكي"); err != nil || pm != PaymentBankTransfer {
		t.Errorf("ParsePaymentMethod = %q, %v", pm, err)
	}
}

func TestCheckQuantity(t *testing.T) {
	tests := []struct {
		in     string
		places int32
		ok     bool
	}{
		{"1.234", WeightPlaces, true},
		{"1.2340", WeightPlaces, true},
		{"1.2345", WeightPlaces, false},
		{"100.55", PricePlaces, true},
		{"100.555", PricePlaces, false},
		{"0", AmountPlaces, false},
		{"-3", AmountPlaces, false},
		{"0.00001", AmountPlaces, true},
	}
	for _, tt := range tests {
		err := CheckQuantity("x", decimal.RequireFromString(tt.in), tt.places)
		if tt.ok && err != nil {
			t.Errorf("CheckQuantity(%s, %d) = %v", tt.in, tt.places, err)
		}
		if !tt.ok && !errors.Is(err, ErrValidation) {
			t.Errorf("CheckQuantity(%s, %d) = %v, want validation error", tt.in, tt.places, err)
		}
	}
}
