package domain

import (
	"fmt"
	"strings"
)

// Karat is the gold purity grade of a sale
type Karat string

const (
	Karat18 Karat = "18"
	Karat21 Karat = "21"
)

// ParseKarat accepts "18" or "21" (surrounding spaces ignored)
func ParseKarat(s string) (Karat, error) {
	switch Karat(strings.TrimSpace(s)) {
	case Karat18:
		return Karat18, nil
	case Karat21:
		return Karat21, nil
	}
	return "", fmt.Errorf("%w: karat must be 18 or 21", ErrValidation)
}

// CollectionType says whether a collection was received in gold or cash
type CollectionType string

const (
	CollectionGold CollectionType = "gold"
	CollectionCash CollectionType = "cash"
)

// ParseCollectionType accepts the canonical values and the Arabic labels used on the shop floor
func ParseCollectionType(s string) (CollectionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "gold", "ذهب":
		return CollectionGold, nil
	case "cash", "نقدي":
		return CollectionCash, nil
	}
	return "", fmt.Errorf("%w: collection type must be gold or cash", ErrValidation)
}

// PaymentMethod is how a cash collection was paid
type PaymentMethod string

const (
	PaymentCash         PaymentMethod = "cash"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
	PaymentCheque       PaymentMethod = "cheque"
)

// ParsePaymentMethod accepts the canonical values and their Arabic labels
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cash", "نقدي":
		return PaymentCash, nil
	case "bank_transfer", "تحويل بنكي":
		return PaymentBankTransfer, nil
	case "cheque", "check", "شيك":
		return PaymentCheque, nil
	}
	return "", fmt.Errorf("%w: unknown payment method %q", ErrValidation, s)
}
