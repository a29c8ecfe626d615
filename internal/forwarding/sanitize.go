package forwarding

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/fastybox/forwarding/internal/repository"
)

// sanitizeItem shapes user input before it touches storage: strings are
// trimmed and length-capped, numeric fields clamped to >= 0. The clamp
// lives here, not in the database.
func sanitizeItem(in ItemInput) (*repository.ForwardItem, error) {
	name := trimCap(in.Name, maxNameLen)
	if name == "" {
		return nil, fmt.Errorf("%w: item name is required", ErrValidation)
	}

	return &repository.ForwardItem{
		Name:           name,
		URL:            optionalString(in.URL, maxURLLen),
		Vendor:         optionalString(in.Vendor, maxVendorLen),
		DeclaredWeight: clampNonNegative(in.DeclaredWeight),
		DeclaredLength: clampNonNegative(in.DeclaredLength),
		DeclaredWidth:  clampNonNegative(in.DeclaredWidth),
		DeclaredHeight: clampNonNegative(in.DeclaredHeight),
		DeclaredValue:  decimal.Max(decimal.Zero, in.DeclaredValue),
		Notes:          optionalString(in.Notes, maxNotesLen),
	}, nil
}

// trimCap caps the byte length without splitting a multi-byte rune, so
// the stored value stays valid UTF-8.
func trimCap(s string, max int) string {
	s = strings.TrimSpace(s)
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

func optionalString(s string, max int) *string {
	s = trimCap(s, max)
	if s == "" {
		return nil
	}
	return &s
}

func clampNonNegative(d *decimal.Decimal) *decimal.Decimal {
	if d == nil {
		return nil
	}
	if d.IsNegative() {
		zero := decimal.Zero
		return &zero
	}
	v := *d
	return &v
}
