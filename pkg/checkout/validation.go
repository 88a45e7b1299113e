package checkout

import (
	"strings"
	"unicode"

	pkgerrors "github.com/angelmondragon/glowshop-backend/pkg/errors"
)

// LineQuantityInput describes one cart line about to be ordered.
type LineQuantityInput struct {
	ProductID   string
	ProductName string
	Quantity    int
}

// LineViolationDetail is returned to callers when a line cannot be ordered.
type LineViolationDetail struct {
	ProductID    string `json:"product_id"`
	ProductName  string `json:"product_name,omitempty"`
	RequestedQty int    `json:"requested_qty"`
}

// ValidateLineQuantities rejects lines whose quantity is below one. The cart engine stores
// set-quantity values unclamped, so confirmation checks them again.
func ValidateLineQuantities(items []LineQuantityInput) error {
	var violations []LineViolationDetail
	for _, item := range items {
		if item.Quantity >= 1 {
			continue
		}
		violations = append(violations, LineViolationDetail{
			ProductID:    item.ProductID,
			ProductName:  item.ProductName,
			RequestedQty: item.Quantity,
		})
	}
	if len(violations) == 0 {
		return nil
	}
	return pkgerrors.Newf(pkgerrors.CodeStateConflict, "invalid quantity for %d item(s)", len(violations)).WithDetails(map[string]any{
		"violations": violations,
	})
}

// NormalizeCardNumber strips spaces and dashes.
func NormalizeCardNumber(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r == ' ' || r == '-' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// CardLast4 returns the last four digits of a normalized card number, or "" when the
// number is too short or contains non-digits.
func CardLast4(number string) string {
	number = NormalizeCardNumber(number)
	if len(number) < 4 {
		return ""
	}
	for _, r := range number {
		if !unicode.IsDigit(r) {
			return ""
		}
	}
	return number[len(number)-4:]
}

// ValidExpiry accepts MM/YY with a month between 01 and 12. The date is not compared
// against the clock; payment is simulated.
func ValidExpiry(value string) bool {
	value = strings.TrimSpace(value)
	if len(value) != 5 || value[2] != '/' {
		return false
	}
	for _, i := range []int{0, 1, 3, 4} {
		if value[i] < '0' || value[i] > '9' {
			return false
		}
	}
	month := int(value[0]-'0')*10 + int(value[1]-'0')
	return month >= 1 && month <= 12
}
