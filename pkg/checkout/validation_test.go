package checkout

import (
	"testing"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/angelmondragon/glowshop-backend/pkg/errors"
)

func TestValidateLineQuantities_NoViolations(t *testing.T) {
	items := []LineQuantityInput{
		{ProductID: "1", ProductName: "Sérum", Quantity: 1},
		{ProductID: "2", ProductName: "Tónico", Quantity: 4},
	}
	if err := ValidateLineQuantities(items); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestValidateLineQuantities_Violations(t *testing.T) {
	items := []LineQuantityInput{
		{ProductID: "1", ProductName: "Sérum", Quantity: 2},
		{ProductID: "2", ProductName: "Tónico", Quantity: 0},
		{ProductID: "3", ProductName: "Crema", Quantity: -1},
	}
	err := ValidateLineQuantities(items)
	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected pkgerrors.Error, got %T", err)
	}
	if typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected code %s, got %s", pkgerrors.CodeStateConflict, typed.Code())
	}
	details, ok := typed.Details().(map[string]any)
	if !ok {
		t.Fatalf("expected details map, got %T", typed.Details())
	}
	violations, ok := details["violations"].([]LineViolationDetail)
	if !ok {
		t.Fatalf("expected violations slice, got %T", details["violations"])
	}
	if len(violations) != 2 || violations[0].ProductID != "2" || violations[1].RequestedQty != -1 {
		t.Fatalf("unexpected violations %+v", violations)
	}
}

func TestCardLast4(t *testing.T) {
	cases := map[string]string{
		"4111 1111 1111 1234": "1234",
		"4111-1111-1111-9876": "9876",
		"123":                 "",
		"4111 1111 abcd 1234": "",
	}
	for in, want := range cases {
		if got := CardLast4(in); got != want {
			t.Fatalf("CardLast4(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestValidExpiry(t *testing.T) {
	valid := []string{"01/27", "12/30", " 06/29 "}
	invalid := []string{"13/27", "00/27", "1/27", "01-27", "ab/cd", ""}
	for _, v := range valid {
		if !ValidExpiry(v) {
			t.Fatalf("expected %q to be valid", v)
		}
	}
	for _, v := range invalid {
		if ValidExpiry(v) {
			t.Fatalf("expected %q to be invalid", v)
		}
	}
}

func TestShippingPolicyQuote(t *testing.T) {
	policy := ShippingPolicy{FreeThreshold: decimal.NewFromInt(200000), Fee: decimal.NewFromInt(15000)}

	below := policy.Quote(decimal.NewFromInt(150000))
	if below.FreeShipping || !below.Shipping.Equal(decimal.NewFromInt(15000)) || !below.Total.Equal(decimal.NewFromInt(165000)) {
		t.Fatalf("unexpected quote below threshold %+v", below)
	}
	if !below.FreeShippingRemaining.Equal(decimal.NewFromInt(50001)) {
		t.Fatalf("unexpected remaining %s", below.FreeShippingRemaining)
	}

	atThreshold := policy.Quote(decimal.NewFromInt(200000))
	if atThreshold.FreeShipping {
		t.Fatal("threshold itself must still pay shipping")
	}

	above := policy.Quote(decimal.NewFromInt(200001))
	if !above.FreeShipping || !above.Shipping.IsZero() || !above.Total.Equal(decimal.NewFromInt(200001)) {
		t.Fatalf("unexpected quote above threshold %+v", above)
	}
}
