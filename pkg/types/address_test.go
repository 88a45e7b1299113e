package types

import "testing"

func TestAddressNormalize(t *testing.T) {
	got := Address{Street: "  Calle 1 ", City: "Madrid", PostalCode: " 28001"}.Normalize("España")
	want := Address{Street: "Calle 1", City: "Madrid", PostalCode: "28001", Country: "España"}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}

	kept := Address{Country: "Colombia"}.Normalize("España")
	if kept.Country != "Colombia" {
		t.Fatalf("explicit country should win, got %q", kept.Country)
	}
}
