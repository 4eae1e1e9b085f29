package readers

import "testing"

func TestUnitConversions(t *testing.T) {
	if got := FahrenheitToCelsius(32); got != 0 {
		t.Errorf("FahrenheitToCelsius(32) = %v, want 0", got)
	}
	if got := FahrenheitToCelsius(212); got != 100 {
		t.Errorf("FahrenheitToCelsius(212) = %v, want 100", got)
	}
	if got := MphToKph(1); got != 1.6093 {
		t.Errorf("MphToKph(1) = %v, want 1.6093", got)
	}
	if got := InchesToMillimeters(1); got != 25.4 {
		t.Errorf("InchesToMillimeters(1) = %v, want 25.4", got)
	}
	if got := PsiToHectopascals(1); got != 33.8639 {
		t.Errorf("PsiToHectopascals(1) = %v, want 33.8639", got)
	}
}
