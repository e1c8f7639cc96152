package valutatrade

import "testing"

func TestMoneyString(t *testing.T) {
	testCases := []struct {
		value    string
		currency string
		want     string
	}{
		{value: "406.6279", currency: "USD", want: "$406.63"},
		{value: "1000", currency: "USD", want: "$1,000.00"},
		{value: "1.0786", currency: "EUR", want: "€1.08"},
		{value: "0.01", currency: "BTC", want: "0.01000000 BTC"},
		{value: "3011.25", currency: "ETH", want: "3011.25000000 ETH"},
	}
	for _, tc := range testCases {
		t.Run(tc.currency+" "+tc.value, func(t *testing.T) {
			got := M(mustDecimal(t, tc.value), tc.currency).String()
			if got != tc.want {
				t.Errorf("String() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestMoneyDoesNotMutateValue(t *testing.T) {
	v := mustDecimal(t, "406.6279")
	m := M(v, "USD")
	_ = m.String()
	if !m.Decimal().Equal(v) {
		t.Errorf("Decimal() = %s after String(), want %s", m.Decimal(), v)
	}
}
