package etproduct

import "testing"

func TestCategorize(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"", CategoryEco},
		{"Redmi Smart TV X43", CategoryTV},
		{"Xiaomi Pad 6", CategoryPad},
		{"Galaxy Tablet S9", CategoryPad},
		{"Redmi Note 13 Pro", CategoryPhones},
		{"POCO X6 5G", CategoryPhones},
		{"Mobile Charger 33W", CategoryPhones},
		{"Smart Band 8", CategoryEco},
		{"Trimmer 2C", CategoryEco},
	}

	for _, tc := range cases {
		if got := Categorize(tc.name); got != tc.want {
			t.Errorf("Categorize(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
}
