package tally

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestParseClosingBalancePreferredTag(t *testing.T) {
	data := []byte(`<ENVELOPE><BODY><LEDGER><CLOSINGBALANCE>1,23,456.78</CLOSINGBALANCE></LEDGER></BODY></ENVELOPE>`)

	balance, ok := parseClosingBalance(data)
	if !ok {
		t.Fatal("expected balance to be found")
	}
	if balance != 123456.78 {
		t.Errorf("balance = %v, want 123456.78", balance)
	}
}

func TestParseClosingBalanceCurrencyPrefix(t *testing.T) {
	data := []byte(`<ENVELOPE><CURRBALANCE>Rs. 50,000</CURRBALANCE></ENVELOPE>`)

	balance, ok := parseClosingBalance(data)
	if !ok {
		t.Fatal("expected balance to be found")
	}
	if balance != 50000 {
		t.Errorf("balance = %v, want 50000", balance)
	}
}

func TestParseClosingBalancePrefersKnownTags(t *testing.T) {
	// OPENINGBALANCE 在前，但 CLOSINGBALANCE 优先
	data := []byte(`<ENVELOPE><OPENINGBALANCE>111</OPENINGBALANCE><CLOSINGBALANCE>222</CLOSINGBALANCE></ENVELOPE>`)

	balance, ok := parseClosingBalance(data)
	if !ok {
		t.Fatal("expected balance to be found")
	}
	if balance != 222 {
		t.Errorf("balance = %v, want 222", balance)
	}
}

func TestParseClosingBalanceFallbackTag(t *testing.T) {
	data := []byte(`<ENVELOPE><OPENINGBALANCE>-4,500.25</OPENINGBALANCE></ENVELOPE>`)

	balance, ok := parseClosingBalance(data)
	if !ok {
		t.Fatal("expected fallback balance to be found")
	}
	if balance != -4500.25 {
		t.Errorf("balance = %v, want -4500.25", balance)
	}
}

func TestParseClosingBalanceNotFound(t *testing.T) {
	data := []byte(`<ENVELOPE><NAME>Some Ledger</NAME></ENVELOPE>`)

	if _, ok := parseClosingBalance(data); ok {
		t.Error("expected no balance in response without balance tags")
	}
}

func TestParseClosingBalanceSkipsUnparsable(t *testing.T) {
	data := []byte(`<ENVELOPE><CLOSINGBALANCE>N/A</CLOSINGBALANCE><CURRBALANCE>900</CURRBALANCE></ENVELOPE>`)

	balance, ok := parseClosingBalance(data)
	if !ok {
		t.Fatal("expected balance to be found")
	}
	if balance != 900 {
		t.Errorf("balance = %v, want 900", balance)
	}
}

func TestGetClosingBalance(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/xml" {
			t.Errorf("content type = %s, want application/xml", ct)
		}
		w.Write([]byte(`<ENVELOPE><CLOSINGBALANCE>75,000.00</CLOSINGBALANCE></ENVELOPE>`))
	}))
	defer srv.Close()

	cli := NewClient(srv.URL, 5*time.Second)
	balance, err := cli.GetClosingBalance(context.Background(), "RET-001 Sharma Mobiles")
	if err != nil {
		t.Fatalf("GetClosingBalance: %v", err)
	}
	if balance != 75000 {
		t.Errorf("balance = %v, want 75000", balance)
	}
}

func TestGetClosingBalanceServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	cli := NewClient(srv.URL, 5*time.Second)
	if _, err := cli.GetClosingBalance(context.Background(), "RET-001"); err == nil {
		t.Error("expected error on non-200 status")
	}
}
