package tally

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// 余额解析优先匹配的标签（按顺序）
var preferredBalanceTags = []string{
	"CLOSINGBALANCE",
	"CLOSINGBALANCE-CREDIT",
	"CLOSINGBALANCE-DEBIT",
	"CURRBALANCE",
}

const requestTemplate = `<ENVELOPE>
  <HEADER>
    <TALLYREQUEST>Export</TALLYREQUEST>
  </HEADER>
  <BODY>
    <EXPORTDATA>
      <REQUESTDESC>
        <REPORTNAME>Ledger</REPORTNAME>
        <STATICVARIABLES>
          <SVFROMDATE>01-04-2024</SVFROMDATE>
          <SVTODATE>31-03-2025</SVTODATE>
          <LEDGERNAME>%s</LEDGERNAME>
        </STATICVARIABLES>
      </REQUESTDESC>
    </EXPORTDATA>
  </BODY>
</ENVELOPE>`

// Client Tally HTTP/XML 客户端
type Client struct {
	host       string
	httpClient *http.Client
}

// NewClient 创建 Tally 客户端
func NewClient(host string, timeout time.Duration) *Client {
	return &Client{
		host:       host,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// GetClosingBalance 查询某账本的期末余额
func (c *Client) GetClosingBalance(ctx context.Context, ledgerName string) (float64, error) {
	body := fmt.Sprintf(requestTemplate, escapeXML(ledgerName))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.host, strings.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("build tally request: %w", err)
	}
	req.Header.Set("Content-Type", "application/xml")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("could not reach tally at %s: %w", c.host, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("tally returned status code %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("read tally response: %w", err)
	}

	balance, ok := parseClosingBalance(data)
	if !ok {
		return 0, fmt.Errorf("could not find closing balance for ledger: %s", ledgerName)
	}
	return balance, nil
}

// parseClosingBalance 从 Tally 响应中解析余额
// 先按已知标签优先匹配，再回退到任意含 BALANCE 的标签
func parseClosingBalance(data []byte) (float64, bool) {
	preferred := make(map[string]float64)
	var fallback *float64

	decoder := xml.NewDecoder(bytes.NewReader(data))
	var current string
	for {
		tok, err := decoder.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			current = strings.ToUpper(t.Name.Local)
		case xml.CharData:
			if current == "" {
				continue
			}
			val, err := parseBalanceText(string(t))
			if err != nil {
				continue
			}
			if isPreferredTag(current) {
				if _, ok := preferred[current]; !ok {
					preferred[current] = val
				}
			} else if strings.Contains(current, "BALANCE") && fallback == nil {
				v := val
				fallback = &v
			}
			current = ""
		case xml.EndElement:
			current = ""
		}
	}

	for _, tag := range preferredBalanceTags {
		if val, ok := preferred[tag]; ok {
			return val, true
		}
	}
	if fallback != nil {
		return *fallback, true
	}
	return 0, false
}

// parseBalanceText 解析余额文本，去掉千分位和货币前缀
func parseBalanceText(text string) (float64, error) {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.ReplaceAll(cleaned, "Rs.", "")
	cleaned = strings.ReplaceAll(cleaned, "₹", "")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return 0, fmt.Errorf("empty balance text")
	}
	return strconv.ParseFloat(cleaned, 64)
}

func isPreferredTag(tag string) bool {
	for _, t := range preferredBalanceTags {
		if tag == t {
			return true
		}
	}
	return false
}

// escapeXML 转义账本名中的 XML 特殊字符
func escapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
