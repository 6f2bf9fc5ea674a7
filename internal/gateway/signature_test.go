package gateway_test

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/SergeyBogomolovv/marketplace-core/internal/gateway"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "SECRETKEY123"

func sampleParams() map[string]string {
	return map[string]string{
		"vnp_Version":   "2.1.0",
		"vnp_Command":   "pay",
		"vnp_TmnCode":   "DEMO0001",
		"vnp_Amount":    "50000000",
		"vnp_CurrCode":  "VND",
		"vnp_TxnRef":    "2026101912000012345678",
		"vnp_OrderInfo": "Thanh toan don hang 42",
		"vnp_Locale":    "vn",
		"vnp_ReturnUrl": "https://shop.example/return?x=1",
		"vnp_IpAddr":    "127.0.0.1",
		"vnp_BankCode":  "",
	}
}

func flatten(t *testing.T, query string) map[string]string {
	t.Helper()
	values, err := url.ParseQuery(query)
	require.NoError(t, err)
	out := make(map[string]string, len(values))
	for k, v := range values {
		out[k] = v[0]
	}
	return out
}

func TestCanonical(t *testing.T) {
	params := map[string]string{"b": "2", "a": "1", "c": "", "B": "x y"}
	assert.Equal(t, "B=x y&a=1&b=2", gateway.Canonical(params))
}

func TestBuildSignedQuery(t *testing.T) {
	params := sampleParams()
	canonical, query := gateway.BuildSignedQuery(params, secret)

	assert.True(t, strings.HasPrefix(canonical, "vnp_Amount=50000000&vnp_Command=pay"))
	assert.NotContains(t, canonical, "vnp_BankCode")
	assert.Contains(t, canonical, "vnp_OrderInfo=Thanh toan don hang 42")

	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write([]byte(canonical))
	want := hex.EncodeToString(mac.Sum(nil))

	assert.True(t, strings.HasSuffix(query, "&vnp_SecureHash="+want))
	assert.Contains(t, query, "vnp_OrderInfo=Thanh+toan+don+hang+42")
	assert.Contains(t, query, "vnp_ReturnUrl=https%3A%2F%2Fshop.example%2Freturn%3Fx%3D1")
	assert.Equal(t, want, gateway.Sign(params, secret))
}

func TestVerify_RoundTrip(t *testing.T) {
	_, query := gateway.BuildSignedQuery(sampleParams(), secret)
	params := flatten(t, query)

	assert.True(t, gateway.Verify(params, secret))
	assert.False(t, gateway.Verify(params, "other-secret"))

	params[gateway.ParamSecureHashType] = "HmacSHA512"
	assert.True(t, gateway.Verify(params, secret), "hash type field is not signed")
}

func TestVerify_SingleCharacterMutation(t *testing.T) {
	_, query := gateway.BuildSignedQuery(sampleParams(), secret)
	signed := flatten(t, query)

	for key, value := range signed {
		if key == gateway.ParamSecureHash {
			continue
		}
		for i := range value {
			mutated := make(map[string]string, len(signed))
			for k, v := range signed {
				mutated[k] = v
			}
			b := []byte(value)
			b[i] ^= 0x01
			mutated[key] = string(b)

			assert.False(t, gateway.Verify(mutated, secret), "mutation of %s at %d", key, i)
		}
	}
}

func TestVerify_Malformed(t *testing.T) {
	_, query := gateway.BuildSignedQuery(sampleParams(), secret)
	valid := flatten(t, query)

	testCases := []struct {
		name   string
		mutate func(p map[string]string)
	}{
		{name: "missing hash", mutate: func(p map[string]string) { delete(p, gateway.ParamSecureHash) }},
		{name: "empty hash", mutate: func(p map[string]string) { p[gateway.ParamSecureHash] = "" }},
		{name: "not hex", mutate: func(p map[string]string) { p[gateway.ParamSecureHash] = "zz" + p[gateway.ParamSecureHash][2:] }},
		{name: "truncated", mutate: func(p map[string]string) { p[gateway.ParamSecureHash] = p[gateway.ParamSecureHash][:64] }},
		{name: "extra field", mutate: func(p map[string]string) { p["vnp_Extra"] = "1" }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			params := make(map[string]string, len(valid))
			for k, v := range valid {
				params[k] = v
			}
			tc.mutate(params)
			assert.False(t, gateway.Verify(params, secret))
		})
	}

	assert.False(t, gateway.Verify(nil, secret))
}

func TestVerify_UppercaseHash(t *testing.T) {
	_, query := gateway.BuildSignedQuery(sampleParams(), secret)
	params := flatten(t, query)
	params[gateway.ParamSecureHash] = strings.ToUpper(params[gateway.ParamSecureHash])
	assert.True(t, gateway.Verify(params, secret))
}

func TestVNPay_PaymentURL(t *testing.T) {
	loc := time.FixedZone("ICT", 7*3600)
	client := gateway.NewVNPay(gateway.Config{
		TmnCode:    "DEMO0001",
		HashSecret: secret,
		PayURL:     "https://sandbox.vnpayment.vn/paymentv2/vpcpay.html",
		Version:    "2.1.0",
		Command:    "pay",
		Locale:     "vn",
		OrderType:  "other",
		Location:   loc,
	})

	created := time.Date(2026, 10, 19, 5, 0, 0, 0, time.UTC)
	paymentURL := client.PaymentURL(gateway.PaymentRequest{
		TxnRef:    "TX1",
		Amount:    decimal.RequireFromString("500000.559"),
		Currency:  "VND",
		OrderInfo: "order o-1",
		ReturnURL: "https://shop.example/return",
		ClientIP:  "10.0.0.1",
		CreatedAt: created,
		ExpiresAt: created.Add(15 * time.Minute),
	})

	u, err := url.Parse(paymentURL)
	require.NoError(t, err)
	assert.Equal(t, "sandbox.vnpayment.vn", u.Host)

	params := flatten(t, u.RawQuery)
	assert.Equal(t, "50000055", params[gateway.ParamAmount])
	assert.Equal(t, "20261019120000", params[gateway.ParamCreateDate])
	assert.Equal(t, "20261019121500", params[gateway.ParamExpireDate])
	assert.Equal(t, "other", params[gateway.ParamOrderType])
	assert.True(t, client.Verify(params))
}

func TestMinorUnits(t *testing.T) {
	assert.Equal(t, "50000000", gateway.MinorUnits(decimal.NewFromInt(500000)))
	assert.Equal(t, "1999", gateway.MinorUnits(decimal.RequireFromString("19.999")))
	assert.Equal(t, "0", gateway.MinorUnits(decimal.Zero))
}

func TestParseCallback(t *testing.T) {
	values := url.Values{
		gateway.ParamTxnRef:        {"TX1"},
		gateway.ParamResponseCode:  {"00"},
		gateway.ParamTransactionNo: {"14000001"},
		gateway.ParamAmount:        {"50000000"},
	}
	cb := gateway.ParseCallback(values)
	assert.Equal(t, "TX1", cb.TxnRef)
	assert.True(t, cb.Success())
	assert.Equal(t, "14000001", cb.TransactionNo)

	values.Set(gateway.ParamResponseCode, "24")
	assert.False(t, gateway.ParseCallback(values).Success())
}
