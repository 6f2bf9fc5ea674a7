// Package gateway реализует протокол платежного шлюза VNPay:
// подпись запросов и проверку callback'ов.
package gateway

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"net/url"
	"sort"
	"strings"
)

const (
	ParamSecureHash     = "vnp_SecureHash"
	ParamSecureHashType = "vnp_SecureHashType"
)

// Canonical собирает строку для подписи: имена по возрастанию (побайтово),
// пары name=value через &, пустые значения пропускаются, без экранирования.
func Canonical(params map[string]string) string {
	keys := sortedKeys(params)
	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+params[k])
	}
	return strings.Join(pairs, "&")
}

// Sign возвращает hex(HMAC-SHA512(secret, canonical)) в нижнем регистре.
func Sign(params map[string]string, secret string) string {
	return sign(Canonical(params), secret)
}

// BuildSignedQuery возвращает каноническую строку и url-encoded query
// с подписью в vnp_SecureHash.
func BuildSignedQuery(params map[string]string, secret string) (canonical string, query string) {
	canonical = Canonical(params)

	keys := sortedKeys(params)
	var b strings.Builder
	for _, k := range keys {
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(k))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(params[k]))
	}
	if b.Len() > 0 {
		b.WriteByte('&')
	}
	b.WriteString(ParamSecureHash)
	b.WriteByte('=')
	b.WriteString(sign(canonical, secret))

	return canonical, b.String()
}

// Verify пересчитывает подпись по всем полям, кроме полей подписи,
// и сравнивает ее с vnp_SecureHash за постоянное время.
// Любой отсутствующий или испорченный хеш - false.
func Verify(params map[string]string, secret string) bool {
	got, ok := params[ParamSecureHash]
	if !ok || got == "" {
		return false
	}
	gotBytes, err := hex.DecodeString(strings.ToLower(got))
	if err != nil || len(gotBytes) != sha512.Size {
		return false
	}

	unsigned := make(map[string]string, len(params))
	for k, v := range params {
		if k == ParamSecureHash || k == ParamSecureHashType {
			continue
		}
		unsigned[k] = v
	}

	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write([]byte(Canonical(unsigned)))
	return hmac.Equal(mac.Sum(nil), gotBytes)
}

func sign(canonical, secret string) string {
	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write([]byte(canonical))
	return hex.EncodeToString(mac.Sum(nil))
}

func sortedKeys(params map[string]string) []string {
	keys := make([]string, 0, len(params))
	for k, v := range params {
		if v == "" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
