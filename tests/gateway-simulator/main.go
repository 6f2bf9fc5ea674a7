package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"time"

	"github.com/SergeyBogomolovv/marketplace-core/internal/gateway"
	"github.com/shopspring/decimal"
)

// Имитирует возврат покупателя со страницы оплаты: подписывает
// параметры ответа шлюза и дергает callback сервиса.
func main() {
	var (
		baseURL = flag.String("url", "http://localhost:8080/payments/vnpay/callback", "callback endpoint")
		secret  = flag.String("secret", "SECRETKEY123", "merchant hash secret")
		tmnCode = flag.String("tmn", "DEMO0001", "merchant code")
		txnRef  = flag.String("txn", "", "payment transaction id")
		amount  = flag.String("amount", "", "payment amount")
		code    = flag.String("code", gateway.ResponseCodeSuccess, "gateway response code")
		tamper  = flag.Bool("tamper", false, "break the signature")
	)
	flag.Parse()

	if *txnRef == "" || *amount == "" {
		log.Fatal("txn and amount are required")
	}
	value, err := decimal.NewFromString(*amount)
	if err != nil {
		log.Fatalf("invalid amount: %v", err)
	}

	params := map[string]string{
		gateway.ParamTmnCode:       *tmnCode,
		gateway.ParamTxnRef:        *txnRef,
		gateway.ParamAmount:        gateway.MinorUnits(value),
		gateway.ParamResponseCode:  *code,
		gateway.ParamTransactionNo: fmt.Sprintf("%08d", rand.Intn(100000000)),
		gateway.ParamOrderInfo:     "Thanh toan " + *txnRef,
		"vnp_PayDate":              time.Now().Format(gateway.TimeLayout),
	}
	_, query := gateway.BuildSignedQuery(params, *secret)
	if *tamper {
		query += "0"
	}

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get(*baseURL + "?" + query)
	if err != nil {
		log.Fatalf("callback failed: %v", err)
	}
	defer resp.Body.Close()

	log.Println("callback", *txnRef, "->", resp.Status)
}
