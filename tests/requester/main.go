package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
)

// Гонка применений одного купона: заказы создаются заранее, затем
// все применения стартуют одновременно. Успешных должно быть не больше лимита.
func main() {
	var (
		baseURL = flag.String("url", "http://localhost:8080", "service address")
		code    = flag.String("code", "SAVE10", "coupon code")
		workers = flag.Int("n", 50, "concurrent applications")
	)
	flag.Parse()

	orders := make([]order, 0, *workers)
	for i := range *workers {
		o, err := createOrder(*baseURL, fmt.Sprintf("user-%d", i))
		if err != nil {
			fmt.Println("Ошибка создания заказа:", err)
			return
		}
		orders = append(orders, o)
	}

	var (
		wg      sync.WaitGroup
		applied atomic.Int64
		start   = make(chan struct{})
	)
	for _, o := range orders {
		wg.Go(func() {
			<-start
			status, body := applyCoupon(*baseURL, o, *code)
			if status == http.StatusOK {
				applied.Add(1)
			}
			fmt.Println("POST coupon", o.ID, "->", status, body)
		})
	}
	close(start)
	wg.Wait()

	fmt.Printf("применено %d из %d\n", applied.Load(), len(orders))
}

type order struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
}

func createOrder(baseURL, userID string) (order, error) {
	payload, _ := json.Marshal(map[string]string{
		"user_id":       userID,
		"seller_id":     "seller-1",
		"subtotal":      "500000",
		"tax":           "0",
		"shipping_cost": "30000",
	})
	resp, err := http.Post(baseURL+"/orders/", "application/json", bytes.NewReader(payload))
	if err != nil {
		return order{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		return order{}, fmt.Errorf("unexpected status %s", resp.Status)
	}

	var o order
	if err := json.NewDecoder(resp.Body).Decode(&o); err != nil {
		return order{}, err
	}
	return o, nil
}

func applyCoupon(baseURL string, o order, code string) (int, string) {
	payload, _ := json.Marshal(map[string]string{"user_id": o.UserID, "code": code})
	resp, err := http.Post(baseURL+"/orders/"+o.ID+"/coupon", "application/json", bytes.NewReader(payload))
	if err != nil {
		return 0, err.Error()
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(bytes.TrimSpace(body))
}
