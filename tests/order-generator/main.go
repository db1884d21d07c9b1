package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/segmentio/kafka-go"
)

type createOrder struct {
	Customer   string  `json:"customer"`
	Product    string  `json:"product"`
	Quantity   int     `json:"quantity"`
	TotalValue float64 `json:"totalValue"`
}

type order struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

var products = []string{"book", "laptop", "headphones", "keyboard", "monitor"}

func randomString(n int) string {
	letters := []rune("abcdefghijklmnopqrstuvwxyz")
	b := make([]rune, n)
	for i := range b {
		b[i] = letters[rand.Intn(len(letters))]
	}
	return string(b)
}

func generateRandomOrder() createOrder {
	quantity := rand.Intn(5) + 1
	price := float64(rand.Intn(10000)+100) / 100
	return createOrder{
		Customer:   "customer_" + randomString(5),
		Product:    products[rand.Intn(len(products))],
		Quantity:   quantity,
		TotalValue: float64(int(price*float64(quantity)*100)) / 100,
	}
}

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "order pipeline API address")
	interval := flag.Duration("interval", 2*time.Second, "pause between new orders")
	timeout := flag.Duration("timeout", 30*time.Second, "how long to wait for an order to complete")
	brokers := flag.String("brokers", "localhost:9092", "kafka brokers for -malformed")
	topic := flag.String("topic", "orders", "kafka topic for -malformed")
	malformed := flag.Bool("malformed", false, "also send a malformed message every tick")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	client := &http.Client{Timeout: 5 * time.Second}

	var writer *kafka.Writer
	if *malformed {
		writer = &kafka.Writer{Addr: kafka.TCP(strings.Split(*brokers, ",")...), Topic: *topic}
		defer writer.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	var wg sync.WaitGroup
	defer wg.Wait()

	ticker := time.NewTicker(*interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			created, err := create(ctx, client, *baseURL, generateRandomOrder())
			if err != nil {
				logger.Error("failed to create order", slog.Any("error", err))
				continue
			}
			logger.Info("order created", slog.String("id", created.ID))

			wg.Go(func() {
				start := time.Now()
				if err := waitCompleted(ctx, client, *baseURL, created.ID, *timeout); err != nil {
					logger.Error("order not completed", slog.String("id", created.ID), slog.Any("error", err))
					return
				}
				logger.Info("order completed", slog.String("id", created.ID), slog.Duration("took", time.Since(start)))
			})

			if writer != nil {
				msg := kafka.Message{Value: []byte("{not json"), Headers: []kafka.Header{{Key: "MessageType", Value: []byte("OrderCreated")}}}
				if err := writer.WriteMessages(ctx, msg); err != nil {
					logger.Error("failed to send malformed message", slog.Any("error", err))
				}
			}
		case <-ctx.Done():
			return
		}
	}
}

func create(ctx context.Context, client *http.Client, baseURL string, o createOrder) (order, error) {
	body, err := json.Marshal(o)
	if err != nil {
		return order{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return order{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return order{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return order{}, fmt.Errorf("unexpected status %s", resp.Status)
	}

	var created order
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return order{}, err
	}
	return created, nil
}

func waitCompleted(ctx context.Context, client *http.Client, baseURL, id string, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			status, err := getStatus(ctx, client, baseURL, id)
			if err != nil {
				return err
			}
			if status == "Completed" {
				return nil
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func getStatus(ctx context.Context, client *http.Client, baseURL, id string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/orders/"+id, nil)
	if err != nil {
		return "", err
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %s", resp.Status)
	}

	var o order
	if err := json.NewDecoder(resp.Body).Decode(&o); err != nil {
		return "", err
	}
	return o.Status, nil
}
