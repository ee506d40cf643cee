package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/QuincyForbes/thread-chat-backend/internal/config"
	"github.com/QuincyForbes/thread-chat-backend/internal/store/rabbitmq"
	"github.com/QuincyForbes/thread-chat-backend/internal/store/redisstore"
)

// The stats worker consumes message-posted events and maintains per-thread
// and per-user message counters in Redis.
func main() {
	cfg := config.Load()

	if cfg.RedisAddr == "" {
		log.Fatal("REDIS_ADDR is required for the stats worker")
	}
	if cfg.RabbitURL == "" {
		log.Fatal("RABBIT_URL is required for the stats worker")
	}

	rds := redisstore.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	defer rds.Close()

	conn, err := amqp.Dial(cfg.RabbitURL)
	if err != nil {
		log.Fatalf("rabbit dial: %v", err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatalf("rabbit channel: %v", err)
	}
	defer ch.Close()

	if _, err := ch.QueueDeclare(cfg.RabbitQueue, true, false, false, false, nil); err != nil {
		log.Fatalf("queue declare: %v", err)
	}

	concurrency := cfg.WorkerConcurrency
	if concurrency <= 0 {
		concurrency = 2
	}
	if concurrency > 50 {
		concurrency = 50
	}

	if err := ch.Qos(concurrency, 0, false); err != nil {
		log.Fatalf("qos: %v", err)
	}

	msgs, err := ch.Consume(cfg.RabbitQueue, "", false, false, false, false, nil)
	if err != nil {
		log.Fatalf("consume: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("stats worker started, queue=%s concurrency=%d", cfg.RabbitQueue, concurrency)

	jobs := make(chan amqp.Delivery, concurrency*2)

	var wg sync.WaitGroup
	wg.Add(concurrency)
	for i := 0; i < concurrency; i++ {
		go func(workerID int) {
			defer wg.Done()
			for d := range jobs {
				var ev rabbitmq.MessagePostedEvent
				if err := json.Unmarshal(d.Body, &ev); err != nil || ev.ThreadID == 0 {
					log.Printf("worker=%d bad event: %v", workerID, err)
					_ = d.Nack(false, false)
					continue
				}

				// Each event carries one user message and one system reply.
				if err := rds.IncrMessageCounts(ctx, ev.ThreadID, ev.UserID, 2); err != nil {
					log.Printf("worker=%d event %s failed: %v", workerID, ev.EventID, err)
					_ = d.Nack(false, false)
					continue
				}

				if err := d.Ack(false); err != nil {
					log.Printf("worker=%d ack failed event=%s err=%v", workerID, ev.EventID, err)
				}
			}
		}(i)
	}

	for {
		select {
		case <-ctx.Done():
			log.Printf("stats worker shutting down")
			close(jobs)
			wg.Wait()
			return

		case d, ok := <-msgs:
			if !ok {
				log.Printf("delivery channel closed")
				time.Sleep(1 * time.Second)
				continue
			}
			jobs <- d
		}
	}
}
