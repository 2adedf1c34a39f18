//go:build ignore
// +build ignore

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const toastStream = "stream:notifications:toast"

type notification struct {
	Level     string            `json:"level"`
	Message   string            `json:"message"`
	SessionID string            `json:"session_id,omitempty"`
	Details   map[string]string `json:"details,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address")
	publish := flag.Bool("publish", false, "publish a test toast before tailing")
	duration := flag.Duration("for", 60*time.Second, "how long to tail the stream")
	flag.Parse()

	client := redis.NewClient(&redis.Options{
		Addr: *redisAddr,
	})
	defer client.Close()

	ctx := context.Background()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	// Новые сообщения читаем начиная с текущего конца стрима
	lastID := "$"

	if *publish {
		n := notification{
			Level:     "error",
			Message:   "Unable to load accessibility data",
			SessionID: uuid.NewString(),
			Details:   map[string]string{"bounds": "40.700000,-74.000000,40.710000,-73.990000"},
			CreatedAt: time.Now().UTC(),
		}
		data, err := json.Marshal(n)
		if err != nil {
			log.Fatalf("Failed to marshal notification: %v", err)
		}

		id, err := client.XAdd(ctx, &redis.XAddArgs{
			Stream: toastStream,
			Values: map[string]interface{}{
				"level": n.Level,
				"data":  string(data),
			},
		}).Result()
		if err != nil {
			log.Fatalf("Failed to publish notification: %v", err)
		}
		fmt.Printf("Published test toast %s (session %s)\n", id, n.SessionID)
		lastID = "0"
	}

	fmt.Printf("Tailing %s for %s...\n", toastStream, *duration)

	deadline := time.Now().Add(*duration)
	for time.Now().Before(deadline) {
		results, err := client.XRead(ctx, &redis.XReadArgs{
			Streams: []string{toastStream, lastID},
			Count:   10,
			Block:   time.Second,
		}).Result()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			log.Fatalf("Failed to read stream: %v", err)
		}

		for _, stream := range results {
			for _, msg := range stream.Messages {
				lastID = msg.ID

				raw, ok := msg.Values["data"].(string)
				if !ok {
					continue
				}
				var n notification
				if err := json.Unmarshal([]byte(raw), &n); err != nil {
					fmt.Printf("%s: malformed payload: %v\n", msg.ID, err)
					continue
				}
				fmt.Printf("%s [%s] %s session=%s details=%v\n",
					msg.ID, n.Level, n.Message, n.SessionID, n.Details)
			}
		}
	}
}
