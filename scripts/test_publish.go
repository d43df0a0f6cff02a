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

type TripPlan struct {
	TripID          string       `json:"trip_id"`
	Departure       time.Time    `json:"departure"`
	DepartureWindow [2]time.Time `json:"departure_window"`
	CreatedAt       time.Time    `json:"created_at"`
}

func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address for streams")
	flag.Parse()

	client := redis.NewClient(&redis.Options{
		Addr: *redisAddr,
	})
	defer client.Close()

	ctx := context.Background()

	// Проверка подключения
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	// Тестовый план (Delhi -> Jaipur)
	departure := time.Now().Add(2 * time.Hour).UTC().Truncate(time.Minute)
	plan := TripPlan{
		TripID:          "trip_" + uuid.New().String(),
		Departure:       departure,
		DepartureWindow: [2]time.Time{departure.Add(-15 * time.Minute), departure.Add(15 * time.Minute)},
		CreatedAt:       time.Now().UTC(),
	}

	data, err := json.Marshal(plan)
	if err != nil {
		log.Fatalf("Failed to marshal plan: %v", err)
	}

	// Публикация в стрим
	result, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: "trips:planned",
		Values: map[string]interface{}{
			"data": string(data),
		},
	}).Result()
	if err != nil {
		log.Fatalf("Failed to publish plan: %v", err)
	}

	fmt.Printf("✅ Plan published successfully!\n")
	fmt.Printf("   Stream: trips:planned\n")
	fmt.Printf("   Message ID: %s\n", result)
	fmt.Printf("   Trip ID: %s\n", plan.TripID)
	fmt.Printf("   Departure: %s\n", plan.Departure.Format(time.RFC3339))
	fmt.Printf("\nRun cmd/worker to archive it into Postgres.\n")
}
