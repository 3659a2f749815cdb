package consumer

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"time"

	"github.com/segmentio/kafka-go"

	"onboarding-service/models"
	"onboarding-service/utils"
)

type ClientEvent struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// ClientConsumer projects client lifecycle events into the Redis cache and
// the Elasticsearch search index. The database is written by the producers;
// this consumer only maintains the derived views.
type ClientConsumer struct {
	cache    utils.RedisClient
	es       utils.ElasticsearchClient
	reader   *kafka.Reader
	shutdown chan struct{}
}

func NewClientConsumer(cache utils.RedisClient, es utils.ElasticsearchClient) *ClientConsumer {
	return &ClientConsumer{
		cache: cache,
		es:    es,
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers: []string{os.Getenv("KAFKA_BROKER")},
			Topic:   utils.ClientEventsTopic,
			GroupID: "onboarding-group",
			MaxWait: 10 * time.Second,
		}),
		shutdown: make(chan struct{}),
	}
}

func (c *ClientConsumer) Start(ctx context.Context) {
	for {
		select {
		case <-c.shutdown:
			return
		case <-ctx.Done():
			return
		default:
			c.processMessage(ctx)
		}
	}
}

func (c *ClientConsumer) Stop() {
	close(c.shutdown)
	if err := c.reader.Close(); err != nil {
		log.Printf("Error closing Kafka reader: %v", err)
	}
}

func (c *ClientConsumer) processMessage(ctx context.Context) {
	msg, err := c.reader.ReadMessage(ctx)
	if err != nil {
		if err == context.Canceled {
			return
		}
		log.Printf("Kafka read error: %v (will retry)", err)
		time.Sleep(5 * time.Second)
		return
	}

	var event ClientEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		log.Printf("Failed to unmarshal Kafka message: %v", err)
		return
	}

	switch event.Event {
	case "client_registered", "client_updated":
		c.handleClientUpserted(ctx, event.Data)
	case "client_deleted":
		c.handleClientDeleted(ctx, event.Data)
	default:
		log.Printf("Unknown event type: %s", event.Event)
	}
}

func (c *ClientConsumer) handleClientUpserted(ctx context.Context, data json.RawMessage) {
	var client models.User
	if err := json.Unmarshal(data, &client); err != nil {
		log.Printf("Failed to unmarshal client payload: %v", err)
		return
	}
	if client.Email == "" {
		log.Printf("Client event without email, skipping")
		return
	}

	if c.cache != nil {
		if err := c.cache.SetToCache(ctx, utils.ClientCacheKey(client.Email), string(data), 24*time.Hour); err != nil {
			log.Printf("Failed to cache client %s: %v", client.Email, err)
		}
	}

	if c.es != nil {
		if err := c.es.IndexClient(ctx, utils.ClientsIndex, client.Email, client); err != nil {
			log.Printf("Failed to index client %s in Elasticsearch: %v", client.Email, err)
		}
	}

	log.Printf("Processed client event for %s", client.Email)
}

func (c *ClientConsumer) handleClientDeleted(ctx context.Context, data json.RawMessage) {
	var payload struct {
		Email string `json:"email"`
	}
	if err := json.Unmarshal(data, &payload); err != nil || payload.Email == "" {
		log.Printf("Failed to unmarshal client_deleted payload: %v", err)
		return
	}

	if c.cache != nil {
		if err := c.cache.DeleteFromCache(ctx, utils.ClientCacheKey(payload.Email)); err != nil {
			log.Printf("Failed to drop client %s from cache: %v", payload.Email, err)
		}
	}

	if c.es != nil {
		if err := c.es.DeleteClient(ctx, utils.ClientsIndex, payload.Email); err != nil {
			log.Printf("Failed to delete client %s from Elasticsearch: %v", payload.Email, err)
		}
	}

	log.Printf("Processed client_deleted event for %s", payload.Email)
}
