package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/joho/godotenv"
	"github.com/launchblock/cerberus/adapters/events"
	"github.com/launchblock/cerberus/adapters/store"
	"github.com/launchblock/cerberus/adapters/verifier"
	"github.com/launchblock/cerberus/core"
	"github.com/launchblock/cerberus/ports"
	"github.com/launchblock/cerberus/service"
	transport "github.com/launchblock/cerberus/transport/http"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// defaultAdmins is the fallback allowlist used when ADMIN_ADDRESSES is not
// set. Deployments are expected to override it.
var defaultAdmins = []string{
	"0x94618601fe6cb8912b274e5a00453949a57f8c1e",
	"0x3f17f1962b36e491b30a40b2405849e597ba5fb5",
}

func main() {
	// Load environment variables from .env file, if present
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: failed to load .env file: %v", err)
	}

	allowlist := loadAllowlist()
	log.Printf("Loaded allowlist with %d admin address(es)", allowlist.Len())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	sessionStore, eventPub := buildBackend(ctx)

	authService := service.NewAuthService(
		allowlist,
		sessionStore,
		verifier.NewPersonalSignVerifier(),
		eventPub,
	)

	// Setup Gin router
	router := transport.SetupRouter(authService)

	port := os.Getenv("PORT")
	if port == "" {
		port = "9000"
	}

	// Start server
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func loadAllowlist() *core.Allowlist {
	csv := os.Getenv("ADMIN_ADDRESSES")
	if csv == "" {
		log.Println("ADMIN_ADDRESSES not set, using default allowlist")
		return core.NewAllowlist(defaultAdmins)
	}

	allowlist := core.ParseAllowlist(csv)
	if allowlist.Len() == 0 {
		log.Fatal("ADMIN_ADDRESSES is set but contains no addresses")
	}
	return allowlist
}

// buildBackend selects the session store from SESSION_STORE: "redis"
// (default), "mongo", or "memory". Audit events are published only for the
// Redis backend, which already provides the stream transport.
func buildBackend(ctx context.Context) (ports.SessionStore, ports.EventPublisher) {
	switch backend := os.Getenv("SESSION_STORE"); backend {
	case "", "redis":
		return buildRedisBackend(ctx)
	case "mongo":
		return buildMongoBackend(ctx), nil
	case "memory":
		log.Println("Warning: using in-memory session store, sessions will not survive restarts")
		return store.NewMemoryStore(), nil
	default:
		log.Fatalf("Unknown SESSION_STORE %q", backend)
		return nil, nil
	}
}

func buildRedisBackend(ctx context.Context) (ports.SessionStore, ports.EventPublisher) {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379/0"
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Fatalf("Failed to parse Redis URL: %v", err)
	}

	redisClient := redis.NewClient(opts)
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	var eventPub ports.EventPublisher
	if os.Getenv("EVENTS_ENABLED") != "false" {
		logger := watermill.NewStdLogger(false, false)
		publisher, err := redisstream.NewPublisher(
			redisstream.PublisherConfig{
				Client: redisClient,
			},
			logger,
		)
		if err != nil {
			log.Fatalf("Failed to create Redis publisher: %v", err)
		}
		eventPub = events.NewWatermillPublisher(publisher)
	}

	return store.NewRedisStore(redisClient), eventPub
}

func buildMongoBackend(ctx context.Context) ports.SessionStore {
	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		log.Fatal("MONGO_URI is required for the mongo session store")
	}

	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "cerberus"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		log.Fatalf("Failed to ping MongoDB: %v", err)
	}

	mongoStore, err := store.NewMongoStore(ctx, client.Database(dbName))
	if err != nil {
		log.Fatalf("Failed to initialize Mongo session store: %v", err)
	}
	return mongoStore
}
