package testutils

import (
	"context"
	"log"
	"main/utils"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// envMutex protects environment variable setup across parallel test packages.
var envMutex sync.Mutex

// SetupTestEnvironment sets the environment variables integration tests need.
func SetupTestEnvironment() {
	rootDir := findProjectRoot()
	if envPath := filepath.Join(rootDir, ".env"); rootDir != "" {
		if err := godotenv.Load(envPath); err == nil {
			log.Printf("Loaded .env file from: %s", envPath)
		}
	}

	envMutex.Lock()
	defer envMutex.Unlock()

	os.Setenv("GO_ENV", "test")
	os.Setenv("MONGO_DB", "habittracker_test")
	os.Setenv("MONGO_DB_TEST", "habittracker_test")

	if os.Getenv("MONGO_URI") == "" {
		os.Setenv("MONGO_URI", "mongodb://localhost:27017")
	}

	if os.Getenv("JWT_SECRET_KEY") == "" {
		os.Setenv("JWT_SECRET_KEY", "test-jwt-secret-key")
	}
	if os.Getenv("JWT_EXPIRATION_TIME") == "" {
		os.Setenv("JWT_EXPIRATION_TIME", "3600")
	}
	utils.InitJWT()
	utils.InitValidator()
}

func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// SetupTestDB connects to the test MongoDB instance and returns a cleanup
// function that drops the test database. Tests are skipped when no MongoDB
// is reachable.
func SetupTestDB(t *testing.T) (*mongo.Client, func()) {
	t.Helper()

	if os.Getenv("GO_ENV") != "test" {
		SetupTestEnvironment()
	}

	uri := os.Getenv("MONGO_URI")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		t.Skipf("Skipping: cannot connect to MongoDB at %s: %v", uri, err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		t.Skipf("Skipping: MongoDB at %s not reachable: %v", uri, err)
	}

	cleanup := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		dbName := os.Getenv("MONGO_DB_TEST")
		if dbName != "" {
			if err := client.Database(dbName).Drop(ctx); err != nil {
				t.Logf("Warning: Failed to drop test database %s: %v", dbName, err)
			}
		}

		if err := client.Disconnect(ctx); err != nil {
			t.Logf("Warning: Failed to disconnect: %v", err)
		}
	}

	return client, cleanup
}
