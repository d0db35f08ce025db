package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	intconfig "busdepot/internal/config"
	router "busdepot/internal/http"
	"busdepot/internal/http/handlers"
	"busdepot/internal/repositories"
	"busdepot/internal/services"
	"busdepot/internal/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	env := intconfig.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	store, err := openStore(env)
	if err != nil {
		log.Fatalf("store setup failed: %v", err)
	}

	records := services.NewRecordService(store, env.TripMatchMode, env.StoreTimeout)
	h := handlers.New(records, services.NewReceiptService(env.ReceiptSecret), services.NewDocsService(records))

	r, err := router.NewRouter(env, h)
	if err != nil {
		log.Fatalf("router setup failed: %v", err)
	}

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("Server running on http://localhost%s (store=%s, trips=%s)", env.AppAddr, store.Driver(), env.TripMatchMode)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown failed: %v", err)
	}
	if err := store.Close(ctx); err != nil {
		log.Printf("store close failed: %v", err)
	}

	log.Println("Server stopped.")
}

// openStore picks the backend named by STORE_DRIVER. An unreachable server is
// logged and tolerated; only a client that cannot be built at all is fatal.
func openStore(env intconfig.Env) (repositories.RecordStore, error) {
	switch env.StoreDriver {
	case intconfig.StoreMemory:
		utils.LogWarn("", "STORE", "open", "using in-memory store, records are lost on exit")
		return repositories.NewMemoryStore(), nil

	case intconfig.StoreMySQL:
		db, err := intconfig.ConnectMySQL(env)
		if db == nil {
			return nil, err
		}
		store := repositories.NewSQLStore(db)
		if err != nil {
			utils.LogError("", "STORE", "connect mysql", err)
			utils.LogWarn("", "STORE", "ensure schema", "deferred to the first store call")
			return store, nil
		}
		// a failure here is retried by the first store call
		ctx, cancel := context.WithTimeout(context.Background(), env.StoreTimeout)
		defer cancel()
		if err := store.EnsureSchema(ctx); err != nil {
			utils.LogError("", "STORE", "ensure schema", err)
		}
		return store, nil

	default:
		client, err := intconfig.ConnectMongo(env)
		if client == nil {
			return nil, err
		}
		if err != nil {
			utils.LogError("", "STORE", "connect mongo", err)
		}
		return repositories.NewMongoStore(client.Database(env.MongoDB)), nil
	}
}
