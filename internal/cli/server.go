// filepath: internal/cli/server.go
package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"blogapp/internal/api"
	"blogapp/internal/api/handlers"
	"blogapp/internal/logging"
	"blogapp/internal/repository"
	"blogapp/internal/services"
	"blogapp/internal/storage"
)

// runServer contains the logic to start the HTTP server with graceful shutdown.
func runServer() error {
	repo, err := repository.NewRepository(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize repository: %w", err)
	}
	defer repo.Close()

	images := storage.NewImageStore(cfg.Database.StaticRoot, cfg.Database.UploadDir)
	postService := services.NewPostService(repo, images)

	h := handlers.NewHandlers(postService, cfg)
	r := api.SetupRouter(h, cfg)

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    serverAddr,
		Handler: r,
	}

	// --- Graceful shutdown setup ---
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		logging.Log.Infof("Server starting on %s", serverAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-stop
	logging.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Log.Errorf("Server forced to shutdown: %v", err)
		return err
	}

	logging.Log.Info("Server exiting")
	return nil
}
