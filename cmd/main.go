package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/moodtunes/moodtunes-backend/internal/app"
)

func main() {
	application, err := app.New()
	if err != nil {
		fmt.Printf("Failed to init app: %v\n", err)
		os.Exit(1)
	}
	defer application.Close()

	application.Start()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		<-sigCh
		application.Log.Info("Shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := application.Shutdown(ctx); err != nil {
			application.Log.Warn("Shutdown failed", "error", err)
		}
	}()

	application.Log.Info("Server listening", "addr", application.Cfg.HTTPAddr)
	if err := application.Run(""); err != nil {
		application.Log.Error("Server failed", "error", err)
	}
}
