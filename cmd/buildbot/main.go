// buildbot - Discord bot recommending Deadlock item builds from bucketed
// win-rate statistics.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sxndmxn/deadlock-build-creator/internal/bot"
	"github.com/sxndmxn/deadlock-build-creator/internal/config"
	"github.com/sxndmxn/deadlock-build-creator/pkg/healthcheck"
)

func main() {
	// Health check flag for Docker
	healthFlag := flag.Bool("health", false, "Run health check")
	flag.Parse()

	if *healthFlag {
		if err := runHealthCheck(); err != nil {
			os.Exit(1)
		}
		os.Exit(0)
	}

	log.SetFlags(log.Ltime)
	log.SetOutput(os.Stdout)
	log.Println("Starting buildbot...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Config invalid: %v", err)
	}

	discordBot, err := bot.New(cfg)
	if err != nil {
		log.Fatalf("Bot error: %v", err)
	}

	healthServer := healthcheck.New(cfg.HealthAddr)
	go func() {
		if err := healthServer.Start(); err != nil && err != http.ErrServerClosed {
			log.Printf("Health server error: %v", err)
		}
	}()

	if err := discordBot.Start(); err != nil {
		log.Fatalf("Start error: %v", err)
	}

	log.Println("buildbot running")

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	healthServer.Stop(ctx)
	discordBot.Stop()

	log.Println("Stopped")
}

// runHealthCheck performs a quick health check
func runHealthCheck() error {
	client := &http.Client{Timeout: 3 * time.Second}
	resp, err := client.Get("http://localhost:8080/health")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unhealthy: %d", resp.StatusCode)
	}
	return nil
}
