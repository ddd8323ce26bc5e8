package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"richarticles/api"
	"richarticles/config"
	"richarticles/kafka"
	"richarticles/orchestrator"
	sharedKafka "richarticles/shared/kafka"
)

func main() {
	port := flag.String("port", "", "HTTP API port (overrides PORT)")
	configFile := flag.String("config", "", "YAML config file (overrides CONFIG_FILE)")
	withKafka := flag.Bool("kafka", false, "also serve enrichment requests from Kafka")
	flag.Parse()

	if *configFile != "" {
		os.Setenv("CONFIG_FILE", *configFile)
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *port != "" {
		cfg.Port = *port
	}
	if *withKafka {
		cfg.Kafka.Enabled = true
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	components, err := orchestrator.Build(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to build collaborators: %v", err)
	}
	defer components.Close()

	enricher := components.Enricher(cfg)

	var (
		worker   *sharedKafka.Consumer
		producer *sharedKafka.Producer
	)
	if cfg.Kafka.Enabled {
		producer, err = sharedKafka.NewProducer(sharedKafka.ProducerConfig{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.ResultsTopic,
		})
		if err != nil {
			log.Fatalf("Failed to create Kafka producer: %v", err)
		}
		worker, err = kafka.NewWorker(kafka.WorkerConfig{
			Brokers:       cfg.Kafka.Brokers,
			RequestsTopic: cfg.Kafka.RequestsTopic,
			GroupID:       cfg.Kafka.GroupID,
			Enricher:      enricher,
			Publisher:     producer,
		})
		if err != nil {
			log.Fatalf("Failed to create Kafka worker: %v", err)
		}
		if err := worker.Start(ctx); err != nil {
			log.Fatalf("Failed to start Kafka worker: %v", err)
		}
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           api.NewRouter(enricher, cfg.BatchLimit),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Starting API server on %s (lookup timeout %s)", srv.Addr, cfg.Timeout())
		log.Println("API endpoints available:")
		log.Println("  GET  /api/health")
		log.Println("  GET  /api/articles/:id/rich")
		log.Println("  POST /api/articles/enrich")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	log.Println("Shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}

	if worker != nil {
		if err := worker.Close(); err != nil {
			log.Printf("Kafka consumer close error: %v", err)
		}
	}
	if producer != nil {
		if err := producer.Close(); err != nil {
			log.Printf("Kafka producer close error: %v", err)
		}
	}

	log.Println("Server stopped")
}
