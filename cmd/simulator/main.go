package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"activity-hub/simulator"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	config := simulator.DefaultSimConfig()
	if url := os.Getenv("ENGINE_URL"); url != "" {
		config.EngineURL = url
	}
	if n, err := strconv.Atoi(os.Getenv("SIM_USERS")); err == nil && n > 0 {
		config.NumUsers = n
	}
	if d, err := time.ParseDuration(os.Getenv("SIM_DURATION")); err == nil && d > 0 {
		config.SimulationTime = d
	}

	zapLogger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zapLogger.Sync()
	logger := zapLogger.Sugar()

	logger.Infof("Starting simulation with configuration:")
	logger.Infof("- Engine URL: %s", config.EngineURL)
	logger.Infof("- Number of users: %d", config.NumUsers)
	logger.Infof("- Simulation time: %v", config.SimulationTime)
	logger.Infof("- Post frequency: %.2f posts/user/hour", config.PostFrequency)
	logger.Infof("- Comment frequency: %.2f comments/user/hour", config.CommentFrequency)
	logger.Infof("- Like frequency: %.2f likes/user/hour", config.LikeFrequency)
	logger.Infof("- Zipf parameter: %.2f", config.ZipfS)

	ctx, cancel := context.WithTimeout(context.Background(), config.SimulationTime)
	defer cancel()
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	sim := simulator.NewSimulator(config, logger)
	if err := sim.Run(ctx); err != nil {
		logger.Fatalf("Simulation failed: %v", err)
	}

	metrics := sim.GetMetrics()
	logger.Infof("Simulation completed. Final metrics:")
	logger.Infof("- Total users: %d", metrics.TotalUsers)
	logger.Infof("- Posts: %d, comments: %d (replies: %d)", metrics.TotalPosts, metrics.TotalComments, metrics.TotalReplies)
	logger.Infof("- Likes: %d, bookmarks: %d, follows: %d", metrics.TotalLikes, metrics.TotalBookmarks, metrics.TotalFollows)
	logger.Infof("- Notifications read: %d", metrics.NotificationsRead)
	logger.Infof("- Requests: %d (%d failed), %.2f req/sec", metrics.TotalRequests, metrics.FailedRequests, metrics.RequestsPerSecond)
	logger.Infof("- Average latency: %v", metrics.AverageLatency)
}
