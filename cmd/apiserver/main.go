package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ArpitBagaria/dist-backend/internal/app/config"
)

func main() {
	// 1. 加载配置
	cfg, err := config.LoadDefault()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Config validation failed: %v", err)
	}

	// 2. 初始化应用（包含 HTTP Server 和余额消费者）
	app, cleanup, err := InitializeApp(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize app: %v", err)
	}
	defer cleanup()

	// 3. 创建 HTTP Server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	server := &http.Server{
		Addr:    addr,
		Handler: app.Engine,
	}

	// 4. 启动余额消费者（后台 goroutine）
	consumerCtx, cancelConsumer := context.WithCancel(context.Background())
	consumerErrChan := make(chan error, 1)

	go func() {
		log.Printf("Starting balance consumer...")
		consumerErrChan <- app.BalanceConsumer.Start(consumerCtx)
	}()

	// 5. 启动 HTTP Server（后台 goroutine）
	serverErrChan := make(chan error, 1)
	go func() {
		log.Printf("Starting HTTP server on %s", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrChan <- err
		}
	}()

	// 6. 优雅停机处理
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigChan:
		log.Println("Received shutdown signal, gracefully shutting down...")
		gracefulShutdown(server, cancelConsumer)
	case err := <-serverErrChan:
		log.Fatalf("HTTP server error: %v", err)
	case err := <-consumerErrChan:
		if err != nil && !errors.Is(err, context.Canceled) {
			log.Fatalf("Consumer error: %v", err)
		}
	}

	log.Println("Application stopped")
}

// gracefulShutdown 优雅停机
func gracefulShutdown(server *http.Server, cancelConsumer context.CancelFunc) {
	// 1. 停止消费者
	log.Println("Stopping balance consumer...")
	cancelConsumer()
	time.Sleep(1 * time.Second) // 等待消费者处理完当前消息

	// 2. 停止 HTTP Server
	log.Println("Stopping HTTP server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	} else {
		log.Println("HTTP server stopped gracefully")
	}

	log.Println("All services stopped gracefully")
}
