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

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"mercaml/internal/classify"
	"mercaml/internal/forecast"
	"mercaml/internal/recommend"
	"mercaml/pkg/artifacts"
	"mercaml/pkg/utils"
)

func main() {
	cfg := utils.LoadServerConfig()

	set := artifacts.MustLoad(cfg.ModelDir)
	n, _ := set.Similarity.Dims()
	log.Printf("artifacts loaded: %d history records, %d products, similarity order %d",
		len(set.History), len(set.Catalog), n)

	router := gin.Default()

	// Optional: avoid “trusted all proxies” warning
	_ = router.SetTrustedProxies([]string{"127.0.0.1"})

	// The frontend is served from another origin; every API route is open
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"POST", "GET", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type"},
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":   "ok",
			"history":  len(set.History),
			"products": len(set.Catalog),
		})
	})

	api := router.Group("/api")

	forecastHandler := forecast.NewHandler(forecast.New(set))
	forecastHandler.RegisterRoutes(api)

	recommendHandler := recommend.NewHandler(recommend.New(set))
	recommendHandler.RegisterRoutes(api)

	classifier := classify.NewHTTPClassifier(cfg.ClassifierURL, cfg.ClassifierTimeout)
	classifyHandler, err := classify.NewHandler(classifier, cfg.UploadDir)
	if err != nil {
		log.Fatalf("prepare upload dir %s: %v", cfg.UploadDir, err)
	}
	classifyHandler.RegisterRoutes(api)

	httpSrv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("HTTP API server listening on :%d", cfg.Port)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Printf("shutdown signal received: %s", sig)
	case err := <-errCh:
		log.Printf("server error: %v", err)
	}

	log.Println("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Printf("http shutdown error: %v", err)
	}

	log.Println("server stopped")
}
