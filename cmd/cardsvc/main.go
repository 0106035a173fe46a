package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/httprate"

	configs "github.com/eventx/namecard-services/configs"
	svcconfig "github.com/eventx/namecard-services/internal/cardsvc/config"
	handlers "github.com/eventx/namecard-services/internal/cardsvc/handlers"
	"github.com/eventx/namecard-services/internal/cardsvc/models"
	"github.com/eventx/namecard-services/internal/cardsvc/ratelimit"
	"github.com/eventx/namecard-services/internal/cardsvc/service"
	"github.com/eventx/namecard-services/internal/cardsvc/sheet"
	"github.com/eventx/namecard-services/internal/cardsvc/store"
	"github.com/eventx/namecard-services/internal/cardsvc/web"
	log "github.com/sirupsen/logrus"
)

const SERVICE_NAME = "card"

// window between accepted card creations per client
const createWindow = 60 * time.Second

var instanceId string

func init() {
	instanceId = "001"
	configs.Logging(SERVICE_NAME + "_service_" + instanceId)
	configs.LoadEnv(SERVICE_NAME)
}

func main() {

	cfg := svcconfig.Load()

	// spreadsheet connection
	client, err := sheet.Connect(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to connect to sheet store: %v", err)
	}
	log.Printf("sheet store connection established successfully")

	opener := store.NewSheetOpener(client)

	cardStore := store.NewCardStore(opener, cfg.UserTable, models.UserCardFields)
	cardService := service.NewCardService(cardStore)

	salesStore := store.NewCardStore(opener, cfg.SalesTable, models.SalesCardFields)
	salesService := service.NewSalesService(salesStore)

	// probe both tables so a renamed required column fails at boot,
	// not on the first user request
	probeCtx, cancelProbe := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelProbe()
	if err := cardStore.Probe(probeCtx); err != nil {
		log.Fatalf("table %s schema check failed: %v", cfg.UserTable, err)
	}
	if err := salesStore.Probe(probeCtx); err != nil {
		log.Fatalf("table %s schema check failed: %v", cfg.SalesTable, err)
	}

	pages, err := web.NewRenderer()
	if err != nil {
		log.Fatalf("Failed to parse page templates: %v", err)
	}

	limiter := ratelimit.New(createWindow)

	// Setup router
	r := chi.NewRouter()
	c := configs.CORS()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(configs.CustomLoggerMiddleware())
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(c.Handler)

	// to protect the service api from any over requests
	rateLimitStr := os.Getenv("RATE_LIMIT")
	rateLimit, err := strconv.Atoi(rateLimitStr)
	if err != nil {
		log.Fatalf("Invalid RATE_LIMIT value: %v", err)
	}
	r.Use(httprate.LimitByIP(rateLimit, 1*time.Minute))

	// Init handlers and routes
	h := handlers.NewHandler(cardService, salesService, limiter, pages)
	h.InitAuth()
	h.SetRoutes(r)

	// Create server with timeout settings
	server := &http.Server{
		Addr:         ":" + os.Getenv("CARD_SERVICE_PORT"),
		Handler:      r,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()
	log.Infof("%s service running at port %s", SERVICE_NAME, server.Addr)

	// Wait for interrupt signal to gracefully shutdown the server
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("%s service shutdown Failed:%+v", SERVICE_NAME, err)
	}
	log.Infof("%s service gracefully stopped", SERVICE_NAME)
}
