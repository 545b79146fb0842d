// README: Entry point; loads config, wires the decision core, starts the HTTP server.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"travelcore/internal/config"
	"travelcore/internal/docstore"
	"travelcore/internal/experts"
	"travelcore/internal/hybridsearch"
	"travelcore/internal/infra"
	"travelcore/internal/intent"
	"travelcore/internal/llm"
	"travelcore/internal/llm/usage"
	"travelcore/internal/orchestrator"
	"travelcore/internal/session"
	"travelcore/internal/transport/httpapi"
	"travelcore/internal/weather"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Firebase.ProjectID == "" {
		log.Fatal("TRAVELCORE_FIREBASE_PROJECT_ID is required")
	}
	verifier, err := infra.NewFirebaseVerifier(ctx, cfg.Firebase.ProjectID, cfg.Firebase.CredentialsFile)
	if err != nil {
		log.Fatalf("firebase init: %v", err)
	}

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		log.Fatal(err)
	}
	usageMeter := usage.NewMeter(usage.NewStore(dbPool))

	redisClient := infra.NewRedis(cfg.Redis.Addr)
	sessionStore := session.NewStore(redisClient)

	mongoClient, err := mongo.Connect(options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		log.Fatalf("mongo connect: %v", err)
	}
	store := docstore.NewMongoStore(mongoClient, cfg.Mongo.DB)

	var searchClient hybridsearch.Client
	if cfg.HybridSearch.BaseURL != "" {
		searchClient = hybridsearch.NewHTTPClient(cfg.HybridSearch.BaseURL)
	}

	weatherClient := weather.NewHTTPClient(cfg.Weather.BaseURL)

	llmClient, err := newLLMClient(ctx, cfg)
	if err != nil {
		log.Fatalf("llm init: %v", err)
	}

	spotExpert := &experts.SpotExpert{Store: store, Search: searchClient}
	hotelExpert := &experts.HotelExpert{Store: store, Search: searchClient}
	foodExpert := &experts.FoodExpert{Store: store}
	itineraryExpert := &experts.ItineraryExpert{LLM: llmClient, Weather: weatherClient}
	costExpert := &experts.CostCalculatorExpert{}
	infoExpert := &experts.GeneralInfoExpert{}

	dispatcher := experts.NewDispatcher(spotExpert, hotelExpert, foodExpert, itineraryExpert, costExpert, infoExpert)

	o := &orchestrator.Orchestrator{
		Intent:     intent.New(llmClient),
		Dispatcher: dispatcher,
		Budget:     &experts.BudgetParser{LLM: llmClient},
		LLM:        llmClient,
		Weather:    weatherClient,
		Sessions:   sessionStore,
	}

	router := httpapi.NewRouter(o, verifier, usageMeter)
	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: router}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}

// newLLMClient builds the primary provider wrapped with the rate-limit and
// audit decorators every call goes through (§5's logged-call-trail
// requirement), picking Gemini or Anthropic per cfg.LLM.Provider.
func newLLMClient(ctx context.Context, cfg config.Config) (llm.Client, error) {
	var inner llm.Client
	var err error

	switch cfg.LLM.Provider {
	case "anthropic":
		inner, err = llm.NewAnthropicClient(cfg.LLM.AnthropicKey)
	default:
		inner, err = llm.NewGeminiClient(ctx, cfg.LLM.GeminiKey)
	}
	if err != nil {
		return nil, err
	}

	limited := llm.NewRateLimited(inner, 2, 5)
	return llm.NewAudit(limited, cfg.LLM.Provider), nil
}
