// README: Interactive terminal REPL that drives the Master Orchestrator
// in-process, without HTTP or auth, for manual testing against a live LLM.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"travelcore/internal/config"
	"travelcore/internal/coretypes"
	"travelcore/internal/docstore"
	"travelcore/internal/experts"
	"travelcore/internal/hybridsearch"
	"travelcore/internal/intent"
	"travelcore/internal/llm"
	"travelcore/internal/orchestrator"
	"travelcore/internal/weather"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if cfg.LLM.GeminiKey == "" && cfg.LLM.AnthropicKey == "" {
		log.Fatal("GEMINI_API_KEY or ANTHROPIC_API_KEY environment variable not set")
	}

	ctx := context.Background()

	mongoClient, err := mongo.Connect(options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		log.Fatalf("mongo connect: %v", err)
	}
	store := docstore.NewMongoStore(mongoClient, cfg.Mongo.DB)

	var searchClient hybridsearch.Client
	if cfg.HybridSearch.BaseURL != "" {
		searchClient = hybridsearch.NewHTTPClient(cfg.HybridSearch.BaseURL)
	}

	var llmClient llm.Client
	providerName := "gemini"
	if cfg.LLM.AnthropicKey != "" {
		providerName = "anthropic"
		llmClient, err = llm.NewAnthropicClient(cfg.LLM.AnthropicKey)
	} else {
		llmClient, err = llm.NewGeminiClient(ctx, cfg.LLM.GeminiKey)
	}
	if err != nil {
		log.Fatalf("llm init: %v", err)
	}
	llmClient = llm.NewAudit(llmClient, providerName)

	weatherClient := weather.NewHTTPClient(cfg.Weather.BaseURL)

	dispatcher := experts.NewDispatcher(
		&experts.SpotExpert{Store: store, Search: searchClient},
		&experts.HotelExpert{Store: store, Search: searchClient},
		&experts.FoodExpert{Store: store},
		&experts.ItineraryExpert{LLM: llmClient, Weather: weatherClient},
		&experts.CostCalculatorExpert{},
		&experts.GeneralInfoExpert{},
	)

	o := &orchestrator.Orchestrator{
		Intent:     intent.New(llmClient),
		Dispatcher: dispatcher,
		Budget:     &experts.BudgetParser{LLM: llmClient},
		LLM:        llmClient,
		Weather:    weatherClient,
	}

	const sessionID = "demo-session"
	reader := bufio.NewScanner(os.Stdin)

	fmt.Println("Trợ lý: Chào bạn! Bạn muốn đi du lịch ở đâu?")
	fmt.Print("Bạn: ")

	var lastFailedInput string

	for reader.Scan() {
		time.Sleep(500 * time.Millisecond)

		userInput := strings.TrimSpace(reader.Text())
		if userInput == "exit" || userInput == "quit" {
			fmt.Println("Trợ lý: Hẹn gặp lại!")
			break
		}

		if userInput == "r" {
			if lastFailedInput == "" {
				fmt.Println("Trợ lý: Không có câu nào để thử lại.")
				fmt.Print("Bạn: ")
				continue
			}
			userInput = lastFailedInput
			fmt.Printf("Trợ lý: Thử lại: %s\n", userInput)
		}

		const maxRetries = 3
		backoff := 1 * time.Second
		var result *orchestrator.TurnResult

		for i := 0; i < maxRetries; i++ {
			result, err = o.Turn(ctx, sessionID, userInput)
			if err == nil {
				break
			}
			if i < maxRetries-1 {
				fmt.Println("(đang kết nối lại...)")
				time.Sleep(backoff)
				backoff *= 2
			}
		}

		if err != nil {
			lastFailedInput = userInput
			fmt.Printf("Trợ lý: Xin lỗi, kết nối liên tục thất bại (%v).\n", err)
			fmt.Println("Nhập 'r' để thử lại câu vừa rồi, hoặc nhập câu mới.")
			fmt.Print("Bạn: ")
			continue
		}

		lastFailedInput = ""
		printChunk(result.Chunk)
		fmt.Print("Bạn: ")
	}

	if err := reader.Err(); err != nil {
		log.Fatalf("error reading input: %v", err)
	}
}

func printChunk(chunk *coretypes.ResponseChunk) {
	if chunk == nil {
		fmt.Println("Trợ lý: (không có phản hồi)")
		return
	}
	fmt.Printf("Trợ lý: %s\n", chunk.Reply)
}
