package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"os"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	appconfig "github.com/clinicavoz/voice-scheduler/internal/config"
	"github.com/clinicavoz/voice-scheduler/internal/http/handlers"
	"github.com/clinicavoz/voice-scheduler/internal/patients"
	"github.com/clinicavoz/voice-scheduler/internal/schedule"
	"github.com/clinicavoz/voice-scheduler/internal/session"
	"github.com/clinicavoz/voice-scheduler/pkg/logging"
	"github.com/redis/go-redis/v9"
)

// app holds everything built once at cold start.
type app struct {
	turns  *handlers.TurnHandler
	logger *logging.Logger
}

func newApp() (*app, error) {
	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)

	roster, aliases, err := schedule.LoadRoster(cfg.DoctorsJSON)
	if err != nil {
		return nil, err
	}
	store, err := schedule.NewStore(roster, aliases)
	if err != nil {
		return nil, err
	}
	registry := patients.NewRegistry()

	var sessions session.Store
	if cfg.SessionStore == "redis" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		sessions = session.NewRedisStore(rdb, cfg.SessionTTL)
	} else {
		// Only safe on a single warm instance; set SESSION_STORE=redis
		// when more than one concurrent execution is expected.
		sessions = session.NewMemoryStore(cfg.SessionTTL)
	}

	engine := session.NewEngine(session.EngineConfig{
		Store:      store,
		Patients:   registry,
		Logger:     logger,
		MaxOptions: cfg.MaxOptions,
	})

	return &app{
		turns:  handlers.NewTurnHandler(engine, sessions, nil, logger),
		logger: logger,
	}, nil
}

func main() {
	a, err := newApp()
	if err != nil {
		logging.Default().Error("failed to initialize", "error", err)
		os.Exit(1)
	}
	lambda.Start(a.handle)
}

func (a *app) handle(ctx context.Context, evt events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	method := strings.ToUpper(strings.TrimSpace(evt.RequestContext.HTTP.Method))
	path := strings.TrimSpace(evt.RawPath)
	if path == "" {
		path = strings.TrimSpace(evt.RequestContext.HTTP.Path)
	}

	if path == "/health" || path == "/_health" {
		return events.APIGatewayV2HTTPResponse{StatusCode: http.StatusOK, Body: "ok"}, nil
	}

	if method != http.MethodPost || path != "/v1/turns" {
		return events.APIGatewayV2HTTPResponse{StatusCode: http.StatusNotFound}, nil
	}

	body, err := decodeBody(evt)
	if err != nil {
		return jsonResponse(http.StatusBadRequest, map[string]string{"error": "invalid body"}), nil
	}

	var req handlers.TurnRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return jsonResponse(http.StatusBadRequest, map[string]string{"error": "invalid JSON body"}), nil
	}
	if strings.TrimSpace(req.Intent) == "" {
		return jsonResponse(http.StatusBadRequest, map[string]string{"error": "intent is required"}), nil
	}

	resp, err := a.turns.ProcessTurn(ctx, req)
	if err != nil {
		a.logger.Error("turn processing failed", "error", err)
		return jsonResponse(http.StatusInternalServerError, map[string]string{"error": "internal error"}), nil
	}
	return jsonResponse(http.StatusOK, resp), nil
}

func decodeBody(evt events.APIGatewayV2HTTPRequest) ([]byte, error) {
	if !evt.IsBase64Encoded {
		return []byte(evt.Body), nil
	}
	return base64.StdEncoding.DecodeString(evt.Body)
}

func jsonResponse(status int, payload any) events.APIGatewayV2HTTPResponse {
	body, _ := json.Marshal(payload)
	return events.APIGatewayV2HTTPResponse{
		StatusCode: status,
		Body:       string(body),
		Headers:    map[string]string{"content-type": "application/json"},
	}
}
