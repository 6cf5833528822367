package main

import (
	"context"
	"log"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/PabloGalante/farum-sentinel/internal/adapters/classifier"
	httpadapter "github.com/PabloGalante/farum-sentinel/internal/adapters/http"
	"github.com/PabloGalante/farum-sentinel/internal/adapters/llm"
	firestorestore "github.com/PabloGalante/farum-sentinel/internal/adapters/storage/firestore"
	memstore "github.com/PabloGalante/farum-sentinel/internal/adapters/storage/memory"
	"github.com/PabloGalante/farum-sentinel/internal/app/conversation"
	"github.com/PabloGalante/farum-sentinel/internal/app/risk"
	"github.com/PabloGalante/farum-sentinel/internal/app/safetyplan"
	"github.com/PabloGalante/farum-sentinel/internal/app/tools"
	"github.com/PabloGalante/farum-sentinel/internal/config"
	"github.com/PabloGalante/farum-sentinel/internal/domain"
	"github.com/PabloGalante/farum-sentinel/internal/observability"
)

func main() {
	ctx := context.Background()
	cfg := config.Load()

	// Choose between mock and Vertex by ENV (useful for dev)
	var (
		llmClient domain.LLMClient
		err       error
	)

	if cfg.UseMockLLM {
		log.Println("[LLM] Using MOCK LLM client")
		llmClient = llm.NewMockLLM()
	} else {
		log.Println("[LLM] Using Vertex LLM client")
		llmClient, err = llm.NewVertexClient(ctx)
		if err != nil {
			log.Fatalf("error initializing Vertex LLM client: %v", err)
		}
	}

	// Risk engine: embedded lexicons plus the optional upstream classifier.
	lexicons, err := risk.LoadLexicons()
	if err != nil {
		log.Fatalf("error loading risk lexicons: %v", err)
	}

	engineOpts := []risk.Option{}
	switch cfg.ClassifierBackend {
	case "vertex":
		log.Println("[CLASSIFIER] Using Vertex severity classifier")
		vc, err := classifier.NewVertexClassifier(ctx)
		if err != nil {
			log.Fatalf("error initializing Vertex classifier: %v", err)
		}
		engineOpts = append(engineOpts, risk.WithClassifier(vc, cfg.ClassifierTimeout))
	case "mock":
		log.Println("[CLASSIFIER] Using MOCK severity classifier")
		engineOpts = append(engineOpts, risk.WithClassifier(classifier.NewMockClassifier(0.5), cfg.ClassifierTimeout))
	default:
		log.Println("[CLASSIFIER] Lexical confidence only")
	}

	engine := risk.NewEngine(lexicons, engineOpts...)

	// Storage: Firestore or Memory
	var (
		sessionStore    domain.SessionStore
		messageStore    domain.MessageStore
		assessmentStore domain.AssessmentStore
		safetyPlanStore domain.SafetyPlanStore
		profileStore    domain.ProfileStore
	)

	switch cfg.StorageBackend {
	case "firestore":
		if cfg.GCPProjectID == "" {
			log.Fatal("SENTINEL_GCP_PROJECT is required for Firestore storage backend")
		}

		log.Printf("[STORE] Using Firestore storage (project=%s)", cfg.GCPProjectID)
		fsStore, err := firestorestore.NewStore(ctx, cfg.GCPProjectID)
		if err != nil {
			log.Fatalf("error initializing Firestore store: %v", err)
		}

		// 1 store, implements 5 interfaces
		sessionStore = fsStore
		messageStore = fsStore
		assessmentStore = fsStore
		safetyPlanStore = fsStore
		profileStore = fsStore

	default:
		log.Println("[STORE] Using in-memory storage")
		sessionStore = memstore.NewSessionStore()
		messageStore = memstore.NewMessageStore()
		assessmentStore = memstore.NewAssessmentStore()
		safetyPlanStore = memstore.NewSafetyPlanStore()
		profileStore = memstore.NewProfileStore()
	}

	// Metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := observability.NewMetrics(reg)

	// Services
	safetyTool := tools.NewSafetyPlanTool(safetyPlanStore)
	convSvc := conversation.NewService(
		llmClient,
		sessionStore,
		messageStore,
		assessmentStore,
		profileStore,
		engine,
		safetyTool,
		metrics,
	)
	planSvc := safetyplan.NewService(safetyPlanStore)

	// HTTP server
	metricsHandler := promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
	handler := httpadapter.NewServer(convSvc, planSvc, metricsHandler)

	addr := ":" + cfg.Port
	log.Println("Sentinel API listening on port:", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatal(err)
	}
}
