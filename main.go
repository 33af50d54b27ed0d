package main

import (
	"github.com/sirupsen/logrus"

	"go-pulse/config"
	"go-pulse/cronjobs"
	"go-pulse/db"
	"go-pulse/enrichment"
	"go-pulse/geocode"
	"go-pulse/lexicon"
	"go-pulse/logging"
	"go-pulse/mlmodel"
	"go-pulse/nlp"
	"go-pulse/processor"
	"go-pulse/routes"
	"go-pulse/translit"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Invalid configuration: %v", err)
	}
	log := logging.New(cfg.LogLevel, cfg.LogFormat)
	lx := lexicon.Default()

	// Entity model backend
	var (
		detector processor.Detector
		probe    cronjobs.Prober
	)
	switch cfg.NERBackend {
	case "google":
		langClient, err := nlp.InitLanguageClient(cfg.LanguageCreds)
		if err != nil {
			log.Fatalf("Failed to create Natural Language client: %v", err)
		}
		defer nlp.CloseLanguageClient()
		detector = nlp.NewGoogleDetector(langClient)
	case "prose":
		detector = nlp.NewProseDetector()
	default:
		ml := mlmodel.NewClient(cfg.MLServiceURL)
		if ml.Enabled() {
			detector = ml
			probe = ml.Health
		} else {
			log.Warn("ML_SERVICE_URL not set, entity model disabled")
		}
	}

	// Transliteration
	var translator translit.Translator
	switch cfg.Translator {
	case "openai":
		if cfg.OpenAIKey == "" {
			log.Warn("OPENAI_API_KEY not set, transliteration disabled")
		} else {
			translator = translit.NewOpenAIClient(cfg.OpenAIKey, cfg.OpenAIBaseURL)
		}
	default:
		translator = translit.NewGoogleClient(cfg.TranslateURL)
	}
	names := translit.New(translator, lx, cfg.CallTimeout, log)

	// Enrichment
	wiki := enrichment.NewWikiClient(cfg.WikiURL)
	enrichCfg := enrichment.Config{
		Disambiguator: wiki,
		Names:         names,
		Timeout:       cfg.CallTimeout,
		Logger:        log,
	}
	if cfg.NewsKey != "" {
		enrichCfg.News = enrichment.NewNewsClient(cfg.NewsURL, cfg.NewsKey)
	} else {
		log.Warn("NEWS_API_KEY not set, news enrichment disabled")
	}
	if cfg.MapsCreds != "" {
		mapsClient, err := geocode.InitMapsClient(cfg.MapsCreds)
		if err != nil {
			log.WithError(err).Warn("geocoding disabled")
		} else {
			enrichCfg.Geocoder = geocode.New(mapsClient)
		}
	}

	analyzer := processor.NewAnalyzer(detector, lx, enrichment.New(enrichCfg), cfg.ModelTimeout, log)

	deps := routes.Dependencies{
		Analyzer:       analyzer,
		Translator:     translator,
		Disambiguator:  wiki,
		BlockThreshold: cfg.BlockThreshold,
		Logger:         log,
	}
	jobs := cronjobs.Jobs{
		Feeds:          cronjobs.NewFeedClient(""),
		FeedURIs:       cfg.BlueskyFeeds,
		Analyzer:       analyzer,
		Probe:          probe,
		IngestSchedule: cfg.IngestSchedule,
		HealthSchedule: cfg.HealthSchedule,
		Logger:         log,
	}

	// Init firestore
	if cfg.FirebaseCreds != "" {
		firestoreClient, err := db.InitFirestore(cfg.FirebaseCreds)
		if err != nil {
			log.Fatalf("Failed to initialize Firestore: %v", err)
		}
		defer db.CloseFirestore() // Firestore client is closed on exit

		store := db.NewStore(firestoreClient)
		deps.AnalysisStore = store
		deps.MentionStore = store
		jobs.Store = store
	} else {
		log.Warn("FIREBASE_CREDENTIALS not set, persistence disabled")
	}

	// Initialize cron jobs
	c, err := cronjobs.InitCronJobs(jobs)
	if err != nil {
		log.Fatalf("Failed to schedule cron jobs: %v", err)
	}
	defer c.Stop()

	r := routes.SetupRouter(deps)
	log.WithField("port", cfg.Port).Info("server listening")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
