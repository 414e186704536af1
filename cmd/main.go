package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"resume-engine/domain"
	"resume-engine/infrastructure"
	"resume-engine/interfaces"
)

func main() {
	// Load .env
	_ = godotenv.Load()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if os.Getenv("LOG_LEVEL") == "debug" {
		log.SetLevel(logrus.DebugLevel)
	}

	templatesDir := os.Getenv("TEMPLATES_DIR")
	if templatesDir == "" {
		templatesDir = "templates"
	}
	registry, err := infrastructure.NewTemplateRegistry(log, templatesDir)
	if err != nil {
		log.Fatalf("failed to load templates: %v", err)
	}

	engine := infrastructure.NewEngine(
		log,
		registry,
		infrastructure.NewLaTeXCompiler(log),
		infrastructure.NewDocxWriter(log),
	)

	// Async generation needs both the history DB and the queue. With
	// either missing the service still runs with the sync endpoint only.
	var db *gorm.DB
	var rmq *infrastructure.RabbitMQ
	if os.Getenv("DB_DSN") != "" && os.Getenv("RABBITMQ_URL") != "" {
		db = infrastructure.NewMySQLConnection(log)
		rmq = infrastructure.NewRabbitMQ(log)

		outputDir := os.Getenv("OUTPUT_DIR")
		if outputDir == "" {
			outputDir = "output"
		}
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			log.Fatalf("failed to create output directory: %v", err)
		}

		// Worker consumer: replay the stored request through the engine.
		rmq.ConsumeJobs(func(job infrastructure.GenerationJob) {
			workerLog := log.WithField("generation_id", job.GenerationID)
			workerLog.Info("worker processing job")

			var generation domain.Generation
			if err := db.First(&generation, job.GenerationID).Error; err != nil {
				workerLog.WithError(err).Error("failed to load generation")
				return
			}

			db.Model(&domain.Generation{}).
				Where("id = ?", generation.ID).
				Update("status", domain.GenerationProcessing)

			var req domain.GenerateRequest
			if err := json.Unmarshal([]byte(generation.RequestJSON), &req); err != nil {
				failGeneration(db, workerLog, generation.ID, fmt.Errorf("stored request is unreadable: %w", err))
				return
			}

			artifact, err := engine.Generate(context.Background(), &req)
			if err != nil {
				failGeneration(db, workerLog, generation.ID, err)
				return
			}

			outputPath := filepath.Join(outputDir, fmt.Sprintf("%d_%s", generation.ID, artifact.Filename))
			if err := os.WriteFile(outputPath, artifact.Bytes, 0644); err != nil {
				failGeneration(db, workerLog, generation.ID, fmt.Errorf("failed to store artifact: %w", err))
				return
			}

			db.Model(&domain.Generation{}).
				Where("id = ?", generation.ID).
				Updates(map[string]interface{}{
					"status":      domain.GenerationCompleted,
					"output_path": outputPath,
					"filename":    artifact.Filename,
					"updated_at":  time.Now(),
				})
			workerLog.Info("worker finished job")
		})
	} else {
		log.Info("DB_DSN or RABBITMQ_URL not set, async generation disabled")
	}

	router := gin.Default()
	interfaces.NewHTTPHandler(router, engine, db, rmq, log)

	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	log.Infof("server running on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatal(err)
	}
}

func failGeneration(db *gorm.DB, log *logrus.Entry, id uint, cause error) {
	log.WithError(cause).Error("generation failed")
	db.Model(&domain.Generation{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     domain.GenerationFailed,
			"error":      cause.Error(),
			"updated_at": time.Now(),
		})
}
