package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/rizalfahlevi/intern-outreach/internal/config"
	"github.com/rizalfahlevi/intern-outreach/internal/domain/fiber/handler"
	"github.com/rizalfahlevi/intern-outreach/internal/logger"
	"github.com/rizalfahlevi/intern-outreach/internal/matching"
	"github.com/rizalfahlevi/intern-outreach/internal/middleware"
	"github.com/rizalfahlevi/intern-outreach/internal/model"
	"github.com/rizalfahlevi/intern-outreach/internal/repository"
	"github.com/rizalfahlevi/intern-outreach/internal/service"
	"github.com/rizalfahlevi/intern-outreach/internal/usecase"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	ctx := context.Background()
	if err := godotenv.Load(); err != nil {
		log.Println("Could not load .env file")
	}

	appConfig := config.LoadAppConfig()
	outreachConfig := config.LoadOutreachConfig()
	mailConfig := config.LoadMailConfig()

	zlog, err := logger.New(appConfig.Env)
	if err != nil {
		log.Fatal(err)
	}
	defer zlog.Sync()

	app := fiber.New(fiber.Config{
		AppName: appConfig.Name,
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}
			message := err.Error()
			if message == "" {
				message = "Internal Server Error"
			}
			return ctx.Status(code).JSON(fiber.Map{"error": message})
		},
	})
	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: appConfig.Env != "production",
	}))
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(pprof.New(pprof.Config{
		Next: func(c *fiber.Ctx) bool {
			return appConfig.Env == "production"
		},
	}))
	app.Use(healthcheck.New())
	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))
	app.Use(middleware.RateLimiter(50, 1*time.Minute))

	db := ConnectDB()

	candidateRepo := repository.NewCandidateRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	matchRepo := repository.NewMatchRepository(db)
	outreachRepo := repository.NewOutreachRepository(db)
	limiterRepo := repository.NewLimiterRepository(db)
	tagEmbeddingRepo := repository.NewTagEmbeddingRepository(db)

	openRouter := service.NewOpenRouterService(zlog)
	crm := service.NewCRMService(zlog)
	mailer, err := service.NewMailService(zlog)
	if err != nil {
		zlog.Fatal("mail service init failed", zap.Error(err))
	}

	var tagMatcher matching.TagMatcher
	switch outreachConfig.MatchStrategy {
	case "gemini", "embedding":
		gemini, err := service.NewGeminiService(ctx, zlog)
		if err != nil {
			zlog.Fatal("gemini init failed", zap.Error(err))
		}
		if outreachConfig.MatchStrategy == "gemini" {
			tagMatcher = gemini
		} else {
			tagMatcher = service.NewEmbeddingMatcher(gemini, tagEmbeddingRepo, outreachConfig.EmbeddingSimilarity, zlog)
		}
	default:
		// Deterministic tiered matching only.
	}

	matchingUC := usecase.NewMatchingUsecase(candidateRepo, roleRepo, matchRepo, tagMatcher, crm, openRouter, outreachConfig, zlog)
	outreachUC := usecase.NewOutreachUsecase(candidateRepo, roleRepo, matchRepo, outreachRepo, limiterRepo, mailer, crm, outreachConfig, mailConfig, zlog)
	followUpUC := usecase.NewFollowUpUsecase(candidateRepo, matchRepo, outreachRepo, outreachUC, mailer, outreachConfig, mailConfig, zlog)

	handler.NewMatchHandler(matchingUC).RegisterRoutes(app)
	handler.NewOutreachHandler(outreachUC, followUpUC).RegisterRoutes(app)

	zlog.Info("server running", zap.String("port", appConfig.Port))
	if err := app.Listen(appConfig.Port); err != nil {
		zlog.Fatal("server stopped", zap.Error(err))
	}
}

func ConnectDB() *gorm.DB {
	dbConfig := config.LoadDBConfig()
	appConfig := config.LoadAppConfig()

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		dbConfig.Host,
		dbConfig.User,
		dbConfig.Password,
		dbConfig.Name,
		dbConfig.Port,
		dbConfig.SSLMode,
		dbConfig.TimeZone,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Could not connect to database: %v", err)
	}
	pgDB, err := db.DB()
	if err != nil {
		log.Fatalf("Could not get database instance: %v", err)
	}
	if appConfig.Env != "production" {
		pgDB.SetMaxIdleConns(5)
		pgDB.SetMaxOpenConns(10)
		pgDB.SetConnMaxLifetime(30 * time.Minute)
	} else {
		pgDB.SetMaxIdleConns(20)
		pgDB.SetMaxOpenConns(200)
		pgDB.SetConnMaxLifetime(time.Hour)
	}

	err = db.AutoMigrate(
		&model.Candidate{},
		&model.Company{},
		&model.CompanyContact{},
		&model.Deal{},
		&model.Role{},
		&model.Match{},
		&model.OutreachLog{},
		&model.FollowUpTask{},
		&model.CandidateOutreachHistory{},
		&model.EmailLimiter{},
		&model.TagEmbedding{},
	)
	if err != nil {
		log.Fatal("migration failed: ", err)
	}
	return db
}
