package main

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"

	"github.com/dailypress/newsroom/app/controllers"
	"github.com/dailypress/newsroom/app/repository"
	"github.com/dailypress/newsroom/internal/pkg/archive"
	"github.com/dailypress/newsroom/internal/pkg/database"
	"github.com/dailypress/newsroom/internal/pkg/env"
	"github.com/dailypress/newsroom/internal/pkg/flipbook"
	"github.com/dailypress/newsroom/internal/pkg/magazine"
	"github.com/dailypress/newsroom/internal/pkg/router"
	"github.com/dailypress/newsroom/internal/pkg/summary"
)

func main() {
	env.SetupEnvFile()

	db, err := database.SetupDatabase()
	if err != nil {
		log.Fatal(err)
	}
	defer database.CloseDatabase(db)

	app := NewApplication(db)
	err = app.Listen(fmt.Sprintf("%s:%s", env.GetEnv("APP_HOST", "localhost"), env.GetEnv("APP_PORT", "4000")))
	log.Fatal(err)
}

func NewApplication(db *gorm.DB) *fiber.App {
	repos := repository.NewRepositories(db)
	outputDir := env.GetEnv("MAGAZINE_OUTPUT_DIR", "./public/generated_pdfs")

	gemini := summary.NewClientFromEnv()
	summarySvc := summary.NewService(gemini)

	generator := &magazine.Generator{
		OutputDir:  outputDir,
		LogoSrc:    env.GetEnv("PUBLIC_BASE_URL", "") + "/uploads/logo.png",
		Renderer:   magazine.NewChromeRenderer(),
		Assembler:  magazine.NewAssembler(),
		Summarizer: summarySvc,
	}
	if archiver := archive.SetupFromEnv(); archiver != nil {
		generator.Archiver = archiver
	}

	deps := &router.Dependencies{
		News:      controllers.NewNewsController(repos.News, gemini),
		AdminNews: controllers.NewAdminNewsController(repos.News, repos.Priority),
		Magazine:  controllers.NewMagazineController(generator, repos.News, summarySvc),
		Flipbook:  controllers.NewFlipbookController(flipbook.NewClientFromEnv(), outputDir),
		OutputDir: outputDir,
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 104857600, // 100 MiB, image-heavy multipart submissions
	})
	app.Use(recover.New(), logger.New())
	app.Get("/metrics", monitor.New())

	// ROUTER
	router.InstallRouter(app, deps)

	return app
}
