package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron"

	config "github.com/hilit308-creator/autosocial/configs"
	"github.com/hilit308-creator/autosocial/internal/api/handlers"
	job "github.com/hilit308-creator/autosocial/internal/jobs"
	"github.com/hilit308-creator/autosocial/internal/queue"
	"github.com/hilit308-creator/autosocial/internal/repository"
	"github.com/hilit308-creator/autosocial/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Failed to load environment variables", err)
	}

	cfg := config.LoadConfig()

	db, err := sql.Open("postgres", cfg.PostgresURI)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer closeDB(db)

	if err := db.Ping(); err != nil {
		log.Fatalf("Database is unreachable: %v", err)
	}

	redisConn := asynq.RedisClientOpt{Addr: cfg.RedisURI}
	asynqClient := asynq.NewClient(redisConn)
	defer asynqClient.Close()

	app := fiber.New(fiber.Config{
		ReadTimeout:  10 * time.Minute,
		WriteTimeout: 10 * time.Minute,
		BodyLimit:    100 * 1024 * 1024, // 100 MB
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOriginsFunc: func(origin string) bool {
			return true
		},
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           3600,
	}))

	postRepo := repository.NewPostRepository(db)
	versionRepo := repository.NewPostVersionRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	socialAccountRepo := repository.NewSocialAccountRepository(db)
	historyRepo := repository.NewPublishHistoryRepository(db)

	textModel, err := service.NewGeminiModel(context.Background(), *cfg)
	if err != nil {
		log.Fatalf("Failed to create text model client: %v", err)
	}

	queueClient := queue.NewClient(asynqClient)

	r2Service := service.NewR2Service(*cfg)
	generatorService := service.NewGeneratorService(textModel)
	postService := service.NewPostService(postRepo, versionRepo, profileRepo, generatorService)
	profileService := service.NewProfileService(profileRepo)
	calendarService := service.NewCalendarService(postRepo, queueClient)
	schedulerService := service.NewSchedulerService(postRepo, queueClient)
	mediaService := service.NewMediaService(postRepo, r2Service)
	connectService := service.NewConnectService(*cfg, socialAccountRepo)
	twitterService := service.NewTwitterService(*cfg, socialAccountRepo)

	instagramService := service.NewInstagramService(*cfg, socialAccountRepo)
	facebookService := service.NewFacebookService(*cfg, socialAccountRepo)
	tiktokService := service.NewTiktokService(*cfg, socialAccountRepo)
	youtubeService := service.NewYoutubeService(*cfg, socialAccountRepo)
	linkedinService := service.NewLinkedinService(*cfg, socialAccountRepo)

	publishService := service.NewPublishService(*cfg, postRepo, historyRepo, socialAccountRepo,
		instagramService, facebookService, tiktokService, youtubeService, linkedinService)

	post := handlers.NewPostHandler(postService)
	app.Post("/posts", post.CreatePost)
	app.Get("/posts", post.ListPosts)
	app.Get("/posts/next", post.GetNextPost)
	app.Get("/posts/:id", post.GetPost)
	app.Patch("/posts/:id", post.UpdatePost)
	app.Delete("/posts/:id", post.DeletePost)
	app.Post("/posts/:id/rewrite", post.RewritePost)
	app.Get("/posts/:id/versions", post.ListVersions)
	app.Post("/posts/:id/versions/:n/restore", post.RestoreVersion)

	profile := handlers.NewProfileHandler(profileService)
	app.Get("/profile", profile.GetProfile)
	app.Put("/profile", profile.UpdateProfile)

	calendar := handlers.NewCalendarHandler(calendarService)
	app.Get("/calendar/week", calendar.GetWeek)
	app.Get("/calendar/month/:year/:month", calendar.GetMonth)
	app.Get("/calendar/upcoming", calendar.GetUpcoming)
	app.Post("/calendar/schedule/:postId", calendar.SchedulePost)
	app.Post("/calendar/unschedule/:postId", calendar.UnschedulePost)

	publish := handlers.NewPublishHandler(publishService)
	app.Post("/publish/process/scheduled", publish.ProcessScheduled)
	app.Get("/publish/status", publish.PublishingStatus)
	app.Get("/publish/:postId/history", publish.History)
	app.Post("/publish/:postId", publish.PublishPost)

	scheduler := handlers.NewSchedulerHandler(schedulerService)
	app.Get("/scheduler/queue", scheduler.GetQueue)
	app.Get("/scheduler/ready", scheduler.GetReady)
	app.Post("/scheduler/:postId/retry", scheduler.RetryPost)

	media := handlers.NewMediaHandler(mediaService)
	app.Post("/media/upload", media.UploadMedia)
	app.Delete("/media/:postId", media.RemoveMedia)

	connect := handlers.NewConnectHandler(*cfg, connectService)
	app.Get("/connect/accounts", connect.ListAccounts)
	app.Get("/connect/:platform", connect.AuthURL)
	app.Get("/connect/:platform/callback", connect.Callback)
	app.Delete("/connect/:platform", connect.Disconnect)

	tweet := handlers.NewTweetHandler(twitterService)
	app.Post("/tweets", tweet.PostTweet)

	// cron jobs
	refreshTokenJob := job.NewTokenRefreshJob(socialAccountRepo, connectService)
	dispatchJob := job.NewDispatchJob(publishService)

	c := cron.New()
	c.AddFunc("@every 00h01m00s", dispatchJob.Run)
	c.AddFunc("@every 00h10m00s", refreshTokenJob.RefreshTokens)
	c.Start()

	// queue worker
	queueW := queue.NewQueue(postRepo, publishService)

	go func() {
		server := asynq.NewServer(redisConn, asynq.Config{
			Concurrency: 10,
		})

		mux := asynq.NewServeMux()
		mux.HandleFunc(queue.TaskTypePublishPost, queueW.HandlePublishPostTask)

		log.Println("Starting the Asynq server...")
		if err := server.Run(mux); err != nil {
			log.Fatalf("Could not start Asynq server: %v", err)
		}
	}()

	go func() {
		if err := app.Listen(":3000"); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()
	log.Println("Server is running on http://localhost:3000")

	gracefulShutdown(app, db)
}

func closeDB(db *sql.DB) {
	fmt.Fprint(os.Stdout, "Closing database connection... ")
	if err := db.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to close database: %v", err)
		return
	}
	fmt.Fprintln(os.Stdout, "Done")
}

func gracefulShutdown(app *fiber.App, db *sql.DB) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Fatalf("Failed to shut down server: %v", err)
	}

	closeDB(db)
	log.Println("Server shutdown complete.")
}
