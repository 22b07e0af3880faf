package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pipewise/pipewise/internal/entity"
	"github.com/pipewise/pipewise/internal/infra/database"
	"github.com/pipewise/pipewise/internal/infra/http/handlers"
	"github.com/pipewise/pipewise/internal/infra/http/middleware"
	"github.com/pipewise/pipewise/internal/infra/integration/gemini"
	"github.com/pipewise/pipewise/internal/infra/mail"
	"github.com/pipewise/pipewise/internal/infra/queue"
	"github.com/pipewise/pipewise/internal/infra/worker"
	"github.com/pipewise/pipewise/internal/usecase"
)

func main() {
	godotenv.Load()
	ctx := context.Background()

	db, err := database.NewDBConnection(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	rabbitMQ, err := queue.NewRabbitMQ(
		getenv("RABBITMQ_USER", "guest"),
		getenv("RABBITMQ_PASS", "guest"),
		getenv("RABBITMQ_HOST", "localhost"),
		getenv("RABBITMQ_PORT", "5672"),
	)
	if err != nil {
		log.Fatal(err)
	}
	defer rabbitMQ.Conn.Close()
	defer rabbitMQ.Ch.Close()

	// 1. Repositories
	leadRepo := database.NewLeadRepository(db)
	workflowRepo := database.NewWorkflowRepository(db)
	activityRepo := database.NewActivityRepository(db)
	taskRepo := database.NewTaskRepository(db)
	reportRepo := database.NewReportRepository(db)
	repRepo := database.NewSalesRepRepository(db)

	// 2. Adapters
	producer := queue.NewProducer(rabbitMQ.Ch)
	mailPort, _ := strconv.Atoi(getenv("MAIL_PORT", "587"))
	mailSender := mail.NewEmailSender(
		os.Getenv("MAIL_HOST"), mailPort, os.Getenv("MAIL_USER"), os.Getenv("MAIL_PASS"),
		getenv("MAIL_FROM", "no-reply@pipewise.io"),
	)

	summarizer, err := gemini.NewClient(ctx, os.Getenv("GEMINI_API_KEY"), os.Getenv("GEMINI_MODEL"))
	if err != nil {
		log.Fatal(err)
	}

	// 3. Use cases
	workflow := entity.DefaultWorkflow()
	createLeadUC := usecase.NewCreateLeadUseCase(leadRepo, repRepo)
	applyActionUC := usecase.NewApplyActionUseCase(workflow, workflowRepo)
	recordActivityUC := usecase.NewRecordActivityUseCase(activityRepo, leadRepo)
	taskUC := usecase.NewTaskUseCase(taskRepo, leadRepo)
	dashboardUC := usecase.NewDashboardUseCase(leadRepo)
	reportUC := usecase.NewGenerateReportUseCase(reportRepo, repRepo, dashboardUC, summarizer, producer, mailSender)

	// 4. Background workers
	reportWorker := queue.NewWorker(rabbitMQ.Ch, reportUC)
	go reportWorker.Start(queue.QueueName)

	reminderWorker := worker.NewTaskReminderWorker(db, mailSender)
	go reminderWorker.Start(ctx)

	// 5. Handlers
	leadHandler := handlers.NewLeadHandler(createLeadUC, applyActionUC)
	activityHandler := handlers.NewActivityHandler(recordActivityUC)
	taskHandler := handlers.NewTaskHandler(taskUC)
	dashboardHandler := handlers.NewDashboardHandler(dashboardUC)
	reportHandler := handlers.NewReportHandler(reportUC)
	healthHandler := handlers.NewHealthHandler(db, rabbitMQ.Conn)

	// 6. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{getenv("FRONTEND_ORIGIN", "http://localhost:5173")},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}))

	r.Post("/leads", leadHandler.Create)
	r.Get("/leads", leadHandler.List)
	r.Get("/leads/{id}", leadHandler.Get)
	r.Post("/leads/{id}/actions", leadHandler.ApplyAction)
	r.Post("/leads/{id}/activities", activityHandler.Record)
	r.Get("/leads/{id}/activities", activityHandler.ListByLead)
	r.Post("/leads/{id}/tasks", taskHandler.Create)
	r.Post("/tasks/{id}/complete", taskHandler.Complete)
	r.Get("/tasks/overdue", taskHandler.Overdue)
	r.Get("/dashboard/summary", dashboardHandler.Summary)
	r.Post("/reports", reportHandler.Enqueue)
	r.Get("/reports/{id}", reportHandler.Get)
	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	port := ":" + getenv("PORT", "8080")
	log.Printf("pipewise API listening on %s", port)
	if err := http.ListenAndServe(port, r); err != nil {
		log.Fatal(err)
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
