package main

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"factuur/internal/config"
	"factuur/internal/email/noop"
	"factuur/internal/email/ses"
	"factuur/internal/handler"
	"factuur/internal/port"
	"factuur/internal/repository/postgres"
	"factuur/internal/router"
	"factuur/internal/service"
	s3storage "factuur/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// Local development reads a .env file; production relies on real env vars.
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	userRepo := postgres.NewUserRepo(db)
	invoiceRepo := postgres.NewStoredInvoiceRepo(db)
	expenseRepo := postgres.NewExpenseRepo(db)
	incomeRepo := postgres.NewIncomeRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Initialize email delivery
	var emailSender port.EmailSender
	switch cfg.Email.Provider {
	case "ses":
		emailSender, err = ses.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName)
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
	default:
		emailSender = noop.NewNoopSender()
	}

	// Initialize services
	authSvc := service.NewAuthService(userRepo, cfg.JWT)
	invoiceSvc := service.NewInvoiceService(invoiceRepo, s3Client, emailSender, &cfg.S3, &cfg.Invoice)
	expenseSvc := service.NewExpenseService(expenseRepo)
	incomeSvc := service.NewIncomeService(incomeRepo)
	reportSvc := service.NewReportService(incomeRepo, expenseRepo, invoiceRepo)

	// Initialize handlers
	authH := handler.NewAuthHandler(authSvc)
	invoiceH := handler.NewInvoiceHandler(invoiceSvc)
	expenseH := handler.NewExpenseHandler(expenseSvc)
	incomeH := handler.NewIncomeHandler(incomeSvc)
	reportH := handler.NewReportHandler(reportSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(cfg, authSvc, authH, invoiceH, expenseH, incomeH, reportH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
