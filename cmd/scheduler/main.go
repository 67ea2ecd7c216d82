package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/leaseflow/billing-engine/internal/config"
	"github.com/leaseflow/billing-engine/internal/domain"
	"github.com/leaseflow/billing-engine/internal/repository"
	"github.com/leaseflow/billing-engine/internal/schedule"
	"github.com/leaseflow/billing-engine/internal/service"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	log := initLogger(cfg)
	log.Info("Starting billing scheduler...")

	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	leaseRepo := repository.NewLeaseRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	billingService := service.NewBillingService(leaseRepo, paymentRepo, nil, cfg, log)

	location, err := time.LoadLocation(cfg.Scheduler.Timezone)
	if err != nil {
		log.Fatalf("Invalid scheduler timezone: %v", err)
	}

	c := cron.New(cron.WithSeconds(), cron.WithLocation(location))
	setupCronJobs(c, cfg, billingService, leaseRepo, log)

	c.Start()
	log.Info("Scheduler started successfully")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down scheduler...")
	c.Stop()
	log.Info("Scheduler stopped")
}

func initLogger(cfg *config.Config) *logrus.Logger {
	log := logrus.New()

	level, err := logrus.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	if cfg.Logging.Format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	return log
}

func setupCronJobs(c *cron.Cron, cfg *config.Config, billingService service.Billing, leaseRepo repository.LeaseRepository, log *logrus.Logger) {
	// Daily overdue sweep at midnight
	_, err := c.AddFunc("0 0 0 * * *", func() {
		log.Info("Running daily overdue sweep...")
		count, err := billingService.SweepOverdue(context.Background(), time.Now())
		if err != nil {
			log.WithError(err).Error("overdue sweep failed")
			return
		}
		log.WithField("payments_overdue", count).Info("overdue sweep finished")
	})
	if err != nil {
		log.WithError(err).Error("scheduling overdue sweep failed")
	}

	// Daily reminder pass at 9 AM for rent falling due soon
	_, err = c.AddFunc("0 0 9 * * *", func() {
		log.Info("Running payment reminder pass...")
		logUpcomingReminders(context.Background(), cfg, leaseRepo, log)
	})
	if err != nil {
		log.WithError(err).Error("scheduling reminder pass failed")
	}

	log.Info("Cron jobs scheduled successfully")
}

// logUpcomingReminders surfaces leases with rent due within the reminder
// window. Delivery (email, push) is owned by downstream consumers of these
// log events.
func logUpcomingReminders(ctx context.Context, cfg *config.Config, leaseRepo repository.LeaseRepository, log *logrus.Logger) {
	today := schedule.DateOnly(time.Now())
	cutoff := today.AddDate(0, 0, cfg.Scheduler.ReminderDays)

	leases, err := leaseRepo.GetActive(ctx)
	if err != nil {
		log.WithError(err).Error("loading active leases failed")
		return
	}

	reminders := 0
	for _, lease := range leases {
		next, ok := nextDueDate(lease, today)
		if !ok || next.After(cutoff) {
			continue
		}
		reminders++
		log.WithFields(logrus.Fields{
			"lease_id":  lease.ID,
			"tenant_id": lease.TenantID,
			"due_date":  next.Format("2006-01-02"),
			"amount":    lease.MonthlyRent,
		}).Info("payment reminder due")
	}

	log.WithField("reminders", reminders).Info("reminder pass finished")
}

func nextDueDate(lease *domain.Lease, today time.Time) (time.Time, bool) {
	dates, err := schedule.DueDates(lease.StartDate, lease.EndDate, lease.PaymentDay)
	if err != nil {
		return time.Time{}, false
	}
	for _, due := range dates {
		if !due.Before(today) {
			return due, true
		}
	}
	return time.Time{}, false
}
