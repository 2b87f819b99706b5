package container

import (
	"database/sql"
	"os"
	"strconv"

	"go.uber.org/zap"

	"github.com/Dineshmiriyam/AssetManagementApp-sub000/internal/assets"
	"github.com/Dineshmiriyam/AssetManagementApp-sub000/internal/assignments"
	auditLogRepo "github.com/Dineshmiriyam/AssetManagementApp-sub000/internal/auditlog"
	"github.com/Dineshmiriyam/AssetManagementApp-sub000/internal/billing"
	"github.com/Dineshmiriyam/AssetManagementApp-sub000/internal/clients"
	"github.com/Dineshmiriyam/AssetManagementApp-sub000/internal/issues"
	"github.com/Dineshmiriyam/AssetManagementApp-sub000/internal/repairs"
	"github.com/Dineshmiriyam/AssetManagementApp-sub000/internal/repository"
	"github.com/Dineshmiriyam/AssetManagementApp-sub000/internal/sla"
	"github.com/Dineshmiriyam/AssetManagementApp-sub000/internal/users"
	"github.com/Dineshmiriyam/AssetManagementApp-sub000/pkg/auditlog"
	"github.com/Dineshmiriyam/AssetManagementApp-sub000/pkg/security"
)

type Container struct {
	Repository         *repository.Repository
	AuditLog           *auditlog.Sink
	LoginHandler       *security.LoginHandler
	AssetsHandler      *assets.AssetsHandler
	AssignmentsHandler *assignments.AssignmentsHandler
	RepairsHandler     *repairs.RepairsHandler
	ClientsHandler     *clients.ClientsHandler
	IssuesHandler      *issues.IssuesHandler
	BillingHandler     *billing.BillingHandler
	SLAHandler         *sla.SLAHandler
	AuditLogHandler    *auditLogRepo.AuditLogHandler
	UserHandler        *users.UserHandler
}

func NewAppContainer(db *sql.DB, dialect string, log *zap.Logger) *Container {
	repo := repository.NewRepository(db, dialect)

	auditRepo := auditLogRepo.NewRepository(repo)
	sink := auditlog.NewSink(auditRepo, log)

	assetsRepo := assets.NewRepository(repo)
	assignmentRepo := assignments.NewRepository(repo)
	repairRepo := repairs.NewRepository(repo)
	clientRepo := clients.NewRepository(repo)
	issueRepo := issues.NewRepository(repo)
	userRepo := users.NewRepository(repo)
	billingRepo := billing.NewRepository(repo)

	assetService := assets.NewAssetService(assetsRepo, assignmentRepo, repairRepo, repo, sink, log)
	billingService := billing.NewService(billingRepo, configuredMonthlyRate(log))

	return &Container{
		Repository:         repo,
		AuditLog:           sink,
		LoginHandler:       security.NewLoginHandler(repo),
		AssetsHandler:      assets.NewHandler(assetsRepo, assetService, sink, auditRepo, log),
		AssignmentsHandler: assignments.NewHandler(assignmentRepo, log),
		RepairsHandler:     repairs.NewHandler(repairRepo, sink, log),
		ClientsHandler:     clients.NewHandler(clientRepo, sink, log),
		IssuesHandler:      issues.NewHandler(issueRepo, sink, log),
		BillingHandler:     billing.NewHandler(billingService, sink, log),
		SLAHandler:         sla.NewHandler(assetsRepo, sink, log),
		AuditLogHandler:    auditLogRepo.NewHandler(auditRepo, sink, log),
		UserHandler:        users.NewHandler(userRepo, log),
	}
}

// configuredMonthlyRate reads the optional BILLING_MONTHLY_RATE override.
// Zero keeps the built-in flat rate.
func configuredMonthlyRate(log *zap.Logger) float64 {
	raw := os.Getenv("BILLING_MONTHLY_RATE")
	if raw == "" {
		return 0
	}

	rate, err := strconv.ParseFloat(raw, 64)
	if err != nil || rate <= 0 {
		log.Warn("Ignoring invalid BILLING_MONTHLY_RATE", zap.String("value", raw))
		return 0
	}

	return rate
}
