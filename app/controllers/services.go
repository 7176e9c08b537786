package controllers

import (
	"strings"
	"sync"

	"github.com/gofiber/fiber/v2/log"

	"github.com/rentcourt/ftpr/app/repository"
	"github.com/rentcourt/ftpr/internal/pkg/casework"
	"github.com/rentcourt/ftpr/internal/pkg/contractorjobs"
	"github.com/rentcourt/ftpr/internal/pkg/env"
	"github.com/rentcourt/ftpr/internal/pkg/jobqueue"
	"github.com/rentcourt/ftpr/internal/pkg/payments"
	"github.com/rentcourt/ftpr/internal/pkg/recovery"
)

// Services is everything the handlers depend on.
type Services struct {
	Repos          *repository.Repositories
	Jobs           jobqueue.Enqueuer
	Cases          *casework.Service
	ContractorJobs *contractorjobs.Service
	Payments       *payments.Service
	Recovery       *recovery.Issuer
	AppURL         string
}

// NewServices wires the domain services around repos. jobs may be nil.
func NewServices(repos *repository.Repositories, jobs jobqueue.Enqueuer, appSecret, webhookSecret string) (*Services, error) {
	issuer, err := recovery.NewIssuer(appSecret)
	if err != nil {
		return nil, err
	}
	return &Services{
		Repos:          repos,
		Jobs:           jobs,
		Cases:          casework.NewService(repos, jobs),
		ContractorJobs: contractorjobs.NewService(repos, jobs),
		Payments:       payments.NewService(repos, webhookSecret),
		Recovery:       issuer,
		AppURL:         strings.TrimRight(env.GetEnv("APP_URL", "http://localhost:4000"), "/"),
	}, nil
}

var (
	services   *Services
	servicesMu sync.Mutex
)

// InitializeServices installs the global services instance.
func InitializeServices(s *Services) {
	servicesMu.Lock()
	defer servicesMu.Unlock()
	services = s
}

// GetServices returns the global services, building them from the global
// repositories and job queue on first use.
func GetServices() *Services {
	servicesMu.Lock()
	defer servicesMu.Unlock()
	if services == nil {
		s, err := NewServices(
			repository.GetGlobalRepositories(),
			jobqueue.GetManager().GetQueue(),
			env.GetEnv("APP_SECRET", ""),
			env.GetEnv("PAYMENT_WEBHOOK_SECRET", ""),
		)
		if err != nil {
			log.Fatalf("[Controllers] Failed to initialize services: %v", err)
		}
		services = s
	}
	return services
}
