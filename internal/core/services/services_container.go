package services

import (
	portsrepo "github.com/finbooks/gl_service/internal/core/ports/repositories"
	portssvc "github.com/finbooks/gl_service/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Account = NewAccountService(repos.AccountRepo)
	container.Journal = NewJournalService(repos.JournalRepo, repos.AccountRepo)
	container.Reporting = NewReportingService(repos.ReportingRepo, repos.AccountRepo, repos.OpenItemRepo)

	return container
}
