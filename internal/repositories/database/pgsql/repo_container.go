package pgsql

import (
	portsrepo "github.com/finbooks/gl_service/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	journalRepo := newPgxJournalRepository(dbPool, accountRepo)
	reportingRepo := newReportingRepository(dbPool)
	openItemRepo := newOpenItemRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AccountRepo:   accountRepo,
		JournalRepo:   journalRepo,
		ReportingRepo: reportingRepo,
		OpenItemRepo:  openItemRepo,
	}
}
