package repositories

// RepositoryProvider bundles the repository implementations handed to the
// service container at startup.
type RepositoryProvider struct {
	AccountRepo   AccountRepositoryFacade
	JournalRepo   JournalRepositoryFacade
	ReportingRepo ReportingRepository
	OpenItemRepo  OpenItemSource
}
