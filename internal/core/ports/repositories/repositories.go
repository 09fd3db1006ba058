package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	AccountRepo  AccountRepositoryFacade
	JournalRepo  JournalRepositoryFacade
	ProductRepo  ProductRepositoryFacade
	EmployeeRepo EmployeeRepositoryFacade
	JobRepo      JobRepositoryFacade
	SaleRepo     SaleRepositoryFacade
	CustomerRepo CustomerRepositoryFacade
	SettingsRepo SettingsRepositoryFacade
	TxManager    TransactionManager
}
