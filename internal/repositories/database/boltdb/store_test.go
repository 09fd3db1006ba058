package boltdb

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/SscSPs/pos_ledger/internal/apperrors"
	"github.com/SscSPs/pos_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/pos_ledger/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type StoreTestSuite struct {
	suite.Suite
	store *Store
	repos portsrepo.RepositoryProvider
	ctx   context.Context
	now   time.Time
}

func (s *StoreTestSuite) SetupTest() {
	store, err := Open(filepath.Join(s.T().TempDir(), "ledger.db"), time.Second)
	s.Require().NoError(err)
	s.store = store
	s.repos = NewRepositoryProvider(store)
	s.ctx = context.Background()
	s.now = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	for _, acc := range domain.DefaultChart() {
		acc.AuditFields = domain.NewAuditFields("tester", s.now)
		s.Require().NoError(s.repos.AccountRepo.SaveAccount(s.ctx, acc))
	}
}

func (s *StoreTestSuite) TearDownTest() {
	s.Require().NoError(s.store.Close())
}

func TestStoreTestSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}

func (s *StoreTestSuite) entry(id string, date time.Time, ref string, amount int64) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:     id,
		Date:        date,
		Description: "entry " + id,
		Reference:   ref,
		Lines: []domain.JournalLine{
			{LineID: id + "-1", EntryID: id, LineNo: 1, AccountCode: "1-1100", Debit: decimal.NewFromInt(amount), Credit: decimal.Zero},
			{LineID: id + "-2", EntryID: id, LineNo: 2, AccountCode: "4-1000", Debit: decimal.Zero, Credit: decimal.NewFromInt(amount)},
		},
		AuditFields: domain.NewAuditFields("tester", s.now),
	}
}

func (s *StoreTestSuite) TestAccounts() {
	list, err := s.repos.AccountRepo.ListAccounts(s.ctx)
	s.Require().NoError(err)
	s.Len(list, len(domain.DefaultChart()))
	s.Equal("1-1100", list[0].Code)

	err = s.repos.AccountRepo.SaveAccount(s.ctx, domain.Account{Code: "1-1100", Name: "dup", AccountType: domain.Asset})
	s.ErrorIs(err, apperrors.ErrDuplicateAccountCode)

	found, err := s.repos.AccountRepo.FindAccountsByCodes(s.ctx, []string{"1-1100", "9-9999"})
	s.Require().NoError(err)
	s.Len(found, 1)
	s.Equal(domain.Asset, found["1-1100"].AccountType)

	_, err = s.repos.AccountRepo.FindAccountByCode(s.ctx, "9-9999")
	s.ErrorIs(err, apperrors.ErrNotFound)

	s.ErrorIs(s.repos.AccountRepo.UpdateAccount(s.ctx, domain.Account{Code: "9-9999"}), apperrors.ErrNotFound)
}

func (s *StoreTestSuite) TestDeleteAccountInUse() {
	s.Require().NoError(s.repos.JournalRepo.SaveEntry(s.ctx, s.entry("e1", s.now, "JV-1", 100)))

	err := s.repos.AccountRepo.DeleteAccount(s.ctx, "1-1100")
	s.ErrorIs(err, apperrors.ErrAccountInUse)
	s.ErrorIs(err, apperrors.ErrConflict)

	s.NoError(s.repos.AccountRepo.DeleteAccount(s.ctx, "6-2000"))
	s.ErrorIs(s.repos.AccountRepo.DeleteAccount(s.ctx, "6-2000"), apperrors.ErrNotFound)
}

func (s *StoreTestSuite) TestSaveEntryRejectsUnknownAccount() {
	e := s.entry("e1", s.now, "JV-1", 100)
	e.Lines[1].AccountCode = "9-9999"

	err := s.repos.JournalRepo.SaveEntry(s.ctx, e)
	s.ErrorIs(err, apperrors.ErrUnknownAccount)

	_, err = s.repos.JournalRepo.FindEntryByID(s.ctx, "e1")
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *StoreTestSuite) TestEntriesRoundTripInOrder() {
	day1 := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)
	s.Require().NoError(s.repos.JournalRepo.SaveEntry(s.ctx, s.entry("b", day1, "INV-1", 50)))
	s.Require().NoError(s.repos.JournalRepo.SaveEntry(s.ctx, s.entry("a", day2, "INV-1", 70)))
	s.Require().NoError(s.repos.JournalRepo.SaveEntry(s.ctx, s.entry("c", day1, "PAY-1", 20)))

	all, err := s.repos.JournalRepo.ListEntries(s.ctx, domain.JournalFilter{})
	s.Require().NoError(err)
	s.Require().Len(all, 3)
	s.Equal([]string{"b", "c", "a"}, []string{all[0].EntryID, all[1].EntryID, all[2].EntryID})
	s.Require().Len(all[0].Lines, 2)
	s.Equal(1, all[0].Lines[0].LineNo)
	s.True(decimal.NewFromInt(50).Equal(all[0].Lines[0].Debit))

	filtered, err := s.repos.JournalRepo.ListEntries(s.ctx, domain.JournalFilter{From: day2})
	s.Require().NoError(err)
	s.Require().Len(filtered, 1)
	s.Equal("a", filtered[0].EntryID)

	byRef, err := s.repos.JournalRepo.ListEntriesByReference(s.ctx, "INV-1")
	s.Require().NoError(err)
	s.Len(byRef, 2)

	count, err := s.repos.JournalRepo.CountLinesByAccount(s.ctx, "1-1100")
	s.Require().NoError(err)
	s.Equal(3, count)
}

func (s *StoreTestSuite) TestListEntriesPage() {
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"e1", "e2", "e3"} {
		s.Require().NoError(s.repos.JournalRepo.SaveEntry(s.ctx, s.entry(id, day.AddDate(0, 0, i), "JV", 10)))
	}

	page, token, err := s.repos.JournalRepo.ListEntriesPage(s.ctx, 2, nil)
	s.Require().NoError(err)
	s.Require().Len(page, 2)
	s.Equal("e3", page[0].EntryID)
	s.Equal("e2", page[1].EntryID)
	s.Require().NotNil(token)

	page, token, err = s.repos.JournalRepo.ListEntriesPage(s.ctx, 2, token)
	s.Require().NoError(err)
	s.Require().Len(page, 1)
	s.Equal("e1", page[0].EntryID)
	s.Nil(token)

	bad := "not-a-token"
	_, _, err = s.repos.JournalRepo.ListEntriesPage(s.ctx, 2, &bad)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *StoreTestSuite) TestTransactionRollsBackOnError() {
	boom := errors.New("boom")
	err := s.repos.TxManager.WithinTransaction(s.ctx, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		s.Require().NoError(repos.JournalRepo.SaveEntry(ctx, s.entry("e1", s.now, "JV-1", 100)))
		s.Require().NoError(repos.ProductRepo.SaveProduct(ctx, domain.Product{ProductID: "p1", Name: "Tea", Stock: 5}))

		// Nested units of work join the open transaction.
		return repos.TxManager.WithinTransaction(ctx, func(ctx context.Context, inner portsrepo.RepositoryProvider) error {
			_, err := inner.ProductRepo.FindProductForUpdate(ctx, "p1")
			s.Require().NoError(err)
			return boom
		})
	})
	s.ErrorIs(err, boom)

	_, err = s.repos.JournalRepo.FindEntryByID(s.ctx, "e1")
	s.ErrorIs(err, apperrors.ErrNotFound)
	_, err = s.repos.ProductRepo.FindProductByID(s.ctx, "p1")
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *StoreTestSuite) TestSalesAndSettings() {
	sale := domain.Sale{
		SaleID:        "INV-1",
		Date:          time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		Items:         []domain.SaleItem{{LineNo: 1, ProductID: "p1", ProductName: "Tea", Quantity: 2, UnitPrice: decimal.NewFromInt(10), UnitCost: decimal.NewFromInt(4)}},
		Subtotal:      decimal.NewFromInt(20),
		Total:         decimal.NewFromInt(20),
		TotalCost:     decimal.NewFromInt(8),
		PaymentMethod: domain.PaymentCash,
	}
	s.Require().NoError(s.repos.SaleRepo.SaveSale(s.ctx, sale))
	s.ErrorIs(s.repos.SaleRepo.SaveSale(s.ctx, sale), apperrors.ErrDuplicate)

	got, err := s.repos.SaleRepo.FindSaleByID(s.ctx, "INV-1")
	s.Require().NoError(err)
	s.Require().Len(got.Items, 1)
	s.Equal(2, got.Items[0].Quantity)
	s.True(decimal.NewFromInt(8).Equal(got.TotalCost))

	sales, err := s.repos.SaleRepo.ListSales(s.ctx, domain.SaleFilter{To: time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC)})
	s.Require().NoError(err)
	s.Empty(sales)

	_, err = s.repos.SettingsRepo.GetSettings(s.ctx)
	s.ErrorIs(err, apperrors.ErrNotFound)
	s.Require().NoError(s.repos.SettingsRepo.SaveSettings(s.ctx, domain.Settings{StoreName: "Corner Shop", LowStockThreshold: 3}))
	settings, err := s.repos.SettingsRepo.GetSettings(s.ctx)
	s.Require().NoError(err)
	s.Equal(3, settings.LowStockThreshold)
}

func TestMapError(t *testing.T) {
	assert.Nil(t, mapError(nil))
	assert.ErrorIs(t, mapError(context.DeadlineExceeded), apperrors.ErrPersistenceUnavailable)
	assert.True(t, apperrors.IsRetryable(mapError(context.DeadlineExceeded)))
	assert.ErrorIs(t, mapError(apperrors.ErrAccountInUse), apperrors.ErrAccountInUse)
}

func TestOpenLockedFileTimesOut(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.db")
	first, err := Open(path, time.Second)
	require.NoError(t, err)
	defer first.Close()

	_, err = Open(path, 50*time.Millisecond)
	assert.ErrorIs(t, err, apperrors.ErrPersistenceUnavailable)
}

func TestCanceledContext(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "ledger.db"), time.Second)
	require.NoError(t, err)
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	<-ctx.Done()

	_, err = NewRepositoryProvider(store).AccountRepo.ListAccounts(ctx)
	assert.ErrorIs(t, err, apperrors.ErrPersistenceUnavailable)
}
