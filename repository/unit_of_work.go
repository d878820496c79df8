package repository

import (
	"context"
	"fmt"

	"vaultrush/database"
	"vaultrush/events"
	"vaultrush/service"

	"github.com/jackc/pgx/v5"
)

// unitOfWork implements the UnitOfWork interface
type unitOfWork struct {
	db               *database.DB
	tx               pgx.Tx
	ctx              context.Context
	transactionalBus *events.TransactionalBus
	accountRepo      service.AccountRepository
	artifactRepo     service.ArtifactRepository
	auctionRepo      service.AuctionRepository
	marketOrderRepo  service.MarketOrderRepository
	stockRepo        service.StockRepository
	loanRepo         service.LoanRepository
	allianceRepo     service.AllianceRepository
	warRepo          service.WarRepository
	eventRepo        service.EventRepository
	ledgerRepo       service.LedgerRepository
}

// NewUnitOfWorkFactory creates a new UnitOfWork factory
func NewUnitOfWorkFactory(db *database.DB, eventBus *events.Bus) service.UnitOfWorkFactory {
	return &unitOfWorkFactory{
		db:       db,
		eventBus: eventBus,
	}
}

type unitOfWorkFactory struct {
	db       *database.DB
	eventBus *events.Bus
}

func (f *unitOfWorkFactory) Create() service.UnitOfWork {
	return &unitOfWork{
		db:               f.db,
		transactionalBus: events.NewTransactionalBus(f.eventBus),
	}
}

// Begin starts a new transaction
func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}

	tx, err := u.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	u.tx = tx
	u.ctx = ctx

	// Create repositories with the transaction
	u.accountRepo = newAccountRepositoryWithTx(tx)
	u.artifactRepo = newArtifactRepositoryWithTx(tx)
	u.auctionRepo = newAuctionRepositoryWithTx(tx)
	u.marketOrderRepo = newMarketOrderRepositoryWithTx(tx)
	u.stockRepo = newStockRepositoryWithTx(tx)
	u.loanRepo = newLoanRepositoryWithTx(tx)
	u.allianceRepo = newAllianceRepositoryWithTx(tx)
	u.warRepo = newWarRepositoryWithTx(tx)
	u.eventRepo = newEventRepositoryWithTx(tx)
	u.ledgerRepo = newLedgerRepositoryWithTx(tx)

	return nil
}

// Commit commits the transaction
func (u *unitOfWork) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}

	err := u.tx.Commit(u.ctx)
	if err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	u.tx = nil

	// Flush pending events after successful commit
	if u.transactionalBus != nil {
		u.transactionalBus.Flush(u.ctx)
	}

	return nil
}

// Rollback rolls back the transaction
func (u *unitOfWork) Rollback() error {
	if u.tx == nil {
		return nil // Nothing to rollback
	}

	err := u.tx.Rollback(u.ctx)
	if err != nil && err != pgx.ErrTxClosed {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}

	u.tx = nil

	// Discard pending events on rollback
	if u.transactionalBus != nil {
		u.transactionalBus.Discard()
	}

	return nil
}

func (u *unitOfWork) AccountRepository() service.AccountRepository {
	if u.accountRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.accountRepo
}

func (u *unitOfWork) ArtifactRepository() service.ArtifactRepository {
	if u.artifactRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.artifactRepo
}

func (u *unitOfWork) AuctionRepository() service.AuctionRepository {
	if u.auctionRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.auctionRepo
}

func (u *unitOfWork) MarketOrderRepository() service.MarketOrderRepository {
	if u.marketOrderRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.marketOrderRepo
}

func (u *unitOfWork) StockRepository() service.StockRepository {
	if u.stockRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.stockRepo
}

func (u *unitOfWork) LoanRepository() service.LoanRepository {
	if u.loanRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.loanRepo
}

func (u *unitOfWork) AllianceRepository() service.AllianceRepository {
	if u.allianceRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.allianceRepo
}

func (u *unitOfWork) WarRepository() service.WarRepository {
	if u.warRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.warRepo
}

func (u *unitOfWork) EventRepository() service.EventRepository {
	if u.eventRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.eventRepo
}

func (u *unitOfWork) LedgerRepository() service.LedgerRepository {
	if u.ledgerRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.ledgerRepo
}

// EventBus returns the transactional event bus for this unit of work
func (u *unitOfWork) EventBus() service.EventPublisher {
	if u.transactionalBus == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.transactionalBus
}
