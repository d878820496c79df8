package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"vaultrush/models"
	"vaultrush/obs"
	"vaultrush/service"
)

type job struct {
	name     string
	interval time.Duration
	run      func(ctx context.Context) error
}

// Scheduler owns the periodic settlement jobs. Every job is idempotent, so
// an overlapping or repeated run settles nothing twice.
type Scheduler struct {
	jobs []job
}

// New builds the scheduler over the settlement services
func New(
	auctions service.AuctionService,
	loans service.LoanService,
	stocks service.StockService,
	timedEvents service.TimedEventService,
	wars service.WarService,
) *Scheduler {
	s := &Scheduler{}
	s.jobs = []job{
		{name: "expire-events", interval: 5 * time.Minute, run: func(ctx context.Context) error {
			_, err := timedEvents.ExpireEvents(ctx)
			return err
		}},
		{name: "finalize-auctions", interval: 5 * time.Minute, run: func(ctx context.Context) error {
			_, err := auctions.FinalizeExpired(ctx)
			return err
		}},
		{name: "collect-overdue-loans", interval: 5 * time.Minute, run: func(ctx context.Context) error {
			_, err := loans.CollectOverdue(ctx)
			return err
		}},
		{name: "update-stock-prices", interval: 2 * time.Hour, run: stocks.UpdatePrices},
		{name: "pay-dividends", interval: 24 * time.Hour, run: stocks.PayDividends},
		{name: "random-event", interval: 3 * time.Hour, run: func(ctx context.Context) error {
			_, err := timedEvents.MaybeStartRandom(ctx)
			return err
		}},
		{name: "vault-war", interval: 24 * time.Hour, run: func(ctx context.Context) error {
			return runWarCycle(ctx, wars)
		}},
	}
	return s
}

// runWarCycle finalizes the previous week if it still has active entries,
// then makes sure the current week has started. Both halves are no-ops when
// already done.
func runWarCycle(ctx context.Context, wars service.WarService) error {
	week := service.WeekNumber(time.Now())
	if week > 1 {
		prev, err := wars.Rankings(ctx, week-1)
		if err != nil {
			return err
		}
		for _, entry := range prev {
			if entry.Status == models.WarStatusActive {
				if _, err := wars.FinalizeWar(ctx, week-1); err != nil {
					return err
				}
				break
			}
		}
	}
	_, err := wars.StartWar(ctx)
	return err
}

// Start launches one goroutine per job and returns a stop function that
// blocks until they have all drained.
func (s *Scheduler) Start(ctx context.Context) func() {
	ctx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup

	for _, j := range s.jobs {
		wg.Add(1)
		go func(j job) {
			defer wg.Done()
			ticker := time.NewTicker(j.interval)
			defer ticker.Stop()

			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					s.runJob(ctx, j)
				}
			}
		}(j)
	}

	logrus.WithField("jobs", len(s.jobs)).Info("Scheduler started")
	return func() {
		cancel()
		wg.Wait()
	}
}

func (s *Scheduler) runJob(ctx context.Context, j job) {
	runID := uuid.New().String()
	log := logrus.WithFields(logrus.Fields{
		"job":    j.name,
		"run_id": runID,
	})

	start := time.Now()
	err := j.run(ctx)
	obs.RecordSchedulerRun(j.name, err)
	if err != nil {
		log.WithError(err).Error("Scheduler job failed")
		return
	}
	log.WithField("duration", time.Since(start)).Debug("Scheduler job completed")
}
