package jobs

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"tastepalette/internal/repositories"
	"tastepalette/internal/services"
)

const (
	ResetBatchSize     = 100
	MarketingBatchSize = 10
	MarketingPause     = time.Second
)

// uploadResetMinAge is below one week so a weekly run that fires early
// still counts the previous reset as due.
const uploadResetMinAge = 6 * 24 * time.Hour

type ResetReport struct {
	Scanned int
	Reset   int64
}

type MarketingReport struct {
	Attempted int
	Sent      int
	Failed    int
}

// Maintenance holds the scheduled account jobs.
type Maintenance struct {
	userRepo    repositories.UserRepository
	mailService services.IMailService

	MarketingPause time.Duration
	now            func() time.Time
}

func NewMaintenance(userRepo repositories.UserRepository, mailService services.IMailService) *Maintenance {
	return &Maintenance{
		userRepo:       userRepo,
		mailService:    mailService,
		MarketingPause: MarketingPause,
		now:            time.Now,
	}
}

// ResetWeeklyUploads zeroes the weekly counter of users not reset in the
// last six days.
func (m *Maintenance) ResetWeeklyUploads(ctx context.Context) (ResetReport, error) {
	var report ResetReport
	now := m.now()
	cutoff := now.Add(-uploadResetMinAge)

	for {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		users, err := m.userRepo.ListStaleUploadCounters(ctx, cutoff, ResetBatchSize)
		if err != nil {
			log.Printf("Error listing upload counters: %v", err)
			return report, err
		}
		if len(users) == 0 {
			break
		}

		ids := make([]uuid.UUID, 0, len(users))
		for _, u := range users {
			ids = append(ids, u.ID)
		}

		n, err := m.userRepo.ResetUploadCounters(ctx, ids, cutoff, now)
		if err != nil {
			log.Printf("Error resetting upload counters: %v", err)
			return report, err
		}
		report.Scanned += len(users)
		report.Reset += n

		if n == 0 || len(users) < ResetBatchSize {
			break
		}
	}

	log.Printf("Weekly upload reset: %d users reset", report.Reset)
	return report, nil
}

// SendMarketingEmails mails every verified user, a batch at a time. A failed
// send is logged and skipped.
func (m *Maintenance) SendMarketingEmails(ctx context.Context) (MarketingReport, error) {
	var report MarketingReport
	after := uuid.Nil

	for {
		users, err := m.userRepo.ListVerifiedAfter(ctx, after, MarketingBatchSize)
		if err != nil {
			log.Printf("Error listing marketing recipients: %v", err)
			return report, err
		}
		if len(users) == 0 {
			break
		}

		var (
			wg     sync.WaitGroup
			mu     sync.Mutex
			sent   int
			failed int
		)
		for _, u := range users {
			wg.Add(1)
			go func(email, name string) {
				defer wg.Done()
				err := m.mailService.SendMarketingEmail(ctx, email, name)

				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					failed++
					log.Printf("Marketing email to %s failed: %v", email, err)
					return
				}
				sent++
			}(u.Email, u.Name)
		}
		wg.Wait()

		report.Attempted += len(users)
		report.Sent += sent
		report.Failed += failed
		after = users[len(users)-1].ID

		if len(users) < MarketingBatchSize {
			break
		}

		select {
		case <-ctx.Done():
			return report, ctx.Err()
		case <-time.After(m.MarketingPause):
		}
	}

	log.Printf("Marketing emails: %d sent, %d failed", report.Sent, report.Failed)
	return report, nil
}
