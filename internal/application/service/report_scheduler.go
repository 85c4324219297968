package service

import (
	"context"
	"log"
	"time"
)

// ReportSender delivers a rendered report text to a recipient number.
type ReportSender interface {
	SendText(ctx context.Context, number, text string) error
}

// ReportScheduler fires the daily WhatsApp report at the configured time.
// It re-arms whenever settings change, so enabling the report or moving the
// send time takes effect without a restart.
type ReportScheduler struct {
	reports  *ReportService
	settings *SettingsService
	sender   ReportSender

	rearm chan struct{}
	done  chan struct{}
}

// NewReportScheduler creates a new report scheduler
func NewReportScheduler(reports *ReportService, settings *SettingsService, sender ReportSender) *ReportScheduler {
	return &ReportScheduler{
		reports:  reports,
		settings: settings,
		sender:   sender,
		rearm:    make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
}

// Start runs the scheduler until ctx is cancelled.
func (s *ReportScheduler) Start(ctx context.Context) {
	cancel := s.settings.Subscribe(func() {
		select {
		case s.rearm <- struct{}{}:
		default:
		}
	})

	go func() {
		defer cancel()
		defer close(s.done)
		s.run(ctx)
	}()
}

// Wait blocks until the scheduler goroutine has exited.
func (s *ReportScheduler) Wait() {
	<-s.done
}

func (s *ReportScheduler) run(ctx context.Context) {
	timer := time.NewTimer(time.Hour)
	defer timer.Stop()

	for {
		wait := s.untilNextSend(ctx)
		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timer.Reset(wait)

		select {
		case <-ctx.Done():
			return
		case <-s.rearm:
			continue
		case <-timer.C:
			s.send(ctx)
		}
	}
}

// untilNextSend returns how long to sleep before the next configured send.
// A disabled or misconfigured report backs off an hour and re-checks.
func (s *ReportScheduler) untilNextSend(ctx context.Context) time.Duration {
	settings, err := s.settings.GetSettings(ctx)
	if err != nil {
		log.Printf("report scheduler: read settings: %v", err)
		return time.Hour
	}
	if !settings.AutoReportEnabled || settings.WhatsAppNumber == "" {
		return time.Hour
	}

	at, err := time.Parse("15:04", settings.ReportTime)
	if err != nil {
		log.Printf("report scheduler: bad report time %q", settings.ReportTime)
		return time.Hour
	}

	now := time.Now()
	next := time.Date(now.Year(), now.Month(), now.Day(), at.Hour(), at.Minute(), 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next.Sub(now)
}

func (s *ReportScheduler) send(ctx context.Context) {
	settings, err := s.settings.GetSettings(ctx)
	if err != nil {
		log.Printf("report scheduler: read settings: %v", err)
		return
	}
	if !settings.AutoReportEnabled || settings.WhatsAppNumber == "" {
		return
	}

	report, err := s.reports.BuildReport(ctx, PeriodToday)
	if err != nil {
		log.Printf("report scheduler: build report: %v", err)
		return
	}
	text, err := s.reports.FormatText(ctx, report)
	if err != nil {
		log.Printf("report scheduler: format report: %v", err)
		return
	}
	if err := s.sender.SendText(ctx, settings.WhatsAppNumber, text); err != nil {
		log.Printf("report scheduler: send report: %v", err)
	}
}
