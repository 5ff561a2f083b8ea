package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"SignalScout/internal/collector"
	"SignalScout/internal/engine"
	"SignalScout/internal/exporter"
	"SignalScout/internal/indicator"
	"SignalScout/internal/model"
	"SignalScout/internal/recorder"
	"SignalScout/internal/report"

	"github.com/robfig/cron/v3"
)

// Scheduler manages the cron-driven analytics pipeline.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	Params    engine.Params
	Recorder  recorder.Recorder
	Exporter  *exporter.Exporter
	Ctx       context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, col *collector.Collector, p engine.Params, rec recorder.Recorder, exp *exporter.Exporter) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Collector: col,
		Params:    p,
		Recorder:  rec,
		Exporter:  exp,
		Ctx:       ctx,
	}
}

// Register registers the daily pipeline run.
func (s *Scheduler) Register(dailyCron string) error {
	if _, err := s.Cron.AddFunc(dailyCron, s.dailyRun); err != nil {
		return fmt.Errorf("register daily run: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunNow executes the pipeline immediately (for manual trigger / RUN_ON_START).
func (s *Scheduler) RunNow() {
	s.dailyRun()
}

func (s *Scheduler) dailyRun() {
	log.Println("[INFO] running daily pipeline")
	if err := s.runPipeline(); err != nil {
		log.Printf("[ERROR] daily pipeline: %v", err)
	}
}

// runPipeline performs one full collect, evaluate, record and export
// cycle.
func (s *Scheduler) runPipeline() error {
	runAt := time.Now()

	table, err := s.Collector.Collect(s.Ctx)
	if err != nil {
		return fmt.Errorf("collect: %w", err)
	}

	decisions, err := engine.Evaluate(table, s.Params)
	if err != nil {
		return fmt.Errorf("evaluate: %w", err)
	}

	frames := s.buildFrames(table)
	log.Printf("[INFO] pipeline report:\n%s", report.FormatRunReport(runAt, frames, decisions))

	if err := s.Recorder.RecordRun(&recorder.RunSnapshot{
		RunAt:     runAt,
		Frames:    frames,
		Decisions: decisions,
	}); err != nil {
		log.Printf("[ERROR] record run: %v", err)
	}

	if s.Exporter != nil {
		if path, err := s.Exporter.WriteCSV(frames); err != nil {
			log.Printf("[ERROR] export csv: %v", err)
		} else {
			log.Printf("[INFO] wrote %s", path)
		}
		if path, err := s.Exporter.WriteSQLScript(frames); err != nil {
			log.Printf("[ERROR] export sql: %v", err)
		} else {
			log.Printf("[INFO] wrote %s", path)
		}
	}
	return nil
}

// buildFrames computes indicator frames for every symbol that has enough
// history. Short symbols are skipped with a warning; they still receive
// a HOLD decision from Evaluate.
func (s *Scheduler) buildFrames(table []model.Bar) []*indicator.Frame {
	var frames []*indicator.Frame
	for _, bars := range engine.Partition(table) {
		if len(bars) < s.Params.MinBars() {
			log.Printf("[WARN] %s: %d bars, need %d, skipping indicator frame", bars[0].Symbol, len(bars), s.Params.MinBars())
			continue
		}
		frame, err := indicator.Compute(bars, s.Params.SMAShort, s.Params.SMALong, s.Params.RSIPeriod)
		if err != nil {
			log.Printf("[WARN] compute frame for %s: %v", bars[0].Symbol, err)
			continue
		}
		frames = append(frames, frame)
	}
	return frames
}
