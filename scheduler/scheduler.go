// Package scheduler provides background jobs for the prescription
// application: a nightly snapshot of the storage slots into a backup
// directory and an hourly freshness check warning when backups go stale.
package scheduler

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/prescrito/prescrito-api/interfaces"
	"github.com/prescrito/prescrito-api/logging"
)

// Compile-time check to ensure Scheduler implements interfaces.Scheduler
var _ interfaces.Scheduler = (*Scheduler)(nil)

// Scheduler runs the backup and monitoring jobs.
type Scheduler struct {
	dataDir   string
	backupDir string
	scheduler *gocron.Scheduler

	lastBackup time.Time
}

// NewScheduler creates a scheduler snapshotting dataDir into backupDir.
func NewScheduler(dataDir, backupDir string) *Scheduler {
	return &Scheduler{
		dataDir:   dataDir,
		backupDir: backupDir,
		scheduler: gocron.NewScheduler(time.Local),
	}
}

// Start runs an initial backup, then schedules the nightly backup at 03:00
// and the hourly freshness check.
func (s *Scheduler) Start() error {
	if err := s.backup(); err != nil {
		// Backups are best-effort: the live store keeps working without
		// them.
		logging.Error("Initial backup failed", "error", err)
	}

	if _, err := s.scheduler.Every(1).Days().At("03:00").Do(func() {
		if err := s.backup(); err != nil {
			logging.Error("Scheduled backup failed", "error", err)
		}
	}); err != nil {
		return fmt.Errorf("failed to schedule backups: %w", err)
	}

	if _, err := s.scheduler.Every(1).Hours().Do(s.checkFreshness); err != nil {
		return fmt.Errorf("failed to schedule freshness check: %w", err)
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// backup copies every JSON storage slot into a timestamped backup
// directory.
func (s *Scheduler) backup() error {
	entries, err := os.ReadDir(s.dataDir)
	if err != nil {
		return fmt.Errorf("failed to read data directory: %w", err)
	}

	target := filepath.Join(s.backupDir, time.Now().Format("2006-01-02"))
	if err := os.MkdirAll(target, 0o755); err != nil {
		return fmt.Errorf("failed to create backup directory: %w", err)
	}

	start := time.Now()
	copied := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.dataDir, entry.Name()))
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", entry.Name(), err)
		}
		if err := os.WriteFile(filepath.Join(target, entry.Name()), data, 0o644); err != nil {
			return fmt.Errorf("failed to write backup of %s: %w", entry.Name(), err)
		}
		copied++
	}

	s.lastBackup = time.Now()
	logging.Info("Store backup completed",
		"files", copied,
		"target", target,
		"duration", time.Since(start).String())
	return nil
}

// checkFreshness warns when the last successful backup is over a day old.
func (s *Scheduler) checkFreshness() {
	if s.lastBackup.IsZero() {
		logging.Warn("No successful backup yet")
		return
	}
	if time.Since(s.lastBackup) > 25*time.Hour {
		logging.Warn("Store backup is stale", "last_backup", s.lastBackup.Format(time.RFC3339))
	}
}
