package syncer

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/diajarkoding/duittracker/internal/network"
)

// Worker runs the sync manager in the background: on a fixed interval, on
// every offline-to-online transition, and on demand via Notify.
type Worker struct {
	manager  *Manager
	monitor  network.Monitor
	interval time.Duration
	logger   *logrus.Logger
	notifyCh chan struct{}
}

func NewWorker(manager *Manager, monitor network.Monitor, interval time.Duration, logger *logrus.Logger) *Worker {
	return &Worker{
		manager:  manager,
		monitor:  monitor,
		interval: interval,
		logger:   logger,
		notifyCh: make(chan struct{}, 1),
	}
}

// Notify requests an immediate sync pass. Non-blocking if one is already pending.
func (w *Worker) Notify() {
	select {
	case w.notifyCh <- struct{}{}:
	default:
	}
}

// Run processes triggers until the context is cancelled. Blocking; run in a
// goroutine.
func (w *Worker) Run(ctx context.Context) {
	w.logger.Info("SyncWorker.Run.starting")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	connectivity := w.monitor.Subscribe()
	wasOnline := false

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("SyncWorker.Run.stopped")
			return
		case <-ticker.C:
			w.sync(ctx)
		case <-w.notifyCh:
			w.sync(ctx)
		case online := <-connectivity:
			if online && !wasOnline {
				w.logger.Info("SyncWorker.Run.online transition")
				w.sync(ctx)
			}
			wasOnline = online
		}
	}
}

func (w *Worker) sync(ctx context.Context) {
	result, err := w.manager.SyncPendingOperations(ctx)
	if err != nil {
		w.logger.WithError(err).Error("SyncWorker.sync.error")
		return
	}

	if result.Status == SyncStatusSuccess {
		w.logger.WithFields(logrus.Fields{
			"synced": result.Synced,
			"failed": result.Failed,
		}).Info("SyncWorker.sync.complete")
	}
}
