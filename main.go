package main

import (
	"context"
	"os/signal"
	"sync"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/diajarkoding/duittracker/api"
	"github.com/diajarkoding/duittracker/internal/config"
	"github.com/diajarkoding/duittracker/internal/images"
	"github.com/diajarkoding/duittracker/internal/logging"
	"github.com/diajarkoding/duittracker/internal/network"
	"github.com/diajarkoding/duittracker/internal/remote"
	"github.com/diajarkoding/duittracker/internal/repository"
	"github.com/diajarkoding/duittracker/internal/storage"
	"github.com/diajarkoding/duittracker/internal/syncer"
)

func main() {
	logger := logging.SetupLogging()
	logrus.Info("duitsyncd starting")

	envConfig, err := config.ProcessEnvironmentVariables()
	if err != nil {
		logrus.WithError(err).Fatal("config.ProcessEnvironmentVariables")
		return
	}

	store, err := storage.Open(envConfig.DatabasePath)
	if err != nil {
		logrus.WithError(err).Fatal("storage.Open")
		return
	}
	defer store.DB.Close()

	client := remote.NewClient(envConfig.SupabaseURL, envConfig.SupabaseAnonKey, envConfig.SupabaseAccessToken)
	remoteStore := remote.NewTransactionsClient(client)
	blobStore := remote.NewBlobClient(client)
	identity := remote.StaticIdentity{UserID: envConfig.SupabaseUserID}

	monitor := network.NewProbeMonitor(envConfig.ProbeURL, envConfig.ProbeInterval, logger)
	imageRepo := images.NewRepository(blobStore, identity, envConfig.DataDir)

	syncManager := syncer.NewManager(store.PendingOps, store.Transactions, remoteStore, imageRepo, monitor, identity, logger)
	syncWorker := syncer.NewWorker(syncManager, monitor, envConfig.SyncInterval, logger)

	repo := repository.NewTransactionRepository(
		store.Transactions, store.PendingOps, remoteStore, imageRepo,
		monitor, identity, syncManager, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	wg := sync.WaitGroup{}
	wg.Add(2)

	go func() {
		defer wg.Done()
		monitor.Run(ctx)
	}()

	go func() {
		defer wg.Done()
		syncWorker.Run(ctx)
	}()

	go func() {
		httpRest := api.Rest{
			Logger:     logger,
			Port:       envConfig.APIPort,
			Repository: repo,
		}
		httpRest.Serve()
	}()

	wg.Wait()
}
