package api

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/sirupsen/logrus"

	"github.com/diajarkoding/duittracker/internal/handlers/v1/status"
	synchandlers "github.com/diajarkoding/duittracker/internal/handlers/v1/sync"
	"github.com/diajarkoding/duittracker/internal/handlers/v1/transaction"
	"github.com/diajarkoding/duittracker/internal/logging"
	"github.com/diajarkoding/duittracker/internal/repository"
)

type Rest struct {
	Logger     *logrus.Logger
	Port       string
	Repository *repository.TransactionRepository
}

func (r *Rest) Serve() {
	mux := http.NewServeMux()

	statusHandler := status.NewHandler(r.Repository)
	mux.HandleFunc("/status", logging.LoggingWrapper("Status", r.Logger, statusHandler.Handler))

	humaAPI := humago.New(mux, huma.DefaultConfig("duittracker sync api", "1.0.0"))
	humaAPI.UseMiddleware(r.loggingMiddleware)

	transaction.NewListTransactionsHandler(r.Repository).Register(humaAPI)
	transaction.NewGetTransactionHandler(r.Repository).Register(humaAPI)
	transaction.NewCreateTransactionHandler(r.Repository).Register(humaAPI)
	transaction.NewUpdateTransactionHandler(r.Repository).Register(humaAPI)
	transaction.NewDeleteTransactionHandler(r.Repository).Register(humaAPI)
	synchandlers.NewSyncPendingHandler(r.Repository).Register(humaAPI)
	synchandlers.NewRefreshHandler(r.Repository).Register(humaAPI)

	server := http.Server{
		Addr:              ":" + r.Port,
		Handler:           mux,
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      time.Duration(30) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	r.Logger.Info("HttpServer.Serve.listening")
	err := server.ListenAndServe()
	if err != nil {
		r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
	}
	r.Logger.Info("HttpServer.Serve.shutting down")
}

func (r *Rest) loggingMiddleware(ctx huma.Context, next func(huma.Context)) {
	logData := logging.NewLogData(r.Logger)
	operationID := ctx.Operation().OperationID

	endTimer := logData.AddTiming("duration")
	next(huma.WithValue(ctx, logging.LogDataKey, logData))
	endTimer()

	logData.Log().Infof("Handler.%v.Complete", operationID)
}
