package api

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mwangaza-power/vend-server/internal/handlers/v1/status"
	"github.com/mwangaza-power/vend-server/internal/handlers/v1/vend"
	"github.com/mwangaza-power/vend-server/internal/logging"
	"github.com/mwangaza-power/vend-server/internal/service"
	"github.com/mwangaza-power/vend-server/internal/storage"
)

type Rest struct {
	Logger  *logrus.Logger
	Port    string
	Service *service.Service
	Storage *storage.Storage
}

func (r *Rest) Serve() {
	processVendHandler := vend.NewProcessVendHandler(r.Service.Vend)
	userStatusHandler := vend.NewStatusHandler(r.Service.Users)
	latestHandler := vend.NewLatestTransactionHandler(r.Service.Vend)
	statusHandler := status.NewHandler(r.Storage)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/vend", logging.LoggingWrapper("ProcessVend", r.Logger, processVendHandler.Handler))
	mux.HandleFunc("GET /api/vend/status/{clientId}", logging.LoggingWrapper("UserStatus", r.Logger, userStatusHandler.Handler))
	mux.HandleFunc("GET /api/vend/latest/{clientId}", logging.LoggingWrapper("LatestTransaction", r.Logger, latestHandler.Handler))
	mux.HandleFunc("/status", logging.LoggingWrapper("Status", r.Logger, statusHandler.Handler))

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
