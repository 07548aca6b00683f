package main

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/mwangaza-power/vend-server/api"
	"github.com/mwangaza-power/vend-server/internal/config"
	"github.com/mwangaza-power/vend-server/internal/logging"
	"github.com/mwangaza-power/vend-server/internal/service"
	"github.com/mwangaza-power/vend-server/internal/storage"
	"github.com/mwangaza-power/vend-server/internal/sts"
)

func main() {
	logger := logging.SetupLogging()
	logrus.Info("vend-server starting")

	envConfig, err := config.ProcessEnvironmentVariables()
	if err != nil {
		logrus.WithError(err).Fatal("config.ProcessEnvironmentVariables")
		return
	}

	dbStorage, err := storage.NewStorage(envConfig)
	if err != nil {
		logrus.WithError(err).Fatal("storage.NewStorage")
		return
	}
	defer dbStorage.Close()

	stsClient, err := sts.NewClient(
		envConfig.STSBaseURL,
		envConfig.STSUserIDs,
		envConfig.STSUserPassword,
		sts.WithLogger(logger),
	)
	if err != nil {
		logrus.WithError(err).Fatal("sts.NewClient")
		return
	}

	svc := service.NewService(dbStorage, stsClient, logger)

	wg := sync.WaitGroup{}
	wg.Add(1)

	go func() {
		httpRest := api.Rest{
			Logger:  logger,
			Port:    envConfig.Port,
			Service: svc,
			Storage: dbStorage,
		}
		httpRest.Serve()
	}()

	wg.Wait()
}
