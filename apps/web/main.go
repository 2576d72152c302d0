package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/elimu-lms/elimu/apps/web/echo"
	"github.com/elimu-lms/elimu/core"
	"github.com/elimu-lms/elimu/core/session"
	"github.com/elimu-lms/elimu/services/api"
	logsvc "github.com/elimu-lms/elimu/services/logger"
	"github.com/elimu-lms/elimu/services/storage/dummy"
	"github.com/elimu-lms/elimu/services/storage/oss"
	"github.com/elimu-lms/elimu/storage/kv"
)

func main() {
	std := log.New(os.Stdout, core.Conf.AppName+" ", log.LstdFlags|log.Lshortfile)

	// set up durable client storage
	kvStore, err := kv.Open(core.Conf.Data.Dir)
	errAndDie(std, err)
	defer kvStore.Close()

	// set up services
	var appLogger core.Logger
	if core.Conf.Debug {
		appLogger = logsvc.NewStdLogger(std)
	} else {
		appLogger = logsvc.NewRollbarLogger(std, core.Conf)
	}
	notifier := logsvc.NewLogNotifier(appLogger)

	var uploads core.ObjectStore
	if core.Conf.OSS.Bucket != "" {
		uploads, err = ossstore.NewService(core.Conf)
		errAndDie(std, err)
	} else {
		uploads = dummystore.NewService()
	}

	client := api.NewClient(notifier)
	endpoints := api.NewEndpoints(core.Conf.API.BaseURL)
	sessions := session.NewStore(kvStore, client, endpoints)

	// start web server
	app := echoweb.NewServer(
		&echoweb.Options{
			Address:   core.Conf.Web.Address,
			Logger:    appLogger,
			Sessions:  sessions,
			Client:    client,
			Endpoints: endpoints,
			KV:        kvStore,
			Uploads:   uploads,
		},
	)

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-shutdown
		ctx, cancel := context.WithTimeout(context.Background(), core.Conf.Web.ShutdownTimeout)
		defer cancel()
		if err := app.Stop(ctx); err != nil {
			appLogger.Error("shutdown failed", err)
		}
	}()

	appLogger.Info("starting " + core.Conf.AppName + " on " + core.Conf.Web.Address)
	app.Start()
}

func errAndDie(std *log.Logger, err error) {
	if err != nil {
		std.Fatal(err)
	}
}
