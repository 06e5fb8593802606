package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof" // register /debug/pprof handlers
	"os"

	"github.com/jmoiron/sqlx"

	echoapi "github.com/openschool/backend/apps/api/echo"
	"github.com/openschool/backend/core"
	"github.com/openschool/backend/core/announce"
	"github.com/openschool/backend/core/attendance"
	"github.com/openschool/backend/core/gradebook"
	"github.com/openschool/backend/core/school"
	"github.com/openschool/backend/core/user"
	emailsvc "github.com/openschool/backend/services/email"
	logsvc "github.com/openschool/backend/services/logger"
	"github.com/openschool/backend/storage/jsonfile"
	"github.com/openschool/backend/storage/sqlxpg"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	// set up loggers
	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	// set up the record store
	store, dbClose, err := setUpStore(conf, logger)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up record store: %v", err), err)
	}
	defer dbClose()

	// set up services
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}
	usrSvc := user.NewService(user.NewRepository(store))
	schoolSvc := school.NewService(store)
	gradebookSvc := gradebook.NewService(store, schoolSvc)
	attendanceSvc := attendance.NewService(store, schoolSvc)
	announceSvc := announce.NewService(store, usrSvc, mailSvc)

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	core.InitValidators()

	// =========================================================================
	// Start Debug Service
	//
	// /debug/pprof - Added to the default mux by importing the net/http/pprof package.
	// /debug/vars - Added to the default mux by importing the expvar package.

	// Expose important info under /debug/vars.
	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)

	go func() {
		if err := http.ListenAndServe(conf.Server.DebugHost, http.DefaultServeMux); err != nil {
			logger.Error(fmt.Sprintf("debug server closed: %v", err), err)
		}
	}()

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:          conf,
			Logger:        logger,
			Store:         store,
			UserSvc:       usrSvc,
			SchoolSvc:     schoolSvc,
			GradebookSvc:  gradebookSvc,
			AttendanceSvc: attendanceSvc,
			AnnounceSvc:   announceSvc,
		},
	)

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err := <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err := server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}

func setUpStore(conf *core.Config, logger core.Logger) (core.Store, func(), error) {
	if conf.StoreBackend == "postgres" {
		db, err := setUpDB(conf)
		if err != nil {
			return nil, nil, err
		}
		dbClose := func() {
			if err := db.Close(); err != nil {
				logger.Error("closing database", err)
			}
		}
		return sqlxpg.NewStore(db), dbClose, nil
	}
	return jsonfile.NewStore(conf, logger), func() {}, nil
}

func setUpDB(conf *core.Config) (*sqlx.DB, error) {
	if err := sqlxpg.CreateIfNotExist(conf); err != nil {
		return nil, err
	}

	db, err := sqlxpg.Open(conf)
	if err != nil {
		return nil, err
	}

	if err = sqlxpg.Migrate(db.DB); err != nil {
		return nil, err
	}
	return db, nil
}
