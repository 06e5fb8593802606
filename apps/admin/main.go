package main

import (
	"log"
	"os"

	"github.com/openschool/backend/core"
	"github.com/openschool/backend/core/user"
	logsvc "github.com/openschool/backend/services/logger"
	"github.com/openschool/backend/storage/jsonfile"
	"github.com/openschool/backend/storage/sqlxpg"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf := core.NewConfig()
	core.InitValidators()

	cli := commandLine{conf: conf}

	// set up the record store
	if conf.StoreBackend == "postgres" {
		db, err := sqlxpg.Open(conf)
		errAndDie(err)
		defer db.Close()
		errAndDie(db.Ping())
		cli.db = db.DB
		cli.store = sqlxpg.NewStore(db)
	} else {
		storeLogger := logsvc.NewRollbarLogger(logger, conf)
		storeLogger.Enable(false)
		cli.store = jsonfile.NewStore(conf, storeLogger)
	}
	cli.usrSvc = user.NewService(user.NewRepository(cli.store))

	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
