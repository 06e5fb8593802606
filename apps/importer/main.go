package main

import (
	"log"
	"os"

	"github.com/openschool/backend/core"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "IMPORT : ", log.LstdFlags)

	conf := core.NewConfig()

	cli := commandLine{conf: conf}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}
