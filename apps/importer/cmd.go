package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/openschool/backend/core"
	"github.com/openschool/backend/importer"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	conf *core.Config
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  importer INPUT_PATH ENTITY [OUTPUT_PATH] - convert a CSV or XLSX export into a baseline JSON file")
	fmt.Printf("  valid entities: %s\n", strings.Join(core.EntityNames(), ", "))
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 3 {
		cli.printUsage()
		return errHelp
	}

	input, entity := args[1], args[2]
	output := importer.DefaultOutputPath(cli.conf.DataDir, entity)
	if len(args) > 3 {
		output = args[3]
	}

	res, err := importer.Run(input, entity, output)
	if err != nil {
		return err
	}

	fmt.Printf("imported %d %s records -> %s\n", len(res.Records), entity, output)
	if res.Coerced > 0 {
		fmt.Printf("warning: %d numeric cells could not be parsed and defaulted to 0\n", res.Coerced)
	}
	return nil
}
