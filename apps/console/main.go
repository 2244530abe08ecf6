package main

import (
	"fmt"
	"log"
	"os"

	"github.com/trezcool/classroom/apps/shared"
	"github.com/trezcool/classroom/core"
	logsvc "github.com/trezcool/classroom/services/logger"
)

func main() {
	conf := core.NewConfig()

	logger, err := logsvc.New(conf)
	errAndDie(err)

	session, err := shared.NewSession(conf, logger)
	errAndDie(err)

	// start CLI
	cli := commandLine{
		conf:    conf,
		logger:  logger,
		session: session,
		out:     os.Stdout,
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			fmt.Fprintf(os.Stderr, "\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
