package main

import (
	"log"
	"os"

	"github.com/everyedu/portal/apps/portal"
	"github.com/everyedu/portal/core"
	"github.com/everyedu/portal/core/session"
	apisvc "github.com/everyedu/portal/services/api"
	logsvc "github.com/everyedu/portal/services/logger"
	"github.com/everyedu/portal/storage/state"
	filestate "github.com/everyedu/portal/storage/state/file"
	inmemstate "github.com/everyedu/portal/storage/state/inmem"
)

func main() {
	defer os.Exit(0)

	std := log.New(os.Stdout, "PORTAL : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf, err := core.NewConfig()
	if err != nil {
		std.Fatal(err)
	}

	var logger core.Logger
	if conf.Debug {
		logger = logsvc.NewConsoleLogger(std)
	} else {
		logger = logsvc.NewRollbarLogger(std, conf)
	}

	// session state survives restarts via a state file; fall back to memory
	// when the state dir is unusable.
	var storage state.Storage
	storage, err = filestate.New(conf.StateDir)
	if err != nil {
		logger.Warn("state dir unavailable, sessions will not persist", err)
		storage = inmemstate.New()
	}

	sessions := session.NewStore(storage, logger)
	client := apisvc.NewClient(conf, sessions, logger)
	router := portal.NewRouter(conf, sessions, client, logger)

	cli := commandLine{
		conf:     conf,
		sessions: sessions,
		router:   router,
		log:      logger,
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			std.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}
