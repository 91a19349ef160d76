package main

import (
	"log"
	"os"

	"github.com/go-resty/resty/v2"

	"github.com/trezcool/professor/core"
)

func main() {
	logger := log.New(os.Stderr, "ADMIN : ", log.LstdFlags)

	conf := core.NewConfig()
	baseURL := conf.AdminServerURL
	if baseURL == "" {
		baseURL = "http://localhost:" + conf.Server.Port
	}

	// start CLI
	cli := commandLine{
		client:  resty.New(),
		baseURL: baseURL,
		out:     os.Stdout,
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}
