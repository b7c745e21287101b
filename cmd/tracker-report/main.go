// Command tracker-report prints the team totals to the terminal.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"tracker/internal/backend"
	"tracker/internal/cli"
	"tracker/internal/core"
	"tracker/internal/log"
	"tracker/internal/report"
	"tracker/internal/services"
)

func main() {
	strict := flag.Bool("strict", false, "exit non-zero when the store cannot be read instead of printing empty totals")
	flag.Parse()

	cli.LoadEnvFile()
	cfg := cli.MustLoadConfig()
	// Stdout carries only the report; warnings go to stderr.
	logger := cli.SetupLoggerTo(os.Stderr, "warn", log.ComponentReport)

	ctx, stop := cli.SignalContext(logger)
	defer stop()

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	// The report only reads; events stay off.
	backendCfg.AMQPURL = ""
	res, err := backend.NewFactory(logger.Logger).CreateBackend(ctx, backendCfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer res.Cleanup()

	policy := services.FailSoft
	if *strict {
		policy = services.Strict
	}
	reporter := services.NewReporter(res.Store, services.WithPolicy(policy), services.WithReportLogger(logger))

	summary, err := reporter.ComputeSummary(ctx)
	if err != nil {
		var le *core.LoadError
		if errors.As(err, &le) {
			fmt.Fprintf(os.Stderr, "could not read contributions (%s)\n", le.Op)
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(2)
	}
	fmt.Println(report.Render(cfg.Title, summary))
}
