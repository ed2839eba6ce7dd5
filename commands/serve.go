package commands

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/medscan/medscan-sheets/config"
	"github.com/medscan/medscan-sheets/rest"
	"github.com/medscan/medscan-sheets/sheet"
)

var ServeCmd = Serve{
	config:      "",
	workdir:     "",
	credentials: "",
	url:         "",
	worksheet:   "",
	addr:        "",
	debug:       false,
}

type Serve struct {
	config      string
	workdir     string
	credentials string
	url         string
	worksheet   string
	addr        string
	debug       bool
}

func (cmd *Serve) Name() string {
	return "serve"
}

func (cmd *Serve) Description() string {
	return "Runs the append/read HTTP gateway for the vitals worksheet"
}

func (cmd *Serve) Usage() string {
	return "--config <file> --url <url>"
}

func (cmd *Serve) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] serve [options] --url <URL>\n", APP)
	fmt.Println()
	fmt.Println("  Ensures the vitals worksheet exists and serves the append/read JSON API until interrupted.")
	fmt.Println("  Command line options override the configuration file and environment.")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Println(`    medscan-sheets serve --config "medscan.yaml"`)
	fmt.Println(`    medscan-sheets --debug serve --credentials "credentials.json" \`)
	fmt.Println(`                                 --url "https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms" \`)
	fmt.Println(`                                 --addr ":5000"`)
	fmt.Println()
}

func (cmd *Serve) FlagSet() *flag.FlagSet {
	flagset := flag.NewFlagSet("serve", flag.ExitOnError)

	flagset.StringVar(&cmd.config, "config", cmd.config, "Configuration file path")
	flagset.StringVar(&cmd.workdir, "workdir", cmd.workdir, "Directory for working files (tokens, etc)")
	flagset.StringVar(&cmd.credentials, "credentials", cmd.credentials, "Path for the 'credentials.json' file")
	flagset.StringVar(&cmd.url, "url", cmd.url, "Spreadsheet URL")
	flagset.StringVar(&cmd.worksheet, "worksheet", cmd.worksheet, "Worksheet name e.g. 'Vitals'")
	flagset.StringVar(&cmd.addr, "addr", cmd.addr, "Listen address e.g. ':5000'")

	return flagset
}

func (cmd *Serve) Execute(args ...interface{}) error {
	options := args[0].(*Options)

	cmd.debug = options.Debug

	conf, err := config.Load(cmd.config)
	if err != nil {
		return err
	}

	// ... command line overrides
	if strings.TrimSpace(cmd.url) != "" {
		conf.Sheets.URL = cmd.url
	}

	if strings.TrimSpace(cmd.worksheet) != "" {
		conf.Sheets.Worksheet = cmd.worksheet
	}

	if strings.TrimSpace(cmd.credentials) != "" {
		conf.Sheets.Credentials = cmd.credentials
	}

	if strings.TrimSpace(cmd.workdir) != "" {
		conf.Sheets.Workdir = cmd.workdir
	}

	if strings.TrimSpace(cmd.addr) != "" {
		conf.HTTP.Addr = cmd.addr
	}

	spreadsheet, err := conf.SpreadsheetId()
	if err != nil {
		return err
	}

	if cmd.debug || conf.Debug {
		debugf("Spreadsheet - ID:%s  worksheet:%s", spreadsheet, conf.Sheets.Worksheet)
	}

	// ... authorise
	client, err := authorize(conf.Sheets.Credentials, SHEETS, conf.Sheets.Workdir)
	if err != nil {
		return fmt.Errorf("authentication/authorization error (%v)", err)
	}

	google, err := newSheets(client)
	if err != nil {
		return err
	}

	// ... gateway
	gateway := sheet.NewGateway(sheet.NewClient(google, spreadsheet), conf.Sheets.Worksheet)

	if err := gateway.EnsureWorksheet(context.Background()); err != nil {
		return err
	}

	infof("Worksheet '%s' ready", conf.Sheets.Worksheet)

	// ... serve until interrupted
	srv := rest.NewServer(conf.HTTP.Addr, gateway, conf.EditURL())

	interrupt := make(chan os.Signal, 1)
	errors := make(chan error, 1)

	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	go func() {
		errors <- srv.Run()
	}()

	select {
	case err := <-errors:
		return err

	case <-interrupt:
		infof("Shutting down")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			warnf("%v", err)
		}
	}

	return nil
}
