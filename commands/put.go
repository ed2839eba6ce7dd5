package commands

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/medscan/medscan-sheets/sheet"
	"github.com/medscan/medscan-sheets/vitals"
)

var PutCmd = Put{
	workdir:     DEFAULT_WORKDIR,
	credentials: DEFAULT_CREDENTIALS,
	url:         "",
	worksheet:   "Vitals",
	file:        "",
	debug:       false,
}

type Put struct {
	workdir     string
	credentials string
	url         string
	worksheet   string
	file        string
	debug       bool
}

func (cmd *Put) Name() string {
	return "put"
}

func (cmd *Put) Description() string {
	return "Appends the records from a TSV file to the vitals worksheet"
}

func (cmd *Put) Usage() string {
	return "--credentials <file> --url <url> --file <file>"
}

func (cmd *Put) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] put [options] --url <URL> --file <file>\n", APP)
	fmt.Println()
	fmt.Println("  Appends the records from a TSV file to the vitals worksheet, with the same")
	fmt.Println("  projection and conditional formatting as the HTTP append endpoint")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Println(`    medscan-sheets --debug put --credentials "credentials.json" \`)
	fmt.Println(`                               --url "https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms" \`)
	fmt.Println(`                               --file "vitals.tsv"`)
	fmt.Println()
}

func (cmd *Put) FlagSet() *flag.FlagSet {
	flagset := flag.NewFlagSet("put", flag.ExitOnError)

	flagset.StringVar(&cmd.workdir, "workdir", cmd.workdir, "Directory for working files (tokens, etc)")
	flagset.StringVar(&cmd.credentials, "credentials", cmd.credentials, "Path for the 'credentials.json' file")
	flagset.StringVar(&cmd.url, "url", cmd.url, "Spreadsheet URL")
	flagset.StringVar(&cmd.worksheet, "worksheet", cmd.worksheet, "Worksheet name. Defaults to 'Vitals'")
	flagset.StringVar(&cmd.file, "file", cmd.file, "TSV file")

	return flagset
}

func (cmd *Put) Execute(args ...interface{}) error {
	options := args[0].(*Options)

	cmd.debug = options.Debug

	// ... check parameters
	if strings.TrimSpace(cmd.credentials) == "" {
		return fmt.Errorf("--credentials is a required option")
	}

	if strings.TrimSpace(cmd.url) == "" {
		return fmt.Errorf("--url is a required option")
	}

	if strings.TrimSpace(cmd.file) == "" {
		return fmt.Errorf("--file is a required option")
	}

	spreadsheet, err := spreadsheetId(cmd.url)
	if err != nil {
		return err
	}

	if cmd.debug {
		debugf("Spreadsheet - ID:%s  worksheet:%s", spreadsheet, cmd.worksheet)
	}

	f, err := os.Open(cmd.file)
	if err != nil {
		return err
	}

	defer f.Close()

	records, err := vitals.FromTSV(f)
	if err != nil {
		return fmt.Errorf("invalid TSV file (%v)", err)
	}

	// ... authorise
	client, err := authorize(cmd.credentials, SHEETS, cmd.workdir)
	if err != nil {
		return fmt.Errorf("authentication/authorization error (%v)", err)
	}

	google, err := newSheets(client)
	if err != nil {
		return err
	}

	// ... append
	gateway := sheet.NewGateway(sheet.NewClient(google, spreadsheet), cmd.worksheet)

	saved, total, err := gateway.Append(context.Background(), records)
	if err != nil {
		return err
	}

	infof("Appended %v records from %v to worksheet '%v' (%v total)", saved, cmd.file, cmd.worksheet, total)

	return nil
}
