package commands

import (
	"flag"
	"fmt"
	"log"
	"path/filepath"
	"regexp"
)

const APP = "medscan-sheets"
const VERSION = "v0.1.0"

// SHEETS is the OAuth2 scope for read/write spreadsheet access.
const SHEETS = "https://www.googleapis.com/auth/spreadsheets"

const DEFAULT_WORKDIR = "/usr/local/etc/medscan"

var DEFAULT_CREDENTIALS = filepath.Join(DEFAULT_WORKDIR, ".google", "credentials.json")

// Options are the global command line options shared by all commands.
type Options struct {
	Config string
	Debug  bool
}

var spreadsheetURL = regexp.MustCompile(`^https://docs.google.com/spreadsheets/d/(.*?)(?:/.*)?$`)

func spreadsheetId(url string) (string, error) {
	match := spreadsheetURL.FindStringSubmatch(url)
	if len(match) < 2 {
		return "", fmt.Errorf("invalid spreadsheet URL - expected something like 'https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms'")
	}

	return match[1], nil
}

func helpOptions(flagset *flag.FlagSet) {
	flagset.VisitAll(func(f *flag.Flag) {
		fmt.Printf("    --%-12s %s\n", f.Name, f.Usage)
	})
}

func debugf(format string, args ...interface{}) {
	log.Printf("%-5s %s", "DEBUG", fmt.Sprintf(format, args...))
}

func infof(format string, args ...interface{}) {
	log.Printf("%-5s %s", "INFO", fmt.Sprintf(format, args...))
}

func warnf(format string, args ...interface{}) {
	log.Printf("%-5s %s", "WARN", fmt.Sprintf(format, args...))
}
