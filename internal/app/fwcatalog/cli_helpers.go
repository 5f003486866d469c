package fwcatalog

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/roemer/fwcatalog/pkg/common"
	"github.com/roemer/fwcatalog/pkg/writers"
	"github.com/samber/lo"
)

type stringSliceFlag []string

func (i *stringSliceFlag) String() string {
	return strings.Join(*i, "; ")
}

func (i *stringSliceFlag) Set(value string) error {
	*i = append(*i, value)
	return nil
}

// Prints the help for a command
func printCmdUsage(flagSet *flag.FlagSet, commandName, nonFlagArgs string) {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintf(os.Stderr, "  fwcatalog %s [flags]", commandName)
	if nonFlagArgs != "" {
		fmt.Fprint(os.Stderr, " "+nonFlagArgs)
	}
	fmt.Fprintln(os.Stderr, "")

	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Flags:")
	flagSet.PrintDefaults()
}

// Creates the writers for the given formats. Defaults to csv if no format is given.
func createWriters(formats []string, settings *writers.WriterSettings) ([]common.IWriter, error) {
	if len(formats) == 0 {
		formats = []string{string(common.OUTPUT_FORMAT_CSV)}
	}
	catalogWriters := []common.IWriter{}
	for _, format := range lo.Uniq(formats) {
		writer, err := writers.GetWriter(common.OutputFormat(strings.ToLower(format)), settings)
		if err != nil {
			return nil, err
		}
		catalogWriters = append(catalogWriters, writer)
	}
	return catalogWriters, nil
}

// Gets a string with the correct singular or plural form of the word.
func pluralize(count int, word string) string {
	return fmt.Sprintf("%d %s", count, lo.Ternary(count == 1, word, word+"s"))
}
