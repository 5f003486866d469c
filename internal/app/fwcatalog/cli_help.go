package fwcatalog

import (
	"fmt"
	"os"
)

func HelpCmd(args []string) error {
	fmt.Fprintf(os.Stderr, "fwcatalog v%s\n\n", Version)
	fmt.Fprintln(os.Stderr, "Builds ordered and classified catalogs of firmware releases, one table per platform.")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "  run      reads the sources of a config file (fwcatalog.json|yaml|yml)")
	fmt.Fprintln(os.Stderr, "  extract  reads release lists (json, jsonc or yaml), default: input.json")
	fmt.Fprintln(os.Stderr, "  device   reads the releases from a firewall or Panorama and exports the images with scp")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Every catalog row contains: sequenceIndex, versionNumber, family, releaseType, fileName, sha256Checksum")
	return nil
}
