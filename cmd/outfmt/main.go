// outfmt renders structured documents described as event scripts into
// csv, html, text, xml, json, or yaml.
package main

import (
	"os"

	"github.com/hupe1980/outfmt/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
