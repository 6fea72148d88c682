// chatlens - Chat Export Statistics
//
// chatlens parses the plain-text export of a chat and reports who talks,
// when, and about what.
package main

import (
	"os"

	"github.com/ccollicutt/chatlens/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
