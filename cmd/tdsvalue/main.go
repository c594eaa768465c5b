// Command tdsvalue decodes TDS column values from a hex dump.
//
//	tdsvalue decode --type IntN 0401000000
//	tdsvalue decode --type NVarChar --length 65535 --packets < dump.txt
package main

import (
	"os"

	"github.com/sirupsen/logrus"
)

func main() {
	cmd := newRootCommand(os.Stdin, os.Stdout)
	if err := cmd.Execute(); err != nil {
		logrus.Fatal(err)
	}
}
