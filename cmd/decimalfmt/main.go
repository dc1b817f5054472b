// Decimalfmt formats and parses decimal numbers with locale number formats.
//
// Number formats are read from YAML or JSON locale files in the
// `<locale>.number.format` shape and, optionally, from CLDR data.
//
// Usage:
//
//	decimalfmt format --config locales/it.yml --locale it 1234567.891
//	decimalfmt parse --config locales/it.yml --locale it "1'234'567,89"
//	decimalfmt resolve --cldr --locale de
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "decimalfmt: %v\n", err)
		os.Exit(1)
	}
}
