package main

import (
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	ansiReset = "\033[0m"
	ansiGreen = "\033[32m"
	ansiRed   = "\033[31m"
)

var headerCaser = cases.Title(language.English)

// attrHeader turns a snake_case attribute key into a table heading.
func attrHeader(key string) string {
	return headerCaser.String(strings.ReplaceAll(key, "_", " "))
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func passLabel(passed, colorize bool) string {
	if passed {
		if colorize {
			return ansiGreen + "PASS" + ansiReset
		}
		return "PASS"
	}
	if colorize {
		return ansiRed + "FAIL" + ansiReset
	}
	return "FAIL"
}
