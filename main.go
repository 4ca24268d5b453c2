package main

import (
	"fmt"
	"os"
	"strings"

	"storenews/service"
)

// CliVersion is the storenews release.
const CliVersion = "1.0.0"

var exit = os.Exit

func main() {
	RealMain()
}

// RealMain dispatches os.Args and exits with the command's status.
func RealMain() {
	if len(os.Args) < 2 {
		printHelp()
		exit(1)
		return
	}

	cmd := strings.ToLower(os.Args[1])
	switch cmd {
	case "help":
		printHelp()
	case "version":
		fmt.Printf("storenews version %s\n", CliVersion)
	case "serve", "init", "seed", "clean", "backup", "restore":
		args := append([]string{cmd}, os.Args[2:]...)
		if code := service.HandleCommand(args); code != 0 {
			exit(code)
		}
	default:
		fmt.Printf("Unknown command: %s\n\n", os.Args[1])
		printHelp()
		exit(1)
	}
}

func printHelp() {
	helpText := `Usage: storenews <command> [options]
Commands:
  help                           Display this help message.
  version                        Show version information.
  serve [--config <path>]        Run the storefront news service.
  init                           Initialize a new empty database.
  seed                           Fill the database with sample news.
  clean                          Remove the database.
  backup [file]                  Create a backup of the database.
  restore <file>                 Restore the database from a backup.
`
	fmt.Println(helpText)
}
