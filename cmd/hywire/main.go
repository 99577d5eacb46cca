package main

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hywire/hywire"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "css":
		if err := runCSS(args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	case "version":
		fmt.Printf("hywire version %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`hywire - declarative hypermedia components for Go

Usage:
  hywire <command> [arguments]

Commands:
  css [files]           Compile YAML style declarations into deduplicated CSS
  version               Print version
  help                  Show this help

Options for css:
  --map                 Emit the name-to-class map as JSON instead of CSS

Examples:
  hywire css styles.yaml            Compile one file to CSS on stdout
  hywire css a.yaml b.yaml          Compile several files into one sheet
  hywire css --map styles.yaml      Print the generated class map`)
}

func runCSS(args []string) error {
	var emitMap bool
	var files []string

	for _, arg := range args {
		if arg == "--map" {
			emitMap = true
		} else {
			files = append(files, arg)
		}
	}

	if len(files) == 0 {
		return fmt.Errorf("css: no input files")
	}

	sheet := hywire.NewStyleSheet()
	classes := make(hywire.ClassMap)

	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return err
		}

		var styles hywire.Styles
		if err := yaml.Unmarshal(data, &styles); err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}

		fileClasses, _ := sheet.Compile(styles)
		for name, class := range fileClasses {
			classes[name] = class
		}
	}

	if emitMap {
		out, err := json.MarshalIndent(classes, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	fmt.Println(sheet.CSS())
	return nil
}
