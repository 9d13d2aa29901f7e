// Command gbfcli is a thin inspector over the gbf package: it exposes
// the core's read/header/value operations from the command line but
// carries no logic of its own beyond argument parsing and printing.
package main

import (
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/gredbin/gbf"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "header":
		err = runHeader(args)
	case "tree":
		err = runTree(args)
	case "show":
		err = runShow(args)
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "gbfcli:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: gbfcli <header|tree|show> [flags] <file>")
}

func runHeader(args []string) error {
	fs := flag.NewFlagSet("header", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("header: expected exactly one file argument")
	}

	header, _, err := gbf.ReadHeaderOnly(fs.Arg(0), gbf.DefaultReadOptions())
	if err != nil {
		return err
	}

	fmt.Printf("format=%s version=%d endianness=%s order=%s fields=%d\n",
		header.Format, header.Version, header.Endianness, header.Order, len(header.Fields))
	return nil
}

func runTree(args []string) error {
	fs := flag.NewFlagSet("tree", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("tree: expected exactly one file argument")
	}

	header, _, err := gbf.ReadHeaderOnly(fs.Arg(0), gbf.DefaultReadOptions())
	if err != nil {
		return err
	}

	for _, f := range header.Fields {
		fmt.Printf("%s\t%s\t%s\tshape=%v\n", f.Name, f.Kind, f.ClassName, f.Shape)
	}
	return nil
}

func runShow(args []string) error {
	fs := flag.NewFlagSet("show", flag.ExitOnError)
	varPath := fs.StringP("var", "v", "", "dot-path of the field or subtree to show")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("show: expected exactly one file argument")
	}

	val, err := gbf.ReadVar(fs.Arg(0), *varPath, gbf.DefaultReadOptions())
	if err != nil {
		return err
	}

	describeValue(*varPath, val)
	return nil
}

func describeValue(path string, v *gbf.Value) {
	if v.Kind != gbf.KindStruct {
		fmt.Printf("%s: kind=%s\n", path, v.Kind)
		return
	}
	for _, f := range v.Fields {
		child := f.Name
		if path != "" {
			child = path + "." + f.Name
		}
		describeValue(child, f.Value)
	}
}
