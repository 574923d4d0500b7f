// Command gon inspects and validates GON documents from the command line.
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"

	gon "github.com/gon-format/go-gon"
)

var cli struct {
	Get   getCmd   `cmd:"" help:"Look up a value in a GON document by path."`
	Check checkCmd `cmd:"" help:"Validate a GON document and report the first syntax error."`
}

type getCmd struct {
	File string   `arg:"" help:"GON file to read, or '-' for stdin."`
	Path []string `arg:"" optional:"" help:"Path of object keys and array indices to follow."`
}

func (c *getCmd) Run() error {
	data, err := readInput(c.File)
	if err != nil {
		return err
	}
	v, err := gon.Parse(data)
	if err != nil {
		return err
	}
	for _, seg := range c.Path {
		if v.Kind() == gon.Array {
			i, err := strconv.Atoi(seg)
			if err != nil {
				return fmt.Errorf("path segment %q: array index expected", seg)
			}
			if v, err = v.Index(i); err != nil {
				return err
			}
			continue
		}
		if v, err = v.Get(seg); err != nil {
			return err
		}
	}
	if v.Kind() == gon.Scalar {
		fmt.Println(v.Text())
	} else {
		fmt.Println(v.String())
	}
	return nil
}

type checkCmd struct {
	File string `arg:"" help:"GON file to read, or '-' for stdin."`
}

func (c *checkCmd) Run() error {
	data, err := readInput(c.File)
	if err != nil {
		return err
	}
	if _, err := gon.Parse(data); err != nil {
		return err
	}
	color.Green("%s: ok", c.File)
	return nil
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("gon"),
		kong.Description("Inspect and validate GON (Glaiel Object Notation) documents."),
		kong.UsageOnError(),
	)
	if err := ctx.Run(); err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}
