//go:build windows

package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"strconv"

	"github.com/Microsoft/go-winio/pkg/guid"
	"github.com/sirupsen/logrus"
	cli "github.com/urfave/cli/v2"

	reparse "github.com/Microsoft/go-reparse"
)

func main() {
	app := &cli.App{
		Name:     "reparseutil",
		Usage:    "inspect, create, and delete NTFS reparse points",
		Commands: []*cli.Command{queryCommand, createCommand, deleteCommand},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug logging",
			},
		},
		Before: func(c *cli.Context) error {
			if c.Bool("debug") {
				logrus.SetLevel(logrus.DebugLevel)
			}
			return nil
		},
	}
	if err := app.Run(os.Args); err != nil {
		logrus.WithError(err).Fatal(app.Name)
	}
}

func pathArg(c *cli.Context) (string, error) {
	if c.NArg() != 1 {
		return "", cli.Exit("exactly one path argument is required", 1)
	}
	return c.Args().First(), nil
}

var queryCommand = &cli.Command{
	Name:      "query",
	Usage:     "print the reparse tag, GUID and payload of a path",
	ArgsUsage: "<path>",
	Action: func(c *cli.Context) error {
		path, err := pathArg(c)
		if err != nil {
			return err
		}
		if !reparse.PointExists(path) {
			return fmt.Errorf("%s has no reparse point", path)
		}
		b, err := reparse.GetBuffer(path)
		if err != nil {
			return err
		}
		fmt.Printf("tag:     %#08x (microsoft=%v, surrogate=%v)\n",
			b.Tag, reparse.IsTagMicrosoft(b.Tag), reparse.IsTagNameSurrogate(b.Tag))
		if !reparse.IsTagMicrosoft(b.Tag) {
			fmt.Printf("guid:    %s\n", b.GUID)
		}
		fmt.Printf("payload: %d bytes\n", b.DataLength)
		if c.Bool("data") {
			fmt.Printf("%s", hex.Dump(b.Data))
		}
		return nil
	},
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "data",
			Usage: "hex dump the reparse payload",
		},
	},
}

var createCommand = &cli.Command{
	Name:      "create",
	Usage:     "attach a custom reparse point to a path",
	ArgsUsage: "<path>",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "tag",
			Usage:    "reparse tag, e.g. 0x00000100",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "guid",
			Usage:    "reparse GUID",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "data",
			Usage:    "payload as a hex string",
			Required: true,
		},
	},
	Action: func(c *cli.Context) error {
		path, err := pathArg(c)
		if err != nil {
			return err
		}
		tag, err := strconv.ParseUint(c.String("tag"), 0, 32)
		if err != nil {
			return fmt.Errorf("invalid tag %q: %w", c.String("tag"), err)
		}
		g, err := guid.FromString(c.String("guid"))
		if err != nil {
			return fmt.Errorf("invalid GUID %q: %w", c.String("guid"), err)
		}
		data, err := hex.DecodeString(c.String("data"))
		if err != nil {
			return fmt.Errorf("invalid payload: %w", err)
		}
		return reparse.CreateCustom(path, uint32(tag), g, data)
	},
}

var deleteCommand = &cli.Command{
	Name:      "delete",
	Usage:     "remove the reparse point from a path",
	ArgsUsage: "<path>",
	Action: func(c *cli.Context) error {
		path, err := pathArg(c)
		if err != nil {
			return err
		}
		return reparse.Delete(path)
	},
}
