// Copyright 2020 The go-ethereum Authors
// This file is part of go-ethereum.
//
// go-ethereum is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// go-ethereum is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with go-ethereum. If not, see <http://www.gnu.org/licenses/>.

package flags

import (
	"os"
	"strings"

	cli "gopkg.in/urfave/cli.v1"
)

// Version of the operator tool.
const Version = "0.3.0"

// NewApp creates an app with sane defaults.
func NewApp(usage string) *cli.App {
	app := cli.NewApp()
	app.Name = "bcm"
	app.Usage = usage
	app.Version = Version
	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr
	return app
}

// Merge concatenates flag groups, dropping repeated names.
func Merge(groups ...[]cli.Flag) []cli.Flag {
	seen := make(map[string]bool)
	var out []cli.Flag
	for _, group := range groups {
		for _, f := range group {
			name := strings.Split(f.GetName(), ",")[0]
			if seen[name] {
				continue
			}
			seen[name] = true
			out = append(out, f)
		}
	}
	return out
}
