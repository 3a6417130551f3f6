// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"os"

	"github.com/cflynn/jsonrepair/cmd/jsonrepair/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
