// Copyright 2026 Google LLC. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// nand_scrub corrects every page of a raw NAND dump and reports on the state
// of the flash.
//
// Usage:
//
//	go run ./cmd/nand_scrub --logtostderr --config=scrub.toml
//
// The config is a TOML file, for example:
//
//	Dump = "nand.bin"
//	PageSize = 512
//	Output = "nand.fixed"
//	DBFile = "scrub.db"
//	Run = "board-7"
package main

import (
	"context"
	"flag"

	"github.com/golang/glog"
	"github.com/google/nand-recovery/cmd/nand_scrub/impl"
)

var configFile = flag.String("config", "", "Path to the TOML config file describing the scrub")

func main() {
	flag.Parse()

	if err := impl.Main(context.Background(), impl.ScrubOpts{ConfigFile: *configFile}); err != nil {
		glog.Exit(err.Error())
	}
}
