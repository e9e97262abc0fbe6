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

// recovery_tool loads an image into the RAM of a board in USB recovery mode
// and optionally starts it.
//
// Usage:
//
//	go run ./cmd/recovery_tool --logtostderr --image=loader.bin --addr=0x80000000 --run
package main

import (
	"context"
	"flag"

	"github.com/golang/glog"
	"github.com/google/nand-recovery/cmd/recovery_tool/impl"
	"github.com/google/nand-recovery/recovery"
)

var (
	vid   = flag.Uint("vid", recovery.DefaultVID, "USB vendor ID of the board")
	pid   = flag.Uint("pid", recovery.DefaultPID, "USB product ID of the board")
	image = flag.String("image", "", "File path of the image to load")
	addr  = flag.Uint64("addr", 0, "RAM address to load the image at and run from")
	run   = flag.Bool("run", false, "Jump to --addr after loading")
)

func main() {
	flag.Parse()

	if err := impl.Main(context.Background(), impl.RecoveryOpts{
		VID:   *vid,
		PID:   *pid,
		Image: *image,
		Addr:  *addr,
		Run:   *run,
	}); err != nil {
		glog.Exit(err.Error())
	}
}
