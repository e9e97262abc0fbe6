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

// Package impl is the implementation of a util to load and start images on
// boards in USB recovery mode.
package impl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/golang/glog"
	"github.com/google/nand-recovery/recovery"
	"github.com/google/nand-recovery/recovery/usb"
)

// RecoveryOpts encapsulates recovery tool parameters.
type RecoveryOpts struct {
	VID, PID uint
	// Image is the file to load; if empty nothing is loaded.
	Image string
	// Addr is the RAM address the image is loaded at and run from.
	Addr uint64
	// Run jumps to Addr once any image is loaded.
	Run bool
}

type device interface {
	recovery.Device
	io.Closer
}

var openDevice = func(vid, pid uint16) (device, error) {
	return usb.Open(vid, pid)
}

func Main(ctx context.Context, opts RecoveryOpts) error {
	if opts.VID > math.MaxUint16 || opts.PID > math.MaxUint16 {
		return fmt.Errorf("invalid device ID %x:%x", opts.VID, opts.PID)
	}
	if opts.Addr > math.MaxUint32 {
		return fmt.Errorf("address 0x%x does not fit in 32 bits", opts.Addr)
	}
	if opts.Image == "" && !opts.Run {
		return errors.New("nothing to do: specify image and/or run")
	}
	var img []byte
	if opts.Image != "" {
		var err error
		if img, err = os.ReadFile(opts.Image); err != nil {
			return fmt.Errorf("failed to read image: %w", err)
		}
	}

	dev, err := openDevice(uint16(opts.VID), uint16(opts.PID))
	if err != nil {
		return fmt.Errorf("failed to open device: %w", err)
	}
	defer dev.Close()

	c := recovery.NewClient(dev)
	addr := uint32(opts.Addr)
	if img != nil {
		glog.Infof("Loading %d bytes from %q at 0x%08x", len(img), opts.Image, addr)
		if err := c.Load(ctx, addr, img); err != nil {
			return fmt.Errorf("failed to load image: %w", err)
		}
	}
	if opts.Run {
		glog.Infof("Running from 0x%08x", addr)
		if err := c.Run(ctx, addr); err != nil {
			return fmt.Errorf("failed to run: %w", err)
		}
	}
	return nil
}
