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

// Package impl is the implementation of a tool which scrubs raw NAND dumps.
package impl

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"

	"github.com/golang/glog"
	"github.com/google/nand-recovery/cmd/nand_scrub/internal/config"
	"github.com/google/nand-recovery/internal/report"
	rsql "github.com/google/nand-recovery/internal/report/sql"
	"github.com/google/nand-recovery/nand"
	"github.com/google/nand-recovery/nand/dump"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3" // Load drivers for sqlite3
)

// ScrubOpts encapsulates nand_scrub parameters.
type ScrubOpts struct {
	// ConfigFile is the path of the TOML config describing the run.
	ConfigFile string
}

// Main loads the config and scrubs the dump it names.
func Main(ctx context.Context, opts ScrubOpts) error {
	if opts.ConfigFile == "" {
		return errors.New("must specify config")
	}
	cfg, err := config.LoadFile(opts.ConfigFile)
	if err != nil {
		return fmt.Errorf("failed to load config %q: %w", opts.ConfigFile, err)
	}
	sum, err := Run(ctx, cfg)
	if err != nil {
		return err
	}
	glog.Infof("Scrubbed %d pages: %d clean, %d corrected, %d uncorrectable, %d bit errors",
		sum.Pages, sum.Clean, sum.Corrected, sum.Uncorrectable, sum.BitFlips)
	return nil
}

// Run scrubs the dump described by cfg and returns the totals of the run.
func Run(ctx context.Context, cfg *config.Config) (report.Summary, error) {
	d, err := dump.Open(cfg.Dump, cfg.PageSize)
	if err != nil {
		return report.Summary{}, fmt.Errorf("failed to open dump: %w", err)
	}
	defer d.Close()
	geo := d.Geometry()

	r, err := nand.NewReader(d, nand.ReaderOpts{PageSize: geo.PageSize, MaxRetries: cfg.MaxRetries})
	if err != nil {
		return report.Summary{}, err
	}

	var out *os.File
	if cfg.Output != "" {
		if out, err = os.Create(cfg.Output); err != nil {
			return report.Summary{}, fmt.Errorf("failed to create output: %w", err)
		}
		defer out.Close()
		if err := out.Truncate(int64(geo.Pages) * int64(geo.PageSize)); err != nil {
			return report.Summary{}, fmt.Errorf("failed to size output: %w", err)
		}
	}

	var store report.Store
	if driver, dsn := reportDB(cfg); driver != "" {
		glog.Infof("Recording run %q in %s DB", cfg.Run, driver)
		db, err := sql.Open(driver, dsn)
		if err != nil {
			return report.Summary{}, fmt.Errorf("failed to open DB: %w", err)
		}
		defer db.Close()
		store = rsql.NewStore(db)
		if err := store.Init(); err != nil {
			return report.Summary{}, fmt.Errorf("failed to init DB: %w", err)
		}
	}

	var sum report.Summary
	err = nand.Scrub(ctx, r, geo.Pages, cfg.Workers, func(index int, res *nand.Result, err error) error {
		e := report.Entry{Page: index, Attempts: res.Attempts, BitFlips: len(res.Errors)}
		switch {
		case err != nil:
			glog.Warning(err)
			e.Status = report.Uncorrectable
			sum.Uncorrectable++
		case e.BitFlips > 0:
			e.Status = report.Corrected
			sum.Corrected++
		default:
			sum.Clean++
		}
		sum.Pages++
		sum.BitFlips += e.BitFlips

		if out != nil && res.Page != nil {
			if _, err := out.WriteAt(res.Page.Data, int64(index)*int64(geo.PageSize)); err != nil {
				return fmt.Errorf("failed to write page %d: %w", index, err)
			}
		}
		if store != nil {
			if err := store.Record(cfg.Run, e); err != nil {
				return fmt.Errorf("failed to record page %d: %w", index, err)
			}
		}
		return nil
	})
	if err != nil {
		return sum, fmt.Errorf("scrub failed: %w", err)
	}

	if store != nil && sum.Uncorrectable > 0 {
		bad, err := store.Uncorrectable(cfg.Run)
		if err != nil {
			return sum, fmt.Errorf("failed to list uncorrectable pages: %w", err)
		}
		glog.Warningf("Run %q has uncorrectable pages %v", cfg.Run, bad)
	}
	return sum, nil
}

// reportDB returns the database/sql driver and data source name of the report
// database, or empty strings if the run is not recorded.
func reportDB(cfg *config.Config) (driver, dsn string) {
	switch {
	case cfg.MySQLURI != "":
		return "mysql", cfg.MySQLURI
	case cfg.DBFile != "":
		return "sqlite3", cfg.DBFile
	}
	return "", ""
}
