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

// Package config holds the nand_scrub configuration file format.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/google/nand-recovery/bch"
)

const (
	defaultWorkers    = 4
	defaultMaxRetries = 3
)

// Config is the configuration for a scrub run.
type Config struct {
	// Dump is the path of the raw NAND dump to scrub.
	Dump string
	// PageSize is the number of data bytes per ECC step.
	PageSize int
	// Workers is the number of pages decoded concurrently. Zero selects the
	// default.
	Workers int
	// MaxRetries is the number of re-reads of an uncorrectable page. Zero
	// selects the default.
	MaxRetries int
	// Output, if set, receives the corrected page data.
	Output string
	// DBFile, if set, is a sqlite3 database the per-page report is stored in.
	DBFile string
	// MySQLURI, if set, is the MySQL database the per-page report is stored
	// in. At most one of DBFile and MySQLURI may be set.
	MySQLURI string
	// Run names this scrub in the report database.
	Run string
}

func (cfg *Config) applyDefaults() {
	if cfg.Workers == 0 {
		cfg.Workers = defaultWorkers
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = defaultMaxRetries
	}
}

// Validate returns nil if the config is valid and otherwise an error.
func (cfg *Config) Validate() error {
	if cfg.Dump == "" {
		return errors.New("config: Dump is not set")
	}
	if cfg.PageSize < 1 || cfg.PageSize > bch.MaxLength {
		return fmt.Errorf("config: PageSize %d out of range [1, %d]", cfg.PageSize, bch.MaxLength)
	}
	if cfg.Workers < 1 {
		return fmt.Errorf("config: Workers must be positive, got %d", cfg.Workers)
	}
	if cfg.MaxRetries < 0 {
		return fmt.Errorf("config: MaxRetries must not be negative, got %d", cfg.MaxRetries)
	}
	if cfg.DBFile != "" && cfg.MySQLURI != "" {
		return errors.New("config: at most one of DBFile and MySQLURI may be set")
	}
	if (cfg.DBFile != "" || cfg.MySQLURI != "") && cfg.Run == "" {
		return errors.New("config: Run must be set when a report database is")
	}
	return nil
}

// Load parses and validates the provided buffer b as a config file body and
// returns the Config.
func Load(b []byte) (*Config, error) {
	cfg := new(Config)
	md, err := toml.Decode(string(b), cfg)
	if err != nil {
		return nil, err
	}
	if undecoded := md.Undecoded(); len(undecoded) != 0 {
		return nil, fmt.Errorf("config: Undecoded keys in config file: %v", undecoded)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile loads, parses and validates the provided file and returns the
// Config.
func LoadFile(f string) (*Config, error) {
	b, err := os.ReadFile(f)
	if err != nil {
		return nil, err
	}
	return Load(b)
}
