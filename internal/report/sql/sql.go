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

// Package sql provides scrub report storage backed by a SQL database. The
// statements are accepted by both SQLite and MySQL.
package sql

import (
	"database/sql"
	"fmt"

	"github.com/google/nand-recovery/internal/report"
)

// NewStore returns a report store that is backed by the SQL database.
func NewStore(db *sql.DB) report.Store {
	return &sqlStore{
		db: db,
	}
}

type sqlStore struct {
	db *sql.DB
}

func (s *sqlStore) Init() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS pages (
		run VARCHAR(255),
		page INTEGER,
		status INTEGER,
		bitflips INTEGER,
		attempts INTEGER,
		PRIMARY KEY (run, page)
		)`)
	return err
}

func (s *sqlStore) Record(run string, e report.Entry) error {
	_, err := s.db.Exec(`REPLACE INTO pages (run, page, status, bitflips, attempts) VALUES (?, ?, ?, ?, ?)`,
		run, e.Page, int(e.Status), e.BitFlips, e.Attempts)
	if err != nil {
		return fmt.Errorf("Exec(): %v", err)
	}
	return nil
}

func (s *sqlStore) Summary(run string) (report.Summary, error) {
	rows, err := s.db.Query("SELECT status, COUNT(*), SUM(bitflips) FROM pages WHERE run = ? GROUP BY status", run)
	if err != nil {
		return report.Summary{}, err
	}
	defer rows.Close()

	var sum report.Summary
	for rows.Next() {
		var status, count, flips int
		if err := rows.Scan(&status, &count, &flips); err != nil {
			return report.Summary{}, err
		}
		switch report.Status(status) {
		case report.Clean:
			sum.Clean += count
		case report.Corrected:
			sum.Corrected += count
		case report.Uncorrectable:
			sum.Uncorrectable += count
		default:
			return report.Summary{}, fmt.Errorf("unknown status %d in run %q", status, run)
		}
		sum.Pages += count
		sum.BitFlips += flips
	}
	if err := rows.Err(); err != nil {
		return report.Summary{}, err
	}
	return sum, nil
}

func (s *sqlStore) Uncorrectable(run string) ([]int, error) {
	rows, err := s.db.Query("SELECT page FROM pages WHERE run = ? AND status = ? ORDER BY page", run, int(report.Uncorrectable))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pages []int
	for rows.Next() {
		var p int
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		pages = append(pages, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return pages, nil
}
