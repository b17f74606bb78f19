/*
 * Copyright 2025 tomoncle.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package database

import (
	"errors"
	"testing"

	"github.com/go-sql-driver/mysql"
)

func TestIsSqlErrorMySQL(t *testing.T) {
	cases := []struct {
		number uint16
		want   SQLError
	}{
		{1050, ExistTableErr},
		{1054, NoColumnErr},
		{1062, DuplicateKeyErr},
		{1048, NotNullViolationErr},
		{1146, NoTableErr},
		{9999, UnknownErr},
	}
	for _, c := range cases {
		is, got := IsSqlError(&mysql.MySQLError{Number: c.number, Message: "x"})
		if !is || got != c.want {
			t.Fatalf("number %d: expected %v, got is=%v %v", c.number, c.want, is, got)
		}
	}
}

func TestIsSqlErrorByMessage(t *testing.T) {
	cases := []struct {
		err  error
		want SQLError
	}{
		{errors.New("SQL logic error: no such table: users (1)"), NoTableErr},
		{errors.New("SQL logic error: table users already exists (1)"), ExistTableErr},
		{errors.New("ERROR: relation \"users\" already exists (SQLSTATE 42P07)"), ExistTableErr},
		{errors.New("no such column: nickname"), NoColumnErr},
		{errors.New("UNIQUE constraint failed: users.name"), DuplicateKeyErr},
		{errors.New("NOT NULL constraint failed: users.name"), NotNullViolationErr},
		{errors.New("FOREIGN KEY constraint failed"), ForeignKeyViolationErr},
	}
	for _, c := range cases {
		is, got := IsSqlError(c.err)
		if !is || got != c.want {
			t.Fatalf("%q: expected %v, got is=%v %v", c.err, c.want, is, got)
		}
	}
}

func TestIsSqlErrorUnrecognized(t *testing.T) {
	is, got := IsSqlError(errors.New("dial tcp: connection refused"))
	if is || got != UnknownErr {
		t.Fatalf("expected unrecognized, got is=%v %v", is, got)
	}
}
