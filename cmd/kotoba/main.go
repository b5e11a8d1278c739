// Copyright 2025 The Kotoba Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main is the kotoba binary: a Japanese vocabulary and kanji study list with fuzzy
search, Heisig kanji lookup and furigana.

# Usage

Save a word with one reading per kanji, then search the list:

	kotoba add-word 時間 time --readings じ,かん
	kotoba words tim

Look up kanji in the Heisig table by character, reading or keywords:

	kotoba lookup 水
	kotoba lookup みず
	kotoba lookup "water, spring"

Show which kanji of a saved word still need furigana:

	kotoba reading 時間

Try the debounced search interactively:

	kotoba repl --mode lookup

# Server Mode

	kotoba serve

starts the MessagePack IPC server on stdin/stdout. Requests name an operation and echo an ID:

	{"id": "req1", "op": "words", "q": "time", "l": 20}
	{"id": "req1", "status": "ok", "words": [...], "n": 1, "t": 145}

See package server for the list of operations.

# Configuration

Settings are read from a TOML file, created with defaults on first run at
[UserConfigDir]/kotoba/config.toml unless --config names another file:

	[search]
	threshold = 0.3
	limit = 24

	[store]
	path = "kotoba.db"
	watch = true

	[dict]
	heisig_path = "data/heisig_kanji.json"
	jmdict_path = "data/jmdict-eng-common.json"

A relative database path lives in the config directory. Dictionary files are searched next
to the working directory, the executable and the config directory.

# Flags

	--config string   config file to use
	--db string       database file, overrides [store] path
	-d, --debug       debug logging with timestamps
*/
package main

import (
	"os"

	"github.com/bastiangx/kotoba/cmd/kotoba/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
