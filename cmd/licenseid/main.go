// Copyright 2026 The licenseid Authors
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

// Command licenseid builds license caches and identifies license texts.
//
// The cache subcommand ingests a directory of SPDX license-list JSON files
// and writes a prebuilt store for fast startup:
//
//	licenseid cache --output licenses.cache path/to/license-list-data/json/details
//
// The identify subcommand matches a file against a cache:
//
//	licenseid identify --cache licenses.cache LICENSE
//	License: MIT
//	Score: 0.993
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"licenseid"
)

// CLI defines the command-line interface for licenseid.
var CLI struct {
	Verbose bool `short:"v" help:"Log progress while working."`

	Cache    CacheCmd    `cmd:"" help:"Build a license cache from an SPDX license-list JSON directory."`
	Identify IdentifyCmd `cmd:"" help:"Identify the license in a file using a prebuilt cache."`
}

// CacheCmd ingests the SPDX dataset and serializes a store.
type CacheCmd struct {
	Output      string `short:"o" default:"licenses.cache" help:"Cache file to write."`
	Compression string `default:"gzip" enum:"gzip,xz" help:"Compression scheme (fixed once the cache is built)."`
	Compact     bool   `help:"Drop original texts to shrink the cache; disables bounds optimization on loaded entries."`
	Dir         string `arg:"" type:"existingdir" help:"Directory of SPDX license detail JSON files."`
}

// spdxDetail is the subset of the SPDX license-list JSON schema the builder
// consumes.
type spdxDetail struct {
	LicenseID             string `json:"licenseId"`
	LicenseText           string `json:"licenseText"`
	StandardLicenseHeader string `json:"standardLicenseHeader"`
}

func (c *CacheCmd) Run() error {
	entries, err := os.ReadDir(c.Dir)
	if err != nil {
		return err
	}

	store := licenseid.NewStore()
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		path := filepath.Join(c.Dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		var detail spdxDetail
		if err := json.Unmarshal(data, &detail); err != nil {
			return fmt.Errorf("%s: %v", path, err)
		}
		if detail.LicenseID == "" || detail.LicenseText == "" {
			return fmt.Errorf("%s: missing licenseId or licenseText", path)
		}
		if CLI.Verbose {
			log.Printf("Processing %s", detail.LicenseID)
		}
		if err := store.AddLicense(detail.LicenseID, detail.LicenseText); err != nil {
			return err
		}
		if h := strings.TrimSpace(detail.StandardLicenseHeader); h != "" {
			alias := detail.LicenseID + "-header"
			if err := store.AddVariant(detail.LicenseID, alias, h); err != nil {
				return err
			}
		}
	}
	if store.Empty() {
		return fmt.Errorf("no license detail files found in %s", c.Dir)
	}

	f, err := os.Create(c.Output)
	if err != nil {
		return err
	}
	save := store.SaveCache
	if c.Compact {
		save = store.SaveCacheCompact
	}
	if err := save(f, licenseid.Compression(c.Compression)); err != nil {
		f.Close()
		return err
	}
	log.Printf("Wrote %d licenses to %s", store.Len(), c.Output)
	return f.Close()
}

// IdentifyCmd matches a file against a cache.
type IdentifyCmd struct {
	Cache      string  `short:"c" default:"licenses.cache" help:"Cache file to load."`
	Confidence float64 `default:"0.8" help:"Minimum score to accept a whole-file match."`
	Threshold  float64 `default:"0.5" help:"Minimum score worth digging into with bounds optimization."`
	Optimize   bool    `default:"true" negatable:"" help:"Search for licenses embedded in larger files."`
	Diff       bool    `help:"Show a diff against the closest match."`
	Passes     int     `default:"3" help:"Maximum embedded regions to search for."`
	File       string  `arg:"" help:"File to identify, or - for stdin."`
}

func (c *IdentifyCmd) Run() error {
	f, err := os.Open(c.Cache)
	if err != nil {
		return err
	}
	store, err := licenseid.LoadCache(f)
	f.Close()
	if err != nil {
		return err
	}

	var contents []byte
	if c.File == "-" {
		contents, err = io.ReadAll(os.Stdin)
	} else {
		contents, err = os.ReadFile(c.File)
	}
	if err != nil {
		return err
	}

	query := licenseid.NewTextData(string(contents))
	strategy := licenseid.ScanStrategy{
		Store:               store,
		ConfidenceThreshold: c.Confidence,
		OptimizeThreshold:   c.Threshold,
		Optimize:            c.Optimize,
		MaxPasses:           c.Passes,
	}
	res, err := strategy.Scan(query)
	if err != nil {
		return err
	}

	switch res.Status {
	case licenseid.StatusIdentified:
		printMatch("", res.Match)
	case licenseid.StatusPossibleEmbedded:
		fmt.Printf("License: Unknown\nScore: %.3f\nContaining:\n", res.Match.Confidence)
		for _, contained := range res.Containing {
			printMatch("  ", contained.Match)
			fmt.Printf("  Lines: %d - %d\n", contained.StartLine, contained.EndLine)
		}
	default:
		fmt.Printf("License: Unknown\nScore: %.3f\n", res.Match.Confidence)
	}

	if c.Diff && res.Match.Data != nil {
		fmt.Println(licenseid.DiffTexts(query, res.Match.Data))
	}
	return nil
}

func printMatch(indent string, m licenseid.Match) {
	fmt.Printf("%sLicense: %s\n%sScore: %.3f\n", indent, m.Name, indent, m.Confidence)
	if len(m.Aliases) > 0 {
		fmt.Printf("%sAliases: %s\n", indent, strings.Join(m.Aliases, ", "))
	}
}

func main() {
	log.SetFlags(0)
	ctx := kong.Parse(&CLI,
		kong.Name("licenseid"),
		kong.Description("Identify license texts by similarity to a known corpus."),
		kong.UsageOnError(),
	)
	if !CLI.Verbose {
		log.SetOutput(io.Discard)
	}
	ctx.FatalIfErrorf(ctx.Run())
}
