// Package manifest loads batch files that describe several mirror jobs to run
// in one invocation.
//
// # Manifest Format
//
// Manifests can be written in YAML or JSON format:
//
//	jobs:
//	  - repository: platform
//	    path: /deploy/templates
//	    local: ./templates
//	    ref: v2.3.0
//	  - repository: platform
//	    path: /docs/readme.md
//	    local: ./docs/
//	options:
//	  project: Infrastructure
//	  dry_run: false
//
// Jobs run in order and the first failure stops the run.
//
// # Usage
//
//	loader := manifest.NewLoader()
//	cfg, err := loader.Load("mirror.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
package manifest
