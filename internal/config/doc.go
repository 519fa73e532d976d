// Package config provides configuration management for filebak.
//
// Configuration is loaded via Viper from a YAML file named config.yaml,
// searched in the current directory and ~/.config/filebak, with
// FILEBAK_-prefixed environment variable overrides.
//
// A configuration declares the backup destination, the pass interval, and
// the sources with their selection rules:
//
//	version: 1
//	destination: /mnt/backups
//	interval_minutes: 60
//	sources:
//	  - root: /home/u/music
//	    select:
//	      and:
//	        - name: "*.mp3"
//	        - larger_than: 1048576
//	  - root: /home/u/docs
//
// A source without a select clause backs up every regular file under its
// root. Invalid values (non-positive interval, empty destination or root,
// malformed rules) are rejected by [Validate] before a runner is built.
package config
