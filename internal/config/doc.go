// Package config provides configuration management for the confcheck CLI.
//
// This package loads and validates the tool's own settings: where the
// application root is, which packages contribute configuration and schemas,
// and which contexts and types a sweep covers. It is distinct from the
// application configuration being validated, which lives in
// internal/configuration.
//
// # Configuration File
//
// config.yaml is searched in the working directory and in
// $XDG_CONFIG_HOME/confcheck (overridable with CONFCHECK_CONFIG_DIR):
//
//	version: 1
//	root: /var/www/flow          # optional, detected from the working directory
//	packages_dir: Packages
//	configuration_dir: Configuration
//	contexts: [Development, Production, Testing]
//	types: [Caches, Objects, Policy, Routes, Settings]
//	schema_packages: [TYPO3.Flow]
//	configuration_packages: [TYPO3.Flow, TYPO3.Fluid, TYPO3.Eel, TYPO3.Kickstart]
//	workers: 1
//	output: text
//
// Every key can be overridden with a CONFCHECK_ environment variable, e.g.
// CONFCHECK_WORKERS=4.
//
// # Loading Configuration
//
//	config.Init()
//	cfg, err := config.Load("")
//	if err != nil {
//	    if errors.Is(err, errors.ErrInvalidConfig) {
//	        // a field was rejected
//	    }
//	    return err
//	}
//
// Load validates the result with go-playground/validator; contexts and
// types are checked against the configuration domain.
package config
