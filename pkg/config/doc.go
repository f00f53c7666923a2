// Package config loads sheetsite settings from a YAML file, a .env file and
// the process environment, and turns them into the options the rest of the
// module consumes.
package config
