//go:build mage

// Package main provides build targets for the todos project using Mage.
//
// Usage:
//
//	mage build          Compile the todo binary to bin/
//	mage test:all       Run all tests
//	mage test:race      Run all tests with the race detector
//	mage test:cover     Write a coverage profile to bin/coverage.out
//	mage lint           Run golangci-lint
//	mage vet            Run go vet
//	mage clean          Remove build artifacts
//	mage install        Install todo to GOPATH/bin
package main
