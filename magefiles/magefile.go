//go:build mage

package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"

	"github.com/joho/godotenv"
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const versionVar = "github.com/Vishal-AsthraMedtech/daily-task-tracker/cmd/tasklog/internal/cli.version"

var binaries = map[string]string{
	"bin/tasklog-server": "./cmd/server",
	"bin/tasklog":        "./cmd/tasklog",
}

// Dbup creates or upgrades the submission journal at DB_PATH.
func Dbup() error {
	fmt.Println(">> tasklog migrate")
	return sh.RunV("go", "run", "./cmd/tasklog", "migrate")
}

// Build tidies deps, then compiles the server and the CLI into ./bin.
func Build() error {
	mg.Deps(Tidy)
	ldflags := "-X " + versionVar + "=" + gitVersion()
	for out, pkg := range binaries {
		fmt.Println(">> Building", out)
		if err := sh.Run("go", "build", "-ldflags", ldflags, "-o", out, pkg); err != nil {
			return err
		}
	}
	return nil
}

// Run builds then starts the server.
func Run() error {
	mg.Deps(Build, Dbup)
	fmt.Println(">> Starting server ...")
	return sh.RunV("./bin/tasklog-server")
}

// Dev starts the server via go run.
func Dev() error {
	fmt.Println(">> Dev mode: go run ./cmd/server ...")
	cmd := exec.Command("go", "run", "./cmd/server")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = append(os.Environ(), "LOG_LEVEL=debug")
	return cmd.Run()
}

// Tidy runs go mod tidy.
func Tidy() error {
	fmt.Println(">> go mod tidy...")
	return sh.Run("go", "mod", "tidy")
}

// Test runs all unit tests with the race detector.
func Test() error {
	fmt.Println(">> Running tests...")
	return sh.RunV("go", "test", "-race", "./...")
}

// Lint runs golangci-lint if available.
func Lint() error {
	if _, err := exec.LookPath("golangci-lint"); err != nil {
		fmt.Println(">> golangci-lint not found; skipping.")
		return nil
	}
	return sh.Run("golangci-lint", "run", "./...")
}

// Clean removes build artifacts and the local journal.
func Clean() error {
	fmt.Println(">> Cleaning...")
	if err := sh.Rm("bin"); err != nil {
		return err
	}
	db := os.Getenv("DB_PATH")
	if db == "" {
		db = "tasklog.db"
	}
	return sh.Rm(db)
}

// Install installs both binaries to $GOPATH/bin.
func Install() error {
	ldflags := "-X " + versionVar + "=" + gitVersion()
	return sh.Run("go", "install", "-ldflags", ldflags, "./cmd/server", "./cmd/tasklog")
}

func gitVersion() string {
	v, err := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	if err != nil || v == "" {
		return "dev"
	}
	return v
}

func init() {
	err := godotenv.Load()
	if err != nil {
		slog.Warn("error loading .env file", "err", err)
	}
}
