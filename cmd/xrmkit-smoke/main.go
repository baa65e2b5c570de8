// Package main is a smoke check for a CRM environment: it logs in,
// opens a sitemap sub-area, and reports the grid row count. Useful for
// verifying credentials and selectors before a full suite runs.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/nimbleqa/xrmkit/pkg/browser"
	"github.com/nimbleqa/xrmkit/pkg/config"
	"github.com/nimbleqa/xrmkit/pkg/uci"
)

const version = "0.1.0"

func main() {
	envFile := flag.String("env", ".env", "path to the .env file")
	area := flag.String("area", "", "sitemap area to open (optional)")
	subArea := flag.String("subarea", "Accounts", "sitemap sub-area to open")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("xrmkit-smoke v%s\n", version)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	if err := run(ctx, *envFile, *area, *subArea); err != nil {
		log.Fatalf("smoke check failed: %v", err)
	}
	fmt.Println("smoke check passed")
}

func run(ctx context.Context, envFile, area, subArea string) error {
	settings, err := config.Load(envFile)
	if err != nil {
		return err
	}

	manager := browser.NewManager()
	if err := manager.Initialize(); err != nil {
		return err
	}
	defer manager.Shutdown()

	session, err := manager.Start(browser.Options{
		Headless: settings.Headless,
		Timeout:  settings.DefaultTimeout,
	})
	if err != nil {
		return err
	}

	client := uci.NewClient(session, settings)
	if err := client.Login(ctx); err != nil {
		return err
	}

	nav := client.Navigation()
	if area != "" {
		if err := nav.OpenArea(area); err != nil {
			return err
		}
	}
	if err := nav.OpenSubArea(subArea); err != nil {
		return err
	}

	count, err := client.Grid().RowCount()
	if err != nil {
		return err
	}
	fmt.Printf("%s: %d rows visible\n", subArea, count)

	return nil
}
