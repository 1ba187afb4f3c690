package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"papapizza/internal/config"
	"papapizza/internal/console"
	"papapizza/internal/dal"
	"papapizza/internal/handler"
	"papapizza/internal/logger"
	"papapizza/internal/repl"
	"papapizza/internal/service"
)

func main() {
	// Ctrl-C is delivered to the session as input, not as process exit
	interrupts := make(chan os.Signal, 1)
	signal.Notify(interrupts, os.Interrupt)

	code := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr, interrupts)
	signal.Stop(interrupts)
	os.Exit(code)
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer, interrupts <-chan os.Signal) int {
	if err := config.LoadEnvFile(".env"); err != nil {
		fmt.Fprintf(stderr, "papa-pizza: %v\n", err)
		return 1
	}

	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(stderr, "papa-pizza: %v\n", err)
		return 1
	}

	level, err := logger.ParseLevel(cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(stderr, "papa-pizza: %v\n", err)
		return 1
	}

	logOut := stderr
	if cfg.Log.File != "" {
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			fmt.Fprintf(stderr, "papa-pizza: failed to open log file: %v\n", err)
			return 1
		}
		defer f.Close()
		logOut = f
	}
	log := logger.NewLogger(cfg.Store.Name, logOut, level)

	// Catalog and pricing were validated with the config
	items, err := cfg.MenuItems()
	if err != nil {
		log.Error("startup", "invalid menu", err)
		return 1
	}
	pricing, err := cfg.PricingRules()
	if err != nil {
		log.Error("startup", "invalid pricing", err)
		return 1
	}

	// Initialize repositories
	menuRepo, err := dal.NewMenuRepository(items)
	if err != nil {
		log.Error("startup", "failed to load menu", err)
		return 1
	}
	orderRepo := dal.NewOrderRepository()
	reportRepo := dal.NewReportRepository()

	// Initialize services
	menuService := service.NewMenuService(menuRepo)
	orderService := service.NewOrderService(orderRepo, menuRepo, reportRepo, pricing, log)
	reportService := service.NewReportService(reportRepo, log)

	// Initialize handlers
	c := console.New(stdin, stdout, interrupts, cfg.Console.Color)
	menuHandler := handler.NewMenuHandler(menuService, c, cfg.Store.Name)
	orderHandler := handler.NewOrderHandler(orderService, menuHandler, c)
	reportHandler := handler.NewReportHandler(reportService, c, cfg.Store.Name)

	session := repl.NewSession(c, log, cfg.Store.Name, cfg.Store.Tagline)
	router := NewRouter(session, menuHandler, orderHandler, reportHandler)

	log.Info("startup", "configuration loaded",
		slog.String("policy", string(pricing.Policy)),
		slog.Int("menu_items", len(items)),
	)

	if err := session.Run(context.Background(), router, joinArgs(args)); err != nil {
		log.Error("shutdown", "session failed", err)
		return 1
	}
	return 0
}

// joinArgs rebuilds one command line from process arguments, quoting any
// argument the shell had kept together.
func joinArgs(args []string) string {
	quoted := make([]string, len(args))
	for i, a := range args {
		if strings.ContainsAny(a, " \t") {
			a = `"` + a + `"`
		}
		quoted[i] = a
	}
	return strings.Join(quoted, " ")
}
