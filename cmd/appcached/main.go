package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/appcacheshim/appcache"
	"github.com/appcacheshim/appcache/store"
)

var (
	configFilenameFlag string
	portFlag           int
	originFlag         string
	dbFlag             string
	pollSecondsFlag    int
	legacyModeFlag     bool
	verbosityTraceFlag bool
	adminPortFlag      int
)

func init() {
	flag.StringVar(&configFilenameFlag, "config", "", "Path to YAML config file")
	flag.StringVar(&originFlag, "origin", "", "Origin to proxy to (overrides config)")
	flag.IntVar(&portFlag, "port", 8080, "Port to listen on")
	flag.IntVar(&adminPortFlag, "admin-port", 0, "Port to serve the admin diagnostic API on (0 disables it)")
	flag.StringVar(&dbFlag, "db", "memory", "SQLite database file, or \"memory\"")
	flag.IntVar(&pollSecondsFlag, "poll-seconds", 60, "Manifest poll interval in seconds")
	flag.BoolVar(&legacyModeFlag, "legacy", false, "Legacy mode: do not poll manifests for updates")
	flag.BoolVar(&verbosityTraceFlag, "vv", false, "Verbosity: trace logging")
}

func main() {
	flag.Parse()

	logLevel := zerolog.DebugLevel
	if verbosityTraceFlag {
		logLevel = zerolog.TraceLevel
	}
	log.Logger = log.Level(logLevel).Output(zerolog.ConsoleWriter{Out: os.Stdout})

	var fileConfig FileConfig
	if configFilenameFlag != "" {
		var err error
		fileConfig, err = readConfig(configFilenameFlag)
		if err != nil {
			log.Fatal().Err(err).Msg("reading config file")
		}
	}

	origin := fileConfig.Origin
	if originFlag != "" {
		origin = originFlag
	}
	if origin == "" {
		log.Fatal().Msg("please specify -origin or an origin in the config file")
	}

	port := portFlag
	if fileConfig.Port > 0 {
		port = fileConfig.Port
	}

	dbPath := dbFlag
	if fileConfig.DB != "" {
		dbPath = fileConfig.DB
	}

	pollSeconds := pollSecondsFlag
	if fileConfig.PollSeconds > 0 {
		pollSeconds = fileConfig.PollSeconds
	}

	db, err := store.Open(dbPath)
	if err != nil {
		log.Fatal().Err(err).Msg("opening store")
	}
	defer db.Close()

	gw, err := appcache.CreateGateway(appcache.Config{
		OriginURL:      origin,
		DB:             db,
		Manifests:      fileConfig.Manifests,
		PollInterval:   time.Duration(pollSeconds) * time.Second,
		DisableUpdates: legacyModeFlag || fileConfig.DisableUpdate,
		Overrides:      fileConfig.Overrides,
		Log:            log.Logger,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("creating gateway")
	}

	if adminPortFlag > 0 {
		go func() {
			addr := fmt.Sprintf(":%d", adminPortFlag)
			log.Info().Str("addr", addr).Msg("serving admin API")
			if err := http.ListenAndServe(addr, gw.AdminHandler()); err != nil {
				log.Error().Err(err).Msg("admin API server stopped")
			}
		}()
	}

	addr := fmt.Sprintf(":%d", port)
	log.Info().Str("addr", addr).Str("origin", origin).Msg("serving")
	if err := http.ListenAndServe(addr, gw); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
