// Copyright (c) 2026 The Outcry developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"github.com/outcryio/outcry/api"
	"github.com/outcryio/outcry/contracts"
	"github.com/outcryio/outcry/genesis"
	"github.com/outcryio/outcry/kv"
	"github.com/outcryio/outcry/logdb"
	"github.com/outcryio/outcry/lvldb"
	"github.com/outcryio/outcry/outcry"
	"github.com/outcryio/outcry/runtime"
	"github.com/outcryio/outcry/state"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"
)

var (
	version   string
	gitCommit string

	genesisMarkerKey = []byte("g/initialized")
)

func fullVersion() string {
	if gitCommit == "" {
		return version + "-dev"
	}
	return fmt.Sprintf("%s-%s", version, gitCommit)
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".outcry"
	}
	return filepath.Join(home, ".outcry")
}

func initLogger(level string) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return errors.Wrap(err, "log-level")
	}
	w := os.Stderr
	slog.SetDefault(slog.New(tint.NewHandler(w, &tint.Options{
		Level:      lvl,
		TimeFormat: time.TimeOnly,
		NoColor:    !isatty.IsTerminal(w.Fd()),
	})))
	return nil
}

func main() {
	app := cli.App{
		Version:   fullVersion(),
		Name:      "outcryd",
		Usage:     "Outcry ledger node",
		Copyright: "2026 The Outcry developers",
		Flags: []cli.Flag{
			dataDirFlag,
			genesisFlag,
			apiAddrFlag,
			apiCorsFlag,
			logLevelFlag,
			memFlag,
		},
		Action: defaultAction,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func openDBs(ctx *cli.Context) (kv.Store, *logdb.LogDB, error) {
	if ctx.Bool(memFlag.Name) {
		mainDB, err := lvldb.NewMem()
		if err != nil {
			return nil, nil, err
		}
		logDB, err := logdb.NewMem()
		if err != nil {
			return nil, nil, err
		}
		return mainDB, logDB, nil
	}
	dataDir := ctx.String(dataDirFlag.Name)
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, nil, errors.Wrap(err, "create data dir")
	}
	mainDB, err := lvldb.New(filepath.Join(dataDir, "ledger.db"), lvldb.Options{})
	if err != nil {
		return nil, nil, errors.Wrap(err, "open ledger db")
	}
	logDB, err := logdb.New(filepath.Join(dataDir, "logs.db"))
	if err != nil {
		mainDB.Close()
		return nil, nil, errors.Wrap(err, "open log db")
	}
	return mainDB, logDB, nil
}

func loadGenesis(ctx *cli.Context) (*genesis.Config, error) {
	if path := ctx.String(genesisFlag.Name); path != "" {
		return genesis.LoadConfig(path)
	}
	return genesis.Devnet(), nil
}

func defaultAction(ctx *cli.Context) error {
	if err := initLogger(ctx.String(logLevelFlag.Name)); err != nil {
		return err
	}
	log := slog.Default().With("pkg", "main")

	mainDB, logDB, err := openDBs(ctx)
	if err != nil {
		return err
	}
	defer mainDB.Close()
	defer logDB.Close()

	st := state.NewCreator(mainDB).NewState()
	rt := runtime.New(st)
	rt.SetInstaller(contracts.Install)
	rt.SetLogDB(logDB)

	cfg, err := loadGenesis(ctx)
	if err != nil {
		return err
	}
	if _, err := mainDB.Get(genesisMarkerKey); err != nil {
		if !mainDB.IsNotFound(err) {
			return errors.Wrap(err, "read genesis marker")
		}
		log.Info("provisioning fresh ledger", "genesis", cfg.Name)
		if err := genesis.Build(rt, cfg); err != nil {
			return errors.Wrap(err, "build genesis")
		}
		if err := mainDB.Put(genesisMarkerKey, []byte(cfg.Name)); err != nil {
			return errors.Wrap(err, "write genesis marker")
		}
	}
	rt.SetTime(uint64(time.Now().UnixNano()))

	root, cancel := context.WithCancel(context.Background())
	defer cancel()
	go clockLoop(root, rt)

	srv := &http.Server{
		Handler: api.New(rt, logDB, ctx.String(apiCorsFlag.Name)),
		Addr:    ctx.String(apiAddrFlag.Name),
	}
	errCh := make(chan error, 1)
	go func() {
		log.Info("API server listening", "addr", srv.Addr, "version", fullVersion())
		errCh <- srv.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		log.Info("shutting down", "signal", sig.String())
	}
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	started := time.Now()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info("API server stopped", "elapsed", outcry.PrettyDuration(time.Since(started)))
	return nil
}

// clockLoop feeds wall time into the runtime's logical clock and delivers
// any receipts still pending, once a second.
func clockLoop(ctx context.Context, rt *runtime.Runtime) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			// the wall clock may step backwards (ntp, vm resume); the
			// logical clock must not
			rt.AdvanceTime(uint64(now.UnixNano()))
			rt.Drain()
		}
	}
}
