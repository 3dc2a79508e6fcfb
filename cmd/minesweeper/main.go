package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"hash/maphash"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/minesweeper/internal/commands"
	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/logging"
	"github.com/vancomm/minesweeper/internal/session"
	"github.com/vancomm/minesweeper/internal/store"
)

func createRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

func setupStore(log *logrus.Logger, path string) (*sql.DB, *store.Saves) {
	if path == "" {
		log.Debug("no store configured, saving disabled")
		return nil, nil
	}
	db, err := store.Open(path)
	if err != nil {
		log.Fatal("unable to open store: ", err)
	}
	saves, err := store.New(db, store.DefaultTable)
	if err != nil {
		db.Close()
		log.Fatal("unable to prepare store: ", err)
	}
	if count, err := saves.Count(); err == nil {
		log.WithFields(logrus.Fields{"path": path, "saves": count}).Info("store ready")
	}
	return db, saves
}

func main() {
	mainCtx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		return
	} else if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	log, err := logging.New(cfg, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, "unable to set up logging:", err)
		os.Exit(1)
	}
	log.Info("starting up")
	log.WithFields(cfg.Fields()).Debug("config")

	db, saves := setupStore(log, cfg.StorePath)

	sess, err := session.New(cfg.Params(), log, session.SystemClock, createRand())
	if err != nil {
		log.Fatal("unable to start a game: ", err)
	}
	console := commands.New(cfg, sess, saves, log)

	g, gCtx := errgroup.WithContext(mainCtx)
	g.Go(func() error {
		// stdin closing ends the session just like quitting
		defer stop()
		return console.Run(gCtx, os.Stdin, os.Stdout)
	})
	g.Go(func() error {
		<-gCtx.Done()
		if db != nil {
			return db.Close()
		}
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, commands.ErrQuit) {
		log.Infof("exit reason: %s", err)
	}
}
