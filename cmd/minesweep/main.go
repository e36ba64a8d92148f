package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"

	"github.com/ajarov/minesweep/internal/app"
	"github.com/ajarov/minesweep/internal/config"
)

var log = logrus.New()

func setupLogging() {
	if config.Development() {
		log.SetLevel(logrus.DebugLevel)
	}
	log.SetFormatter(&logrus.TextFormatter{ForceColors: true})

	hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
		Filename:   config.LogPath(),
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     30, // days
		Level:      logrus.InfoLevel,
		Formatter:  &logrus.JSONFormatter{},
	})
	if err != nil {
		log.Warn("unable to set up file logging: ", err)
		return
	}
	log.AddHook(hook)
}

func main() {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	setupLogging()

	if err := app.New(log).Start(ctx); err != nil &&
		!errors.Is(err, http.ErrServerClosed) {
		log.Fatal("exit reason: ", err)
	}
}
