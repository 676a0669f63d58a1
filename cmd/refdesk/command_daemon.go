package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	refdeskclient "refdesk/internal/client"
	"refdesk/internal/config"
	"refdesk/internal/daemon"
	"refdesk/internal/logging"
	"refdesk/internal/store"
)

type DaemonCommand struct {
	stderr     io.Writer
	runDaemon  func(background bool) error
	killDaemon func() error
}

func NewDaemonCommand(stderr io.Writer, runDaemon func(background bool) error, killDaemon func() error) *DaemonCommand {
	return &DaemonCommand{
		stderr:     stderr,
		runDaemon:  runDaemon,
		killDaemon: killDaemon,
	}
}

func (c *DaemonCommand) Run(args []string) error {
	fs := flag.NewFlagSet("daemon", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	background := fs.Bool("background", false, "run in background (logs to file)")
	kill := fs.Bool("kill", false, "stop any running daemon and exit")
	force := fs.Bool("force", false, "stop any running daemon before starting")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *kill {
		return c.killDaemon()
	}
	if *force {
		if err := c.killDaemon(); err != nil {
			return err
		}
	}
	return c.runDaemon(*background)
}

func runDaemonProcess(background bool) error {
	dataDir, err := config.DataDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return err
	}

	coreCfg, err := config.LoadCoreConfig()
	if err != nil {
		return err
	}

	logger, closeLog, err := buildDaemonLogger(background, coreCfg.LogLevel())
	if err != nil {
		return err
	}
	defer closeLog()

	tokenPath, err := config.TokenPath()
	if err != nil {
		return err
	}
	token, err := daemon.LoadOrCreateToken(tokenPath)
	if err != nil {
		return err
	}

	identityPath, err := config.IdentityPath()
	if err != nil {
		return err
	}
	identity, err := store.NewFileIdentityStore(identityPath).Load()
	if err != nil {
		return err
	}

	repo, err := openRepository(coreCfg)
	if err != nil {
		return err
	}
	defer repo.Close()

	keymapPath := strings.TrimSpace(coreCfg.UI.KeymapPath)
	if keymapPath == "" {
		keymapPath, err = config.KeymapPath()
		if err != nil {
			return err
		}
	}
	keymaps := store.NewFileKeymapStore(keymapPath)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	d := daemon.New(coreCfg.DaemonAddress(), token, buildVersion(), identity.PrincipalID, repo, keymaps, logger)
	return d.Run(ctx)
}

func openRepository(coreCfg config.CoreConfig) (store.Repository, error) {
	switch coreCfg.StoreBackend() {
	case config.StoreBackendFile:
		dir, err := config.CollectionsDir()
		if err != nil {
			return nil, err
		}
		return store.NewFileRepository(dir)
	case config.StoreBackendPostgres:
		dsn := coreCfg.PostgresDSN()
		if dsn == "" {
			return nil, errors.New("store backend is postgres but postgres_dsn is empty")
		}
		return store.NewPostgresRepository(dsn)
	default:
		path, err := config.DBPath()
		if err != nil {
			return nil, err
		}
		return store.NewBboltRepository(path)
	}
}

func buildDaemonLogger(background bool, level string) (logging.Logger, func(), error) {
	if !background {
		return logging.New(os.Stderr, logging.ParseLevel(level)), func() {}, nil
	}
	logPath, err := config.DaemonLogPath()
	if err != nil {
		return nil, nil, err
	}
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open daemon log: %w", err)
	}
	logger := logging.New(file, logging.ParseLevel(level))
	return logger, func() { _ = file.Close() }, nil
}

func killDaemonWithFactory(newClient clientFactory) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	client, err := newClient()
	if err != nil {
		return err
	}
	if err := client.ShutdownDaemon(ctx); err == nil {
		return nil
	} else {
		var apiErr *refdeskclient.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return nil
		}
		if isDaemonUnavailable(err) {
			return nil
		}
	}
	resp, err := client.Health(ctx)
	if err != nil {
		if isDaemonUnavailable(err) {
			return nil
		}
		return err
	}
	if resp == nil || resp.PID <= 0 {
		return nil
	}
	return terminatePID(resp.PID)
}

func terminatePID(pid int) error {
	if pid <= 0 {
		return errors.New("invalid pid")
	}
	proc, err := os.FindProcess(pid)
	if err != nil {
		return err
	}
	return proc.Signal(syscall.SIGTERM)
}

func isDaemonUnavailable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	lower := strings.ToLower(err.Error())
	return strings.Contains(lower, "connection refused") || strings.Contains(lower, "connect: connection refused")
}
