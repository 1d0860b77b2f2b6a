package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"github.com/qstars/qstars/qstars-core/agent"
	"github.com/qstars/qstars/qstars-core/config"
	"github.com/qstars/qstars/qstars-core/ipc"
	"github.com/qstars/qstars/qstars-core/journal"
)

const banner = `
 ██████╗ ███████╗████████╗ █████╗ ██████╗ ███████╗
██╔═══██╗██╔════╝╚══██╔══╝██╔══██╗██╔══██╗██╔════╝
██║   ██║███████╗   ██║   ███████║██████╔╝███████╗
██║▄▄ ██║╚════██║   ██║   ██╔══██║██╔══██╗╚════██║
╚██████╔╝███████║   ██║   ██║  ██║██║  ██║███████║
 ╚══▀▀═╝ ╚══════╝   ╚═╝   ╚═╝  ╚═╝╚═╝  ╚═╝╚══════╝

Rule-Driven Faction Commander`

func main() {
	configPath := flag.String("config", "", "path to a config file (json, yaml or toml)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "qstars:", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(cfg.LogLevel),
	}))
	slog.SetDefault(logger)

	fmt.Println(banner)

	slog.Info("starting qstars", "team", cfg.Team, "transport", cfg.Transport)

	var j *journal.Journal
	if cfg.JournalPath != "" {
		j, err = journal.Open(cfg.JournalPath)
		if err != nil {
			slog.Error("failed to open match journal", "path", cfg.JournalPath, "error", err)
			os.Exit(1)
		}
		slog.Info("recording match journal", "path", cfg.JournalPath)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	s := &server{cfg: cfg, journal: j}
	switch cfg.Transport {
	case config.TransportWebSocket:
		err = s.serveWebSocket(ctx)
	default:
		err = s.serveUnix(ctx)
	}
	slog.Info("shutting down")
	if cerr := j.Close(); cerr != nil {
		slog.Error("failed to close match journal", "error", cerr)
	}
	if err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

// parseLevel converts a string log level to slog.Level.
func parseLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// server hands each bridge connection its own agent.
type server struct {
	cfg     config.Config
	journal *journal.Journal
}

func (s *server) serveUnix(ctx context.Context) error {
	cfg := s.cfg
	// Unix sockets leave behind a file on unclean shutdown; remove it so we can rebind.
	if err := os.RemoveAll(cfg.SocketPath); err != nil {
		return fmt.Errorf("clean up socket %s: %w", cfg.SocketPath, err)
	}

	listener, err := net.Listen("unix", cfg.SocketPath)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", cfg.SocketPath, err)
	}
	defer listener.Close()
	defer os.Remove(cfg.SocketPath)

	slog.Info("listening on domain socket", "path", cfg.SocketPath)

	go func() {
		for {
			conn, err := listener.Accept()
			if err != nil {
				select {
				case <-ctx.Done():
					return
				default:
					slog.Error("failed to accept connection", "error", err)
					continue
				}
			}
			slog.Info("new connection accepted")
			go s.serve(ipc.NewStreamFramer(conn))
		}
	}()

	<-ctx.Done()
	return nil
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true // the listener binds to loopback by default
	},
}

func (s *server) serveWebSocket(ctx context.Context) error {
	cfg := s.cfg
	mux := http.NewServeMux()
	mux.HandleFunc("/agent", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			slog.Error("websocket upgrade failed", "error", err)
			return
		}
		slog.Info("new websocket connection", "remote", r.RemoteAddr)
		go s.serve(ipc.NewSocketFramer(conn))
	})

	srv := &http.Server{Addr: cfg.ListenAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("listening for websocket bridges", "addr", cfg.ListenAddr, "path", "/agent")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("listen on %s: %w", cfg.ListenAddr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// serve runs one agent for the lifetime of a bridge connection.
func (s *server) serve(framer ipc.Framer) {
	a, err := agent.New(s.cfg)
	if err != nil {
		slog.Error("failed to create agent", "error", err)
		framer.Close()
		return
	}
	a.UseJournal(s.journal)
	slog.Info("agent session started", "session", a.Session, "team", a.Team)

	c := ipc.NewConnection(framer, nil)
	c.RegisterHandler(ipc.TypeHello, a.HandleHello)
	c.RegisterHandler(ipc.TypeTick, a.HandleTick)
	c.ReadLoop()
}
