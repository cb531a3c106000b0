package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"osv-diff/core/config"
	"osv-diff/core/loader"
	"osv-diff/core/logger"
	"osv-diff/core/middleware/rayid"
	"osv-diff/feature/fixture"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the fixture replay server",
	Long: `Serves recorded OSV answers from a directory at the same routes as the OSV
server, so the comparison can run without live servers.

Each answer is read from {root}/{path}.json, for example
{root}/Go/ids/GO-2021-0061.json. Paths without a recording answer [].

Examples:
  osv-diff serve --root fixtures/old --port 1325
  osv-diff serve --root fixtures/new --port 1326`,
	RunE: runServe,
}

func init() {
	flags := serveCmd.Flags()
	flags.String("root", "", "directory holding the recorded answers")
	flags.String("port", "", "port to listen on")
	flags.String("bind", "", "address to bind to")

	RootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	v, err := config.NewViper(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	err = bindFlags(v, cmd, map[string]string{
		"root": "server.root",
		"port": "server.port",
		"bind": "server.bind",
	})
	if err != nil {
		return err
	}
	cfg, err := config.Unmarshal(v)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if !cfg.Server.IsValid() {
		return fmt.Errorf("invalid server configuration: port %q root %q", cfg.Server.Port, cfg.Server.Root)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logg.Sync() }()

	app := newServerApp(logg)

	mgr := loader.NewManager()
	mgr.Register(fixture.NewFeature(cfg.Server.Root, logg))
	if err := mgr.LoadAll(app); err != nil {
		return fmt.Errorf("failed to load features: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		logg.Info("Starting server",
			zap.String("address", cfg.Server.Address()),
			zap.String("root", cfg.Server.Root),
		)
		errCh <- app.Listen(cfg.Server.Address())
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sig)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-sig:
	}

	logg.Info("Shutting down server...")
	return app.Shutdown()
}

// newServerApp creates the fiber app with the ray id and request logging middleware.
func newServerApp(logg *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	// RayID first so every log line below carries it.
	app.Use(rayid.New())
	app.Use(func(c *fiber.Ctx) error {
		l := logger.WithRayID(logg, c)
		l.Debug("Request started",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("ip", c.IP()),
		)
		err := c.Next()
		if err != nil {
			l.Error("Request error", zap.Error(err))
		}
		return err
	})

	return app
}
