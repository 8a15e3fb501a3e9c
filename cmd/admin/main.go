package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Lelo88/monument-catalog/internal/admin"
	"github.com/Lelo88/monument-catalog/internal/catalog"
	"github.com/Lelo88/monument-catalog/internal/config"
	"github.com/Lelo88/monument-catalog/internal/logging"
)

// environment agrupa lo que los comandos toman del proceso; los tests lo reemplazan.
type environment struct {
	stdin      io.Reader
	stdout     io.Writer
	stderr     io.Writer
	loadConfig func() (config.Admin, error)
	newLogger  func(mode string) (*zap.Logger, error)
}

func defaultEnvironment() *environment {
	return &environment{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
		loadConfig: func() (config.Admin, error) {
			if err := config.LoadDotEnv(); err != nil {
				return config.Admin{}, err
			}
			return config.LoadAdmin()
		},
		newLogger: logging.New,
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(defaultEnvironment()).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// session es lo que arma cada comando: cliente, controller y consola.
type session struct {
	client     *catalog.Client
	controller *admin.Controller
	console    *console
	logger     *zap.Logger
}

type rootOptions struct {
	catalogURL string
	uploadURL  string
	assumeYes  bool
}

func newRootCmd(env *environment) *cobra.Command {
	options := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "catalog-admin",
		Short: "Administra el catálogo de monumentos",
		Long: `catalog-admin habla con la API del catálogo.

Cada comando que modifica algo recarga la lista completa al terminar
y muestra el aviso correspondiente.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&options.catalogURL, "catalog-url", "", "URL de /products (pisa CATALOG_API_URL)")
	cmd.PersistentFlags().StringVar(&options.uploadURL, "upload-url", "", "URL de /upload (pisa UPLOAD_URL)")
	cmd.PersistentFlags().BoolVarP(&options.assumeYes, "yes", "y", false, "No pedir confirmación")

	open := func() (*session, error) {
		return openSession(env, options)
	}

	cmd.AddCommand(
		newListCmd(env, open),
		newCreateCmd(open),
		newUpdateCmd(open),
		newDeleteCmd(open),
		newImportCmd(open),
		newTemplateCmd(env),
		newUploadCmd(env, open),
	)

	return cmd
}

func openSession(env *environment, options *rootOptions) (*session, error) {
	cfg, err := env.loadConfig()
	if err != nil {
		return nil, err
	}
	if options.catalogURL != "" {
		cfg.CatalogURL = options.catalogURL
	}
	if options.uploadURL != "" {
		cfg.UploadURL = options.uploadURL
	}

	logger, err := env.newLogger(cfg.LogMode)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	term := newConsole(env.stdin, env.stderr, options.assumeYes)
	client := catalog.New(cfg.CatalogURL, catalog.WithUploadURL(cfg.UploadURL))
	controller := admin.New(client, term, term,
		admin.WithTimeout(cfg.OperationTimeout),
		admin.WithLogger(logger),
	)

	return &session{
		client:     client,
		controller: controller,
		console:    term,
		logger:     logger,
	}, nil
}

func (s *session) close() {
	_ = s.logger.Sync()
}
