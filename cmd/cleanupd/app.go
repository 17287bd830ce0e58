package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rosscornwall/hirehop-cleanup/internal/api"
	"github.com/rosscornwall/hirehop-cleanup/internal/config"
	"github.com/rosscornwall/hirehop-cleanup/internal/dedup"
	"github.com/rosscornwall/hirehop-cleanup/internal/domain"
	"github.com/rosscornwall/hirehop-cleanup/internal/events"
	"github.com/rosscornwall/hirehop-cleanup/internal/host"
	"github.com/rosscornwall/hirehop-cleanup/internal/task"
)

// application holds the wired components. This is the composition root: all
// construction and dependency injection happens here, no independent logic.
type application struct {
	cfg    *config.Config
	logger *slog.Logger
	server *http.Server
}

// newApplication wires the pipeline: extractors feed the emitter, the
// cleanup handler consults the ledger and hands first-seen entities to the
// scheduler, which submits tasks to the host endpoint.
func newApplication(cfg *config.Config, logger *slog.Logger) (*application, error) {
	loc, err := cfg.Task.Location()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve time zone: %w", err)
	}

	ledger := dedup.NewLedger()
	session := host.StaticSession{ID: cfg.Host.UserID, Name: cfg.Host.UserName}
	notifier := host.NewLogNotifier(logger)

	client := task.NewClient(task.ClientConfig{
		BaseURL:      cfg.Host.BaseURL,
		EndpointPath: cfg.Host.TaskEndpoint,
		Timeout:      cfg.Host.Timeout(),
	}, logger)

	scheduler := task.NewScheduler(task.SchedulerConfig{
		AssigneeID:          cfg.Task.AssigneeID,
		AssignToCreator:     cfg.Task.AssignToCreator,
		DueDays:             cfg.Task.DueDays,
		TitleTemplate:       cfg.Task.TitleTemplate,
		DescriptionTemplate: cfg.Task.DescriptionTemplate,
		Location:            loc,
	}, client, session, notifier, logger)

	emitter := events.NewInMemoryEmitter(logger)
	emitter.RegisterHandler(task.NewCleanupTaskHandler(ledger, scheduler, logger))

	extractors := []events.Extractor{
		events.NewGenericSaveExtractor(events.GenericSaveConfig{
			URLPattern:   cfg.Detect.GenericPattern,
			Kind:         domain.KindCompany,
			IDField:      cfg.Detect.GenericIDField,
			NameField:    cfg.Detect.GenericNameField,
			ConfirmField: cfg.Detect.GenericConfirmField,
		}, logger),
		events.NewEntitySaveExtractor(events.EntitySaveConfig{
			URLPattern: cfg.Detect.CompanyPattern,
			Kind:       domain.KindCompany,
		}, logger),
		events.NewEntitySaveExtractor(events.EntitySaveConfig{
			URLPattern: cfg.Detect.ContactPattern,
			Kind:       domain.KindContact,
		}, logger),
	}

	handler := api.NewSaveHandler(extractors, emitter, ledger, logger)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      api.NewRouter(handler),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	return &application{
		cfg:    cfg,
		logger: logger,
		server: server,
	}, nil
}

// Run starts the ingress server and blocks until shutdown.
func (a *application) Run() error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("save-notification ingress listening",
			"addr", a.server.Addr,
			"host_base_url", a.cfg.Host.BaseURL)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		a.logger.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}
