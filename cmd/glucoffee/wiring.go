package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alexanderramin/glucoffee/internal/advice"
	"github.com/alexanderramin/glucoffee/internal/cli"
	"github.com/alexanderramin/glucoffee/internal/config"
	"github.com/alexanderramin/glucoffee/internal/llm"
	"github.com/alexanderramin/glucoffee/internal/logger"
	"github.com/alexanderramin/glucoffee/internal/repository"
	"github.com/alexanderramin/glucoffee/internal/service"
	"github.com/alexanderramin/glucoffee/internal/store"
	"github.com/alexanderramin/glucoffee/internal/store/filestore"
	"github.com/alexanderramin/glucoffee/internal/store/redisstore"
	"github.com/alexanderramin/glucoffee/internal/sugar"
)

// wiring builds the use cases once the config path is known.
type wiring struct {
	app     *cli.App
	cfg     *config.Config
	log     *logger.Logger
	records store.RecordStore
}

func (w *wiring) init(configPath string) error {
	cfg, err := config.LoadConfig(config.ConfigPath(configPath))
	if err != nil {
		return err
	}
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	w.cfg = cfg

	log, err := logger.New(cfg.LogMode, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	w.log = log

	records, err := openStore(context.Background(), cfg, log)
	if err != nil {
		return err
	}
	w.records = records

	policy := service.Policy{
		Limits:         cfg.Limits(),
		StaleAfterDays: cfg.Policy.StaleAfterDays,
		WindowDays:     cfg.Policy.WeeklyWindowDays,
	}
	observer := service.NewLogUseCaseObserver(log)
	sugarPolicy := cfg.SugarPolicy()

	w.app.Profiles = service.NewProfileService(records, observer)
	w.app.Assessments = service.NewAssessmentService(records, policy, observer)
	w.app.Consumption = service.NewConsumptionService(records, sugar.NewCalculator(sugarPolicy), policy, observer)
	w.app.Analysis = service.NewAnalysisService(records, advice.NewService(newGenerator(log)), policy, log, observer)
	w.app.SugarPolicy = sugarPolicy
	return nil
}

func (w *wiring) resolveUser(flag string) (string, error) {
	if w.cfg == nil {
		return "", errors.New("configuration not loaded")
	}
	return w.cfg.ResolveUserKey(flag)
}

func (w *wiring) close() error {
	var err error
	if w.records != nil {
		err = w.records.Close()
		w.records = nil
	}
	if w.log != nil {
		w.log.Sync()
	}
	return err
}

// newGenerator returns nil when generation is disabled so advice falls back
// quietly.
func newGenerator(log *logger.Logger) llm.TextGenerator {
	llmCfg := llm.LoadConfig()
	var observer llm.Observer = llm.NoopObserver{}
	if llmCfg.LogCalls {
		observer = llm.NewLogObserver(log)
	}
	gen, err := llm.New(llmCfg, observer)
	if err != nil {
		if !errors.Is(err, llm.ErrDisabled) {
			log.Warn("text generator unavailable", "error", err)
		}
		return nil
	}
	return gen
}

func openStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (store.RecordStore, error) {
	switch cfg.Store {
	case config.StoreSQLite:
		if err := os.MkdirAll(cfg.DataDir, 0o700); err != nil {
			return nil, store.Unavailable("create data dir", err)
		}
		s, err := repository.OpenSQLiteRecordStore(filepath.Join(cfg.DataDir, "glucoffee.db"))
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.StoreRedis:
		s, err := redisstore.New(ctx, redisstore.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		}, log)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return filestore.New(filepath.Join(cfg.DataDir, "records"), log), nil
	}
}
