package main

import (
	"context"
	"fmt"
	"os"

	"talent-desk/internal/model"
	"talent-desk/internal/storage"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type candidateUpserter interface {
	UpsertCandidates(ctx context.Context, candidates []model.Candidate) (storage.UpsertResult, error)
}

// candidateFile 是导入文件的结构。
type candidateFile struct {
	Candidates []model.Candidate `yaml:"candidates"`
}

func runImportCmd(cmd *cobra.Command, opts *rootOptions, path string) error {
	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg.Log, opts.verbose)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	store, err := storage.NewStore(cfg.dbPath())
	if err != nil {
		return fmt.Errorf("init store: %w", err)
	}
	defer store.Close()

	res, err := importCandidates(cmd.Context(), path, store)
	if err != nil {
		logger.Error("import failed", zap.String("path", path), zap.Error(err))
		return err
	}
	logger.Info("import finished", zap.String("path", path), zap.Int("created", res.Created))
	fmt.Fprintf(cmd.OutOrStdout(), "imported %s: %d new candidates\n", path, res.Created)
	return nil
}

// importCandidates 读取 YAML 并写入存储，缺少 id 的记录直接报错。
func importCandidates(ctx context.Context, path string, store candidateUpserter) (storage.UpsertResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return storage.UpsertResult{}, fmt.Errorf("read candidates: %w", err)
	}
	var file candidateFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return storage.UpsertResult{}, fmt.Errorf("parse candidates: %w", err)
	}
	for i, c := range file.Candidates {
		if c.ID == "" {
			return storage.UpsertResult{}, fmt.Errorf("candidate %d: missing id", i)
		}
	}
	return store.UpsertCandidates(ctx, file.Candidates)
}
