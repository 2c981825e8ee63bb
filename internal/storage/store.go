package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"talent-desk/internal/model"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotFound 表示记录不存在。
var ErrNotFound = errors.New("record not found")

// Store 封装 SQLite 数据库访问，负责候选人与客户录入记录的增删查。
type Store struct {
	db *gorm.DB
}

// UpsertResult 表示候选人写入结果。
type UpsertResult struct {
	Created       int
	NewCandidates []model.Candidate
}

// CandidateQuery 提供分页参数。筛选条件由前端持有，这里不做求值。
type CandidateQuery struct {
	Limit  int
	Offset int
}

// NewStore 创建 Store 并自动迁移数据表。
func NewStore(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := db.AutoMigrate(&model.Candidate{}, &model.ClientIntake{}); err != nil {
		return nil, fmt.Errorf("auto migrate models: %w", err)
	}

	return &Store{db: db}, nil
}

// Close 关闭底层数据库连接。
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("get sql DB: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("close db: %w", err)
	}
	return nil
}

// UpsertCandidates 写入候选人列表，已有主键则更新，返回新增数量与新增记录。
func (s *Store) UpsertCandidates(ctx context.Context, candidates []model.Candidate) (UpsertResult, error) {
	res := UpsertResult{}
	if len(candidates) == 0 {
		return res, nil
	}

	ids := make([]string, 0, len(candidates))
	for _, c := range candidates {
		ids = append(ids, c.ID)
	}

	var existing []string
	if err := s.db.WithContext(ctx).Model(&model.Candidate{}).Where("id IN ?", ids).Pluck("id", &existing).Error; err != nil {
		return res, fmt.Errorf("query existing ids: %w", err)
	}

	existingSet := make(map[string]struct{}, len(existing))
	for _, id := range existing {
		existingSet[id] = struct{}{}
	}

	for i, id := range ids {
		if _, ok := existingSet[id]; !ok {
			res.Created++
			res.NewCandidates = append(res.NewCandidates, candidates[i])
			existingSet[id] = struct{}{}
		}
	}

	tx := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name",
			"title",
			"email",
			"status",
			"location",
			"skills",
			"availability",
			"job_type",
			"education_level",
			"client_type",
			"salary_expectation",
			"experience_years",
			"match_score",
			"verification_status",
			"last_active_at",
			"attributes",
			"updated_at",
		}),
	}).Create(&candidates)
	if tx.Error != nil {
		return res, fmt.Errorf("upsert candidates: %w", tx.Error)
	}

	return res, nil
}

// ListCandidates 返回按入库时间倒序的候选人列表。
func (s *Store) ListCandidates(ctx context.Context, opts CandidateQuery) ([]model.Candidate, error) {
	var candidates []model.Candidate
	if opts.Offset < 0 {
		opts.Offset = 0
	}

	query := s.db.WithContext(ctx).Model(&model.Candidate{}).Order("created_at DESC").Order("id ASC")
	if opts.Offset > 0 {
		query = query.Offset(opts.Offset)
	}
	if opts.Limit > 0 {
		query = query.Limit(opts.Limit)
	}

	if err := query.Find(&candidates).Error; err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}
	return candidates, nil
}

// CountCandidates 返回候选人总数。
func (s *Store) CountCandidates(ctx context.Context) (int64, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&model.Candidate{}).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("count candidates: %w", err)
	}
	return total, nil
}

// GetCandidate 根据 ID 获取候选人。
func (s *Store) GetCandidate(ctx context.Context, id string) (*model.Candidate, error) {
	var c model.Candidate
	if err := s.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get candidate: %w", err)
	}
	return &c, nil
}

// CreateClient 新增客户录入记录。
func (s *Store) CreateClient(ctx context.Context, client *model.ClientIntake) error {
	if err := s.db.WithContext(ctx).Create(client).Error; err != nil {
		return fmt.Errorf("create client: %w", err)
	}
	return nil
}

// ListClients 返回最近录入的客户，limit<=0 时默认 50。
func (s *Store) ListClients(ctx context.Context, limit int) ([]model.ClientIntake, error) {
	if limit <= 0 {
		limit = 50
	}
	var clients []model.ClientIntake
	if err := s.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&clients).Error; err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	return clients, nil
}
