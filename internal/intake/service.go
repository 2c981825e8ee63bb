package intake

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"net/url"
	"strings"
	"unicode"

	"talent-desk/internal/model"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// ErrInvalid 是所有校验失败的根错误。
var ErrInvalid = errors.New("invalid client intake")

// ValidationError 携带面向用户的校验信息。
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string { return e.Field + ": " + e.Msg }

func (e *ValidationError) Unwrap() error { return ErrInvalid }

// Store 定义持久化接口。
type Store interface {
	CreateClient(ctx context.Context, client *model.ClientIntake) error
	ListClients(ctx context.Context, limit int) ([]model.ClientIntake, error)
}

// Notifier 在客户录入成功后收到记录。
type Notifier interface {
	NotifyClient(ctx context.Context, client model.ClientIntake) error
}

// Config 控制可选的行业与客户类型。
type Config struct {
	Industries    []string `yaml:"industries" json:"industries"`
	ClientTypes   []string `yaml:"client_types" json:"client_types"`
	MaxNotesRunes int      `yaml:"max_notes_runes" json:"max_notes_runes"`
}

// Request 表示客户录入弹窗提交的表单。
type Request struct {
	CompanyName  string            `json:"company_name"`
	ContactName  string            `json:"contact_name"`
	ContactEmail string            `json:"contact_email"`
	Phone        string            `json:"phone"`
	Website      string            `json:"website"`
	Industry     string            `json:"industry"`
	ClientType   string            `json:"client_type"`
	Notes        string            `json:"notes"`
	Extra        map[string]string `json:"extra"`
}

// Service 负责校验并写入客户录入记录。
type Service struct {
	store       Store
	notifier    Notifier
	logger      *zap.Logger
	industries  map[string]string
	clientTypes map[string]string
	maxNotes    int
	newID       func() string
}

// NewService 创建录入服务，notifier 与 logger 可为空。
func NewService(store Store, notifier Notifier, logger *zap.Logger, cfg Config) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	maxNotes := cfg.MaxNotesRunes
	if maxNotes <= 0 {
		maxNotes = 2000
	}
	return &Service{
		store:       store,
		notifier:    notifier,
		logger:      logger,
		industries:  lookup(cfg.Industries),
		clientTypes: lookup(cfg.ClientTypes),
		maxNotes:    maxNotes,
		newID:       uuid.NewString,
	}
}

// Create 校验请求、写入数据库并通知。通知失败只记录日志。
func (s *Service) Create(ctx context.Context, req Request) (model.ClientIntake, error) {
	client, err := s.build(req)
	if err != nil {
		return model.ClientIntake{}, err
	}
	if err := s.store.CreateClient(ctx, &client); err != nil {
		return model.ClientIntake{}, err
	}
	s.logger.Info("client intake created",
		zap.String("id", client.ID),
		zap.String("company", client.CompanyName),
		zap.String("client_type", client.ClientType))

	if s.notifier != nil {
		if err := s.notifier.NotifyClient(ctx, client); err != nil {
			s.logger.Warn("notify client intake failed", zap.String("id", client.ID), zap.Error(err))
		}
	}
	return client, nil
}

// List 返回最近录入的客户。
func (s *Service) List(ctx context.Context, limit int) ([]model.ClientIntake, error) {
	return s.store.ListClients(ctx, limit)
}

func (s *Service) build(req Request) (model.ClientIntake, error) {
	company := strings.TrimSpace(req.CompanyName)
	if company == "" {
		return model.ClientIntake{}, &ValidationError{Field: "company_name", Msg: "required"}
	}
	if err := singleLine("company_name", company); err != nil {
		return model.ClientIntake{}, err
	}

	email := strings.TrimSpace(req.ContactEmail)
	if email == "" {
		return model.ClientIntake{}, &ValidationError{Field: "contact_email", Msg: "required"}
	}
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return model.ClientIntake{}, &ValidationError{Field: "contact_email", Msg: fmt.Sprintf("invalid email: %v", err)}
	}

	contact := strings.TrimSpace(req.ContactName)
	if contact == "" {
		contact = addr.Name
	}
	if err := singleLine("contact_name", contact); err != nil {
		return model.ClientIntake{}, err
	}
	phone := strings.TrimSpace(req.Phone)
	if err := singleLine("phone", phone); err != nil {
		return model.ClientIntake{}, err
	}

	website := strings.TrimSpace(req.Website)
	if website != "" {
		u, err := url.Parse(website)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return model.ClientIntake{}, &ValidationError{Field: "website", Msg: "must be an http(s) URL"}
		}
	}

	industry, err := canonical(s.industries, "industry", req.Industry)
	if err != nil {
		return model.ClientIntake{}, err
	}
	clientType, err := canonical(s.clientTypes, "client_type", req.ClientType)
	if err != nil {
		return model.ClientIntake{}, err
	}

	notes := PlainText(req.Notes)
	if r := []rune(notes); len(r) > s.maxNotes {
		notes = string(r[:s.maxNotes])
	}

	var extra datatypes.JSONMap
	for k, v := range req.Extra {
		key := strings.TrimSpace(k)
		if key == "" {
			continue
		}
		if extra == nil {
			extra = datatypes.JSONMap{}
		}
		extra[key] = strings.TrimSpace(v)
	}

	return model.ClientIntake{
		ID:           s.newID(),
		CompanyName:  company,
		ContactName:  contact,
		ContactEmail: addr.Address,
		Phone:        phone,
		Website:      website,
		Industry:     industry,
		ClientType:   clientType,
		Notes:        notes,
		Extra:        extra,
	}, nil
}

// singleLine 拒绝含控制字符的值，这些字段会进入邮件头。
func singleLine(field, value string) error {
	if strings.ContainsFunc(value, unicode.IsControl) {
		return &ValidationError{Field: field, Msg: "must not contain control characters"}
	}
	return nil
}

// canonical 校验可选字段，候选列表为空时接受任意值。
func canonical(candidates map[string]string, field, value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", nil
	}
	if len(candidates) == 0 {
		return trimmed, nil
	}
	if c, ok := candidates[strings.ToLower(trimmed)]; ok {
		return c, nil
	}
	return "", &ValidationError{Field: field, Msg: fmt.Sprintf("unknown value %s", trimmed)}
}

func lookup(values []string) map[string]string {
	out := make(map[string]string)
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			out[strings.ToLower(trimmed)] = trimmed
		}
	}
	return out
}
