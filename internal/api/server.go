package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"talent-desk/internal/filter"
	"talent-desk/internal/intake"
	"talent-desk/internal/model"
	"talent-desk/internal/shortcuts"

	"go.uber.org/zap"
)

// maxBodyBytes 限制请求体大小。
const maxBodyBytes = 1 << 20

// CandidateStore 抽象候选人列表存储。
type CandidateStore interface {
	ListCandidates(ctx context.Context, limit, offset int) ([]model.Candidate, error)
	CountCandidates(ctx context.Context) (int64, error)
}

// ClientService 处理客户录入。
type ClientService interface {
	Create(ctx context.Context, req intake.Request) (model.ClientIntake, error)
	List(ctx context.Context, limit int) ([]model.ClientIntake, error)
}

// ApplyHook 接收面板提交的筛选条件。
type ApplyHook func(ctx context.Context, state filter.State, resultCount int)

// Deps 汇总 HTTP 层依赖，Clients 与 OnApply 可为空。
type Deps struct {
	Candidates CandidateStore
	Clients    ClientService
	Filters    *filter.Store
	Catalog    filter.Catalog
	OnApply    ApplyHook
	Logger     *zap.Logger
}

// MetaResponse 暴露筛选面板所需的元数据。
type MetaResponse struct {
	Options  filter.Catalog `json:"options"`
	Domains  filter.Domains `json:"domains"`
	Defaults filter.State   `json:"defaults"`
}

// FilterRequest 是筛选接口的请求体。
// State 可以只含部分字段，缺省字段取默认值。
type FilterRequest struct {
	State       json.RawMessage          `json:"state"`
	Mutations   []filter.MutationRequest `json:"mutations"`
	ResultCount int                      `json:"result_count"`
}

// FilterResponse 返回新的筛选条件与激活数量。
type FilterResponse struct {
	State       filter.State `json:"state"`
	ActiveCount int          `json:"active_count"`
}

// NewHandler 构造 HTTP 多路复用器。
func NewHandler(deps Deps) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	filters := deps.Filters
	if filters == nil {
		filters = filter.NewStore(filter.DefaultDomains())
	}

	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	mux.HandleFunc("/api/candidates", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		limit := 20
		if l := r.URL.Query().Get("limit"); l != "" {
			if v, err := strconv.Atoi(l); err == nil && v > 0 {
				if v > 100 {
					v = 100
				}
				limit = v
			}
		}
		page := 1
		if p := r.URL.Query().Get("page"); p != "" {
			if v, err := strconv.Atoi(p); err == nil && v > 0 {
				page = v
			}
		}
		offset := (page - 1) * limit

		candidates, err := deps.Candidates.ListCandidates(r.Context(), limit+1, offset)
		if err != nil {
			writeError(w, logger, http.StatusInternalServerError, err)
			return
		}
		total, err := deps.Candidates.CountCandidates(r.Context())
		if err != nil {
			writeError(w, logger, http.StatusInternalServerError, err)
			return
		}

		hasMore := false
		if len(candidates) > limit {
			hasMore = true
			candidates = candidates[:limit]
		}
		if candidates == nil {
			candidates = []model.Candidate{}
		}

		w.Header().Set("X-Page", strconv.Itoa(page))
		w.Header().Set("X-Limit", strconv.Itoa(limit))
		w.Header().Set("X-Has-More", strconv.FormatBool(hasMore))
		w.Header().Set("X-Total", strconv.FormatInt(total, 10))
		writeJSON(w, http.StatusOK, candidates)
	})

	mux.HandleFunc("/api/filters/meta", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, MetaResponse{
			Options:  deps.Catalog,
			Domains:  filters.Domains(),
			Defaults: filters.Default(),
		})
	})

	mux.HandleFunc("/api/filters/mutate", filterHandler(filters, logger, func(_ context.Context, st filter.State, req FilterRequest) (filter.State, error) {
		for i, mr := range req.Mutations {
			m, err := mr.Mutation()
			if err != nil {
				return filter.State{}, &badRequest{msg: "mutation " + strconv.Itoa(i) + ": " + err.Error()}
			}
			st = filters.Mutate(st, m)
		}
		return st, nil
	}))

	mux.HandleFunc("/api/filters/count", filterHandler(filters, logger, func(_ context.Context, st filter.State, _ FilterRequest) (filter.State, error) {
		return st, nil
	}))

	mux.HandleFunc("/api/filters/clear", filterHandler(filters, logger, func(_ context.Context, st filter.State, _ FilterRequest) (filter.State, error) {
		return filters.Clear(st), nil
	}))

	mux.HandleFunc("/api/filters/apply", filterHandler(filters, logger, func(ctx context.Context, st filter.State, req FilterRequest) (filter.State, error) {
		applied := filters.Apply(st)
		logger.Info("filters applied",
			zap.Int("active_count", filters.ActiveFacetCount(applied)),
			zap.Int("result_count", req.ResultCount))
		if deps.OnApply != nil {
			deps.OnApply(ctx, applied.Clone(), req.ResultCount)
		}
		return applied, nil
	}))

	mux.HandleFunc("/api/clients", func(w http.ResponseWriter, r *http.Request) {
		if deps.Clients == nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "client intake disabled"})
			return
		}
		switch r.Method {
		case http.MethodGet:
			limit := 50
			if l := r.URL.Query().Get("limit"); l != "" {
				if v, err := strconv.Atoi(l); err == nil && v > 0 && v <= 200 {
					limit = v
				}
			}
			clients, err := deps.Clients.List(r.Context(), limit)
			if err != nil {
				writeError(w, logger, http.StatusInternalServerError, err)
				return
			}
			if clients == nil {
				clients = []model.ClientIntake{}
			}
			writeJSON(w, http.StatusOK, clients)
		case http.MethodPost:
			var req intake.Request
			if err := decodeBody(w, r, &req); err != nil {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
				return
			}
			client, err := deps.Clients.Create(r.Context(), req)
			if err != nil {
				if errors.Is(err, intake.ErrInvalid) {
					writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
					return
				}
				writeError(w, logger, http.StatusInternalServerError, err)
				return
			}
			writeJSON(w, http.StatusCreated, client)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})

	mux.HandleFunc("/api/shortcuts", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, shortcuts.Groups())
	})

	return withLogging(logger, mux)
}

type badRequest struct{ msg string }

func (e *badRequest) Error() string { return e.msg }

type filterOp func(ctx context.Context, st filter.State, req FilterRequest) (filter.State, error)

// filterHandler 把请求体中的 state 叠加到默认值上。
func filterHandler(filters *filter.Store, logger *zap.Logger, op filterOp) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		var req FilterRequest
		if err := decodeBody(w, r, &req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		draft := filters.Default()
		if len(req.State) > 0 {
			if err := json.Unmarshal(req.State, &draft); err != nil {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid state: " + err.Error()})
				return
			}
		}
		draft = filters.Initialize(draft)
		next, err := op(r.Context(), draft, req)
		if err != nil {
			var bad *badRequest
			if errors.As(err, &bad) {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": bad.msg})
				return
			}
			writeError(w, logger, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, FilterResponse{State: next, ActiveCount: filters.ActiveFacetCount(next)})
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func writeError(w http.ResponseWriter, logger *zap.Logger, status int, err error) {
	logger.Error("request failed", zap.Int("status", status), zap.Error(err))
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func withLogging(logger *zap.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Debug("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("elapsed", time.Since(start)))
	})
}
