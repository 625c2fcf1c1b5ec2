// Package server 通过 HTTP 提供语言检测，存储在启动前已经裁剪封存。
package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ccp-p/langid/internal/classifier"
	"github.com/ccp-p/langid/internal/detect"
	"github.com/ccp-p/langid/internal/profile"
	"github.com/ccp-p/langid/internal/report"
)

// maxBodySize 检测请求体上限
const maxBodySize = 1 << 20

// ApiResponse 响应包装器
type ApiResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// DetectRequest 是 POST /detect 的请求体
type DetectRequest struct {
	Text string `json:"text"`
}

// DetectResponse 是检测结果
type DetectResponse struct {
	Language profile.Language    `json:"language"`
	Ranking  []classifier.Result `json:"ranking"`
}

type handler struct {
	detector *detect.Detector
	store    report.StoreView
	logger   *slog.Logger
}

// New 创建路由
func New(det *detect.Detector, store report.StoreView, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	h := &handler{detector: det, store: store, logger: logger}

	r := chi.NewRouter()
	r.Use(h.loggingMiddleware)
	r.Post("/detect", h.detect)
	r.Get("/languages", h.languages)
	r.Get("/languages/{name}", h.language)
	return r
}

// 日志中间件
func (h *handler) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		h.logger.Info("http 请求", "method", r.Method, "uri", r.RequestURI, "elapsed", time.Since(start))
	})
}

func (h *handler) detect(w http.ResponseWriter, r *http.Request) {
	var req DetectRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize)).Decode(&req); err != nil {
		sendError(w, "无效的请求数据", http.StatusBadRequest)
		return
	}

	ranking, err := h.detector.Explain(req.Text)
	if errors.Is(err, classifier.ErrNoLanguages) {
		sendError(w, "尚未加载任何语言", http.StatusServiceUnavailable)
		return
	}
	if err != nil {
		h.logger.Error("检测失败", "error", err)
		sendError(w, "检测失败", http.StatusInternalServerError)
		return
	}

	sendJSON(w, ApiResponse{Success: true, Data: DetectResponse{
		Language: ranking[0].Language,
		Ranking:  ranking,
	}})
}

func (h *handler) languages(w http.ResponseWriter, r *http.Request) {
	sizes, err := report.Snapshot(h.store, false)
	if err != nil {
		sendError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	sendJSON(w, ApiResponse{Success: true, Data: sizes})
}

func (h *handler) language(w http.ResponseWriter, r *http.Request) {
	lang, err := profile.ParseLanguage(chi.URLParam(r, "name"))
	if err != nil {
		sendError(w, "语言不存在", http.StatusNotFound)
		return
	}
	prof, err := h.store.ProfileOf(lang)
	if err != nil {
		sendError(w, "语言不存在", http.StatusNotFound)
		return
	}
	sendJSON(w, ApiResponse{Success: true, Data: report.LanguageReport{
		Language: lang.String(),
		Size:     prof.Len(),
		Entries:  prof.Entries(),
	}})
}

// 辅助函数：发送JSON响应
func sendJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

// 辅助函数：发送错误响应
func sendError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ApiResponse{
		Success: false,
		Error:   message,
	})
}
