// Package stubserver replays canned fortune-service responses so the client
// can run without the real backend.
package stubserver

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tinytelemetry/lucky/internal/luckyapi"
	"github.com/tinytelemetry/lucky/internal/wheel"
)

const (
	maxTopNumbers = 10
	maxRecent     = 20
)

// RNG picks prize rolls.
type RNG interface {
	IntN(n int) int
}

// Options tunes how streamed bodies are paced.
type Options struct {
	ChunkSize  int           // bytes per streamed chunk; splits runes on purpose
	ChunkDelay time.Duration // pause between chunks
}

// Server serves the seven client endpoints from fixtures.
type Server struct {
	addr     string
	fixtures Fixtures
	opts     Options
	rng      RNG
	server   *http.Server
	listener net.Listener
	ctx      context.Context
	cancel   context.CancelFunc

	mu     sync.Mutex
	top    []luckyapi.RankingEntry
	recent []luckyapi.RankingEntry
	now    func() time.Time
}

// NewServer creates a stub server. addr may be empty when only Handler is used.
func NewServer(addr string, fx Fixtures, opts Options, rng RNG) *Server {
	if addr == "" {
		addr = "127.0.0.1:8000"
	}
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = 7
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		addr:     addr,
		fixtures: fx,
		opts:     opts,
		rng:      rng,
		ctx:      ctx,
		cancel:   cancel,
		now:      time.Now,
	}
	for _, e := range fx.Rankings {
		s.record(e)
	}
	return s
}

// Handler builds the gin engine with all routes registered.
func (s *Server) Handler() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery())

	r.POST("/evaluate", s.handleEvaluate)
	r.POST("/fortune", s.handleFortune)
	r.POST("/name_analysis", s.handleNameAnalysis)
	r.POST("/lucky_draw", s.handleLuckyDraw)
	r.POST("/generate_share_card", s.handleShareCard)
	r.GET("/rankings", s.handleRankings)
	r.POST("/add_to_ranking", s.handleAddToRanking)
	return r
}

// Start binds the listen address. Call Serve to accept connections.
func (s *Server) Start() error {
	s.server = &http.Server{
		Handler:           s.Handler(),
		BaseContext:       func(_ net.Listener) context.Context { return s.ctx },
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
	}

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.listener = listener
	log.Printf("stub: listening on %s", listener.Addr())
	return nil
}

// Addr returns the bound address, or the configured one before Start.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.addr
}

// Serve blocks until the server stops. It returns nil after Stop and the
// listener's error otherwise.
func (s *Server) Serve() error {
	if s.server == nil || s.listener == nil {
		return errors.New("stubserver: Serve called before Start")
	}
	err := s.server.Serve(s.listener)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return fmt.Errorf("stubserver: serve: %w", err)
}

// Stop gracefully shuts down the server.
func (s *Server) Stop() error {
	s.cancel()
	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

func (s *Server) handleEvaluate(c *gin.Context) {
	var req struct {
		Number *string `json:"number"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Number == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求参数错误，需要提供 number 字段"})
		return
	}
	if luckyapi.ValidateNumber(*req.Number) != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "号码必须是4位数字字符串"})
		return
	}
	if msg, ok := s.fixtures.Failures[*req.Number]; ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	ev, ok := s.fixtures.Evaluations[*req.Number]
	if !ok {
		ev = s.fixtures.Evaluations["default"]
	}
	c.JSON(http.StatusOK, gin.H{
		"price":      ev.Price,
		"level":      ev.Level,
		"suggestion": ev.Suggestion,
	})
}

func (s *Server) handleFortune(c *gin.Context) {
	var req struct {
		Birthdate string `json:"birthdate"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Birthdate) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求参数错误，需要提供 birthdate 字段"})
		return
	}
	s.streamText(c, s.fixtures.Fortune)
}

func (s *Server) handleNameAnalysis(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || luckyapi.ValidateName(req.Name) != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求参数错误，需要提供 name 字段"})
		return
	}
	s.streamText(c, strings.ReplaceAll(s.fixtures.NameAnalysis, "{name}", strings.TrimSpace(req.Name)))
}

// streamText writes text in fixed-size byte chunks, flushing each one.
func (s *Server) streamText(c *gin.Context, text string) {
	c.Header("Content-Type", "text/event-stream; charset=utf-8")
	c.Header("Cache-Control", "no-cache")
	c.Status(http.StatusOK)

	data := []byte(text)
	for len(data) > 0 {
		n := min(s.opts.ChunkSize, len(data))
		if _, err := c.Writer.Write(data[:n]); err != nil {
			return
		}
		c.Writer.Flush()
		data = data[n:]
		if len(data) == 0 || s.opts.ChunkDelay <= 0 {
			continue
		}
		select {
		case <-c.Request.Context().Done():
			return
		case <-time.After(s.opts.ChunkDelay):
		}
	}
}

func (s *Server) handleLuckyDraw(c *gin.Context) {
	var req struct {
		Number string `json:"number"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || luckyapi.ValidateNumber(req.Number) != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "号码必须是4位数字字符串"})
		return
	}

	prize := wheel.Pick(s.rng.IntN(wheel.TotalWeight))
	line := s.fixtures.Prizes[prize.Name]
	c.JSON(http.StatusOK, luckyapi.DrawResult{
		Prize:   prize.Name,
		Message: line.Message,
		Score:   line.Score,
	})
}

func (s *Server) handleShareCard(c *gin.Context) {
	var req struct {
		Type    string `json:"type" binding:"required"`
		Content any    `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求参数错误，需要提供 type 字段"})
		return
	}
	if req.Type != string(luckyapi.ShareNumber) && req.Type != string(luckyapi.ShareLucky) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "不支持的分享类型"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"image": s.fixtures.ShareImage})
}

func (s *Server) handleRankings(c *gin.Context) {
	s.mu.Lock()
	snap := luckyapi.RankingSnapshot{
		TopNumbers:        append([]luckyapi.RankingEntry{}, s.top...),
		RecentEvaluations: append([]luckyapi.RankingEntry{}, s.recent...),
	}
	s.mu.Unlock()
	c.JSON(http.StatusOK, snap)
}

func (s *Server) handleAddToRanking(c *gin.Context) {
	var req luckyapi.RankingSubmission
	if err := c.ShouldBindJSON(&req); err != nil || luckyapi.ValidateNumber(req.Number) != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "号码必须是4位数字字符串"})
		return
	}
	s.record(luckyapi.RankingEntry{
		Number:    req.Number,
		Price:     req.Price,
		Level:     req.Level,
		Timestamp: s.now().Format("2006-01-02 15:04:05"),
	})
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// record appends to the recent list (oldest first) and rebuilds the top list
// ordered by price, highest first.
func (s *Server) record(e luckyapi.RankingEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.recent = append(s.recent, e)
	if len(s.recent) > maxRecent {
		s.recent = s.recent[len(s.recent)-maxRecent:]
	}

	top := append(s.top, e)
	slices.SortStableFunc(top, func(a, b luckyapi.RankingEntry) int {
		return cmp.Compare(priceValue(b.Price), priceValue(a.Price))
	})
	if len(top) > maxTopNumbers {
		top = top[:maxTopNumbers]
	}
	s.top = top
}

// priceValue reads the leading number out of prices like "8888元".
func priceValue(p luckyapi.Amount) float64 {
	s := strings.TrimSpace(p.String())
	end := 0
	for end < len(s) && (s[end] >= '0' && s[end] <= '9' || s[end] == '.') {
		end++
	}
	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0
	}
	return v
}
