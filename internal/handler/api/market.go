package api

import (
	"errors"
	"sync"
	"time"

	"github.com/labstack/echo/v4"

	"StockPulse/internal/domain/models"
	"StockPulse/internal/service/ratelimit"
	"StockPulse/internal/usecase"
	xhttp "StockPulse/pkg/http"
	applogger "StockPulse/pkg/logger"
	"StockPulse/pkg/util"
)

// Per-client budgets. Bundle requests fan out to several upstreams, so they
// get a tighter bucket than typeahead.
const (
	bundleBurst   = 10
	bundleRefill  = 2
	suggestBurst  = 30
	suggestRefill = 10
)

// MarketHandler exposes the bundle and typeahead endpoints.
type MarketHandler struct {
	bundles  *usecase.BundleUseCase
	suggests *usecase.SuggestUseCase
	rl       *ratelimit.Limiter
	l        *applogger.Logger
	sessions sync.Map // remote addr -> *usecase.Session
}

func NewMarketHandler(bundles *usecase.BundleUseCase, suggests *usecase.SuggestUseCase, l *applogger.Logger) *MarketHandler {
	return &MarketHandler{bundles: bundles, suggests: suggests, rl: ratelimit.New(), l: l}
}

var _ xhttp.Handler = (*MarketHandler)(nil)

func (h *MarketHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/bundle", h.GetBundle)
	e.GET("/api/suggest", h.Suggest)
}

type bundleResponse struct {
	Seq int64 `json:"seq"`
	*models.MarketBundle
}

type suggestResponse struct {
	Seq         int64                    `json:"seq"`
	Suggestions []models.SuggestionEntry `json:"suggestions"`
}

// GetBundle serves GET /api/bundle?symbol=AAPL&seq=3. The seq value is echoed
// back so a client can discard responses that arrive out of order.
func (h *MarketHandler) GetBundle(c echo.Context) error {
	req := new(models.BundleRequest)
	if errs := xhttp.ReadAndValidateRequest(c, req); errs != nil {
		return xhttp.BadRequestResponse(c, errs)
	}

	if !h.rl.Allow(c.RealIP()+":bundle", bundleBurst, bundleRefill) {
		h.l.Warn("bundle rate limited", applogger.String("remote", c.RealIP()))
		return xhttp.AppErrorResponse(c, xhttp.TooManyRequestsError("rate limited"))
	}

	bundle, err := h.bundles.GetBundle(c.Request().Context(), req.Symbol)
	if err != nil {
		h.l.Error("bundle request failed",
			applogger.String("symbol", req.Symbol),
			applogger.String("kind", models.ErrorKind(err)),
			applogger.Error(err))
		return xhttp.AppErrorResponse(c, mapDomainError(req.Symbol, err))
	}

	// Shallow copy so the relative-time labels never touch a cached bundle.
	out := *bundle
	out.News = annotateNews(bundle.News, time.Now())

	return xhttp.SuccessResponse(c, bundleResponse{Seq: req.Seq, MarketBundle: &out})
}

func annotateNews(items []models.NewsItem, now time.Time) []models.NewsItem {
	out := make([]models.NewsItem, len(items))
	copy(out, items)
	for i := range out {
		if !out[i].PublishedAt.IsZero() {
			out[i].PublishedRelative = util.RelativeTime(out[i].PublishedAt, now)
		}
	}
	return out
}

// Suggest serves GET /api/suggest?q=app&seq=7. Typeahead requests from one
// client supersede each other: when a newer seq has been seen by the time
// this one resolves, the entries are dropped and the client discards the
// empty response by seq.
func (h *MarketHandler) Suggest(c echo.Context) error {
	req := new(models.SuggestRequest)
	if errs := xhttp.ReadAndValidateRequest(c, req); errs != nil {
		return xhttp.BadRequestResponse(c, errs)
	}

	if !h.rl.Allow(c.RealIP()+":suggest", suggestBurst, suggestRefill) {
		h.l.Warn("suggest rate limited", applogger.String("remote", c.RealIP()))
		return xhttp.AppErrorResponse(c, xhttp.TooManyRequestsError("rate limited"))
	}

	var sess *usecase.Session
	if req.Seq > 0 {
		sess = h.session(c.RealIP())
		sess.Observe(req.Seq)
	}

	entries, err := h.suggests.Suggest(c.Request().Context(), req.Query)
	if err != nil {
		h.l.Error("suggest request failed",
			applogger.String("query", req.Query),
			applogger.String("kind", models.ErrorKind(err)),
			applogger.Error(err))
		return xhttp.AppErrorResponse(c, mapDomainError(req.Query, err))
	}

	if sess != nil && !sess.Accept(req.Seq) {
		entries = []models.SuggestionEntry{}
	}
	return xhttp.SuccessResponse(c, suggestResponse{Seq: req.Seq, Suggestions: entries})
}

func (h *MarketHandler) session(remote string) *usecase.Session {
	s, _ := h.sessions.LoadOrStore(remote, &usecase.Session{})
	return s.(*usecase.Session)
}

func mapDomainError(subject string, err error) error {
	switch {
	case errors.Is(err, models.ErrSymbolNotFound):
		return xhttp.NotFoundError("symbol not found: " + subject).WithError(err)
	case errors.Is(err, models.ErrUpstreamUnavailable), errors.Is(err, models.ErrMalformedResponse):
		return xhttp.BadGatewayError("market data temporarily unavailable").WithError(err)
	default:
		return xhttp.InternalError("internal error").WithError(err)
	}
}
