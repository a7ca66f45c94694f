package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"seoinspector/internal/log"
	"seoinspector/internal/model"
	"seoinspector/internal/panel"
	"seoinspector/internal/render"
	"seoinspector/internal/service"
	"seoinspector/internal/util"
	"seoinspector/pkg/response"
)

const (
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
)

type Handler struct {
	inspector *service.Inspector
}

func New(inspector *service.Inspector) *Handler {
	return &Handler{inspector: inspector}
}

func HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	resp := map[string]string{"status": "ok"}
	response.Success(w, resp, "")
}

// targetFromQuery validates ?url= and writes the 400 itself when it fails.
func targetFromQuery(w http.ResponseWriter, r *http.Request) (string, bool) {
	url := r.URL.Query().Get("url")
	if url == "" {
		response.Error(w, http.StatusBadRequest, "missing 'url' query parameter")
		return "", false
	}

	if !util.IsValidURL(url) {
		response.Error(w, http.StatusBadRequest, "invalid 'url' format")
		return "", false
	}

	return util.NormalizeURL(url), true
}

func (h *Handler) InspectHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	target, ok := targetFromQuery(w, r)
	if !ok {
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = FormatJSON
	}
	if format != FormatJSON && format != FormatMarkdown {
		response.Error(w, http.StatusBadRequest, "'format' must be json or markdown")
		return
	}

	report, err := h.inspector.Inspect(r.Context(), target)
	if err != nil {
		response.Error(w, StatusFor(err), fmt.Sprintf("failed to inspect page: %v", err))
		return
	}

	if format == FormatMarkdown {
		md, err := render.Markdown(report)
		if err != nil {
			log.Logger.Error("markdown export failed", zap.String("url", target), zap.Error(err))
			response.Error(w, http.StatusInternalServerError, "failed to render report")
			return
		}
		response.Markdown(w, md)
		return
	}

	response.Success(w, report, "")
}

// StatusFor maps an inspection error onto the API's status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, service.ErrPrimaryExtraction):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// PanelHandler streams the panel: the primary section is flushed as soon as
// it is known, the rest follows once the secondary stage settles.
func (h *Handler) PanelHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	target, ok := targetFromQuery(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	p, err := panel.FromQuery(q.Get("tab"), q["open"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)

	pw := &panelWriter{w: w, rc: http.NewResponseController(w), target: target}
	pw.step(func(w io.Writer) error { return render.Open(w, p) })
	pw.flush()

	report, err := h.inspector.Run(r.Context(), target, func(snapshot *model.PageSnapshot) {
		pw.step(func(w io.Writer) error { return render.Primary(w, snapshot) })
		pw.flush()
	})

	switch {
	case errors.Is(err, service.ErrPrimaryExtraction):
		pw.step(func(w io.Writer) error { return render.Failure(w, render.MsgPrimaryFailed) })
		pw.step(func(w io.Writer) error { return render.Regions(w, nil, p) })
	case err != nil:
		pw.step(func(w io.Writer) error { return render.Failure(w, render.MsgSecondaryFailed) })
		pw.step(func(w io.Writer) error { return render.Regions(w, nil, p) })
	default:
		pw.step(func(w io.Writer) error { return render.Crawlability(w, report) })
		pw.step(func(w io.Writer) error { return render.Regions(w, report, p) })
	}
	pw.step(render.Close)
	pw.flush()
}

// panelWriter stops writing after the first failure; the status line is
// already out by then, so the error can only be logged.
type panelWriter struct {
	w      io.Writer
	rc     *http.ResponseController
	target string
	err    error
}

func (pw *panelWriter) step(fn func(io.Writer) error) {
	if pw.err != nil {
		return
	}
	if err := fn(pw.w); err != nil {
		pw.err = err
		log.Logger.Warn("panel write failed", zap.String("url", pw.target), zap.Error(err))
	}
}

func (pw *panelWriter) flush() {
	if pw.err != nil {
		return
	}
	if err := pw.rc.Flush(); err != nil && !errors.Is(err, http.ErrNotSupported) {
		pw.err = err
	}
}

func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
