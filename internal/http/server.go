package httpapp

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/rest1/board/docs"
	"github.com/rest1/board/internal/auth"
	"github.com/rest1/board/internal/config"
	"github.com/rest1/board/internal/i18n"
	"github.com/rest1/board/internal/member"
	"github.com/rest1/board/internal/metrics"
	"github.com/rest1/board/internal/post"
	"github.com/rest1/board/internal/rsdata"
	"github.com/rest1/board/internal/store"
	"github.com/rest1/board/internal/validate"
)

const (
	CodeValidationFailed = "400-1"
	CodeMalformedRequest = "400-2"
	CodeInternalError    = "500-1"
)

type Server struct {
	auth     *auth.Service
	members  *member.Service
	posts    *post.Service
	validate *validate.Validator
	tr       *i18n.Translator
	metrics  *metrics.Metrics
	log      logrus.FieldLogger
	cfg      config.Config
	openAPI  string
	router   chi.Router
}

func NewServer(st store.Store, cfg config.Config, log logrus.FieldLogger) (*Server, error) {
	if st == nil {
		return nil, errors.New("httpapp: nil store")
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	tr := i18n.New(cfg.Lang)
	s := &Server{
		auth:     auth.NewService(st, tr),
		members:  member.NewService(st, tr),
		posts:    post.NewService(st, tr),
		validate: validate.New(),
		tr:       tr,
		metrics:  metrics.New(),
		log:      log,
		cfg:      cfg,
	}
	spec := *docs.SwaggerInfo
	spec.BasePath = basePathOrRoot(cfg.BasePath)
	s.openAPI = spec.ReadDoc()
	s.router = s.routes()
	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Members exposes the member service, e.g. for seeding.
func (s *Server) Members() *member.Service {
	return s.members
}

// Posts exposes the post service, e.g. for seeding.
func (s *Server) Posts() *post.Service {
	return s.posts
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.instrument)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.cfg.AllowedOrigins(),
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	r.Get("/openapi.json", s.serveOpenAPIJSON)
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/openapi.json")))

	if s.cfg.BasePath == "" {
		s.apiRoutes(r)
	} else {
		r.Route(s.cfg.BasePath, s.apiRoutes)
	}
	return r
}

func (s *Server) apiRoutes(r chi.Router) {
	r.Route("/members", func(r chi.Router) {
		r.Post("/join", s.handle(s.handleJoin))
		r.Post("/login", s.handle(s.handleLogin))
		r.Get("/me", s.handle(s.handleMe))
	})
	r.Route("/posts", func(r chi.Router) {
		r.Get("/", s.handle(s.handleListPosts))
		r.Post("/", s.handle(s.handleWritePost))
		r.Route("/{postID}", func(r chi.Router) {
			r.Get("/", s.handle(s.handleGetPost))
			r.Put("/", s.handle(s.handleModifyPost))
			r.Delete("/", s.handle(s.handleDeletePost))

			r.Get("/comments", s.handle(s.handleListComments))
			r.Post("/comments", s.handle(s.handleWriteComment))
			r.Get("/comments/{commentID}", s.handle(s.handleGetComment))
			r.Put("/comments/{commentID}", s.handle(s.handleModifyComment))
			r.Delete("/comments/{commentID}", s.handle(s.handleDeleteComment))
		})
	})
}

// response is the successful outcome of a handler: a status and a body
// that is either an envelope or a bare DTO.
type response struct {
	status int
	body   any
}

func envelope(rs rsdata.RsData) response {
	return response{status: rs.StatusCode(), body: rs}
}

func bare(body any) response {
	return response{status: http.StatusOK, body: body}
}

type handlerFunc func(rq *rq) (response, error)

// handle adapts a handler to net/http. Failures are translated here and
// nowhere else.
func (s *Server) handle(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := h(newRq(r, s.auth))
		if err != nil {
			s.writeFailure(w, r, err)
			return
		}
		if rs, isEnvelope := resp.body.(rsdata.RsData); isEnvelope {
			s.metrics.ObserveResult(rs.ResultCode)
		}
		writeJSON(w, resp.status, resp.body)
	}
}

var errMalformedBody = errors.New("malformed request body")

func (s *Server) writeFailure(w http.ResponseWriter, r *http.Request, err error) {
	var (
		rs   rsdata.RsData
		verr *validate.Error
	)
	switch e, isResult := rsdata.AsError(err); {
	case isResult:
		rs = e.RsData()
	case errors.Is(err, store.ErrNotFound):
		s.metrics.ObserveResult("404")
		w.WriteHeader(http.StatusNotFound)
		return
	case errors.As(err, &verr):
		rs = rsdata.Of(CodeValidationFailed, verr.Error())
	case errors.Is(err, errMalformedBody):
		rs = rsdata.Of(CodeMalformedRequest, s.tr.T(i18n.MsgMalformedRequest))
	default:
		s.log.WithFields(logrus.Fields{
			"request_id": middleware.GetReqID(r.Context()),
			"method":     r.Method,
			"path":       r.URL.Path,
		}).WithError(err).Error("request failed")
		rs = rsdata.Of(CodeInternalError, s.tr.T(i18n.MsgInternalError))
	}
	s.metrics.ObserveResult(rs.ResultCode)
	writeJSON(w, rs.StatusCode(), rs)
}

// decode reads a JSON body into dest and validates it.
func (s *Server) decode(r *http.Request, dest any) error {
	if err := readJSON(r.Body, dest); err != nil {
		return fmt.Errorf("%w: %v", errMalformedBody, err)
	}
	return s.validate.Struct(dest)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) serveOpenAPIJSON(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_, _ = w.Write([]byte(s.openAPI))
}

func readJSON(body io.ReadCloser, dest any) error {
	defer body.Close()
	dec := json.NewDecoder(body)
	if err := dec.Decode(dest); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("unexpected data after JSON body")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, store.ErrNotFound
	}
	return id, nil
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func basePathOrRoot(p string) string {
	if p == "" {
		return "/"
	}
	return p
}
