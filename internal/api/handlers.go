package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/sells-group/sourcing-cli/internal/guide"
	"github.com/sells-group/sourcing-cli/internal/model"
	"github.com/sells-group/sourcing-cli/internal/negotiation"
	"github.com/sells-group/sourcing-cli/internal/outreach"
	"github.com/sells-group/sourcing-cli/internal/schema"
	"github.com/sells-group/sourcing-cli/internal/store"
)

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"history": s.store != nil,
	})
}

func (s *Server) handleGuide(w http.ResponseWriter, _ *http.Request) {
	html, err := guide.HTML()
	if err != nil {
		zap.L().Error("api: render guide", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "render guide failed")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(html) //nolint:errcheck
}

// readBody reads the request body and checks it against validate. It writes
// the error response and returns false on failure.
func readBody(w http.ResponseWriter, r *http.Request, validate func([]byte) []string, dst any) bool {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		if tooLarge := new(http.MaxBytesError); errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large",
				"limit is "+strconv.FormatInt(tooLarge.Limit, 10)+" bytes")
			return false
		}
		writeError(w, http.StatusBadRequest, "read request body", err.Error())
		return false
	}
	if problems := validate(data); len(problems) > 0 {
		writeError(w, http.StatusBadRequest, "invalid input", problems...)
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid input", err.Error())
		return false
	}
	return true
}

func (s *Server) handleNegotiation(w http.ResponseWriter, r *http.Request) {
	var in model.NegotiationInput
	if !readBody(w, r, schema.ValidateNegotiation, &in) {
		return
	}
	v, err := negotiation.ValidateAndEvaluate(in)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	s.record(r, model.KindNegotiation, string(v.Case), in, v)
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) handleSupplier(w http.ResponseWriter, r *http.Request) {
	var in model.SupplierInput
	if !readBody(w, r, schema.ValidateSupplier, &in) {
		return
	}
	rep, err := s.scorer.ValidateAndEvaluate(in)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if polish, _ := strconv.ParseBool(r.URL.Query().Get("polish")); polish {
		outreach.Apply(r.Context(), s.polisher, in, &rep)
	}
	s.record(r, model.KindSupplier, string(rep.Grade), in, rep)
	writeJSON(w, http.StatusOK, rep)
}

// record saves an evaluation when history is enabled. Failures are logged only.
func (s *Server) record(r *http.Request, kind model.EvaluationKind, summary string, in, out any) {
	if s.store == nil {
		return
	}
	e, err := model.NewEvaluation(kind, summary, in, out)
	if err == nil {
		err = s.store.SaveEvaluation(r.Context(), e)
	}
	if err != nil {
		zap.L().Warn("api: save evaluation", zap.String("kind", string(kind)), zap.Error(err))
	}
}

func (s *Server) handleListEvaluations(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusNotFound, "history is disabled")
		return
	}

	q := r.URL.Query()
	filter := store.EvaluationFilter{Kind: model.EvaluationKind(q.Get("kind"))}
	if filter.Kind != "" && !filter.Kind.Valid() {
		writeError(w, http.StatusBadRequest, "invalid input", "kind must be negotiation or supplier")
		return
	}
	if l := q.Get("limit"); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil || n < 1 || n > 500 {
			writeError(w, http.StatusBadRequest, "invalid input", "limit must be between 1 and 500")
			return
		}
		filter.Limit = n
	}

	evals, err := s.store.ListEvaluations(r.Context(), filter)
	if err != nil {
		zap.L().Error("api: list evaluations", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "list evaluations failed")
		return
	}
	if evals == nil {
		evals = []model.Evaluation{}
	}
	writeJSON(w, http.StatusOK, evals)
}

func (s *Server) handleGetEvaluation(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusNotFound, "history is disabled")
		return
	}

	id := chi.URLParam(r, "id")
	e, err := s.store.GetEvaluation(r.Context(), id)
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "evaluation not found")
	case err != nil:
		zap.L().Error("api: get evaluation", zap.String("id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "get evaluation failed")
	default:
		writeJSON(w, http.StatusOK, e)
	}
}
