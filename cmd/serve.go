package cmd

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jsphweid/clarinetlint/config"
	"github.com/jsphweid/clarinetlint/midi"
	"github.com/jsphweid/clarinetlint/model"
	"github.com/jsphweid/clarinetlint/pitch"
	"github.com/jsphweid/clarinetlint/render"
	"github.com/jsphweid/clarinetlint/store"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// max accepted request body, MIDI uploads included
const maxBodyBytes = 8 << 20

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the annotation API",
	Long: `Serves the annotation API.

  POST /annotate          {"notes": ["B4", "C#5", "R"], "variant": "basic"}
  POST /annotate/midi     raw Standard MIDI File body, ?variant=&save=
  GET  /reports/{id}      a saved report`,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := newStore(cfg)
		if err != nil {
			return err
		}
		logger.Info("serving", zap.String("addr", cfg.Server.Addr), zap.String("store", cfg.Store.Kind))
		return http.ListenAndServe(cfg.Server.Addr, NewRouter(cfg, st, logger))
	},
}

type server struct {
	cfg   *config.Config
	store store.Store
	log   *zap.Logger
}

func NewRouter(c *config.Config, st store.Store, log *zap.Logger) http.Handler {
	s := &server{cfg: c, store: st, log: log}

	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/annotate", s.handleAnnotate).Methods("POST")
	router.HandleFunc("/annotate/midi", s.handleAnnotateMidi).Methods("POST")
	router.HandleFunc("/reports/{id}", s.handleGetReport).Methods("GET")

	return cors.New(cors.Options{
		AllowedOrigins: c.Server.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
	}).Handler(router)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, model.ErrorResponse{Error: err.Error()})
}

func (s *server) handleAnnotate(w http.ResponseWriter, r *http.Request) {
	var input model.AnnotateRequestBody
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, errors.New("Could not unmarshal request body: "+err.Error()))
		return
	}
	if len(input.Notes) == 0 {
		writeError(w, http.StatusBadRequest, errors.New("notes is required"))
		return
	}

	events, err := pitch.ParseEvents(input.Notes)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	s.respond(w, r, []model.Part{{Name: "notes", Events: events}}, input.Variant, input.Normalize, input.Save)
}

func (s *server) handleAnnotateMidi(w http.ResponseWriter, r *http.Request) {
	smf, err := midi.ReadFrom(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	parts := midi.Parts(smf)
	if len(parts) == 0 {
		writeError(w, http.StatusBadRequest, errors.New("MIDI file has no notes"))
		return
	}

	q := r.URL.Query()
	var normalize *bool
	if q.Get("normalize") == "false" {
		f := false
		normalize = &f
	}
	s.respond(w, r, parts, q.Get("variant"), normalize, q.Get("save") == "true")
}

func (s *server) respond(w http.ResponseWriter, r *http.Request, parts []model.Part, variant string, normalize *bool, save bool) {
	opts, err := analysisOptions(s.cfg, s.log, variant, normalize)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	rep, err := annotateParts(r.Context(), parts, opts)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}

	resp := render.Response(rep)
	if save {
		if err := s.store.Put(r.Context(), resp); err != nil {
			s.log.Error("saving report", zap.String("id", resp.ID), zap.Error(err))
			writeError(w, http.StatusInternalServerError, errors.New("could not save report"))
			return
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	resp, err := s.store.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		s.log.Error("loading report", zap.String("id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, errors.New("could not load report"))
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
