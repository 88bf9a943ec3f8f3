package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/example/radio-source-codec/pkg/board"
	"github.com/example/radio-source-codec/pkg/formatver"
	"github.com/example/radio-source-codec/pkg/rawsource"
)

type errorResponse struct {
	Error string `json:"error"`
}

type boardSummary struct {
	Name         string          `json:"name"`
	DisplayName  string          `json:"displayName"`
	Capabilities map[string]int  `json:"capabilities"`
	Inputs       []inputSummary  `json:"inputs"`
	Switches     []switchSummary `json:"switches"`
	Trims        []string        `json:"trims"`
}

type inputSummary struct {
	Tag      string `json:"tag"`
	Name     string `json:"name,omitempty"`
	Type     string `json:"type"`
	FlexType string `json:"flexType,omitempty"`
	Inverted bool   `json:"inverted,omitempty"`
}

type switchSummary struct {
	Tag      string `json:"tag"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	Inverted bool   `json:"inverted,omitempty"`
}

type decodeRequest struct {
	Tokens []string `json:"tokens"`
	Semver string   `json:"semver,omitempty"`
}

type decodeResponse struct {
	Board  string            `json:"board"`
	Semver string            `json:"semver"`
	Legacy bool              `json:"legacy"`
	Values []rawsource.Value `json:"values"`
}

type encodeRequest struct {
	Values []rawsource.Value `json:"values"`
}

type encodeResponse struct {
	Board  string   `json:"board"`
	Tokens []string `json:"tokens"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListBoards(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"boards": s.registry.Names()})
}

func (s *Server) handleShowBoard(w http.ResponseWriter, r *http.Request) {
	b, ok := s.lookupBoard(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, summarize(b))
}

func (s *Server) handleDecode(w http.ResponseWriter, r *http.Request) {
	b, ok := s.lookupBoard(w, r)
	if !ok {
		return
	}

	var req decodeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	version := formatver.CurrentVersion()
	if req.Semver != "" {
		v, err := formatver.Parse(req.Semver)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		version = v
	}

	codec := rawsource.NewCodec(b, version, rawsource.WithLogger(s.logger))
	values, err := rawsource.DecodeAll(r.Context(), codec, req.Tokens, s.cfg.Workers)
	if err != nil {
		s.logger.Warn("decode aborted", zap.Error(err))
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, decodeResponse{
		Board:  b.Name(),
		Semver: version.String(),
		Legacy: codec.Legacy(),
		Values: values,
	})
}

func (s *Server) handleEncode(w http.ResponseWriter, r *http.Request) {
	b, ok := s.lookupBoard(w, r)
	if !ok {
		return
	}

	var req encodeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	codec := rawsource.NewCodec(b, formatver.CurrentVersion())
	tokens, err := rawsource.EncodeAll(r.Context(), codec, req.Values, s.cfg.Workers)
	if err != nil {
		s.logger.Warn("encode aborted", zap.Error(err))
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, encodeResponse{Board: b.Name(), Tokens: tokens})
}

func (s *Server) lookupBoard(w http.ResponseWriter, r *http.Request) (*board.Board, bool) {
	name := chi.URLParam(r, "name")
	b, err := s.registry.Get(name)
	if errors.Is(err, board.ErrUnknownBoard) {
		writeError(w, http.StatusNotFound, err.Error())
		return nil, false
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return nil, false
	}
	return b, true
}

func summarize(b *board.Board) boardSummary {
	sum := boardSummary{
		Name:         b.Name(),
		DisplayName:  b.DisplayName(),
		Capabilities: make(map[string]int),
		Inputs:       []inputSummary{},
		Switches:     []switchSummary{},
		Trims:        []string{},
	}
	for _, c := range board.Capabilities() {
		sum.Capabilities[c.String()] = b.Capability(c)
	}
	for _, in := range b.Inputs() {
		is := inputSummary{Tag: in.Tag, Name: in.Name, Type: in.Type.String(), Inverted: in.Inverted}
		if in.Type == board.InputFlex {
			is.FlexType = in.FlexType.String()
		}
		sum.Inputs = append(sum.Inputs, is)
	}
	for _, sw := range b.Switches() {
		sum.Switches = append(sum.Switches, switchSummary{Tag: sw.Tag, Name: sw.Name, Type: sw.Type.String(), Inverted: sw.Inverted})
	}
	for i := 0; i < b.Capability(board.NumTrims); i++ {
		sum.Trims = append(sum.Trims, b.TrimYAMLName(i))
	}
	return sum
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request: "+err.Error())
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
