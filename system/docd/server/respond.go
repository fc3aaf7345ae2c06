package server

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/signadot/space/encode"
	"github.com/signadot/space/format"
	"github.com/signadot/space/ir"
	"github.com/signadot/space/system/docd/api"
	"github.com/signadot/space/system/docd/storage"

	"github.com/go-chi/chi/v5"
)

func boolParam(q url.Values, name string) bool {
	b, _ := strconv.ParseBool(q.Get(name))
	return b
}

func outputFormat(r *http.Request) (format.Format, error) {
	if v := r.URL.Query().Get("format"); v != "" {
		return format.ParseFormat(v)
	}
	return api.FormatOf(r.Header.Get("Accept"), ""), nil
}

// writeDoc encodes doc in the format the request asks for.
func (s *Server) writeDoc(w http.ResponseWriter, r *http.Request, status int, doc *ir.Node) {
	f, err := outputFormat(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, api.NewError(api.ErrCodeBadFormat, err.Error()))
		return
	}
	q := r.URL.Query()
	buf := &bytes.Buffer{}
	err = encode.Encode(doc, buf,
		encode.EncodeFormat(f),
		encode.EncodePretty(boolParam(q, "pretty")),
		encode.EncodeGuessTypes(boolParam(q, "guess")))
	if err != nil {
		s.writeError(w, http.StatusNotAcceptable, api.NewError(api.ErrCodeBadFormat, err.Error()))
		return
	}
	w.Header().Set("Content-Type", api.MediaType(f))
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		s.Spec.Log.Warn("write failed", "error", err)
	}
}

func (s *Server) writeText(w http.ResponseWriter, text string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, text)
}

// writeError always answers in space notation.
func (s *Server) writeError(w http.ResponseWriter, status int, e *api.Error) {
	if status >= 500 {
		s.Spec.Log.Error("request failed", "code", e.Code, "error", e.Message)
	}
	w.Header().Set("Content-Type", api.ContentType)
	w.WriteHeader(status)
	_, _ = io.WriteString(w, encode.MustString(e.Node()))
}

func (s *Server) storeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		s.writeError(w, http.StatusNotFound, api.NewError(api.ErrCodeNotFound, err.Error()))
	case errors.Is(err, storage.ErrInvalidKey):
		s.writeError(w, http.StatusBadRequest, api.NewError(api.ErrCodeInvalidKey, err.Error()))
	default:
		s.writeError(w, http.StatusInternalServerError, api.NewError(api.ErrCodeStorage, err.Error()))
	}
}

// urlKey returns the unescaped URL parameter name.
func (s *Server) urlKey(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	key, err := url.PathUnescape(chi.URLParam(r, name))
	if err == nil {
		err = storage.CheckKey(key)
	}
	if err != nil {
		s.writeError(w, http.StatusBadRequest, api.NewError(api.ErrCodeInvalidKey, fmt.Sprintf("%s: %v", name, err)))
		return "", false
	}
	return key, true
}
