package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/signadot/space"
	"github.com/signadot/space/encode"
	"github.com/signadot/space/ir"
	"github.com/signadot/space/libdiff"
	"github.com/signadot/space/query"
	"github.com/signadot/space/system/docd/api"
	"github.com/signadot/space/system/docd/storage"
)

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	keys, err := s.Spec.Store.List(r.Context())
	if err != nil {
		s.storeError(w, err)
		return
	}
	s.writeDoc(w, r, http.StatusOK, api.KeyList(keys))
}

// handleGet answers with the document, its value at path= or the pairs of
// that value selected by filter=.
func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	key, ok := s.urlKey(w, r, "key")
	if !ok {
		return
	}
	doc, err := s.Spec.Store.Get(r.Context(), key)
	if err != nil {
		s.storeError(w, err)
		return
	}
	q := r.URL.Query()
	if p := q.Get("path"); p != "" {
		doc = doc.Get(p)
		if doc == nil {
			s.writeError(w, http.StatusNotFound, api.NewError(api.ErrCodeInvalidPath, fmt.Sprintf("no value at %q", p)))
			return
		}
	}
	if src := q.Get("filter"); src != "" {
		pred, err := query.Compile(src)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, api.NewError(api.ErrCodeBadFilter, err.Error()))
			return
		}
		doc, err = pred.Filter(doc)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, api.NewError(api.ErrCodeBadFilter, err.Error()))
			return
		}
	}
	s.writeDoc(w, r, http.StatusOK, doc)
}

// current returns the stored document, or an empty tree if there is none.
func (s *Server) current(r *http.Request, key string) (*ir.Node, error) {
	doc, err := s.Spec.Store.Get(r.Context(), key)
	if errors.Is(err, storage.ErrNotFound) {
		return ir.New(), nil
	}
	return doc, err
}

func (s *Server) handlePut(w http.ResponseWriter, r *http.Request) {
	key, ok := s.urlKey(w, r, "key")
	if !ok {
		return
	}
	doc, err := api.ReadDocument(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, api.NewError(api.ErrCodeBadRequest, err.Error()))
		return
	}
	unlock := s.locks.lock(key)
	defer unlock()

	old, err := s.current(r, key)
	if err != nil {
		s.storeError(w, err)
		return
	}
	if err := s.Spec.Store.Put(r.Context(), key, doc); err != nil {
		s.storeError(w, err)
		return
	}
	s.commit(&Change{Key: key, Kind: ChangePut, Diff: libdiff.Diff(old, doc)})
	s.writeDoc(w, r, http.StatusOK, doc)
}

// handlePatch applies the patch of the request body at its path, provided
// the value there matches the body's match pattern. A missing document or
// path starts out empty.
func (s *Server) handlePatch(w http.ResponseWriter, r *http.Request) {
	key, ok := s.urlKey(w, r, "key")
	if !ok {
		return
	}
	body, err := api.ParseRequestBody(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, api.NewError(api.ErrCodeInvalidDiff, err.Error()))
		return
	}
	unlock := s.locks.lock(key)
	defer unlock()

	doc, err := s.current(r, key)
	if err != nil {
		s.storeError(w, err)
		return
	}
	before := doc.Clone()
	target := doc
	if body.Path != "" {
		target = doc.Get(body.Path)
		if target == nil {
			target = ir.New()
			doc.Put(body.Path, target)
		}
	}
	if body.Match != nil && !space.Match(target, body.Match) {
		s.writeError(w, http.StatusConflict, api.NewError(api.ErrCodeNoMatch,
			fmt.Sprintf("value at %q does not match", body.Path)))
		return
	}
	space.Patch(target, body.Patch)
	if err := s.Spec.Store.Put(r.Context(), key, doc); err != nil {
		s.storeError(w, err)
		return
	}
	s.commit(&Change{Key: key, Kind: ChangePatch, Diff: libdiff.Diff(before, doc)})
	s.writeDoc(w, r, http.StatusOK, doc)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	key, ok := s.urlKey(w, r, "key")
	if !ok {
		return
	}
	unlock := s.locks.lock(key)
	defer unlock()

	if err := s.Spec.Store.Delete(r.Context(), key); err != nil {
		s.storeError(w, err)
		return
	}
	s.commit(&Change{Key: key, Kind: ChangeDelete})
	w.WriteHeader(http.StatusNoContent)
}

// handleOrder reorders the document, or its tree at path=, to follow the
// order document in the request body.
func (s *Server) handleOrder(w http.ResponseWriter, r *http.Request) {
	key, ok := s.urlKey(w, r, "key")
	if !ok {
		return
	}
	p, err := api.ReadDocument(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, api.NewError(api.ErrCodeBadRequest, err.Error()))
		return
	}
	unlock := s.locks.lock(key)
	defer unlock()

	doc, err := s.Spec.Store.Get(r.Context(), key)
	if err != nil {
		s.storeError(w, err)
		return
	}
	target := doc
	if path := r.URL.Query().Get("path"); path != "" {
		target = doc.Get(path)
		if !target.IsTree() {
			s.writeError(w, http.StatusNotFound, api.NewError(api.ErrCodeInvalidPath, fmt.Sprintf("no tree at %q", path)))
			return
		}
	}
	space.PatchOrder(target, p)
	if err := s.Spec.Store.Put(r.Context(), key, doc); err != nil {
		s.storeError(w, err)
		return
	}
	s.commit(&Change{Key: key, Kind: ChangeOrder, Diff: p})
	s.writeDoc(w, r, http.StatusOK, doc)
}

// handleDiff compares the document with another one: an order diff with
// order=true, a created/updated/deleted report with cud=true, a line diff
// of the canonical text with text=true.
func (s *Server) handleDiff(w http.ResponseWriter, r *http.Request) {
	key, ok := s.urlKey(w, r, "key")
	if !ok {
		return
	}
	other, ok := s.urlKey(w, r, "other")
	if !ok {
		return
	}
	a, err := s.Spec.Store.Get(r.Context(), key)
	if err != nil {
		s.storeError(w, err)
		return
	}
	b, err := s.Spec.Store.Get(r.Context(), other)
	if err != nil {
		s.storeError(w, err)
		return
	}
	q := r.URL.Query()
	switch {
	case boolParam(q, "text"):
		s.writeText(w, libdiff.TextDiff(a, b))
	case boolParam(q, "order"):
		s.writeDoc(w, r, http.StatusOK, space.DiffOrder(a, b))
	case boolParam(q, "cud"):
		s.writeDoc(w, r, http.StatusOK, libdiff.Cud(a, b))
	default:
		s.writeDoc(w, r, http.StatusOK, space.Diff(a, b))
	}
}

// handleWatch streams the changes of a document as they commit, each as a
// top level "change" pair, so the stream read so far is itself a
// document. count= ends the stream after that many changes.
func (s *Server) handleWatch(w http.ResponseWriter, r *http.Request) {
	key, ok := s.urlKey(w, r, "key")
	if !ok {
		return
	}
	count := 0
	if v := r.URL.Query().Get("count"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.writeError(w, http.StatusBadRequest, api.NewError(api.ErrCodeBadRequest, fmt.Sprintf("bad count %q", v)))
			return
		}
		count = n
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		s.writeError(w, http.StatusInternalServerError, api.NewError(api.ErrCodeBadRequest, "streaming not supported"))
		return
	}
	watcher := NewWatcher(key, 16)
	s.Hub.Watch(watcher)
	defer s.Hub.Unwatch(watcher)

	w.Header().Set("Content-Type", api.ContentType)
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for sent := 0; count == 0 || sent < count; sent++ {
		select {
		case <-r.Context().Done():
			return
		case <-watcher.Failed:
			s.Spec.Log.Warn("watcher failed", "key", key)
			return
		case c := <-watcher.Events:
			if _, err := io.WriteString(w, encode.MustString(ir.FromKeyVals("change", c.Node()))); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

func (s *Server) commit(c *Change) {
	s.metrics.changes.WithLabelValues(c.Kind).Inc()
	s.Spec.Log.Info("commit", "key", c.Key, "kind", c.Kind)
	s.Hub.Broadcast(c)
}
