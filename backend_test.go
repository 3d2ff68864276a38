package client

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/astra-video/astra-client/internal/api"
)

// fakeBackend is an in-memory document/session/file service used by the
/// resource-operation tests. It implements just enough of the wire protocol:
// document CRUD with equal/orderDesc/limit/search queries, email sessions,
// and multipart file creation.
type fakeBackend struct {
	t *testing.T

	mu          sync.Mutex
	collections map[string][]map[string]any // collectionID → docs, insertion order
	requests    []string                    // "METHOD path" log for call-count assertions
	seq         int

	accounts    map[string]string // email → accountID
	rejectAuth  bool              // force 401 on session creation
	rejectFiles bool              // force 400 on file creation

	srv *httptest.Server
}

const (
	testDatabaseID = "db1"
	testUserCol    = "users"
	testVideoCol   = "videos"
	testSavesCol   = "saves"
	testBucketID   = "media"
)

func newFakeBackend(t *testing.T) *fakeBackend {
	b := &fakeBackend{
		t:           t,
		collections: map[string][]map[string]any{},
		accounts:    map[string]string{},
	}
	b.srv = httptest.NewServer(http.HandlerFunc(b.handle))
	t.Cleanup(b.srv.Close)
	return b
}

func (b *fakeBackend) client(t *testing.T) *Client {
	cfg := Config{
		Endpoint:          b.srv.URL,
		ProjectID:         "proj1",
		DatabaseID:        testDatabaseID,
		UserCollectionID:  testUserCol,
		VideoCollectionID: testVideoCol,
		SavesCollectionID: testSavesCol,
		StorageBucketID:   testBucketID,
	}
	c, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

// seed inserts a document directly, bypassing the wire protocol.
func (b *fakeBackend) seed(collection string, doc map[string]any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := doc["id"]; !ok {
		doc["id"] = fmt.Sprintf("doc-%d", len(b.collections[collection]))
	}
	if _, ok := doc["createdAt"]; !ok {
		doc["createdAt"] = b.nextCreatedAtLocked()
	}
	b.collections[collection] = append(b.collections[collection], doc)
}

func (b *fakeBackend) nextCreatedAtLocked() string {
	b.seq++
	return time.Unix(1700000000+int64(b.seq), 0).UTC().Format(time.RFC3339)
}

// count returns the number of documents currently in a collection.
func (b *fakeBackend) count(collection string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.collections[collection])
}

// countRequests returns how many logged requests match both substrings.
func (b *fakeBackend) countRequests(method, pathPart string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, r := range b.requests {
		if strings.HasPrefix(r, method+" ") && strings.Contains(r, pathPart) {
			n++
		}
	}
	return n
}

func (b *fakeBackend) handle(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	b.requests = append(b.requests, r.Method+" "+r.URL.Path)
	b.mu.Unlock()

	switch {
	case r.URL.Path == "/account" && r.Method == http.MethodPost:
		b.handleCreateAccount(w, r)
	case r.URL.Path == "/account" && r.Method == http.MethodGet:
		b.handleGetAccount(w, r)
	case r.URL.Path == "/account/sessions" && r.Method == http.MethodPost:
		b.handleCreateSession(w, r)
	case r.URL.Path == "/account/sessions/current" && r.Method == http.MethodDelete:
		b.handleDeleteSession(w, r)
	case strings.HasPrefix(r.URL.Path, "/databases/"):
		b.handleDocuments(w, r)
	case strings.HasPrefix(r.URL.Path, "/storage/buckets/"):
		b.handleFiles(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (b *fakeBackend) handleCreateAccount(w http.ResponseWriter, r *http.Request) {
	var body struct {
		AccountID string `json:"accountId"`
		Email     string `json:"email"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)
	b.mu.Lock()
	b.accounts[body.Email] = body.AccountID
	b.mu.Unlock()
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]string{"id": body.AccountID, "email": body.Email})
}

func (b *fakeBackend) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	if b.rejectAuth {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}
	var body struct {
		Email string `json:"email"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)
	b.mu.Lock()
	acctID, ok := b.accounts[body.Email]
	b.mu.Unlock()
	if !ok {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"id": "sess-" + acctID, "accountId": acctID, "secret": "tok-" + acctID,
	})
}

func (b *fakeBackend) handleGetAccount(w http.ResponseWriter, r *http.Request) {
	tok := r.Header.Get("X-Session-Token")
	if !strings.HasPrefix(tok, "tok-") {
		http.Error(w, "no session", http.StatusUnauthorized)
		return
	}
	acctID := strings.TrimPrefix(tok, "tok-")
	b.mu.Lock()
	email := ""
	for e, id := range b.accounts {
		if id == acctID {
			email = e
		}
	}
	b.mu.Unlock()
	_ = json.NewEncoder(w).Encode(map[string]string{"id": acctID, "email": email})
}

func (b *fakeBackend) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("X-Session-Token") == "" {
		http.Error(w, "no session", http.StatusUnauthorized)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (b *fakeBackend) handleFiles(w http.ResponseWriter, r *http.Request) {
	if b.rejectFiles {
		http.Error(w, "upload rejected", http.StatusBadRequest)
		return
	}
	if err := r.ParseMultipartForm(8 << 20); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"id": r.FormValue("fileId"), "bucketId": testBucketID,
	})
}

// handleDocuments routes /databases/{db}/collections/{col}/documents[/{id}].
func (b *fakeBackend) handleDocuments(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	// databases db collections col documents [id]
	if len(parts) < 5 || parts[1] != testDatabaseID {
		http.NotFound(w, r)
		return
	}
	col := parts[3]

	if len(parts) == 6 {
		docID := parts[5]
		switch r.Method {
		case http.MethodGet:
			b.mu.Lock()
			doc := b.findLocked(col, docID)
			b.mu.Unlock()
			if doc == nil {
				http.Error(w, "document not found", http.StatusNotFound)
				return
			}
			_ = json.NewEncoder(w).Encode(doc)
		case http.MethodDelete:
			b.mu.Lock()
			removed := b.removeLocked(col, docID)
			b.mu.Unlock()
			if !removed {
				http.Error(w, "document not found", http.StatusNotFound)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	switch r.Method {
	case http.MethodPost:
		var body struct {
			DocumentID string         `json:"documentId"`
			Data       map[string]any `json:"data"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		doc := map[string]any{"id": body.DocumentID}
		for k, v := range body.Data {
			doc[k] = v
		}
		b.mu.Lock()
		doc["createdAt"] = b.nextCreatedAtLocked()
		b.collections[col] = append(b.collections[col], doc)
		b.mu.Unlock()
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(doc)
	case http.MethodGet:
		b.listDocuments(w, r, col)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (b *fakeBackend) listDocuments(w http.ResponseWriter, r *http.Request, col string) {
	b.mu.Lock()
	docs := append([]map[string]any(nil), b.collections[col]...)
	b.mu.Unlock()

	limit := -1
	for _, qs := range r.URL.Query()["queries[]"] {
		var q api.Query
		if err := json.Unmarshal([]byte(qs), &q); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		switch q.Method {
		case "equal":
			want := fmt.Sprintf("%v", q.Values[0])
			docs = filterDocs(docs, func(d map[string]any) bool {
				return fmt.Sprintf("%v", d[q.Attribute]) == want
			})
		case "search":
			needle := strings.ToLower(fmt.Sprintf("%v", q.Values[0]))
			docs = filterDocs(docs, func(d map[string]any) bool {
				return strings.Contains(strings.ToLower(fmt.Sprintf("%v", d[q.Attribute])), needle)
			})
		case "orderDesc":
			attr := q.Attribute
			sort.SliceStable(docs, func(i, j int) bool {
				return fmt.Sprintf("%v", docs[i][attr]) > fmt.Sprintf("%v", docs[j][attr])
			})
		case "limit":
			limit = int(q.Values[0].(float64))
		default:
			http.Error(w, "unsupported query "+q.Method, http.StatusBadRequest)
			return
		}
	}
	if limit >= 0 && len(docs) > limit {
		docs = docs[:limit]
	}

	raws := make([]json.RawMessage, 0, len(docs))
	for _, d := range docs {
		enc, _ := json.Marshal(d)
		raws = append(raws, enc)
	}
	_ = json.NewEncoder(w).Encode(map[string]any{"total": len(docs), "documents": raws})
}

func filterDocs(docs []map[string]any, keep func(map[string]any) bool) []map[string]any {
	out := docs[:0:0]
	for _, d := range docs {
		if keep(d) {
			out = append(out, d)
		}
	}
	return out
}

func (b *fakeBackend) findLocked(col, id string) map[string]any {
	for _, d := range b.collections[col] {
		if d["id"] == id {
			return d
		}
	}
	return nil
}

func (b *fakeBackend) removeLocked(col, id string) bool {
	for i, d := range b.collections[col] {
		if d["id"] == id {
			b.collections[col] = append(b.collections[col][:i], b.collections[col][i+1:]...)
			return true
		}
	}
	return false
}
