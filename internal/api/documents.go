package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/astra-video/astra-client/internal/types"
)

// Query is a single document-service filter. The service accepts equality,
// descending order-by, result limit, and text search on a named attribute.
type Query struct {
	Method    string `json:"method"`
	Attribute string `json:"attribute,omitempty"`
	Values    []any  `json:"values,omitempty"`
}

// Equal filters documents whose attribute equals value.
func Equal(attribute string, value any) Query {
	return Query{Method: "equal", Attribute: attribute, Values: []any{value}}
}

// OrderDesc sorts results by attribute, newest-style descending.
func OrderDesc(attribute string) Query {
	return Query{Method: "orderDesc", Attribute: attribute}
}

// Limit caps the number of returned documents.
func Limit(n int) Query {
	return Query{Method: "limit", Values: []any{n}}
}

// Search matches documents by the service's text-search semantics on attribute.
func Search(attribute, text string) Query {
	return Query{Method: "search", Attribute: attribute, Values: []any{text}}
}

// DocumentList is the document service's list envelope. Documents are kept
// raw so one binding serves every collection; callers unmarshal into their
// own types.
type DocumentList struct {
	Total     int               `json:"total"`
	Documents []json.RawMessage `json:"documents"`
}

func documentsURL(baseURL, databaseID, collectionID string) string {
	return fmt.Sprintf("%s/databases/%s/collections/%s/documents", baseURL, databaseID, collectionID)
}

// CreateDocument inserts a document with the given id and fields, returning
// the stored document as raw JSON.
func CreateDocument(ctx context.Context, httpClient *http.Client, baseURL, databaseID, collectionID, documentID string, fields any) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := types.ValidateIDPresent(collectionID, "collectionId"); err != nil {
		return nil, err
	}
	if err := types.ValidateIDPresent(documentID, "documentId"); err != nil {
		return nil, err
	}
	body, err := json.Marshal(map[string]any{"documentId": documentID, "data": fields})
	if err != nil {
		return nil, err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, documentsURL(baseURL, databaseID, collectionID), bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := do(httpClient, httpReq, http.StatusCreated, "create document")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var doc json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// GetDocument fetches a single document by id.
func GetDocument(ctx context.Context, httpClient *http.Client, baseURL, databaseID, collectionID, documentID string) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := types.ValidateIDPresent(collectionID, "collectionId"); err != nil {
		return nil, err
	}
	if err := types.ValidateIDPresent(documentID, "documentId"); err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/%s", documentsURL(baseURL, databaseID, collectionID), documentID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := do(httpClient, httpReq, http.StatusOK, "get document")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var doc json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// ListDocuments queries a collection. Each query is JSON-encoded into a
// repeated queries[] URL parameter.
func ListDocuments(ctx context.Context, httpClient *http.Client, baseURL, databaseID, collectionID string, queries ...Query) (*DocumentList, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := types.ValidateIDPresent(collectionID, "collectionId"); err != nil {
		return nil, err
	}
	listURL := documentsURL(baseURL, databaseID, collectionID)
	if len(queries) > 0 {
		vals := url.Values{}
		for _, q := range queries {
			enc, err := json.Marshal(q)
			if err != nil {
				return nil, err
			}
			vals.Add("queries[]", string(enc))
		}
		listURL += "?" + vals.Encode()
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, listURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := do(httpClient, httpReq, http.StatusOK, "list documents")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var list DocumentList
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, err
	}
	return &list, nil
}

// DeleteDocument removes a document by id.
func DeleteDocument(ctx context.Context, httpClient *http.Client, baseURL, databaseID, collectionID, documentID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := types.ValidateIDPresent(collectionID, "collectionId"); err != nil {
		return err
	}
	if err := types.ValidateIDPresent(documentID, "documentId"); err != nil {
		return err
	}
	url := fmt.Sprintf("%s/%s", documentsURL(baseURL, databaseID, collectionID), documentID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return err
	}
	resp, err := do(httpClient, httpReq, http.StatusNoContent, "delete document")
	if err != nil {
		return err
	}
	return resp.Body.Close()
}
