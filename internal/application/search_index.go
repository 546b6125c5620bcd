package application

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/users-auth-api/internal/domain/entity"
)

const (
	defaultSearchSize = 10
	maxSearchSize     = 50
	esTimeout         = 3 * time.Second
)

// SearchHit is the public projection stored in the users index.
type SearchHit struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UserIndex mirrors users into Elasticsearch. Its zero value, or one with a
// nil client, is a no-op index that returns empty search results.
type UserIndex struct {
	ES     *elasticsearch.Client
	Index  string
	Logger *logrus.Logger
}

func NewUserIndex(es *elasticsearch.Client, index string, logger *logrus.Logger) *UserIndex {
	return &UserIndex{ES: es, Index: index, Logger: logger}
}

func (x *UserIndex) enabled() bool {
	return x != nil && x.ES != nil && x.Index != ""
}

// Put indexes u. Errors are logged only.
func (x *UserIndex) Put(ctx context.Context, u entity.User) {
	if !x.enabled() {
		return
	}
	b, err := json.Marshal(SearchHit{ID: u.ID, Name: u.Name, Email: u.Email})
	if err != nil {
		return
	}
	req := esapi.IndexRequest{
		Index:      x.Index,
		DocumentID: strconv.FormatInt(u.ID, 10),
		Body:       bytes.NewReader(b),
		Refresh:    "false",
	}
	c, cancel := context.WithTimeout(context.WithoutCancel(ctx), esTimeout)
	defer cancel()
	x.do(c, req, u.ID, "es index failed")
}

// Remove deletes the document for id. Errors are logged only.
func (x *UserIndex) Remove(ctx context.Context, id int64) {
	if !x.enabled() {
		return
	}
	req := esapi.DeleteRequest{Index: x.Index, DocumentID: strconv.FormatInt(id, 10)}
	c, cancel := context.WithTimeout(context.WithoutCancel(ctx), esTimeout)
	defer cancel()
	x.do(c, req, id, "es delete failed")
}

func (x *UserIndex) do(ctx context.Context, req esapi.Request, id int64, msg string) {
	res, err := req.Do(ctx, x.ES)
	if err != nil {
		if x.Logger != nil {
			x.Logger.WithError(err).WithField("user_id", id).Warn(msg)
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && res.StatusCode != http.StatusNotFound && x.Logger != nil {
		x.Logger.WithField("status", res.Status()).WithField("user_id", id).Warn(msg)
	}
}

// Search runs a multi_match query over email and name.
func (x *UserIndex) Search(ctx context.Context, q string, size int) ([]SearchHit, error) {
	if !x.enabled() {
		return []SearchHit{}, nil
	}
	if size <= 0 || size > maxSearchSize {
		size = defaultSearchSize
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"email^2", "name"},
			},
		},
		"size": size,
	}
	b, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	c, cancel := context.WithTimeout(ctx, esTimeout)
	defer cancel()

	res, err := x.ES.Search(
		x.ES.Search.WithContext(c),
		x.ES.Search.WithIndex(x.Index),
		x.ES.Search.WithBody(bytes.NewReader(b)),
	)
	if err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}
	defer func() { _ = res.Body.Close() }()
	// index is created lazily by the first Put
	if res.StatusCode == http.StatusNotFound {
		return []SearchHit{}, nil
	}
	if res.IsError() {
		return nil, fmt.Errorf("search users: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source SearchHit `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	out := make([]SearchHit, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
