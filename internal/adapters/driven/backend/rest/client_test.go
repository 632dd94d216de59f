package rest_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knaw-huc/entity-annotator/internal/adapters/driven/backend/rest"
	"github.com/knaw-huc/entity-annotator/internal/core/domain"
	"github.com/knaw-huc/entity-annotator/internal/core/services"
	"github.com/knaw-huc/entity-annotator/internal/testsupport/fakebackend"
)

func newFixture(t *testing.T) (*rest.Client, *fakebackend.Server) {
	t.Helper()
	srv := fakebackend.New(fakebackend.Sample(50)...)
	t.Cleanup(srv.Close)

	client, err := rest.NewClient(rest.Config{BaseURL: srv.URL() + "/", Timeout: 5 * time.Second})
	require.NoError(t, err)
	return client, srv
}

func TestNewClient_InvalidURL(t *testing.T) {
	_, err := rest.NewClient(rest.Config{BaseURL: "localhost"})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNewClient_Defaults(t *testing.T) {
	client, err := rest.NewClient(rest.Config{})

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultBackendURL, client.BaseURL())
}

func TestConfigFromSettings(t *testing.T) {
	cfg := rest.ConfigFromSettings(domain.DefaultAppSettings().Backend)

	assert.Equal(t, domain.DefaultBackendURL, cfg.BaseURL)
	assert.Equal(t, domain.DefaultTimeout, cfg.Timeout)
	assert.InDelta(t, domain.DefaultRequestsPerSecond, cfg.RequestsPerSecond, 1e-9)
}

func TestClient_Statistics(t *testing.T) {
	client, _ := newFixture(t)

	summary, err := client.Statistics(context.Background())

	require.NoError(t, err)
	assert.Equal(t, domain.Summary{Done: 0, Todo: 50}, summary)
}

func TestClient_RandomIndex(t *testing.T) {
	client, srv := newFixture(t)
	srv.SetRandom(func(n int) int { return 7 })

	index, err := client.RandomIndex(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 7, index)
}

func TestClient_Item(t *testing.T) {
	client, _ := newFixture(t)

	m, err := client.Item(context.Background(), 5)

	require.NoError(t, err)
	assert.Equal(t, 5, m.Index)
	assert.Equal(t, "Utrecht/Zuid", m.Input)
	assert.Equal(t, "ead/0", m.ContextID)
	assert.False(t, m.Annotated())
	require.Len(t, m.Candidates, 3)
	assert.Equal(t, "Name, Alias", m.Candidates[0].Names.String())
	distance, _ := m.Candidates[0].Distance.Float()
	assert.InDelta(t, 0.25, distance, 1e-9)
}

func TestClient_Item_NotFound(t *testing.T) {
	client, _ := newFixture(t)

	_, err := client.Item(context.Background(), 999)

	assert.ErrorIs(t, err, domain.ErrNotFound)
	var statusErr *rest.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusNotFound, statusErr.Code)
	assert.Contains(t, statusErr.Body, "invalid index")
}

func TestClient_PutAnswer_RoundTrip(t *testing.T) {
	client, srv := newFixture(t)
	ctx := context.Background()

	require.NoError(t, services.NewAnnotationSubmitter(client).Submit(ctx, 42, "7"))

	m, err := services.NewCandidateResolver(client).Resolve(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, "7", m.Golden)
	assert.True(t, m.Annotated())
	assert.Equal(t, "7", srv.Golden(42))

	summary, err := client.Statistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Done)
}

func TestClient_PutAnswer_AlreadyAnswered(t *testing.T) {
	client, _ := newFixture(t)
	ctx := context.Background()
	require.NoError(t, client.PutAnswer(ctx, 3, "Q3"))

	err := client.PutAnswer(ctx, 3, "Q4")

	var statusErr *rest.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusBadRequest, statusErr.Code)
	assert.Equal(t, "already answered", statusErr.Body)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}

func TestClient_Terms(t *testing.T) {
	client, _ := newFixture(t)

	page, err := client.Terms(context.Background(), 0, 2)

	require.NoError(t, err)
	assert.Equal(t, 4, page.Total)
	assert.Equal(t, 2, page.LastPage())
	assert.Equal(t, []domain.TermFrequency{{Key: "Amsterdam", Freq: 25}, {Key: "Leiden", Freq: 9}}, page.Items)
}

func TestClient_TermOccurrences(t *testing.T) {
	client, _ := newFixture(t)

	page, err := client.TermOccurrences(context.Background(), "Amsterdam", 0, 10)

	require.NoError(t, err)
	assert.Equal(t, 25, page.Total)
	require.Len(t, page.Items, 10)
	assert.True(t, page.Items[0].ControlAccess)
	assert.Equal(t, 0, page.Items[0].Index)
}

func TestClient_TermOccurrences_EscapesTerm(t *testing.T) {
	client, _ := newFixture(t)
	ctx := context.Background()

	for _, term := range []string{"Den Haag", "Utrecht/Zuid"} {
		page, err := client.TermOccurrences(ctx, term, 0, 10)

		require.NoError(t, err, term)
		assert.Equal(t, 8, page.Total, term)
	}
}

func TestClient_TermOccurrences_UnknownTerm(t *testing.T) {
	client, _ := newFixture(t)

	_, err := client.TermOccurrences(context.Background(), "Rotterdam", 0, 10)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestClient_TermOccurrences_ReportsAnnotated(t *testing.T) {
	client, _ := newFixture(t)
	ctx := context.Background()
	require.NoError(t, client.PutAnswer(ctx, 1, "Q1"))

	page, err := client.TermOccurrences(ctx, "Leiden", 0, 10)

	require.NoError(t, err)
	var annotated []int
	for _, o := range page.Items {
		if o.Annotated {
			annotated = append(annotated, o.Index)
		}
	}
	assert.Equal(t, []int{1}, annotated)
}

func TestClient_Dump(t *testing.T) {
	client, _ := newFixture(t)

	rc, err := client.Dump(context.Background())
	require.NoError(t, err)
	defer rc.Close()

	var items []json.RawMessage
	require.NoError(t, json.NewDecoder(rc).Decode(&items))
	assert.Len(t, items, 50)
}

func TestClient_Save(t *testing.T) {
	client, srv := newFixture(t)

	require.NoError(t, client.Save(context.Background()))

	assert.Equal(t, 1, srv.Saves())
}

func TestClient_StatusError(t *testing.T) {
	client, srv := newFixture(t)
	srv.FailWith(http.StatusServiceUnavailable, "maintenance")

	_, err := client.Statistics(context.Background())

	var statusErr *rest.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.Code)
	assert.Equal(t, "maintenance", statusErr.Body)
	assert.Equal(t, "GET /statistics: 503 Service Unavailable: maintenance", err.Error())
}

type doerFunc func(*http.Request) (*http.Response, error)

func (f doerFunc) Do(req *http.Request) (*http.Response, error) { return f(req) }

func TestClient_TransportError(t *testing.T) {
	boom := errors.New("connection refused")
	client, err := rest.NewClient(rest.Config{
		BaseURL:    "http://backend.invalid/api",
		HTTPClient: doerFunc(func(*http.Request) (*http.Response, error) { return nil, boom }),
	})
	require.NoError(t, err)

	_, err = client.Statistics(context.Background())

	assert.ErrorIs(t, err, boom)
}

func TestClient_PutAnswer_SendsPlainText(t *testing.T) {
	var got *http.Request
	var body string
	client, err := rest.NewClient(rest.Config{
		BaseURL: "http://backend.invalid/api",
		HTTPClient: doerFunc(func(req *http.Request) (*http.Response, error) {
			got = req
			data, _ := io.ReadAll(req.Body)
			body = string(data)
			return &http.Response{StatusCode: http.StatusOK, Body: http.NoBody}, nil
		}),
	})
	require.NoError(t, err)

	require.NoError(t, client.PutAnswer(context.Background(), 42, "7"))

	assert.Equal(t, http.MethodPut, got.Method)
	assert.Equal(t, "/api/items/42", got.URL.Path)
	assert.Contains(t, got.Header.Get("Content-Type"), "text/plain")
	assert.Equal(t, "7", body)
}

func TestClient_MalformedTerms(t *testing.T) {
	client, err := rest.NewClient(rest.Config{
		BaseURL: "http://backend.invalid/api",
		HTTPClient: doerFunc(func(*http.Request) (*http.Response, error) {
			return &http.Response{StatusCode: http.StatusOK, Body: io.NopCloser(strings.NewReader(`[{"key":"a","freq":1}]`))}, nil
		}),
	})
	require.NoError(t, err)

	_, err = client.Terms(context.Background(), 0, 10)

	assert.Error(t, err)
}
